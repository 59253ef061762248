// Package main is the entry point for the deckforge CLI
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/deck-forge/internal/config"
	"github.com/KirkDiggler/deck-forge/internal/errors"
	"github.com/KirkDiggler/deck-forge/internal/pkg/logging"
)

var (
	configPath string
	envFile    string
	logLevel   string

	cfg    *config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "deckforge",
	Short: "Build printable spell card decks from SRD data",
	Long: `deckforge fetches D&D 5e SRD spells, turns them into card decks,
generates versioned artwork for each card and keeps deck files tidy.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(errors.GetCode(err).ExitCode())
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ./config.toml if present)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "dotenv file (default ./.env if present)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")

	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(artCmd)
	rootCmd.AddCommand(summarizeCmd)
	rootCmd.AddCommand(promptsCmd)
	rootCmd.AddCommand(repairCmd)
	rootCmd.AddCommand(normalizeArtCmd)
	rootCmd.AddCommand(versionCmd)
}

func setup(cmd *cobra.Command, _ []string) error {
	loaded, err := config.Load(config.LoadOptions{
		Path:    configPath,
		EnvFile: envFile,
	})
	if err != nil {
		return err
	}
	if logLevel != "" {
		loaded.Log.Level = logLevel
	}

	cfg = loaded
	logger = logging.New(cmd.ErrOrStderr(), logging.Options{
		Level:           cfg.Log.Level,
		Format:          cfg.Log.Format,
		ReportTimestamp: cfg.Log.ReportTimestamp,
	})
	slog.SetDefault(logger)
	return nil
}

// commandContext is canceled on SIGINT or SIGTERM
func commandContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case <-sigChan:
			logger.Warn("Received shutdown signal, stopping")
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigChan)
	}()

	return ctx, cancel
}
