package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/deck-forge/internal/orchestrators/deckgen"
	"github.com/KirkDiggler/deck-forge/internal/repositories/deckfile"
	"github.com/KirkDiggler/deck-forge/internal/repositories/spells"
	"github.com/KirkDiggler/deck-forge/internal/services/conversion"
)

var (
	genClasses     string
	genLevels      string
	genSchools     string
	genLimit       int
	genInteractive bool
	genOutput      string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Build a spell card deck from the cached spell file",
	Example: `  deckforge generate --class wizard --level 1,2 --output exports/dev/wizard_low.json
  deckforge generate --school evocation --limit 10 --interactive`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&genClasses, "class", "", "comma-separated class names")
	generateCmd.Flags().StringVar(&genLevels, "level", "", "comma-separated spell levels (0 for cantrips)")
	generateCmd.Flags().StringVar(&genSchools, "school", "", "comma-separated schools of magic")
	generateCmd.Flags().IntVar(&genLimit, "limit", 0, "keep only the first N spells (0 keeps all)")
	generateCmd.Flags().BoolVar(&genInteractive, "interactive", false, "pick spells from a numbered list")
	generateCmd.Flags().StringVar(&genOutput, "output", "", "deck file to write (default <exports_dir>/<env>/deck.json)")
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	ctx, cancel := commandContext()
	defer cancel()

	spellRepo, err := spells.NewFileRepository(&spells.Config{Path: cfg.SpellsPath()})
	if err != nil {
		return err
	}

	orch, err := deckgen.NewOrchestrator(&deckgen.Config{
		SpellRepo: spellRepo,
		DeckRepo:  deckfile.NewFileRepository(),
		Converter: conversion.NewSpellConverter(&conversion.SpellConverterConfig{Logger: logger}),
		Selector: deckgen.NewReadlineSelector(&deckgen.ReadlineSelectorConfig{
			Stdin:  os.Stdin,
			Stdout: cmd.OutOrStdout(),
		}),
		Logger: logger,
	})
	if err != nil {
		return err
	}

	output := genOutput
	if output == "" {
		output = filepath.Join(cfg.ExportsDir, cfg.Environment, "deck.json")
	}

	out, err := orch.Generate(ctx, &deckgen.GenerateInput{
		OutputPath:  output,
		Limit:       genLimit,
		Classes:     genClasses,
		Levels:      genLevels,
		Schools:     genSchools,
		Interactive: genInteractive,
	})
	if err != nil {
		return err
	}

	cmd.Printf("Deck written to %s with %d card(s)\n", out.Path, out.CardCount)
	return nil
}
