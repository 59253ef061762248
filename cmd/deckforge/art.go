package main

import (
	"github.com/spf13/cobra"

	"github.com/KirkDiggler/deck-forge/internal/clients/imagegen"
	"github.com/KirkDiggler/deck-forge/internal/orchestrators/art"
	"github.com/KirkDiggler/deck-forge/internal/pkg/clock"
	"github.com/KirkDiggler/deck-forge/internal/repositories/deckfile"
)

var (
	artDir            string
	artSize           string
	artN              int
	artPromptSuffix   string
	artCharacterStyle string
	artVersion        string
)

var artCmd = &cobra.Command{
	Use:   "art <deck.json>",
	Short: "Generate versioned artwork for every card in a deck",
	Long: `Generate artwork for each card and record it as a version on the card.
Images that already exist for a title and version are reused, so the
command can be re-run after a partial failure.`,
	Args: cobra.ExactArgs(1),
	RunE: runArt,
}

var normalizeArtCmd = &cobra.Command{
	Use:   "normalize-art <deck.json>",
	Short: "Rewrite backslashes in card art paths to forward slashes",
	Args:  cobra.ExactArgs(1),
	RunE:  runNormalizeArt,
}

func init() {
	artCmd.Flags().StringVar(&artDir, "art-dir", "", "directory for generated images (default from config)")
	artCmd.Flags().StringVar(&artSize, "size", "", "image size as WxH (default from config)")
	artCmd.Flags().IntVar(&artN, "n", 0, "images requested per card (default from config)")
	artCmd.Flags().StringVar(&artPromptSuffix, "prompt-suffix", "", "extra text appended to every prompt")
	artCmd.Flags().StringVar(&artCharacterStyle, "character-style", "", "caster to depict, e.g. \"an elven wizard\"")
	artCmd.Flags().StringVar(&artVersion, "version", "", "art version tag (default from config)")
}

func newArtOrchestrator() (art.Service, error) {
	return art.NewOrchestrator(&art.Config{
		DeckRepo:    deckfile.NewFileRepository(),
		Credentials: cfg.APIKey,
		Generators: func(apiKey string) (imagegen.Generator, error) {
			return imagegen.NewOpenAIGenerator(&imagegen.OpenAIConfig{
				APIKey:  apiKey,
				BaseURL: cfg.OpenAI.BaseURL,
				Model:   cfg.OpenAI.ImageModel,
				Timeout: cfg.ArtTimeout(),
			})
		},
		Downloader: imagegen.NewHTTPDownloader(cfg.ArtTimeout()),
		Clock:      clock.New(),
		Logger:     logger,
	})
}

func runArt(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext()
	defer cancel()

	orch, err := newArtOrchestrator()
	if err != nil {
		return err
	}

	input := &art.GenerateInput{
		DeckPath:       args[0],
		ArtDir:         cfg.Art.Dir,
		Size:           cfg.Art.Size,
		N:              cfg.Art.N,
		PromptSuffix:   cfg.Art.PromptSuffix,
		CharacterStyle: cfg.Art.CharacterStyle,
		Version:        cfg.Art.Version,
	}
	flags := cmd.Flags()
	if flags.Changed("art-dir") {
		input.ArtDir = artDir
	}
	if flags.Changed("size") {
		input.Size = artSize
	}
	if flags.Changed("n") {
		input.N = artN
	}
	if flags.Changed("prompt-suffix") {
		input.PromptSuffix = artPromptSuffix
	}
	if flags.Changed("character-style") {
		input.CharacterStyle = artCharacterStyle
	}
	if flags.Changed("version") {
		input.Version = artVersion
	}

	out, err := orch.Generate(ctx, input)
	if err != nil {
		return err
	}

	cmd.Printf("Deck updated at %s: %d generated, %d reused, %d failed\n",
		out.DeckPath,
		out.Count(art.CardGenerated),
		out.Count(art.CardReused),
		out.Count(art.CardFailed))
	for _, r := range out.Results {
		if r.Status == art.CardFailed && r.Diagnostic != "" {
			cmd.Printf("  %s: see %s\n", r.Title, r.Diagnostic)
		}
	}
	return nil
}

func runNormalizeArt(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext()
	defer cancel()

	orch, err := newArtOrchestrator()
	if err != nil {
		return err
	}

	out, err := orch.Normalize(ctx, &art.NormalizeInput{DeckPath: args[0]})
	if err != nil {
		return err
	}
	if !out.Rewritten {
		cmd.Printf("No changes needed in %s\n", out.DeckPath)
		return nil
	}
	cmd.Printf("Normalized art paths on %d card(s) in %s\n", out.Changed, out.DeckPath)
	return nil
}
