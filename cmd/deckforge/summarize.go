package main

import (
	"github.com/spf13/cobra"

	"github.com/KirkDiggler/deck-forge/internal/repositories/deckfile"
	"github.com/KirkDiggler/deck-forge/internal/services/summarize"
)

var summarizeMaxLength int

var summarizeCmd = &cobra.Command{
	Use:   "summarize <deck.json>",
	Short: "Shorten card descriptions to fit on a card",
	Long: `Rewrite each card description to at most --max-length characters.
With OPENAI_API_KEY set a model summary is requested; otherwise, or when
the model fails, the text is truncated.`,
	Args: cobra.ExactArgs(1),
	RunE: runSummarize,
}

func init() {
	summarizeCmd.Flags().IntVar(&summarizeMaxLength, "max-length", summarize.DefaultMaxLength, "maximum description length")
}

func runSummarize(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext()
	defer cancel()

	var summarizer summarize.Summarizer
	if apiKey, ok := cfg.APIKey(); ok {
		s, err := summarize.NewOpenAISummarizer(&summarize.OpenAIConfig{
			APIKey:  apiKey,
			BaseURL: cfg.OpenAI.BaseURL,
			Model:   cfg.OpenAI.Model,
			Timeout: cfg.ArtTimeout(),
		})
		if err != nil {
			return err
		}
		summarizer = s
	} else {
		logger.Info("No API key set; descriptions will be truncated")
	}

	svc, err := summarize.New(&summarize.Config{
		Summarizer: summarizer,
		Decks:      deckfile.NewFileRepository(),
		Logger:     logger,
	})
	if err != nil {
		return err
	}

	out, err := svc.SummarizeDeck(ctx, &summarize.DeckInput{Path: args[0], MaxLength: summarizeMaxLength})
	if err != nil {
		return err
	}

	cmd.Printf("Summarized %s: %d unchanged, %d by model, %d truncated\n",
		out.Path, out.Unchanged, out.Model, out.Truncated)
	return nil
}
