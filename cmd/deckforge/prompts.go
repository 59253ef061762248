package main

import (
	"github.com/spf13/cobra"

	"github.com/KirkDiggler/deck-forge/internal/orchestrators/prompts"
	"github.com/KirkDiggler/deck-forge/internal/repositories/spells"
)

var (
	promptsSuffix string
	promptsOutput string
)

var promptsCmd = &cobra.Command{
	Use:   "prompts",
	Short: "Write one image prompt per cached spell to a text file",
	Example: `  deckforge prompts
  deckforge prompts --suffix "in watercolor style"`,
	RunE: runPrompts,
}

func init() {
	promptsCmd.Flags().StringVar(&promptsSuffix, "suffix", "", "style or theme text appended to every prompt")
	promptsCmd.Flags().StringVar(&promptsOutput, "output", "", "prompt file to write (default <prompts_dir>/<env>/spells.txt)")
}

func runPrompts(cmd *cobra.Command, _ []string) error {
	ctx, cancel := commandContext()
	defer cancel()

	spellRepo, err := spells.NewFileRepository(&spells.Config{Path: cfg.SpellsPath()})
	if err != nil {
		return err
	}

	orch, err := prompts.NewOrchestrator(&prompts.Config{
		SpellRepo: spellRepo,
		Logger:    logger,
	})
	if err != nil {
		return err
	}

	output := promptsOutput
	if output == "" {
		output = cfg.PromptsPath()
	}

	out, err := orch.Generate(ctx, &prompts.GenerateInput{
		OutputPath:     output,
		Suffix:         promptsSuffix,
		CharacterStyle: cfg.Art.CharacterStyle,
	})
	if err != nil {
		return err
	}

	cmd.Printf("Wrote %d prompts to %s (%d records dropped)\n", out.PromptCount, out.Path, out.Dropped)
	return nil
}
