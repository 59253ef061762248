// Package prompts writes one image prompt per cached spell to a text file
package prompts

import (
	"context"
	"log/slog"
	"strings"

	"github.com/KirkDiggler/deck-forge/internal/errors"
	"github.com/KirkDiggler/deck-forge/internal/pkg/atomicfile"
	"github.com/KirkDiggler/deck-forge/internal/repositories/spells"
	"github.com/KirkDiggler/deck-forge/internal/services/conversion"
	"github.com/KirkDiggler/deck-forge/internal/services/prompt"
	"github.com/KirkDiggler/deck-forge/internal/services/repair"
)

const separator = "\n\n"

// Service defines the interface for prompt file generation
type Service interface {
	// Generate loads and repairs the cached spells and writes their prompts
	// separated by blank lines. Nothing is written when no spell survives.
	Generate(ctx context.Context, input *GenerateInput) (*GenerateOutput, error)
}

// Config holds the dependencies for the prompts orchestrator
type Config struct {
	SpellRepo spells.Repository
	Logger    *slog.Logger
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.SpellRepo == nil {
		vb.RequiredField("SpellRepo")
	}

	return vb.Build()
}

type orchestrator struct {
	spellRepo spells.Repository
	repairer  *repair.Repairer
	logger    *slog.Logger
}

// NewOrchestrator creates a new prompts orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &orchestrator{
		spellRepo: cfg.SpellRepo,
		repairer:  repair.New(&repair.Config{Logger: logger}),
		logger:    logger,
	}, nil
}

func (o *orchestrator) Generate(ctx context.Context, input *GenerateInput) (*GenerateOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if strings.TrimSpace(input.OutputPath) == "" {
		return nil, errors.InvalidArgument("output path is required")
	}

	loaded, err := o.spellRepo.Load(ctx)
	if err != nil {
		return nil, err
	}

	repaired := o.repairer.ValidateAndRepair(loaded.Raw)
	if len(repaired.Spells) == 0 {
		return nil, errors.EmptyResultf("no valid spells in %s", loaded.Path).
			WithMeta("dropped", len(repaired.Dropped))
	}

	lines := make([]string, 0, len(repaired.Spells))
	for i := range repaired.Spells {
		spell := &repaired.Spells[i]
		lines = append(lines, prompt.Build(prompt.Input{
			Title:          conversion.TitleCase(spell.Name),
			Description:    strings.Join(spell.Desc, " "),
			CharacterStyle: input.CharacterStyle,
			Suffix:         input.Suffix,
		}))
	}

	if err := ctx.Err(); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeCanceled, "prompt generation canceled")
	}
	if err := atomicfile.Write(input.OutputPath, []byte(strings.Join(lines, separator))); err != nil {
		return nil, errors.Wrapf(err, "failed to write prompts to %s", input.OutputPath)
	}

	o.logger.Info("Prompts written",
		"path", input.OutputPath,
		"prompts", len(lines),
		"dropped", len(repaired.Dropped))

	return &GenerateOutput{
		Path:        input.OutputPath,
		PromptCount: len(lines),
		Dropped:     len(repaired.Dropped),
	}, nil
}
