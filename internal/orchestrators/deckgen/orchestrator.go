// Package deckgen builds spell card decks from the cached SRD spell file
package deckgen

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/KirkDiggler/deck-forge/internal/entities/deck"
	"github.com/KirkDiggler/deck-forge/internal/errors"
	"github.com/KirkDiggler/deck-forge/internal/repositories/deckfile"
	"github.com/KirkDiggler/deck-forge/internal/repositories/spells"
	"github.com/KirkDiggler/deck-forge/internal/services/conversion"
	"github.com/KirkDiggler/deck-forge/internal/services/filter"
	"github.com/KirkDiggler/deck-forge/internal/services/repair"
)

// Service defines the interface for deck generation
type Service interface {
	// Generate runs load, validate, filter, optional selection, limit,
	// convert and persist. Nothing is written unless at least one card
	// survives.
	Generate(ctx context.Context, input *GenerateInput) (*GenerateOutput, error)
}

// Config holds the dependencies for the deck orchestrator
type Config struct {
	SpellRepo spells.Repository
	DeckRepo  deckfile.Repository
	Converter conversion.SpellConverter
	// Selector is required only for interactive runs
	Selector Selector
	Logger   *slog.Logger
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.SpellRepo == nil {
		vb.RequiredField("SpellRepo")
	}
	if c.DeckRepo == nil {
		vb.RequiredField("DeckRepo")
	}
	if c.Converter == nil {
		vb.RequiredField("Converter")
	}

	return vb.Build()
}

type orchestrator struct {
	spellRepo spells.Repository
	deckRepo  deckfile.Repository
	converter conversion.SpellConverter
	selector  Selector
	repairer  *repair.Repairer
	logger    *slog.Logger
}

// NewOrchestrator creates a new deck orchestrator with the provided dependencies
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
		deckRepo:  cfg.DeckRepo,
		converter: cfg.Converter,
		selector:  cfg.Selector,
		repairer:  repair.New(&repair.Config{Logger: logger}),
		logger:    logger,
	}, nil
}

func (o *orchestrator) Generate(ctx context.Context, input *GenerateInput) (*GenerateOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := o.validateInput(input); err != nil {
		return nil, err
	}

	// Parse filters first so a bad level token fails before any I/O
	spec, err := filter.Parse(input.Classes, input.Levels, input.Schools)
	if err != nil {
		return nil, err
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

	filtered := filter.Apply(repaired.Spells, spec)
	if len(filtered) == 0 {
		o.logSuggestions(repaired.Spells, spec)
		return nil, errors.EmptyResult("no spells match the requested filters")
	}

	if input.Interactive {
		filtered, err = o.selectSpells(ctx, filtered)
		if err != nil {
			return nil, err
		}
	}

	if input.Limit > 0 && len(filtered) > input.Limit {
		filtered = filtered[:input.Limit]
	}

	batch := o.converter.ToCards(filtered)
	if len(batch.Cards) == 0 {
		return nil, errors.EmptyResultf("none of the %d selected spells could be converted", len(filtered))
	}

	saved, err := o.deckRepo.Save(ctx, deckfile.SaveInput{
		Path: input.OutputPath,
		Deck: &deck.Deck{Cards: batch.Cards},
	})
	if err != nil {
		return nil, err
	}

	o.logger.Info("Deck written",
		"path", saved.Path,
		"cards", saved.CardCount,
		"dropped", len(repaired.Dropped),
		"skipped", len(batch.Failed))

	return &GenerateOutput{
		Path:      saved.Path,
		CardCount: saved.CardCount,
		Dropped:   len(repaired.Dropped),
		Skipped:   len(batch.Failed),
	}, nil
}

func (o *orchestrator) validateInput(input *GenerateInput) error {
	vb := errors.NewValidationBuilder()

	errors.ValidateRequired("output", input.OutputPath, vb)
	errors.ValidateMin("limit", input.Limit, 0, vb)
	if input.Interactive && o.selector == nil {
		vb.Field("interactive", "no selector configured")
	}

	return vb.Build()
}

func (o *orchestrator) selectSpells(ctx context.Context, candidates []deck.Spell) ([]deck.Spell, error) {
	choices := make([]string, len(candidates))
	for i := range candidates {
		choices[i] = fmt.Sprintf("%s (level %d %s)", candidates[i].Name, candidates[i].Level, candidates[i].School)
	}

	line, err := o.selector.Prompt(ctx, choices)
	if err != nil {
		return nil, err
	}

	picked, err := ParseSelection(line, len(candidates))
	if err != nil {
		return nil, err
	}
	if len(picked) == 0 {
		return nil, errors.EmptyResult("no spells selected")
	}

	selected := make([]deck.Spell, 0, len(picked))
	for _, idx := range picked {
		selected = append(selected, candidates[idx])
	}
	return selected, nil
}

func (o *orchestrator) logSuggestions(validated []deck.Spell, spec deck.FilterSpec) {
	for _, s := range filter.Suggest(validated, spec) {
		o.logger.Warn("Filter value matched no spells",
			"axis", s.Axis,
			"value", s.Requested,
			"did_you_mean", strings.Join(s.DidYouMean, ", "))
	}
}
