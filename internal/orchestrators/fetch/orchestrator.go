// Package fetch downloads SRD spells into the cached spell file and keeps
// that file clean.
package fetch

import (
	"context"
	"log/slog"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/deck-forge/internal/clients/srd"
	"github.com/KirkDiggler/deck-forge/internal/entities/deck"
	"github.com/KirkDiggler/deck-forge/internal/errors"
	"github.com/KirkDiggler/deck-forge/internal/repositories/spells"
	"github.com/KirkDiggler/deck-forge/internal/repositories/srdcache"
	"github.com/KirkDiggler/deck-forge/internal/services/repair"
)

// DefaultConcurrency bounds in-flight spell detail requests
const DefaultConcurrency = 8

// Service defines the interface for spell file maintenance
type Service interface {
	// Fetch lists every SRD spell, fetches the details and replaces the
	// spell file. An existing file is kept unless Force is set.
	Fetch(ctx context.Context, input *FetchInput) (*FetchOutput, error)

	// Repair validates the spell file and rewrites it in clean form
	Repair(ctx context.Context, input *RepairInput) (*RepairOutput, error)
}

// Config holds the dependencies for the fetch orchestrator
type Config struct {
	Client    srd.Client
	SpellRepo spells.Repository
	// Cache is optional; when set it is read before the API
	Cache       srdcache.Repository
	Concurrency int
	Logger      *slog.Logger
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Client == nil {
		vb.RequiredField("Client")
	}
	if c.SpellRepo == nil {
		vb.RequiredField("SpellRepo")
	}
	if c.Concurrency < 0 {
		vb.Field("Concurrency", "must not be negative")
	}

	return vb.Build()
}

type orchestrator struct {
	client      srd.Client
	spellRepo   spells.Repository
	cache       srdcache.Repository
	concurrency int
	repairer    *repair.Repairer
	logger      *slog.Logger
}

// NewOrchestrator creates a new fetch orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	o := &orchestrator{
		client:      cfg.Client,
		spellRepo:   cfg.SpellRepo,
		cache:       cfg.Cache,
		concurrency: cfg.Concurrency,
		logger:      cfg.Logger,
	}
	if o.concurrency == 0 {
		o.concurrency = DefaultConcurrency
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	o.repairer = repair.New(&repair.Config{Logger: o.logger})
	return o, nil
}

func (o *orchestrator) Fetch(ctx context.Context, input *FetchInput) (*FetchOutput, error) {
	if input == nil {
		input = &FetchInput{}
	}

	exists, err := o.spellRepo.Exists(ctx)
	if err != nil {
		return nil, err
	}
	if exists && !input.Force {
		o.logger.Warn("Spell file already exists; use --force to re-fetch", "path", o.spellRepo.Path())
		return &FetchOutput{Path: o.spellRepo.Path(), Skipped: true}, nil
	}

	indexes, err := o.listIndexes(ctx)
	if err != nil {
		return nil, err
	}
	if len(indexes) == 0 {
		return nil, errors.EmptyResult("SRD spell listing is empty")
	}

	var hits atomic.Int32
	fetched := make([]deck.Spell, len(indexes))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.concurrency)
	for i, index := range indexes {
		g.Go(func() error {
			spell, hit, err := o.getSpell(gctx, index)
			if err != nil {
				return err
			}
			if hit {
				hits.Add(1)
			}
			fetched[i] = *spell
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	saved, err := o.spellRepo.Save(ctx, spells.SaveInput{Spells: fetched})
	if err != nil {
		return nil, err
	}

	o.logger.Info("Saved SRD spells",
		"path", saved.Path,
		"count", saved.SpellCount,
		"cache_hits", hits.Load())

	return &FetchOutput{
		Path:       saved.Path,
		SpellCount: saved.SpellCount,
		CacheHits:  int(hits.Load()),
	}, nil
}

func (o *orchestrator) listIndexes(ctx context.Context) ([]string, error) {
	if o.cache != nil {
		indexes, err := o.cache.GetIndex(ctx)
		switch {
		case err == nil && len(indexes) > 0:
			return indexes, nil
		case err != nil && !errors.IsNotFound(err):
			o.logger.Warn("Spell cache unavailable", "error", err)
		}
	}

	refs, err := o.client.ListSpells(ctx)
	if err != nil {
		return nil, err
	}

	indexes := make([]string, 0, len(refs))
	for _, ref := range refs {
		indexes = append(indexes, ref.Index)
	}

	if o.cache != nil && len(indexes) > 0 {
		if err := o.cache.PutIndex(ctx, indexes); err != nil {
			o.logger.Warn("Failed to cache spell index", "error", err)
		}
	}
	return indexes, nil
}

// getSpell reports whether the spell came from the cache
func (o *orchestrator) getSpell(ctx context.Context, index string) (*deck.Spell, bool, error) {
	if o.cache != nil {
		spell, err := o.cache.GetSpell(ctx, index)
		if err == nil {
			return spell, true, nil
		}
		if !errors.IsNotFound(err) {
			o.logger.Warn("Spell cache read failed", "spell", index, "error", err)
		}
	}

	spell, err := o.client.GetSpell(ctx, index)
	if err != nil {
		return nil, false, errors.Wrapf(err, "failed to fetch spell %s", index)
	}

	if o.cache != nil {
		if err := o.cache.PutSpell(ctx, spell); err != nil {
			o.logger.Warn("Failed to cache spell", "spell", index, "error", err)
		}
	}
	return spell, false, nil
}

func (o *orchestrator) Repair(ctx context.Context, _ *RepairInput) (*RepairOutput, error) {
	loaded, err := o.spellRepo.Load(ctx)
	if err != nil {
		return nil, err
	}

	repaired := o.repairer.ValidateAndRepair(loaded.Raw)
	if len(repaired.Spells) == 0 {
		return nil, errors.EmptyResultf("no valid spells in %s; file left unchanged", loaded.Path).
			WithMeta("dropped", len(repaired.Dropped))
	}

	saved, err := o.spellRepo.Save(ctx, spells.SaveInput{Spells: repaired.Spells})
	if err != nil {
		return nil, err
	}

	o.logger.Info("Repaired spell file",
		"path", saved.Path,
		"kept", saved.SpellCount,
		"dropped", len(repaired.Dropped))

	return &RepairOutput{
		Path:    saved.Path,
		Kept:    saved.SpellCount,
		Dropped: len(repaired.Dropped),
	}, nil
}
