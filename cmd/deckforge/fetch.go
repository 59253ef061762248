package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/deck-forge/internal/clients/srd"
	"github.com/KirkDiggler/deck-forge/internal/errors"
	"github.com/KirkDiggler/deck-forge/internal/orchestrators/fetch"
	"github.com/KirkDiggler/deck-forge/internal/redis"
	"github.com/KirkDiggler/deck-forge/internal/repositories/spells"
	"github.com/KirkDiggler/deck-forge/internal/repositories/srdcache"
)

var fetchForce bool

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download SRD spells into the cached spell file",
	RunE:  runFetch,
}

var repairCmd = &cobra.Command{
	Use:   "repair",
	Short: "Validate the cached spell file and rewrite it in clean form",
	RunE:  runRepair,
}

func init() {
	fetchCmd.Flags().BoolVar(&fetchForce, "force", false, "re-fetch even if the spell file exists")
}

func runFetch(cmd *cobra.Command, _ []string) error {
	ctx, cancel := commandContext()
	defer cancel()

	orch, cleanup, err := newFetchOrchestrator(ctx, true)
	if err != nil {
		return err
	}
	defer cleanup()

	out, err := orch.Fetch(ctx, &fetch.FetchInput{Force: fetchForce})
	if err != nil {
		return err
	}
	if out.Skipped {
		cmd.Printf("Spell file already present at %s (use --force to re-fetch)\n", out.Path)
		return nil
	}
	cmd.Printf("Saved %d spells to %s\n", out.SpellCount, out.Path)
	return nil
}

func runRepair(cmd *cobra.Command, _ []string) error {
	ctx, cancel := commandContext()
	defer cancel()

	orch, cleanup, err := newFetchOrchestrator(ctx, false)
	if err != nil {
		return err
	}
	defer cleanup()

	out, err := orch.Repair(ctx, &fetch.RepairInput{})
	if err != nil {
		return err
	}
	cmd.Printf("Repaired %s: %d kept, %d dropped\n", out.Path, out.Kept, out.Dropped)
	return nil
}

// newFetchOrchestrator wires the SRD client, spell file and optional Redis
// cache. The cache is only connected when withCache is set and an address
// is configured; an unreachable Redis is logged and skipped.
func newFetchOrchestrator(ctx context.Context, withCache bool) (fetch.Service, func(), error) {
	cleanup := func() {}

	spellRepo, err := spells.NewFileRepository(&spells.Config{Path: cfg.SpellsPath()})
	if err != nil {
		return nil, cleanup, err
	}

	client, err := srd.New(&srd.Config{
		BaseURL:     cfg.SRD.BaseURL,
		HTTPTimeout: cfg.SRDTimeout(),
		Logger:      logger,
	})
	if err != nil {
		return nil, cleanup, errors.Wrap(err, "failed to create SRD client")
	}

	var cache srdcache.Repository
	if withCache && cfg.Redis.Addr != "" {
		rc, err := redis.Connect(ctx, cfg.Redis.Addr, &redis.Options{
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			logger.Warn("Redis unavailable; fetching without cache", "addr", cfg.Redis.Addr, "error", err)
		} else {
			cleanup = func() { _ = rc.Close() }
			cache, err = srdcache.NewRedisRepository(&srdcache.Config{Client: rc, TTL: cfg.RedisTTL()})
			if err != nil {
				return nil, cleanup, err
			}
		}
	}

	orch, err := fetch.NewOrchestrator(&fetch.Config{
		Client:      client,
		SpellRepo:   spellRepo,
		Cache:       cache,
		Concurrency: cfg.SRD.Concurrency,
		Logger:      logger,
	})
	if err != nil {
		return nil, cleanup, err
	}
	return orch, cleanup, nil
}
