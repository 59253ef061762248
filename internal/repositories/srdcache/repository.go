// Package srdcache provides a Redis cache in front of the SRD spell API
package srdcache

import (
	"context"
	"time"

	"github.com/KirkDiggler/deck-forge/internal/entities/deck"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=srdcachemock github.com/KirkDiggler/deck-forge/internal/repositories/srdcache Repository

// DefaultTTL is how long fetched spell records stay cached
const DefaultTTL = 24 * time.Hour

// Repository caches the spell index list and individual spell records
type Repository interface {
	// GetIndex returns the cached spell index list. A miss is NOT_FOUND.
	GetIndex(ctx context.Context) ([]string, error)

	// PutIndex caches the spell index list
	PutIndex(ctx context.Context, indexes []string) error

	// GetSpell returns one cached spell. A miss is NOT_FOUND.
	GetSpell(ctx context.Context, index string) (*deck.Spell, error)

	// PutSpell caches one spell under its index
	PutSpell(ctx context.Context, spell *deck.Spell) error
}
