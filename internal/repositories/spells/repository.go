// Package spells provides the repository for the cached SRD spell file
package spells

import (
	"context"

	"github.com/KirkDiggler/deck-forge/internal/entities/deck"
	"github.com/KirkDiggler/deck-forge/internal/services/repair"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=spellsmock github.com/KirkDiggler/deck-forge/internal/repositories/spells Repository

// LoadOutput contains the raw cached data, not yet validated
type LoadOutput struct {
	Path string
	Raw  repair.RawSpellInput
}

// SaveInput contains the spells to cache
type SaveInput struct {
	Spells []deck.Spell
}

// SaveOutput reports what was written
type SaveOutput struct {
	Path       string
	SpellCount int
}

// Repository reads and writes the cached spell file
type Repository interface {
	// Path is the location of the cache file
	Path() string

	// Exists reports whether the cache file is present
	Exists(ctx context.Context) (bool, error)

	// Load reads the cache file. A missing file is NOT_FOUND.
	Load(ctx context.Context) (*LoadOutput, error)

	// Save replaces the cache file. An empty spell list is refused so a
	// failed fetch or repair never wipes good data.
	Save(ctx context.Context, input SaveInput) (*SaveOutput, error)
}
