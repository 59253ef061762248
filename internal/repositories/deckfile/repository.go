// Package deckfile provides the repository for deck JSON documents on disk
package deckfile

import (
	"context"

	"github.com/KirkDiggler/deck-forge/internal/entities/deck"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=deckfilemock github.com/KirkDiggler/deck-forge/internal/repositories/deckfile Repository

// Layout names the top-level shape a deck file was read from
type Layout string

const (
	LayoutCards  Layout = "cards"
	LayoutSpells Layout = "spells"
	LayoutList   Layout = "list"
)

// LoadInput contains parameters for reading a deck
type LoadInput struct {
	Path string
}

// LoadOutput contains the deck read from disk
type LoadOutput struct {
	Deck   *deck.Deck
	Layout Layout
}

// SaveInput contains parameters for writing a deck
type SaveInput struct {
	Path string
	Deck *deck.Deck
}

// SaveOutput reports what was written
type SaveOutput struct {
	Path      string
	CardCount int
}

// Repository reads and writes deck files. Writes always use the
// {"cards": [...]} layout and replace the file atomically.
type Repository interface {
	// Load reads a deck. A missing file is NOT_FOUND.
	Load(ctx context.Context, input LoadInput) (*LoadOutput, error)

	// Save writes a deck, creating parent directories as needed
	Save(ctx context.Context, input SaveInput) (*SaveOutput, error)
}
