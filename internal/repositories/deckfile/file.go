package deckfile

import (
	"bytes"
	"context"
	"encoding/json"
	"os"

	"github.com/KirkDiggler/deck-forge/internal/entities/deck"
	"github.com/KirkDiggler/deck-forge/internal/errors"
	"github.com/KirkDiggler/deck-forge/internal/pkg/atomicfile"
)

const (
	errPathEmpty = "deck path cannot be empty"
	errDeckNil   = "deck cannot be nil"
)

type fileRepository struct{}

// NewFileRepository creates a deck repository backed by the local filesystem
func NewFileRepository() Repository {
	return &fileRepository{}
}

// Ensure fileRepository implements Repository
var _ Repository = (*fileRepository)(nil)

// Load reads and decodes a deck file
func (r *fileRepository) Load(ctx context.Context, input LoadInput) (*LoadOutput, error) {
	if input.Path == "" {
		return nil, errors.InvalidArgument(errPathEmpty)
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeCanceled, "load canceled")
	}

	data, err := os.ReadFile(input.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFoundf("deck not found: %s", input.Path).WithMeta("path", input.Path)
		}
		return nil, errors.Wrapf(err, "failed to read deck %s", input.Path)
	}

	d, layout, err := Decode(data)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to decode deck %s", input.Path)
	}

	return &LoadOutput{Deck: d, Layout: layout}, nil
}

// Save encodes and atomically writes a deck file
func (r *fileRepository) Save(ctx context.Context, input SaveInput) (*SaveOutput, error) {
	if input.Path == "" {
		return nil, errors.InvalidArgument(errPathEmpty)
	}
	if input.Deck == nil {
		return nil, errors.InvalidArgument(errDeckNil)
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeCanceled, "save canceled")
	}

	out := *input.Deck
	if out.Cards == nil {
		out.Cards = []deck.Card{}
	}

	if err := atomicfile.WriteJSON(input.Path, &out); err != nil {
		return nil, errors.Wrapf(err, "failed to write deck %s", input.Path)
	}

	return &SaveOutput{Path: input.Path, CardCount: len(out.Cards)}, nil
}

// Decode accepts {"cards": [...]}, {"spells": [...]} or a bare card list
func Decode(data []byte) (*deck.Deck, Layout, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, "", errors.MalformedRecord("deck file is empty")
	}

	if trimmed[0] == '[' {
		var cards []deck.Card
		if err := json.Unmarshal(trimmed, &cards); err != nil {
			return nil, "", errors.WrapWithCode(err, errors.CodeMalformedRecord, "deck is not a valid card list")
		}
		return &deck.Deck{Cards: cards}, LayoutList, nil
	}

	var doc struct {
		Cards  *[]deck.Card `json:"cards"`
		Spells *[]deck.Card `json:"spells"`
	}
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, "", errors.WrapWithCode(err, errors.CodeMalformedRecord, "deck is not valid JSON")
	}

	switch {
	case doc.Cards != nil:
		return &deck.Deck{Cards: *doc.Cards}, LayoutCards, nil
	case doc.Spells != nil:
		return &deck.Deck{Cards: *doc.Spells}, LayoutSpells, nil
	default:
		return &deck.Deck{}, LayoutCards, nil
	}
}
