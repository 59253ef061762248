package conversion

import (
	"github.com/KirkDiggler/deck-forge/internal/entities/deck"
)

// SpellConverter projects validated spells onto renderable cards.
// Conversion is lossy: only the fields a card renders survive.
type SpellConverter interface {
	// ToCard converts one spell. A spell missing name or school, or with a
	// negative level, is rejected with a MALFORMED_RECORD error.
	ToCard(spell *deck.Spell) (*deck.Card, error)

	// ToCards converts a batch in order. A spell that fails is reported in
	// the output and skipped; the batch never aborts for one record.
	ToCards(spells []deck.Spell) *BatchOutput
}

// ArtPicker chooses the placeholder art reference for a freshly converted card
type ArtPicker interface {
	Pick() string
}

// Result is the conversion outcome for one spell
type Result struct {
	Position int
	Spell    string
	Card     *deck.Card
	Err      error
}

// BatchOutput collects converted cards and the spells that were skipped
type BatchOutput struct {
	Cards  []deck.Card
	Failed []Result
}
