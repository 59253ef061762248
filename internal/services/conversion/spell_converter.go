// Package conversion maps validated spells onto the card schema the
// renderer consumes.
package conversion

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/KirkDiggler/deck-forge/internal/entities/deck"
	"github.com/KirkDiggler/deck-forge/internal/errors"
)

// spellConverter is the concrete implementation of SpellConverter
type spellConverter struct {
	artPicker ArtPicker
	logger    *slog.Logger
}

// SpellConverterConfig holds the configuration for creating a spell converter
type SpellConverterConfig struct {
	// ArtPicker chooses placeholder art. Defaults to the dice rotation.
	ArtPicker ArtPicker
	Logger    *slog.Logger
}

// NewSpellConverter creates a new spell converter instance
func NewSpellConverter(cfg *SpellConverterConfig) SpellConverter {
	c := &spellConverter{
		artPicker: NewDicePicker(),
		logger:    slog.Default(),
	}
	if cfg == nil {
		return c
	}
	if cfg.ArtPicker != nil {
		c.artPicker = cfg.ArtPicker
	}
	if cfg.Logger != nil {
		c.logger = cfg.Logger
	}
	return c
}

// ToCard converts a spell to a card
func (c *spellConverter) ToCard(spell *deck.Spell) (*deck.Card, error) {
	if spell == nil {
		return nil, errors.MalformedRecord("spell is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("name", spell.Name, vb)
	errors.ValidateRequired("school", spell.School, vb)
	errors.ValidateMin("level", spell.Level, 0, vb)
	if err := vb.Build(); err != nil {
		return nil, errors.WrapWithCodef(err, errors.CodeMalformedRecord, "spell %q cannot be converted", spell.Name)
	}

	components := make([]string, 0, len(spell.Components))
	components = append(components, spell.Components...)

	return &deck.Card{
		Title:       TitleCase(spell.Name),
		Level:       spell.Level,
		School:      spell.School,
		Description: buildDescription(spell.Desc),
		CastingTime: orDefault(spell.CastingTime, deck.DefaultCastingTime),
		Duration:    orDefault(spell.Duration, deck.DefaultDuration),
		Range:       orDefault(spell.Range, deck.DefaultRange),
		Components:  components,
		Source:      deck.Source,
		ArtURL:      c.artPicker.Pick(),
	}, nil
}

// ToCards converts spells in order, skipping the ones that fail
func (c *spellConverter) ToCards(spells []deck.Spell) *BatchOutput {
	out := &BatchOutput{Cards: make([]deck.Card, 0, len(spells))}

	for i := range spells {
		res := c.convertOne(i, &spells[i])
		if res.Err != nil {
			c.logger.Warn("Skipping spell that failed conversion",
				"spell", res.Spell, "error", res.Err)
			out.Failed = append(out.Failed, res)
			continue
		}
		out.Cards = append(out.Cards, *res.Card)
	}

	return out
}

func (c *spellConverter) convertOne(position int, spell *deck.Spell) (res Result) {
	res = Result{Position: position, Spell: spell.Name}

	defer func() {
		if r := recover(); r != nil {
			res.Card = nil
			res.Err = errors.Internalf("panic converting spell: %v", r)
		}
	}()

	res.Card, res.Err = c.ToCard(spell)
	return res
}

func buildDescription(desc []string) string {
	parts := make([]string, 0, len(desc))
	for _, p := range desc {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return deck.NoDescription
	}
	return strings.Join(parts, " ")
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

// String summarizes the batch for log lines
func (o *BatchOutput) String() string {
	return fmt.Sprintf("%d converted, %d skipped", len(o.Cards), len(o.Failed))
}
