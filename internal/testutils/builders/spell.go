// Package builders provides test data builders for creating test fixtures
package builders

import (
	"github.com/KirkDiggler/deck-forge/internal/entities/deck"
)

// SpellBuilder provides a fluent interface for building test Spell instances
type SpellBuilder struct {
	spell *deck.Spell
}

// NewSpellBuilder creates a new builder for a valid level 1 wizard spell
func NewSpellBuilder() *SpellBuilder {
	return &SpellBuilder{
		spell: &deck.Spell{
			Index:       "test-spell",
			Name:        "Test Spell",
			Level:       1,
			School:      "Evocation",
			Classes:     []string{"Wizard"},
			Desc:        []string{"A test effect."},
			Range:       "60 feet",
			Duration:    "Instantaneous",
			CastingTime: "1 action",
			Components:  []string{"V", "S"},
		},
	}
}

// WithName sets the name and derives the index from it
func (b *SpellBuilder) WithName(name string) *SpellBuilder {
	b.spell.Name = name
	b.spell.Index = slug(name)
	return b
}

// WithLevel sets the spell level
func (b *SpellBuilder) WithLevel(level int) *SpellBuilder {
	b.spell.Level = level
	return b
}

// WithSchool sets the school
func (b *SpellBuilder) WithSchool(school string) *SpellBuilder {
	b.spell.School = school
	return b
}

// WithClasses replaces the class list
func (b *SpellBuilder) WithClasses(classes ...string) *SpellBuilder {
	b.spell.Classes = classes
	return b
}

// WithDesc replaces the description paragraphs
func (b *SpellBuilder) WithDesc(paragraphs ...string) *SpellBuilder {
	b.spell.Desc = paragraphs
	return b
}

// Build returns a copy of the spell
func (b *SpellBuilder) Build() deck.Spell {
	out := *b.spell
	out.Classes = append([]string(nil), b.spell.Classes...)
	out.Desc = append([]string(nil), b.spell.Desc...)
	out.Components = append([]string(nil), b.spell.Components...)
	return out
}
