package builders

import (
	"strings"

	"github.com/KirkDiggler/deck-forge/internal/entities/deck"
)

// CardBuilder provides a fluent interface for building test Card instances
type CardBuilder struct {
	card *deck.Card
}

// NewCardBuilder creates a new builder with renderable defaults and no art
func NewCardBuilder() *CardBuilder {
	return &CardBuilder{
		card: &deck.Card{
			Title:       "Test Spell",
			Level:       1,
			School:      "Evocation",
			Description: "A test effect.",
			CastingTime: "1 action",
			Duration:    "Instantaneous",
			Range:       "60 feet",
			Components:  []string{"V", "S"},
			Source:      deck.Source,
		},
	}
}

// WithTitle sets the card title
func (b *CardBuilder) WithTitle(title string) *CardBuilder {
	b.card.Title = title
	return b
}

// WithDescription sets the card description
func (b *CardBuilder) WithDescription(description string) *CardBuilder {
	b.card.Description = description
	return b
}

// WithArtURL sets the current art reference without a version entry
func (b *CardBuilder) WithArtURL(url string) *CardBuilder {
	b.card.ArtURL = url
	return b
}

// WithArtVersion appends a version entry and moves the current pointer to it
func (b *CardBuilder) WithArtVersion(tag, path, prompt string) *CardBuilder {
	b.card.AddArtVersion(deck.ArtVersion{Tag: tag, Path: path, Prompt: prompt})
	return b
}

// Build returns a copy of the card
func (b *CardBuilder) Build() deck.Card {
	out := *b.card
	out.Components = append([]string(nil), b.card.Components...)
	out.ArtVersions = append([]deck.ArtVersion(nil), b.card.ArtVersions...)
	return out
}

func slug(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "-")
}
