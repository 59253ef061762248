// Package summarize shortens card descriptions to fit a card face, with an
// optional language model and a truncation fallback.
package summarize

import (
	"context"
	"log/slog"
	"unicode/utf8"

	"github.com/KirkDiggler/deck-forge/internal/errors"
	"github.com/KirkDiggler/deck-forge/internal/repositories/deckfile"
)

// DefaultMaxLength is the card-face description budget
const DefaultMaxLength = 300

// Config holds the dependencies for the service
type Config struct {
	// Summarizer is optional; without one every long text is truncated
	Summarizer Summarizer
	Decks      deckfile.Repository
	Logger     *slog.Logger
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}
	vb := errors.NewValidationBuilder()
	if c.Decks == nil {
		vb.RequiredField("decks")
	}
	return vb.Build()
}

// Service rewrites deck descriptions
type Service struct {
	summarizer Summarizer
	decks      deckfile.Repository
	logger     *slog.Logger
}

// New creates a summarize service
func New(cfg *Config) (*Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Service{
		summarizer: cfg.Summarizer,
		decks:      cfg.Decks,
		logger:     logger,
	}, nil
}

// Method records how a description was produced
type Method string

const (
	MethodUnchanged Method = "unchanged"
	MethodModel     Method = "model"
	MethodTruncated Method = "truncated"
)

// TextInput is one description to shorten
type TextInput struct {
	Text      string
	MaxLength int
}

// TextOutput is the shortened description
type TextOutput struct {
	Text   string
	Method Method
}

// SummarizeText fits one description within MaxLength. A model failure or
// an over-long model answer falls back to truncation.
func (s *Service) SummarizeText(ctx context.Context, input *TextInput) (*TextOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.MaxLength < 1 {
		return nil, errors.InvalidArgumentf("max length must be positive, got %d", input.MaxLength)
	}

	if utf8.RuneCountInString(input.Text) <= input.MaxLength {
		return &TextOutput{Text: input.Text, Method: MethodUnchanged}, nil
	}

	if s.summarizer != nil {
		summary, err := s.summarizer.Summarize(ctx, input.Text, input.MaxLength)
		switch {
		case err != nil:
			s.logger.Warn("Summary failed, truncating instead", "error", err)
		case utf8.RuneCountInString(summary) > input.MaxLength:
			s.logger.Warn("Summary over the limit, truncating instead",
				"length", utf8.RuneCountInString(summary), "max_length", input.MaxLength)
		default:
			return &TextOutput{Text: summary, Method: MethodModel}, nil
		}
	}

	return &TextOutput{Text: Truncate(input.Text, input.MaxLength), Method: MethodTruncated}, nil
}

// DeckInput names the deck to rewrite
type DeckInput struct {
	Path      string
	MaxLength int
}

// DeckOutput counts how each card was handled
type DeckOutput struct {
	Path      string
	Unchanged int
	Model     int
	Truncated int
}

// SummarizeDeck rewrites every card description in a deck file and saves it
func (s *Service) SummarizeDeck(ctx context.Context, input *DeckInput) (*DeckOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	loaded, err := s.decks.Load(ctx, deckfile.LoadInput{Path: input.Path})
	if err != nil {
		return nil, err
	}
	if len(loaded.Deck.Cards) == 0 {
		return nil, errors.EmptyResultf("no cards found in deck %s", input.Path)
	}

	out := &DeckOutput{Path: input.Path}
	for i := range loaded.Deck.Cards {
		card := &loaded.Deck.Cards[i]

		res, err := s.SummarizeText(ctx, &TextInput{Text: card.Description, MaxLength: input.MaxLength})
		if err != nil {
			return nil, err
		}

		s.count(out, res.Method)
		if res.Method != MethodUnchanged {
			s.logger.Info("Summarized card", "card", card.Title, "method", res.Method)
		}
		card.Description = res.Text
	}

	if _, err := s.decks.Save(ctx, deckfile.SaveInput{Path: input.Path, Deck: loaded.Deck}); err != nil {
		return nil, err
	}

	return out, nil
}

func (s *Service) count(out *DeckOutput, m Method) {
	switch m {
	case MethodModel:
		out.Model++
	case MethodTruncated:
		out.Truncated++
	default:
		out.Unchanged++
	}
}
