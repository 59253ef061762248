// Package srd is the location for the dnd5e-api spell client
package srd

//go:generate mockgen -destination=mock/mock_client.go -package=srdmock github.com/KirkDiggler/deck-forge/internal/clients/srd Client

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/fadedpez/dnd5e-api/clients/dnd5e"
	"github.com/fadedpez/dnd5e-api/entities"

	"github.com/KirkDiggler/deck-forge/internal/entities/deck"
	"github.com/KirkDiggler/deck-forge/internal/errors"
)

const (
	DefaultBaseURL     = "https://www.dnd5eapi.co/api/2014/"
	defaultHTTPTimeout = 30 * time.Second
	defaultCacheTTL    = 24 * time.Hour
)

// Reference identifies one spell in the API listing
type Reference struct {
	Index string
	Name  string
}

// Client defines the spell lookups the fetch pipeline needs
type Client interface {
	// ListSpells returns every spell reference in API order
	ListSpells(ctx context.Context) ([]Reference, error)

	// GetSpell fetches one spell and maps it to the raw spell shape
	GetSpell(ctx context.Context, index string) (*deck.Spell, error)
}

// SpellAPI is the slice of the dnd5e-api client this package calls
type SpellAPI interface {
	ListSpells(input *dnd5e.ListSpellsInput) ([]*entities.ReferenceItem, error)
	GetSpell(key string) (*entities.Spell, error)
}

// Config contains configuration options for the SRD client.
type Config struct {
	// BaseURL for the D&D 5e API (optional, defaults to DefaultBaseURL)
	BaseURL string
	// HTTPTimeout for API requests (optional, defaults to 30 seconds)
	HTTPTimeout time.Duration
	// CacheTTL for the in-process cached client (optional, defaults to 24 hours)
	CacheTTL time.Duration
	// API overrides the dnd5e-api client, mainly for tests
	API SpellAPI
	// Text reads desc and components from the spell detail document.
	// Built over the same HTTP client when API is not overridden.
	Text   TextSource
	Logger *slog.Logger
}

// Validate validates the Config and sets defaults if not provided.
func (cfg *Config) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.HTTPTimeout == 0 {
		cfg.HTTPTimeout = defaultHTTPTimeout
	}
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = defaultCacheTTL
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return nil
}

type client struct {
	api    SpellAPI
	text   TextSource
	logger *slog.Logger
}

// New creates a new SRD client with the given configuration.
func New(cfg *Config) (Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	api := cfg.API
	text := cfg.Text
	if api == nil {
		httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
		baseClient, err := dnd5e.NewDND5eAPI(&dnd5e.DND5eAPIConfig{
			Client:  httpClient,
			BaseURL: cfg.BaseURL,
		})
		if err != nil {
			return nil, errors.Wrap(err, "failed to create D&D 5e API client")
		}
		api = dnd5e.NewCachedClient(baseClient, cfg.CacheTTL)

		if text == nil {
			text, err = NewHTTPTextSource(&HTTPTextSourceConfig{
				BaseURL: cfg.BaseURL,
				Client:  httpClient,
			})
			if err != nil {
				return nil, err
			}
		}
	}

	return &client{
		api:    api,
		text:   text,
		logger: cfg.Logger,
	}, nil
}

func (c *client) ListSpells(ctx context.Context) ([]Reference, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeCanceled, "list spells canceled")
	}

	c.logger.Info("Calling D&D 5e API to list spells")
	refs, err := c.api.ListSpells(&dnd5e.ListSpellsInput{})
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to list spells from D&D 5e API")
	}

	out := make([]Reference, 0, len(refs))
	for _, ref := range refs {
		if ref == nil || ref.Key == "" {
			continue
		}
		out = append(out, Reference{Index: ref.Key, Name: ref.Name})
	}
	c.logger.Info("Got spell references", "count", len(out))

	return out, nil
}

func (c *client) GetSpell(ctx context.Context, index string) (*deck.Spell, error) {
	if index == "" {
		return nil, errors.InvalidArgument("spell index is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeCanceled, "get spell canceled")
	}

	spell, err := c.api.GetSpell(index)
	if err != nil {
		return nil, errors.WrapWithCodef(err, errors.CodeUnavailable, "failed to get spell %s", index)
	}
	if spell == nil {
		return nil, errors.NotFoundf("spell %s not found", index)
	}

	text, err := c.spellText(ctx, index)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("Loaded spell details", "spell", spell.Name, "index", index)
	return convertSpell(index, spell, text), nil
}

// spellText returns nil when no source is configured or the document is missing
func (c *client) spellText(ctx context.Context, index string) (*SpellText, error) {
	if c.text == nil {
		return nil, nil
	}

	text, err := c.text.SpellText(ctx, index)
	switch {
	case err == nil:
		return text, nil
	case errors.IsNotFound(err):
		c.logger.Warn("Spell detail document missing, using structured fields", "index", index)
		return nil, nil
	case errors.IsCanceled(err), errors.IsUnavailable(err):
		return nil, err
	default:
		return nil, errors.WrapWithCodef(err, errors.CodeUnavailable, "failed to get text for spell %s", index)
	}
}
