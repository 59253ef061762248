package srd

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/KirkDiggler/deck-forge/internal/errors"
)

const higherLevelPrefix = "At Higher Levels. "

// SpellText holds the detail fields the dnd5e-api entity does not carry
type SpellText struct {
	Desc        []string `json:"desc"`
	HigherLevel []string `json:"higher_level"`
	Components  []string `json:"components"`
}

// Paragraphs returns the rules text with the upcast paragraphs appended
func (t *SpellText) Paragraphs() []string {
	out := make([]string, 0, len(t.Desc)+len(t.HigherLevel))
	for _, p := range t.Desc {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	first := true
	for _, p := range t.HigherLevel {
		if strings.TrimSpace(p) == "" {
			continue
		}
		if first {
			p = higherLevelPrefix + p
			first = false
		}
		out = append(out, p)
	}
	return out
}

// TextSource loads the rules text and components for one spell
type TextSource interface {
	SpellText(ctx context.Context, index string) (*SpellText, error)
}

// HTTPTextSourceConfig configures the spell detail document reader
type HTTPTextSourceConfig struct {
	BaseURL string
	Client  *http.Client
}

type httpTextSource struct {
	baseURL string
	client  *http.Client
}

// NewHTTPTextSource reads <BaseURL>spells/<index> and decodes the text fields
func NewHTTPTextSource(cfg *HTTPTextSourceConfig) (TextSource, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}

	vb := errors.NewValidationBuilder()
	if cfg.BaseURL == "" {
		vb.RequiredField("BaseURL")
	}
	if cfg.Client == nil {
		vb.RequiredField("Client")
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	baseURL := cfg.BaseURL
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	return &httpTextSource{baseURL: baseURL, client: cfg.Client}, nil
}

func (s *httpTextSource) SpellText(ctx context.Context, index string) (*SpellText, error) {
	if index == "" {
		return nil, errors.InvalidArgument("spell index is required")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"spells/"+index, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to build request for spell %s", index)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, errors.WrapWithCode(ctx.Err(), errors.CodeCanceled, "spell text request canceled")
		}
		return nil, errors.WrapWithCodef(err, errors.CodeUnavailable, "failed to get text for spell %s", index)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, errors.NotFoundf("spell %s text not found", index)
	case resp.StatusCode != http.StatusOK:
		return nil, errors.Unavailablef("spell text request for %s returned %d", index, resp.StatusCode).
			WithMeta("status", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.WrapWithCodef(err, errors.CodeUnavailable, "failed to read text for spell %s", index)
	}

	var text SpellText
	if err := json.Unmarshal(body, &text); err != nil {
		return nil, errors.WrapWithCodef(err, errors.CodeMalformedRecord, "spell %s detail is not valid JSON", index)
	}

	return &text, nil
}
