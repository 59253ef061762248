package summarize

import (
	"context"
)

//go:generate mockgen -destination=mock/mock_summarizer.go -package=summarizemock github.com/KirkDiggler/deck-forge/internal/services/summarize Summarizer

// Summarizer shortens card text
type Summarizer interface {
	// Summarize returns text rewritten to at most maxLength characters.
	// Implementations may return longer text; callers enforce the limit.
	Summarize(ctx context.Context, text string, maxLength int) (string, error)
}
