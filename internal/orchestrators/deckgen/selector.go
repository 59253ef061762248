package deckgen

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"

	"github.com/KirkDiggler/deck-forge/internal/errors"
)

//go:generate mockgen -destination=mock/mock_selector.go -package=deckgenmock github.com/KirkDiggler/deck-forge/internal/orchestrators/deckgen Selector

// Selector asks the user which of the listed spells to keep and returns
// the raw reply.
type Selector interface {
	Prompt(ctx context.Context, choices []string) (string, error)
}

// ReadlineSelectorConfig configures the terminal selector. Nil streams use
// the process stdin and stdout.
type ReadlineSelectorConfig struct {
	Stdin  io.ReadCloser
	Stdout io.Writer
}

type readlineSelector struct {
	stdin  io.ReadCloser
	stdout io.Writer
}

// NewReadlineSelector returns a Selector that prints the numbered choices
// and reads one line.
func NewReadlineSelector(cfg *ReadlineSelectorConfig) Selector {
	s := &readlineSelector{}
	if cfg != nil {
		s.stdin = cfg.Stdin
		s.stdout = cfg.Stdout
	}
	return s
}

func (s *readlineSelector) Prompt(ctx context.Context, choices []string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", errors.Canceled("selection canceled")
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "Select spells (e.g. 1,3,5; empty keeps all): ",
		InterruptPrompt: "^C",
		Stdin:           s.stdin,
		Stdout:          s.stdout,
	})
	if err != nil {
		return "", errors.Wrap(err, "failed to open prompt")
	}
	defer rl.Close()

	for i, choice := range choices {
		_, _ = fmt.Fprintf(rl.Stdout(), "%3d. %s\n", i+1, choice)
	}

	line, err := rl.Readline()
	switch {
	case err == readline.ErrInterrupt:
		return "", errors.Canceled("selection interrupted")
	case err == io.EOF:
		return "", nil
	case err != nil:
		return "", errors.Wrap(err, "failed to read selection")
	}
	return line, nil
}

// ParseSelection turns a reply like "1, 3,5" into 0-based indexes into a
// list of n items. Blank input selects everything. Any token that is not
// an integer in 1..n fails the whole selection.
func ParseSelection(line string, n int) ([]int, error) {
	if strings.TrimSpace(line) == "" {
		all := make([]int, n)
		for i := range all {
			all[i] = i
		}
		return all, nil
	}

	seen := make(map[int]bool)
	var picked []int
	for _, token := range strings.Split(line, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}

		idx, err := strconv.Atoi(token)
		if err != nil {
			return nil, errors.InvalidArgumentf("invalid selection %q: expected comma-separated numbers", token).
				WithMeta("token", token)
		}
		if idx < 1 || idx > n {
			return nil, errors.InvalidArgumentf("selection %d is out of range 1..%d", idx, n).
				WithMeta("token", token)
		}
		if seen[idx] {
			continue
		}
		seen[idx] = true
		picked = append(picked, idx-1)
	}
	return picked, nil
}
