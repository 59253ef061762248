// Package logging builds the slog logger used by every command.
package logging

import (
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/log"
)

// Options controls the handler behind the returned logger
type Options struct {
	// Level is one of debug, info, warn, error. Empty means info.
	Level string
	// Format is one of text, json, logfmt. Empty means text.
	Format string
	// ReportTimestamp prefixes each line with the time
	ReportTimestamp bool
	// Prefix is printed before every message
	Prefix string
}

// New returns a slog.Logger writing through a charmbracelet/log handler.
// Unknown levels fall back to info.
func New(w io.Writer, opts Options) *slog.Logger {
	level, err := log.ParseLevel(strings.ToLower(opts.Level))
	if err != nil || opts.Level == "" {
		level = log.InfoLevel
	}

	handler := log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: opts.ReportTimestamp,
		Prefix:          opts.Prefix,
		Formatter:       formatter(opts.Format),
	})

	return slog.New(handler)
}

// Discard returns a logger that drops everything, for tests
func Discard() *slog.Logger {
	return New(io.Discard, Options{Level: "error"})
}

func formatter(format string) log.Formatter {
	switch strings.ToLower(format) {
	case "json":
		return log.JSONFormatter
	case "logfmt":
		return log.LogfmtFormatter
	default:
		return log.TextFormatter
	}
}
