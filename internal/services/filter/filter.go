// Package filter parses class, level and school criteria and selects the
// spells that satisfy them.
//
// Matching is OR within an axis and AND across axes. An axis with no values
// does not filter. Selection always preserves the source order.
package filter

import (
	"strconv"
	"strings"

	"github.com/KirkDiggler/deck-forge/internal/entities/deck"
	"github.com/KirkDiggler/deck-forge/internal/errors"
)

// Parse builds a FilterSpec from comma separated criteria. Empty strings
// leave the axis unfiltered. A level token that is not an integer fails
// the whole parse.
func Parse(classes, levels, schools string) (deck.FilterSpec, error) {
	spec := deck.FilterSpec{
		Classes: tokenSet(classes),
		Schools: tokenSet(schools),
		Levels:  map[int]struct{}{},
	}

	for token := range tokenSet(levels) {
		level, err := strconv.Atoi(token)
		if err != nil {
			return deck.FilterSpec{}, errors.InvalidArgumentf("level filter %q is not an integer", token).
				WithMeta("token", token)
		}
		spec.Levels[level] = struct{}{}
	}

	return spec, nil
}

// Matches reports whether spell satisfies every non-empty axis of spec
func Matches(spell *deck.Spell, spec deck.FilterSpec) bool {
	if spell == nil {
		return false
	}

	if len(spec.Classes) > 0 && !anyIn(spell.Classes, spec.Classes) {
		return false
	}

	if len(spec.Levels) > 0 {
		if _, ok := spec.Levels[spell.Level]; !ok {
			return false
		}
	}

	if len(spec.Schools) > 0 {
		if _, ok := spec.Schools[normalize(spell.School)]; !ok {
			return false
		}
	}

	return true
}

// Apply returns the matching spells in their original order
func Apply(spells []deck.Spell, spec deck.FilterSpec) []deck.Spell {
	out := make([]deck.Spell, 0, len(spells))
	for i := range spells {
		if Matches(&spells[i], spec) {
			out = append(out, spells[i])
		}
	}
	return out
}

func anyIn(values []string, set map[string]struct{}) bool {
	for _, v := range values {
		if _, ok := set[normalize(v)]; ok {
			return true
		}
	}
	return false
}

func tokenSet(raw string) map[string]struct{} {
	set := map[string]struct{}{}
	for _, part := range strings.Split(raw, ",") {
		if token := normalize(part); token != "" {
			set[token] = struct{}{}
		}
	}
	return set
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
