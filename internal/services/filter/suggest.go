package filter

import (
	"sort"

	"github.com/sahilm/fuzzy"

	"github.com/KirkDiggler/deck-forge/internal/entities/deck"
)

const maxSuggestions = 3

// Suggestion offers known values close to a requested filter value that
// matched nothing in the spell list.
type Suggestion struct {
	Axis       string
	Requested  string
	DidYouMean []string
}

// Suggest looks for class and school values in spec that no spell carries
// and fuzzy-matches them against the values that do exist.
func Suggest(spells []deck.Spell, spec deck.FilterSpec) []Suggestion {
	knownClasses := map[string]struct{}{}
	knownSchools := map[string]struct{}{}
	for i := range spells {
		for _, c := range spells[i].Classes {
			knownClasses[normalize(c)] = struct{}{}
		}
		knownSchools[normalize(spells[i].School)] = struct{}{}
	}

	var out []Suggestion
	out = append(out, suggestAxis("class", spec.Classes, knownClasses)...)
	out = append(out, suggestAxis("school", spec.Schools, knownSchools)...)
	return out
}

func suggestAxis(axis string, requested, known map[string]struct{}) []Suggestion {
	candidates := sortedKeys(known)

	var out []Suggestion
	for _, value := range sortedKeys(requested) {
		if _, ok := known[value]; ok {
			continue
		}

		s := Suggestion{Axis: axis, Requested: value}
		for _, m := range fuzzy.Find(value, candidates) {
			s.DidYouMean = append(s.DidYouMean, m.Str)
			if len(s.DidYouMean) == maxSuggestions {
				break
			}
		}
		out = append(out, s)
	}
	return out
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		if k != "" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}
