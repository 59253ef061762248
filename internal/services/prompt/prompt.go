// Package prompt builds image-generation prompts for spell cards.
package prompt

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const maxEffectLength = 200

var (
	diceExpr     = regexp.MustCompile(`(?i)\b\d*d\d+(\s*[+-]\s*\d+)?\b`)
	dcExpr       = regexp.MustCompile(`(?i)\bDC\s*\d+\b`)
	headerExpr   = regexp.MustCompile(`(?i)\b(range|duration|casting time|components|at higher levels|higher levels)\s*:\s*`)
	emptyParens  = regexp.MustCompile(`\(\s*[,;]?\s*\)`)
	spaceRun     = regexp.MustCompile(`\s+`)
	spaceBefore  = regexp.MustCompile(`\s+([,.;:!?])`)
	sentenceEnd  = regexp.MustCompile(`[.!?]+(\s+|$)`)
	secondPerson = regexp.MustCompile(`(?i)\b(you|your|yours|yourself)\b`)
)

var thirdPerson = []struct {
	pattern *regexp.Regexp
	replace string
}{
	{regexp.MustCompile(`\byou are\b`), "the caster is"},
	{regexp.MustCompile(`\bYou are\b`), "The caster is"},
	{regexp.MustCompile(`\byou have\b`), "the caster has"},
	{regexp.MustCompile(`\bYou have\b`), "The caster has"},
	{regexp.MustCompile(`\byourself\b`), "themselves"},
	{regexp.MustCompile(`\bYourself\b`), "Themselves"},
	{regexp.MustCompile(`\byours\b`), "the caster's"},
	{regexp.MustCompile(`\byour\b`), "the caster's"},
	{regexp.MustCompile(`\bYour\b`), "The caster's"},
	{regexp.MustCompile(`\byou\b`), "the caster"},
	{regexp.MustCompile(`\bYou\b`), "The caster"},
}

// Input carries everything that goes into one card's prompt
type Input struct {
	Title          string
	Description    string
	CharacterStyle string
	Suffix         string
}

// Build assembles the prompt: cinematic framing, the title, the extracted
// effect, an optional character descriptor and an optional free-text suffix.
func Build(in Input) string {
	parts := []string{
		"High-fantasy illustration of the spell \"" + strings.TrimSpace(in.Title) + "\".",
		"Painterly tabletop card art with dramatic cinematic lighting and a rich, detailed environment.",
	}

	if style := strings.TrimSpace(in.CharacterStyle); style != "" {
		parts = append(parts, "Depict a "+style+" in mid-cast.")
	} else {
		parts = append(parts, "No characters; focus on the visual effect of the spell.")
	}

	if effect := ExtractEffect(in.Description); effect != "" {
		parts = append(parts, "Show the core effect: "+effect)
	}

	if suffix := strings.TrimSpace(in.Suffix); suffix != "" {
		parts = append(parts, suffix)
	}

	parts = append(parts, "Sharp focus, dynamic composition, portrait 3:4.")

	return strings.Join(parts, " ")
}

// ExtractEffect reduces a card description to one short sentence about what
// the spell looks like. Dice expressions, DC numbers and section headers are
// removed. A sentence addressed to the caster is preferred and rewritten in
// the third person.
func ExtractEffect(description string) string {
	text := headerExpr.ReplaceAllString(description, "")
	text = diceExpr.ReplaceAllString(text, "")
	text = dcExpr.ReplaceAllString(text, "")
	text = emptyParens.ReplaceAllString(text, "")
	text = spaceRun.ReplaceAllString(text, " ")
	text = spaceBefore.ReplaceAllString(text, "$1")
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}

	sentences := splitSentences(text)
	chosen := sentences[0]
	for _, s := range sentences {
		if secondPerson.MatchString(s) {
			chosen = s
			break
		}
	}

	for _, rule := range thirdPerson {
		chosen = rule.pattern.ReplaceAllString(chosen, rule.replace)
	}

	return truncateWords(chosen, maxEffectLength)
}

func splitSentences(text string) []string {
	var out []string
	start := 0
	for _, loc := range sentenceEnd.FindAllStringIndex(text, -1) {
		if s := strings.TrimSpace(text[start:loc[1]]); s != "" {
			out = append(out, s)
		}
		start = loc[1]
	}
	if rest := strings.TrimSpace(text[start:]); rest != "" {
		out = append(out, rest+".")
	}
	return out
}

// truncateWords keeps at most limit runes, backing off to the last space
func truncateWords(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}

	end, n := 0, 0
	for i := range s {
		if n == limit {
			end = i
			break
		}
		n++
	}

	cut := s[:end]
	if i := strings.LastIndexByte(cut, ' '); i > 0 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, " ,;:") + "..."
}
