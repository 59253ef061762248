package conversion

import (
	"strings"
	"unicode"
)

// TitleCase upper-cases the first letter of every word and lower-cases the
// rest. A letter after an apostrophe stays lower ("Tasha's").
func TitleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	prev := ' '
	for _, r := range strings.TrimSpace(s) {
		switch {
		case !unicode.IsLetter(r):
			b.WriteRune(r)
		case prev == '\'' || prev == '’':
			b.WriteRune(unicode.ToLower(r))
		case unicode.IsLetter(prev) || unicode.IsDigit(prev):
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(unicode.ToUpper(r))
		}
		prev = r
	}

	return b.String()
}
