package summarize

import (
	"strings"
	"unicode/utf8"
)

const ellipsis = "..."

// Truncate cuts text to at most maxLength characters. Text already within
// the limit is returned unchanged; longer text keeps its first maxLength-3
// characters, right-trimmed, followed by "...".
func Truncate(text string, maxLength int) string {
	if utf8.RuneCountInString(text) <= maxLength {
		return text
	}
	if maxLength <= len(ellipsis) {
		return string([]rune(text)[:maxLength])
	}

	runes := []rune(text)
	head := strings.TrimRight(string(runes[:maxLength-len(ellipsis)]), " \t\n")
	return head + ellipsis
}
