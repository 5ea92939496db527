// Package textproc holds the text preprocessing used ahead of sentiment
// scoring: code-mixed normalization and markdown stripping.
package textproc

import (
	"strings"
	"unicode"
)

// Normalize prepares raw code-mixed text for scoring: every character
// that is not a letter, digit, or whitespace becomes a space, runs of
// whitespace collapse to one, and the result is trimmed. Idempotent.
func Normalize(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}
