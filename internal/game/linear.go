package game

import (
	"strings"
	"unicode"
)

// Linearize collapses every whitespace run to a single space and trims the
// ends, producing the single-line target used in linear mode.
func Linearize(code string) string {
	return strings.Join(strings.Fields(code), " ")
}

// NormalizeInput collapses whitespace runs in typed text to single spaces when
// linear mode is on. Leading and trailing whitespace is kept so a typed space
// is never lost.
func NormalizeInput(s string, linear bool) string {
	if !linear {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	inSpace := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			if !inSpace {
				b.WriteByte(' ')
			}
			inSpace = true
			continue
		}
		inSpace = false
		b.WriteRune(r)
	}
	return b.String()
}
