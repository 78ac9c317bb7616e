package game

import (
	"strings"
	"unicode/utf8"
)

// ExpectedKey names the key the user should press next.
func ExpectedKey(target, input []rune) string {
	if len(input) >= len(target) {
		return "Done"
	}
	return keyName(target[len(input)])
}

// KeyLabel formats a pressed key for display. Key names follow bubbletea's
// KeyMsg.String() convention.
func KeyLabel(key string) string {
	switch key {
	case " ", "space":
		return "Space"
	case "enter":
		return "Enter"
	case "tab":
		return "Tab"
	case "backspace":
		return "Backspace"
	case "shift":
		return "Shift"
	}
	if utf8.RuneCountInString(key) == 1 {
		return strings.ToUpper(key)
	}
	return key
}

func keyName(r rune) string {
	switch r {
	case '\n':
		return "Enter"
	case '\t':
		return "Tab"
	case ' ':
		return "Space"
	}
	return strings.ToUpper(string(r))
}
