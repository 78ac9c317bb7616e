package tui

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"
)

var keyboardRows = [][]string{
	{"`", "1", "2", "3", "4", "5", "6", "7", "8", "9", "0", "-", "=", "Backspace"},
	{"Tab", "q", "w", "e", "r", "t", "y", "u", "i", "o", "p", "[", "]", "\\"},
	{"a", "s", "d", "f", "g", "h", "j", "k", "l", ";", "'", "Enter"},
	{"Shift", "z", "x", "c", "v", "b", "n", "m", ",", ".", "/", "Shift"},
	{"Space"},
}

const shiftedSymbols = "~!@#$%^&*()_+{}|:\"<>?"
const baseSymbols = "`1234567890-=[]\\;',./"

// keyCap maps a character to the key cap that produces it and whether Shift
// is needed.
func keyCap(r rune) (string, bool) {
	switch r {
	case '\n':
		return "Enter", false
	case '\t':
		return "Tab", false
	case ' ':
		return "Space", false
	}
	if unicode.IsUpper(r) {
		return string(unicode.ToLower(r)), true
	}
	if i := strings.IndexRune(shiftedSymbols, r); i >= 0 {
		return string([]rune(baseSymbols)[i]), true
	}
	return string(r), false
}

// pressedCap maps a bubbletea key string to a key cap.
func pressedCap(key string) string {
	switch key {
	case "enter":
		return "Enter"
	case "tab":
		return "Tab"
	case " ", "space":
		return "Space"
	case "backspace":
		return "Backspace"
	}
	runes := []rune(key)
	if len(runes) != 1 {
		return ""
	}
	kc, _ := keyCap(runes[0])
	return kc
}

func capLabel(kc string) string {
	if len([]rune(kc)) == 1 {
		return strings.ToUpper(kc)
	}
	return kc
}

// renderKeyboard draws a QWERTY panel with the expected key (and Shift when
// needed) and the last pressed key highlighted.
func renderKeyboard(expected rune, hasExpected bool, lastKey string) string {
	wantCap, wantShift := "", false
	if hasExpected {
		wantCap, wantShift = keyCap(expected)
	}
	lastCap := pressedCap(lastKey)

	rows := make([]string, 0, len(keyboardRows))
	for _, row := range keyboardRows {
		cells := make([]string, 0, len(row))
		for _, kc := range row {
			style := keyStyle
			switch {
			case kc == wantCap || (wantShift && kc == "Shift"):
				style = expectedKeyStyle
			case kc == lastCap:
				style = lastKeyStyle
			}
			label := capLabel(kc)
			if kc == "Space" {
				label = strings.Repeat(" ", 12) + "Space" + strings.Repeat(" ", 12)
			}
			cells = append(cells, style.Render(label))
		}
		rows = append(rows, strings.Join(cells, " "))
	}
	return lipgloss.JoinVertical(lipgloss.Center, rows...)
}
