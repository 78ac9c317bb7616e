package game

import "strings"

// Enter decides what pressing Enter appends to input. In linear mode it types
// the expected space, if any. Otherwise it completes the rest of the current
// line when that rest is whitespace only, then the newline and the next line's
// indentation. ok is false when the keystroke must be ignored.
func Enter(target, input []rune, linear bool) (string, bool) {
	cursor := len(input)
	if cursor >= len(target) {
		return "", false
	}
	if linear {
		if target[cursor] != ' ' {
			return "", false
		}
		return string(input) + " ", true
	}

	newline := indexRune(target, '\n', cursor)
	if newline == -1 {
		return "", false
	}

	lead := ""
	if target[cursor] != '\n' {
		remainder := string(target[cursor:newline])
		if strings.TrimSpace(remainder) != "" {
			return "", false
		}
		lead = remainder
	}

	nextLineStart := newline + 1
	if nextLineStart >= len(target) {
		return string(input) + lead + "\n", true
	}
	return string(input) + lead + "\n" + leadingIndent(target[nextLineStart:]), true
}

func indexRune(runes []rune, r rune, from int) int {
	for i := from; i < len(runes); i++ {
		if runes[i] == r {
			return i
		}
	}
	return -1
}

func leadingIndent(line []rune) string {
	end := 0
	for end < len(line) && (line[end] == ' ' || line[end] == '\t') {
		end++
	}
	return string(line[:end])
}
