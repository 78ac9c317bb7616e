package game

import "unicode"

// Pulse marks a word that was just completed without mistakes. End is
// inclusive. ID increases with every pulse so stale clear timers can be told
// apart from the current one.
type Pulse struct {
	Start int
	End   int
	ID    int
}

// Contains reports whether offset i lies inside the pulse span.
func (p Pulse) Contains(i int) bool {
	return i >= p.Start && i <= p.End
}

// NextPulse inspects the transition from prev to next and returns a new pulse
// when the appended text finished a correctly typed word. Deletions and
// unchanged input never pulse.
func NextPulse(target, prev, next []rune, last Pulse) (Pulse, bool) {
	if len(target) == 0 || len(next) <= len(prev) {
		return last, false
	}

	added := next[len(prev):]
	boundary := len(next) - 1
	boundaryRune := next[boundary]
	if offset := indexRune(added, '\n', 0); offset >= 0 {
		boundary = len(prev) + offset
		boundaryRune = '\n'
	}

	if boundary >= len(target) || target[boundary] != boundaryRune {
		return last, false
	}
	if boundaryRune != ' ' && boundaryRune != '\n' {
		return last, false
	}
	if boundaryRune == ' ' && boundary > 0 && unicode.IsSpace(target[boundary-1]) {
		return last, false
	}

	cursor := boundary - 1
	for cursor >= 0 && unicode.IsSpace(target[cursor]) {
		cursor--
	}
	if cursor < 0 {
		return last, false
	}
	end := cursor
	for cursor >= 0 && !unicode.IsSpace(target[cursor]) {
		cursor--
	}
	start := cursor + 1

	if string(target[start:end+1]) != string(next[start:end+1]) {
		return last, false
	}
	return Pulse{Start: start, End: end, ID: last.ID + 1}, true
}
