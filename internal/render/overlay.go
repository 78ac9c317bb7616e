package render

import "github.com/verte-zerg/codetype/internal/game"

// CharState is the typing state of one target rune.
type CharState int

const (
	Pending CharState = iota
	Correct
	Incorrect
)

// Span is one target rune with everything needed to style it.
type Span struct {
	Rune   rune
	Index  int
	Class  Class
	State  CharState
	Cursor bool
	Pulse  bool
}

// Line is one target line. The newline ending it is not a span; its state
// and cursor flag live on the line.
type Line struct {
	Spans     []Span
	HasBreak  bool
	BreakAt   int
	Break     CharState
	EndCursor bool
}

// Diff is the read-only view of a session the overlay needs.
type Diff struct {
	Target   []rune
	Input    []rune
	Mistakes game.IndexSet
	Pulse    *game.Pulse
}

// DiffFromState builds a Diff for the given session and optional pulse.
func DiffFromState(s game.State, pulse *game.Pulse) Diff {
	return Diff{
		Target:   s.Target,
		Input:    s.Input,
		Mistakes: s.MistakeIndices,
		Pulse:    pulse,
	}
}

func (d Diff) stateAt(i int) CharState {
	if i >= len(d.Input) {
		return Pending
	}
	if d.Mistakes.Has(i) {
		return Incorrect
	}
	return Correct
}

// Cursor returns the offset of the next rune to type, or -1 when done.
func (d Diff) Cursor() int {
	if len(d.Input) < len(d.Target) {
		return len(d.Input)
	}
	return -1
}

// Overlay splits the target into lines of styled spans. classes is indexed by
// rune offset; missing entries are plain.
func Overlay(classes []Class, d Diff) []Line {
	cursor := d.Cursor()
	lines := make([]Line, 0, 16)
	var cur Line
	for i, r := range d.Target {
		state := d.stateAt(i)
		if r == '\n' {
			cur.HasBreak = true
			cur.BreakAt = i
			cur.Break = state
			cur.EndCursor = i == cursor
			lines = append(lines, cur)
			cur = Line{}
			continue
		}
		class := ClassPlain
		if i < len(classes) {
			class = classes[i]
		}
		cur.Spans = append(cur.Spans, Span{
			Rune:   r,
			Index:  i,
			Class:  class,
			State:  state,
			Cursor: i == cursor,
			Pulse:  d.Pulse != nil && d.Pulse.Contains(i),
		})
	}
	return append(lines, cur)
}

// CursorLine returns the index of the line holding the cursor, or the last
// line when the target is fully typed.
func CursorLine(lines []Line) int {
	for i, line := range lines {
		if line.EndCursor {
			return i
		}
		for _, span := range line.Spans {
			if span.Cursor {
				return i
			}
		}
	}
	return len(lines) - 1
}
