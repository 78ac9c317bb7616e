package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/codetype/internal/render"
)

const (
	tabWidth   = 4
	missedMark = "•"
	breakMark  = "↵"
)

type styledRune struct {
	s       string
	width   int
	isSpace bool
	cursor  bool
}

func spanStyle(class render.Class, state render.CharState) lipgloss.Style {
	switch state {
	case render.Correct:
		if class == render.ClassPlain {
			return correctStyle
		}
		return lipgloss.NewStyle().Foreground(classColors[class])
	case render.Incorrect:
		return incorrectStyle
	}
	if class == render.ClassPlain {
		return pendingStyle
	}
	return lipgloss.NewStyle().Foreground(classColors[class]).Faint(true)
}

func styleSpan(sp render.Span) styledRune {
	style := spanStyle(sp.Class, sp.State)
	if sp.Pulse && sp.State == render.Correct {
		style = pulseStyle
	}
	if sp.Cursor {
		style = style.Underline(true)
	}

	text := string(sp.Rune)
	width := runewidth.RuneWidth(sp.Rune)
	isSpace := sp.Rune == ' ' || sp.Rune == '\t'
	if sp.Rune == '\t' {
		text = strings.Repeat(" ", tabWidth)
		width = tabWidth
	}
	if isSpace && sp.State == render.Incorrect {
		text = missedMark + text[1:]
	}
	return styledRune{
		s:       style.Render(text),
		width:   width,
		isSpace: isSpace,
		cursor:  sp.Cursor,
	}
}

// buildStyledLine styles one target line. The newline ending it shows up only
// when the cursor waits on it or when it was mistyped.
func buildStyledLine(line render.Line) []styledRune {
	out := make([]styledRune, 0, len(line.Spans)+1)
	for _, sp := range line.Spans {
		out = append(out, styleSpan(sp))
	}
	if !line.HasBreak {
		return out
	}
	switch {
	case line.EndCursor:
		out = append(out, styledRune{s: cursorStyle.Render(breakMark), width: 1, cursor: true})
	case line.Break == render.Incorrect:
		out = append(out, styledRune{s: incorrectStyle.Render(missedMark), width: 1})
	}
	return out
}

func renderStyledRunes(runes []styledRune) string {
	var b strings.Builder
	for _, item := range runes {
		b.WriteString(item.s)
	}
	return b.String()
}

// wrapRows splits a line into rows no wider than width, breaking after the
// last space that fits. Spaces stay on the row they end so every target rune
// remains visible.
func wrapRows(runes []styledRune, width int) [][]styledRune {
	if width <= 0 || lineWidthOf(runes) <= width {
		return [][]styledRune{runes}
	}
	var rows [][]styledRune
	line := make([]styledRune, 0, len(runes))
	lineWidth := 0
	lastSpaceIdx := -1

	for i := 0; i < len(runes); {
		item := runes[i]
		if lineWidth+item.width > width && len(line) > 0 {
			if lastSpaceIdx >= 0 && lastSpaceIdx < len(line)-1 {
				rows = append(rows, append([]styledRune{}, line[:lastSpaceIdx+1]...))
				line = append([]styledRune{}, line[lastSpaceIdx+1:]...)
			} else {
				rows = append(rows, line)
				line = make([]styledRune, 0, len(runes)-i)
			}
			lineWidth = lineWidthOf(line)
			lastSpaceIdx = lastSpaceIndex(line)
			continue
		}
		line = append(line, item)
		lineWidth += item.width
		if item.isSpace {
			lastSpaceIdx = len(line) - 1
		}
		i++
	}
	return append(rows, line)
}

// renderCode wraps every line to width and returns at most height rows,
// scrolled so the cursor row sits in the middle when possible.
func renderCode(lines []render.Line, width, height int) string {
	var rows []string
	cursorLine := render.CursorLine(lines)
	cursorRow := -1
	for i, line := range lines {
		wrapped := wrapRows(buildStyledLine(line), width)
		for _, row := range wrapped {
			if i == cursorLine && cursorRow < 0 && hasCursor(row) {
				cursorRow = len(rows)
			}
			rows = append(rows, renderStyledRunes(row))
		}
		if i == cursorLine && cursorRow < 0 {
			cursorRow = len(rows) - 1
		}
	}
	start, end := visibleWindow(len(rows), cursorRow, height)
	return strings.Join(rows[start:end], "\n")
}

func visibleWindow(total, cursorRow, height int) (int, int) {
	if height <= 0 || total <= height {
		return 0, total
	}
	start := cursorRow - height/2
	start = max(0, min(start, total-height))
	return start, start + height
}

func hasCursor(row []styledRune) bool {
	for _, item := range row {
		if item.cursor {
			return true
		}
	}
	return false
}

func lineWidthOf(line []styledRune) int {
	total := 0
	for _, item := range line {
		total += item.width
	}
	return total
}

func lastSpaceIndex(line []styledRune) int {
	for i := len(line) - 1; i >= 0; i-- {
		if line[i].isSpace {
			return i
		}
	}
	return -1
}
