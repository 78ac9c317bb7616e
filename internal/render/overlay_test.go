package render

import (
	"testing"
	"time"

	"github.com/verte-zerg/codetype/internal/curriculum"
	"github.com/verte-zerg/codetype/internal/game"
)

func TestOverlayStatesAndCursor(t *testing.T) {
	s := game.Start("ab\ncd").Submit("ax", time.Unix(0, 0))
	lines := Overlay(nil, DiffFromState(s, nil))
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	first := lines[0]
	if first.Spans[0].State != Correct || first.Spans[1].State != Incorrect {
		t.Fatalf("unexpected states: %+v", first.Spans)
	}
	if !first.HasBreak || first.BreakAt != 2 || first.Break != Pending {
		t.Fatalf("unexpected line break: %+v", first)
	}
	if !first.EndCursor {
		t.Fatalf("expected cursor on the newline at end of first line")
	}
	if lines[1].Spans[0].Cursor || lines[1].HasBreak {
		t.Fatalf("unexpected cursor or break on second line: %+v", lines[1])
	}
	if CursorLine(lines) != 0 {
		t.Fatalf("expected cursor on line 0")
	}
}

func TestOverlayMistypedNewline(t *testing.T) {
	s := game.Start("a\nb").Submit("a ", time.Unix(0, 0))
	lines := Overlay(nil, DiffFromState(s, nil))
	if lines[0].Break != Incorrect {
		t.Fatalf("expected mistyped newline to be incorrect")
	}
	if !lines[1].Spans[0].Cursor {
		t.Fatalf("expected cursor at start of second line")
	}
	if CursorLine(lines) != 1 {
		t.Fatalf("expected cursor on line 1")
	}
}

func TestOverlayNoCursorWhenDone(t *testing.T) {
	s := game.Start("ab").Submit("ab", time.Unix(0, 0))
	d := DiffFromState(s, nil)
	if d.Cursor() != -1 {
		t.Fatalf("expected no cursor when complete")
	}
	for _, span := range Overlay(nil, d)[0].Spans {
		if span.Cursor {
			t.Fatalf("unexpected cursor span %+v", span)
		}
	}
}

func TestOverlayPulseAndClasses(t *testing.T) {
	s := game.Start("let x").Submit("let ", time.Unix(0, 0))
	pulse := &game.Pulse{Start: 0, End: 2, ID: 1}
	classes := []Class{ClassKeyword, ClassKeyword, ClassKeyword}
	spans := Overlay(classes, DiffFromState(s, pulse))[0].Spans
	for i := 0; i < 3; i++ {
		if !spans[i].Pulse || spans[i].Class != ClassKeyword {
			t.Fatalf("expected pulsed keyword at %d: %+v", i, spans[i])
		}
	}
	if spans[3].Pulse || spans[4].Class != ClassPlain {
		t.Fatalf("unexpected pulse/class outside range: %+v", spans[3:])
	}
}

func TestHighlightCoversEveryRune(t *testing.T) {
	code := "function add(a: number, b: number): number {\n  // sum\n  return a + b;\n}"
	classes := Highlight(code, curriculum.TypeScript)
	if len(classes) != len([]rune(code)) {
		t.Fatalf("expected %d classes, got %d", len([]rune(code)), len(classes))
	}
	if classes[0] != ClassKeyword {
		t.Fatalf("expected 'function' to be a keyword, got %v", classes[0])
	}
	found := false
	for _, c := range classes {
		if c == ClassComment {
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("expected a comment class in highlighted code")
	}
}

func TestHighlightUnknownLanguage(t *testing.T) {
	classes := Highlight("x := 1", curriculum.Language("brainfork"))
	for _, c := range classes {
		if c != ClassPlain {
			t.Fatalf("expected plain classes for unknown language")
		}
	}
}

func TestProjectClassesOntoLinearText(t *testing.T) {
	code := "a  +\n  b"
	classes := []Class{ClassKeyword, ClassPlain, ClassPlain, ClassOperator, ClassPlain, ClassPlain, ClassPlain, ClassNumber}
	got := ProjectClasses(code, classes, "a + b")
	want := []Class{ClassKeyword, ClassPlain, ClassOperator, ClassPlain, ClassNumber}
	if len(got) != len(want) {
		t.Fatalf("expected %d classes, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("index %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}
