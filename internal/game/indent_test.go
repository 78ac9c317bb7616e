package game

import "testing"

const braceSnippet = "if (x) {\n  y();\n}"

func TestEnterAppendsNextLineIndent(t *testing.T) {
	got, ok := Enter([]rune(braceSnippet), []rune("if (x) {"), false)
	if !ok {
		t.Fatalf("expected enter to be accepted at end of line")
	}
	if got != "if (x) {\n  " {
		t.Fatalf("unexpected input after enter: %q", got)
	}
}

func TestEnterRejectedMidLine(t *testing.T) {
	if _, ok := Enter([]rune(braceSnippet), []rune("if (x"), false); ok {
		t.Fatalf("expected enter to be rejected with content left on the line")
	}
	if _, ok := Enter([]rune(braceSnippet), []rune("if (x) {\n"), false); ok {
		t.Fatalf("expected enter to be rejected before typing the indented line")
	}
}

func TestEnterCompletesTrailingWhitespace(t *testing.T) {
	target := []rune("a = 1;   \n\tb = 2;")
	got, ok := Enter(target, []rune("a = 1;"), false)
	if !ok {
		t.Fatalf("expected enter to skip trailing whitespace")
	}
	if got != "a = 1;   \n\t" {
		t.Fatalf("unexpected input after enter: %q", got)
	}
}

func TestEnterLastNewline(t *testing.T) {
	got, ok := Enter([]rune("end\n"), []rune("end"), false)
	if !ok || got != "end\n" {
		t.Fatalf("expected bare newline at end of target, got %q ok=%v", got, ok)
	}
}

func TestEnterWithoutNewline(t *testing.T) {
	if _, ok := Enter([]rune("one line"), []rune("one"), false); ok {
		t.Fatalf("expected enter to be rejected without a following newline")
	}
	if _, ok := Enter([]rune("ab\n"), []rune("ab\n"), false); ok {
		t.Fatalf("expected enter to be rejected at end of target")
	}
}

func TestEnterEmptyNextLine(t *testing.T) {
	got, ok := Enter([]rune("a\n\nb"), []rune("a"), false)
	if !ok || got != "a\n" {
		t.Fatalf("expected newline without indent before blank line, got %q ok=%v", got, ok)
	}
}

func TestEnterLinearMode(t *testing.T) {
	target := []rune("if (x) { y(); }")
	got, ok := Enter(target, []rune("if"), true)
	if !ok || got != "if " {
		t.Fatalf("expected space in linear mode, got %q ok=%v", got, ok)
	}
	if _, ok := Enter(target, []rune("i"), true); ok {
		t.Fatalf("expected enter to be ignored when next rune is not a space")
	}
}

func TestLinearize(t *testing.T) {
	got := Linearize("  if (x) {\n\t\ty();\n}  ")
	if got != "if (x) { y(); }" {
		t.Fatalf("unexpected linearized text: %q", got)
	}
}

func TestNormalizeInput(t *testing.T) {
	if got := NormalizeInput("a\n\t b ", true); got != "a b " {
		t.Fatalf("unexpected normalized input: %q", got)
	}
	if got := NormalizeInput("a\n\t b", false); got != "a\n\t b" {
		t.Fatalf("expected input untouched outside linear mode, got %q", got)
	}
}
