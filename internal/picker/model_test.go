package picker

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/verte-zerg/codetype/internal/curriculum"
)

func newTestPicker(t *testing.T, best map[string]int) *Model {
	t.Helper()
	catalog, err := curriculum.Builtin()
	if err != nil {
		t.Fatalf("failed to load curriculum: %v", err)
	}
	m := New(catalog, curriculum.Python, best, zerolog.Nop())
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	return m
}

func typeText(m *Model, s string) {
	for _, r := range s {
		if r == ' ' {
			m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
			continue
		}
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestSearchNarrowsEntries(t *testing.T) {
	m := newTestPicker(t, nil)
	typeText(m, "binary search")
	if len(m.entries) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(m.entries))
	}
	if m.entries[0].ID != "binary-search" {
		t.Fatalf("expected binary-search first, got %s", m.entries[0].ID)
	}
}

func TestEnterSelectsHighlighted(t *testing.T) {
	m := newTestPicker(t, nil)
	typeText(m, "binary search")
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	entry, ok := m.Selected()
	if !ok || entry.ID != "binary-search-tree" {
		t.Fatalf("expected binary-search-tree, got %q (ok=%v)", entry.ID, ok)
	}
}

func TestQuitWithoutSelection(t *testing.T) {
	m := newTestPicker(t, nil)
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if _, ok := m.Selected(); ok {
		t.Fatalf("expected no selection")
	}
}

func TestDifficultyCycle(t *testing.T) {
	m := newTestPicker(t, nil)
	total := len(m.entries)
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if len(m.entries) == 0 || len(m.entries) >= total {
		t.Fatalf("expected easy filter to narrow %d entries, got %d", total, len(m.entries))
	}
	for _, e := range m.entries {
		if e.Difficulty != curriculum.Easy {
			t.Fatalf("expected only easy entries, got %s", e.Difficulty)
		}
	}
	for range curriculum.Difficulties {
		m.Update(tea.KeyMsg{Type: tea.KeyTab})
	}
	if len(m.entries) != total {
		t.Fatalf("expected filter to wrap back to all, got %d", len(m.entries))
	}
}

func TestCategoryCycle(t *testing.T) {
	m := newTestPicker(t, nil)
	m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	q := m.Query()
	if q.Category == allFilter {
		t.Fatalf("expected a concrete category")
	}
	for _, e := range m.entries {
		if e.Category != q.Category {
			t.Fatalf("expected category %s, got %s", q.Category, e.Category)
		}
	}
}

func TestLanguageToggle(t *testing.T) {
	m := newTestPicker(t, nil)
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlL})
	if m.Language() != curriculum.Java {
		t.Fatalf("expected java after python, got %s", m.Language())
	}
}

func TestViewShowsBestWPM(t *testing.T) {
	m := newTestPicker(t, map[string]int{"binary-search": 57})
	typeText(m, "binary search")
	out := m.View()
	for _, want := range []string{"Binary Search", "57", "Difficulty:"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in view:\n%s", want, out)
		}
	}
}

func TestViewEmptyState(t *testing.T) {
	m := newTestPicker(t, nil)
	typeText(m, "zzzz-no-such-algorithm")
	if out := m.View(); !strings.Contains(out, "No algorithms match") {
		t.Fatalf("expected empty state:\n%s", out)
	}
}
