package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/verte-zerg/codetype/internal/curriculum"
	"github.com/verte-zerg/codetype/internal/game"
	"github.com/verte-zerg/codetype/internal/model"
)

type fakeStore struct {
	inserted []model.SessionStats
	chars    [][]model.CharStats
	sessions []model.SessionAggregate
}

func (f *fakeStore) InsertSession(_ context.Context, stats model.SessionStats, chars []model.CharStats) (int64, error) {
	f.inserted = append(f.inserted, stats)
	f.chars = append(f.chars, chars)
	return int64(len(f.inserted)), nil
}

func (f *fakeStore) ListSessions(_ context.Context, _ model.StatsConfig) ([]model.SessionAggregate, error) {
	return f.sessions, nil
}

func (f *fakeStore) GetWeakChars(_ context.Context, _ int, _ string) ([]model.CharAggregate, error) {
	return nil, nil
}

func testEntry(code string) curriculum.AlgorithmEntry {
	return curriculum.AlgorithmEntry{
		ID:         "snippet",
		Title:      "Snippet",
		Difficulty: curriculum.Easy,
		Category:   "Test",
		Variants:   map[curriculum.Language]string{curriculum.TypeScript: code},
	}
}

// newTestModel returns a model whose clock advances one second per call.
func newTestModel(t *testing.T, code string, st SessionStore) *Model {
	t.Helper()
	m := NewModel(Options{
		Config: model.Config{Language: string(curriculum.TypeScript)},
		Entry:  testEntry(code),
		Store:  st,
		Logger: zerolog.Nop(),
	})
	clock := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	return m
}

func typeText(m *Model, text string) tea.Cmd {
	var cmd tea.Cmd
	for _, r := range text {
		var msg tea.KeyMsg
		switch r {
		case ' ':
			msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
		case '\n':
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
		}
		_, cmd = m.Update(msg)
	}
	return cmd
}

func TestTypingTracksMistakes(t *testing.T) {
	m := newTestModel(t, "abc", nil)
	typeText(m, "a")
	if m.state.Status != game.StatusRunning || m.state.Mistakes != 0 {
		t.Fatalf("unexpected state after a: %+v", m.state)
	}
	typeText(m, "x")
	if m.state.Mistakes != 1 || !m.state.MistakeIndices.Has(1) {
		t.Fatalf("expected mistake at 1, got %+v", m.state)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	if m.state.Typed() != "a" || m.state.Mistakes != 0 {
		t.Fatalf("expected backspace to clear mistake, got %+v", m.state)
	}
	if m.charStats['b'].incorrect != 1 {
		t.Fatalf("expected incorrect stat for b, got %+v", m.charStats['b'])
	}
}

func TestEnterUsesSmartIndent(t *testing.T) {
	m := newTestModel(t, "if (x) {\n  y();\n}", nil)
	typeText(m, "if (x) {")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if got := m.state.Typed(); got != "if (x) {\n  " {
		t.Fatalf("unexpected input after enter: %q", got)
	}
	if m.lastKey != "enter" {
		t.Fatalf("expected last key enter, got %q", m.lastKey)
	}
}

func TestEnterIgnoredMidLine(t *testing.T) {
	m := newTestModel(t, "ab\ncd", nil)
	typeText(m, "a")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if got := m.state.Typed(); got != "a" {
		t.Fatalf("expected enter to be ignored, got %q", got)
	}
}

func TestPulseSetAndCleared(t *testing.T) {
	m := newTestModel(t, "let x = 1", nil)
	typeText(m, "let")
	cmd := typeText(m, " ")
	if m.pulse == nil || m.pulse.Start != 0 || m.pulse.End != 2 {
		t.Fatalf("expected pulse over let, got %+v", m.pulse)
	}
	if cmd == nil {
		t.Fatalf("expected clear command")
	}
	id := m.pulse.ID

	m.Update(pulseClearMsg{id: id - 1})
	if m.pulse == nil {
		t.Fatalf("stale clear must not remove current pulse")
	}
	m.Update(pulseClearMsg{id: id})
	if m.pulse != nil {
		t.Fatalf("expected pulse cleared")
	}
}

func TestCompletionSavesSession(t *testing.T) {
	st := &fakeStore{}
	m := newTestModel(t, "ab c", st)
	typeText(m, "ab c")
	res, ok := m.Result()
	if !ok {
		t.Fatalf("expected result after completion")
	}
	if res.Mistakes != 0 || res.Accuracy != 100 || res.Typed != 4 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if len(st.inserted) != 1 {
		t.Fatalf("expected one saved session, got %d", len(st.inserted))
	}
	saved := st.inserted[0]
	if saved.AlgorithmID != "snippet" || saved.Language != "typescript" || saved.DurationMs != 3000 {
		t.Fatalf("unexpected saved session: %+v", saved)
	}
	for _, cs := range st.chars[0] {
		if cs.Char == " " {
			t.Fatalf("whitespace must not be tracked: %+v", st.chars[0])
		}
	}
	if !strings.Contains(m.View(), "Accuracy  100%") {
		t.Fatalf("expected results view, got:\n%s", m.View())
	}

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if _, ok := m.Result(); ok || m.state.Status != game.StatusIdle {
		t.Fatalf("expected enter on results to retry, got %+v", m.state)
	}
}

func TestToggleLinearRebuildsTarget(t *testing.T) {
	m := newTestModel(t, "a {\n  b\n}", nil)
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlT})
	if got := string(m.state.Target); got != "a { b }" {
		t.Fatalf("unexpected linear target: %q", got)
	}
	if len(m.classes) != len(m.state.Target) {
		t.Fatalf("expected one class per rune, got %d for %d", len(m.classes), len(m.state.Target))
	}
	typeText(m, "a {")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if got := m.state.Typed(); got != "a { " {
		t.Fatalf("expected enter to type a space in linear mode, got %q", got)
	}
}

func TestLanguageFallbackShownInHeader(t *testing.T) {
	m := newTestModel(t, "x", nil)
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlL})
	if m.lang != curriculum.JavaScript || m.served != curriculum.TypeScript {
		t.Fatalf("expected javascript request served by typescript, got %s/%s", m.lang, m.served)
	}
	if !strings.Contains(m.renderHeader(), "no JavaScript variant") {
		t.Fatalf("expected fallback note, got %q", m.renderHeader())
	}
}

func TestRenderFooterFormats(t *testing.T) {
	m := newTestModel(t, "abcd", nil)
	typeText(m, "ab")
	m.hasLast = true
	m.lastWPM, m.lastAcc = 72, 98
	m.allTyped, m.allMistakes, m.allDuration = 500, 25, 60000
	out := m.renderFooter()
	for _, want := range []string{"Progress 50%", "Last 72 WPM · 98%", "All-time 100 WPM · 95%"} {
		if !strings.Contains(out, want) {
			t.Fatalf("footer missing %q: %s", want, out)
		}
	}
}

func TestLoadFooterStatsFromStore(t *testing.T) {
	st := &fakeStore{sessions: []model.SessionAggregate{
		{AlgorithmID: "snippet", TypedChars: 250, Mistakes: 0, DurationMs: 60000},
		{AlgorithmID: "other", TypedChars: 100, Mistakes: 10, DurationMs: 60000},
	}}
	m := newTestModel(t, "abc", st)
	if !m.hasLast || m.lastWPM != 20 || m.lastAcc != 90 {
		t.Fatalf("unexpected last stats: %d/%d", m.lastWPM, m.lastAcc)
	}
	if m.bestWPM != 50 {
		t.Fatalf("expected best WPM 50 for this snippet, got %d", m.bestWPM)
	}
}

func TestLiveTickStopsWhenIdle(t *testing.T) {
	m := newTestModel(t, "abc", nil)
	if cmd := typeText(m, "a"); cmd == nil || !m.ticking {
		t.Fatalf("expected live ticker to start")
	}
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	_, cmd := m.Update(liveTickMsg(time.Now()))
	if cmd != nil || m.ticking {
		t.Fatalf("expected ticker to stop after restart")
	}
}
