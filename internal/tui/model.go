// Package tui provides the Bubble Tea typing interface.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/verte-zerg/codetype/internal/curriculum"
	"github.com/verte-zerg/codetype/internal/game"
	"github.com/verte-zerg/codetype/internal/model"
	"github.com/verte-zerg/codetype/internal/render"
	statsPkg "github.com/verte-zerg/codetype/internal/stats"
)

const (
	pulseDuration = 360 * time.Millisecond
	liveInterval  = time.Second
	troubleKeys   = 3
)

// SessionStore is the persistence the typing screen relies on.
type SessionStore interface {
	InsertSession(ctx context.Context, stats model.SessionStats, chars []model.CharStats) (int64, error)
	ListSessions(ctx context.Context, cfg model.StatsConfig) ([]model.SessionAggregate, error)
	GetWeakChars(ctx context.Context, window int, language string) ([]model.CharAggregate, error)
}

// Options configures a typing Model.
type Options struct {
	Config   model.Config
	Entry    curriculum.AlgorithmEntry
	Pool     []curriculum.AlgorithmEntry
	Store    SessionStore
	Selector *curriculum.Selector
	WeakSet  map[rune]struct{}
	Logger   zerolog.Logger
}

type charStat struct {
	correct      int
	incorrect    int
	latencySumMs int64
	latencyCount int64
}

type liveTickMsg time.Time

type pulseClearMsg struct {
	id int
}

// Model implements the Bubble Tea typing UI.
type Model struct {
	config   model.Config
	store    SessionStore
	selector *curriculum.Selector
	pool     []curriculum.AlgorithmEntry
	weakSet  map[rune]struct{}
	logger   zerolog.Logger
	keys     KeyMap
	help     help.Model
	now      func() time.Time

	width  int
	height int

	entry   curriculum.AlgorithmEntry
	lang    curriculum.Language
	served  curriculum.Language
	classes []render.Class
	state   game.State

	pulse     *game.Pulse
	lastPulse game.Pulse
	lastKey   string
	ticking   bool

	prevCorrectAt time.Time
	charStats     map[rune]*charStat

	result   *game.Result
	prevBest int
	trouble  []string

	lastWPM int
	lastAcc int
	hasLast bool

	bestWPM     int
	allTyped    int
	allMistakes int
	allDuration int64
}

var (
	correctStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	incorrectStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	pendingStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	pulseStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	cursorStyle      = pendingStyle.Underline(true)
	footerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	titleStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	metaStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	keyStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	expectedKeyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#1F1F1F")).Background(lipgloss.Color("#C89A3A"))
	lastKeyStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Background(lipgloss.Color("#3A3A3A"))
	resultsStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#C89A3A")).Padding(1, 3)
)

var classColors = map[render.Class]lipgloss.Color{
	render.ClassPlain:       lipgloss.Color("#F0F0F0"),
	render.ClassComment:     lipgloss.Color("#6A9955"),
	render.ClassString:      lipgloss.Color("#CE9178"),
	render.ClassKeyword:     lipgloss.Color("#C586C0"),
	render.ClassFunction:    lipgloss.Color("#DCDCAA"),
	render.ClassNumber:      lipgloss.Color("#B5CEA8"),
	render.ClassClassName:   lipgloss.Color("#4EC9B0"),
	render.ClassPunctuation: lipgloss.Color("#D4D4D4"),
	render.ClassOperator:    lipgloss.Color("#D4D4D4"),
}

// NewModel constructs a typing TUI model for opts.Entry.
func NewModel(opts Options) *Model {
	lang := curriculum.Language(opts.Config.Language)
	if !lang.Valid() {
		lang = curriculum.TypeScript
	}
	selector := opts.Selector
	if selector == nil {
		selector = curriculum.NewSelector()
	}
	m := &Model{
		config:   opts.Config,
		store:    opts.Store,
		selector: selector,
		pool:     opts.Pool,
		weakSet:  opts.WeakSet,
		logger:   opts.Logger,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		now:      time.Now,
		lang:     lang,
	}
	m.load(opts.Entry)
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case liveTickMsg:
		if m.state.Status != game.StatusRunning {
			m.ticking = false
			return m, nil
		}
		return m, liveTick()
	case pulseClearMsg:
		if m.pulse != nil && m.pulse.ID == msg.id {
			m.pulse = nil
		}
		return m, nil
	case tea.KeyMsg:
		if m.result != nil {
			return m, m.updateResults(msg)
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Restart):
			m.restart()
			return m, nil
		case key.Matches(msg, m.keys.Next):
			m.next()
			return m, nil
		case key.Matches(msg, m.keys.Language):
			m.lang = m.lang.Next()
			m.load(m.entry)
			return m, nil
		case key.Matches(msg, m.keys.Linear):
			m.config.Linear = !m.config.Linear
			m.load(m.entry)
			return m, nil
		}
		return m, m.handleKey(msg)
	default:
		return m, nil
	}
}

func (m *Model) updateResults(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Retry), key.Matches(msg, m.keys.Restart):
		m.restart()
	case key.Matches(msg, m.keys.Next):
		m.next()
	}
	return nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	typed := m.state.Typed()
	switch msg.Type {
	case tea.KeyEnter:
		m.lastKey = "enter"
		next, ok := game.Enter(m.state.Target, m.state.Input, m.config.Linear)
		if !ok {
			return nil
		}
		return m.submit(next)
	case tea.KeyBackspace, tea.KeyDelete:
		m.lastKey = "backspace"
		if len(m.state.Input) == 0 {
			return nil
		}
		return m.submit(string(m.state.Input[:len(m.state.Input)-1]))
	case tea.KeyTab:
		m.lastKey = "tab"
		return m.submit(typed + "\t")
	case tea.KeySpace:
		m.lastKey = " "
		return m.submit(typed + " ")
	case tea.KeyRunes:
		m.lastKey = msg.String()
		return m.submit(typed + string(msg.Runes))
	default:
		return nil
	}
}

// submit replaces the typed text and derives everything that follows from
// the transition: keystroke stats, pulses, the live ticker and completion.
func (m *Model) submit(text string) tea.Cmd {
	now := m.now()
	prev := m.state
	next := prev.Submit(game.NormalizeInput(text, m.config.Linear), now)
	m.state = next
	m.recordKeystrokes(prev.Input, next.Input, now)

	var cmds []tea.Cmd
	if p, ok := game.NextPulse(next.Target, prev.Input, next.Input, m.lastPulse); ok {
		m.lastPulse = p
		m.pulse = &p
		cmds = append(cmds, clearPulse(p.ID))
	}
	if next.Status == game.StatusRunning && !m.ticking {
		m.ticking = true
		cmds = append(cmds, liveTick())
	}
	if next.Status == game.StatusCompleted && prev.Status != game.StatusCompleted {
		m.finishSession()
	}
	return tea.Batch(cmds...)
}

func liveTick() tea.Cmd {
	return tea.Tick(liveInterval, func(t time.Time) tea.Msg {
		return liveTickMsg(t)
	})
}

func clearPulse(id int) tea.Cmd {
	return tea.Tick(pulseDuration, func(time.Time) tea.Msg {
		return pulseClearMsg{id: id}
	})
}

// recordKeystrokes updates per-character stats for newly appended runes.
// Whitespace targets are skipped; smart Enter inserts them in bulk.
func (m *Model) recordKeystrokes(prev, next []rune, now time.Time) {
	for i := len(prev); i < len(next); i++ {
		expected := m.state.Target[i]
		if unicode.IsSpace(expected) {
			continue
		}
		entry := m.charEntry(expected)
		if next[i] != expected {
			entry.incorrect++
			continue
		}
		entry.correct++
		if !m.prevCorrectAt.IsZero() {
			entry.latencySumMs += now.Sub(m.prevCorrectAt).Milliseconds()
			entry.latencyCount++
		}
		m.prevCorrectAt = now
	}
}

func (m *Model) charEntry(expected rune) *charStat {
	if m.charStats == nil {
		m.charStats = map[rune]*charStat{}
	}
	entry, ok := m.charStats[expected]
	if !ok {
		entry = &charStat{}
		m.charStats[expected] = entry
	}
	return entry
}

// load prepares a fresh session for entry in the current language and mode.
func (m *Model) load(entry curriculum.AlgorithmEntry) {
	m.entry = entry
	code, served := entry.Code(m.lang)
	m.served = served
	classes := render.Highlight(code, served)
	target := code
	if m.config.Linear {
		target = game.Linearize(code)
		classes = render.ProjectClasses(code, classes, target)
	}
	m.classes = classes
	m.state = game.Start(target)
	m.resetProgress()
	m.loadFooterStats()
	m.logger.Debug().
		Str("algorithm", entry.ID).
		Str("language", string(served)).
		Bool("linear", m.config.Linear).
		Int("runes", len(m.state.Target)).
		Msg("snippet loaded")
}

func (m *Model) restart() {
	m.state = m.state.Reset()
	m.resetProgress()
}

func (m *Model) resetProgress() {
	m.pulse = nil
	m.lastKey = ""
	m.prevCorrectAt = time.Time{}
	m.charStats = map[rune]*charStat{}
	m.result = nil
	m.trouble = nil
}

// next moves to another entry of the pool, biased toward weak characters in
// focus mode.
func (m *Model) next() {
	if len(m.pool) == 0 {
		m.restart()
		return
	}
	candidates := m.pool
	if len(m.pool) > 1 {
		candidates = make([]curriculum.AlgorithmEntry, 0, len(m.pool)-1)
		for _, e := range m.pool {
			if e.ID != m.entry.ID {
				candidates = append(candidates, e)
			}
		}
	}
	var entry curriculum.AlgorithmEntry
	var ok bool
	if m.config.FocusWeak && len(m.weakSet) > 0 {
		entry, ok = m.selector.Weighted(candidates, m.lang, m.weakSet, m.config.WeakFactor)
	} else {
		entry, ok = m.selector.Random(candidates)
	}
	if !ok {
		m.restart()
		return
	}
	m.load(entry)
}

func (m *Model) finishSession() {
	res := m.state.Result()
	m.result = &res
	m.prevBest = m.bestWPM
	m.trouble = statsPkg.TopMistyped(m.charAggregates(), troubleKeys)

	m.logger.Info().
		Str("algorithm", m.entry.ID).
		Str("language", string(m.served)).
		Int("wpm", res.WPM).
		Int("accuracy", res.Accuracy).
		Int("mistakes", res.Mistakes).
		Dur("elapsed", res.Elapsed).
		Msg("session completed")

	if res.Elapsed <= 0 {
		return
	}
	stats := model.SessionStats{
		StartedAt:   m.state.StartedAt,
		EndedAt:     m.state.CompletedAt,
		AlgorithmID: m.entry.ID,
		Language:    string(m.served),
		Linear:      m.config.Linear,
		TypedChars:  res.Typed,
		Mistakes:    res.Mistakes,
		DurationMs:  res.Elapsed.Milliseconds(),
	}
	if m.store != nil {
		if _, err := m.store.InsertSession(context.Background(), stats, m.charStatsList()); err != nil {
			m.logger.Error().Err(err).Str("algorithm", m.entry.ID).Msg("failed to save session")
		}
	}

	m.lastWPM, m.lastAcc = res.WPM, res.Accuracy
	m.hasLast = true
	m.bestWPM = max(m.bestWPM, res.WPM)
	m.allTyped += stats.TypedChars
	m.allMistakes += stats.Mistakes
	m.allDuration += stats.DurationMs

	if m.config.FocusWeak {
		m.refreshWeakSet()
	}
}

func (m *Model) charStatsList() []model.CharStats {
	out := make([]model.CharStats, 0, len(m.charStats))
	for ch, entry := range m.charStats {
		out = append(out, model.CharStats{
			Char:         string(ch),
			Correct:      entry.correct,
			Incorrect:    entry.incorrect,
			LatencySumMs: entry.latencySumMs,
			LatencyCount: entry.latencyCount,
		})
	}
	return out
}

func (m *Model) charAggregates() []model.CharAggregate {
	out := make([]model.CharAggregate, 0, len(m.charStats))
	for _, cs := range m.charStatsList() {
		out = append(out, model.CharAggregate(cs))
	}
	return out
}

func (m *Model) loadFooterStats() {
	m.hasLast = false
	m.bestWPM = 0
	m.allTyped, m.allMistakes, m.allDuration = 0, 0, 0
	if m.store == nil {
		return
	}
	sessions, err := m.store.ListSessions(context.Background(), model.StatsConfig{Language: string(m.served)})
	if err != nil {
		m.logger.Error().Err(err).Msg("failed to load session stats")
		return
	}
	if len(sessions) == 0 {
		return
	}
	last := sessions[len(sessions)-1]
	m.lastWPM, m.lastAcc = statsPkg.SessionMetrics(last.TypedChars, last.Mistakes, last.DurationMs)
	m.hasLast = true
	for _, s := range sessions {
		m.allTyped += s.TypedChars
		m.allMistakes += s.Mistakes
		m.allDuration += s.DurationMs
		if s.AlgorithmID == m.entry.ID {
			wpm, _ := statsPkg.SessionMetrics(s.TypedChars, s.Mistakes, s.DurationMs)
			m.bestWPM = max(m.bestWPM, wpm)
		}
	}
}

func (m *Model) refreshWeakSet() {
	if m.store == nil {
		return
	}
	aggs, err := m.store.GetWeakChars(context.Background(), m.config.WeakWindow, string(m.served))
	if err != nil {
		m.logger.Error().Err(err).Msg("failed to load weak chars")
		return
	}
	m.weakSet = statsPkg.SelectWeakChars(aggs, m.config.WeakTop)
	m.logger.Debug().Int("weak", len(m.weakSet)).Msg("weak set refreshed")
}

// View implements tea.Model.
func (m *Model) View() string {
	if len(m.state.Target) == 0 {
		return ""
	}
	if m.result != nil {
		return m.renderResults()
	}
	lines := render.Overlay(m.classes, render.DiffFromState(m.state, m.pulse))
	header := m.renderHeader()
	if m.width == 0 || m.height == 0 {
		return header + "\n\n" + renderCode(lines, 0, 0)
	}

	contentWidth := max(int(float64(m.width)*0.70), 1)
	footer := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, m.renderFooter())
	helpLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, m.help.ShortHelpView(m.keys.ShortHelp()))
	bodyHeight := m.height - 2

	keyboard := ""
	if m.height >= 24 {
		expected, hasExpected := m.expectedRune()
		keyboard = lipgloss.Place(m.width, 0, lipgloss.Center, lipgloss.Top, m.renderHints()+"\n\n"+renderKeyboard(expected, hasExpected, m.lastKey))
		bodyHeight -= lipgloss.Height(keyboard) + 1
	}

	code := renderCode(lines, contentWidth, max(bodyHeight-2, 1))
	content := lipgloss.JoinVertical(lipgloss.Left, header, "", lipgloss.NewStyle().Width(contentWidth).Render(code))
	body := lipgloss.Place(m.width, max(bodyHeight, 1), lipgloss.Center, lipgloss.Center, content)

	parts := []string{body}
	if keyboard != "" {
		parts = append(parts, keyboard, "")
	}
	parts = append(parts, footer, helpLine)
	return strings.Join(parts, "\n")
}

func (m *Model) expectedRune() (rune, bool) {
	if len(m.state.Input) >= len(m.state.Target) {
		return 0, false
	}
	return m.state.Target[len(m.state.Input)], true
}

func (m *Model) renderHeader() string {
	meta := []string{string(m.entry.Difficulty), m.entry.Category, m.served.Label()}
	if m.served != m.lang {
		meta[2] = fmt.Sprintf("%s (no %s variant)", m.served.Label(), m.lang.Label())
	}
	if m.config.Linear {
		meta = append(meta, "linear")
	}
	return titleStyle.Render(m.entry.Title) + "  " + metaStyle.Render(strings.Join(meta, " · "))
}

func (m *Model) renderHints() string {
	last := "-"
	if m.lastKey != "" {
		last = game.KeyLabel(m.lastKey)
	}
	return metaStyle.Render(fmt.Sprintf("Next %s  Last %s", game.ExpectedKey(m.state.Target, m.state.Input), last))
}

func (m *Model) renderFooter() string {
	live := m.state.Live(m.now())
	segments := []string{
		fmt.Sprintf("Progress %d%%", m.state.Progress()),
		fmt.Sprintf("%d WPM · %d%%", live.WPM, live.Accuracy),
	}
	if m.hasLast {
		segments = append(segments, fmt.Sprintf("Last %d WPM · %d%%", m.lastWPM, m.lastAcc))
	}
	if m.allDuration > 0 {
		wpm, acc := statsPkg.SessionMetrics(m.allTyped, m.allMistakes, m.allDuration)
		segments = append(segments, fmt.Sprintf("All-time %d WPM · %d%%", wpm, acc))
	}
	return footerStyle.Render(strings.Join(segments, "  "))
}

func (m *Model) renderResults() string {
	res := *m.result
	lines := []string{
		titleStyle.Render(m.entry.Title) + "  " + metaStyle.Render(m.served.Label()),
		"",
		fmt.Sprintf("WPM       %d", res.WPM),
		fmt.Sprintf("Accuracy  %d%%", res.Accuracy),
		fmt.Sprintf("Mistakes  %d", res.Mistakes),
		fmt.Sprintf("Time      %s", res.Elapsed.Round(100*time.Millisecond)),
	}
	switch {
	case m.prevBest > 0 && res.WPM > m.prevBest:
		lines = append(lines, pulseStyle.Render(fmt.Sprintf("New best! (was %d WPM)", m.prevBest)))
	case m.prevBest > 0:
		lines = append(lines, metaStyle.Render(fmt.Sprintf("Best      %d WPM", m.prevBest)))
	}
	if len(m.trouble) > 0 {
		labels := make([]string, len(m.trouble))
		for i, ch := range m.trouble {
			labels[i] = statsPkg.CharLabel(ch)
		}
		lines = append(lines, incorrectStyle.Render("Trouble   "+strings.Join(labels, " ")))
	}
	lines = append(lines, "", m.help.ShortHelpView(m.keys.resultsHelp()))
	box := resultsStyle.Render(strings.Join(lines, "\n"))
	if m.width == 0 || m.height == 0 {
		return box
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

// Result returns the last completed result, if any.
func (m *Model) Result() (game.Result, bool) {
	if m.result == nil {
		return game.Result{}, false
	}
	return *m.result, true
}
