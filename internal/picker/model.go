// Package picker provides the Bubble Tea curriculum browser shown before a
// practice session when no algorithm was requested.
package picker

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/verte-zerg/codetype/internal/curriculum"
)

const allFilter = "all"

var (
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	filterStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	descStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
)

// KeyMap defines the picker bindings. Unbound keys edit the search query.
type KeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Select     key.Binding
	Difficulty key.Binding
	Category   key.Binding
	Language   key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns the default picker bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "pgup", "home"),
			key.WithHelp("↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "pgdown", "end"),
			key.WithHelp("↓", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "practice"),
		),
		Difficulty: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "difficulty"),
		),
		Category: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "category"),
		),
		Language: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "language"),
		),
		Quit: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Select, k.Difficulty, k.Category, k.Language, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Select}, {k.Difficulty, k.Category, k.Language, k.Quit}}
}

// Model implements the Bubble Tea curriculum picker.
type Model struct {
	catalog *curriculum.Catalog
	best    map[string]int
	logger  zerolog.Logger
	keys    KeyMap
	help    help.Model

	search      textinput.Model
	table       table.Model
	entries     []curriculum.AlgorithmEntry
	lang        curriculum.Language
	categories  []string
	categoryIdx int
	// difficultyIdx 0 means every difficulty; i > 0 selects Difficulties[i-1].
	difficultyIdx int

	selected *curriculum.AlgorithmEntry
	width    int
	height   int
}

// New constructs a picker over catalog. best maps algorithm ids to the best
// recorded WPM and may be nil.
func New(catalog *curriculum.Catalog, lang curriculum.Language, best map[string]int, logger zerolog.Logger) *Model {
	search := textinput.New()
	search.Prompt = "Search: "
	search.Placeholder = "title, description or category"
	search.Focus()

	m := &Model{
		catalog:    catalog,
		best:       best,
		logger:     logger,
		keys:       DefaultKeyMap(),
		help:       help.New(),
		search:     search,
		lang:       lang,
		categories: append([]string{allFilter}, catalog.Categories()...),
	}
	m.table = table.New(
		table.WithColumns(columns()),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	m.table.SetStyles(tableStyles())
	m.refilter()
	return m
}

// Selected returns the chosen entry once the user pressed enter.
func (m *Model) Selected() (curriculum.AlgorithmEntry, bool) {
	if m.selected == nil {
		return curriculum.AlgorithmEntry{}, false
	}
	return *m.selected, true
}

// Language returns the language chosen in the picker.
func (m *Model) Language() curriculum.Language {
	return m.lang
}

// Query returns the filter currently applied.
func (m *Model) Query() curriculum.Query {
	q := curriculum.Query{Search: m.search.Value(), Category: m.categories[m.categoryIdx]}
	if m.difficultyIdx > 0 {
		q.Difficulties = []curriculum.Difficulty{curriculum.Difficulties[m.difficultyIdx-1]}
	}
	return q
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.table.SetWidth(msg.Width)
		m.table.SetHeight(max(3, msg.Height-8))
		m.search.Width = max(10, msg.Width-lipgloss.Width(m.search.Prompt)-2)
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Select):
			if len(m.entries) == 0 {
				return m, nil
			}
			entry := m.entries[m.table.Cursor()]
			m.selected = &entry
			m.logger.Debug().Str("algorithm", entry.ID).Str("language", string(m.lang)).Msg("algorithm picked")
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			var cmd tea.Cmd
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		case key.Matches(msg, m.keys.Difficulty):
			m.difficultyIdx = (m.difficultyIdx + 1) % (len(curriculum.Difficulties) + 1)
			m.refilter()
			return m, nil
		case key.Matches(msg, m.keys.Category):
			m.categoryIdx = (m.categoryIdx + 1) % len(m.categories)
			m.refilter()
			return m, nil
		case key.Matches(msg, m.keys.Language):
			m.lang = m.lang.Next()
			m.refilter()
			return m, nil
		}
		before := m.search.Value()
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		if m.search.Value() != before {
			m.refilter()
		}
		return m, cmd
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

func (m *Model) refilter() {
	m.entries = m.catalog.Filter(m.Query())
	rows := make([]table.Row, len(m.entries))
	for i, e := range m.entries {
		best := "-"
		if wpm, ok := m.best[e.ID]; ok && wpm > 0 {
			best = strconv.Itoa(wpm)
		}
		variant := m.lang.Label()
		if !e.HasVariant(m.lang) {
			_, served := e.Code(m.lang)
			variant = served.Label() + "*"
		}
		rows[i] = table.Row{e.Title, string(e.Difficulty), e.Category, e.Runtime, variant, best}
	}
	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(max(0, len(rows)-1))
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	difficulty := allFilter
	if m.difficultyIdx > 0 {
		difficulty = string(curriculum.Difficulties[m.difficultyIdx-1])
	}
	filters := fmt.Sprintf("Difficulty: %s  Category: %s  Language: %s  (%d of %d)",
		filterStyle.Render(difficulty),
		filterStyle.Render(m.categories[m.categoryIdx]),
		filterStyle.Render(m.lang.Label()),
		len(m.entries), m.catalog.Len())

	lines := []string{
		titleStyle.Render("codetype") + mutedStyle.Render("  pick an algorithm to type"),
		m.search.View(),
		filters,
		"",
	}
	if len(m.entries) == 0 {
		lines = append(lines, mutedStyle.Render("No algorithms match the current filters."))
	} else {
		lines = append(lines, m.table.View())
		entry := m.entries[m.table.Cursor()]
		lines = append(lines, descStyle.Render(truncate(entry.Description, m.width)))
	}
	lines = append(lines, mutedStyle.Render("* no variant in the selected language; TypeScript is shown instead"))
	lines = append(lines, m.help.ShortHelpView(m.keys.ShortHelp()))
	return strings.Join(lines, "\n")
}

func columns() []table.Column {
	return []table.Column{
		{Title: "Algorithm", Width: 32},
		{Title: "Difficulty", Width: 10},
		{Title: "Category", Width: 16},
		{Title: "Runtime", Width: 14},
		{Title: "Variant", Width: 12},
		{Title: "Best", Width: 5},
	}
}

func tableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("#1F1F1F")).
		Background(lipgloss.Color("#C89A3A")).
		Bold(false)
	return styles
}

func truncate(s string, width int) string {
	runes := []rune(s)
	if width <= 3 || len(runes) <= width {
		return s
	}
	return string(runes[:width-3]) + "..."
}
