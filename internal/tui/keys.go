package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the control bindings of the typing screen. Everything not
// bound here is typed into the session.
type KeyMap struct {
	Quit     key.Binding
	Restart  key.Binding
	Next     key.Binding
	Language key.Binding
	Linear   key.Binding
	Retry    key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "esc"),
			key.WithHelp("esc", "quit"),
		),
		Restart: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "restart"),
		),
		Next: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("ctrl+n", "next snippet"),
		),
		Language: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "language"),
		),
		Linear: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "linear"),
		),
		Retry: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "retry"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Restart, k.Next, k.Language, k.Linear, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Restart, k.Next, k.Retry},
		{k.Language, k.Linear, k.Quit},
	}
}

func (k KeyMap) resultsHelp() []key.Binding {
	return []key.Binding{k.Retry, k.Next, k.Quit}
}
