package tui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Search      key.Binding
	Escape      key.Binding
	Tab         key.Binding
	Up          key.Binding
	Down        key.Binding
	AddEntry    key.Binding
	NewDay      key.Binding
	DeleteEntry key.Binding
	DeleteDay   key.Binding
	Help        key.Binding
	Quit        key.Binding
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.AddEntry, k.NewDay, k.Quit, k.Help}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Tab, k.Search, k.Escape},
		{k.AddEntry, k.NewDay, k.DeleteEntry, k.DeleteDay},
		{k.Help, k.Quit},
	}
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search days"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "leave search"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch pane"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		AddEntry: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add entry"),
		),
		NewDay: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new day"),
		),
		DeleteEntry: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete entry"),
		),
		DeleteDay: key.NewBinding(
			key.WithKeys("D"),
			key.WithHelp("D", "delete day"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
