package ui

import keybind "github.com/charmbracelet/bubbles/key"

// keyMap describes the normal mode bindings for the help line.
// Dispatch itself lives in the input package.
type keyMap struct {
	Search     keybind.Binding
	Up         keybind.Binding
	Down       keybind.Binding
	Open       keybind.Binding
	View       keybind.Binding
	Difficulty keybind.Binding
	Topic      keybind.Binding
	Clear      keybind.Binding
	Refresh    keybind.Binding
	Help       keybind.Binding
	Quit       keybind.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Search:     keybind.NewBinding(keybind.WithKeys("/", "i"), keybind.WithHelp("/", "search")),
		Up:         keybind.NewBinding(keybind.WithKeys("up", "k"), keybind.WithHelp("↑/k", "up")),
		Down:       keybind.NewBinding(keybind.WithKeys("down", "j"), keybind.WithHelp("↓/j", "down")),
		Open:       keybind.NewBinding(keybind.WithKeys("enter", "o"), keybind.WithHelp("enter", "open")),
		View:       keybind.NewBinding(keybind.WithKeys("v"), keybind.WithHelp("v", "details")),
		Difficulty: keybind.NewBinding(keybind.WithKeys("e", "m", "h"), keybind.WithHelp("e/m/h", "difficulty")),
		Topic:      keybind.NewBinding(keybind.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"), keybind.WithHelp("1-9", "topic")),
		Clear:      keybind.NewBinding(keybind.WithKeys("x"), keybind.WithHelp("x", "clear filters")),
		Refresh:    keybind.NewBinding(keybind.WithKeys("r"), keybind.WithHelp("r", "refresh")),
		Help:       keybind.NewBinding(keybind.WithKeys("?"), keybind.WithHelp("?", "help")),
		Quit:       keybind.NewBinding(keybind.WithKeys("q", "ctrl+c"), keybind.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []keybind.Binding {
	return []keybind.Binding{k.Search, k.Open, k.Difficulty, k.Topic, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]keybind.Binding {
	return [][]keybind.Binding{
		{k.Search, k.Refresh, k.Quit},
		{k.Up, k.Down, k.Open, k.View},
		{k.Difficulty, k.Topic, k.Clear, k.Help},
	}
}
