package tui

import "github.com/charmbracelet/bubbles/key"

// browseKeys holds key bindings for list navigation.
type browseKeys struct {
	Up     key.Binding
	Down   key.Binding
	Filter key.Binding
	Clear  key.Binding
	Quit   key.Binding
}

// ShortHelp returns the browse bindings for the help bar.
func (k browseKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Filter, k.Clear, k.Quit}
}

// FullHelp returns the browse bindings grouped for expanded help.
func (k browseKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Filter, k.Clear, k.Quit},
	}
}

// filterKeys holds key bindings while the filter input has focus.
type filterKeys struct {
	Apply  key.Binding
	Cancel key.Binding
}

// ShortHelp returns the filter bindings for the help bar.
func (k filterKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Apply, k.Cancel}
}

// FullHelp returns the filter bindings grouped for expanded help.
func (k filterKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Apply, k.Cancel}}
}

// BrowseKeyMap returns the key bindings for list navigation.
func BrowseKeyMap() browseKeys {
	return browseKeys{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
		Clear: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear filter"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// FilterKeyMap returns the key bindings used while typing a filter.
func FilterKeyMap() filterKeys {
	return filterKeys{
		Apply: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "apply"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
	}
}
