package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the monitor key bindings with built-in help text.
type KeyMap struct {
	Refresh   key.Binding
	Help      key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Refresh: key.NewBinding(
			key.WithKeys("r", "enter"),
			key.WithHelp("r/enter", "refresh now"),
		),
		Help: key.NewBinding(
			key.WithKeys("?", "h"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "force quit"),
		),
	}
}

// ShortHelp returns the bindings shown in the status line.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Refresh, k.Help, k.Quit}
}

// FullHelp returns every binding, shown when help is expanded.
func (k KeyMap) FullHelp() []key.Binding {
	return []key.Binding{k.Refresh, k.Help, k.Quit, k.ForceQuit}
}
