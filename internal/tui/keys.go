package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines key bindings used across the TUI.
type KeyMap struct {
	Quit       key.Binding
	Refresh    key.Binding
	ToggleView key.Binding
}

// DefaultKeyMap provides the default key bindings for the TUI.
var DefaultKeyMap = KeyMap{
	Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Refresh:    key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "refresh")),
	ToggleView: key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "cycle verdict filter")),
}
