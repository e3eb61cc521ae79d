package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the key bindings for the playground.
type KeyMap struct {
	// Spawning
	Info         key.Binding
	Success      key.Binding
	Warning      key.Binding
	Error        key.Binding
	Confirmation key.Binding
	WithActions  key.Binding
	Invalid      key.Binding

	// Actions
	DismissAll key.Binding

	// Global
	Quit key.Binding
	Help key.Binding
}

// ShortHelp returns a short help message.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Info, k.Success, k.Warning, k.Error, k.Confirmation, k.WithActions, k.DismissAll, k.Help, k.Quit}
}

// FullHelp returns a full help message.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Info, k.Success, k.Warning, k.Error},
		{k.Confirmation, k.WithActions, k.Invalid},
		{k.DismissAll, k.Help, k.Quit},
	}
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Info: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "info"),
		),
		Success: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "success"),
		),
		Warning: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "warning"),
		),
		Error: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "error"),
		),
		Confirmation: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "confirmation"),
		),
		WithActions: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "with actions"),
		),
		Invalid: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "bogus kind"),
		),
		DismissAll: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "dismiss all"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}
