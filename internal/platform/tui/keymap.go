// Package tui provides the Bubble Tea front end for foldspace. It is a
// read-only consumer of the fold engine's grid: every view re-fetches cells
// by coordinate after a fold or undo, never holding cell handles across
// calls.
package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings for the play view. Arrow keys and hjkl
// move the fold cursor; wasd walks the player.
type KeyMap struct {
	CursorUp    key.Binding
	CursorDown  key.Binding
	CursorLeft  key.Binding
	CursorRight key.Binding

	WalkUp    key.Binding
	WalkDown  key.Binding
	WalkLeft  key.Binding
	WalkRight key.Binding

	Select key.Binding
	Cancel key.Binding
	Undo   key.Binding
	Reset  key.Binding
	Help   key.Binding
	Quit   key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		CursorUp: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "cursor up"),
		),
		CursorDown: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "cursor down"),
		),
		CursorLeft: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "cursor left"),
		),
		CursorRight: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "cursor right"),
		),
		WalkUp: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "walk up"),
		),
		WalkDown: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "walk down"),
		),
		WalkLeft: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "walk left"),
		),
		WalkRight: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "walk right"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "set anchor / fold"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel anchor"),
		),
		Undo: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "undo last fold"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart level"),
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

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Select, k.Undo, k.Reset, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.CursorUp, k.CursorDown, k.CursorLeft, k.CursorRight},
		{k.WalkUp, k.WalkDown, k.WalkLeft, k.WalkRight},
		{k.Select, k.Cancel, k.Undo, k.Reset},
		{k.Help, k.Quit},
	}
}
