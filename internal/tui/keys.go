package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the board TUI.
type KeyMap struct {
	// Navigation.
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding

	// Mutations.
	MoveLeft   key.Binding // Move the selected ticket one column left.
	MoveRight  key.Binding // Move the selected ticket one column right.
	SelfAssign key.Binding

	// Filters.
	Search       key.Binding
	CycleProject key.Binding

	Reload key.Binding
	Quit   key.Binding
}

// DefaultKeyMap is the built-in key binding set. Vim-style navigation
// (h/j/k/l) alongside standard arrow keys.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Left: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("h/←", "prev column"),
	),
	Right: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("l/→", "next column"),
	),
	MoveLeft: key.NewBinding(
		key.WithKeys("["),
		key.WithHelp("[", "move ticket left"),
	),
	MoveRight: key.NewBinding(
		key.WithKeys("]"),
		key.WithHelp("]", "move ticket right"),
	),
	SelfAssign: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "assign to me"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	CycleProject: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "project filter"),
	),
	Reload: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reload"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
