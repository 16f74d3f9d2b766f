package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the browser's action bindings. Navigation and the help
// toggle come from the list component's own keymap; only the journal
// actions live here.
type KeyMap struct {
	ToggleDone key.Binding
	Delete     key.Binding
	Refresh    key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns the default set of keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		ToggleDone: key.NewBinding(
			key.WithKeys("x", "enter"),
			key.WithHelp("x", "toggle done"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete subtree"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Bindings lists the action bindings for the list help line.
func (k *KeyMap) Bindings() []key.Binding {
	return []key.Binding{k.ToggleDone, k.Delete, k.Refresh, k.Quit}
}
