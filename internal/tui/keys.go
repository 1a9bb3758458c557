package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings of the booking form.
type KeyMap struct {
	Next key.Binding // Move focus to the next visible field.
	Prev key.Binding
	Up   key.Binding // Selectors only.
	Down key.Binding

	// Select picks the option under the cursor, leaves a text field or
	// presses the submit button, depending on focus.
	Select key.Binding

	// Quit applies outside text fields; Cancel and ForceQuit apply everywhere.
	Quit      key.Binding
	Cancel    key.Binding
	ForceQuit key.Binding
}

// DefaultKeyMap is the built-in key binding set.
var DefaultKeyMap = KeyMap{
	Next: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next field"),
	),
	Prev: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("S-tab", "previous field"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("j/↓", "down"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "select"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q"),
		key.WithHelp("q", "quit"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "quit"),
	),
	ForceQuit: key.NewBinding(
		key.WithKeys("ctrl+c"),
	),
}

func (k KeyMap) helpLine() string {
	bindings := []key.Binding{k.Next, k.Up, k.Down, k.Select, k.Cancel}
	var out string
	for i, b := range bindings {
		if i > 0 {
			out += "  "
		}
		h := b.Help()
		out += h.Key + " " + h.Desc
	}
	return out
}
