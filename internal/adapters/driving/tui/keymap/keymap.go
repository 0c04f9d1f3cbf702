// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	// Quit exits the application.
	Quit key.Binding

	// Help shows the key reference.
	Help key.Binding

	// Back leaves a dialog or the content viewer.
	Back key.Binding

	// Up moves the cursor up.
	Up key.Binding

	// Down moves the cursor down.
	Down key.Binding

	// Toggle flips the selection of the row under the cursor.
	Toggle key.Binding

	// SelectAll selects every row on the page.
	SelectAll key.Binding

	// ClearSelection empties the selection.
	ClearSelection key.Binding

	// Open loads the row under the cursor into the content viewer.
	Open key.Binding

	// PrevPage moves one page back.
	PrevPage key.Binding

	// NextPage moves one page forward.
	NextPage key.Binding

	// Fragment opens the fragmentation dialog.
	Fragment key.Binding

	// Delete removes the selected fragments.
	Delete key.Binding

	// AddPicker adds documents through the file picker.
	AddPicker key.Binding

	// AddPaths adds documents typed into a prompt.
	AddPaths key.Binding

	// Refresh reloads the current page.
	Refresh key.Binding

	// SwitchFocus moves between the table and the content viewer.
	SwitchFocus key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "select"),
		),
		SelectAll: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "select page"),
		),
		ClearSelection: key.NewBinding(
			key.WithKeys("A"),
			key.WithHelp("A", "clear"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "prev page"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next page"),
		),
		Fragment: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "fragment"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		AddPicker: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "add files"),
		),
		AddPaths: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "add paths"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		SwitchFocus: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch pane"),
		),
	}
}

// ShortHelp returns the bindings shown in the status line.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Fragment, k.AddPicker, k.Help, k.Quit}
}

// FullHelp returns the full list of keybindings for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Open, k.SwitchFocus},
		{k.Toggle, k.SelectAll, k.ClearSelection},
		{k.PrevPage, k.NextPage, k.Refresh},
		{k.Fragment, k.Delete, k.AddPicker, k.AddPaths},
		{k.Help, k.Back, k.Quit},
	}
}

// Matches checks if a key string matches a binding.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}
