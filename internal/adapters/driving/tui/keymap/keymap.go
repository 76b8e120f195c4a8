// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	// Quit exits the application.
	Quit key.Binding

	// Interrupt exits the application from any view, including text entry.
	Interrupt key.Binding

	// Help toggles the help view.
	Help key.Binding

	// Back returns to the cell view.
	Back key.Binding

	// NextCell moves to the following cell.
	NextCell key.Binding

	// PrevCell moves to the preceding cell.
	PrevCell key.Binding

	// FirstCell jumps to the first cell.
	FirstCell key.Binding

	// LastCell jumps to the last cell.
	LastCell key.Binding

	// ScrollUp scrolls the cell text up.
	ScrollUp key.Binding

	// ScrollDown scrolls the cell text down.
	ScrollDown key.Binding

	// NextAnnotation selects the next annotation of the cell.
	NextAnnotation key.Binding

	// PrevAnnotation selects the previous annotation of the cell.
	PrevAnnotation key.Binding

	// Annotate opens the annotation input for the current cell.
	Annotate key.Binding

	// Delete removes the selected annotation.
	Delete key.Binding

	// Export writes the annotated document.
	Export key.Binding

	// Reload loads the document again from disk.
	Reload key.Binding

	// Submit confirms the annotation input.
	Submit key.Binding

	// Cancel discards the annotation input.
	Cancel key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Interrupt: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		NextCell: key.NewBinding(
			key.WithKeys("right", "l", "n"),
			key.WithHelp("→/n", "next cell"),
		),
		PrevCell: key.NewBinding(
			key.WithKeys("left", "h", "p"),
			key.WithHelp("←/p", "prev cell"),
		),
		FirstCell: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("g", "first cell"),
		),
		LastCell: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("G", "last cell"),
		),
		ScrollUp: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll up"),
		),
		ScrollDown: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll down"),
		),
		NextAnnotation: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next note"),
		),
		PrevAnnotation: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev note"),
		),
		Annotate: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "annotate"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "delete note"),
		),
		Export: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "export"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "save"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

// ShortHelp returns a short list of keybindings for the status bar.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit, k.Help}
}

// CellHelp returns keybindings for the cell view.
func (k *KeyMap) CellHelp() []key.Binding {
	return []key.Binding{k.NextCell, k.PrevCell, k.Annotate, k.Export, k.Help}
}

// InputHelp returns keybindings while an annotation is being written.
func (k *KeyMap) InputHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Cancel}
}

// FullHelp returns the full list of keybindings for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextCell, k.PrevCell, k.FirstCell, k.LastCell},
		{k.ScrollUp, k.ScrollDown, k.NextAnnotation, k.PrevAnnotation},
		{k.Annotate, k.Delete, k.Export, k.Reload},
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
