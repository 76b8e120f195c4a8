// Package input provides text input components for the TUI.
package input

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/lenk/internal/adapters/driving/tui/styles"
)

// bodyLimit caps a single annotation typed in the TUI.
const bodyLimit = 2000

// AnnotationInput wraps a bubbles textinput for writing an annotation.
// It starts blurred; the app focuses it when annotating a cell.
type AnnotationInput struct {
	textinput textinput.Model
	styles    *styles.Styles
	width     int
}

// NewAnnotationInput creates a new annotation input component.
func NewAnnotationInput(s *styles.Styles) *AnnotationInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = "Write a note for this cell..."
	ti.CharLimit = bodyLimit
	ti.Width = 50

	return &AnnotationInput{
		textinput: ti,
		styles:    s,
		width:     50,
	}
}

// Init initialises the annotation input.
func (a *AnnotationInput) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input messages.
func (a *AnnotationInput) Update(msg tea.Msg) (*AnnotationInput, tea.Cmd) {
	var cmd tea.Cmd
	a.textinput, cmd = a.textinput.Update(msg)
	return a, cmd
}

// View renders the annotation input.
func (a *AnnotationInput) View() string {
	label := a.styles.Title.Render("Note: ")
	field := a.styles.InputField.Render(a.textinput.View())
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.JoinHorizontal(lipgloss.Center, label, field)
}

// Value returns the current input value.
func (a *AnnotationInput) Value() string {
	return a.textinput.Value()
}

// Body returns the input value trimmed of surrounding whitespace.
func (a *AnnotationInput) Body() string {
	return strings.TrimSpace(a.textinput.Value())
}

// SetValue sets the input value.
func (a *AnnotationInput) SetValue(value string) {
	a.textinput.SetValue(value)
}

// Focus sets focus on the input.
func (a *AnnotationInput) Focus() tea.Cmd {
	return a.textinput.Focus()
}

// Blur removes focus from the input.
func (a *AnnotationInput) Blur() {
	a.textinput.Blur()
}

// Focused returns whether the input is focused.
func (a *AnnotationInput) Focused() bool {
	return a.textinput.Focused()
}

// SetWidth sets the width of the input.
func (a *AnnotationInput) SetWidth(width int) {
	a.width = width
	// Account for label and border
	inputWidth := width - 12
	if inputWidth < 20 {
		inputWidth = 20
	}
	a.textinput.Width = inputWidth
}

// Width returns the current width.
func (a *AnnotationInput) Width() int {
	return a.width
}

// Reset clears and blurs the input.
func (a *AnnotationInput) Reset() {
	a.textinput.Reset()
	a.textinput.Blur()
}
