// Package status provides status bar components for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/lenk/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/lenk/internal/adapters/driving/tui/styles"
)

// State represents the current application state for display.
type State string

const (
	StateReady     State = "ready"
	StateLoading   State = "loading"
	StateError     State = "error"
	StateHelp      State = "help"
	StateAnnotate  State = "annotate"
	StateConfirmed State = "confirmed"
)

// Bar displays the cell position, annotation count, and keybinding hints.
type Bar struct {
	styles      *styles.Styles
	keymap      *keymap.KeyMap
	state       State
	message     string
	position    int
	total       int
	annotations int
	width       int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles: s,
		keymap: km,
		state:  StateReady,
		width:  80,
	}
}

// Init initialises the status bar.
func (s *Bar) Init() tea.Cmd {
	return nil
}

// Update handles status bar messages.
func (s *Bar) Update(msg tea.Msg) (*Bar, tea.Cmd) {
	// Bar is passive, updated via Set methods
	return s, nil
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	padding := s.width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}

	return s.styles.StatusBar.Width(s.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

// renderLeft renders the state, message, or cell position.
func (s *Bar) renderLeft() string {
	switch s.state {
	case StateLoading:
		return s.styles.Muted.Render("Loading...")
	case StateError:
		if s.message != "" {
			return s.styles.Error.Render(fmt.Sprintf("Error: %s", s.message))
		}
		return s.styles.Error.Render("Error")
	case StateHelp:
		return s.styles.Normal.Render("Help")
	case StateAnnotate:
		return s.styles.Normal.Render(fmt.Sprintf("Annotating cell %d", s.position))
	case StateConfirmed:
		return s.styles.Success.Render(s.message)
	case StateReady:
	}

	if s.total == 0 {
		return s.styles.Muted.Render("No cells")
	}
	return s.styles.Normal.Render(fmt.Sprintf("Cell %d/%d · %s",
		s.position, s.total, plural(s.annotations, "annotation")))
}

// renderRight renders keybinding hints for the current state.
func (s *Bar) renderRight() string {
	var bindings []key.Binding
	switch {
	case s.state == StateAnnotate:
		bindings = s.keymap.InputHelp()
	case s.total > 0 && s.state != StateHelp:
		bindings = s.keymap.CellHelp()
	default:
		bindings = s.keymap.ShortHelp()
	}

	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return s.styles.Muted.Render(strings.Join(hints, " | "))
}

// SetState sets the current state.
func (s *Bar) SetState(state State) {
	s.state = state
}

// State returns the current state.
func (s *Bar) State() State {
	return s.state
}

// SetMessage sets a custom message.
func (s *Bar) SetMessage(message string) {
	s.message = message
}

// Message returns the current message.
func (s *Bar) Message() string {
	return s.message
}

// SetPosition sets the 1-based cell position and the cell total.
func (s *Bar) SetPosition(position, total int) {
	s.position = position
	s.total = total
}

// Position returns the 1-based cell position.
func (s *Bar) Position() int {
	return s.position
}

// Total returns the number of cells.
func (s *Bar) Total() int {
	return s.total
}

// SetAnnotationCount sets the number of annotations attached in the document.
func (s *Bar) SetAnnotationCount(count int) {
	s.annotations = count
}

// AnnotationCount returns the annotation count.
func (s *Bar) AnnotationCount() int {
	return s.annotations
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Width returns the current width.
func (s *Bar) Width() int {
	return s.width
}

// Clear resets the status bar to the ready state, keeping the position.
func (s *Bar) Clear() {
	s.state = StateReady
	s.message = ""
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return fmt.Sprintf("%d %ss", n, word)
}
