// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/lenk/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/lenk/internal/core/domain"
)

// AnnotationList displays the annotations of one cell in a navigable list.
type AnnotationList struct {
	annotations []domain.Annotation
	selected    int
	styles      *styles.Styles
	width       int
	height      int
}

// NewAnnotationList creates a new annotation list component.
func NewAnnotationList(s *styles.Styles) *AnnotationList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &AnnotationList{
		styles: s,
		width:  80,
		height: 10,
	}
}

// Init initialises the annotation list.
func (l *AnnotationList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (l *AnnotationList) Update(msg tea.Msg) (*AnnotationList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		//nolint:exhaustive // handling only relevant key types
		switch msg.Type {
		case tea.KeyTab:
			l.MoveDown()
		case tea.KeyShiftTab:
			l.MoveUp()
		default:
		}
	}
	return l, nil
}

// View renders the annotation list.
func (l *AnnotationList) View() string {
	if len(l.annotations) == 0 {
		return l.styles.Muted.Render("No annotations. Press a to add one.")
	}

	lines := make([]string, 0, len(l.annotations)+2)
	lines = append(lines, l.styles.Subtitle.Render(fmt.Sprintf("Annotations (%d)", len(l.annotations))), "")

	// Each annotation takes two lines
	visible := (l.height - 2) / 2
	if visible < 1 {
		visible = 1
	}
	start := 0
	if l.selected >= visible {
		start = l.selected - visible + 1
	}
	end := start + visible
	if end > len(l.annotations) {
		end = len(l.annotations)
	}

	for i := start; i < end; i++ {
		lines = append(lines, l.renderAnnotation(i, &l.annotations[i]))
	}
	return strings.Join(lines, "\n")
}

// renderAnnotation formats one annotation with its confidence badge.
func (l *AnnotationList) renderAnnotation(index int, a *domain.Annotation) string {
	indicator := "  "
	if index == l.selected {
		indicator = "> "
	}

	badge := l.styles.ExactBadge.Render("exact")
	if a.IsOutdated() {
		badge = l.styles.FuzzyBadge.Render("changed")
	}

	body, _, _ := strings.Cut(a.Body, "\n")
	maxBody := l.width - 16
	if maxBody < 10 {
		maxBody = 10
	}
	if r := []rune(body); len(r) > maxBody {
		body = string(r[:maxBody-3]) + "..."
	}

	bodyLine := l.styles.Normal.Render(indicator + body)
	if index == l.selected {
		bodyLine = l.styles.Selected.Render(indicator + body)
	}

	meta := "written " + a.CreatedAt.Local().Format("2006-01-02 15:04")
	if a.IsOutdated() {
		meta += ", cell changed since"
	}
	return bodyLine + " " + badge + "\n" + l.styles.Muted.Render("    "+meta)
}

// SetAnnotations replaces the list contents and resets the selection.
func (l *AnnotationList) SetAnnotations(annotations []domain.Annotation) {
	l.annotations = annotations
	l.selected = 0
}

// Annotations returns the current annotations.
func (l *AnnotationList) Annotations() []domain.Annotation {
	return l.annotations
}

// Selected returns the index of the selected annotation.
func (l *AnnotationList) Selected() int {
	return l.selected
}

// SetSelected sets the selected index.
func (l *AnnotationList) SetSelected(index int) {
	if index >= 0 && index < len(l.annotations) {
		l.selected = index
	}
}

// SelectedAnnotation returns the selected annotation, or nil if none.
func (l *AnnotationList) SelectedAnnotation() *domain.Annotation {
	if l.selected < 0 || l.selected >= len(l.annotations) {
		return nil
	}
	return &l.annotations[l.selected]
}

// MoveUp moves selection up, wrapping to the last annotation.
func (l *AnnotationList) MoveUp() {
	if len(l.annotations) == 0 {
		return
	}
	l.selected = (l.selected - 1 + len(l.annotations)) % len(l.annotations)
}

// MoveDown moves selection down, wrapping to the first annotation.
func (l *AnnotationList) MoveDown() {
	if len(l.annotations) == 0 {
		return
	}
	l.selected = (l.selected + 1) % len(l.annotations)
}

// SetDimensions sets the component dimensions.
func (l *AnnotationList) SetDimensions(width, height int) {
	l.width = width
	l.height = height
}

// Count returns the number of annotations.
func (l *AnnotationList) Count() int {
	return len(l.annotations)
}

// IsEmpty returns whether the list is empty.
func (l *AnnotationList) IsEmpty() bool {
	return len(l.annotations) == 0
}
