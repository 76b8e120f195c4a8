// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/lenk/internal/core/domain"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewCell shows one cell with its annotations.
	ViewCell ViewType = iota
	// ViewAnnotate shows the annotation input below the cell.
	ViewAnnotate
	// ViewHelp is the keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewCell:
		return "cell"
	case ViewAnnotate:
		return "annotate"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// DocumentLoaded carries the result of an explicit load or reload.
type DocumentLoaded struct {
	Document *domain.ResolvedDocument
	Err      error
}

// DocumentChanged carries a reload triggered by a change on disk.
type DocumentChanged struct {
	Document *domain.ResolvedDocument
	Err      error
}

// AnnotationAdded signals an annotation was written.
type AnnotationAdded struct {
	Annotation *domain.Annotation
	Err        error
}

// AnnotationDeleted signals an annotation was removed.
type AnnotationDeleted struct {
	ID  string
	Err error
}

// DocumentExported signals the annotated document was written.
type DocumentExported struct {
	Path string
	Err  error
}
