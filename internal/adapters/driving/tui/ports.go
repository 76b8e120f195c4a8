// Package tui provides an interactive terminal viewer for annotated documents.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/lenk/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the TUI.
type Ports struct {
	// Document loads, exports, and watches documents.
	Document driving.DocumentService

	// Annotation adds and removes annotations.
	Annotation driving.AnnotationService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(document driving.DocumentService, annotation driving.AnnotationService) *Ports {
	return &Ports{
		Document:   document,
		Annotation: annotation,
	}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Document == nil {
		return ErrMissingDocumentService
	}
	if p.Annotation == nil {
		return ErrMissingAnnotationService
	}
	return nil
}
