package mcp

import (
	"github.com/custodia-labs/lenk/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Document loads documents and writes exports.
	Document driving.DocumentService

	// Annotation adds and removes annotations.
	Annotation driving.AnnotationService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Document == nil {
		return ErrMissingDocumentService
	}
	// Annotation is optional; without it the server is read-only.
	return nil
}
