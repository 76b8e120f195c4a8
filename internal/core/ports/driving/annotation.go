package driving

import (
	"context"

	"github.com/custodia-labs/lenk/internal/core/domain"
)

// AnnotationService manages annotations on document cells.
type AnnotationService interface {
	// Add attaches body to the cell at index in the current document text.
	Add(ctx context.Context, path string, mode domain.ParseMode, index int, body string) (*domain.Annotation, error)

	// Delete removes an annotation from a document.
	Delete(ctx context.Context, path, id string) error

	// List returns every annotation of a document, oldest first.
	List(ctx context.Context, path string) ([]domain.Annotation, error)
}
