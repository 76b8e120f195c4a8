package driven

import (
	"context"
	"time"

	"github.com/custodia-labs/lenk/internal/core/domain"
)

// AnnotationStore persists annotations keyed by document path.
// All list results are ordered by CreatedAt ascending, ties broken by
// insertion order. Backing-store failures wrap domain.ErrPersistenceUnavailable.
type AnnotationStore interface {
	// Add stores a new annotation with CreatedAt set to now and
	// exact confidence. An empty body returns domain.ErrInvalidInput.
	Add(ctx context.Context, documentPath, headingLabel, signature string, cellIndex int, body string) (*domain.Annotation, error)

	// QueryExact returns annotations whose heading label and signature both match.
	QueryExact(ctx context.Context, documentPath, headingLabel, signature string) ([]domain.Annotation, error)

	// QueryByHeading returns annotations whose heading label matches.
	QueryByHeading(ctx context.Context, documentPath, headingLabel string) ([]domain.Annotation, error)

	// List returns every annotation of a document.
	List(ctx context.Context, documentPath string) ([]domain.Annotation, error)

	// Delete removes an annotation.
	// Returns domain.ErrAnnotationNotFound if no annotation has the id.
	Delete(ctx context.Context, documentPath, id string) error

	// RefreshConfidence records a match. Repeating a call is harmless,
	// and an id that no longer exists is ignored.
	RefreshConfidence(ctx context.Context, documentPath, id string, confidence domain.Confidence, now time.Time) error

	// Close releases the store's resources.
	Close() error
}
