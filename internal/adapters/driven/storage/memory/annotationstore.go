package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/lenk/internal/core/domain"
	"github.com/custodia-labs/lenk/internal/core/ports/driven"
)

// Ensure AnnotationStore implements the interface.
var _ driven.AnnotationStore = (*AnnotationStore)(nil)

// AnnotationStore is an in-memory implementation of driven.AnnotationStore.
// Annotations are kept per document in insertion order.
type AnnotationStore struct {
	mu          sync.RWMutex
	annotations map[string][]domain.Annotation
	now         func() time.Time
}

// Option configures the annotation store.
type Option func(*AnnotationStore)

// WithClock sets the time source used for CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(s *AnnotationStore) {
		if now != nil {
			s.now = now
		}
	}
}

// NewAnnotationStore creates a new in-memory annotation store.
func NewAnnotationStore(opts ...Option) *AnnotationStore {
	s := &AnnotationStore{
		annotations: make(map[string][]domain.Annotation),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add stores a new annotation.
func (s *AnnotationStore) Add(
	_ context.Context, documentPath, headingLabel, signature string, cellIndex int, body string,
) (*domain.Annotation, error) {
	if strings.TrimSpace(body) == "" {
		return nil, domain.ErrInvalidInput
	}

	a := domain.Annotation{
		ID:           uuid.New().String(),
		DocumentPath: documentPath,
		HeadingLabel: headingLabel,
		Signature:    signature,
		CellIndex:    cellIndex,
		Body:         body,
		CreatedAt:    s.now().UTC(),
		Confidence:   domain.ConfidenceExact,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.annotations[documentPath] = append(s.annotations[documentPath], a)
	return &a, nil
}

// QueryExact returns annotations matching heading label and signature.
func (s *AnnotationStore) QueryExact(
	_ context.Context, documentPath, headingLabel, signature string,
) ([]domain.Annotation, error) {
	return s.filter(documentPath, func(a domain.Annotation) bool {
		return a.HeadingLabel == headingLabel && a.Signature == signature
	}), nil
}

// QueryByHeading returns annotations matching heading label.
func (s *AnnotationStore) QueryByHeading(
	_ context.Context, documentPath, headingLabel string,
) ([]domain.Annotation, error) {
	return s.filter(documentPath, func(a domain.Annotation) bool {
		return a.HeadingLabel == headingLabel
	}), nil
}

// List returns every annotation of a document.
func (s *AnnotationStore) List(_ context.Context, documentPath string) ([]domain.Annotation, error) {
	return s.filter(documentPath, func(domain.Annotation) bool { return true }), nil
}

// Delete removes an annotation.
func (s *AnnotationStore) Delete(_ context.Context, documentPath, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.annotations[documentPath]
	for i := range list {
		if list[i].ID == id {
			s.annotations[documentPath] = append(list[:i:i], list[i+1:]...)
			return nil
		}
	}
	return domain.ErrAnnotationNotFound
}

// RefreshConfidence records the latest match of an annotation.
// Unknown ids are ignored.
func (s *AnnotationStore) RefreshConfidence(
	_ context.Context, documentPath, id string, confidence domain.Confidence, now time.Time,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.annotations[documentPath]
	for i := range list {
		if list[i].ID == id {
			at := now.UTC()
			list[i].Confidence = confidence
			list[i].LastMatchedAt = &at
			return nil
		}
	}
	return nil
}

// Close is a no-op.
func (s *AnnotationStore) Close() error {
	return nil
}

func (s *AnnotationStore) filter(documentPath string, keep func(domain.Annotation) bool) []domain.Annotation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Annotation
	for _, a := range s.annotations[documentPath] {
		if keep(a) {
			out = append(out, clone(a))
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

func clone(a domain.Annotation) domain.Annotation {
	if a.LastMatchedAt != nil {
		at := *a.LastMatchedAt
		a.LastMatchedAt = &at
	}
	return a
}
