package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/lenk/internal/core/domain"
	"github.com/custodia-labs/lenk/internal/core/ports/driven"
	"github.com/custodia-labs/lenk/internal/core/ports/driving"
	"github.com/custodia-labs/lenk/internal/logger"
	"github.com/custodia-labs/lenk/internal/segmenter"
	"github.com/custodia-labs/lenk/internal/signature"
)

// Ensure AnnotationService implements the interface.
var _ driving.AnnotationService = (*AnnotationService)(nil)

// AnnotationService attaches annotations to cells and manages them.
type AnnotationService struct {
	content     driven.ContentSource
	annotations driven.AnnotationStore
	parser      *segmenter.Parser
	defaultMode domain.ParseMode
}

// AnnotationOption configures an AnnotationService.
type AnnotationOption func(*AnnotationService)

// WithAnnotationMode sets the parse mode used when callers pass an empty
// mode. It must match the document service default so indexes agree.
func WithAnnotationMode(mode domain.ParseMode) AnnotationOption {
	return func(s *AnnotationService) {
		if mode.IsValid() {
			s.defaultMode = mode
		}
	}
}

// NewAnnotationService creates a new annotation service.
// A nil parser uses the default limits.
func NewAnnotationService(
	content driven.ContentSource,
	annotations driven.AnnotationStore,
	parser *segmenter.Parser,
	opts ...AnnotationOption,
) *AnnotationService {
	if parser == nil {
		parser = segmenter.New()
	}
	s := &AnnotationService{
		content:     content,
		annotations: annotations,
		parser:      parser,
		defaultMode: domain.ParseModeHeadings,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add attaches body to the cell at index in the current document text.
// The annotation is keyed by the cell's heading label and signature.
func (s *AnnotationService) Add(
	ctx context.Context, path string, mode domain.ParseMode, index int, body string,
) (*domain.Annotation, error) {
	if s.content == nil || s.annotations == nil {
		return nil, domain.ErrNotImplemented
	}

	body = strings.TrimSpace(body)
	if body == "" {
		return nil, fmt.Errorf("%w: annotation body is empty", domain.ErrInvalidInput)
	}

	norm, err := NormalizePath(path)
	if err != nil {
		return nil, err
	}
	if mode == "" {
		mode = s.defaultMode
	}

	text, err := s.content.Read(ctx, norm)
	if err != nil {
		return nil, err
	}
	res, err := s.parser.Parse(text, mode)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", norm, err)
	}
	if index < 0 || index >= len(res.Cells) {
		return nil, fmt.Errorf("%w: cell %d out of range (document has %d)", domain.ErrInvalidInput, index+1, len(res.Cells))
	}

	cell := res.Cells[index]
	a, err := s.annotations.Add(ctx, norm, cell.HeadingLabel, signature.Compute(cell.RawText), index, body)
	if err != nil {
		return nil, fmt.Errorf("saving annotation: %w", err)
	}

	logger.Info("annotation added", "path", norm, "cell", index, "heading", cell.HeadingLabel, "id", a.ID)
	return a, nil
}

// Delete removes an annotation from a document.
func (s *AnnotationService) Delete(ctx context.Context, path, id string) error {
	if s.annotations == nil {
		return domain.ErrNotImplemented
	}
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: annotation id is empty", domain.ErrInvalidInput)
	}

	norm, err := NormalizePath(path)
	if err != nil {
		return err
	}
	if err := s.annotations.Delete(ctx, norm, id); err != nil {
		return err
	}

	logger.Info("annotation deleted", "path", norm, "id", id)
	return nil
}

// List returns every annotation of a document, oldest first.
func (s *AnnotationService) List(ctx context.Context, path string) ([]domain.Annotation, error) {
	if s.annotations == nil {
		return nil, domain.ErrNotImplemented
	}

	norm, err := NormalizePath(path)
	if err != nil {
		return nil, err
	}
	return s.annotations.List(ctx, norm)
}
