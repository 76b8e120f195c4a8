package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/custodia-labs/lenk/internal/composer"
	"github.com/custodia-labs/lenk/internal/core/domain"
	"github.com/custodia-labs/lenk/internal/core/ports/driven"
	"github.com/custodia-labs/lenk/internal/core/ports/driving"
	"github.com/custodia-labs/lenk/internal/logger"
	"github.com/custodia-labs/lenk/internal/segmenter"
	"github.com/custodia-labs/lenk/internal/signature"
)

// Ensure DocumentService implements the interface.
var _ driving.DocumentService = (*DocumentService)(nil)

// DocumentService loads documents, resolves their annotations and
// writes annotated exports.
type DocumentService struct {
	content     driven.ContentSource
	annotations driven.AnnotationStore
	sink        driven.ExportSink
	watcher     driven.DocumentWatcher
	parser      *segmenter.Parser
	resolver    *MatchResolver
	defaultMode domain.ParseMode
	now         func() time.Time
}

// DocumentOption configures a DocumentService.
type DocumentOption func(*DocumentService)

// WithParser sets the parser, typically one carrying configured limits.
func WithParser(p *segmenter.Parser) DocumentOption {
	return func(s *DocumentService) {
		if p != nil {
			s.parser = p
		}
	}
}

// WithExportSink enables Export.
func WithExportSink(sink driven.ExportSink) DocumentOption {
	return func(s *DocumentService) {
		s.sink = sink
	}
}

// WithWatcher enables Watch.
func WithWatcher(w driven.DocumentWatcher) DocumentOption {
	return func(s *DocumentService) {
		s.watcher = w
	}
}

// WithDefaultMode sets the parse mode used when callers pass an empty mode.
func WithDefaultMode(mode domain.ParseMode) DocumentOption {
	return func(s *DocumentService) {
		if mode.IsValid() {
			s.defaultMode = mode
		}
	}
}

// WithClock sets the time source for match records and export names.
func WithClock(now func() time.Time) DocumentOption {
	return func(s *DocumentService) {
		if now != nil {
			s.now = now
		}
	}
}

// NewDocumentService creates a new document service.
func NewDocumentService(
	content driven.ContentSource,
	annotations driven.AnnotationStore,
	opts ...DocumentOption,
) *DocumentService {
	s := &DocumentService{
		content:     content,
		annotations: annotations,
		parser:      segmenter.New(),
		defaultMode: domain.ParseModeHeadings,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.resolver = NewMatchResolver(annotations, WithResolverClock(s.now))
	return s
}

// NormalizePath expands a leading ~ and returns the cleaned absolute path.
// Annotations are keyed by this form.
func NormalizePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", fmt.Errorf("%w: empty path", domain.ErrInvalidInput)
	}
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", path, err)
	}
	return abs, nil
}

// Load parses the document at path and resolves its annotations.
func (s *DocumentService) Load(ctx context.Context, path string, mode domain.ParseMode) (*domain.ResolvedDocument, error) {
	if s.content == nil || s.annotations == nil {
		return nil, domain.ErrNotImplemented
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

	logger.Section("parse")
	res, err := s.parser.Parse(text, mode)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", norm, err)
	}
	if warn := res.Warning(); warn != nil {
		logger.Warn("document truncated", "path", norm, "reason", warn)
	}
	signature.SignAll(res.Cells)

	logger.Section("resolve")
	resolved, err := s.resolver.Resolve(ctx, norm, res.Cells)
	if err != nil {
		return nil, fmt.Errorf("resolving annotations: %w", err)
	}

	orphans, err := s.orphans(ctx, norm, resolved)
	if err != nil {
		return nil, err
	}

	doc := &domain.ResolvedDocument{
		Path:       norm,
		Mode:       mode,
		Cells:      resolved,
		Truncation: res.Truncation,
		Orphans:    orphans,
	}
	logger.Debug("document loaded",
		"path", norm, "mode", mode, "cells", len(doc.Cells),
		"annotations", doc.AnnotationCount(), "orphans", len(orphans))
	return doc, nil
}

// orphans returns the annotations of the document that no cell matched.
func (s *DocumentService) orphans(ctx context.Context, path string, cells []domain.ResolvedCell) ([]domain.Annotation, error) {
	all, err := s.annotations.List(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("listing annotations: %w", err)
	}

	matched := make(map[string]bool)
	for _, c := range cells {
		if c.Match == nil {
			continue
		}
		for _, a := range c.Match.Annotations() {
			matched[a.ID] = true
		}
	}

	var orphans []domain.Annotation
	for _, a := range all {
		if !matched[a.ID] {
			orphans = append(orphans, a)
		}
	}
	return orphans, nil
}

// Summary returns the copy-ready text of one cell and its annotations.
func (s *DocumentService) Summary(ctx context.Context, path string, mode domain.ParseMode, index int) (string, error) {
	doc, err := s.Load(ctx, path, mode)
	if err != nil {
		return "", err
	}
	rc, err := doc.Cell(index)
	if err != nil {
		return "", fmt.Errorf("%w: cell %d out of range (document has %d)", domain.ErrInvalidInput, index+1, len(doc.Cells))
	}
	return composer.Summary(doc.Path, rc, len(doc.Cells)), nil
}

// Compose returns the annotated document text without writing it.
func (s *DocumentService) Compose(ctx context.Context, path string, mode domain.ParseMode) (string, error) {
	doc, err := s.Load(ctx, path, mode)
	if err != nil {
		return "", err
	}
	return composer.Compose(doc), nil
}

// Export composes the annotated document and writes it through the sink.
func (s *DocumentService) Export(ctx context.Context, path string, mode domain.ParseMode, dest string) (string, error) {
	if s.sink == nil {
		return "", domain.ErrNotImplemented
	}

	doc, err := s.Load(ctx, path, mode)
	if err != nil {
		return "", err
	}

	if dest != "" {
		if dest, err = NormalizePath(dest); err != nil {
			return "", err
		}
	}

	written, err := s.sink.Write(ctx, driven.ExportTarget{
		SourcePath: doc.Path,
		Dest:       dest,
		At:         s.now(),
	}, composer.Compose(doc))
	if err != nil {
		return "", fmt.Errorf("exporting %s: %w", doc.Path, err)
	}

	logger.Info("document exported", "path", doc.Path, "dest", written, "annotations", doc.AnnotationCount())
	return written, nil
}

// Watch calls fn with a fresh load now and each time the document changes.
// Returns nil once ctx is done.
func (s *DocumentService) Watch(
	ctx context.Context, path string, mode domain.ParseMode, fn func(*domain.ResolvedDocument, error),
) error {
	if s.watcher == nil {
		return domain.ErrNotImplemented
	}

	norm, err := NormalizePath(path)
	if err != nil {
		return err
	}

	changes, err := s.watcher.Watch(ctx, norm)
	if err != nil {
		return fmt.Errorf("watching %s: %w", norm, err)
	}

	fn(s.Load(ctx, norm, mode))
	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-changes:
			if !ok {
				return nil
			}
			logger.Debug("document changed", "path", norm)
			fn(s.Load(ctx, norm, mode))
		}
	}
}

// Paste splits text into paragraph blocks and writes them to dest as a
// heading document.
func (s *DocumentService) Paste(ctx context.Context, text, dest string) (int, error) {
	if s.content == nil {
		return 0, domain.ErrNotImplemented
	}

	norm, err := NormalizePath(dest)
	if err != nil {
		return 0, err
	}

	res, err := s.parser.Parse(text, domain.ParseModeParagraphs)
	if err != nil {
		return 0, err
	}
	if len(res.Cells) == 0 {
		return 0, fmt.Errorf("%w: nothing to paste", domain.ErrInvalidInput)
	}
	if warn := res.Warning(); warn != nil {
		logger.Warn("pasted text truncated", "dest", norm, "reason", warn)
	}

	if err := s.content.Write(ctx, norm, composer.Sections(res.Cells)); err != nil {
		return 0, fmt.Errorf("writing %s: %w", norm, err)
	}
	return len(res.Cells), nil
}
