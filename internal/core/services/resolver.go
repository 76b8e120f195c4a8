package services

import (
	"context"
	"fmt"
	"time"

	"github.com/custodia-labs/lenk/internal/core/domain"
	"github.com/custodia-labs/lenk/internal/core/ports/driven"
	"github.com/custodia-labs/lenk/internal/logger"
)

// MatchResolver re-attaches stored annotations to freshly parsed cells.
//
// A cell first tries an exact match on heading label and signature. Failing
// that it falls back to every annotation under the same heading label, which
// are reported as possibly outdated. Each match is recorded in the store.
type MatchResolver struct {
	store driven.AnnotationStore
	now   func() time.Time
}

// ResolverOption configures a MatchResolver.
type ResolverOption func(*MatchResolver)

// WithResolverClock sets the time source recorded on matches.
func WithResolverClock(now func() time.Time) ResolverOption {
	return func(r *MatchResolver) {
		if now != nil {
			r.now = now
		}
	}
}

// NewMatchResolver creates a resolver backed by store.
func NewMatchResolver(store driven.AnnotationStore, opts ...ResolverOption) *MatchResolver {
	r := &MatchResolver{
		store: store,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve matches every cell of the document at documentPath.
// The returned slice has one entry per cell, in cell order.
func (r *MatchResolver) Resolve(ctx context.Context, documentPath string, cells []domain.Cell) ([]domain.ResolvedCell, error) {
	if r.store == nil {
		return nil, domain.ErrNotImplemented
	}

	resolved := make([]domain.ResolvedCell, 0, len(cells))
	for _, cell := range cells {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		match, err := r.ResolveCell(ctx, documentPath, cell)
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, domain.ResolvedCell{Cell: cell, Match: match})
	}
	return resolved, nil
}

// ResolveCell matches a single cell.
func (r *MatchResolver) ResolveCell(ctx context.Context, documentPath string, cell domain.Cell) (domain.MatchOutcome, error) {
	if r.store == nil {
		return nil, domain.ErrNotImplemented
	}

	exact, err := r.store.QueryExact(ctx, documentPath, cell.HeadingLabel, cell.Signature)
	if err != nil {
		return nil, fmt.Errorf("exact match for %q: %w", cell.HeadingLabel, err)
	}
	if len(exact) > 0 {
		if err := r.refresh(ctx, documentPath, exact, domain.ConfidenceExact); err != nil {
			return nil, err
		}
		return domain.Exact{Matched: exact}, nil
	}

	fuzzy, err := r.store.QueryByHeading(ctx, documentPath, cell.HeadingLabel)
	if err != nil {
		return nil, fmt.Errorf("heading match for %q: %w", cell.HeadingLabel, err)
	}
	if len(fuzzy) > 0 {
		if err := r.refresh(ctx, documentPath, fuzzy, domain.ConfidenceFuzzy); err != nil {
			return nil, err
		}
		return domain.Fuzzy{Matched: fuzzy}, nil
	}

	return domain.None{}, nil
}

// refresh records the match in the store and on the returned copies.
func (r *MatchResolver) refresh(ctx context.Context, documentPath string, matched []domain.Annotation, c domain.Confidence) error {
	now := r.now()
	for i := range matched {
		if err := r.store.RefreshConfidence(ctx, documentPath, matched[i].ID, c, now); err != nil {
			return fmt.Errorf("recording match for %s: %w", matched[i].ID, err)
		}
		at := now
		matched[i].Confidence = c
		matched[i].LastMatchedAt = &at
	}
	logger.Debug("annotations matched", "path", documentPath, "confidence", c, "count", len(matched))
	return nil
}
