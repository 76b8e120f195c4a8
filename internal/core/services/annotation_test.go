package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/lenk/internal/core/domain"
	"github.com/custodia-labs/lenk/internal/signature"
)

func TestAnnotationService_NilStore(t *testing.T) {
	svc := NewAnnotationService(nil, nil, nil)
	ctx := context.Background()

	_, err := svc.Add(ctx, docPath, domain.ParseModeHeadings, 0, "x")
	assert.ErrorIs(t, err, domain.ErrNotImplemented)
	assert.ErrorIs(t, svc.Delete(ctx, docPath, "id"), domain.ErrNotImplemented)
	_, err = svc.List(ctx, docPath)
	assert.ErrorIs(t, err, domain.ErrNotImplemented)
}

func TestAnnotationService_Add(t *testing.T) {
	f := newFixture(t, "# A\nHello\n# B\nWorld\n")

	a, err := f.annotations.Add(context.Background(), docPath, domain.ParseModeHeadings, 1, "  nice  ")
	require.NoError(t, err)

	assert.NotEmpty(t, a.ID)
	assert.Equal(t, docPath, a.DocumentPath)
	assert.Equal(t, "# B", a.HeadingLabel)
	assert.Equal(t, signature.Compute("# B\nWorld\n"), a.Signature)
	assert.Equal(t, 1, a.CellIndex)
	assert.Equal(t, "nice", a.Body)
	assert.Equal(t, domain.ConfidenceExact, a.Confidence)
}

func TestAnnotationService_Add_ParagraphMode(t *testing.T) {
	f := newFixture(t, "alpha\n\n\nbeta\n")

	a, err := f.annotations.Add(context.Background(), docPath, domain.ParseModeParagraphs, 1, "second block")
	require.NoError(t, err)
	assert.Equal(t, "Cell 2", a.HeadingLabel)
	assert.Equal(t, signature.Compute("beta"), a.Signature)
}

func TestAnnotationService_DefaultMode(t *testing.T) {
	f := newFixture(t, "alpha\n\n\nbeta\n")
	ctx := context.Background()

	a, err := f.annotations.Add(ctx, docPath, "", 0, "headings by default")
	require.NoError(t, err)
	assert.Equal(t, domain.NoHeadingLabel, a.HeadingLabel)

	svc := NewAnnotationService(f.content, f.store, nil, WithAnnotationMode(domain.ParseModeParagraphs))
	a, err = svc.Add(ctx, docPath, "", 1, "configured mode")
	require.NoError(t, err)
	assert.Equal(t, "Cell 2", a.HeadingLabel)

	svc = NewAnnotationService(f.content, f.store, nil, WithAnnotationMode("sentences"))
	assert.Equal(t, domain.ParseModeHeadings, svc.defaultMode)
}

func TestAnnotationService_Add_Invalid(t *testing.T) {
	f := newFixture(t, "# A\n")
	ctx := context.Background()

	tests := []struct {
		name  string
		index int
		body  string
	}{
		{"empty body", 0, "   "},
		{"negative index", -1, "x"},
		{"index past end", 1, "x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.annotations.Add(ctx, docPath, domain.ParseModeHeadings, tt.index, tt.body)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}

	list, err := f.annotations.List(ctx, docPath)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestAnnotationService_Add_MissingDocument(t *testing.T) {
	f := newFixture(t, "# A\n")

	_, err := f.annotations.Add(context.Background(), "/docs/none.md", domain.ParseModeHeadings, 0, "x")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAnnotationService_ListOrder(t *testing.T) {
	f := newFixture(t, "# A\n# B\n")
	ctx := context.Background()

	for _, body := range []string{"first", "second", "third"} {
		_, err := f.annotations.Add(ctx, docPath, domain.ParseModeHeadings, 0, body)
		require.NoError(t, err)
	}

	list, err := f.annotations.List(ctx, docPath)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "first", list[0].Body)
	assert.Equal(t, "third", list[2].Body)
}

func TestAnnotationService_Delete(t *testing.T) {
	f := newFixture(t, "# A\nHello\n")
	ctx := context.Background()

	a, err := f.annotations.Add(ctx, docPath, domain.ParseModeHeadings, 0, "note")
	require.NoError(t, err)

	require.NoError(t, f.annotations.Delete(ctx, docPath, a.ID))

	doc, err := f.documents.Load(ctx, docPath, domain.ParseModeHeadings)
	require.NoError(t, err)
	assert.Equal(t, domain.None{}, doc.Cells[0].Match)
}

func TestAnnotationService_Delete_Unknown(t *testing.T) {
	f := newFixture(t, "# A\n")

	err := f.annotations.Delete(context.Background(), docPath, "nonexistent")
	assert.ErrorIs(t, err, domain.ErrAnnotationNotFound)
}

func TestAnnotationService_Delete_OtherDocument(t *testing.T) {
	f := newFixture(t, "# A\n")
	ctx := context.Background()

	a, err := f.annotations.Add(ctx, docPath, domain.ParseModeHeadings, 0, "note")
	require.NoError(t, err)

	err = f.annotations.Delete(ctx, "/docs/other.md", a.ID)
	assert.ErrorIs(t, err, domain.ErrAnnotationNotFound)

	list, err := f.annotations.List(ctx, docPath)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestAnnotationService_Delete_EmptyID(t *testing.T) {
	f := newFixture(t, "# A\n")

	err := f.annotations.Delete(context.Background(), docPath, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
