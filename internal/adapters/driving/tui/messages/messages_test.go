package messages

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/lenk/internal/core/domain"
)

func TestViewType_String(t *testing.T) {
	tests := []struct {
		view ViewType
		want string
	}{
		{ViewCell, "cell"},
		{ViewAnnotate, "annotate"},
		{ViewHelp, "help"},
		{ViewType(42), "unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.view.String())
		})
	}
}

func TestViewType_ZeroIsCell(t *testing.T) {
	var v ViewType
	assert.Equal(t, ViewCell, v)
}

func TestDocumentLoaded(t *testing.T) {
	doc := &domain.ResolvedDocument{Path: "/docs/notes.md", Mode: domain.ParseModeHeadings}
	msg := DocumentLoaded{Document: doc}

	assert.Equal(t, doc, msg.Document)
	assert.NoError(t, msg.Err)

	failed := DocumentLoaded{Err: domain.ErrNotFound}
	assert.Nil(t, failed.Document)
	assert.ErrorIs(t, failed.Err, domain.ErrNotFound)
}

func TestAnnotationMessages(t *testing.T) {
	a := &domain.Annotation{ID: "a1", Body: "note"}
	added := AnnotationAdded{Annotation: a}
	assert.Equal(t, "note", added.Annotation.Body)

	deleted := AnnotationDeleted{ID: "a1", Err: errors.New("boom")}
	assert.Equal(t, "a1", deleted.ID)
	assert.EqualError(t, deleted.Err, "boom")
}

func TestDocumentExported(t *testing.T) {
	msg := DocumentExported{Path: "/docs/notes__annotated__20261016_1405.md"}
	assert.Contains(t, msg.Path, "__annotated__")
}
