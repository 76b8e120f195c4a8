package mcp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/lenk/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/lenk/internal/core/services"
)

const testDoc = "/docs/notes.md"

// newTestServer returns a server over in-memory stores holding testDoc.
func newTestServer(t *testing.T, text string) (*Server, *memory.ContentStore) {
	t.Helper()
	content := memory.NewContentStore()
	require.NoError(t, content.Write(context.Background(), testDoc, text))
	store := memory.NewAnnotationStore()

	server, err := NewServer(&Ports{
		Document:   services.NewDocumentService(content, store),
		Annotation: services.NewAnnotationService(content, store, nil),
	})
	require.NoError(t, err)
	return server, content
}
