package mcp

import (
	"context"
	"net/url"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractDocumentPath(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		expected string
	}{
		{
			name:     "escaped absolute path",
			uri:      "lenk://documents/%2Fdocs%2Fnotes.md",
			expected: "/docs/notes.md",
		},
		{
			name:     "invalid prefix",
			uri:      "file://documents/notes.md",
			expected: "",
		},
		{
			name:     "bad escape",
			uri:      "lenk://documents/%zz",
			expected: "",
		},
		{
			name:     "empty URI",
			uri:      "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractDocumentPath(tt.uri))
		})
	}
}

func TestServer_handleModesResource(t *testing.T) {
	server, _ := newTestServer(t, "x")

	req := &mcp.ReadResourceRequest{Params: &mcp.ReadResourceParams{URI: "lenk://modes"}}
	result, err := server.handleModesResource(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, result.Contents, 1)
	assert.Contains(t, result.Contents[0].Text, `"headings"`)
	assert.Contains(t, result.Contents[0].Text, `"paragraphs"`)
}

func TestServer_handleDocumentResource(t *testing.T) {
	ctx := context.Background()
	server, _ := newTestServer(t, "# A\nHello\n")

	_, _, err := server.handleAddAnnotation(ctx, nil, AddAnnotationInput{Path: testDoc, Body: "greeting"})
	require.NoError(t, err)

	uri := "lenk://documents/" + url.PathEscape(testDoc)
	req := &mcp.ReadResourceRequest{Params: &mcp.ReadResourceParams{URI: uri}}
	result, err := server.handleDocumentResource(ctx, req)
	require.NoError(t, err)
	require.Len(t, result.Contents, 1)
	assert.Contains(t, result.Contents[0].Text, "> greeting")
}

func TestServer_handleDocumentResource_NotFound(t *testing.T) {
	server, _ := newTestServer(t, "x")

	req := &mcp.ReadResourceRequest{Params: &mcp.ReadResourceParams{URI: "other://x"}}
	_, err := server.handleDocumentResource(context.Background(), req)
	assert.Error(t, err)
}
