package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/lenk/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for lenk resources.
	uriScheme = "lenk://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for the available parse modes.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "modes",
		Name:        "parse-modes",
		Description: "Ways a document can be split into cells",
		MIMEType:    "application/json",
	}, s.handleModesResource)

	// Template for annotated documents. The path is URL-escaped.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "documents/{path}",
		Name:        "annotated-document",
		Description: "A document with its annotations inlined",
		MIMEType:    "text/markdown",
	}, s.handleDocumentResource)
}

// handleModesResource returns the parse modes and their descriptions.
func (s *Server) handleModesResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	type modeInfo struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}

	modes := domain.AllParseModes()
	infos := make([]modeInfo, len(modes))
	for i, m := range modes {
		infos[i] = modeInfo{Name: m.String(), Description: m.Description()}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling modes: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleDocumentResource returns the composed text of a document.
func (s *Server) handleDocumentResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	path := extractDocumentPath(req.Params.URI)
	if path == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	text, err := s.ports.Document.Compose(ctx, path, "")
	if err != nil {
		return nil, fmt.Errorf("composing document: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/markdown",
			Text:     text,
		}},
	}, nil
}

// extractDocumentPath extracts the document path from a URI like
// lenk://documents/{path}.
func extractDocumentPath(uri string) string {
	const prefix = uriScheme + "documents/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	path, err := url.PathUnescape(strings.TrimPrefix(uri, prefix))
	if err != nil {
		return ""
	}
	return path
}
