// Package mcp provides an MCP (Model Context Protocol) server adapter for lenk.
// It lets AI assistants read document cells and manage their annotations.
package mcp

import "errors"

// ErrMissingDocumentService is returned when the document service is not provided.
var ErrMissingDocumentService = errors.New("mcp: document service is required")

// ErrMissingAnnotationService is returned by annotation tools when no
// annotation service was provided.
var ErrMissingAnnotationService = errors.New("mcp: annotation service is not configured")
