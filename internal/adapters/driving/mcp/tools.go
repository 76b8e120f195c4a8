package mcp

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/lenk/internal/core/domain"
)

// LoadDocumentInput is the input schema for the load_document tool.
type LoadDocumentInput struct {
	Path string `json:"path" jsonschema:"path of the document to load"`
	Mode string `json:"mode,omitempty" jsonschema:"parse mode: headings (default) or paragraphs"`
}

// LoadDocumentOutput is the output schema for the load_document tool.
type LoadDocumentOutput struct {
	Path        string       `json:"path"`
	Mode        string       `json:"mode"`
	Cells       []CellOutput `json:"cells"`
	Annotations int          `json:"annotations"`
	Orphans     int          `json:"orphans"`
	Truncation  string       `json:"truncation,omitempty"`
}

// CellOutput represents one resolved cell.
type CellOutput struct {
	Index       int                `json:"index"`
	Heading     string             `json:"heading"`
	Match       string             `json:"match"`
	Content     string             `json:"content"`
	Annotations []AnnotationOutput `json:"annotations,omitempty"`
}

// AnnotationOutput represents a single annotation.
type AnnotationOutput struct {
	ID        string `json:"id"`
	Body      string `json:"body"`
	CreatedAt string `json:"created_at"`
	Outdated  bool   `json:"outdated,omitempty"`
}

// GetCellInput is the input schema for the get_cell tool.
type GetCellInput struct {
	Path  string `json:"path" jsonschema:"path of the document"`
	Mode  string `json:"mode,omitempty" jsonschema:"parse mode: headings (default) or paragraphs"`
	Index int    `json:"index" jsonschema:"zero-based cell index"`
}

// GetCellOutput is the output schema for the get_cell tool.
type GetCellOutput struct {
	Summary string `json:"summary"`
}

// AddAnnotationInput is the input schema for the add_annotation tool.
type AddAnnotationInput struct {
	Path  string `json:"path" jsonschema:"path of the document"`
	Mode  string `json:"mode,omitempty" jsonschema:"parse mode: headings (default) or paragraphs"`
	Index int    `json:"index" jsonschema:"zero-based index of the cell to annotate"`
	Body  string `json:"body" jsonschema:"annotation text"`
}

// DeleteAnnotationInput is the input schema for the delete_annotation tool.
type DeleteAnnotationInput struct {
	Path string `json:"path" jsonschema:"path of the document"`
	ID   string `json:"id" jsonschema:"annotation id"`
}

// DeleteAnnotationOutput is the output schema for the delete_annotation tool.
type DeleteAnnotationOutput struct {
	Deleted bool `json:"deleted"`
}

// ExportDocumentInput is the input schema for the export_document tool.
type ExportDocumentInput struct {
	Path string `json:"path" jsonschema:"path of the document to export"`
	Mode string `json:"mode,omitempty" jsonschema:"parse mode: headings (default) or paragraphs"`
	Dest string `json:"dest,omitempty" jsonschema:"destination file; a timestamped name beside the document when empty"`
}

// ExportDocumentOutput is the output schema for the export_document tool.
type ExportDocumentOutput struct {
	Written string `json:"written"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "load_document",
		Description: "Split a document into cells and show the annotations attached to each",
	}, s.handleLoadDocument)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_cell",
		Description: "Get one cell with its annotations as plain text",
	}, s.handleGetCell)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "add_annotation",
		Description: "Attach an annotation to a cell of a document",
	}, s.handleAddAnnotation)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "delete_annotation",
		Description: "Delete an annotation from a document",
	}, s.handleDeleteAnnotation)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "export_document",
		Description: "Write the document with its annotations inlined",
	}, s.handleExportDocument)
}

// handleLoadDocument handles the load_document tool invocation.
func (s *Server) handleLoadDocument(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input LoadDocumentInput,
) (*mcp.CallToolResult, LoadDocumentOutput, error) {
	mode, err := parseMode(input.Mode)
	if err != nil {
		return nil, LoadDocumentOutput{}, err
	}

	doc, err := s.ports.Document.Load(ctx, input.Path, mode)
	if err != nil {
		return nil, LoadDocumentOutput{}, err
	}

	output := LoadDocumentOutput{
		Path:        doc.Path,
		Mode:        doc.Mode.String(),
		Cells:       make([]CellOutput, len(doc.Cells)),
		Annotations: doc.AnnotationCount(),
		Orphans:     len(doc.Orphans),
		Truncation:  string(doc.Truncation),
	}
	for i, rc := range doc.Cells {
		output.Cells[i] = cellOutput(rc)
	}

	return nil, output, nil
}

// handleGetCell handles the get_cell tool invocation.
func (s *Server) handleGetCell(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetCellInput,
) (*mcp.CallToolResult, GetCellOutput, error) {
	mode, err := parseMode(input.Mode)
	if err != nil {
		return nil, GetCellOutput{}, err
	}

	summary, err := s.ports.Document.Summary(ctx, input.Path, mode, input.Index)
	if err != nil {
		return nil, GetCellOutput{}, err
	}
	return nil, GetCellOutput{Summary: summary}, nil
}

// handleAddAnnotation handles the add_annotation tool invocation.
func (s *Server) handleAddAnnotation(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AddAnnotationInput,
) (*mcp.CallToolResult, AnnotationOutput, error) {
	if s.ports.Annotation == nil {
		return nil, AnnotationOutput{}, ErrMissingAnnotationService
	}
	mode, err := parseMode(input.Mode)
	if err != nil {
		return nil, AnnotationOutput{}, err
	}

	a, err := s.ports.Annotation.Add(ctx, input.Path, mode, input.Index, input.Body)
	if err != nil {
		return nil, AnnotationOutput{}, err
	}
	return nil, annotationOutput(*a), nil
}

// handleDeleteAnnotation handles the delete_annotation tool invocation.
func (s *Server) handleDeleteAnnotation(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input DeleteAnnotationInput,
) (*mcp.CallToolResult, DeleteAnnotationOutput, error) {
	if s.ports.Annotation == nil {
		return nil, DeleteAnnotationOutput{}, ErrMissingAnnotationService
	}
	if err := s.ports.Annotation.Delete(ctx, input.Path, input.ID); err != nil {
		return nil, DeleteAnnotationOutput{}, err
	}
	return nil, DeleteAnnotationOutput{Deleted: true}, nil
}

// handleExportDocument handles the export_document tool invocation.
func (s *Server) handleExportDocument(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ExportDocumentInput,
) (*mcp.CallToolResult, ExportDocumentOutput, error) {
	mode, err := parseMode(input.Mode)
	if err != nil {
		return nil, ExportDocumentOutput{}, err
	}

	written, err := s.ports.Document.Export(ctx, input.Path, mode, input.Dest)
	if err != nil {
		return nil, ExportDocumentOutput{}, err
	}
	return nil, ExportDocumentOutput{Written: written}, nil
}

// parseMode leaves an empty mode empty so the service default applies.
func parseMode(s string) (domain.ParseMode, error) {
	if s == "" {
		return "", nil
	}
	return domain.ParseParseMode(s)
}

func cellOutput(rc domain.ResolvedCell) CellOutput {
	out := CellOutput{
		Index:   rc.Cell.Index,
		Heading: rc.Cell.HeadingLabel,
		Match:   domain.None{}.Kind(),
		Content: rc.Cell.RawText,
	}
	if rc.Match == nil {
		return out
	}
	out.Match = rc.Match.Kind()
	for _, a := range rc.Match.Annotations() {
		out.Annotations = append(out.Annotations, annotationOutput(a))
	}
	return out
}

func annotationOutput(a domain.Annotation) AnnotationOutput {
	return AnnotationOutput{
		ID:        a.ID,
		Body:      a.Body,
		CreatedAt: a.CreatedAt.UTC().Format(time.RFC3339),
		Outdated:  a.IsOutdated(),
	}
}
