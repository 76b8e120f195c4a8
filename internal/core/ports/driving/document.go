package driving

import (
	"context"

	"github.com/custodia-labs/lenk/internal/core/domain"
)

// DocumentService loads documents and resolves their annotations.
type DocumentService interface {
	// Load parses the document at path and resolves its annotations.
	// Each call returns a fresh, independent result.
	Load(ctx context.Context, path string, mode domain.ParseMode) (*domain.ResolvedDocument, error)

	// Summary returns the copy-ready text of one cell and its annotations.
	Summary(ctx context.Context, path string, mode domain.ParseMode, index int) (string, error)

	// Export composes the annotated document and writes it.
	// Dest may be empty to let the export sink pick a name.
	// Returns the location written.
	Export(ctx context.Context, path string, mode domain.ParseMode, dest string) (string, error)

	// Compose returns the annotated document text without writing it.
	Compose(ctx context.Context, path string, mode domain.ParseMode) (string, error)

	// Watch calls fn with a fresh load each time the document changes.
	// Blocks until ctx is done.
	Watch(ctx context.Context, path string, mode domain.ParseMode, fn func(*domain.ResolvedDocument, error)) error

	// Paste splits text into paragraph blocks and writes them to dest as a
	// heading document, one "# Cell n" section per block.
	// Returns the number of cells written.
	Paste(ctx context.Context, text, dest string) (int, error)
}
