package driven

import (
	"context"
	"time"
)

// ContentSource reads and writes document text.
type ContentSource interface {
	// Read returns the document text as UTF-8.
	// Undecodable content returns domain.ErrInvalidEncoding.
	Read(ctx context.Context, path string) (string, error)

	// Write stores text at path, creating parent directories.
	Write(ctx context.Context, path, text string) error
}

// ExportTarget describes where an annotated export should go.
type ExportTarget struct {
	// SourcePath is the document the export was composed from.
	SourcePath string

	// Dest is an explicit destination. Empty lets the sink choose.
	Dest string

	// At is the export time, used for generated file names.
	At time.Time
}

// ExportSink writes composed exports.
type ExportSink interface {
	// Write stores text and returns the location written.
	Write(ctx context.Context, target ExportTarget, text string) (string, error)
}

// DocumentWatcher reports changes to a single document.
type DocumentWatcher interface {
	// Watch emits a value each time the document at path changes.
	// The channel closes when ctx is done or the watcher is closed.
	Watch(ctx context.Context, path string) (<-chan struct{}, error)

	// Close stops all watches.
	Close() error
}
