// Package file writes annotated exports to the local filesystem.
//
// Generated names follow <name>__annotated__YYYYMMDD_HHMM.md and are placed
// beside the source document unless a directory is configured. Exports may
// be xz-compressed.
package file

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ulikunitz/xz"

	"github.com/custodia-labs/lenk/internal/core/domain"
	"github.com/custodia-labs/lenk/internal/core/ports/driven"
)

// CompressedExt is appended to compressed export names.
const CompressedExt = ".xz"

const stampLayout = "20060102_1504"

// Ensure Sink implements the interface.
var _ driven.ExportSink = (*Sink)(nil)

// Sink is a filesystem-backed driven.ExportSink.
type Sink struct {
	dir      string
	compress bool
}

// Option configures the sink.
type Option func(*Sink)

// WithDirectory writes generated names into dir instead of beside the source.
func WithDirectory(dir string) Option {
	return func(s *Sink) {
		s.dir = dir
	}
}

// WithCompression xz-compresses exports with generated names.
func WithCompression(on bool) Option {
	return func(s *Sink) {
		s.compress = on
	}
}

// NewSink creates a new export sink.
func NewSink(opts ...Option) *Sink {
	s := &Sink{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the generated export path for target.
func (s *Sink) Name(target driven.ExportTarget) string {
	base := filepath.Base(target.SourcePath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	name := fmt.Sprintf("%s__annotated__%s.md", stem, target.At.Format(stampLayout))
	if s.compress {
		name += CompressedExt
	}

	dir := s.dir
	if dir == "" {
		dir = filepath.Dir(target.SourcePath)
	}
	return filepath.Join(dir, name)
}

// Write stores text at target.Dest, or at a generated name when Dest is
// empty. Paths ending in .xz are compressed.
func (s *Sink) Write(ctx context.Context, target driven.ExportTarget, text string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	dest := target.Dest
	if dest == "" {
		dest = s.Name(target)
	}
	if filepath.Clean(dest) == filepath.Clean(target.SourcePath) {
		return "", fmt.Errorf("%w: export would overwrite %s", domain.ErrInvalidInput, target.SourcePath)
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return "", fmt.Errorf("creating export directory: %w", err)
	}

	f, err := os.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return "", fmt.Errorf("creating export: %w", err)
	}

	if err := writeTo(f, text, strings.HasSuffix(dest, CompressedExt)); err != nil {
		f.Close()
		return "", fmt.Errorf("writing export: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("writing export: %w", err)
	}
	return dest, nil
}

func writeTo(w io.Writer, text string, compress bool) error {
	if !compress {
		_, err := io.WriteString(w, text)
		return err
	}

	xw, err := xz.NewWriter(w)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(xw, text); err != nil {
		xw.Close()
		return err
	}
	return xw.Close()
}

// ReadExport returns the text of an export, decompressing .xz files.
func ReadExport(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, CompressedExt) {
		xr, err := xz.NewReader(f)
		if err != nil {
			return "", fmt.Errorf("opening xz stream: %w", err)
		}
		r = xr
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
