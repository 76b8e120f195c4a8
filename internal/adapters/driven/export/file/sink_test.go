package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/lenk/internal/core/domain"
	"github.com/custodia-labs/lenk/internal/core/ports/driven"
)

var exportAt = time.Date(2026, 10, 16, 14, 5, 59, 0, time.UTC)

func TestSink_Name(t *testing.T) {
	tests := []struct {
		name     string
		sink     *Sink
		source   string
		expected string
	}{
		{
			name:     "beside source",
			sink:     NewSink(),
			source:   "/docs/notes.md",
			expected: "/docs/notes__annotated__20261016_1405.md",
		},
		{
			name:     "configured directory",
			sink:     NewSink(WithDirectory("/exports")),
			source:   "/docs/notes.txt",
			expected: "/exports/notes__annotated__20261016_1405.md",
		},
		{
			name:     "compressed",
			sink:     NewSink(WithCompression(true)),
			source:   "/docs/notes",
			expected: "/docs/notes__annotated__20261016_1405.md.xz",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.sink.Name(driven.ExportTarget{SourcePath: tt.source, At: exportAt})
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestSink_Write_GeneratedName(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "notes.md")

	dest, err := NewSink().Write(context.Background(), driven.ExportTarget{SourcePath: source, At: exportAt}, "# A\n")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "notes__annotated__20261016_1405.md"), dest)
	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "# A\n", string(data))

	info, err := os.Stat(dest)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestSink_Write_ExplicitDest(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "out", "export.md")

	got, err := NewSink(WithCompression(true)).Write(context.Background(),
		driven.ExportTarget{SourcePath: "/x.md", Dest: dest, At: exportAt}, "body")
	require.NoError(t, err)
	assert.Equal(t, dest, got)

	text, err := ReadExport(dest)
	require.NoError(t, err)
	assert.Equal(t, "body", text)
}

func TestSink_Write_RefusesSource(t *testing.T) {
	source := filepath.Join(t.TempDir(), "notes.md")
	require.NoError(t, os.WriteFile(source, []byte("original"), 0600))

	for _, dest := range []string{source, filepath.Join(filepath.Dir(source), ".", "notes.md")} {
		_, err := NewSink().Write(context.Background(),
			driven.ExportTarget{SourcePath: source, Dest: dest, At: exportAt}, "annotated")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}

	data, err := os.ReadFile(source)
	require.NoError(t, err)
	assert.Equal(t, "original", string(data))
}

func TestSink_Write_Compressed(t *testing.T) {
	dir := t.TempDir()
	text := "# A\nHello\n\n<!-- lenk:annotations -->\n> note\n<!-- /lenk:annotations -->\n"

	dest, err := NewSink(WithDirectory(dir), WithCompression(true)).Write(context.Background(),
		driven.ExportTarget{SourcePath: "/docs/a.md", At: exportAt}, text)
	require.NoError(t, err)
	assert.Equal(t, CompressedExt, filepath.Ext(dest))

	raw, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.NotEqual(t, text, string(raw))

	got, err := ReadExport(dest)
	require.NoError(t, err)
	assert.Equal(t, text, got)
}

func TestSink_Write_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewSink().Write(ctx, driven.ExportTarget{SourcePath: "/x.md"}, "x")
	assert.ErrorIs(t, err, context.Canceled)
}
