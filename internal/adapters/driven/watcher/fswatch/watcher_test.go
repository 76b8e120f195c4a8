package fswatch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWatcher_DefaultDebounce(t *testing.T) {
	w := NewWatcher(0)
	defer w.Close()

	assert.Equal(t, DefaultDebounce, w.debounce)
}

func TestWatcher_ReportsWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.md")
	require.NoError(t, os.WriteFile(path, []byte("# A\n"), 0644))

	w := NewWatcher(20 * time.Millisecond)
	defer w.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	changes, err := w.Watch(ctx, path)
	require.NoError(t, err)

	go func() {
		time.Sleep(100 * time.Millisecond)
		_ = os.WriteFile(path, []byte("# A\nedited\n"), 0644)
	}()

	select {
	case _, ok := <-changes:
		assert.True(t, ok)
	case <-ctx.Done():
		t.Fatal("timeout waiting for change")
	}
}

func TestWatcher_ReportsRenameOver(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.md")
	require.NoError(t, os.WriteFile(path, []byte("# A\n"), 0644))

	w := NewWatcher(20 * time.Millisecond)
	defer w.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	changes, err := w.Watch(ctx, path)
	require.NoError(t, err)

	go func() {
		time.Sleep(100 * time.Millisecond)
		tmp := filepath.Join(dir, ".notes.md.swp")
		_ = os.WriteFile(tmp, []byte("# A\nsaved\n"), 0644)
		_ = os.Rename(tmp, path)
	}()

	select {
	case <-changes:
	case <-ctx.Done():
		t.Fatal("timeout waiting for change")
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.md")
	require.NoError(t, os.WriteFile(path, []byte("# A\n"), 0644))

	w := NewWatcher(20 * time.Millisecond)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes, err := w.Watch(ctx, path)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.md"), []byte("x"), 0644))

	select {
	case <-changes:
		t.Error("should not report changes to other files")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcher_ClosesOnCancel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.md")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

	w := NewWatcher(0)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	changes, err := w.Watch(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, 1, w.active())

	cancel()

	select {
	case _, ok := <-changes:
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("channel not closed after cancel")
	}
	assert.Equal(t, 0, w.active())
}

func TestWatcher_CloseStopsWatches(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.md")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

	w := NewWatcher(0)
	changes, err := w.Watch(context.Background(), path)
	require.NoError(t, err)

	require.NoError(t, w.Close())

	select {
	case _, ok := <-changes:
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("channel not closed after Close")
	}
	assert.Equal(t, 0, w.active())
}

func TestWatcher_MissingDirectory(t *testing.T) {
	w := NewWatcher(0)
	defer w.Close()

	_, err := w.Watch(context.Background(), filepath.Join(t.TempDir(), "gone", "notes.md"))
	assert.Error(t, err)
}
