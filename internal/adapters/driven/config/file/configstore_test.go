package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(tmpDir, FileName), store.Path())
	assert.NoFileExists(t, store.Path())
}

func TestNewConfigStore_DefaultDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := NewConfigStore("")

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".lenk", FileName), store.Path())
}

func TestConfigStore_SetPersistsNestedTables(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set("parser.mode", "paragraphs"))
	require.NoError(t, store.Set("parser.max_lines", 1200))
	require.NoError(t, store.Set("server.rate_limit", 2.5))
	require.NoError(t, store.Set("export.compress", true))

	raw, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(raw), "[parser]")
	assert.Regexp(t, `mode = ['"]paragraphs['"]`, string(raw))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_ReloadRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set("parser.mode", "paragraphs"))
	require.NoError(t, store.Set("parser.max_lines", 1200))
	require.NoError(t, store.Set("server.rate_limit", 2.5))
	require.NoError(t, store.Set("export.compress", true))

	reloaded, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "paragraphs", reloaded.GetString("parser.mode"))
	assert.Equal(t, 1200, reloaded.GetInt("parser.max_lines"))
	assert.InDelta(t, 2.5, reloaded.GetFloat("server.rate_limit"), 0.0001)
	assert.True(t, reloaded.GetBool("export.compress"))
}

func TestConfigStore_LoadHandWrittenFile(t *testing.T) {
	tmpDir := t.TempDir()
	content := "[parser]\nmode = \"headings\"\nmax_cells = 50\n\n[export]\ndirectory = \"/tmp/out\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, FileName), []byte(content), 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "headings", store.GetString("parser.mode"))
	assert.Equal(t, 50, store.GetInt("parser.max_cells"))
	assert.Equal(t, "/tmp/out", store.GetString("export.directory"))
}

func TestConfigStore_InvalidTOML(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, FileName), []byte("[parser\nmode ="), 0600))

	_, err := NewConfigStore(tmpDir)
	assert.Error(t, err)
}

func TestConfigStore_TypeMismatchReturnsZero(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("parser.mode", 7))

	assert.Empty(t, store.GetString("parser.mode"))
	assert.False(t, store.GetBool("parser.mode"))
	assert.Zero(t, store.GetInt("missing"))
}

func TestNest(t *testing.T) {
	nested := nest(map[string]any{
		"parser.mode":      "headings",
		"parser.max_lines": 10,
		"top":              true,
	})

	parser, ok := nested["parser"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "headings", parser["mode"])
	assert.Equal(t, 10, parser["max_lines"])
	assert.Equal(t, true, nested["top"])

	assert.Equal(t, map[string]any{"parser.mode": "headings", "parser.max_lines": 10, "top": true}, flatten(nested, ""))
}
