package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	contentfile "github.com/custodia-labs/lenk/internal/adapters/driven/content/file"
	exportfile "github.com/custodia-labs/lenk/internal/adapters/driven/export/file"
	"github.com/custodia-labs/lenk/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/lenk/internal/core/services"
)

const testDocument = `# Intro
Welcome.

# Usage
Run it.
`

// setupTestServices installs services backed by memory stores and returns a
// temp directory holding notes.md.
func setupTestServices(t *testing.T) (dir, doc string) {
	t.Helper()

	dir = t.TempDir()
	doc = filepath.Join(dir, "notes.md")
	require.NoError(t, os.WriteFile(doc, []byte(testDocument), 0o600))

	content := contentfile.NewSource()
	store := memory.NewAnnotationStore()
	settings := services.NewSettingsService(memory.NewConfigStore())

	SetServices(&Services{
		Document:   services.NewDocumentService(content, store, services.WithExportSink(exportfile.NewSink())),
		Annotation: services.NewAnnotationService(content, store, nil),
		Settings:   settings,
	})
	SetBootstrap(nil)
	t.Cleanup(func() { SetServices(nil) })
	return dir, doc
}

// execute runs the root command with args and returns everything printed.
func execute(t *testing.T, stdin io.Reader, args ...string) (string, error) {
	t.Helper()

	resetFlags(rootCmd)
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	if stdin == nil {
		stdin = strings.NewReader("")
	}
	rootCmd.SetIn(stdin)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})

	err := Execute(context.Background())
	return buf.String(), err
}

// resetFlags restores every flag to its default so earlier runs do not leak.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}
