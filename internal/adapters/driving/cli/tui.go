package cli

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/lenk/internal/adapters/driving/tui"
	"github.com/custodia-labs/lenk/internal/logger"
)

var tuiNoWatch bool

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui [file]",
	Short: "Browse and annotate a document in the terminal",
	Long: `Open a document one cell at a time with its annotations.

The view reloads when the file is saved, so it can sit beside your editor.

Controls:
  →/n, ←/p   Next / previous cell
  g, G       First / last cell
  ↑/k, ↓/j   Scroll the cell
  tab        Select the next annotation
  a          Annotate the cell
  d          Delete the selected annotation
  e          Export the annotated document
  r          Reload
  ?          Toggle help
  q          Quit`,
	Args: cobra.ExactArgs(1),
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().BoolVar(&tuiNoWatch, "no-watch", false, "do not reload when the file changes")
	rootCmd.AddCommand(tuiCmd)
}

// newTUIApp builds the TUI for path from the configured services.
func newTUIApp(cmd *cobra.Command, path string) (*tui.App, error) {
	mode, err := parseMode()
	if err != nil {
		return nil, err
	}

	opts := []tui.Option{tui.WithMode(mode)}
	if !tuiNoWatch {
		opts = append(opts, tui.WithLiveReload())
	}

	app, err := tui.NewApp(tui.NewPorts(documentService, annotationService), path, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create TUI: %w", err)
	}
	return app.WithContext(cmd.Context()), nil
}

// quietLogs discards log output while the TUI owns the terminal, unless
// --verbose asked for it. The returned func restores stderr.
func quietLogs() func() {
	if logger.IsVerbose() {
		return func() {}
	}
	logger.SetOutput(io.Discard)
	return func() { logger.SetOutput(os.Stderr) }
}

func runTUI(cmd *cobra.Command, args []string) error {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	app, err := newTUIApp(cmd, args[0])
	if err != nil {
		return err
	}

	restore := quietLogs()
	defer restore()

	if err := app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
