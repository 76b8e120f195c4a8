package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	exportOutput string
	exportStdout bool
)

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Write the document with its annotations inlined",
	Long: `Write a copy of the document with every annotation inserted below its
cell as a quoted block. By default the copy is written beside the document
as <name>__annotated__YYYYMMDD_HHMM.md, or into the configured export
directory. Paths ending in .xz are compressed.`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

var pasteCmd = &cobra.Command{
	Use:   "paste [dest]",
	Short: "Save piped text as an annotatable document",
	Long: `Read text from standard input, split it into paragraph blocks, and
write it to dest as a document with one '# Cell n' heading per block.

  pbpaste | lenk paste notes.md`,
	Args: cobra.ExactArgs(1),
	RunE: runPaste,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "destination file")
	exportCmd.Flags().BoolVar(&exportStdout, "stdout", false, "print the annotated document instead of writing it")
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(pasteCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	if err := requireDocumentService(); err != nil {
		return err
	}
	mode, err := parseMode()
	if err != nil {
		return err
	}

	if exportStdout {
		text, err := documentService.Compose(cmd.Context(), args[0], mode)
		if err != nil {
			return fmt.Errorf("failed to compose document: %w", err)
		}
		_, err = io.WriteString(cmd.OutOrStdout(), text)
		return err
	}

	written, err := documentService.Export(cmd.Context(), args[0], mode, exportOutput)
	if err != nil {
		return fmt.Errorf("failed to export document: %w", err)
	}
	cmd.Printf("Exported to %s\n", written)
	return nil
}

func runPaste(cmd *cobra.Command, args []string) error {
	if err := requireDocumentService(); err != nil {
		return err
	}

	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return fmt.Errorf("paste reads from a pipe, e.g. 'pbpaste | lenk paste %s'", args[0])
	}

	data, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	n, err := documentService.Paste(cmd.Context(), strings.TrimPrefix(string(data), "\ufeff"), args[0])
	if err != nil {
		return fmt.Errorf("failed to paste: %w", err)
	}
	cmd.Printf("Wrote %d cells to %s\n", n, args[0])
	return nil
}
