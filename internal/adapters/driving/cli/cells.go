package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/lenk/internal/core/domain"
)

var cellsJSON bool

var cellsCmd = &cobra.Command{
	Use:   "cells [file]",
	Short: "List the cells of a document",
	Long: `Split a document into cells and show how many annotations each cell
carries. Cells are numbered from 1.`,
	Args: cobra.ExactArgs(1),
	RunE: runCells,
}

var cellCmd = &cobra.Command{
	Use:   "cell [file] [n]",
	Short: "Show one cell with its annotations",
	Long:  `Print cell n (numbered from 1) with its annotations, ready to paste elsewhere.`,
	Args:  cobra.ExactArgs(2),
	RunE:  runCell,
}

func init() {
	cellsCmd.Flags().BoolVar(&cellsJSON, "json", false, "output cells as JSON")
	rootCmd.AddCommand(cellsCmd)
	rootCmd.AddCommand(cellCmd)
}

func runCells(cmd *cobra.Command, args []string) error {
	if err := requireDocumentService(); err != nil {
		return err
	}
	mode, err := parseMode()
	if err != nil {
		return err
	}

	doc, err := documentService.Load(cmd.Context(), args[0], mode)
	if err != nil {
		return fmt.Errorf("failed to load document: %w", err)
	}

	if cellsJSON {
		return outputCellsJSON(cmd, doc)
	}
	outputCellsTable(cmd, doc)
	return nil
}

type cellJSON struct {
	Number      int    `json:"number"`
	Heading     string `json:"heading"`
	Match       string `json:"match"`
	Annotations int    `json:"annotations"`
	Outdated    int    `json:"outdated"`
}

func outputCellsJSON(cmd *cobra.Command, doc *domain.ResolvedDocument) error {
	out := struct {
		Path       string     `json:"path"`
		Mode       string     `json:"mode"`
		Truncation string     `json:"truncation,omitempty"`
		Orphans    int        `json:"orphans"`
		Cells      []cellJSON `json:"cells"`
	}{
		Path:       doc.Path,
		Mode:       doc.Mode.String(),
		Truncation: string(doc.Truncation),
		Orphans:    len(doc.Orphans),
		Cells:      make([]cellJSON, len(doc.Cells)),
	}
	for i, rc := range doc.Cells {
		match := domain.None{}.Kind()
		if rc.Match != nil {
			match = rc.Match.Kind()
		}
		out.Cells[i] = cellJSON{
			Number:      rc.Cell.Index + 1,
			Heading:     rc.Cell.HeadingLabel,
			Match:       match,
			Annotations: rc.AnnotationCount(),
			Outdated:    rc.FuzzyCount(),
		}
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal cells: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}

func outputCellsTable(cmd *cobra.Command, doc *domain.ResolvedDocument) {
	if len(doc.Cells) == 0 {
		cmd.Printf("No cells in %s\n", doc.Path)
		return
	}

	cmd.Printf("%s (%s)\n\n", doc.Path, doc.Mode)
	for _, rc := range doc.Cells {
		line := fmt.Sprintf("  %4d  %s", rc.Cell.Index+1, truncate(rc.Cell.HeadingLabel, 60))
		if n := rc.AnnotationCount(); n > 0 {
			line += fmt.Sprintf("  [%d note", n)
			if n > 1 {
				line += "s"
			}
			if fuzzy := rc.FuzzyCount(); fuzzy > 0 {
				line += ", may be outdated"
			}
			line += "]"
		}
		cmd.Println(line)
	}

	cmd.Printf("\nTotal: %d cells, %d annotations\n", len(doc.Cells), doc.AnnotationCount())
	if doc.Truncation != domain.TruncationNone {
		cmd.Printf("Warning: document truncated (%s limit reached)\n", doc.Truncation)
	}
	if len(doc.Orphans) > 0 {
		cmd.Printf("Warning: %d annotations no longer match any cell (see 'lenk annotate list')\n", len(doc.Orphans))
	}
}

func runCell(cmd *cobra.Command, args []string) error {
	if err := requireDocumentService(); err != nil {
		return err
	}
	mode, err := parseMode()
	if err != nil {
		return err
	}
	index, err := cellNumber(args[1])
	if err != nil {
		return err
	}

	summary, err := documentService.Summary(cmd.Context(), args[0], mode, index)
	if err != nil {
		return fmt.Errorf("failed to show cell: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), summary)
	return err
}

// cellNumber converts a 1-based cell number argument to a 0-based index.
func cellNumber(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%w: cell number must be a positive integer, got %q", domain.ErrInvalidInput, arg)
	}
	return n - 1, nil
}

func truncate(s string, n int) string {
	r := []rune(strings.TrimSpace(s))
	if len(r) <= n {
		return string(r)
	}
	return string(r[:n-3]) + "..."
}
