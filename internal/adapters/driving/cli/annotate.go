package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var annotateCmd = &cobra.Command{
	Use:   "annotate",
	Short: "Manage annotations",
	Long:  `Add, delete, or list the annotations of a document.`,
}

var annotateAddCmd = &cobra.Command{
	Use:   "add [file] [n] [text...]",
	Short: "Annotate cell n of a document",
	Long: `Attach a note to cell n (numbered from 1, as shown by 'lenk cells').
The remaining arguments are joined with spaces to form the note.`,
	Args: cobra.MinimumNArgs(3),
	RunE: runAnnotateAdd,
}

var annotateDeleteCmd = &cobra.Command{
	Use:   "delete [file] [id]",
	Short: "Delete an annotation",
	Args:  cobra.ExactArgs(2),
	RunE:  runAnnotateDelete,
}

var annotateListCmd = &cobra.Command{
	Use:   "list [file]",
	Short: "List every annotation of a document",
	Long:  `List all annotations of a document, including those no cell matches any more.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runAnnotateList,
}

func init() {
	annotateCmd.AddCommand(annotateAddCmd)
	annotateCmd.AddCommand(annotateDeleteCmd)
	annotateCmd.AddCommand(annotateListCmd)
	rootCmd.AddCommand(annotateCmd)
}

func runAnnotateAdd(cmd *cobra.Command, args []string) error {
	if err := requireAnnotationService(); err != nil {
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

	a, err := annotationService.Add(cmd.Context(), args[0], mode, index, strings.Join(args[2:], " "))
	if err != nil {
		return fmt.Errorf("failed to add annotation: %w", err)
	}

	cmd.Printf("Added annotation %s to cell %d (%s)\n", a.ID, index+1, a.HeadingLabel)
	return nil
}

func runAnnotateDelete(cmd *cobra.Command, args []string) error {
	if err := requireAnnotationService(); err != nil {
		return err
	}

	if err := annotationService.Delete(cmd.Context(), args[0], args[1]); err != nil {
		return fmt.Errorf("failed to delete annotation: %w", err)
	}

	cmd.Printf("Deleted annotation %s\n", args[1])
	return nil
}

func runAnnotateList(cmd *cobra.Command, args []string) error {
	if err := requireAnnotationService(); err != nil {
		return err
	}

	list, err := annotationService.List(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to list annotations: %w", err)
	}

	if len(list) == 0 {
		cmd.Printf("No annotations for %s\n", args[0])
		return nil
	}

	for i := range list {
		a := &list[i]
		cmd.Printf("  %s\n", a.ID)
		cmd.Printf("    Cell:    %d %s\n", a.CellIndex+1, a.HeadingLabel)
		cmd.Printf("    Written: %s\n", a.CreatedAt.Local().Format("2006-01-02 15:04:05"))
		if a.LastMatchedAt != nil {
			cmd.Printf("    Matched: %s (%s)\n", a.LastMatchedAt.Local().Format("2006-01-02 15:04:05"), a.Confidence)
		}
		cmd.Printf("    Note:    %s\n", strings.ReplaceAll(a.Body, "\n", "\n             "))
		cmd.Println()
	}

	cmd.Printf("Total: %d annotations\n", len(list))
	return nil
}
