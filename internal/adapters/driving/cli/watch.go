package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/lenk/internal/core/domain"
)

var watchCmd = &cobra.Command{
	Use:   "watch [file]",
	Short: "Report annotation matches each time a document changes",
	Long: `Load the document, then reload it every time it is saved and print how
its annotations attach. Stop with Ctrl+C.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if err := requireDocumentService(); err != nil {
		return err
	}
	mode, err := parseMode()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd.Printf("Watching %s (Ctrl+C to stop)\n", args[0])
	err = documentService.Watch(ctx, args[0], mode, func(doc *domain.ResolvedDocument, err error) {
		reportLoad(cmd, doc, err)
	})
	if err != nil && ctx.Err() == nil {
		return fmt.Errorf("failed to watch document: %w", err)
	}
	return nil
}

func reportLoad(cmd *cobra.Command, doc *domain.ResolvedDocument, err error) {
	stamp := time.Now().Format("15:04:05")
	if err != nil {
		cmd.Printf("[%s] error: %v\n", stamp, err)
		return
	}

	fuzzy := 0
	for _, rc := range doc.Cells {
		fuzzy += rc.FuzzyCount()
	}
	cmd.Printf("[%s] %d cells, %d annotations attached (%d may be outdated), %d unmatched\n",
		stamp, len(doc.Cells), doc.AnnotationCount(), fuzzy, len(doc.Orphans))
}
