// Package cli implements the lenk command line with cobra.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/lenk/internal/core/domain"
	"github.com/custodia-labs/lenk/internal/core/ports/driving"
	"github.com/custodia-labs/lenk/internal/logger"
)

// skipBootstrap marks commands that run without services.
const skipBootstrap = "lenk/skip-bootstrap"

// version is set at build time through SetVersion.
var version = "dev"

// Driving ports used by the commands. Set by the bootstrap hook or SetServices.
var (
	documentService   driving.DocumentService
	annotationService driving.AnnotationService
	settingsService   driving.SettingsService
)

// Global flags.
var (
	modeFlag  string
	verbose   bool
	ephemeral bool
)

// Services holds the driving ports the commands use.
type Services struct {
	Document   driving.DocumentService
	Annotation driving.AnnotationService
	Settings   driving.SettingsService
}

// Options are the global flags the bootstrap hook needs.
type Options struct {
	// Ephemeral keeps annotations and settings in memory for this run.
	Ephemeral bool
}

// Bootstrap builds services before a command runs. The returned close
// function runs after the command finishes.
type Bootstrap func(ctx context.Context, opts Options) (*Services, func() error, error)

var (
	bootstrap Bootstrap
	closer    func() error
)

var rootCmd = &cobra.Command{
	Use:   "lenk",
	Short: "Annotate documents cell by cell",
	Long: `lenk splits text documents into cells and keeps your annotations attached
to them as the document changes.

A cell is a heading and the text below it, or a paragraph block. Each
annotation remembers the heading and a fingerprint of the cell it was
written on. When the document is edited, annotations follow their cell:
an unchanged cell keeps an exact match, a cell whose text changed keeps
its notes marked as possibly outdated.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&modeFlag, "mode", "m", "",
		"parse mode: headings or paragraphs (default from settings)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&ephemeral, "ephemeral", false,
		"keep annotations and settings in memory for this run")
}

// SetVersion sets the version printed by the version command.
func SetVersion(v string) {
	version = v
}

// SetServices installs the driving ports used by the commands.
func SetServices(s *Services) {
	if s == nil {
		s = &Services{}
	}
	documentService = s.Document
	annotationService = s.Annotation
	settingsService = s.Settings
}

// SetBootstrap installs the hook that builds services from the global flags.
func SetBootstrap(b Bootstrap) {
	bootstrap = b
}

// Execute runs the root command. Services opened by the bootstrap hook are
// closed afterwards, also when the command fails.
func Execute(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	return errors.Join(err, teardown())
}

func setup(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	if bootstrap == nil || cmd.Annotations[skipBootstrap] != "" {
		return nil
	}

	services, closeFn, err := bootstrap(cmd.Context(), Options{Ephemeral: ephemeral})
	if err != nil {
		return fmt.Errorf("failed to start: %w", err)
	}
	SetServices(services)
	closer = closeFn
	return nil
}

func teardown() error {
	if closer == nil {
		return nil
	}
	err := closer()
	closer = nil
	return err
}

// parseMode returns the --mode flag. Empty means the configured default.
func parseMode() (domain.ParseMode, error) {
	if modeFlag == "" {
		return "", nil
	}
	return domain.ParseParseMode(modeFlag)
}

func requireDocumentService() error {
	if documentService == nil {
		return errors.New("document service not configured")
	}
	return nil
}

func requireAnnotationService() error {
	if annotationService == nil {
		return errors.New("annotation service not configured")
	}
	return nil
}
