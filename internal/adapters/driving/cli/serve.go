package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/lenk/internal/adapters/driving/api"
	"github.com/custodia-labs/lenk/internal/core/domain"
	"github.com/custodia-labs/lenk/internal/core/services"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the local HTTP API",
	Long: `Serve documents and annotations as JSON over HTTP.

Endpoints:
  GET    /api/ping
  GET    /api/file?path=&mode=
  GET    /api/file/cell?path=&mode=&index=
  GET    /api/annotations?path=
  POST   /api/annotations
  DELETE /api/annotations/{id}?path=
  GET    /api/export?path=&mode=
  POST   /api/export

Cell indexes in the API start at 0. Write requests are rate limited.
When the configured port is busy the next free port is used.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from settings)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if err := requireDocumentService(); err != nil {
		return err
	}
	if err := requireAnnotationService(); err != nil {
		return err
	}

	cfg := domain.DefaultAppSettings().Server
	if settingsService != nil {
		settings, err := settingsService.Get()
		if err != nil {
			return fmt.Errorf("failed to get settings: %w", err)
		}
		cfg = settings.Server
	}
	if serveAddr != "" {
		cfg.Addr = serveAddr
	}

	addr, err := services.FindAvailableAddr(cfg.Addr)
	if err != nil {
		return err
	}
	if addr != cfg.Addr {
		cmd.Printf("%s is in use, using %s\n", cfg.Addr, addr)
	}

	server, err := api.NewServer(&api.Ports{
		Document:   documentService,
		Annotation: annotationService,
	}, api.WithRateLimit(cfg.RateLimit, cfg.Burst))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd.Printf("lenk API listening on http://%s\n", addr)
	return server.Run(ctx, addr)
}
