// Command lenk splits documents into cells and keeps annotations attached
// to them as the documents change.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	configfile "github.com/custodia-labs/lenk/internal/adapters/driven/config/file"
	contentfile "github.com/custodia-labs/lenk/internal/adapters/driven/content/file"
	exportfile "github.com/custodia-labs/lenk/internal/adapters/driven/export/file"
	"github.com/custodia-labs/lenk/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/lenk/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/lenk/internal/adapters/driven/watcher/fswatch"
	"github.com/custodia-labs/lenk/internal/adapters/driving/cli"
	"github.com/custodia-labs/lenk/internal/core/ports/driven"
	"github.com/custodia-labs/lenk/internal/core/services"
	"github.com/custodia-labs/lenk/internal/logger"
)

// version is set by the linker: -ldflags "-X main.version=v1.2.3".
var version = "dev"

// homeEnv overrides the directory holding config.toml and data/lenk.db.
const homeEnv = "LENK_HOME"

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Warn("failed to load .env", "error", err)
	}

	cli.SetVersion(version)
	cli.SetBootstrap(bootstrap)

	if err := cli.Execute(context.Background()); err != nil {
		os.Exit(1)
	}
}

func homeDir() (string, error) {
	if dir := os.Getenv(homeEnv); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".lenk"), nil
}

// bootstrap wires the driven adapters into the services the commands use.
func bootstrap(_ context.Context, opts cli.Options) (*cli.Services, func() error, error) {
	var (
		config driven.ConfigStore
		store  driven.AnnotationStore
		closer = func() error { return nil }
	)

	if opts.Ephemeral {
		config = memory.NewConfigStore()
		store = memory.NewAnnotationStore()
		logger.Debug("using in-memory stores")
	} else {
		home, err := homeDir()
		if err != nil {
			return nil, nil, err
		}

		fileConfig, err := configfile.NewConfigStore(home)
		if err != nil {
			return nil, nil, fmt.Errorf("opening config: %w", err)
		}
		config = fileConfig

		db, err := sqlite.NewStore(filepath.Join(home, "data"))
		if err != nil {
			return nil, nil, fmt.Errorf("opening annotation store: %w", err)
		}
		store = db.AnnotationStore()
		closer = db.Close
		logger.Debug("stores opened", "home", home)
	}

	settingsService := services.NewSettingsService(config)
	settings, err := settingsService.Get()
	if err != nil {
		_ = closer()
		return nil, nil, fmt.Errorf("loading settings: %w", err)
	}
	if err := settings.Validate(); err != nil {
		logger.Warn("invalid settings, using defaults where needed", "error", err)
	}

	parser := settingsService.Parser()
	content := contentfile.NewSource()
	sink := exportfile.NewSink(
		exportfile.WithDirectory(settings.Export.Directory),
		exportfile.WithCompression(settings.Export.Compress),
	)

	watcher := fswatch.NewWatcher(fswatch.DefaultDebounce)
	closeStores := closer
	closer = func() error {
		return errors.Join(watcher.Close(), closeStores())
	}

	return &cli.Services{
		Document: services.NewDocumentService(content, store,
			services.WithParser(parser),
			services.WithExportSink(sink),
			services.WithWatcher(watcher),
			services.WithDefaultMode(settings.Parser.Mode),
		),
		Annotation: services.NewAnnotationService(content, store, parser,
			services.WithAnnotationMode(settings.Parser.Mode),
		),
		Settings: settingsService,
	}, closer, nil
}
