package services

import (
	"fmt"

	"github.com/custodia-labs/lenk/internal/core/domain"
	"github.com/custodia-labs/lenk/internal/core/ports/driven"
	"github.com/custodia-labs/lenk/internal/core/ports/driving"
	"github.com/custodia-labs/lenk/internal/segmenter"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyParserMode      = "parser.mode"
	keyMaxBytes        = "parser.max_bytes"
	keyMaxLines        = "parser.max_lines"
	keyMaxCells        = "parser.max_cells"
	keyPreviewBytes    = "parser.preview_bytes"
	keyExportCompress  = "export.compress"
	keyExportDirectory = "export.directory"
	keyServerAddr      = "server.addr"
	keyServerRateLimit = "server.rate_limit"
	keyServerBurst     = "server.burst"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
	}
}

// Get retrieves current application settings.
// Missing or invalid values fall back to defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	if s.configStore == nil {
		return nil, domain.ErrNotImplemented
	}
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Parser: domain.ParserSettings{
			Mode: s.getParseMode(defaults.Parser.Mode),
			Limits: domain.Limits{
				MaxBytes:     s.getInt(keyMaxBytes, defaults.Parser.Limits.MaxBytes),
				MaxLines:     s.getInt(keyMaxLines, defaults.Parser.Limits.MaxLines),
				MaxCells:     s.getInt(keyMaxCells, defaults.Parser.Limits.MaxCells),
				PreviewBytes: s.getInt(keyPreviewBytes, defaults.Parser.Limits.PreviewBytes),
			},
		},
		Export: domain.ExportSettings{
			Compress:  s.getBool(keyExportCompress, defaults.Export.Compress),
			Directory: s.configStore.GetString(keyExportDirectory), // empty means beside the source
		},
		Server: domain.ServerSettings{
			Addr:      s.getString(keyServerAddr, defaults.Server.Addr),
			RateLimit: s.getFloat(keyServerRateLimit, defaults.Server.RateLimit),
			Burst:     s.getInt(keyServerBurst, defaults.Server.Burst),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if s.configStore == nil {
		return domain.ErrNotImplemented
	}
	if settings == nil {
		return fmt.Errorf("%w: nil settings", domain.ErrInvalidInput)
	}

	values := []struct {
		key   string
		value any
	}{
		{keyParserMode, settings.Parser.Mode.String()},
		{keyMaxBytes, settings.Parser.Limits.MaxBytes},
		{keyMaxLines, settings.Parser.Limits.MaxLines},
		{keyMaxCells, settings.Parser.Limits.MaxCells},
		{keyPreviewBytes, settings.Parser.Limits.PreviewBytes},
		{keyExportCompress, settings.Export.Compress},
		{keyExportDirectory, settings.Export.Directory},
		{keyServerAddr, settings.Server.Addr},
		{keyServerRateLimit, settings.Server.RateLimit},
		{keyServerBurst, settings.Server.Burst},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	return nil
}

// SetDefaultMode updates the parse mode used when none is given.
func (s *SettingsService) SetDefaultMode(mode domain.ParseMode) error {
	if !mode.IsValid() {
		return fmt.Errorf("%w: unknown parse mode %q", domain.ErrInvalidInput, mode)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.Parser.Mode = mode
	return s.Save(settings)
}

// SetLimits updates the parser safety limits.
func (s *SettingsService) SetLimits(limits domain.Limits) error {
	if err := limits.Validate(); err != nil {
		return err
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.Parser.Limits = limits
	return s.Save(settings)
}

// SetExport updates the export options.
func (s *SettingsService) SetExport(export domain.ExportSettings) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.Export = export
	return s.Save(settings)
}

// Validate checks the stored settings.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return settings.Validate()
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Parser returns a segmenter configured with the stored limits.
func (s *SettingsService) Parser() *segmenter.Parser {
	settings, err := s.Get()
	if err != nil {
		return segmenter.New()
	}
	return segmenter.New(segmenter.WithLimits(settings.Parser.Limits))
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	val := s.configStore.GetFloat(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getParseMode(defaultVal domain.ParseMode) domain.ParseMode {
	val := s.configStore.GetString(keyParserMode)
	if val == "" {
		return defaultVal
	}
	mode, err := domain.ParseParseMode(val)
	if err != nil {
		return defaultVal
	}
	return mode
}
