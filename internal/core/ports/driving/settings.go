package driving

import "github.com/custodia-labs/lenk/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// SetDefaultMode updates the parse mode used when none is given.
	SetDefaultMode(mode domain.ParseMode) error

	// SetLimits updates the parser safety limits.
	SetLimits(limits domain.Limits) error

	// SetExport updates the export options.
	SetExport(export domain.ExportSettings) error

	// Validate checks the stored settings.
	Validate() error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
