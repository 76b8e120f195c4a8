package domain

import "fmt"

// ParserSettings holds document segmentation configuration.
type ParserSettings struct {
	// Mode is the parse mode used when a caller does not pick one.
	Mode ParseMode

	// Limits bounds the work done per document.
	Limits Limits
}

// ExportSettings holds annotated export configuration.
type ExportSettings struct {
	// Compress writes exports as xz-compressed files.
	Compress bool

	// Directory receives exports. Empty means beside the source document.
	Directory string
}

// ServerSettings holds HTTP API configuration.
type ServerSettings struct {
	// Addr is the listen address.
	Addr string

	// RateLimit is the sustained write requests per second.
	RateLimit float64

	// Burst is the number of write requests allowed at once.
	Burst int
}

// AppSettings is the complete user-configurable state.
type AppSettings struct {
	Parser ParserSettings
	Export ExportSettings
	Server ServerSettings
}

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Parser: ParserSettings{
			Mode:   ParseModeHeadings,
			Limits: DefaultLimits(),
		},
		Export: ExportSettings{
			Compress: false,
		},
		Server: ServerSettings{
			Addr:      "127.0.0.1:5000",
			RateLimit: 5,
			Burst:     10,
		},
	}
}

// Validate checks the settings for values the services cannot use.
func (s AppSettings) Validate() error {
	if !s.Parser.Mode.IsValid() {
		return fmt.Errorf("%w: unknown parse mode %q", ErrInvalidInput, s.Parser.Mode)
	}
	if err := s.Parser.Limits.Validate(); err != nil {
		return err
	}
	if s.Server.Addr == "" {
		return fmt.Errorf("%w: server address is empty", ErrInvalidInput)
	}
	if s.Server.RateLimit <= 0 || s.Server.Burst <= 0 {
		return fmt.Errorf("%w: rate limit and burst must be positive", ErrInvalidInput)
	}
	return nil
}
