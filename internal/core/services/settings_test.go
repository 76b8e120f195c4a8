package services

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/lenk/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/lenk/internal/core/domain"
)

func TestNewSettingsService(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())
	require.NotNil(t, service)
}

func TestSettingsService_NilStore(t *testing.T) {
	service := NewSettingsService(nil)

	_, err := service.Get()
	assert.ErrorIs(t, err, domain.ErrNotImplemented)
	assert.ErrorIs(t, service.Save(&domain.AppSettings{}), domain.ErrNotImplemented)
}

func TestSettingsService_Get_ReturnsDefaults(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	settings, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultAppSettings(), *settings)
}

func TestSettingsService_Get_ReturnsStoredValues(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("parser.mode", "paragraphs")
	_ = store.Set("parser.max_cells", 20)
	_ = store.Set("export.compress", true)
	_ = store.Set("export.directory", "/exports")
	_ = store.Set("server.addr", "0.0.0.0:8080")
	_ = store.Set("server.rate_limit", 1.5)

	settings, err := NewSettingsService(store).Get()
	require.NoError(t, err)

	assert.Equal(t, domain.ParseModeParagraphs, settings.Parser.Mode)
	assert.Equal(t, 20, settings.Parser.Limits.MaxCells)
	assert.Equal(t, domain.DefaultLimits().MaxLines, settings.Parser.Limits.MaxLines)
	assert.True(t, settings.Export.Compress)
	assert.Equal(t, "/exports", settings.Export.Directory)
	assert.Equal(t, "0.0.0.0:8080", settings.Server.Addr)
	assert.InDelta(t, 1.5, settings.Server.RateLimit, 0.0001)
}

func TestSettingsService_Get_InvalidValuesReturnDefaults(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("parser.mode", "sentences")
	_ = store.Set("parser.max_bytes", -4)

	settings, err := NewSettingsService(store).Get()
	require.NoError(t, err)

	defaults := domain.DefaultAppSettings()
	assert.Equal(t, defaults.Parser.Mode, settings.Parser.Mode)
	assert.Equal(t, defaults.Parser.Limits.MaxBytes, settings.Parser.Limits.MaxBytes)
}

func TestSettingsService_SaveAndGet(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	want := domain.DefaultAppSettings()
	want.Parser.Mode = domain.ParseModeParagraphs
	want.Export.Directory = "/tmp/exports"
	want.Server.Burst = 3
	require.NoError(t, service.Save(&want))

	got, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, want, *got)
}

func TestSettingsService_SetDefaultMode(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	require.NoError(t, service.SetDefaultMode(domain.ParseModeParagraphs))
	settings, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.ParseModeParagraphs, settings.Parser.Mode)

	err = service.SetDefaultMode("sentences")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSettingsService_SetLimits(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	limits := domain.Limits{MaxBytes: 1024, MaxLines: 10, MaxCells: 5, PreviewBytes: 512}
	require.NoError(t, service.SetLimits(limits))

	settings, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, limits, settings.Parser.Limits)
	assert.Equal(t, limits, service.Parser().Limits())

	err = service.SetLimits(domain.Limits{MaxBytes: 0, MaxLines: 1, MaxCells: 1, PreviewBytes: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSettingsService_SetExport(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	require.NoError(t, service.SetExport(domain.ExportSettings{Compress: true, Directory: "/out"}))

	settings, err := service.Get()
	require.NoError(t, err)
	assert.True(t, settings.Export.Compress)
	assert.Equal(t, "/out", settings.Export.Directory)
}

func TestSettingsService_Validate(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())
	assert.NoError(t, service.Validate())
}

func TestSettingsService_GetDefaults(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())
	assert.Equal(t, domain.DefaultAppSettings(), service.GetDefaults())
}

func TestFindAvailableAddr(t *testing.T) {
	busy, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer busy.Close()

	addr, err := FindAvailableAddr(busy.Addr().String())
	require.NoError(t, err)
	assert.NotEqual(t, busy.Addr().String(), addr)

	_, err = FindAvailableAddr("no-port")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	addr, err = FindAvailableAddr("127.0.0.1:0")
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:0", addr)
}
