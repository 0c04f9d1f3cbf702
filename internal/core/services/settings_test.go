package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/datalex/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/datalex/internal/core/domain"
)

func TestSettingsService_Get_ReturnsDefaults(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultAppSettings(), *settings)
}

func TestSettingsService_Get_ReturnsStoredValues(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set(KeyPageSize, 25)
	_ = store.Set(KeyPolicy, "persist_across_pages")
	_ = store.Set(KeyMode, "row")
	_ = store.Set(KeyTolerance, 0)
	_ = store.Set(KeyEngineInbox, "/tmp/inbox/*.md")

	settings, err := NewSettingsService(store).Get()

	require.NoError(t, err)
	assert.Equal(t, 25, settings.Pagination.PageSize)
	assert.Equal(t, domain.SelectionPersistAcrossPages, settings.Selection.Policy)
	assert.Equal(t, domain.ModeByLine, settings.Fragmentation.Mode)
	assert.Equal(t, 0, settings.Fragmentation.Tolerance)
	assert.Equal(t, "/tmp/inbox/*.md", settings.Engine.Inbox)
}

func TestSettingsService_Get_InvalidValuesReturnDefaults(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set(KeyPolicy, "sometimes")
	_ = store.Set(KeyMode, "paragraph")
	_ = store.Set(KeyPageSize, -3)
	_ = store.Set(KeyTolerance, -1)

	settings, err := NewSettingsService(store).Get()

	require.NoError(t, err)
	defaults := domain.DefaultAppSettings()
	assert.Equal(t, defaults.Selection.Policy, settings.Selection.Policy)
	assert.Equal(t, defaults.Fragmentation.Mode, settings.Fragmentation.Mode)
	assert.Equal(t, defaults.Pagination.PageSize, settings.Pagination.PageSize)
	assert.Equal(t, defaults.Fragmentation.Tolerance, settings.Fragmentation.Tolerance)
}

func TestSettingsService_SaveRoundTrip(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)
	settings := domain.DefaultAppSettings()
	settings.Fragmentation.Target = 120
	settings.Engine.Workers = 2

	require.NoError(t, service.Save(&settings))

	got, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, 120, got.Fragmentation.Target)
	assert.Equal(t, 2, got.Engine.Workers)
}

func TestSettingsService_SaveRejectsInvalid(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())
	settings := domain.DefaultAppSettings()
	settings.Pagination.PageSize = 0

	err := service.Save(&settings)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSettingsService_Set(t *testing.T) {
	tests := []struct {
		key     string
		value   string
		wantErr error
	}{
		{KeyPageSize, "50", nil},
		{KeyPageSize, "0", domain.ErrInvalidInput},
		{KeyPageSize, "many", domain.ErrInvalidInput},
		{KeyTolerance, "0", nil},
		{KeyTolerance, "-2", domain.ErrInvalidInput},
		{KeyPolicy, "persist_across_pages", nil},
		{KeyPolicy, "never", domain.ErrInvalidInput},
		{KeyMode, "lines", nil},
		{KeyMode, "paragraph", domain.ErrUnsupportedMode},
		{KeyEngineInbox, "", domain.ErrInvalidInput},
		{"search.mode", "hybrid", domain.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			service := NewSettingsService(memory.NewConfigStore())

			err := service.Set(tt.key, tt.value)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestSettingsService_SetModeStoresWireValue(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	require.NoError(t, service.Set(KeyMode, "lines"))

	assert.Equal(t, "row", store.GetString(KeyMode))
}

func TestSettingsService_Keys(t *testing.T) {
	keys := NewSettingsService(memory.NewConfigStore()).Keys()

	assert.Contains(t, keys, KeyPageSize)
	assert.Contains(t, keys, KeyEngineInbox)
	assert.Len(t, keys, 7)
}
