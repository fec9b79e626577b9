package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSettingsStore_Defaults(t *testing.T) {
	store, err := NewSettingsStore(t.TempDir())

	require.NoError(t, err)
	settings := store.Settings()
	assert.Equal(t, "Sheet1", settings.Worksheet)
	assert.Equal(t, 8000, settings.CallbackPort)
	assert.Empty(t, settings.SpreadsheetID)
	assert.Empty(t, settings.StartDate)
}

func TestSettingsStore_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	store, err := NewSettingsStore(dir)
	require.NoError(t, err)

	settings := store.Settings()
	settings.SpreadsheetID = "1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms"
	settings.Worksheet = "SpO2"
	settings.StartDate = "2024-01-01"
	require.NoError(t, store.Update(settings))

	// A fresh store must see the persisted values.
	reloaded, err := NewSettingsStore(dir)
	require.NoError(t, err)
	assert.Equal(t, settings, reloaded.Settings())
}

func TestSettingsStore_PartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.toml")
	require.NoError(t, os.WriteFile(path, []byte("spreadsheet_id = \"abc\"\n"), 0600))

	store, err := NewSettingsStore(dir)

	require.NoError(t, err)
	settings := store.Settings()
	assert.Equal(t, "abc", settings.SpreadsheetID)
	assert.Equal(t, "Sheet1", settings.Worksheet, "unset keys fall back to defaults")
	assert.Equal(t, 8000, settings.CallbackPort)
}

func TestSettingsStore_InvalidTOML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "settings.toml"), []byte("not = [valid"), 0600))

	_, err := NewSettingsStore(dir)

	require.Error(t, err)
}

func TestSettingsStore_Paths(t *testing.T) {
	dir := t.TempDir()
	store, err := NewSettingsStore(dir)

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "settings.toml"), store.Path())
	assert.Equal(t, dir, store.Dir())
}
