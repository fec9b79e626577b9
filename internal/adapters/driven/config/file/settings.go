// Package file implements the TOML settings store. Settings are stored in a
// settings.toml file within the oxysheet state directory, alongside the
// credential files.
package file

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"
)

// Settings holds the operator-tunable options of the exporter. Command line
// flags override these per invocation.
type Settings struct {
	// SpreadsheetID identifies the target Google spreadsheet (the ID from
	// its URL, not its display name).
	SpreadsheetID string `toml:"spreadsheet_id"`

	// Worksheet is the title of the sheet rows are appended to.
	Worksheet string `toml:"worksheet"`

	// StartDate is the default start of the export range, YYYY-MM-DD.
	// Empty means "yesterday".
	StartDate string `toml:"start_date"`

	// CallbackPort is the local port of the Fitbit OAuth redirect listener.
	// It must match the redirect URI registered with the Fitbit app.
	CallbackPort int `toml:"callback_port"`
}

// DefaultSettings returns the settings used when no file exists yet.
func DefaultSettings() Settings {
	return Settings{
		Worksheet:    "Sheet1",
		CallbackPort: 8000,
	}
}

// SettingsStore is a file-based settings store using TOML.
type SettingsStore struct {
	mu       sync.RWMutex
	filePath string
	settings Settings
}

// NewSettingsStore creates a settings store under stateDir. If stateDir is
// empty, it defaults to ~/.oxysheet.
func NewSettingsStore(stateDir string) (*SettingsStore, error) {
	if stateDir == "" {
		var err error
		stateDir, err = DefaultDir()
		if err != nil {
			return nil, err
		}
	}

	// Ensure directory exists
	if err := os.MkdirAll(stateDir, 0700); err != nil {
		return nil, err
	}

	s := &SettingsStore{
		filePath: filepath.Join(stateDir, "settings.toml"),
		settings: DefaultSettings(),
	}

	if err := s.Load(); err != nil {
		return nil, err
	}
	return s, nil
}

// DefaultDir returns the default state directory, ~/.oxysheet.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".oxysheet"), nil
}

// Settings returns a copy of the current settings.
func (s *SettingsStore) Settings() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// Update replaces the settings and persists them immediately.
func (s *SettingsStore) Update(settings Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.settings = settings
	return s.save()
}

// save writes the settings to the TOML file (caller must hold lock).
func (s *SettingsStore) save() error {
	data, err := toml.Marshal(s.settings)
	if err != nil {
		return err
	}

	// Write with restricted permissions
	return os.WriteFile(s.filePath, data, 0600)
}

// Load reads the settings from the TOML file. A missing file leaves the
// defaults in place.
func (s *SettingsStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	settings := DefaultSettings()
	if err := toml.Unmarshal(data, &settings); err != nil {
		return err
	}
	s.settings = settings
	return nil
}

// Path returns the settings file path.
func (s *SettingsStore) Path() string {
	return s.filePath
}

// Dir returns the state directory holding the settings and credential files.
func (s *SettingsStore) Dir() string {
	return filepath.Dir(s.filePath)
}
