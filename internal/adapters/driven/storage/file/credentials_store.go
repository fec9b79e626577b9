// Package file provides the flat-file credentials store.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/oxysheet/oxysheet-cli/internal/core/domain"
	"github.com/oxysheet/oxysheet-cli/internal/core/ports/driven"
)

// Ensure CredentialsStore implements the interface.
var _ driven.CredentialsStore = (*CredentialsStore)(nil)

// CredentialsStore persists one Fitbit credentials record as a JSON object
// with keys client_id, client_secret, access_token, refresh_token.
type CredentialsStore struct {
	mu       sync.Mutex
	filePath string
}

// NewCredentialsStore creates a store backed by the given file path.
func NewCredentialsStore(filePath string) *CredentialsStore {
	return &CredentialsStore{filePath: filePath}
}

// Load reads and validates the stored credentials.
func (s *CredentialsStore) Load(_ context.Context) (*domain.Credentials, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: no credentials at %s", domain.ErrNotFound, s.filePath)
		}
		return nil, fmt.Errorf("read credentials: %w", err)
	}

	var creds domain.Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, fmt.Errorf("decode credentials: %w", err)
	}
	if err := creds.Validate(); err != nil {
		return nil, err
	}
	return &creds, nil
}

// Save writes the credentials, replacing any previous record. The parent
// directory is created if needed and the file is restricted to the owner.
func (s *CredentialsStore) Save(_ context.Context, creds *domain.Credentials) error {
	if err := creds.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.filePath), 0700); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}

	data, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return fmt.Errorf("encode credentials: %w", err)
	}
	if err := os.WriteFile(s.filePath, data, 0600); err != nil {
		return fmt.Errorf("write credentials: %w", err)
	}
	return nil
}

// Exists reports whether a credentials file is present.
func (s *CredentialsStore) Exists() bool {
	_, err := os.Stat(s.filePath)
	return err == nil
}

// Path returns the credentials file path.
func (s *CredentialsStore) Path() string {
	return s.filePath
}
