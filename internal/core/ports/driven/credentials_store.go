package driven

import (
	"context"

	"github.com/oxysheet/oxysheet-cli/internal/core/domain"
)

// CredentialsStore persists a single Fitbit credentials record.
//
// The record is loaded before the first API call of a session and must be
// saved again after any session that may have rotated tokens.
type CredentialsStore interface {
	// Load reads the stored credentials. Returns an error wrapping
	// domain.ErrNotFound if no credentials have been saved yet.
	Load(ctx context.Context) (*domain.Credentials, error)

	// Save writes the credentials, replacing any previous record.
	Save(ctx context.Context, creds *domain.Credentials) error

	// Exists reports whether a stored record is present.
	Exists() bool
}
