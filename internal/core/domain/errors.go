package domain

import (
	"encoding/json"
	"errors"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")
)

// CredentialsError indicates that the stored Fitbit credentials cannot
// authorize requests: either no credentials are configured, or a token
// refresh followed by a retry still failed. The operation is not retried
// further; the operator has to re-run the authorization flow.
type CredentialsError struct {
	// Reason is a short human-readable description of what failed.
	Reason string

	// Payload carries the authorization server's JSON error body, when one
	// was received, for diagnostics.
	Payload json.RawMessage
}

func (e *CredentialsError) Error() string {
	msg := "credentials invalid"
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if len(e.Payload) > 0 {
		msg += ": " + string(e.Payload)
	}
	return msg
}

// IsCredentialsError reports whether err is (or wraps) a CredentialsError.
func IsCredentialsError(err error) bool {
	var ce *CredentialsError
	return errors.As(err, &ce)
}
