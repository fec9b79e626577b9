package sheets

import (
	"errors"
	"net/http"

	"google.golang.org/api/googleapi"
)

// Common Sheets API errors.
var (
	// ErrUnauthorized indicates invalid or expired Google credentials.
	ErrUnauthorized = errors.New("sheets: unauthorised (invalid credentials)")

	// ErrForbidden indicates insufficient permissions on the spreadsheet.
	ErrForbidden = errors.New("sheets: forbidden (insufficient permissions)")

	// ErrNotFound indicates the spreadsheet or range was not found.
	ErrNotFound = errors.New("sheets: spreadsheet not found")

	// ErrRateLimited indicates the API rate limit was exceeded.
	ErrRateLimited = errors.New("sheets: rate limit exceeded")
)

// IsUnauthorized returns true if the error indicates invalid credentials.
func IsUnauthorized(err error) bool {
	if errors.Is(err, ErrUnauthorized) {
		return true
	}
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return gerr.Code == http.StatusUnauthorized
	}
	return false
}

// IsRateLimited returns true if the error indicates rate limiting.
func IsRateLimited(err error) bool {
	if errors.Is(err, ErrRateLimited) {
		return true
	}
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return gerr.Code == http.StatusTooManyRequests
	}
	return false
}

// WrapError converts a Sheets API error to a more specific error type.
func WrapError(err error) error {
	if err == nil {
		return nil
	}

	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return err
	}

	switch gerr.Code {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusTooManyRequests:
		return ErrRateLimited
	default:
		return err
	}
}
