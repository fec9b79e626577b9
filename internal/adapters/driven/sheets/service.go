// Package sheets implements the Google Sheets sink: service construction,
// the operator's authorized-user token handling, and the row appender.
package sheets

import (
	"context"

	"golang.org/x/oauth2"
	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"
)

// NewService creates a Sheets API service using the provided TokenSource.
func NewService(ctx context.Context, ts oauth2.TokenSource) (*gsheets.Service, error) {
	return gsheets.NewService(ctx, option.WithTokenSource(ts))
}
