// Package driving defines the interfaces through which the outside world
// (the CLI) drives the core services.
package driving

import (
	"context"
	"time"
)

// Exporter runs one fetch-and-append cycle: retrieve SpO2 data for a date
// range from Fitbit and append it to the configured sheet.
type Exporter interface {
	// Export returns the number of samples appended. Stored credentials are
	// rewritten whenever the fetch may have rotated tokens, even if a later
	// step fails.
	Export(ctx context.Context, start, end time.Time) (int, error)
}
