// Package services contains the core orchestration logic, wired to the
// adapters through the port interfaces.
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/oxysheet/oxysheet-cli/internal/core/ports/driven"
	"github.com/oxysheet/oxysheet-cli/internal/core/ports/driving"
	"github.com/oxysheet/oxysheet-cli/internal/logger"
)

// Ensure ExportService implements the driving port.
var _ driving.Exporter = (*ExportService)(nil)

// ExportService fetches SpO2 data from the source and appends it to the
// sheet, persisting rotated credentials in between.
type ExportService struct {
	source driven.SpO2Source
	creds  driven.CredentialsStore
	sheet  driven.SheetWriter
}

// NewExportService creates an export service from its collaborators.
func NewExportService(
	source driven.SpO2Source,
	creds driven.CredentialsStore,
	sheet driven.SheetWriter,
) *ExportService {
	return &ExportService{
		source: source,
		creds:  creds,
		sheet:  sheet,
	}
}

// Export fetches the [start, end] range and appends the samples to the sheet.
//
// The credentials record is saved back before the fetch result is inspected:
// a refresh rotates the single-use refresh token even when the retried
// request ultimately fails, and losing the rotated token would force the
// operator through the authorization flow again.
func (s *ExportService) Export(ctx context.Context, start, end time.Time) (int, error) {
	creds, err := s.creds.Load(ctx)
	if err != nil {
		return 0, fmt.Errorf("load credentials: %w", err)
	}

	samples, fetchErr := s.source.SpO2Range(ctx, creds, start, end)

	if err := s.creds.Save(ctx, creds); err != nil {
		return 0, fmt.Errorf("save credentials: %w", err)
	}

	if fetchErr != nil {
		return 0, fetchErr
	}
	logger.Debug("fetched %d SpO2 sample(s)", len(samples))

	if len(samples) == 0 {
		return 0, nil
	}

	if err := s.sheet.Append(ctx, samples); err != nil {
		return 0, fmt.Errorf("append to sheet: %w", err)
	}

	return len(samples), nil
}
