package sheets

import (
	"context"
	"fmt"

	gsheets "google.golang.org/api/sheets/v4"

	"github.com/oxysheet/oxysheet-cli/internal/core/domain"
	"github.com/oxysheet/oxysheet-cli/internal/core/ports/driven"
	"github.com/oxysheet/oxysheet-cli/internal/logger"
)

// Ensure Writer implements the SheetWriter port.
var _ driven.SheetWriter = (*Writer)(nil)

// Writer appends SpO2 rows to one worksheet of one spreadsheet.
type Writer struct {
	svc           *gsheets.Service
	spreadsheetID string
	worksheet     string
	limiter       *RateLimiter
}

// NewWriter creates a writer for the given spreadsheet ID and worksheet
// title.
func NewWriter(svc *gsheets.Service, spreadsheetID, worksheet string) *Writer {
	return &Writer{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		worksheet:     worksheet,
		limiter:       NewRateLimiter(),
	}
}

// Append appends the samples as rows (date, min, max, avg) after the last
// non-empty row of the worksheet. Input order is preserved; appending an
// empty slice is a no-op.
func (w *Writer) Append(ctx context.Context, samples []domain.SpO2Sample) error {
	if len(samples) == 0 {
		return nil
	}
	if err := w.limiter.Wait(ctx); err != nil {
		return err
	}

	values := make([][]any, 0, len(samples))
	for _, s := range samples {
		values = append(values, s.Row())
	}

	logger.Debug("appending %d row(s) to %s!%s", len(values), w.spreadsheetID, w.worksheet)
	_, err := w.svc.Spreadsheets.Values.
		Append(w.spreadsheetID, w.worksheet, &gsheets.ValueRange{Values: values}).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		err = WrapError(err)
		if IsRateLimited(err) {
			w.limiter.RecordRateLimitError(0)
		}
		return fmt.Errorf("append rows: %w", err)
	}
	return nil
}
