package driven

import (
	"context"

	"github.com/oxysheet/oxysheet-cli/internal/core/domain"
)

// SheetWriter appends SpO2 samples as rows to a spreadsheet, preserving the
// order of the input. Appending an empty slice is a no-op.
type SheetWriter interface {
	Append(ctx context.Context, samples []domain.SpO2Sample) error
}
