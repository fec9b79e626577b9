package driven

import (
	"context"
	"time"

	"github.com/oxysheet/oxysheet-cli/internal/core/domain"
)

// SpO2Source fetches blood oxygen measurements for an authenticated user.
type SpO2Source interface {
	// SpO2Range returns per-day SpO2 summaries for the inclusive date range
	// [start, end]. A zero end is treated as a single-day query for start.
	//
	// creds may be mutated in place when an expired access token is
	// refreshed mid-request; the caller owns persisting the updated record.
	SpO2Range(ctx context.Context, creds *domain.Credentials, start, end time.Time) ([]domain.SpO2Sample, error)
}
