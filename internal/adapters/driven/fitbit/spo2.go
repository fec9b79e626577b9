package fitbit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/oxysheet/oxysheet-cli/internal/core/domain"
	"github.com/oxysheet/oxysheet-cli/internal/core/ports/driven"
)

// Ensure Client implements the SpO2 source port.
var _ driven.SpO2Source = (*Client)(nil)

const dateLayout = "2006-01-02"

// spo2Entry mirrors the wire format of the SpO2 summary endpoint.
type spo2Entry struct {
	DateTime string `json:"dateTime"`
	Value    struct {
		Avg float64 `json:"avg"`
		Min float64 `json:"min"`
		Max float64 `json:"max"`
	} `json:"value"`
}

// SpO2Range fetches per-day SpO2 summaries for the inclusive range
// [start, end]. A zero end is treated as a single-day query for start, and
// produces the same request as SpO2Range(ctx, creds, start, start).
//
// The dates are not validated against each other; a reversed range surfaces
// as whatever HTTP error the API returns.
func (c *Client) SpO2Range(ctx context.Context, creds *domain.Credentials, start, end time.Time) ([]domain.SpO2Sample, error) {
	if end.IsZero() {
		end = start
	}
	urlPath := spo2Path(start, end)

	body, err := c.FetchResource(ctx, creds, urlPath)
	if err != nil {
		return nil, err
	}

	var entries []spo2Entry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("decode spo2 response: %w", err)
	}

	samples := make([]domain.SpO2Sample, 0, len(entries))
	for _, e := range entries {
		samples = append(samples, domain.SpO2Sample{
			Date: e.DateTime,
			Avg:  e.Value.Avg,
			Min:  e.Value.Min,
			Max:  e.Value.Max,
		})
	}
	return samples, nil
}

func spo2Path(start, end time.Time) string {
	return fmt.Sprintf("spo2/date/%s/%s.json", start.Format(dateLayout), end.Format(dateLayout))
}
