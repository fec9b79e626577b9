package domain

// SpO2Sample is one day's blood oxygen saturation summary.
//
// Fitbit ties SpO2 to the user's main sleep, so a sample dated D usually
// reflects the sleep period that began on D-1. Samples are immutable once
// produced and keep whatever order the API returned them in (chronological,
// one entry per date in range).
type SpO2Sample struct {
	// Date is the measurement date in YYYY-MM-DD form.
	Date string

	// Avg, Min and Max are SpO2 percentages for the sleep period.
	Avg float64
	Min float64
	Max float64
}

// Row returns the sample as an ordered sheet row: date, min, max, avg.
func (s SpO2Sample) Row() []any {
	return []any{s.Date, s.Min, s.Max, s.Avg}
}
