package entity

import (
	"fmt"
	"time"
)

// DateLayout is the YYYY-MM-DD layout used by the reporting endpoint.
const DateLayout = "2006-01-02"

const (
	// publicationLagMonths is the delay before a month's emissions are published.
	publicationLagMonths = 3
	// maxWindowMonths is the longest trailing window the endpoint serves.
	maxWindowMonths = 36
)

// Timeframe is a closed interval of months, both ends truncated to the first day.
type Timeframe struct {
	StartDate time.Time
	EndDate   time.Time
}

// Timeframes holds the two windows queried on a run.
type Timeframes struct {
	Backfill Timeframe `json:"backfill"`
	NewData  Timeframe `json:"new_data"`
}

type timeframeJSON struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// NewTimeframe parses two YYYY-MM-DD dates into a Timeframe.
func NewTimeframe(start, end string) (Timeframe, error) {
	s, err := ParseDate(start)
	if err != nil {
		return Timeframe{}, fmt.Errorf("invalid start_date: %w", err)
	}
	e, err := ParseDate(end)
	if err != nil {
		return Timeframe{}, fmt.Errorf("invalid end_date: %w", err)
	}
	if e.Before(s) {
		return Timeframe{}, fmt.Errorf("start_date %s is after end_date %s", start, end)
	}
	return Timeframe{StartDate: s, EndDate: e}, nil
}

// Start returns the formatted start date.
func (t Timeframe) Start() string { return FormatDate(t.StartDate) }

// End returns the formatted end date.
func (t Timeframe) End() string { return FormatDate(t.EndDate) }

func (t Timeframe) String() string {
	return t.Start() + " - " + t.End()
}

// MarshalJSON encodes the timeframe as {start_date, end_date}.
func (t Timeframe) MarshalJSON() ([]byte, error) {
	return jsonMarshal(timeframeJSON{StartDate: t.Start(), EndDate: t.End()})
}

// UnmarshalJSON decodes {start_date, end_date}.
func (t *Timeframe) UnmarshalJSON(data []byte) error {
	var raw timeframeJSON
	if err := jsonUnmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := NewTimeframe(raw.StartDate, raw.EndDate)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// ComputeTimeframes derives the backfill and new-data windows from today.
//
// new_data is the single month published most recently (today - 3 months).
// backfill is the 36-month span ending the month before it, so the two never
// overlap and neither touches the unpublished months.
func ComputeTimeframes(today time.Time) Timeframes {
	newData := monthsBefore(today, publicationLagMonths)
	return Timeframes{
		NewData: Timeframe{StartDate: newData, EndDate: newData},
		Backfill: Timeframe{
			StartDate: monthsBefore(today, publicationLagMonths+1+maxWindowMonths),
			EndDate:   monthsBefore(today, publicationLagMonths+1),
		},
	}
}

// monthsBefore returns the first day of the month n months before t.
// Normalising to day 1 first avoids AddDate overflowing short months.
func monthsBefore(t time.Time, n int) time.Time {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return first.AddDate(0, -n, 0)
}

// ParseDate parses a YYYY-MM-DD date in UTC.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}

// FormatDate formats t as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
