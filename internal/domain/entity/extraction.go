package entity

import "time"

// ExtractionEvent is the input of a single account extraction. Timeframe is
// a pointer so a missing field can be told apart from a zero window.
type ExtractionEvent struct {
	Account   string     `json:"account"`
	Timeframe *Timeframe `json:"timeframe"`
	SkipWrite bool       `json:"skip_write,omitempty"`
}

// ExtractionResult is the outcome of a single account extraction.
type ExtractionResult struct {
	Message         string `json:"message"`
	IsDataAvailable bool   `json:"isDataAvailable"`
	Key             string `json:"key,omitempty"`
}

// TimeframeKind names which window an outcome belongs to.
type TimeframeKind string

const (
	TimeframeBackfill TimeframeKind = "backfill"
	TimeframeNewData  TimeframeKind = "new_data"
)

// AccountOutcome records what happened to one account and window on a run.
type AccountOutcome struct {
	AccountID       string        `json:"account_id"`
	Kind            TimeframeKind `json:"timeframe_kind"`
	Timeframe       Timeframe     `json:"timeframe"`
	Success         bool          `json:"success"`
	IsDataAvailable bool          `json:"is_data_available"`
	Message         string        `json:"message"`
	Key             string        `json:"key,omitempty"`
	Attempts        int           `json:"attempts"`
	Error           string        `json:"error,omitempty"`
	Duration        time.Duration `json:"duration"`

	cause error
}

// WithErr attaches the underlying error so callers can match it with errors.Is.
func (o AccountOutcome) WithErr(err error) AccountOutcome {
	o.cause = err
	return o
}

// Err returns the error the outcome failed with, if any.
func (o AccountOutcome) Err() error {
	return o.cause
}

// RunSummary collects the outcomes of an organization-wide run.
type RunSummary struct {
	StartedAt  time.Time        `json:"started_at"`
	FinishedAt time.Time        `json:"finished_at"`
	Timeframes Timeframes       `json:"timeframes"`
	Backfilled bool             `json:"backfilled"`
	Outcomes   []AccountOutcome `json:"outcomes"`
}

// Succeeded counts outcomes without error.
func (s RunSummary) Succeeded() int {
	n := 0
	for _, o := range s.Outcomes {
		if o.Success {
			n++
		}
	}
	return n
}

// Failed counts outcomes with an error.
func (s RunSummary) Failed() int {
	return len(s.Outcomes) - s.Succeeded()
}

// WithData counts outcomes that produced a stored (or storable) report.
func (s RunSummary) WithData() int {
	n := 0
	for _, o := range s.Outcomes {
		if o.IsDataAvailable {
			n++
		}
	}
	return n
}
