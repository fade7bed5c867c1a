package entity

import (
	"fmt"
	"time"
)

// EntriesKey is the payload field holding per-month emission records.
const EntriesKey = "carbonEmissionEntries"

// EmissionsPayload is the raw body returned by the reporting endpoint. The
// endpoint is undocumented and unversioned, so only EntriesKey is interpreted.
type EmissionsPayload map[string]any

// Entries returns the emission records, or nil when absent or malformed.
func (p EmissionsPayload) Entries() []any {
	if p == nil {
		return nil
	}
	entries, ok := p[EntriesKey].([]any)
	if !ok {
		return nil
	}
	return entries
}

// DecodeEmissionsPayload parses a response body.
func DecodeEmissionsPayload(body []byte) (EmissionsPayload, error) {
	payload := EmissionsPayload{}
	if len(body) == 0 {
		return payload, nil
	}
	if err := jsonUnmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("error decoding emissions payload: %w", err)
	}
	return payload, nil
}

// ReportQuery describes the request a report answers.
type ReportQuery struct {
	QueryDate string `json:"queryDate"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// EmissionsReport is the normalized result of one retrieval. It is created
// by the retrieval client and not modified afterwards.
type EmissionsReport struct {
	AccountID   string           `json:"accountId"`
	Query       ReportQuery      `json:"query"`
	RetrievedAt time.Time        `json:"-"`
	Timeframe   Timeframe        `json:"-"`
	Emissions   EmissionsPayload `json:"emissions"`
}

// NewEmissionsReport stamps a payload with the account and query window.
func NewEmissionsReport(accountID string, tf Timeframe, retrievedAt time.Time, payload EmissionsPayload) *EmissionsReport {
	return &EmissionsReport{
		AccountID: accountID,
		Query: ReportQuery{
			QueryDate: FormatDate(retrievedAt),
			StartDate: tf.Start(),
			EndDate:   tf.End(),
		},
		RetrievedAt: retrievedAt,
		Timeframe:   tf,
		Emissions:   payload,
	}
}

// Entries returns the report's emission records.
func (r *EmissionsReport) Entries() []any {
	return r.Emissions.Entries()
}

// IsDataAvailable reports whether the report carries at least one entry.
// An empty report means nothing new has been published yet.
func (r *EmissionsReport) IsDataAvailable() bool {
	return r != nil && len(r.Entries()) > 0
}

// Marshal encodes the report as stored in the bucket.
func (r *EmissionsReport) Marshal() ([]byte, error) {
	return jsonMarshal(r)
}

// RawResponse is what a retrieval strategy hands back before classification.
type RawResponse struct {
	StatusCode int
	Body       []byte
}

// ObjectKey derives the storage key of a report. requestID is unique per
// invocation, so retried or concurrent runs never overwrite each other.
func ObjectKey(accountID, requestID string, start time.Time) string {
	return fmt.Sprintf("%s/%s_%scarbon_emissions.json", accountID, requestID, FormatDate(start))
}
