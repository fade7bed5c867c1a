package entity

import (
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectKey(t *testing.T) {
	start := time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "111111111111/req-1_2021-03-01carbon_emissions.json", ObjectKey("111111111111", "req-1", start))
	assert.NotEqual(t, ObjectKey("111111111111", "req-1", start), ObjectKey("111111111111", "req-2", start))
}

func TestEmissionsReport(t *testing.T) {
	tf, err := NewTimeframe("2024-04-01", "2024-04-01")
	require.NoError(t, err)

	payload, err := DecodeEmissionsPayload([]byte(`{"carbonEmissionEntries":[{"mbmCarbon":"0.3"}],"forecast":[]}`))
	require.NoError(t, err)

	retrievedAt := time.Date(2024, 7, 4, 9, 0, 0, 0, time.UTC)
	report := NewEmissionsReport("111111111111", tf, retrievedAt, payload)

	assert.True(t, report.IsDataAvailable())
	assert.Len(t, report.Entries(), 1)

	body, err := report.Marshal()
	require.NoError(t, err)

	var stored map[string]any
	require.NoError(t, json.Unmarshal(body, &stored))
	assert.Equal(t, "111111111111", stored["accountId"])
	assert.Equal(t, map[string]any{"queryDate": "2024-07-04", "startDate": "2024-04-01", "endDate": "2024-04-01"}, stored["query"])
	emissions, ok := stored["emissions"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, emissions, "forecast")
}

func TestEmissionsPayload_Entries(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{name: "empty body", body: ``, want: 0},
		{name: "no entries key", body: `{"forecast":[]}`, want: 0},
		{name: "empty entries", body: `{"carbonEmissionEntries":[]}`, want: 0},
		{name: "entries not a list", body: `{"carbonEmissionEntries":"n/a"}`, want: 0},
		{name: "two entries", body: `{"carbonEmissionEntries":[{},{}]}`, want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload, err := DecodeEmissionsPayload([]byte(tt.body))
			require.NoError(t, err)
			assert.Len(t, payload.Entries(), tt.want)
		})
	}

	_, err := DecodeEmissionsPayload([]byte(`<html>`))
	assert.Error(t, err)
}
