package entity

import (
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeTimeframes(t *testing.T) {
	tests := []struct {
		today         string
		backfillStart string
		backfillEnd   string
		newData       string
	}{
		{today: "2024-07-04", backfillStart: "2021-03-01", backfillEnd: "2024-03-01", newData: "2024-04-01"},
		{today: "2024-01-31", backfillStart: "2020-09-01", backfillEnd: "2023-09-01", newData: "2023-10-01"},
		{today: "2024-05-31", backfillStart: "2021-01-01", backfillEnd: "2024-01-01", newData: "2024-02-01"},
		{today: "2023-03-01", backfillStart: "2019-11-01", backfillEnd: "2022-11-01", newData: "2022-12-01"},
	}

	for _, tt := range tests {
		t.Run(tt.today, func(t *testing.T) {
			today, err := ParseDate(tt.today)
			require.NoError(t, err)

			tfs := ComputeTimeframes(today)

			assert.Equal(t, tt.backfillStart, tfs.Backfill.Start())
			assert.Equal(t, tt.backfillEnd, tfs.Backfill.End())
			assert.Equal(t, tt.newData, tfs.NewData.Start())
			assert.Equal(t, tt.newData, tfs.NewData.End())
		})
	}
}

// Every day across several years keeps the windows adjacent, month aligned
// and clear of the unpublished months.
func TestComputeTimeframes_Properties(t *testing.T) {
	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	for day := start; day.Before(start.AddDate(5, 0, 0)); day = day.AddDate(0, 0, 1) {
		tfs := ComputeTimeframes(day)
		currentMonth := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC)

		for _, d := range []time.Time{tfs.Backfill.StartDate, tfs.Backfill.EndDate, tfs.NewData.StartDate} {
			require.Equal(t, 1, d.Day(), "not month aligned for %s", FormatDate(day))
		}
		require.False(t, tfs.Backfill.EndDate.Before(tfs.Backfill.StartDate))
		require.True(t, tfs.Backfill.EndDate.Before(tfs.NewData.StartDate))
		require.Equal(t, tfs.NewData.StartDate, tfs.Backfill.EndDate.AddDate(0, 1, 0))
		require.Equal(t, tfs.Backfill.EndDate, tfs.Backfill.StartDate.AddDate(0, 36, 0))
		require.True(t, tfs.NewData.EndDate.Before(currentMonth.AddDate(0, -2, 0)))
	}
}

func TestNewTimeframe(t *testing.T) {
	tf, err := NewTimeframe("2024-01-01", "2024-03-01")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01 - 2024-03-01", tf.String())

	_, err = NewTimeframe("2024-03-01", "2024-01-01")
	assert.Error(t, err)

	_, err = NewTimeframe("2024/01/01", "2024-03-01")
	assert.Error(t, err)
}

func TestTimeframeJSON(t *testing.T) {
	var event ExtractionEvent
	require.NoError(t, json.Unmarshal([]byte(`{"account":"111111111111","timeframe":{"start_date":"2021-03-01","end_date":"2024-03-01"}}`), &event))

	require.NotNil(t, event.Timeframe)
	assert.Equal(t, "2021-03-01", event.Timeframe.Start())
	assert.False(t, event.SkipWrite)

	encoded, err := json.Marshal(event.Timeframe)
	require.NoError(t, err)
	assert.JSONEq(t, `{"start_date":"2021-03-01","end_date":"2024-03-01"}`, string(encoded))

	var missing ExtractionEvent
	require.NoError(t, json.Unmarshal([]byte(`{"account":"111111111111"}`), &missing))
	assert.Nil(t, missing.Timeframe)
}
