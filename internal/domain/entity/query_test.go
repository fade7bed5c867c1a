package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadQuery(t *testing.T) {
	tests := []struct {
		name         string
		template     string
		placeholders map[string]string
		want         string
	}{
		{
			name:         "all occurrences",
			template:     `CREATE VIEW "${database_name}"."v" AS SELECT * FROM "${database_name}"."t"`,
			placeholders: map[string]string{"database_name": "ccft"},
			want:         `CREATE VIEW "ccft"."v" AS SELECT * FROM "ccft"."t"`,
		},
		{
			name:         "unknown placeholder kept",
			template:     "LOCATION '${emissions_location}' -- ${owner}",
			placeholders: map[string]string{"emissions_location": "s3://reports/"},
			want:         "LOCATION 's3://reports/' -- ${owner}",
		},
		{
			name:         "quoted view name",
			template:     `CREATE OR REPLACE VIEW "${mykey}" AS ...`,
			placeholders: map[string]string{"mykey": "X"},
			want:         `CREATE OR REPLACE VIEW "X" AS ...`,
		},
		{
			name:         "no placeholders",
			template:     "SELECT 1",
			placeholders: nil,
			want:         "SELECT 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LoadQuery(tt.template, tt.placeholders))
		})
	}
}

func TestQueryState_IsTerminal(t *testing.T) {
	assert.False(t, QueryStateQueued.IsTerminal())
	assert.False(t, QueryStateRunning.IsTerminal())
	assert.True(t, QueryStateSucceeded.IsTerminal())
	assert.True(t, QueryStateFailed.IsTerminal())
	assert.True(t, QueryStateCancelled.IsTerminal())
}

func TestRunSummaryCounters(t *testing.T) {
	s := RunSummary{Outcomes: []AccountOutcome{
		{Success: true, IsDataAvailable: true},
		{Success: true},
		{Success: false},
	}}

	assert.Equal(t, 2, s.Succeeded())
	assert.Equal(t, 1, s.Failed())
	assert.Equal(t, 1, s.WithData())
}
