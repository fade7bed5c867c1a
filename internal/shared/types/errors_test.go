package types

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorKinds(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		kind      error
		retryable bool
	}{
		{name: "configuration", err: NewConfigurationError("bucket", "must not be empty"), kind: ErrConfiguration},
		{name: "assume role", err: &AssumeRoleError{AccountID: "1", RoleARN: "arn", Err: errors.New("AccessDenied")}, kind: ErrAssumeRole},
		{name: "no report", err: &NoReportAvailableError{AccountID: "1"}, kind: ErrNoReportAvailable},
		{name: "transient", err: &TransientRetrievalError{StatusCode: 500, Err: errors.New("boom")}, kind: ErrTransientRetrieval, retryable: true},
		{name: "wrapped transient", err: fmt.Errorf("account 1: %w", &TransientRetrievalError{Err: errors.New("EOF")}), kind: ErrTransientRetrieval, retryable: true},
		{name: "query failed", err: &QueryExecutionError{ExecutionID: "e", State: "FAILED", Reason: "r"}, kind: ErrQueryExecution},
		{name: "query timeout", err: &QueryTimeoutError{ExecutionID: "e", Err: context.DeadlineExceeded}, kind: ErrQueryTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.err, tt.kind)
			assert.Equal(t, tt.retryable, IsRetryable(tt.err))
		})
	}
}

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "configuration error: bucket: must not be empty", NewConfigurationError("bucket", "must not be empty").Error())
	assert.Equal(t, "configuration error: missing", NewConfigurationError("", "missing").Error())
	assert.Equal(t, "Query abc failed: HIVE_BAD_DATA", (&QueryExecutionError{ExecutionID: "abc", Reason: "HIVE_BAD_DATA"}).Error())
	assert.Equal(t, "transient retrieval error (status 503): slow down",
		(&TransientRetrievalError{StatusCode: 503, Err: errors.New("slow down")}).Error())
}

func TestQueryTimeoutKeepsCause(t *testing.T) {
	err := &QueryTimeoutError{ExecutionID: "e", Err: context.DeadlineExceeded}

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.NotErrorIs(t, err, ErrQueryExecution)
}
