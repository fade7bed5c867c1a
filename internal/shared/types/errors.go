package types

import (
	"errors"
	"fmt"
)

var (
	ErrConfiguration      = errors.New("configuration error")
	ErrAssumeRole         = errors.New("unable to assume role")
	ErrNoReportAvailable  = errors.New("no carbon footprint report available")
	ErrTransientRetrieval = errors.New("transient retrieval error")
	ErrQueryExecution     = errors.New("query execution failed")
	ErrQueryTimeout       = errors.New("timed out waiting for query execution")

	ErrNoAccountsFound = errors.New("no accounts found in the organization")
)

// ConfigurationError marks malformed or missing input. It is never retried.
type ConfigurationError struct {
	Field  string
	Reason string
}

func NewConfigurationError(field, reason string) *ConfigurationError {
	return &ConfigurationError{Field: field, Reason: reason}
}

func (e *ConfigurationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", ErrConfiguration, e.Reason)
	}
	return fmt.Sprintf("%s: %s: %s", ErrConfiguration, e.Field, e.Reason)
}

func (e *ConfigurationError) Unwrap() error { return ErrConfiguration }

// AssumeRoleError is returned when the target role cannot be assumed.
type AssumeRoleError struct {
	AccountID string
	RoleARN   string
	Err       error
}

func (e *AssumeRoleError) Error() string {
	return fmt.Sprintf("%s %s in account %s: %v", ErrAssumeRole, e.RoleARN, e.AccountID, e.Err)
}

func (e *AssumeRoleError) Unwrap() []error { return []error{ErrAssumeRole, e.Err} }

// NoReportAvailableError is the expected outcome for accounts that are too
// new to have published emissions.
type NoReportAvailableError struct {
	AccountID string
}

func (e *NoReportAvailableError) Error() string {
	return fmt.Sprintf("No carbon footprint report is available for account %s at this time.\n"+
		"If no report is available, your account might be too new to show data.\n"+
		"There is a delay of three months between the end of a month and when emissions data is available.", e.AccountID)
}

func (e *NoReportAvailableError) Unwrap() error { return ErrNoReportAvailable }

// TransientRetrievalError wraps any failure of the reporting endpoint other
// than a 404. Callers may retry it.
type TransientRetrievalError struct {
	StatusCode int
	Err        error
}

func (e *TransientRetrievalError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s (status %d): %v", ErrTransientRetrieval, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %v", ErrTransientRetrieval, e.Err)
}

func (e *TransientRetrievalError) Unwrap() []error { return []error{ErrTransientRetrieval, e.Err} }

// QueryExecutionError carries the engine's own diagnostic text unmodified.
type QueryExecutionError struct {
	ExecutionID string
	State       string
	Reason      string
}

func (e *QueryExecutionError) Error() string {
	return fmt.Sprintf("Query %s failed: %s", e.ExecutionID, e.Reason)
}

func (e *QueryExecutionError) Unwrap() error { return ErrQueryExecution }

// QueryTimeoutError is returned when the caller's deadline expires while a
// query is still being polled. The query keeps running remotely.
type QueryTimeoutError struct {
	ExecutionID string
	Err         error
}

func (e *QueryTimeoutError) Error() string {
	return fmt.Sprintf("%s %s: %v", ErrQueryTimeout, e.ExecutionID, e.Err)
}

func (e *QueryTimeoutError) Unwrap() []error { return []error{ErrQueryTimeout, e.Err} }

// IsRetryable reports whether err should be retried by the caller of the
// retrieval client.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrTransientRetrieval) && !errors.Is(err, ErrNoReportAvailable)
}
