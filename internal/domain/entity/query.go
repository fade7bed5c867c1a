package entity

import (
	"sort"
	"strings"
)

// QueryState is the lifecycle state of an asynchronous query execution.
type QueryState string

const (
	QueryStateQueued    QueryState = "QUEUED"
	QueryStateRunning   QueryState = "RUNNING"
	QueryStateSucceeded QueryState = "SUCCEEDED"
	QueryStateFailed    QueryState = "FAILED"
	QueryStateCancelled QueryState = "CANCELLED"
)

// IsTerminal reports whether no further transition can happen.
func (s QueryState) IsTerminal() bool {
	switch s {
	case QueryStateSucceeded, QueryStateFailed, QueryStateCancelled:
		return true
	}
	return false
}

// QueryExecution is the engine's view of a submitted statement.
type QueryExecution struct {
	ID     string
	State  QueryState
	Reason string
}

// QueryStatement is a template with ${name} placeholders.
type QueryStatement struct {
	Name         string
	Template     string
	Placeholders map[string]string
}

// Resolve substitutes the statement's placeholders.
func (s QueryStatement) Resolve() string {
	return LoadQuery(s.Template, s.Placeholders)
}

// LoadQuery replaces every ${name} in template with placeholders[name].
// Placeholders without a value are left untouched.
func LoadQuery(template string, placeholders map[string]string) string {
	names := make([]string, 0, len(placeholders))
	for name := range placeholders {
		names = append(names, name)
	}
	sort.Strings(names)

	statement := template
	for _, name := range names {
		statement = strings.ReplaceAll(statement, "${"+name+"}", placeholders[name])
	}
	return statement
}
