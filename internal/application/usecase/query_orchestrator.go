package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/diillson/aws-carbon-emissions-go/internal/domain/entity"
	"github.com/diillson/aws-carbon-emissions-go/internal/domain/repository"
	"github.com/diillson/aws-carbon-emissions-go/internal/shared/types"
	"k8s.io/apimachinery/pkg/util/wait"
)

// QueryOrchestrator submits statements one after the other and waits for
// each to reach a terminal state before submitting the next.
type QueryOrchestrator struct {
	engine       repository.QueryEngine
	console      types.ConsoleInterface
	pollInterval time.Duration
}

// NewQueryOrchestrator creates a new query orchestrator.
func NewQueryOrchestrator(engine repository.QueryEngine, console types.ConsoleInterface, pollInterval time.Duration) *QueryOrchestrator {
	return &QueryOrchestrator{engine: engine, console: console, pollInterval: pollInterval}
}

// Run resolves and executes statements in order. The first failure stops the
// chain; no timeout is imposed beyond ctx.
func (o *QueryOrchestrator) Run(ctx context.Context, statements []entity.QueryStatement, workgroup string) error {
	for _, stmt := range statements {
		query := stmt.Resolve()
		o.console.LogDebug("Running query %q in workgroup %q", query, workgroup)

		executionID, err := o.engine.StartQuery(ctx, query, workgroup)
		if err != nil {
			return fmt.Errorf("error submitting %s: %w", statementName(stmt), err)
		}

		status := o.console.Status(fmt.Sprintf("Waiting for %s (%s)", statementName(stmt), executionID))
		err = o.wait(ctx, executionID, status)
		status.Stop()
		if err != nil {
			return err
		}
		o.console.LogInfo("Query %s (%s) succeeded", executionID, statementName(stmt))
	}
	return nil
}

// Wait polls executionID until it is terminal or ctx is done.
func (o *QueryOrchestrator) Wait(ctx context.Context, executionID string) error {
	return o.wait(ctx, executionID, nil)
}

func (o *QueryOrchestrator) wait(ctx context.Context, executionID string, status types.StatusHandle) error {
	var failure error
	var last entity.QueryState
	condition := func(ctx context.Context) (bool, error) {
		execution, err := o.engine.GetQueryExecution(ctx, executionID)
		if err != nil {
			return false, fmt.Errorf("error getting status of query %s: %w", executionID, err)
		}
		if status != nil && execution.State != last {
			status.Update(fmt.Sprintf("Query %s is %s", executionID, execution.State))
		}
		last = execution.State

		switch execution.State {
		case entity.QueryStateSucceeded:
			return true, nil
		case entity.QueryStateFailed, entity.QueryStateCancelled:
			failure = &types.QueryExecutionError{
				ExecutionID: executionID,
				State:       string(execution.State),
				Reason:      execution.Reason,
			}
			return false, failure
		}
		return false, nil
	}

	err := wait.PollUntilContextCancel(ctx, o.pollInterval, true, condition)
	switch {
	case err == nil:
		return nil
	case failure != nil && errors.Is(err, types.ErrQueryExecution):
		return failure
	case ctx.Err() != nil:
		return &types.QueryTimeoutError{ExecutionID: executionID, Err: ctx.Err()}
	case wait.Interrupted(err):
		return &types.QueryTimeoutError{ExecutionID: executionID, Err: err}
	}
	return err
}

func statementName(stmt entity.QueryStatement) string {
	if stmt.Name != "" {
		return stmt.Name
	}
	return "statement"
}
