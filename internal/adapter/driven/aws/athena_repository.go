package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/athena"
	"github.com/diillson/aws-carbon-emissions-go/internal/domain/entity"
)

// AthenaAPI is the subset of the Athena client in use.
type AthenaAPI interface {
	StartQueryExecution(ctx context.Context, params *athena.StartQueryExecutionInput, optFns ...func(*athena.Options)) (*athena.StartQueryExecutionOutput, error)
	GetQueryExecution(ctx context.Context, params *athena.GetQueryExecutionInput, optFns ...func(*athena.Options)) (*athena.GetQueryExecutionOutput, error)
}

// AthenaRepositoryImpl implementa repository.QueryEngine.
type AthenaRepositoryImpl struct {
	client AthenaAPI
}

// NewAthenaRepository creates a query engine over client.
func NewAthenaRepository(client AthenaAPI) *AthenaRepositoryImpl {
	return &AthenaRepositoryImpl{client: client}
}

// StartQuery submits query to workgroup and returns its execution id.
func (r *AthenaRepositoryImpl) StartQuery(ctx context.Context, query, workgroup string) (string, error) {
	out, err := r.client.StartQueryExecution(ctx, &athena.StartQueryExecutionInput{
		QueryString: aws.String(query),
		WorkGroup:   aws.String(workgroup),
	})
	if err != nil {
		return "", fmt.Errorf("error starting query in workgroup %s: %w", workgroup, apiError(err))
	}
	return aws.ToString(out.QueryExecutionId), nil
}

// GetQueryExecution returns the current state of an execution.
func (r *AthenaRepositoryImpl) GetQueryExecution(ctx context.Context, executionID string) (entity.QueryExecution, error) {
	out, err := r.client.GetQueryExecution(ctx, &athena.GetQueryExecutionInput{
		QueryExecutionId: aws.String(executionID),
	})
	if err != nil {
		return entity.QueryExecution{}, fmt.Errorf("error getting query execution %s: %w", executionID, apiError(err))
	}

	execution := entity.QueryExecution{ID: executionID}
	if out.QueryExecution != nil && out.QueryExecution.Status != nil {
		execution.State = entity.QueryState(out.QueryExecution.Status.State)
		execution.Reason = aws.ToString(out.QueryExecution.Status.StateChangeReason)
	}
	return execution, nil
}
