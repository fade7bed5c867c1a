package repository

import (
	"context"

	"github.com/diillson/aws-carbon-emissions-go/internal/domain/entity"
)

// QueryEngine submits statements to an asynchronous query service.
type QueryEngine interface {
	StartQuery(ctx context.Context, query, workgroup string) (string, error)
	GetQueryExecution(ctx context.Context, executionID string) (entity.QueryExecution, error)
}
