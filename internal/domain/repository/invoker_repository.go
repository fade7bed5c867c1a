package repository

import (
	"context"

	"github.com/diillson/aws-carbon-emissions-go/internal/domain/entity"
)

// FunctionInvoker runs an extraction event on a deployed function instead
// of in-process.
type FunctionInvoker interface {
	InvokeExtraction(ctx context.Context, functionName string, event entity.ExtractionEvent) (entity.ExtractionResult, error)
}
