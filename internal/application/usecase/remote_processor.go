package usecase

import (
	"context"
	"fmt"

	"github.com/diillson/aws-carbon-emissions-go/internal/domain/entity"
	"github.com/diillson/aws-carbon-emissions-go/internal/domain/repository"
)

// RemoteProcessor hands extraction events to the deployed extraction
// function, which assumes the role and writes the report itself.
type RemoteProcessor struct {
	invoker      repository.FunctionInvoker
	functionName string
}

// NewRemoteProcessor creates a processor that invokes functionName.
func NewRemoteProcessor(invoker repository.FunctionInvoker, functionName string) *RemoteProcessor {
	return &RemoteProcessor{invoker: invoker, functionName: functionName}
}

// Process invokes the function once; the function applies its own retries.
func (p *RemoteProcessor) Process(ctx context.Context, event entity.ExtractionEvent, _ string) (entity.ExtractionResult, int, error) {
	if err := ValidateEvent(event); err != nil {
		return entity.ExtractionResult{}, 0, err
	}

	result, err := p.invoker.InvokeExtraction(ctx, p.functionName, event)
	if err != nil {
		return entity.ExtractionResult{Message: err.Error()}, 1, fmt.Errorf("account %s: %w", event.Account, err)
	}
	return result, 1, nil
}
