package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/diillson/aws-carbon-emissions-go/internal/domain/entity"
	"github.com/goccy/go-json"
)

// LambdaAPI is the subset of the Lambda client in use.
type LambdaAPI interface {
	Invoke(ctx context.Context, params *lambda.InvokeInput, optFns ...func(*lambda.Options)) (*lambda.InvokeOutput, error)
}

// LambdaRepositoryImpl implementa repository.FunctionInvoker.
type LambdaRepositoryImpl struct {
	client LambdaAPI
}

// NewLambdaRepository creates an invoker over client.
func NewLambdaRepository(client LambdaAPI) *LambdaRepositoryImpl {
	return &LambdaRepositoryImpl{client: client}
}

// InvokeExtraction runs event synchronously on functionName.
func (r *LambdaRepositoryImpl) InvokeExtraction(ctx context.Context, functionName string, event entity.ExtractionEvent) (entity.ExtractionResult, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return entity.ExtractionResult{}, fmt.Errorf("error encoding extraction event: %w", err)
	}

	out, err := r.client.Invoke(ctx, &lambda.InvokeInput{
		FunctionName: aws.String(functionName),
		Payload:      payload,
	})
	if err != nil {
		return entity.ExtractionResult{}, fmt.Errorf("error invoking %s: %w", functionName, apiError(err))
	}
	if out.FunctionError != nil {
		return entity.ExtractionResult{}, fmt.Errorf("function %s failed (%s): %s", functionName, aws.ToString(out.FunctionError), string(out.Payload))
	}

	var result entity.ExtractionResult
	if err := json.Unmarshal(out.Payload, &result); err != nil {
		return entity.ExtractionResult{}, fmt.Errorf("error decoding %s response: %w", functionName, err)
	}
	return result, nil
}
