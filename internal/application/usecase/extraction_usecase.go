package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/diillson/aws-carbon-emissions-go/internal/domain/entity"
	"github.com/diillson/aws-carbon-emissions-go/internal/domain/repository"
	"github.com/diillson/aws-carbon-emissions-go/internal/shared/types"
	"github.com/google/uuid"
)

// AccountProcessor handles one extraction event, locally or remotely.
type AccountProcessor interface {
	Process(ctx context.Context, event entity.ExtractionEvent, requestID string) (entity.ExtractionResult, int, error)
}

// ExtractionUseCase pulls one account's report for one timeframe and stores it.
type ExtractionUseCase struct {
	broker    repository.CredentialBroker
	retrieval *RetrievalClient
	store     *ReportStore
	console   types.ConsoleInterface
	roleName  string
	retry     RetryPolicy
}

// NewExtractionUseCase creates a new extraction use case.
func NewExtractionUseCase(
	broker repository.CredentialBroker,
	retrieval *RetrievalClient,
	store *ReportStore,
	console types.ConsoleInterface,
	roleName string,
	retry RetryPolicy,
) *ExtractionUseCase {
	return &ExtractionUseCase{
		broker:    broker,
		retrieval: retrieval,
		store:     store,
		console:   console,
		roleName:  roleName,
		retry:     retry,
	}
}

// ValidateEvent checks the fields every extraction event must carry.
func ValidateEvent(event entity.ExtractionEvent) error {
	if event.Timeframe == nil {
		return types.NewConfigurationError("timeframe",
			"event must have dates (YYYY-MM-DD) in timeframe/start_date and timeframe/end_date")
	}
	if event.Account == "" {
		return types.NewConfigurationError("account", "event must have account-id in account")
	}
	return nil
}

// Extract runs the event and drops the attempt count.
func (uc *ExtractionUseCase) Extract(ctx context.Context, event entity.ExtractionEvent, requestID string) (entity.ExtractionResult, error) {
	result, _, err := uc.Process(ctx, event, requestID)
	return result, err
}

// Process assumes the account's role, retrieves the report with retries and
// saves it. An account without a published report is a successful result
// with IsDataAvailable false.
func (uc *ExtractionUseCase) Process(ctx context.Context, event entity.ExtractionEvent, requestID string) (entity.ExtractionResult, int, error) {
	if err := ValidateEvent(event); err != nil {
		return entity.ExtractionResult{}, 0, err
	}
	if requestID == "" {
		requestID = uuid.NewString()
	}
	tf := *event.Timeframe

	creds, err := uc.broker.Assume(ctx, event.Account, uc.roleName)
	if err != nil {
		return entity.ExtractionResult{Message: err.Error()}, 0, err
	}

	uc.console.LogDebug("Extracting emissions data for account %s from %s to %s (%s strategy)",
		event.Account, tf.Start(), tf.End(), uc.retrieval.StrategyName())

	var report *entity.EmissionsReport
	attempts, err := retryTransient(ctx, uc.retry, uc.console, func(ctx context.Context) error {
		var rerr error
		report, rerr = uc.retrieval.Retrieve(ctx, creds, tf)
		return rerr
	})

	var noReport *types.NoReportAvailableError
	switch {
	case errors.As(err, &noReport):
		return entity.ExtractionResult{Message: noReport.Error()}, attempts, nil
	case err != nil:
		return entity.ExtractionResult{Message: err.Error()}, attempts, fmt.Errorf("account %s: %w", event.Account, err)
	}

	saved, err := uc.store.Save(ctx, report, requestID, event.SkipWrite)
	if err != nil {
		return entity.ExtractionResult{Message: err.Error()}, attempts, err
	}

	return entity.ExtractionResult{
		Message:         saved.Message,
		IsDataAvailable: saved.IsDataAvailable,
		Key:             saved.Key,
	}, attempts, nil
}
