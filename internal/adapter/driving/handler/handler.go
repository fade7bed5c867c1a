package handler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/diillson/aws-carbon-emissions-go/internal/application/usecase"
	"github.com/diillson/aws-carbon-emissions-go/internal/domain/entity"
	"github.com/diillson/aws-carbon-emissions-go/internal/domain/repository"
	"github.com/diillson/aws-carbon-emissions-go/internal/shared/types"
	"github.com/google/uuid"
)

// Nomes aceitos em CARBON_HANDLER.
const (
	GetAccountIDs          = "get-account-ids"
	CheckFirstInvocation   = "check-first-invocation"
	ExtractCarbonEmissions = "extract-carbon-emissions"
	CreateAlterAthenaView  = "create-alter-athena-view"
)

// AccountIDsEvent is the input of the account listing step.
type AccountIDsEvent struct {
	OverrideToday    string   `json:"override_today,omitempty"`
	OverrideAccounts []string `json:"override_accounts,omitempty"`
}

// AccountIDsResponse feeds the per-account map of the state machine.
type AccountIDsResponse struct {
	AccountIDs []string          `json:"account_ids"`
	Timeframes entity.Timeframes `json:"timeframes"`
}

// FirstInvocationResponse tells whether the backfill has to run.
type FirstInvocationResponse struct {
	StatusCode int  `json:"statusCode"`
	IsEmpty    bool `json:"isEmpty"`
}

// Handlers exposes the use cases as function-runtime entrypoints.
type Handlers struct {
	enumerator *usecase.AccountEnumerator
	index      repository.ReportIndex
	extraction *usecase.ExtractionUseCase
	views      *usecase.ViewsUseCase
	console    types.ConsoleInterface
	cfg        types.Config
	now        func() time.Time
}

// NewHandlers creates the handlers over the given use cases.
func NewHandlers(
	enumerator *usecase.AccountEnumerator,
	index repository.ReportIndex,
	extraction *usecase.ExtractionUseCase,
	views *usecase.ViewsUseCase,
	console types.ConsoleInterface,
	cfg types.Config,
) *Handlers {
	return &Handlers{
		enumerator: enumerator,
		index:      index,
		extraction: extraction,
		views:      views,
		console:    console,
		cfg:        cfg,
		now:        time.Now,
	}
}

// Select returns the handler function registered under name.
func (h *Handlers) Select(name string) (interface{}, error) {
	switch name {
	case GetAccountIDs:
		return h.GetAccountIDs, nil
	case CheckFirstInvocation:
		return h.CheckFirstInvocation, nil
	case ExtractCarbonEmissions:
		return h.ExtractCarbonEmissions, nil
	case CreateAlterAthenaView:
		return h.CreateAlterAthenaView, nil
	default:
		return nil, types.NewConfigurationError("handler", fmt.Sprintf("unknown handler %q", name))
	}
}

// GetAccountIDs lists the accounts to process, management account first,
// along with the two timeframes.
func (h *Handlers) GetAccountIDs(ctx context.Context, event AccountIDsEvent) (AccountIDsResponse, error) {
	today := h.now().UTC()
	if event.OverrideToday != "" {
		parsed, err := entity.ParseDate(event.OverrideToday)
		if err != nil {
			return AccountIDsResponse{}, types.NewConfigurationError("override_today", err.Error())
		}
		today = parsed
	}
	h.console.LogDebug("Pulling data relative to %s", entity.FormatDate(today))

	accounts, err := h.enumerator.List(ctx, event.OverrideAccounts)
	if err != nil {
		return AccountIDsResponse{}, err
	}

	return AccountIDsResponse{
		AccountIDs: entity.AccountIDs(accounts),
		Timeframes: entity.ComputeTimeframes(today),
	}, nil
}

// CheckFirstInvocation reports whether the report bucket is still empty.
func (h *Handlers) CheckFirstInvocation(ctx context.Context) (FirstInvocationResponse, error) {
	empty, err := h.index.IsEmpty(ctx, h.cfg.Bucket)
	if err != nil {
		return FirstInvocationResponse{}, err
	}
	return FirstInvocationResponse{StatusCode: 200, IsEmpty: empty}, nil
}

// ExtractCarbonEmissions pulls and stores one account's report. The
// invocation's request id becomes part of the object key.
//
// Only a malformed event fails the invocation. Any other failure is logged
// and answered with isDataAvailable=false, so one account never stops the
// map over the others.
func (h *Handlers) ExtractCarbonEmissions(ctx context.Context, event entity.ExtractionEvent) (entity.ExtractionResult, error) {
	result, err := h.extraction.Extract(ctx, event, requestID(ctx))
	if err == nil || errors.Is(err, types.ErrConfiguration) {
		return result, err
	}

	h.console.LogError("Account %s: %s", event.Account, err)
	if result.Message == "" {
		result.Message = err.Error()
	}
	result.IsDataAvailable = false
	result.Key = ""
	return result, nil
}

// CreateAlterAthenaView (re)creates the database, table and views.
func (h *Handlers) CreateAlterAthenaView(ctx context.Context) error {
	return h.views.Rebuild(ctx, h.cfg.Database, h.cfg.ResolvedEmissionsLocation(), h.cfg.Workgroup)
}

func requestID(ctx context.Context) string {
	if lc, ok := lambdacontext.FromContext(ctx); ok && lc.AwsRequestID != "" {
		return lc.AwsRequestID
	}
	return uuid.NewString()
}
