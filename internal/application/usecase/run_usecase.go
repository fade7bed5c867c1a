package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/diillson/aws-carbon-emissions-go/internal/domain/entity"
	"github.com/diillson/aws-carbon-emissions-go/internal/domain/repository"
	"github.com/diillson/aws-carbon-emissions-go/internal/shared/types"
	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// OutcomeRecorder receives every per-account outcome of a run.
type OutcomeRecorder interface {
	ObserveOutcome(outcome entity.AccountOutcome)
}

// RunOptions controls an organization-wide run.
type RunOptions struct {
	Today         time.Time
	Accounts      []string
	ForceBackfill bool
}

// RunUseCase walks every account and extracts its emissions.
type RunUseCase struct {
	enumerator  *AccountEnumerator
	processor   AccountProcessor
	index       repository.ReportIndex
	console     types.ConsoleInterface
	recorder    OutcomeRecorder
	limiter     *rate.Limiter
	bucket      string
	concurrency int
}

// NewRunUseCase creates a new run use case. index and recorder may be nil.
func NewRunUseCase(
	enumerator *AccountEnumerator,
	processor AccountProcessor,
	index repository.ReportIndex,
	console types.ConsoleInterface,
	recorder OutcomeRecorder,
	bucket string,
	concurrency int,
	requestsPerSecond float64,
) *RunUseCase {
	if concurrency < 1 {
		concurrency = 1
	}
	limit := rate.Inf
	if requestsPerSecond > 0 {
		limit = rate.Limit(requestsPerSecond)
	}
	return &RunUseCase{
		enumerator:  enumerator,
		processor:   processor,
		index:       index,
		console:     console,
		recorder:    recorder,
		limiter:     rate.NewLimiter(limit, 1),
		bucket:      bucket,
		concurrency: concurrency,
	}
}

type plannedWindow struct {
	kind entity.TimeframeKind
	tf   entity.Timeframe
}

// Run processes the management account first, then fans out over the
// remaining accounts. Per-account failures are recorded in the summary and do
// not stop other accounts; only configuration errors abort the run.
func (uc *RunUseCase) Run(ctx context.Context, opts RunOptions) (entity.RunSummary, error) {
	today := opts.Today
	if today.IsZero() {
		today = time.Now().UTC()
	}

	summary := entity.RunSummary{
		StartedAt:  time.Now().UTC(),
		Timeframes: entity.ComputeTimeframes(today),
	}
	uc.console.LogInfo("Pulling data relative to %s", entity.FormatDate(today))

	accounts, err := uc.enumerator.List(ctx, opts.Accounts)
	if err != nil {
		return summary, err
	}
	if len(accounts) == 0 {
		return summary, types.ErrNoAccountsFound
	}

	summary.Backfilled = opts.ForceBackfill || uc.isFirstInvocation(ctx)
	windows := []plannedWindow{{kind: entity.TimeframeNewData, tf: summary.Timeframes.NewData}}
	if summary.Backfilled {
		windows = append([]plannedWindow{{kind: entity.TimeframeBackfill, tf: summary.Timeframes.Backfill}}, windows...)
	}

	progress := uc.console.ProgressWithTotal(len(accounts))
	defer progress.Stop()

	perAccount := make([][]entity.AccountOutcome, len(accounts))

	first := accounts[0]
	perAccount[0] = uc.processAccount(ctx, first, windows)
	progress.Increment()
	for _, o := range perAccount[0] {
		if o.Error != "" && errors.Is(o.Err(), types.ErrConfiguration) {
			summary.Outcomes = perAccount[0]
			summary.FinishedAt = time.Now().UTC()
			return summary, fmt.Errorf("aborting run after account %s: %s", first.ID, o.Error)
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uc.concurrency)
	for i := 1; i < len(accounts); i++ {
		i := i
		g.Go(func() error {
			perAccount[i] = uc.processAccount(gctx, accounts[i], windows)
			progress.Increment()
			return nil
		})
	}
	_ = g.Wait()

	for _, outcomes := range perAccount {
		summary.Outcomes = append(summary.Outcomes, outcomes...)
	}
	summary.FinishedAt = time.Now().UTC()
	return summary, nil
}

func (uc *RunUseCase) isFirstInvocation(ctx context.Context) bool {
	if uc.index == nil || uc.bucket == "" {
		return false
	}
	empty, err := uc.index.IsEmpty(ctx, uc.bucket)
	if err != nil {
		uc.console.LogWarning("Could not check bucket %s for previous reports, skipping backfill: %s", uc.bucket, err)
		return false
	}
	return empty
}

func (uc *RunUseCase) processAccount(ctx context.Context, account entity.Account, windows []plannedWindow) []entity.AccountOutcome {
	outcomes := make([]entity.AccountOutcome, 0, len(windows))
	for _, w := range windows {
		outcome := uc.processWindow(ctx, account, w)
		if uc.recorder != nil {
			uc.recorder.ObserveOutcome(outcome)
		}
		outcomes = append(outcomes, outcome)

		// A role that cannot be assumed for one window cannot be assumed for the next.
		if errors.Is(outcome.Err(), types.ErrAssumeRole) || errors.Is(outcome.Err(), types.ErrConfiguration) {
			break
		}
	}
	return outcomes
}

func (uc *RunUseCase) processWindow(ctx context.Context, account entity.Account, w plannedWindow) entity.AccountOutcome {
	start := time.Now()
	tf := w.tf
	outcome := entity.AccountOutcome{
		AccountID: account.ID,
		Kind:      w.kind,
		Timeframe: tf,
	}

	if err := uc.limiter.Wait(ctx); err != nil {
		return failedOutcome(outcome, err, start)
	}

	result, attempts, err := uc.processor.Process(ctx, entity.ExtractionEvent{Account: account.ID, Timeframe: &tf}, uuid.NewString())
	outcome.Attempts = attempts
	outcome.Message = result.Message
	outcome.IsDataAvailable = result.IsDataAvailable
	outcome.Key = result.Key
	if err != nil {
		uc.console.LogError("Account %s (%s): %s", account.ID, w.kind, err)
		return failedOutcome(outcome, err, start)
	}

	outcome.Success = true
	outcome.Duration = time.Since(start)
	uc.console.LogDebug("Account %s (%s): %s", account.ID, w.kind, result.Message)
	return outcome
}

func failedOutcome(outcome entity.AccountOutcome, err error, start time.Time) entity.AccountOutcome {
	outcome.Success = false
	outcome.Error = err.Error()
	outcome.Duration = time.Since(start)
	return outcome.WithErr(err)
}

// SummaryError aggregates the failures of a run, or returns nil.
func SummaryError(summary entity.RunSummary) error {
	var result *multierror.Error
	for _, o := range summary.Outcomes {
		if o.Success {
			continue
		}
		result = multierror.Append(result, fmt.Errorf("account %s (%s): %s", o.AccountID, o.Kind, o.Error))
	}
	return result.ErrorOrNil()
}
