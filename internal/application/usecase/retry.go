package usecase

import (
	"context"
	"time"

	"github.com/diillson/aws-carbon-emissions-go/internal/shared/types"
	"k8s.io/apimachinery/pkg/util/wait"
)

// RetryPolicy is a bounded exponential backoff.
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	Factor      float64
	Jitter      float64
}

// DefaultRetryPolicy retries three times starting at two seconds.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: 3, BaseDelay: 2 * time.Second, Factor: 2, Jitter: 0.1}
}

func (p RetryPolicy) backoff() wait.Backoff {
	steps := p.MaxAttempts
	if steps < 1 {
		steps = 1
	}
	factor := p.Factor
	if factor < 1 {
		factor = 2
	}
	return wait.Backoff{
		Duration: p.BaseDelay,
		Factor:   factor,
		Jitter:   p.Jitter,
		Steps:    steps,
	}
}

// retryTransient calls fn until it succeeds, fails with an error that is not
// retryable, or the attempts are used up. It returns the number of attempts
// made and the last error seen.
func retryTransient(ctx context.Context, policy RetryPolicy, console types.ConsoleInterface, fn func(context.Context) error) (int, error) {
	attempts := 0
	var lastErr error

	cond := func(ctx context.Context) (bool, error) {
		attempts++
		lastErr = fn(ctx)
		if lastErr == nil {
			return true, nil
		}
		if !types.IsRetryable(lastErr) {
			return false, lastErr
		}
		if attempts < policy.MaxAttempts {
			console.LogDebug("attempt %d/%d failed, backing off and trying again: %v", attempts, policy.MaxAttempts, lastErr)
		}
		return false, nil
	}

	err := wait.ExponentialBackoffWithContext(ctx, policy.backoff(), cond)
	if err == nil {
		return attempts, nil
	}
	if lastErr != nil {
		return attempts, lastErr
	}
	return attempts, err
}
