package usecase

import (
	"context"
	"fmt"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/diillson/aws-carbon-emissions-go/internal/domain/entity"
	"github.com/diillson/aws-carbon-emissions-go/internal/domain/repository"
	"github.com/diillson/aws-carbon-emissions-go/internal/shared/types"
)

// RetrievalClient retrieves and classifies one account's emissions report.
// The strategy is fixed at construction; classification does not depend on it.
type RetrievalClient struct {
	identity repository.IdentityResolver
	strategy repository.RetrievalStrategy
	now      func() time.Time
}

// NewRetrievalClient creates a new retrieval client.
func NewRetrievalClient(identity repository.IdentityResolver, strategy repository.RetrievalStrategy) *RetrievalClient {
	return &RetrievalClient{
		identity: identity,
		strategy: strategy,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// StrategyName returns the name of the configured strategy.
func (c *RetrievalClient) StrategyName() string {
	return c.strategy.Name()
}

// Retrieve fetches the report for tf using creds.
//
// A report is returned for every 2xx response, even with no entries; callers
// check IsDataAvailable. A 404 yields *types.NoReportAvailableError, any other
// failure *types.TransientRetrievalError.
func (c *RetrievalClient) Retrieve(ctx context.Context, creds entity.Credentials, tf entity.Timeframe) (*entity.EmissionsReport, error) {
	if !creds.HasSessionToken() {
		return nil, types.NewConfigurationError("credentials",
			"no session token present; long-lived IAM user or root credentials cannot be used, assume a role instead")
	}

	accountID, err := c.identity.CallerAccountID(ctx, creds)
	if err != nil {
		return nil, &types.TransientRetrievalError{Err: fmt.Errorf("error resolving caller identity: %w", err)}
	}

	resp, err := c.strategy.Fetch(ctx, creds, tf)
	if err != nil {
		return nil, &types.TransientRetrievalError{Err: fmt.Errorf("%s strategy: %w", c.strategy.Name(), err)}
	}

	return c.classify(accountID, tf, resp)
}

func (c *RetrievalClient) classify(accountID string, tf entity.Timeframe, resp *entity.RawResponse) (*entity.EmissionsReport, error) {
	switch {
	case resp == nil:
		return nil, &types.TransientRetrievalError{Err: fmt.Errorf("%s strategy returned no response", c.strategy.Name())}
	case resp.StatusCode == http.StatusNotFound:
		return nil, &types.NoReportAvailableError{AccountID: accountID}
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, &types.TransientRetrievalError{
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected response: %s", truncate(string(resp.Body), 256)),
		}
	}

	payload, err := entity.DecodeEmissionsPayload(resp.Body)
	if err != nil {
		return nil, &types.TransientRetrievalError{StatusCode: resp.StatusCode, Err: err}
	}

	return entity.NewEmissionsReport(accountID, tf, c.now(), payload), nil
}

// truncate keeps at most n bytes of s without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}
