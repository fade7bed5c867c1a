package repository

import (
	"context"

	"github.com/diillson/aws-carbon-emissions-go/internal/domain/entity"
)

// RetrievalStrategy authenticates against the reporting endpoint and fetches
// the carbon footprint summary for a timeframe.
//
// A non-nil error means no HTTP response was obtained. Any response, including
// a 404, is returned as a RawResponse and classified by the caller.
type RetrievalStrategy interface {
	Name() string
	Fetch(ctx context.Context, creds entity.Credentials, tf entity.Timeframe) (*entity.RawResponse, error)
}
