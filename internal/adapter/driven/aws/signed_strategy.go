package aws

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/diillson/aws-carbon-emissions-go/internal/domain/entity"
	"github.com/go-resty/resty/v2"
)

const (
	// SummaryPath is the summary operation of the reporting endpoint.
	SummaryPath = "/get-carbon-footprint-summary"
	// SigningService is the SigV4 service name of the reporting endpoint.
	SigningService = "sustainability"

	requestTimeout = 30 * time.Second
	// sha256 of an empty body
	emptyPayloadHash = "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
)

type credentialsKey struct{}

// SignedRequestStrategy calls the reporting endpoint directly with a SigV4
// signed GET.
type SignedRequestStrategy struct {
	client   *resty.Client
	endpoint string
	region   string
	signer   *v4.Signer
	now      func() time.Time
}

// NewSignedRequestStrategy creates a strategy against endpoint (scheme and host).
func NewSignedRequestStrategy(endpoint string) *SignedRequestStrategy {
	s := &SignedRequestStrategy{
		endpoint: strings.TrimRight(endpoint, "/"),
		region:   billingRegion,
		signer:   v4.NewSigner(),
		now:      time.Now,
	}
	s.client = resty.New().
		SetTimeout(requestTimeout).
		SetPreRequestHook(s.sign)
	return s
}

// Name implements repository.RetrievalStrategy.
func (s *SignedRequestStrategy) Name() string { return "signed" }

// Fetch implements repository.RetrievalStrategy.
func (s *SignedRequestStrategy) Fetch(ctx context.Context, creds entity.Credentials, tf entity.Timeframe) (*entity.RawResponse, error) {
	ctx = context.WithValue(ctx, credentialsKey{}, creds)

	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"startDate": tf.Start(),
			"endDate":   tf.End(),
		}).
		Get(s.endpoint + SummaryPath)
	if err != nil {
		return nil, fmt.Errorf("error requesting carbon footprint summary: %w", err)
	}

	return &entity.RawResponse{StatusCode: resp.StatusCode(), Body: resp.Body()}, nil
}

// sign runs right before the request goes out, once the URL is final.
func (s *SignedRequestStrategy) sign(_ *resty.Client, r *http.Request) error {
	creds, ok := r.Context().Value(credentialsKey{}).(entity.Credentials)
	if !ok {
		return errors.New("no credentials to sign the request with")
	}
	return s.signer.SignHTTP(r.Context(), awsCredentials(creds), r, emptyPayloadHash, SigningService, s.region, s.now())
}
