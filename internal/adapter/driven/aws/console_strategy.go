package aws

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/diillson/aws-carbon-emissions-go/internal/domain/entity"
	"github.com/diillson/aws-carbon-emissions-go/internal/shared/types"
	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"
)

const (
	// ProxyPath is the billing console proxy in front of the reporting endpoint.
	ProxyPath = "/billing/rest/api-proxy/carbonfootprint"
	// XSRFHeader carries the token the billing console requires on POSTs.
	XSRFHeader = "x-awsbc-xsrf-token"
)

type federationSession struct {
	SessionID    string `json:"sessionId"`
	SessionKey   string `json:"sessionKey"`
	SessionToken string `json:"sessionToken"`
}

type signinTokenResponse struct {
	SigninToken string `json:"SigninToken"`
}

type proxyRequest struct {
	Headers map[string]string `json:"headers"`
	Path    string            `json:"path"`
	Method  string            `json:"method"`
	Region  string            `json:"region"`
	Params  map[string]string `json:"params"`
}

// ConsoleSessionStrategy logs in to the console with a federation token and
// calls the reporting endpoint through the billing console proxy.
type ConsoleSessionStrategy struct {
	endpoints types.Endpoints
	region    string
	newClient func() *resty.Client
}

// NewConsoleSessionStrategy creates a strategy against the given console endpoints.
func NewConsoleSessionStrategy(endpoints types.Endpoints) *ConsoleSessionStrategy {
	return &ConsoleSessionStrategy{
		endpoints: endpoints,
		region:    billingRegion,
		newClient: func() *resty.Client {
			// resty.New comes with its own cookie jar
			return resty.New().SetTimeout(requestTimeout)
		},
	}
}

// Name implements repository.RetrievalStrategy.
func (s *ConsoleSessionStrategy) Name() string { return "console" }

// Fetch implements repository.RetrievalStrategy. Each call runs on a new
// cookie jar so sessions never leak between accounts.
func (s *ConsoleSessionStrategy) Fetch(ctx context.Context, creds entity.Credentials, tf entity.Timeframe) (*entity.RawResponse, error) {
	client := s.newClient()

	token, err := s.signinToken(ctx, client, creds)
	if err != nil {
		return nil, err
	}

	if err := s.login(ctx, client, token); err != nil {
		return nil, err
	}

	xsrf, err := s.xsrfToken(ctx, client)
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(proxyRequest{
		Headers: map[string]string{"Content-Type": "application/json"},
		Path:    SummaryPath,
		Method:  http.MethodGet,
		Region:  s.region,
		Params: map[string]string{
			"startDate": tf.Start(),
			"endDate":   tf.End(),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("error encoding proxy request: %w", err)
	}

	resp, err := client.R().
		SetContext(ctx).
		SetHeader(XSRFHeader, xsrf).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post(strings.TrimRight(s.endpoints.Billing, "/") + ProxyPath)
	if err != nil {
		return nil, fmt.Errorf("error calling billing console proxy: %w", err)
	}

	return &entity.RawResponse{StatusCode: resp.StatusCode(), Body: resp.Body()}, nil
}

func (s *ConsoleSessionStrategy) signinToken(ctx context.Context, client *resty.Client, creds entity.Credentials) (string, error) {
	session, err := json.Marshal(federationSession{
		SessionID:    creds.AccessKeyID,
		SessionKey:   creds.SecretAccessKey,
		SessionToken: creds.SessionToken,
	})
	if err != nil {
		return "", fmt.Errorf("error encoding federation session: %w", err)
	}

	resp, err := client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"Action":  "getSigninToken",
			"Session": string(session),
		}).
		Get(s.endpoints.Federation)
	if err != nil {
		return "", fmt.Errorf("error requesting signin token: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("signin token request returned %s", resp.Status())
	}

	var out signinTokenResponse
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return "", fmt.Errorf("error decoding signin token: %w", err)
	}
	if out.SigninToken == "" {
		return "", fmt.Errorf("federation endpoint returned no signin token")
	}
	return out.SigninToken, nil
}

func (s *ConsoleSessionStrategy) login(ctx context.Context, client *resty.Client, token string) error {
	resp, err := client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"Action":      "login",
			"Destination": strings.TrimRight(s.endpoints.Console, "/") + "/",
			"SigninToken": token,
		}).
		Get(s.endpoints.Federation)
	if err != nil {
		return fmt.Errorf("error logging in to the console: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("console login returned %s", resp.Status())
	}
	return nil
}

func (s *ConsoleSessionStrategy) xsrfToken(ctx context.Context, client *resty.Client) (string, error) {
	resp, err := client.R().
		SetContext(ctx).
		SetQueryParam("state", "hashArgs").
		Get(strings.TrimRight(s.endpoints.Console, "/") + "/billing/home")
	if err != nil {
		return "", fmt.Errorf("error opening billing console: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("billing console returned %s", resp.Status())
	}

	token := resp.Header().Get(XSRFHeader)
	if token == "" {
		return "", fmt.Errorf("billing console did not return %s", XSRFHeader)
	}
	return token, nil
}
