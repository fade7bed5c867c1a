package aws

import (
	"context"
	"fmt"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/athena"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/organizations"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/diillson/aws-carbon-emissions-go/internal/domain/entity"
)

// billingRegion is where organizations, the console proxy and the reporting
// endpoint are served from.
const billingRegion = "us-east-1"

// ClientFactory carrega a configuração AWS uma vez e mantém cache dos clientes.
type ClientFactory struct {
	profile     string
	region      string
	cfg         *aws.Config
	clientCache map[string]interface{}
	mu          sync.Mutex
}

// NewClientFactory creates a factory for the given shared-config profile
// (empty for the default chain) and region.
func NewClientFactory(profile, region string) *ClientFactory {
	if region == "" {
		region = billingRegion
	}
	return &ClientFactory{
		profile:     profile,
		region:      region,
		clientCache: make(map[string]interface{}),
	}
}

func (f *ClientFactory) getAWSConfig(ctx context.Context) (aws.Config, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.cfg != nil {
		return *f.cfg, nil
	}

	opts := []func(*config.LoadOptions) error{config.WithRegion(f.region)}
	if f.profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(f.profile))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS config for profile %q: %w", f.profile, err)
	}

	f.cfg = &cfg
	return cfg, nil
}

func (f *ClientFactory) getServiceClient(ctx context.Context, service string) (interface{}, error) {
	f.mu.Lock()
	if client, ok := f.clientCache[service]; ok {
		f.mu.Unlock()
		return client, nil
	}
	f.mu.Unlock()

	cfg, err := f.getAWSConfig(ctx)
	if err != nil {
		return nil, err
	}

	regionalCfg := cfg.Copy()

	var client interface{}
	switch service {
	case "sts":
		client = sts.NewFromConfig(regionalCfg)
	case "organizations":
		regionalCfg.Region = billingRegion
		client = organizations.NewFromConfig(regionalCfg)
	case "s3":
		client = s3.NewFromConfig(regionalCfg)
	case "athena":
		client = athena.NewFromConfig(regionalCfg)
	case "lambda":
		client = lambda.NewFromConfig(regionalCfg)
	default:
		return nil, fmt.Errorf("unsupported service: %s", service)
	}

	f.mu.Lock()
	f.clientCache[service] = client
	f.mu.Unlock()

	return client, nil
}

// STS returns the STS client of the base credentials.
func (f *ClientFactory) STS(ctx context.Context) (*sts.Client, error) {
	client, err := f.getServiceClient(ctx, "sts")
	if err != nil {
		return nil, err
	}
	return client.(*sts.Client), nil
}

// Organizations returns the organizations client.
func (f *ClientFactory) Organizations(ctx context.Context) (*organizations.Client, error) {
	client, err := f.getServiceClient(ctx, "organizations")
	if err != nil {
		return nil, err
	}
	return client.(*organizations.Client), nil
}

// S3 returns the S3 client.
func (f *ClientFactory) S3(ctx context.Context) (*s3.Client, error) {
	client, err := f.getServiceClient(ctx, "s3")
	if err != nil {
		return nil, err
	}
	return client.(*s3.Client), nil
}

// Athena returns the Athena client.
func (f *ClientFactory) Athena(ctx context.Context) (*athena.Client, error) {
	client, err := f.getServiceClient(ctx, "athena")
	if err != nil {
		return nil, err
	}
	return client.(*athena.Client), nil
}

// Lambda returns the Lambda client.
func (f *ClientFactory) Lambda(ctx context.Context) (*lambda.Client, error) {
	client, err := f.getServiceClient(ctx, "lambda")
	if err != nil {
		return nil, err
	}
	return client.(*lambda.Client), nil
}

// awsCredentials converts assumed-role credentials for the SDK signer.
func awsCredentials(creds entity.Credentials) aws.Credentials {
	return aws.Credentials{
		AccessKeyID:     creds.AccessKeyID,
		SecretAccessKey: creds.SecretAccessKey,
		SessionToken:    creds.SessionToken,
		Source:          "AssumeRole",
		CanExpire:       !creds.Expires.IsZero(),
		Expires:         creds.Expires,
	}
}

// configForCredentials builds an SDK config that uses only creds.
func configForCredentials(creds entity.Credentials) aws.Config {
	return aws.Config{
		Region: billingRegion,
		Credentials: credentials.NewStaticCredentialsProvider(
			creds.AccessKeyID, creds.SecretAccessKey, creds.SessionToken),
	}
}
