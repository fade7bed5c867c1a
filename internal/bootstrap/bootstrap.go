// Package bootstrap liga os adaptadores aos casos de uso. É usado pela CLI
// e pelo runtime de funções.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/diillson/aws-carbon-emissions-go/internal/adapter/driven/aws"
	"github.com/diillson/aws-carbon-emissions-go/internal/adapter/driven/export"
	"github.com/diillson/aws-carbon-emissions-go/internal/adapter/driven/metrics"
	"github.com/diillson/aws-carbon-emissions-go/internal/adapter/driven/queries"
	"github.com/diillson/aws-carbon-emissions-go/internal/application/usecase"
	"github.com/diillson/aws-carbon-emissions-go/internal/domain/repository"
	"github.com/diillson/aws-carbon-emissions-go/internal/shared/types"
)

// Container holds the use cases built for one configuration.
type Container struct {
	Config     types.Config
	Console    types.ConsoleInterface
	Enumerator *usecase.AccountEnumerator
	Extraction *usecase.ExtractionUseCase
	Remote     *usecase.RemoteProcessor
	Views      *usecase.ViewsUseCase
	Index      repository.ReportIndex
	Recorder   *metrics.Recorder
	Export     repository.ExportRepository
}

// NewStrategy returns the retrieval strategy named in cfg.
func NewStrategy(cfg types.Config) (repository.RetrievalStrategy, error) {
	switch cfg.Strategy {
	case types.StrategySigned:
		return aws.NewSignedRequestStrategy(cfg.Endpoints.Reporting), nil
	case types.StrategyConsole:
		return aws.NewConsoleSessionStrategy(cfg.Endpoints), nil
	default:
		return nil, types.NewConfigurationError("strategy", fmt.Sprintf("unknown strategy %q", cfg.Strategy))
	}
}

// Build creates every client and use case for cfg.
func Build(ctx context.Context, cfg types.Config, console types.ConsoleInterface) (*Container, error) {
	factory := aws.NewClientFactory(cfg.Profile, cfg.Region)

	stsClient, err := factory.STS(ctx)
	if err != nil {
		return nil, err
	}
	orgClient, err := factory.Organizations(ctx)
	if err != nil {
		return nil, err
	}
	s3Client, err := factory.S3(ctx)
	if err != nil {
		return nil, err
	}
	athenaClient, err := factory.Athena(ctx)
	if err != nil {
		return nil, err
	}
	lambdaClient, err := factory.Lambda(ctx)
	if err != nil {
		return nil, err
	}

	strategy, err := NewStrategy(cfg)
	if err != nil {
		return nil, err
	}

	stsRepo := aws.NewSTSRepository(stsClient)
	s3Repo := aws.NewS3Repository(s3Client)

	retry := usecase.DefaultRetryPolicy()
	retry.MaxAttempts = cfg.MaxAttempts
	if cfg.RetryBaseDelay > 0 {
		retry.BaseDelay = cfg.RetryBaseDelay
	}

	orchestrator := usecase.NewQueryOrchestrator(aws.NewAthenaRepository(athenaClient), console, cfg.PollInterval)

	return &Container{
		Config:     cfg,
		Console:    console,
		Enumerator: usecase.NewAccountEnumerator(aws.NewOrganizationRepository(orgClient)),
		Extraction: usecase.NewExtractionUseCase(
			stsRepo,
			usecase.NewRetrievalClient(stsRepo, strategy),
			usecase.NewReportStore(s3Repo, cfg.Bucket, cfg.DryRun),
			console,
			cfg.RoleName,
			retry,
		),
		Remote:   usecase.NewRemoteProcessor(aws.NewLambdaRepository(lambdaClient), cfg.FunctionName),
		Views:    usecase.NewViewsUseCase(orchestrator, queries.FS(), queries.Order),
		Index:    s3Repo,
		Recorder: metrics.NewRecorder(),
		Export:   export.NewExportRepository(),
	}, nil
}

// Processor picks the in-process extraction or the deployed function.
func (c *Container) Processor(remote bool) (usecase.AccountProcessor, error) {
	if !remote {
		return c.Extraction, nil
	}
	if c.Config.FunctionName == "" {
		return nil, types.NewConfigurationError("function_name", "required to dispatch extractions remotely")
	}
	return c.Remote, nil
}

// RunUseCase builds the organization-wide run over processor.
func (c *Container) RunUseCase(processor usecase.AccountProcessor) *usecase.RunUseCase {
	return usecase.NewRunUseCase(
		c.Enumerator,
		processor,
		c.Index,
		c.Console,
		c.Recorder,
		c.Config.Bucket,
		c.Config.Concurrency,
		c.Config.RequestsPerSecond,
	)
}
