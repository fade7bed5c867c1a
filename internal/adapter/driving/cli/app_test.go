package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/diillson/aws-carbon-emissions-go/internal/adapter/driven/config"
	"github.com/diillson/aws-carbon-emissions-go/internal/adapter/driven/export"
	"github.com/diillson/aws-carbon-emissions-go/internal/adapter/driven/metrics"
	"github.com/diillson/aws-carbon-emissions-go/internal/application/usecase"
	"github.com/diillson/aws-carbon-emissions-go/internal/bootstrap"
	"github.com/diillson/aws-carbon-emissions-go/internal/domain/entity"
	"github.com/diillson/aws-carbon-emissions-go/internal/shared/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noBuild(context.Context, types.Config, types.ConsoleInterface) (*bootstrap.Container, error) {
	return nil, errors.New("no AWS access in this test")
}

func runApp(t *testing.T, build BuildFunc, args ...string) (string, error) {
	t.Helper()
	app := NewCLIApp("0.0.0-dev", config.NewConfigRepository(), build)
	var out bytes.Buffer
	app.SetOut(&out)
	app.rootCmd.SetErr(io.Discard)
	app.SetArgs(args)
	err := app.ExecuteContext(context.Background())
	return out.String(), err
}

func TestTimeframesCommand(t *testing.T) {
	out, err := runApp(t, noBuild, "timeframes", "--today", "2024-07-04", "--log-format", "text")

	require.NoError(t, err)
	assert.Contains(t, out, "2021-03-01")
	assert.Contains(t, out, "2024-03-01")
	assert.Contains(t, out, "2024-04-01")
}

func TestTimeframesCommand_InvalidDate(t *testing.T) {
	_, err := runApp(t, noBuild, "timeframes", "--today", "04/07/2024", "--log-format", "text")

	assert.ErrorIs(t, err, types.ErrConfiguration)
}

func TestViewsCommand_Print(t *testing.T) {
	out, err := runApp(t, noBuild, "views", "--print", "--bucket", "emission-reports", "--database", "ccft", "--log-format", "text")

	require.NoError(t, err)
	assert.Contains(t, out, "CREATE DATABASE IF NOT EXISTS ccft")
	assert.Contains(t, out, "LOCATION 's3://emission-reports/'")
	assert.Contains(t, out, `"ccft"."carbon_emissions_forecast_view"`)
	assert.NotContains(t, out, "${")
}

func TestViewsCommand_RequiresLocation(t *testing.T) {
	_, err := runApp(t, noBuild, "views", "--print", "--log-format", "text")

	assert.ErrorIs(t, err, types.ErrConfiguration)
}

func TestRunCommand_ValidatesBeforeBuilding(t *testing.T) {
	_, err := runApp(t, noBuild, "run", "--log-format", "text")

	var cfgErr *types.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "bucket", cfgErr.Field)
}

func TestResolveConfig_Precedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "carbon.yaml")
	require.NoError(t, os.WriteFile(path, []byte("bucket: from-file\nworkgroup: file-wg\nconcurrency: 2\n"), 0o600))
	t.Setenv("CARBON_WORKGROUP", "env-wg")
	t.Setenv("CARBON_ROLE_NAME", "env-role")

	app := NewCLIApp("0.0.0-dev", config.NewConfigRepository(), noBuild)
	require.NoError(t, app.rootCmd.PersistentFlags().Set("concurrency", "16"))

	cfg, err := app.resolveConfig(&types.CLIArgs{ConfigFile: path})

	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.Bucket)
	assert.Equal(t, "env-wg", cfg.Workgroup)
	assert.Equal(t, "env-role", cfg.RoleName)
	assert.Equal(t, 16, cfg.Concurrency)
	assert.Equal(t, types.StrategyConsole, cfg.Strategy)
}

type stubOrg struct{}

func (stubOrg) ListAccountIDs(context.Context) ([]string, error) {
	return []string{"111111111111", "222222222222"}, nil
}
func (stubOrg) GetManagementAccountID(context.Context) (string, error) { return "111111111111", nil }

type stubBroker struct{}

func (stubBroker) Assume(_ context.Context, accountID, _ string) (entity.Credentials, error) {
	return entity.Credentials{AccessKeyID: accountID, SecretAccessKey: "s", SessionToken: "t"}, nil
}

type stubIdentity struct{}

func (stubIdentity) CallerAccountID(_ context.Context, creds entity.Credentials) (string, error) {
	return creds.AccessKeyID, nil
}

type stubStrategy struct{}

func (stubStrategy) Name() string { return "stub" }
func (stubStrategy) Fetch(_ context.Context, creds entity.Credentials, _ entity.Timeframe) (*entity.RawResponse, error) {
	if creds.AccessKeyID == "222222222222" {
		return &entity.RawResponse{StatusCode: http.StatusNotFound}, nil
	}
	return &entity.RawResponse{StatusCode: http.StatusOK, Body: []byte(`{"carbonEmissionEntries":[{"mbmCarbon":"1.5"}]}`)}, nil
}

type stubStore struct{}

func (stubStore) PutObject(context.Context, string, string, []byte) error { return nil }

type stubIndex struct{}

func (stubIndex) IsEmpty(context.Context, string) (bool, error) { return false, nil }

func stubBuild(_ context.Context, cfg types.Config, out types.ConsoleInterface) (*bootstrap.Container, error) {
	return &bootstrap.Container{
		Config:     cfg,
		Console:    out,
		Enumerator: usecase.NewAccountEnumerator(stubOrg{}),
		Extraction: usecase.NewExtractionUseCase(
			stubBroker{},
			usecase.NewRetrievalClient(stubIdentity{}, stubStrategy{}),
			usecase.NewReportStore(stubStore{}, cfg.Bucket, cfg.DryRun),
			out,
			cfg.RoleName,
			usecase.RetryPolicy{MaxAttempts: 1, BaseDelay: time.Millisecond},
		),
		Index:    stubIndex{},
		Recorder: metrics.NewRecorder(),
		Export:   export.NewExportRepository(),
	}, nil
}

func TestRunCommand_ExportsSummaryAndMetrics(t *testing.T) {
	dir := t.TempDir()
	metricsFile := filepath.Join(dir, "carbon.prom")

	out, err := runApp(t, stubBuild,
		"run", "--bucket", "reports", "--today", "2024-07-04", "--log-format", "text",
		"--report-name", "carbon", "--report-type", "json", "--dir", dir,
		"--metrics-file", metricsFile)

	require.NoError(t, err)
	assert.Contains(t, out, "111111111111")
	assert.Contains(t, out, "222222222222")

	matches, err := filepath.Glob(filepath.Join(dir, "carbon_*.json"))
	require.NoError(t, err)
	assert.Len(t, matches, 1)

	prom, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(prom), `result="stored"`)
	assert.Contains(t, string(prom), `result="no_data"`)
}

func TestExtractCommand(t *testing.T) {
	out, err := runApp(t, stubBuild,
		"extract", "--bucket", "reports", "--log-format", "json",
		"--account", "111111111111", "--start-date", "2024-04-01", "--end-date", "2024-04-01", "--skip-write")

	require.NoError(t, err)
	assert.Contains(t, out, `"isDataAvailable": true`)
	assert.Contains(t, out, "Skipped saving data for account 111111111111")
}
