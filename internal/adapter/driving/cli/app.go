package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/diillson/aws-carbon-emissions-go/internal/bootstrap"
	"github.com/diillson/aws-carbon-emissions-go/internal/domain/entity"
	"github.com/diillson/aws-carbon-emissions-go/internal/domain/repository"
	"github.com/diillson/aws-carbon-emissions-go/internal/shared/types"
	"github.com/diillson/aws-carbon-emissions-go/pkg/console"
	"github.com/diillson/aws-carbon-emissions-go/pkg/version"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// EnvPrefix prefixa as variáveis de ambiente (CARBON_BUCKET, CARBON_ROLE_NAME...).
const EnvPrefix = "CARBON"

// BuildFunc builds the use cases for a resolved configuration.
type BuildFunc func(ctx context.Context, cfg types.Config, console types.ConsoleInterface) (*bootstrap.Container, error)

// CLIApp represents the command-line interface application.
type CLIApp struct {
	rootCmd    *cobra.Command
	v          *viper.Viper
	configRepo repository.ConfigRepository
	build      BuildFunc
	version    string
}

// configKeys maps viper keys (and flag names) to the config they override.
var configKeys = []string{
	"bucket", "role-name", "region", "profile", "strategy", "workgroup",
	"database", "emissions-location", "function-name", "concurrency",
	"max-attempts", "retry-base-delay", "poll-interval", "requests-per-second",
	"dry-run",
}

// NewCLIApp cria uma nova aplicação CLI.
func NewCLIApp(versionStr string, configRepo repository.ConfigRepository, build BuildFunc) *CLIApp {
	app := &CLIApp{
		v:          viper.New(),
		configRepo: configRepo,
		build:      build,
		version:    versionStr,
	}

	rootCmd := &cobra.Command{
		Use:           "aws-carbon",
		Short:         "Collects AWS carbon footprint reports across an organization",
		Version:       version.FormatVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetVersionTemplate(`{{printf "aws-carbon version: %s\n" .Version}}`)

	defaults := types.DefaultConfig()
	flags := rootCmd.PersistentFlags()
	flags.StringP("config-file", "C", "", "Path to a TOML, YAML, or JSON configuration file")
	flags.String("log-format", "pretty", "Output format: pretty, text or json")
	flags.Bool("debug", false, "Show debug messages")
	flags.StringP("bucket", "b", "", "S3 bucket the reports are written to")
	flags.String("role-name", defaults.RoleName, "Role assumed in every account")
	flags.String("region", defaults.Region, "AWS region of the S3, Athena and Lambda clients")
	flags.StringP("profile", "p", "", "AWS shared-config profile of the base credentials")
	flags.String("strategy", defaults.Strategy, "How to call the reporting endpoint: signed or console")
	flags.String("workgroup", defaults.Workgroup, "Athena workgroup")
	flags.String("database", defaults.Database, "Athena database")
	flags.String("emissions-location", "", "S3 location of the reports (default: s3://<bucket>/)")
	flags.String("function-name", "", "Deployed extraction function used with --remote")
	flags.Int("concurrency", defaults.Concurrency, "Accounts processed in parallel")
	flags.Int("max-attempts", defaults.MaxAttempts, "Attempts per account on transient errors")
	flags.Duration("retry-base-delay", defaults.RetryBaseDelay, "First backoff delay between attempts")
	flags.Duration("poll-interval", defaults.PollInterval, "Interval between Athena status checks")
	flags.Float64("requests-per-second", defaults.RequestsPerSecond, "Account extractions started per second")
	flags.Bool("dry-run", false, "Retrieve reports but do not write them")

	app.v.SetEnvPrefix(EnvPrefix)
	app.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	app.v.AutomaticEnv()
	for _, key := range configKeys {
		_ = app.v.BindPFlag(key, flags.Lookup(key))
	}
	_ = app.v.BindPFlag("log-format", flags.Lookup("log-format"))
	_ = app.v.BindPFlag("debug", flags.Lookup("debug"))

	rootCmd.AddCommand(
		app.timeframesCommand(),
		app.accountsCommand(),
		app.extractCommand(),
		app.runCommand(),
		app.viewsCommand(),
	)

	app.rootCmd = rootCmd
	return app
}

// Execute runs the CLI application.
func (app *CLIApp) Execute() error {
	return app.rootCmd.Execute()
}

// ExecuteContext runs the CLI application with ctx.
func (app *CLIApp) ExecuteContext(ctx context.Context) error {
	return app.rootCmd.ExecuteContext(ctx)
}

// SetArgs overrides os.Args, for tests.
func (app *CLIApp) SetArgs(args []string) { app.rootCmd.SetArgs(args) }

// SetOut redirects command output, for tests.
func (app *CLIApp) SetOut(w io.Writer) { app.rootCmd.SetOut(w) }

// parseArgs lê as flags comuns dos subcomandos.
func (app *CLIApp) parseArgs(cmd *cobra.Command) (*types.CLIArgs, error) {
	flags := cmd.Flags()
	configFile, _ := flags.GetString("config-file")
	today, _ := flags.GetString("today")
	accounts, _ := flags.GetStringSlice("accounts")
	backfill, _ := flags.GetBool("backfill")
	reportName, _ := flags.GetString("report-name")
	reportType, _ := flags.GetStringSlice("report-type")
	dir, _ := flags.GetString("dir")
	metricsFile, _ := flags.GetString("metrics-file")
	remote, _ := flags.GetBool("remote")

	if dir != "" {
		absDir, err := filepath.Abs(dir)
		if err != nil {
			return nil, err
		}
		dir = absDir
	}

	return &types.CLIArgs{
		ConfigFile: configFile,
		Today:      today,
		Accounts:   accounts,
		Backfill:   backfill,
		LogFormat:  app.v.GetString("log-format"),
		ReportName: reportName,
		ReportType: reportType,
		Dir:        dir,
		Metrics:    metricsFile,
		Remote:     remote,
	}, nil
}

// resolveConfig aplica, em ordem: defaults, arquivo, variáveis de ambiente e flags.
func (app *CLIApp) resolveConfig(args *types.CLIArgs) (types.Config, error) {
	cfg := types.DefaultConfig()

	if args.ConfigFile != "" {
		fileCfg, err := app.configRepo.LoadConfigFile(args.ConfigFile)
		if err != nil {
			return types.Config{}, err
		}
		cfg = cfg.Merge(*fileCfg)
	}

	v := app.v
	if v.IsSet("bucket") {
		cfg.Bucket = v.GetString("bucket")
	}
	if v.IsSet("role-name") {
		cfg.RoleName = v.GetString("role-name")
	}
	if v.IsSet("region") {
		cfg.Region = v.GetString("region")
	}
	if v.IsSet("profile") {
		cfg.Profile = v.GetString("profile")
	}
	if v.IsSet("strategy") {
		cfg.Strategy = v.GetString("strategy")
	}
	if v.IsSet("workgroup") {
		cfg.Workgroup = v.GetString("workgroup")
	}
	if v.IsSet("database") {
		cfg.Database = v.GetString("database")
	}
	if v.IsSet("emissions-location") {
		cfg.EmissionsLocation = v.GetString("emissions-location")
	}
	if v.IsSet("function-name") {
		cfg.FunctionName = v.GetString("function-name")
	}
	if v.IsSet("concurrency") {
		cfg.Concurrency = v.GetInt("concurrency")
	}
	if v.IsSet("max-attempts") {
		cfg.MaxAttempts = v.GetInt("max-attempts")
	}
	if v.IsSet("retry-base-delay") {
		cfg.RetryBaseDelay = v.GetDuration("retry-base-delay")
	}
	if v.IsSet("poll-interval") {
		cfg.PollInterval = v.GetDuration("poll-interval")
	}
	if v.IsSet("requests-per-second") {
		cfg.RequestsPerSecond = v.GetFloat64("requests-per-second")
	}
	if v.IsSet("dry-run") {
		cfg.DryRun = v.GetBool("dry-run")
	}
	return cfg, nil
}

// newConsole escolhe a saída interativa (pterm) ou estruturada (logrus).
func (app *CLIApp) newConsole(cmd *cobra.Command, format string) types.ConsoleInterface {
	debug := app.v.GetBool("debug")
	switch strings.ToLower(format) {
	case "json", "text":
		return console.NewStructuredConsole(cmd.ErrOrStderr(), format, debug)
	default:
		return console.NewConsole(debug)
	}
}

// prepare resolve argumentos, configuração e console de um subcomando.
func (app *CLIApp) prepare(cmd *cobra.Command) (*types.CLIArgs, types.Config, types.ConsoleInterface, error) {
	args, err := app.parseArgs(cmd)
	if err != nil {
		return nil, types.Config{}, nil, err
	}
	cfg, err := app.resolveConfig(args)
	if err != nil {
		return nil, types.Config{}, nil, err
	}
	out := app.newConsole(cmd, args.LogFormat)
	if args.LogFormat == "" || args.LogFormat == "pretty" {
		displayWelcomeBanner(cmd.OutOrStdout())
		go version.CheckLatestVersion(app.version)
	}
	return args, cfg, out, nil
}

// parseToday retorna a data de referência, hoje por padrão.
func parseToday(value string) (time.Time, error) {
	if value == "" {
		return time.Now().UTC(), nil
	}
	today, err := entity.ParseDate(value)
	if err != nil {
		return time.Time{}, types.NewConfigurationError("today", fmt.Sprintf("expected YYYY-MM-DD, got %q", value))
	}
	return today, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
