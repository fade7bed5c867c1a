package cli

import (
	"fmt"
	"strings"

	"github.com/diillson/aws-carbon-emissions-go/internal/adapter/driven/queries"
	"github.com/diillson/aws-carbon-emissions-go/internal/application/usecase"
	"github.com/diillson/aws-carbon-emissions-go/internal/domain/entity"
	"github.com/diillson/aws-carbon-emissions-go/internal/shared/types"
	"github.com/diillson/aws-carbon-emissions-go/pkg/console"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

func (app *CLIApp) timeframesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "timeframes",
		Short: "Show the backfill and new data windows relative to a date",
		RunE: func(cmd *cobra.Command, _ []string) error {
			args, _, out, err := app.prepare(cmd)
			if err != nil {
				return err
			}
			today, err := parseToday(args.Today)
			if err != nil {
				return err
			}

			tfs := entity.ComputeTimeframes(today)
			table := out.CreateTable()
			table.AddColumn("Timeframe")
			table.AddColumn("Start Date")
			table.AddColumn("End Date")
			table.AddRow(string(entity.TimeframeBackfill), tfs.Backfill.Start(), tfs.Backfill.End())
			table.AddRow(string(entity.TimeframeNewData), tfs.NewData.Start(), tfs.NewData.End())
			fmt.Fprintln(cmd.OutOrStdout(), table.Render())
			return nil
		},
	}
	cmd.Flags().String("today", "", "Reference date (YYYY-MM-DD), default today")
	return cmd
}

func (app *CLIApp) accountsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "List the accounts a run would process, management account first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			args, cfg, out, err := app.prepare(cmd)
			if err != nil {
				return err
			}
			ctx := commandContext(cmd)
			container, err := app.build(ctx, cfg, out)
			if err != nil {
				return err
			}

			accounts, err := container.Enumerator.List(ctx, args.Accounts)
			if err != nil {
				return err
			}

			table := out.CreateTable()
			table.AddColumn("#")
			table.AddColumn("Account ID")
			table.AddColumn("Role")
			for i, a := range accounts {
				table.AddRow(i+1, a.ID, string(a.Role))
			}
			fmt.Fprintln(cmd.OutOrStdout(), table.Render())
			return nil
		},
	}
	cmd.Flags().StringSlice("accounts", nil, "Use these account IDs instead of listing the organization")
	return cmd
}

func (app *CLIApp) extractCommand() *cobra.Command {
	var account, startDate, endDate string
	var skipWrite bool

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract one account's emissions for one timeframe",
		RunE: func(cmd *cobra.Command, _ []string) error {
			args, cfg, out, err := app.prepare(cmd)
			if err != nil {
				return err
			}
			if !args.Remote {
				if err := cfg.ValidateExtraction(); err != nil {
					return err
				}
			}

			tf, err := entity.NewTimeframe(startDate, endDate)
			if err != nil {
				return types.NewConfigurationError("timeframe", err.Error())
			}

			ctx := commandContext(cmd)
			container, err := app.build(ctx, cfg, out)
			if err != nil {
				return err
			}
			processor, err := container.Processor(args.Remote)
			if err != nil {
				return err
			}

			event := entity.ExtractionEvent{Account: account, Timeframe: &tf, SkipWrite: skipWrite}
			result, attempts, err := processor.Process(ctx, event, "")
			if err != nil {
				return err
			}
			out.LogSuccess("%s (%d attempt(s))", firstLine(result.Message), attempts)

			encoded, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(encoded))
			return nil
		},
	}
	cmd.Flags().StringVar(&account, "account", "", "Account ID to extract")
	cmd.Flags().StringVar(&startDate, "start-date", "", "First month (YYYY-MM-DD)")
	cmd.Flags().StringVar(&endDate, "end-date", "", "Last month (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&skipWrite, "skip-write", false, "Do not write the report to S3")
	cmd.Flags().Bool("remote", false, "Invoke the deployed extraction function instead")
	_ = cmd.MarkFlagRequired("account")
	_ = cmd.MarkFlagRequired("start-date")
	_ = cmd.MarkFlagRequired("end-date")
	return cmd
}

func (app *CLIApp) runCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Extract emissions for every account of the organization",
		RunE: func(cmd *cobra.Command, _ []string) error {
			args, cfg, out, err := app.prepare(cmd)
			if err != nil {
				return err
			}
			if !args.Remote {
				if err := cfg.ValidateExtraction(); err != nil {
					return err
				}
			}
			today, err := parseToday(args.Today)
			if err != nil {
				return err
			}

			ctx := commandContext(cmd)
			container, err := app.build(ctx, cfg, out)
			if err != nil {
				return err
			}
			processor, err := container.Processor(args.Remote)
			if err != nil {
				return err
			}

			summary, runErr := container.RunUseCase(processor).Run(ctx, usecase.RunOptions{
				Today:         today,
				Accounts:      args.Accounts,
				ForceBackfill: args.Backfill,
			})
			if len(summary.Outcomes) > 0 {
				fmt.Fprintln(cmd.OutOrStdout(), renderSummary(out, summary))
			}

			if args.ReportName != "" {
				exportSummary(container.Export, out, summary, args)
			}
			if args.Metrics != "" {
				if err := container.Recorder.WriteToTextfile(args.Metrics); err != nil {
					out.LogWarning("%s", err)
				}
			}

			if runErr != nil {
				return runErr
			}
			if err := usecase.SummaryError(summary); err != nil {
				return fmt.Errorf("%d of %d extractions failed: %w", summary.Failed(), len(summary.Outcomes), err)
			}
			out.LogSuccess("Processed %d extraction(s), %d with new data", len(summary.Outcomes), summary.WithData())
			return nil
		},
	}
	flags := cmd.Flags()
	flags.String("today", "", "Reference date (YYYY-MM-DD), default today")
	flags.StringSlice("accounts", nil, "Use these account IDs instead of listing the organization")
	flags.Bool("backfill", false, "Query the backfill window even if the bucket already has reports")
	flags.Bool("remote", false, "Dispatch each account to the deployed extraction function")
	flags.StringP("report-name", "n", "", "Base name of the summary report files (without extension)")
	flags.StringSliceP("report-type", "y", []string{"csv"}, "Summary report types: csv, json, pdf")
	flags.StringP("dir", "d", "", "Directory to save the report files (default: current directory)")
	flags.String("metrics-file", "", "Write run metrics to this Prometheus textfile")
	return cmd
}

func (app *CLIApp) viewsCommand() *cobra.Command {
	var printOnly bool

	cmd := &cobra.Command{
		Use:   "views",
		Short: "Create or update the Athena database, table and views",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, cfg, out, err := app.prepare(cmd)
			if err != nil {
				return err
			}
			if err := cfg.ValidateViews(); err != nil {
				return err
			}

			if printOnly {
				statements, err := usecase.NewViewsUseCase(nil, queries.FS(), queries.Order).
					Statements(cfg.Database, cfg.ResolvedEmissionsLocation())
				if err != nil {
					return err
				}
				for _, stmt := range statements {
					fmt.Fprintf(cmd.OutOrStdout(), "-- %s\n%s;\n\n", stmt.Name, strings.TrimRight(stmt.Resolve(), ";\n "))
				}
				return nil
			}

			ctx := commandContext(cmd)
			container, err := app.build(ctx, cfg, out)
			if err != nil {
				return err
			}
			if err := container.Views.Rebuild(ctx, cfg.Database, cfg.ResolvedEmissionsLocation(), cfg.Workgroup); err != nil {
				return err
			}
			out.LogSuccess("Views are up to date in %s", console.BrightMagenta(cfg.Database))
			return nil
		},
	}
	cmd.Flags().BoolVar(&printOnly, "print", false, "Print the resolved statements instead of running them")
	return cmd
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
