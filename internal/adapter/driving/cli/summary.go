package cli

import (
	"strings"
	"time"

	"github.com/diillson/aws-carbon-emissions-go/internal/domain/entity"
	"github.com/diillson/aws-carbon-emissions-go/internal/domain/repository"
	"github.com/diillson/aws-carbon-emissions-go/internal/shared/types"
	"github.com/diillson/aws-carbon-emissions-go/pkg/console"
)

// renderSummary monta a tabela de resultados por conta e janela.
func renderSummary(out types.ConsoleInterface, summary entity.RunSummary) string {
	table := out.CreateTable()
	table.AddColumn("Account ID")
	table.AddColumn("Timeframe")
	table.AddColumn("Window")
	table.AddColumn("Status")
	table.AddColumn("Attempts")
	table.AddColumn("Duration")
	table.AddColumn("Details")

	for _, o := range summary.Outcomes {
		status := console.BrightGreen("stored")
		details := o.Key
		switch {
		case !o.Success:
			status = console.BoldRed("failed")
			details = firstLine(o.Error)
		case !o.IsDataAvailable:
			status = console.BrightYellow("no data")
			details = firstLine(o.Message)
		case o.Key == "":
			details = o.Message
		}
		table.AddRow(
			o.AccountID,
			string(o.Kind),
			o.Timeframe.String(),
			status,
			o.Attempts,
			o.Duration.Round(time.Millisecond),
			details,
		)
	}
	return table.Render()
}

// exportSummary grava o resumo em cada formato pedido; falhas viram avisos.
func exportSummary(repo repository.ExportRepository, out types.ConsoleInterface, summary entity.RunSummary, args *types.CLIArgs) {
	for _, reportType := range args.ReportType {
		var (
			path string
			err  error
		)
		switch strings.ToLower(strings.TrimSpace(reportType)) {
		case "csv":
			path, err = repo.ExportSummaryToCSV(summary, args.ReportName, args.Dir)
		case "json":
			path, err = repo.ExportSummaryToJSON(summary, args.ReportName, args.Dir)
		case "pdf":
			path, err = repo.ExportSummaryToPDF(summary, args.ReportName, args.Dir)
		default:
			out.LogWarning("Unsupported report type: %s", reportType)
			continue
		}
		if err != nil {
			out.LogError("Failed to export %s report: %s", reportType, err)
			continue
		}
		out.LogSuccess("%s report saved to %s", strings.ToUpper(reportType), console.BrightCyan(path))
	}
}
