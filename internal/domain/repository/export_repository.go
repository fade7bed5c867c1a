package repository

import (
	"github.com/diillson/aws-carbon-emissions-go/internal/domain/entity"
)

// ExportRepository writes a run summary to local report files.
type ExportRepository interface {
	ExportSummaryToCSV(summary entity.RunSummary, filename, outputDir string) (string, error)
	ExportSummaryToJSON(summary entity.RunSummary, filename, outputDir string) (string, error)
	ExportSummaryToPDF(summary entity.RunSummary, filename, outputDir string) (string, error)
}
