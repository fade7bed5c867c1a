package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/diillson/aws-carbon-emissions-go/internal/domain/entity"
	"github.com/diillson/aws-carbon-emissions-go/internal/domain/repository"
	"github.com/goccy/go-json"
	"github.com/jung-kurt/gofpdf"
)

// ExportRepositoryImpl implementa o ExportRepository.
type ExportRepositoryImpl struct {
	now func() time.Time
}

// NewExportRepository cria uma nova implementação do ExportRepository.
func NewExportRepository() repository.ExportRepository {
	return &ExportRepositoryImpl{now: time.Now}
}

var csvHeaders = []string{
	"Account ID", "Timeframe", "Start Date", "End Date", "Status",
	"Data Available", "Object Key", "Attempts", "Duration", "Message",
}

func outcomeRecord(o entity.AccountOutcome) []string {
	status := "OK"
	message := o.Message
	if !o.Success {
		status = "FAILED"
		message = o.Error
	}
	return []string{
		o.AccountID,
		string(o.Kind),
		o.Timeframe.Start(),
		o.Timeframe.End(),
		status,
		strconv.FormatBool(o.IsDataAvailable),
		o.Key,
		strconv.Itoa(o.Attempts),
		o.Duration.Round(time.Millisecond).String(),
		oneLine(message),
	}
}

// oneLine junta mensagens de várias linhas (ex.: conta sem relatório).
func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// ExportSummaryToCSV grava uma linha por conta e janela.
func (r *ExportRepositoryImpl) ExportSummaryToCSV(summary entity.RunSummary, filename, outputDir string) (string, error) {
	outputFilename, err := r.generateFilename(filename, outputDir, "csv")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(csvHeaders); err != nil {
		return "", fmt.Errorf("error writing CSV header: %w", err)
	}
	for _, o := range summary.Outcomes {
		if err := writer.Write(outcomeRecord(o)); err != nil {
			return "", fmt.Errorf("error writing CSV row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", fmt.Errorf("error flushing CSV file: %w", err)
	}

	return filepath.Abs(outputFilename)
}

// ExportSummaryToJSON grava o resumo completo da execução.
func (r *ExportRepositoryImpl) ExportSummaryToJSON(summary entity.RunSummary, filename, outputDir string) (string, error) {
	outputFilename, err := r.generateFilename(filename, outputDir, "json")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating JSON file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(summary); err != nil {
		return "", fmt.Errorf("error encoding JSON data: %w", err)
	}

	return filepath.Abs(outputFilename)
}

// ExportSummaryToPDF gera um relatório com totais e uma tabela de resultados.
func (r *ExportRepositoryImpl) ExportSummaryToPDF(summary entity.RunSummary, filename, outputDir string) (string, error) {
	outputFilename, err := r.generateFilename(filename, outputDir, "pdf")
	if err != nil {
		return "", err
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	headerColor := [3]int{40, 40, 40}
	headerTextColor := [3]int{255, 255, 255}
	bodyTextColor := [3]int{50, 50, 50}
	failedColor := [3]int{180, 30, 30}

	pdf.AddPage()
	pdf.SetFillColor(headerColor[0], headerColor[1], headerColor[2])
	pdf.SetTextColor(headerTextColor[0], headerTextColor[1], headerTextColor[2])
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 12, "Carbon Emissions Extraction Report", "", 1, "C", true, 0, "")
	pdf.Ln(4)

	pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
	pdf.SetFont("Arial", "", 10)
	overview := []string{
		fmt.Sprintf("Started: %s", summary.StartedAt.Format(time.RFC3339)),
		fmt.Sprintf("Finished: %s", summary.FinishedAt.Format(time.RFC3339)),
		fmt.Sprintf("New data window: %s", summary.Timeframes.NewData),
	}
	if summary.Backfilled {
		overview = append(overview, fmt.Sprintf("Backfill window: %s", summary.Timeframes.Backfill))
	}
	overview = append(overview, fmt.Sprintf("Outcomes: %d succeeded, %d failed, %d with data",
		summary.Succeeded(), summary.Failed(), summary.WithData()))
	for _, line := range overview {
		pdf.CellFormat(0, 6, tr(line), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	widths := []float64{32, 22, 24, 24, 18, 16, 141}
	headers := []string{"Account ID", "Timeframe", "Start", "End", "Status", "Data", "Message"}

	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(headerColor[0], headerColor[1], headerColor[2])
	pdf.SetTextColor(headerTextColor[0], headerTextColor[1], headerTextColor[2])
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 8)
	for _, o := range summary.Outcomes {
		record := outcomeRecord(o)
		cells := []string{record[0], record[1], record[2], record[3], record[4], record[5], truncate(record[9], 95)}
		if o.Success {
			pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
		} else {
			pdf.SetTextColor(failedColor[0], failedColor[1], failedColor[2])
		}
		for i, cell := range cells {
			align := "L"
			if i < 6 {
				align = "C"
			}
			pdf.CellFormat(widths[i], 6, tr(cell), "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.SetY(-15)
	pdf.SetFont("Arial", "I", 8)
	pdf.SetTextColor(128, 128, 128)
	pdf.CellFormat(0, 10, fmt.Sprintf("Generated on %s", r.now().Format("2006-01-02 15:04:05")), "", 0, "C", false, 0, "")

	if err := pdf.OutputFileAndClose(outputFilename); err != nil {
		return "", fmt.Errorf("error writing PDF file: %w", err)
	}
	return filepath.Abs(outputFilename)
}

// truncate limita s a n bytes, reticências incluídas, sem cortar um rune ao meio.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	cut := n - 3
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}

func (r *ExportRepositoryImpl) generateFilename(base, dir, ext string) (string, error) {
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("could not get current working directory: %w", err)
		}
		dir = cwd
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("error creating output directory '%s': %w", dir, err)
	}
	timestamp := r.now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.%s", base, timestamp, ext)
	return filepath.Join(dir, filename), nil
}
