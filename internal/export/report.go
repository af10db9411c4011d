package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gnomegl/contribtally/internal/models"
	"github.com/xuri/excelize/v2"
)

var reportHeaders = []string{"Repository", "Contributor Email", "Contributor Name", "Last Commit Timestamp"}

// WriteReport writes the contributor rows to path. The format follows the
// extension: ".xlsx" produces a spreadsheet, anything else CSV. Rows are
// written in the order given (job completion order, then insertion order
// within a job).
func WriteReport(path string, rows []models.ContributorRow) error {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return writeXLSX(path, rows)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating report file: %w", err)
	}
	defer file.Close()

	return WriteCSV(file, rows)
}

func WriteCSV(w io.Writer, rows []models.ContributorRow) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write(reportHeaders); err != nil {
		return fmt.Errorf("error writing CSV headers: %w", err)
	}

	for _, row := range rows {
		record := []string{row.Repo, row.Email, row.Name, formatTimestamp(row.LastCommit)}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("error writing CSV row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

func writeXLSX(path string, rows []models.ContributorRow) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Contributors"
	f.SetSheetName("Sheet1", sheet)

	for col, header := range reportHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return err
		}
	}

	for i, row := range rows {
		values := []string{row.Repo, row.Email, row.Name, formatTimestamp(row.LastCommit)}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return err
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("error writing spreadsheet: %w", err)
	}
	return nil
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return "N/A"
	}
	return t.UTC().Format(time.RFC3339)
}
