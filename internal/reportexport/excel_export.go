package reportexport

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"crop-asr-qa/backend/internal/coreengine/sessionengine"
)

// ExportExcel renders a finalized report as an XLSX workbook with a Results
// sheet mirroring the CSV layout and a small Summary sheet.
func ExportExcel(report *sessionengine.Report) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const resultsSheet = "Results"
	if err := f.SetSheetName("Sheet1", resultsSheet); err != nil {
		return nil, fmt.Errorf("failed to rename results sheet: %w", err)
	}

	header := make([]interface{}, len(resultHeader))
	for i, h := range resultHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(resultsSheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("failed to write header row: %w", err)
	}

	for i, r := range report.Results {
		cellRef, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("failed to compute cell for row %d: %w", i+2, err)
		}
		stringRow := resultRow(report.TesterName, r)
		row := make([]interface{}, len(stringRow))
		for j, v := range stringRow {
			row[j] = v
		}
		if err := f.SetSheetRow(resultsSheet, cellRef, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	const summarySheet = "Summary"
	if _, err := f.NewSheet(summarySheet); err != nil {
		return nil, fmt.Errorf("failed to create summary sheet: %w", err)
	}
	summary := [][]interface{}{
		{"session_id", report.SessionID},
		{"tester_name", report.TesterName},
		{"language", report.Language},
		{"total_attempts", report.TotalAttempts},
		{"matches", report.Matches},
	}
	for i, pair := range summary {
		cellRef, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, fmt.Errorf("failed to compute summary cell: %w", err)
		}
		row := pair
		if err := f.SetSheetRow(summarySheet, cellRef, &row); err != nil {
			return nil, fmt.Errorf("failed to write summary row %d: %w", i+1, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}
