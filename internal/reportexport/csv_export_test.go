package reportexport

import (
	"bytes"
	"database/sql"
	"encoding/csv"
	"testing"
	"time"

	"crop-asr-qa/backend/internal/coreengine/sessionengine"
)

func sampleReport() *sessionengine.Report {
	ts := time.Date(2025, 1, 31, 15, 45, 0, 0, time.UTC)
	return &sessionengine.Report{
		SessionID:  "20250131T154500-abc",
		TesterName: "Asha",
		Language:   "hi",
		Results: []sessionengine.ResultRecord{
			{
				SessionID:     "20250131T154500-abc",
				ItemLabel:     "Wheat",
				ItemCode:      "WHEAT001",
				Language:      "hi",
				AttemptNumber: 1,
				Transcript:    sql.NullString{String: "saying wheat", Valid: true},
				Matched:       true,
				WER:           sql.NullFloat64{Float64: 1.0, Valid: true},
				Timestamp:     ts,
			},
			{
				SessionID:     "20250131T154500-abc",
				ItemLabel:     "Wheat",
				ItemCode:      "WHEAT001",
				Language:      "hi",
				AttemptNumber: 2,
				Matched:       false,
				Timestamp:     ts.Add(time.Minute),
			},
		},
		TotalAttempts: 2,
		Matches:       1,
		GeneratedAt:   ts.Add(2 * time.Minute),
	}
}

func TestExportCSV(t *testing.T) {
	data, err := ExportCSV(sampleReport())
	if err != nil {
		t.Fatal(err)
	}

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 3 {
		t.Fatalf("CSV has %d rows, want header + 2", len(records))
	}
	if records[0][0] != "session_id" {
		t.Errorf("header = %v", records[0])
	}

	row := records[1]
	if row[2] != "Wheat" || row[5] != "1" || row[6] != "saying wheat" || row[7] != "true" {
		t.Errorf("attempt 1 row = %v", row)
	}
	// A no-transcript attempt exports an empty transcript cell.
	row = records[2]
	if row[5] != "2" || row[6] != "" || row[7] != "false" {
		t.Errorf("attempt 2 row = %v", row)
	}
}

func TestExportExcel(t *testing.T) {
	data, err := ExportExcel(sampleReport())
	if err != nil {
		t.Fatal(err)
	}
	if len(data) == 0 {
		t.Fatal("empty workbook")
	}
	// XLSX files are zip archives.
	if !bytes.HasPrefix(data, []byte("PK")) {
		t.Error("output does not look like an XLSX file")
	}
}

func TestReportFilename(t *testing.T) {
	at := time.Date(2025, 1, 31, 15, 45, 0, 0, time.UTC)
	if got := ReportFilename("csv", at); got != "asr_test_results_20250131_154500.csv" {
		t.Errorf("filename = %q", got)
	}
}
