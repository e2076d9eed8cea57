package reportexport

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"crop-asr-qa/backend/internal/coreengine/sessionengine"
)

// resultHeader is the column layout shared by the CSV and XLSX exports.
var resultHeader = []string{
	"session_id", "tester_name", "item_label", "item_code", "language",
	"attempt_number", "transcript", "matched", "wer", "cer", "timestamp",
}

func resultRow(testerName string, r sessionengine.ResultRecord) []string {
	transcript := ""
	if r.Transcript.Valid {
		transcript = r.Transcript.String
	}
	wer := ""
	if r.WER.Valid {
		wer = strconv.FormatFloat(r.WER.Float64, 'f', 4, 64)
	}
	cer := ""
	if r.CER.Valid {
		cer = strconv.FormatFloat(r.CER.Float64, 'f', 4, 64)
	}
	return []string{
		r.SessionID,
		testerName,
		r.ItemLabel,
		r.ItemCode,
		r.Language,
		strconv.Itoa(r.AttemptNumber),
		transcript,
		strconv.FormatBool(r.Matched),
		wer,
		cer,
		r.Timestamp.Format(time.RFC3339),
	}
}

// ExportCSV renders a finalized report as CSV, one row per attempt.
func ExportCSV(report *sessionengine.Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write(resultHeader); err != nil {
		return nil, err
	}
	for _, r := range report.Results {
		if err := w.Write(resultRow(report.TesterName, r)); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// ReportFilename builds the conventional download name for a report file,
// e.g. asr_test_results_20250131_154500.csv.
func ReportFilename(ext string, at time.Time) string {
	return fmt.Sprintf("asr_test_results_%s.%s", at.Format("20060102_150405"), ext)
}
