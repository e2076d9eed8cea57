package itemcatalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"crop-asr-qa/backend/internal/coreengine/sessionengine"
)

// Header aliases seen across the QA teams' CSV files. All label ambiguity is
// resolved here, once, so the rest of the service works with fixed-shape
// items.
var (
	serialAliases   = []string{"serial_number", "serial", "sno", "sr_no"}
	codeAliases     = []string{"crop_code", "code"}
	labelAliases    = []string{"crop_name", "name", "label"}
	languageAliases = []string{"language", "lang"}
)

func findColumn(header []string, aliases []string) int {
	for i, col := range header {
		normalized := strings.ToLower(strings.TrimSpace(col))
		for _, alias := range aliases {
			if normalized == alias {
				return i
			}
		}
	}
	return -1
}

func cell(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

// ParseCSV reads test items from a CSV with a header row. The label column is
// required; serial number, code and language are optional. Items with an
// empty label are rejected with their row number. defaultLanguage fills in
// rows without a language column or value.
func ParseCSV(r io.Reader, defaultLanguage string) ([]sessionengine.TestItem, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	labelIdx := findColumn(header, labelAliases)
	if labelIdx < 0 {
		return nil, fmt.Errorf("CSV is missing a label column (one of: %s)", strings.Join(labelAliases, ", "))
	}
	serialIdx := findColumn(header, serialAliases)
	codeIdx := findColumn(header, codeAliases)
	languageIdx := findColumn(header, languageAliases)

	var items []sessionengine.TestItem
	row := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row %d: %w", row+1, err)
		}
		row++

		label := cell(record, labelIdx)
		if label == "" {
			return nil, fmt.Errorf("CSV row %d has an empty label", row)
		}

		serial := len(items) + 1
		if s := cell(record, serialIdx); s != "" {
			if parsed, err := strconv.Atoi(s); err == nil {
				serial = parsed
			}
		}

		language := defaultLanguage
		if l := cell(record, languageIdx); l != "" {
			code, err := NormalizeLanguage(l)
			if err != nil {
				return nil, fmt.Errorf("CSV row %d: %w", row, err)
			}
			language = code
		}

		items = append(items, sessionengine.TestItem{
			SerialNumber: serial,
			Code:         cell(record, codeIdx),
			Label:        label,
			Language:     language,
		})
	}

	if len(items) == 0 {
		return nil, fmt.Errorf("CSV contains no test items")
	}
	return items, nil
}
