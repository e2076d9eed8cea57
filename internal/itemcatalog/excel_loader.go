package itemcatalog

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"crop-asr-qa/backend/internal/coreengine/sessionengine"
)

// ParseExcel reads test items from the first sheet of an XLSX workbook using
// the same header aliases and validation as ParseCSV.
func ParseExcel(r io.Reader, defaultLanguage string) ([]sessionengine.TestItem, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("Excel file has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("sheet %q has no data rows", sheets[0])
	}

	header := rows[0]
	labelIdx := findColumn(header, labelAliases)
	if labelIdx < 0 {
		return nil, fmt.Errorf("sheet is missing a label column (one of: %s)", strings.Join(labelAliases, ", "))
	}
	serialIdx := findColumn(header, serialAliases)
	codeIdx := findColumn(header, codeAliases)
	languageIdx := findColumn(header, languageAliases)

	var items []sessionengine.TestItem
	for i, record := range rows[1:] {
		rowNum := i + 2

		label := cell(record, labelIdx)
		if label == "" {
			// Excel sheets often trail off into blank rows; stop there
			// instead of failing the whole upload.
			if strings.Join(record, "") == "" {
				break
			}
			return nil, fmt.Errorf("sheet row %d has an empty label", rowNum)
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
				return nil, fmt.Errorf("sheet row %d: %w", rowNum, err)
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
		return nil, fmt.Errorf("sheet contains no test items")
	}
	return items, nil
}
