// Package input reads the list of pages to scrape from a spreadsheet or CSV
// file with URL_ID and URL columns.
package input

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Required header names.
const (
	ColumnID  = "URL_ID"
	ColumnURL = "URL"
)

// ErrMissingColumn is returned when the header lacks URL_ID or URL.
var ErrMissingColumn = errors.New("missing required column")

// ErrUnsupportedFormat is returned for files that are neither .xlsx nor .csv.
var ErrUnsupportedFormat = errors.New("unsupported input format")

// Row is one data row. Number is 1-based and counts the header, so it matches
// the row number shown by spreadsheet tools.
type Row struct {
	Number int
	ID     string
	URL    string
}

// Load reads rows from path, choosing the reader by extension. Any error
// here means the input as a whole is unusable.
func Load(path string) ([]Row, error) {
	var (
		records [][]string
		err     error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		records, err = readWorkbook(path)
	case ".csv":
		records, err = readCSV(path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	if err != nil {
		return nil, err
	}
	return FromRecords(records)
}

// readWorkbook returns the cells of the first sheet.
func readWorkbook(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook %s has no sheets", path)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	return rows, nil
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	return records, nil
}

// FromRecords maps a header row plus data rows to Rows. Columns are found by
// name; extra columns are ignored and fully blank rows are skipped.
func FromRecords(records [][]string) ([]Row, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: input has no header row", ErrMissingColumn)
	}
	idCol, urlCol := -1, -1
	for i, h := range records[0] {
		switch strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")) {
		case ColumnID:
			if idCol < 0 {
				idCol = i
			}
		case ColumnURL:
			if urlCol < 0 {
				urlCol = i
			}
		}
	}
	var missing []string
	if idCol < 0 {
		missing = append(missing, ColumnID)
	}
	if urlCol < 0 {
		missing = append(missing, ColumnURL)
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s (input must contain %q and %q columns)", ErrMissingColumn, strings.Join(missing, ", "), ColumnID, ColumnURL)
	}

	rows := make([]Row, 0, len(records)-1)
	for i, rec := range records[1:] {
		if blank(rec) {
			continue
		}
		rows = append(rows, Row{
			Number: i + 2,
			ID:     strings.TrimSpace(cell(rec, idCol)),
			URL:    strings.TrimSpace(cell(rec, urlCol)),
		})
	}
	return rows, nil
}

// cell tolerates short rows; spreadsheet readers drop trailing empty cells.
func cell(rec []string, i int) string {
	if i < len(rec) {
		return rec[i]
	}
	return ""
}

func blank(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
