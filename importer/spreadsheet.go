package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// RequiredColumns is the header set every uploaded file must carry, in the
// order the downloadable template uses. Extra columns are ignored.
var RequiredColumns = []string{
	"holder_name",
	"national_id",
	"certificate_number",
	"course_name",
	"workload_hours",
	"completion_date",
}

// RawRow is one spreadsheet body row keyed by normalized column name. Cell
// values are kept as raw text; date cells from workbooks surface their
// serial value so the date resolver can see all three encodings. Number is
// the spreadsheet-relative row so errors stay addressable even when blank
// lines are dropped.
type RawRow struct {
	Number int // 1-based spreadsheet row; the header is row 1
	Cells  map[string]string
}

// ParseSpreadsheet converts an uploaded tabular file into ordered raw rows.
// It accepts XLSX workbooks and delimited text, reads only the first sheet,
// and produces no partial output: a header missing a required column fails
// the whole file with ErrFormat.
func ParseSpreadsheet(filename string, r io.Reader) ([]RawRow, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty file", ErrFormat)
	}

	var cells [][]string
	if isWorkbook(filename, data) {
		cells, err = readWorkbook(data)
	} else {
		cells, err = readDelimited(data)
	}
	if err != nil {
		return nil, err
	}

	return buildRows(cells)
}

// isWorkbook sniffs XLSX by extension first, then by the ZIP magic bytes.
func isWorkbook(filename string, data []byte) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xlsm":
		return true
	case ".csv", ".txt", ".tsv":
		return false
	}
	return bytes.HasPrefix(data, []byte("PK\x03\x04"))
}

func readWorkbook(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", ErrFormat)
	}

	// RawCellValue keeps date cells as their serial number instead of a
	// locale-formatted string.
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	return rows, nil
}

func readDelimited(data []byte) ([][]string, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = sniffDelimiter(data)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	return rows, nil
}

// sniffDelimiter picks ';' when the header line is semicolon-delimited,
// which is what locale-configured spreadsheet exports produce.
func sniffDelimiter(data []byte) rune {
	line := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		line = data[:i]
	}
	if bytes.Count(line, []byte(";")) > bytes.Count(line, []byte(",")) {
		return ';'
	}
	return ','
}

func buildRows(cells [][]string) ([]RawRow, error) {
	if len(cells) == 0 {
		return nil, fmt.Errorf("%w: file has no header row", ErrFormat)
	}

	// Map header indices by normalized column name.
	columnIndex := make(map[string]int)
	for i, h := range cells[0] {
		columnIndex[normalizeColumn(h)] = i
	}
	for _, col := range RequiredColumns {
		if _, ok := columnIndex[col]; !ok {
			return nil, fmt.Errorf("%w: missing required column %q", ErrFormat, col)
		}
	}

	rows := make([]RawRow, 0, len(cells)-1)
	for i, line := range cells[1:] {
		row := RawRow{
			Number: i + 1 + headerOffset,
			Cells:  make(map[string]string, len(RequiredColumns)),
		}
		empty := true
		for _, col := range RequiredColumns {
			value := ""
			if idx := columnIndex[col]; idx < len(line) {
				value = strings.TrimSpace(line[idx])
			}
			if value != "" {
				empty = false
			}
			row.Cells[col] = value
		}
		// Blank lines are not data.
		if empty {
			continue
		}
		rows = append(rows, row)
	}

	return rows, nil
}

func normalizeColumn(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	return strings.ReplaceAll(h, " ", "_")
}
