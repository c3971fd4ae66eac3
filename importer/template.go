package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// templateRows are the illustrative examples shipped in the downloadable
// template, one per accepted completion-date encoding. They must round-trip
// through ParseSpreadsheet and NormalizeRows without error.
var templateRows = [][]string{
	{"Maria da Silva", "123.456.789-09", "HIST-2001-001", "Advanced First Aid", "40", "15/06/2001"},
	{"João Pereira", "98765432100", "HIST-2001-002", "Workplace Safety", "20", "2001-11-23"},
	{"Ana Souza", "11144477735", "HIST-2002-003", "Fire Brigade Training", "16", "37302"},
}

// TemplateCSV renders the import template as delimited text.
func TemplateCSV() ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(RequiredColumns); err != nil {
		return nil, err
	}
	for _, row := range templateRows {
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// TemplateXLSX renders the import template as a workbook.
func TemplateXLSX() ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)

	header := make([]interface{}, len(RequiredColumns))
	for i, col := range RequiredColumns {
		header[i] = col
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, err
	}

	for i, row := range templateRows {
		cells := make([]interface{}, len(row))
		for j, v := range row {
			cells[j] = v
		}
		axis := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheet, axis, &cells); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
