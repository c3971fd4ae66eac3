package importer

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRow(number int, overrides map[string]string) RawRow {
	cells := map[string]string{
		"holder_name":        "Maria da Silva",
		"national_id":        "123.456.789-09",
		"certificate_number": fmt.Sprintf("HIST-2023-%03d", number),
		"course_name":        "Advanced First Aid",
		"workload_hours":     "40",
		"completion_date":    "15/06/2023",
	}
	for k, v := range overrides {
		cells[k] = v
	}
	return RawRow{Number: number, Cells: cells}
}

func TestNormalizeRowsHappyPath(t *testing.T) {
	records, rowErrors := NormalizeRows([]RawRow{testRow(2, nil)}, "batch-1")
	require.Empty(t, rowErrors)
	require.Len(t, records, 1)

	record := records[0]
	assert.Equal(t, "Maria da Silva", record.HolderName)
	assert.Equal(t, "12345678909", record.HolderNationalID)
	assert.Equal(t, "HIST-2023-002", record.CertificateNumber)
	assert.Equal(t, "2023-06-15", record.CompletionDate.Format("2006-01-02"))
	require.NotNil(t, record.WorkloadHours)
	assert.Equal(t, 40, *record.WorkloadHours)
	assert.True(t, record.IsActive)
	assert.Equal(t, "batch-1", record.ImportBatch)
}

func TestNormalizeRowsNationalID(t *testing.T) {
	for _, id := range []string{"", "123", "123456789012", "abcdefghijk"} {
		records, rowErrors := NormalizeRows([]RawRow{testRow(2, map[string]string{"national_id": id})}, "b")
		assert.Empty(t, records, "id %q", id)
		require.Len(t, rowErrors, 1, "id %q", id)
		assert.Equal(t, 2, rowErrors[0].RowIndex)
		assert.Equal(t, "invalid national id", rowErrors[0].Message)
	}

	// Punctuation is stripped, not rejected.
	records, rowErrors := NormalizeRows([]RawRow{testRow(2, map[string]string{"national_id": "987.654.321-00"})}, "b")
	require.Empty(t, rowErrors)
	assert.Equal(t, "98765432100", records[0].HolderNationalID)
}

func TestNormalizeRowsWorkload(t *testing.T) {
	for _, w := range []string{"abc", "0", "-5", "12.5"} {
		records, rowErrors := NormalizeRows([]RawRow{testRow(2, map[string]string{"workload_hours": w})}, "b")
		assert.Empty(t, records, "workload %q", w)
		require.Len(t, rowErrors, 1, "workload %q", w)
		assert.Equal(t, "invalid workload hours", rowErrors[0].Message)
	}

	// Nullable: a missing workload is not an error.
	records, rowErrors := NormalizeRows([]RawRow{testRow(2, map[string]string{"workload_hours": ""})}, "b")
	require.Empty(t, rowErrors)
	assert.Nil(t, records[0].WorkloadHours)

	// Workbook exports render integers as "40.0".
	records, _ = NormalizeRows([]RawRow{testRow(2, map[string]string{"workload_hours": "40.0"})}, "b")
	require.Len(t, records, 1)
	assert.Equal(t, 40, *records[0].WorkloadHours)
}

func TestNormalizeRowsDuplicateCertificateNumber(t *testing.T) {
	rows := []RawRow{
		testRow(2, map[string]string{"certificate_number": "HIST-2023-001"}),
		testRow(3, map[string]string{"certificate_number": "HIST-2023-001"}),
		testRow(4, map[string]string{"certificate_number": "HIST-2023-002"}),
	}

	records, rowErrors := NormalizeRows(rows, "b")

	// First occurrence kept and never retroactively invalidated.
	require.Len(t, records, 2)
	assert.Equal(t, "HIST-2023-001", records[0].CertificateNumber)
	assert.Equal(t, "HIST-2023-002", records[1].CertificateNumber)

	require.Len(t, rowErrors, 1)
	assert.Equal(t, 3, rowErrors[0].RowIndex)
	assert.Equal(t, "duplicate certificate number", rowErrors[0].Message)
}

func TestNormalizeRowsOneBadRowNeverAbortsTheBatch(t *testing.T) {
	rows := make([]RawRow, 0, 10)
	for i := 0; i < 10; i++ {
		overrides := map[string]string{}
		if i == 4 { // body row 5
			overrides["completion_date"] = "not a date"
		}
		rows = append(rows, testRow(i+2, overrides))
	}

	records, rowErrors := NormalizeRows(rows, "b")

	assert.Len(t, records, 9)
	require.Len(t, rowErrors, 1)
	// Body row 5 sits on spreadsheet row 6 because of the header.
	assert.Equal(t, 6, rowErrors[0].RowIndex)
	assert.Equal(t, "invalid completion date", rowErrors[0].Message)
}

func TestNormalizeRowsStopsAtFirstFailurePerRow(t *testing.T) {
	row := testRow(2, map[string]string{
		"national_id":     "bad",
		"completion_date": "also bad",
	})

	_, rowErrors := NormalizeRows([]RawRow{row}, "b")

	require.Len(t, rowErrors, 1)
	assert.Equal(t, "invalid national id", rowErrors[0].Message)
}

func TestNormalizeRowsMissingCertificateNumber(t *testing.T) {
	records, rowErrors := NormalizeRows([]RawRow{testRow(2, map[string]string{"certificate_number": " "})}, "b")
	assert.Empty(t, records)
	require.Len(t, rowErrors, 1)
	assert.Equal(t, "missing certificate number", rowErrors[0].Message)
}
