package importer

import (
	"strconv"
	"strings"

	"certhub/models/certificate"
	"certhub/utils"
)

// NormalizeRows validates raw rows in input order and independently: the
// first failure in a row rejects that row and moves on, one bad row never
// aborts the batch. Both return values are always populated; callers get
// every record that validated plus an addressable error per row that did
// not.
func NormalizeRows(rows []RawRow, batch string) ([]certificate.HistoricalCertificate, []RowError) {
	records := make([]certificate.HistoricalCertificate, 0, len(rows))
	rowErrors := make([]RowError, 0)

	// Certificate numbers must be unique within the batch; the first
	// occurrence is kept and is never retroactively invalidated.
	seen := make(map[string]bool)

	for _, row := range rows {
		nationalID := utils.NormalizeNationalID(row.Cells["national_id"])
		if len(nationalID) != utils.NationalIDLength {
			rowErrors = append(rowErrors, RowError{row.Number, "invalid national id"})
			continue
		}

		workload, ok := parseWorkload(row.Cells["workload_hours"])
		if !ok {
			rowErrors = append(rowErrors, RowError{row.Number, "invalid workload hours"})
			continue
		}

		completionDate, err := ResolveCompletionDate(row.Cells["completion_date"])
		if err != nil {
			rowErrors = append(rowErrors, RowError{row.Number, "invalid completion date"})
			continue
		}

		certNumber := strings.TrimSpace(row.Cells["certificate_number"])
		if certNumber == "" {
			rowErrors = append(rowErrors, RowError{row.Number, "missing certificate number"})
			continue
		}
		if seen[certNumber] {
			rowErrors = append(rowErrors, RowError{row.Number, "duplicate certificate number"})
			continue
		}
		seen[certNumber] = true

		records = append(records, certificate.HistoricalCertificate{
			HolderName:        strings.TrimSpace(row.Cells["holder_name"]),
			HolderNationalID:  nationalID,
			CourseName:        strings.TrimSpace(row.Cells["course_name"]),
			CompletionDate:    completionDate,
			WorkloadHours:     workload,
			CertificateNumber: certNumber,
			IsActive:          true,
			ImportBatch:       batch,
		})
	}

	return records, rowErrors
}

// parseWorkload coerces the workload cell to a positive integer. The cell is
// nullable; workbook exports sometimes render integers as "40.0".
func parseWorkload(cell string) (*int, bool) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return nil, true
	}

	value, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return nil, false
	}

	hours := int(value)
	if float64(hours) != value || hours <= 0 {
		return nil, false
	}
	return &hours, true
}
