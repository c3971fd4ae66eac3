package importer

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/jinzhu/now"
)

// Spreadsheet serial dates count days from 1899-12-30. The two-day shift
// from 1900-01-01 absorbs the fictitious 1900-02-29 that early spreadsheet
// software inherited from Lotus 1-2-3 for serials of 60 and above.
var serialEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// maxSerial is 9999-12-31; anything above it is not a date cell.
const maxSerial = 2958465

var dayMonthYearPattern = regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`)

// ResolveCompletionDate turns one raw completion-date cell into a calendar
// date. Three branches are tried in order, first match wins:
//
//  1. numeric cell: spreadsheet serial date, fractional time truncated;
//  2. strict DD/MM/YYYY string, parsed positionally (never locale-guessed);
//  3. anything else: generic calendar parsing.
//
// Wrong completion dates on permanent records are silent corruption, so
// this function rejects instead of guessing whenever a cell is ambiguous.
func ResolveCompletionDate(cell string) (time.Time, error) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return time.Time{}, fmt.Errorf("empty completion date")
	}

	if serial, err := strconv.ParseFloat(cell, 64); err == nil {
		return dateFromSerial(serial)
	}

	if dayMonthYearPattern.MatchString(cell) {
		t, err := time.Parse("02/01/2006", cell)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid day/month/year date %q", cell)
		}
		return dateOnly(t), nil
	}

	t, err := now.Parse(cell)
	if err != nil {
		return time.Time{}, fmt.Errorf("unparseable completion date %q", cell)
	}
	return dateOnly(t), nil
}

// dateFromSerial resolves a spreadsheet serial day count. Serials below 60
// predate the phantom 1900-02-29 and sit one day closer to the epoch;
// serial 60 itself collapses onto 1900-02-28.
func dateFromSerial(serial float64) (time.Time, error) {
	days := int(serial) // truncate sub-day fraction
	if days < 1 || days > maxSerial {
		return time.Time{}, fmt.Errorf("serial date %v out of range", serial)
	}
	if days < 60 {
		days++
	}
	return serialEpoch.AddDate(0, 0, days), nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
