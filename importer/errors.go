package importer

import (
	"errors"
	"fmt"
)

// ErrFormat marks an upload that is malformed before any row can be
// processed (unreadable file, missing required columns). It is the only
// error class that aborts a whole import.
var ErrFormat = errors.New("invalid file format")

// headerOffset converts a 1-based body row index into the spreadsheet row
// number operators see (the header occupies row 1).
const headerOffset = 1

// RowError is a per-row validation failure. The batch keeps going; the
// operator gets the exact spreadsheet row to fix.
type RowError struct {
	RowIndex int    `json:"row_index"` // spreadsheet-relative, 1-based
	Message  string `json:"message"`
}

func (e RowError) String() string {
	return fmt.Sprintf("row %d: %s", e.RowIndex, e.Message)
}
