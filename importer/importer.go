package importer

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"certhub/config"
	"certhub/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ImportResult is the user-facing outcome of one bulk import: the exact
// count of records the store accepted plus an enumerated list of problems
// sufficient to fix and re-submit only the failing rows.
type ImportResult struct {
	Batch    string   `json:"batch"`
	Imported int      `json:"imported_count"`
	Errors   []string `json:"errors"`
}

// ImportBatch runs the whole write path: parse, validate, attach documents,
// persist. Persistence is atomic per record, not per batch: a store-level
// rejection of one record (a cross-batch certificate number conflict, for
// instance) is reported without blocking sibling records from committing.
//
// Only a malformed file returns an error; every other failure class is
// accumulated into the result alongside whatever succeeded.
func ImportBatch(ctx context.Context, db *gorm.DB, store utils.DocumentStore, filename string, file io.Reader, docs map[string]DocumentBlob) (*ImportResult, error) {
	rows, err := ParseSpreadsheet(filename, file)
	if err != nil {
		return nil, err
	}

	batch := time.Now().Format("20060102-150405") + "-" + uuid.New().String()[:8]

	records, rowErrors := NormalizeRows(rows, batch)

	AttachDocuments(ctx, store, records, docs)

	result := &ImportResult{Batch: batch, Errors: make([]string, 0, len(rowErrors))}
	for _, rowErr := range rowErrors {
		result.Errors = append(result.Errors, rowErr.String())
	}

	for i := range records {
		if err := db.WithContext(ctx).Create(&records[i]).Error; err != nil {
			result.Errors = append(result.Errors,
				fmt.Sprintf("certificate %s: not imported (%v)", records[i].CertificateNumber, err))
			continue
		}
		result.Imported++
	}

	log.Printf("[IMPORT %s] %d rows, %d imported, %d problems",
		batch, len(rows), result.Imported, len(result.Errors))

	if config.AppConfig != nil && config.AppConfig.ReportEmail != "" {
		if err := utils.SendImportReport(batch, result.Imported, result.Errors); err != nil {
			log.Printf("[IMPORT %s] report email failed: %v", batch, err)
		}
	}

	return result, nil
}
