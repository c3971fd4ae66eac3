package certificate

import (
	"time"

	"gorm.io/gorm"
)

// HistoricalCertificate is a record recovered from paper archives, entered
// one by one or through a bulk spreadsheet import. National IDs are stored
// digits-only, already normalized by the import pipeline.
type HistoricalCertificate struct {
	gorm.Model
	HolderName        string     `json:"holder_name"`
	HolderNationalID  string     `json:"holder_national_id" gorm:"index"` // digits only, 11 chars
	CourseName        string     `json:"course_name"`
	CompletionDate    time.Time  `json:"completion_date"`
	WorkloadHours     *int       `json:"workload_hours"`
	CertificateNumber string     `json:"certificate_number" gorm:"uniqueIndex"`
	DocumentURL       *string    `json:"document_url"`
	PeriodStart       *time.Time `json:"period_start"`
	PeriodEnd         *time.Time `json:"period_end"`
	IsActive          bool       `json:"is_active" gorm:"default:true"`
	ImportBatch       string     `json:"import_batch" gorm:"index"` // empty for manually created records
}
