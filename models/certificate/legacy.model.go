package certificate

import (
	"time"

	"gorm.io/gorm"
)

// LegacyCertificate is a record from the old certificate system, maintained
// by hand through the admin forms. The legacy schema stores the holder's
// national ID in its punctuated display form (XXX.XXX.XXX-XX), which is why
// lookups against this table go through FormatNationalID.
type LegacyCertificate struct {
	gorm.Model
	HolderName        string     `json:"holder_name"`
	HolderNationalID  string     `json:"holder_national_id" gorm:"index"` // formatted, XXX.XXX.XXX-XX
	CourseName        string     `json:"course_name"`
	CompletionDate    time.Time  `json:"completion_date"`
	WorkloadHours     *int       `json:"workload_hours"`
	CertificateNumber string     `json:"certificate_number" gorm:"uniqueIndex"`
	DocumentURL       *string    `json:"document_url"`
	PeriodStart       *time.Time `json:"period_start"`
	PeriodEnd         *time.Time `json:"period_end"`
	IsActive          bool       `json:"is_active" gorm:"default:true"`
}
