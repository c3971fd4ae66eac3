package certificate

import (
	"time"

	"certhub/models"
	"certhub/models/course"
	"certhub/utils"
)

// Source type tags for the canonical record. The public search reconciles
// three stores with different schemas into this one shape.
const (
	SourceLive       = "live"
	SourceLegacy     = "legacy"
	SourceHistorical = "historical"
)

// CanonicalCertificate is the unified shape every backing store is projected
// into before merge. It is the only certificate shape the public API speaks.
type CanonicalCertificate struct {
	ID                uint       `json:"id"`
	SourceType        string     `json:"source_type"`
	HolderName        string     `json:"holder_name"`
	HolderNationalID  string     `json:"holder_national_id"` // digits only, 11 chars
	CourseName        string     `json:"course_name"`
	CompletionDate    *time.Time `json:"completion_date"` // nil only for in-progress live records
	WorkloadHours     *int       `json:"workload_hours"`
	CertificateNumber *string    `json:"certificate_number"` // nil for live records
	DocumentURL       *string    `json:"document_url"`
	PeriodStart       *time.Time `json:"period_start"`
	PeriodEnd         *time.Time `json:"period_end"`
	IsActive          bool       `json:"is_active"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// FromLegacy projects a legacy row into the canonical shape. The legacy
// store keeps national IDs formatted, so the projection strips them back to
// digits.
func FromLegacy(c LegacyCertificate) CanonicalCertificate {
	completion := c.CompletionDate
	return CanonicalCertificate{
		ID:                c.ID,
		SourceType:        SourceLegacy,
		HolderName:        c.HolderName,
		HolderNationalID:  utils.NormalizeNationalID(c.HolderNationalID),
		CourseName:        c.CourseName,
		CompletionDate:    &completion,
		WorkloadHours:     c.WorkloadHours,
		CertificateNumber: &c.CertificateNumber,
		DocumentURL:       c.DocumentURL,
		PeriodStart:       c.PeriodStart,
		PeriodEnd:         c.PeriodEnd,
		IsActive:          c.IsActive,
		CreatedAt:         c.CreatedAt,
		UpdatedAt:         c.UpdatedAt,
	}
}

// FromHistorical projects an imported archive row into the canonical shape.
func FromHistorical(c HistoricalCertificate) CanonicalCertificate {
	completion := c.CompletionDate
	return CanonicalCertificate{
		ID:                c.ID,
		SourceType:        SourceHistorical,
		HolderName:        c.HolderName,
		HolderNationalID:  c.HolderNationalID,
		CourseName:        c.CourseName,
		CompletionDate:    &completion,
		WorkloadHours:     c.WorkloadHours,
		CertificateNumber: &c.CertificateNumber,
		DocumentURL:       c.DocumentURL,
		PeriodStart:       c.PeriodStart,
		PeriodEnd:         c.PeriodEnd,
		IsActive:          c.IsActive,
		CreatedAt:         c.CreatedAt,
		UpdatedAt:         c.UpdatedAt,
	}
}

// FromEnrollment projects a completed enrollment into the canonical shape.
// Live records carry no certificate number or document; those exist only for
// the manually maintained stores.
func FromEnrollment(e course.Enrollment, c course.Course, u models.User) CanonicalCertificate {
	var workload *int
	if c.WorkloadHours > 0 {
		hours := c.WorkloadHours
		workload = &hours
	}
	return CanonicalCertificate{
		ID:               e.ID,
		SourceType:       SourceLive,
		HolderName:       u.Name,
		HolderNationalID: utils.NormalizeNationalID(u.NationalID),
		CourseName:       c.Title,
		CompletionDate:   e.CompletedAt,
		WorkloadHours:    workload,
		IsActive:         !e.IsDeleted,
		CreatedAt:        e.CreatedAt,
		UpdatedAt:        e.UpdatedAt,
	}
}
