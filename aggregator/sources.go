package aggregator

import (
	"context"

	"certhub/models"
	"certhub/models/certificate"
	"certhub/models/course"
	"certhub/utils"

	"gorm.io/gorm"
)

// LiveSource projects completed course enrollments into certificates. This
// store is derived and read-only here: an enrollment with a non-null
// completion timestamp is a live certificate.
type LiveSource struct {
	DB *gorm.DB
}

func (s *LiveSource) Name() string { return certificate.SourceLive }

func (s *LiveSource) FetchByNationalID(ctx context.Context, nationalID string) ([]certificate.CanonicalCertificate, error) {
	db := s.DB.WithContext(ctx)

	var users []models.User
	if err := db.Where("national_id = ? AND is_deleted = ?", nationalID, false).
		Order("id asc").Find(&users).Error; err != nil {
		return nil, err
	}

	records := make([]certificate.CanonicalCertificate, 0)
	for _, user := range users {
		var enrollments []course.Enrollment
		if err := db.Where("user_id = ? AND completed_at IS NOT NULL AND is_deleted = ?", user.ID, false).
			Order("id asc").Find(&enrollments).Error; err != nil {
			return nil, err
		}

		for _, enrollment := range enrollments {
			var c course.Course
			if err := db.Where("id = ?", enrollment.CourseID).First(&c).Error; err != nil {
				if err == gorm.ErrRecordNotFound {
					continue
				}
				return nil, err
			}
			records = append(records, certificate.FromEnrollment(enrollment, c, user))
		}
	}

	return records, nil
}

// LegacySource reads the old certificate table, which stores national IDs
// in their punctuated display form. Both forms are matched so rows entered
// before the format was enforced still surface.
type LegacySource struct {
	DB *gorm.DB
}

func (s *LegacySource) Name() string { return certificate.SourceLegacy }

func (s *LegacySource) FetchByNationalID(ctx context.Context, nationalID string) ([]certificate.CanonicalCertificate, error) {
	forms := []string{utils.FormatNationalID(nationalID), nationalID}

	var rows []certificate.LegacyCertificate
	if err := s.DB.WithContext(ctx).
		Where("holder_national_id IN ? AND is_active = ?", forms, true).
		Order("id asc").Find(&rows).Error; err != nil {
		return nil, err
	}

	records := make([]certificate.CanonicalCertificate, 0, len(rows))
	for _, row := range rows {
		records = append(records, certificate.FromLegacy(row))
	}
	return records, nil
}

// HistoricalSource reads the imported archive table, digits-only IDs.
type HistoricalSource struct {
	DB *gorm.DB
}

func (s *HistoricalSource) Name() string { return certificate.SourceHistorical }

func (s *HistoricalSource) FetchByNationalID(ctx context.Context, nationalID string) ([]certificate.CanonicalCertificate, error) {
	var rows []certificate.HistoricalCertificate
	if err := s.DB.WithContext(ctx).
		Where("holder_national_id = ? AND is_active = ?", nationalID, true).
		Order("id asc").Find(&rows).Error; err != nil {
		return nil, err
	}

	records := make([]certificate.CanonicalCertificate, 0, len(rows))
	for _, row := range rows {
		records = append(records, certificate.FromHistorical(row))
	}
	return records, nil
}

// DefaultSources wires the three production stores in their canonical
// order: live first, then legacy, then historical. Merge ties keep this
// order, so it is part of the public contract.
func DefaultSources(db *gorm.DB) []Source {
	return []Source{
		&LiveSource{DB: db},
		&LegacySource{DB: db},
		&HistoricalSource{DB: db},
	}
}
