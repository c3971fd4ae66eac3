package aggregator

import (
	"context"
	"testing"
	"time"

	"certhub/models"
	"certhub/models/certificate"
	"certhub/models/course"

	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type SourcesSuite struct {
	suite.Suite
	db  *gorm.DB
	ctx context.Context
}

func TestSourcesSuite(t *testing.T) {
	suite.Run(t, new(SourcesSuite))
}

func (s *SourcesSuite) SetupTest() {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	s.Require().NoError(err)
	s.Require().NoError(db.AutoMigrate(
		&models.User{},
		&course.Course{},
		&course.Enrollment{},
		&certificate.LegacyCertificate{},
		&certificate.HistoricalCertificate{},
	))
	s.db = db
	s.ctx = context.Background()
}

func (s *SourcesSuite) completed(daysAgo int) *time.Time {
	t := time.Date(2023, time.June, 15, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -daysAgo)
	return &t
}

func (s *SourcesSuite) TestLiveSourceProjectsCompletedEnrollments() {
	user := models.User{Name: "Maria da Silva", NationalID: "12345678909"}
	s.Require().NoError(s.db.Create(&user).Error)

	c := course.Course{Title: "First Aid", WorkloadHours: 40, Status: "ACTIVE"}
	s.Require().NoError(s.db.Create(&c).Error)

	// One completed, one still in progress.
	s.Require().NoError(s.db.Create(&course.Enrollment{
		UserID: user.ID, CourseID: c.ID, Status: "COMPLETED", CompletedAt: s.completed(10),
	}).Error)
	s.Require().NoError(s.db.Create(&course.Enrollment{
		UserID: user.ID, CourseID: c.ID, Status: "IN_PROGRESS",
	}).Error)

	src := &LiveSource{DB: s.db}
	records, err := src.FetchByNationalID(s.ctx, "12345678909")
	s.Require().NoError(err)
	s.Require().Len(records, 1)

	rec := records[0]
	s.Equal(certificate.SourceLive, rec.SourceType)
	s.Equal("Maria da Silva", rec.HolderName)
	s.Equal("First Aid", rec.CourseName)
	s.Require().NotNil(rec.WorkloadHours)
	s.Equal(40, *rec.WorkloadHours)
	s.Nil(rec.CertificateNumber)
	s.NotNil(rec.CompletionDate)
}

func (s *SourcesSuite) TestLegacySourceMatchesFormattedIDs() {
	s.Require().NoError(s.db.Create(&certificate.LegacyCertificate{
		HolderName:        "Maria da Silva",
		HolderNationalID:  "123.456.789-09", // legacy schema stores the display form
		CourseName:        "Workplace Safety",
		CompletionDate:    *s.completed(30),
		CertificateNumber: "LEG-001",
		IsActive:          true,
	}).Error)
	s.Require().NoError(s.db.Create(&certificate.LegacyCertificate{
		HolderName:        "Inactive Row",
		HolderNationalID:  "123.456.789-09",
		CompletionDate:    *s.completed(40),
		CertificateNumber: "LEG-002",
		IsActive:          false,
	}).Error)

	src := &LegacySource{DB: s.db}
	records, err := src.FetchByNationalID(s.ctx, "12345678909")
	s.Require().NoError(err)
	s.Require().Len(records, 1)

	rec := records[0]
	s.Equal(certificate.SourceLegacy, rec.SourceType)
	// The projection hands back digits regardless of the stored form.
	s.Equal("12345678909", rec.HolderNationalID)
	s.Equal("LEG-001", *rec.CertificateNumber)
}

func (s *SourcesSuite) TestHistoricalSourceFiltersActive() {
	s.Require().NoError(s.db.Create(&certificate.HistoricalCertificate{
		HolderName:        "Maria da Silva",
		HolderNationalID:  "12345678909",
		CourseName:        "Fire Brigade Training",
		CompletionDate:    *s.completed(5),
		CertificateNumber: "HIST-001",
		IsActive:          true,
	}).Error)
	s.Require().NoError(s.db.Create(&certificate.HistoricalCertificate{
		HolderName:        "Maria da Silva",
		HolderNationalID:  "12345678909",
		CompletionDate:    *s.completed(6),
		CertificateNumber: "HIST-002",
		IsActive:          false,
	}).Error)

	src := &HistoricalSource{DB: s.db}
	records, err := src.FetchByNationalID(s.ctx, "12345678909")
	s.Require().NoError(err)
	s.Require().Len(records, 1)
	s.Equal("HIST-001", *records[0].CertificateNumber)
}

func (s *SourcesSuite) TestEndToEndAgainstAllThreeStores() {
	user := models.User{Name: "Maria da Silva", NationalID: "12345678909"}
	s.Require().NoError(s.db.Create(&user).Error)
	c := course.Course{Title: "First Aid", WorkloadHours: 40}
	s.Require().NoError(s.db.Create(&c).Error)
	s.Require().NoError(s.db.Create(&course.Enrollment{
		UserID: user.ID, CourseID: c.ID, Status: "COMPLETED", CompletedAt: s.completed(1),
	}).Error)

	s.Require().NoError(s.db.Create(&certificate.LegacyCertificate{
		HolderName: "Maria da Silva", HolderNationalID: "123.456.789-09",
		CourseName: "Workplace Safety", CompletionDate: *s.completed(20),
		CertificateNumber: "LEG-001", IsActive: true,
	}).Error)
	s.Require().NoError(s.db.Create(&certificate.HistoricalCertificate{
		HolderName: "Maria da Silva", HolderNationalID: "12345678909",
		CourseName: "Fire Brigade Training", CompletionDate: *s.completed(10),
		CertificateNumber: "HIST-001", IsActive: true,
	}).Error)

	agg := New(DefaultSources(s.db), nil)
	result, err := agg.Search(s.ctx, "123.456.789-09", 0, 10)
	s.Require().NoError(err)
	s.Require().Len(result.Records, 3)
	s.False(result.Degraded)

	// Strictly descending by completion date across stores.
	s.Equal(certificate.SourceLive, result.Records[0].SourceType)
	s.Equal(certificate.SourceHistorical, result.Records[1].SourceType)
	s.Equal(certificate.SourceLegacy, result.Records[2].SourceType)
}
