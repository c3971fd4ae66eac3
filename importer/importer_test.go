package importer

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"certhub/models/certificate"

	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type ImportBatchSuite struct {
	suite.Suite
	db  *gorm.DB
	ctx context.Context
}

func TestImportBatchSuite(t *testing.T) {
	suite.Run(t, new(ImportBatchSuite))
}

func (s *ImportBatchSuite) SetupTest() {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	s.Require().NoError(err)
	s.Require().NoError(db.AutoMigrate(&certificate.HistoricalCertificate{}))
	s.db = db
	s.ctx = context.Background()
}

func (s *ImportBatchSuite) importCSV(lines ...string) *ImportResult {
	data := csvHeader + "\n" + strings.Join(lines, "\n")
	result, err := ImportBatch(s.ctx, s.db, nil, "batch.csv", strings.NewReader(data), nil)
	s.Require().NoError(err)
	return result
}

func (s *ImportBatchSuite) TestImportsValidRows() {
	result := s.importCSV(
		"Maria da Silva,12345678909,HIST-001,First Aid,40,15/06/2023",
		"João Pereira,98765432100,HIST-002,Safety,20,2023-01-10",
	)

	s.Equal(2, result.Imported)
	s.Empty(result.Errors)
	s.NotEmpty(result.Batch)

	var stored []certificate.HistoricalCertificate
	s.Require().NoError(s.db.Order("id asc").Find(&stored).Error)
	s.Require().Len(stored, 2)
	s.Equal("HIST-001", stored[0].CertificateNumber)
	s.Equal(result.Batch, stored[0].ImportBatch)
}

func (s *ImportBatchSuite) TestRowErrorsDoNotBlockSiblings() {
	rows := make([]string, 0, 10)
	for i := 1; i <= 10; i++ {
		dateCell := "15/06/2023"
		if i == 5 {
			dateCell = "not a date"
		}
		rows = append(rows, fmt.Sprintf("Maria,12345678909,HIST-%03d,First Aid,40,%s", i, dateCell))
	}

	result := s.importCSV(rows...)

	s.Equal(9, result.Imported)
	s.Require().Len(result.Errors, 1)
	// Body row 5 is spreadsheet row 6.
	s.Contains(result.Errors[0], "row 6")
	s.Contains(result.Errors[0], "invalid completion date")
}

func (s *ImportBatchSuite) TestDuplicateWithinBatch() {
	result := s.importCSV(
		"Maria,12345678909,HIST-2023-001,First Aid,40,15/06/2023",
		"João,98765432100,HIST-2023-001,Safety,20,15/06/2023",
	)

	s.Equal(1, result.Imported)
	s.Require().Len(result.Errors, 1)
	s.Contains(result.Errors[0], "duplicate certificate number")

	// The first occurrence is the one that committed.
	var stored certificate.HistoricalCertificate
	s.Require().NoError(s.db.Where("certificate_number = ?", "HIST-2023-001").First(&stored).Error)
	s.Equal("Maria", stored.HolderName)
}

func (s *ImportBatchSuite) TestCrossBatchConflictIsPerRecord() {
	s.Require().NoError(s.db.Create(&certificate.HistoricalCertificate{
		HolderName:        "Old Import",
		HolderNationalID:  "12345678909",
		CourseName:        "First Aid",
		CompletionDate:    date(2020, time.January, 15),
		CertificateNumber: "HIST-OLD-001",
		IsActive:          true,
	}).Error)

	result := s.importCSV(
		"Maria,12345678909,HIST-OLD-001,First Aid,40,15/06/2023",
		"João,98765432100,HIST-NEW-001,Safety,20,15/06/2023",
	)

	// Persistence is atomic per record: the conflict is reported, the
	// sibling still commits.
	s.Equal(1, result.Imported)
	s.Require().Len(result.Errors, 1)
	s.Contains(result.Errors[0], "HIST-OLD-001")

	var count int64
	s.db.Model(&certificate.HistoricalCertificate{}).Count(&count)
	s.Equal(int64(2), count)
}

func (s *ImportBatchSuite) TestMalformedFileAbortsBeforeAnyRow() {
	data := "holder_name,course_name\nMaria,First Aid"
	_, err := ImportBatch(s.ctx, s.db, nil, "batch.csv", strings.NewReader(data), nil)
	s.Require().ErrorIs(err, ErrFormat)

	var count int64
	s.db.Model(&certificate.HistoricalCertificate{}).Count(&count)
	s.Zero(count)
}
