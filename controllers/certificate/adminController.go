package controllers

import (
	"strings"

	"certhub/database"
	"certhub/importer"
	"certhub/middleware"
	"certhub/models/certificate"
	"certhub/utils"
	validators "certhub/validators/certificate"

	"github.com/gofiber/fiber/v2"
)

// CreateCertificate is the single-record creation form behind the admin
// screens, for both manually maintained stores. An optional "document" file
// is uploaded and attached in the same request.
func CreateCertificate(c *fiber.Ctx) error {
	store, _ := c.Locals("certificateStore").(string)
	form, ok := c.Locals("validatedCertificate").(*validators.CertificateForm)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	documentURL := uploadFormDocument(c, form.CertificateNumber)

	var created interface{}
	var err error
	if store == certificate.SourceLegacy {
		record := certificate.LegacyCertificate{
			HolderName:        form.HolderName,
			HolderNationalID:  utils.FormatNationalID(form.NationalID),
			CourseName:        form.CourseName,
			CompletionDate:    form.CompletionDate,
			WorkloadHours:     form.WorkloadHours,
			CertificateNumber: form.CertificateNumber,
			DocumentURL:       documentURL,
			PeriodStart:       form.PeriodStart,
			PeriodEnd:         form.PeriodEnd,
			IsActive:          form.IsActive,
		}
		err = database.Database.Db.Create(&record).Error
		created = record
	} else {
		record := certificate.HistoricalCertificate{
			HolderName:        form.HolderName,
			HolderNationalID:  form.NationalID,
			CourseName:        form.CourseName,
			CompletionDate:    form.CompletionDate,
			WorkloadHours:     form.WorkloadHours,
			CertificateNumber: form.CertificateNumber,
			DocumentURL:       documentURL,
			PeriodStart:       form.PeriodStart,
			PeriodEnd:         form.PeriodEnd,
			IsActive:          form.IsActive,
		}
		err = database.Database.Db.Create(&record).Error
		created = record
	}

	if err != nil {
		if isUniqueViolation(err) {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Certificate number already exists!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create certificate!", nil)
	}

	invalidateSearchCache(form.NationalID)
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Certificate created successfully!", created)
}

// UpdateCertificate is the edit form. It may replace the document
// reference; the previous file is left for the cleanup job, the reference
// is simply overwritten.
func UpdateCertificate(c *fiber.Ctx) error {
	store, _ := c.Locals("certificateStore").(string)
	id := c.Locals("certificateID").(int)
	form, ok := c.Locals("validatedCertificate").(*validators.CertificateForm)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	documentURL := uploadFormDocument(c, form.CertificateNumber)

	if store == certificate.SourceLegacy {
		var record certificate.LegacyCertificate
		if err := database.Database.Db.Where("id = ?", id).First(&record).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Certificate not found!", nil)
		}

		invalidateSearchCache(utils.NormalizeNationalID(record.HolderNationalID))

		record.HolderName = form.HolderName
		record.HolderNationalID = utils.FormatNationalID(form.NationalID)
		record.CourseName = form.CourseName
		record.CompletionDate = form.CompletionDate
		record.WorkloadHours = form.WorkloadHours
		record.CertificateNumber = form.CertificateNumber
		record.PeriodStart = form.PeriodStart
		record.PeriodEnd = form.PeriodEnd
		record.IsActive = form.IsActive
		if documentURL != nil {
			record.DocumentURL = documentURL
		}

		if err := database.Database.Db.Save(&record).Error; err != nil {
			if isUniqueViolation(err) {
				return middleware.JsonResponse(c, fiber.StatusConflict, false, "Certificate number already exists!", nil)
			}
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update certificate!", nil)
		}

		invalidateSearchCache(form.NationalID)
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate updated successfully!", record)
	}

	var record certificate.HistoricalCertificate
	if err := database.Database.Db.Where("id = ?", id).First(&record).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Certificate not found!", nil)
	}

	invalidateSearchCache(record.HolderNationalID)

	record.HolderName = form.HolderName
	record.HolderNationalID = form.NationalID
	record.CourseName = form.CourseName
	record.CompletionDate = form.CompletionDate
	record.WorkloadHours = form.WorkloadHours
	record.CertificateNumber = form.CertificateNumber
	record.PeriodStart = form.PeriodStart
	record.PeriodEnd = form.PeriodEnd
	record.IsActive = form.IsActive
	if documentURL != nil {
		record.DocumentURL = documentURL
	}

	if err := database.Database.Db.Save(&record).Error; err != nil {
		if isUniqueViolation(err) {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Certificate number already exists!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update certificate!", nil)
	}

	invalidateSearchCache(form.NationalID)
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate updated successfully!", record)
}

// GetCertificate fetches one record for the edit screen.
func GetCertificate(c *fiber.Ctx) error {
	store, _ := c.Locals("certificateStore").(string)
	id := c.Locals("certificateID").(int)

	if store == certificate.SourceLegacy {
		var record certificate.LegacyCertificate
		if err := database.Database.Db.Where("id = ?", id).First(&record).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Certificate not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate fetched successfully!", record)
	}

	var record certificate.HistoricalCertificate
	if err := database.Database.Db.Where("id = ?", id).First(&record).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Certificate not found!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate fetched successfully!", record)
}

// ListCertificates pages through one store for the admin table view.
func ListCertificates(c *fiber.Ctx) error {
	store, _ := c.Locals("certificateStore").(string)
	reqData, ok := c.Locals("validatedList").(*struct {
		Offset int
		Limit  int
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if store == certificate.SourceLegacy {
		var records []certificate.LegacyCertificate
		var total int64
		database.Database.Db.Model(&certificate.LegacyCertificate{}).Count(&total)
		if err := database.Database.Db.Order("id desc").
			Offset(reqData.Offset).Limit(reqData.Limit).Find(&records).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch certificates!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificates fetched successfully!", fiber.Map{
			"records": records,
			"total":   total,
		})
	}

	var records []certificate.HistoricalCertificate
	var total int64
	database.Database.Db.Model(&certificate.HistoricalCertificate{}).Count(&total)
	if err := database.Database.Db.Order("id desc").
		Offset(reqData.Offset).Limit(reqData.Limit).Find(&records).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch certificates!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificates fetched successfully!", fiber.Map{
		"records": records,
		"total":   total,
	})
}

// uploadFormDocument stores an optional "document" file from the admin form
// and returns its URL, or nil when absent or failed. A failed upload never
// fails the record; it is reported by the missing reference.
func uploadFormDocument(c *fiber.Ctx, certNumber string) *string {
	fh, err := c.FormFile("document")
	if err != nil || fh == nil {
		return nil
	}

	src, err := fh.Open()
	if err != nil {
		return nil
	}
	defer src.Close()

	url, err := docStore.Upload(c.UserContext(), importer.DocumentObjectName(certNumber, fh.Filename), src)
	if err != nil {
		return nil
	}
	return &url
}

// isUniqueViolation matches the unique-index rejection text of both
// Postgres and SQLite, the two dialects the service runs against.
func isUniqueViolation(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}
