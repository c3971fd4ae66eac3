package controllers

import (
	"errors"
	"path/filepath"
	"strings"

	"certhub/database"
	"certhub/importer"
	"certhub/middleware"

	"github.com/gofiber/fiber/v2"
)

// ImportCertificates runs a bulk spreadsheet import. The multipart form
// carries the spreadsheet under "spreadsheet" and any certificate documents
// under "documents"; a document's filename stem is the certificate number it
// belongs to (that mapping is assembled by the operator preview screen).
func ImportCertificates(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Multipart form data is required!", nil)
	}

	sheets := form.File["spreadsheet"]
	if len(sheets) == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Spreadsheet file is required!", nil)
	}
	sheet := sheets[0]

	src, err := sheet.Open()
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Could not read spreadsheet!", nil)
	}
	defer src.Close()

	docs := make(map[string]importer.DocumentBlob)
	for _, fh := range form.File["documents"] {
		name := filepath.Base(fh.Filename)
		certNumber := strings.TrimSpace(strings.TrimSuffix(name, filepath.Ext(name)))
		if certNumber == "" {
			continue
		}
		docs[certNumber] = importer.BlobFromFileHeader(fh)
	}

	result, err := importer.ImportBatch(c.UserContext(), database.Database.Db, docStore, sheet.Filename, src, docs)
	if err != nil {
		if errors.Is(err, importer.ErrFormat) {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, err.Error(), nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Import failed!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Import finished!", result)
}

// DownloadTemplate serves the import template so operators start from the
// exact expected shape.
func DownloadTemplate(c *fiber.Ctx) error {
	format, _ := c.Locals("templateFormat").(string)

	if format == "csv" {
		data, err := importer.TemplateCSV()
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to build template!", nil)
		}
		c.Set(fiber.HeaderContentType, "text/csv")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="certificate_import_template.csv"`)
		return c.Send(data)
	}

	data, err := importer.TemplateXLSX()
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to build template!", nil)
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="certificate_import_template.xlsx"`)
	return c.Send(data)
}
