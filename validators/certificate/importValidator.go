package certificateValidator

import (
	"path/filepath"
	"strings"

	"certhub/middleware"

	"github.com/gofiber/fiber/v2"
)

const maxSpreadsheetBytes = 10 << 20 // 10 MiB

var allowedSpreadsheetExts = map[string]bool{
	".xlsx": true,
	".xlsm": true,
	".csv":  true,
	".tsv":  true,
	".txt":  true,
}

// ImportBatch validates the bulk-upload multipart request: one spreadsheet
// under "spreadsheet", optional documents under "documents". Content is not
// inspected here; the parser owns format failures.
func ImportBatch() fiber.Handler {
	return func(c *fiber.Ctx) error {
		form, err := c.MultipartForm()
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Multipart form data is required!", nil)
		}

		sheets := form.File["spreadsheet"]
		if len(sheets) == 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Spreadsheet file is required!", nil)
		}
		sheet := sheets[0]

		ext := strings.ToLower(filepath.Ext(sheet.Filename))
		if !allowedSpreadsheetExts[ext] {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Unsupported spreadsheet format!", nil)
		}

		if sheet.Size > maxSpreadsheetBytes {
			return middleware.JsonResponse(c, fiber.StatusRequestEntityTooLarge, false, "Spreadsheet is too large!", nil)
		}

		return c.Next()
	}
}

// DownloadTemplate validates the template format query.
func DownloadTemplate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		format := strings.ToLower(strings.TrimSpace(c.Query("format", "xlsx")))
		if format != "xlsx" && format != "csv" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Format must be xlsx or csv!", nil)
		}
		c.Locals("templateFormat", format)
		return c.Next()
	}
}
