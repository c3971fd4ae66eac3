package certificateValidator

import (
	"strconv"
	"strings"

	"certhub/config"
	"certhub/middleware"
	"certhub/utils"

	"github.com/gofiber/fiber/v2"
)

// SearchParams is the validated public-search input.
type SearchParams struct {
	NationalID string
	Offset     int
	Limit      int
}

// SearchCertificates validates the public lookup query string. The national
// ID may arrive formatted or as bare digits; it must normalize to 11 digits.
func SearchCertificates() fiber.Handler {
	return func(c *fiber.Ctx) error {
		errors := make(map[string]string)

		nationalID := strings.TrimSpace(c.Query("national_id"))
		if nationalID == "" {
			errors["national_id"] = "National ID is required!"
		} else if !utils.ValidNationalID(nationalID) {
			errors["national_id"] = "National ID must contain exactly 11 digits!"
		}

		offset := 0
		if raw := strings.TrimSpace(c.Query("offset")); raw != "" {
			value, err := strconv.Atoi(raw)
			if err != nil || value < 0 {
				errors["offset"] = "Offset must be a non-negative number!"
			} else {
				offset = value
			}
		}

		limit := 10
		if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
			value, err := strconv.Atoi(raw)
			if err != nil || value < 1 {
				errors["limit"] = "Limit must be a positive number!"
			} else if value > config.AppConfig.SearchPageCap {
				errors["limit"] = "Limit is too large!"
			} else {
				limit = value
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedSearch", &SearchParams{
			NationalID: nationalID,
			Offset:     offset,
			Limit:      limit,
		})
		return c.Next()
	}
}
