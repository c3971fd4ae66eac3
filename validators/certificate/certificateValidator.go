package certificateValidator

import (
	"strconv"
	"strings"
	"time"

	"certhub/importer"
	"certhub/middleware"
	"certhub/models/certificate"
	"certhub/utils"

	"github.com/gofiber/fiber/v2"
)

// CertificateForm is the validated single-record create/update payload. The
// admin forms submit multipart data so a replacement document can ride
// along; all fields arrive as form values.
type CertificateForm struct {
	HolderName        string
	NationalID        string // digits only
	CourseName        string
	CertificateNumber string
	CompletionDate    time.Time
	WorkloadHours     *int
	PeriodStart       *time.Time
	PeriodEnd         *time.Time
	IsActive          bool
}

// storeParam checks the :store route segment.
func storeParam(c *fiber.Ctx) (string, bool) {
	store := strings.ToLower(strings.TrimSpace(c.Params("store")))
	return store, store == certificate.SourceLegacy || store == certificate.SourceHistorical
}

// CreateCertificate validates the single-record creation form.
func CreateCertificate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		store, ok := storeParam(c)
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Unknown certificate store!", nil)
		}
		c.Locals("certificateStore", store)

		form, errors := parseCertificateForm(c)
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCertificate", form)
		return c.Next()
	}
}

// UpdateCertificate validates the edit form plus the :id segment.
func UpdateCertificate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		store, ok := storeParam(c)
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Unknown certificate store!", nil)
		}
		c.Locals("certificateStore", store)

		id, err := strconv.Atoi(strings.TrimSpace(c.Params("id")))
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid certificate ID!", nil)
		}
		c.Locals("certificateID", id)

		form, errors := parseCertificateForm(c)
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCertificate", form)
		return c.Next()
	}
}

// CertificateID validates routes that only carry the :store/:id pair.
func CertificateID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		store, ok := storeParam(c)
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Unknown certificate store!", nil)
		}
		c.Locals("certificateStore", store)

		id, err := strconv.Atoi(strings.TrimSpace(c.Params("id")))
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid certificate ID!", nil)
		}
		c.Locals("certificateID", id)
		return c.Next()
	}
}

// ListCertificates validates the admin listing query.
func ListCertificates() fiber.Handler {
	return func(c *fiber.Ctx) error {
		store, ok := storeParam(c)
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Unknown certificate store!", nil)
		}
		c.Locals("certificateStore", store)

		reqData := new(struct {
			Offset int
			Limit  int
		})
		reqData.Limit = 20

		errors := make(map[string]string)
		if raw := strings.TrimSpace(c.Query("offset")); raw != "" {
			value, err := strconv.Atoi(raw)
			if err != nil || value < 0 {
				errors["offset"] = "Offset must be a non-negative number!"
			} else {
				reqData.Offset = value
			}
		}
		if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
			value, err := strconv.Atoi(raw)
			if err != nil || value < 1 || value > 100 {
				errors["limit"] = "Limit must be between 1 and 100!"
			} else {
				reqData.Limit = value
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedList", reqData)
		return c.Next()
	}
}

func parseCertificateForm(c *fiber.Ctx) (*CertificateForm, map[string]string) {
	errors := make(map[string]string)
	form := &CertificateForm{IsActive: true}

	form.HolderName = strings.TrimSpace(c.FormValue("holder_name"))
	if form.HolderName == "" {
		errors["holder_name"] = "Holder name is required!"
	}

	rawID := strings.TrimSpace(c.FormValue("national_id"))
	if rawID == "" {
		errors["national_id"] = "National ID is required!"
	} else if !utils.ValidNationalID(rawID) {
		errors["national_id"] = "National ID must contain exactly 11 digits!"
	} else {
		form.NationalID = utils.NormalizeNationalID(rawID)
	}

	form.CourseName = strings.TrimSpace(c.FormValue("course_name"))
	if form.CourseName == "" {
		errors["course_name"] = "Course name is required!"
	}

	form.CertificateNumber = strings.TrimSpace(c.FormValue("certificate_number"))
	if form.CertificateNumber == "" {
		errors["certificate_number"] = "Certificate number is required!"
	}

	rawDate := strings.TrimSpace(c.FormValue("completion_date"))
	if rawDate == "" {
		errors["completion_date"] = "Completion date is required!"
	} else if date, err := importer.ResolveCompletionDate(rawDate); err != nil {
		errors["completion_date"] = "Completion date is not a valid date!"
	} else {
		form.CompletionDate = date
	}

	if raw := strings.TrimSpace(c.FormValue("workload_hours")); raw != "" {
		hours, err := strconv.Atoi(raw)
		if err != nil || hours <= 0 {
			errors["workload_hours"] = "Workload hours must be a positive number!"
		} else {
			form.WorkloadHours = &hours
		}
	}

	form.PeriodStart = parseOptionalDate(c.FormValue("period_start"), "period_start", errors)
	form.PeriodEnd = parseOptionalDate(c.FormValue("period_end"), "period_end", errors)
	if form.PeriodStart != nil && form.PeriodEnd != nil && form.PeriodEnd.Before(*form.PeriodStart) {
		errors["period_end"] = "Period end must not precede period start!"
	}

	if raw := strings.TrimSpace(c.FormValue("is_active")); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			errors["is_active"] = "Active flag must be true or false!"
		} else {
			form.IsActive = active
		}
	}

	return form, errors
}

func parseOptionalDate(raw, field string, errors map[string]string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	date, err := importer.ResolveCompletionDate(raw)
	if err != nil {
		errors[field] = "Not a valid date!"
		return nil
	}
	return &date
}
