package certificateRoutes

import (
	controllers "certhub/controllers/certificate"
	"certhub/middleware"
	validators "certhub/validators/certificate"

	"github.com/gofiber/fiber/v2"
)

// SetupCertificateRoutes sets up the public verification routes
func SetupCertificateRoutes(app *fiber.App) {
	publicGroup := app.Group("/certificates")

	publicGroup.Get("/search", validators.SearchCertificates(), controllers.SearchCertificates)
}

// SetupAdminCertificateRoutes sets up the operator-facing routes. Token
// issuance is handled by the platform's identity service; only validation
// happens here.
func SetupAdminCertificateRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin/certificates")

	// Bulk import
	adminGroup.Post("/import", middleware.JWTMiddleware, validators.ImportBatch(), controllers.ImportCertificates)
	adminGroup.Get("/template", middleware.JWTMiddleware, validators.DownloadTemplate(), controllers.DownloadTemplate)

	// Single-record maintenance, per store (legacy | historical)
	adminGroup.Post("/:store", middleware.JWTMiddleware, validators.CreateCertificate(), controllers.CreateCertificate)
	adminGroup.Get("/:store", middleware.JWTMiddleware, validators.ListCertificates(), controllers.ListCertificates)
	adminGroup.Get("/:store/:id", middleware.JWTMiddleware, validators.CertificateID(), controllers.GetCertificate)
	adminGroup.Put("/:store/:id", middleware.JWTMiddleware, validators.UpdateCertificate(), controllers.UpdateCertificate)
}
