package main

import (
	"certhub/config"
	controllers "certhub/controllers/certificate"
	"certhub/database"
	certificateRoutes "certhub/routers/certificateRoutes"
	"certhub/utils"

	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()
	controllers.InitCertificateControllers()

	app := fiber.New(fiber.Config{
		BodyLimit: 25 * 1024 * 1024, // spreadsheet plus attached documents
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",        // Allowed HTTP methods
		AllowHeaders: "Content-Type,Authorization", // Allowed headers
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Serve uploaded certificate documents
	app.Static(config.AppConfig.UploadBaseURL, config.AppConfig.UploadDir)

	certificateRoutes.SetupCertificateRoutes(app)
	certificateRoutes.SetupAdminCertificateRoutes(app)

	// Nightly sweep of documents no record references anymore
	cleanup := utils.StartCleanupScheduler(database.Database.Db)
	defer cleanup.Stop()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
