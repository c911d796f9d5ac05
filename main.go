package main

import (
	"context"
	"fmt"
	"log"

	"github.com/gallerai/gallerai/auth"
	"github.com/gallerai/gallerai/config"
	"github.com/gallerai/gallerai/database"
	"github.com/gallerai/gallerai/enrichment"
	handler "github.com/gallerai/gallerai/handlers"
	"github.com/gallerai/gallerai/models"
	"github.com/gallerai/gallerai/router"
	"github.com/gallerai/gallerai/storage"
	"github.com/gallerai/gallerai/vision"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

const (
	enrichmentWorkers = 4
	enrichmentQueue   = 64
)

func main() {
	db := database.GetDB()

	// Run migrations
	err := database.MigrateModels(&models.User{}, &models.Image{}, &models.ImageMetadata{})
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	auth.SetupAuthService()

	uploader, err := storage.NewClientUploader(context.Background(), config.Config("GCS_BUCKET_NAME"))
	if err != nil {
		log.Fatalf("Failed to create storage client: %v", err)
	}

	analyzer, err := vision.NewAnalyzer(context.Background())
	if err != nil {
		log.Fatalf("Failed to create vision analyzer: %v", err)
	}

	runner := enrichment.NewRunner(database.NewMetadataStore(db), analyzer, enrichmentWorkers, enrichmentQueue)
	handler.SetupImagePipeline(uploader, runner)

	app := fiber.New(fiber.Config{
		BodyLimit: 25 * 1024 * 1024, // multi-image uploads
	})
	app.Use(cors.New(cors.Config{
		AllowOrigins:     config.ConfigOr("CORS_ORIGIN", "http://localhost:3000"),
		AllowCredentials: true,
	}))

	router.SetupRoutes(app)

	// close the database connection
	defer func() {
		runner.Stop()
		if err := database.CloseDB(); err != nil {
			fmt.Printf("Error closing the Database connection %v", err)
			log.Fatal(err)
		}
	}()

	port := config.ConfigOr("PORT", "8000")
	fmt.Println("Server is listening at the port " + port)
	log.Fatal(app.Listen(":" + port))
}
