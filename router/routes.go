package router

import (
	handler "github.com/gallerai/gallerai/handlers"
	"github.com/gallerai/gallerai/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func SetupRoutes(app *fiber.App) {
	app.Get("/", handler.Hello)
	app.Get("/health", handler.HealthCheck)

	api := app.Group("/api", logger.New())

	// Auth
	auth := api.Group("/auth")
	auth.Post("/login", handler.Login)
	auth.Post("/logout", handler.Logout)

	// User
	user := api.Group("/user")
	user.Post("/", handler.CreateUser)
	user.Get("/:id", middleware.AuthMiddleware(), handler.GetUser)

	// Gallery
	gallery := api.Group("", middleware.AuthMiddleware())
	gallery.Post("/upload", handler.UploadImages)
	gallery.Get("/images", handler.GetImages)
	gallery.Get("/images/:id/original", handler.DownloadOriginal)
	gallery.Post("/search", handler.SearchImages)
	gallery.Post("/similar", handler.FindSimilarImages)
	gallery.Post("/filter-by-color", handler.FilterByColor)
}
