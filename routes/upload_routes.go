package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/skillkart/skillkart-backend/handlers"
	"github.com/skillkart/skillkart-backend/middleware"
)

func UploadRoutes(app *fiber.App) {
	upload := app.Group("/api/upload", middleware.Protected())
	upload.Get("/signature", handlers.GenerateUploadSignature)
}
