package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/skillkart/skillkart-backend/handlers"
	"github.com/skillkart/skillkart-backend/middleware"
)

func BadgeRoutes(app *fiber.App) {
	badge := app.Group("/api/badge")

	badge.Get("/", handlers.ListBadges)

	admin := badge.Group("/admin", middleware.Protected(), middleware.AdminRequired())
	admin.Post("/", handlers.CreateBadge)
	admin.Put("/:badgeId", handlers.UpdateBadge)
	admin.Delete("/:badgeId", handlers.DeleteBadge)
}
