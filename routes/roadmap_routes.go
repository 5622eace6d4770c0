package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/skillkart/skillkart-backend/handlers"
	"github.com/skillkart/skillkart-backend/middleware"
)

func RoadmapRoutes(app *fiber.App) {
	roadmap := app.Group("/api/roadmap")

	roadmap.Post("/generate", middleware.Protected(), handlers.GenerateRoadmap)
	roadmap.Post("/follow", middleware.Protected(), handlers.FollowRoadmap)
	roadmap.Post("/marktopic/complete", middleware.Protected(), handlers.MarkTopicComplete)
	roadmap.Get("/progress/:id", middleware.Protected(), handlers.GetProgress)

	admin := roadmap.Group("/admin", middleware.Protected(), middleware.AdminRequired())
	admin.Get("/all", handlers.AdminListRoadmaps)
	admin.Post("/", handlers.CreateRoadmap)

	roadmap.Put("/:id/module/:moduleIndex/topic/:topicIndex/resources",
		middleware.Protected(), middleware.AdminRequired(), handlers.ReplaceTopicResources)

	// Registered last so "admin" and "progress" are not swallowed by the param route.
	roadmap.Get("/:id", middleware.Protected(), handlers.GetRoadmap)
}
