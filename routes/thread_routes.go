package routes

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/skillkart/skillkart-backend/handlers"
	"github.com/skillkart/skillkart-backend/middleware"
)

func ThreadRoutes(app *fiber.App) {
	thread := app.Group("/api/thread")

	thread.Get("/", handlers.GetAllThreads)
	thread.Get("/roadmap/:roadmapId", handlers.GetThreadsByRoadmap)

	thread.Post("/", middleware.Protected(), handlers.CreateThread)
	thread.Post("/:threadId/reply", middleware.Protected(), handlers.AddReply)
	thread.Delete("/:threadId", middleware.Protected(), handlers.DeleteThread)
	thread.Delete("/:threadId/reply/:replyId", middleware.Protected(), handlers.DeleteReply)

	thread.Get("/:threadId", handlers.GetThreadByID)

	app.Use("/ws", func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		return c.Next()
	})
	app.Get("/ws", websocket.New(handlers.ServeWs))
}
