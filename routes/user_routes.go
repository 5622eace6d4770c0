package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/skillkart/skillkart-backend/handlers"
	"github.com/skillkart/skillkart-backend/middleware"
)

func UserRoutes(app *fiber.App) {
	user := app.Group("/api/user")

	user.Post("/register", handlers.RegisterUser)
	user.Post("/login", handlers.LoginUser)

	user.Get("/", middleware.Protected(), handlers.GetUser)
	user.Put("/profile", middleware.Protected(), handlers.UpdateProfile)
	user.Get("/xp-data", middleware.Protected(), handlers.GetUserXPData)
	user.Get("/badges", middleware.Protected(), handlers.GetMyBadges)
	user.Get("/certificates", middleware.Protected(), handlers.ListMyCertificates)
	user.Get("/leaderboard", middleware.Protected(), handlers.GetLeaderboard)
}
