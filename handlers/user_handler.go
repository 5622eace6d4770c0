package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/skillkart/skillkart-backend/database"
	"github.com/skillkart/skillkart-backend/models"
	"github.com/skillkart/skillkart-backend/services"
)

// GetUser returns the caller's profile with active roadmaps preloaded.
func GetUser(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID := claims["user_id"].(string)

	var user models.User
	err := database.DB.
		Preload("Badges").
		Preload("ActiveRoadmaps").
		Preload("ActiveRoadmaps.RoadmapTemplate").
		First(&user, "id = ?", userID).Error
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "User not found"})
	}

	return c.JSON(user)
}

type UpdateProfileRequest struct {
	Name              *string `json:"name"`
	ProfilePictureURL *string `json:"profile_picture_url"`
}

func UpdateProfile(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID := claims["user_id"].(string)

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "User not found"})
	}

	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Cannot parse JSON"})
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.ProfilePictureURL != nil {
		updates["profile_picture_url"] = *req.ProfilePictureURL
	}
	if len(updates) > 0 {
		if err := database.DB.Model(&user).Updates(updates).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to update profile"})
		}
	}

	return c.JSON(user)
}

type activityBucket struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// GetUserXPData returns XP, level, the structured streak and a daily
// completion histogram for the past 90 days (heatmap feed).
func GetUserXPData(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "User not found"})
	}

	cutoff := time.Now().AddDate(0, -3, 0)
	var activity []activityBucket
	err := database.DB.Model(&models.TopicCompletion{}).
		Select("to_char(topic_completions.completed_at, 'YYYY-MM-DD') AS date, count(*) AS count").
		Joins("JOIN user_roadmap_progresses ON user_roadmap_progresses.id = topic_completions.progress_id").
		Where("user_roadmap_progresses.user_id = ? AND topic_completions.is_completed = ? AND topic_completions.completed_at >= ?",
			userID, true, cutoff).
		Group("date").
		Order("date ASC").
		Scan(&activity).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to fetch user XP data"})
	}

	return c.JSON(fiber.Map{
		"xp":           user.XP,
		"level":        services.Level(user.XP),
		"streak":       user.Streak(),
		"activityData": activity,
	})
}

func GetMyBadges(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	var user models.User
	if err := database.DB.Preload("Badges").First(&user, "id = ?", userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "User not found"})
	}

	return c.JSON(user.Badges)
}

func ListMyCertificates(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	var certificates []models.Certificate
	database.DB.Where("user_id = ?", userID).Order("completion_date DESC").Find(&certificates)

	return c.JSON(certificates)
}

type LeaderboardUser struct {
	Name              string  `json:"name"`
	XP                int     `json:"xp"`
	ProfilePictureURL *string `json:"profile_picture_url"`
}

func GetLeaderboard(c *fiber.Ctx) error {
	var leaderboard []LeaderboardUser

	err := database.DB.Model(&models.User{}).
		Select("name", "xp", "profile_picture_url").
		Order("xp desc").
		Limit(10).
		Find(&leaderboard).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to retrieve leaderboard"})
	}

	return c.JSON(leaderboard)
}
