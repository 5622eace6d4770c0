package handlers

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/skillkart/skillkart-backend/database"
	"github.com/skillkart/skillkart-backend/models"
	"github.com/skillkart/skillkart-backend/services"
	"gorm.io/gorm"
)

type GenerateRoadmapRequest struct {
	Interest            string              `json:"interest" validate:"required"`
	Goals               []string            `json:"goals" validate:"required,min=1"`
	AvailableWeeklyTime *services.TimeRange `json:"availableWeeklyTime" validate:"required"`
}

type roadmapProjection struct {
	ID       uuid.UUID          `json:"_id"`
	Title    string             `json:"title"`
	Interest string             `json:"interest"`
	GoalTags []string           `json:"goalTags"`
	Modules  []moduleProjection `json:"modules"`
}

type moduleProjection struct {
	WeekNumber int               `json:"weekNumber"`
	Topics     []topicProjection `json:"topics"`
}

type topicProjection struct {
	ID            uuid.UUID              `json:"_id"`
	Title         string                 `json:"title"`
	Description   *string                `json:"description,omitempty"`
	EstimatedTime int                    `json:"estimatedTime"`
	Resources     []models.TopicResource `json:"resources"`
}

func projectRoadmap(tpl models.RoadmapTemplate) roadmapProjection {
	proj := roadmapProjection{
		ID:       tpl.ID,
		Title:    tpl.Title,
		Interest: tpl.Interest,
		GoalTags: tpl.GoalTags,
		Modules:  []moduleProjection{},
	}
	for _, module := range tpl.Modules {
		mp := moduleProjection{WeekNumber: module.WeekNumber, Topics: []topicProjection{}}
		for _, topic := range module.Topics {
			mp.Topics = append(mp.Topics, topicProjection{
				ID:            topic.ID,
				Title:         topic.Title,
				Description:   topic.Description,
				EstimatedTime: topic.EstimatedTime,
				Resources:     topic.Resources,
			})
		}
		proj.Modules = append(proj.Modules, mp)
	}
	return proj
}

// GenerateRoadmap runs the matcher. A single match is auto-followed for the
// caller; re-generating with the same result is idempotent.
func GenerateRoadmap(c *fiber.Ctx) error {
	var req GenerateRoadmapRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Interest, goals, and weekly time are required."})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Interest, goals, and weekly time are required."})
	}
	if err := req.AvailableWeeklyTime.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	matched, err := services.GeneratePersonalizedRoadmaps(req.Interest, req.Goals, *req.AvailableWeeklyTime)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "An error occurred while generating the roadmap."})
	}

	if len(matched) == 1 {
		token := c.Locals("user").(*jwt.Token)
		claims := token.Claims.(jwt.MapClaims)
		userID, _ := uuid.Parse(claims["user_id"].(string))

		if err := services.FollowRoadmap(userID, matched[0].ID); err != nil && !errors.Is(err, services.ErrAlreadyFollowing) {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to follow roadmap"})
		}
	}

	projected := make([]roadmapProjection, 0, len(matched))
	for _, tpl := range matched {
		projected = append(projected, projectRoadmap(tpl))
	}

	return c.JSON(fiber.Map{
		"message":  "Personalized roadmap generated successfully.",
		"roadmaps": projected,
	})
}

type FollowRoadmapRequest struct {
	RoadmapID string `json:"roadmapId" validate:"required,uuid"`
}

func FollowRoadmap(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	var req FollowRoadmapRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	roadmapID, _ := uuid.Parse(req.RoadmapID)

	switch err := services.FollowRoadmap(userID, roadmapID); {
	case err == nil:
		return c.JSON(fiber.Map{"message": "Successfully followed roadmap"})
	case errors.Is(err, services.ErrRoadmapNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Roadmap not found"})
	case errors.Is(err, services.ErrAlreadyFollowing):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Already following this roadmap"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal server error"})
	}
}

func GetRoadmap(c *fiber.Ctx) error {
	roadmapID := c.Params("id")

	var roadmap models.RoadmapTemplate
	err := database.DB.
		Preload("Modules", func(db *gorm.DB) *gorm.DB { return db.Order("modules.week_number ASC") }).
		Preload("Modules.Topics").
		Preload("Modules.Topics.Resources", func(db *gorm.DB) *gorm.DB { return db.Order("topic_resources.position ASC") }).
		First(&roadmap, "id = ?", roadmapID).Error
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Roadmap not found"})
	}

	return c.JSON(roadmap)
}

// GetProgress returns the caller's completion ledger for a roadmap. A user
// who has not completed anything yet gets an empty ledger, not a 404.
func GetProgress(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	roadmapID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid roadmap id"})
	}

	var progress models.UserRoadmapProgress
	err = database.DB.Preload("Completions").
		Where("user_id = ? AND roadmap_template_id = ?", userID, roadmapID).
		First(&progress).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.JSON(fiber.Map{
			"roadmap_id":        roadmapID,
			"topic_completions": []models.TopicCompletion{},
		})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to fetch progress"})
	}

	return c.JSON(progress)
}

type MarkTopicCompleteRequest struct {
	RoadmapID string `json:"roadmapId" validate:"required,uuid"`
	TopicID   string `json:"topicId" validate:"required,uuid"`
}

func MarkTopicComplete(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	var req MarkTopicCompleteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	roadmapID, _ := uuid.Parse(req.RoadmapID)
	topicID, _ := uuid.Parse(req.TopicID)

	result, err := services.CompleteTopic(userID, roadmapID, topicID, time.Now())
	switch {
	case err == nil:
	case errors.Is(err, services.ErrRoadmapNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Roadmap not found"})
	case errors.Is(err, services.ErrTopicNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Topic not found in roadmap"})
	case errors.Is(err, services.ErrTopicAlreadyCompleted):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Topic already completed"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal server error"})
	}

	return c.JSON(fiber.Map{
		"message":     "Topic marked complete",
		"xp":          result.XP,
		"badges":      result.Badges,
		"dailyStreak": result.Streak,
	})
}

func AdminListRoadmaps(c *fiber.Ctx) error {
	var roadmaps []models.RoadmapTemplate
	err := database.DB.
		Preload("Modules", func(db *gorm.DB) *gorm.DB { return db.Order("modules.week_number ASC") }).
		Preload("Modules.Topics").
		Preload("Modules.Topics.Resources").
		Order("created_at DESC").
		Find(&roadmaps).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to list roadmaps"})
	}

	return c.JSON(roadmaps)
}

type CreateRoadmapRequest struct {
	Title          string   `json:"title" validate:"required"`
	Interest       string   `json:"interest" validate:"required"`
	GoalTags       []string `json:"goalTags" validate:"required,min=1"`
	EstimatedWeeks int      `json:"estimatedWeeks"`
	Modules        []struct {
		WeekNumber int `json:"weekNumber" validate:"required,min=1"`
		Topics     []struct {
			Title         string  `json:"title" validate:"required"`
			Description   *string `json:"description"`
			EstimatedTime int     `json:"estimatedTime"`
			Resources     []struct {
				Type  string `json:"type" validate:"required,oneof=video blog quiz"`
				Title string `json:"title" validate:"required"`
				URL   string `json:"url" validate:"required,url"`
			} `json:"resources"`
		} `json:"topics"`
	} `json:"modules" validate:"required,min=1,dive"`
}

// CreateRoadmap lets a curator author a template with its full module tree.
func CreateRoadmap(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	curatorID, _ := uuid.Parse(claims["user_id"].(string))

	var req CreateRoadmapRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	roadmap := models.RoadmapTemplate{
		Title:          req.Title,
		Interest:       req.Interest,
		GoalTags:       req.GoalTags,
		EstimatedWeeks: req.EstimatedWeeks,
		CreatedBy:      &curatorID,
	}
	for _, m := range req.Modules {
		module := models.Module{WeekNumber: m.WeekNumber}
		for _, t := range m.Topics {
			estimated := t.EstimatedTime
			if estimated < 1 {
				estimated = 1
			}
			topic := models.Topic{Title: t.Title, Description: t.Description, EstimatedTime: estimated}
			for i, r := range t.Resources {
				topic.Resources = append(topic.Resources, models.TopicResource{
					Type:     r.Type,
					Title:    r.Title,
					URL:      r.URL,
					Position: i,
				})
			}
			module.Topics = append(module.Topics, topic)
		}
		roadmap.Modules = append(roadmap.Modules, module)
	}

	if err := database.DB.Create(&roadmap).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to create roadmap"})
	}

	return c.Status(fiber.StatusCreated).JSON(roadmap)
}

type ReplaceResourcesRequest struct {
	Resources []struct {
		Type  string `json:"type" validate:"required,oneof=video blog quiz"`
		Title string `json:"title" validate:"required"`
		URL   string `json:"url" validate:"required,url"`
	} `json:"resources" validate:"required,dive"`
}

// ReplaceTopicResources swaps out a topic's resource list. The module and
// topic are addressed positionally (week order, then topic order) to match
// the curation UI.
func ReplaceTopicResources(c *fiber.Ctx) error {
	roadmapID := c.Params("id")
	moduleIndex, err := strconv.Atoi(c.Params("moduleIndex"))
	if err != nil || moduleIndex < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid module index"})
	}
	topicIndex, err := strconv.Atoi(c.Params("topicIndex"))
	if err != nil || topicIndex < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid topic index"})
	}

	var req ReplaceResourcesRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	var roadmap models.RoadmapTemplate
	err = database.DB.
		Preload("Modules", func(db *gorm.DB) *gorm.DB { return db.Order("modules.week_number ASC") }).
		Preload("Modules.Topics").
		First(&roadmap, "id = ?", roadmapID).Error
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Roadmap not found"})
	}
	if moduleIndex >= len(roadmap.Modules) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Module not found"})
	}
	module := roadmap.Modules[moduleIndex]
	if topicIndex >= len(module.Topics) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Topic not found"})
	}
	topic := module.Topics[topicIndex]

	replacement := make([]models.TopicResource, 0, len(req.Resources))
	for i, r := range req.Resources {
		replacement = append(replacement, models.TopicResource{
			TopicID:  topic.ID,
			Type:     r.Type,
			Title:    r.Title,
			URL:      r.URL,
			Position: i,
		})
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("topic_id = ?", topic.ID).Delete(&models.TopicResource{}).Error; err != nil {
			return err
		}
		if len(replacement) == 0 {
			return nil
		}
		return tx.Create(&replacement).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to replace resources"})
	}

	return c.JSON(fiber.Map{
		"message":   "Resources replaced successfully",
		"topic_id":  topic.ID,
		"resources": replacement,
	})
}
