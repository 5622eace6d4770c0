package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/skillkart/skillkart-backend/database"
	"github.com/skillkart/skillkart-backend/models"
	"github.com/skillkart/skillkart-backend/services"
	"github.com/skillkart/skillkart-backend/websocket"
	"gorm.io/gorm"
)

func threadQuery() *gorm.DB {
	return database.DB.
		Preload("CreatedBy").
		Preload("Replies", func(db *gorm.DB) *gorm.DB { return db.Order("thread_replies.created_at ASC") }).
		Preload("Replies.User")
}

func GetAllThreads(c *fiber.Ctx) error {
	var threads []models.DiscussionThread
	if err := threadQuery().Order("created_at DESC").Find(&threads).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to fetch discussion threads"})
	}
	return c.JSON(threads)
}

func GetThreadsByRoadmap(c *fiber.Ctx) error {
	roadmapID, err := uuid.Parse(c.Params("roadmapId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid roadmap id"})
	}

	var threads []models.DiscussionThread
	if err := threadQuery().
		Where("roadmap_template_id = ?", roadmapID).
		Order("created_at DESC").
		Find(&threads).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to fetch discussion threads"})
	}
	return c.JSON(threads)
}

func GetThreadByID(c *fiber.Ctx) error {
	threadID := c.Params("threadId")

	var thread models.DiscussionThread
	if err := threadQuery().First(&thread, "id = ?", threadID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Thread not found"})
	}
	return c.JSON(thread)
}

type CreateThreadRequest struct {
	RoadmapID  *string `json:"roadmapId" validate:"omitempty,uuid"`
	WeekNumber *int    `json:"weekNumber" validate:"omitempty,min=1"`
	Question   string  `json:"question" validate:"required"`
}

func CreateThread(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	var req CreateThreadRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	thread := models.DiscussionThread{
		CreatedByID: userID,
		Question:    req.Question,
		WeekNumber:  req.WeekNumber,
		Replies:     []models.ThreadReply{},
	}
	if req.RoadmapID != nil {
		roadmapID, _ := uuid.Parse(*req.RoadmapID)
		thread.RoadmapTemplateID = &roadmapID
	}

	if err := database.DB.Create(&thread).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to create discussion thread"})
	}

	go services.AwardForumActivity(userID)

	var created models.DiscussionThread
	if err := threadQuery().First(&created, "id = ?", thread.ID).Error; err != nil {
		return c.Status(fiber.StatusCreated).JSON(thread)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

type AddReplyRequest struct {
	Answer string `json:"answer" validate:"required"`
}

func AddReply(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	threadID, err := uuid.Parse(c.Params("threadId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid thread id"})
	}

	var req AddReplyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	var thread models.DiscussionThread
	if err := database.DB.First(&thread, "id = ?", threadID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Thread not found"})
	}

	reply := models.ThreadReply{
		ThreadID: threadID,
		UserID:   userID,
		Answer:   req.Answer,
	}
	if err := database.DB.Create(&reply).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to add reply"})
	}

	websocket.BroadcastReply <- &reply
	go services.AwardForumActivity(userID)

	var updated models.DiscussionThread
	if err := threadQuery().First(&updated, "id = ?", threadID).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to fetch thread"})
	}
	return c.JSON(updated)
}

func DeleteThread(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID := claims["user_id"].(string)
	role := claims["role"].(string)

	threadID := c.Params("threadId")

	var thread models.DiscussionThread
	if err := database.DB.First(&thread, "id = ?", threadID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Thread not found"})
	}

	if thread.CreatedByID.String() != userID && role != "admin" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Not authorized to delete this thread"})
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("thread_id = ?", thread.ID).Delete(&models.ThreadReply{}).Error; err != nil {
			return err
		}
		return tx.Delete(&thread).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to delete thread"})
	}

	return c.JSON(fiber.Map{"message": "Thread deleted successfully"})
}

func DeleteReply(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID := claims["user_id"].(string)
	role := claims["role"].(string)

	threadID := c.Params("threadId")
	replyID := c.Params("replyId")

	var thread models.DiscussionThread
	if err := database.DB.First(&thread, "id = ?", threadID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Thread not found"})
	}

	var reply models.ThreadReply
	if err := database.DB.First(&reply, "id = ? AND thread_id = ?", replyID, thread.ID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Reply not found"})
	}

	if reply.UserID.String() != userID && role != "admin" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Not authorized to delete this reply"})
	}

	if err := database.DB.Delete(&reply).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to delete reply"})
	}

	var updated models.DiscussionThread
	if err := threadQuery().First(&updated, "id = ?", threadID).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to fetch thread"})
	}
	return c.JSON(updated)
}
