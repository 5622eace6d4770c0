package jobs

import (
	"fmt"
	"log"
	"time"

	"github.com/skillkart/skillkart-backend/database"
	"github.com/skillkart/skillkart-backend/models"
	"github.com/skillkart/skillkart-backend/notifications"
)

// SendWeeklyDigests emails every learner with at least one active roadmap a
// summary of their week: completions, XP and current streak.
func SendWeeklyDigests() {
	log.Println("Running job: SendWeeklyDigests...")

	var users []models.User
	err := database.DB.
		Joins("JOIN active_roadmaps ON active_roadmaps.user_id = users.id").
		Distinct("users.*").
		Find(&users).Error
	if err != nil {
		log.Printf("Error fetching users for weekly digest: %v", err)
		return
	}

	weekAgo := time.Now().AddDate(0, 0, -7)

	for _, user := range users {
		var completions int64
		err := database.DB.Model(&models.TopicCompletion{}).
			Joins("JOIN user_roadmap_progresses ON user_roadmap_progresses.id = topic_completions.progress_id").
			Where("user_roadmap_progresses.user_id = ? AND topic_completions.is_completed = ? AND topic_completions.completed_at >= ?",
				user.ID, true, weekAgo).
			Count(&completions).Error
		if err != nil {
			log.Printf("Error counting weekly completions for user %s: %v", user.ID, err)
			continue
		}

		subject := "Your SkillKart week in review"
		body := fmt.Sprintf(
			"<h1>Keep it up, %s!</h1><p>This week you completed <b>%d</b> topic(s).</p><p>Total XP: <b>%d</b> &middot; Current streak: <b>%d</b> day(s)</p>",
			user.Name, completions, user.XP, user.CurrentStreak,
		)

		go notifications.SendEmail(user.Name, user.Email, subject, body)
	}
}
