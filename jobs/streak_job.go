package jobs

import (
	"log"
	"time"

	"github.com/skillkart/skillkart-backend/database"
	"github.com/skillkart/skillkart-backend/models"
	"github.com/skillkart/skillkart-backend/utils"
)

// SweepLapsedStreaks zeroes the streak of every user whose last activity is
// older than yesterday. A later completion restarts the streak at 1, so this
// only changes what a lapsed streak reads as in the meantime.
func SweepLapsedStreaks() {
	log.Println("Running job: SweepLapsedStreaks...")

	yesterday := utils.StartOfDay(time.Now()).AddDate(0, 0, -1)

	result := database.DB.Model(&models.User{}).
		Where("current_streak > 0 AND last_streak_date < ?", yesterday).
		Update("current_streak", 0)
	if result.Error != nil {
		log.Printf("Error sweeping lapsed streaks: %v", result.Error)
		return
	}

	if result.RowsAffected > 0 {
		log.Printf("Reset %d lapsed streak(s).", result.RowsAffected)
	}
}
