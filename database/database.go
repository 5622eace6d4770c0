package database

import (
	"fmt"
	"log"

	config "github.com/skillkart/skillkart-backend/configs"
	"github.com/skillkart/skillkart-backend/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDB() {
	var err error
	dsn := config.Config("DATABASE_URL")

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		PrepareStmt:                              false,
		SkipDefaultTransaction:                   true,
		DisableForeignKeyConstraintWhenMigrating: true,
		DisableNestedTransaction:                 true,
	})
	if err != nil {
		log.Fatalf("🔥 Failed to connect to database: %v", err)
	}

	fmt.Println("✅ Database connected successfully")
}

func Migrate() {
	err := DB.AutoMigrate(
		&models.User{},
		&models.Badge{},
		&models.RoadmapTemplate{},
		&models.Module{},
		&models.Topic{},
		&models.TopicResource{},
		&models.ActiveRoadmap{},
		&models.UserRoadmapProgress{},
		&models.TopicCompletion{},
		&models.DiscussionThread{},
		&models.ThreadReply{},
		&models.Certificate{},
	)
	if err != nil {
		log.Fatalf("🔥 Failed to migrate database: %v", err)
	}
	fmt.Println("✅ Database migration successful")
}

func SeedAdmin() {
	adminEmail := config.Config("ADMIN_EMAIL")
	adminPassword := config.Config("ADMIN_PASSWORD")

	var count int64
	err := DB.Model(&models.User{}).Where("email = ?", adminEmail).Count(&count).Error
	if err != nil {
		log.Fatalf("🔥 Failed to check for admin user: %v", err)
		return
	}

	if count > 0 {
		log.Println("Admin user already exists.")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("🔥 Failed to hash admin password: %v", err)
		return
	}

	adminUser := models.User{
		Name:     config.Config("ADMIN_NAME"),
		Email:    adminEmail,
		Password: string(hashedPassword),
		Role:     "admin",
	}

	if err := DB.Create(&adminUser).Error; err != nil {
		log.Fatalf("🔥 Failed to seed admin user: %v", err)
		return
	}

	log.Println("✅ Admin user seeded successfully")
}

// SeedBadges inserts the badge catalog. Grant conditions live in the
// gamification service; this is just the display metadata.
func SeedBadges() {
	badges := []models.Badge{
		{Name: "Trailblazer", Description: "Started your first roadmap", IconURL: "/badges/trailblazer.svg"},
		{Name: "Week One Warrior", Description: "Completed every topic of week one", IconURL: "/badges/week-one-warrior.svg"},
		{Name: "Mastermind", Description: "Completed a full roadmap", IconURL: "/badges/mastermind.svg"},
		{Name: "Knowledge Ninja", Description: "Completed 10 topics", IconURL: "/badges/knowledge-ninja.svg"},
		{Name: "Skill Samurai", Description: "Reached 500 XP", IconURL: "/badges/skill-samurai.svg"},
		{Name: "Discussion Dynamo", Description: "Posted 5 times in the forums", IconURL: "/badges/discussion-dynamo.svg"},
		{Name: "Badge Collector", Description: "Earned 5 badges", IconURL: "/badges/badge-collector.svg"},
	}

	for _, badge := range badges {
		var count int64
		if err := DB.Model(&models.Badge{}).Where("name = ?", badge.Name).Count(&count).Error; err != nil {
			log.Fatalf("🔥 Failed to check for badge %q: %v", badge.Name, err)
			return
		}
		if count > 0 {
			continue
		}
		if err := DB.Create(&badge).Error; err != nil {
			log.Fatalf("🔥 Failed to seed badge %q: %v", badge.Name, err)
			return
		}
	}

	log.Println("✅ Badge catalog seeded successfully")
}
