package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name     string    `gorm:"size:255;not null" json:"name"`
	Email    string    `gorm:"size:255;not null;unique" json:"email"`
	Password string    `gorm:"not null" json:"-"`
	Role     string    `gorm:"size:20;not null;default:'learner'" json:"role"`

	XP             int        `gorm:"default:0" json:"xp"`
	CurrentStreak  int        `gorm:"default:0" json:"current_streak"`
	LastStreakDate *time.Time `json:"last_streak_date"`

	Badges         []*Badge        `gorm:"many2many:user_badges;" json:"badges,omitempty"`
	ActiveRoadmaps []ActiveRoadmap `gorm:"foreignKey:UserID" json:"active_roadmaps,omitempty"`

	ProfilePictureURL *string `gorm:"size:255" json:"profile_picture_url"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DailyStreak is the wire shape for the streak pair on the user row.
type DailyStreak struct {
	CurrentStreak  int        `json:"currentStreak"`
	LastStreakDate *time.Time `json:"lastStreakDate"`
}

func (u *User) Streak() DailyStreak {
	return DailyStreak{CurrentStreak: u.CurrentStreak, LastStreakDate: u.LastStreakDate}
}

// ActiveRoadmap records that a user follows a roadmap template.
type ActiveRoadmap struct {
	ID                uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID            uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_roadmap_follow" json:"user_id"`
	RoadmapTemplateID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_roadmap_follow" json:"roadmap_id"`
	StartedAt         time.Time `json:"started_at"`
	CurrentWeek       int       `gorm:"default:1" json:"current_week"`

	RoadmapTemplate *RoadmapTemplate `gorm:"foreignKey:RoadmapTemplateID" json:"roadmap,omitempty"`
}
