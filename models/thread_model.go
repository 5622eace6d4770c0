package models

import (
	"time"

	"github.com/google/uuid"
)

type DiscussionThread struct {
	ID                uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	RoadmapTemplateID *uuid.UUID `gorm:"type:uuid;index" json:"roadmap_id,omitempty"`
	WeekNumber        *int       `json:"week_number,omitempty"`
	CreatedByID       uuid.UUID  `gorm:"type:uuid;not null" json:"-"`
	Question          string     `gorm:"type:text;not null" json:"question"`

	CreatedBy *User         `gorm:"foreignKey:CreatedByID" json:"created_by,omitempty"`
	Replies   []ThreadReply `gorm:"foreignKey:ThreadID" json:"replies"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ThreadReply struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ThreadID uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	UserID   uuid.UUID `gorm:"type:uuid;not null" json:"-"`
	Answer   string    `gorm:"type:text;not null" json:"answer"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
