package models

import (
	"time"

	"github.com/google/uuid"
)

// UserRoadmapProgress is the per-(user, roadmap) completion ledger.
type UserRoadmapProgress struct {
	ID                uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID            uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_roadmap_progress" json:"user_id"`
	RoadmapTemplateID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_roadmap_progress" json:"roadmap_id"`

	Completions []TopicCompletion `gorm:"foreignKey:ProgressID" json:"topic_completions,omitempty"`

	UpdatedAt time.Time `json:"updated_at"`
}

// TopicCompletion appears at most once per (ledger, topic). The unique index
// is what makes the duplicate-completion guard race-free.
type TopicCompletion struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ProgressID  uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_progress_topic" json:"-"`
	TopicID     uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_progress_topic" json:"topic_id"`
	IsCompleted bool       `gorm:"default:false" json:"is_completed"`
	CompletedAt *time.Time `json:"completed_at"`
}
