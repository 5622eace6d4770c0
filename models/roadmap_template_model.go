package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// RoadmapTemplate is a curator-authored learning path. Modules group topics
// by week; topics carry ordered resources. Topic IDs are stable and referenced
// from completion ledgers.
type RoadmapTemplate struct {
	ID             uuid.UUID                   `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Title          string                      `gorm:"size:255;not null" json:"title"`
	Interest       string                      `gorm:"size:100;not null;index" json:"interest"`
	GoalTags       datatypes.JSONSlice[string] `json:"goal_tags"`
	EstimatedWeeks int                         `gorm:"default:0" json:"estimated_weeks"`
	CreatedBy      *uuid.UUID                  `gorm:"type:uuid" json:"created_by,omitempty"`

	Modules []Module `gorm:"foreignKey:RoadmapTemplateID" json:"modules,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Module struct {
	ID                uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	RoadmapTemplateID uuid.UUID `gorm:"type:uuid;not null;index" json:"roadmap_id"`
	WeekNumber        int       `gorm:"not null" json:"week_number"`

	Topics []Topic `gorm:"foreignKey:ModuleID" json:"topics,omitempty"`
}

type Topic struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ModuleID      uuid.UUID `gorm:"type:uuid;not null;index" json:"module_id"`
	Title         string    `gorm:"size:255;not null" json:"title"`
	Description   *string   `gorm:"type:text" json:"description,omitempty"`
	EstimatedTime int       `gorm:"default:1" json:"estimated_time"` // hours

	Resources []TopicResource `gorm:"foreignKey:TopicID" json:"resources,omitempty"`
}

type TopicResource struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	TopicID  uuid.UUID `gorm:"type:uuid;not null;index" json:"topic_id"`
	Type     string    `gorm:"size:20;not null" json:"type"` // video | blog | quiz
	Title    string    `gorm:"size:255;not null" json:"title"`
	URL      string    `gorm:"type:text;not null" json:"url"`
	Position int       `gorm:"default:0" json:"position"`
}

// TotalEstimatedHours sums topic estimates across every module.
func (r *RoadmapTemplate) TotalEstimatedHours() int {
	total := 0
	for _, module := range r.Modules {
		for _, topic := range module.Topics {
			total += topic.EstimatedTime
		}
	}
	return total
}

// HasTopic reports whether the topic id belongs to any module of the template.
func (r *RoadmapTemplate) HasTopic(topicID uuid.UUID) bool {
	for _, module := range r.Modules {
		for _, topic := range module.Topics {
			if topic.ID == topicID {
				return true
			}
		}
	}
	return false
}
