package models

import (
	"time"

	"github.com/google/uuid"
)

type Certificate struct {
	ID                uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID            uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_roadmap_cert" json:"user_id"`
	RoadmapTemplateID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_roadmap_cert" json:"roadmap_id"`
	Title             string    `gorm:"size:255;not null" json:"title"`
	CompletionDate    time.Time `json:"completion_date"`
	CertificateURL    string    `gorm:"type:text;not null" json:"certificate_url"`
	CreatedAt         time.Time `json:"created_at"`
}
