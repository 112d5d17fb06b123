package models

import (
	"time"

	"github.com/google/uuid"
)

// JobDescription is the target a candidate profile is evaluated against.
type JobDescription struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Title            string    `gorm:"type:text;not null" json:"title"`
	Description      string    `gorm:"type:text" json:"description"`
	Responsibilities string    `gorm:"type:text" json:"responsibilities"`
	Requirements     string    `gorm:"type:text" json:"requirements"`
	RequiredSkills   []string  `gorm:"serializer:json;type:jsonb" json:"required_skills"`
	CreatedAt        time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt        time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (JobDescription) TableName() string {
	return "job_descriptions"
}
