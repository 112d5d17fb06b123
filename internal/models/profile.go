package models

import (
	"time"

	"github.com/google/uuid"
)

type ExtractionStatus string

const (
	ExtractionQueued     ExtractionStatus = "queued"
	ExtractionProcessing ExtractionStatus = "processing"
	ExtractionCompleted  ExtractionStatus = "completed"
	ExtractionFailed     ExtractionStatus = "failed"
)

// CandidateProfile holds the validated structured fields extracted from one
// document. Every field is optional; the sanitizer nulls values that fail
// validation, so a present field is always a plausible one. ExtractedText is
// cached on the row so a retry after an AI failure can skip the expensive
// parse/OCR step.
type CandidateProfile struct {
	ID         uuid.UUID        `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	DocumentID uuid.UUID        `gorm:"type:uuid;not null" json:"document_id"`
	Status     ExtractionStatus `gorm:"not null;default:'queued'" json:"status"`

	FirstName       *string  `gorm:"type:text" json:"first_name,omitempty"`
	LastName        *string  `gorm:"type:text" json:"last_name,omitempty"`
	Email           *string  `gorm:"type:text" json:"email,omitempty"`
	Phone           *string  `gorm:"type:text" json:"phone,omitempty"`
	YearsExperience *float64 `gorm:"type:decimal(4,1)" json:"years_experience,omitempty"`
	Skills          []string `gorm:"serializer:json;type:jsonb" json:"skills,omitempty"`
	CurrentTitle    *string  `gorm:"type:text" json:"current_title,omitempty"`
	CurrentCompany  *string  `gorm:"type:text" json:"current_company,omitempty"`
	Education       *string  `gorm:"type:text" json:"education,omitempty"`
	Summary         *string  `gorm:"type:text" json:"summary,omitempty"`

	QualityScore  *int    `gorm:"type:int" json:"quality_score,omitempty"`
	ExtractedText *string `gorm:"type:text" json:"-"`

	ErrorKind    *string `gorm:"type:text" json:"error_kind,omitempty"`
	ErrorMessage *string `gorm:"type:text" json:"error_message,omitempty"`
	Retryable    *bool   `gorm:"type:bool" json:"retryable,omitempty"`

	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`

	// Relations
	Document Document `gorm:"foreignKey:DocumentID" json:"-"`
}

func (CandidateProfile) TableName() string {
	return "candidate_profiles"
}
