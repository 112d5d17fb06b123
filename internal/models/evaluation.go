package models

import (
	"time"

	"github.com/google/uuid"
)

type EvaluationStatus string

const (
	StatusQueued     EvaluationStatus = "queued"
	StatusProcessing EvaluationStatus = "processing"
	StatusCompleted  EvaluationStatus = "completed"
	StatusFailed     EvaluationStatus = "failed"
)

// Evaluation is one fit assessment of a candidate profile against a job
// description. Evaluations are append-only history: re-evaluating the same
// pair creates a new row, it never overwrites a prior one.
type Evaluation struct {
	ID        uuid.UUID        `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ProfileID uuid.UUID        `gorm:"type:uuid;not null" json:"profile_id"`
	JobID     uuid.UUID        `gorm:"type:uuid;not null" json:"job_id"`
	Status    EvaluationStatus `gorm:"not null;default:'queued'" json:"status"`

	OverallScore    *int     `gorm:"type:int" json:"overall_score,omitempty"`
	OverallFit      *string  `gorm:"type:text" json:"overall_fit,omitempty"`
	Summary         *string  `gorm:"type:text" json:"summary,omitempty"`
	Strengths       []string `gorm:"serializer:json;type:jsonb" json:"strengths,omitempty"`
	Weaknesses      []string `gorm:"serializer:json;type:jsonb" json:"weaknesses,omitempty"`
	Recommendations []string `gorm:"serializer:json;type:jsonb" json:"recommendations,omitempty"`

	MatchedSkills      []string `gorm:"serializer:json;type:jsonb" json:"matched_skills,omitempty"`
	MissingSkills      []string `gorm:"serializer:json;type:jsonb" json:"missing_skills,omitempty"`
	SkillsMatchPercent *float64 `gorm:"type:decimal(5,2)" json:"skills_match_percent,omitempty"`

	ExperienceRelevant *bool    `gorm:"type:bool" json:"experience_relevant,omitempty"`
	ExperienceYears    *float64 `gorm:"type:decimal(4,1)" json:"experience_years,omitempty"`
	ExperienceDetail   *string  `gorm:"type:text" json:"experience_detail,omitempty"`
	EducationRelevant  *bool    `gorm:"type:bool" json:"education_relevant,omitempty"`
	EducationDetail    *string  `gorm:"type:text" json:"education_detail,omitempty"`

	ErrorKind    *string `gorm:"type:text" json:"error_kind,omitempty"`
	ErrorMessage *string `gorm:"type:text" json:"error_message,omitempty"`
	Retryable    *bool   `gorm:"type:bool" json:"retryable,omitempty"`

	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`

	// Relations
	Profile CandidateProfile `gorm:"foreignKey:ProfileID" json:"-"`
	Job     JobDescription   `gorm:"foreignKey:JobID" json:"-"`
}

func (Evaluation) TableName() string {
	return "evaluations"
}
