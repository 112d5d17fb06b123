package repositories

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"recruitkit/cv-pipeline/internal/models"
)

type EvaluationRepository interface {
	Create(eval *models.Evaluation) error
	FindByID(id uuid.UUID) (*models.Evaluation, error)
	FindByProfileID(profileID uuid.UUID) ([]models.Evaluation, error)
	UpdateStatus(id uuid.UUID, status models.EvaluationStatus) error
	UpdateResult(id uuid.UUID, result *EvaluationUpdateData) error
	UpdateError(id uuid.UUID, kind string, errorMsg string, retryable bool) error
	FindPendingJobs(limit int) ([]models.Evaluation, error)
}

type EvaluationUpdateData struct {
	OverallScore       int
	OverallFit         string
	Summary            string
	Strengths          []string
	Weaknesses         []string
	Recommendations    []string
	MatchedSkills      []string
	MissingSkills      []string
	SkillsMatchPercent float64
	ExperienceRelevant bool
	ExperienceYears    float64
	ExperienceDetail   string
	EducationRelevant  bool
	EducationDetail    string
}

type evaluationRepository struct {
	db *gorm.DB
}

func NewEvaluationRepository(db *gorm.DB) EvaluationRepository {
	return &evaluationRepository{db: db}
}

func (r *evaluationRepository) Create(eval *models.Evaluation) error {
	if err := r.db.Create(eval).Error; err != nil {
		return fmt.Errorf("failed to create evaluation: %w", err)
	}
	return nil
}

func (r *evaluationRepository) FindByID(id uuid.UUID) (*models.Evaluation, error) {
	var eval models.Evaluation
	if err := r.db.Where("id = ?", id).First(&eval).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("evaluation not found")
		}
		return nil, fmt.Errorf("failed to find evaluation: %w", err)
	}
	return &eval, nil
}

// FindByProfileID returns the full evaluation history of a profile, newest
// first. History is append-only: rows are never replaced by re-evaluation.
func (r *evaluationRepository) FindByProfileID(profileID uuid.UUID) ([]models.Evaluation, error) {
	var evals []models.Evaluation
	err := r.db.
		Where("profile_id = ?", profileID).
		Order("created_at DESC").
		Find(&evals).Error

	if err != nil {
		return nil, fmt.Errorf("failed to find evaluations: %w", err)
	}
	return evals, nil
}

func (r *evaluationRepository) UpdateStatus(id uuid.UUID, status models.EvaluationStatus) error {
	result := r.db.Model(&models.Evaluation{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update status: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("evaluation not found")
	}

	return nil
}

func (r *evaluationRepository) UpdateResult(id uuid.UUID, data *EvaluationUpdateData) error {
	eval, err := r.FindByID(id)
	if err != nil {
		return err
	}

	eval.Status = models.StatusCompleted
	eval.OverallScore = &data.OverallScore
	eval.OverallFit = &data.OverallFit
	eval.Summary = &data.Summary
	eval.Strengths = data.Strengths
	eval.Weaknesses = data.Weaknesses
	eval.Recommendations = data.Recommendations
	eval.MatchedSkills = data.MatchedSkills
	eval.MissingSkills = data.MissingSkills
	eval.SkillsMatchPercent = &data.SkillsMatchPercent
	eval.ExperienceRelevant = &data.ExperienceRelevant
	eval.ExperienceYears = &data.ExperienceYears
	eval.ExperienceDetail = &data.ExperienceDetail
	eval.EducationRelevant = &data.EducationRelevant
	eval.EducationDetail = &data.EducationDetail
	eval.ErrorKind = nil
	eval.ErrorMessage = nil
	eval.Retryable = nil
	eval.UpdatedAt = time.Now()

	if err := r.db.Save(eval).Error; err != nil {
		return fmt.Errorf("failed to update result: %w", err)
	}

	return nil
}

func (r *evaluationRepository) UpdateError(id uuid.UUID, kind string, errorMsg string, retryable bool) error {
	result := r.db.Model(&models.Evaluation{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":        models.StatusFailed,
			"error_kind":    kind,
			"error_message": errorMsg,
			"retryable":     retryable,
			"updated_at":    time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update error: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("evaluation not found")
	}

	return nil
}

func (r *evaluationRepository) FindPendingJobs(limit int) ([]models.Evaluation, error) {
	var evals []models.Evaluation
	err := r.db.
		Where("status = ?", models.StatusQueued).
		Order("created_at ASC").
		Limit(limit).
		Find(&evals).Error

	if err != nil {
		return nil, fmt.Errorf("failed to find pending evaluations: %w", err)
	}

	return evals, nil
}
