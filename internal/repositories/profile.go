package repositories

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"recruitkit/cv-pipeline/internal/models"
)

type ProfileRepository interface {
	Create(profile *models.CandidateProfile) error
	FindByID(id uuid.UUID) (*models.CandidateProfile, error)
	UpdateStatus(id uuid.UUID, status models.ExtractionStatus) error
	CacheExtractedText(id uuid.UUID, text string) error
	SaveResult(profile *models.CandidateProfile) error
	UpdateError(id uuid.UUID, kind string, errorMsg string, retryable bool) error
	FindPendingJobs(limit int) ([]models.CandidateProfile, error)
}

type profileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Create(profile *models.CandidateProfile) error {
	if err := r.db.Create(profile).Error; err != nil {
		return fmt.Errorf("failed to create profile: %w", err)
	}
	return nil
}

func (r *profileRepository) FindByID(id uuid.UUID) (*models.CandidateProfile, error) {
	var profile models.CandidateProfile
	if err := r.db.Where("id = ?", id).First(&profile).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("profile not found")
		}
		return nil, fmt.Errorf("failed to find profile: %w", err)
	}
	return &profile, nil
}

func (r *profileRepository) UpdateStatus(id uuid.UUID, status models.ExtractionStatus) error {
	result := r.db.Model(&models.CandidateProfile{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update status: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("profile not found")
	}

	return nil
}

// CacheExtractedText persists the raw extracted text as soon as it exists,
// so a retry after a downstream AI failure reuses it instead of re-running
// the parse/OCR step.
func (r *profileRepository) CacheExtractedText(id uuid.UUID, text string) error {
	result := r.db.Model(&models.CandidateProfile{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"extracted_text": text,
			"updated_at":     time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to cache extracted text: %w", result.Error)
	}

	return nil
}

// SaveResult writes the validated fields, quality score and completed status
// in one update.
func (r *profileRepository) SaveResult(profile *models.CandidateProfile) error {
	profile.Status = models.ExtractionCompleted
	profile.ErrorKind = nil
	profile.ErrorMessage = nil
	profile.Retryable = nil
	profile.UpdatedAt = time.Now()

	if err := r.db.Save(profile).Error; err != nil {
		return fmt.Errorf("failed to save profile result: %w", err)
	}

	return nil
}

func (r *profileRepository) UpdateError(id uuid.UUID, kind string, errorMsg string, retryable bool) error {
	result := r.db.Model(&models.CandidateProfile{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":        models.ExtractionFailed,
			"error_kind":    kind,
			"error_message": errorMsg,
			"retryable":     retryable,
			"updated_at":    time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update error: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("profile not found")
	}

	return nil
}

func (r *profileRepository) FindPendingJobs(limit int) ([]models.CandidateProfile, error) {
	var profiles []models.CandidateProfile
	err := r.db.
		Where("status = ?", models.ExtractionQueued).
		Order("created_at ASC").
		Limit(limit).
		Find(&profiles).Error

	if err != nil {
		return nil, fmt.Errorf("failed to find pending extractions: %w", err)
	}

	return profiles, nil
}
