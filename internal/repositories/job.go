package repositories

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"recruitkit/cv-pipeline/internal/models"
)

type JobRepository interface {
	Create(job *models.JobDescription) error
	FindByID(id uuid.UUID) (*models.JobDescription, error)
	List(limit int) ([]models.JobDescription, error)
}

type jobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) JobRepository {
	return &jobRepository{db: db}
}

func (r *jobRepository) Create(job *models.JobDescription) error {
	if err := r.db.Create(job).Error; err != nil {
		return fmt.Errorf("failed to create job description: %w", err)
	}
	return nil
}

func (r *jobRepository) FindByID(id uuid.UUID) (*models.JobDescription, error) {
	var job models.JobDescription
	if err := r.db.Where("id = ?", id).First(&job).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("job description not found")
		}
		return nil, fmt.Errorf("failed to find job description: %w", err)
	}
	return &job, nil
}

func (r *jobRepository) List(limit int) ([]models.JobDescription, error) {
	var jobs []models.JobDescription
	if err := r.db.Order("created_at DESC").Limit(limit).Find(&jobs).Error; err != nil {
		return nil, fmt.Errorf("failed to list job descriptions: %w", err)
	}
	return jobs, nil
}
