package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"recruitkit/cv-pipeline/internal/models"
	"recruitkit/cv-pipeline/internal/repositories"
	"recruitkit/cv-pipeline/internal/services"
)

type EvaluateHandler struct {
	evalRepo    repositories.EvaluationRepository
	profileRepo repositories.ProfileRepository
	jobRepo     repositories.JobRepository
	worker      services.Worker
}

func NewEvaluateHandler(
	evalRepo repositories.EvaluationRepository,
	profileRepo repositories.ProfileRepository,
	jobRepo repositories.JobRepository,
	worker services.Worker,
) *EvaluateHandler {
	return &EvaluateHandler{
		evalRepo:    evalRepo,
		profileRepo: profileRepo,
		jobRepo:     jobRepo,
		worker:      worker,
	}
}

// HandleEvaluate handles POST /evaluations
func (h *EvaluateHandler) HandleEvaluate(c *fiber.Ctx) error {
	var req models.EvaluateRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if req.ProfileID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "profile_id is required",
		})
	}

	if req.JobID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "job_id is required",
		})
	}

	profileID, err := uuid.Parse(req.ProfileID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid profile_id format",
		})
	}

	jobID, err := uuid.Parse(req.JobID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid job_id format",
		})
	}

	profile, err := h.profileRepo.FindByID(profileID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Candidate profile not found",
		})
	}

	// Only completed extractions carry a profile worth evaluating.
	if profile.Status != models.ExtractionCompleted {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Candidate profile extraction is not completed yet",
		})
	}

	if _, err := h.jobRepo.FindByID(jobID); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Job description not found",
		})
	}

	evaluation := &models.Evaluation{
		ID:        uuid.New(),
		ProfileID: profileID,
		JobID:     jobID,
		Status:    models.StatusQueued,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := h.evalRepo.Create(evaluation); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create evaluation job",
		})
	}

	h.worker.EnqueueEvaluation(evaluation.ID)

	return c.Status(fiber.StatusAccepted).JSON(models.EvaluateResponse{
		ID:     evaluation.ID.String(),
		Status: string(models.StatusQueued),
	})
}
