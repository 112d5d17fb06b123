package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"recruitkit/cv-pipeline/internal/cverrors"
	"recruitkit/cv-pipeline/internal/models"
	"recruitkit/cv-pipeline/internal/repositories"
)

type ResultHandler struct {
	profileRepo repositories.ProfileRepository
	evalRepo    repositories.EvaluationRepository
}

func NewResultHandler(
	profileRepo repositories.ProfileRepository,
	evalRepo repositories.EvaluationRepository,
) *ResultHandler {
	return &ResultHandler{
		profileRepo: profileRepo,
		evalRepo:    evalRepo,
	}
}

// HandleGetProfile handles GET /profiles/:id
func (h *ResultHandler) HandleGetProfile(c *fiber.Ctx) error {
	profileID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid profile ID format",
		})
	}

	profile, err := h.profileRepo.FindByID(profileID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Candidate profile not found",
		})
	}

	response := models.ProfileResponse{
		ID:     profile.ID.String(),
		Status: string(profile.Status),
	}

	if profile.Status == models.ExtractionCompleted {
		response.Profile = profile
	}

	if profile.Status == models.ExtractionFailed {
		response.Error = errorDetail(profile.ErrorKind, profile.Retryable)
	}

	return c.JSON(response)
}

// HandleGetEvaluation handles GET /evaluations/:id
func (h *ResultHandler) HandleGetEvaluation(c *fiber.Ctx) error {
	evalID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid evaluation ID format",
		})
	}

	evaluation, err := h.evalRepo.FindByID(evalID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Evaluation not found",
		})
	}

	response := models.EvaluationResultResponse{
		ID:     evaluation.ID.String(),
		Status: string(evaluation.Status),
	}

	if evaluation.Status == models.StatusCompleted {
		response.Result = evaluation
	}

	if evaluation.Status == models.StatusFailed {
		response.Error = errorDetail(evaluation.ErrorKind, evaluation.Retryable)
	}

	return c.JSON(response)
}

// HandleListEvaluations handles GET /profiles/:id/evaluations
func (h *ResultHandler) HandleListEvaluations(c *fiber.Ctx) error {
	profileID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid profile ID format",
		})
	}

	evaluations, err := h.evalRepo.FindByProfileID(profileID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list evaluations",
		})
	}

	return c.JSON(fiber.Map{"evaluations": evaluations})
}

// errorDetail rebuilds the user-facing error shape from the stored kind.
// The friendly message and suggestions are fixed per kind, so only the kind
// and the technical message need persisting.
func errorDetail(kind *string, retryable *bool) *models.ErrorDetail {
	if kind == nil {
		return nil
	}

	cvErr := cverrors.New(cverrors.Kind(*kind), "")

	detail := &models.ErrorDetail{
		Kind:        string(cvErr.Kind),
		Message:     cvErr.UserMessage,
		Suggestions: cvErr.Suggestions,
		Retryable:   cvErr.Retryable,
	}
	if retryable != nil {
		detail.Retryable = *retryable
	}

	return detail
}
