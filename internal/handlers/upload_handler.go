package handlers

import (
	"fmt"
	"mime/multipart"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"recruitkit/cv-pipeline/internal/cverrors"
	"recruitkit/cv-pipeline/internal/models"
	"recruitkit/cv-pipeline/internal/repositories"
	"recruitkit/cv-pipeline/internal/services"
)

type UploadHandler struct {
	docRepo        repositories.DocumentRepository
	profileRepo    repositories.ProfileRepository
	storageService services.StorageService
	worker         services.Worker
	maxFileSize    int64
}

func NewUploadHandler(
	docRepo repositories.DocumentRepository,
	profileRepo repositories.ProfileRepository,
	storageService services.StorageService,
	worker services.Worker,
	maxFileSize int64,
) *UploadHandler {
	return &UploadHandler{
		docRepo:        docRepo,
		profileRepo:    profileRepo,
		storageService: storageService,
		worker:         worker,
		maxFileSize:    maxFileSize,
	}
}

// HandleUpload accepts either a multipart "cv" file or a "url" form field
// pointing at a remote document. Both paths create a document record plus a
// queued profile and hand the profile to the worker.
func (h *UploadHandler) HandleUpload(c *fiber.Ctx) error {
	if file, err := c.FormFile("cv"); err == nil && file != nil {
		return h.handleFileUpload(c, file)
	}

	if location := strings.TrimSpace(c.FormValue("url")); location != "" {
		return h.handleURLUpload(c, location)
	}

	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": "No document provided. Upload a 'cv' file or pass a 'url' form field.",
	})
}

func (h *UploadHandler) handleFileUpload(c *fiber.Ctx, file *multipart.FileHeader) error {
	if file.Size > h.maxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("CV file too large. Max size: %d bytes", h.maxFileSize),
		})
	}

	mimeType := file.Header.Get("Content-Type")
	if _, cvErr := services.ResolveFormat(mimeType, file.Filename); cvErr != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":       cvErr.UserMessage,
			"kind":        string(cvErr.Kind),
			"suggestions": cvErr.Suggestions,
		})
	}

	filename, filePath, err := h.storageService.SaveFile(file)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to save CV file: %v", err),
		})
	}

	doc := models.Document{
		ID:               uuid.New(),
		Filename:         filename,
		OriginalFileName: file.Filename,
		MimeType:         mimeType,
		Extension:        strings.ToLower(path.Ext(file.Filename)),
		SizeBytes:        file.Size,
		FilePath:         filePath,
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}

	if err := h.docRepo.Create(&doc); err != nil {
		// Cleanup uploaded file if database insert fails
		h.storageService.DeleteFile(filename)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to save document record",
		})
	}

	return h.queueProfile(c, &doc)
}

func (h *UploadHandler) handleURLUpload(c *fiber.Ctx, location string) error {
	parsed, err := url.ParseRequestURI(location)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		cvErr := cverrors.New(cverrors.KindInvalidURL, location)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":       cvErr.UserMessage,
			"kind":        string(cvErr.Kind),
			"suggestions": cvErr.Suggestions,
		})
	}

	originalName := path.Base(parsed.Path)
	if _, cvErr := services.ResolveFormat("", originalName); cvErr != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":       cvErr.UserMessage,
			"kind":        string(cvErr.Kind),
			"suggestions": cvErr.Suggestions,
		})
	}

	doc := models.Document{
		ID:               uuid.New(),
		OriginalFileName: originalName,
		Extension:        strings.ToLower(path.Ext(originalName)),
		SourceURL:        location,
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}

	if err := h.docRepo.Create(&doc); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to save document record",
		})
	}

	return h.queueProfile(c, &doc)
}

func (h *UploadHandler) queueProfile(c *fiber.Ctx, doc *models.Document) error {
	profile := &models.CandidateProfile{
		ID:         uuid.New(),
		DocumentID: doc.ID,
		Status:     models.ExtractionQueued,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}

	if err := h.profileRepo.Create(profile); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to create extraction job",
		})
	}

	h.worker.EnqueueExtraction(profile.ID)

	return c.Status(fiber.StatusAccepted).JSON(models.UploadResponse{
		ID:           doc.ID.String(),
		ProfileID:    profile.ID.String(),
		Filename:     doc.Filename,
		OriginalName: doc.OriginalFileName,
		MimeType:     doc.MimeType,
	})
}
