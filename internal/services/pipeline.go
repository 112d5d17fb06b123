package services

import (
	"context"
	"log"
	"strings"

	"github.com/google/uuid"

	"recruitkit/cv-pipeline/internal/cverrors"
	"recruitkit/cv-pipeline/internal/models"
	"recruitkit/cv-pipeline/internal/repositories"
)

// ExtractionService runs the document-to-profile pipeline for one queued
// profile: fetch bytes, extract text, pull structured fields, sanitize and
// score, then persist. Extracted text is cached on the profile so a retry
// after an AI failure skips the fetch and extraction stages.
type ExtractionService interface {
	ExtractProfile(ctx context.Context, profileID uuid.UUID) error
}

type extractionService struct {
	profileRepo    repositories.ProfileRepository
	documentRepo   repositories.DocumentRepository
	fetcher        FileFetcher
	extractor      TextExtractorService
	fieldExtractor FieldExtractorService
	weights        ScoreWeights
}

func NewExtractionService(
	profileRepo repositories.ProfileRepository,
	documentRepo repositories.DocumentRepository,
	fetcher FileFetcher,
	extractor TextExtractorService,
	fieldExtractor FieldExtractorService,
	weights ScoreWeights,
) ExtractionService {
	return &extractionService{
		profileRepo:    profileRepo,
		documentRepo:   documentRepo,
		fetcher:        fetcher,
		extractor:      extractor,
		fieldExtractor: fieldExtractor,
		weights:        weights,
	}
}

// ExtractProfile implements ExtractionService.
func (s *extractionService) ExtractProfile(ctx context.Context, profileID uuid.UUID) error {
	if err := s.profileRepo.UpdateStatus(profileID, models.ExtractionProcessing); err != nil {
		return err
	}

	log.Printf("🔄 Starting extraction for profile %s\n", profileID)

	profile, err := s.profileRepo.FindByID(profileID)
	if err != nil {
		return s.fail(profileID, err)
	}

	text, err := s.obtainText(ctx, profile)
	if err != nil {
		return s.fail(profileID, err)
	}

	draft, err := s.fieldExtractor.ExtractFields(ctx, text)
	if err != nil {
		return s.fail(profileID, err)
	}

	fields := ValidateFields(draft)
	score := ScoreExtraction(fields, len(text), s.weights)

	applyFields(profile, fields, score, text)

	if err := s.profileRepo.SaveResult(profile); err != nil {
		return err
	}

	log.Printf("✅ Extraction completed for profile %s: quality=%d\n", profileID, score)
	return nil
}

// obtainText returns the cached extraction when present, otherwise fetches
// the document bytes and runs the full extraction chain.
func (s *extractionService) obtainText(ctx context.Context, profile *models.CandidateProfile) (string, error) {
	if profile.ExtractedText != nil && strings.TrimSpace(*profile.ExtractedText) != "" {
		log.Printf("🔄 Reusing cached text for profile %s\n", profile.ID)
		return *profile.ExtractedText, nil
	}

	document, err := s.documentRepo.FindByID(profile.DocumentID)
	if err != nil {
		return "", err
	}

	// Resolve before fetching: an unsupported type is rejected without
	// downloading a single byte.
	format, cvErr := ResolveFormat(document.MimeType, document.OriginalFileName)
	if cvErr != nil {
		return "", cvErr
	}

	data, err := s.fetcher.Fetch(ctx, document.Location())
	if err != nil {
		return "", err
	}

	extracted, err := s.extractor.ExtractText(ctx, data, format)
	if err != nil {
		return "", err
	}

	if err := s.profileRepo.CacheExtractedText(profile.ID, extracted.Text); err != nil {
		log.Printf("⚠️  Failed to cache extracted text for profile %s: %v\n", profile.ID, err)
	}

	return extracted.Text, nil
}

func (s *extractionService) fail(profileID uuid.UUID, err error) error {
	cvErr := cverrors.Classify(err)
	if updateErr := s.profileRepo.UpdateError(profileID, string(cvErr.Kind), cvErr.Technical, cvErr.Retryable); updateErr != nil {
		log.Printf("⚠️  Failed to record extraction error: %v\n", updateErr)
	}
	log.Printf("❌ Extraction failed for profile %s: %s\n", profileID, cvErr.Technical)
	return cvErr
}

// applyFields copies the sanitized fields onto the profile row. Empty
// strings stay NULL so absence is distinguishable from an empty value.
func applyFields(profile *models.CandidateProfile, fields *CandidateFields, score int, text string) {
	profile.FirstName = strPtr(fields.FirstName)
	profile.LastName = strPtr(fields.LastName)
	profile.Email = strPtr(fields.Email)
	profile.Phone = strPtr(fields.Phone)
	profile.CurrentTitle = strPtr(fields.CurrentTitle)
	profile.CurrentCompany = strPtr(fields.CurrentCompany)
	profile.Education = strPtr(fields.Education)
	profile.Summary = strPtr(fields.Summary)
	profile.Skills = fields.Skills

	if fields.YearsExperience > 0 {
		years := fields.YearsExperience
		profile.YearsExperience = &years
	} else {
		profile.YearsExperience = nil
	}

	profile.QualityScore = &score
	profile.ExtractedText = &text
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
