package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"recruitkit/cv-pipeline/internal/cverrors"
)

// CandidateFields is the raw draft returned by the extraction capability.
// It is untrusted until it has passed through ValidateFields.
type CandidateFields struct {
	FirstName       string   `json:"first_name"`
	LastName        string   `json:"last_name"`
	Email           string   `json:"email"`
	Phone           string   `json:"phone"`
	YearsExperience float64  `json:"years_experience"`
	Skills          []string `json:"skills"`
	CurrentTitle    string   `json:"current_title"`
	CurrentCompany  string   `json:"current_company"`
	Education       string   `json:"education"`
	Summary         string   `json:"summary"`
}

// FieldExtractorService sends extracted CV text to the LLM and returns a
// best-effort candidate draft. Failures of the capability itself surface as
// ProcessingFailed (retryable) so the caller can retry with the cached text.
type FieldExtractorService interface {
	ExtractFields(ctx context.Context, cvText string) (*CandidateFields, error)
}

type fieldExtractorService struct {
	geminiService GeminiService
	promptBuilder *PromptBuilder
	maxRetries    int
}

func NewFieldExtractorService(geminiService GeminiService, maxRetries int) FieldExtractorService {
	return &fieldExtractorService{
		geminiService: geminiService,
		promptBuilder: NewPromptBuilder(),
		maxRetries:    maxRetries,
	}
}

// ExtractFields implements FieldExtractorService.
func (f *fieldExtractorService) ExtractFields(ctx context.Context, cvText string) (*CandidateFields, error) {
	prompt := f.promptBuilder.BuildFieldExtractionPrompt(cvText)

	response, err := f.geminiService.GenerateTextWithRetry(ctx, prompt, 0.1, f.maxRetries)
	if err != nil {
		log.Printf("❌ Field extraction failed: %v", err)
		return nil, cverrors.Newf(cverrors.KindProcessingFailed, "field extraction failed: %v", err)
	}

	var fields CandidateFields
	if err := json.Unmarshal([]byte(extractJSON(response)), &fields); err != nil {
		log.Printf("❌ Failed to parse field extraction response: %v", err)
		return nil, cverrors.Newf(cverrors.KindProcessingFailed,
			"failed to parse field extraction response: %v", err)
	}

	return &fields, nil
}

// ProfileSummaryText renders validated fields into the compact plain-text
// block used inside evaluation prompts.
func (f *CandidateFields) ProfileSummaryText() string {
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Sprintf("%+v", f)
	}
	return string(data)
}
