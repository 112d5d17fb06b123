package services

import (
	"fmt"
	"strings"

	"recruitkit/cv-pipeline/internal/models"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildFieldExtractionPrompt asks the model to fill the fixed candidate
// schema from raw CV text. Low-confidence fields must be left empty rather
// than guessed; the sanitizer re-validates everything afterwards anyway.
func (pb *PromptBuilder) BuildFieldExtractionPrompt(cvText string) string {
	return fmt.Sprintf(`You are a precise resume parser. Extract candidate information from the CV text below.

CV TEXT:
%s

Return your response in the following JSON format:
{
  "first_name": "<first name or empty string>",
  "last_name": "<last name or empty string>",
  "email": "<email address or empty string>",
  "phone": "<phone number or empty string>",
  "years_experience": <total years of professional experience as a number, 0 if unclear>,
  "skills": ["<skill>", ...],
  "current_title": "<most recent job title or empty string>",
  "current_company": "<most recent employer or empty string>",
  "education": "<one-line education summary or empty string>",
  "summary": "<2-3 sentence professional summary or empty string>"
}

Rules:
- Only report values that are explicitly supported by the CV text.
- Leave a field as an empty string (or 0, or []) when you are not confident. Never invent a value.
- Skills should be short names ("Go", "PostgreSQL"), not sentences.`,
		cvText)
}

// BuildFitEvaluationPrompt asks the model to compare a candidate profile
// against a job description. ragContext carries retrieved hiring reference
// material and may be empty.
func (pb *PromptBuilder) BuildFitEvaluationPrompt(profileSummary string, job *models.JobDescription, ragContext string) string {
	requiredSkills := "none listed"
	if len(job.RequiredSkills) > 0 {
		requiredSkills = strings.Join(job.RequiredSkills, ", ")
	}

	if ragContext == "" {
		ragContext = "No additional reference material available."
	}

	return fmt.Sprintf(`You are an expert HR recruiter assessing how well a candidate fits a %s position.

JOB DESCRIPTION:
%s

RESPONSIBILITIES:
%s

REQUIREMENTS:
%s

REQUIRED SKILLS:
%s

REFERENCE MATERIAL:
%s

CANDIDATE PROFILE:
%s

Return your response in the following JSON format:
{
  "overall_score": <0-100>,
  "summary": "<3-5 sentence overall assessment>",
  "strengths": ["<strength>", ...],
  "weaknesses": ["<weakness>", ...],
  "recommendations": ["<recommendation for the hiring team>", ...],
  "skills_match": {
    "matched": ["<required skill the candidate has>", ...],
    "missing": ["<required skill the candidate lacks>", ...]
  },
  "experience_match": {
    "relevant": <true|false>,
    "years": <candidate's relevant years as a number>,
    "detail": "<1-2 sentences on experience relevance>"
  },
  "education_match": {
    "relevant": <true|false>,
    "detail": "<1-2 sentences on education relevance>"
  }
}

Every required skill must appear in exactly one of "matched" or "missing". Be objective and cite specifics from the profile.`,
		job.Title, job.Description, job.Responsibilities, job.Requirements,
		requiredSkills, ragContext, profileSummary)
}

// BuildRetrievalQuery creates the query text used to retrieve reference
// context for a fit evaluation.
func (pb *PromptBuilder) BuildRetrievalQuery(jobTitle string) string {
	return fmt.Sprintf("Job requirements, qualifications and hiring criteria for %s", jobTitle)
}

// FormatRAGContext flattens retrieved chunks into prompt-ready context.
func FormatRAGContext(results []SearchResult) string {
	if len(results) == 0 {
		return ""
	}

	var parts []string
	for i, result := range results {
		parts = append(parts, fmt.Sprintf("--- Context %d (Score: %.2f) ---\n%s",
			i+1, result.Score, strings.TrimSpace(result.Text)))
	}

	return strings.Join(parts, "\n\n")
}

// extractJSON pulls a JSON object or array out of text that may wrap it in
// markdown fences or prose.
func extractJSON(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")

	startObj := strings.Index(text, "{")
	startArr := strings.Index(text, "[")
	endObj := strings.LastIndex(text, "}")
	endArr := strings.LastIndex(text, "]")

	if startObj != -1 && endObj != -1 && endObj > startObj {
		return text[startObj : endObj+1]
	} else if startArr != -1 && endArr != -1 && endArr > startArr {
		return text[startArr : endArr+1]
	}

	return text
}
