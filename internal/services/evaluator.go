package services

import (
	"context"
	"encoding/json"
	"log"

	"github.com/google/uuid"

	"recruitkit/cv-pipeline/internal/cverrors"
	"recruitkit/cv-pipeline/internal/models"
	"recruitkit/cv-pipeline/internal/repositories"
)

const (
	FitExcellent = "Excellent"
	FitGood      = "Good"
	FitFair      = "Fair"
	FitPoor      = "Poor"
)

// FitBreakpoints are the score thresholds for the categorical fit label.
// They are configuration, but must stay ordered (Excellent > Good > Fair)
// so a higher score can never map to a lower category.
type FitBreakpoints struct {
	Excellent int
	Good      int
	Fair      int
}

func DefaultFitBreakpoints() FitBreakpoints {
	return FitBreakpoints{Excellent: 85, Good: 70, Fair: 50}
}

// FitCategory maps a numeric score to its categorical label.
func FitCategory(score int, bp FitBreakpoints) string {
	switch {
	case score >= bp.Excellent:
		return FitExcellent
	case score >= bp.Good:
		return FitGood
	case score >= bp.Fair:
		return FitFair
	default:
		return FitPoor
	}
}

// SkillsMatchPercent computes matched/(matched+missing)*100. When the job
// lists no required skills the match is vacuous and defined as 100.
func SkillsMatchPercent(matchedCount, missingCount int, hasRequiredSkills bool) float64 {
	if !hasRequiredSkills {
		return 100
	}

	total := matchedCount + missingCount
	if total == 0 {
		return 0
	}

	percent := float64(matchedCount) / float64(total) * 100
	if percent < 0 {
		return 0
	}
	if percent > 100 {
		return 100
	}
	return percent
}

// fitEvaluationResponse mirrors the JSON shape requested from the model.
// It is an untrusted draft until enforceFitInvariants has run.
type fitEvaluationResponse struct {
	OverallScore    int      `json:"overall_score"`
	Summary         string   `json:"summary"`
	Strengths       []string `json:"strengths"`
	Weaknesses      []string `json:"weaknesses"`
	Recommendations []string `json:"recommendations"`
	SkillsMatch     struct {
		Matched []string `json:"matched"`
		Missing []string `json:"missing"`
	} `json:"skills_match"`
	ExperienceMatch struct {
		Relevant bool    `json:"relevant"`
		Years    float64 `json:"years"`
		Detail   string  `json:"detail"`
	} `json:"experience_match"`
	EducationMatch struct {
		Relevant bool   `json:"relevant"`
		Detail   string `json:"detail"`
	} `json:"education_match"`
}

// FitEvaluatorService runs one queued evaluation end to end: load the pair,
// retrieve reference context, call the model, enforce local invariants and
// persist the result.
type FitEvaluatorService interface {
	EvaluateFit(ctx context.Context, evalID uuid.UUID) error
}

type fitEvaluatorService struct {
	evalRepo      repositories.EvaluationRepository
	profileRepo   repositories.ProfileRepository
	jobRepo       repositories.JobRepository
	geminiService GeminiService
	qdrantService QdrantService
	promptBuilder *PromptBuilder
	breakpoints   FitBreakpoints
	maxRetries    int
}

func NewFitEvaluatorService(
	evalRepo repositories.EvaluationRepository,
	profileRepo repositories.ProfileRepository,
	jobRepo repositories.JobRepository,
	geminiService GeminiService,
	qdrantService QdrantService,
	breakpoints FitBreakpoints,
	maxRetries int,
) FitEvaluatorService {
	return &fitEvaluatorService{
		evalRepo:      evalRepo,
		profileRepo:   profileRepo,
		jobRepo:       jobRepo,
		geminiService: geminiService,
		qdrantService: qdrantService,
		promptBuilder: NewPromptBuilder(),
		breakpoints:   breakpoints,
		maxRetries:    maxRetries,
	}
}

// EvaluateFit implements FitEvaluatorService.
func (e *fitEvaluatorService) EvaluateFit(ctx context.Context, evalID uuid.UUID) error {
	if err := e.evalRepo.UpdateStatus(evalID, models.StatusProcessing); err != nil {
		return err
	}

	log.Printf("🔄 Starting fit evaluation %s\n", evalID)

	evaluation, err := e.evalRepo.FindByID(evalID)
	if err != nil {
		return e.fail(evalID, err)
	}

	profile, err := e.profileRepo.FindByID(evaluation.ProfileID)
	if err != nil {
		return e.fail(evalID, err)
	}

	job, err := e.jobRepo.FindByID(evaluation.JobID)
	if err != nil {
		return e.fail(evalID, err)
	}

	ragContext := e.retrieveContext(ctx, job.Title)

	prompt := e.promptBuilder.BuildFitEvaluationPrompt(profileFields(profile).ProfileSummaryText(), job, ragContext)

	response, err := e.geminiService.GenerateTextWithRetry(ctx, prompt, 0.3, e.maxRetries)
	if err != nil {
		return e.fail(evalID, cverrors.Newf(cverrors.KindProcessingFailed, "fit evaluation failed: %v", err))
	}

	var raw fitEvaluationResponse
	if err := json.Unmarshal([]byte(extractJSON(response)), &raw); err != nil {
		return e.fail(evalID, cverrors.Newf(cverrors.KindProcessingFailed,
			"failed to parse fit evaluation response: %v", err))
	}

	data := enforceFitInvariants(&raw, job.RequiredSkills, e.breakpoints)

	if err := e.evalRepo.UpdateResult(evalID, data); err != nil {
		return err
	}

	log.Printf("✅ Fit evaluation %s completed: score=%d fit=%s\n", evalID, data.OverallScore, data.OverallFit)
	return nil
}

// retrieveContext fetches the most similar reference chunks for the job.
// Context is best-effort: a retrieval failure degrades the prompt, it never
// fails the evaluation.
func (e *fitEvaluatorService) retrieveContext(ctx context.Context, jobTitle string) string {
	if e.qdrantService == nil {
		return ""
	}

	query := e.promptBuilder.BuildRetrievalQuery(jobTitle)

	embedding, err := e.geminiService.GenerateEmbedding(ctx, query)
	if err != nil {
		log.Printf("⚠️  Failed to embed retrieval query: %v\n", err)
		return ""
	}

	var allResults []SearchResult
	for _, docType := range []string{"job_description", "hiring_rubric"} {
		results, err := e.qdrantService.SearchSimilar(ctx, embedding, docType, 3)
		if err != nil {
			log.Printf("⚠️  Failed to search for %s: %v\n", docType, err)
			continue
		}
		allResults = append(allResults, results...)
	}

	return FormatRAGContext(allResults)
}

// enforceFitInvariants turns the model's draft into a result that honors the
// local contracts: score clamped to [0,100], skills-match percentage
// recomputed from the matched/missing lists, and the categorical fit derived
// from the score rather than trusted from the model.
func enforceFitInvariants(raw *fitEvaluationResponse, requiredSkills []string, bp FitBreakpoints) *repositories.EvaluationUpdateData {
	score := raw.OverallScore
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	percent := SkillsMatchPercent(len(raw.SkillsMatch.Matched), len(raw.SkillsMatch.Missing), len(requiredSkills) > 0)

	return &repositories.EvaluationUpdateData{
		OverallScore:       score,
		OverallFit:         FitCategory(score, bp),
		Summary:            raw.Summary,
		Strengths:          raw.Strengths,
		Weaknesses:         raw.Weaknesses,
		Recommendations:    raw.Recommendations,
		MatchedSkills:      raw.SkillsMatch.Matched,
		MissingSkills:      raw.SkillsMatch.Missing,
		SkillsMatchPercent: percent,
		ExperienceRelevant: raw.ExperienceMatch.Relevant,
		ExperienceYears:    raw.ExperienceMatch.Years,
		ExperienceDetail:   raw.ExperienceMatch.Detail,
		EducationRelevant:  raw.EducationMatch.Relevant,
		EducationDetail:    raw.EducationMatch.Detail,
	}
}

func (e *fitEvaluatorService) fail(evalID uuid.UUID, err error) error {
	cvErr := cverrors.Classify(err)
	if updateErr := e.evalRepo.UpdateError(evalID, string(cvErr.Kind), cvErr.Technical, cvErr.Retryable); updateErr != nil {
		log.Printf("⚠️  Failed to record evaluation error: %v\n", updateErr)
	}
	return cvErr
}

// profileFields flattens a stored profile back into the field struct used
// for prompt rendering.
func profileFields(p *models.CandidateProfile) *CandidateFields {
	fields := &CandidateFields{Skills: p.Skills}

	if p.FirstName != nil {
		fields.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		fields.LastName = *p.LastName
	}
	if p.Email != nil {
		fields.Email = *p.Email
	}
	if p.Phone != nil {
		fields.Phone = *p.Phone
	}
	if p.YearsExperience != nil {
		fields.YearsExperience = *p.YearsExperience
	}
	if p.CurrentTitle != nil {
		fields.CurrentTitle = *p.CurrentTitle
	}
	if p.CurrentCompany != nil {
		fields.CurrentCompany = *p.CurrentCompany
	}
	if p.Education != nil {
		fields.Education = *p.Education
	}
	if p.Summary != nil {
		fields.Summary = *p.Summary
	}

	return fields
}
