package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func fullProfile() *CandidateFields {
	return &CandidateFields{
		FirstName:       "Jane",
		LastName:        "Doe",
		Email:           "jane@example.com",
		Phone:           "+15551234567",
		YearsExperience: 7,
		Skills:          []string{"Go", "PostgreSQL", "Docker", "Kubernetes", "gRPC"},
		CurrentTitle:    "Staff Engineer",
		CurrentCompany:  "Acme",
		Education:       "BSc Computer Science",
		Summary:         "Backend engineer with platform focus.",
	}
}

func TestScoreExtractionEmptyProfileScoresLow(t *testing.T) {
	score := ScoreExtraction(&CandidateFields{}, 5000, DefaultScoreWeights())
	assert.Less(t, score, 30)
}

func TestScoreExtractionFullProfileScoresHigh(t *testing.T) {
	score := ScoreExtraction(fullProfile(), 5000, DefaultScoreWeights())
	assert.Greater(t, score, 80)
}

func TestScoreExtractionBounds(t *testing.T) {
	weights := DefaultScoreWeights()

	assert.GreaterOrEqual(t, ScoreExtraction(&CandidateFields{}, 1, weights), 0)
	assert.LessOrEqual(t, ScoreExtraction(fullProfile(), 100000, weights), 100)
}

func TestScoreExtractionNilOrNoSource(t *testing.T) {
	weights := DefaultScoreWeights()

	assert.Zero(t, ScoreExtraction(nil, 5000, weights))
	assert.Zero(t, ScoreExtraction(fullProfile(), 0, weights))
}

func TestScoreExtractionIsDeterministic(t *testing.T) {
	weights := DefaultScoreWeights()
	fields := fullProfile()

	first := ScoreExtraction(fields, 5000, weights)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, ScoreExtraction(fields, 5000, weights))
	}
}

func TestScoreExtractionMonotonicInFields(t *testing.T) {
	weights := DefaultScoreWeights()

	sparse := &CandidateFields{FirstName: "Jane"}
	withEmail := &CandidateFields{FirstName: "Jane", Email: "jane@example.com"}

	assert.Greater(t,
		ScoreExtraction(withEmail, 5000, weights),
		ScoreExtraction(sparse, 5000, weights))
}

func TestScoreExtractionSkillsSteps(t *testing.T) {
	weights := DefaultScoreWeights()

	score := func(n int) int {
		skills := make([]string, n)
		for i := range skills {
			skills[i] = "skill"
		}
		return ScoreExtraction(&CandidateFields{Skills: skills}, 5000, weights)
	}

	none := score(0)
	few := score(2)
	some := score(4)
	many := score(6)

	assert.Equal(t, weights.SkillsFew, few-none)
	assert.Equal(t, weights.SkillsSome, some-none)
	assert.Equal(t, weights.SkillsMany, many-none)
	assert.Equal(t, score(5), score(9))
}

func TestDefaultScoreWeightsSumTo100(t *testing.T) {
	w := DefaultScoreWeights()

	total := w.FirstName + w.LastName + w.Email + w.Phone + w.Title +
		w.Company + w.Experience + w.Education + w.Summary + w.SkillsMany

	assert.Equal(t, 100, total)
}
