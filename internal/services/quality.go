package services

// ScoreWeights is the tunable per-field weighting used by the quality
// scorer. The defaults sum to 100 with contact fields and name weighted
// above the narrative fields; a deployment may tune them as long as the
// calibration bounds hold (an empty or all-placeholder profile stays below
// 30, a fully populated plausible one stays above 80).
type ScoreWeights struct {
	FirstName  int
	LastName   int
	Email      int
	Phone      int
	Title      int
	Company    int
	Experience int
	Education  int
	Summary    int

	// Stepped partial credit for the skills list by entry count.
	SkillsFew  int // 1-2 entries
	SkillsSome int // 3-4 entries
	SkillsMany int // 5 or more
}

func DefaultScoreWeights() ScoreWeights {
	return ScoreWeights{
		FirstName:  10,
		LastName:   10,
		Email:      15,
		Phone:      10,
		Title:      8,
		Company:    8,
		Experience: 8,
		Education:  6,
		Summary:    5,
		SkillsFew:  8,
		SkillsSome: 14,
		SkillsMany: 20,
	}
}

// ScoreExtraction computes the 0-100 completeness score of a validated
// profile. Placeholder values never reach this point: the sanitizer has
// already nulled them, so every non-empty field counts as plausible.
// Pure function of its inputs; no I/O.
func ScoreExtraction(fields *CandidateFields, sourceTextLen int, weights ScoreWeights) int {
	if fields == nil || sourceTextLen == 0 {
		return 0
	}

	score := 0

	if fields.FirstName != "" {
		score += weights.FirstName
	}
	if fields.LastName != "" {
		score += weights.LastName
	}
	if fields.Email != "" {
		score += weights.Email
	}
	if fields.Phone != "" {
		score += weights.Phone
	}
	if fields.CurrentTitle != "" {
		score += weights.Title
	}
	if fields.CurrentCompany != "" {
		score += weights.Company
	}
	if fields.YearsExperience > 0 {
		score += weights.Experience
	}
	if fields.Education != "" {
		score += weights.Education
	}
	if fields.Summary != "" {
		score += weights.Summary
	}

	switch n := len(fields.Skills); {
	case n >= 5:
		score += weights.SkillsMany
	case n >= 3:
		score += weights.SkillsSome
	case n >= 1:
		score += weights.SkillsFew
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	return score
}
