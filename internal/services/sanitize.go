package services

import (
	"regexp"
	"strings"
	"unicode"
)

// The sanitizer is the authority over the AI-extracted draft: every field
// passes through these deterministic functions before it becomes part of the
// canonical profile. Invalid values are dropped, not passed through, so
// downstream consumers only ever reason about present-vs-absent.

var emailRegex = regexp.MustCompile(`^[A-Za-z0-9._%+\-]+@[A-Za-z0-9\-]+(\.[A-Za-z0-9\-]+)*\.[A-Za-z]{2,}$`)

// IsValidEmail reports whether the value matches a local@domain grammar with
// at least one dot in the domain part. No network verification.
func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// SanitizeName strips digits and symbols other than hyphen and apostrophe,
// collapses whitespace runs and trims. Casing and compound names are
// preserved: "Mary-Jane O'Connor" passes through unchanged.
func SanitizeName(name string) string {
	var b strings.Builder
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsSpace(r) || r == '-' || r == '\'' {
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// CleanPhoneNumber strips everything except digits, keeping a single leading
// "+" when the original started with one. "+1 (555) 123-4567" becomes
// "+15551234567".
func CleanPhoneNumber(phone string) string {
	trimmed := strings.TrimSpace(phone)

	var b strings.Builder
	if strings.HasPrefix(trimmed, "+") {
		b.WriteByte('+')
	}
	for _, r := range trimmed {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}

	cleaned := b.String()
	if cleaned == "" || cleaned == "+" {
		return ""
	}
	return cleaned
}

// placeholderValues are sentinel strings the extraction capability emits when
// it cannot determine a real value. They are treated as absent so filler
// never inflates quality scores.
var placeholderValues = map[string]struct{}{
	"unknown":                 {},
	"unknown@placeholder.com": {},
	"candidate":               {},
	"n/a":                     {},
	"none":                    {},
	"not provided":            {},
	"not specified":           {},
}

func IsPlaceholder(value string) bool {
	_, ok := placeholderValues[strings.ToLower(strings.TrimSpace(value))]
	return ok
}

// maxPlausibleYears guards against the model reporting a career longer than
// a working lifetime.
const maxPlausibleYears = 60

// ValidateFields runs the AI draft through the deterministic validators and
// returns the cleaned copy. Rejected fields come back empty; the caller
// treats empty as absent.
func ValidateFields(draft *CandidateFields) *CandidateFields {
	clean := &CandidateFields{}

	clean.FirstName = sanitizedOrEmpty(draft.FirstName)
	clean.LastName = sanitizedOrEmpty(draft.LastName)

	if email := strings.TrimSpace(draft.Email); IsValidEmail(email) && !IsPlaceholder(email) {
		clean.Email = email
	}

	if !IsPlaceholder(draft.Phone) {
		clean.Phone = CleanPhoneNumber(draft.Phone)
	}

	if draft.YearsExperience > 0 && draft.YearsExperience <= maxPlausibleYears {
		clean.YearsExperience = draft.YearsExperience
	}

	clean.Skills = dedupeSkills(draft.Skills)
	clean.CurrentTitle = textOrEmpty(draft.CurrentTitle)
	clean.CurrentCompany = textOrEmpty(draft.CurrentCompany)
	clean.Education = textOrEmpty(draft.Education)
	clean.Summary = textOrEmpty(draft.Summary)

	return clean
}

func sanitizedOrEmpty(name string) string {
	if IsPlaceholder(name) {
		return ""
	}
	return SanitizeName(name)
}

func textOrEmpty(value string) string {
	value = strings.TrimSpace(value)
	if IsPlaceholder(value) {
		return ""
	}
	return value
}

// dedupeSkills trims, drops placeholders and removes case-insensitive
// duplicates while keeping first-seen order.
func dedupeSkills(skills []string) []string {
	seen := make(map[string]struct{}, len(skills))
	var result []string

	for _, skill := range skills {
		skill = strings.TrimSpace(skill)
		if skill == "" || IsPlaceholder(skill) {
			continue
		}
		key := strings.ToLower(skill)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		result = append(result, skill)
	}

	return result
}
