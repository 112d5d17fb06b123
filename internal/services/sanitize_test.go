package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"digits stripped", "John123 Doe", "John Doe"},
		{"compound name preserved", "Mary-Jane O'Connor", "Mary-Jane O'Connor"},
		{"whitespace collapsed", "   Extra   Spaces   ", "Extra Spaces"},
		{"symbols stripped", "J@ne! D#oe", "Jne Doe"},
		{"unicode letters kept", "José García", "José García"},
		{"empty", "", ""},
		{"only symbols", "123!@#", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeName(tt.input))
		})
	}
}

func TestCleanPhoneNumber(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"us formatted", "+1 (555) 123-4567", "+15551234567"},
		{"dotted", "555.123.4567", "5551234567"},
		{"uk spaced", "+44 20 7946 0958", "+442079460958"},
		{"already clean", "5551234567", "5551234567"},
		{"plus not leading", "555+123", "555123"},
		{"empty", "", ""},
		{"plus only", "+", ""},
		{"letters only", "call me", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanPhoneNumber(tt.input))
		})
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{
		"john.doe@example.com",
		"j+tag@sub.example.co.uk",
		"a_b-c@example.io",
	}
	invalid := []string{
		"",
		"plainaddress",
		"@example.com",
		"john@",
		"john@example",
		"john doe@example.com",
	}

	for _, email := range valid {
		assert.True(t, IsValidEmail(email), email)
	}
	for _, email := range invalid {
		assert.False(t, IsValidEmail(email), email)
	}
}

func TestIsPlaceholder(t *testing.T) {
	placeholders := []string{
		"unknown",
		"Unknown",
		"  UNKNOWN  ",
		"unknown@placeholder.com",
		"candidate",
		"N/A",
		"none",
		"Not Provided",
		"not specified",
	}
	for _, v := range placeholders {
		assert.True(t, IsPlaceholder(v), v)
	}

	assert.False(t, IsPlaceholder("John"))
	assert.False(t, IsPlaceholder("john@example.com"))
	assert.False(t, IsPlaceholder(""))
}

func TestValidateFieldsDropsInvalidValues(t *testing.T) {
	draft := &CandidateFields{
		FirstName:       "John123",
		LastName:        "unknown",
		Email:           "not-an-email",
		Phone:           "n/a",
		YearsExperience: 120,
		Skills:          []string{"Go", "go", " Python ", "unknown", ""},
		CurrentTitle:    "  Engineer ",
		CurrentCompany:  "not provided",
		Education:       "BSc Computer Science",
		Summary:         "",
	}

	clean := ValidateFields(draft)

	assert.Equal(t, "John", clean.FirstName)
	assert.Empty(t, clean.LastName)
	assert.Empty(t, clean.Email)
	assert.Empty(t, clean.Phone)
	assert.Zero(t, clean.YearsExperience)
	assert.Equal(t, []string{"Go", "Python"}, clean.Skills)
	assert.Equal(t, "Engineer", clean.CurrentTitle)
	assert.Empty(t, clean.CurrentCompany)
	assert.Equal(t, "BSc Computer Science", clean.Education)
	assert.Empty(t, clean.Summary)
}

func TestValidateFieldsKeepsValidValues(t *testing.T) {
	draft := &CandidateFields{
		FirstName:       "Mary-Jane",
		LastName:        "O'Connor",
		Email:           "mary@example.com",
		Phone:           "+1 (555) 123-4567",
		YearsExperience: 8.5,
		Skills:          []string{"Go", "PostgreSQL", "Docker"},
		CurrentTitle:    "Senior Engineer",
		CurrentCompany:  "Acme",
		Education:       "MSc",
		Summary:         "Backend engineer.",
	}

	clean := ValidateFields(draft)

	assert.Equal(t, "Mary-Jane", clean.FirstName)
	assert.Equal(t, "O'Connor", clean.LastName)
	assert.Equal(t, "mary@example.com", clean.Email)
	assert.Equal(t, "+15551234567", clean.Phone)
	assert.Equal(t, 8.5, clean.YearsExperience)
	assert.Equal(t, []string{"Go", "PostgreSQL", "Docker"}, clean.Skills)
}

func TestValidateFieldsIsIdempotent(t *testing.T) {
	draft := &CandidateFields{
		FirstName: "John3",
		Email:     "john@example.com",
		Phone:     "555.123.4567",
		Skills:    []string{"Go", "go"},
	}

	once := ValidateFields(draft)
	twice := ValidateFields(once)

	assert.Equal(t, once, twice)
}
