package cverrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyByMessageContent(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    Kind
	}{
		{"file not found", "File not found", KindFileNotFound},
		{"missing path", "open /tmp/cv.pdf: no such file or directory", KindFileNotFound},
		{"network failure", "Network connection failed", KindDownloadFailed},
		{"timeout", "request timed out after 30s", KindDownloadFailed},
		{"empty extraction", "No text could be extracted", KindInsufficientText},
		{"oversized", "document is too large", KindFileTooLarge},
		{"bad url", "parse \"://x\": malformed url", KindInvalidURL},
		{"unsupported", "unsupported format: application/zip", KindUnsupportedFormat},
		{"opaque parser error", "unexpected EOF while reading xref table", KindProcessingFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(errors.New(tt.message))
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.Kind)
			assert.Equal(t, tt.message, got.Technical)
		})
	}
}

func TestClassifyIsIdempotent(t *testing.T) {
	err := errors.New("Network connection failed")

	first := Classify(err)
	second := Classify(err)

	assert.Equal(t, first, second)

	// Re-classifying an already classified error must not change it.
	assert.Same(t, first, Classify(first))
	assert.Same(t, first, Classify(fmt.Errorf("wrapped: %w", first)))
}

func TestClassifyNil(t *testing.T) {
	assert.Nil(t, Classify(nil))
}

func TestKindContracts(t *testing.T) {
	retryable := map[Kind]bool{
		KindInvalidURL:        false,
		KindUnsupportedFormat: false,
		KindFileNotFound:      false,
		KindDownloadFailed:    true,
		KindFileTooLarge:      false,
		KindInsufficientText:  false,
		KindProcessingFailed:  true,
	}

	for kind, wantRetryable := range retryable {
		t.Run(string(kind), func(t *testing.T) {
			e := New(kind, "boom")
			assert.Equal(t, wantRetryable, e.Retryable)
			assert.NotEmpty(t, e.UserMessage)
			assert.NotEmpty(t, e.Suggestions, "every kind needs at least one actionable suggestion")
		})
	}
}

func TestFileTooLargeSuggestions(t *testing.T) {
	e := New(KindFileTooLarge, "12MB > 10MB")
	assert.Equal(t, []string{
		"Compress the file",
		"Convert the document to PDF",
		"Reduce the image resolution",
	}, e.Suggestions)
}

func TestErrorsAsThroughWrapping(t *testing.T) {
	inner := New(KindInsufficientText, "blank page")
	wrapped := fmt.Errorf("extraction stage: %w", inner)

	var cvErr *CVError
	require.True(t, errors.As(wrapped, &cvErr))
	assert.Equal(t, KindInsufficientText, cvErr.Kind)
}
