package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recruitkit/cv-pipeline/internal/cverrors"
)

type stubOCR struct {
	text string
	err  error
}

func (s *stubOCR) RecognizeText(ctx context.Context, imageBytes []byte) (string, error) {
	return s.text, s.err
}

func TestExtractTextPlainText(t *testing.T) {
	e := NewTextExtractorService(&stubOCR{}, 1<<20)

	result, err := e.ExtractText(context.Background(), []byte("Jane Doe\nStaff Engineer\n"), FormatText)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nStaff Engineer", result.Text)
	assert.Equal(t, FormatText, result.Format)
}

func TestExtractTextWhitespaceOnlyIsInsufficient(t *testing.T) {
	e := NewTextExtractorService(&stubOCR{}, 1<<20)

	_, err := e.ExtractText(context.Background(), []byte("  \n\t \n"), FormatText)
	var cvErr *cverrors.CVError
	require.True(t, errors.As(err, &cvErr))
	assert.Equal(t, cverrors.KindInsufficientText, cvErr.Kind)
}

func TestExtractTextOversizedInput(t *testing.T) {
	e := NewTextExtractorService(&stubOCR{}, 16)

	_, err := e.ExtractText(context.Background(), []byte(strings.Repeat("x", 32)), FormatText)
	var cvErr *cverrors.CVError
	require.True(t, errors.As(err, &cvErr))
	assert.Equal(t, cverrors.KindFileTooLarge, cvErr.Kind)
}

func TestExtractTextImageUsesOCR(t *testing.T) {
	e := NewTextExtractorService(&stubOCR{text: "Jane Doe\n\nSkills: Go"}, 1<<20)

	result, err := e.ExtractText(context.Background(), []byte{0x89, 0x50, 0x4e, 0x47}, FormatImage)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nSkills: Go", result.Text)
}

func TestExtractTextImageOCRFailureIsClassified(t *testing.T) {
	e := NewTextExtractorService(&stubOCR{err: errors.New("tesseract exited unexpectedly")}, 1<<20)

	_, err := e.ExtractText(context.Background(), []byte{0x89, 0x50, 0x4e, 0x47}, FormatImage)
	var cvErr *cverrors.CVError
	require.True(t, errors.As(err, &cvErr))
	assert.Equal(t, cverrors.KindProcessingFailed, cvErr.Kind)
	assert.True(t, cvErr.Retryable)
}

func TestExtractTextImageWithNoTextIsInsufficient(t *testing.T) {
	e := NewTextExtractorService(&stubOCR{text: "   "}, 1<<20)

	_, err := e.ExtractText(context.Background(), []byte{0x89, 0x50, 0x4e, 0x47}, FormatImage)
	var cvErr *cverrors.CVError
	require.True(t, errors.As(err, &cvErr))
	assert.Equal(t, cverrors.KindInsufficientText, cvErr.Kind)
}

func TestExtractTextUnknownFormat(t *testing.T) {
	e := NewTextExtractorService(&stubOCR{}, 1<<20)

	_, err := e.ExtractText(context.Background(), []byte("data"), DocumentFormat("spreadsheet"))
	var cvErr *cverrors.CVError
	require.True(t, errors.As(err, &cvErr))
	assert.Equal(t, cverrors.KindUnsupportedFormat, cvErr.Kind)
}

func TestExtractTextInvalidUTF8IsDropped(t *testing.T) {
	e := NewTextExtractorService(&stubOCR{}, 1<<20)

	data := append([]byte("Jane "), 0xff, 0xfe)
	data = append(data, []byte("Doe")...)

	result, err := e.ExtractText(context.Background(), data, FormatText)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", result.Text)
}

func TestCleanText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"blank lines collapsed", "a\n\n\nb", "a\nb"},
		{"lines trimmed", "  a  \n  b  ", "a\nb"},
		{"already clean", "a\nb", "a\nb"},
		{"empty", "   \n  ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanText(tt.input))
		})
	}
}
