package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"code.sajari.com/docconv"
	"github.com/ledongthuc/pdf"

	"recruitkit/cv-pipeline/internal/cverrors"
)

// ExtractedText is the plain-text result of extraction. Text is never empty:
// a whitespace-only result is an InsufficientText failure, not a success.
type ExtractedText struct {
	Text   string
	Format DocumentFormat
}

// TextExtractorService turns raw document bytes into plain text using the
// strategy for the resolved format. It is a pure transform: the OCR call for
// image formats is the only external I/O.
type TextExtractorService interface {
	ExtractText(ctx context.Context, data []byte, format DocumentFormat) (*ExtractedText, error)
}

type textExtractorService struct {
	ocr         OCRService
	maxFileSize int64
}

func NewTextExtractorService(ocr OCRService, maxFileSize int64) TextExtractorService {
	return &textExtractorService{
		ocr:         ocr,
		maxFileSize: maxFileSize,
	}
}

// ExtractText implements TextExtractorService.
func (e *textExtractorService) ExtractText(ctx context.Context, data []byte, format DocumentFormat) (*ExtractedText, error) {
	// Fail fast on oversized input: OCR and PDF parsing are expensive and
	// must not be attempted on hostile or bloated documents.
	if int64(len(data)) > e.maxFileSize {
		return nil, cverrors.Newf(cverrors.KindFileTooLarge,
			"document size %d exceeds maximum %d bytes", len(data), e.maxFileSize)
	}

	var (
		text string
		err  error
	)

	switch format {
	case FormatPDF:
		text, err = e.extractPDF(data)
	case FormatText:
		text = strings.ToValidUTF8(string(data), "")
	case FormatWord, FormatRTF, FormatODT:
		text, err = extractWithDocconv(data, canonicalMime[format])
	case FormatImage:
		text, err = e.ocr.RecognizeText(ctx, data)
	default:
		return nil, cverrors.Newf(cverrors.KindUnsupportedFormat, "unsupported format: %q", format)
	}

	if err != nil {
		return nil, cverrors.Classify(err)
	}

	cleaned := CleanText(text)
	if cleaned == "" {
		return nil, cverrors.New(cverrors.KindInsufficientText, "no text could be extracted from document")
	}

	return &ExtractedText{Text: cleaned, Format: format}, nil
}

// extractPDF walks the text layer page by page. Scanned PDFs without a text
// layer fall back to docconv, which can carry an OCR-enabled pdftotext
// backend; if that also comes back empty the caller reports
// InsufficientText.
func (e *textExtractorService) extractPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return extractWithDocconv(data, "application/pdf")
	}

	var textBuilder strings.Builder
	totalPage := reader.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := reader.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// A single broken page should not sink the document.
			continue
		}

		textBuilder.WriteString(text)
		textBuilder.WriteString("\n\n")
	}

	if strings.TrimSpace(textBuilder.String()) == "" {
		return extractWithDocconv(data, "application/pdf")
	}

	return textBuilder.String(), nil
}

func extractWithDocconv(data []byte, mimeType string) (string, error) {
	res, err := docconv.Convert(bytes.NewReader(data), mimeType, false)
	if err != nil {
		return "", fmt.Errorf("document conversion failed (%s): %w", mimeType, err)
	}
	return res.Body, nil
}

// CleanText trims the text and collapses blank lines.
func CleanText(text string) string {
	text = strings.TrimSpace(text)

	lines := strings.Split(text, "\n")
	var cleanedLines []string

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			cleanedLines = append(cleanedLines, line)
		}
	}

	return strings.Join(cleanedLines, "\n")
}
