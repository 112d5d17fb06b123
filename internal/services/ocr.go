package services

import (
	"bytes"
	"context"
	"fmt"

	"github.com/disintegration/imaging"
	"github.com/otiai10/gosseract/v2"
)

// OCRService recognizes text in an image. Failures propagate as plain errors
// and are classified by the caller.
type OCRService interface {
	RecognizeText(ctx context.Context, imageBytes []byte) (string, error)
}

type tesseractOCRService struct {
	languages []string
}

func NewTesseractOCRService(languages []string) OCRService {
	if len(languages) == 0 {
		languages = []string{"eng"}
	}
	return &tesseractOCRService{languages: languages}
}

// RecognizeText implements OCRService.
func (s *tesseractOCRService) RecognizeText(ctx context.Context, imageBytes []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("ocr cancelled: %w", err)
	}

	prepared := prepareForOCR(imageBytes)

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(s.languages...); err != nil {
		return "", fmt.Errorf("ocr language setup failed: %w", err)
	}

	if err := client.SetImageFromBytes(prepared); err != nil {
		return "", fmt.Errorf("ocr could not read image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("ocr recognition failed: %w", err)
	}

	return text, nil
}

// minOCRWidth is the width below which scans are upscaled; tesseract
// accuracy drops sharply on small images.
const minOCRWidth = 1000

// prepareForOCR grayscales and, for small scans, upscales the image before
// recognition. If the bytes cannot be decoded (e.g. a format tesseract
// handles natively but image/* does not), the original bytes are used.
func prepareForOCR(imageBytes []byte) []byte {
	img, err := imaging.Decode(bytes.NewReader(imageBytes))
	if err != nil {
		return imageBytes
	}

	img = imaging.Grayscale(img)
	if img.Bounds().Dx() < minOCRWidth {
		img = imaging.Resize(img, minOCRWidth, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return imageBytes
	}

	return buf.Bytes()
}
