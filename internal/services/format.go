package services

import (
	"path/filepath"
	"strings"

	"recruitkit/cv-pipeline/internal/cverrors"
)

// DocumentFormat identifies the extraction strategy for a document.
type DocumentFormat string

const (
	FormatPDF   DocumentFormat = "pdf"
	FormatWord  DocumentFormat = "word"
	FormatRTF   DocumentFormat = "rtf"
	FormatText  DocumentFormat = "text"
	FormatODT   DocumentFormat = "odt"
	FormatImage DocumentFormat = "image"
)

var mimeFormats = map[string]DocumentFormat{
	"application/pdf":          FormatPDF,
	"application/msword":       FormatWord,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": FormatWord,
	"application/rtf":                         FormatRTF,
	"text/rtf":                                FormatRTF,
	"text/plain":                              FormatText,
	"application/vnd.oasis.opendocument.text": FormatODT,
	"image/jpeg":                              FormatImage,
	"image/png":                               FormatImage,
	"image/gif":                               FormatImage,
	"image/bmp":                               FormatImage,
	"image/tiff":                              FormatImage,
	"image/webp":                              FormatImage,
}

var extFormats = map[string]DocumentFormat{
	".pdf":  FormatPDF,
	".doc":  FormatWord,
	".docx": FormatWord,
	".rtf":  FormatRTF,
	".txt":  FormatText,
	".odt":  FormatODT,
	".jpg":  FormatImage,
	".jpeg": FormatImage,
	".png":  FormatImage,
	".gif":  FormatImage,
	".bmp":  FormatImage,
	".tiff": FormatImage,
	".webp": FormatImage,
}

// canonicalMime is the MIME type handed to docconv for each non-PDF,
// non-image format.
var canonicalMime = map[DocumentFormat]string{
	FormatWord: "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	FormatRTF:  "application/rtf",
	FormatText: "text/plain",
	FormatODT:  "application/vnd.oasis.opendocument.text",
}

// ResolveFormat maps a declared MIME type and/or filename to an extraction
// strategy. A MIME match wins over an extension match when both are present
// and disagree; extension matching is case-insensitive. Anything outside the
// supported table fails with UnsupportedFormat carrying the rejected values.
func ResolveFormat(mimeType, filename string) (DocumentFormat, *cverrors.CVError) {
	mime := normalizeMime(mimeType)
	ext := strings.ToLower(filepath.Ext(filename))

	if mime == "" && ext == "" {
		return "", cverrors.New(cverrors.KindUnsupportedFormat, "unsupported format: no mime type or file extension provided")
	}

	if format, ok := mimeFormats[mime]; ok {
		return format, nil
	}

	// Fall back to the extension: browsers routinely declare
	// application/octet-stream for perfectly good files.
	if format, ok := extFormats[ext]; ok {
		return format, nil
	}

	return "", cverrors.Newf(cverrors.KindUnsupportedFormat,
		"unsupported format: mime=%q extension=%q", mimeType, ext)
}

// SupportedExtensions lists every accepted file extension, for upload
// validation.
func SupportedExtensions() []string {
	exts := make([]string, 0, len(extFormats))
	for ext := range extFormats {
		exts = append(exts, ext)
	}
	return exts
}

// IsSupportedExtension reports whether the extension (with leading dot,
// any case) is in the format table.
func IsSupportedExtension(ext string) bool {
	_, ok := extFormats[strings.ToLower(ext)]
	return ok
}

func normalizeMime(mimeType string) string {
	mime := strings.TrimSpace(strings.ToLower(mimeType))
	// Strip parameters like "; charset=utf-8".
	if idx := strings.Index(mime, ";"); idx != -1 {
		mime = strings.TrimSpace(mime[:idx])
	}
	return mime
}
