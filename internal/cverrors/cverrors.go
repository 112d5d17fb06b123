// Package cverrors defines the closed error taxonomy for the CV pipeline.
// Every failure that leaves the pipeline is classified into exactly one Kind
// with a user-facing message, remediation suggestions and a retryable flag,
// so callers never have to reason about raw errors from parser libraries,
// the network stack or the OCR engine.
package cverrors

import (
	"errors"
	"fmt"
	"strings"
)

type Kind string

const (
	KindInvalidURL        Kind = "invalid_url"
	KindUnsupportedFormat Kind = "unsupported_format"
	KindFileNotFound      Kind = "file_not_found"
	KindDownloadFailed    Kind = "download_failed"
	KindFileTooLarge      Kind = "file_too_large"
	KindInsufficientText  Kind = "insufficient_text"
	KindProcessingFailed  Kind = "processing_failed"
)

// CVError is the terminal result of a failed pipeline step.
type CVError struct {
	Kind        Kind     `json:"kind"`
	Technical   string   `json:"-"`
	UserMessage string   `json:"message"`
	Suggestions []string `json:"suggestions"`
	Retryable   bool     `json:"retryable"`
}

func (e *CVError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Technical)
}

type kindInfo struct {
	userMessage string
	suggestions []string
	retryable   bool
}

var kindTable = map[Kind]kindInfo{
	KindInvalidURL: {
		userMessage: "The document link is empty or malformed.",
		suggestions: []string{
			"Check the document URL and try again",
			"Re-upload the file directly",
		},
	},
	KindUnsupportedFormat: {
		userMessage: "This file type is not supported.",
		suggestions: []string{
			"Convert the document to PDF",
			"Upload a PDF, Word, RTF, ODT, plain-text or image file",
		},
	},
	KindFileNotFound: {
		userMessage: "The document could not be found.",
		suggestions: []string{
			"Re-upload the file",
		},
	},
	KindDownloadFailed: {
		userMessage: "The document could not be downloaded.",
		suggestions: []string{
			"Check your network connection and try again",
			"Re-upload the file directly",
		},
		retryable: true,
	},
	KindFileTooLarge: {
		userMessage: "The file is too large to process.",
		suggestions: []string{
			"Compress the file",
			"Convert the document to PDF",
			"Reduce the image resolution",
		},
	},
	KindInsufficientText: {
		userMessage: "No readable text was found in the document.",
		suggestions: []string{
			"Upload a clearer scan",
			"Use a text-based document instead of a photo",
		},
	},
	KindProcessingFailed: {
		userMessage: "Something went wrong while processing the document.",
		suggestions: []string{
			"Try again in a few moments",
		},
		retryable: true,
	},
}

// New creates a CVError of the given kind. The user-facing message,
// suggestions and retryable flag are fixed per kind.
func New(kind Kind, technical string) *CVError {
	info, ok := kindTable[kind]
	if !ok {
		kind = KindProcessingFailed
		info = kindTable[KindProcessingFailed]
	}

	return &CVError{
		Kind:        kind,
		Technical:   technical,
		UserMessage: info.userMessage,
		Suggestions: info.suggestions,
		Retryable:   info.retryable,
	}
}

// Newf is New with a formatted technical message.
func Newf(kind Kind, format string, args ...interface{}) *CVError {
	return New(kind, fmt.Sprintf(format, args...))
}

// classificationRules maps message content to a Kind. Failures arrive from
// heterogeneous sources (network stack, filesystem, OCR engine, parser
// libraries) that share no error hierarchy, so classification is by content
// pattern rather than by type. Order matters: the first rule with a matching
// substring wins.
var classificationRules = []struct {
	substrings []string
	kind       Kind
}{
	{[]string{"invalid url", "malformed url", "empty url", "unsupported protocol scheme"}, KindInvalidURL},
	{[]string{"unsupported format", "unsupported file type", "unknown format"}, KindUnsupportedFormat},
	{[]string{"too large", "exceeds maximum", "size limit"}, KindFileTooLarge},
	{[]string{"not found", "no such file", "does not exist"}, KindFileNotFound},
	{[]string{"network", "connection", "timeout", "timed out", "download"}, KindDownloadFailed},
	{[]string{"no text", "could not extract", "insufficient text", "empty text"}, KindInsufficientText},
}

// Classify converts any error into a CVError. It is a pure function of the
// message content: classifying the same error twice yields an identical
// result. Errors that are already classified pass through unchanged.
func Classify(err error) *CVError {
	if err == nil {
		return nil
	}

	var cvErr *CVError
	if errors.As(err, &cvErr) {
		return cvErr
	}

	msg := strings.ToLower(err.Error())
	for _, rule := range classificationRules {
		for _, sub := range rule.substrings {
			if strings.Contains(msg, sub) {
				return New(rule.kind, err.Error())
			}
		}
	}

	// Catch-all for anything we cannot attribute more precisely.
	return New(KindProcessingFailed, err.Error())
}
