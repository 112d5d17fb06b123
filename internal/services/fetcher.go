package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"recruitkit/cv-pipeline/internal/cverrors"
)

// FileFetcher retrieves document bytes from a local path or an http(s) URL.
// Every failure leaves as a classified CVError: an empty or malformed URL
// fails with InvalidUrl before any network call is attempted.
type FileFetcher interface {
	Fetch(ctx context.Context, location string) ([]byte, error)
}

type fileFetcher struct {
	client      *http.Client
	maxFileSize int64
}

func NewFileFetcher(timeout time.Duration, maxFileSize int64) FileFetcher {
	return &fileFetcher{
		client:      &http.Client{Timeout: timeout},
		maxFileSize: maxFileSize,
	}
}

// Fetch implements FileFetcher.
func (f *fileFetcher) Fetch(ctx context.Context, location string) ([]byte, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, cverrors.New(cverrors.KindInvalidURL, "empty document location")
	}

	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return f.fetchRemote(ctx, location)
	}

	return f.readLocal(location)
}

func (f *fileFetcher) fetchRemote(ctx context.Context, rawURL string) ([]byte, error) {
	u, err := url.ParseRequestURI(rawURL)
	if err != nil || u.Host == "" {
		return nil, cverrors.Newf(cverrors.KindInvalidURL, "malformed url: %q", rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, cverrors.Newf(cverrors.KindInvalidURL, "malformed url: %v", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, cverrors.Newf(cverrors.KindDownloadFailed, "download failed: %v", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, cverrors.Newf(cverrors.KindFileNotFound, "document not found at %s", rawURL)
	case resp.StatusCode != http.StatusOK:
		return nil, cverrors.Newf(cverrors.KindDownloadFailed,
			"download failed: unexpected status %d from %s", resp.StatusCode, rawURL)
	}

	if resp.ContentLength > f.maxFileSize {
		return nil, cverrors.Newf(cverrors.KindFileTooLarge,
			"document size %d exceeds maximum %d bytes", resp.ContentLength, f.maxFileSize)
	}

	// Content-Length can lie (or be absent), so the body read is capped too.
	data, err := io.ReadAll(io.LimitReader(resp.Body, f.maxFileSize+1))
	if err != nil {
		return nil, cverrors.Newf(cverrors.KindDownloadFailed, "download failed while reading body: %v", err)
	}

	if int64(len(data)) > f.maxFileSize {
		return nil, cverrors.Newf(cverrors.KindFileTooLarge,
			"document exceeds maximum %d bytes", f.maxFileSize)
	}

	return data, nil
}

func (f *fileFetcher) readLocal(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, cverrors.Newf(cverrors.KindFileNotFound, "file does not exist: %s", path)
	}
	if err != nil {
		return nil, cverrors.Classify(fmt.Errorf("failed to stat file: %w", err))
	}

	if info.Size() > f.maxFileSize {
		return nil, cverrors.Newf(cverrors.KindFileTooLarge,
			"file size %d exceeds maximum %d bytes", info.Size(), f.maxFileSize)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, cverrors.Classify(fmt.Errorf("failed to read file: %w", err))
	}

	return data, nil
}
