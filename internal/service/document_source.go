package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"docqa-relay/internal/domain"
)

// arXiv and similar hosts reject requests without a browser-like agent.
const downloadUserAgent = "Mozilla/5.0"

const supabaseScheme = "supabase"

// ObjectDownloader fetches an object from a storage bucket.
type ObjectDownloader interface {
	DownloadObject(bucket, path string) ([]byte, error)
}

// NewDocumentSource picks a source for rawURL. http(s) URLs are fetched
// directly; supabase://bucket/path URLs go through Supabase Storage.
func NewDocumentSource(rawURL string, maxSize int64, downloader ObjectDownloader, logger domain.Logger) (domain.DocumentSource, error) {
	if strings.TrimSpace(rawURL) == "" {
		return nil, domain.ErrDocumentSourceMissing
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, &domain.ValidationError{Field: "url", Message: fmt.Sprintf("invalid document URL %q: %v", rawURL, err)}
	}

	switch u.Scheme {
	case "http", "https":
		return NewHTTPDocumentSource(rawURL, maxSize, nil, logger), nil
	case supabaseScheme:
		if downloader == nil {
			return nil, fmt.Errorf("%w: supabase credentials are required for %s", domain.ErrDocumentSourceMissing, rawURL)
		}
		objectPath := strings.TrimPrefix(u.Path, "/")
		if u.Host == "" || objectPath == "" {
			return nil, &domain.ValidationError{Field: "url", Message: fmt.Sprintf("expected supabase://<bucket>/<path>, got %q", rawURL)}
		}
		return NewSupabaseDocumentSource(u.Host, objectPath, maxSize, downloader, logger), nil
	default:
		return nil, &domain.ValidationError{Field: "url", Message: fmt.Sprintf("unsupported scheme %q", u.Scheme)}
	}
}

// HTTPDocumentSource downloads the PDF over HTTP.
type HTTPDocumentSource struct {
	url        string
	maxSize    int64
	httpClient *http.Client
	logger     domain.Logger
}

func NewHTTPDocumentSource(rawURL string, maxSize int64, httpClient *http.Client, logger domain.Logger) *HTTPDocumentSource {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 2 * time.Minute}
	}
	return &HTTPDocumentSource{
		url:        rawURL,
		maxSize:    maxSize,
		httpClient: httpClient,
		logger:     logger,
	}
}

func (s *HTTPDocumentSource) Location() string {
	return s.url
}

// Fetch downloads the document and writes it to dest.
func (s *HTTPDocumentSource) Fetch(ctx context.Context, dest string) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("User-Agent", downloadUserAgent)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("failed to download PDF (status %d)", resp.StatusCode)
	}

	n, err := writeLimited(dest, resp.Body, s.maxSize)
	if err != nil {
		return 0, err
	}
	s.logger.Debug("Downloaded document", "url", s.url, "bytes", n)
	return n, nil
}

// SupabaseDocumentSource downloads the PDF from a Supabase Storage bucket.
type SupabaseDocumentSource struct {
	bucket     string
	path       string
	maxSize    int64
	downloader ObjectDownloader
	logger     domain.Logger
}

func NewSupabaseDocumentSource(bucket, path string, maxSize int64, downloader ObjectDownloader, logger domain.Logger) *SupabaseDocumentSource {
	return &SupabaseDocumentSource{
		bucket:     bucket,
		path:       path,
		maxSize:    maxSize,
		downloader: downloader,
		logger:     logger,
	}
}

func (s *SupabaseDocumentSource) Location() string {
	return supabaseScheme + "://" + s.bucket + "/" + s.path
}

func (s *SupabaseDocumentSource) Fetch(ctx context.Context, dest string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	data, err := s.downloader.DownloadObject(s.bucket, s.path)
	if err != nil {
		return 0, err
	}
	return writeLimited(dest, bytes.NewReader(data), s.maxSize)
}

// writeLimited copies r into dest through a temp file so a failed download
// never leaves a truncated PDF behind. maxSize <= 0 means unlimited.
func writeLimited(dest string, r io.Reader, maxSize int64) (int64, error) {
	tmp, err := os.CreateTemp(filepath.Dir(dest), ".download-*")
	if err != nil {
		return 0, fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() {
		tmp.Close()
		os.Remove(tmpName)
	}

	src := r
	if maxSize > 0 {
		src = io.LimitReader(r, maxSize+1)
	}
	n, err := io.Copy(tmp, src)
	if err != nil {
		cleanup()
		return 0, fmt.Errorf("failed to write document: %w", err)
	}
	if maxSize > 0 && n > maxSize {
		cleanup()
		return 0, fmt.Errorf("%w: limit is %d bytes", domain.ErrFileTooLarge, maxSize)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return 0, fmt.Errorf("failed to close document: %w", err)
	}
	if err := os.Rename(tmpName, dest); err != nil {
		os.Remove(tmpName)
		return 0, fmt.Errorf("failed to save document: %w", err)
	}
	return n, nil
}
