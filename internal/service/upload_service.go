package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"docqa-relay/internal/domain"
)

// UploadSettings control where the PDF lives and how long to wait for processing.
type UploadSettings struct {
	DocumentPath string
	PollInterval time.Duration
	// Timeout bounds the wait for the file to become ACTIVE. Zero waits
	// until the context is done.
	Timeout time.Duration
}

// DocumentUploadService downloads the PDF, uploads it to the file store,
// waits until it is processed and records its name.
type DocumentUploadService struct {
	store     domain.FileStore
	repo      domain.ReferenceRepository
	source    domain.DocumentSource
	inspector domain.PDFInspector
	logger    domain.Logger
	settings  UploadSettings
}

func NewUploadService(
	store domain.FileStore,
	repo domain.ReferenceRepository,
	source domain.DocumentSource,
	inspector domain.PDFInspector,
	logger domain.Logger,
	settings UploadSettings,
) *DocumentUploadService {
	if settings.PollInterval <= 0 {
		settings.PollInterval = 5 * time.Second
	}
	return &DocumentUploadService{
		store:     store,
		repo:      repo,
		source:    source,
		inspector: inspector,
		logger:    logger,
		settings:  settings,
	}
}

// UploadDocument runs the whole pipeline and returns the active references
// that were saved to the ledger.
func (s *DocumentUploadService) UploadDocument(ctx context.Context, opts domain.UploadOptions) ([]domain.FileReference, error) {
	path := s.settings.DocumentPath

	if opts.ForceDownload || !fileExists(path) {
		if s.source == nil {
			return nil, fmt.Errorf("%w: no local copy at %s", domain.ErrDocumentSourceMissing, path)
		}
		s.logger.Info("Downloading document", "source", s.source.Location(), "path", path)
		n, err := s.source.Fetch(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("failed to download document: %w", err)
		}
		s.logger.Info("Download complete", "path", path, "bytes", n)
	}

	info, err := s.inspector.Inspect(path)
	if err != nil {
		return nil, fmt.Errorf("failed to inspect document: %w", err)
	}

	displayName := opts.DisplayName
	if displayName == "" {
		displayName = info.Title
	}
	if displayName == "" {
		displayName = filepath.Base(path)
	}

	s.logger.Info("Uploading document", "path", path, "display_name", displayName, "pages", info.PageCount)
	uploaded, err := s.store.UploadFile(ctx, path, displayName)
	if err != nil {
		return nil, fmt.Errorf("failed to upload document: %w", err)
	}
	s.logger.Info("Uploaded document", "name", uploaded.Name)

	active, err := s.WaitForActive(ctx, uploaded.Name)
	if err != nil {
		return nil, err
	}

	refs := []domain.FileReference{*active}
	if err := s.repo.Save(domain.Names(refs)); err != nil {
		return nil, fmt.Errorf("failed to save file names: %w", err)
	}
	return refs, nil
}

// WaitForActive polls the file store until name is ACTIVE or FAILED.
// Lookup errors are logged and polling continues.
func (s *DocumentUploadService) WaitForActive(ctx context.Context, name string) (*domain.FileReference, error) {
	if s.settings.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.settings.Timeout)
		defer cancel()
	}

	ticker := time.NewTicker(s.settings.PollInterval)
	defer ticker.Stop()

	for attempt := 1; ; attempt++ {
		ref, err := s.store.GetFile(ctx, name)
		switch {
		case err != nil:
			s.logger.Warn("Error checking file status", "name", name, "error", err)
		case ref.State == domain.FileStateActive:
			s.logger.Info("File is ready for search", "name", name, "attempts", attempt)
			return ref, nil
		case ref.State == domain.FileStateFailed:
			return nil, fmt.Errorf("%w: %s", domain.ErrFileProcessingFailed, name)
		default:
			s.logger.Debug("File still processing", "name", name, "state", ref.State, "attempt", attempt)
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("waiting for %s to become active: %w", name, ctx.Err())
		case <-ticker.C:
		}
	}
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
