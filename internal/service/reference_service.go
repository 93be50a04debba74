package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"docqa-relay/internal/domain"

	"golang.org/x/sync/errgroup"
)

const maxConcurrentLookups = 4

// ReferenceSettings tune the reference cache.
type ReferenceSettings struct {
	// ExpiryMargin treats references expiring within the margin as expired.
	ExpiryMargin time.Duration
	AutoRefresh  bool
}

// CachedReferenceService keeps the uploaded file references in memory and
// re-uploads the document when none of them is usable any more.
// refreshMu serialises resolution and re-upload so concurrent requests never
// trigger more than one upload; mu only guards names and cache, so Cached
// never waits on the file store.
type CachedReferenceService struct {
	refreshMu sync.Mutex

	mu    sync.Mutex
	names []string
	cache map[string]domain.FileReference

	store    domain.FileStore
	uploader domain.UploadService
	logger   domain.Logger
	settings ReferenceSettings
	now      func() time.Time
}

// NewReferenceService seeds the cache with the names stored in repo.
// uploader may be nil, in which case expired documents are never re-uploaded.
func NewReferenceService(
	store domain.FileStore,
	repo domain.ReferenceRepository,
	uploader domain.UploadService,
	logger domain.Logger,
	settings ReferenceSettings,
) *CachedReferenceService {
	s := &CachedReferenceService{
		cache:    make(map[string]domain.FileReference),
		store:    store,
		logger:   logger,
		settings: settings,
		now:      time.Now,
	}
	if settings.AutoRefresh {
		s.uploader = uploader
	}

	names, err := repo.Load()
	if err != nil {
		logger.Error("Error loading file names", err)
	}
	s.names = names
	if len(names) == 0 {
		logger.Warn("No uploaded file names found; run the upload tool first")
	} else {
		logger.Info("Loaded file IDs", "count", len(names))
	}
	return s
}

// ActiveReferences returns the references that can be sent to the model,
// re-uploading the document if all of them have expired.
func (s *CachedReferenceService) ActiveReferences(ctx context.Context) ([]domain.FileReference, error) {
	if s.store == nil {
		return nil, domain.ErrAPIKeyMissing
	}

	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	names, cache := s.snapshot()
	results := s.resolve(ctx, names, cache)
	// A canceled request keeps the previous cache.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	active := s.storeResolved(results)
	if len(active) > 0 {
		return active, nil
	}

	if s.uploader == nil {
		if len(names) == 0 {
			return nil, domain.ErrNoFileReferences
		}
		return nil, domain.ErrNoActiveDocuments
	}

	s.logger.Warn("No active documents; re-uploading", "known_names", len(names))
	refs, err := s.uploader.UploadDocument(ctx, domain.UploadOptions{})
	if err != nil {
		return nil, fmt.Errorf("re-upload failed: %w", err)
	}
	s.replace(refs)
	return cloneReferences(refs), nil
}

// Refresh re-uploads the document regardless of the cache state.
func (s *CachedReferenceService) Refresh(ctx context.Context) ([]domain.FileReference, error) {
	if s.uploader == nil {
		return nil, fmt.Errorf("%w: automatic refresh is disabled", domain.ErrDocumentSourceMissing)
	}

	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	refs, err := s.uploader.UploadDocument(ctx, domain.UploadOptions{})
	if err != nil {
		return nil, fmt.Errorf("refresh failed: %w", err)
	}
	s.replace(refs)
	s.logger.Info("Document references refreshed", "count", len(refs))
	return cloneReferences(refs), nil
}

// Cached returns the currently cached usable references in ledger order.
func (s *CachedReferenceService) Cached() []domain.FileReference {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.FileReference, 0, len(s.cache))
	for _, name := range s.names {
		if ref, ok := s.cache[name]; ok {
			out = append(out, ref)
		}
	}
	return out
}

func (s *CachedReferenceService) snapshot() ([]string, map[string]domain.FileReference) {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := append([]string(nil), s.names...)
	cache := make(map[string]domain.FileReference, len(s.cache))
	for name, ref := range s.cache {
		cache[name] = ref
	}
	return names, cache
}

// resolve returns one slot per name, nil where the reference is unusable.
// Cached references with a known, distant expiry skip the lookup; the rest
// are fetched from the store and skipped on error.
func (s *CachedReferenceService) resolve(ctx context.Context, names []string, cache map[string]domain.FileReference) []*domain.FileReference {
	now := s.now()
	results := make([]*domain.FileReference, len(names))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentLookups)
	for i, name := range names {
		if cached, ok := cache[name]; ok && !cached.ExpiresAt.IsZero() && cached.Usable(now, s.settings.ExpiryMargin) {
			ref := cached
			results[i] = &ref
			continue
		}

		i, name := i, name
		g.Go(func() error {
			ref, err := s.store.GetFile(gctx, name)
			if err != nil {
				s.logger.Warn("Skipping unavailable file", "name", name, "error", err)
				return nil
			}
			if !ref.Usable(now, s.settings.ExpiryMargin) {
				s.logger.Warn("Skipping inactive or expiring file", "name", name, "state", ref.State, "expires_at", ref.ExpiresAt)
				return nil
			}
			results[i] = ref
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// storeResolved replaces the cache with the usable results and returns them in order.
func (s *CachedReferenceService) storeResolved(results []*domain.FileReference) []domain.FileReference {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cache = make(map[string]domain.FileReference, len(results))
	active := make([]domain.FileReference, 0, len(results))
	for _, ref := range results {
		if ref == nil {
			continue
		}
		s.cache[ref.Name] = *ref
		active = append(active, *ref)
	}
	return active
}

func (s *CachedReferenceService) replace(refs []domain.FileReference) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.names = domain.Names(refs)
	s.cache = make(map[string]domain.FileReference, len(refs))
	for _, ref := range refs {
		s.cache[ref.Name] = ref
	}
}

func cloneReferences(refs []domain.FileReference) []domain.FileReference {
	out := make([]domain.FileReference, len(refs))
	copy(out, refs)
	return out
}
