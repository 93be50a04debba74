package supabase

import (
	"fmt"

	"docqa-relay/internal/domain"

	"github.com/supabase-community/supabase-go"
)

// StorageClient downloads objects from Supabase Storage.
type StorageClient struct {
	client *supabase.Client
	url    string
	key    string
	logger domain.Logger
}

// NewStorageClient creates a new Supabase storage client instance
func NewStorageClient(url, key string, logger domain.Logger) *StorageClient {
	return &StorageClient{
		url:    url,
		key:    key,
		logger: logger,
	}
}

// Configured reports whether Supabase credentials are present
func (s *StorageClient) Configured() bool {
	return s.url != "" && s.key != ""
}

// Initialize establishes a connection to Supabase
func (s *StorageClient) Initialize() error {
	supabaseURL := s.url
	supabaseKey := s.key

	if supabaseURL == "" || supabaseKey == "" {
		return fmt.Errorf("supabase URL and key must be provided")
	}

	client, err := supabase.NewClient(supabaseURL, supabaseKey, &supabase.ClientOptions{})
	if err != nil {
		return fmt.Errorf("failed to create Supabase client: %w", err)
	}

	s.client = client
	s.logger.Info("Supabase client initialized successfully", "url", supabaseURL)
	return nil
}

// DownloadObject fetches bucket/path from Supabase Storage
func (s *StorageClient) DownloadObject(bucket, path string) ([]byte, error) {
	if s.client == nil {
		return nil, fmt.Errorf("Supabase client not initialized")
	}

	data, err := s.client.Storage.DownloadFile(bucket, path)
	if err != nil {
		s.logger.Error("Failed to download object from Supabase", err, "bucket", bucket, "path", path)
		return nil, fmt.Errorf("supabase download %s/%s: %w", bucket, path, err)
	}
	return data, nil
}
