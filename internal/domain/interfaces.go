package domain

import (
	"context"
	"time"
)

// Logger defines the interface for logging operations
type Logger interface {
	Info(msg string, fields ...interface{})
	Error(msg string, err error, fields ...interface{})
	Debug(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
}

// Config defines the interface for configuration management
type Config interface {
	GetServerPort() string
	GetLogLevel() string
	GetGeminiAPIKey() string
	GetGeminiModel() string
	GetGeminiTemperature() *float32
	GetSystemInstruction() string
	GetDocumentURL() string
	GetDocumentPath() string
	GetFileNamesPath() string
	GetMaxFileSize() int64
	GetMaxQuestionLength() int
	GetPollInterval() time.Duration
	GetUploadTimeout() time.Duration
	GetExpiryMargin() time.Duration
	GetAutoRefresh() bool
	GetAllowedOrigins() []string
	GetRelayAPIKey() string
	GetSupabaseURL() string
	GetSupabaseKey() string
}

// FileStore is the remote file store documents are uploaded to.
type FileStore interface {
	UploadFile(ctx context.Context, path string, displayName string) (*FileReference, error)
	GetFile(ctx context.Context, name string) (*FileReference, error)
}

// AnswerGenerator sends a question plus document references to the hosted model.
type AnswerGenerator interface {
	GenerateAnswer(ctx context.Context, req *GenerationRequest) (*GenerationResult, error)
}

// ReferenceRepository persists uploaded file names between runs.
type ReferenceRepository interface {
	Load() ([]string, error)
	Save(names []string) error
}

// DocumentSource fetches the source PDF and writes it to dest.
// It returns the number of bytes written.
type DocumentSource interface {
	Fetch(ctx context.Context, dest string) (int64, error)
	Location() string
}

// PDFInspector checks that a local file is a readable PDF.
type PDFInspector interface {
	Inspect(path string) (*DocumentInfo, error)
}

// UploadService runs the download -> upload -> wait -> persist pipeline.
type UploadService interface {
	UploadDocument(ctx context.Context, opts UploadOptions) ([]FileReference, error)
}

// ReferenceService owns the cached file references used to answer questions.
type ReferenceService interface {
	ActiveReferences(ctx context.Context) ([]FileReference, error)
	Refresh(ctx context.Context) ([]FileReference, error)
	Cached() []FileReference
}

// SearchService answers questions against the cached documents.
type SearchService interface {
	Search(ctx context.Context, query SearchQuery) (*SearchResponse, error)
}
