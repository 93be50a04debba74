package service

import (
	"context"
	"errors"
	"os"
	"sync"

	"docqa-relay/internal/domain"
)

type MockLogger struct{}

func (l *MockLogger) Info(msg string, fields ...interface{})             {}
func (l *MockLogger) Error(msg string, err error, fields ...interface{}) {}
func (l *MockLogger) Debug(msg string, fields ...interface{})            {}
func (l *MockLogger) Warn(msg string, fields ...interface{})             {}

// MockFileStore serves scripted GetFile responses per name. When the
// script for a name runs out, the last response repeats.
type MockFileStore struct {
	mu        sync.Mutex
	uploads   []string
	uploadRef *domain.FileReference
	uploadErr error
	scripts   map[string][]mockLookup
	getCalls  map[string]int
}

type mockLookup struct {
	ref *domain.FileReference
	err error
}

func NewMockFileStore() *MockFileStore {
	return &MockFileStore{
		scripts:  make(map[string][]mockLookup),
		getCalls: make(map[string]int),
	}
}

func (m *MockFileStore) Script(name string, steps ...mockLookup) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scripts[name] = steps
}

func (m *MockFileStore) UploadFile(ctx context.Context, path string, displayName string) (*domain.FileReference, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.uploads = append(m.uploads, displayName)
	if m.uploadErr != nil {
		return nil, m.uploadErr
	}
	if m.uploadRef == nil {
		return nil, errors.New("no upload scripted")
	}
	ref := *m.uploadRef
	return &ref, nil
}

func (m *MockFileStore) GetFile(ctx context.Context, name string) (*domain.FileReference, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	steps, ok := m.scripts[name]
	if !ok || len(steps) == 0 {
		return nil, errors.New("file not found")
	}
	idx := m.getCalls[name]
	m.getCalls[name]++
	if idx >= len(steps) {
		idx = len(steps) - 1
	}
	step := steps[idx]
	if step.err != nil {
		return nil, step.err
	}
	ref := *step.ref
	return &ref, nil
}

func (m *MockFileStore) GetCalls(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.getCalls[name]
}

func (m *MockFileStore) Uploads() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.uploads...)
}

type MockReferenceRepository struct {
	mu      sync.Mutex
	names   []string
	loadErr error
	saveErr error
	saved   [][]string
}

func (m *MockReferenceRepository) Load() ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return append([]string(nil), m.names...), nil
}

func (m *MockReferenceRepository) Save(names []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = append(m.saved, append([]string(nil), names...))
	m.names = append([]string(nil), names...)
	return nil
}

// MockDocumentSource writes content to dest on Fetch.
type MockDocumentSource struct {
	content []byte
	err     error
	fetches int
}

func (m *MockDocumentSource) Location() string { return "mock://document.pdf" }

func (m *MockDocumentSource) Fetch(ctx context.Context, dest string) (int64, error) {
	m.fetches++
	if m.err != nil {
		return 0, m.err
	}
	if err := os.WriteFile(dest, m.content, 0o644); err != nil {
		return 0, err
	}
	return int64(len(m.content)), nil
}

type MockPDFInspector struct {
	info  *domain.DocumentInfo
	err   error
	paths []string
}

func (m *MockPDFInspector) Inspect(path string) (*domain.DocumentInfo, error) {
	m.paths = append(m.paths, path)
	if m.err != nil {
		return nil, m.err
	}
	if m.info != nil {
		info := *m.info
		info.Path = path
		return &info, nil
	}
	return &domain.DocumentInfo{Path: path, PageCount: 1}, nil
}

type MockUploadService struct {
	mu    sync.Mutex
	refs  []domain.FileReference
	err   error
	calls int
	// block, when set, is received from before returning.
	block chan struct{}
}

func (m *MockUploadService) UploadDocument(ctx context.Context, opts domain.UploadOptions) ([]domain.FileReference, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if m.block != nil {
		<-m.block
	}
	if m.err != nil {
		return nil, m.err
	}
	return append([]domain.FileReference(nil), m.refs...), nil
}

func (m *MockUploadService) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

type MockReferenceService struct {
	refs []domain.FileReference
	err  error
}

func (m *MockReferenceService) ActiveReferences(ctx context.Context) ([]domain.FileReference, error) {
	return m.refs, m.err
}

func (m *MockReferenceService) Refresh(ctx context.Context) ([]domain.FileReference, error) {
	return m.refs, m.err
}

func (m *MockReferenceService) Cached() []domain.FileReference {
	return m.refs
}

type MockAnswerGenerator struct {
	result  *domain.GenerationResult
	err     error
	lastReq *domain.GenerationRequest
}

func (m *MockAnswerGenerator) GenerateAnswer(ctx context.Context, req *domain.GenerationRequest) (*domain.GenerationResult, error) {
	m.lastReq = req
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

func activeRef(name string) *domain.FileReference {
	return &domain.FileReference{
		Name:     name,
		URI:      "https://example.test/" + name,
		MIMEType: domain.PDFMimeType,
		State:    domain.FileStateActive,
	}
}
