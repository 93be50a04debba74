package handler

import (
	"context"

	"docqa-relay/internal/domain"
)

type mockSearchService struct {
	resp      *domain.SearchResponse
	err       error
	lastQuery domain.SearchQuery
	calls     int
}

func (m *mockSearchService) Search(ctx context.Context, query domain.SearchQuery) (*domain.SearchResponse, error) {
	m.calls++
	m.lastQuery = query
	if m.err != nil {
		return nil, m.err
	}
	return m.resp, nil
}

type mockReferenceService struct {
	cached       []domain.FileReference
	refreshed    []domain.FileReference
	refreshErr   error
	refreshCalls int
}

func (m *mockReferenceService) ActiveReferences(ctx context.Context) ([]domain.FileReference, error) {
	return m.cached, nil
}

func (m *mockReferenceService) Refresh(ctx context.Context) ([]domain.FileReference, error) {
	m.refreshCalls++
	if m.refreshErr != nil {
		return nil, m.refreshErr
	}
	return m.refreshed, nil
}

func (m *mockReferenceService) Cached() []domain.FileReference {
	return m.cached
}
