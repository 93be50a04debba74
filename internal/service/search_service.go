package service

import (
	"context"
	"fmt"

	"docqa-relay/internal/domain"
)

// SearchSettings configure the completion call.
type SearchSettings struct {
	Model             string
	Instruction       string
	Temperature       *float32
	MaxQuestionLength int
}

// DocumentSearchService forwards a question plus the active document
// references to the hosted model.
type DocumentSearchService struct {
	references domain.ReferenceService
	generator  domain.AnswerGenerator
	logger     domain.Logger
	settings   SearchSettings
}

// NewSearchService creates a search service. A nil generator means the API
// key is missing and every search fails with domain.ErrAPIKeyMissing.
func NewSearchService(
	references domain.ReferenceService,
	generator domain.AnswerGenerator,
	logger domain.Logger,
	settings SearchSettings,
) *DocumentSearchService {
	return &DocumentSearchService{
		references: references,
		generator:  generator,
		logger:     logger,
		settings:   settings,
	}
}

func (s *DocumentSearchService) Search(ctx context.Context, query domain.SearchQuery) (*domain.SearchResponse, error) {
	if err := query.Validate(s.settings.MaxQuestionLength); err != nil {
		return nil, err
	}
	if s.generator == nil {
		return nil, domain.ErrAPIKeyMissing
	}

	refs, err := s.references.ActiveReferences(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve documents: %w", err)
	}

	result, err := s.generator.GenerateAnswer(ctx, &domain.GenerationRequest{
		Model:       s.settings.Model,
		Instruction: s.settings.Instruction,
		Documents:   refs,
		Question:    query.Question,
		Temperature: s.settings.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate answer: %w", err)
	}

	s.logger.Info("Answered question",
		"documents", len(refs),
		"model", s.settings.Model,
		"prompt_tokens", result.PromptTokens,
		"output_tokens", result.OutputTokens,
	)

	return &domain.SearchResponse{Answer: result.Text}, nil
}
