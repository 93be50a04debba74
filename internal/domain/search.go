package domain

import (
	"strings"
	"unicode/utf8"
)

// SearchQuery is the request body of the search endpoint.
type SearchQuery struct {
	Question string `json:"question"`
}

// SearchResponse is returned to the client.
type SearchResponse struct {
	Answer string `json:"answer"`
}

// GenerationRequest is a single completion call against the hosted model.
type GenerationRequest struct {
	Model       string
	Instruction string
	Documents   []FileReference
	Question    string
	Temperature *float32
}

// GenerationResult holds the model answer and token usage.
type GenerationResult struct {
	Text         string
	PromptTokens int
	OutputTokens int
}

// Validate trims the question in place and checks it against maxLen runes.
// A maxLen of zero disables the length check.
func (q *SearchQuery) Validate(maxLen int) error {
	q.Question = strings.TrimSpace(q.Question)
	if q.Question == "" {
		return ErrEmptyQuestion
	}
	if maxLen > 0 && utf8.RuneCountInString(q.Question) > maxLen {
		return ErrQuestionTooLong
	}
	return nil
}
