package domain

import "errors"

// Domain errors
var (
	ErrAPIKeyMissing         = errors.New("API key not configured")
	ErrNoFileReferences      = errors.New("no file references found")
	ErrNoActiveDocuments     = errors.New("no active documents found")
	ErrEmptyQuestion         = errors.New("question cannot be empty")
	ErrQuestionTooLong       = errors.New("question too long")
	ErrFileProcessingFailed  = errors.New("file processing failed")
	ErrInvalidPDF            = errors.New("invalid PDF file")
	ErrDocumentSourceMissing = errors.New("document source not configured")
	ErrFileTooLarge          = errors.New("file exceeds maximum size")
)

// ValidationError represents a validation error with field and message information.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return e.Field + ": " + e.Message
	}
	return e.Message
}
