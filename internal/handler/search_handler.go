package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"docqa-relay/internal/domain"
	apperrors "docqa-relay/pkg/errors"
)

// maxSearchBodyBytes bounds the request body of the search endpoint.
const maxSearchBodyBytes = 64 * 1024

type SearchHandler struct {
	searchService domain.SearchService
	logger        domain.Logger
}

func NewSearchHandler(searchService domain.SearchService, logger domain.Logger) *SearchHandler {
	return &SearchHandler{
		searchService: searchService,
		logger:        logger,
	}
}

// Search answers a question about the uploaded documents
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	var query domain.SearchQuery
	if err := json.NewDecoder(io.LimitReader(r.Body, maxSearchBodyBytes)).Decode(&query); err != nil {
		writeAppError(w, apperrors.NewValidationError("Invalid request body", err.Error()))
		return
	}

	resp, err := h.searchService.Search(r.Context(), query)
	if err != nil {
		appErr := apperrors.FromDomain(err)
		if apperrors.IsType(appErr, apperrors.ErrorTypeValidation) {
			h.logger.Debug("Rejected search query", "error", err)
		} else if r.Context().Err() != nil {
			h.logger.Warn("Search canceled by client", "error", err)
		} else {
			h.logger.Error("Search failed", err, "type", appErr.Type)
		}
		writeAppError(w, appErr)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
