package handler

import (
	"net/http"

	"docqa-relay/internal/domain"
	apperrors "docqa-relay/pkg/errors"
)

// AdminHandler exposes status and maintenance endpoints for the document cache.
type AdminHandler struct {
	references domain.ReferenceService
	logger     domain.Logger
}

func NewAdminHandler(references domain.ReferenceService, logger domain.Logger) *AdminHandler {
	return &AdminHandler{
		references: references,
		logger:     logger,
	}
}

type healthResponse struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Documents int    `json:"documents"`
}

// Health reports liveness and how many document references are cached.
func (h *AdminHandler) Health(w http.ResponseWriter, r *http.Request) {
	documents := 0
	if h.references != nil {
		documents = len(h.references.Cached())
	}
	writeJSON(w, http.StatusOK, healthResponse{
		Status:    "ok",
		Service:   "docqa-relay",
		Documents: documents,
	})
}

type refreshResponse struct {
	Documents []domain.FileReference `json:"documents"`
}

// Refresh forces a re-upload of the source document.
func (h *AdminHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	refs, err := h.references.Refresh(r.Context())
	if err != nil {
		h.logger.Error("Document refresh failed", err)
		writeAppError(w, apperrors.FromDomain(err))
		return
	}
	writeJSON(w, http.StatusOK, refreshResponse{Documents: refs})
}
