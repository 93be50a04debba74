package handler

import (
	"encoding/json"
	"net/http"

	apperrors "docqa-relay/pkg/errors"
)

type errorResponse struct {
	Error   string `json:"error"`
	Type    string `json:"type,omitempty"`
	Details string `json:"details,omitempty"`
}

// writeJSON writes v as a JSON response with the given status
func writeJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(v)
}

// writeAppError writes a typed application error
func writeAppError(w http.ResponseWriter, err *apperrors.AppError) {
	writeJSON(w, apperrors.GetStatusCode(err), errorResponse{
		Error:   err.Message,
		Type:    string(err.Type),
		Details: err.Details,
	})
}
