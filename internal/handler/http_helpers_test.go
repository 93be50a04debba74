package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	apperrors "docqa-relay/pkg/errors"
)

func TestWriteAppError_Unauthorized(t *testing.T) {
	rr := httptest.NewRecorder()
	writeAppError(rr, apperrors.NewUnauthorizedError("nope"))

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected content type application/json, got %s", ct)
	}
	if strings.TrimSpace(rr.Body.String()) != `{"error":"nope","type":"unauthorized"}` {
		t.Fatalf("unexpected response body: %s", rr.Body.String())
	}
}

func TestWriteAppError_EscapesMessage(t *testing.T) {
	rr := httptest.NewRecorder()
	writeAppError(rr, apperrors.NewValidationError(`bad "quote"`))

	if strings.TrimSpace(rr.Body.String()) != `{"error":"bad \"quote\"","type":"validation"}` {
		t.Fatalf("unexpected response body: %s", rr.Body.String())
	}
}

func TestWriteAppError(t *testing.T) {
	rr := httptest.NewRecorder()
	writeAppError(rr, apperrors.NewUpstreamError("Failed to generate answer", errors.New("429 quota")))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rr.Code)
	}
	body := rr.Body.String()
	for _, want := range []string{`"error":"Failed to generate answer"`, `"type":"upstream"`, `"details":"429 quota"`} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %s in body %s", want, body)
		}
	}
}
