package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"docqa-relay/internal/domain"
)

func newTestRouter(apiKey string, adminEnabled bool, origins []string) (http.Handler, *mockSearchService, *mockReferenceService) {
	logger := NewMockHandlerLogger()
	svc := &mockSearchService{resp: &domain.SearchResponse{Answer: "42"}}
	refs := &mockReferenceService{cached: []domain.FileReference{{Name: "files/a"}}}

	router := NewRouter(
		NewSearchHandler(svc, logger),
		NewAdminHandler(refs, logger),
		NewAPIKeyMiddleware(apiKey, logger).Middleware,
		RouterOptions{AllowedOrigins: origins, AdminEnabled: adminEnabled, Logger: logger},
	)
	return router, svc, refs
}

func TestNewRouter_Health(t *testing.T) {
	router, _, _ := newTestRouter("key", false, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `"status":"ok"`) {
		t.Fatalf("unexpected response body: %s", rr.Body.String())
	}
}

func TestNewRouter_SearchRequiresKey(t *testing.T) {
	router, svc, _ := newTestRouter("key", false, nil)

	req := httptest.NewRequest(http.MethodPost, "/search", strings.NewReader(`{"question":"q"}`))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rr.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/search", strings.NewReader(`{"question":"q"}`))
	req.Header.Set("X-API-Key", "key")
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	if svc.calls != 1 {
		t.Fatalf("expected one search call, got %d", svc.calls)
	}
}

func TestNewRouter_SearchMethodNotAllowed(t *testing.T) {
	router, _, _ := newTestRouter("", false, nil)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/search", nil))

	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected status 405, got %d", rr.Code)
	}
}

func TestNewRouter_AdminRoutes(t *testing.T) {
	router, _, _ := newTestRouter("key", false, nil)
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/admin/refresh", nil)
	req.Header.Set("X-API-Key", "key")
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected admin route to be absent, got %d", rr.Code)
	}

	router, _, refs := newTestRouter("key", true, nil)
	rr = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/admin/refresh", nil)
	req.Header.Set("X-API-Key", "key")
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	if refs.refreshCalls != 1 {
		t.Fatalf("expected refresh to be called")
	}
}

func TestNewRouter_CORS(t *testing.T) {
	router, _, _ := newTestRouter("", false, []string{"http://localhost:5173"})

	req := httptest.NewRequest(http.MethodOptions, "/search", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Fatalf("expected allowed origin header, got %q", got)
	}
	if got := rr.Header().Get("Access-Control-Allow-Credentials"); got != "true" {
		t.Fatalf("expected credentials for explicit origins, got %q", got)
	}
}

func TestNewRouter_CORSWildcard(t *testing.T) {
	router, _, _ := newTestRouter("", false, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://anywhere.example")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("expected wildcard origin, got %q", got)
	}
}

func TestNewRouter_UnknownRoute(t *testing.T) {
	router, _, _ := newTestRouter("", false, nil)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/nope", nil))

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `"type":"not_found"`) {
		t.Fatalf("unexpected response body: %s", rr.Body.String())
	}
}
