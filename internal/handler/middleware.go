package handler

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"docqa-relay/internal/domain"
	apperrors "docqa-relay/pkg/errors"
)

const apiKeyHeader = "X-API-Key"

// APIKeyMiddleware checks a static API key sent as X-API-Key or as a bearer token.
type APIKeyMiddleware struct {
	apiKey string
	logger domain.Logger
}

// NewAPIKeyMiddleware creates the middleware. An empty key lets every request through.
func NewAPIKeyMiddleware(apiKey string, logger domain.Logger) *APIKeyMiddleware {
	return &APIKeyMiddleware{
		apiKey: apiKey,
		logger: logger,
	}
}

// Enabled reports whether requests are checked
func (m *APIKeyMiddleware) Enabled() bool {
	return m.apiKey != ""
}

func (m *APIKeyMiddleware) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !m.Enabled() {
			next.ServeHTTP(w, r)
			return
		}

		key := r.Header.Get(apiKeyHeader)
		if key == "" {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeAppError(w, apperrors.NewUnauthorizedError("API key required"))
				return
			}
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
				writeAppError(w, apperrors.NewUnauthorizedError("Invalid authorization header format"))
				return
			}
			key = strings.TrimSpace(parts[1])
		}

		if subtle.ConstantTimeCompare([]byte(key), []byte(m.apiKey)) != 1 {
			m.logger.Warn("Rejected request with invalid API key", "path", r.URL.Path, "remote", r.RemoteAddr)
			writeAppError(w, apperrors.NewUnauthorizedError("Invalid API key"))
			return
		}

		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// RequestLogger logs one line per request with status and duration.
func RequestLogger(logger domain.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)
			logger.Info("Request handled",
				"method", r.Method,
				"path", r.URL.Path,
				"status", rec.status,
				"duration_ms", time.Since(start).Milliseconds(),
			)
		})
	}
}
