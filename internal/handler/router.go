package handler

import (
	"net/http"

	"docqa-relay/internal/domain"
	apperrors "docqa-relay/pkg/errors"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// RouterOptions configure cross-cutting concerns of the router.
type RouterOptions struct {
	AllowedOrigins []string
	// AdminEnabled mounts the admin routes. They are only safe behind an API key.
	AdminEnabled bool
	Logger       domain.Logger
}

// NewRouter creates a new HTTP router with all routes configured
func NewRouter(
	searchHandler *SearchHandler,
	adminHandler *AdminHandler,
	authMiddleware func(http.Handler) http.Handler,
	opts RouterOptions,
) http.Handler {
	router := mux.NewRouter()
	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeAppError(w, apperrors.NewNotFoundError("Route not found"))
	})
	if opts.Logger != nil {
		router.Use(RequestLogger(opts.Logger))
	}

	// Health check endpoint (no auth required)
	router.HandleFunc("/health", adminHandler.Health).Methods(http.MethodGet)

	protected := router.PathPrefix("").Subrouter()
	protected.Use(authMiddleware)

	protected.HandleFunc("/search", searchHandler.Search).Methods(http.MethodPost)

	if opts.AdminEnabled {
		protected.HandleFunc("/admin/refresh", adminHandler.Refresh).Methods(http.MethodPost)
	}

	return corsOptions(opts.AllowedOrigins).Handler(router)
}

func corsOptions(origins []string) *cors.Cors {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	wildcard := false
	for _, o := range origins {
		if o == "*" {
			wildcard = true
			break
		}
	}

	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Authorization",
			"Content-Type",
			apiKeyHeader,
		},
		// Browsers reject credentialed responses with a wildcard origin.
		AllowCredentials: !wildcard,
		MaxAge:           300,
	})
}
