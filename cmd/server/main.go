package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"docqa-relay/internal/config"
	"docqa-relay/internal/handler"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or could not be loaded: %v", err)
	}

	ctx := context.Background()
	cfg := config.NewConfig()

	// Wiring
	container := config.NewContainer(ctx, cfg)
	defer container.Sync()

	// Handlers
	searchHandler := handler.NewSearchHandler(
		container.SearchService,
		container.Logger,
	)

	adminHandler := handler.NewAdminHandler(
		container.ReferenceService,
		container.Logger,
	)

	authMiddleware := handler.NewAPIKeyMiddleware(
		cfg.GetRelayAPIKey(),
		container.Logger,
	)

	// Router
	router := handler.NewRouter(
		searchHandler,
		adminHandler,
		authMiddleware.Middleware,
		handler.RouterOptions{
			AllowedOrigins: cfg.GetAllowedOrigins(),
			AdminEnabled:   authMiddleware.Enabled(),
			Logger:         container.Logger,
		},
	)

	// start server
	server := &http.Server{
		Addr:              ":" + cfg.GetServerPort(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Run server
	go func() {
		container.Logger.Info("Server listening", "address", server.Addr, "model", cfg.GetGeminiModel())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			container.Logger.Error("Server failed to start", err)
			container.Sync()
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	container.Logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		container.Logger.Error("Graceful shutdown failed", err)
		_ = server.Close()
	}

	container.Logger.Info("Server exited")
}
