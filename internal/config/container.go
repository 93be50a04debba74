package config

import (
	"context"

	"docqa-relay/internal/domain"
	"docqa-relay/internal/infra/gemini"
	"docqa-relay/internal/infra/supabase"
	"docqa-relay/internal/repository"
	"docqa-relay/internal/service"
	"docqa-relay/pkg/logger"
)

// Container holds all application dependencies
type Container struct {
	Config              *AppConfig
	Logger              domain.Logger
	StorageClient       *supabase.StorageClient
	GeminiClient        *gemini.Client
	ReferenceRepository *repository.FileReferenceRepository
	UploadService       *service.DocumentUploadService
	ReferenceService    *service.CachedReferenceService
	SearchService       *service.DocumentSearchService
}

// NewContainer creates a new dependency injection container. A missing
// Gemini API key is not fatal: the server still starts and the search
// endpoint reports the misconfiguration.
func NewContainer(ctx context.Context, cfg *AppConfig) *Container {
	c := NewUploadContainer(ctx, cfg)

	// Interfaces stay nil (not typed-nil) when the API key is missing.
	var (
		store     domain.FileStore
		generator domain.AnswerGenerator
		uploader  domain.UploadService
	)
	if c.GeminiClient != nil {
		store = c.GeminiClient
		generator = c.GeminiClient
		uploader = c.UploadService
	}

	c.ReferenceService = service.NewReferenceService(
		store,
		c.ReferenceRepository,
		uploader,
		c.Logger,
		service.ReferenceSettings{
			ExpiryMargin: cfg.GetExpiryMargin(),
			AutoRefresh:  cfg.GetAutoRefresh(),
		},
	)

	c.SearchService = service.NewSearchService(
		c.ReferenceService,
		generator,
		c.Logger,
		service.SearchSettings{
			Model:             cfg.GetGeminiModel(),
			Instruction:       cfg.GetSystemInstruction(),
			Temperature:       cfg.GetGeminiTemperature(),
			MaxQuestionLength: cfg.GetMaxQuestionLength(),
		},
	)

	return c
}

// NewUploadContainer wires only what the upload tool needs. ReferenceService
// and SearchService stay nil.
func NewUploadContainer(ctx context.Context, cfg *AppConfig) *Container {
	appLogger := logger.NewLogger(cfg.GetLogLevel())

	c := &Container{
		Config:              cfg,
		Logger:              appLogger,
		ReferenceRepository: repository.NewFileReferenceRepository(cfg.GetFileNamesPath(), appLogger),
	}

	// Supabase is only needed for supabase:// document sources.
	var downloader service.ObjectDownloader
	storageClient := supabase.NewStorageClient(cfg.GetSupabaseURL(), cfg.GetSupabaseKey(), appLogger)
	if storageClient.Configured() {
		if err := storageClient.Initialize(); err != nil {
			appLogger.Error("Failed to initialize Supabase client", err)
		} else {
			c.StorageClient = storageClient
			downloader = storageClient
		}
	}

	source, err := service.NewDocumentSource(cfg.GetDocumentURL(), cfg.GetMaxFileSize(), downloader, appLogger)
	if err != nil {
		appLogger.Warn("Document source unavailable; only the local copy can be uploaded", "error", err)
		source = nil
	}

	geminiClient, err := gemini.NewClient(ctx, cfg.GetGeminiAPIKey(), appLogger, gemini.Options{})
	if err != nil {
		appLogger.Error("Gemini client not configured", err)
		return c
	}
	c.GeminiClient = geminiClient
	c.UploadService = service.NewUploadService(
		geminiClient,
		c.ReferenceRepository,
		source,
		service.NewPDFInspector(appLogger),
		appLogger,
		service.UploadSettings{
			DocumentPath: cfg.GetDocumentPath(),
			PollInterval: cfg.GetPollInterval(),
			Timeout:      cfg.GetUploadTimeout(),
		},
	)
	return c
}

// Sync flushes the logger if it buffers output
func (c *Container) Sync() {
	if s, ok := c.Logger.(interface{ Sync() error }); ok {
		_ = s.Sync()
	}
}
