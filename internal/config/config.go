package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"docqa-relay/internal/domain"
)

const (
	DefaultDocumentURL       = "https://arxiv.org/pdf/1706.03762.pdf"
	DefaultGeminiModel       = "gemini-2.0-flash-001"
	DefaultSystemInstruction = "You are a helpful assistant. Answer strictly based on the provided documents."
)

// AppConfig implements the domain.Config interface
type AppConfig struct {
	ServerPort        string
	LogLevel          string
	GeminiAPIKey      string
	GeminiModel       string
	GeminiTemperature *float32
	SystemInstruction string
	DocumentURL       string
	DocumentPath      string
	FileNamesPath     string
	MaxFileSize       int64
	MaxQuestionLength int
	PollInterval      time.Duration
	UploadTimeout     time.Duration
	ExpiryMargin      time.Duration
	AutoRefresh       bool
	AllowedOrigins    []string
	RelayAPIKey       string
	SupabaseURL       string
	SupabaseKey       string
}

// NewConfig creates a new configuration instance with default values
func NewConfig() *AppConfig {
	return &AppConfig{
		// Cloud Run (and many PaaS) provide the listening port via PORT.
		// Keep SERVER_PORT for local/dev compatibility.
		ServerPort:        getEnvOrDefault("PORT", getEnvOrDefault("SERVER_PORT", "8080")),
		LogLevel:          getEnvOrDefault("LOG_LEVEL", "info"),
		GeminiAPIKey:      getEnvOrDefault("GEMINI_API_KEY", ""),
		GeminiModel:       getEnvOrDefault("GEMINI_MODEL", DefaultGeminiModel),
		GeminiTemperature: getEnvFloat32Ptr("GEMINI_TEMPERATURE"),
		SystemInstruction: getEnvOrDefault("SYSTEM_INSTRUCTION", DefaultSystemInstruction),
		DocumentURL:       getEnvOrDefault("DOCUMENT_URL", DefaultDocumentURL),
		DocumentPath:      getEnvOrDefault("DOCUMENT_PATH", "research_paper.pdf"),
		FileNamesPath:     getEnvOrDefault("FILE_NAMES_PATH", "uploaded_file_names.txt"),
		MaxFileSize:       getEnvInt64OrDefault("MAX_FILE_SIZE", 50*1024*1024), // 50MB default
		MaxQuestionLength: int(getEnvInt64OrDefault("MAX_QUESTION_LENGTH", 2000)),
		PollInterval:      getEnvDurationOrDefault("POLL_INTERVAL", 5*time.Second),
		UploadTimeout:     getEnvDurationOrDefault("UPLOAD_TIMEOUT", 10*time.Minute),
		ExpiryMargin:      getEnvDurationOrDefault("EXPIRY_MARGIN", 5*time.Minute),
		AutoRefresh:       getEnvBoolOrDefault("AUTO_REFRESH", true),
		AllowedOrigins:    getEnvListOrDefault("ALLOWED_ORIGINS", []string{"*"}),
		RelayAPIKey:       getEnvOrDefault("RELAY_API_KEY", ""),
		SupabaseURL:       getEnvOrDefault("SUPABASE_URL", ""),
		SupabaseKey:       getEnvOrDefault("SUPABASE_KEY", getEnvOrDefault("SUPABASE_ANON_KEY", "")),
	}
}

var _ domain.Config = (*AppConfig)(nil)

// GetServerPort returns the server port
func (c *AppConfig) GetServerPort() string {
	return c.ServerPort
}

// GetLogLevel returns the logging level
func (c *AppConfig) GetLogLevel() string {
	return c.LogLevel
}

// GetGeminiAPIKey returns the Gemini API key; empty disables the search endpoint
func (c *AppConfig) GetGeminiAPIKey() string {
	return c.GeminiAPIKey
}

// GetGeminiModel returns the model used for answers
func (c *AppConfig) GetGeminiModel() string {
	return c.GeminiModel
}

// GetGeminiTemperature returns the sampling temperature, nil for the model default
func (c *AppConfig) GetGeminiTemperature() *float32 {
	return c.GeminiTemperature
}

func (c *AppConfig) GetSystemInstruction() string {
	return c.SystemInstruction
}

// GetDocumentURL returns where the source PDF is fetched from
func (c *AppConfig) GetDocumentURL() string {
	return c.DocumentURL
}

// GetDocumentPath returns the local path of the downloaded PDF
func (c *AppConfig) GetDocumentPath() string {
	return c.DocumentPath
}

// GetFileNamesPath returns the path of the uploaded file names ledger
func (c *AppConfig) GetFileNamesPath() string {
	return c.FileNamesPath
}

// GetMaxFileSize returns the maximum allowed download size
func (c *AppConfig) GetMaxFileSize() int64 {
	return c.MaxFileSize
}

func (c *AppConfig) GetMaxQuestionLength() int {
	return c.MaxQuestionLength
}

func (c *AppConfig) GetPollInterval() time.Duration {
	return c.PollInterval
}

func (c *AppConfig) GetUploadTimeout() time.Duration {
	return c.UploadTimeout
}

func (c *AppConfig) GetExpiryMargin() time.Duration {
	return c.ExpiryMargin
}

// GetAutoRefresh reports whether expired references are re-uploaded on demand
func (c *AppConfig) GetAutoRefresh() bool {
	return c.AutoRefresh
}

func (c *AppConfig) GetAllowedOrigins() []string {
	return c.AllowedOrigins
}

// GetRelayAPIKey returns the static key clients must send; empty disables the check
func (c *AppConfig) GetRelayAPIKey() string {
	return c.RelayAPIKey
}

// GetSupabaseURL returns the Supabase URL
func (c *AppConfig) GetSupabaseURL() string {
	return c.SupabaseURL
}

// GetSupabaseKey returns the Supabase key
func (c *AppConfig) GetSupabaseKey() string {
	return c.SupabaseKey
}

// Helper functions for environment variable handling
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil && d > 0 {
			return d
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvFloat32Ptr(key string) *float32 {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	f, err := strconv.ParseFloat(value, 32)
	if err != nil {
		return nil
	}
	f32 := float32(f)
	return &f32
}

func getEnvListOrDefault(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
