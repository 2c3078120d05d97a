package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
)

var (
	ErrMissingAPIKey = errors.New("YouTube API key is required")
)

// Client implementations selectable through YOUTUBE_CLIENT
const (
	ClientHTTP = "http"
	ClientSDK  = "sdk"
)

// Config holds the application configuration
type Config struct {
	YouTubeAPIKey     string
	YouTubeAPIBaseURL string
	YouTubeClient     string
	DefaultCategory   string
	Port              string
	AllowedOrigins    []string
	LogLevel          slog.Level
	LogFormat         string
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		YouTubeAPIKey:     os.Getenv("YOUTUBE_API_KEY"),
		YouTubeAPIBaseURL: getenv("YOUTUBE_API_BASE_URL", ""),
		YouTubeClient:     strings.ToLower(getenv("YOUTUBE_CLIENT", ClientHTTP)),
		DefaultCategory:   os.Getenv("DEFAULT_CATEGORY"),
		Port:              getenv("PORT", "8080"),
		AllowedOrigins:    splitList(getenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:3001")),
		LogFormat:         strings.ToLower(getenv("LOG_FORMAT", "text")),
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(getenv("LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.YouTubeAPIKey == "" {
		return fmt.Errorf("%w: YOUTUBE_API_KEY environment variable is not set", ErrMissingAPIKey)
	}
	switch c.YouTubeClient {
	case ClientHTTP, ClientSDK:
	default:
		return fmt.Errorf("unsupported YOUTUBE_CLIENT %q (want %q or %q)", c.YouTubeClient, ClientHTTP, ClientSDK)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("unsupported LOG_FORMAT %q", c.LogFormat)
	}
	return nil
}

// NewLogger builds the process logger from LogLevel and LogFormat.
func (c *Config) NewLogger() *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.LogLevel}
	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
