// Package config provides application configuration management.
// Configuration is loaded from environment variables following
// 12-factor principles.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"

	"github.com/contentbicarus/7k-mobile-waitlist/internal/credentials"
)

// Config holds all application configuration.
// All fields are populated from environment variables.
type Config struct {
	// Application settings
	AppEnv  string `env:"APP_ENV" envDefault:"development"`
	AppPort int    `env:"APP_PORT" envDefault:"8080"`

	// Google Sheets target. Deliberately not marked required: the
	// server starts without them and the signup pipeline reports the
	// missing configuration on each request.
	GoogleClientEmail string `env:"GOOGLE_SERVICE_ACCOUNT_EMAIL"`
	GooglePrivateKey  string `env:"GOOGLE_PRIVATE_KEY"`
	SheetID           string `env:"GOOGLE_SHEET_ID"`
	SheetRange        string `env:"SHEET_RANGE" envDefault:"Sheet1!A:C"`

	// Cache (Redis). Optional: empty disables rate limiting and
	// duplicate suppression.
	RedisURL string `env:"REDIS_URL"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// Server timeouts. WriteTimeout covers the three sequential Google
	// round trips (token, metadata get, append).
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"30s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`

	// Rate limiting (per client IP; active only when Redis is configured)
	RateLimitEnabled bool `env:"RATE_LIMIT_ENABLED" envDefault:"true"`
	RateLimitRPS     int  `env:"RATE_LIMIT_RPS" envDefault:"5"`
	RateLimitBurst   int  `env:"RATE_LIMIT_BURST" envDefault:"10"`

	// Duplicate suppression (active only when Redis is configured)
	DedupeEnabled bool          `env:"DEDUPE_ENABLED" envDefault:"false"`
	DedupeTTL     time.Duration `env:"DEDUPE_TTL" envDefault:"24h"`

	// CORS configuration
	// Comma-separated list of allowed origins (e.g., "https://example.com,https://www.example.com")
	CORSAllowedOrigins string `env:"CORS_ALLOWED_ORIGINS" envDefault:""`

	// Request body size limit in bytes (default 64KB)
	MaxRequestBodySize int64 `env:"MAX_REQUEST_BODY_SIZE" envDefault:"65536"`
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// ServiceAccount returns the normalized Google credentials.
func (c *Config) ServiceAccount() credentials.ServiceAccount {
	return credentials.New(c.GoogleClientEmail, c.GooglePrivateKey)
}

// GetCORSAllowedOrigins parses the comma-separated origins string into a slice.
func (c *Config) GetCORSAllowedOrigins() []string {
	if c.CORSAllowedOrigins == "" {
		return nil
	}

	origins := strings.Split(c.CORSAllowedOrigins, ",")
	result := make([]string, 0, len(origins))

	for _, origin := range origins {
		trimmed := strings.TrimSpace(origin)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}

// Load parses environment variables and returns a Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}
