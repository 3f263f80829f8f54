// Package config provides centralized configuration loaded from environment
// variables. Shared by cmd/api and cmd/fetch.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is populated from environment variables. Redis and Postgres are
// optional collaborators; the feed runs without them.
type Config struct {
	// API server
	APIHost     string
	APIPort     int
	Environment string // development, staging, production
	Debug       bool

	// CORS
	CORSAllowOrigins []string

	// Rate limiting
	RateLimitEnabled  bool
	RateLimitRequests int
	RateLimitWindow   time.Duration

	// Upstream feeds
	ESPNBaseURL        string
	NHLBaseURL         string
	FeedRequestsPerMin int

	// Snapshot cache
	CacheTTL time.Duration

	// Optional snapshot fan-out
	RedisURL    string
	DatabaseURL string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	return &Config{
		APIHost:     envOr("API_HOST", "0.0.0.0"),
		APIPort:     envInt("API_PORT", envInt("PORT", 3000)),
		Environment: envOr("ENVIRONMENT", "development"),
		Debug:       envBool("DEBUG", false),

		CORSAllowOrigins: envList("CORS_ALLOW_ORIGINS", []string{
			"http://localhost:3000",
			"http://localhost:5173",
		}),

		RateLimitEnabled:  envBool("RATE_LIMIT_ENABLED", true),
		RateLimitRequests: envInt("RATE_LIMIT_REQUESTS", 120),
		RateLimitWindow:   time.Duration(envInt("RATE_LIMIT_WINDOW", 60)) * time.Second,

		ESPNBaseURL:        envOr("ESPN_BASE_URL", "http://site.api.espn.com/apis/site/v2/sports"),
		NHLBaseURL:         envOr("NHL_BASE_URL", "http://statsapi.web.nhl.com/api/v1"),
		FeedRequestsPerMin: envInt("FEED_REQUESTS_PER_MINUTE", 60),

		CacheTTL: time.Duration(envInt("CACHE_TTL_SECONDS", 60)) * time.Second,

		RedisURL:    envOr("REDIS_URL", ""),
		DatabaseURL: envOr("DATABASE_URL", ""),
	}, nil
}

// IsProduction returns true if running in production environment.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// --------------------------------------------------------------------------
// Env helpers
// --------------------------------------------------------------------------

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return fallback
}

func envList(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return fallback
}
