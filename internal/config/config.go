package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/TTMK7777/Japan-Disaster-Alert/pkg/icron"
)

// Config holds all application configuration
// Supports environment variables with sensible defaults
//
// Environment Variables:
// Server Configuration:
// - PORT: HTTP listen port (default: 8000)
// - LOG_LEVEL: debug, info, warn, error, fatal (default: info)
//
// Upstream Feed Configuration:
// - JMA_BASE_URL: JMA bosai feed base URL (default: https://www.jma.go.jp/bosai)
// - P2P_BASE_URL: P2P quake API base URL (default: https://api.p2pquake.net)
// - API_TIMEOUT: Upstream request timeout in seconds (default: 10)
// - FETCH_CONCURRENCY: Parallel prefecture fetches for nationwide scans (default: 8)
//
// Translation Configuration:
// - ANTHROPIC_API_KEY: API key for the remote translation provider (optional;
//   without it the resolver never leaves the static tiers)
// - ANTHROPIC_MODEL: Model name (default: claude-3-haiku-20240307)
// - CACHE_FILE: Translation cache file path (default: data/translation_cache.json)
//
// Cache Warmer Configuration:
// - WARM_ENABLED: Enable the scheduled cache warmer (default: true)
// - WARM_CRON_EXPR: Warmer schedule (default: */15 * * * *)

type Config struct {
	Server    ServerConfig    `json:"server"`
	Upstream  UpstreamConfig  `json:"upstream"`
	Translate TranslateConfig `json:"translate"`
	Warm      WarmConfig      `json:"warm"`
}

type ServerConfig struct {
	Port     int    `json:"port"`
	LogLevel string `json:"log_level"`
}

type UpstreamConfig struct {
	JMABaseURL       string `json:"jma_base_url"`
	P2PBaseURL       string `json:"p2p_base_url"`
	TimeoutSeconds   int    `json:"timeout_seconds"`
	FetchConcurrency int    `json:"fetch_concurrency"`
}

// TranslateConfig holds the remote provider and cache settings.
type TranslateConfig struct {
	APIKey    string `json:"api_key"`
	Model     string `json:"model"`
	CacheFile string `json:"cache_file"`
}

// WarmConfig holds the scheduled cache warmer settings.
type WarmConfig struct {
	Enabled  bool   `json:"enabled"`
	CronExpr string `json:"cron_expr"`
}

// Timeout returns the upstream request timeout as a duration.
func (c UpstreamConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Option is a function type for configuring Config
type Option func(*Config)

// NewFromEnv creates a new Config instance with values from environment variables and options
func NewFromEnv(opts ...Option) (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port:     getEnvInt("PORT", 8000),
			LogLevel: getEnvString("LOG_LEVEL", "info"),
		},
		Upstream: UpstreamConfig{
			JMABaseURL:       getEnvString("JMA_BASE_URL", "https://www.jma.go.jp/bosai"),
			P2PBaseURL:       getEnvString("P2P_BASE_URL", "https://api.p2pquake.net"),
			TimeoutSeconds:   getEnvInt("API_TIMEOUT", 10),
			FetchConcurrency: getEnvInt("FETCH_CONCURRENCY", 8),
		},
		Translate: TranslateConfig{
			APIKey:    getEnvString("ANTHROPIC_API_KEY", ""),
			Model:     getEnvString("ANTHROPIC_MODEL", "claude-3-haiku-20240307"),
			CacheFile: getEnvString("CACHE_FILE", "data/translation_cache.json"),
		},
		Warm: WarmConfig{
			Enabled:  getEnvBool("WARM_ENABLED", true),
			CronExpr: getEnvString("WARM_CRON_EXPR", "*/15 * * * *"),
		},
	}

	// Apply custom options
	for _, opt := range opts {
		opt(config)
	}

	// Validate required configuration
	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// validate checks if all required configuration is properly set
func (c *Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("PORT %d is out of range", c.Server.Port)
	}
	if c.Upstream.TimeoutSeconds <= 0 {
		return fmt.Errorf("API_TIMEOUT must be positive")
	}
	if c.Upstream.FetchConcurrency <= 0 {
		return fmt.Errorf("FETCH_CONCURRENCY must be positive")
	}
	if c.Warm.Enabled {
		if err := icron.Validate(c.Warm.CronExpr); err != nil {
			return fmt.Errorf("WARM_CRON_EXPR is invalid: %w", err)
		}
	}
	return nil
}

// getEnvString gets a string value from environment variables with default
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an integer value from environment variables with default
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvBool gets a boolean value from environment variables with default
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
