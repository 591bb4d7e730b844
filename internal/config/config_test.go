package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFromEnv_Defaults(t *testing.T) {
	cfg, err := NewFromEnv()
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, "https://www.jma.go.jp/bosai", cfg.Upstream.JMABaseURL)
	assert.Equal(t, "https://api.p2pquake.net", cfg.Upstream.P2PBaseURL)
	assert.Equal(t, 10, cfg.Upstream.TimeoutSeconds)
	assert.Equal(t, 8, cfg.Upstream.FetchConcurrency)
	assert.Empty(t, cfg.Translate.APIKey)
	assert.Equal(t, "claude-3-haiku-20240307", cfg.Translate.Model)
	assert.Equal(t, "data/translation_cache.json", cfg.Translate.CacheFile)
	assert.True(t, cfg.Warm.Enabled)
	assert.Equal(t, "*/15 * * * *", cfg.Warm.CronExpr)
}

func TestNewFromEnv_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("API_TIMEOUT", "30")
	t.Setenv("ANTHROPIC_API_KEY", "sk-test")
	t.Setenv("WARM_ENABLED", "false")

	cfg, err := NewFromEnv()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 30, cfg.Upstream.TimeoutSeconds)
	assert.Equal(t, "sk-test", cfg.Translate.APIKey)
	assert.False(t, cfg.Warm.Enabled)
}

func TestNewFromEnv_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("PORT", "not-a-number")
	t.Setenv("WARM_ENABLED", "maybe")

	cfg, err := NewFromEnv()
	require.NoError(t, err)
	assert.Equal(t, 8000, cfg.Server.Port)
	assert.True(t, cfg.Warm.Enabled)
}

func TestNewFromEnv_BadCronRejected(t *testing.T) {
	t.Setenv("WARM_CRON_EXPR", "every day at noon")

	_, err := NewFromEnv()
	assert.Error(t, err)
}

func TestNewFromEnv_BadCronIgnoredWhenWarmDisabled(t *testing.T) {
	t.Setenv("WARM_CRON_EXPR", "nonsense")
	t.Setenv("WARM_ENABLED", "false")

	_, err := NewFromEnv()
	assert.NoError(t, err)
}

func TestNewFromEnv_Options(t *testing.T) {
	cfg, err := NewFromEnv(func(c *Config) {
		c.Server.Port = 18000
	})
	require.NoError(t, err)
	assert.Equal(t, 18000, cfg.Server.Port)
}
