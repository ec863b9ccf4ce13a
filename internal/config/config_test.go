package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sermon-art-backend/internal/config"
)

func setRequired(t *testing.T) {
	t.Setenv("SALT_API_BASE_URL", "https://salt.test")
	t.Setenv("SUPABASE_URL", "https://project.supabase.co")
	t.Setenv("SUPABASE_PUBLISHABLE_KEY", "anon-key")
	t.Setenv("SUPABASE_JWT_SECRET", "secret")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)
	t.Setenv("SUPABASE_SERVICE_ROLE_KEY", "")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "sermon-art", cfg.SupabaseStorageBucket)
	assert.Equal(t, int64(100*1024*1024), cfg.MaxVideoBytes)
	assert.Equal(t, 60*time.Second, cfg.OpenAITimeout)
	assert.Equal(t, 3, cfg.OpenAIMaxRetries)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 2*time.Hour, cfg.SessionIdleTTL)
	assert.False(t, cfg.UsesServiceRole())
}

func TestLoad_InvalidNumbersFallBack(t *testing.T) {
	setRequired(t)
	t.Setenv("OPENAI_MAX_RETRIES", "lots")
	t.Setenv("OPENAI_TIMEOUT_SECONDS", "-5")
	t.Setenv("LOG_LEVEL", "DEBUG")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.OpenAIMaxRetries)
	assert.Equal(t, 60*time.Second, cfg.OpenAITimeout)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_MissingRequired(t *testing.T) {
	setRequired(t)
	t.Setenv("SUPABASE_JWT_SECRET", "")

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SUPABASE_JWT_SECRET is required")
}

func TestServerKey(t *testing.T) {
	cfg := &config.Config{SupabasePublishableKey: "anon-key"}
	assert.Equal(t, "anon-key", cfg.ServerKey())
	assert.False(t, cfg.UsesServiceRole())

	cfg.SupabaseServiceRoleKey = "service-key"
	assert.Equal(t, "service-key", cfg.ServerKey())
	assert.True(t, cfg.UsesServiceRole())
}
