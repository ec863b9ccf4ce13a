package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Salt generation API
	SaltAPIBaseURL string
	SaltAPIKey     string

	// OpenAI-compatible API used for prompt and image generation
	OpenAIAPIKey     string
	OpenAIBaseURL    string
	OpenAIChatModel  string
	OpenAIImageModel string
	OpenAITimeout    time.Duration
	OpenAIMaxRetries int

	// Supabase
	SupabaseURL            string
	SupabasePublishableKey string
	SupabaseJWTSecret      string
	SupabaseServiceRoleKey string
	SupabaseStorageBucket  string

	// Database
	DatabaseURL string

	// Assets
	MaxVideoBytes int64

	// Sessions
	SessionIdleTTL time.Duration

	// Server
	Port        string
	Environment string
	BaseURL     string
	LogLevel    string
	HTTPTimeout time.Duration
	PreferIPv4  bool
}

func Load() (*Config, error) {
	cfg := &Config{
		SaltAPIBaseURL: getEnv("SALT_API_BASE_URL", ""),
		SaltAPIKey:     getEnv("SALT_API_KEY", ""),

		OpenAIAPIKey:     getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL:    getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		OpenAIChatModel:  getEnv("OPENAI_CHAT_MODEL", "gpt-4o-mini"),
		OpenAIImageModel: getEnv("OPENAI_IMAGE_MODEL", "dall-e-3"),
		OpenAITimeout:    time.Duration(getEnvInt("OPENAI_TIMEOUT_SECONDS", 60)) * time.Second,
		OpenAIMaxRetries: getEnvInt("OPENAI_MAX_RETRIES", 3),

		SupabaseURL:            getEnv("SUPABASE_URL", ""),
		SupabasePublishableKey: getEnv("SUPABASE_PUBLISHABLE_KEY", ""),
		SupabaseJWTSecret:      getEnv("SUPABASE_JWT_SECRET", ""),
		SupabaseServiceRoleKey: getEnv("SUPABASE_SERVICE_ROLE_KEY", ""),
		SupabaseStorageBucket:  getEnv("SUPABASE_STORAGE_BUCKET", "sermon-art"),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		MaxVideoBytes: int64(getEnvInt("MAX_VIDEO_MB", 100)) * 1024 * 1024,

		SessionIdleTTL: time.Duration(getEnvInt("SESSION_IDLE_TTL_MINUTES", 120)) * time.Minute,

		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		BaseURL:     getEnv("BASE_URL", "http://localhost:8080"),
		LogLevel:    strings.ToLower(getEnv("LOG_LEVEL", "info")),
		HTTPTimeout: time.Duration(getEnvInt("HTTP_TIMEOUT_SECONDS", 180)) * time.Second,
		PreferIPv4:  getEnvBool("PREFER_IPV4", false),
	}

	if cfg.OpenAITimeout <= 0 {
		cfg.OpenAITimeout = 60 * time.Second
	}
	if cfg.OpenAIMaxRetries < 1 {
		cfg.OpenAIMaxRetries = 1
	}
	if cfg.HTTPTimeout <= 0 {
		cfg.HTTPTimeout = 180 * time.Second
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.SaltAPIBaseURL == "" {
		return fmt.Errorf("SALT_API_BASE_URL is required")
	}
	if c.SupabaseURL == "" {
		return fmt.Errorf("SUPABASE_URL is required")
	}
	if c.SupabasePublishableKey == "" {
		return fmt.Errorf("SUPABASE_PUBLISHABLE_KEY is required")
	}
	if c.SupabaseJWTSecret == "" {
		return fmt.Errorf("SUPABASE_JWT_SECRET is required")
	}
	if c.MaxVideoBytes <= 0 {
		return fmt.Errorf("MAX_VIDEO_MB must be positive")
	}
	return nil
}

// UsesServiceRole reports whether server-side Supabase calls bypass row level
// security. Without it asset uploads and listings run as the anon role.
func (c *Config) UsesServiceRole() bool {
	return c.SupabaseServiceRoleKey != ""
}

// ServerKey is the key used for storage uploads and the asset index. The
// service role key bypasses row level security; without it the publishable
// key is used and the bucket policies must allow the write.
func (c *Config) ServerKey() string {
	if c.SupabaseServiceRoleKey != "" {
		return c.SupabaseServiceRoleKey
	}
	return c.SupabasePublishableKey
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func getEnvBool(key string, defaultValue bool) bool {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}
