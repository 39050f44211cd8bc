package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	ProviderGroq   = "groq"
	ProviderGemini = "gemini"
)

type Config struct {
	// Server
	Port    string
	Env     string
	LogMode string

	// Database
	DatabaseURL   string
	MigrationsDir string

	// Redis
	RedisURL string

	// Sessions
	JWTSecret  string
	SessionTTL time.Duration

	// LLM
	LLMProvider           string
	GroqAPIKey            string
	GroqBaseURL           string
	GroqModel             string
	GeminiAPIKey          string
	GeminiModel           string
	LLMConcurrentRequests int
	LLMMaxTokens          int

	// Generation
	GenerateRateLimit int
	WorkerCount       int

	// Frontend
	FrontendURL string
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{
		Port:                  getEnvOrDefault("PORT", "8080"),
		Env:                   getEnvOrDefault("ENV", "development"),
		LogMode:               getEnvOrDefault("LOG_MODE", "development"),
		DatabaseURL:           mustGetEnv("DATABASE_URL"),
		MigrationsDir:         getEnvOrDefault("MIGRATIONS_DIR", "migrations"),
		RedisURL:              mustGetEnv("REDIS_URL"),
		JWTSecret:             mustGetEnv("JWT_SECRET"),
		SessionTTL:            time.Duration(getEnvAsIntOrDefault("SESSION_TTL_HOURS", 24)) * time.Hour,
		LLMProvider:           strings.ToLower(getEnvOrDefault("LLM_PROVIDER", ProviderGroq)),
		GroqAPIKey:            getEnvOrDefault("GROQ_API_KEY", ""),
		GroqBaseURL:           getEnvOrDefault("GROQ_BASE_URL", "https://api.groq.com/openai/v1"),
		GroqModel:             getEnvOrDefault("GROQ_MODEL", "llama-3.3-70b-versatile"),
		GeminiAPIKey:          getEnvOrDefault("GEMINI_API_KEY", ""),
		GeminiModel:           getEnvOrDefault("GEMINI_MODEL", "gemini-2.0-flash"),
		LLMConcurrentRequests: getEnvAsIntOrDefault("LLM_CONCURRENT_REQUESTS", 5),
		LLMMaxTokens:          getEnvAsIntOrDefault("LLM_MAX_TOKENS", 8000),
		GenerateRateLimit:     getEnvAsIntOrDefault("GENERATE_RATE_LIMIT", 5),
		WorkerCount:           getEnvAsIntOrDefault("WORKER_COUNT", 3),
		FrontendURL:           getEnvOrDefault("FRONTEND_URL", "*"),
	}

	return cfg
}

// Validate checks the settings that depend on each other.
func (c *Config) Validate() error {
	switch c.LLMProvider {
	case ProviderGroq:
		if c.GroqAPIKey == "" {
			return fmt.Errorf("GROQ_API_KEY is required when LLM_PROVIDER=%s", ProviderGroq)
		}
	case ProviderGemini:
		if c.GeminiAPIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY is required when LLM_PROVIDER=%s", ProviderGemini)
		}
	default:
		return fmt.Errorf("unknown LLM_PROVIDER %q", c.LLMProvider)
	}
	if c.LLMConcurrentRequests < 1 {
		return fmt.Errorf("LLM_CONCURRENT_REQUESTS must be at least 1")
	}
	if c.WorkerCount < 1 {
		return fmt.Errorf("WORKER_COUNT must be at least 1")
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL_HOURS must be positive")
	}
	return nil
}

func mustGetEnv(key string) string {
	val := os.Getenv(key)
	if val == "" {
		panic(fmt.Sprintf("required environment variable %s is not set", key))
	}
	return val
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}
