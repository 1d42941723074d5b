package infra

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv      string
	Port        string
	DatabaseURL string

	// DispatchToken authenticates the time-driven trigger before any store
	// access happens.
	DispatchToken string
	// DispatchBudget is the wall-clock budget of one dispatcher invocation.
	DispatchBudget time.Duration
	// BatchSize caps how many jobs one invocation may claim.
	BatchSize int
	// MaxAttempts bounds retries per job.
	MaxAttempts int
	// JobDeadline bounds each provider call; must stay below DispatchBudget.
	JobDeadline time.Duration

	EnhanceAPIKey  string
	EnhanceBaseURL string
	EnhanceModel   string

	HTTPReadTimeout       time.Duration
	HTTPReadHeaderTimeout time.Duration
	HTTPWriteTimeout      time.Duration
	HTTPIdleTimeout       time.Duration
}

// LoadConfig loads configuration from environment variables and applies defaults where needed.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		AppEnv:           getEnv("APP_ENV", "development"),
		Port:             getEnv("PORT", "8080"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		DispatchToken:    os.Getenv("DISPATCH_TOKEN"),
		DispatchBudget:   time.Second * time.Duration(getEnvInt("DISPATCH_BUDGET_SECONDS", 60)),
		BatchSize:        getEnvInt("DISPATCH_BATCH_SIZE", 5),
		MaxAttempts:      getEnvInt("JOB_MAX_ATTEMPTS", 3),
		JobDeadline:      time.Second * time.Duration(getEnvInt("JOB_DEADLINE_SECONDS", 45)),
		EnhanceAPIKey:    os.Getenv("ENHANCE_API_KEY"),
		EnhanceBaseURL:   getEnv("ENHANCE_BASE_URL", "https://generativelanguage.googleapis.com/v1beta"),
		EnhanceModel:     getEnv("ENHANCE_MODEL", "gemini-2.5-flash-image"),
		HTTPReadTimeout:       time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPReadHeaderTimeout: time.Second * time.Duration(getEnvInt("HTTP_READ_HEADER_TIMEOUT_SECONDS", 5)),
		HTTPWriteTimeout:      time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 90)),
		HTTPIdleTimeout:       time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	if cfg.DispatchToken == "" {
		return nil, fmt.Errorf("DISPATCH_TOKEN is required")
	}

	if cfg.JobDeadline >= cfg.DispatchBudget {
		return nil, fmt.Errorf("JOB_DEADLINE_SECONDS (%s) must be shorter than DISPATCH_BUDGET_SECONDS (%s)",
			cfg.JobDeadline, cfg.DispatchBudget)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}
