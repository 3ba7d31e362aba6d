package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port             int
	NatsURL          string
	NatsToken        string
	DatabaseURL      string
	LogLevel         string
	AnthropicAPIKey  string
	Model            string
	TemplatesPath    string
	OutcomeSourceURL string
	PollCron         string
	Workers          int
	GenTimeoutSec    int
	GenMaxAttempts   int
	GenBaseDelayMS   int
	RandomSeed       int64
}

func Load() Config {
	return Config{
		Port:             envInt("OUTREACH_PORT", 8760),
		NatsURL:          envStr("NATS_URL", "nats://localhost:4222"),
		NatsToken:        envStr("NATS_TOKEN", ""),
		DatabaseURL:      envStr("DATABASE_URL", ""),
		LogLevel:         envStr("LOG_LEVEL", "info"),
		AnthropicAPIKey:  envStr("ANTHROPIC_API_KEY", ""),
		Model:            envStr("OUTREACH_MODEL", "claude-sonnet-4-20250514"),
		TemplatesPath:    envStr("TEMPLATES_PATH", ""),
		OutcomeSourceURL: envStr("OUTCOME_SOURCE_URL", ""),
		PollCron:         envStr("POLL_CRON", "*/5 * * * *"),
		Workers:          envInt("WORKERS", 4),
		GenTimeoutSec:    envInt("GEN_TIMEOUT_SECONDS", 30),
		GenMaxAttempts:   envInt("GEN_MAX_ATTEMPTS", 3),
		GenBaseDelayMS:   envInt("GEN_BASE_DELAY_MS", 500),
		RandomSeed:       envInt64("RANDOM_SEED", 0),
	}
}

func envStr(key, fallback string) string {
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

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}
