package infra

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"
)

// Store drivers accepted by STORE_DRIVER.
const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv           string
	Port             string
	DatabaseURL      string
	StoreDriver      string
	JWTSecret        string
	CORSOrigins      []string
	OTLPEndpoint     string
	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration
	RateLimitPerMin  int

	EventLocation      *time.Location
	EventLookaheadDays int
	EventClosingHour   int
	SchedulerInterval  time.Duration
	ShareTokenTTL      time.Duration

	NotifyWorkers   int
	NotifyQueueSize int
}

// LoadConfig loads configuration from environment variables and applies defaults where needed.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		AppEnv:             getEnv("APP_ENV", "development"),
		Port:               getEnv("PORT", "8080"),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		StoreDriver:        strings.ToLower(getEnv("STORE_DRIVER", StoreDriverPostgres)),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		CORSOrigins:        splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
		OTLPEndpoint:       os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		HTTPReadTimeout:    time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout:   time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 30)),
		HTTPIdleTimeout:    time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
		RateLimitPerMin:    getEnvInt("RATE_LIMIT_PER_MINUTE", 60),
		EventLookaheadDays: getEnvInt("EVENT_LOOKAHEAD_DAYS", 7),
		EventClosingHour:   getEnvInt("EVENT_CLOSING_HOUR", 21),
		SchedulerInterval:  getEnvDuration("SCHEDULER_INTERVAL", 24*time.Hour),
		ShareTokenTTL:      getEnvDuration("SHARE_TOKEN_TTL", 72*time.Hour),
		NotifyWorkers:      getEnvInt("NOTIFY_WORKERS", 4),
		NotifyQueueSize:    getEnvInt("NOTIFY_QUEUE_SIZE", 1024),
	}

	tz := getEnv("EVENT_TIMEZONE", "Asia/Seoul")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("EVENT_TIMEZONE %q: %w", tz, err)
	}
	cfg.EventLocation = loc

	switch cfg.StoreDriver {
	case StoreDriverPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required")
		}
	case StoreDriverMemory:
	default:
		return nil, fmt.Errorf("STORE_DRIVER must be %q or %q, got %q", StoreDriverPostgres, StoreDriverMemory, cfg.StoreDriver)
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.EventClosingHour < 1 || cfg.EventClosingHour > 23 {
		return nil, fmt.Errorf("EVENT_CLOSING_HOUR must be between 1 and 23, got %d", cfg.EventClosingHour)
	}
	if cfg.EventLookaheadDays < 0 {
		return nil, fmt.Errorf("EVENT_LOOKAHEAD_DAYS must not be negative, got %d", cfg.EventLookaheadDays)
	}
	if cfg.SchedulerInterval <= 0 {
		return nil, fmt.Errorf("SCHEDULER_INTERVAL must be positive")
	}
	if cfg.ShareTokenTTL <= 0 {
		return nil, fmt.Errorf("SHARE_TOKEN_TTL must be positive")
	}
	if cfg.NotifyWorkers < 1 || cfg.NotifyQueueSize < 1 {
		return nil, fmt.Errorf("NOTIFY_WORKERS and NOTIFY_QUEUE_SIZE must be at least 1")
	}

	return cfg, nil
}

// IsMemoryStore reports whether the in-memory store was selected.
func (c *Config) IsMemoryStore() bool {
	return c.StoreDriver == StoreDriverMemory
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

// getEnvDuration accepts Go duration strings ("90m", "24h").
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
