package infra

import (
	"strings"
	"testing"
	"time"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://example")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("EVENT_TIMEZONE", "")
	t.Setenv("EVENT_CLOSING_HOUR", "")
	t.Setenv("EVENT_LOOKAHEAD_DAYS", "")
	t.Setenv("SCHEDULER_INTERVAL", "")
	t.Setenv("SHARE_TOKEN_TTL", "")
}

func TestLoadConfigDefaults(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("PORT", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.StoreDriver != StoreDriverPostgres {
		t.Fatalf("StoreDriver = %q", cfg.StoreDriver)
	}
	if cfg.EventLocation.String() != "Asia/Seoul" {
		t.Fatalf("EventLocation = %s", cfg.EventLocation)
	}
	if cfg.EventLookaheadDays != 7 || cfg.EventClosingHour != 21 {
		t.Fatalf("event policy = %d days / %d h", cfg.EventLookaheadDays, cfg.EventClosingHour)
	}
	if cfg.SchedulerInterval != 24*time.Hour || cfg.ShareTokenTTL != 72*time.Hour {
		t.Fatalf("durations = %s / %s", cfg.SchedulerInterval, cfg.ShareTokenTTL)
	}
	if cfg.RateLimitPerMin != 60 {
		t.Fatalf("RateLimitPerMin = %d", cfg.RateLimitPerMin)
	}
}

func TestLoadConfigMemoryDriverSkipsDatabaseURL(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("DATABASE_URL", "")
	t.Setenv("STORE_DRIVER", "Memory")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if !cfg.IsMemoryStore() {
		t.Fatalf("IsMemoryStore() = false for %q", cfg.StoreDriver)
	}
}

func TestLoadConfigParsesOverrides(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("EVENT_TIMEZONE", "UTC")
	t.Setenv("SCHEDULER_INTERVAL", "90m")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.EventLocation != time.UTC {
		t.Fatalf("EventLocation = %s", cfg.EventLocation)
	}
	if cfg.SchedulerInterval != 90*time.Minute {
		t.Fatalf("SchedulerInterval = %s", cfg.SchedulerInterval)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://b.example" {
		t.Fatalf("CORSOrigins = %#v", cfg.CORSOrigins)
	}
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
		want string
	}{
		{name: "missing database url", key: "DATABASE_URL", val: "", want: "DATABASE_URL"},
		{name: "missing jwt secret", key: "JWT_SECRET", val: "", want: "JWT_SECRET"},
		{name: "unknown driver", key: "STORE_DRIVER", val: "sqlite", want: "STORE_DRIVER"},
		{name: "unknown timezone", key: "EVENT_TIMEZONE", val: "Mars/Olympus", want: "EVENT_TIMEZONE"},
		{name: "closing hour too large", key: "EVENT_CLOSING_HOUR", val: "24", want: "EVENT_CLOSING_HOUR"},
		{name: "closing hour midnight", key: "EVENT_CLOSING_HOUR", val: "0", want: "EVENT_CLOSING_HOUR"},
		{name: "negative lookahead", key: "EVENT_LOOKAHEAD_DAYS", val: "-1", want: "EVENT_LOOKAHEAD_DAYS"},
		{name: "zero share ttl", key: "SHARE_TOKEN_TTL", val: "0s", want: "SHARE_TOKEN_TTL"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			setBaseEnv(t)
			t.Setenv(tc.key, tc.val)

			_, err := LoadConfig()
			if err == nil {
				t.Fatalf("LoadConfig succeeded, want error mentioning %s", tc.want)
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error %q does not mention %s", err, tc.want)
			}
		})
	}
}
