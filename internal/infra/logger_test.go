package infra

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
)

func TestNewLoggerProductionIsJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "production")
	logger.Debug().Msg("hidden")
	logger.Info().Str("event_id", "E").Msg("visible")

	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("output is not a single JSON line: %q (%v)", buf.String(), err)
	}
	if entry["message"] != "visible" || entry["event_id"] != "E" || entry["env"] != "production" {
		t.Fatalf("unexpected entry: %#v", entry)
	}
}

func TestNewLoggerDevelopmentLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "development")
	if logger.GetLevel() != zerolog.DebugLevel {
		t.Fatalf("level = %s, want debug", logger.GetLevel())
	}
}
