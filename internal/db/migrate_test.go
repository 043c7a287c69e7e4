package db

import (
	"strings"
	"testing"
	"testing/fstest"
)

func TestMigrationsEmbedded(t *testing.T) {
	ms, err := Migrations()
	if err != nil {
		t.Fatalf("Migrations returned error: %v", err)
	}
	if len(ms) == 0 || ms[0].Version != "0001_moa" {
		t.Fatalf("unexpected migrations: %+v", ms)
	}
	for _, want := range []string{"events_one_active_per_owner", "participations_event_user_key", "purchase_proofs_event_key", "pooled_amount >= 0"} {
		if !strings.Contains(ms[0].SQL, want) {
			t.Fatalf("schema is missing %q", want)
		}
	}
	if len(ms) < 2 || ms[1].Version != "0002_events_owner_deadline" || !strings.Contains(ms[1].SQL, "events_owner_deadline_key") {
		t.Fatalf("owner/deadline index migration missing: %+v", ms)
	}
}

func TestLoadMigrationsOrdersAndFilters(t *testing.T) {
	fsys := fstest.MapFS{
		"m/0002_b.sql": {Data: []byte("select 2")},
		"m/0001_a.sql": {Data: []byte("select 1")},
		"m/README.md":  {Data: []byte("docs")},
		"m/sub/x.sql":  {Data: []byte("ignored")},
	}
	ms, err := loadMigrations(fsys, "m")
	if err != nil {
		t.Fatalf("loadMigrations returned error: %v", err)
	}
	if len(ms) != 2 || ms[0].Version != "0001_a" || ms[1].Version != "0002_b" {
		t.Fatalf("unexpected order: %+v", ms)
	}
}
