package database

import (
	"io/fs"
	"strings"
	"testing"
)

func TestEmbeddedMigrations(t *testing.T) {
	entries, err := fs.ReadDir(migrationsFS, "migrations")
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}

	ups, downs := 0, 0
	for _, e := range entries {
		switch {
		case strings.HasSuffix(e.Name(), ".up.sql"):
			ups++
		case strings.HasSuffix(e.Name(), ".down.sql"):
			downs++
		}
	}

	if ups != 3 || downs != 3 {
		t.Errorf("Expected 3 up and 3 down migrations, got %d up, %d down", ups, downs)
	}
}

func TestTimesheetMigrationEnforcesOneEntryPerTaskAndUser(t *testing.T) {
	data, err := fs.ReadFile(migrationsFS, "migrations/000003_create_timesheet_entries.up.sql")
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if !strings.Contains(string(data), "UNIQUE (task_id, user_id)") {
		t.Error("Expected unique constraint on (task_id, user_id)")
	}
}
