package shared

import (
	"database/sql"
	"testing"
)

func newMigratedDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := RunMigrations(db); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}
	return db
}

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()
	var count int
	err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", name).Scan(&count)
	if err != nil {
		t.Fatalf("Failed to check table %s: %v", name, err)
	}
	return count > 0
}

func TestRunMigrations(t *testing.T) {
	db := newMigratedDB(t)

	t.Run("creates the journal schema", func(t *testing.T) {
		for _, table := range []string{"schema_migrations", "import_history", "import_history_sequence"} {
			if !tableExists(t, db, table) {
				t.Errorf("expected table %s", table)
			}
		}
	})

	t.Run("seeds the sequence row", func(t *testing.T) {
		var value int
		if err := db.QueryRow("SELECT value FROM import_history_sequence WHERE id = 1").Scan(&value); err != nil {
			t.Fatalf("Failed to read sequence: %v", err)
		}
		if value != 0 {
			t.Errorf("expected initial sequence 0, got %d", value)
		}
	})

	t.Run("is idempotent", func(t *testing.T) {
		if err := RunMigrations(db); err != nil {
			t.Fatalf("second run failed: %v", err)
		}
		var applied int
		if err := db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&applied); err != nil {
			t.Fatal(err)
		}
		if applied != 1 {
			t.Errorf("expected each migration recorded once, got %d rows", applied)
		}
	})
}

func TestRollbackMigration(t *testing.T) {
	db := newMigratedDB(t)

	if err := RollbackMigration(db); err != nil {
		t.Fatalf("RollbackMigration failed: %v", err)
	}
	if tableExists(t, db, "import_history") {
		t.Error("expected import_history dropped")
	}

	if err := RollbackMigration(db); err == nil {
		t.Error("expected an error with nothing left to roll back")
	}
}
