package db_test

import (
	"path/filepath"
	"testing"

	"github.com/kento-1477/meal-log-app-new-sub002/internal/db"
)

func TestApplyMigrations(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "meallog.db")
	sqldb, err := db.Open(path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer sqldb.Close()

	if err := db.ApplyMigrations(sqldb); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	// Running twice must be a no-op.
	if err := db.ApplyMigrations(sqldb); err != nil {
		t.Fatalf("re-apply migrations: %v", err)
	}

	var applied int
	if err := sqldb.QueryRow(`SELECT COUNT(*) FROM schema_migrations`).Scan(&applied); err != nil {
		t.Fatalf("count migrations: %v", err)
	}
	if applied != 2 {
		t.Fatalf("expected 2 applied migrations, got %d", applied)
	}

	for _, table := range []string{"meal_logs", "targets"} {
		var name string
		err := sqldb.QueryRow(
			`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table,
		).Scan(&name)
		if err != nil {
			t.Fatalf("expected table %s to exist: %v", table, err)
		}
	}
}
