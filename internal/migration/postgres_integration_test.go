package migration

import (
	"database/sql"
	"io/fs"
	"os"
	"testing"

	_ "github.com/lib/pq"

	"github.com/julianstephens/habitual/migrations"
)

// Set POSTGRES_TEST_URL to run these tests, e.g.
// POSTGRES_TEST_URL="postgres://habitual@localhost:5432/habitual_test?sslmode=disable"
func setupPostgresTestDB(t *testing.T) *sql.DB {
	t.Helper()
	connStr := os.Getenv("POSTGRES_TEST_URL")
	if connStr == "" {
		t.Skip("POSTGRES_TEST_URL not set, skipping PostgreSQL integration test")
	}

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		t.Fatalf("failed to open postgres database: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Fatalf("failed to ping postgres database: %v", err)
	}

	t.Cleanup(func() {
		db.Exec("DROP TABLE IF EXISTS schema_version")
		db.Exec("DROP TABLE IF EXISTS kv")
		db.Close()
	})
	return db
}

func TestPostgresApplyEmbeddedMigrations(t *testing.T) {
	db := setupPostgresTestDB(t)

	sub, err := fs.Sub(migrations.FS, "postgres")
	if err != nil {
		t.Fatalf("failed to access postgres migrations: %v", err)
	}
	runner := NewRunner(db, sub, Postgres)

	if _, err := runner.ApplyMigrations(nil); err != nil {
		t.Fatalf("ApplyMigrations failed: %v", err)
	}

	version, err := runner.GetCurrentVersion()
	if err != nil {
		t.Fatalf("GetCurrentVersion failed: %v", err)
	}
	latest, _ := runner.GetLatestVersion()
	if version != latest {
		t.Errorf("expected version %d, got %d", latest, version)
	}

	if err := runner.SetVersion(latest); err != nil {
		t.Errorf("SetVersion with $1 placeholder failed: %v", err)
	}
}
