package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/logger"
	"github.com/julianstephens/habitual/internal/migration"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/migrations"
)

// SQLiteStore keeps the habit slot in the kv table of a SQLite file.
type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{
		path: path,
	}
}

func (s *SQLiteStore) Init() error {
	return s.open()
}

// open creates the database file on first use and brings its schema up to date.
func (s *SQLiteStore) open() error {
	if s.db != nil {
		return nil
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	// A single connection serializes writers within the process.
	db.SetMaxOpenConns(1)

	if err := runMigrations(db, "sqlite", migration.SQLite); err != nil {
		db.Close()
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	s.db = db
	return nil
}

func (s *SQLiteStore) Load() ([]models.Habit, error) {
	if err := s.open(); err != nil {
		return nil, err
	}

	var value string
	err := s.db.QueryRow("SELECT value FROM kv WHERE key = ?", constants.HabitsSlot).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return []models.Habit{}, nil
		}
		return nil, fmt.Errorf("failed to read habits: %w", err)
	}

	return decodeHabits([]byte(value), s.path), nil
}

func (s *SQLiteStore) Save(habits []models.Habit) error {
	if err := s.open(); err != nil {
		return err
	}

	data, err := encodeHabits(habits)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(`
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, constants.HabitsSlot, string(data), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to save habits: %w", err)
	}

	logger.Debug("Saved habits", "backend", KindSQLite, "count", len(habits))
	return nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		err := s.db.Close()
		s.db = nil
		return err
	}
	return nil
}

func (s *SQLiteStore) GetConfigPath() string {
	return s.path
}

// GetDB returns the underlying database connection, or nil before the
// store has been opened.
func (s *SQLiteStore) GetDB() *sql.DB {
	return s.db
}

// runMigrations applies the embedded migrations for one dialect directory.
func runMigrations(db *sql.DB, dir string, dialect migration.Dialect) error {
	subFS, err := fs.Sub(migrations.FS, dir)
	if err != nil {
		return fmt.Errorf("failed to access %s migrations: %w", dir, err)
	}

	runner := migration.NewRunner(db, subFS, dialect)
	_, err = runner.ApplyMigrations(nil)
	return err
}

func (s *SQLiteStore) SchemaVersion() (int, int, error) {
	if err := s.open(); err != nil {
		return 0, 0, err
	}
	return schemaVersion(s.db, "sqlite", migration.SQLite)
}

func schemaVersion(db *sql.DB, dir string, dialect migration.Dialect) (int, int, error) {
	subFS, err := fs.Sub(migrations.FS, dir)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to access %s migrations: %w", dir, err)
	}

	runner := migration.NewRunner(db, subFS, dialect)
	current, err := runner.GetCurrentVersion()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to get current schema version: %w", err)
	}
	latest, err := runner.GetLatestVersion()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to get latest schema version: %w", err)
	}
	return current, latest, nil
}
