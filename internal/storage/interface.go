package storage

import "github.com/julianstephens/habitual/internal/models"

// Provider persists the full habit collection in a single key-value slot.
type Provider interface {
	// Lifecycle
	Init() error
	Close() error

	// Load returns the stored collection. A missing or malformed slot
	// yields an empty collection; only I/O failures are errors.
	Load() ([]models.Habit, error)
	// Save overwrites the slot with habits.
	Save(habits []models.Habit) error

	// GetConfigPath returns the file path or connection target of the store.
	GetConfigPath() string
}

// SchemaChecker is implemented by backends that keep a versioned schema.
type SchemaChecker interface {
	// SchemaVersion returns the applied and the newest known schema version.
	SchemaVersion() (current, latest int, err error)
}
