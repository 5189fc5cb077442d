package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/julianstephens/habitual/internal/logger"
	"github.com/julianstephens/habitual/internal/models"
)

// Kind identifies a storage backend
type Kind string

const (
	KindSQLite   Kind = "sqlite"
	KindJSON     Kind = "json"
	KindPostgres Kind = "postgres"
	KindRedis    Kind = "redis"
)

// DetectKind picks the backend for a storage target.
func DetectKind(target string) Kind {
	switch {
	case strings.HasPrefix(target, "postgres://"), strings.HasPrefix(target, "postgresql://"):
		return KindPostgres
	case strings.HasPrefix(target, "redis://"), strings.HasPrefix(target, "rediss://"):
		return KindRedis
	case strings.EqualFold(filepath.Ext(target), ".json"):
		return KindJSON
	default:
		return KindSQLite
	}
}

// IsFileBackend reports whether kind keeps its data in a local file.
func (k Kind) IsFileBackend() bool {
	return k == KindSQLite || k == KindJSON
}

// Open returns an unopened provider for target. Connections and files are
// opened lazily by Init, Load or Save.
func Open(target string) (Provider, error) {
	return open(target, false)
}

// OpenTrusted is Open for targets read from the OS keyring, where a
// PostgreSQL password may be embedded in the connection string.
func OpenTrusted(target string) (Provider, error) {
	return open(target, true)
}

func open(target string, allowCredentials bool) (Provider, error) {
	if strings.TrimSpace(target) == "" {
		return nil, fmt.Errorf("storage target cannot be empty")
	}

	switch DetectKind(target) {
	case KindPostgres:
		if ok, err := ValidateConnString(target); !ok {
			if !allowCredentials || !errors.Is(err, ErrEmbeddedCredentials) {
				return nil, err
			}
		}
		return NewPostgresStore(target), nil
	case KindRedis:
		if err := ValidateRedisURL(target); err != nil {
			if !allowCredentials || !errors.Is(err, ErrEmbeddedCredentials) {
				return nil, err
			}
		}
		return NewRedisStore(target)
	case KindJSON:
		return NewJSONStore(target), nil
	default:
		return NewSQLiteStore(target), nil
	}
}

// decodeHabits parses a stored slot value. Malformed content is logged and
// treated as an empty collection.
func decodeHabits(data []byte, source string) []models.Habit {
	if len(strings.TrimSpace(string(data))) == 0 {
		return []models.Habit{}
	}

	var habits []models.Habit
	if err := json.Unmarshal(data, &habits); err != nil {
		logger.Warn("Ignoring malformed habit data", "source", source, "error", err)
		return []models.Habit{}
	}
	if habits == nil {
		habits = []models.Habit{}
	}
	return habits
}

func encodeHabits(habits []models.Habit) ([]byte, error) {
	if habits == nil {
		habits = []models.Habit{}
	}
	data, err := json.Marshal(habits)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize habits: %w", err)
	}
	return data, nil
}
