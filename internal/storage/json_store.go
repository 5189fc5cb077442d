package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/logger"
	"github.com/julianstephens/habitual/internal/models"
)

// JSONStore keeps a key-value document in a single JSON file. The habit
// collection lives under the "habits" key; other keys are preserved.
type JSONStore struct {
	path string
}

func NewJSONStore(path string) *JSONStore {
	return &JSONStore{
		path: path,
	}
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return nil
	}

	return s.writeDocument(map[string]json.RawMessage{
		constants.HabitsSlot: json.RawMessage("[]"),
	})
}

func (s *JSONStore) Load() ([]models.Habit, error) {
	doc, err := s.readDocument()
	if err != nil {
		return nil, err
	}
	raw, ok := doc[constants.HabitsSlot]
	if !ok {
		return []models.Habit{}, nil
	}
	return decodeHabits(raw, s.path), nil
}

func (s *JSONStore) Save(habits []models.Habit) error {
	data, err := encodeHabits(habits)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	doc, err := s.readDocument()
	if err != nil {
		return err
	}
	doc[constants.HabitsSlot] = data

	return s.writeDocument(doc)
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}

// readDocument returns the stored slots. A missing file is an empty
// document, and so is one that does not parse.
func (s *JSONStore) readDocument() (map[string]json.RawMessage, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]json.RawMessage{}, nil
		}
		return nil, fmt.Errorf("failed to read storage: %w", err)
	}

	doc := map[string]json.RawMessage{}
	if len(data) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		logger.Warn("Ignoring malformed storage file", "path", s.path, "error", err)
		return map[string]json.RawMessage{}, nil
	}
	if doc == nil {
		doc = map[string]json.RawMessage{}
	}
	return doc, nil
}

// writeDocument replaces the file atomically.
func (s *JSONStore) writeDocument(doc map[string]json.RawMessage) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}
