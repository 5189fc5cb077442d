package tracker

import (
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/habitual/internal/analytics"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/storage"
)

// Wednesday, June 11 2025.
var fixedNow = time.Date(2025, 6, 11, 14, 30, 0, 0, time.UTC)

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%04d", n)
	}
}

func newTracker(t *testing.T, store storage.Provider) *Tracker {
	t.Helper()
	tr, err := New(store,
		WithLocation(time.UTC),
		WithClock(func() time.Time { return fixedNow }),
		WithIDGenerator(sequentialIDs()),
	)
	require.NoError(t, err)
	return tr
}

func jsonStore(t *testing.T) *storage.JSONStore {
	t.Helper()
	return storage.NewJSONStore(filepath.Join(t.TempDir(), "habits.json"))
}

// failingStore accepts loads and rejects saves once failSaves is set.
type failingStore struct {
	habits    []models.Habit
	failSaves bool
}

func (s *failingStore) Init() error                   { return nil }
func (s *failingStore) Close() error                  { return nil }
func (s *failingStore) GetConfigPath() string         { return "memory" }
func (s *failingStore) Load() ([]models.Habit, error) { return s.habits, nil }
func (s *failingStore) Save(h []models.Habit) error {
	if s.failSaves {
		return errors.New("disk full")
	}
	s.habits = h
	return nil
}

func TestCreatePersists(t *testing.T) {
	store := jsonStore(t)
	tr := newTracker(t, store)

	h, err := tr.Create(models.HabitInput{Name: "Read", Frequency: models.FrequencyDaily})
	require.NoError(t, err)
	assert.Equal(t, "id-0001", h.ID)
	assert.Equal(t, fixedNow, h.CreatedAt)

	reopened := newTracker(t, store)
	habits := reopened.Habits()
	require.Len(t, habits, 1)
	assert.Equal(t, "Read", habits[0].Name)
}

func TestCreateRejectsEmptyName(t *testing.T) {
	tr := newTracker(t, jsonStore(t))

	_, err := tr.Create(models.HabitInput{Name: " ", Frequency: models.FrequencyDaily})
	assert.ErrorIs(t, err, models.ErrInvalidHabit)
	assert.Empty(t, tr.Habits())
}

func TestUpdateKeepsLedger(t *testing.T) {
	tr := newTracker(t, jsonStore(t))
	h, err := tr.Create(models.HabitInput{Name: "Water", Frequency: models.FrequencyMultipleDaily, TimesPerDay: 2})
	require.NoError(t, err)
	_, err = tr.ToggleDay(h.ID, fixedNow)
	require.NoError(t, err)

	edited, err := tr.Update(h.ID, models.HabitInput{Name: "Hydrate", Frequency: models.FrequencyDaily})
	require.NoError(t, err)
	assert.Equal(t, "Hydrate", edited.Name)
	assert.Len(t, edited.CompletedDates, 1)
	assert.Len(t, edited.CompletionsCount, 1)
	assert.Equal(t, h.CreatedAt, edited.CreatedAt)
}

func TestDelete(t *testing.T) {
	store := jsonStore(t)
	tr := newTracker(t, store)
	a, err := tr.Create(models.HabitInput{Name: "A", Frequency: models.FrequencyDaily})
	require.NoError(t, err)
	b, err := tr.Create(models.HabitInput{Name: "B", Frequency: models.FrequencyDaily})
	require.NoError(t, err)

	require.NoError(t, tr.Delete(a.ID))
	habits := tr.Habits()
	require.Len(t, habits, 1)
	assert.Equal(t, b.ID, habits[0].ID)

	stored, err := store.Load()
	require.NoError(t, err)
	assert.Len(t, stored, 1)

	c, err := tr.Create(models.HabitInput{Name: "C", Frequency: models.FrequencyDaily})
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, c.ID)
}

func TestUnknownIDLeavesCollectionUntouched(t *testing.T) {
	tr := newTracker(t, jsonStore(t))
	_, err := tr.Create(models.HabitInput{Name: "A", Frequency: models.FrequencyDaily})
	require.NoError(t, err)
	before := tr.Habits()

	_, err = tr.Toggle("missing", "2025-06-11")
	assert.ErrorIs(t, err, ErrHabitNotFound)
	_, err = tr.Update("missing", models.HabitInput{Name: "X", Frequency: models.FrequencyDaily})
	assert.ErrorIs(t, err, ErrHabitNotFound)
	assert.ErrorIs(t, tr.Delete("missing"), ErrHabitNotFound)
	_, err = tr.Get("missing")
	assert.ErrorIs(t, err, ErrHabitNotFound)

	assert.Equal(t, before, tr.Habits())
}

func TestSaveFailureRollsBack(t *testing.T) {
	store := &failingStore{}
	tr := newTracker(t, store)
	h, err := tr.Create(models.HabitInput{Name: "Read", Frequency: models.FrequencyDaily})
	require.NoError(t, err)

	store.failSaves = true

	_, err = tr.Create(models.HabitInput{Name: "Run", Frequency: models.FrequencyDaily})
	assert.Error(t, err)
	_, err = tr.ToggleDay(h.ID, fixedNow)
	assert.Error(t, err)
	assert.Error(t, tr.Delete(h.ID))

	habits := tr.Habits()
	require.Len(t, habits, 1)
	assert.Empty(t, habits[0].CompletedDates)
}

func TestToggleInvalidMarker(t *testing.T) {
	tr := newTracker(t, jsonStore(t))
	h, err := tr.Create(models.HabitInput{Name: "Read", Frequency: models.FrequencyDaily})
	require.NoError(t, err)

	_, err = tr.Toggle(h.ID, "soon")
	assert.Error(t, err)
}

func TestHabitsReturnsCopies(t *testing.T) {
	tr := newTracker(t, jsonStore(t))
	h, err := tr.Create(models.HabitInput{Name: "Read", Frequency: models.FrequencyDaily})
	require.NoError(t, err)
	_, err = tr.ToggleDay(h.ID, fixedNow)
	require.NoError(t, err)

	habits := tr.Habits()
	habits[0].CompletedDates[0] = "1999-01-01"

	got, err := tr.Get(h.ID)
	require.NoError(t, err)
	assert.NotEqual(t, models.DateMarker("1999-01-01"), got.CompletedDates[0])
}

func TestFind(t *testing.T) {
	ids := []string{"3f2a9c10-0000-4000-8000-000000000001", "3f9b1d20-0000-4000-8000-000000000002"}
	next := 0
	tr, err := New(jsonStore(t),
		WithLocation(time.UTC),
		WithIDGenerator(func() string { next++; return ids[next-1] }),
	)
	require.NoError(t, err)

	read, err := tr.Create(models.HabitInput{Name: "Read", Frequency: models.FrequencyDaily})
	require.NoError(t, err)
	run, err := tr.Create(models.HabitInput{Name: "Run", Frequency: models.FrequencyDaily})
	require.NoError(t, err)

	tests := []struct {
		name    string
		ref     string
		wantID  string
		wantErr error
	}{
		{"exact id", ids[0], read.ID, nil},
		{"name ignores case", "READ", read.ID, nil},
		{"unique prefix", "3f9b", run.ID, nil},
		{"ambiguous prefix", "3f", "", ErrAmbiguousRef},
		{"unknown", "swim", "", ErrHabitNotFound},
		{"empty", " ", "", ErrHabitNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := tr.Find(tt.ref)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, h.ID)
		})
	}
}

func TestNTimesWeeklyThroughTracker(t *testing.T) {
	tr := newTracker(t, jsonStore(t))
	h, err := tr.Create(models.HabitInput{Name: "Gym", Frequency: models.FrequencyNTimesWeekly, TimesPerWeek: 2})
	require.NoError(t, err)

	monday := time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC)
	wednesday := time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC)
	friday := time.Date(2025, 6, 13, 0, 0, 0, 0, time.UTC)

	_, err = tr.ToggleDay(h.ID, monday)
	require.NoError(t, err)
	h, err = tr.ToggleDay(h.ID, wednesday)
	require.NoError(t, err)

	assert.Equal(t, 2, analytics.WeeklyCount(h, wednesday, tr.Location()))
	assert.False(t, analytics.IsActive(h, wednesday, tr.Location()))

	h, err = tr.ToggleDay(h.ID, friday)
	require.NoError(t, err)
	assert.Len(t, h.CompletedDates, 3)
}

func TestToday(t *testing.T) {
	tr := newTracker(t, jsonStore(t))
	assert.Equal(t, time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC), tr.Today())
	assert.Equal(t, fixedNow, tr.Now())
}
