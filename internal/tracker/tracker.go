// Package tracker owns the in-memory habit collection and mirrors every
// mutation to a storage provider.
package tracker

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/habitual/internal/ledger"
	"github.com/julianstephens/habitual/internal/logger"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/storage"
	"github.com/julianstephens/habitual/internal/utils"
)

var (
	// ErrHabitNotFound is returned when no habit matches an ID or reference
	ErrHabitNotFound = errors.New("habit not found")
	// ErrAmbiguousRef is returned when a reference matches more than one habit
	ErrAmbiguousRef = errors.New("habit reference is ambiguous")
)

// Tracker is the single owner of the habit collection. The in-memory
// collection only changes after the store has accepted the new state.
type Tracker struct {
	store  storage.Provider
	habits []models.Habit
	loc    *time.Location
	now    func() time.Time
	newID  func() string
}

// Option configures a Tracker
type Option func(*Tracker)

// WithLocation sets the location in which calendar days are computed.
func WithLocation(loc *time.Location) Option {
	return func(t *Tracker) {
		if loc != nil {
			t.loc = loc
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) {
		if now != nil {
			t.now = now
		}
	}
}

// WithIDGenerator replaces the UUID generator.
func WithIDGenerator(newID func() string) Option {
	return func(t *Tracker) {
		if newID != nil {
			t.newID = newID
		}
	}
}

// New loads the collection from store.
func New(store storage.Provider, opts ...Option) (*Tracker, error) {
	t := &Tracker{
		store: store,
		loc:   time.Local,
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(t)
	}

	if err := t.Reload(); err != nil {
		return nil, err
	}
	return t, nil
}

// Reload replaces the in-memory collection with the stored one.
func (t *Tracker) Reload() error {
	habits, err := t.store.Load()
	if err != nil {
		return fmt.Errorf("failed to load habits: %w", err)
	}
	t.habits = habits
	logger.Debug("Loaded habits", "count", len(habits), "store", t.store.GetConfigPath())
	return nil
}

// Habits returns a copy of the collection in insertion order.
func (t *Tracker) Habits() []models.Habit {
	out := make([]models.Habit, len(t.habits))
	for i, h := range t.habits {
		out[i] = h.Clone()
	}
	return out
}

// Location returns the location used for calendar-day identity.
func (t *Tracker) Location() *time.Location {
	return t.loc
}

// Now returns the current time in the tracker's location.
func (t *Tracker) Now() time.Time {
	return t.now().In(t.loc)
}

// Today returns midnight of the current day.
func (t *Tracker) Today() time.Time {
	return utils.StartOfDay(t.now(), t.loc)
}

// Get returns the habit with the given ID.
func (t *Tracker) Get(id string) (models.Habit, error) {
	i := t.index(id)
	if i < 0 {
		return models.Habit{}, fmt.Errorf("%w: %s", ErrHabitNotFound, id)
	}
	return t.habits[i].Clone(), nil
}

// Find resolves ref by exact ID, then by case-insensitive name, then by a
// unique ID prefix.
func (t *Tracker) Find(ref string) (models.Habit, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return models.Habit{}, fmt.Errorf("%w: empty reference", ErrHabitNotFound)
	}

	if i := t.index(ref); i >= 0 {
		return t.habits[i].Clone(), nil
	}

	var matches []int
	for i, h := range t.habits {
		if strings.EqualFold(h.Name, ref) {
			matches = append(matches, i)
		}
	}
	if len(matches) == 0 {
		for i, h := range t.habits {
			if strings.HasPrefix(h.ID, ref) {
				matches = append(matches, i)
			}
		}
	}

	switch len(matches) {
	case 0:
		return models.Habit{}, fmt.Errorf("%w: %s", ErrHabitNotFound, ref)
	case 1:
		return t.habits[matches[0]].Clone(), nil
	default:
		ids := make([]string, len(matches))
		for i, m := range matches {
			ids[i] = t.habits[m].ID
		}
		return models.Habit{}, fmt.Errorf("%w: %q matches %s", ErrAmbiguousRef, ref, strings.Join(ids, ", "))
	}
}

// Create adds a new habit built from in.
func (t *Tracker) Create(in models.HabitInput) (models.Habit, error) {
	h, err := models.NewHabit(t.newID(), in, t.now())
	if err != nil {
		return models.Habit{}, err
	}

	next := append(slices.Clone(t.habits), h)
	if err := t.commit(next); err != nil {
		return models.Habit{}, err
	}

	logger.Info("Created habit", "habit", h.ID, "frequency", h.Frequency())
	return h.Clone(), nil
}

// Update applies an edit to the habit with the given ID.
func (t *Tracker) Update(id string, in models.HabitInput) (models.Habit, error) {
	i := t.index(id)
	if i < 0 {
		return models.Habit{}, fmt.Errorf("%w: %s", ErrHabitNotFound, id)
	}

	edited, err := t.habits[i].Clone().WithInput(in)
	if err != nil {
		return models.Habit{}, err
	}

	next := slices.Clone(t.habits)
	next[i] = edited
	if err := t.commit(next); err != nil {
		return models.Habit{}, err
	}

	logger.Info("Updated habit", "habit", id)
	return edited.Clone(), nil
}

// Delete permanently removes the habit and its ledger.
func (t *Tracker) Delete(id string) error {
	i := t.index(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrHabitNotFound, id)
	}

	next := slices.Delete(slices.Clone(t.habits), i, i+1)
	if err := t.commit(next); err != nil {
		return err
	}

	logger.Info("Deleted habit", "habit", id)
	return nil
}

// Toggle applies one completion toggle for marker's calendar day.
func (t *Tracker) Toggle(id string, marker models.DateMarker) (models.Habit, error) {
	i := t.index(id)
	if i < 0 {
		return models.Habit{}, fmt.Errorf("%w: %s", ErrHabitNotFound, id)
	}

	toggled, err := ledger.Toggle(t.habits[i], marker, t.loc)
	if err != nil {
		return models.Habit{}, err
	}

	next := slices.Clone(t.habits)
	next[i] = toggled
	if err := t.commit(next); err != nil {
		return models.Habit{}, err
	}

	logger.Debug("Toggled habit", "habit", id, "date", marker)
	return toggled.Clone(), nil
}

// ToggleDay toggles the calendar day containing day.
func (t *Tracker) ToggleDay(id string, day time.Time) (models.Habit, error) {
	return t.Toggle(id, models.NewDateMarker(day, t.loc))
}

// commit saves next and adopts it only if the save succeeded.
func (t *Tracker) commit(next []models.Habit) error {
	if err := t.store.Save(next); err != nil {
		logger.Error("Failed to save habits", "error", err)
		return fmt.Errorf("failed to save habits: %w", err)
	}
	t.habits = next
	return nil
}

func (t *Tracker) index(id string) int {
	for i, h := range t.habits {
		if h.ID == id {
			return i
		}
	}
	return -1
}
