package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidHabit is returned when a habit or its input violates the model rules
var ErrInvalidHabit = errors.New("invalid habit")

// Habit represents a recurring practice to track
type Habit struct {
	ID          string
	Name        string
	Description string
	Schedule    Schedule

	// CompletedDates holds at most one marker per calendar day.
	CompletedDates []DateMarker
	// CompletionsCount is written only by multiple-daily toggles.
	CompletionsCount map[DateMarker]int

	CreatedAt time.Time
}

// HabitInput is the user-facing shape of a habit, as entered in a form or on
// the command line.
type HabitInput struct {
	Name         string    `validate:"required,max=200"`
	Description  string    `validate:"max=2000"`
	Frequency    Frequency `validate:"required,frequency"`
	DaysOfWeek   []int     `validate:"omitempty,dive,min=0,max=6"`
	TimesPerDay  int       `validate:"min=0,max=1000"`
	TimesPerWeek int       `validate:"min=0,max=1000"`
}

// Schedule builds the recurrence rule described by the input.
func (in HabitInput) Schedule() (Schedule, error) {
	days := make([]time.Weekday, 0, len(in.DaysOfWeek))
	for _, d := range in.DaysOfWeek {
		days = append(days, time.Weekday(d))
	}
	return NewSchedule(in.Frequency, days, in.TimesPerDay, in.TimesPerWeek)
}

// Input returns the form shape of an existing habit, for pre-filling edits.
func (h Habit) Input() HabitInput {
	in := HabitInput{
		Name:        h.Name,
		Description: h.Description,
		Frequency:   h.Frequency(),
	}
	switch s := h.Schedule.(type) {
	case CustomDays:
		for _, d := range s.Days {
			in.DaysOfWeek = append(in.DaysOfWeek, int(d))
		}
	case MultipleDaily:
		in.TimesPerDay = s.TimesPerDay
	case NTimesWeekly:
		in.TimesPerWeek = s.TimesPerWeek
	}
	return in
}

// NewHabit creates a habit with an empty completion ledger.
func NewHabit(id string, in HabitInput, now time.Time) (Habit, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return Habit{}, fmt.Errorf("%w: name is required", ErrInvalidHabit)
	}
	if id == "" {
		return Habit{}, fmt.Errorf("%w: id is required", ErrInvalidHabit)
	}
	sched, err := in.Schedule()
	if err != nil {
		return Habit{}, err
	}
	return Habit{
		ID:               id,
		Name:             name,
		Description:      strings.TrimSpace(in.Description),
		Schedule:         sched,
		CompletedDates:   []DateMarker{},
		CompletionsCount: map[DateMarker]int{},
		CreatedAt:        now,
	}, nil
}

// WithInput applies an edit. ID, CreatedAt and the completion ledger are
// carried over unchanged, even when the frequency changes.
func (h Habit) WithInput(in HabitInput) (Habit, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return Habit{}, fmt.Errorf("%w: name is required", ErrInvalidHabit)
	}
	sched, err := in.Schedule()
	if err != nil {
		return Habit{}, err
	}
	h.Name = name
	h.Description = strings.TrimSpace(in.Description)
	h.Schedule = sched
	return h, nil
}

// Frequency returns the frequency of the habit's schedule.
func (h Habit) Frequency() Frequency {
	if h.Schedule == nil {
		return FrequencyDaily
	}
	return h.Schedule.Frequency()
}

// Label returns the display label of the habit's schedule.
func (h Habit) Label() string {
	if h.Schedule == nil {
		return Daily{}.Label()
	}
	return h.Schedule.Label()
}

// Clone returns a copy that shares no slices or maps with h.
func (h Habit) Clone() Habit {
	out := h
	out.CompletedDates = append([]DateMarker{}, h.CompletedDates...)
	out.CompletionsCount = make(map[DateMarker]int, len(h.CompletionsCount))
	for k, v := range h.CompletionsCount {
		out.CompletionsCount[k] = v
	}
	if s, ok := h.Schedule.(CustomDays); ok {
		out.Schedule = CustomDays{Days: append([]time.Weekday{}, s.Days...)}
	}
	return out
}

// habitRecord is the persisted JSON shape of a habit.
type habitRecord struct {
	ID               string             `json:"id"`
	Name             string             `json:"name"`
	Description      string             `json:"description"`
	Frequency        Frequency          `json:"frequency"`
	DaysOfWeek       []int              `json:"daysOfWeek,omitempty"`
	TimesPerDay      int                `json:"timesPerDay,omitempty"`
	TimesPerWeek     int                `json:"timesPerWeek,omitempty"`
	CompletedDates   []DateMarker       `json:"completedDates"`
	CompletionsCount map[DateMarker]int `json:"completionsCount,omitempty"`
	CreatedAt        time.Time          `json:"createdAt"`
}

// MarshalJSON writes only the schedule field relevant to the frequency.
func (h Habit) MarshalJSON() ([]byte, error) {
	in := h.Input()
	rec := habitRecord{
		ID:               h.ID,
		Name:             h.Name,
		Description:      h.Description,
		Frequency:        in.Frequency,
		DaysOfWeek:       in.DaysOfWeek,
		TimesPerDay:      in.TimesPerDay,
		TimesPerWeek:     in.TimesPerWeek,
		CompletedDates:   h.CompletedDates,
		CompletionsCount: h.CompletionsCount,
		CreatedAt:        h.CreatedAt,
	}
	if rec.CompletedDates == nil {
		rec.CompletedDates = []DateMarker{}
	}
	return json.Marshal(rec)
}

// UnmarshalJSON applies defaults for missing schedule fields. An unknown
// frequency is an error.
func (h *Habit) UnmarshalJSON(data []byte) error {
	var rec habitRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return err
	}
	in := HabitInput{
		Frequency:    rec.Frequency,
		DaysOfWeek:   rec.DaysOfWeek,
		TimesPerDay:  rec.TimesPerDay,
		TimesPerWeek: rec.TimesPerWeek,
	}
	sched, err := in.Schedule()
	if err != nil {
		return fmt.Errorf("habit %q: %w", rec.ID, err)
	}

	*h = Habit{
		ID:               rec.ID,
		Name:             rec.Name,
		Description:      rec.Description,
		Schedule:         sched,
		CompletedDates:   rec.CompletedDates,
		CompletionsCount: rec.CompletionsCount,
		CreatedAt:        rec.CreatedAt,
	}
	if h.CompletedDates == nil {
		h.CompletedDates = []DateMarker{}
	}
	if h.CompletionsCount == nil {
		h.CompletionsCount = map[DateMarker]int{}
	}
	return nil
}
