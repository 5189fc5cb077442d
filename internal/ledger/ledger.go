// Package ledger implements the completion toggle for each habit frequency.
package ledger

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/habitual/internal/models"
)

// ErrInvalidMarker is returned when a date marker cannot be parsed
var ErrInvalidMarker = errors.New("invalid date marker")

// Toggle applies one completion toggle for the marker's calendar day and
// returns the updated habit. h itself is never modified.
//
// Binary frequencies add a marker for the day or remove the existing one.
// Multiple-daily habits count up to TimesPerDay; the toggle after the quota
// is reached clears the day.
func Toggle(h models.Habit, marker models.DateMarker, loc *time.Location) (models.Habit, error) {
	day, err := marker.Day(loc)
	if err != nil {
		return h, fmt.Errorf("%w: %q", ErrInvalidMarker, marker)
	}

	out := h.Clone()
	switch s := h.Schedule.(type) {
	case models.MultipleDaily:
		toggleCounted(&out, marker, day, s.TimesPerDay, loc)
	default:
		toggleBinary(&out, marker, day, loc)
	}
	return out, nil
}

func toggleBinary(h *models.Habit, marker models.DateMarker, day time.Time, loc *time.Location) {
	if hasDay(h.CompletedDates, day, loc) {
		h.CompletedDates = removeDay(h.CompletedDates, day, loc)
		// Counters left from an earlier multiple-daily schedule must not
		// outlive the marker they belong to.
		clearCounters(h.CompletionsCount, day, loc)
		return
	}
	h.CompletedDates = append(h.CompletedDates, marker)
}

func toggleCounted(h *models.Habit, marker models.DateMarker, day time.Time, quota int, loc *time.Location) {
	key, count, found := findCounter(h.CompletionsCount, day, loc)

	switch {
	case !found || count <= 0:
		if found {
			delete(h.CompletionsCount, key)
		}
		h.CompletionsCount[marker] = 1
		if !hasDay(h.CompletedDates, day, loc) {
			h.CompletedDates = append(h.CompletedDates, marker)
		}
	case count < quota:
		h.CompletionsCount[key] = count + 1
	default:
		clearCounters(h.CompletionsCount, day, loc)
		h.CompletedDates = removeDay(h.CompletedDates, day, loc)
	}
}

// CountOn returns the multiple-daily counter recorded for day, or 0.
func CountOn(h models.Habit, day time.Time, loc *time.Location) int {
	_, count, _ := findCounter(h.CompletionsCount, day, loc)
	return count
}

func hasDay(markers []models.DateMarker, day time.Time, loc *time.Location) bool {
	for _, m := range markers {
		if m.SameDay(day, loc) {
			return true
		}
	}
	return false
}

func removeDay(markers []models.DateMarker, day time.Time, loc *time.Location) []models.DateMarker {
	out := markers[:0]
	for _, m := range markers {
		if !m.SameDay(day, loc) {
			out = append(out, m)
		}
	}
	return out
}

func findCounter(counts map[models.DateMarker]int, day time.Time, loc *time.Location) (models.DateMarker, int, bool) {
	for m, n := range counts {
		if m.SameDay(day, loc) {
			return m, n, true
		}
	}
	return "", 0, false
}

func clearCounters(counts map[models.DateMarker]int, day time.Time, loc *time.Location) {
	for m := range counts {
		if m.SameDay(day, loc) {
			delete(counts, m)
		}
	}
}
