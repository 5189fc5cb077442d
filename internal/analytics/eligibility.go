// Package analytics derives read-only progress views from a habit collection.
// Every function is pure and recomputes from the habits it is given.
package analytics

import (
	"time"

	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/utils"
)

// IsActive reports whether h is due on day.
//
// Daily, multiple-daily and weekly habits are always active. Custom habits are
// active on their selected weekdays. N-times-weekly habits stay active until
// the week-to-date completions reach the weekly quota.
func IsActive(h models.Habit, day time.Time, loc *time.Location) bool {
	switch s := h.Schedule.(type) {
	case models.CustomDays:
		return s.Includes(day.In(loc).Weekday())
	case models.NTimesWeekly:
		return WeeklyCount(h, day, loc) < s.TimesPerWeek
	default:
		return true
	}
}

// CompletedOn reports whether h counts as completed on day. A custom habit is
// vacuously complete on a weekday it was never due, as long as it has at
// least one selected weekday.
func CompletedOn(h models.Habit, day time.Time, loc *time.Location) bool {
	if s, ok := h.Schedule.(models.CustomDays); ok && len(s.Days) > 0 {
		if !s.Includes(day.In(loc).Weekday()) {
			return true
		}
	}
	return HasCompletion(h, day, loc)
}

// HasCompletion reports whether a marker for day is recorded.
func HasCompletion(h models.Habit, day time.Time, loc *time.Location) bool {
	for _, m := range h.CompletedDates {
		if m.SameDay(day, loc) {
			return true
		}
	}
	return false
}

// DueOn returns the habits active on day, in input order.
func DueOn(habits []models.Habit, day time.Time, loc *time.Location) []models.Habit {
	due := []models.Habit{}
	for _, h := range habits {
		if IsActive(h, day, loc) {
			due = append(due, h)
		}
	}
	return due
}

// WeeklyCount counts completions whose day lies in [start of ref's week, ref].
func WeeklyCount(h models.Habit, ref time.Time, loc *time.Location) int {
	start := utils.StartOfWeek(ref, loc)
	end := utils.StartOfDay(ref, loc)

	count := 0
	for _, m := range h.CompletedDates {
		d, err := m.Day(loc)
		if err != nil {
			continue
		}
		if !d.Before(start) && !d.After(end) {
			count++
		}
	}
	return count
}
