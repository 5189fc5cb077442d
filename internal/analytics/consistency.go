package analytics

import (
	"time"

	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/utils"
)

// Consistency returns the share of expected completions that h achieved
// between its creation and today, as a percentage capped at 100.
//
// Elapsed days are the whole days from CreatedAt to the start of today, plus
// today itself. Daily habits expect one completion per elapsed day; every
// other frequency expects one per full seven days.
func Consistency(h models.Habit, today time.Time, loc *time.Location) float64 {
	elapsed := utils.FullDaysBetween(h.CreatedAt, utils.StartOfDay(today, loc), loc) + 1

	expected := elapsed
	if _, ok := h.Schedule.(models.Daily); !ok {
		expected = elapsed / 7
	}
	if expected <= 0 {
		return 0
	}

	return min(100, 100*float64(len(h.CompletedDates))/float64(expected))
}

// MostConsistent returns the name and consistency of the most consistent
// habit. Ties go to the earliest habit in input order.
func MostConsistent(habits []models.Habit, today time.Time, loc *time.Location) (string, float64) {
	name, best := "", 0.0
	for i, h := range habits {
		c := Consistency(h, today, loc)
		if i == 0 || c > best {
			name, best = h.Name, c
		}
	}
	return name, best
}
