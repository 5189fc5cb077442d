package analytics

import (
	"time"

	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/utils"
)

// CalendarDay is one cell of a habit's month view
type CalendarDay struct {
	Date      time.Time
	Completed bool
	Active    bool
}

// Month returns one entry per day of month's calendar month.
func Month(h models.Habit, month time.Time, loc *time.Location) []CalendarDay {
	days := utils.MonthDays(month, loc)
	out := make([]CalendarDay, 0, len(days))
	for _, d := range days {
		out = append(out, CalendarDay{
			Date:      d,
			Completed: HasCompletion(h, d, loc),
			Active:    IsActive(h, d, loc),
		})
	}
	return out
}
