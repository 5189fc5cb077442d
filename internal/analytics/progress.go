package analytics

import (
	"fmt"
	"time"

	"github.com/julianstephens/habitual/internal/ledger"
	"github.com/julianstephens/habitual/internal/models"
)

// Progress returns the quota progress note shown next to a habit: "k/n
// today" for multiple-daily habits and "k/n this week" for n-times-weekly
// habits. Other frequencies have no note.
func Progress(h models.Habit, day time.Time, loc *time.Location) string {
	switch s := h.Schedule.(type) {
	case models.MultipleDaily:
		return fmt.Sprintf("%d/%d today", ledger.CountOn(h, day, loc), s.TimesPerDay)
	case models.NTimesWeekly:
		return fmt.Sprintf("%d/%d this week", WeeklyCount(h, day, loc), s.TimesPerWeek)
	default:
		return ""
	}
}

// StreakLabel formats a streak for display.
func StreakLabel(n int) string {
	if n == 1 {
		return "1 day streak"
	}
	return fmt.Sprintf("%d days streak", n)
}
