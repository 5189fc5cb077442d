package analytics

import (
	"sort"
	"time"

	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/utils"
)

// Streak returns the current streak of h.
//
// For daily habits this is the number of consecutive calendar days ending at
// the most recent completion. For every other frequency it is the total
// number of completion markers.
func Streak(h models.Habit, loc *time.Location) int {
	if _, ok := h.Schedule.(models.Daily); !ok {
		return len(h.CompletedDates)
	}

	days := completionDays(h, loc)
	if len(days) == 0 {
		return 0
	}

	streak := 1
	for i := len(days) - 1; i > 0; i-- {
		if utils.DaysBetween(days[i-1], days[i], loc) != 1 {
			break
		}
		streak++
	}
	return streak
}

// LongestRun returns the longest run of consecutive calendar days found in
// the completions of h, for any frequency.
func LongestRun(h models.Habit, loc *time.Location) int {
	days := completionDays(h, loc)
	if len(days) == 0 {
		return 0
	}

	longest, current := 1, 1
	for i := 1; i < len(days); i++ {
		if utils.DaysBetween(days[i-1], days[i], loc) == 1 {
			current++
			longest = max(longest, current)
		} else {
			current = 1
		}
	}
	return longest
}

// completionDays returns the distinct completion days of h in ascending
// order. Unparsable markers are skipped.
func completionDays(h models.Habit, loc *time.Location) []time.Time {
	seen := make(map[time.Time]bool, len(h.CompletedDates))
	days := make([]time.Time, 0, len(h.CompletedDates))
	for _, m := range h.CompletedDates {
		d, err := m.Day(loc)
		if err != nil || seen[d] {
			continue
		}
		seen[d] = true
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days
}
