package analytics

import (
	"math"
	"time"

	"github.com/julianstephens/habitual/internal/models"
)

// Summary aggregates progress across the whole collection
type Summary struct {
	TotalHabits    int
	CompletedToday int
	// CompletionRate is a rounded percentage in [0, 100].
	CompletionRate int

	LongestStreak      int
	LongestStreakHabit string

	MostConsistentHabit string
	MostConsistency     float64

	FrequencyCounts  map[models.Frequency]int
	TotalCompletions int
}

// Summarize computes the aggregate summary as of today. An empty collection
// yields a zeroed summary.
func Summarize(habits []models.Habit, today time.Time, loc *time.Location) Summary {
	s := Summary{
		TotalHabits:     len(habits),
		FrequencyCounts: make(map[models.Frequency]int, len(models.Frequencies)),
	}
	for _, f := range models.Frequencies {
		s.FrequencyCounts[f] = 0
	}

	for _, h := range habits {
		if CompletedOn(h, today, loc) {
			s.CompletedToday++
		}
		if run := LongestRun(h, loc); run > s.LongestStreak {
			s.LongestStreak = run
			s.LongestStreakHabit = h.Name
		}
		s.FrequencyCounts[h.Frequency()]++
		s.TotalCompletions += len(h.CompletedDates)
	}

	if s.TotalHabits > 0 {
		s.CompletionRate = int(math.Round(100 * float64(s.CompletedToday) / float64(s.TotalHabits)))
	}
	s.MostConsistentHabit, s.MostConsistency = MostConsistent(habits, today, loc)

	return s
}
