package ledger

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/habitual/internal/models"
)

var utc = time.UTC

func newHabit(t *testing.T, in models.HabitInput) models.Habit {
	t.Helper()
	h, err := models.NewHabit("h1", in, time.Date(2025, 6, 1, 0, 0, 0, 0, utc))
	require.NoError(t, err)
	return h
}

func TestToggleDailyIsInvolution(t *testing.T) {
	h := newHabit(t, models.HabitInput{Name: "Read", Frequency: models.FrequencyDaily})
	h.CompletedDates = []models.DateMarker{"2025-06-09"}

	for _, marker := range []models.DateMarker{"2025-06-10", "2025-06-09", "2025-06-10T00:00:00.000Z"} {
		once, err := Toggle(h, marker, utc)
		require.NoError(t, err)
		twice, err := Toggle(once, marker, utc)
		require.NoError(t, err)
		assert.ElementsMatch(t, h.CompletedDates, twice.CompletedDates, "marker %s", marker)
	}
}

func TestToggleBinaryMatchesByDay(t *testing.T) {
	h := newHabit(t, models.HabitInput{Name: "Read", Frequency: models.FrequencyWeekly})
	h.CompletedDates = []models.DateMarker{"2025-06-11T00:00:00.000Z"}

	got, err := Toggle(h, "2025-06-11", utc)
	require.NoError(t, err)
	assert.Empty(t, got.CompletedDates)
}

func TestToggleDoesNotMutateInput(t *testing.T) {
	h := newHabit(t, models.HabitInput{Name: "Water", Frequency: models.FrequencyMultipleDaily, TimesPerDay: 2})
	h.CompletedDates = []models.DateMarker{"2025-06-10"}
	h.CompletionsCount = map[models.DateMarker]int{"2025-06-10": 1}

	_, err := Toggle(h, "2025-06-10", utc)
	require.NoError(t, err)
	assert.Equal(t, []models.DateMarker{"2025-06-10"}, h.CompletedDates)
	assert.Equal(t, 1, h.CompletionsCount["2025-06-10"])
}

func TestToggleMultipleDailyCycle(t *testing.T) {
	for _, quota := range []int{1, 2, 3, 5} {
		h := newHabit(t, models.HabitInput{Name: "Water", Frequency: models.FrequencyMultipleDaily, TimesPerDay: quota})
		day := time.Date(2025, 6, 10, 0, 0, 0, 0, utc)
		marker := models.NewDateMarker(day, utc)

		cur := h
		for i := 1; i <= quota; i++ {
			var err error
			cur, err = Toggle(cur, marker, utc)
			require.NoError(t, err)
			assert.Equal(t, i, CountOn(cur, day, utc))
			assert.Len(t, cur.CompletedDates, 1)
		}

		cur, err := Toggle(cur, marker, utc)
		require.NoError(t, err)
		assert.Equal(t, 0, CountOn(cur, day, utc), "quota %d", quota)
		assert.Empty(t, cur.CompletedDates, "quota %d", quota)
		assert.Empty(t, cur.CompletionsCount, "quota %d", quota)
	}
}

func TestToggleMultipleDailyQuotaThree(t *testing.T) {
	h := newHabit(t, models.HabitInput{Name: "Water", Frequency: models.FrequencyMultipleDaily, TimesPerDay: 3})
	d := models.DateMarker("2025-06-10T00:00:00Z")

	var err error
	for range 3 {
		h, err = Toggle(h, d, utc)
		require.NoError(t, err)
	}
	assert.Equal(t, map[models.DateMarker]int{d: 3}, h.CompletionsCount)
	assert.Equal(t, []models.DateMarker{d}, h.CompletedDates)

	h, err = Toggle(h, d, utc)
	require.NoError(t, err)
	assert.Empty(t, h.CompletionsCount)
	assert.Empty(t, h.CompletedDates)
}

func TestToggleMultipleDailyKeepsExistingMarker(t *testing.T) {
	h := newHabit(t, models.HabitInput{Name: "Water", Frequency: models.FrequencyMultipleDaily, TimesPerDay: 2})
	h.CompletedDates = []models.DateMarker{"2025-06-10"}

	got, err := Toggle(h, "2025-06-10T00:00:00Z", utc)
	require.NoError(t, err)
	assert.Equal(t, []models.DateMarker{"2025-06-10"}, got.CompletedDates)
	assert.Equal(t, 1, CountOn(got, time.Date(2025, 6, 10, 12, 0, 0, 0, utc), utc))
}

func TestToggleCounterImpliesMembership(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	days := []models.DateMarker{"2025-06-09", "2025-06-10", "2025-06-11T00:00:00Z", "2025-06-12"}

	for _, quota := range []int{1, 2, 4} {
		h := newHabit(t, models.HabitInput{Name: "Water", Frequency: models.FrequencyMultipleDaily, TimesPerDay: quota})
		for range 200 {
			var err error
			h, err = Toggle(h, days[rng.Intn(len(days))], utc)
			require.NoError(t, err)

			for m, n := range h.CompletionsCount {
				day, err := m.Day(utc)
				require.NoError(t, err)
				assert.Greater(t, n, 0)
				assert.LessOrEqual(t, n, quota)
				assert.True(t, hasDay(h.CompletedDates, day, utc), "counter on %s without marker", m)
			}
			seen := map[string]bool{}
			for _, m := range h.CompletedDates {
				day, err := m.Day(utc)
				require.NoError(t, err)
				key := day.Format("2006-01-02")
				assert.False(t, seen[key], "duplicate marker for %s", key)
				seen[key] = true
			}
		}
	}
}

func TestToggleBinaryDropsStaleCounter(t *testing.T) {
	h := newHabit(t, models.HabitInput{Name: "Water", Frequency: models.FrequencyMultipleDaily, TimesPerDay: 3})
	h, err := Toggle(h, "2025-06-10", utc)
	require.NoError(t, err)

	h, err = h.WithInput(models.HabitInput{Name: "Water", Frequency: models.FrequencyDaily})
	require.NoError(t, err)

	h, err = Toggle(h, "2025-06-10", utc)
	require.NoError(t, err)
	assert.Empty(t, h.CompletedDates)
	assert.Empty(t, h.CompletionsCount)
}

func TestToggleCustomIgnoresEligibility(t *testing.T) {
	h := newHabit(t, models.HabitInput{Name: "Run", Frequency: models.FrequencyCustom, DaysOfWeek: []int{1, 3, 5}})

	// 2025-06-10 is a Tuesday.
	got, err := Toggle(h, "2025-06-10", utc)
	require.NoError(t, err)
	assert.Equal(t, []models.DateMarker{"2025-06-10"}, got.CompletedDates)
}

func TestToggleInvalidMarker(t *testing.T) {
	h := newHabit(t, models.HabitInput{Name: "Read", Frequency: models.FrequencyDaily})

	got, err := Toggle(h, "06/10/2025", utc)
	assert.ErrorIs(t, err, ErrInvalidMarker)
	assert.Empty(t, got.CompletedDates)
}

func TestCountOnWithoutCounter(t *testing.T) {
	h := newHabit(t, models.HabitInput{Name: "Read", Frequency: models.FrequencyDaily})
	assert.Equal(t, 0, CountOn(h, time.Date(2025, 6, 10, 0, 0, 0, 0, utc), utc))
}
