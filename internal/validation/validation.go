package validation

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/models"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictDuplicateHabitID     ConflictType = "duplicate_habit_id"
	ConflictDuplicateHabitName   ConflictType = "duplicate_habit_name"
	ConflictEmptyHabitName       ConflictType = "empty_habit_name"
	ConflictInvalidDateMarker    ConflictType = "invalid_date_marker"
	ConflictDuplicateCompletion  ConflictType = "duplicate_completion_day"
	ConflictCounterExceedsQuota  ConflictType = "counter_exceeds_quota"
	ConflictCounterWithoutMarker ConflictType = "counter_without_marker"
)

// Conflict represents a detected problem in the stored habit collection
type Conflict struct {
	Type        ConflictType
	Description string
	Date        string   // YYYY-MM-DD format (if applicable)
	HabitIDs    []string // IDs of habits involved
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	var report strings.Builder
	report.WriteString("Conflicts detected:\n")
	for _, conflict := range vr.Conflicts {
		fmt.Fprintf(&report, "- %s\n", conflict.Description)
	}
	return report.String()
}

// Validator checks a habit collection for broken invariants
type Validator struct {
	loc *time.Location
}

// New creates a new Validator that compares calendar days in loc
func New(loc *time.Location) *Validator {
	if loc == nil {
		loc = time.Local
	}
	return &Validator{loc: loc}
}

// ValidateHabits checks the whole collection
func (v *Validator) ValidateHabits(habits []models.Habit) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	idCount := make(map[string]int)
	nameIDs := make(map[string][]string)
	for _, h := range habits {
		idCount[h.ID]++
		name := strings.ToLower(strings.TrimSpace(h.Name))
		if name == "" {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictEmptyHabitName,
				Description: fmt.Sprintf("Habit %s has an empty name", h.ID),
				HabitIDs:    []string{h.ID},
			})
			continue
		}
		nameIDs[name] = append(nameIDs[name], h.ID)
	}

	for _, id := range sortedKeys(idCount) {
		if idCount[id] > 1 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictDuplicateHabitID,
				Description: fmt.Sprintf("Habit ID %q is used %d times", id, idCount[id]),
				HabitIDs:    []string{id},
			})
		}
	}

	for _, name := range sortedKeys(nameIDs) {
		if ids := nameIDs[name]; len(ids) > 1 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictDuplicateHabitName,
				Description: fmt.Sprintf("Duplicate habit name: \"%s\" (IDs: %v)", name, ids),
				HabitIDs:    ids,
			})
		}
	}

	for _, h := range habits {
		result.Conflicts = append(result.Conflicts, v.validateLedger(h)...)
	}

	return result
}

func (v *Validator) validateLedger(h models.Habit) []Conflict {
	var conflicts []Conflict

	days := make(map[string]int)
	for _, m := range h.CompletedDates {
		day, err := m.Day(v.loc)
		if err != nil {
			conflicts = append(conflicts, Conflict{
				Type:        ConflictInvalidDateMarker,
				Description: fmt.Sprintf("Habit \"%s\" has an invalid completion date: %s", h.Name, m),
				HabitIDs:    []string{h.ID},
			})
			continue
		}
		days[day.Format(constants.DateFormat)]++
	}
	for _, d := range sortedKeys(days) {
		if days[d] > 1 {
			conflicts = append(conflicts, Conflict{
				Type:        ConflictDuplicateCompletion,
				Description: fmt.Sprintf("Habit \"%s\" is marked complete %d times on %s", h.Name, days[d], d),
				Date:        d,
				HabitIDs:    []string{h.ID},
			})
		}
	}

	quota := 0
	if s, ok := h.Schedule.(models.MultipleDaily); ok {
		quota = s.TimesPerDay
	}
	markers := make([]models.DateMarker, 0, len(h.CompletionsCount))
	for m := range h.CompletionsCount {
		markers = append(markers, m)
	}
	sort.Slice(markers, func(i, j int) bool { return markers[i] < markers[j] })

	for _, m := range markers {
		count := h.CompletionsCount[m]
		if count <= 0 {
			continue
		}
		day, err := m.Day(v.loc)
		if err != nil {
			conflicts = append(conflicts, Conflict{
				Type:        ConflictInvalidDateMarker,
				Description: fmt.Sprintf("Habit \"%s\" has a counter for an invalid date: %s", h.Name, m),
				HabitIDs:    []string{h.ID},
			})
			continue
		}
		date := day.Format(constants.DateFormat)
		if days[date] == 0 {
			conflicts = append(conflicts, Conflict{
				Type:        ConflictCounterWithoutMarker,
				Description: fmt.Sprintf("Habit \"%s\" has a counter on %s but is not marked complete that day", h.Name, date),
				Date:        date,
				HabitIDs:    []string{h.ID},
			})
		}
		if quota > 0 && count > quota {
			conflicts = append(conflicts, Conflict{
				Type:        ConflictCounterExceedsQuota,
				Description: fmt.Sprintf("Habit \"%s\" has %d completions on %s (quota %d)", h.Name, count, date, quota),
				Date:        date,
				HabitIDs:    []string{h.ID},
			})
		}
	}

	return conflicts
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
