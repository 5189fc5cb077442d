package models

import (
	"fmt"
	"slices"
	"time"
)

// Frequency names a recurrence rule. The string values are the persisted form.
type Frequency string

const (
	FrequencyDaily         Frequency = "daily"
	FrequencyWeekly        Frequency = "weekly"
	FrequencyCustom        Frequency = "custom"
	FrequencyMultipleDaily Frequency = "multiple-daily"
	FrequencyNTimesWeekly  Frequency = "n-times-weekly"
)

// Frequencies lists every frequency in display order.
var Frequencies = []Frequency{
	FrequencyDaily,
	FrequencyWeekly,
	FrequencyCustom,
	FrequencyMultipleDaily,
	FrequencyNTimesWeekly,
}

// Valid reports whether f is one of the known frequencies.
func (f Frequency) Valid() bool {
	return slices.Contains(Frequencies, f)
}

// Schedule is the recurrence rule of a habit. Exactly one concrete type per
// frequency exists, and each carries only the fields its rule needs.
type Schedule interface {
	Frequency() Frequency
	Label() string
	isSchedule()
}

type Daily struct{}

type Weekly struct{}

// CustomDays is due on the listed weekdays only.
type CustomDays struct {
	Days []time.Weekday
}

// MultipleDaily must be checked off TimesPerDay times per day.
type MultipleDaily struct {
	TimesPerDay int
}

// NTimesWeekly must be completed TimesPerWeek times per Sunday-based week.
type NTimesWeekly struct {
	TimesPerWeek int
}

func (Daily) Frequency() Frequency         { return FrequencyDaily }
func (Weekly) Frequency() Frequency        { return FrequencyWeekly }
func (CustomDays) Frequency() Frequency    { return FrequencyCustom }
func (MultipleDaily) Frequency() Frequency { return FrequencyMultipleDaily }
func (NTimesWeekly) Frequency() Frequency  { return FrequencyNTimesWeekly }

func (Daily) Label() string      { return "Daily" }
func (Weekly) Label() string     { return "Weekly" }
func (CustomDays) Label() string { return "Custom Days" }
func (s MultipleDaily) Label() string {
	return fmt.Sprintf("%dx Daily", s.TimesPerDay)
}
func (s NTimesWeekly) Label() string {
	return fmt.Sprintf("%dx Weekly", s.TimesPerWeek)
}

func (Daily) isSchedule()         {}
func (Weekly) isSchedule()        {}
func (CustomDays) isSchedule()    {}
func (MultipleDaily) isSchedule() {}
func (NTimesWeekly) isSchedule()  {}

// Includes reports whether wd is one of the selected days.
func (s CustomDays) Includes(wd time.Weekday) bool {
	return slices.Contains(s.Days, wd)
}

// normalizeWeekdays sorts and de-duplicates a weekday set.
func normalizeWeekdays(days []time.Weekday) []time.Weekday {
	out := slices.Clone(days)
	slices.Sort(out)
	out = slices.Compact(out)
	if out == nil {
		out = []time.Weekday{}
	}
	return out
}

// quotaOrDefault maps an unspecified (non-positive) quota to 1.
func quotaOrDefault(n int) int {
	if n <= 0 {
		return 1
	}
	return n
}

// NewSchedule builds the variant for f. Quotas default to 1 and weekdays to
// the empty set when left unspecified; fields that f does not use are dropped.
func NewSchedule(f Frequency, days []time.Weekday, timesPerDay, timesPerWeek int) (Schedule, error) {
	switch f {
	case FrequencyDaily:
		return Daily{}, nil
	case FrequencyWeekly:
		return Weekly{}, nil
	case FrequencyCustom:
		for _, d := range days {
			if d < time.Sunday || d > time.Saturday {
				return nil, fmt.Errorf("%w: weekday %d out of range", ErrInvalidHabit, d)
			}
		}
		return CustomDays{Days: normalizeWeekdays(days)}, nil
	case FrequencyMultipleDaily:
		return MultipleDaily{TimesPerDay: quotaOrDefault(timesPerDay)}, nil
	case FrequencyNTimesWeekly:
		return NTimesWeekly{TimesPerWeek: quotaOrDefault(timesPerWeek)}, nil
	default:
		return nil, fmt.Errorf("%w: unknown frequency %q", ErrInvalidHabit, f)
	}
}
