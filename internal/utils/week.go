package utils

import "time"

// StartOfDay returns midnight of t's calendar day in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// StartOfWeek returns midnight of the most recent Sunday at or before t.
// Weekdays follow time.Weekday numbering (Sunday = 0).
func StartOfWeek(t time.Time, loc *time.Location) time.Time {
	day := StartOfDay(t, loc)
	return day.AddDate(0, 0, -int(day.Weekday()))
}

// StartOfMonth returns midnight of the first day of t's month in loc.
func StartOfMonth(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, loc)
}

// SameDay reports whether a and b fall on the same calendar day in loc.
func SameDay(a, b time.Time, loc *time.Location) bool {
	a, b = a.In(loc), b.In(loc)
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

// DaysBetween returns the number of calendar days from a to b in loc.
// The result is negative when b is before a. Days are counted on the
// calendar, so DST transitions never produce fractional results.
func DaysBetween(a, b time.Time, loc *time.Location) int {
	a, b = a.In(loc), b.In(loc)
	da := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	db := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(db.Sub(da).Hours() / 24)
}

// FullDaysBetween returns the number of whole days from a to b in loc,
// truncated toward zero. A day counts once b reaches a's wall-clock time on a
// later calendar day.
func FullDaysBetween(a, b time.Time, loc *time.Location) int {
	a, b = a.In(loc), b.In(loc)
	n := DaysBetween(a, b, loc)
	ca, cb := sinceMidnight(a, loc), sinceMidnight(b, loc)
	switch {
	case n > 0 && cb < ca:
		n--
	case n < 0 && cb > ca:
		n++
	}
	return n
}

func sinceMidnight(t time.Time, loc *time.Location) time.Duration {
	return t.Sub(StartOfDay(t, loc))
}

// MonthDays returns every day of t's month at midnight in loc.
func MonthDays(t time.Time, loc *time.Location) []time.Time {
	first := StartOfMonth(t, loc)
	var days []time.Time
	for d := first; d.Month() == first.Month(); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}
