package models

import (
	"fmt"
	"time"

	"github.com/julianstephens/habitual/internal/constants"
)

// DateMarker identifies one calendar day. The text is kept exactly as it was
// recorded (an RFC 3339 timestamp or a bare YYYY-MM-DD date); two markers
// name the same day when their date portions agree, whatever the time suffix.
type DateMarker string

// markerLayouts are tried in order. RFC 3339 parsing also accepts fractional
// seconds, which covers "2025-06-11T04:00:00.000Z".
var markerLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// NewDateMarker records the calendar day of t as midnight in loc.
func NewDateMarker(t time.Time, loc *time.Location) DateMarker {
	t = t.In(loc)
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	return DateMarker(day.Format(time.RFC3339))
}

// Time parses the marker. Markers without an offset are read in loc.
func (m DateMarker) Time(loc *time.Location) (time.Time, error) {
	s := string(m)
	for _, layout := range markerLayouts {
		if layout == time.RFC3339 {
			if t, err := time.Parse(layout, s); err == nil {
				return t, nil
			}
			continue
		}
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	if t, err := time.ParseInLocation(constants.DateFormat, s, loc); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid date marker %q", s)
}

// Day returns midnight of the marker's calendar day in loc.
func (m DateMarker) Day(loc *time.Location) (time.Time, error) {
	t, err := m.Time(loc)
	if err != nil {
		return time.Time{}, err
	}
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc), nil
}

// SameDay reports whether m falls on day's calendar day in loc.
// Unparsable markers never match.
func (m DateMarker) SameDay(day time.Time, loc *time.Location) bool {
	d, err := m.Day(loc)
	if err != nil {
		return false
	}
	day = day.In(loc)
	return d.Year() == day.Year() && d.YearDay() == day.YearDay()
}
