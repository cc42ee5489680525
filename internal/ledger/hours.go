package ledger

import (
	"strings"
	"time"
)

// Display layouts. Stored date and time-of-day strings always use these.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// dayLayouts are accepted for date input and for dates on legacy records.
// The long form matches the en-US display dates written by older versions.
var dayLayouts = []string{
	DateLayout,
	"January 2, 2006",
	"Jan 2, 2006",
	"1/2/2006",
}

// clockLayouts are accepted for time-of-day input.
var clockLayouts = []string{
	TimeLayout,
	"15:04:05",
	"3:04 PM",
	"3:04:05 PM",
	"3:04PM",
}

// ParseDay parses a calendar day in loc.
func ParseDay(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	var firstErr error
	for _, layout := range dayLayouts {
		t, err := time.ParseInLocation(layout, s, loc)
		if err == nil {
			return t, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return time.Time{}, firstErr
}

// ParseStamp combines a calendar day and a time of day into one instant in loc.
func ParseStamp(date, clock string, loc *time.Location) (time.Time, error) {
	day, err := ParseDay(date, loc)
	if err != nil {
		return time.Time{}, err
	}

	clock = strings.ToUpper(strings.TrimSpace(clock))
	var firstErr error
	for _, layout := range clockLayouts {
		tod, err := time.ParseInLocation(layout, clock, loc)
		if err == nil {
			return time.Date(day.Year(), day.Month(), day.Day(),
				tod.Hour(), tod.Minute(), tod.Second(), 0, loc), nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return time.Time{}, firstErr
}

// DayKey returns the canonical YYYY-MM-DD form of date, or date unchanged if
// it does not parse. Lookups by date go through DayKey so that "Jan 10, 2024"
// and "2024-01-10" name the same day.
func DayKey(date string, loc *time.Location) string {
	day, err := ParseDay(date, loc)
	if err != nil {
		return strings.TrimSpace(date)
	}
	return day.Format(DateLayout)
}

// HoursBetween returns the duration between two epoch millisecond timestamps in hours.
func HoursBetween(checkInAt, checkOutAt int64) float64 {
	return float64(checkOutAt-checkInAt) / float64(time.Hour/time.Millisecond)
}
