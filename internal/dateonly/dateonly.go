// Package dateonly provides canonical day-granularity date handling.
//
// The record store mixes date-only columns with timestamped ones, and the two
// receive different timezone adjustments upstream. Comparing raw timestamps
// therefore drifts by a day near UTC offset boundaries. Every holiday, leave
// and period comparison in this module goes through the string key produced
// here instead of timestamp equality.
package dateonly

import (
	"errors"
	"time"
)

// ErrInvalidDate indicates a zero or otherwise unusable date input.
var ErrInvalidDate = errors.New("dateonly: invalid date")

// keyLayout is the stable comparison key format.
const keyLayout = "2006-01-02"

// Normalize strips the time-of-day component, returning local midnight of the
// same calendar day in the input's location.
func Normalize(t time.Time) (time.Time, error) {
	if t.IsZero() {
		return time.Time{}, ErrInvalidDate
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location()), nil
}

// Key returns the timezone-independent comparison key ("YYYY-MM-DD") for the
// calendar day t falls on in its own location.
func Key(t time.Time) string {
	return t.Format(keyLayout)
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return Key(a) == Key(b)
}

// EndOfDay returns the last representable instant of t's calendar day.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}

// MonthStart returns midnight of the first day of t's month.
func MonthStart(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
}

// MonthEnd returns the last instant of the final day of t's month.
func MonthEnd(t time.Time) time.Time {
	y, m, _ := t.Date()
	firstOfNext := time.Date(y, m+1, 1, 0, 0, 0, 0, t.Location())
	return EndOfDay(firstOfNext.AddDate(0, 0, -1))
}

// OpenEnd returns the sentinel used for leave periods without an end date.
// Open leaves match every date from their start up to this bound.
func OpenEnd(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.Date(2099, time.December, 31, 23, 59, 59, int(time.Second-time.Nanosecond), loc)
}
