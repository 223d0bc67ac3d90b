// Package rotation maps calendar dates onto a contract's rotating template
// weeks. Week numbering is week-of-month derived from the day of the month,
// not ISO week-of-year.
package rotation

import (
	"errors"
	"time"
)

// MaxLength is the longest supported rotation cycle.
const MaxLength = 4

var (
	// ErrInvalidLength indicates a rotation length outside 1..4.
	ErrInvalidLength = errors.New("rotation: length must be between 1 and 4")
	// ErrInvalidStartOfWeek indicates a start-of-week day outside 1..7.
	ErrInvalidStartOfWeek = errors.New("rotation: start of week must be between 1 and 7")
	// ErrInvalidDate indicates a zero date input.
	ErrInvalidDate = errors.New("rotation: invalid date")
)

// Rotation describes a contract's weekly rotation cycle.
type Rotation struct {
	// Length is the number of distinct template weeks in the cycle (1..4).
	Length int
	// StartOfWeekDay is the configured first day of the week (1=Mon..7=Sun).
	// It is carried for display grouping; week-of-month numbering is governed
	// by day-of-month alone.
	StartOfWeekDay int
}

// Validate reports whether the rotation parameters are usable.
func (r Rotation) Validate() error {
	if r.Length < 1 || r.Length > MaxLength {
		return ErrInvalidLength
	}
	if r.StartOfWeekDay < 1 || r.StartOfWeekDay > 7 {
		return ErrInvalidStartOfWeek
	}
	return nil
}

// FromTemplateWeeks derives the rotation length from the distinct template
// week numbers present in a contract's active template set. Out-of-range
// week numbers are ignored; an empty set yields a single-week rotation.
func FromTemplateWeeks(weeks []int, startOfWeekDay int) Rotation {
	length := 1
	for _, w := range weeks {
		if w > length && w <= MaxLength {
			length = w
		}
	}
	if startOfWeekDay < 1 || startOfWeekDay > 7 {
		startOfWeekDay = 1
	}
	return Rotation{Length: length, StartOfWeekDay: startOfWeekDay}
}

// Assignment is the rotation verdict for a single calendar date.
type Assignment struct {
	// CalendarWeek is the 1-based week-of-month: (dayOfMonth-1)/7 + 1.
	CalendarWeek int
	// AppliedWeek is the template week selected after the wrap rule.
	AppliedWeek int
	// DayOfWeek is ISO numbering, Monday=1 through Sunday=7.
	DayOfWeek int
}

// Resolve computes the rotation assignment for date.
func Resolve(date time.Time, r Rotation) (Assignment, error) {
	if date.IsZero() {
		return Assignment{}, ErrInvalidDate
	}
	if err := r.Validate(); err != nil {
		return Assignment{}, err
	}

	calendarWeek := (date.Day()-1)/7 + 1

	return Assignment{
		CalendarWeek: calendarWeek,
		AppliedWeek:  appliedWeek(calendarWeek, r.Length),
		DayOfWeek:    ISODay(date.Weekday()),
	}, nil
}

// appliedWeek maps a calendar week onto [1..length].
//
// The wrap rules for lengths 2, 3 and 4 are deliberately asymmetric: a
// two-week cycle alternates forever, a three-week cycle restarts at week 1
// from the fourth calendar week on, and a four-week cycle wraps modulo 4.
// This is established business behavior, not an approximation.
func appliedWeek(calendarWeek, length int) int {
	switch length {
	case 1:
		return 1
	case 2:
		return (calendarWeek-1)%2 + 1
	case 3:
		if calendarWeek <= 3 {
			return calendarWeek
		}
		return 1
	default:
		if calendarWeek <= 4 {
			return calendarWeek
		}
		if wrapped := calendarWeek % 4; wrapped != 0 {
			return wrapped
		}
		return 4
	}
}

// ISODay converts a time.Weekday to ISO numbering (Monday=1..Sunday=7).
func ISODay(d time.Weekday) int {
	if d == time.Sunday {
		return 7
	}
	return int(d)
}
