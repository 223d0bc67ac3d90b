package generation

import (
	"time"

	"github.com/Sergey0703/kpfaplus-sub001/internal/dateonly"
)

// Period is the inclusive day range a fill run operates on.
type Period struct {
	First time.Time
	Last  time.Time
}

// Empty reports whether the period contains no days. An empty period is a
// legitimate outcome (contract inactive for the month) and generates zero
// records without error.
func (p Period) Empty() bool {
	if p.First.IsZero() || p.Last.IsZero() {
		return true
	}
	return dateonly.Key(p.First) > dateonly.Key(p.Last)
}

// Days returns the number of calendar days the period spans.
func (p Period) Days() int {
	if p.Empty() {
		return 0
	}
	first, _ := dateonly.Normalize(p.First)
	last, _ := dateonly.Normalize(p.Last)
	return int(last.Sub(first)/(24*time.Hour)) + 1
}

// ResolvePeriod intersects the selected month with the contract's active
// range. A nil contract bound leaves the corresponding month edge in place.
func ResolvePeriod(selectedMonth time.Time, contractStart, contractFinish *time.Time) Period {
	loc := selectedMonth.Location()
	first := dateonly.MonthStart(selectedMonth)
	last := dateonly.MonthEnd(selectedMonth)

	if contractStart != nil && !contractStart.IsZero() {
		start := sameDayIn(*contractStart, loc)
		if dateonly.Key(start) > dateonly.Key(first) {
			first = start
		}
	}
	if contractFinish != nil && !contractFinish.IsZero() {
		finish := dateonly.EndOfDay(sameDayIn(*contractFinish, loc))
		if dateonly.Key(finish) < dateonly.Key(last) {
			last = finish
		}
	}

	return Period{First: first, Last: last}
}

// sameDayIn rebuilds t's calendar day at midnight in loc, so contract bounds
// stored with a foreign offset cannot shift the period by a day.
func sameDayIn(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
