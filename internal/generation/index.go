package generation

import (
	"time"

	"github.com/Sergey0703/kpfaplus-sub001/internal/dateonly"
)

type templateKey struct {
	week int
	day  int
}

// TemplateIndex groups active shift templates by (template week, day of week).
type TemplateIndex struct {
	byKey map[templateKey][]ShiftTemplate
}

// BuildTemplateIndex indexes the supplied templates, excluding soft-deleted
// rows. Store order is preserved within each slot so multi-shift days emit
// records in a stable order.
func BuildTemplateIndex(templates []ShiftTemplate) TemplateIndex {
	idx := TemplateIndex{byKey: make(map[templateKey][]ShiftTemplate)}
	for _, tpl := range templates {
		if tpl.Deleted {
			continue
		}
		key := templateKey{week: tpl.WeekNumber, day: tpl.DayOfWeek}
		idx.byKey[key] = append(idx.byKey[key], tpl)
	}
	return idx
}

// Find returns every template assigned to the given week and day. Multiple
// templates per slot are supported; each produces an independent record.
func (idx TemplateIndex) Find(week, day int) []ShiftTemplate {
	return idx.byKey[templateKey{week: week, day: day}]
}

// WeekNumbers lists the distinct template week numbers present in the index,
// used to derive the rotation length.
func (idx TemplateIndex) WeekNumbers() []int {
	seen := make(map[int]struct{}, len(idx.byKey))
	weeks := make([]int, 0, len(idx.byKey))
	for key := range idx.byKey {
		if _, ok := seen[key.week]; ok {
			continue
		}
		seen[key.week] = struct{}{}
		weeks = append(weeks, key.week)
	}
	return weeks
}

// HolidayIndex answers day-granularity holiday membership via compare keys.
type HolidayIndex struct {
	byKey map[string]Holiday
}

// BuildHolidayIndex indexes holidays by calendar-day key.
func BuildHolidayIndex(holidays []Holiday) HolidayIndex {
	idx := HolidayIndex{byKey: make(map[string]Holiday, len(holidays))}
	for _, h := range holidays {
		if h.Date.IsZero() {
			continue
		}
		idx.byKey[dateonly.Key(h.Date)] = h
	}
	return idx
}

// Has reports whether date falls on an indexed holiday.
func (idx HolidayIndex) Has(date time.Time) bool {
	_, ok := idx.byKey[dateonly.Key(date)]
	return ok
}

// Get returns the holiday for date, if any.
func (idx HolidayIndex) Get(date time.Time) (Holiday, bool) {
	h, ok := idx.byKey[dateonly.Key(date)]
	return h, ok
}

// LeaveIntervals holds normalized leave periods in store order.
type LeaveIntervals struct {
	periods []LeavePeriod
}

// BuildLeaveIntervals normalizes the supplied leave periods: soft-deleted rows
// are dropped, starts snap to local midnight, and ends extend to end-of-day or
// to the open-end sentinel when absent. Rows with an unusable start date are
// dropped rather than matched against everything.
func BuildLeaveIntervals(periods []LeavePeriod) LeaveIntervals {
	out := LeaveIntervals{periods: make([]LeavePeriod, 0, len(periods))}
	for _, p := range periods {
		if p.Deleted {
			continue
		}
		start, err := dateonly.Normalize(p.Start)
		if err != nil {
			continue
		}
		p.Start = start
		if p.End.IsZero() {
			p.End = dateonly.OpenEnd(start.Location())
		} else {
			p.End = dateonly.EndOfDay(p.End)
		}
		out.periods = append(out.periods, p)
	}
	return out
}

// Find returns the first period containing date, inclusive on both bounds.
//
// When periods overlap the result depends on store order; first match wins.
// That ordering dependence is inherited behavior awaiting product
// clarification, so it is preserved rather than resolved here.
func (li LeaveIntervals) Find(date time.Time) *LeavePeriod {
	if date.IsZero() {
		return nil
	}
	// Compare calendar-day keys rather than instants; the keys sort
	// lexicographically and are immune to offset differences between the
	// leave rows and the probe date.
	key := dateonly.Key(date)
	for i := range li.periods {
		p := &li.periods[i]
		if key >= dateonly.Key(p.Start) && key <= dateonly.Key(p.End) {
			return p
		}
	}
	return nil
}

// Len reports the number of indexed periods.
func (li LeaveIntervals) Len() int {
	return len(li.periods)
}
