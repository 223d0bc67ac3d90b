// Package generation expands a contract's rotating shift templates into
// concrete dated records for a resolved calendar period. Everything in this
// package is pure computation over caller-supplied snapshots; the collaborator
// stores are consulted by the application layer before the engine runs.
package generation

import "time"

// ShiftTemplate is one slot of a contract's rotating weekly pattern, already
// parsed into integer time fields. Rows with missing or malformed times never
// reach this type; the application layer skips them during loading.
type ShiftTemplate struct {
	ContractID   string
	WeekNumber   int
	DayOfWeek    int
	ShiftNumber  int
	StartHour    int
	StartMinute  int
	EndHour      int
	EndMinute    int
	LunchMinutes int
	Title        string
	Deleted      bool
}

// Holiday is a single date-only calendar entry.
type Holiday struct {
	Date  time.Time
	Title string
}

// LeavePeriod is an employee absence interval. A zero End marks an open-ended
// leave that extends to the far-future sentinel.
type LeavePeriod struct {
	EmployeeID string
	TypeID     string
	Title      string
	Start      time.Time
	End        time.Time
	Deleted    bool
}

// Record is a generated shift occurrence ready to be persisted.
//
// Time-of-day is carried as plain integers rather than a combined timestamp so
// the store cannot reinterpret the hours across timezones.
type Record struct {
	Date         time.Time
	StartHour    int
	StartMinute  int
	EndHour      int
	EndMinute    int
	LunchMinutes int
	ShiftNumber  int
	ContractID   string
	HolidayFlag  int
	LeaveTypeID  *string
	Title        string
}

// DayPlan is the per-date computation result assembled while generating. It is
// consumed within a single generation pass and never persisted.
type DayPlan struct {
	Date         time.Time
	CalendarWeek int
	AppliedWeek  int
	DayOfWeek    int
	IsHoliday    bool
	Leave        *LeavePeriod
	Templates    []ShiftTemplate
}
