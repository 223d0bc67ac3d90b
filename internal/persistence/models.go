package persistence

import "time"

// StaffRecord is a concrete dated shift row in the record store. Time-of-day
// is stored as plain integers so the store never reinterprets hours across
// timezones; Date carries the calendar day only.
type StaffRecord struct {
	ID           string
	EmployeeID   string
	ContractID   string
	ManagerID    string
	GroupID      string
	Date         time.Time
	StartHour    int
	StartMinute  int
	EndHour      int
	EndMinute    int
	LunchMinutes int
	ShiftNumber  int
	HolidayFlag  int
	LeaveTypeID  *string
	Title        string
	// CheckedCount and ExportResult track downstream processing. A record
	// with CheckedCount > 0, or an ExportResult other than "" and "0", must
	// never be silently discarded by a re-fill.
	CheckedCount int
	ExportResult string
	Deleted      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Processed reports whether the record has been checked or exported
// downstream, making it unsafe to replace.
func (r StaffRecord) Processed() bool {
	if r.CheckedCount > 0 {
		return true
	}
	return r.ExportResult != "" && r.ExportResult != "0"
}

// ShiftTemplateRow is a raw weekly template as stored. Start and end times are
// optional "HH:MM" strings; rows missing either are skipped during generation
// rather than failing the run.
type ShiftTemplateRow struct {
	ID           string
	ContractID   string
	WeekNumber   int
	DayOfWeek    int
	ShiftNumber  int
	StartTime    *string
	EndTime      *string
	LunchMinutes int
	Title        string
	Deleted      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Holiday is a date-only calendar entry.
type Holiday struct {
	ID    string
	Date  time.Time
	Title string
}

// LeavePeriod is an employee absence row. A nil EndDate marks an open-ended
// leave.
type LeavePeriod struct {
	ID         string
	EmployeeID string
	ManagerID  string
	GroupID    string
	TypeID     string
	Title      string
	StartDate  time.Time
	EndDate    *time.Time
	Deleted    bool
}

// Contract is an employee's engagement with its active date range. A nil
// bound leaves the corresponding side open.
type Contract struct {
	ID         string
	EmployeeID string
	Title      string
	StartDate  *time.Time
	FinishDate *time.Time
	Deleted    bool
}
