package testfixtures

import (
	"time"

	"github.com/Sergey0703/kpfaplus-sub001/internal/persistence"
)

// Canonical identifiers shared by the pre-built fixtures.
const (
	EmployeeID = "emp-100"
	ContractID = "con-100"
	ManagerID  = "mgr-100"
	GroupID    = "grp-100"
)

// October2024 is the default month fixtures target. It starts on a Tuesday
// and contains five Tuesdays, which keeps rotation wrap behaviour visible.
func October2024() time.Time {
	return time.Date(2024, time.October, 1, 0, 0, 0, 0, time.UTC)
}

// Day returns the given day of October 2024 at midnight UTC.
func Day(day int) time.Time {
	return time.Date(2024, time.October, day, 0, 0, 0, 0, time.UTC)
}

// ActiveContract returns an open-ended contract for the canonical employee.
func ActiveContract() persistence.Contract {
	return persistence.Contract{
		ID:         ContractID,
		EmployeeID: EmployeeID,
		Title:      "Full time nursing",
	}
}

// TemplateRow builds a weekly template row with a 09:00-17:30 shift.
func TemplateRow(id string, week, day int) persistence.ShiftTemplateRow {
	start, end := "09:00", "17:30"
	return persistence.ShiftTemplateRow{
		ID:           id,
		ContractID:   ContractID,
		WeekNumber:   week,
		DayOfWeek:    day,
		ShiftNumber:  1,
		StartTime:    &start,
		EndTime:      &end,
		LunchMinutes: 30,
		Title:        "Day shift",
	}
}

// HolidayOn builds a holiday on the given October 2024 day.
func HolidayOn(day int, title string) persistence.Holiday {
	return persistence.Holiday{ID: "hol-" + title, Date: Day(day), Title: title}
}

// LeaveBetween builds a closed leave period for the canonical employee.
func LeaveBetween(id string, from, to int, typeID string) persistence.LeavePeriod {
	end := Day(to)
	return persistence.LeavePeriod{
		ID:         id,
		EmployeeID: EmployeeID,
		ManagerID:  ManagerID,
		GroupID:    GroupID,
		TypeID:     typeID,
		Title:      "Leave " + typeID,
		StartDate:  Day(from),
		EndDate:    &end,
	}
}

// ExistingRecord builds an unprocessed record on the given October 2024 day.
func ExistingRecord(id string, day int) persistence.StaffRecord {
	return persistence.StaffRecord{
		ID:          id,
		EmployeeID:  EmployeeID,
		ContractID:  ContractID,
		ManagerID:   ManagerID,
		GroupID:     GroupID,
		Date:        Day(day),
		StartHour:   8,
		EndHour:     16,
		ShiftNumber: 1,
		Title:       "Old shift",
	}
}

// ProcessedRecord builds a record already touched downstream, which blocks
// re-fills of its period.
func ProcessedRecord(id string, day int) persistence.StaffRecord {
	record := ExistingRecord(id, day)
	record.CheckedCount = 1
	return record
}
