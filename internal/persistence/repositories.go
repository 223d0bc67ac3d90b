package persistence

import (
	"context"
	"time"
)

// StaffRecordQuery narrows record queries to a date range plus identifiers.
// ContractID is optional; when empty, all of the employee's contracts match.
type StaffRecordQuery struct {
	From       time.Time
	To         time.Time
	EmployeeID string
	ContractID string
}

// StaffRecordRepository exposes the shift record store operations the fill
// pipeline consumes. Soft deletion marks rows, it never removes them.
type StaffRecordRepository interface {
	QueryRange(ctx context.Context, q StaffRecordQuery) ([]StaffRecord, error)
	Create(ctx context.Context, record StaffRecord) (string, error)
	SoftDelete(ctx context.Context, id string) error
}

// HolidayRepository lists the holiday calendar for a month.
type HolidayRepository interface {
	ListMonth(ctx context.Context, month time.Time) ([]Holiday, error)
}

// LeaveRepository lists an employee's leave periods overlapping a month,
// including open-ended leaves that started earlier.
type LeaveRepository interface {
	ListMonth(ctx context.Context, month time.Time, employeeID, managerID, groupID string) ([]LeavePeriod, error)
}

// TemplateRepository lists a contract's weekly shift templates. Rows are raw:
// deleted-filtering and grouping are the engine's responsibility.
type TemplateRepository interface {
	ListByContract(ctx context.Context, contractID string) ([]ShiftTemplateRow, error)
}

// ContractRepository resolves contracts by identifier.
type ContractRepository interface {
	GetContract(ctx context.Context, id string) (Contract, error)
}
