package application

import (
	"time"
)

// FillParams identifies one generate-from-template run.
type FillParams struct {
	// SelectedMonth names the calendar month to fill; any instant within the
	// month is accepted.
	SelectedMonth time.Time
	EmployeeID    string
	ContractID    string
	ManagerID     string
	GroupID       string
	// StartOfWeekDay configures the rotation's first weekday (1=Mon..7=Sun).
	// Zero selects Monday.
	StartOfWeekDay int
}

// FillStatus is the terminal state of a fill run.
type FillStatus string

const (
	// StatusBlocked means processed records exist for the period and nothing
	// was deleted or written.
	StatusBlocked FillStatus = "blocked"
	// StatusCompleted means every generated record was saved (including the
	// zero-record case).
	StatusCompleted FillStatus = "completed"
	// StatusPartial means some saves failed and some succeeded; no rollback
	// was attempted.
	StatusPartial FillStatus = "partial"
	// StatusFailed means no record was saved.
	StatusFailed FillStatus = "failed"
)

// SaveError identifies one record that could not be persisted.
type SaveError struct {
	Title   string `json:"title"`
	Date    string `json:"date"`
	Message string `json:"message"`
}

// FillResult is the single terminal outcome every fill run produces. A
// partial result always carries both the success count and the itemized
// failures; there is no silent partial success.
type FillResult struct {
	Status         FillStatus  `json:"status"`
	GeneratedCount int         `json:"generatedCount"`
	SavedCount     int         `json:"savedCount"`
	Errors         []SaveError `json:"errors,omitempty"`
	BlockingReason string      `json:"blockingReason,omitempty"`
}
