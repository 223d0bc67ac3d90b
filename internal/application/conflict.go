package application

import (
	"fmt"

	"github.com/Sergey0703/kpfaplus-sub001/internal/persistence"
)

// GuardVerdict summarizes the existing records found for a fill period.
type GuardVerdict struct {
	Total     int
	Processed int
}

// AssessExisting classifies the records already stored for the period. A
// record counts as processed when its checked counter is positive or its
// export result is set to anything but the literal "0".
func AssessExisting(records []persistence.StaffRecord) GuardVerdict {
	verdict := GuardVerdict{Total: len(records)}
	for _, record := range records {
		if record.Processed() {
			verdict.Processed++
		}
	}
	return verdict
}

// Blocked reports whether the run must be refused. One processed record is
// enough: downstream export and approval state is never silently discarded,
// so the guard is all-or-nothing.
func (v GuardVerdict) Blocked() bool {
	return v.Processed > 0
}

// Reason renders the blocking explanation surfaced to the caller.
func (v GuardVerdict) Reason() string {
	return fmt.Sprintf("%d of %d existing records for the period are already processed", v.Processed, v.Total)
}
