package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Sergey0703/kpfaplus-sub001/internal/dateonly"
	"github.com/Sergey0703/kpfaplus-sub001/internal/persistence"
)

// LeaveRepository implements persistence.LeaveRepository.
type LeaveRepository struct {
	db *DB
}

// NewLeaveRepository constructs the repository.
func NewLeaveRepository(db *DB) *LeaveRepository {
	return &LeaveRepository{db: db}
}

// ListMonth returns the employee's non-deleted leave periods overlapping the
// month: started before the month ends and not finished before it starts.
// Open-ended leaves (NULL end_date) overlap every later month.
func (r *LeaveRepository) ListMonth(ctx context.Context, month time.Time, employeeID, managerID, groupID string) ([]persistence.LeavePeriod, error) {
	from := encodeDay(dateonly.MonthStart(month))
	to := encodeDay(dateonly.MonthEnd(month))

	query := `SELECT id, employee_id, manager_id, group_id, type_id, title, start_date, end_date, deleted
		FROM leave_periods
		WHERE employee_id = ? AND deleted = 0
		  AND start_date <= ?
		  AND (end_date IS NULL OR end_date >= ?)`
	args := []any{employeeID, to, from}
	if managerID != "" {
		query += ` AND manager_id = ?`
		args = append(args, managerID)
	}
	if groupID != "" {
		query += ` AND group_id = ?`
		args = append(args, groupID)
	}
	query += ` ORDER BY start_date, id`

	rows, err := r.db.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: query leave periods: %w", err)
	}
	defer rows.Close()

	var periods []persistence.LeavePeriod
	for rows.Next() {
		var (
			p       persistence.LeavePeriod
			start   string
			end     sql.NullString
			deleted int
		)
		if err := rows.Scan(&p.ID, &p.EmployeeID, &p.ManagerID, &p.GroupID, &p.TypeID,
			&p.Title, &start, &end, &deleted); err != nil {
			return nil, fmt.Errorf("sqlite: scan leave period: %w", err)
		}
		if p.StartDate, err = decodeDay(start); err != nil {
			return nil, err
		}
		if p.EndDate, err = dayPtr(end); err != nil {
			return nil, err
		}
		p.Deleted = deleted != 0
		periods = append(periods, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterate leave periods: %w", err)
	}
	return periods, nil
}

// Create inserts a leave period row; used by seeding and tests.
func (r *LeaveRepository) Create(ctx context.Context, p persistence.LeavePeriod) error {
	if p.ID == "" {
		return errors.New("sqlite: leave period id is required")
	}
	_, err := r.db.db.ExecContext(ctx, `INSERT INTO leave_periods
		(id, employee_id, manager_id, group_id, type_id, title, start_date, end_date, deleted)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.EmployeeID, p.ManagerID, p.GroupID, p.TypeID, p.Title,
		encodeDay(p.StartDate), nullDay(p.EndDate), boolInt(p.Deleted))
	if err != nil {
		return fmt.Errorf("sqlite: create leave period: %w", err)
	}
	return nil
}
