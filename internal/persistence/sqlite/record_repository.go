package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Sergey0703/kpfaplus-sub001/internal/persistence"
)

// StaffRecordRepository implements persistence.StaffRecordRepository.
type StaffRecordRepository struct {
	db  *DB
	now func() time.Time
}

// NewStaffRecordRepository constructs the repository. A nil now falls back to
// time.Now.
func NewStaffRecordRepository(db *DB, now func() time.Time) *StaffRecordRepository {
	if now == nil {
		now = time.Now
	}
	return &StaffRecordRepository{db: db, now: now}
}

const recordColumns = `id, employee_id, contract_id, manager_id, group_id, date,
	start_hour, start_minute, end_hour, end_minute, lunch_minutes, shift_number,
	holiday_flag, leave_type_id, title, checked_count, export_result, deleted,
	created_at, updated_at`

// QueryRange returns non-deleted records for the employee within the
// inclusive date range, optionally narrowed to one contract.
func (r *StaffRecordRepository) QueryRange(ctx context.Context, q persistence.StaffRecordQuery) ([]persistence.StaffRecord, error) {
	query := `SELECT ` + recordColumns + ` FROM staff_records
		WHERE employee_id = ? AND deleted = 0 AND date >= ? AND date <= ?`
	args := []any{q.EmployeeID, encodeDay(q.From), encodeDay(q.To)}
	if q.ContractID != "" {
		query += ` AND contract_id = ?`
		args = append(args, q.ContractID)
	}
	query += ` ORDER BY date, shift_number`

	rows, err := r.db.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: query staff records: %w", err)
	}
	defer rows.Close()

	var records []persistence.StaffRecord
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterate staff records: %w", err)
	}
	return records, nil
}

// Create inserts a new record and returns its identifier.
func (r *StaffRecordRepository) Create(ctx context.Context, record persistence.StaffRecord) (string, error) {
	if record.ID == "" {
		return "", errors.New("sqlite: staff record id is required")
	}

	now := r.now().UTC()
	record.CreatedAt = now
	record.UpdatedAt = now

	_, err := r.db.db.ExecContext(ctx, `INSERT INTO staff_records (`+recordColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID,
		record.EmployeeID,
		record.ContractID,
		record.ManagerID,
		record.GroupID,
		encodeDay(record.Date),
		record.StartHour,
		record.StartMinute,
		record.EndHour,
		record.EndMinute,
		record.LunchMinutes,
		record.ShiftNumber,
		record.HolidayFlag,
		nullString(record.LeaveTypeID),
		record.Title,
		record.CheckedCount,
		record.ExportResult,
		boolInt(record.Deleted),
		encodeStamp(record.CreatedAt),
		encodeStamp(record.UpdatedAt),
	)
	if err != nil {
		return "", fmt.Errorf("sqlite: create staff record: %w", err)
	}
	return record.ID, nil
}

// SoftDelete marks the record deleted without removing the row.
func (r *StaffRecordRepository) SoftDelete(ctx context.Context, id string) error {
	res, err := r.db.db.ExecContext(ctx,
		`UPDATE staff_records SET deleted = 1, updated_at = ? WHERE id = ? AND deleted = 0`,
		encodeStamp(r.now()), id)
	if err != nil {
		return fmt.Errorf("sqlite: soft delete staff record: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: soft delete staff record: %w", err)
	}
	if affected == 0 {
		return persistence.ErrNotFound
	}
	return nil
}

func scanRecord(rows *sql.Rows) (persistence.StaffRecord, error) {
	var (
		record               persistence.StaffRecord
		day                  string
		leaveTypeID          sql.NullString
		deleted              int
		createdAt, updatedAt string
	)
	if err := rows.Scan(
		&record.ID,
		&record.EmployeeID,
		&record.ContractID,
		&record.ManagerID,
		&record.GroupID,
		&day,
		&record.StartHour,
		&record.StartMinute,
		&record.EndHour,
		&record.EndMinute,
		&record.LunchMinutes,
		&record.ShiftNumber,
		&record.HolidayFlag,
		&leaveTypeID,
		&record.Title,
		&record.CheckedCount,
		&record.ExportResult,
		&deleted,
		&createdAt,
		&updatedAt,
	); err != nil {
		return persistence.StaffRecord{}, fmt.Errorf("sqlite: scan staff record: %w", err)
	}

	var err error
	if record.Date, err = decodeDay(day); err != nil {
		return persistence.StaffRecord{}, err
	}
	if record.CreatedAt, err = decodeStamp(createdAt); err != nil {
		return persistence.StaffRecord{}, err
	}
	if record.UpdatedAt, err = decodeStamp(updatedAt); err != nil {
		return persistence.StaffRecord{}, err
	}
	record.LeaveTypeID = stringPtr(leaveTypeID)
	record.Deleted = deleted != 0
	return record, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
