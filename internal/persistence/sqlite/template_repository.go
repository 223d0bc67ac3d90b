package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Sergey0703/kpfaplus-sub001/internal/persistence"
)

// TemplateRepository implements persistence.TemplateRepository.
type TemplateRepository struct {
	db  *DB
	now func() time.Time
}

// NewTemplateRepository constructs the repository.
func NewTemplateRepository(db *DB, now func() time.Time) *TemplateRepository {
	if now == nil {
		now = time.Now
	}
	return &TemplateRepository{db: db, now: now}
}

// ListByContract returns every template row for the contract, deleted rows
// included; filtering is the engine's responsibility.
func (r *TemplateRepository) ListByContract(ctx context.Context, contractID string) ([]persistence.ShiftTemplateRow, error) {
	rows, err := r.db.db.QueryContext(ctx, `SELECT id, contract_id, week_number, day_of_week,
		shift_number, start_time, end_time, lunch_minutes, title, deleted, created_at, updated_at
		FROM shift_templates WHERE contract_id = ?
		ORDER BY week_number, day_of_week, shift_number`, contractID)
	if err != nil {
		return nil, fmt.Errorf("sqlite: query shift templates: %w", err)
	}
	defer rows.Close()

	var templates []persistence.ShiftTemplateRow
	for rows.Next() {
		var (
			tpl                  persistence.ShiftTemplateRow
			startTime, endTime   sql.NullString
			deleted              int
			createdAt, updatedAt string
		)
		if err := rows.Scan(&tpl.ID, &tpl.ContractID, &tpl.WeekNumber, &tpl.DayOfWeek,
			&tpl.ShiftNumber, &startTime, &endTime, &tpl.LunchMinutes, &tpl.Title,
			&deleted, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("sqlite: scan shift template: %w", err)
		}
		tpl.StartTime = stringPtr(startTime)
		tpl.EndTime = stringPtr(endTime)
		tpl.Deleted = deleted != 0
		if tpl.CreatedAt, err = decodeStamp(createdAt); err != nil {
			return nil, err
		}
		if tpl.UpdatedAt, err = decodeStamp(updatedAt); err != nil {
			return nil, err
		}
		templates = append(templates, tpl)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterate shift templates: %w", err)
	}
	return templates, nil
}

// Create inserts a template row; used by seeding and tests.
func (r *TemplateRepository) Create(ctx context.Context, tpl persistence.ShiftTemplateRow) error {
	if tpl.ID == "" {
		return errors.New("sqlite: shift template id is required")
	}
	now := encodeStamp(r.now())
	_, err := r.db.db.ExecContext(ctx, `INSERT INTO shift_templates
		(id, contract_id, week_number, day_of_week, shift_number, start_time, end_time,
		 lunch_minutes, title, deleted, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		tpl.ID, tpl.ContractID, tpl.WeekNumber, tpl.DayOfWeek, tpl.ShiftNumber,
		nullString(tpl.StartTime), nullString(tpl.EndTime), tpl.LunchMinutes,
		tpl.Title, boolInt(tpl.Deleted), now, now)
	if err != nil {
		return fmt.Errorf("sqlite: create shift template: %w", err)
	}
	return nil
}
