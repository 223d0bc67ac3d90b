package sqlite

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Sergey0703/kpfaplus-sub001/internal/dateonly"
	"github.com/Sergey0703/kpfaplus-sub001/internal/persistence"
)

// HolidayRepository implements persistence.HolidayRepository.
type HolidayRepository struct {
	db *DB
}

// NewHolidayRepository constructs the repository.
func NewHolidayRepository(db *DB) *HolidayRepository {
	return &HolidayRepository{db: db}
}

// ListMonth returns the holidays falling within month's calendar month.
func (r *HolidayRepository) ListMonth(ctx context.Context, month time.Time) ([]persistence.Holiday, error) {
	from := encodeDay(dateonly.MonthStart(month))
	to := encodeDay(dateonly.MonthEnd(month))

	rows, err := r.db.db.QueryContext(ctx,
		`SELECT id, date, title FROM holidays WHERE date >= ? AND date <= ? ORDER BY date`, from, to)
	if err != nil {
		return nil, fmt.Errorf("sqlite: query holidays: %w", err)
	}
	defer rows.Close()

	var holidays []persistence.Holiday
	for rows.Next() {
		var (
			h   persistence.Holiday
			day string
		)
		if err := rows.Scan(&h.ID, &day, &h.Title); err != nil {
			return nil, fmt.Errorf("sqlite: scan holiday: %w", err)
		}
		if h.Date, err = decodeDay(day); err != nil {
			return nil, err
		}
		holidays = append(holidays, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterate holidays: %w", err)
	}
	return holidays, nil
}

// Create inserts a holiday row; used by seeding and tests.
func (r *HolidayRepository) Create(ctx context.Context, h persistence.Holiday) error {
	if h.ID == "" {
		return errors.New("sqlite: holiday id is required")
	}
	_, err := r.db.db.ExecContext(ctx,
		`INSERT INTO holidays (id, date, title) VALUES (?, ?, ?)`,
		h.ID, encodeDay(h.Date), h.Title)
	if err != nil {
		return fmt.Errorf("sqlite: create holiday: %w", err)
	}
	return nil
}
