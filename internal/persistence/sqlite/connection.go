// Package sqlite implements the collaborator store repositories on top of a
// local SQLite database using the CGO-free modernc driver.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// DB wraps the shared connection handle with transaction support.
type DB struct {
	db *sql.DB
}

// Open connects to the SQLite database named by dsn and applies connection
// tuning suitable for a single-writer workload.
func Open(dsn string) (*DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %q: %w", dsn, err)
	}

	// SQLite serializes writers; a single connection avoids SQLITE_BUSY
	// churn under the sequential write pattern used by the fill pipeline.
	db.SetMaxOpenConns(1)
	db.SetConnMaxIdleTime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: ping: %w", err)
	}

	return &DB{db: db}, nil
}

// Close releases the underlying connection handle.
func (d *DB) Close() error {
	if d == nil || d.db == nil {
		return nil
	}
	return d.db.Close()
}

// Handle exposes the raw *sql.DB for callers that need direct access.
func (d *DB) Handle() *sql.DB {
	return d.db
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS contracts (
		id TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL,
		title TEXT NOT NULL DEFAULT '',
		start_date TEXT,
		finish_date TEXT,
		deleted INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS shift_templates (
		id TEXT PRIMARY KEY,
		contract_id TEXT NOT NULL,
		week_number INTEGER NOT NULL,
		day_of_week INTEGER NOT NULL,
		shift_number INTEGER NOT NULL DEFAULT 1,
		start_time TEXT,
		end_time TEXT,
		lunch_minutes INTEGER NOT NULL DEFAULT 0,
		title TEXT NOT NULL DEFAULT '',
		deleted INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_shift_templates_contract ON shift_templates (contract_id, deleted)`,
	`CREATE TABLE IF NOT EXISTS holidays (
		id TEXT PRIMARY KEY,
		date TEXT NOT NULL,
		title TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_holidays_date ON holidays (date)`,
	`CREATE TABLE IF NOT EXISTS leave_periods (
		id TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL,
		manager_id TEXT NOT NULL DEFAULT '',
		group_id TEXT NOT NULL DEFAULT '',
		type_id TEXT NOT NULL,
		title TEXT NOT NULL DEFAULT '',
		start_date TEXT NOT NULL,
		end_date TEXT,
		deleted INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS idx_leave_periods_employee ON leave_periods (employee_id, deleted)`,
	`CREATE TABLE IF NOT EXISTS staff_records (
		id TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL,
		contract_id TEXT NOT NULL DEFAULT '',
		manager_id TEXT NOT NULL DEFAULT '',
		group_id TEXT NOT NULL DEFAULT '',
		date TEXT NOT NULL,
		start_hour INTEGER NOT NULL DEFAULT 0,
		start_minute INTEGER NOT NULL DEFAULT 0,
		end_hour INTEGER NOT NULL DEFAULT 0,
		end_minute INTEGER NOT NULL DEFAULT 0,
		lunch_minutes INTEGER NOT NULL DEFAULT 0,
		shift_number INTEGER NOT NULL DEFAULT 1,
		holiday_flag INTEGER NOT NULL DEFAULT 0,
		leave_type_id TEXT,
		title TEXT NOT NULL DEFAULT '',
		checked_count INTEGER NOT NULL DEFAULT 0,
		export_result TEXT NOT NULL DEFAULT '',
		deleted INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_staff_records_employee_date ON staff_records (employee_id, date, deleted)`,
}

// Migrate creates the store tables when they do not exist yet. The statements
// run inside one transaction so a failure leaves no half-created schema.
func (d *DB) Migrate(ctx context.Context) error {
	return d.WithTransaction(ctx, func(tx *sql.Tx) error {
		for _, stmt := range schema {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("sqlite: migrate: %w", err)
			}
		}
		return nil
	})
}

// TransactionFunc runs inside a transaction managed by WithTransaction.
type TransactionFunc func(tx *sql.Tx) error

// WithTransaction executes fn within a transaction, rolling back on error or
// panic and committing otherwise.
func (d *DB) WithTransaction(ctx context.Context, fn TransactionFunc) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("sqlite: transaction failed (rollback error: %v): %w", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: commit: %w", err)
	}
	return nil
}
