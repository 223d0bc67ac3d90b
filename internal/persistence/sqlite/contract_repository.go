package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Sergey0703/kpfaplus-sub001/internal/persistence"
)

// ContractRepository implements persistence.ContractRepository.
type ContractRepository struct {
	db *DB
}

// NewContractRepository constructs the repository.
func NewContractRepository(db *DB) *ContractRepository {
	return &ContractRepository{db: db}
}

// GetContract fetches a contract by id.
func (r *ContractRepository) GetContract(ctx context.Context, id string) (persistence.Contract, error) {
	row := r.db.db.QueryRowContext(ctx,
		`SELECT id, employee_id, title, start_date, finish_date, deleted FROM contracts WHERE id = ?`, id)

	var (
		c             persistence.Contract
		start, finish sql.NullString
		deleted       int
	)
	if err := row.Scan(&c.ID, &c.EmployeeID, &c.Title, &start, &finish, &deleted); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return persistence.Contract{}, persistence.ErrNotFound
		}
		return persistence.Contract{}, fmt.Errorf("sqlite: get contract: %w", err)
	}

	var err error
	if c.StartDate, err = dayPtr(start); err != nil {
		return persistence.Contract{}, err
	}
	if c.FinishDate, err = dayPtr(finish); err != nil {
		return persistence.Contract{}, err
	}
	c.Deleted = deleted != 0
	return c, nil
}

// Create inserts a contract row; used by seeding and tests.
func (r *ContractRepository) Create(ctx context.Context, c persistence.Contract) error {
	if c.ID == "" {
		return errors.New("sqlite: contract id is required")
	}
	_, err := r.db.db.ExecContext(ctx,
		`INSERT INTO contracts (id, employee_id, title, start_date, finish_date, deleted)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		c.ID, c.EmployeeID, c.Title, nullDay(c.StartDate), nullDay(c.FinishDate), boolInt(c.Deleted))
	if err != nil {
		return fmt.Errorf("sqlite: create contract: %w", err)
	}
	return nil
}
