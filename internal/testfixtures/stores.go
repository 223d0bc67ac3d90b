package testfixtures

import (
	"context"
	"sync"
	"time"

	"github.com/Sergey0703/kpfaplus-sub001/internal/dateonly"
	"github.com/Sergey0703/kpfaplus-sub001/internal/persistence"
)

// MemoryStore is an in-memory implementation of every repository interface the
// fill pipeline depends on. It keeps insertion order for records and templates
// so assertions about ordering stay meaningful.
type MemoryStore struct {
	mu        sync.Mutex
	records   []persistence.StaffRecord
	templates []persistence.ShiftTemplateRow
	holidays  []persistence.Holiday
	leaves    []persistence.LeavePeriod
	contracts map[string]persistence.Contract

	// CreateErr and SoftDeleteErr script per-call failures; a nil return lets
	// the call proceed.
	CreateErr     func(record persistence.StaffRecord) error
	SoftDeleteErr func(id string) error
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{contracts: make(map[string]persistence.Contract)}
}

// SeedContract registers a contract under its ID.
func (s *MemoryStore) SeedContract(c persistence.Contract) {
	s.mu.Lock()
	s.contracts[c.ID] = c
	s.mu.Unlock()
}

// SeedTemplates appends template rows.
func (s *MemoryStore) SeedTemplates(rows ...persistence.ShiftTemplateRow) {
	s.mu.Lock()
	s.templates = append(s.templates, rows...)
	s.mu.Unlock()
}

// SeedHolidays appends holiday rows.
func (s *MemoryStore) SeedHolidays(rows ...persistence.Holiday) {
	s.mu.Lock()
	s.holidays = append(s.holidays, rows...)
	s.mu.Unlock()
}

// SeedLeaves appends leave rows.
func (s *MemoryStore) SeedLeaves(rows ...persistence.LeavePeriod) {
	s.mu.Lock()
	s.leaves = append(s.leaves, rows...)
	s.mu.Unlock()
}

// SeedRecords appends staff records directly, bypassing Create.
func (s *MemoryStore) SeedRecords(rows ...persistence.StaffRecord) {
	s.mu.Lock()
	s.records = append(s.records, rows...)
	s.mu.Unlock()
}

// QueryRange returns non-deleted records inside the query's date range.
func (s *MemoryStore) QueryRange(_ context.Context, q persistence.StaffRecordQuery) ([]persistence.StaffRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	from, to := dateonly.Key(q.From), dateonly.Key(q.To)
	var matched []persistence.StaffRecord
	for _, r := range s.records {
		if r.Deleted || r.EmployeeID != q.EmployeeID {
			continue
		}
		if q.ContractID != "" && r.ContractID != q.ContractID {
			continue
		}
		if key := dateonly.Key(r.Date); key < from || key > to {
			continue
		}
		matched = append(matched, r)
	}
	return matched, nil
}

// Create stores the record under its pre-assigned ID.
func (s *MemoryStore) Create(_ context.Context, record persistence.StaffRecord) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.CreateErr != nil {
		if err := s.CreateErr(record); err != nil {
			return "", err
		}
	}
	s.records = append(s.records, record)
	return record.ID, nil
}

// SoftDelete marks the record with the given ID as deleted.
func (s *MemoryStore) SoftDelete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.SoftDeleteErr != nil {
		if err := s.SoftDeleteErr(id); err != nil {
			return err
		}
	}
	for i := range s.records {
		if s.records[i].ID == id && !s.records[i].Deleted {
			s.records[i].Deleted = true
			return nil
		}
	}
	return persistence.ErrNotFound
}

// ListMonth returns holidays falling inside the month.
func (s *MemoryStore) ListMonth(_ context.Context, month time.Time) ([]persistence.Holiday, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	first, last := dateonly.Key(dateonly.MonthStart(month)), dateonly.Key(dateonly.MonthEnd(month))
	var matched []persistence.Holiday
	for _, h := range s.holidays {
		if key := dateonly.Key(h.Date); key >= first && key <= last {
			matched = append(matched, h)
		}
	}
	return matched, nil
}

// Holidays exposes the store as a HolidayRepository. MemoryStore cannot embed
// both ListMonth signatures, so leaves get a dedicated view instead.
func (s *MemoryStore) Holidays() persistence.HolidayRepository { return s }

// Leaves exposes the leave side of the store.
func (s *MemoryStore) Leaves() persistence.LeaveRepository { return leaveView{s} }

type leaveView struct{ store *MemoryStore }

func (v leaveView) ListMonth(_ context.Context, month time.Time, employeeID, managerID, groupID string) ([]persistence.LeavePeriod, error) {
	v.store.mu.Lock()
	defer v.store.mu.Unlock()

	first, last := dateonly.Key(dateonly.MonthStart(month)), dateonly.Key(dateonly.MonthEnd(month))
	var matched []persistence.LeavePeriod
	for _, l := range v.store.leaves {
		if l.EmployeeID != employeeID {
			continue
		}
		if managerID != "" && l.ManagerID != managerID {
			continue
		}
		if groupID != "" && l.GroupID != groupID {
			continue
		}
		if dateonly.Key(l.StartDate) > last {
			continue
		}
		if l.EndDate != nil && dateonly.Key(*l.EndDate) < first {
			continue
		}
		matched = append(matched, l)
	}
	return matched, nil
}

// ListByContract returns every template row for the contract, deleted included.
func (s *MemoryStore) ListByContract(_ context.Context, contractID string) ([]persistence.ShiftTemplateRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var matched []persistence.ShiftTemplateRow
	for _, row := range s.templates {
		if row.ContractID == contractID {
			matched = append(matched, row)
		}
	}
	return matched, nil
}

// GetContract resolves a contract by ID.
func (s *MemoryStore) GetContract(_ context.Context, id string) (persistence.Contract, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.contracts[id]
	if !ok {
		return persistence.Contract{}, persistence.ErrNotFound
	}
	return c, nil
}

// ActiveRecords returns the non-deleted records in insertion order.
func (s *MemoryStore) ActiveRecords() []persistence.StaffRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	var active []persistence.StaffRecord
	for _, r := range s.records {
		if !r.Deleted {
			active = append(active, r)
		}
	}
	return active
}

// DeletedIDs returns the ids of soft-deleted records in insertion order.
func (s *MemoryStore) DeletedIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var ids []string
	for _, r := range s.records {
		if r.Deleted {
			ids = append(ids, r.ID)
		}
	}
	return ids
}
