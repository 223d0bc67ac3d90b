package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Sergey0703/kpfaplus-sub001/internal/dateonly"
)

// Date-only columns hold "YYYY-MM-DD"; timestamps hold RFC 3339.

func encodeDay(t time.Time) string {
	return dateonly.Key(t)
}

func decodeDay(s string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("sqlite: bad date column %q: %w", s, err)
	}
	return t, nil
}

func encodeStamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func decodeStamp(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("sqlite: bad timestamp column %q: %w", s, err)
	}
	return t, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

func nullDay(t *time.Time) sql.NullString {
	if t == nil || t.IsZero() {
		return sql.NullString{}
	}
	return sql.NullString{String: encodeDay(*t), Valid: true}
}

func dayPtr(ns sql.NullString) (*time.Time, error) {
	if !ns.Valid || ns.String == "" {
		return nil, nil
	}
	t, err := decodeDay(ns.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
