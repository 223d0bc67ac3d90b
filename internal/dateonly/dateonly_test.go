package dateonly

import (
	"errors"
	"testing"
	"time"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	t.Run("strips time of day", func(t *testing.T) {
		t.Parallel()

		in := time.Date(2024, time.October, 15, 18, 42, 7, 123, time.UTC)
		got, err := Normalize(in)
		if err != nil {
			t.Fatalf("Normalize returned error: %v", err)
		}
		want := time.Date(2024, time.October, 15, 0, 0, 0, 0, time.UTC)
		if !got.Equal(want) {
			t.Fatalf("Normalize = %v, want %v", got, want)
		}
	})

	t.Run("keeps the location", func(t *testing.T) {
		t.Parallel()

		loc := time.FixedZone("UTC+13", 13*60*60)
		in := time.Date(2024, time.January, 2, 3, 4, 5, 0, loc)
		got, err := Normalize(in)
		if err != nil {
			t.Fatalf("Normalize returned error: %v", err)
		}
		if got.Location() != loc {
			t.Fatalf("Normalize moved location to %v", got.Location())
		}
		if got.Hour() != 0 || got.Day() != 2 {
			t.Fatalf("Normalize = %v, want local midnight of day 2", got)
		}
	})

	t.Run("rejects the zero value", func(t *testing.T) {
		t.Parallel()

		if _, err := Normalize(time.Time{}); !errors.Is(err, ErrInvalidDate) {
			t.Fatalf("Normalize(zero) error = %v, want ErrInvalidDate", err)
		}
	})
}

func TestKey(t *testing.T) {
	t.Parallel()

	t.Run("same calendar day in different representations", func(t *testing.T) {
		t.Parallel()

		// Both values name 2024-10-01 in their own local calendars even though
		// the raw instants differ.
		utc := time.Date(2024, time.October, 1, 0, 0, 0, 0, time.UTC)
		shifted := time.Date(2024, time.October, 1, 23, 0, 0, 0, time.FixedZone("UTC+23", 23*60*60))

		if Key(utc) != Key(shifted) {
			t.Fatalf("Key mismatch: %q vs %q", Key(utc), Key(shifted))
		}
		if Key(utc) != "2024-10-01" {
			t.Fatalf("Key = %q, want 2024-10-01", Key(utc))
		}
	})

	t.Run("different days differ", func(t *testing.T) {
		t.Parallel()

		a := time.Date(2024, time.October, 1, 23, 59, 0, 0, time.UTC)
		b := time.Date(2024, time.October, 2, 0, 1, 0, 0, time.UTC)
		if SameDay(a, b) {
			t.Fatal("SameDay reported adjacent days as equal")
		}
	})
}

func TestMonthBounds(t *testing.T) {
	t.Parallel()

	ref := time.Date(2024, time.February, 14, 12, 0, 0, 0, time.UTC)

	start := MonthStart(ref)
	if Key(start) != "2024-02-01" || start.Hour() != 0 {
		t.Fatalf("MonthStart = %v", start)
	}

	end := MonthEnd(ref)
	if Key(end) != "2024-02-29" {
		t.Fatalf("MonthEnd = %v, want leap-day 2024-02-29", end)
	}
	if end.Hour() != 23 || end.Minute() != 59 {
		t.Fatalf("MonthEnd is not end of day: %v", end)
	}
}

func TestEndOfDayPrecedesNextDay(t *testing.T) {
	t.Parallel()

	day := time.Date(2024, time.October, 15, 9, 30, 0, 0, time.UTC)
	eod := EndOfDay(day)
	next := time.Date(2024, time.October, 16, 0, 0, 0, 0, time.UTC)
	if !eod.Before(next) {
		t.Fatalf("EndOfDay %v should precede next midnight %v", eod, next)
	}
	if !SameDay(eod, day) {
		t.Fatalf("EndOfDay left the calendar day: %v", eod)
	}
}

func TestOpenEndSentinel(t *testing.T) {
	t.Parallel()

	sentinel := OpenEnd(time.UTC)
	if Key(sentinel) != "2099-12-31" {
		t.Fatalf("OpenEnd key = %q", Key(sentinel))
	}
	farFuture := time.Date(2030, time.June, 1, 0, 0, 0, 0, time.UTC)
	if !farFuture.Before(sentinel) {
		t.Fatal("sentinel does not bound far-future dates")
	}
}
