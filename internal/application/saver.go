package application

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/Sergey0703/kpfaplus-sub001/internal/dateonly"
	"github.com/Sergey0703/kpfaplus-sub001/internal/persistence"
)

// SaveOptions configures the bulk persistence strategy. The default is
// sequential writes with a fixed delay between requests; setting Workers
// above one switches to a bounded pool for stores that tolerate concurrency.
// Per-record error isolation holds under either strategy.
type SaveOptions struct {
	Throttle time.Duration
	Workers  int
}

// SaveOutcome aggregates a bulk save. Partial success is a legitimate
// terminal state; already-written records are never rolled back.
type SaveOutcome struct {
	Total        int
	SuccessCount int
	Errors       []SaveError
}

func saveRecords(ctx context.Context, store persistence.StaffRecordRepository, records []persistence.StaffRecord, opts SaveOptions, logger *slog.Logger) SaveOutcome {
	if opts.Workers > 1 {
		return saveConcurrent(ctx, store, records, opts, logger)
	}
	return saveSequential(ctx, store, records, opts, logger)
}

func saveSequential(ctx context.Context, store persistence.StaffRecordRepository, records []persistence.StaffRecord, opts SaveOptions, logger *slog.Logger) SaveOutcome {
	outcome := SaveOutcome{Total: len(records)}

	for i, record := range records {
		if err := ctx.Err(); err != nil {
			outcome.Errors = append(outcome.Errors, saveFailure(record, err))
			continue
		}
		if i > 0 && opts.Throttle > 0 {
			// Fixed delay between requests keeps the store's rate limits
			// honored; the writes are deliberately not parallel here.
			sleep(ctx, opts.Throttle)
		}
		if _, err := store.Create(ctx, record); err != nil {
			logger.WarnContext(ctx, "record save failed",
				"date", dateonly.Key(record.Date), "shift", record.ShiftNumber, "error", err)
			outcome.Errors = append(outcome.Errors, saveFailure(record, err))
			continue
		}
		outcome.SuccessCount++
	}
	return outcome
}

func saveConcurrent(ctx context.Context, store persistence.StaffRecordRepository, records []persistence.StaffRecord, opts SaveOptions, logger *slog.Logger) SaveOutcome {
	outcome := SaveOutcome{Total: len(records)}

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	sem := make(chan struct{}, opts.Workers)

	for _, record := range records {
		record := record
		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()

			if err := ctx.Err(); err != nil {
				mu.Lock()
				outcome.Errors = append(outcome.Errors, saveFailure(record, err))
				mu.Unlock()
				return
			}
			_, err := store.Create(ctx, record)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				logger.WarnContext(ctx, "record save failed",
					"date", dateonly.Key(record.Date), "shift", record.ShiftNumber, "error", err)
				outcome.Errors = append(outcome.Errors, saveFailure(record, err))
				return
			}
			outcome.SuccessCount++
		}()
		if opts.Throttle > 0 {
			sleep(ctx, opts.Throttle)
		}
	}
	wg.Wait()
	return outcome
}

func saveFailure(record persistence.StaffRecord, err error) SaveError {
	return SaveError{
		Title:   record.Title,
		Date:    dateonly.Key(record.Date),
		Message: err.Error(),
	}
}

func sleep(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
