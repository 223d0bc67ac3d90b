// Command scheduler serves the schedule fill API over HTTP, backed by a local
// SQLite store.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/Sergey0703/kpfaplus-sub001/internal/application"
	"github.com/Sergey0703/kpfaplus-sub001/internal/config"
	"github.com/Sergey0703/kpfaplus-sub001/internal/http"
	"github.com/Sergey0703/kpfaplus-sub001/internal/persistence/sqlite"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("scheduler stopped", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	db, err := sqlite.Open(cfg.SQLiteDSN)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Warn("closing database failed", "error", err)
		}
	}()

	if err := db.Migrate(ctx); err != nil {
		return err
	}

	fillService := application.NewFillService(
		sqlite.NewStaffRecordRepository(db, time.Now),
		sqlite.NewHolidayRepository(db),
		sqlite.NewLeaveRepository(db),
		sqlite.NewTemplateRepository(db, time.Now),
		sqlite.NewContractRepository(db),
		uuid.NewString,
		time.Now,
		application.SaveOptions{
			Throttle: cfg.SaveThrottle,
			Workers:  cfg.SaveWorkers,
		},
		logger,
	)

	handler := http.NewRouter(http.RouterConfig{
		Fill:       http.NewFillHandler(fillService, logger),
		Middleware: []func(nethttp.Handler) nethttp.Handler{http.RequestLogger(logger)},
	})

	server := &nethttp.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("scheduler listening", "addr", server.Addr, "dsn", cfg.SQLiteDSN)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errCh
}
