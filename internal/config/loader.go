package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config captures environment driven configuration values for the fill service.
type Config struct {
	HTTPPort  int
	SQLiteDSN string
	// SaveThrottle is the fixed delay between record store writes. The
	// default keeps the store's rate limits honored; see SaveWorkers for the
	// parallel alternative.
	SaveThrottle time.Duration
	// SaveWorkers selects the bulk persistence strategy: 0 or 1 writes
	// sequentially, higher values enable a bounded worker pool.
	SaveWorkers int
}

// Load parses configuration from a .env file (when present) and the process
// environment. Defaults cover every optional field; invalid values are
// reported by name.
func Load() (Config, error) {
	// A missing .env file is fine; the process environment still applies.
	_ = godotenv.Load()

	cfg := Config{
		HTTPPort:     8080,
		SQLiteDSN:    "file:schedule.db?_foreign_keys=on",
		SaveThrottle: 100 * time.Millisecond,
		SaveWorkers:  1,
	}

	invalid := make([]string, 0, 2)

	if portValue := strings.TrimSpace(os.Getenv("SCHEDULER_HTTP_PORT")); portValue != "" {
		port, err := strconv.Atoi(portValue)
		if err != nil || port <= 0 {
			invalid = append(invalid, "SCHEDULER_HTTP_PORT")
		} else {
			cfg.HTTPPort = port
		}
	}

	if dsn := strings.TrimSpace(os.Getenv("SCHEDULER_SQLITE_DSN")); dsn != "" {
		cfg.SQLiteDSN = dsn
	}

	if throttleValue := strings.TrimSpace(os.Getenv("SCHEDULER_SAVE_THROTTLE")); throttleValue != "" {
		throttle, err := time.ParseDuration(throttleValue)
		if err != nil || throttle < 0 {
			invalid = append(invalid, "SCHEDULER_SAVE_THROTTLE")
		} else {
			cfg.SaveThrottle = throttle
		}
	}

	if workersValue := strings.TrimSpace(os.Getenv("SCHEDULER_SAVE_WORKERS")); workersValue != "" {
		workers, err := strconv.Atoi(workersValue)
		if err != nil || workers < 0 {
			invalid = append(invalid, "SCHEDULER_SAVE_WORKERS")
		} else {
			cfg.SaveWorkers = workers
		}
	}

	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid environment values: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}
