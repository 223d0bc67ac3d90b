package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"SCHEDULER_HTTP_PORT", "SCHEDULER_SQLITE_DSN", "SCHEDULER_SAVE_THROTTLE", "SCHEDULER_SAVE_WORKERS"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTPPort != 8080 {
		t.Errorf("HTTPPort = %d", cfg.HTTPPort)
	}
	if cfg.SQLiteDSN == "" {
		t.Error("SQLiteDSN empty")
	}
	if cfg.SaveThrottle != 100*time.Millisecond {
		t.Errorf("SaveThrottle = %v", cfg.SaveThrottle)
	}
	if cfg.SaveWorkers != 1 {
		t.Errorf("SaveWorkers = %d", cfg.SaveWorkers)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SCHEDULER_HTTP_PORT", "9090")
	t.Setenv("SCHEDULER_SQLITE_DSN", "file:custom.db")
	t.Setenv("SCHEDULER_SAVE_THROTTLE", "250ms")
	t.Setenv("SCHEDULER_SAVE_WORKERS", "4")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTPPort != 9090 || cfg.SQLiteDSN != "file:custom.db" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.SaveThrottle != 250*time.Millisecond || cfg.SaveWorkers != 4 {
		t.Errorf("save options = %v/%d", cfg.SaveThrottle, cfg.SaveWorkers)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	cases := []struct {
		key   string
		value string
	}{
		{"SCHEDULER_HTTP_PORT", "not-a-port"},
		{"SCHEDULER_HTTP_PORT", "-1"},
		{"SCHEDULER_SAVE_THROTTLE", "fast"},
		{"SCHEDULER_SAVE_WORKERS", "-2"},
	}

	for _, tc := range cases {
		t.Run(tc.key+"="+tc.value, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)

			if _, err := Load(); err == nil {
				t.Fatalf("Load accepted %s=%s", tc.key, tc.value)
			}
		})
	}
}
