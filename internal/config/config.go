package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config keeps runtime settings for the planner daemon.
type Config struct {
	Addr             string
	DatabaseURL      string
	Env              string
	SnapshotPath     string
	SnapshotInterval time.Duration
	SnapshotTime     string // optional daily HH:MM
}

// Load reads configuration from environment variables with sane defaults.
func Load() Config {
	cfg := Config{
		Addr:             strings.TrimSpace(os.Getenv("PLANNER_ADDR")),
		DatabaseURL:      strings.TrimSpace(os.Getenv("DATABASE_URL")),
		Env:              strings.TrimSpace(os.Getenv("ENV")),
		SnapshotPath:     strings.TrimSpace(os.Getenv("SNAPSHOT_PATH")),
		SnapshotInterval: parseMinutes(strings.TrimSpace(os.Getenv("SNAPSHOT_INTERVAL_MINUTES"))),
		SnapshotTime:     strings.TrimSpace(os.Getenv("SNAPSHOT_TIME")),
	}

	if cfg.Addr == "" {
		cfg.Addr = ":8844"
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = "dayplan.db"
	}
	if cfg.Env == "" {
		cfg.Env = "development"
	}
	if cfg.SnapshotPath == "" {
		cfg.SnapshotPath = "dayplan_snapshot.json"
	}

	return cfg
}

func parseMinutes(raw string) time.Duration {
	if raw == "" {
		return 0
	}
	minutes, err := strconv.Atoi(raw)
	if err != nil || minutes <= 0 {
		return 0
	}
	return time.Duration(minutes) * time.Minute
}
