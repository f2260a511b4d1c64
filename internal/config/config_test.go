package config

import (
	"strings"
	"testing"
)

func setValidEnv(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_DSN", "./test.db")
	t.Setenv("DB_TABLE", "vehicles")
	t.Setenv("START_LINE_X", "480")
	t.Setenv("END_LINE_X", "1145")
	t.Setenv("LINE_DISTANCE", "17")
	t.Setenv("CROSSING_MARGIN", "50")
	t.Setenv("SPEED_UNIT_FACTOR", "2.23694")
	t.Setenv("TRACKER_CMD", "python3 tracker.py --json")
}

func TestLoad(t *testing.T) {
	setValidEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.DBDriver != "sqlite" {
		t.Errorf("Expected driver sqlite, got %s", cfg.DBDriver)
	}
	if cfg.StartLineX != 480 || cfg.EndLineX != 1145 {
		t.Errorf("Unexpected line positions: %v, %v", cfg.StartLineX, cfg.EndLineX)
	}
	if cfg.CrossingMargin != 50 {
		t.Errorf("Expected margin 50, got %v", cfg.CrossingMargin)
	}
	if cfg.SpeedUnitFactor != 2.23694 {
		t.Errorf("Expected factor 2.23694, got %v", cfg.SpeedUnitFactor)
	}
	if len(cfg.TrackerCommand) != 3 || cfg.TrackerCommand[0] != "python3" {
		t.Errorf("Unexpected tracker command: %v", cfg.TrackerCommand)
	}
	if cfg.ListenAddr != ":8080" {
		t.Errorf("Expected default listen address, got %s", cfg.ListenAddr)
	}
	if cfg.QueueCapacity != 1024 {
		t.Errorf("Expected default queue capacity, got %d", cfg.QueueCapacity)
	}
	if cfg.TrackTTL != 0 {
		t.Errorf("Expected eviction disabled by default, got %v", cfg.TrackTTL)
	}
}

func TestLoad_ReportsEveryMissingVariable(t *testing.T) {
	for _, key := range []string{
		"DB_DRIVER", "DB_DSN", "DB_TABLE",
		"START_LINE_X", "END_LINE_X", "LINE_DISTANCE",
		"CROSSING_MARGIN", "SPEED_UNIT_FACTOR",
		"TRACKER_CMD", "REPLAY_FILE",
	} {
		t.Setenv(key, "")
	}

	_, err := Load()
	if err == nil {
		t.Fatal("Expected error for empty environment, got nil")
	}

	for _, key := range []string{
		"DB_DRIVER", "DB_DSN", "DB_TABLE",
		"START_LINE_X", "END_LINE_X", "LINE_DISTANCE",
		"CROSSING_MARGIN", "SPEED_UNIT_FACTOR",
	} {
		if !strings.Contains(err.Error(), key+" is required") {
			t.Errorf("Error does not mention %s: %v", key, err)
		}
	}
	if !strings.Contains(err.Error(), "TRACKER_CMD or REPLAY_FILE") {
		t.Errorf("Error does not mention the tracker source: %v", err)
	}
}

func TestLoad_MalformedNumber(t *testing.T) {
	setValidEnv(t)
	t.Setenv("START_LINE_X", "near-the-gate")

	_, err := Load()
	if err == nil {
		t.Fatal("Expected error for malformed START_LINE_X, got nil")
	}
	if !strings.Contains(err.Error(), "START_LINE_X must be a number") {
		t.Errorf("Unexpected error: %v", err)
	}
}

func TestLoad_LineOrderValidated(t *testing.T) {
	setValidEnv(t)
	t.Setenv("END_LINE_X", "100")

	_, err := Load()
	if err == nil {
		t.Fatal("Expected error when end line precedes start line, got nil")
	}
	if !strings.Contains(err.Error(), "END_LINE_X must be greater") {
		t.Errorf("Unexpected error: %v", err)
	}
}

func TestLoad_OperationalOverrides(t *testing.T) {
	setValidEnv(t)
	t.Setenv("LISTEN_ADDR", ":9090")
	t.Setenv("QUEUE_CAPACITY", "64")
	t.Setenv("TRACK_TTL", "5m")
	t.Setenv("WEATHER_INTERVAL", "1m")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.ListenAddr != ":9090" {
		t.Errorf("Expected :9090, got %s", cfg.ListenAddr)
	}
	if cfg.QueueCapacity != 64 {
		t.Errorf("Expected capacity 64, got %d", cfg.QueueCapacity)
	}
	if cfg.TrackTTL.Minutes() != 5 {
		t.Errorf("Expected 5m TTL, got %v", cfg.TrackTTL)
	}
	if cfg.WeatherInterval.Minutes() != 1 {
		t.Errorf("Expected 1m weather interval, got %v", cfg.WeatherInterval)
	}
}
