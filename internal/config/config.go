package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the monitor needs to run. The store and geometry
// settings are mandatory and never defaulted; the operational settings have
// documented defaults.
type Config struct {
	DBDriver string
	DBDSN    string
	DBTable  string

	StartLineX      float64
	EndLineX        float64
	LineDistance    float64
	CrossingMargin  float64
	SpeedUnitFactor float64

	TrackerCommand []string
	ReplayFile     string

	ListenAddr      string
	QueueCapacity   int
	TrackTTL        time.Duration
	WeatherURL      string
	WeatherInterval time.Duration
}

// Load reads configuration from the environment. A .env file in the working
// directory is honoured when present. Every missing or malformed mandatory
// value is collected so a broken deployment surfaces the full list in one
// error instead of failing one variable at a time.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		ListenAddr:      ":8080",
		QueueCapacity:   1024,
		WeatherInterval: 10 * time.Minute,
	}

	var problems []string

	cfg.DBDriver = requireString("DB_DRIVER", &problems)
	cfg.DBDSN = requireString("DB_DSN", &problems)
	cfg.DBTable = requireString("DB_TABLE", &problems)

	cfg.StartLineX = requireFloat("START_LINE_X", &problems)
	cfg.EndLineX = requireFloat("END_LINE_X", &problems)
	cfg.LineDistance = requireFloat("LINE_DISTANCE", &problems)
	cfg.CrossingMargin = requireFloat("CROSSING_MARGIN", &problems)
	cfg.SpeedUnitFactor = requireFloat("SPEED_UNIT_FACTOR", &problems)

	trackerCmd := os.Getenv("TRACKER_CMD")
	cfg.ReplayFile = os.Getenv("REPLAY_FILE")
	if trackerCmd != "" {
		cfg.TrackerCommand = strings.Fields(trackerCmd)
	}
	if trackerCmd == "" && cfg.ReplayFile == "" {
		problems = append(problems, "one of TRACKER_CMD or REPLAY_FILE is required")
	}

	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		cfg.ListenAddr = v
	}
	if v := os.Getenv("QUEUE_CAPACITY"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			problems = append(problems, fmt.Sprintf("QUEUE_CAPACITY must be a positive integer, got %q", v))
		} else {
			cfg.QueueCapacity = n
		}
	}
	if v := os.Getenv("TRACK_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d < 0 {
			problems = append(problems, fmt.Sprintf("TRACK_TTL must be a duration, got %q", v))
		} else {
			cfg.TrackTTL = d
		}
	}
	cfg.WeatherURL = os.Getenv("WEATHER_URL")
	if v := os.Getenv("WEATHER_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			problems = append(problems, fmt.Sprintf("WEATHER_INTERVAL must be a positive duration, got %q", v))
		} else {
			cfg.WeatherInterval = d
		}
	}

	if len(problems) == 0 {
		if cfg.DBDriver != "sqlite" && cfg.DBDriver != "postgres" {
			problems = append(problems, fmt.Sprintf("DB_DRIVER must be sqlite or postgres, got %q", cfg.DBDriver))
		}
		if cfg.EndLineX <= cfg.StartLineX {
			problems = append(problems, "END_LINE_X must be greater than START_LINE_X")
		}
		if cfg.LineDistance <= 0 {
			problems = append(problems, "LINE_DISTANCE must be positive")
		}
		if cfg.CrossingMargin < 0 {
			problems = append(problems, "CROSSING_MARGIN must not be negative")
		}
		if cfg.SpeedUnitFactor <= 0 {
			problems = append(problems, "SPEED_UNIT_FACTOR must be positive")
		}
	}

	if len(problems) > 0 {
		return nil, fmt.Errorf("invalid configuration:\n  %s", strings.Join(problems, "\n  "))
	}
	return cfg, nil
}

func requireString(key string, problems *[]string) string {
	v := os.Getenv(key)
	if v == "" {
		*problems = append(*problems, key+" is required")
	}
	return v
}

func requireFloat(key string, problems *[]string) float64 {
	v := os.Getenv(key)
	if v == "" {
		*problems = append(*problems, key+" is required")
		return 0
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		*problems = append(*problems, fmt.Sprintf("%s must be a number, got %q", key, v))
		return 0
	}
	return f
}
