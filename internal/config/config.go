// Package config loads the console configuration from an optional YAML file
// with environment-variable overrides. A missing file falls back to defaults;
// the backend URL is the only required value.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/pkordes/fleet-console/internal/domain"
)

// TimelineConfig holds the pixel constants and default duration of the
// schedules overview.
type TimelineConfig struct {
	DayWidthPx  int `yaml:"day_width_px"`
	GapPx       int `yaml:"gap_px"`
	MinWidthPx  int `yaml:"min_width_px"`
	DefaultDays int `yaml:"default_days"`
}

// EntityDefaults are one list page's ClearAll reset targets.
type EntityDefaults struct {
	Filters   []string `yaml:"filters"`
	SortBy    string   `yaml:"sort_by"`
	SortOrder string   `yaml:"sort_order"`
}

// Config holds all configuration values for the console server.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string `yaml:"port"`

	// BackendURL is the base URL of the fleet backend. Required.
	// Override with FLEET_BACKEND_URL.
	BackendURL string `yaml:"backend_url"`

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string `yaml:"cors_origins"`

	// Operator identifies the console user; admin gates destructive actions.
	// Override with FLEET_OPERATOR / FLEET_ADMIN.
	Operator struct {
		Name  string `yaml:"name"`
		Admin bool   `yaml:"admin"`
	} `yaml:"operator"`

	// DebounceMS is the search quiet period in milliseconds.
	DebounceMS int `yaml:"debounce_ms"`

	// PageSize is the default list page size.
	PageSize int `yaml:"page_size"`

	Timeline TimelineConfig `yaml:"timeline"`

	// EntityDefaults maps entity keys (vehicles, drivers, maintenance-orders,
	// vehicle-schedules) to their ClearAll reset targets. The asymmetric
	// default filter set of vehicle-schedules is intentional.
	EntityDefaults map[string]EntityDefaults `yaml:"entity_defaults"`
}

// DefaultConfig returns the configuration used when no file is provided.
func DefaultConfig() Config {
	cfg := Config{
		Port:        "8080",
		LogLevel:    "info",
		CORSOrigins: []string{"http://localhost:5173"},
		DebounceMS:  300,
		PageSize:    20,
		Timeline: TimelineConfig{
			DayWidthPx:  40,
			GapPx:       4,
			MinWidthPx:  20,
			DefaultDays: 7,
		},
		EntityDefaults: map[string]EntityDefaults{
			"vehicles":           {SortBy: "name", SortOrder: domain.SortAsc},
			"drivers":            {SortBy: "name", SortOrder: domain.SortAsc},
			"maintenance-orders": {SortBy: "due_date", SortOrder: domain.SortAsc},
			"vehicle-schedules": {
				Filters:   []string{domain.ScheduleStatusActive, domain.ScheduleStatusScheduled},
				SortBy:    "start_date",
				SortOrder: domain.SortAsc,
			},
		},
	}
	cfg.Operator.Name = "operator"
	return cfg
}

// Load reads the YAML file at path (missing files fall back to defaults),
// applies environment overrides, and validates required values.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		content, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			// fall through to defaults
		case err != nil:
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(content, &cfg); err != nil {
				return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
			}
		}
	}

	applyEnv(&cfg)

	if cfg.BackendURL == "" {
		return Config{}, fmt.Errorf("config: backend URL not set (backend_url in %q or FLEET_BACKEND_URL)", path)
	}
	if cfg.DebounceMS <= 0 {
		cfg.DebounceMS = 300
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = 20
	}
	if cfg.Timeline.DayWidthPx <= 0 {
		cfg.Timeline.DayWidthPx = 40
	}
	if cfg.Timeline.DefaultDays <= 0 {
		cfg.Timeline.DefaultDays = 7
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("PORT"); v != "" {
		cfg.Port = v
	}
	if v := os.Getenv("FLEET_BACKEND_URL"); v != "" {
		cfg.BackendURL = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		cfg.CORSOrigins = splitCSV(v)
	}
	if v := os.Getenv("FLEET_OPERATOR"); v != "" {
		cfg.Operator.Name = v
	}
	if v := os.Getenv("FLEET_ADMIN"); v != "" {
		cfg.Operator.Admin = strings.EqualFold(v, "true") || v == "1"
	}
}

// Defaults returns the ClearAll targets for entity, falling back to an
// unfiltered, unsorted page when the entity has no configured entry.
func (c Config) Defaults(entity string) EntityDefaults {
	if d, ok := c.EntityDefaults[entity]; ok {
		return d
	}
	return EntityDefaults{SortOrder: domain.SortAsc}
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring
// empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
