package strata

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultHistoryThreshold is the archival boundary used when Config leaves
// HistoryThreshold unset.
const DefaultHistoryThreshold int64 = 10

// Config defines store configuration.
type Config struct {
	// HistoryThreshold is the timestamp boundary below which live events are
	// eligible for archival. Zero means unset.
	// Default: DefaultHistoryThreshold.
	HistoryThreshold int64 `yaml:"history_threshold"`

	// Archiver configures the optional background archival loop.
	Archiver ArchiverConfig `yaml:"archiver"`

	// Logger receives lifecycle and archiver logging.
	// Default: slog.Default().
	Logger *slog.Logger `yaml:"-"`
}

// ArchiverConfig groups background archival settings.
type ArchiverConfig struct {
	// Interval is how often the background archiver runs. Zero disables the
	// loop; archival can still be invoked directly. In YAML this is a Go
	// duration string such as "15m".
	// Default: 0 (disabled).
	Interval time.Duration `yaml:"interval"`

	// Types restricts background archival to the listed event types.
	// Empty means every type currently in the store.
	Types []string `yaml:"types"`
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		HistoryThreshold: DefaultHistoryThreshold,
	}
}

// normalize fills unset fields with defaults.
func (c *Config) normalize() {
	if c.HistoryThreshold == 0 {
		c.HistoryThreshold = DefaultHistoryThreshold
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// LoadConfig reads configuration from a YAML file and applies STRATA_
// environment overrides on top of it.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	loadFromEnv(&cfg)
	cfg.normalize()
	return cfg, nil
}

// loadFromEnv overrides configuration from STRATA_-prefixed environment
// variables.
func loadFromEnv(cfg *Config) {
	if v := os.Getenv("STRATA_HISTORY_THRESHOLD"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.HistoryThreshold = n
		}
	}
	if v := os.Getenv("STRATA_ARCHIVE_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Archiver.Interval = d
		}
	}
	if v := os.Getenv("STRATA_ARCHIVE_TYPES"); v != "" {
		cfg.Archiver.Types = strings.Split(v, ",")
	}
}
