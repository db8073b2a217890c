package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
)

// Dir is the per-project configuration directory.
const Dir = ".casedesk"

// DefaultMinRisk matches the dashboard's initial slider position.
const DefaultMinRisk = 20

// Config represents the casedesk configuration. Values come from
// .casedesk/config.json when present and are then overridden by CASEDESK_*
// environment variables.
type Config struct {
	DBPath         string `json:"db_path" env:"CASEDESK_DB_PATH"`
	DBDriver       string `json:"db_driver" env:"CASEDESK_DB_DRIVER"`
	ExportPath     string `json:"export_path" env:"CASEDESK_EXPORT_PATH"`
	SeedSize       int    `json:"seed_size" env:"CASEDESK_SEED_SIZE"`
	SeedEpoch      string `json:"seed_epoch" env:"CASEDESK_SEED_EPOCH"`
	RandSeed       uint64 `json:"rand_seed,omitempty" env:"CASEDESK_RAND_SEED"`
	CorruptPolicy  string `json:"corrupt_policy" env:"CASEDESK_CORRUPT_POLICY"`
	DefaultMinRisk int    `json:"default_min_risk" env:"CASEDESK_DEFAULT_MIN_RISK"`
	ListenAddr     string `json:"listen_addr" env:"CASEDESK_LISTEN_ADDR"`
	LogLevel       string `json:"log_level" env:"CASEDESK_LOG_LEVEL"`
	LogFormat      string `json:"log_format" env:"CASEDESK_LOG_FORMAT"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		DBPath:         "case_management.db",
		DBDriver:       "sqlite3",
		ExportPath:     "compliance_case_report.csv",
		SeedSize:       100,
		SeedEpoch:      "2025-01-01",
		CorruptPolicy:  "quarantine",
		DefaultMinRisk: DefaultMinRisk,
		ListenAddr:     "127.0.0.1:8501",
		LogLevel:       "info",
		LogFormat:      "text",
	}
}

// Path returns the config file location for dir.
func Path(dir string) string {
	return filepath.Join(dir, Dir, "config.json")
}

// LoadConfig reads .casedesk/config.json from dir over the defaults, then
// applies environment overrides. A missing file is not an error.
func LoadConfig(dir string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(Path(dir))
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SaveConfig writes config.json to dir.
func SaveConfig(dir string, cfg *Config) error {
	cfgDir := filepath.Join(dir, Dir)
	if err := os.MkdirAll(cfgDir, 0755); err != nil {
		return fmt.Errorf("failed to create %s dir: %w", Dir, err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(Path(dir), data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Validate checks values that would otherwise fail much later.
func (c *Config) Validate() error {
	if c.DBDriver != "sqlite3" && c.DBDriver != "sqlite" {
		return fmt.Errorf("db_driver must be sqlite3 or sqlite, got %q", c.DBDriver)
	}
	if c.CorruptPolicy != "quarantine" && c.CorruptPolicy != "replace" {
		return fmt.Errorf("corrupt_policy must be quarantine or replace, got %q", c.CorruptPolicy)
	}
	if c.SeedSize <= 0 {
		return fmt.Errorf("seed_size must be positive, got %d", c.SeedSize)
	}
	if c.DefaultMinRisk < 0 || c.DefaultMinRisk > 100 {
		return fmt.Errorf("default_min_risk must be within 0..100, got %d", c.DefaultMinRisk)
	}
	if _, err := c.Epoch(); err != nil {
		return err
	}
	return nil
}

// Epoch parses SeedEpoch.
func (c *Config) Epoch() (time.Time, error) {
	t, err := time.Parse("2006-01-02", c.SeedEpoch)
	if err != nil {
		return time.Time{}, fmt.Errorf("seed_epoch must be YYYY-MM-DD: %w", err)
	}
	return t, nil
}
