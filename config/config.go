// Package config loads the engine configuration from YAML plus optional
// .env overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the full engine configuration.
type Config struct {
	Engine  EngineConfig  `yaml:"engine"`
	Risk    RiskConfig    `yaml:"risk"`
	Feed    FeedConfig    `yaml:"feed"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
}

// EngineConfig controls the evaluation loop and the OMS.
type EngineConfig struct {
	IntervalSeconds    int     `yaml:"interval_seconds"`
	Workers            int     `yaml:"workers"`
	StartCapital       float64 `yaml:"start_capital"`
	Brokerage          float64 `yaml:"brokerage"` // flat per-leg brokerage
	MomentumPerHorizon bool    `yaml:"momentum_per_horizon"`
}

// RiskConfig sets the hard risk gates. Zero values fall back to the risk
// package defaults.
type RiskConfig struct {
	MaxDrawdownPct float64 `yaml:"max_drawdown_pct"`
	DailyLossPct   float64 `yaml:"daily_loss_pct"`
	RiskPerTrade   float64 `yaml:"risk_per_trade"`
}

// FeedConfig points at the market-data snapshot and its request budget.
type FeedConfig struct {
	SnapshotPath string  `yaml:"snapshot_path"`
	RatePerSec   float64 `yaml:"rate_per_sec"`
}

// StorageConfig controls where trades and the ledger persist.
type StorageConfig struct {
	DSN string `yaml:"dsn"` // SQLite file path, or ":memory:"
}

// LogConfig controls logging format and level.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // text | json
}

// Load reads the YAML file and the .env file if present. Environment
// variables override matching YAML keys.
func Load(path string) (*Config, error) {
	// load .env when present, silently skip otherwise
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config.Load: read %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config.Load: parse YAML: %w", err)
	}

	applyEnvOverrides(&cfg)
	setDefaults(&cfg)

	return &cfg, nil
}

// EvalInterval returns the evaluation interval as a time.Duration.
func (c *Config) EvalInterval() time.Duration {
	return time.Duration(c.Engine.IntervalSeconds) * time.Second
}

// applyEnvOverrides overrides values from environment variables when set.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("GYAN_DSN"); v != "" {
		cfg.Storage.DSN = v
	}
	if v := os.Getenv("GYAN_SNAPSHOT"); v != "" {
		cfg.Feed.SnapshotPath = v
	}
	if v := os.Getenv("GYAN_START_CAPITAL"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			cfg.Engine.StartCapital = f
		}
	}
}

// setDefaults fills required values with sensible production defaults.
func setDefaults(cfg *Config) {
	if cfg.Engine.IntervalSeconds <= 0 {
		cfg.Engine.IntervalSeconds = 900
	}
	if cfg.Engine.StartCapital <= 0 {
		cfg.Engine.StartCapital = 100000
	}
	if cfg.Engine.Brokerage < 0 {
		cfg.Engine.Brokerage = 0
	}
	if cfg.Feed.SnapshotPath == "" {
		cfg.Feed.SnapshotPath = "snapshot.yaml"
	}
	if cfg.Storage.DSN == "" {
		cfg.Storage.DSN = "gyan.db"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
}
