// Package config holds the tunable scan parameters, loaded from an optional
// YAML file with CLI flags layered on top.
package config

import (
	"fmt"
	"os"
	"runtime"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Scan is the configuration surface of a scan run. Every threshold the
// pipeline applies lives here; nothing is hardcoded in the scanner.
type Scan struct {
	Mode             string  `yaml:"mode"`
	MinProfit        float64 `yaml:"min_profit"`
	MaxSpreadPct     float64 `yaml:"max_spread_pct"`
	MaxStrikesPerExp int     `yaml:"max_strikes_per_exp"`
	RiskFreeRate     float64 `yaml:"risk_free_rate"`
	Workers          int     `yaml:"workers"`
}

func DefaultScan() Scan {
	return Scan{
		Mode:             "adjacent",
		MinProfit:        0.25,
		MaxSpreadPct:     0.25,
		MaxStrikesPerExp: 250,
		RiskFreeRate:     0.0,
		Workers:          runtime.NumCPU(),
	}
}

// LoadScan reads YAML over the defaults. An empty path returns the defaults.
func LoadScan(path string) (Scan, error) {
	cfg := DefaultScan()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	return cfg, nil
}

// LoadEnv loads a .env file if present. API keys come from the environment,
// never from the YAML config.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Debug(".env not found, using process environment")
	}
}
