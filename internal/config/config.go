// Package config holds the environment-driven game tuning knobs.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config carries the adjustable game rules. Network settings (ports,
// TLS material) stay on command-line flags in cmd/server.
type Config struct {
	// StartingBudget is the stake every new studio begins with, in $M.
	StartingBudget int `env:"MOGULS_STARTING_BUDGET" envDefault:"100"`
	// TurnsPerCycle is the number of hiring turns in each production cycle.
	TurnsPerCycle int `env:"MOGULS_TURNS_PER_CYCLE" envDefault:"5"`
	// AwardPoints is the score granted to the Best Picture winner.
	AwardPoints int `env:"MOGULS_AWARD_POINTS" envDefault:"50"`
	// MultiplierMinPct / MultiplierMaxPct bound the box-office multiplier,
	// expressed as integer percent (100 = break-even on heat).
	MultiplierMinPct int `env:"MOGULS_MULTIPLIER_MIN_PCT" envDefault:"25"`
	MultiplierMaxPct int `env:"MOGULS_MULTIPLIER_MAX_PCT" envDefault:"175"`
}

// Parse loads configuration from environment variables.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.MultiplierMinPct > cfg.MultiplierMaxPct {
		return Config{}, fmt.Errorf("multiplier range inverted: min %d > max %d", cfg.MultiplierMinPct, cfg.MultiplierMaxPct)
	}
	return cfg, nil
}

// Default returns the configuration used when no environment overrides
// are present. Tests build on this rather than mutating the process env.
func Default() Config {
	return Config{
		StartingBudget:   100,
		TurnsPerCycle:    5,
		AwardPoints:      50,
		MultiplierMinPct: 25,
		MultiplierMaxPct: 175,
	}
}
