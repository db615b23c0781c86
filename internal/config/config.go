package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

type Config struct {
	General  GeneralConfig  `toml:"general"`
	Strategy StrategyConfig `toml:"strategy"`
}

type GeneralConfig struct {
	DBPath   string `toml:"db_path"`
	LogLevel string `toml:"log_level"`
}

type StrategyConfig struct {
	Kelly     KellyConfig     `toml:"kelly"`
	Mover     MoverConfig     `toml:"mover"`
	Threshold ThresholdConfig `toml:"threshold"`
	Decline   DeclineConfig   `toml:"decline"`
}

// KellyConfig covers both Kelly variants. Monetary values are in native
// token units, not wei. Fraction, FloorBalance and DefaultFee back the
// bet_kelly_fraction, floor_balance and bet_fee params when the caller's
// record omits them.
type KellyConfig struct {
	Enabled      bool    `toml:"enabled"`
	Fraction     float64 `toml:"fraction"`
	FloorBalance float64 `toml:"floor_balance"`
	MaxBet       float64 `toml:"max_bet"`
	DefaultFee   float64 `toml:"default_fee"`
}

// MoverConfig holds the market-moving solver's search constants. The bound
// multiplier and tolerance are heuristics with no proof of correctness for
// extreme reserve ratios, so they stay configurable.
type MoverConfig struct {
	Enabled         bool    `toml:"enabled"`
	MaxIters        int     `toml:"max_iters"`
	Tolerance       float64 `toml:"tolerance"`
	BoundMultiplier int64   `toml:"bound_multiplier"`
}

// ThresholdConfig maps one-decimal confidence buckets to bet amounts in
// native token units.
type ThresholdConfig struct {
	Enabled            bool               `toml:"enabled"`
	AmountPerThreshold map[string]float64 `toml:"amount_per_threshold"`
}

type DeclineConfig struct {
	Enabled bool `toml:"enabled"`
}

// Load reads the TOML config at path on top of the defaults, then applies
// environment overrides. A .env file in the working directory is honoured
// if present.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("SYM_DB_PATH"); v != "" {
		cfg.General.DBPath = v
	}
	if v := os.Getenv("SYM_LOG_LEVEL"); v != "" {
		cfg.General.LogLevel = v
	}
}

func DefaultConfig() *Config {
	return &Config{
		General: GeneralConfig{
			DBPath:   "./data/symplectic.db",
			LogLevel: "info",
		},
		Strategy: StrategyConfig{
			Kelly: KellyConfig{
				Enabled:      true,
				Fraction:     0.5,
				FloorBalance: 0.5,
				MaxBet:       0.8,
				DefaultFee:   0.02,
			},
			Mover: MoverConfig{
				Enabled:         true,
				MaxIters:        100,
				Tolerance:       0.01,
				BoundMultiplier: 100,
			},
			Threshold: ThresholdConfig{Enabled: true},
			Decline:   DeclineConfig{Enabled: true},
		},
	}
}
