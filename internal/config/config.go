package config

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Defaults for configuration values.
const (
	DefaultKellyFraction = 0.25
	DefaultEvalTimeout   = 5 * time.Second
	DefaultHistoryLimit  = 20
)

// Config holds all application configuration.
type Config struct {
	KellyFraction float64
	Bankroll      float64 // 0 = report fractions only
	MaxBetDollars float64 // 0 = no cap
	DBPath        string  // "" = evaluation journal disabled
	EvalTimeout   time.Duration
	HistoryLimit  int
}

// Load reads configuration from environment variables (and .env file if present).
func Load() Config {
	_ = godotenv.Load() // Ignore error if .env doesn't exist

	cfg := Config{
		KellyFraction: DefaultKellyFraction,
		Bankroll:      0,
		MaxBetDollars: 0,
		DBPath:        os.Getenv("DB_PATH"),
		EvalTimeout:   DefaultEvalTimeout,
		HistoryLimit:  DefaultHistoryLimit,
	}

	if v := os.Getenv("KELLY_FRACTION"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.KellyFraction = f
		}
	}

	if v := os.Getenv("BANKROLL"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Bankroll = f
		}
	}

	if v := os.Getenv("MAX_BET_DOLLARS"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.MaxBetDollars = f
		}
	}

	if v := os.Getenv("EVAL_TIMEOUT_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil {
			cfg.EvalTimeout = time.Duration(ms) * time.Millisecond
		}
	}

	if v := os.Getenv("HISTORY_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.HistoryLimit = n
		}
	}

	return cfg
}

// Validate checks that configuration values are within acceptable ranges.
func Validate(cfg Config) error {
	if !(cfg.KellyFraction > 0 && cfg.KellyFraction <= 1) {
		return fmt.Errorf("KELLY_FRACTION must be between 0 and 1, got %f", cfg.KellyFraction)
	}
	if !validAmount(cfg.Bankroll) {
		return fmt.Errorf("BANKROLL must be a finite non-negative amount, got %f", cfg.Bankroll)
	}
	if !validAmount(cfg.MaxBetDollars) {
		return fmt.Errorf("MAX_BET_DOLLARS must be a finite non-negative amount, got %f", cfg.MaxBetDollars)
	}
	if cfg.EvalTimeout < 10*time.Millisecond {
		return fmt.Errorf("EVAL_TIMEOUT_MS must be at least 10ms, got %v", cfg.EvalTimeout)
	}
	if cfg.HistoryLimit <= 0 {
		return fmt.Errorf("HISTORY_LIMIT must be positive, got %d", cfg.HistoryLimit)
	}
	return nil
}

// validAmount rejects negatives, NaN and Inf (strconv accepts "Inf" and "NaN")
func validAmount(v float64) bool {
	return v >= 0 && !math.IsInf(v, 0)
}

// FormatMaxBet returns a human-readable string for the max bet setting.
func FormatMaxBet(maxBet float64) string {
	if maxBet <= 0 {
		return "no cap"
	}
	return fmt.Sprintf("$%.2f", maxBet)
}
