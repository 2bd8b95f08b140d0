// Package config loads runtime configuration from the environment,
// following the host project's LoadConfigFromEnv/getEnv pattern
// (internal/db/connection.go, internal/cache/redis.go) exactly. Every
// field has a workable zero-configuration default; the optional Postgres
// archive is enabled by setting OPTIMIZE_POSTGRES_DSN.
package config

import (
	"os"
	"strconv"
)

// Config holds optimizer defaults and optional external-service
// settings.
type Config struct {
	// Enumeration defaults (SPEC_FULL.md §4.3).
	MinBudget       int
	MaxBudget       int
	BudgetSteps     int
	DurationCeiling int

	// Optimizer defaults (SPEC_FULL.md §4.5).
	AnnealingC        float64
	HillClimbRestarts int
	HillClimbIters    int
	RandomBestIters   int
	RandomSeed        int64

	// Optional domain-stack integrations (SPEC_FULL.md §7).
	PostgresDSN  string // empty disables run archival
	RedisAddr    string // not read by the runner; the Redis cache is selected by a redis:// cache path
	ServiceAddr  string // listen address of cmd/optimize-service; empty means ":8090"
	ServiceAPIKey string
}

// LoadFromEnv reads configuration from the environment, applying defaults
// for anything unset.
func LoadFromEnv() (Config, error) {
	minBudget, err := getEnvInt("OPTIMIZE_MIN_BUDGET", 50)
	if err != nil {
		return Config{}, err
	}
	maxBudget, err := getEnvInt("OPTIMIZE_MAX_BUDGET", 100)
	if err != nil {
		return Config{}, err
	}
	steps, err := getEnvInt("OPTIMIZE_BUDGET_STEPS", 5)
	if err != nil {
		return Config{}, err
	}
	duration, err := getEnvInt("OPTIMIZE_DURATION_CEILING", 180)
	if err != nil {
		return Config{}, err
	}
	annealingC, err := getEnvFloat("OPTIMIZE_ANNEALING_C", 25000)
	if err != nil {
		return Config{}, err
	}
	restarts, err := getEnvInt("OPTIMIZE_HILLCLIMB_RESTARTS", 8)
	if err != nil {
		return Config{}, err
	}
	hillIters, err := getEnvInt("OPTIMIZE_HILLCLIMB_ITERATIONS", 200)
	if err != nil {
		return Config{}, err
	}
	bestIters, err := getEnvInt("OPTIMIZE_RANDOM_BEST_ITERATIONS", 1000)
	if err != nil {
		return Config{}, err
	}
	seed, err := getEnvInt64("OPTIMIZE_SEED", 42)
	if err != nil {
		return Config{}, err
	}

	return Config{
		MinBudget:       minBudget,
		MaxBudget:       maxBudget,
		BudgetSteps:     steps,
		DurationCeiling: duration,
		AnnealingC:      annealingC,
		HillClimbRestarts: restarts,
		HillClimbIters:    hillIters,
		RandomBestIters:   bestIters,
		RandomSeed:        seed,
		PostgresDSN:   getEnv("OPTIMIZE_POSTGRES_DSN", ""),
		RedisAddr:     getEnv("OPTIMIZE_REDIS_ADDR", ""),
		ServiceAddr:   getEnv("OPTIMIZE_SERVICE_ADDR", ""),
		ServiceAPIKey: getEnv("OPTIMIZE_SERVICE_API_KEY", ""),
	}, nil
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}
	return strconv.Atoi(v)
}

func getEnvInt64(key string, defaultValue int64) (int64, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}
	return strconv.ParseInt(v, 10, 64)
}

func getEnvFloat(key string, defaultValue float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}
	return strconv.ParseFloat(v, 64)
}
