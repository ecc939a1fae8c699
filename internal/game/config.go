package game

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds game configuration options.
type Config struct {
	// Seed for random number generation. Used for reproducible damage rolls.
	// A seed of 0 means a random seed will be generated.
	Seed int64
	// Level is the name of an embedded level.
	Level string
	// HumanTeam is the team the player controls; every other team is AI.
	HumanTeam int
	// Telemetry enables the OTLP trace exporter.
	Telemetry bool
	// AnimationTick is how long each animation step stays on screen.
	AnimationTick time.Duration
	// LogFile receives the structured log; empty discards it.
	LogFile string
	// LogVerbosity is the logr V-level enabled in the log.
	LogVerbosity int
}

// DefaultConfig returns the configuration used when no environment
// variables are set.
func DefaultConfig() Config {
	return Config{
		Level:         "crossroads",
		HumanTeam:     0,
		Telemetry:     false,
		AnimationTick: 120 * time.Millisecond,
		LogFile:       "gridtactics.log",
	}
}

// LoadConfig reads GRIDTACTICS_* environment variables over DefaultConfig.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()

	if v, ok := os.LookupEnv("GRIDTACTICS_SEED"); ok {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return cfg, fmt.Errorf("GRIDTACTICS_SEED: %w", err)
		}
		cfg.Seed = seed
	}
	if v, ok := os.LookupEnv("GRIDTACTICS_LEVEL"); ok && v != "" {
		cfg.Level = v
	}
	if v, ok := os.LookupEnv("GRIDTACTICS_HUMAN_TEAM"); ok {
		team, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("GRIDTACTICS_HUMAN_TEAM: %w", err)
		}
		if team < 0 {
			return cfg, fmt.Errorf("GRIDTACTICS_HUMAN_TEAM: team %d is negative", team)
		}
		cfg.HumanTeam = team
	}
	if v, ok := os.LookupEnv("GRIDTACTICS_TELEMETRY"); ok {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return cfg, fmt.Errorf("GRIDTACTICS_TELEMETRY: %w", err)
		}
		cfg.Telemetry = enabled
	}
	if v, ok := os.LookupEnv("GRIDTACTICS_ANIMATION_TICK"); ok {
		tick, err := time.ParseDuration(v)
		if err != nil {
			return cfg, fmt.Errorf("GRIDTACTICS_ANIMATION_TICK: %w", err)
		}
		if tick <= 0 {
			return cfg, fmt.Errorf("GRIDTACTICS_ANIMATION_TICK: %s is not positive", tick)
		}
		cfg.AnimationTick = tick
	}
	if v, ok := os.LookupEnv("GRIDTACTICS_LOG_FILE"); ok {
		cfg.LogFile = v
	}
	if v, ok := os.LookupEnv("GRIDTACTICS_LOG_VERBOSITY"); ok {
		verbosity, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("GRIDTACTICS_LOG_VERBOSITY: %w", err)
		}
		cfg.LogVerbosity = verbosity
	}

	return cfg, nil
}
