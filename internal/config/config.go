// Package config defines process configuration for the market runner.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load layers a YAML file and the environment over those defaults.
// - External errors are wrapped with this package's sentinel errors.
package config

import "fmt"

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFile, when set, tees logs into a rotated file.
	LogFile string `koanf:"log_file"`

	// Seed drives every random draw of the cycle.
	Seed int64 `koanf:"seed"`

	// SnapshotPath points at the YAML league snapshot to resolve.
	SnapshotPath string `koanf:"snapshot_path"`

	// OutputPath receives the JSON report; empty means stdout.
	OutputPath string `koanf:"output_path"`

	// MetricsTextfile, when set, receives a Prometheus textfile after the run.
	MetricsTextfile string `koanf:"metrics_textfile"`

	// PreferenceDepth is how many entries each ranked list keeps.
	PreferenceDepth int `koanf:"preference_depth"`

	// IterationFactor bounds solver proposals at factor × vacancies.
	IterationFactor int `koanf:"iteration_factor"`

	// MinPoolSize and PoolMultiplier size the free-agent top-up.
	MinPoolSize    int `koanf:"min_pool_size"`
	PoolMultiplier int `koanf:"pool_multiplier"`

	// FreeAgentPrestigeMin and FreeAgentPrestigeMax bound the prestige
	// generated free agents are built around.
	FreeAgentPrestigeMin float64 `koanf:"free_agent_prestige_min"`
	FreeAgentPrestigeMax float64 `koanf:"free_agent_prestige_max"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:        "info",
		Seed:            7,
		PreferenceDepth: 5,
		IterationFactor: 20,
		MinPoolSize:     15,
		PoolMultiplier:  2,

		FreeAgentPrestigeMin: 35,
		FreeAgentPrestigeMax: 75,
	}
}

// Validate checks the numeric knobs.
func (c *Config) Validate() error {
	switch {
	case c.PreferenceDepth <= 0:
		return fmt.Errorf("%w: preference_depth must be positive, got %d", ErrInvalidConfig, c.PreferenceDepth)
	case c.IterationFactor <= 0:
		return fmt.Errorf("%w: iteration_factor must be positive, got %d", ErrInvalidConfig, c.IterationFactor)
	case c.IterationFactor < c.PreferenceDepth:
		// Each vacancy proposes at most depth times, so a smaller factor can
		// stop a correct run.
		return fmt.Errorf("%w: iteration_factor %d is below preference_depth %d", ErrInvalidConfig, c.IterationFactor, c.PreferenceDepth)
	case c.PoolMultiplier <= 0:
		return fmt.Errorf("%w: pool_multiplier must be positive, got %d", ErrInvalidConfig, c.PoolMultiplier)
	case c.MinPoolSize < 0:
		return fmt.Errorf("%w: min_pool_size must not be negative, got %d", ErrInvalidConfig, c.MinPoolSize)
	case c.FreeAgentPrestigeMin < 0 || c.FreeAgentPrestigeMax <= c.FreeAgentPrestigeMin:
		return fmt.Errorf("%w: free agent prestige range [%g, %g) is empty", ErrInvalidConfig, c.FreeAgentPrestigeMin, c.FreeAgentPrestigeMax)
	}
	return nil
}
