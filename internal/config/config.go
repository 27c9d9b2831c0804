// Package config provides YAML-based configuration loading, difficulty
// presets and environment overrides for gridstate.
package config

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/gridstate/internal/fsm"
)

// Config is the full application configuration.
type Config struct {
	Machine   MachineConfig   `yaml:"machine"`
	Session   SessionConfig   `yaml:"session"`
	Logging   LoggingConfig   `yaml:"logging"`
	Storage   StorageConfig   `yaml:"storage"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// MachineConfig overrides the mode's state set and collision rules.
// Zero values keep the mode's defaults.
type MachineConfig struct {
	Variant         string `yaml:"variant"`          // "classic", "mousetrap" or "base"
	Lives           int    `yaml:"lives"`            // Starting lives, at least 1
	CollisionPolicy string `yaml:"collision_policy"` // "life-counting", "always-life-lost", "sudden-death"
	ManualInit      bool   `yaml:"manual_init"`      // Host calls InitComplete itself
}

// SessionConfig controls which mode and level a session plays.
type SessionConfig struct {
	Mode     string `yaml:"mode"`      // Registered mode ID
	Level    string `yaml:"level"`     // Level ID or YAML path; empty uses the mode default
	TickRate int    `yaml:"tick_rate"` // Ticks per second
}

// LoggingConfig controls the charmbracelet logger.
type LoggingConfig struct {
	Level       string `yaml:"level"`       // debug, info, warn, error
	Transitions bool   `yaml:"transitions"` // Log every state transition
}

// StorageConfig controls the SQLite journal.
type StorageConfig struct {
	DBPath  string `yaml:"db_path"`
	Enabled bool   `yaml:"enabled"`
}

// TelemetryConfig controls OpenTelemetry tracing.
type TelemetryConfig struct {
	Enabled     bool   `yaml:"enabled"`
	ServiceName string `yaml:"service_name"`
}

// MachineFor applies the machine section on top of base, usually a mode's
// default machine config.
func (c Config) MachineFor(base fsm.Config) (fsm.Config, error) {
	cfg := base
	if c.Machine.Variant != "" {
		variant, err := fsm.VariantByName(c.Machine.Variant)
		if err != nil {
			return fsm.Config{}, fmt.Errorf("config: %w", err)
		}
		cfg.Variant = variant
	}
	if c.Machine.CollisionPolicy != "" {
		policy, err := fsm.ParsePolicy(c.Machine.CollisionPolicy)
		if err != nil {
			return fsm.Config{}, fmt.Errorf("config: %w", err)
		}
		cfg.Policy = policy
	}
	if c.Machine.Lives != 0 {
		cfg.Lives = c.Machine.Lives
	}
	if c.Machine.ManualInit {
		cfg.ManualInit = true
	}
	if err := cfg.Validate(); err != nil {
		return fsm.Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// LogLevel parses the logging level, defaulting to info.
func (c Config) LogLevel() log.Level {
	if c.Logging.Level == "" {
		return log.InfoLevel
	}
	level, err := log.ParseLevel(c.Logging.Level)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// Validate reports every invalid field.
func (c Config) Validate() error {
	var errs []error
	if _, err := c.MachineFor(fsm.DefaultConfig()); err != nil {
		errs = append(errs, err)
	}
	if c.Session.TickRate <= 0 {
		errs = append(errs, fmt.Errorf("config: tick_rate must be positive, got %d", c.Session.TickRate))
	}
	if c.Logging.Level != "" {
		if _, err := log.ParseLevel(c.Logging.Level); err != nil {
			errs = append(errs, fmt.Errorf("config: %w", err))
		}
	}
	return errors.Join(errs...)
}
