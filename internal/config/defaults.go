package config

import (
	_ "embed"
)

//go:embed defaults/gridstate.yaml
var defaultYAML []byte

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Session: SessionConfig{
			Mode:     "classic",
			TickRate: 60,
		},
		Logging: LoggingConfig{
			Level:       "info",
			Transitions: true,
		},
		Storage: StorageConfig{
			DBPath:  "~/.gridstate/journal.db",
			Enabled: true,
		},
		Telemetry: TelemetryConfig{
			ServiceName: "gridstate",
		},
	}
}
