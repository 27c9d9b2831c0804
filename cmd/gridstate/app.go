package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"go.opentelemetry.io/otel/trace"

	"github.com/vovakirdan/gridstate/internal/config"
	"github.com/vovakirdan/gridstate/internal/storage"
	"github.com/vovakirdan/gridstate/internal/telemetry"
)

// loadConfig reads the config file and environment, then applies the
// persistent flags on top.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagFPS > 0 {
		cfg.Session.TickRate = flagFPS
	}
	if flagDBPath != "" {
		cfg.Storage.DBPath = flagDBPath
		cfg.Storage.Enabled = true
	}
	if flagLogLevel != "" {
		cfg.Logging.Level = flagLogLevel
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// mustLoadConfig is loadConfig for commands that cannot run without one.
func mustLoadConfig() config.Config {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

func newLogger(cfg config.Config, prefix string) *log.Logger {
	return telemetry.NewLogger(os.Stderr, cfg.LogLevel(), prefix)
}

// openStore opens the journal when storage is enabled. A failure is logged
// and the command continues without a journal.
func openStore(cfg config.Config, logger *log.Logger) *storage.Store {
	if !cfg.Storage.Enabled {
		return nil
	}
	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		logger.Warn("could not open journal database", "path", cfg.Storage.DBPath, "error", err)
		return nil
	}
	return store
}

// setupTracing returns a tracer when telemetry is enabled, or nil.
// The returned shutdown func is always safe to call.
func setupTracing(ctx context.Context, cfg config.Config, logger *log.Logger, name string) (trace.Tracer, func()) {
	if !cfg.Telemetry.Enabled {
		return nil, func() {}
	}
	shutdown, err := telemetry.Setup(ctx, cfg.Telemetry.ServiceName)
	if err != nil {
		logger.Warn("tracing disabled", "error", err)
		return nil, func() {}
	}
	return telemetry.Tracer(name), func() {
		if err := shutdown(context.Background()); err != nil {
			logger.Warn("tracer shutdown failed", "error", err)
		}
	}
}
