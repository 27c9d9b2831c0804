package session

import (
	"fmt"

	"github.com/vovakirdan/gridstate/internal/config"
	"github.com/vovakirdan/gridstate/internal/levels"
	"github.com/vovakirdan/gridstate/internal/registry"
)

// FromConfig starts a session of the registered mode modeID.
// The level comes from cfg.Session.Level when set, otherwise from the mode.
// The machine config is the mode's default with cfg's machine section applied.
func FromConfig(modeID string, cfg config.Config, opts ...Option) (*Session, error) {
	mode, err := registry.Lookup(modeID)
	if err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}

	levelRef := cfg.Session.Level
	if levelRef == "" {
		levelRef = mode.Level
	}
	level, err := levels.Resolve(levelRef)
	if err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}

	machineCfg, err := cfg.MachineFor(mode.MachineConfig())
	if err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}

	return New(mode, level, machineCfg, opts...)
}
