package config

import "fmt"

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy    DifficultyPreset = "easy"
	DifficultyNormal  DifficultyPreset = "normal"
	DifficultyHard    DifficultyPreset = "hard"
	DifficultyClassic DifficultyPreset = "classic"
)

// ParsePreset validates a preset name. An empty name is allowed and means
// "keep the configured values".
func ParsePreset(name string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(name); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyClassic:
		return p, nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (want easy, normal, hard or classic)", name)
	}
}

// LivesForPreset returns the starting lives for a difficulty preset.
func LivesForPreset(preset DifficultyPreset) int {
	switch preset {
	case DifficultyEasy:
		return 5
	case DifficultyNormal:
		return 3
	default:
		return 1
	}
}

// ApplyPreset modifies the machine section based on a difficulty preset.
// The classic preset keeps one life and never ends the game on collision.
func ApplyPreset(cfg *Config, preset DifficultyPreset) {
	if preset == "" {
		return
	}
	cfg.Machine.Lives = LivesForPreset(preset)
	switch preset {
	case DifficultyClassic:
		cfg.Machine.CollisionPolicy = "always-life-lost"
	default:
		cfg.Machine.CollisionPolicy = "life-counting"
	}
}
