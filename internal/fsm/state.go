// Package fsm implements the macro-state controller for a grid arcade game.
// It tracks the current game phase and remaining lives, applies the legal
// transitions between phases, and reports every transition to observers.
// The package has no external dependencies so hosts can test it in isolation.
package fsm

import (
	"fmt"
	"strings"
)

// State is a single game phase. Exactly one State is active at a time.
type State int

const (
	LevelInit State = iota
	Playing
	Paused
	LifeLost
	LevelComplete
	GameOver

	// Extension states, present only when the variant includes them.
	PowerMode
	PlayerTurn
	MouseTurn
)

var stateNames = map[State]string{
	LevelInit:     "LevelInit",
	Playing:       "Playing",
	Paused:        "Paused",
	LifeLost:      "LifeLost",
	LevelComplete: "LevelComplete",
	GameOver:      "GameOver",
	PowerMode:     "PowerMode",
	PlayerTurn:    "PlayerTurn",
	MouseTurn:     "MouseTurn",
}

// String returns the state's name (e.g. "LevelInit").
func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// IsTerminal reports whether no update can leave the state.
func (s State) IsTerminal() bool {
	return s == GameOver
}

// ParseState converts a state name to a State.
// Matching ignores case and underscores, so "level_init" and "LevelInit"
// both resolve to LevelInit.
func ParseState(name string) (State, error) {
	key := normalizeName(name)
	for s, n := range stateNames {
		if normalizeName(n) == key {
			return s, nil
		}
	}
	return 0, fmt.Errorf("fsm: unknown state %q", name)
}

func normalizeName(name string) string {
	name = strings.ReplaceAll(name, "_", "")
	name = strings.ReplaceAll(name, "-", "")
	return strings.ToLower(strings.TrimSpace(name))
}
