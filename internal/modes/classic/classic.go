// Package classic registers the single-player maze mode.
package classic

import (
	"github.com/vovakirdan/gridstate/internal/fsm"
	"github.com/vovakirdan/gridstate/internal/registry"
)

// ID is the registry key for this mode.
const ID = "classic"

func init() {
	registry.Register(registry.Mode{
		ID:          ID,
		Title:       "Classic Maze",
		Description: "Walk the maze and avoid traps. Each trap costs a life; the last life ends the game.",
		Variant:     fsm.Classic,
		Policy:      fsm.PolicyLifeCounting,
		Lives:       3,
		Level:       "maze",
	})
}
