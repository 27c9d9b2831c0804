// Package mousetrap registers the two-player cellar mode.
// Any trap ends the game immediately.
package mousetrap

import (
	"github.com/vovakirdan/gridstate/internal/fsm"
	"github.com/vovakirdan/gridstate/internal/registry"
)

// ID is the registry key for this mode.
const ID = "mousetrap"

func init() {
	registry.Register(registry.Mode{
		ID:          ID,
		Title:       "Mouse Trap",
		Description: "Cross the cellar without touching a trap. One touch and it's over.",
		Variant:     fsm.MouseTrap,
		Policy:      fsm.PolicySuddenDeath,
		Lives:       1,
		Level:       "cellar",
	})
}
