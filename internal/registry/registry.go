// Package registry provides a global registry of playable modes.
// Modes register themselves in init() functions, allowing the CLI to
// discover them without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/gridstate/internal/core"
	"github.com/vovakirdan/gridstate/internal/fsm"
)

// Game is what the host loop drives: one running session.
// The platform handles input mapping, timing, and rendering.
type Game interface {
	// ID returns the unique session identifier.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Step forwards this tick's input as machine events, then runs one update.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current session into the provided screen buffer.
	// The screen is pre-cleared before this call.
	Render(dst *core.Screen)

	// State returns the current snapshot.
	State() core.GameState
}

// Mode describes a registered way to play: which state set, which collision
// rules and which level by default.
type Mode struct {
	ID          string
	Title       string
	Description string
	Variant     fsm.Variant
	Policy      fsm.CollisionPolicy
	Lives       int    // Default starting lives
	Level       string // Default level ID
}

// MachineConfig returns the fsm.Config the mode plays with by default.
func (m Mode) MachineConfig() fsm.Config {
	lives := m.Lives
	if lives < 1 {
		lives = fsm.DefaultLives
	}
	return fsm.Config{
		Variant: m.Variant,
		Lives:   lives,
		Policy:  m.Policy,
	}
}

// ModeInfo contains metadata about a registered mode.
type ModeInfo struct {
	ID          string
	Title       string
	Description string
	Variant     string
	Policy      string
	Lives       int
	Level       string
}

var (
	modes = make(map[string]Mode)
	mu    sync.RWMutex
)

// Register adds a mode to the registry.
// Typically called from a mode package's init() function.
// Panics if a mode with the same ID is already registered.
func Register(m Mode) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := modes[m.ID]; exists {
		panic(fmt.Sprintf("registry: mode %q already registered", m.ID))
	}
	if m.Variant.IsZero() {
		panic(fmt.Sprintf("registry: mode %q has no variant", m.ID))
	}
	modes[m.ID] = m
}

// List returns information about all registered modes, sorted by ID.
func List() []ModeInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]ModeInfo, 0, len(modes))
	for id, m := range modes {
		result = append(result, ModeInfo{
			ID:          id,
			Title:       m.Title,
			Description: m.Description,
			Variant:     m.Variant.Name(),
			Policy:      m.Policy.String(),
			Lives:       m.MachineConfig().Lives,
			Level:       m.Level,
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Lookup returns a mode by its ID.
// Returns an error if the mode ID is not registered.
func Lookup(id string) (Mode, error) {
	mu.RLock()
	defer mu.RUnlock()

	m, ok := modes[id]
	if !ok {
		return Mode{}, fmt.Errorf("registry: unknown mode %q", id)
	}
	return m, nil
}

// Exists checks if a mode with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := modes[id]
	return ok
}
