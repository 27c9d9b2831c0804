package fsm

import (
	"errors"
	"fmt"
)

// DefaultLives is the life count a machine starts with when none is configured.
const DefaultLives = 1

// Config selects the state set and rules for one machine.
type Config struct {
	Variant Variant
	Lives   int
	Policy  CollisionPolicy

	// ManualInit stops Update from leaving LevelInit on its own.
	// The host must call InitComplete once level loading is done.
	ManualInit bool
}

// DefaultConfig returns the classic variant with one life and life counting.
func DefaultConfig() Config {
	return Config{
		Variant: Classic,
		Lives:   DefaultLives,
		Policy:  PolicyLifeCounting,
	}
}

// Validate checks the config for values New would reject.
func (c Config) Validate() error {
	var errs []error
	if c.Variant.IsZero() {
		errs = append(errs, errors.New("variant is not set"))
	}
	if c.Lives < 1 {
		errs = append(errs, fmt.Errorf("lives must be at least 1, got %d", c.Lives))
	}
	if !c.Policy.valid() {
		errs = append(errs, fmt.Errorf("unknown collision policy %d", int(c.Policy)))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("fsm: invalid config: %w", err)
	}
	return nil
}

// TickHook is the per-tick side effect for the current state.
// It runs once per Update, before any transition that Update makes.
type TickHook func(s State, tick uint64)

// Option customizes a Machine.
type Option func(*Machine)

// WithObserver adds an observer. Observers are notified in the order added.
func WithObserver(o Observer) Option {
	return func(m *Machine) {
		if o != nil {
			m.observers = append(m.observers, o)
		}
	}
}

// WithTickHook sets the per-tick side effect run by Update.
func WithTickHook(h TickHook) Option {
	return func(m *Machine) {
		m.tickHook = h
	}
}

// Machine is the game-phase controller for one session.
// It is not safe for concurrent use; the host loop owns it.
type Machine struct {
	state      State
	lives      int
	ticks      uint64
	variant    Variant
	policy     CollisionPolicy
	manualInit bool

	observers []Observer
	tickHook  TickHook
}

// New creates a machine in LevelInit with cfg.Lives lives.
func New(cfg Config, opts ...Option) (*Machine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	m := &Machine{
		state:      LevelInit,
		lives:      cfg.Lives,
		variant:    cfg.Variant,
		policy:     cfg.Policy,
		manualInit: cfg.ManualInit,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// State returns the active state.
func (m *Machine) State() State {
	return m.state
}

// Lives returns the remaining lives.
func (m *Machine) Lives() int {
	return m.lives
}

// Ticks returns how many times Update has run.
func (m *Machine) Ticks() uint64 {
	return m.ticks
}

// Variant returns the machine's state set.
func (m *Machine) Variant() Variant {
	return m.variant
}

// Policy returns the collision policy.
func (m *Machine) Policy() CollisionPolicy {
	return m.policy
}

// SetState moves the machine to s. Observers see the transition before the
// state changes. Targets outside the machine's variant are ignored and
// produce no transition.
//
// Every other operation changes state through SetState.
func (m *Machine) SetState(s State) {
	if !m.variant.Has(s) {
		return
	}
	t := Transition{From: m.state, To: s, Tick: m.ticks, Lives: m.lives}
	for _, o := range m.observers {
		o.OnTransition(t)
	}
	m.state = s
}

// InitComplete finishes level initialization: LevelInit -> Playing.
// No-op in any other state.
func (m *Machine) InitComplete() {
	if m.state != LevelInit {
		return
	}
	m.SetState(Playing)
}

// PausePressed toggles between Playing and Paused.
// No-op in any other state.
func (m *Machine) PausePressed() {
	switch m.state {
	case Playing:
		m.SetState(Paused)
	case Paused:
		m.SetState(Playing)
	}
}

// CollisionNormal handles a collision with a normal hazard. In Playing it
// takes one life and moves to the state chosen by the collision policy.
// No-op in any other state.
func (m *Machine) CollisionNormal() {
	if m.state != Playing {
		return
	}
	if m.lives > 0 {
		m.lives--
	}
	m.SetState(m.policy.target(m.lives))
}

// Update runs one tick: the current state's side effect, then any automatic
// transition. LevelInit advances to Playing (unless ManualInit is set) and
// LifeLost returns to LevelInit. All other states stay put.
func (m *Machine) Update() {
	current := m.state
	if m.tickHook != nil {
		m.tickHook(current, m.ticks)
	}
	m.ticks++

	switch current {
	case LevelInit:
		if !m.manualInit {
			m.InitComplete()
		}
	case LifeLost:
		m.SetState(LevelInit)
	}
}
