// Package session runs one game: a state machine, a level map and the
// player's avatar. It turns host input into machine events and draws the
// result into a core.Screen. It implements registry.Game.
package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/vovakirdan/gridstate/internal/core"
	"github.com/vovakirdan/gridstate/internal/fsm"
	"github.com/vovakirdan/gridstate/internal/levels"
	"github.com/vovakirdan/gridstate/internal/registry"
	"github.com/vovakirdan/gridstate/internal/storage"
	"github.com/vovakirdan/gridstate/internal/telemetry"
	"github.com/vovakirdan/gridstate/internal/tilemap"
)

// Stats counts what happened during a session.
type Stats struct {
	PlayTicks   uint64 // Ticks spent in Playing
	PausedTicks uint64 // Ticks spent in Paused
	Moves       int
	Collisions  int // Collisions that reached the machine while Playing
	Respawns    int
}

// Session is one game in progress.
// Like fsm.Machine it is owned by a single host loop.
type Session struct {
	id      string
	mode    registry.Mode
	level   levels.Level
	machine *fsm.Machine
	player  core.Position
	stats   Stats

	// manualInit makes the session finish LevelInit itself once the avatar
	// is back at spawn.
	manualInit bool

	logger *log.Logger
	store  *storage.Store
	span   trace.Span
	closed bool
}

// Option customizes a Session.
type Option func(*options)

type options struct {
	id             string
	logger         *log.Logger
	logTransitions bool
	store          *storage.Store
	tracer         trace.Tracer
	observers      []fsm.Observer
}

// WithID sets the session ID instead of generating a UUID.
func WithID(id string) Option {
	return func(o *options) { o.id = id }
}

// WithLogger sets the logger. When logTransitions is true every transition
// is logged at info level.
func WithLogger(logger *log.Logger, logTransitions bool) Option {
	return func(o *options) {
		o.logger = logger
		o.logTransitions = logTransitions
	}
}

// WithStore journals the session and its transitions to store.
func WithStore(store *storage.Store) Option {
	return func(o *options) { o.store = store }
}

// WithTracer records the session as a span with one event per transition.
func WithTracer(tracer trace.Tracer) Option {
	return func(o *options) { o.tracer = tracer }
}

// WithObserver adds an extra transition observer.
func WithObserver(obs fsm.Observer) Option {
	return func(o *options) { o.observers = append(o.observers, obs) }
}

// New starts a session of mode on level with the given machine config.
func New(mode registry.Mode, level levels.Level, cfg fsm.Config, opts ...Option) (*Session, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.id == "" {
		o.id = uuid.NewString()
	}
	if o.logger == nil {
		o.logger = log.Default()
	}
	if level.Map == nil {
		return nil, errors.New("session: level has no map")
	}
	if err := level.Map.Validate(level.Spawn); err != nil {
		return nil, fmt.Errorf("session: level %s: %w", level.ID, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}

	s := &Session{
		id:         o.id,
		mode:       mode,
		level:      level,
		player:     level.Spawn,
		manualInit: cfg.ManualInit,
		logger:     o.logger.With("session", shortID(o.id)),
		store:      o.store,
	}

	var observers []fsm.Option
	if o.logTransitions {
		observers = append(observers, fsm.WithObserver(telemetry.NewLogObserver(o.logger, "session", shortID(o.id))))
	}
	if o.tracer != nil {
		_, s.span = o.tracer.Start(context.Background(), "session",
			trace.WithAttributes(
				attribute.String("session.id", o.id),
				attribute.String("session.mode", mode.ID),
				attribute.String("session.level", level.ID),
				attribute.String("machine.variant", cfg.Variant.Name()),
				attribute.String("machine.policy", cfg.Policy.String()),
			))
		observers = append(observers, fsm.WithObserver(telemetry.NewSpanObserver(s.span)))
	}
	if o.store != nil {
		err := o.store.BeginSession(storage.SessionRecord{
			ID:         o.id,
			Mode:       mode.ID,
			Variant:    cfg.Variant.Name(),
			Level:      level.ID,
			StartLives: cfg.Lives,
		})
		if err != nil {
			s.logger.Warn("could not journal session", "error", err)
			s.store = nil
		} else {
			observers = append(observers, fsm.WithObserver(storage.NewJournal(o.store, o.id, o.logger)))
		}
	}
	for _, obs := range o.observers {
		observers = append(observers, fsm.WithObserver(obs))
	}
	observers = append(observers, fsm.WithTickHook(s.onTick))

	m, err := fsm.New(cfg, observers...)
	if err != nil {
		s.endSpan()
		if s.store != nil {
			//nolint:errcheck // Best-effort, the session never started
			s.store.EndSession(s.id, fsm.LevelInit.String(), cfg.Lives, 0)
		}
		return nil, fmt.Errorf("session: %w", err)
	}
	s.machine = m

	s.logger.Debug("session created",
		"mode", mode.ID, "level", level.ID, "variant", cfg.Variant.Name(),
		"policy", cfg.Policy.String(), "lives", cfg.Lives)
	return s, nil
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Title returns the mode and level names.
func (s *Session) Title() string {
	return fmt.Sprintf("%s - %s", s.mode.Title, s.level.Name)
}

// Machine exposes the state machine for hosts that drive events directly.
func (s *Session) Machine() *fsm.Machine {
	return s.machine
}

// Level returns the level being played.
func (s *Session) Level() levels.Level {
	return s.level
}

// Player returns the avatar position.
func (s *Session) Player() core.Position {
	return s.player
}

// Stats returns the session counters.
func (s *Session) Stats() Stats {
	return s.stats
}

// Step applies this tick's input, then runs one machine update.
// Pause toggles first; movement and collisions only act while Playing.
func (s *Session) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionPause) {
		s.machine.PausePressed()
	}

	if dir := in.Move(); dir != core.DirNone {
		s.move(dir)
	}

	if in.Has(core.ActionCollide) {
		s.collide()
	}

	s.machine.Update()
	return core.StepResult{State: s.State()}
}

// move steps the avatar if the target is walkable. Entering a trap is a
// collision.
func (s *Session) move(dir core.Dir) {
	if s.machine.State() != fsm.Playing {
		return
	}
	target := s.player.Step(dir)
	if !s.level.Map.IsWalkable(target) {
		return
	}
	s.player = target
	s.stats.Moves++

	if s.level.Map.Tile(target) == tilemap.Trap {
		s.collide()
	}
}

func (s *Session) collide() {
	if s.machine.State() == fsm.Playing {
		s.stats.Collisions++
	}
	s.machine.CollisionNormal()
}

// onTick is the machine's per-tick side effect.
func (s *Session) onTick(state fsm.State, tick uint64) {
	switch state {
	case fsm.LevelInit:
		s.player = s.level.Spawn
		s.logger.Debug("level initialized", "level", s.level.ID, "spawn", s.player.String(), "tick", tick)
		if s.manualInit {
			s.machine.InitComplete()
		}
	case fsm.Playing:
		s.stats.PlayTicks++
	case fsm.Paused:
		s.stats.PausedTicks++
	case fsm.LifeLost:
		s.stats.Respawns++
		s.logger.Debug("respawning", "lives", s.machine.Lives(), "tick", tick)
	}
}

// State returns the host-facing snapshot.
func (s *Session) State() core.GameState {
	state := s.machine.State()
	return core.GameState{
		Phase:    state.String(),
		Lives:    s.machine.Lives(),
		Ticks:    s.machine.Ticks(),
		GameOver: state == fsm.GameOver,
		Paused:   state == fsm.Paused,
	}
}

// Close ends the session's journal entry and trace span. It is safe to call
// more than once.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.endSpan()

	if s.store == nil {
		return nil
	}
	err := s.store.EndSession(s.id, s.machine.State().String(), s.machine.Lives(), s.machine.Ticks())
	if err != nil {
		return fmt.Errorf("session: %w", err)
	}
	return nil
}

func (s *Session) endSpan() {
	if s.span == nil {
		return
	}
	if s.machine != nil {
		s.span.SetAttributes(
			attribute.Int64("session.ticks", int64(s.machine.Ticks())),
			attribute.Int("session.lives_left", s.machine.Lives()),
		)
	}
	s.span.End()
	s.span = nil
}

// shortID trims a UUID to its first block for log lines.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
