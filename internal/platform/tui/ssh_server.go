package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"
	"go.opentelemetry.io/otel/trace"

	"github.com/vovakirdan/gridstate/internal/config"
	"github.com/vovakirdan/gridstate/internal/core"
	"github.com/vovakirdan/gridstate/internal/registry"
	"github.com/vovakirdan/gridstate/internal/session"
	"github.com/vovakirdan/gridstate/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.gridstate/host_key.
	HostKeyPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// App configures every session started over SSH.
	App config.Config
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		IdleTimeout: 30 * time.Minute,
		App:         config.Default(),
	}
}

// SSHServer serves gridstate over SSH. Every connection plays its own
// independent sessions.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger
	tracer trace.Tracer
}

// NewSSHServer creates a new SSH server. The journal is opened from
// cfg.App.Storage when enabled; tracer may be nil.
func NewSSHServer(cfg SSHServerConfig, logger *log.Logger, tracer trace.Tracer) (*SSHServer, error) {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "gridstate-ssh",
		})
	}

	srv := &SSHServer{
		config: cfg,
		logger: logger,
		tracer: tracer,
	}

	if cfg.App.Storage.Enabled {
		store, err := storage.Open(cfg.App.Storage.DBPath)
		if err != nil {
			logger.Warn("could not open journal database", "error", err)
		} else {
			srv.store = store
		}
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			srv.closeStore()
			return nil, fmt.Errorf("cannot get home directory: %w", err)
		}
		hostKeyPath = filepath.Join(home, ".gridstate", "host_key")
	}
	if err := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); err != nil {
		srv.closeStore()
		return nil, fmt.Errorf("cannot create host key directory: %w", err)
	}

	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	)
	if err != nil {
		srv.closeStore()
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH connection.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	rc := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.config.App.Session.TickRate,
	}

	model := NewConnectionModel(s.sessionFactory(sshSession.User()), s.store, rc)
	return model, []tea.ProgramOption{tea.WithAltScreen()}
}

// sessionFactory builds sessions for one SSH user.
func (s *SSHServer) sessionFactory(user string) func(modeID string) Factory {
	logger := s.logger.With("user", user)
	return func(modeID string) Factory {
		return func() (registry.Game, error) {
			opts := []session.Option{
				session.WithLogger(logger, s.config.App.Logging.Transitions),
			}
			if s.store != nil {
				opts = append(opts, session.WithStore(s.store))
			}
			if s.tracer != nil {
				opts = append(opts, session.WithTracer(s.tracer))
			}
			return session.FromConfig(modeID, s.config.App, opts...)
		}
	}
}

// loggingMiddleware logs SSH connection events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("connection opened",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("connection closed",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until SIGINT or SIGTERM.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := s.server.Shutdown(ctx)
	s.closeStore()
	return err
}

func (s *SSHServer) closeStore() {
	if s.store != nil {
		s.store.Close()
		s.store = nil
	}
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

type screen int

const (
	screenMenu screen = iota
	screenGame
	screenHistory
)

// ConnectionModel is the top-level model for one SSH connection:
// mode picker, game and history in a single program.
type ConnectionModel struct {
	newFactory func(modeID string) Factory
	store      *storage.Store
	config     core.RuntimeConfig
	screen     screen
	menu       MenuModel
	game       Model
	history    HistoryModel
	quitting   bool
	err        error
}

// NewConnectionModel creates the per-connection model.
func NewConnectionModel(newFactory func(modeID string) Factory, store *storage.Store, cfg core.RuntimeConfig) ConnectionModel {
	return ConnectionModel{
		newFactory: newFactory,
		store:      store,
		config:     cfg,
		menu:       NewMenuModel(cfg),
	}
}

// Init initializes the connection.
func (m ConnectionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update routes messages to the active screen.
func (m ConnectionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenHistory:
		return m.updateHistory(msg)
	default:
		return m.updateMenu(msg)
	}
}

func (m ConnectionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	if menu, ok := next.(MenuModel); ok {
		m.menu = menu
	}

	res := m.menu.result()
	switch {
	case res.WantHistory:
		m.history = NewHistoryModel(m.store, m.config.ScreenW, m.config.ScreenH)
		m.screen = screenHistory
		return m, m.history.Init()

	case res.ModeID != "":
		game, err := NewModel(m.newFactory(res.ModeID), m.config)
		if err != nil {
			m.err = err
			m.menu = NewMenuModel(m.config)
			return m, nil
		}
		game.allowBack = true
		m.game = game
		m.screen = screenGame
		return m, m.game.Init()

	case m.menu.quitting:
		m.quitting = true
		return m, tea.Quit
	}

	return m, cmd
}

func (m ConnectionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.game.Update(msg)
	if game, ok := next.(Model); ok {
		m.game = game
	}

	switch {
	case m.game.BackToMenu():
		return m.backToMenu()
	case m.game.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	}
	return m, cmd
}

func (m ConnectionModel) updateHistory(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.history.Update(msg)
	if history, ok := next.(HistoryModel); ok {
		m.history = history
	}

	switch {
	case m.history.IsGoingBack():
		return m.backToMenu()
	case m.history.quitting:
		m.quitting = true
		return m, tea.Quit
	}
	return m, cmd
}

func (m ConnectionModel) backToMenu() (tea.Model, tea.Cmd) {
	m.screen = screenMenu
	m.menu = NewMenuModel(m.config)
	return m, m.menu.Init()
}

// View renders the active screen.
func (m ConnectionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenGame:
		return m.game.View()
	case screenHistory:
		return m.history.View()
	}

	view := m.menu.View()
	if m.err != nil {
		view += fmt.Sprintf("\nError: %v\n", m.err)
	}
	return view
}
