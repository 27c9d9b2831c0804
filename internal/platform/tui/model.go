package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/gridstate/internal/core"
	"github.com/vovakirdan/gridstate/internal/registry"
)

// helpHeight is the number of rows reserved below the screen buffer.
const helpHeight = 1

// Factory creates a new session. The model calls it once at start and again
// on every restart after GameOver.
type Factory func() (registry.Game, error)

// Model is the Bubble Tea model that runs one session at a time.
type Model struct {
	factory    Factory
	game       registry.Game
	screen     *core.Screen
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keys       KeyMap
	help       help.Model
	allowBack  bool
	quitting   bool
	backToMenu bool
	err        error
}

// NewModel creates the model and its first session.
func NewModel(factory Factory, cfg core.RuntimeConfig) (Model, error) {
	game, err := factory()
	if err != nil {
		return Model{}, err
	}

	return Model{
		factory:    factory,
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-helpHeight, 1)),
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		gameState:  game.State(),
		keys:       DefaultKeyMap(),
		help:       help.New(),
	}, nil
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, max(msg.Height-helpHeight, 1))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey records the key's action for the next tick.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	case m.allowBack && key.Matches(msg, m.keys.Back):
		if m.gameState.GameOver || m.gameState.Paused {
			m.closeGame()
			m.backToMenu = true
			return m, tea.Quit
		}
		return m, nil
	}

	action := m.keys.Action(msg)
	if action == core.ActionQuit {
		m.closeGame()
		m.quitting = true
		return m, tea.Quit
	}
	if action != core.ActionNone {
		m.inputFrame.Set(action)
	}
	return m, nil
}

// handleTick runs one session step with the collected input.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.backToMenu || m.quitting {
		return m, nil
	}

	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.inputFrame.Clear()
		if err := m.restart(); err != nil {
			m.err = err
			m.quitting = true
			return m, tea.Quit
		}
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	return m, tickCmd(m.config.TickRate)
}

// restart replaces a finished session with a fresh one.
func (m *Model) restart() error {
	m.closeGame()
	game, err := m.factory()
	if err != nil {
		return fmt.Errorf("restart: %w", err)
	}
	m.game = game
	m.gameState = game.State()
	return nil
}

func (m *Model) closeGame() {
	if c, ok := m.game.(io.Closer); ok {
		//nolint:errcheck // Best-effort journal close
		c.Close()
	}
}

// saveScreenshot saves the current screen as plain text.
func (m *Model) saveScreenshot() {
	m.screen.Clear()
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".gridstate", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the session and the help line.
func (m Model) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	m.screen.Clear()
	m.game.Render(m.screen)

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// Err returns the error that stopped the model, if any.
func (m Model) Err() error {
	return m.err
}

// BackToMenu reports whether the player asked to return to the mode picker.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// IsQuitting reports whether the player asked to quit.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// Run starts a local Bubble Tea program hosting sessions from factory.
// With allowBack set, esc leaves a paused or finished session and Run
// reports backToMenu.
func Run(factory Factory, cfg core.RuntimeConfig, allowBack bool) (backToMenu bool, err error) {
	model, err := NewModel(factory, cfg)
	if err != nil {
		return false, err
	}
	model.allowBack = allowBack

	p := tea.NewProgram(model, tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	fm, ok := final.(Model)
	if !ok {
		return false, nil
	}
	fm.closeGame()
	return fm.BackToMenu(), fm.Err()
}
