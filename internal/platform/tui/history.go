package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/gridstate/internal/storage"
)

const (
	maxHistorySessions = 100
	minWidthForDetail  = 100 // Below this the transitions pane goes under the sessions
)

// HistoryKeyMap defines the key bindings for the history screen.
type HistoryKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Back key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// DefaultHistoryKeyMap returns default key bindings.
func DefaultHistoryKeyMap() HistoryKeyMap {
	return HistoryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "prev session"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "next session"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// HistoryModel shows journaled sessions and the transitions of the selected one.
type HistoryModel struct {
	store       *storage.Store
	sessions    []storage.SessionRecord
	transitions []storage.TransitionRecord
	sessionTbl  table.Model
	detailTbl   table.Model
	help        help.Model
	keys        HistoryKeyMap
	width       int
	height      int
	err         error
	quitting    bool
	goingBack   bool
}

// NewHistoryModel creates the history screen. A nil store shows an empty list.
func NewHistoryModel(store *storage.Store, width, height int) HistoryModel {
	m := HistoryModel{
		store:  store,
		keys:   DefaultHistoryKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	if store != nil {
		m.sessions, m.err = store.RecentSessions(maxHistorySessions)
	}
	m.buildTables()
	m.loadTransitions()
	return m
}

func (m *HistoryModel) tableHeight() int {
	h := m.height - 8
	if m.width < minWidthForDetail {
		h /= 2
	}
	return max(h, 3)
}

func (m *HistoryModel) buildTables() {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)

	m.sessionTbl = table.New(
		table.WithColumns([]table.Column{
			{Title: "Session", Width: 9},
			{Title: "Mode", Width: 10},
			{Title: "Level", Width: 8},
			{Title: "Final", Width: 10},
			{Title: "Lives", Width: 5},
			{Title: "Started", Width: 12},
		}),
		table.WithFocused(true),
		table.WithHeight(m.tableHeight()),
		table.WithStyles(styles),
	)
	rows := make([]table.Row, len(m.sessions))
	for i, s := range m.sessions {
		final := s.FinalState
		if final == "" {
			final = "(running)"
		}
		rows[i] = table.Row{
			shortSessionID(s.ID),
			s.Mode,
			s.Level,
			final,
			fmt.Sprintf("%d/%d", s.LivesLeft, s.StartLives),
			s.StartedAt.Local().Format("Jan 02 15:04"),
		}
	}
	m.sessionTbl.SetRows(rows)

	detailStyles := styles
	detailStyles.Selected = lipgloss.NewStyle()
	m.detailTbl = table.New(
		table.WithColumns([]table.Column{
			{Title: "#", Width: 4},
			{Title: "Tick", Width: 7},
			{Title: "From", Width: 13},
			{Title: "To", Width: 13},
			{Title: "Lives", Width: 5},
		}),
		table.WithHeight(m.tableHeight()),
		table.WithStyles(detailStyles),
	)
}

// loadTransitions fills the detail table for the selected session.
func (m *HistoryModel) loadTransitions() {
	m.transitions = nil
	idx := m.sessionTbl.Cursor()
	if m.store != nil && idx >= 0 && idx < len(m.sessions) {
		trs, err := m.store.Transitions(m.sessions[idx].ID)
		if err != nil {
			m.err = err
		}
		m.transitions = trs
	}

	rows := make([]table.Row, len(m.transitions))
	for i, t := range m.transitions {
		rows[i] = table.Row{
			fmt.Sprintf("%d", t.Seq),
			fmt.Sprintf("%d", t.Tick),
			t.FromState,
			t.ToState,
			fmt.Sprintf("%d", t.Lives),
		}
	}
	m.detailTbl.SetRows(rows)
	m.detailTbl.GotoTop()
}

// Init initializes the history model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history screen.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.sessionTbl, cmd = m.sessionTbl.Update(msg)
			m.loadTransitions()
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		cursor := m.sessionTbl.Cursor()
		m.buildTables()
		m.sessionTbl.SetCursor(cursor)
		m.loadTransitions()
		m.help.Width = msg.Width
		return m, nil
	}

	m.sessionTbl, cmd = m.sessionTbl.Update(msg)
	return m, cmd
}

// View renders the history screen.
func (m HistoryModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	var b strings.Builder
	b.WriteString(titleStyle.Render(centerText("SESSION HISTORY", m.width)))
	b.WriteString("\n\n")

	switch {
	case m.err != nil:
		b.WriteString(fmt.Sprintf("Error: %v\n", m.err))
	case len(m.sessions) == 0:
		b.WriteString(dimStyle.Italic(true).Padding(2, 4).Render("No sessions journaled yet.\nPlay a game first!"))
		b.WriteString("\n")
	default:
		sessions := boxStyle.Render(m.sessionTbl.View())
		detail := boxStyle.Render(m.detailTbl.View())
		if m.width >= minWidthForDetail {
			b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, sessions, "  ", detail))
		} else {
			b.WriteString(lipgloss.JoinVertical(lipgloss.Left, sessions, detail))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// IsGoingBack reports whether the user wants to return to the menu.
func (m HistoryModel) IsGoingBack() bool {
	return m.goingBack
}

// RunHistory runs the history screen. It reports whether the user went back
// rather than quitting.
func RunHistory(store *storage.Store, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(NewHistoryModel(store, width, height), tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(HistoryModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}

func shortSessionID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
