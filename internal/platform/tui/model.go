package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/foldspace/internal/config"
	"github.com/vovakirdan/foldspace/internal/fold"
	"github.com/vovakirdan/foldspace/internal/level"
	"github.com/vovakirdan/foldspace/internal/storage"
)

// Model is the Bubble Tea model for playing one level.
type Model struct {
	level  *level.Level
	cfg    config.Config
	store  *storage.Store
	engine *fold.Engine
	player *fold.SimplePlayer

	sessionID string
	cursor    fold.Coord
	anchor    *fold.Coord

	keys     KeyMap
	help     help.Model
	status   string
	isErr    bool
	won      bool
	quitting bool
}

// NewModel creates a play model for the given level. store may be nil, in
// which case folds are not persisted.
func NewModel(lvl *level.Level, cfg config.Config, store *storage.Store) Model {
	m := Model{
		level: lvl,
		cfg:   cfg,
		store: store,
		keys:  DefaultKeyMap(),
		help:  help.New(),
	}
	m.reset()
	return m
}

// reset rebuilds the engine from the level and opens a fresh session.
func (m *Model) reset() {
	engineCfg := fold.EngineConfig{
		AxisSnapDegrees:       m.cfg.Engine.AxisSnapDegrees,
		NearDegenerateDegrees: m.cfg.Engine.NearDegenerateDegrees,
	}
	m.engine, m.player = m.level.NewEngine(m.cfg.Grid.CellSize, engineCfg)
	m.cursor = m.level.PlayerStart
	m.anchor = nil
	m.won = false
	m.status = fmt.Sprintf("playing %s", m.level.Name)
	m.isErr = false

	m.sessionID = ""
	if m.store != nil {
		if id, err := m.store.CreateSession(m.level.ID, m.level.PlayerStart); err == nil {
			m.sessionID = id
		}
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.CursorUp):
		m.moveCursor(0, -1)
	case key.Matches(msg, m.keys.CursorDown):
		m.moveCursor(0, 1)
	case key.Matches(msg, m.keys.CursorLeft):
		m.moveCursor(-1, 0)
	case key.Matches(msg, m.keys.CursorRight):
		m.moveCursor(1, 0)

	case key.Matches(msg, m.keys.WalkUp):
		m.walkPlayer(0, -1)
	case key.Matches(msg, m.keys.WalkDown):
		m.walkPlayer(0, 1)
	case key.Matches(msg, m.keys.WalkLeft):
		m.walkPlayer(-1, 0)
	case key.Matches(msg, m.keys.WalkRight):
		m.walkPlayer(1, 0)

	case key.Matches(msg, m.keys.Cancel):
		m.anchor = nil
		m.setStatus("anchor cleared", false)

	case key.Matches(msg, m.keys.Select):
		m.handleSelect()

	case key.Matches(msg, m.keys.Undo):
		m.handleUndo()

	case key.Matches(msg, m.keys.Reset):
		m.reset()
	}
	return m, nil
}

func (m *Model) moveCursor(dx, dy int) {
	next := fold.C(m.cursor.X+dx, m.cursor.Y+dy)
	if m.engine.Grid().InBounds(next) {
		m.cursor = next
	}
}

// walkPlayer moves the player one cell if the destination is passable.
// Walls and void block; water, empty and goal cells can be entered.
func (m *Model) walkPlayer(dx, dy int) {
	if m.won {
		return
	}
	pc := m.player.Coordinate()
	next := fold.C(pc.X+dx, pc.Y+dy)
	cell := m.engine.Grid().Cell(next)
	if cell == nil {
		m.setStatus("nothing to stand on there", true)
		return
	}
	switch cell.DominantType() {
	case fold.TypeWall:
		m.setStatus("a wall is in the way", true)
		return
	case fold.TypeVoid:
		m.setStatus("cannot step into the void", true)
		return
	}
	m.player.SetCoordinate(next)
	m.setStatus(fmt.Sprintf("moved to %v", next), false)
	m.checkWin()
}

// handleSelect sets the first anchor or, when one is pending, runs the fold.
func (m *Model) handleSelect() {
	if m.won {
		return
	}
	if m.anchor == nil {
		a := m.cursor
		m.anchor = &a
		m.setStatus(fmt.Sprintf("anchor at %v, pick the second", a), false)
		return
	}

	a1, a2 := *m.anchor, m.cursor
	m.anchor = nil

	rec, err := m.engine.Fold(a1, a2)
	if err != nil {
		var verr *fold.ValidationError
		if errors.As(err, &verr) {
			m.setStatus(verr.Reason, true)
		} else {
			m.setStatus(err.Error(), true)
		}
		return
	}

	if m.store != nil && m.sessionID != "" {
		//nolint:errcheck // Best-effort persistence, play continues regardless
		m.store.AppendFold(m.sessionID, rec)
	}

	if !m.engine.Grid().InBounds(m.cursor) || m.engine.Grid().Cell(m.cursor) == nil {
		m.cursor = m.player.Coordinate()
	}
	m.setStatus(fmt.Sprintf("fold #%d: removed %d, shifted %d",
		rec.FoldID, len(rec.Removed), len(rec.Shifted)), false)
	m.checkWin()
}

// handleUndo reverses the newest fold.
func (m *Model) handleUndo() {
	latest := m.engine.History().Latest()
	if latest == nil {
		m.setStatus("nothing to undo", true)
		return
	}
	if err := m.engine.Undo(latest.FoldID); err != nil {
		m.setStatus(err.Error(), true)
		return
	}
	if m.store != nil && m.sessionID != "" {
		//nolint:errcheck // Best-effort persistence
		m.store.DeleteFold(m.sessionID, latest.FoldID)
	}
	m.won = false
	m.setStatus(fmt.Sprintf("undid fold #%d", latest.FoldID), false)
}

func (m *Model) checkWin() {
	cell := m.engine.Grid().Cell(m.player.Coordinate())
	if cell != nil && cell.DominantType() == fold.TypeGoal {
		m.won = true
		m.setStatus(fmt.Sprintf("goal reached in %d folds! (r to restart)", m.engine.History().Len()), false)
	}
}

func (m *Model) setStatus(s string, isErr bool) {
	m.status = s
	m.isErr = isErr
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(titleStyle.Render(fmt.Sprintf("FOLDSPACE :: %s", m.level.Name)))
	sb.WriteString("\n\n")
	sb.WriteString(RenderGrid(m.engine.Grid(), m.player.Coordinate(), m.cursor, m.anchor, m.cfg.UI.ShowSeams))
	sb.WriteString("\n\n")

	if m.isErr {
		sb.WriteString(errorStyle.Render(m.status))
	} else {
		sb.WriteString(statusStyle.Render(m.status))
	}
	sb.WriteString("\n")

	if m.cfg.UI.ShowHistory {
		sb.WriteString("\n")
		sb.WriteString(lipgloss.NewStyle().Bold(true).Render("history"))
		sb.WriteString("\n")
		sb.WriteString(RenderHistory(m.engine.History(), 8))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(m.help.View(m.keys))
	return sb.String()
}

// Run starts the Bubble Tea program for the given level.
func Run(lvl *level.Level, cfg config.Config, store *storage.Store) error {
	p := tea.NewProgram(
		NewModel(lvl, cfg, store),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
