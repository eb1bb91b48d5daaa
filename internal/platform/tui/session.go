package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-mines/internal/config"
	"github.com/vovakirdan/tui-mines/internal/core"
	"github.com/vovakirdan/tui-mines/internal/registry"
	"github.com/vovakirdan/tui-mines/internal/storage"
)

// difficultySelector is implemented by games that can switch boards in place.
type difficultySelector interface {
	SelectDifficulty(c config.Choice) error
}

type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenGame
	screenStats
)

// SessionModel drives the menu -> game -> menu flow of one player.
// Every session owns its own game, so concurrent SSH sessions never share
// a board.
type SessionModel struct {
	gameID  string
	store   *storage.Store
	cfg     config.MinesweeperConfig
	runtime core.RuntimeConfig
	session string

	screen    sessionScreen
	menu      MenuModel
	stats     StatsModel
	game      registry.Game
	gameModel Model
	quitting  bool
	err       error
}

// NewSessionModel creates a session for the registered game gameID.
func NewSessionModel(gameID string, store *storage.Store, cfg config.MinesweeperConfig, runtime core.RuntimeConfig, session string) SessionModel {
	return SessionModel{
		gameID:  gameID,
		store:   store,
		cfg:     cfg,
		runtime: runtime,
		session: session,
		menu:    NewMenuModel(cfg, runtime.ScreenW, runtime.ScreenH),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.runtime.ScreenW = wsm.Width
		m.runtime.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenStats:
		return m.updateStats(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	if menu, ok := next.(MenuModel); ok {
		m.menu = menu
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsStats():
		m.menu.wantsStats = false
		m.stats = NewStatsModel(m.store, m.menu.items[m.menu.cursor].Choice.String(), m.runtime.ScreenW, m.runtime.ScreenH)
		m.screen = screenStats
		return m, m.stats.Init()

	case m.menu.Selected() != nil:
		choice := m.menu.Selected().Choice
		m.menu.selected = nil
		return m.startGame(choice)
	}

	return m, cmd
}

// startGame creates the game on first use and switches difficulty on the
// existing one afterwards. The new board is drawn on the first tick.
func (m SessionModel) startGame(choice config.Choice) (tea.Model, tea.Cmd) {
	first := m.game == nil
	if first {
		game, err := registry.Create(m.gameID)
		if err != nil {
			m.err = err
			m.quitting = true
			return m, tea.Quit
		}
		game.Reset(m.runtime)
		m.game = game
	}

	if sel, ok := m.game.(difficultySelector); ok {
		if err := sel.SelectDifficulty(choice); err != nil {
			m.menu.SetStatus(fmt.Sprintf("Cannot start %s: %v", choice, err))
			return m, nil
		}
	} else if !first {
		m.game.Reset(m.runtime)
	}

	m.gameModel = NewModel(m.game, m.store, m.runtime, m.session)
	m.screen = screenGame
	return m, m.gameModel.resume()
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.gameModel.Update(msg)
	if gm, ok := next.(Model); ok {
		m.gameModel = gm
	}

	if m.gameModel.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.gameModel.BackToMenu() {
		m.screen = screenMenu
		m.menu.width, m.menu.height = m.runtime.ScreenW, m.runtime.ScreenH
		m.menu.SetStatus(lastGameStatus(m.game))
		if err := m.gameModel.SaveErr(); err != nil {
			m.menu.SetStatus(fmt.Sprintf("Result not saved: %v", err))
		}
		return m, nil
	}

	return m, cmd
}

// updateStats handles updates on the statistics screen.
func (m SessionModel) updateStats(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.stats.Update(msg)
	if st, ok := next.(StatsModel); ok {
		m.stats = st
	}

	if m.stats.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.stats.IsGoingBack() {
		m.screen = screenMenu
		m.menu.width, m.menu.height = m.runtime.ScreenW, m.runtime.ScreenH
		return m, nil
	}
	return m, cmd
}

// lastGameStatus describes the board the player just left.
func lastGameStatus(g registry.Game) string {
	if g == nil {
		return ""
	}
	state := g.State()
	sum := g.Summary()
	switch {
	case state.Won:
		return fmt.Sprintf("Last game: won %s in %ds", sum.Difficulty, sum.Seconds)
	case state.GameOver:
		return fmt.Sprintf("Last game: lost %s after %ds", sum.Difficulty, sum.Seconds)
	default:
		return fmt.Sprintf("Last game: %s abandoned after %ds", sum.Difficulty, sum.Seconds)
	}
}

// View renders the current screen.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenGame:
		return m.gameModel.View()
	case screenStats:
		return m.stats.View()
	default:
		return m.menu.View()
	}
}

// Err returns the error that ended the session, if any.
func (m SessionModel) Err() error {
	return m.err
}

// RunSession runs the menu-driven session in the local terminal.
func RunSession(gameID string, store *storage.Store, cfg config.MinesweeperConfig, runtime core.RuntimeConfig) error {
	model := NewSessionModel(gameID, store, cfg, runtime, "")

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	final, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(SessionModel); ok {
		return m.Err()
	}
	return nil
}
