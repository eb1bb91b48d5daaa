package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-mines/internal/config"
)

// MenuItem is one selectable difficulty.
type MenuItem struct {
	Choice config.Choice
	Label  string
}

// MenuModel is the difficulty picker shown before each game.
type MenuModel struct {
	items      []MenuItem
	cursor     int
	width      int
	height     int
	status     string // one-line note about the last game
	keyMapper  *KeyMapper
	quitting   bool
	wantsStats bool
	selected   *MenuItem
}

// NewMenuModel creates the menu. Board sizes come from the engine presets
// and, for Custom, from cfg. Custom is left out when its board is invalid.
func NewMenuModel(cfg config.MinesweeperConfig, width, height int) MenuModel {
	var items []MenuItem
	for _, c := range config.Choices() {
		p, err := c.Board(cfg)
		if err != nil {
			continue
		}
		label := fmt.Sprintf("%-10s %2dx%-2d  %d mines", strings.ToUpper(c.String()[:1])+c.String()[1:], p.Width, p.Height, p.Mines)
		items = append(items, MenuItem{Choice: c, Label: label})
	}

	m := MenuModel{
		items:     items,
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
	}
	if c, err := config.ParseChoice(cfg.DefaultDifficulty); err == nil {
		m.Focus(c)
	}
	return m
}

// Focus moves the cursor to the given choice if it is listed.
func (m *MenuModel) Focus(c config.Choice) {
	for i, item := range m.items {
		if item.Choice == c {
			m.cursor = i
			return
		}
	}
}

// SetStatus sets the note shown under the list.
func (m *MenuModel) SetStatus(status string) {
	m.status = status
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
		}

	case MenuActionStats:
		m.wantsStats = true
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	activeStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("M I N E S W E E P E R"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select difficulty", m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		line := "  " + item.Label
		if i == m.cursor {
			line = activeStyle.Render("> " + item.Label)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(centerText(m.status, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(dimStyle.Render("Up/Down: Navigate  |  Enter: Play  |  Tab: Stats  |  Q: Quit"), m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsStats returns true if user asked for the statistics screen.
func (m MenuModel) WantsStats() bool {
	return m.wantsStats
}
