package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-mines/internal/config"
	"github.com/vovakirdan/tui-mines/internal/storage"
)

// Statistics screen layout constants
const (
	minWidthForSidebar = 80  // Minimum width to show the summary sidebar
	sidebarWidth       = 24  // Width of the summary sidebar
	maxResults         = 100 // Max results to load
)

// StatsKeyMap defines the key bindings for the statistics screen.
type StatsKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Next     key.Binding
	Prev     key.Binding
	BestOnly key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k StatsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Next, k.Prev, k.BestOnly, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k StatsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Next, k.Prev},
		{k.BestOnly, k.Back, k.Quit},
	}
}

// DefaultStatsKeyMap returns default key bindings.
func DefaultStatsKeyMap() StatsKeyMap {
	return StatsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Next: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next difficulty"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev difficulty"),
		),
		BestOnly: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "best times"),
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

// StatsModel shows the stored results of each difficulty: a summary of
// played and won games and a table of recent games or best times.
type StatsModel struct {
	difficulties []string
	cursor       int
	store        *storage.Store
	summary      storage.Stats
	results      []storage.Result
	bestOnly     bool
	loadErr      error
	table        table.Model
	help         help.Model
	keys         StatsKeyMap
	width        int
	height       int
	standalone   bool // Back quits the program
	quitting     bool
	goingBack    bool
	showSidebar  bool
}

// NewStatsModel creates the statistics screen, starting at the named
// difficulty when it is known.
func NewStatsModel(store *storage.Store, difficulty string, width, height int) StatsModel {
	var names []string
	for _, c := range config.Choices() {
		names = append(names, c.String())
	}

	h := help.New()
	h.ShowAll = false

	m := StatsModel{
		difficulties: names,
		store:        store,
		keys:         DefaultStatsKeyMap(),
		help:         h,
		width:        width,
		height:       height,
		showSidebar:  width >= minWidthForSidebar,
	}
	for i, name := range names {
		if name == difficulty {
			m.cursor = i
		}
	}

	m.table = m.createTable()
	m.load()
	return m
}

// createTable creates a new table sized for the current window.
func (m *StatsModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Result", Width: 6},
		{Title: "Time", Width: 6},
		{Title: "Flags", Width: 5},
		{Title: "Nums", Width: 5},
		{Title: "Empty", Width: 5},
		{Title: "Date", Width: 12},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-10)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// Difficulty returns the difficulty currently shown.
func (m StatsModel) Difficulty() string {
	return m.difficulties[m.cursor]
}

// load reads the summary and the table rows for the current difficulty.
func (m *StatsModel) load() {
	m.summary = storage.Stats{Difficulty: m.Difficulty()}
	m.results = nil
	m.loadErr = nil

	if m.store != nil {
		m.summary, m.loadErr = m.store.DifficultyStats(m.Difficulty())
		if m.loadErr == nil {
			if m.bestOnly {
				m.results, m.loadErr = m.store.BestTimes(m.Difficulty(), maxResults)
			} else {
				m.results, m.loadErr = m.store.RecentResults(m.Difficulty(), maxResults)
			}
		}
	}
	m.updateTableRows()
}

// updateTableRows updates the table with the loaded results.
func (m *StatsModel) updateTableRows() {
	rows := make([]table.Row, len(m.results))
	for i, r := range m.results {
		outcome := "lost"
		if r.Won {
			outcome = "won"
		}
		rows[i] = table.Row{
			fmt.Sprintf("%d", i+1),
			outcome,
			fmt.Sprintf("%ds", r.Seconds),
			fmt.Sprintf("%d", r.Flags),
			fmt.Sprintf("%d", r.Numbers),
			fmt.Sprintf("%d", r.Empties),
			r.CreatedAt.Local().Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the statistics model.
func (m StatsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the statistics screen.
func (m StatsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			if m.standalone {
				return m, tea.Quit
			}
			return m, nil

		case key.Matches(msg, m.keys.Next):
			m.cursor = (m.cursor + 1) % len(m.difficulties)
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.Prev):
			m.cursor = (m.cursor + len(m.difficulties) - 1) % len(m.difficulties)
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.BestOnly):
			m.bestOnly = !m.bestOnly
			m.load()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the statistics screen.
func (m StatsModel) View() string {
	if m.quitting || (m.goingBack && m.standalone) {
		return ""
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("STATISTICS"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.renderTabs(), m.width))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.renderSummary(), "  ", m.renderTable()))
	} else {
		b.WriteString(m.renderSummaryLine())
		b.WriteString("\n")
		b.WriteString(m.renderTable())
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderTabs renders one tab per difficulty.
func (m StatsModel) renderTabs() string {
	tabStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	activeStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)

	tabs := make([]string, len(m.difficulties))
	for i, name := range m.difficulties {
		if i == m.cursor {
			tabs[i] = activeStyle.Render(name)
		} else {
			tabs[i] = tabStyle.Render(name)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m StatsModel) summaryLines() []string {
	best := "-"
	if m.summary.Won > 0 {
		best = fmt.Sprintf("%ds", m.summary.BestSeconds)
	}
	return []string{
		fmt.Sprintf("Played   %d", m.summary.Played),
		fmt.Sprintf("Won      %d", m.summary.Won),
		fmt.Sprintf("Lost     %d", m.summary.Lost()),
		fmt.Sprintf("Win rate %.0f%%", m.summary.WinRate()*100),
		fmt.Sprintf("Best     %s", best),
		fmt.Sprintf("Average  %.1fs", m.summary.AvgSeconds),
	}
}

// renderSummary renders the aggregate numbers as a bordered sidebar.
func (m StatsModel) renderSummary() string {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)
	return style.Render(strings.Join(m.summaryLines(), "\n"))
}

// renderSummaryLine renders the aggregate numbers on one line for narrow terminals.
func (m StatsModel) renderSummaryLine() string {
	return centerText(fmt.Sprintf("played %d  won %d  best %ds",
		m.summary.Played, m.summary.Won, m.summary.BestSeconds), m.width)
}

// renderTable renders the results table or an explanatory message.
func (m StatsModel) renderTable() string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	switch {
	case m.store == nil:
		return boxStyle.Render(emptyStyle.Render("Statistics are unavailable:\nno results database."))
	case m.loadErr != nil:
		return boxStyle.Render(emptyStyle.Render("Cannot load results:\n" + m.loadErr.Error()))
	case len(m.results) == 0 && m.bestOnly:
		return boxStyle.Render(emptyStyle.Render("No wins yet on " + m.Difficulty() + "."))
	case len(m.results) == 0:
		return boxStyle.Render(emptyStyle.Render("No games recorded yet.\nFinish a game to see it here."))
	}
	return boxStyle.Render(m.table.View())
}

// IsGoingBack returns true if user wants to go back to menu.
func (m StatsModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m StatsModel) IsQuitting() bool {
	return m.quitting
}

// RunStats runs the statistics screen on its own.
func RunStats(store *storage.Store, difficulty string, width, height int) error {
	model := NewStatsModel(store, difficulty, width, height)
	model.standalone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
