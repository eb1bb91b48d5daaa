package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-mines/internal/config"
	"github.com/vovakirdan/tui-mines/internal/core"
	"github.com/vovakirdan/tui-mines/internal/registry"
	"github.com/vovakirdan/tui-mines/internal/storage"
)

// stubGame ends after a fixed number of touches.
type stubGame struct {
	touches    int
	endAfter   int
	won        bool
	resets     int
	resized    [2]int
	difficulty string
	lastInput  core.InputFrame
}

func (g *stubGame) ID() string    { return "stub" }
func (g *stubGame) Title() string { return "Stub" }

func (g *stubGame) Reset(core.RuntimeConfig) {
	g.resets++
	g.touches = 0
	if g.difficulty == "" {
		g.difficulty = "easy"
	}
}

func (g *stubGame) Step(in core.InputFrame) core.StepResult {
	g.lastInput = in
	if in.Has(core.ActionRestart) {
		g.touches = 0
	}
	if in.Has(core.ActionTouch) && !g.over() {
		g.touches++
	}
	return core.StepResult{State: g.State()}
}

func (g *stubGame) over() bool { return g.touches >= g.endAfter }

func (g *stubGame) Render(dst *core.Screen) { dst.DrawText(0, 0, "stub board") }

func (g *stubGame) State() core.GameState {
	return core.GameState{Seconds: g.touches, GameOver: g.over(), Won: g.over() && g.won}
}

func (g *stubGame) Summary() core.GameSummary {
	return core.GameSummary{Difficulty: g.difficulty, Won: g.over() && g.won, Seconds: g.touches, Numbers: g.touches}
}

func (g *stubGame) Resize(w, h int) { g.resized = [2]int{w, h} }

func (g *stubGame) SelectDifficulty(c config.Choice) error {
	g.difficulty = c.String()
	g.touches = 0
	return nil
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "results.db"))
	if err != nil {
		t.Fatalf("storage.Open() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

var testRuntime = core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30, Seed: 1}

func update(t *testing.T, m tea.Model, msgs ...tea.Msg) tea.Model {
	t.Helper()
	for _, msg := range msgs {
		m, _ = m.Update(msg)
	}
	return m
}

func tick() tea.Msg { return TickMsg{} }

func TestModelSavesResultOnce(t *testing.T) {
	store := openStore(t)
	game := &stubGame{endAfter: 2, won: true}

	m := NewModel(game, store, testRuntime, "session-1")
	m.Init()

	var model tea.Model = m
	model = update(t, model,
		runeKey(' '), tick(),
		runeKey(' '), tick(),
		tick(), tick(),
	)

	results, err := store.RecentResults("", 10)
	if err != nil {
		t.Fatalf("RecentResults() error = %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("saved %d results, expected 1", len(results))
	}
	r := results[0]
	if !r.Won || r.Session != "session-1" || r.Difficulty != "easy" || r.Numbers != 2 {
		t.Errorf("saved result = %+v", r)
	}

	// A restart starts a new game that is saved again when it ends.
	model = update(t, model,
		runeKey('r'), tick(),
		runeKey(' '), tick(),
		runeKey(' '), tick(),
		tick(),
	)
	results, _ = store.RecentResults("", 10)
	if len(results) != 2 {
		t.Errorf("saved %d results after a second game, expected 2", len(results))
	}
	if model.(Model).SaveErr() != nil {
		t.Errorf("SaveErr() = %v", model.(Model).SaveErr())
	}
}

func TestModelWithoutStore(t *testing.T) {
	game := &stubGame{endAfter: 1}
	var model tea.Model = NewModel(game, nil, testRuntime, "")

	model = update(t, model, runeKey(' '), tick(), tick())

	if !game.State().GameOver {
		t.Error("game should be over")
	}
	if model.(Model).SaveErr() != nil {
		t.Errorf("SaveErr() = %v", model.(Model).SaveErr())
	}
}

func TestModelBackOnlyWhenFinished(t *testing.T) {
	game := &stubGame{endAfter: 1}
	var model tea.Model = NewModel(game, nil, testRuntime, "")

	model = update(t, model, tick(), runeKey('b'))
	if model.(Model).BackToMenu() {
		t.Error("Back during play should be ignored")
	}

	model = update(t, model, runeKey(' '), tick(), runeKey('b'))
	if !model.(Model).BackToMenu() {
		t.Error("Back after game over should return to menu")
	}
}

func TestModelQuitAndResize(t *testing.T) {
	game := &stubGame{endAfter: 5}
	var model tea.Model = NewModel(game, nil, testRuntime, "")

	model = update(t, model, tea.WindowSizeMsg{Width: 100, Height: 40})
	if game.resized != [2]int{100, 40} {
		t.Errorf("resized = %v, expected [100 40]", game.resized)
	}
	if game.resets != 0 {
		t.Error("a resizable game should not be reset on resize")
	}

	if !strings.Contains(model.View(), "stub board") {
		t.Error("View() should render the game")
	}

	model, cmd := model.Update(runeKey('q'))
	if !model.(Model).IsQuitting() || cmd == nil {
		t.Error("q should quit")
	}
	if model.View() != "" {
		t.Error("View() should be empty after quit")
	}
}

func TestSessionMenuGameMenu(t *testing.T) {
	game := &stubGame{endAfter: 1, won: true}
	registry.Register("stub-session", func() registry.Game { return game })

	store := openStore(t)
	var model tea.Model = NewSessionModel("stub-session", store, config.DefaultMinesweeperConfig(), testRuntime, "ssh-7")

	if !strings.Contains(model.View(), "Select difficulty") {
		t.Fatal("session should start in the menu")
	}

	// Medium is one below the default Easy.
	model = update(t, model, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyEnter})
	if model.(SessionModel).screen != screenGame {
		t.Fatal("Enter should start the game")
	}
	if game.difficulty != "medium" {
		t.Errorf("difficulty = %q, expected medium", game.difficulty)
	}

	model = update(t, model, runeKey(' '), tick(), runeKey('b'))
	s := model.(SessionModel)
	if s.screen != screenMenu {
		t.Fatal("Back after game over should return to the menu")
	}
	if !strings.Contains(s.View(), "Last game: won medium") {
		t.Errorf("menu should report the last game:\n%s", s.View())
	}

	results, _ := store.RecentResults("medium", 10)
	if len(results) != 1 || results[0].Session != "ssh-7" {
		t.Errorf("stored results = %+v", results)
	}

	// The second round reuses the same game.
	model = update(t, model, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyEnter})
	if game.difficulty != "difficult" || game.resets != 1 {
		t.Errorf("second round: difficulty %q, resets %d", game.difficulty, game.resets)
	}

	model, cmd := model.Update(runeKey('q'))
	if !model.(SessionModel).quitting || cmd == nil {
		t.Error("q in game should end the session")
	}
}

func TestSessionStatsScreen(t *testing.T) {
	store := openStore(t)
	if _, err := store.SaveResult(storage.Result{Difficulty: "easy", Won: true, Seconds: 9}); err != nil {
		t.Fatal(err)
	}

	var model tea.Model = NewSessionModel("minesweeper", store, config.DefaultMinesweeperConfig(), testRuntime, "")
	model = update(t, model, tea.KeyMsg{Type: tea.KeyTab})

	s := model.(SessionModel)
	if s.screen != screenStats {
		t.Fatal("Tab should open the statistics screen")
	}
	view := s.View()
	if !strings.Contains(view, "STATISTICS") || !strings.Contains(view, "Played   1") {
		t.Errorf("statistics view missing summary:\n%s", view)
	}

	model = update(t, model, tea.KeyMsg{Type: tea.KeyEsc})
	if model.(SessionModel).screen != screenMenu {
		t.Error("Esc should return to the menu")
	}
}
