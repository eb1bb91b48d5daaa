// Package minesweeper adapts the mines engine to the platform game loop:
// it owns a cursor, maps actions to touches, runs the clock and draws the
// board into the screen buffer.
package minesweeper

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-mines/internal/config"
	"github.com/vovakirdan/tui-mines/internal/core"
	"github.com/vovakirdan/tui-mines/internal/mines"
	"github.com/vovakirdan/tui-mines/internal/registry"
)

// GameID is the registry identifier of the game.
const GameID = "minesweeper"

// Game implements registry.Game for Minesweeper.
type Game struct {
	cfg     config.MinesweeperConfig
	runtime core.RuntimeConfig
	choice  config.Choice
	engine  *mines.Engine

	cursorX, cursorY int

	tick           uint64
	ticksPerSecond int
	secondTicks    int // ticks since the last clock increment

	paused   bool
	tooSmall bool
	layout   layout
}

// configPath stores the custom config path set via CLI.
var configPath string

// selectedChoice overrides the config's default difficulty when set.
var selectedChoice *config.Choice

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficulty selects the difficulty for the next Reset by name.
// An empty name restores the config default.
func SetDifficulty(name string) error {
	if name == "" {
		selectedChoice = nil
		return nil
	}
	c, err := config.ParseChoice(name)
	if err != nil {
		return err
	}
	selectedChoice = &c
	return nil
}

func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
}

// New creates a new Minesweeper game instance.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Minesweeper"
}

// Reset loads the config and starts a new board for the selected difficulty.
// Invalid custom boards fall back to Easy.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	cfg, err := config.LoadMinesweeper(configPath)
	if err != nil {
		cfg = config.DefaultMinesweeperConfig()
	}
	g.cfg = cfg

	choice := config.Choice{Difficulty: mines.Easy}
	if selectedChoice != nil {
		choice = *selectedChoice
	} else if c, err := config.ParseChoice(cfg.DefaultDifficulty); err == nil {
		choice = c
	}

	seed := runtime.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	engine, err := newEngine(choice, cfg, rng)
	if err != nil {
		choice = config.Choice{Difficulty: mines.Easy}
		engine, _ = mines.New(mines.Easy, rng)
	}
	g.choice = choice
	g.engine = engine

	g.ticksPerSecond = max(1, runtime.TickRate*cfg.Timer.IntervalMs/1000)
	g.tick = 0
	g.paused = false
	g.startBoard()
}

// newEngine builds an engine for a preset or the configured custom board.
func newEngine(c config.Choice, cfg config.MinesweeperConfig, rng *rand.Rand) (*mines.Engine, error) {
	if !c.Custom {
		return mines.New(c.Difficulty, rng)
	}
	p, err := c.Board(cfg)
	if err != nil {
		return nil, err
	}
	return mines.NewCustom(p.Width, p.Height, p.Mines, rng)
}

// SelectDifficulty switches the running game to another difficulty.
// The engine regenerates the board on the next Step.
func (g *Game) SelectDifficulty(c config.Choice) error {
	if c.Custom {
		p, err := c.Board(g.cfg)
		if err != nil {
			return err
		}
		if err := g.engine.SetBoardSize(p.Width, p.Height, p.Mines); err != nil {
			return err
		}
	} else if err := g.engine.SetGameDifficulty(c.Difficulty); err != nil {
		return err
	}
	g.choice = c
	return nil
}

// Difficulty returns the difficulty of the current board.
func (g *Game) Difficulty() config.Choice {
	return g.choice
}

// startBoard resets everything tied to one board: cursor, clock and layout.
func (g *Game) startBoard() {
	g.cursorX = g.engine.Width() / 2
	g.cursorY = g.engine.Height() / 2
	g.secondTicks = 0
	g.layout = newLayout(g.runtime.ScreenW, g.runtime.ScreenH, g.engine.Width(), g.engine.Height())
	g.tooSmall = !g.layout.fits
}

// Resize adapts the layout to a new terminal size without touching the board.
func (g *Game) Resize(screenW, screenH int) {
	g.runtime.ScreenW, g.runtime.ScreenH = screenW, screenH
	g.layout = newLayout(screenW, screenH, g.layout.width, g.layout.height)
	g.tooSmall = !g.layout.fits
}

// restart draws a new board with the current settings.
func (g *Game) restart() {
	if err := g.engine.RestartGame(); err != nil {
		// Settings were validated when they were applied.
		panic(err)
	}
	g.paused = false
	g.startBoard()
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.engine.NeedsReinit() || in.Has(core.ActionRestart) {
		g.restart()
		return core.StepResult{State: g.State()}
	}

	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && !g.engine.IsOver() {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.handleInput(in)
	g.advanceClock()

	return core.StepResult{State: g.State()}
}

// handleInput moves the cursor and forwards touches to the engine.
func (g *Game) handleInput(in core.InputFrame) {
	switch {
	case in.Has(core.ActionUp):
		g.moveCursor(0, -1)
	case in.Has(core.ActionDown):
		g.moveCursor(0, 1)
	case in.Has(core.ActionLeft):
		g.moveCursor(-1, 0)
	case in.Has(core.ActionRight):
		g.moveCursor(1, 0)
	}

	if in.Has(core.ActionToggleFlag) {
		g.engine.ToggleFlagMode()
	}

	if sx, sy, ok := in.Click(); ok {
		if x, y, onBoard := g.layout.cellAt(sx, sy); onBoard {
			g.cursorX, g.cursorY = x, y
			g.touch(x, y)
		}
		return
	}

	if in.Has(core.ActionTouch) || in.Has(core.ActionConfirm) {
		g.touch(g.cursorX, g.cursorY)
	}
}

func (g *Game) moveCursor(dx, dy int) {
	g.cursorX = core.Clamp(g.cursorX+dx, 0, g.engine.Width()-1)
	g.cursorY = core.Clamp(g.cursorY+dy, 0, g.engine.Height()-1)
}

// touch forwards a touch while the game is still running.
func (g *Game) touch(x, y int) {
	if g.engine.IsWon() || g.engine.IsLost() {
		return
	}
	g.engine.OnTouch(x, y)
}

// advanceClock bumps the engine's time counter once per second of ticks.
func (g *Game) advanceClock() {
	if g.engine.IsWon() || g.engine.IsLost() {
		return
	}
	g.secondTicks++
	if g.secondTicks >= g.ticksPerSecond {
		g.secondTicks = 0
		g.engine.IncrementTimeCounter()
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Seconds:  g.engine.TimeCounter(),
		GameOver: g.engine.IsOver(),
		Won:      g.engine.IsWon(),
		Paused:   g.paused || g.tooSmall,
	}
}

// Summary returns the end-of-game statistics for the current board.
func (g *Game) Summary() core.GameSummary {
	return core.GameSummary{
		Difficulty: g.choice.String(),
		Won:        g.engine.IsWon(),
		Seconds:    g.engine.TimeCounter(),
		Flags:      g.engine.GameBoardCounter(mines.Flag),
		Numbers:    g.engine.GameBoardCounter(mines.Number),
		Empties:    g.engine.GameBoardCounter(mines.Empty),
	}
}

// Controls returns the control hints shown under a running board.
func (g *Game) Controls() string {
	return "Space: Touch | F: Flag mode | P: Pause | R: New"
}
