package minesweeper

import "github.com/vovakirdan/tui-mines/internal/mines"

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StatePaused      GameStateType = "paused"
	StateWon         GameStateType = "won"
	StateLost        GameStateType = "lost"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the complete game state for determinism testing.
type Snapshot struct {
	Tick       uint64
	Difficulty string
	Width      int
	Height     int
	Mines      []mines.Coord
	Cells      [][]mines.FieldState // [row][col]
	CursorX    int
	CursorY    int
	FlagMode   bool
	Seconds    int
	State      GameStateType
}

// Snapshot returns a copy of the current game state.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.engine.IsLost():
		state = StateLost
	case g.engine.IsWon():
		state = StateWon
	case g.paused:
		state = StatePaused
	}

	w, h := g.layout.width, g.layout.height
	cells := make([][]mines.FieldState, h)
	for y := range cells {
		cells[y] = make([]mines.FieldState, w)
		for x := range cells[y] {
			cells[y][x] = g.engine.FieldContent(x, y)
		}
	}

	return Snapshot{
		Tick:       g.tick,
		Difficulty: g.choice.String(),
		Width:      w,
		Height:     h,
		Mines:      g.engine.Mines(),
		Cells:      cells,
		CursorX:    g.cursorX,
		CursorY:    g.cursorY,
		FlagMode:   g.engine.IsFlagModeOn(),
		Seconds:    g.engine.TimeCounter(),
		State:      state,
	}
}
