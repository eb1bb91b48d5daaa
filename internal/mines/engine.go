package mines

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/zyedidia/generic/mapset"
)

var (
	// ErrInvalidBoard is returned for non-positive dimensions, negative mine
	// counts and malformed explicit layouts.
	ErrInvalidBoard = errors.New("mines: invalid board")
	// ErrInfeasibleMines is returned when the mines cannot be placed under
	// the row/column exclusivity rule.
	ErrInfeasibleMines = errors.New("mines: infeasible mine count")
	// ErrUnknownDifficulty is returned for difficulty names or values outside the table.
	ErrUnknownDifficulty = errors.New("mines: unknown difficulty")
)

// Engine owns one Minesweeper board: the visible grid, the mine set and the
// game progress flags. It is not safe for concurrent use; callers serialise
// access (the Bubble Tea loop does this for free).
type Engine struct {
	rng *rand.Rand

	width         int
	height        int
	numberOfMines int

	grid    [][]FieldState // [row][col]
	mines   []Coord
	mineSet mapset.Set[Coord]

	flagMode    bool
	lost        bool
	timeCounter int
	needsReinit bool
}

// New creates an engine for a difficulty preset with a freshly generated board.
// A nil rng is replaced by a time-seeded one.
func New(d Difficulty, rng *rand.Rand) (*Engine, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownDifficulty, int(d))
	}
	p := d.Preset()
	return NewCustom(p.Width, p.Height, p.Mines, rng)
}

// NewCustom creates an engine for an arbitrary board size.
// Returns ErrInvalidBoard or ErrInfeasibleMines for degenerate settings.
func NewCustom(width, height, numberOfMines int, rng *rand.Rand) (*Engine, error) {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	e := &Engine{
		rng:           rng,
		width:         width,
		height:        height,
		numberOfMines: numberOfMines,
	}
	if err := e.RestartGame(); err != nil {
		return nil, err
	}
	return e, nil
}

// NewWithMines creates an engine with a fixed mine layout instead of a random
// one. Used for replays and for constructing known positions in tests.
func NewWithMines(width, height int, layout []Coord) (*Engine, error) {
	if err := validateLayout(width, height, layout); err != nil {
		return nil, err
	}
	e := &Engine{
		rng:           rand.New(rand.NewSource(time.Now().UnixNano())),
		width:         width,
		height:        height,
		numberOfMines: len(layout),
	}
	e.resetGrid()
	e.setMines(layout)
	return e, nil
}

// Width returns the number of columns.
func (e *Engine) Width() int { return e.width }

// Height returns the number of rows.
func (e *Engine) Height() int { return e.height }

// NumberOfMines returns the mine count of the current board settings.
func (e *Engine) NumberOfMines() int { return e.numberOfMines }

// FieldContent returns the stored state at column x, row y.
// Panics if the coordinate is off the board.
func (e *Engine) FieldContent(x, y int) FieldState {
	e.mustContain("FieldContent", x, y)
	return e.grid[y][x]
}

// SetFieldContent overwrites the stored state at column x, row y.
// Panics if the coordinate is off the board.
func (e *Engine) SetFieldContent(x, y int, state FieldState) {
	e.mustContain("SetFieldContent", x, y)
	e.grid[y][x] = state
}

// InBounds reports whether column x, row y lies on the current board.
// Between SetGameDifficulty and RestartGame this still describes the old board.
func (e *Engine) InBounds(x, y int) bool {
	return y >= 0 && y < len(e.grid) && x >= 0 && x < len(e.grid[y])
}

// IsMine reports whether column x, row y holds a mine.
// Off-board coordinates are never mines.
func (e *Engine) IsMine(x, y int) bool {
	if !e.InBounds(x, y) {
		return false
	}
	return e.mineSet.Has(Coord{Row: y, Col: x})
}

// MinesNearby counts the mines in the eight cells around column x, row y.
func (e *Engine) MinesNearby(x, y int) int {
	count := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if e.IsMine(x+dx, y+dy) {
				count++
			}
		}
	}
	return count
}

// Mines returns a copy of the mine coordinates.
func (e *Engine) Mines() []Coord {
	out := make([]Coord, len(e.mines))
	copy(out, e.mines)
	return out
}

// IsWon reports whether every mine is flagged.
func (e *Engine) IsWon() bool {
	for _, m := range e.mines {
		if e.grid[m.Row][m.Col] != Flag {
			return false
		}
	}
	return true
}

// IsLost reports whether the player has lost the current game.
func (e *Engine) IsLost() bool {
	return e.lost
}

// IsOver reports whether the game is won or lost.
func (e *Engine) IsOver() bool {
	return e.lost || e.IsWon()
}

// GameBoardCounter counts the cells whose stored state equals state.
func (e *Engine) GameBoardCounter(state FieldState) int {
	total := 0
	for _, row := range e.grid {
		for _, cell := range row {
			if cell == state {
				total++
			}
		}
	}
	return total
}

// IsFlagModeOn reports whether touches place flags instead of revealing.
func (e *Engine) IsFlagModeOn() bool {
	return e.flagMode
}

// ToggleFlagMode switches between reveal and flag input.
func (e *Engine) ToggleFlagMode() {
	e.flagMode = !e.flagMode
}

// TimeCounter returns the number of seconds counted so far.
func (e *Engine) TimeCounter() int {
	return e.timeCounter
}

// IncrementTimeCounter advances the counter by one. The caller decides
// whether the game is still running.
func (e *Engine) IncrementTimeCounter() {
	e.timeCounter++
}

// ResetTimeCounter sets the counter back to zero.
func (e *Engine) ResetTimeCounter() {
	e.timeCounter = 0
}

// SetGameDifficulty switches the board settings to a preset and marks the
// board as needing reinitialization. The board itself is regenerated by the
// next RestartGame.
func (e *Engine) SetGameDifficulty(d Difficulty) error {
	if !d.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownDifficulty, int(d))
	}
	p := d.Preset()
	e.width, e.height, e.numberOfMines = p.Width, p.Height, p.Mines
	e.needsReinit = true
	return nil
}

// SetBoardSize switches to custom board settings, validated up front so a
// later RestartGame cannot fail on them.
func (e *Engine) SetBoardSize(width, height, numberOfMines int) error {
	if err := CheckBoard(width, height, numberOfMines); err != nil {
		return err
	}
	e.width, e.height, e.numberOfMines = width, height, numberOfMines
	e.needsReinit = true
	return nil
}

// NeedsReinit reports whether the board settings changed since the last restart.
func (e *Engine) NeedsReinit() bool {
	return e.needsReinit
}

// RestartGame clears every cell, draws a new mine set and resets the timer
// and the lost flag. Flag mode is kept.
func (e *Engine) RestartGame() error {
	if err := CheckBoard(e.width, e.height, e.numberOfMines); err != nil {
		return err
	}
	e.resetGrid()
	e.setMines(placeMines(e.rng, e.width, e.height, e.numberOfMines))
	e.ResetTimeCounter()
	e.lost = false
	e.needsReinit = false
	return nil
}

// OnTouch applies a touch at column x, row y.
//
// In flag mode a flag is removed, a mine is flagged, and flagging any other
// cell loses the game. Otherwise touching an unflagged mine loses, a cell
// next to mines becomes a Number and a cell with no neighbouring mines
// becomes Empty and starts the flood-fill reveal. Flagged mines ignore plain
// touches.
//
// Panics if the coordinate is off the board or the game is already over.
func (e *Engine) OnTouch(x, y int) {
	e.mustContain("OnTouch", x, y)
	if e.IsOver() {
		panic(fmt.Sprintf("mines: OnTouch(%d, %d) after the game ended", x, y))
	}

	field := e.grid[y][x]
	mine := e.IsMine(x, y)

	if e.flagMode {
		switch {
		case field == Flag:
			e.grid[y][x] = Unrevealed
		case mine:
			e.grid[y][x] = Flag
		default:
			e.lost = true
		}
		return
	}

	switch {
	case mine && field != Flag:
		e.lost = true
	case !mine:
		if e.MinesNearby(x, y) > 0 {
			e.grid[y][x] = Number
		} else {
			e.grid[y][x] = Empty
			e.revealFrom(x, y)
		}
	}
}

// resetGrid allocates a fresh all-Unrevealed grid for the current size.
func (e *Engine) resetGrid() {
	e.grid = make([][]FieldState, e.height)
	for y := range e.grid {
		e.grid[y] = make([]FieldState, e.width)
	}
}

func (e *Engine) setMines(layout []Coord) {
	e.mines = layout
	e.mineSet = mapset.New[Coord]()
	for _, m := range layout {
		e.mineSet.Put(m)
	}
}

func (e *Engine) mustContain(op string, x, y int) {
	if !e.InBounds(x, y) {
		cols := 0
		if len(e.grid) > 0 {
			cols = len(e.grid[0])
		}
		panic(fmt.Sprintf("mines: %s(%d, %d) outside %dx%d board", op, x, y, cols, len(e.grid)))
	}
}
