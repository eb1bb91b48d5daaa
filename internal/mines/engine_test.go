package mines

import (
	"errors"
	"math/rand"
	"strings"
	"testing"
)

// newTestEngine builds an engine with a fixed layout or fails the test.
func newTestEngine(t *testing.T, width, height int, layout ...Coord) *Engine {
	t.Helper()
	e, err := NewWithMines(width, height, layout)
	if err != nil {
		t.Fatalf("NewWithMines() failed: %v", err)
	}
	return e
}

// boardString renders the stored grid, one row per line:
// '#' unrevealed, '.' empty, 'N' number, 'F' flag, '*' mine marker.
func boardString(e *Engine) string {
	symbols := map[FieldState]byte{
		Unrevealed: '#',
		Empty:      '.',
		Number:     'N',
		Flag:       'F',
		Mine:       '*',
	}
	var sb strings.Builder
	for y := 0; y < len(e.grid); y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < len(e.grid[y]); x++ {
			sb.WriteByte(symbols[e.FieldContent(x, y)])
		}
	}
	return sb.String()
}

func expectPanic(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s should panic", name)
		}
	}()
	fn()
}

func TestNewUsesDifficultyPreset(t *testing.T) {
	tests := []struct {
		difficulty    Difficulty
		width, height int
		mines         int
	}{
		{Easy, 5, 5, 3},
		{Medium, 7, 7, 5},
		{Difficult, 9, 9, 7},
	}

	for _, tc := range tests {
		t.Run(tc.difficulty.String(), func(t *testing.T) {
			e, err := New(tc.difficulty, rand.New(rand.NewSource(1)))
			if err != nil {
				t.Fatalf("New() failed: %v", err)
			}
			if e.Width() != tc.width || e.Height() != tc.height {
				t.Errorf("size = %dx%d, expected %dx%d", e.Width(), e.Height(), tc.width, tc.height)
			}
			if e.NumberOfMines() != tc.mines || len(e.Mines()) != tc.mines {
				t.Errorf("mines = %d (%d placed), expected %d", e.NumberOfMines(), len(e.Mines()), tc.mines)
			}
		})
	}
}

func TestNewRejectsUnknownDifficulty(t *testing.T) {
	_, err := New(Difficulty(42), nil)
	if !errors.Is(err, ErrUnknownDifficulty) {
		t.Errorf("New(42) error = %v, expected ErrUnknownDifficulty", err)
	}
}

func TestCounterSumsToBoardArea(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		rng := rand.New(rand.NewSource(seed))
		e, err := New(Difficult, rng)
		if err != nil {
			t.Fatalf("New() failed: %v", err)
		}

		// Play random touches until the game ends or the budget runs out.
		for i := 0; i < 40 && !e.IsOver(); i++ {
			if rng.Intn(4) == 0 {
				e.ToggleFlagMode()
			}
			e.OnTouch(rng.Intn(e.Width()), rng.Intn(e.Height()))
		}

		total := 0
		for _, s := range FieldStates {
			total += e.GameBoardCounter(s)
		}
		if total != e.Width()*e.Height() {
			t.Errorf("seed %d: counters sum to %d, expected %d", seed, total, e.Width()*e.Height())
		}
	}
}

func TestRestartGame(t *testing.T) {
	e, err := New(Easy, rand.New(rand.NewSource(7)))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	e.ToggleFlagMode()
	e.IncrementTimeCounter()
	e.IncrementTimeCounter()
	// Flag a non-mine to lose.
	for y := 0; y < e.Height() && !e.IsLost(); y++ {
		for x := 0; x < e.Width() && !e.IsLost(); x++ {
			if !e.IsMine(x, y) {
				e.OnTouch(x, y)
			}
		}
	}
	if !e.IsLost() {
		t.Fatal("expected game to be lost before restart")
	}

	if err := e.RestartGame(); err != nil {
		t.Fatalf("RestartGame() failed: %v", err)
	}

	if got := e.GameBoardCounter(Unrevealed); got != e.Width()*e.Height() {
		t.Errorf("Unrevealed count = %d, expected %d", got, e.Width()*e.Height())
	}
	if e.TimeCounter() != 0 {
		t.Errorf("TimeCounter() = %d, expected 0", e.TimeCounter())
	}
	if e.IsLost() {
		t.Error("IsLost() should be false after restart")
	}
	if !e.IsFlagModeOn() {
		t.Error("flag mode should survive a restart")
	}
}

func TestGeneratedMinesAreRowAndColumnExclusive(t *testing.T) {
	for _, d := range Difficulties {
		for seed := int64(0); seed < 50; seed++ {
			e, err := New(d, rand.New(rand.NewSource(seed)))
			if err != nil {
				t.Fatalf("New(%s) failed: %v", d, err)
			}

			mines := e.Mines()
			if len(mines) != d.Preset().Mines {
				t.Fatalf("%s seed %d: %d mines, expected %d", d, seed, len(mines), d.Preset().Mines)
			}

			rows := make(map[int]bool)
			cols := make(map[int]bool)
			for _, m := range mines {
				if rows[m.Row] {
					t.Errorf("%s seed %d: two mines in row %d", d, seed, m.Row)
				}
				if cols[m.Col] {
					t.Errorf("%s seed %d: two mines in column %d", d, seed, m.Col)
				}
				rows[m.Row] = true
				cols[m.Col] = true
				if !e.IsMine(m.Col, m.Row) {
					t.Errorf("IsMine(%d, %d) = false for a listed mine", m.Col, m.Row)
				}
			}
		}
	}
}

func TestSameSeedSameMines(t *testing.T) {
	a, _ := New(Medium, rand.New(rand.NewSource(99)))
	b, _ := New(Medium, rand.New(rand.NewSource(99)))

	ma, mb := a.Mines(), b.Mines()
	for i := range ma {
		if ma[i] != mb[i] {
			t.Fatalf("mine %d differs: %v vs %v", i, ma[i], mb[i])
		}
	}
}

func TestCheckBoard(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		mines         int
		want          error
	}{
		{"easy preset", 5, 5, 3, nil},
		{"one per row and column", 4, 4, 4, nil},
		{"no mines", 3, 3, 0, nil},
		{"zero width", 0, 5, 1, ErrInvalidBoard},
		{"negative mines", 3, 3, -1, ErrInvalidBoard},
		{"fills board", 1, 1, 1, ErrInfeasibleMines},
		{"more than rows", 9, 3, 4, ErrInfeasibleMines},
		{"more than columns", 2, 8, 3, ErrInfeasibleMines},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := CheckBoard(tc.width, tc.height, tc.mines)
			if tc.want == nil && err != nil {
				t.Errorf("CheckBoard() = %v, expected nil", err)
			}
			if tc.want != nil && !errors.Is(err, tc.want) {
				t.Errorf("CheckBoard() = %v, expected %v", err, tc.want)
			}
		})
	}
}

func TestNewCustomRejectsInfeasibleBoard(t *testing.T) {
	// Would spin forever with a plain retry loop.
	_, err := NewCustom(5, 5, 6, rand.New(rand.NewSource(1)))
	if !errors.Is(err, ErrInfeasibleMines) {
		t.Errorf("NewCustom(5, 5, 6) error = %v, expected ErrInfeasibleMines", err)
	}
}

func TestNewWithMinesValidatesLayout(t *testing.T) {
	tests := []struct {
		name   string
		layout []Coord
	}{
		{"off board", []Coord{{Row: 3, Col: 0}}},
		{"negative", []Coord{{Row: 0, Col: -1}}},
		{"duplicate", []Coord{{Row: 1, Col: 1}, {Row: 1, Col: 1}}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewWithMines(3, 3, tc.layout); !errors.Is(err, ErrInvalidBoard) {
				t.Errorf("NewWithMines() error = %v, expected ErrInvalidBoard", err)
			}
		})
	}
}

func TestIsWonWhenAllMinesFlagged(t *testing.T) {
	e := newTestEngine(t, 5, 5, Coord{Row: 0, Col: 1}, Coord{Row: 2, Col: 3}, Coord{Row: 4, Col: 0})

	if e.IsWon() {
		t.Fatal("IsWon() should be false on a fresh board")
	}

	e.SetFieldContent(1, 0, Flag)
	e.SetFieldContent(3, 2, Flag)
	if e.IsWon() {
		t.Error("IsWon() should be false with one mine unflagged")
	}

	e.SetFieldContent(0, 4, Flag)
	if !e.IsWon() {
		t.Error("IsWon() should be true with every mine flagged")
	}
	if got := e.GameBoardCounter(Flag); got != 3 {
		t.Errorf("Flag count = %d, expected 3", got)
	}
}

func TestWinByFlagModeTouches(t *testing.T) {
	e := newTestEngine(t, 3, 3, Coord{Row: 0, Col: 0}, Coord{Row: 2, Col: 1})
	e.ToggleFlagMode()

	e.OnTouch(0, 0)
	if e.IsWon() {
		t.Fatal("IsWon() should be false after flagging one of two mines")
	}
	e.OnTouch(1, 2)
	if !e.IsWon() {
		t.Error("IsWon() should be true after flagging both mines")
	}
	if e.IsLost() {
		t.Error("IsLost() should be false")
	}
}

func TestTouchMineLoses(t *testing.T) {
	e := newTestEngine(t, 3, 3, Coord{Row: 1, Col: 1})

	e.OnTouch(1, 1)
	if !e.IsLost() {
		t.Error("touching an unflagged mine should lose")
	}
	if e.FieldContent(1, 1) != Unrevealed {
		t.Errorf("mine cell = %v, expected Unrevealed", e.FieldContent(1, 1))
	}
}

func TestTouchFlaggedMineIsIgnored(t *testing.T) {
	e := newTestEngine(t, 3, 3, Coord{Row: 1, Col: 1}, Coord{Row: 0, Col: 2})
	e.SetFieldContent(1, 1, Flag)
	before := boardString(e)

	e.OnTouch(1, 1)

	if e.IsLost() {
		t.Error("touching a flagged mine should not lose")
	}
	if after := boardString(e); after != before {
		t.Errorf("board changed:\n%s\nexpected\n%s", after, before)
	}
}

func TestFlagModeOnNonMineLoses(t *testing.T) {
	e := newTestEngine(t, 3, 3, Coord{Row: 0, Col: 0})
	e.ToggleFlagMode()

	e.OnTouch(2, 2)
	if !e.IsLost() {
		t.Error("flagging a non-mine should lose")
	}
	if e.FieldContent(2, 2) != Unrevealed {
		t.Errorf("cell = %v, expected Unrevealed", e.FieldContent(2, 2))
	}
}

func TestFlagModeTogglesFlagOnMine(t *testing.T) {
	e := newTestEngine(t, 3, 3, Coord{Row: 0, Col: 0}, Coord{Row: 2, Col: 2})
	e.ToggleFlagMode()

	e.OnTouch(0, 0)
	if e.FieldContent(0, 0) != Flag {
		t.Fatalf("cell = %v, expected Flag", e.FieldContent(0, 0))
	}
	e.OnTouch(0, 0)
	if e.FieldContent(0, 0) != Unrevealed {
		t.Fatalf("cell = %v, expected Unrevealed after unflagging", e.FieldContent(0, 0))
	}
	e.OnTouch(0, 0)
	if e.FieldContent(0, 0) != Flag {
		t.Errorf("cell = %v, expected Flag again", e.FieldContent(0, 0))
	}
	if e.IsLost() {
		t.Error("flagging mines should never lose")
	}
}

func TestTouchNumberCell(t *testing.T) {
	e := newTestEngine(t, 3, 3, Coord{Row: 0, Col: 0})

	e.OnTouch(1, 1)
	if e.FieldContent(1, 1) != Number {
		t.Errorf("cell = %v, expected Number", e.FieldContent(1, 1))
	}
	if got := e.GameBoardCounter(Unrevealed); got != 8 {
		t.Errorf("Unrevealed count = %d, expected 8 (no flood fill from a Number)", got)
	}
}

func TestMinesNearby(t *testing.T) {
	e := newTestEngine(t, 5, 5, Coord{Row: 0, Col: 0}, Coord{Row: 1, Col: 2}, Coord{Row: 4, Col: 4})

	tests := []struct {
		name     string
		x, y     int
		expected int
	}{
		{"next to corner mine", 1, 0, 2},
		{"between two mines", 1, 1, 2},
		{"far corner away from mines", 0, 4, 0},
		{"next to bottom-right mine", 3, 3, 1},
		{"mine cell counts neighbours only", 0, 0, 0},
		{"off board left", -1, 0, 1},
		{"off board far away", 10, 10, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := e.MinesNearby(tc.x, tc.y); got != tc.expected {
				t.Errorf("MinesNearby(%d, %d) = %d, expected %d", tc.x, tc.y, got, tc.expected)
			}
		})
	}
}

func TestIsMineOffBoard(t *testing.T) {
	e := newTestEngine(t, 2, 2, Coord{Row: 0, Col: 0})

	for _, p := range [][2]int{{-1, 0}, {0, -1}, {2, 0}, {0, 2}, {-5, -5}} {
		if e.IsMine(p[0], p[1]) {
			t.Errorf("IsMine(%d, %d) = true, expected false", p[0], p[1])
		}
	}
}

func TestPreconditionViolationsPanic(t *testing.T) {
	e := newTestEngine(t, 3, 3, Coord{Row: 0, Col: 0})

	expectPanic(t, "FieldContent off board", func() { e.FieldContent(3, 0) })
	expectPanic(t, "SetFieldContent off board", func() { e.SetFieldContent(0, -1, Flag) })
	expectPanic(t, "OnTouch off board", func() { e.OnTouch(-1, 2) })

	e.OnTouch(0, 0) // lose
	expectPanic(t, "OnTouch after loss", func() { e.OnTouch(2, 2) })
}

func TestSetGameDifficultyDefersRegeneration(t *testing.T) {
	e, err := New(Easy, rand.New(rand.NewSource(3)))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	if e.NeedsReinit() {
		t.Error("fresh engine should not need reinit")
	}

	if err := e.SetGameDifficulty(Difficult); err != nil {
		t.Fatalf("SetGameDifficulty() failed: %v", err)
	}
	if !e.NeedsReinit() {
		t.Error("NeedsReinit() should be true after changing difficulty")
	}
	if e.Width() != 9 || e.Height() != 9 || e.NumberOfMines() != 7 {
		t.Errorf("settings = %dx%d/%d, expected 9x9/7", e.Width(), e.Height(), e.NumberOfMines())
	}
	// The old 5x5 board is still in place.
	if e.InBounds(6, 6) {
		t.Error("board should not be regenerated before RestartGame")
	}

	if err := e.RestartGame(); err != nil {
		t.Fatalf("RestartGame() failed: %v", err)
	}
	if e.NeedsReinit() {
		t.Error("NeedsReinit() should be cleared by RestartGame")
	}
	if !e.InBounds(8, 8) || len(e.Mines()) != 7 {
		t.Error("board should be 9x9 with 7 mines after restart")
	}
}

func TestSetBoardSize(t *testing.T) {
	e, _ := New(Easy, rand.New(rand.NewSource(3)))

	if err := e.SetBoardSize(12, 6, 7); !errors.Is(err, ErrInfeasibleMines) {
		t.Errorf("SetBoardSize(12, 6, 7) = %v, expected ErrInfeasibleMines", err)
	}
	if e.NeedsReinit() {
		t.Error("rejected settings should not mark the board")
	}

	if err := e.SetBoardSize(12, 6, 6); err != nil {
		t.Fatalf("SetBoardSize(12, 6, 6) failed: %v", err)
	}
	if err := e.RestartGame(); err != nil {
		t.Fatalf("RestartGame() failed: %v", err)
	}
	if !e.InBounds(11, 5) || e.InBounds(12, 5) {
		t.Error("board should be 12 wide and 6 tall")
	}
}

func TestTimeCounter(t *testing.T) {
	e := newTestEngine(t, 2, 2, Coord{Row: 0, Col: 0})

	for i := 0; i < 5; i++ {
		e.IncrementTimeCounter()
	}
	if e.TimeCounter() != 5 {
		t.Errorf("TimeCounter() = %d, expected 5", e.TimeCounter())
	}
	e.ResetTimeCounter()
	if e.TimeCounter() != 0 {
		t.Errorf("TimeCounter() = %d, expected 0 after reset", e.TimeCounter())
	}
}

func TestMinesReturnsCopy(t *testing.T) {
	e := newTestEngine(t, 3, 3, Coord{Row: 1, Col: 1})

	m := e.Mines()
	m[0] = Coord{Row: 2, Col: 2}

	if !e.IsMine(1, 1) || e.Mines()[0] != (Coord{Row: 1, Col: 1}) {
		t.Error("mutating Mines() result changed the engine")
	}
}

func TestParseDifficulty(t *testing.T) {
	tests := []struct {
		in       string
		expected Difficulty
		ok       bool
	}{
		{"easy", Easy, true},
		{"Medium", Medium, true},
		{" difficult ", Difficult, true},
		{"hard", Difficult, true},
		{"nightmare", 0, false},
		{"", 0, false},
	}

	for _, tc := range tests {
		got, err := ParseDifficulty(tc.in)
		if tc.ok && (err != nil || got != tc.expected) {
			t.Errorf("ParseDifficulty(%q) = %v, %v; expected %v", tc.in, got, err, tc.expected)
		}
		if !tc.ok && !errors.Is(err, ErrUnknownDifficulty) {
			t.Errorf("ParseDifficulty(%q) error = %v, expected ErrUnknownDifficulty", tc.in, err)
		}
	}
}
