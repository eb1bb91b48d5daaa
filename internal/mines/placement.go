package mines

import (
	"fmt"
	"math/rand"

	"github.com/zyedidia/generic/mapset"
)

// CheckBoard reports whether a width x height board can hold count mines
// when no two mines may share a row or a column.
func CheckBoard(width, height, count int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: size %dx%d", ErrInvalidBoard, width, height)
	}
	if count < 0 {
		return fmt.Errorf("%w: negative mine count %d", ErrInvalidBoard, count)
	}
	if count >= width*height {
		return fmt.Errorf("%w: %d mines on a %dx%d board", ErrInfeasibleMines, count, width, height)
	}
	if count > min(width, height) {
		return fmt.Errorf("%w: %d mines need %d distinct rows and columns on a %dx%d board",
			ErrInfeasibleMines, count, count, width, height)
	}
	return nil
}

// placeMines draws count mine coordinates such that every mine has its own
// row and its own column. Only the single candidate draw is retried; the
// caller must have validated the board with CheckBoard first, which keeps the
// loop finite.
func placeMines(rng *rand.Rand, width, height, count int) []Coord {
	placed := make([]Coord, 0, count)
	usedRows := mapset.New[int]()
	usedCols := mapset.New[int]()

	for len(placed) < count {
		col := rng.Intn(width)
		row := rng.Intn(height)

		if usedCols.Has(col) || usedRows.Has(row) {
			continue
		}

		placed = append(placed, Coord{Row: row, Col: col})
		usedRows.Put(row)
		usedCols.Put(col)
	}

	return placed
}

// validateLayout checks an explicit mine list against the board bounds.
// Explicit layouts only need distinct in-range cells; the row/column rule
// applies to generated layouts.
func validateLayout(width, height int, layout []Coord) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: size %dx%d", ErrInvalidBoard, width, height)
	}
	if len(layout) >= width*height {
		return fmt.Errorf("%w: %d mines on a %dx%d board", ErrInfeasibleMines, len(layout), width, height)
	}

	seen := mapset.New[Coord]()
	for _, c := range layout {
		if c.Row < 0 || c.Row >= height || c.Col < 0 || c.Col >= width {
			return fmt.Errorf("%w: mine at row %d col %d is off the board", ErrInvalidBoard, c.Row, c.Col)
		}
		if seen.Has(c) {
			return fmt.Errorf("%w: duplicate mine at row %d col %d", ErrInvalidBoard, c.Row, c.Col)
		}
		seen.Put(c)
	}
	return nil
}
