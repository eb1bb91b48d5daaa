// Package mines implements the Minesweeper board engine: field visibility,
// mine placement, adjacency counts and the flood-fill reveal.
// It has no rendering or input dependencies; the platform layer translates
// keys and clicks into cell coordinates and reads the engine state back.
package mines

import (
	"fmt"
	"strings"
)

// FieldState is the visible content of a single board cell.
type FieldState uint8

const (
	Unrevealed FieldState = iota
	Empty
	Number
	Flag
	Mine // display-only marker, never used to decide mine identity
)

// FieldStates lists every FieldState in declaration order.
var FieldStates = []FieldState{Unrevealed, Empty, Number, Flag, Mine}

// String returns a human-readable name for the state.
func (s FieldState) String() string {
	switch s {
	case Unrevealed:
		return "Unrevealed"
	case Empty:
		return "Empty"
	case Number:
		return "Number"
	case Flag:
		return "Flag"
	case Mine:
		return "Mine"
	default:
		return "Unknown"
	}
}

// Coord addresses a cell by row and column.
type Coord struct {
	Row int
	Col int
}

// Difficulty selects one of the fixed board presets.
type Difficulty int

const (
	Easy Difficulty = iota + 1
	Medium
	Difficult
)

// Difficulties lists the presets from easiest to hardest.
var Difficulties = []Difficulty{Easy, Medium, Difficult}

// Preset holds the board dimensions and mine count for a difficulty.
type Preset struct {
	Width  int
	Height int
	Mines  int
}

var presets = map[Difficulty]Preset{
	Easy:      {Width: 5, Height: 5, Mines: 3},
	Medium:    {Width: 7, Height: 7, Mines: 5},
	Difficult: {Width: 9, Height: 9, Mines: 7},
}

// Preset returns the board settings for d.
// Unknown values yield the zero Preset.
func (d Difficulty) Preset() Preset {
	return presets[d]
}

// Valid reports whether d is one of the known presets.
func (d Difficulty) Valid() bool {
	_, ok := presets[d]
	return ok
}

// String returns the lowercase name used in configs, flags and storage.
func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Difficult:
		return "difficult"
	default:
		return "unknown"
	}
}

// ParseDifficulty converts a name (case-insensitive) into a Difficulty.
// "hard" is accepted as an alias for difficult.
func ParseDifficulty(name string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "easy":
		return Easy, nil
	case "medium", "normal":
		return Medium, nil
	case "difficult", "hard":
		return Difficult, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownDifficulty, name)
}
