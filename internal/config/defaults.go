package config

import (
	_ "embed"
)

//go:embed defaults/minesweeper.yaml
var defaultMinesweeperYAML []byte

// DefaultMinesweeperConfig returns the hardcoded configuration used when no
// YAML source can be read.
func DefaultMinesweeperConfig() MinesweeperConfig {
	return MinesweeperConfig{
		DefaultDifficulty: "easy",
		Timer: TimerConfig{
			IntervalMs: 1000,
		},
		Custom: CustomBoard{
			Width:  12,
			Height: 10,
			Mines:  8,
		},
		Display: DisplayConfig{
			ShowTimer: true,
		},
	}
}
