// Package config loads the Minesweeper settings from YAML and resolves
// difficulty names into board dimensions.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-mines/internal/mines"
)

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("config: invalid")

// MinesweeperConfig contains all configuration for the Minesweeper game.
type MinesweeperConfig struct {
	DefaultDifficulty string        `yaml:"default_difficulty"` // easy, medium, difficult or custom
	Timer             TimerConfig   `yaml:"timer"`
	Custom            CustomBoard   `yaml:"custom"`
	Display           DisplayConfig `yaml:"display"`
}

// TimerConfig defines how often the game clock advances.
type TimerConfig struct {
	IntervalMs int `yaml:"interval_ms"`
}

// CustomBoard is the board used by the "custom" difficulty.
type CustomBoard struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	Mines  int `yaml:"mines"`
}

// DisplayConfig toggles optional HUD elements.
type DisplayConfig struct {
	ShowTimer bool `yaml:"show_timer"`
}

// Validate checks the loaded values.
func (c MinesweeperConfig) Validate() error {
	if _, err := ParseChoice(c.DefaultDifficulty); err != nil {
		return fmt.Errorf("%w: default_difficulty: %w", ErrInvalidConfig, err)
	}
	if c.Timer.IntervalMs <= 0 {
		return fmt.Errorf("%w: timer.interval_ms must be positive, got %d", ErrInvalidConfig, c.Timer.IntervalMs)
	}
	if c.Custom.Mines < 1 {
		return fmt.Errorf("%w: custom.mines must be at least 1, got %d", ErrInvalidConfig, c.Custom.Mines)
	}
	if err := mines.CheckBoard(c.Custom.Width, c.Custom.Height, c.Custom.Mines); err != nil {
		return fmt.Errorf("%w: custom board: %w", ErrInvalidConfig, err)
	}
	return nil
}

// normalize lower-cases the difficulty name.
func (c *MinesweeperConfig) normalize() {
	c.DefaultDifficulty = strings.ToLower(strings.TrimSpace(c.DefaultDifficulty))
}
