package config

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-mines/internal/mines"
)

// CustomName is the difficulty name that selects the configured custom board.
const CustomName = "custom"

// Choice is a difficulty picked by name: one of the engine presets or the
// custom board from the config file.
type Choice struct {
	Difficulty mines.Difficulty // zero for Custom
	Custom     bool
}

// ParseChoice parses "easy", "medium", "difficult" (with the engine's
// aliases) or "custom".
func ParseChoice(name string) (Choice, error) {
	if strings.EqualFold(strings.TrimSpace(name), CustomName) {
		return Choice{Custom: true}, nil
	}
	d, err := mines.ParseDifficulty(name)
	if err != nil {
		return Choice{}, err
	}
	return Choice{Difficulty: d}, nil
}

// String returns the canonical name of the choice.
func (c Choice) String() string {
	if c.Custom {
		return CustomName
	}
	return c.Difficulty.String()
}

// Board returns the width, height and mine count for the choice.
func (c Choice) Board(cfg MinesweeperConfig) (mines.Preset, error) {
	if c.Custom {
		p := mines.Preset{Width: cfg.Custom.Width, Height: cfg.Custom.Height, Mines: cfg.Custom.Mines}
		if err := mines.CheckBoard(p.Width, p.Height, p.Mines); err != nil {
			return mines.Preset{}, fmt.Errorf("config: custom board: %w", err)
		}
		return p, nil
	}
	if !c.Difficulty.Valid() {
		return mines.Preset{}, fmt.Errorf("%w: %d", mines.ErrUnknownDifficulty, int(c.Difficulty))
	}
	return c.Difficulty.Preset(), nil
}

// Choices lists every selectable difficulty in menu order.
func Choices() []Choice {
	out := make([]Choice, 0, len(mines.Difficulties)+1)
	for _, d := range mines.Difficulties {
		out = append(out, Choice{Difficulty: d})
	}
	return append(out, Choice{Custom: true})
}
