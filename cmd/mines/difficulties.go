package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-mines/internal/config"
)

var difficultiesCmd = &cobra.Command{
	Use:   "difficulties",
	Short: "List the board presets",
	Long:  `Shows every selectable difficulty with its board size and mine count.`,
	Args:  cobra.NoArgs,
	Run:   runDifficulties,
}

func init() {
	difficultiesCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom Minesweeper config YAML")
}

func runDifficulties(_ *cobra.Command, _ []string) {
	cfg := mustLoadConfig()
	def, _ := config.ParseChoice(cfg.DefaultDifficulty)

	fmt.Println("Difficulties:")
	fmt.Println()
	fmt.Printf("  %-10s  %-7s  %s\n", "Name", "Board", "Mines")
	fmt.Printf("  %-10s  %-7s  %s\n", "----", "-----", "-----")

	for _, c := range config.Choices() {
		p, err := c.Board(cfg)
		if err != nil {
			fmt.Printf("  %-10s  %-7s  %s\n", c, "-", "invalid")
			continue
		}
		name := c.String()
		if c == def {
			name += "*"
		}
		fmt.Printf("  %-10s  %-7s  %d\n", name, fmt.Sprintf("%dx%d", p.Width, p.Height), p.Mines)
	}

	fmt.Println()
	fmt.Println("* default. Run 'mines play --difficulty <name>' to play one.")
}
