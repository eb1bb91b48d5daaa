package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-mines/internal/games/minesweeper"
	"github.com/vovakirdan/tui-mines/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with the difficulty menu",
	Long: `Start in interactive menu mode.

Pick a difficulty, play, and return to the menu when the game is over.
The last result is shown under the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Start a game
  Tab/T        - Statistics
  Q/Esc        - Quit

Examples:
  mines menu
  mines menu --fps 60
  mines menu --db ./results.db`,
	Args: cobra.NoArgs,
	Run:  runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom Minesweeper config YAML")
}

func runMenu(_ *cobra.Command, _ []string) {
	cfg := mustLoadConfig()
	minesweeper.SetConfigPath(flagConfig)

	store := openStore()
	err := tui.RunSession(gameID, store, cfg, runtimeConfig())

	if store != nil {
		store.Close()
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
