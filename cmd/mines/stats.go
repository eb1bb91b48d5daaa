package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-mines/internal/config"
	"github.com/vovakirdan/tui-mines/internal/platform/tui"
	"github.com/vovakirdan/tui-mines/internal/storage"
)

var (
	flagClear bool
	flagPlain bool
)

var statsCmd = &cobra.Command{
	Use:   "stats [difficulty]",
	Short: "Show results and statistics",
	Long: `Display played/won counts, best and average times and the best
results per difficulty.

In a terminal the interactive statistics screen opens; with --plain or
when output is redirected a text summary is printed instead.

Examples:
  mines stats
  mines stats medium
  mines stats --plain
  mines stats easy --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runStats,
}

func init() {
	statsCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the stored results (of one difficulty if given)")
	statsCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print a text summary instead of the interactive screen")
}

func runStats(_ *cobra.Command, args []string) {
	difficulty := ""
	if len(args) == 1 {
		c, err := config.ParseChoice(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			fmt.Fprintln(os.Stderr, "Run 'mines difficulties' to see the available presets.")
			os.Exit(1)
		}
		difficulty = c.String()
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening results database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagClear {
		n, err := store.ClearResults(difficulty)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing results: %v\n", err)
			os.Exit(1)
		}
		logger.Info("results cleared", "difficulty", difficulty, "count", n)
		return
	}

	fd := int(os.Stdout.Fd())
	if !flagPlain && term.IsTerminal(fd) {
		width, height := 80, 24
		if w, h, sizeErr := term.GetSize(fd); sizeErr == nil {
			width, height = w, h
		}
		if difficulty == "" {
			cfg, _ := config.LoadMinesweeper("")
			if c, err := config.ParseChoice(cfg.DefaultDifficulty); err == nil {
				difficulty = c.String()
			}
		}
		if err := tui.RunStats(store, difficulty, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := printStats(store, difficulty); err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving results: %v\n", err)
		os.Exit(1)
	}
}

// printStats writes the per-difficulty summary and, for a single
// difficulty, its ten best times.
func printStats(store *storage.Store, difficulty string) error {
	var all []storage.Stats
	if difficulty == "" {
		s, err := store.AllStats()
		if err != nil {
			return err
		}
		all = s
	} else {
		s, err := store.DifficultyStats(difficulty)
		if err != nil {
			return err
		}
		all = []storage.Stats{s}
	}

	fmt.Println("Statistics")
	fmt.Println()

	if len(all) == 0 || (len(all) == 1 && all[0].Played == 0) {
		fmt.Println("No results recorded yet.")
		fmt.Println()
		fmt.Println("Play 'mines play' to record the first one!")
		return nil
	}

	fmt.Printf("  %-10s  %6s  %4s  %4s  %6s  %6s  %7s\n", "Difficulty", "Played", "Won", "Lost", "Rate", "Best", "Average")
	fmt.Printf("  %-10s  %6s  %4s  %4s  %6s  %6s  %7s\n", "----------", "------", "---", "----", "----", "----", "-------")
	for _, s := range all {
		best := "-"
		if s.Won > 0 {
			best = fmt.Sprintf("%ds", s.BestSeconds)
		}
		fmt.Printf("  %-10s  %6d  %4d  %4d  %5.0f%%  %6s  %6.1fs\n",
			s.Difficulty, s.Played, s.Won, s.Lost(), s.WinRate()*100, best, s.AvgSeconds)
	}

	if difficulty == "" {
		return nil
	}

	best, err := store.BestTimes(difficulty, 10)
	if err != nil {
		return err
	}
	if len(best) == 0 {
		return nil
	}

	fmt.Println()
	fmt.Printf("Best times - %s\n", difficulty)
	fmt.Println()
	fmt.Printf("  %-4s  %-7s  %s\n", "Rank", "Time", "Date")
	fmt.Printf("  %-4s  %-7s  %s\n", "----", "----", "----")
	for i, r := range best {
		fmt.Printf("  %-4d  %-7s  %s\n", i+1, fmt.Sprintf("%ds", r.Seconds), r.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
	return nil
}
