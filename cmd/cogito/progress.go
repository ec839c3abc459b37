package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/cogito/internal/storage"
)

var (
	flagProgressLevel string
	flagProgressLimit int
)

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show saved progress and best runs",
	Long: `Shows the furthest unlocked level of every save slot and the fewest-moves
run of every won level. With --level the runs of one level are listed.`,
	Run: runProgress,
}

func init() {
	progressCmd.Flags().StringVar(&flagProgressLevel, "level", "", "List the runs of one level ID")
	progressCmd.Flags().IntVarP(&flagProgressLimit, "limit", "n", 10, "Number of runs to show with --level")
}

func runProgress(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig()
	if err != nil {
		fatal("%v", err)
	}

	store, err := openStore(cfg)
	if err != nil {
		fatal("opening database: %v", err)
	}
	defer store.Close()

	if flagProgressLevel != "" {
		printLevelRuns(store, flagProgressLevel, flagProgressLimit)
		return
	}

	slots, err := store.Slots()
	if err != nil {
		fatal("%v", err)
	}

	fmt.Println("Save slots:")
	fmt.Println()
	if len(slots) == 0 {
		fmt.Println("  No progress saved yet. Run 'cogito play' to start.")
	}
	for _, s := range slots {
		marker := " "
		if s.Slot == cfg.Storage.Slot {
			marker = "*"
		}
		fmt.Printf(" %s %-12s  world %d, level %d  (saved %s)\n",
			marker, s.Slot, s.World, s.Level, s.UpdatedAt.Format("2006-01-02 15:04"))
	}

	best, err := store.BestCompletions()
	if err != nil {
		fatal("%v", err)
	}

	fmt.Println()
	fmt.Println("Best runs:")
	fmt.Println()
	if len(best) == 0 {
		fmt.Println("  No level won yet.")
		return
	}

	maxIDLen := 2
	for _, e := range best {
		maxIDLen = max(maxIDLen, len(e.LevelID))
	}
	fmt.Printf("  %-5s  %-*s  %5s  %5s  %6s  %s\n", "Level", maxIDLen, "ID", "Moves", "Undos", "Shifts", "Date")
	fmt.Printf("  %-5s  %-*s  %5s  %5s  %6s  %s\n", "-----", maxIDLen, "--", "-----", "-----", "------", "----")
	for _, e := range best {
		fmt.Printf("  %-5s  %-*s  %5d  %5d  %6d  %s\n",
			fmt.Sprintf("%d-%d", e.World, e.Level), maxIDLen, e.LevelID,
			e.Moves, e.Undos, e.ShiftsUsed, e.CreatedAt.Format("2006-01-02"))
	}
}

func printLevelRuns(store *storage.Store, levelID string, limit int) {
	runs, err := store.Completions(levelID, limit)
	if err != nil {
		fatal("%v", err)
	}
	fmt.Printf("Runs of %s:\n\n", levelID)
	if len(runs) == 0 {
		fmt.Println("  Not won yet.")
		return
	}
	fmt.Printf("  %-4s  %5s  %5s  %6s  %-16s  %s\n", "Rank", "Moves", "Undos", "Shifts", "Date", "Run")
	fmt.Printf("  %-4s  %5s  %5s  %6s  %-16s  %s\n", "----", "-----", "-----", "------", "----", "---")
	for i, r := range runs {
		fmt.Printf("  %-4d  %5d  %5d  %6d  %-16s  %s\n",
			i+1, r.Moves, r.Undos, r.ShiftsUsed, r.CreatedAt.Format("2006-01-02 15:04"), r.RunID.String()[:8])
	}
}
