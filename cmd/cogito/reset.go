package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var flagResetCompletions bool

var resetCmd = &cobra.Command{
	Use:   "reset-progress",
	Short: "Forget the saved progress of a slot",
	Long: `Locks every level but the first again for the selected save slot.
With --completions the log of won runs is cleared too.`,
	Run: runReset,
}

func init() {
	resetCmd.Flags().BoolVar(&flagResetCompletions, "completions", false, "Also clear the completion log")
}

func runReset(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig()
	if err != nil {
		fatal("%v", err)
	}

	store, err := openStore(cfg)
	if err != nil {
		fatal("opening database: %v", err)
	}
	defer store.Close()

	if err := store.ResetProgress(cfg.Storage.Slot); err != nil {
		fatal("%v", err)
	}
	fmt.Printf("Progress of slot %q reset.\n", cfg.Storage.Slot)

	if flagResetCompletions {
		if err := store.ClearCompletions(); err != nil {
			fatal("%v", err)
		}
		fmt.Println("Completion log cleared.")
	}
}
