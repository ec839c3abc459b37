package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/cogito/internal/games/cogito"
	"github.com/vovakirdan/cogito/internal/games/cogito/levels"
	"github.com/vovakirdan/cogito/internal/platform/tui"
	"github.com/vovakirdan/cogito/internal/storage"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List levels and their lock state",
	Long:  `Shows every level of the campaign, whether it is unlocked in the current save slot and the fewest moves it was won in.`,
	Run:   runLevels,
}

func runLevels(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig()
	if err != nil {
		fatal("%v", err)
	}
	_, campaign, err := loadCampaign(cfg)
	if err != nil {
		fatal("%v", err)
	}

	var saver cogito.Saver
	store, err := openStore(cfg)
	if err == nil {
		defer store.Close()
		saver = store.Saver(cfg.Storage.Slot)
	}

	infos, err := levelInfos(campaign, saver, store)
	if err != nil {
		fatal("%v", err)
	}

	maxIDLen := 2 // "ID" header
	for _, l := range infos {
		maxIDLen = max(maxIDLen, len(l.ID))
	}

	fmt.Printf("Levels (slot %q):\n\n", cfg.Storage.Slot)
	fmt.Printf("  %-5s  %-*s  %-20s  %-6s  %s\n", "Level", maxIDLen, "ID", "Name", "Status", "Best")
	fmt.Printf("  %-5s  %-*s  %-20s  %-6s  %s\n", "-----", maxIDLen, "--", "----", "------", "----")
	for _, l := range infos {
		best := "-"
		if l.BestMoves > 0 {
			best = fmt.Sprintf("%d", l.BestMoves)
		}
		fmt.Printf("  %-5s  %-*s  %-20s  %-6s  %s\n",
			fmt.Sprintf("%d-%d", l.World, l.Number), maxIDLen, l.ID, l.Name, l.Status(), best)
	}

	fmt.Println()
	fmt.Println("Run 'cogito play <id>' to play an unlocked level.")
}

// levelInfos joins the campaign with the slot's progress and best runs.
// A nil saver means a fresh save.
func levelInfos(campaign []levels.Level, saver cogito.Saver, store *storage.Store) ([]tui.LevelInfo, error) {
	progress := cogito.FirstProgress
	if saver != nil {
		p, err := saver.LoadProgress()
		if err != nil {
			return nil, err
		}
		progress = p
	}

	best := make(map[string]int)
	if store != nil {
		entries, err := store.BestCompletions()
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			best[e.LevelID] = e.Moves
		}
	}

	infos := make([]tui.LevelInfo, len(campaign))
	for i, l := range campaign {
		infos[i] = tui.LevelInfo{
			ID:        l.ID,
			Name:      l.Name,
			World:     l.World,
			Number:    l.Number,
			Unlocked:  cogito.Unlocked(progress, l),
			BestMoves: best[l.ID],
		}
	}
	return infos, nil
}

// pickLevel runs the level picker and returns the chosen ID, or "" when
// the player quit.
func pickLevel(campaign []levels.Level, saver cogito.Saver, store *storage.Store, width, height int) (string, error) {
	infos, err := levelInfos(campaign, saver, store)
	if err != nil {
		return "", err
	}
	return tui.RunLevelSelect(infos, width, height)
}
