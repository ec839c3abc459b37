package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/cogito/internal/games/cogito/levels"
)

var validateCmd = &cobra.Command{
	Use:   "validate [files or ids...]",
	Short: "Check level files",
	Long: `Parses and checks levels against the tileset. Arguments are level
files, or IDs of campaign levels. Without arguments every level of the
configured campaign is checked.

Examples:
  cogito validate
  cogito validate thin_ice
  cogito validate ./my-levels/*.yaml`,
	Run: runValidate,
}

type checkedLevel struct {
	name string
	lvl  levels.Level
	err  error
}

func runValidate(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig()
	if err != nil {
		fatal("%v", err)
	}

	var ts *levels.Tileset
	if cfg.Levels.Tileset != "" {
		ts, err = levels.LoadTileset(cfg.Levels.Tileset)
	} else {
		ts, err = levels.DefaultTileset()
	}
	if err != nil {
		fatal("%v", err)
	}

	loader := campaignLoader(cfg)
	var items []checkedLevel

	if len(args) == 0 {
		campaign, err := loader.LoadAll()
		if err != nil {
			fatal("cannot load levels: %v", err)
		}
		for _, l := range campaign {
			items = append(items, checkedLevel{name: l.ID, lvl: l})
		}
	} else {
		for _, arg := range args {
			items = append(items, resolveLevel(loader, arg))
		}
	}

	failed := 0
	for _, it := range items {
		err := it.err
		if err == nil {
			err = levels.Validate(it.lvl, ts)
		}
		if err == nil {
			fmt.Printf("  ok    %s\n", it.name)
			continue
		}
		failed++
		var verr levels.ValidationError
		if errors.As(err, &verr) {
			fmt.Printf("  FAIL  %s: [%s] %s\n", it.name, verr.Code, verr.Message)
		} else {
			fmt.Printf("  FAIL  %s: %v\n", it.name, err)
		}
	}

	fmt.Printf("\n%d checked, %d failed\n", len(items), failed)
	if failed > 0 {
		os.Exit(1)
	}
}

// resolveLevel loads arg as a file when it exists on disk, else as a
// campaign level ID.
func resolveLevel(loader *levels.Loader, arg string) checkedLevel {
	if _, err := os.Stat(arg); err == nil {
		l, err := levels.LoadFile(arg)
		return checkedLevel{name: arg, lvl: l, err: err}
	}

	l, err := loader.LoadByID(arg)
	if err != nil {
		if ids, listErr := loader.ListIDs(); listErr == nil && len(ids) > 0 {
			err = fmt.Errorf("%w (known: %s)", err, strings.Join(ids, ", "))
		}
	}
	return checkedLevel{name: arg, lvl: l, err: err}
}
