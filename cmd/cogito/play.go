package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/cogito/internal/config"
	"github.com/vovakirdan/cogito/internal/core"
	"github.com/vovakirdan/cogito/internal/games/cogito"
	"github.com/vovakirdan/cogito/internal/platform/tui"
)

var flagPick bool

var playCmd = &cobra.Command{
	Use:   "play [level-id]",
	Short: "Play the campaign",
	Long: `Resume the campaign at the furthest unlocked level, or play one
unlocked level by its ID.

Controls:
  Arrows/WASD/hjkl - Move
  Space            - Paradigm shift
  Z/U/Backspace    - Undo
  R                - Restart level
  Enter            - Next level (after a win)
  P/Esc            - Pause
  Ctrl+S           - Screenshot
  Q/Ctrl+C         - Quit

Examples:
  cogito play
  cogito play sand_bridge
  cogito play --pick`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagPick, "pick", false, "Choose the level from a list")
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

func runPlay(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig()
	if err != nil {
		fatal("%v", err)
	}
	ts, campaign, err := loadCampaign(cfg)
	if err != nil {
		fatal("%v", err)
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	logger, closeLog, err := fileLogger()
	if err != nil {
		fatal("%v", err)
	}
	defer closeLog()

	// Progress is best-effort: without a database the game still runs.
	var saver cogito.Saver
	store, err := openStore(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open progress database: %v\n", err)
		logger.Warn("playing without saved progress", "err", err)
	} else {
		defer store.Close()
		saver = store.Saver(cfg.Storage.Slot)
	}

	startID := ""
	if len(args) == 1 {
		startID = args[0]
	}
	if flagPick {
		startID, err = pickLevel(campaign, saver, store, width, height)
		if err != nil {
			fatal("%v", err)
		}
		if startID == "" {
			return
		}
	}

	game, err := cogito.New(cogito.Options{
		Config:   cfg,
		Tileset:  ts,
		Campaign: campaign,
		Saver:    saver,
		Logger:   logger,
		StartID:  startID,
	})
	if err != nil {
		fatal("%v", err)
	}

	err = tui.Run(game, tui.Options{
		Config: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: flagFPS,
		},
		ScreenshotDir: filepath.Join(config.HomeDir(), "screenshots"),
		Logger:        logger,
	})
	if err != nil {
		fatal("running game: %v", err)
	}
}
