// cogito is a terminal puzzle game about a small robot that turns crystals
// into cogs with paradigm shifts.
//
// Usage:
//
//	cogito play [level-id]     - Play the campaign (or one unlocked level)
//	cogito levels              - List levels and their lock state
//	cogito progress            - Show saved progress and best runs
//	cogito validate [files...] - Check level files
//	cogito reset-progress      - Forget the saved progress of a slot
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--db <path>          - Set database path (default from config)
//	--config <path>      - Use a custom config YAML
//	--slot <name>        - Save slot (default from config)
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/cogito/internal/config"
	"github.com/vovakirdan/cogito/internal/games/cogito/levels"
	"github.com/vovakirdan/cogito/internal/storage"
)

var (
	// Global flags
	flagFPS      int
	flagDBPath   string
	flagConfig   string
	flagSlot     string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "cogito",
	Short: "Cogito - a tile puzzle in your terminal",
	Long: `Cogito is a grid puzzle. Walk the robot over ice, conveyors, sand and
water, spend paradigm shifts to turn crystals into cogs, collect every cog
and reach the lit goal. Every move can be undone.

Available commands:
  play            - Play the campaign
  levels          - List levels and their lock state
  progress        - Show saved progress and best runs
  validate        - Check level files
  reset-progress  - Forget the saved progress of a slot

Examples:
  cogito play
  cogito play thin_ice
  cogito play --pick
  cogito validate ./my-levels/*.yaml`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to progress database (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagSlot, "slot", "", "Save slot (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(resetCmd)
}

// newLogger builds the CLI logger writing to w.
func newLogger(w io.Writer) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("bad --log-level: %w", err)
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "cogito",
		Level:           level,
	}), nil
}

// fileLogger logs to ~/.cogito/cogito.log while the TUI owns the terminal.
// The returned closer must be called on exit.
func fileLogger() (*log.Logger, func(), error) {
	dir := config.HomeDir()
	if dir == "" {
		logger, err := newLogger(io.Discard)
		return logger, func() {}, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("cannot create %s: %w", dir, err)
	}
	f, err := os.OpenFile(filepath.Join(dir, "cogito.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}
	logger, err := newLogger(f)
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return logger, func() { f.Close() }, nil
}

func loadConfig() (config.CogitoConfig, error) {
	cfg, err := config.LoadCogito(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagDBPath != "" {
		cfg.Storage.DB = flagDBPath
	}
	if flagSlot != "" {
		cfg.Storage.Slot = flagSlot
	}
	return cfg, nil
}

// loadCampaign loads the tileset and levels the config points at, falling
// back to the built-in ones.
func loadCampaign(cfg config.CogitoConfig) (*levels.Tileset, []levels.Level, error) {
	var ts *levels.Tileset
	var err error
	if cfg.Levels.Tileset != "" {
		ts, err = levels.LoadTileset(cfg.Levels.Tileset)
	} else {
		ts, err = levels.DefaultTileset()
	}
	if err != nil {
		return nil, nil, err
	}

	campaign, err := campaignLoader(cfg).LoadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("cannot load levels: %w", err)
	}
	if len(campaign) == 0 {
		return nil, nil, fmt.Errorf("no levels found")
	}
	return ts, campaign, nil
}

// campaignLoader reads levels from the configured directory, or the
// embedded campaign when none is set.
func campaignLoader(cfg config.CogitoConfig) *levels.Loader {
	if cfg.Levels.Dir != "" {
		return levels.NewLoader(cfg.Levels.Dir)
	}
	return levels.Builtin()
}

func openStore(cfg config.CogitoConfig) (*storage.Store, error) {
	return storage.Open(cfg.Storage.DB)
}
