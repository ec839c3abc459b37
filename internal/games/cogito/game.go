// Package cogito adapts the Cogito movement engine to the terminal platform:
// it owns the campaign, plays the controller's animations on the fixed tick
// and draws the board.
package cogito

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/cogito/internal/config"
	"github.com/vovakirdan/cogito/internal/core"
	"github.com/vovakirdan/cogito/internal/games/cogito/levels"
	"github.com/vovakirdan/cogito/internal/games/cogito/motion"
)

// Options configure a new game.
type Options struct {
	Config   config.CogitoConfig
	Tileset  *levels.Tileset
	Campaign []levels.Level
	Saver    Saver
	Logger   *log.Logger
	// StartID selects the first level; empty starts at the furthest
	// unlocked one.
	StartID string
}

// Game implements core.Game for one Cogito campaign.
type Game struct {
	cfg      config.CogitoConfig
	ts       *levels.Tileset
	campaign []levels.Level
	saver    Saver
	log      *log.Logger

	progress Progress
	index    int
	runID    uuid.UUID

	ctrl *motion.Controller
	fx   *animator
	in   *frameInput

	tick     uint64
	tickSec  float64
	screenW  int
	screenH  int
	paused   bool
	finished bool
	tooSmall bool
	loadErr  error
}

// New creates a game over a loaded campaign.
func New(opts Options) (*Game, error) {
	if opts.Tileset == nil {
		return nil, fmt.Errorf("cogito: no tileset")
	}
	if len(opts.Campaign) == 0 {
		return nil, fmt.Errorf("cogito: campaign has no levels")
	}
	if opts.Saver == nil {
		opts.Saver = NewMemorySaver()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	g := &Game{
		cfg:      opts.Config,
		ts:       opts.Tileset,
		campaign: opts.Campaign,
		saver:    opts.Saver,
		log:      opts.Logger,
		fx:       newAnimator(opts.Config),
		in:       newFrameInput(opts.Config.Movement.HoldTicks),
		tickSec:  core.DefaultConfig().TickSeconds(),
	}

	p, err := g.saver.LoadProgress()
	if err != nil {
		return nil, fmt.Errorf("cogito: cannot load progress: %w", err)
	}
	g.progress = p

	g.index = g.resumeIndex()
	if opts.StartID != "" {
		i := g.indexOf(opts.StartID)
		if i < 0 {
			return nil, fmt.Errorf("level not found: %s", opts.StartID)
		}
		if !Unlocked(g.progress, g.campaign[i]) {
			return nil, fmt.Errorf("level %s is locked (progress %s)", opts.StartID, g.progress)
		}
		g.index = i
	}
	return g, nil
}

// resumeIndex is the furthest unlocked level, or the last one once the
// campaign is complete.
func (g *Game) resumeIndex() int {
	idx := 0
	for i, l := range g.campaign {
		if Unlocked(g.progress, l) {
			idx = i
		}
	}
	return idx
}

func (g *Game) indexOf(id string) int {
	for i, l := range g.campaign {
		if l.ID == id {
			return i
		}
	}
	return -1
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return "cogito"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Cogito"
}

// Reset initializes the game for a screen and (re)loads the current level.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.tick = 0
	g.tickSec = cfg.TickSeconds()
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.paused = false
	g.finished = false
	g.load(g.index)
}

// Resize updates the screen size without touching the level.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.checkScreenSize()
}

// Level returns the level being played.
func (g *Game) Level() levels.Level {
	return g.campaign[g.index]
}

// Controller exposes the running session, nil when the level failed to load.
func (g *Game) Controller() *motion.Controller {
	return g.ctrl
}

// Progress returns the campaign progress as last saved.
func (g *Game) Progress() Progress {
	return g.progress
}

func (g *Game) load(index int) {
	g.index = index
	lvl := g.campaign[index]
	if lvl.Width <= 0 {
		lvl.Width = g.cfg.Grid.Width
	}
	if lvl.Height <= 0 {
		lvl.Height = g.cfg.Grid.Height
	}

	g.fx = newAnimator(g.cfg)
	g.in.reset()
	g.runID = uuid.New()

	grid, start, err := lvl.Build(g.ts)
	if err != nil {
		g.ctrl = nil
		g.loadErr = err
		g.log.Error("cannot build level", "level", lvl.ID, "err", err)
		return
	}
	g.loadErr = nil

	staminaMax := g.cfg.Stamina.Max
	if lvl.Stamina > 0 {
		staminaMax = lvl.Stamina
	}

	g.ctrl = motion.New(motion.Level{
		Grid:         grid,
		Start:        start,
		Shifts:       lvl.Shifts,
		StaminaMax:   staminaMax,
		StaminaFloor: g.cfg.Stamina.Floor,
	}, motion.Config{
		Speed:      g.cfg.Movement.CellsPerSecond,
		Epsilon:    g.cfg.Movement.ArrivalEpsilon,
		HoldToMove: g.cfg.Movement.HoldToMove,
		Drown:      g.cfg.Stamina.Drown,
	}, g.fx, g.log.With("level", lvl.ID))
	g.ctrl.Start()
	g.checkScreenSize()

	g.log.Debug("level loaded", "level", lvl.ID, "run", g.runID)
}

func (g *Game) checkScreenSize() {
	w, h := g.boardSize()
	minW := w*g.cellWidth() + 2
	minH := h + hudRows + footerRows
	g.tooSmall = g.screenW < minW || g.screenH < minH
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.tooSmall || g.finished {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionRestart) {
		g.load(g.index)
		return core.StepResult{State: g.State()}
	}

	if g.ctrl == nil {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionConfirm) {
		switch g.ctrl.Outcome() {
		case motion.Won:
			g.nextLevel()
			return core.StepResult{State: g.State()}
		case motion.Lost:
			g.load(g.index)
			return core.StepResult{State: g.State()}
		}
	}

	g.in.observe(g.tick, in)
	g.ctrl.Update(g.tickSec, g.in)
	if g.fx.advance() {
		g.ctrl.AnimationFinished()
	}
	if g.fx.takePersist() {
		g.persist()
	}

	return core.StepResult{State: g.State()}
}

func (g *Game) nextLevel() {
	if g.index+1 >= len(g.campaign) {
		g.finished = true
		return
	}
	g.load(g.index + 1)
}

// persist records the win and moves the save forward.
func (g *Game) persist() {
	lvl := g.Level()
	stats := g.ctrl.Stats()
	err := g.saver.RecordCompletion(Completion{
		RunID:      g.runID,
		LevelID:    lvl.ID,
		World:      lvl.World,
		Level:      lvl.Number,
		Moves:      stats.Moves,
		Undos:      stats.Undos,
		ShiftsUsed: stats.ShiftsUsed,
	})
	if err != nil {
		g.log.Error("cannot record completion", "level", lvl.ID, "err", err)
	}

	next, changed := Advance(g.progress, lvl, g.campaign)
	if !changed {
		return
	}
	if err := g.saver.SaveProgress(next); err != nil {
		g.log.Error("cannot save progress", "progress", next, "err", err)
		return
	}
	g.log.Info("progress saved", "progress", next)
	g.progress = next
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	st := core.GameState{
		LevelID:  g.Level().ID,
		Paused:   g.paused || g.tooSmall,
		Finished: g.finished,
	}
	if g.ctrl != nil {
		st.Moves = g.ctrl.Stats().Moves
		st.Won = g.ctrl.Outcome() == motion.Won
		st.Lost = g.ctrl.Outcome() == motion.Lost
	}
	return st
}
