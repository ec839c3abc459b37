// Package motion drives the actor across the tile grid. A Controller is a
// small state machine (Idle, Moving, Animating) advanced once per frame by
// Tick. Arriving on ice, conveyors and teleporters issues forced moves that
// merge into the record of the move that caused them, so one Undo reverses
// the whole chain.
package motion

import (
	"io"
	"math"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/cogito/internal/core"
	"github.com/vovakirdan/cogito/internal/games/cogito/history"
	"github.com/vovakirdan/cogito/internal/games/cogito/progress"
	"github.com/vovakirdan/cogito/internal/games/cogito/puzzle"
	"github.com/vovakirdan/cogito/internal/games/cogito/tile"
)

// State of the controller.
type State int

const (
	Idle State = iota
	Moving
	Animating
)

func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Moving:
		return "Moving"
	case Animating:
		return "Animating"
	}
	return "Unknown"
}

// Outcome of the level session.
type Outcome int

const (
	Playing Outcome = iota
	Won
	Lost
)

func (o Outcome) String() string {
	switch o {
	case Playing:
		return "Playing"
	case Won:
		return "Won"
	case Lost:
		return "Lost"
	}
	return "Unknown"
}

// Vec is the interpolated actor position in cells.
type Vec struct {
	X, Y float64
}

func vecOf(c tile.Coord) Vec {
	return Vec{X: float64(c.X), Y: float64(c.Y)}
}

// Config tunes movement.
type Config struct {
	Speed      float64 // cells per second
	Epsilon    float64 // snap distance, in cells
	HoldToMove bool    // a held direction keeps walking
	Drown      bool    // filling stamina on water loses the level
}

// DefaultConfig returns the standard movement settings.
func DefaultConfig() Config {
	return Config{
		Speed:   4.6875,
		Epsilon: 0.0625,
	}
}

// Level is what a controller needs to start a session.
type Level struct {
	Grid         *tile.Grid
	Start        tile.Coord
	Shifts       int
	StaminaMax   int
	StaminaFloor int
}

// Stats counts player actions for the completion log.
type Stats struct {
	Moves      int
	Undos      int
	ShiftsUsed int
}

// Controller owns one level session: the grid, its counters and history.
type Controller struct {
	cfg      Config
	grid     *tile.Grid
	mech     *puzzle.Mechanics
	counters *progress.Counters
	hist     *history.Stack
	fx       Effects
	log      *log.Logger

	state   State
	outcome Outcome

	pos        Vec
	cell       tile.Coord // cell being left while Moving
	target     tile.Coord
	delta      tile.Coord // displacement of the last move
	facingLeft bool

	pending    tile.Dir
	hasPending bool

	chain       bool // next successful move merges into the top record
	teleported  bool // the last move was a teleport jump
	anim        string
	pendingLoss bool

	stats Stats
}

// New creates a controller for lvl. Call Start before the first Update.
func New(lvl Level, cfg Config, fx Effects, logger *log.Logger) *Controller {
	if fx == nil {
		fx = NopEffects{}
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if cfg.Speed <= 0 {
		cfg.Speed = DefaultConfig().Speed
	}
	if cfg.Epsilon <= 0 {
		cfg.Epsilon = DefaultConfig().Epsilon
	}

	mech := puzzle.New(lvl.Grid, logger)
	counters := progress.New(progress.Config{
		Shifts:       lvl.Shifts,
		StaminaMax:   lvl.StaminaMax,
		StaminaFloor: lvl.StaminaFloor,
	}, mech.CountChallengeable, fx)
	mech.Bind(counters)

	return &Controller{
		cfg:      cfg,
		grid:     lvl.Grid,
		mech:     mech,
		counters: counters,
		hist:     history.NewStack(lvl.Grid),
		fx:       fx,
		log:      logger,
		cell:     lvl.Start,
		target:   lvl.Start,
		pos:      vecOf(lvl.Start),
	}
}

// Start runs the load-time checks and settles the actor on the start cell.
func (c *Controller) Start() {
	c.mech.Setup()
	c.counters.SetStamina(c.counters.StaminaMax())
	c.fx.SetTimeScale(1)
	c.delta = tile.Coord{}
	c.arrive(false)
}

// CurrentState returns the state machine state.
func (c *Controller) CurrentState() State { return c.state }

// Outcome reports whether the level is still being played.
func (c *Controller) Outcome() Outcome { return c.outcome }

// RemainingShifts returns the paradigm shifts left.
func (c *Controller) RemainingShifts() int { return c.counters.Shifts() }

// ChallengedCount returns the cogs collected so far.
func (c *Controller) ChallengedCount() int { return c.counters.Challenged() }

// Counters exposes the level counters for display.
func (c *Controller) Counters() *progress.Counters { return c.counters }

// Grid returns the level grid.
func (c *Controller) Grid() *tile.Grid { return c.grid }

// Cell returns the cell the actor occupies, or is leaving while Moving.
func (c *Controller) Cell() tile.Coord { return c.cell }

// Position returns the interpolated position.
func (c *Controller) Position() Vec { return c.pos }

// FacingLeft reports the horizontal facing of the actor.
func (c *Controller) FacingLeft() bool { return c.facingLeft }

// Animation returns the animation the controller is waiting on, if any.
func (c *Controller) Animation() string { return c.anim }

// HistoryLen returns the number of undoable records.
func (c *Controller) HistoryLen() int { return c.hist.Len() }

// Stats returns the action counts of this session.
func (c *Controller) Stats() Stats { return c.stats }

func (c *Controller) before() history.Before {
	return history.Before{
		Stamina:  c.counters.Stamina(),
		Candies:  c.counters.Candies(),
		FloatAid: c.counters.FloatAid(),
	}
}

// AttemptMove starts a player move one cell in d. It reports false when the
// move is rejected or the actor is busy; a rejected move changes nothing.
func (c *Controller) AttemptMove(d tile.Dir) bool {
	if c.state != Idle || c.outcome != Playing {
		return false
	}
	c.chain = false
	if !c.attempt(c.cell.Step(d), false, false) {
		return false
	}
	c.stats.Moves++
	return true
}

// attempt validates a move to target and, unless dry, commits it.
func (c *Controller) attempt(target tile.Coord, teleport, dry bool) bool {
	if !c.legal(target, teleport) {
		if c.chain {
			c.log.Debug("chain stopped", "at", c.cell, "target", target)
		}
		c.chain = false
		return false
	}
	if dry {
		return true
	}

	d := target.Sub(c.cell)
	c.hasPending = false
	if d.X != 0 {
		c.facingLeft = d.X < 0
	}
	c.hist.BeginOrMerge(c.chain, d, c.before())
	c.target = target
	c.delta = d
	c.teleported = teleport
	if !teleport {
		c.enterMoving()
	}
	return true
}

func (c *Controller) legal(target tile.Coord, teleport bool) bool {
	if !c.grid.InBounds(target) {
		return false
	}
	if ob := c.grid.Get(tile.Obstacle, target); ob.Placed && ob.Type.Blocks() {
		return false
	}
	if teleport {
		return true
	}
	ground := c.grid.Get(tile.Ground, c.cell)
	if ground.Placed && ground.Type.IsConveyor() {
		if d, ok := tile.DirOf(target.Sub(c.cell)); ok && d == ground.Facing.Opposite() {
			return false
		}
	}
	return true
}

// enterMoving leaves the current cell toward c.target.
func (c *Controller) enterMoving() {
	leaving := c.grid.Sample(c.cell)
	arriving := c.grid.Get(tile.Ground, c.target)

	anim := AnimMove
	switch {
	case leaving.Ground.Type.IsConveyor() && c.chain:
		anim = AnimIdle
	case leaving.Ground.Type == tile.Ice:
		anim = AnimSlide
	case leaving.Ground.Type == tile.Water && arriving.Type == tile.Water:
		anim = AnimSwim
	}

	if leaving.Ground.Placed && leaving.Ground.Type == tile.Sand {
		c.hist.RecordTile(c.cell)
		if v, ok := c.grid.Catalog().Collapsed(leaving.Ground.Visual.Atlas); ok {
			c.grid.Place(tile.Ground, c.cell, v)
		} else {
			c.grid.Clear(tile.Ground, c.cell)
		}
		c.fx.SpawnFallingEffect(c.cell)
	}
	if leaving.Ground.IsVoid() && c.counters.FloatAid() {
		c.counters.SetFloatAid(false)
	}

	c.state = Moving
	c.fx.PlayAnimation(anim, 1)
}

// Tick advances the actor by dt seconds. It reports whether the controller
// is idle and ready for input after this tick.
func (c *Controller) Tick(dt float64) bool {
	switch c.state {
	case Idle:
		return true
	case Animating:
		return false
	}

	goal := vecOf(c.target)
	dx, dy := goal.X-c.pos.X, goal.Y-c.pos.Y
	dist := math.Hypot(dx, dy)
	step := c.cfg.Speed * dt
	if dist-step < c.cfg.Epsilon {
		c.arrive(true)
		return c.state == Idle
	}
	c.pos.X += dx / dist * step
	c.pos.Y += dy / dist * step
	return false
}

// arrive resolves the actor reaching c.target.
func (c *Controller) arrive(displaced bool) {
	c.pos = vecOf(c.target)
	c.cell = c.target

	c.collect()
	here := c.grid.Sample(c.cell)
	ground := here.Ground

	switch {
	case ground.Placed && ground.Type == tile.GoalOn:
		c.win()
		return
	case ground.IsVoid() && !c.counters.FloatAid():
		c.play(AnimFall, FallSpeed)
		return
	case ground.Type == tile.Ice && !c.delta.IsZero():
		if d, ok := tile.DirOf(c.delta); ok {
			c.chain = true
			if c.attempt(c.cell.Step(d), false, false) {
				return
			}
		}
	case ground.Type.IsConveyor():
		c.chain = true
		if c.attempt(c.cell.Step(ground.Facing), false, false) {
			return
		}
	case ground.Type == tile.Teleporter && c.canTeleport():
		c.play(AnimTeleport, 1)
		return
	}

	c.settle(displaced)
}

func (c *Controller) canTeleport() bool {
	if c.teleported {
		return false
	}
	if c.hist.Len() > 0 && c.delta.IsZero() {
		return false
	}
	dest, ok := c.mech.TeleportDestination(c.cell)
	if !ok {
		return false
	}
	return c.attempt(dest, true, true)
}

// collect picks up the item on the arrival cell.
func (c *Controller) collect() {
	ob := c.grid.Get(tile.Obstacle, c.cell)
	if !ob.Placed || !ob.Type.Collectible() {
		return
	}
	if ob.Type == tile.Balloon && c.counters.FloatAid() {
		return
	}

	rec := c.hist.Top()
	if rec == nil {
		rec = c.hist.BeginOrMerge(false, tile.Coord{}, c.before())
	}
	c.hist.RecordTile(c.cell)
	c.grid.Clear(tile.Obstacle, c.cell)

	switch ob.Type {
	case tile.Cog:
		rec.Challenged++
		c.mech.Challenge(1, c.hist)
	case tile.Candy:
		c.counters.AddCandy()
	case tile.Balloon:
		c.counters.SetFloatAid(true)
	}
}

// settle makes the actor idle and applies the stamina rule.
func (c *Controller) settle(displaced bool) {
	c.chain = false
	c.state = Idle
	c.anim = ""

	onWater := c.grid.Get(tile.Ground, c.cell).Type == tile.Water
	firstFrame := c.hist.Len() == 0 && c.counters.Stamina() == c.counters.StaminaMax()
	if displaced || firstFrame {
		if c.counters.ApplyStaminaRule(onWater) && c.cfg.Drown {
			c.play(AnimDrown, 1)
			return
		}
	}
	c.fx.PlayAnimation(c.idleAnimation(), 1)
}

func (c *Controller) idleAnimation() string {
	if c.counters.Submerged() || c.grid.Get(tile.Ground, c.cell).Type == tile.Water {
		return AnimSwimIdle
	}
	return AnimIdle
}

func (c *Controller) play(name string, speed float64) {
	c.state = Animating
	c.anim = name
	c.fx.PlayAnimation(name, speed)
}

func (c *Controller) win() {
	c.state = Idle
	c.outcome = Won
	c.chain = false
	c.fx.SetTimeScale(0)
	c.fx.ShowWinUI()
	c.fx.PersistProgress()
}

func (c *Controller) lose() {
	c.state = Idle
	c.outcome = Lost
	c.chain = false
	c.anim = ""
	c.fx.SetTimeScale(0)
	c.fx.ShowLoseUI()
}

// AnimationFinished tells the controller the animation it waits on is over.
func (c *Controller) AnimationFinished() {
	if c.state != Animating {
		return
	}
	name := c.anim
	c.anim = ""

	switch name {
	case AnimFall, AnimDrown:
		c.lose()
	case AnimTeleport:
		c.jump()
	case AnimParadigmShift:
		if c.pendingLoss {
			c.pendingLoss = false
			c.lose()
			return
		}
		c.arrive(false)
	default:
		c.state = Idle
	}
}

// jump completes a teleport into the record of the move that reached it.
func (c *Controller) jump() {
	dest, ok := c.mech.TeleportDestination(c.cell)
	c.chain = true
	if !ok || !c.attempt(dest, true, false) {
		c.settle(true)
		return
	}
	c.counters.SetFloatAid(false)
	c.delta = tile.Coord{}
	c.arrive(true)
}

// ApplyAreaShift spends a paradigm shift on the actor's cell. It reports
// false when the actor is busy or no shifts remain.
func (c *Controller) ApplyAreaShift() bool {
	if c.state != Idle || c.outcome != Playing || c.counters.Shifts() <= 0 {
		return false
	}
	c.chain = false
	rec := c.hist.BeginOrMerge(false, tile.Coord{}, c.before())
	c.counters.SpendShift()
	rec.UsedShift = true

	res := c.mech.ApplyAreaShift(c.cell, c.hist)
	rec.LeversToggled = res.LeversToggled
	c.pendingLoss = res.Lost
	c.delta = tile.Coord{}
	c.stats.ShiftsUsed++

	c.play(AnimParadigmShift, 1)
	return true
}

// Undo reverses the most recent record, chained moves included. It cancels
// any animation in flight and clears a loss. Undo after a win is refused.
func (c *Controller) Undo() bool {
	if c.outcome == Won || c.hist.Len() == 0 {
		return false
	}
	if c.state != Idle || c.outcome == Lost {
		c.fx.SetTimeScale(1)
		c.fx.StopAnimation()
	}

	rec, _ := c.hist.Pop()
	origin := c.target.Sub(rec.Net)

	if rec.LeversToggled {
		c.mech.ToggleLevers(nil)
	}
	c.mech.Unchallenge(rec.Challenged)
	for i := len(rec.Tiles) - 1; i >= 0; i-- {
		c.grid.Restore(rec.Tiles[i])
	}
	if rec.UsedShift {
		c.counters.RefundShift()
	}
	c.counters.SetStamina(rec.Before.Stamina)
	c.counters.SetCandies(rec.Before.Candies)
	c.counters.SetFloatAid(rec.Before.FloatAid)
	c.fx.ClearFallingEffects()

	c.cell = origin
	c.target = origin
	c.pos = vecOf(origin)
	c.delta = tile.Coord{}
	c.chain = false
	c.teleported = false
	c.hasPending = false
	c.pendingLoss = false
	c.anim = ""
	c.state = Idle
	c.outcome = Playing
	c.stats.Undos++

	c.fx.PlayAnimation(c.idleAnimation(), 1)
	return true
}

// Update is the per-frame driver: undo first, then movement, buffered
// input, fresh directions and the paradigm shift.
func (c *Controller) Update(dt float64, in Input) {
	if in.IsActionJustPressed(core.ActionUndo) && c.Undo() {
		return
	}
	if c.outcome != Playing {
		return
	}

	if c.state == Moving {
		for _, da := range dirActions {
			if in.IsActionJustPressed(da.action) {
				c.pending = da.dir
				c.hasPending = true
			}
		}
	}

	if !c.Tick(dt) {
		return
	}

	if c.hasPending {
		d := c.pending
		c.hasPending = false
		if c.AttemptMove(d) {
			return
		}
	}

	for _, da := range dirActions {
		pressed := in.IsActionJustPressed(da.action) ||
			(c.cfg.HoldToMove && in.IsActionPressed(da.action))
		if pressed && c.AttemptMove(da.dir) {
			return
		}
	}

	if in.IsActionJustPressed(core.ActionShift) {
		c.ApplyAreaShift()
	}
}
