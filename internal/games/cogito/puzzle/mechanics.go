// Package puzzle implements the level mechanics the actor triggers: the
// paradigm shift area effect, lever and conveyor toggling, teleporter
// pairing and goal lighting.
package puzzle

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/cogito/internal/games/cogito/history"
	"github.com/vovakirdan/cogito/internal/games/cogito/progress"
	"github.com/vovakirdan/cogito/internal/games/cogito/tile"
)

// Mechanics operates on one level's grid and counters.
type Mechanics struct {
	grid     *tile.Grid
	counters *progress.Counters
	log      *log.Logger

	goal    tile.Coord
	hasGoal bool
}

// New binds the mechanics to a level. Call Setup once the counters exist.
func New(grid *tile.Grid, logger *log.Logger) *Mechanics {
	return &Mechanics{grid: grid, log: logger}
}

// Bind attaches the level counters.
func (m *Mechanics) Bind(c *progress.Counters) {
	m.counters = c
}

// CountChallengeable returns the number of cogs and crystals on the level.
// It is the source of the memoized total in the counters.
func (m *Mechanics) CountChallengeable() int {
	n := m.grid.Count(tile.Obstacle, tile.Cog)
	for _, t := range []tile.Type{tile.CogCrystal, tile.ReinforcedCogCrystal, tile.DeinforcedCogCrystal} {
		n += m.grid.Count(tile.Obstacle, t)
	}
	return n
}

// Setup runs the load-time checks: it locates the single goal and lights
// or darkens it to match the cog count, faces every lever left, and reports
// teleporters that have no sibling. Problems are logged, never fatal.
func (m *Mechanics) Setup() {
	m.locateGoal()
	m.syncLevers()
	m.checkTeleporters()
}

func (m *Mechanics) locateGoal() {
	off := m.grid.FindAllByType(tile.Ground, tile.GoalOff)
	on := m.grid.FindAllByType(tile.Ground, tile.GoalOn)
	goals := append(off, on...)

	switch {
	case len(goals) > 1:
		m.log.Error("more than one goal on level", "count", len(goals), "using", goals[0])
	case len(goals) == 0:
		m.log.Error("no goal on level, it cannot be won")
		m.hasGoal = false
		return
	}

	m.goal = goals[0]
	m.hasGoal = true
	m.RefreshGoal()
}

func (m *Mechanics) syncLevers() {
	left, ok := m.grid.Catalog().VisualFor(tile.LeverLeft)
	if !ok {
		return
	}
	for _, c := range m.grid.FindAllByType(tile.Obstacle, tile.LeverRight) {
		m.grid.Place(tile.Obstacle, c, left)
	}
}

func (m *Mechanics) checkTeleporters() {
	seen := make(map[tile.Atlas]bool)
	for _, c := range m.grid.FindAllByType(tile.Ground, tile.Teleporter) {
		a := m.grid.Get(tile.Ground, c).Visual.Atlas
		if seen[a] {
			continue
		}
		seen[a] = true
		if len(m.grid.FindAllByVisual(tile.Ground, a)) < 2 {
			m.log.Warn("teleporter has no sibling and will never fire", "at", c, "atlas", a)
		}
	}
}

// Goal returns the goal cell, if the level has one.
func (m *Mechanics) Goal() (tile.Coord, bool) {
	return m.goal, m.hasGoal
}

// RefreshGoal lights the goal when every item is challenged and darkens it
// otherwise. Nothing is recorded; callers snapshot the goal first if needed.
func (m *Mechanics) RefreshGoal() {
	if !m.hasGoal || m.counters == nil {
		return
	}
	want := tile.GoalOff
	if m.counters.AllChallenged() {
		want = tile.GoalOn
	}
	if m.grid.Get(tile.Ground, m.goal).Type == want {
		return
	}
	if !m.grid.PlaceType(tile.Ground, m.goal, want) {
		m.log.Warn("tileset has no goal graphic", "type", want)
	}
}

// Challenge counts n collected cogs and lights the goal once all are in.
// The goal cell is snapshotted into rec before it changes.
func (m *Mechanics) Challenge(n int, rec history.Recorder) {
	m.counters.Challenge(n)
	if m.hasGoal && m.counters.AllChallenged() && rec != nil {
		rec.RecordTile(m.goal)
	}
	m.RefreshGoal()
}

// Unchallenge reverses Challenge, darkening the goal again if needed.
func (m *Mechanics) Unchallenge(n int) {
	m.counters.Unchallenge(n)
	m.RefreshGoal()
}

// ShiftResult reports what a paradigm shift changed.
type ShiftResult struct {
	Converted     int
	RocksRemoved  int
	LeversToggled bool
	Lost          bool
}

// ApplyAreaShift converts crystals around center into cogs. Orthogonal
// neighbours convert every crystal tier, diagonal ones all but reinforced
// crystals. A lever among the eight neighbours toggles every lever and
// conveyor once. Holding a candy eats one to clear the orthogonal rocks.
// Every cell is snapshotted into rec before it changes. The level is lost
// when no shifts remain and a crystal of any tier is still on the board.
func (m *Mechanics) ApplyAreaShift(center tile.Coord, rec history.Recorder) ShiftResult {
	var res ShiftResult
	cog, hasCog := m.grid.Catalog().VisualFor(tile.Cog)
	lever := false

	convert := func(c tile.Coord, ok func(tile.Type) bool) {
		ob := m.grid.Get(tile.Obstacle, c).Type
		if ob.IsLever() {
			lever = true
			return
		}
		if !ok(ob) || !hasCog {
			return
		}
		rec.RecordTile(c)
		m.grid.Place(tile.Obstacle, c, cog)
		res.Converted++
	}

	for _, d := range tile.Orthogonal {
		convert(center.Add(d), tile.Type.ConvertsOrthogonally)
	}
	for _, d := range tile.Diagonal {
		convert(center.Add(d), tile.Type.ConvertsDiagonally)
	}

	var rocks []tile.Coord
	for _, d := range tile.Orthogonal {
		if c := center.Add(d); m.grid.Get(tile.Obstacle, c).Type == tile.Rock {
			rocks = append(rocks, c)
		}
	}
	if len(rocks) > 0 && m.counters.SpendCandy() {
		for _, c := range rocks {
			rec.RecordTile(c)
			m.grid.Clear(tile.Obstacle, c)
		}
		res.RocksRemoved = len(rocks)
	}

	if lever {
		m.ToggleLevers(rec)
		res.LeversToggled = true
	}

	res.Lost = m.counters.Shifts() <= 0 && m.CrystalsRemain()
	if res.Converted > 0 || res.RocksRemoved > 0 || res.LeversToggled {
		m.log.Debug("paradigm shift", "at", center, "converted", res.Converted,
			"rocks", res.RocksRemoved, "levers", res.LeversToggled)
	}
	return res
}

// CrystalsRemain reports whether any crystal tier is left on the board.
func (m *Mechanics) CrystalsRemain() bool {
	for _, t := range []tile.Type{tile.CogCrystal, tile.ReinforcedCogCrystal, tile.DeinforcedCogCrystal} {
		if m.grid.Count(tile.Obstacle, t) > 0 {
			return true
		}
	}
	return false
}

// ToggleLevers flips every lever to the other side and reverses every
// conveyor. Evil conveyors ignore levers. Toggling twice is the identity.
// When rec is non-nil each touched cell is snapshotted first.
func (m *Mechanics) ToggleLevers(rec history.Recorder) {
	cat := m.grid.Catalog()
	left, okL := cat.VisualFor(tile.LeverLeft)
	right, okR := cat.VisualFor(tile.LeverRight)

	lefts := m.grid.FindAllByType(tile.Obstacle, tile.LeverLeft)
	rights := m.grid.FindAllByType(tile.Obstacle, tile.LeverRight)
	conveyors := m.grid.FindAllByType(tile.Ground, tile.Conveyor)

	if rec != nil {
		for _, group := range [][]tile.Coord{lefts, rights, conveyors} {
			for _, c := range group {
				rec.RecordTile(c)
			}
		}
	}

	if okL && okR {
		for _, c := range lefts {
			m.grid.Place(tile.Obstacle, c, right)
		}
		for _, c := range rights {
			m.grid.Place(tile.Obstacle, c, left)
		}
	}
	for _, c := range conveyors {
		f := m.grid.Get(tile.Ground, c)
		v, ok := cat.AltFacing(f.Visual.Atlas, f.Facing.Opposite())
		if !ok {
			m.log.Warn("conveyor has no reversed form", "at", c, "atlas", f.Visual.Atlas)
			continue
		}
		m.grid.Place(tile.Ground, c, v)
	}
}

// TeleportDestination returns the first other teleporter drawn with the
// same graphic as the one at from.
func (m *Mechanics) TeleportDestination(from tile.Coord) (tile.Coord, bool) {
	f := m.grid.Get(tile.Ground, from)
	if f.Type != tile.Teleporter {
		return tile.Coord{}, false
	}
	for _, c := range m.grid.FindAllByVisual(tile.Ground, f.Visual.Atlas) {
		if c != from {
			return c, true
		}
	}
	return tile.Coord{}, false
}
