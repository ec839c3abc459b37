package cogito

import (
	"strings"

	"github.com/vovakirdan/cogito/internal/games/cogito/tile"
)

// Snapshot captures the observable game state for determinism tests.
type Snapshot struct {
	Tick       uint64
	LevelID    string
	Outcome    string
	State      string
	Cell       tile.Coord
	Moves      int
	Undos      int
	Shifts     int
	Challenged int
	Total      int
	Stamina    int
	Candies    int
	FloatAid   bool
	History    int
	Board      []string
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Tick:    g.tick,
		LevelID: g.Level().ID,
	}
	if g.ctrl == nil {
		return s
	}
	c := g.ctrl.Counters()
	stats := g.ctrl.Stats()
	s.Outcome = g.ctrl.Outcome().String()
	s.State = g.ctrl.CurrentState().String()
	s.Cell = g.ctrl.Cell()
	s.Moves = stats.Moves
	s.Undos = stats.Undos
	s.Shifts = c.Shifts()
	s.Challenged = c.Challenged()
	s.Total = c.Total()
	s.Stamina = c.Stamina()
	s.Candies = c.Candies()
	s.FloatAid = c.FloatAid()
	s.History = g.ctrl.HistoryLen()
	s.Board = g.boardRows()
	return s
}

// boardRows renders the grid one glyph per cell, without the actor.
func (g *Game) boardRows() []string {
	grid := g.ctrl.Grid()
	rows := make([]string, grid.H)
	var sb strings.Builder
	for y := 0; y < grid.H; y++ {
		sb.Reset()
		for x := 0; x < grid.W; x++ {
			r, _ := g.cellGlyph(grid.Sample(tile.C(x, y)))
			sb.WriteRune(r)
		}
		rows[y] = sb.String()
	}
	return rows
}
