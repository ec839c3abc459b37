package puzzle_test

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/cogito/internal/games/cogito/history"
	"github.com/vovakirdan/cogito/internal/games/cogito/levels"
	"github.com/vovakirdan/cogito/internal/games/cogito/progress"
	"github.com/vovakirdan/cogito/internal/games/cogito/puzzle"
	"github.com/vovakirdan/cogito/internal/games/cogito/tile"
)

type board struct {
	grid     *tile.Grid
	start    tile.Coord
	mech     *puzzle.Mechanics
	counters *progress.Counters
	hist     *history.Stack
}

func newBoard(t *testing.T, shifts int, ground, obstacles []string) *board {
	t.Helper()
	return newBoardWithLogger(t, shifts, log.New(io.Discard), ground, obstacles)
}

func newBoardWithLogger(t *testing.T, shifts int, logger *log.Logger, ground, obstacles []string) *board {
	t.Helper()
	ts, err := levels.DefaultTileset()
	if err != nil {
		t.Fatalf("DefaultTileset: %v", err)
	}
	g, start, err := levels.FromRows(ts, ground, obstacles)
	if err != nil {
		t.Fatalf("FromRows: %v", err)
	}
	m := puzzle.New(g, logger)
	c := progress.New(progress.Config{Shifts: shifts, StaminaMax: 3}, m.CountChallengeable, nil)
	m.Bind(c)
	m.Setup()
	return &board{grid: g, start: start, mech: m, counters: c, hist: history.NewStack(g)}
}

func (b *board) begin() *history.Record {
	return b.hist.BeginOrMerge(false, tile.Coord{}, history.Before{})
}

func TestAreaShiftAsymmetry(t *testing.T) {
	// Every tier on every neighbour; the actor stands in the middle of each
	// 3x3 block.
	tiers := []struct {
		glyph        string
		ty           tile.Type
		orthoConvert bool
		diagConvert  bool
	}{
		{"C", tile.CogCrystal, true, true},
		{"F", tile.ReinforcedCogCrystal, true, false},
		{"D", tile.DeinforcedCogCrystal, true, true},
	}

	for _, tier := range tiers {
		t.Run(tier.ty.String(), func(t *testing.T) {
			g := tier.glyph
			b := newBoard(t, 1,
				[]string{"...", "...", "..G"},
				[]string{g + g + g, g + "@" + g, g + g + g},
			)
			b.begin()
			res := b.mech.ApplyAreaShift(b.start, b.hist)

			for _, d := range tile.Orthogonal {
				got := b.grid.Get(tile.Obstacle, b.start.Add(d)).Type
				want := tier.ty
				if tier.orthoConvert {
					want = tile.Cog
				}
				if got != want {
					t.Errorf("orthogonal %v = %v, want %v", d, got, want)
				}
			}
			for _, d := range tile.Diagonal {
				got := b.grid.Get(tile.Obstacle, b.start.Add(d)).Type
				want := tier.ty
				if tier.diagConvert {
					want = tile.Cog
				}
				if got != want {
					t.Errorf("diagonal %v = %v, want %v", d, got, want)
				}
			}

			wantConverted := 0
			if tier.orthoConvert {
				wantConverted += 4
			}
			if tier.diagConvert {
				wantConverted += 4
			}
			if res.Converted != wantConverted {
				t.Errorf("Converted = %d, want %d", res.Converted, wantConverted)
			}
			if got := len(b.hist.Top().Tiles); got != wantConverted {
				t.Errorf("snapshots = %d, want %d", got, wantConverted)
			}
		})
	}
}

func TestAreaShiftSnapshotsBeforeMutation(t *testing.T) {
	b := newBoard(t, 1, []string{"...", "..G"}, []string{"@F.", "..."})
	rec := b.begin()
	b.mech.ApplyAreaShift(b.start, b.hist)

	if len(rec.Tiles) != 1 {
		t.Fatalf("expected one snapshot, got %d", len(rec.Tiles))
	}
	snap := rec.Tiles[0]
	if snap.Pos != tile.C(1, 0) || snap.Obstacle.Type != tile.ReinforcedCogCrystal {
		t.Errorf("snapshot = %+v, want reinforced crystal at (1,0)", snap)
	}
}

func TestLeverToggleIsOneShot(t *testing.T) {
	// Two levers touch the actor; every lever and conveyor flips once.
	b := newBoard(t, 1,
		[]string{"..>", "...", "<.G"},
		[]string{"l..", "@l.", "..."},
	)
	rec := b.begin()
	res := b.mech.ApplyAreaShift(b.start, b.hist)

	if !res.LeversToggled {
		t.Fatal("expected levers toggled")
	}
	if got := b.grid.Count(tile.Obstacle, tile.LeverRight); got != 2 {
		t.Errorf("right levers = %d, want 2", got)
	}
	if got := b.grid.Get(tile.Ground, tile.C(2, 0)).Facing; got != tile.Left {
		t.Errorf("conveyor (2,0) faces %v, want Left", got)
	}
	if got := b.grid.Get(tile.Ground, tile.C(0, 2)).Facing; got != tile.Right {
		t.Errorf("conveyor (0,2) faces %v, want Right", got)
	}
	// 2 levers + 2 conveyors
	if len(rec.Tiles) != 4 {
		t.Errorf("snapshots = %d, want 4", len(rec.Tiles))
	}
}

func TestToggleLeversIsSelfInverse(t *testing.T) {
	b := newBoard(t, 0,
		[]string{"><v^", ")...", "...G"},
		[]string{"@l..", "....", "r..."},
	)
	before := b.grid.Clone()

	b.mech.ToggleLevers(nil)
	if b.grid.Equal(before) {
		t.Fatal("toggle changed nothing")
	}
	if got := b.grid.Get(tile.Ground, tile.C(0, 1)).Facing; got != tile.Right {
		t.Errorf("evil conveyor turned to %v, levers must not move it", got)
	}
	b.mech.ToggleLevers(nil)
	if !b.grid.Equal(before) {
		t.Error("toggling twice should restore the board")
	}
}

func TestLeversFaceLeftAfterSetup(t *testing.T) {
	b := newBoard(t, 0, []string{"...", "..G"}, []string{"@rr", "l.."})
	if got := b.grid.Count(tile.Obstacle, tile.LeverRight); got != 0 {
		t.Errorf("right levers after setup = %d, want 0", got)
	}
	if got := b.grid.Count(tile.Obstacle, tile.LeverLeft); got != 3 {
		t.Errorf("left levers after setup = %d, want 3", got)
	}
}

func TestCandyClearsOrthogonalRocks(t *testing.T) {
	tests := []struct {
		name      string
		candies   int
		wantRocks int
	}{
		{"without candy", 0, 5},
		{"with candy", 1, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newBoard(t, 1,
				[]string{"...", "...", "..G"},
				[]string{"RRR", "R@R", "..."},
			)
			b.counters.SetCandies(tt.candies)
			b.begin()
			b.mech.ApplyAreaShift(b.start, b.hist)

			// Diagonal rocks are never touched.
			if got := b.grid.Count(tile.Obstacle, tile.Rock); got != tt.wantRocks {
				t.Errorf("rocks left = %d, want %d", got, tt.wantRocks)
			}
			if b.counters.Candies() != 0 {
				t.Errorf("candies = %d, want 0", b.counters.Candies())
			}
		})
	}
}

func TestShiftLossCheck(t *testing.T) {
	tests := []struct {
		name   string
		shifts int
		rows   []string
		lost   bool
	}{
		{"budget left", 2, []string{"@C..F"}, false},
		{"crystal out of reach", 0, []string{"@C..F"}, true},
		{"all converted", 0, []string{"@C..."}, false},
		{"diagonal reinforced stays", 0, []string{"@....", ".F..."}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ground := make([]string, len(tt.rows))
			for i := range ground {
				ground[i] = "....."
			}
			ground[len(ground)-1] = "....G"
			b := newBoard(t, tt.shifts, ground, tt.rows)
			b.begin()
			res := b.mech.ApplyAreaShift(b.start, b.hist)
			if res.Lost != tt.lost {
				t.Errorf("Lost = %v, want %v", res.Lost, tt.lost)
			}
		})
	}
}

func TestGoalLightsOnLastCog(t *testing.T) {
	// Ten cogs in total: nine already challenged, the tenth lights the goal
	// and undoing it darkens the goal again.
	b := newBoard(t, 0,
		[]string{"............", "...........G"},
		[]string{"@cccccccccc.", "............"},
	)
	goal, ok := b.mech.Goal()
	if !ok || goal != tile.C(11, 1) {
		t.Fatalf("goal = %v, %v", goal, ok)
	}
	if b.counters.Total() != 10 {
		t.Fatalf("total = %d, want 10", b.counters.Total())
	}

	b.counters.Challenge(9)
	b.mech.RefreshGoal()
	if got := b.grid.Get(tile.Ground, goal).Type; got != tile.GoalOff {
		t.Fatalf("goal at 9/10 = %v, want GoalOff", got)
	}

	rec := b.begin()
	b.mech.Challenge(1, b.hist)
	if got := b.grid.Get(tile.Ground, goal).Type; got != tile.GoalOn {
		t.Fatalf("goal at 10/10 = %v, want GoalOn", got)
	}
	if !rec.Has(goal) {
		t.Error("goal should be snapshotted before lighting")
	}

	b.mech.Unchallenge(1)
	if b.counters.Challenged() != 9 {
		t.Errorf("challenged = %d, want 9", b.counters.Challenged())
	}
	if got := b.grid.Get(tile.Ground, goal).Type; got != tile.GoalOff {
		t.Errorf("goal after undo = %v, want GoalOff", got)
	}
}

func TestGoalNormalisedAtSetup(t *testing.T) {
	tests := []struct {
		name      string
		ground    string
		obstacles string
		want      tile.Type
	}{
		{"lit goal darkened while cogs remain", "..g", "@c.", tile.GoalOff},
		{"dark goal lit with nothing to collect", "..G", "@..", tile.GoalOn},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newBoard(t, 0, []string{tt.ground}, []string{tt.obstacles})
			if got := b.grid.Get(tile.Ground, tile.C(2, 0)).Type; got != tt.want {
				t.Errorf("goal = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSetupDiagnostics(t *testing.T) {
	tests := []struct {
		name   string
		ground string
		want   string
	}{
		{"no goal", ".1.1", "no goal"},
		{"two goals", "G..g", "more than one goal"},
		{"lonely teleporter", "G.2.", "no sibling"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			b := newBoardWithLogger(t, 0, log.New(&buf), []string{tt.ground}, []string{".@.."})
			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("log %q does not mention %q", buf.String(), tt.want)
			}
			// Degraded levels keep working.
			_ = b.mech.ApplyAreaShift(b.start, b.hist)
		})
	}
}

func TestTeleportDestination(t *testing.T) {
	b := newBoard(t, 0,
		[]string{"1.2.1.2.G"},
		[]string{"@........"},
	)
	tests := []struct {
		from tile.Coord
		want tile.Coord
		ok   bool
	}{
		{tile.C(0, 0), tile.C(4, 0), true},
		{tile.C(4, 0), tile.C(0, 0), true},
		{tile.C(2, 0), tile.C(6, 0), true},
		{tile.C(1, 0), tile.Coord{}, false},
	}
	for _, tt := range tests {
		got, ok := b.mech.TeleportDestination(tt.from)
		if ok != tt.ok || got != tt.want {
			t.Errorf("TeleportDestination(%v) = %v, %v; want %v, %v", tt.from, got, ok, tt.want, tt.ok)
		}
	}
}
