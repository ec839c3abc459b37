package history

import (
	"testing"

	"github.com/vovakirdan/cogito/internal/games/cogito/tile"
)

// mapSampler serves fixed snapshots keyed by cell.
type mapSampler map[tile.Coord]tile.Layered

func (m mapSampler) Sample(c tile.Coord) tile.Layered {
	s := m[c]
	s.Pos = c
	return s
}

func face(t tile.Type, atlasX int) tile.Face {
	return tile.Face{Type: t, Placed: true, Visual: tile.VisualID{Atlas: tile.Atlas{X: atlasX}}}
}

func TestBeginOrMergeAccumulates(t *testing.T) {
	s := NewStack(mapSampler{})

	first := s.BeginOrMerge(false, tile.C(1, 0), Before{Stamina: 3, Candies: 1})
	merged := s.BeginOrMerge(true, tile.C(1, 0), Before{Stamina: 99})
	merged = s.BeginOrMerge(true, tile.C(0, 1), Before{Stamina: 99})

	if first != merged {
		t.Fatal("chained moves should merge into the top record")
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
	if merged.Net != tile.C(2, 1) {
		t.Errorf("Net = %v, want (2,1)", merged.Net)
	}
	if merged.Before.Stamina != 3 || merged.Before.Candies != 1 {
		t.Errorf("merge must keep the original before-counters, got %+v", merged.Before)
	}

	fresh := s.BeginOrMerge(false, tile.C(-1, 0), Before{})
	if fresh == first || s.Len() != 2 {
		t.Error("an unchained move should push a new record")
	}
}

func TestChainOnEmptyStackStartsRecord(t *testing.T) {
	s := NewStack(mapSampler{})
	r := s.BeginOrMerge(true, tile.C(0, -1), Before{})
	if r == nil || s.Len() != 1 || r.Net != tile.C(0, -1) {
		t.Errorf("chain on empty stack: len=%d rec=%+v", s.Len(), r)
	}
}

func TestRecordTileFirstMutationWins(t *testing.T) {
	at := tile.C(4, 2)
	grid := mapSampler{at: {Ground: face(tile.Sand, 3)}}
	s := NewStack(grid)

	if s.RecordTile(at) {
		t.Error("RecordTile without an active record should do nothing")
	}

	s.BeginOrMerge(false, tile.C(1, 0), Before{})
	if !s.RecordTile(at) {
		t.Fatal("first snapshot should be stored")
	}

	// The cell changes and is touched again in the same record
	grid[at] = tile.Layered{Ground: face(tile.Void, 2)}
	if s.RecordTile(at) {
		t.Error("second snapshot of the same cell should be ignored")
	}

	rec := s.Top()
	if len(rec.Tiles) != 1 {
		t.Fatalf("Tiles = %d, want 1", len(rec.Tiles))
	}
	if rec.Tiles[0].Ground.Type != tile.Sand || rec.Tiles[0].Pos != at {
		t.Errorf("snapshot should hold the original sand, got %+v", rec.Tiles[0])
	}
}

func TestSnapshotsKeepInsertionOrder(t *testing.T) {
	s := NewStack(mapSampler{})
	s.BeginOrMerge(false, tile.Coord{}, Before{})
	cells := []tile.Coord{tile.C(5, 5), tile.C(1, 1), tile.C(3, 0)}
	for _, c := range cells {
		s.RecordTile(c)
	}
	for i, c := range cells {
		if s.Top().Tiles[i].Pos != c {
			t.Errorf("Tiles[%d] = %v, want %v", i, s.Top().Tiles[i].Pos, c)
		}
	}
}

func TestPopIsLIFO(t *testing.T) {
	s := NewStack(mapSampler{})
	a := s.BeginOrMerge(false, tile.C(1, 0), Before{})
	b := s.BeginOrMerge(false, tile.C(0, 1), Before{})

	got, ok := s.Pop()
	if !ok || got != b {
		t.Error("Pop should return the newest record first")
	}
	got, ok = s.Pop()
	if !ok || got != a {
		t.Error("Pop should return the older record second")
	}
	if _, ok := s.Pop(); ok {
		t.Error("Pop on an empty stack should report false")
	}
	if s.Top() != nil {
		t.Error("Top on an empty stack should be nil")
	}
}

func TestReset(t *testing.T) {
	s := NewStack(mapSampler{})
	s.BeginOrMerge(false, tile.C(1, 0), Before{})
	s.BeginOrMerge(false, tile.C(1, 0), Before{})
	s.Reset()
	if s.Len() != 0 {
		t.Errorf("Len after Reset = %d", s.Len())
	}
}
