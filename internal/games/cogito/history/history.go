// Package history records reversible moves. A record collects the "before"
// snapshot of every cell a logical player action touched, including the
// forced moves chained onto it, so one undo reverses the whole action.
package history

import "github.com/vovakirdan/cogito/internal/games/cogito/tile"

// Sampler reads the current contents of a cell.
type Sampler interface {
	Sample(c tile.Coord) tile.Layered
}

// Recorder snapshots a cell before it is mutated.
type Recorder interface {
	RecordTile(c tile.Coord) bool
}

// Before holds the counters as they were when a record began.
type Before struct {
	Stamina  int
	Candies  int
	FloatAid bool
}

// Record is one undo unit.
type Record struct {
	Net           tile.Coord
	Tiles         []tile.Layered
	Before        Before
	UsedShift     bool
	LeversToggled bool
	Challenged    int

	index map[tile.Coord]struct{}
}

func newRecord(before Before) *Record {
	return &Record{
		Before: before,
		index:  make(map[tile.Coord]struct{}),
	}
}

// Has reports whether c already has a snapshot in this record.
func (r *Record) Has(c tile.Coord) bool {
	_, ok := r.index[c]
	return ok
}

// Snapshot stores s unless its cell is already recorded.
// The first snapshot of a cell is the true before-state and always wins.
func (r *Record) Snapshot(s tile.Layered) bool {
	if r.Has(s.Pos) {
		return false
	}
	r.index[s.Pos] = struct{}{}
	r.Tiles = append(r.Tiles, s)
	return true
}

// Stack is the LIFO of records for one level session.
type Stack struct {
	grid    Sampler
	records []*Record
}

// NewStack creates an empty history over grid.
func NewStack(grid Sampler) *Stack {
	return &Stack{grid: grid}
}

// BeginOrMerge starts the record for a move displacing the actor by delta.
// With chain set and a record on the stack, the move merges into the top
// record instead; its before-counters are kept and the displacement
// accumulates.
func (s *Stack) BeginOrMerge(chain bool, delta tile.Coord, before Before) *Record {
	if chain && len(s.records) > 0 {
		top := s.records[len(s.records)-1]
		top.Net = top.Net.Add(delta)
		return top
	}
	r := newRecord(before)
	r.Net = delta
	s.records = append(s.records, r)
	return r
}

// Top returns the active record, or nil when the stack is empty.
func (s *Stack) Top() *Record {
	if len(s.records) == 0 {
		return nil
	}
	return s.records[len(s.records)-1]
}

// RecordTile snapshots c into the active record before a mutation.
// It reports false when there is no active record or c is already held.
func (s *Stack) RecordTile(c tile.Coord) bool {
	top := s.Top()
	if top == nil {
		return false
	}
	if top.Has(c) {
		return false
	}
	return top.Snapshot(s.grid.Sample(c))
}

// Pop removes and returns the most recent record.
func (s *Stack) Pop() (*Record, bool) {
	top := s.Top()
	if top == nil {
		return nil, false
	}
	s.records[len(s.records)-1] = nil
	s.records = s.records[:len(s.records)-1]
	return top, true
}

// Len returns the number of undoable records.
func (s *Stack) Len() int {
	return len(s.records)
}

// Reset drops every record.
func (s *Stack) Reset() {
	clear(s.records)
	s.records = s.records[:0]
}
