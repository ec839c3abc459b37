// Package tile holds the dual-layer board: semantic tile types, the
// catalog that maps visual identities to them, and the indexed grid.
package tile

import "fmt"

// Atlas addresses one tile graphic in the tileset.
type Atlas struct {
	X int
	Y int
}

func (a Atlas) String() string {
	return fmt.Sprintf("%d:%d", a.X, a.Y)
}

// VisualID identifies the exact drawn variant of a tile: its atlas cell
// plus the alternate (rotated/flipped) form.
type VisualID struct {
	Atlas Atlas
	Alt   int
}

func (v VisualID) String() string {
	return fmt.Sprintf("%s/%d", v.Atlas, v.Alt)
}

// Orientation holds the flip flags of an alternate form.
type Orientation struct {
	FlipH     bool `yaml:"flip_h"`
	FlipV     bool `yaml:"flip_v"`
	Transpose bool `yaml:"transpose"`
}

// Facing derives the direction a tile points to from its flags.
// An unflipped tile faces right.
func (o Orientation) Facing() Dir {
	x, y := 1, 0
	if o.Transpose {
		x, y = y, x
	}
	if o.FlipH {
		x = -x
	}
	if o.FlipV {
		y = -y
	}
	d, _ := DirOf(C(x, y))
	return d
}

// Face is one layer of one cell as the engine sees it.
// The zero Face is an empty cell (nothing placed).
type Face struct {
	Type   Type
	Facing Dir
	Visual VisualID
	Placed bool
}

// IsVoid reports whether standing on this ground means falling.
func (f Face) IsVoid() bool {
	return !f.Placed || f.Type == Void
}

// Layer selects the ground or obstacle plane.
type Layer int

const (
	Ground Layer = iota
	Obstacle
)

func (l Layer) String() string {
	if l == Obstacle {
		return "obstacle"
	}
	return "ground"
}

// Layered is both layers sampled at one coordinate.
type Layered struct {
	Ground   Face
	Obstacle Face
	Pos      Coord
}
