package tile

import "fmt"

// Coord is a cell address on the board.
// X increases to the right, Y increases downward (screen coordinates).
type Coord struct {
	X int
	Y int
}

// C is a convenience constructor for Coord.
func C(x, y int) Coord {
	return Coord{X: x, Y: y}
}

// String returns a string representation of the coordinate.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Add returns the sum of two coordinates.
func (c Coord) Add(o Coord) Coord {
	return Coord{X: c.X + o.X, Y: c.Y + o.Y}
}

// Sub returns c minus o.
func (c Coord) Sub(o Coord) Coord {
	return Coord{X: c.X - o.X, Y: c.Y - o.Y}
}

// Step returns the neighbouring coordinate in direction d.
func (c Coord) Step(d Dir) Coord {
	return c.Add(d.Delta())
}

// IsZero reports whether c is the origin, used for "no displacement".
func (c Coord) IsZero() bool {
	return c.X == 0 && c.Y == 0
}

// Less orders coordinates row by row, then column by column.
func (c Coord) Less(o Coord) bool {
	if c.Y != o.Y {
		return c.Y < o.Y
	}
	return c.X < o.X
}

// Dir is one of the four axis-aligned facings.
type Dir int

const (
	Right Dir = iota
	Left
	Up
	Down
)

// Dirs lists all directions in a fixed order.
var Dirs = [4]Dir{Right, Left, Up, Down}

// Delta returns the unit displacement for the direction.
func (d Dir) Delta() Coord {
	switch d {
	case Right:
		return C(1, 0)
	case Left:
		return C(-1, 0)
	case Up:
		return C(0, -1)
	case Down:
		return C(0, 1)
	}
	return Coord{}
}

// Opposite returns the reverse direction.
func (d Dir) Opposite() Dir {
	switch d {
	case Right:
		return Left
	case Left:
		return Right
	case Up:
		return Down
	default:
		return Up
	}
}

func (d Dir) String() string {
	switch d {
	case Right:
		return "right"
	case Left:
		return "left"
	case Up:
		return "up"
	case Down:
		return "down"
	}
	return "unknown"
}

// DirOf returns the direction of an axis-aligned displacement of any length.
// Diagonal or zero displacements report false.
func DirOf(delta Coord) (Dir, bool) {
	switch {
	case delta.Y == 0 && delta.X > 0:
		return Right, true
	case delta.Y == 0 && delta.X < 0:
		return Left, true
	case delta.X == 0 && delta.Y < 0:
		return Up, true
	case delta.X == 0 && delta.Y > 0:
		return Down, true
	}
	return Right, false
}

// Orthogonal and Diagonal neighbour offsets.
var (
	Orthogonal = [4]Coord{C(1, 0), C(-1, 0), C(0, -1), C(0, 1)}
	Diagonal   = [4]Coord{C(1, -1), C(-1, -1), C(1, 1), C(-1, 1)}
)
