package tile

import "sort"

// Default board size in cells.
const (
	DefaultWidth  = 20
	DefaultHeight = 11
)

type coordSet map[Coord]struct{}

// layerIndex keeps the coordinates of every placed graphic and type.
// It is maintained on each write so lookups never scan the board.
type layerIndex struct {
	byAtlas map[Atlas]coordSet
	byType  map[Type]coordSet
}

func newLayerIndex() layerIndex {
	return layerIndex{
		byAtlas: make(map[Atlas]coordSet),
		byType:  make(map[Type]coordSet),
	}
}

func (ix layerIndex) add(c Coord, f Face) {
	if !f.Placed {
		return
	}
	if ix.byAtlas[f.Visual.Atlas] == nil {
		ix.byAtlas[f.Visual.Atlas] = make(coordSet)
	}
	ix.byAtlas[f.Visual.Atlas][c] = struct{}{}
	if ix.byType[f.Type] == nil {
		ix.byType[f.Type] = make(coordSet)
	}
	ix.byType[f.Type][c] = struct{}{}
}

func (ix layerIndex) remove(c Coord, f Face) {
	if !f.Placed {
		return
	}
	delete(ix.byAtlas[f.Visual.Atlas], c)
	delete(ix.byType[f.Type], c)
}

// Grid is the board: two parallel layers addressed by Coord.
// Cells are stored in row-major order: index = y*W + x.
type Grid struct {
	W int
	H int

	catalog  *Catalog
	layers   [2][]Face
	indexes  [2]layerIndex
	mutation uint64
}

// NewGrid creates an empty board that resolves graphics through cat.
func NewGrid(w, h int, cat *Catalog) *Grid {
	g := &Grid{W: w, H: h, catalog: cat}
	for l := range g.layers {
		g.layers[l] = make([]Face, w*h)
		g.indexes[l] = newLayerIndex()
	}
	return g
}

// Catalog returns the catalog the grid resolves graphics with.
func (g *Grid) Catalog() *Catalog {
	return g.catalog
}

func (g *Grid) index(c Coord) int {
	return c.Y*g.W + c.X
}

// InBounds returns true if the coordinate is a valid destination.
func (g *Grid) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < g.W && c.Y >= 0 && c.Y < g.H
}

// Get returns one layer of a cell. Out of bounds cells are empty.
func (g *Grid) Get(l Layer, c Coord) Face {
	if !g.InBounds(c) {
		return Face{}
	}
	return g.layers[l][g.index(c)]
}

// Sample returns both layers at c.
func (g *Grid) Sample(c Coord) Layered {
	return Layered{
		Ground:   g.Get(Ground, c),
		Obstacle: g.Get(Obstacle, c),
		Pos:      c,
	}
}

// Set writes one layer of a cell without validation.
// Writes outside the board are ignored.
func (g *Grid) Set(l Layer, c Coord, f Face) {
	if !g.InBounds(c) {
		return
	}
	i := g.index(c)
	g.indexes[l].remove(c, g.layers[l][i])
	g.layers[l][i] = f
	g.indexes[l].add(c, f)
	g.mutation++
}

// SetGround writes the ground layer of a cell.
func (g *Grid) SetGround(c Coord, f Face) {
	g.Set(Ground, c, f)
}

// SetObstacle writes the obstacle layer of a cell.
func (g *Grid) SetObstacle(c Coord, f Face) {
	g.Set(Obstacle, c, f)
}

// Place resolves a graphic through the catalog and writes it.
func (g *Grid) Place(l Layer, c Coord, v VisualID) {
	g.Set(l, c, g.catalog.Resolve(v))
}

// PlaceType writes the first graphic of the given type.
// It reports false when the catalog has no such tile.
func (g *Grid) PlaceType(l Layer, c Coord, t Type) bool {
	v, ok := g.catalog.VisualFor(t)
	if !ok {
		return false
	}
	g.Place(l, c, v)
	return true
}

// Clear removes whatever is placed on one layer of a cell.
func (g *Grid) Clear(l Layer, c Coord) {
	g.Set(l, c, Face{})
}

// Restore writes both layers of a snapshot back verbatim.
func (g *Grid) Restore(s Layered) {
	g.Set(Ground, s.Pos, s.Ground)
	g.Set(Obstacle, s.Pos, s.Obstacle)
}

// FindAllByVisual returns every cell of a layer drawn with the given atlas
// graphic, in row-major order.
func (g *Grid) FindAllByVisual(l Layer, a Atlas) []Coord {
	return sortedCoords(g.indexes[l].byAtlas[a])
}

// FindAllByType returns every cell of a layer holding the given type,
// in row-major order.
func (g *Grid) FindAllByType(l Layer, t Type) []Coord {
	return sortedCoords(g.indexes[l].byType[t])
}

// Count returns how many cells of a layer hold the given type.
func (g *Grid) Count(l Layer, t Type) int {
	return len(g.indexes[l].byType[t])
}

// Mutations returns a counter bumped on every write.
func (g *Grid) Mutations() uint64 {
	return g.mutation
}

// Equal reports whether two boards hold identical faces on both layers.
func (g *Grid) Equal(o *Grid) bool {
	if g.W != o.W || g.H != o.H {
		return false
	}
	for l := range g.layers {
		for i := range g.layers[l] {
			if g.layers[l][i] != o.layers[l][i] {
				return false
			}
		}
	}
	return true
}

// Clone returns a deep copy sharing the catalog.
func (g *Grid) Clone() *Grid {
	c := NewGrid(g.W, g.H, g.catalog)
	for l := range g.layers {
		for i, f := range g.layers[l] {
			if f.Placed {
				c.Set(Layer(l), C(i%g.W, i/g.W), f)
			}
		}
	}
	c.mutation = 0
	return c
}

func sortedCoords(set coordSet) []Coord {
	coords := make([]Coord, 0, len(set))
	for c := range set {
		coords = append(coords, c)
	}
	sort.Slice(coords, func(i, j int) bool {
		return coords[i].Less(coords[j])
	})
	return coords
}
