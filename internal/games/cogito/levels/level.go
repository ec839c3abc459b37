package levels

import (
	"fmt"

	"github.com/vovakirdan/cogito/internal/games/cogito/tile"
)

// Glyphs with a fixed meaning in level rows.
const (
	StartGlyph = '@'
	EmptyGlyph = ' '
	// NoObstacle may be used in obstacle rows for readability.
	NoObstacle = '.'
)

// Default per-level values when a file leaves them out.
const (
	DefaultStamina = 3
)

// Level represents a complete level definition.
type Level struct {
	ID        string
	Name      string
	World     int
	Number    int
	Shifts    int
	Stamina   int
	Width     int
	Height    int
	Ground    []string
	Obstacles []string
	Legend    map[tile.Layer]map[rune]string
	Metadata  map[string]string
	FilePath  string
}

// Size returns the board size, falling back to the default screen size.
func (l *Level) Size() (w, h int) {
	w, h = l.Width, l.Height
	if w <= 0 {
		w = tile.DefaultWidth
	}
	if h <= 0 {
		h = tile.DefaultHeight
	}
	return w, h
}

// StaminaMax returns the stamina cap for the level.
func (l *Level) StaminaMax() int {
	if l.Stamina <= 0 {
		return DefaultStamina
	}
	return l.Stamina
}

// Build lays the level out on a fresh grid and returns the start cell.
func (l *Level) Build(ts *Tileset) (*tile.Grid, tile.Coord, error) {
	w, h := l.Size()
	for _, rows := range [][]string{l.Ground, l.Obstacles} {
		if len(rows) > h {
			return nil, tile.Coord{}, ValidationError{
				Code:    "TOO_LARGE",
				Message: fmt.Sprintf("%d rows exceed board height %d", len(rows), h),
			}
		}
		for y, row := range rows {
			if n := len([]rune(row)); n > w {
				return nil, tile.Coord{}, ValidationError{
					Code:    "TOO_LARGE",
					Message: fmt.Sprintf("row %d is %d cells wide, board width is %d", y, n, w),
				}
			}
		}
	}

	g := tile.NewGrid(w, h, ts.Catalog)

	if err := l.place(g, ts, tile.Ground, l.Ground); err != nil {
		return nil, tile.Coord{}, err
	}
	if err := l.place(g, ts, tile.Obstacle, l.Obstacles); err != nil {
		return nil, tile.Coord{}, err
	}

	var starts []tile.Coord
	for y, row := range l.Obstacles {
		for x, r := range []rune(row) {
			if r == StartGlyph {
				starts = append(starts, tile.C(x, y))
			}
		}
	}
	switch len(starts) {
	case 0:
		return nil, tile.Coord{}, ValidationError{Code: "NO_START", Message: "no '@' start cell in obstacle rows"}
	case 1:
		return g, starts[0], nil
	default:
		return nil, tile.Coord{}, ValidationError{
			Code:    "MULTIPLE_START",
			Message: fmt.Sprintf("%d start cells, expected one", len(starts)),
		}
	}
}

func (l *Level) place(g *tile.Grid, ts *Tileset, layer tile.Layer, rows []string) error {
	for y, row := range rows {
		for x, r := range []rune(row) {
			if r == EmptyGlyph || (layer == tile.Obstacle && (r == NoObstacle || r == StartGlyph)) {
				continue
			}
			v, err := l.lookup(ts, layer, r)
			if err != nil {
				return ValidationError{
					Code:    "UNKNOWN_GLYPH",
					Message: fmt.Sprintf("%s row %d col %d: %v", layer, y, x, err),
				}
			}
			g.Place(layer, tile.C(x, y), v)
		}
	}
	return nil
}

func (l *Level) lookup(ts *Tileset, layer tile.Layer, r rune) (tile.VisualID, error) {
	if ref, ok := l.Legend[layer][r]; ok {
		return ts.ResolveRef(ref)
	}
	if v, ok := ts.Lookup(layer, r); ok {
		return v, nil
	}
	return tile.VisualID{}, fmt.Errorf("unknown glyph %q", r)
}

// FromRows builds a board sized to the given rows.
func FromRows(ts *Tileset, ground, obstacles []string) (*tile.Grid, tile.Coord, error) {
	w := 0
	for _, rows := range [][]string{ground, obstacles} {
		for _, row := range rows {
			w = max(w, len([]rune(row)))
		}
	}
	l := Level{
		Width:     w,
		Height:    max(len(ground), len(obstacles)),
		Ground:    ground,
		Obstacles: obstacles,
	}
	return l.Build(ts)
}
