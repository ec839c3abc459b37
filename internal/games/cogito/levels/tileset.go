package levels

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/vovakirdan/cogito/internal/games/cogito/levels/formats"
	"github.com/vovakirdan/cogito/internal/games/cogito/tile"
)

//go:embed data/tileset.yaml
var defaultTilesetYAML []byte

// Tileset is a catalog plus the glyphs that place its tiles in level rows.
type Tileset struct {
	Catalog *tile.Catalog
	legend  map[tile.Layer]map[rune]tile.VisualID
}

// NewTileset builds a tileset from parsed definitions.
func NewTileset(parsed formats.Tileset) (*Tileset, error) {
	cat, err := tile.NewCatalog(parsed.Defs)
	if err != nil {
		return nil, err
	}
	return &Tileset{Catalog: cat, legend: parsed.Legend}, nil
}

// ParseTileset parses and indexes a YAML tileset.
func ParseTileset(data []byte) (*Tileset, error) {
	parsed, err := formats.ParseTileset(data)
	if err != nil {
		return nil, err
	}
	return NewTileset(parsed)
}

// DefaultTileset returns the tileset shipped with the binary.
func DefaultTileset() (*Tileset, error) {
	ts, err := ParseTileset(defaultTilesetYAML)
	if err != nil {
		return nil, fmt.Errorf("levels: embedded tileset: %w", err)
	}
	return ts, nil
}

// LoadTileset reads a tileset file from disk.
func LoadTileset(path string) (*Tileset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading tileset %s: %w", path, err)
	}
	ts, err := ParseTileset(data)
	if err != nil {
		return nil, fmt.Errorf("parsing tileset %s: %w", path, err)
	}
	return ts, nil
}

// Lookup resolves a glyph of a level row to a graphic.
func (t *Tileset) Lookup(l tile.Layer, glyph rune) (tile.VisualID, bool) {
	v, ok := t.legend[l][glyph]
	return v, ok
}

// GlyphFor returns the legend glyph that places v, used when drawing.
func (t *Tileset) GlyphFor(v tile.VisualID) rune {
	return t.Catalog.Glyph(v)
}

// ResolveRef resolves a legend reference of the form "name" or "name/alt".
func (t *Tileset) ResolveRef(ref string) (tile.VisualID, error) {
	name, altStr, hasAlt := strings.Cut(ref, "/")
	def, ok := t.Catalog.ByName(name)
	if !ok {
		return tile.VisualID{}, fmt.Errorf("unknown tile %q", name)
	}
	v := tile.VisualID{Atlas: def.Atlas}
	if hasAlt {
		alt, err := strconv.Atoi(altStr)
		if err != nil || alt < 0 || (alt > 0 && alt >= len(def.Alternates)) {
			return tile.VisualID{}, fmt.Errorf("tile %q has no alternate %q", name, altStr)
		}
		v.Alt = alt
	}
	return v, nil
}
