// Package formats provides the YAML parsers for tilesets and level files.
package formats

import (
	"fmt"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/cogito/internal/games/cogito/tile"
)

// YAMLTileset is the on-disk shape of a tileset file.
type YAMLTileset struct {
	Tiles []YAMLTile `yaml:"tiles"`
}

// YAMLTile describes one graphic of the tileset.
type YAMLTile struct {
	Name       string          `yaml:"name"`
	Atlas      [2]int          `yaml:"atlas"`
	Type       string          `yaml:"type"`
	Layer      string          `yaml:"layer"` // "ground" or "obstacle"
	Glyph      string          `yaml:"glyph"`
	Color      string          `yaml:"color,omitempty"`
	Collapse   string          `yaml:"collapse,omitempty"`
	Alternates []YAMLAlternate `yaml:"alternates,omitempty"`
}

// YAMLAlternate is one flipped or rotated form of a graphic.
type YAMLAlternate struct {
	FlipH     bool   `yaml:"flip_h,omitempty"`
	FlipV     bool   `yaml:"flip_v,omitempty"`
	Transpose bool   `yaml:"transpose,omitempty"`
	Glyph     string `yaml:"glyph"`
}

// Tileset is a parsed tileset: the catalog definitions plus the glyph
// legend of each layer.
type Tileset struct {
	Defs   []tile.Def
	Legend map[tile.Layer]map[rune]tile.VisualID
}

// ParseTileset parses a YAML tileset file.
func ParseTileset(data []byte) (Tileset, error) {
	var yt YAMLTileset
	if err := yaml.Unmarshal(data, &yt); err != nil {
		return Tileset{}, fmt.Errorf("yaml unmarshal: %w", err)
	}

	ts := Tileset{
		Legend: map[tile.Layer]map[rune]tile.VisualID{
			tile.Ground:   {},
			tile.Obstacle: {},
		},
	}

	for _, t := range yt.Tiles {
		ty, ok := tile.ParseType(t.Type)
		if !ok {
			return Tileset{}, fmt.Errorf("tile %q: unknown type %q", t.Name, t.Type)
		}
		layer, err := parseLayer(t.Layer)
		if err != nil {
			return Tileset{}, fmt.Errorf("tile %q: %w", t.Name, err)
		}

		def := tile.Def{
			Name:     t.Name,
			Atlas:    tile.Atlas{X: t.Atlas[0], Y: t.Atlas[1]},
			Type:     ty,
			Glyph:    firstRune(t.Glyph),
			Color:    t.Color,
			Collapse: t.Collapse,
		}
		for _, a := range t.Alternates {
			def.Alternates = append(def.Alternates, tile.Alternate{
				Orientation: tile.Orientation{FlipH: a.FlipH, FlipV: a.FlipV, Transpose: a.Transpose},
				Glyph:       firstRune(a.Glyph),
			})
		}
		ts.Defs = append(ts.Defs, def)

		legend := ts.Legend[layer]
		if len(def.Alternates) == 0 {
			if err := addGlyph(legend, def.Glyph, tile.VisualID{Atlas: def.Atlas}); err != nil {
				return Tileset{}, fmt.Errorf("tile %q: %w", t.Name, err)
			}
			continue
		}
		for i, a := range def.Alternates {
			if err := addGlyph(legend, a.Glyph, tile.VisualID{Atlas: def.Atlas, Alt: i}); err != nil {
				return Tileset{}, fmt.Errorf("tile %q alternate %d: %w", t.Name, i, err)
			}
		}
	}

	return ts, nil
}

func addGlyph(legend map[rune]tile.VisualID, r rune, v tile.VisualID) error {
	if r == 0 {
		// Tiles without a glyph can only be placed by the engine
		return nil
	}
	if prev, dup := legend[r]; dup {
		return fmt.Errorf("glyph %q already used by %s", r, prev)
	}
	legend[r] = v
	return nil
}

func parseLayer(s string) (tile.Layer, error) {
	switch s {
	case "", "ground":
		return tile.Ground, nil
	case "obstacle":
		return tile.Obstacle, nil
	}
	return tile.Ground, fmt.Errorf("unknown layer %q", s)
}

func firstRune(s string) rune {
	if s == "" {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r
}

// YAMLLevel is the on-disk shape of a level file.
type YAMLLevel struct {
	ID        string            `yaml:"id"`
	Name      string            `yaml:"name"`
	World     int               `yaml:"world"`
	Level     int               `yaml:"level"`
	Shifts    int               `yaml:"shifts"`
	Stamina   int               `yaml:"stamina,omitempty"`
	Size      YAMLSize          `yaml:"size,omitempty"`
	Legend    YAMLLegend        `yaml:"legend,omitempty"`
	Ground    []string          `yaml:"ground"`
	Obstacles []string          `yaml:"obstacles"`
	Metadata  map[string]string `yaml:"metadata,omitempty"`
}

// YAMLSize represents grid dimensions.
type YAMLSize struct {
	W int `yaml:"w"`
	H int `yaml:"h"`
}

// YAMLLegend overrides glyphs per layer: glyph -> "tile" or "tile/alt".
type YAMLLegend struct {
	Ground    map[string]string `yaml:"ground,omitempty"`
	Obstacles map[string]string `yaml:"obstacles,omitempty"`
}

// Level is a parsed level ready to be built against a tileset.
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
}

// ParseYAML parses a YAML level file.
func ParseYAML(data []byte) (Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}

	lvl := Level{
		ID:        yl.ID,
		Name:      yl.Name,
		World:     yl.World,
		Number:    yl.Level,
		Shifts:    yl.Shifts,
		Stamina:   yl.Stamina,
		Width:     yl.Size.W,
		Height:    yl.Size.H,
		Ground:    yl.Ground,
		Obstacles: yl.Obstacles,
		Metadata:  yl.Metadata,
		Legend: map[tile.Layer]map[rune]string{
			tile.Ground:   {},
			tile.Obstacle: {},
		},
	}

	for glyph, ref := range yl.Legend.Ground {
		lvl.Legend[tile.Ground][firstRune(glyph)] = ref
	}
	for glyph, ref := range yl.Legend.Obstacles {
		lvl.Legend[tile.Obstacle][firstRune(glyph)] = ref
	}

	return lvl, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
