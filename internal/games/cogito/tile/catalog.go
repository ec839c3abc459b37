package tile

import "fmt"

// Alternate is one rotated or flipped form of a tile graphic.
type Alternate struct {
	Orientation
	Glyph rune
}

// Def describes one tile graphic of the tileset.
type Def struct {
	Name       string
	Atlas      Atlas
	Type       Type
	Glyph      rune
	Color      string
	Alternates []Alternate
	// Collapse names the tile this one turns into once the actor leaves it.
	Collapse string
}

// Catalog is the static lookup from visual identity to semantic type and
// orientation, built once when a tileset is loaded.
type Catalog struct {
	defs    []Def
	byAtlas map[Atlas]int
	byName  map[string]int
	byType  map[Type]int
}

// NewCatalog indexes the given definitions.
// Atlas cells and names must be unique, and collapse targets must exist.
func NewCatalog(defs []Def) (*Catalog, error) {
	c := &Catalog{
		defs:    make([]Def, len(defs)),
		byAtlas: make(map[Atlas]int, len(defs)),
		byName:  make(map[string]int, len(defs)),
		byType:  make(map[Type]int),
	}
	copy(c.defs, defs)

	for i, d := range c.defs {
		if _, dup := c.byAtlas[d.Atlas]; dup {
			return nil, fmt.Errorf("tile: duplicate atlas %s (%s)", d.Atlas, d.Name)
		}
		if _, dup := c.byName[d.Name]; dup {
			return nil, fmt.Errorf("tile: duplicate tile name %q", d.Name)
		}
		c.byAtlas[d.Atlas] = i
		c.byName[d.Name] = i
		if _, seen := c.byType[d.Type]; !seen {
			c.byType[d.Type] = i
		}
	}

	for _, d := range c.defs {
		if d.Collapse == "" {
			continue
		}
		if _, ok := c.byName[d.Collapse]; !ok {
			return nil, fmt.Errorf("tile: %q collapses into unknown tile %q", d.Name, d.Collapse)
		}
	}
	return c, nil
}

// Defs returns the definitions in tileset order.
func (c *Catalog) Defs() []Def {
	return c.defs
}

// Def returns the definition drawn at the given atlas cell.
func (c *Catalog) Def(a Atlas) (Def, bool) {
	i, ok := c.byAtlas[a]
	if !ok {
		return Def{}, false
	}
	return c.defs[i], true
}

// ByName returns the definition with the given name.
func (c *Catalog) ByName(name string) (Def, bool) {
	i, ok := c.byName[name]
	if !ok {
		return Def{}, false
	}
	return c.defs[i], true
}

// Resolve turns a visual identity into a placed face.
// Unknown graphics resolve to plain floor.
func (c *Catalog) Resolve(v VisualID) Face {
	f := Face{Type: None, Facing: Right, Visual: v, Placed: true}
	d, ok := c.Def(v.Atlas)
	if !ok {
		return f
	}
	f.Type = d.Type
	if v.Alt >= 0 && v.Alt < len(d.Alternates) {
		f.Facing = d.Alternates[v.Alt].Facing()
	}
	return f
}

// VisualFor returns the first graphic of the given type.
func (c *Catalog) VisualFor(t Type) (VisualID, bool) {
	i, ok := c.byType[t]
	if !ok {
		return VisualID{}, false
	}
	return VisualID{Atlas: c.defs[i].Atlas}, true
}

// AltFacing returns the alternate of a graphic that faces d.
func (c *Catalog) AltFacing(a Atlas, d Dir) (VisualID, bool) {
	def, ok := c.Def(a)
	if !ok {
		return VisualID{}, false
	}
	if len(def.Alternates) == 0 {
		return VisualID{Atlas: a}, d == Right
	}
	for i, alt := range def.Alternates {
		if alt.Facing() == d {
			return VisualID{Atlas: a, Alt: i}, true
		}
	}
	return VisualID{}, false
}

// Collapsed returns the graphic a tile turns into when left behind.
func (c *Catalog) Collapsed(a Atlas) (VisualID, bool) {
	def, ok := c.Def(a)
	if !ok || def.Collapse == "" {
		return VisualID{}, false
	}
	target := c.defs[c.byName[def.Collapse]]
	return VisualID{Atlas: target.Atlas}, true
}

// Glyph returns the character used to draw a visual identity.
func (c *Catalog) Glyph(v VisualID) rune {
	def, ok := c.Def(v.Atlas)
	if !ok {
		return '?'
	}
	if v.Alt >= 0 && v.Alt < len(def.Alternates) && def.Alternates[v.Alt].Glyph != 0 {
		return def.Alternates[v.Alt].Glyph
	}
	return def.Glyph
}
