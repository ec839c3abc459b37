// Package levels provides level and tileset loading for Cogito.
// Levels are plain glyph rows; they become a tile.Grid only when built
// against a Tileset.
package levels

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/vovakirdan/cogito/internal/games/cogito/levels/formats"
)

//go:embed data/levels
var builtinFS embed.FS

// Loader handles loading levels from a directory tree.
type Loader struct {
	Root string
	fsys fs.FS
}

// NewLoader creates a loader over a directory on disk.
func NewLoader(root string) *Loader {
	return &Loader{Root: root, fsys: os.DirFS(root)}
}

// Builtin returns a loader over the campaign compiled into the binary.
func Builtin() *Loader {
	sub, err := fs.Sub(builtinFS, "data/levels")
	if err != nil {
		// data/levels is part of the embed pattern
		panic(err)
	}
	return &Loader{Root: "builtin", fsys: sub}
}

// LoadAll recursively scans and loads all level files.
// Returns levels in campaign order. Files that fail to parse are skipped;
// use Validate or LoadFile to see why.
func (l *Loader) LoadAll() ([]Level, error) {
	var levels []Level

	err := fs.WalkDir(l.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !isSupportedExtension(strings.ToLower(path.Ext(p))) {
			return nil
		}

		level, err := l.load(p)
		if err != nil {
			return nil
		}
		levels = append(levels, level)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	SortCampaign(levels)
	return levels, nil
}

func (l *Loader) load(p string) (Level, error) {
	data, err := fs.ReadFile(l.fsys, p)
	if err != nil {
		return Level{}, fmt.Errorf("reading file %s: %w", p, err)
	}
	lvl, err := Parse(data, strings.ToLower(path.Ext(p)))
	if err != nil {
		return Level{}, fmt.Errorf("parsing file %s: %w", p, err)
	}
	lvl.FilePath = path.Join(l.Root, p)
	return lvl, nil
}

// LoadFile loads a single level file from disk, outside any loader root.
func LoadFile(p string) (Level, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		return Level{}, fmt.Errorf("reading file %s: %w", p, err)
	}
	lvl, err := Parse(data, strings.ToLower(path.Ext(p)))
	if err != nil {
		return Level{}, fmt.Errorf("parsing file %s: %w", p, err)
	}
	lvl.FilePath = p
	return lvl, nil
}

// LoadByID loads a specific level by ID.
func (l *Loader) LoadByID(id string) (Level, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return Level{}, err
	}
	for _, lvl := range levels {
		if lvl.ID == id {
			return lvl, nil
		}
	}
	return Level{}, fmt.Errorf("level not found: %s", id)
}

// ListIDs returns all level IDs in campaign order.
func (l *Loader) ListIDs() ([]string, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(levels))
	for i, lvl := range levels {
		ids[i] = lvl.ID
	}
	return ids, nil
}

// SortCampaign orders levels by world, then level number, then ID.
func SortCampaign(levels []Level) {
	sort.SliceStable(levels, func(i, j int) bool {
		a, b := levels[i], levels[j]
		if a.World != b.World {
			return a.World < b.World
		}
		if a.Number != b.Number {
			return a.Number < b.Number
		}
		return a.ID < b.ID
	})
}

// Parse decodes a level file with the parser for ext.
func Parse(data []byte, ext string) (Level, error) {
	if !isSupportedExtension(ext) {
		return Level{}, fmt.Errorf("unsupported file extension: %s", ext)
	}
	parsed, err := formats.ParseYAML(data)
	if err != nil {
		return Level{}, err
	}
	return Level{
		ID:        parsed.ID,
		Name:      parsed.Name,
		World:     parsed.World,
		Number:    parsed.Number,
		Shifts:    parsed.Shifts,
		Stamina:   parsed.Stamina,
		Width:     parsed.Width,
		Height:    parsed.Height,
		Ground:    parsed.Ground,
		Obstacles: parsed.Obstacles,
		Legend:    parsed.Legend,
		Metadata:  parsed.Metadata,
	}, nil
}

func isSupportedExtension(ext string) bool {
	for _, e := range formats.FormatExtensions() {
		if ext == e {
			return true
		}
	}
	return false
}
