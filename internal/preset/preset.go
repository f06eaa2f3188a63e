// Package preset loads declarative dashboard definitions from YAML
// files: the layout mode, grid shape, the widget roster with
// placements, and optional dock trees.
package preset

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Dicklesworthstone/tessera/internal/geom"
	"github.com/Dicklesworthstone/tessera/internal/layout"
)

// CellDef is a grid placement in a preset file.
type CellDef struct {
	Row int `yaml:"row"`
	Col int `yaml:"col"`
}

// RectDef is a free-canvas placement in a preset file.
type RectDef struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
	W int `yaml:"w"`
	H int `yaml:"h"`
}

// WidgetDef declares one widget and its placement. At most one of
// Cell, Rect, Dock should be set; none means auto-placement.
type WidgetDef struct {
	ID    string   `yaml:"id"`
	Title string   `yaml:"title"`
	Icon  string   `yaml:"icon,omitempty"`
	Cell  *CellDef `yaml:"cell,omitempty"`
	Rect  *RectDef `yaml:"rect,omitempty"`
	Dock  string   `yaml:"dock,omitempty"`
}

// Placement converts the definition into an engine placement.
func (d WidgetDef) Placement() layout.Placement {
	switch {
	case d.Cell != nil:
		return layout.CellOf(d.Cell.Row, d.Cell.Col)
	case d.Rect != nil:
		return layout.RectOf(geom.NewRect(d.Rect.X, d.Rect.Y, d.Rect.W, d.Rect.H))
	case d.Dock != "":
		return layout.DockAt(layout.DockPosition(d.Dock))
	default:
		return layout.Auto()
	}
}

// GridDef is the grid shape for grid presets.
type GridDef struct {
	Rows        int     `yaml:"rows"`
	Cols        int     `yaml:"cols"`
	MinTrackPct float64 `yaml:"min_track_pct,omitempty"`
}

// Preset is one dashboard definition.
type Preset struct {
	ID      string           `yaml:"id"`
	Title   string           `yaml:"title"`
	Icon    string           `yaml:"icon,omitempty"`
	Layout  string           `yaml:"layout"` // grid, free or dock
	Grid    GridDef          `yaml:"grid,omitempty"`
	Widgets []WidgetDef      `yaml:"widgets"`
	Tree    *layout.DockSpec `yaml:"tree,omitempty"` // dock layouts only
}

// Parse decodes and validates a preset document.
func Parse(data []byte) (*Preset, error) {
	var p Preset
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing preset: %w", err)
	}
	if p.ID == "" {
		return nil, fmt.Errorf("preset missing id")
	}
	switch p.Layout {
	case "", "grid":
		p.Layout = "grid"
		if p.Grid.Rows == 0 {
			p.Grid.Rows = 2
		}
		if p.Grid.Cols == 0 {
			p.Grid.Cols = 2
		}
	case "free", "dock":
	default:
		return nil, fmt.Errorf("preset %s: unknown layout %q", p.ID, p.Layout)
	}
	seen := make(map[string]bool, len(p.Widgets))
	for _, w := range p.Widgets {
		if w.ID == "" {
			return nil, fmt.Errorf("preset %s: widget missing id", p.ID)
		}
		if seen[w.ID] {
			return nil, fmt.Errorf("preset %s: duplicate widget id %q", p.ID, w.ID)
		}
		seen[w.ID] = true
		if w.Dock != "" && !layout.DockPosition(w.Dock).Valid() {
			return nil, fmt.Errorf("preset %s: widget %s: unknown dock position %q", p.ID, w.ID, w.Dock)
		}
	}
	return &p, nil
}

// Load reads one preset file.
func Load(path string) (*Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// LoadDir reads every .yaml/.yml preset in dir, sorted by filename. A
// missing directory yields an empty list; individual malformed files
// fail the whole load so broken presets surface instead of silently
// vanishing.
func LoadDir(dir string) ([]*Preset, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext == ".yaml" || ext == ".yml" {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	out := make([]*Preset, 0, len(names))
	for _, name := range names {
		p, err := Load(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}
