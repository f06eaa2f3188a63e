// Package layout implements the three placement engines a dashboard can
// own: a track-based grid, a free-form canvas, and a docking split tree.
// Engines own geometry and occupancy; widget mode transitions live in
// the widget package and call back into their engine through the
// dashboard surface.
package layout

import (
	"fmt"

	"github.com/Dicklesworthstone/tessera/internal/geom"
	"github.com/Dicklesworthstone/tessera/internal/widget"
)

// Cell addresses one grid position. Row and Col are zero-based.
type Cell struct {
	Row int
	Col int
}

func (c Cell) String() string { return fmt.Sprintf("%d:%d", c.Row, c.Col) }

// DockPosition selects which side of the dock tree a new pane splits
// into. Center panes stack widgets as tabs instead of splitting.
type DockPosition string

const (
	DockLeft   DockPosition = "left"
	DockRight  DockPosition = "right"
	DockTop    DockPosition = "top"
	DockBottom DockPosition = "bottom"
	DockCenter DockPosition = "center"
)

// Valid reports whether p is one of the recognized dock positions.
func (p DockPosition) Valid() bool {
	switch p {
	case DockLeft, DockRight, DockTop, DockBottom, DockCenter:
		return true
	}
	return false
}

type placementKind uint8

const (
	placeNone placementKind = iota
	placeCell
	placeRect
	placeDock
)

// Placement is the tagged union of the three engine-specific placement
// shapes. Exactly one variant is set; the zero value means "let the
// engine pick" (auto-placement via FindFreeSpace).
type Placement struct {
	kind placementKind
	cell Cell
	rect geom.Rect
	dock DockPosition
}

// CellOf places a widget at a grid cell.
func CellOf(row, col int) Placement {
	return Placement{kind: placeCell, cell: Cell{Row: row, Col: col}}
}

// RectOf places a widget at an absolute rectangle on a free canvas.
func RectOf(r geom.Rect) Placement {
	return Placement{kind: placeRect, rect: r}
}

// DockAt places a widget at a dock-tree position.
func DockAt(pos DockPosition) Placement {
	return Placement{kind: placeDock, dock: pos}
}

// Auto asks the engine to find free space itself.
func Auto() Placement { return Placement{} }

// IsAuto reports whether the placement leaves positioning to the engine.
func (p Placement) IsAuto() bool { return p.kind == placeNone }

// Cell returns the grid variant, if set.
func (p Placement) Cell() (Cell, bool) { return p.cell, p.kind == placeCell }

// Rect returns the free-canvas variant, if set.
func (p Placement) Rect() (geom.Rect, bool) { return p.rect, p.kind == placeRect }

// Dock returns the dock-tree variant, if set.
func (p Placement) Dock() (DockPosition, bool) { return p.dock, p.kind == placeDock }

// Engine is the polymorphic surface all three layout variants expose.
// Callers depend only on this interface, never on the concrete kind.
// Invalid placements are no-ops reported through the AddWidget result,
// not errors: a misaimed drop leaves the layout exactly as it was.
type Engine interface {
	// AddWidget attaches a widget at the given placement, or at the
	// engine's own free-space pick when the placement is Auto. Reports
	// false when the placement is invalid for this engine.
	AddWidget(w *widget.Widget, p Placement) bool

	// RemoveWidget detaches the widget from occupancy. Unknown widgets
	// are ignored.
	RemoveWidget(w *widget.Widget)

	// Widgets returns the attached widgets in layout traversal order.
	Widgets() []*widget.Widget

	// Widget looks up an attached widget by id.
	Widget(id string) (*widget.Widget, bool)

	// FindFreeSpace picks a placement for a widget wanting roughly
	// w x h cells (grid: spans, free: cells, dock: ignored). It never
	// fails; when no free region exists the fallback may overlap.
	FindFreeSpace(w, h int) Placement

	// SetBounds positions the engine's canvas in screen space.
	SetBounds(r geom.Rect)

	// Bounds returns the engine's canvas rectangle.
	Bounds() geom.Rect

	// WidgetRect resolves a widget's current on-screen rectangle.
	WidgetRect(w *widget.Widget) (geom.Rect, bool)

	// PlacementOf reports the widget's current placement in this
	// engine's own shape, suitable for re-adding after a detach.
	PlacementOf(w *widget.Widget) (Placement, bool)

	// Reset restores default geometry and persists it.
	Reset()

	// Destroy closes every attached widget and drops all occupancy.
	Destroy()
}
