package layout

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/Dicklesworthstone/tessera/internal/geom"
	"github.com/Dicklesworthstone/tessera/internal/store"
	"github.com/Dicklesworthstone/tessera/internal/widget"
)

// Track fraction floor bounds. MinTrackPct outside this range is
// clamped, never rejected.
const (
	minTrackFloor = 0.05
	minTrackCeil  = 0.45
)

// DefaultMinTrackPct is the track floor used when none is configured.
const DefaultMinTrackPct = 0.1

// GridOptions configures a Grid. The zero value is usable: no
// persistence, DefaultMinTrackPct floor.
type GridOptions struct {
	// MinTrackPct is the smallest fraction any single track may shrink
	// to. Clamped to [0.05, 0.45].
	MinTrackPct float64

	// Store receives the serialized geometry record on every mutation.
	// Nil disables persistence.
	Store store.KV

	// ScopeID namespaces the persistence key, normally the owning
	// dashboard's id.
	ScopeID string
}

var _ Engine = (*Grid)(nil)

// Grid is a fixed rows x cols track layout with independently resizable
// fractional tracks and sparse cell occupancy.
type Grid struct {
	rows, cols int

	rowSizes []float64 // len == rows, sums to 1
	colSizes []float64 // len == cols, sums to 1

	minTrackPct float64
	occupancy   map[Cell]*widget.Widget

	bounds geom.Rect
	kv     store.KV
	scope  string
}

// NewGrid builds a grid with uniform tracks and loads any previously
// persisted geometry. Non-positive dimensions are a programmer error.
func NewGrid(rows, cols int, opts GridOptions) (*Grid, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("grid dimensions must be positive, got %dx%d", rows, cols)
	}
	pct := opts.MinTrackPct
	if pct == 0 {
		pct = DefaultMinTrackPct
	}
	pct = geom.Clamp(pct, minTrackFloor, minTrackCeil)
	// A floor that cannot fit every track is lowered to the uniform
	// fraction so the sum-to-1 invariant stays satisfiable.
	if pct > 1/float64(rows) {
		pct = 1 / float64(rows)
	}
	if pct > 1/float64(cols) {
		pct = 1 / float64(cols)
	}

	g := &Grid{
		rows:        rows,
		cols:        cols,
		rowSizes:    uniformTracks(rows),
		colSizes:    uniformTracks(cols),
		minTrackPct: pct,
		occupancy:   make(map[Cell]*widget.Widget),
		kv:          opts.Store,
		scope:       opts.ScopeID,
	}
	g.Load()
	return g, nil
}

func uniformTracks(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 1 / float64(n)
	}
	return out
}

// Rows returns the fixed row count.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the fixed column count.
func (g *Grid) Cols() int { return g.cols }

// RowSizes returns a copy of the row track fractions.
func (g *Grid) RowSizes() []float64 { return append([]float64(nil), g.rowSizes...) }

// ColSizes returns a copy of the column track fractions.
func (g *Grid) ColSizes() []float64 { return append([]float64(nil), g.colSizes...) }

// MinTrackPct returns the effective track floor.
func (g *Grid) MinTrackPct() float64 { return g.minTrackPct }

// SetBounds implements Engine.
func (g *Grid) SetBounds(r geom.Rect) { g.bounds = r }

// Bounds implements Engine.
func (g *Grid) Bounds() geom.Rect { return g.bounds }

func (g *Grid) inBounds(c Cell) bool {
	return c.Row >= 0 && c.Row < g.rows && c.Col >= 0 && c.Col < g.cols
}

// AddWidget implements Engine. Cell placements land at the requested
// cell; Auto placements go through FindFreeSpace.
func (g *Grid) AddWidget(w *widget.Widget, p Placement) bool {
	if w == nil {
		return false
	}
	if p.IsAuto() {
		p = g.FindFreeSpace(1, 1)
	}
	cell, ok := p.Cell()
	if !ok {
		return false
	}
	return g.SetWidget(cell, w)
}

// SetWidget records occupancy at the cell, evicting the widget from any
// previous cell so it occupies at most one entry, then recomputes
// resize handles for every occupied cell and persists. Out-of-bounds
// cells are ignored.
func (g *Grid) SetWidget(cell Cell, w *widget.Widget) bool {
	if w == nil || !g.inBounds(cell) {
		return false
	}
	if prev, ok := g.CellOf(w); ok {
		delete(g.occupancy, prev)
	}
	g.occupancy[cell] = w
	g.refreshHandles()
	g.Save()
	return true
}

// RemoveWidget implements Engine.
func (g *Grid) RemoveWidget(w *widget.Widget) {
	cell, ok := g.CellOf(w)
	if !ok {
		return
	}
	delete(g.occupancy, cell)
	g.refreshHandles()
	g.Save()
}

// CellOf returns the cell a widget occupies.
func (g *Grid) CellOf(w *widget.Widget) (Cell, bool) {
	for c, occ := range g.occupancy {
		if occ == w {
			return c, true
		}
	}
	return Cell{}, false
}

// WidgetAt returns the occupant of a cell.
func (g *Grid) WidgetAt(cell Cell) (*widget.Widget, bool) {
	w, ok := g.occupancy[cell]
	return w, ok
}

// MoveWidget moves the occupant of from to to, swapping when the
// destination is occupied. Moves referencing an empty source, an
// out-of-bounds cell, or the same cell are no-ops.
func (g *Grid) MoveWidget(from, to Cell) {
	if !g.inBounds(from) || !g.inBounds(to) || from == to {
		return
	}
	src, ok := g.occupancy[from]
	if !ok {
		return
	}
	if dst, occupied := g.occupancy[to]; occupied {
		g.occupancy[from] = dst
	} else {
		delete(g.occupancy, from)
	}
	g.occupancy[to] = src
	g.refreshHandles()
	g.Save()
}

// Widgets implements Engine: occupants in row-major cell order.
func (g *Grid) Widgets() []*widget.Widget {
	out := make([]*widget.Widget, 0, len(g.occupancy))
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			if w, ok := g.occupancy[Cell{Row: r, Col: c}]; ok {
				out = append(out, w)
			}
		}
	}
	return out
}

// Widget implements Engine.
func (g *Grid) Widget(id string) (*widget.Widget, bool) {
	for _, w := range g.occupancy {
		if w.ID() == id {
			return w, true
		}
	}
	return nil, false
}

// FindFreeSpace implements Engine: the first row-major cell whose
// rowSpan x colSpan region is entirely unoccupied. Falls back to the
// origin when no region fits; callers must tolerate overlap.
func (g *Grid) FindFreeSpace(colSpan, rowSpan int) Placement {
	if colSpan < 1 {
		colSpan = 1
	}
	if rowSpan < 1 {
		rowSpan = 1
	}
	for r := 0; r+rowSpan <= g.rows; r++ {
		for c := 0; c+colSpan <= g.cols; c++ {
			if g.regionFree(r, c, rowSpan, colSpan) {
				return CellOf(r, c)
			}
		}
	}
	return CellOf(0, 0)
}

func (g *Grid) regionFree(row, col, rowSpan, colSpan int) bool {
	for r := row; r < row+rowSpan; r++ {
		for c := col; c < col+colSpan; c++ {
			if _, occupied := g.occupancy[Cell{Row: r, Col: c}]; occupied {
				return false
			}
		}
	}
	return true
}

// refreshHandles recomputes which resize handles each occupant exposes:
// a widget in the last column gets no right handle, last row no bottom
// handle.
func (g *Grid) refreshHandles() {
	for cell, w := range g.occupancy {
		w.SetResizeEdges(cell.Col < g.cols-1, cell.Row < g.rows-1)
	}
}

// CellRect resolves a cell to its screen rectangle inside the grid's
// bounds using the cumulative track fractions.
func (g *Grid) CellRect(cell Cell) (geom.Rect, bool) {
	if !g.inBounds(cell) || g.bounds.Empty() {
		return geom.Rect{}, false
	}
	x0, x1 := trackSpan(g.colSizes, cell.Col, g.bounds.X, g.bounds.W)
	y0, y1 := trackSpan(g.rowSizes, cell.Row, g.bounds.Y, g.bounds.H)
	return geom.NewRect(x0, y0, x1-x0, y1-y0), true
}

// trackSpan maps track index i to the [start, end) pixel span produced
// by rounding the cumulative fractions, so adjacent cells tile exactly.
func trackSpan(sizes []float64, i, origin, total int) (int, int) {
	before := 0.0
	for _, s := range sizes[:i] {
		before += s
	}
	start := origin + int(math.Round(before*float64(total)))
	end := origin + int(math.Round((before+sizes[i])*float64(total)))
	return start, end
}

// PlacementOf implements Engine.
func (g *Grid) PlacementOf(w *widget.Widget) (Placement, bool) {
	cell, ok := g.CellOf(w)
	if !ok {
		return Placement{}, false
	}
	return CellOf(cell.Row, cell.Col), true
}

// WidgetRect implements Engine.
func (g *Grid) WidgetRect(w *widget.Widget) (geom.Rect, bool) {
	cell, ok := g.CellOf(w)
	if !ok {
		return geom.Rect{}, false
	}
	return g.CellRect(cell)
}

// CellFromPoint projects a screen point into the grid. It walks the
// cumulative fractional sums so resolution stays exact under
// non-uniform track sizes. Points outside the bounds resolve to false.
func (g *Grid) CellFromPoint(x, y int) (Cell, bool) {
	if g.bounds.Empty() || !g.bounds.Contains(x, y) {
		return Cell{}, false
	}
	fx := float64(x-g.bounds.X) / float64(g.bounds.W)
	fy := float64(y-g.bounds.Y) / float64(g.bounds.H)
	return Cell{
		Row: trackIndex(g.rowSizes, fy),
		Col: trackIndex(g.colSizes, fx),
	}, true
}

// trackIndex returns the first track whose cumulative boundary reaches
// the normalized position.
func trackIndex(sizes []float64, f float64) int {
	cum := 0.0
	for i, s := range sizes {
		cum += s
		if f < cum {
			return i
		}
	}
	return len(sizes) - 1
}

// ResizeTracksFromCell converts a pixel delta into fractional track
// adjustments on the cell's right and/or bottom split. Edges without a
// next track, or a grid with no screen bounds yet, are ignored.
func (g *Grid) ResizeTracksFromCell(cell Cell, dx, dy int, right, bottom bool) {
	if !g.inBounds(cell) || g.bounds.Empty() {
		return
	}
	changed := false
	if right && cell.Col < g.cols-1 && dx != 0 {
		g.adjustSplit(g.colSizes, cell.Col, float64(dx)/float64(g.bounds.W))
		changed = true
	}
	if bottom && cell.Row < g.rows-1 && dy != 0 {
		g.adjustSplit(g.rowSizes, cell.Row, float64(dy)/float64(g.bounds.H))
		changed = true
	}
	if changed {
		g.Save()
	}
}

// adjustSplit moves the split between tracks i and i+1 by delta. The
// pair's combined size is fixed, so clamping track i to the window
// [floor, pair-floor] pins both sides at or above the track floor no
// matter how large the delta; the array is then renormalized to hold
// the sum-to-1 invariant across repeated floating-point adjustments.
func (g *Grid) adjustSplit(sizes []float64, i int, delta float64) {
	a, b := sizes[i], sizes[i+1]
	if a+b < 2*g.minTrackPct {
		return
	}
	na := geom.Clamp(a+delta, g.minTrackPct, a+b-g.minTrackPct)
	sizes[i], sizes[i+1] = na, a+b-na
	normalizeTracks(sizes)
}

func normalizeTracks(sizes []float64) {
	sum := 0.0
	for _, s := range sizes {
		sum += s
	}
	if sum <= 0 {
		copy(sizes, uniformTracks(len(sizes)))
		return
	}
	for i := range sizes {
		sizes[i] /= sum
	}
}

// Reset implements Engine: uniform tracks, persisted.
func (g *Grid) Reset() {
	g.rowSizes = uniformTracks(g.rows)
	g.colSizes = uniformTracks(g.cols)
	g.Save()
}

// Destroy implements Engine: closes every occupant and drops the map.
// Widgets are disposed regardless of mode.
func (g *Grid) Destroy() {
	for _, w := range g.Widgets() {
		w.SetSurface(nil)
		w.Close()
	}
	g.occupancy = make(map[Cell]*widget.Widget)
}

// gridState is the serialized geometry record.
type gridState struct {
	Rows     int       `json:"rows"`
	Cols     int       `json:"cols"`
	RowSizes []float64 `json:"rowSizes"`
	ColSizes []float64 `json:"colSizes"`
}

func (g *Grid) saveKey() string { return "dashboard:" + g.scope + ":grid" }

// Save writes the current geometry to the configured store. Store
// failures are swallowed: persistence is best-effort and never blocks
// a layout mutation.
func (g *Grid) Save() {
	if g.kv == nil {
		return
	}
	data, err := json.Marshal(gridState{
		Rows:     g.rows,
		Cols:     g.cols,
		RowSizes: g.rowSizes,
		ColSizes: g.colSizes,
	})
	if err != nil {
		return
	}
	_ = g.kv.Set(g.saveKey(), string(data))
}

// Load restores persisted geometry. Records whose track arrays do not
// match the current dimensions, and malformed records, are discarded
// in favor of the current (uniform) tracks. Loaded tracks are always
// renormalized.
func (g *Grid) Load() {
	if g.kv == nil {
		return
	}
	raw, ok := g.kv.Get(g.saveKey())
	if !ok {
		return
	}
	var st gridState
	if err := json.Unmarshal([]byte(raw), &st); err != nil {
		return
	}
	if len(st.RowSizes) != g.rows || len(st.ColSizes) != g.cols {
		return
	}
	for _, s := range append(append([]float64(nil), st.RowSizes...), st.ColSizes...) {
		if s <= 0 || math.IsNaN(s) || math.IsInf(s, 0) {
			return
		}
	}
	g.rowSizes = append([]float64(nil), st.RowSizes...)
	g.colSizes = append([]float64(nil), st.ColSizes...)
	normalizeTracks(g.rowSizes)
	normalizeTracks(g.colSizes)
}
