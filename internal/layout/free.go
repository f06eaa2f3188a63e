package layout

import (
	"github.com/Dicklesworthstone/tessera/internal/geom"
	"github.com/Dicklesworthstone/tessera/internal/widget"
)

// Default widget footprint on a free canvas, in cells.
const (
	freeDefaultW = 40
	freeDefaultH = 12
)

// cascadeStep offsets the fallback origin per attached widget so
// overlapping fallback placements still fan out visibly.
const cascadeStep = 2

type freeItem struct {
	w    *widget.Widget
	rect geom.Rect
}

var _ Engine = (*Free)(nil)

// Free is the absolute-placement engine: a desktop-style canvas where
// widgets overlap freely. There is no occupancy invariant; the only
// guarantee is that free-space search never reports a point outside the
// canvas.
type Free struct {
	items  []freeItem
	bounds geom.Rect
}

// NewFree builds an empty free canvas.
func NewFree() *Free { return &Free{} }

// SetBounds implements Engine.
func (f *Free) SetBounds(r geom.Rect) {
	f.bounds = r
	for i := range f.items {
		f.items[i].rect = f.fit(f.items[i].rect)
	}
}

// Bounds implements Engine.
func (f *Free) Bounds() geom.Rect { return f.bounds }

// fit clamps a rectangle into the canvas, shrinking it when it is
// larger than the canvas itself.
func (f *Free) fit(r geom.Rect) geom.Rect {
	if f.bounds.Empty() {
		return r
	}
	if r.W > f.bounds.W {
		r.W = f.bounds.W
	}
	if r.H > f.bounds.H {
		r.H = f.bounds.H
	}
	return r.ClampInto(f.bounds)
}

// AddWidget implements Engine. Rect placements are honored as given,
// clamped into the canvas; Auto placements go through FindFreeSpace.
// Overlap with existing widgets is permitted.
func (f *Free) AddWidget(w *widget.Widget, p Placement) bool {
	if w == nil {
		return false
	}
	if p.IsAuto() {
		p = f.FindFreeSpace(freeDefaultW, freeDefaultH)
	}
	rect, ok := p.Rect()
	if !ok {
		return false
	}
	if rect.W <= 0 || rect.H <= 0 {
		return false
	}
	f.RemoveWidget(w)
	f.items = append(f.items, freeItem{w: w, rect: f.fit(rect)})
	return true
}

// RemoveWidget implements Engine.
func (f *Free) RemoveWidget(w *widget.Widget) {
	for i, it := range f.items {
		if it.w == w {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return
		}
	}
}

// Widgets implements Engine: insertion order.
func (f *Free) Widgets() []*widget.Widget {
	out := make([]*widget.Widget, len(f.items))
	for i, it := range f.items {
		out[i] = it.w
	}
	return out
}

// Widget implements Engine.
func (f *Free) Widget(id string) (*widget.Widget, bool) {
	for _, it := range f.items {
		if it.w.ID() == id {
			return it.w, true
		}
	}
	return nil, false
}

// WidgetRect implements Engine.
func (f *Free) WidgetRect(w *widget.Widget) (geom.Rect, bool) {
	for _, it := range f.items {
		if it.w == w {
			return it.rect, true
		}
	}
	return geom.Rect{}, false
}

// PlacementOf implements Engine.
func (f *Free) PlacementOf(w *widget.Widget) (Placement, bool) {
	r, ok := f.WidgetRect(w)
	if !ok {
		return Placement{}, false
	}
	return RectOf(r), true
}

// SetWidgetRect repositions an attached widget, clamped to the canvas.
func (f *Free) SetWidgetRect(w *widget.Widget, r geom.Rect) {
	for i := range f.items {
		if f.items[i].w == w {
			f.items[i].rect = f.fit(r)
			return
		}
	}
}

// FindFreeSpace implements Engine: scans candidate origins on a coarse
// step for a w x h region overlapping no existing widget. When nothing
// fits, falls back to a cascaded default origin so placement never
// fails.
func (f *Free) FindFreeSpace(w, h int) Placement {
	if w < 1 {
		w = freeDefaultW
	}
	if h < 1 {
		h = freeDefaultH
	}
	if f.bounds.Empty() {
		return RectOf(geom.NewRect(0, 0, w, h))
	}
	if w > f.bounds.W {
		w = f.bounds.W
	}
	if h > f.bounds.H {
		h = f.bounds.H
	}

	stepX := geom.ClampInt(w/2, 1, f.bounds.W)
	stepY := geom.ClampInt(h/2, 1, f.bounds.H)
	maxX := f.bounds.X + f.bounds.W - w
	maxY := f.bounds.Y + f.bounds.H - h
	for y := f.bounds.Y; y <= maxY; y += stepY {
		for x := f.bounds.X; x <= maxX; x += stepX {
			cand := geom.NewRect(x, y, w, h)
			if !f.overlapsAny(cand) {
				return RectOf(cand)
			}
		}
	}

	off := cascadeStep * (len(f.items) + 1)
	fallback := geom.NewRect(f.bounds.X+off, f.bounds.Y+off, w, h)
	return RectOf(f.fit(fallback))
}

func (f *Free) overlapsAny(r geom.Rect) bool {
	for _, it := range f.items {
		if r.Overlaps(it.rect) {
			return true
		}
	}
	return false
}

// Reset implements Engine. A free canvas has no persisted geometry to
// restore; widgets keep their rectangles.
func (f *Free) Reset() {}

// Destroy implements Engine.
func (f *Free) Destroy() {
	for _, it := range f.items {
		it.w.SetSurface(nil)
		it.w.Close()
	}
	f.items = nil
}
