package dashboard

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Dicklesworthstone/tessera/internal/geom"
	"github.com/Dicklesworthstone/tessera/internal/layout"
	"github.com/Dicklesworthstone/tessera/internal/widget"
)

// updateMouse drives the gesture state machine. Presses may start at
// most one gesture; motion feeds the active gesture; release always
// ends it, even when the pointer left the canvas.
func (v *View) updateMouse(msg tea.MouseMsg) tea.Cmd {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return nil
		}
		return v.mousePress(msg)
	case tea.MouseActionMotion:
		v.mouseMotion(msg)
	case tea.MouseActionRelease:
		v.mouseRelease(msg)
	}
	return nil
}

func (v *View) mousePress(msg tea.MouseMsg) tea.Cmd {
	if v.show != nil {
		v.slideshowPress(msg)
		return nil
	}

	// Toolbar buttons win over everything beneath them.
	if w, a, ok := v.hitAction(msg); ok {
		return v.dispatchAction(w, a)
	}

	w, rect, ok := v.widgetAt(msg.X, msg.Y)
	if !ok {
		return nil
	}
	v.setFocus(w)
	if v.isFloating(w) {
		v.raiseFloating(w)
	}
	if w.Mode() == widget.ModeMaximized {
		return nil
	}

	if right, bottom, onHandle := v.hitResizeHandle(w, rect, msg.X, msg.Y); onHandle {
		v.gestures.Begin(&layout.Resizing{
			Widget:    w,
			Origin:    geom.Point{X: msg.X, Y: msg.Y},
			StartRect: rect,
			Right:     right,
			Bottom:    bottom,
		})
		return nil
	}

	if v.onTitleBar(w, rect, msg) && w.Draggable() {
		g := &layout.Dragging{
			Widget: w,
			Origin: geom.Point{X: msg.X, Y: msg.Y},
			Grab:   geom.Point{X: msg.X - rect.X, Y: msg.Y - rect.Y},
			Ghost:  rect,
		}
		if w.Mode() == widget.ModeDocked {
			if grid, isGrid := v.engine.(*layout.Grid); isGrid {
				if cell, inCell := grid.CellOf(w); inCell {
					g.FromCell = cell
					g.HasCell = true
				}
			}
		}
		v.gestures.Begin(g)
	}
	return nil
}

func (v *View) mouseMotion(msg tea.MouseMsg) {
	p := geom.Point{X: msg.X, Y: msg.Y}

	if g, ok := v.gestures.Dragging(); ok {
		g.MoveTo(p)
		if g.Widget.Mode() == widget.ModeFloating {
			// Floating widgets follow the pointer live; docked drags
			// only move the ghost until the drop resolves a cell.
			g.Widget.SetFloatRect(g.Ghost.ClampInto(v.BodyBounds()))
		}
		return
	}

	if g, ok := v.gestures.Resizing(); ok {
		dx, dy := g.DeltaFrom(p)
		if dx == 0 && dy == 0 {
			return
		}
		switch g.Widget.Mode() {
		case widget.ModeFloating:
			g.Widget.ResizeFloatBy(dx, dy)
		case widget.ModeDocked:
			switch eng := v.engine.(type) {
			case *layout.Grid:
				if cell, ok := eng.CellOf(g.Widget); ok {
					eng.ResizeTracksFromCell(cell, dx, dy, g.Right, g.Bottom)
				}
			case *layout.Free:
				if r, ok := eng.WidgetRect(g.Widget); ok {
					r.W += dx
					r.H += dy
					if r.W < widget.MinFloatWidth {
						r.W = widget.MinFloatWidth
					}
					if r.H < widget.MinFloatHeight {
						r.H = widget.MinFloatHeight
					}
					eng.SetWidgetRect(g.Widget, r)
				}
			}
		}
		// Deltas apply incrementally, so the origin advances with the
		// pointer.
		g.Origin = p
	}
}

func (v *View) mouseRelease(msg tea.MouseMsg) {
	g := v.gestures.End()
	drag, ok := g.(*layout.Dragging)
	if !ok {
		return
	}
	if drag.Widget.Mode() != widget.ModeDocked || !drag.HasCell {
		return
	}
	grid, isGrid := v.engine.(*layout.Grid)
	if !isGrid {
		return
	}
	// The drop resolves against the topmost cell under the pointer; a
	// release outside the grid leaves the widget where it was.
	to, inGrid := grid.CellFromPoint(msg.X, msg.Y)
	if inGrid && to != drag.FromCell {
		grid.MoveWidget(drag.FromCell, to)
	}
}

// widgetAt resolves the topmost widget under a point: the maximized
// overlay, then the floating stack top to bottom, then docked
// occupants.
func (v *View) widgetAt(x, y int) (*widget.Widget, geom.Rect, bool) {
	if v.maximum != nil {
		return v.maximum, v.BodyBounds(), true
	}
	for i := len(v.floating) - 1; i >= 0; i-- {
		w := v.floating[i]
		r := w.FloatRect()
		if w.Minimized() {
			r.H = 3
		}
		if r.Contains(x, y) {
			return w, w.FloatRect(), true
		}
	}
	for _, w := range v.engine.Widgets() {
		if r, ok := v.engine.WidgetRect(w); ok && r.Contains(x, y) {
			return w, r, true
		}
	}
	return nil, geom.Rect{}, false
}

// hitAction resolves a press against every rendered toolbar zone.
func (v *View) hitAction(msg tea.MouseMsg) (*widget.Widget, widget.Action, bool) {
	for _, w := range v.Widgets() {
		for _, a := range w.VisibleActions() {
			if z := v.zones.Get(w.ZoneAction(a.ID)); z != nil && z.InBounds(msg) {
				return w, a, true
			}
		}
	}
	return nil, widget.Action{}, false
}

func (v *View) dispatchAction(w *widget.Widget, a widget.Action) tea.Cmd {
	v.setFocus(w)
	switch a.ID {
	case widget.ActionRefresh:
		return w.RefreshCmd()
	case widget.ActionMaximize:
		v.MaximizeWidget(w)
	case widget.ActionRestore:
		v.RestoreWidget(w)
	default:
		if a.OnClick != nil {
			a.OnClick(w)
		}
	}
	return nil
}

// onTitleBar tests the zone mark first and falls back to the chrome's
// top row for frames composed outside this view's scan.
func (v *View) onTitleBar(w *widget.Widget, rect geom.Rect, msg tea.MouseMsg) bool {
	if z := v.zones.Get(w.ZoneTitle()); z != nil && !z.IsZero() {
		return z.InBounds(msg)
	}
	return msg.Y == rect.Y+1 && rect.Contains(msg.X, msg.Y)
}

// hitResizeHandle tests the right border column and bottom border row.
// Handles the engine retracted (last grid row/column) never match.
func (v *View) hitResizeHandle(w *widget.Widget, rect geom.Rect, x, y int) (right, bottom, ok bool) {
	if !w.Resizable() || rect.Empty() || !rect.Contains(x, y) {
		return false, false, false
	}
	canRight, canBottom := true, true
	if w.Mode() == widget.ModeDocked {
		canRight, canBottom = w.ResizeEdges()
	}
	right = canRight && x == rect.X+rect.W-1
	bottom = canBottom && y == rect.Y+rect.H-1
	return right, bottom, right || bottom
}

func (v *View) raiseFloating(w *widget.Widget) {
	v.removeFloating(w)
	v.floating = append(v.floating, w)
}
