package layout

import (
	"github.com/Dicklesworthstone/tessera/internal/geom"
	"github.com/Dicklesworthstone/tessera/internal/widget"
)

// Gesture is one in-flight pointer interaction. It is built on press,
// updated on motion, and discarded on release; it is never persisted.
type Gesture interface {
	gesture()
}

// Dragging tracks a title-bar drag. For docked grid widgets the ghost
// is dropped onto a destination cell on release; for floating widgets
// the widget itself follows the pointer.
type Dragging struct {
	Widget *widget.Widget
	Origin geom.Point // pointer position at press
	Grab   geom.Point // press offset from the widget's top-left corner
	Ghost  geom.Rect  // outline tracking the pointer

	FromCell Cell // source cell when the drag started docked
	HasCell  bool
}

func (*Dragging) gesture() {}

// MoveTo repositions the ghost so the grab point stays under the
// pointer.
func (g *Dragging) MoveTo(p geom.Point) {
	g.Ghost.X = p.X - g.Grab.X
	g.Ghost.Y = p.Y - g.Grab.Y
}

// Resizing tracks a handle drag. StartRect is the widget rectangle at
// press time; deltas are measured against Origin.
type Resizing struct {
	Widget    *widget.Widget
	Origin    geom.Point
	StartRect geom.Rect
	Right     bool
	Bottom    bool
}

func (*Resizing) gesture() {}

// DeltaFrom returns the pointer travel since press, zeroing the axis of
// any edge not being resized.
func (g *Resizing) DeltaFrom(p geom.Point) (dx, dy int) {
	if g.Right {
		dx = p.X - g.Origin.X
	}
	if g.Bottom {
		dy = p.Y - g.Origin.Y
	}
	return dx, dy
}

// Tracker holds at most one active gesture per dashboard view. A press
// arriving while a gesture is in flight is ignored, not queued.
type Tracker struct {
	active Gesture
}

// Begin installs a gesture. Reports false, leaving the current gesture
// in place, when one is already active.
func (t *Tracker) Begin(g Gesture) bool {
	if g == nil || t.active != nil {
		return false
	}
	t.active = g
	return true
}

// Active reports whether a gesture is in flight.
func (t *Tracker) Active() bool { return t.active != nil }

// Dragging returns the active drag, if any.
func (t *Tracker) Dragging() (*Dragging, bool) {
	g, ok := t.active.(*Dragging)
	return g, ok
}

// Resizing returns the active resize, if any.
func (t *Tracker) Resizing() (*Resizing, bool) {
	g, ok := t.active.(*Resizing)
	return g, ok
}

// End clears and returns the active gesture. It is called
// unconditionally on release, including releases outside canvas
// bounds, so gesture state never leaks across interactions.
func (t *Tracker) End() Gesture {
	g := t.active
	t.active = nil
	return g
}
