// Package widget implements the dashboard widget: its chrome, its
// toolbar, and the docked/floating/maximized mode machine. Widgets do
// not know about concrete layout engines; they call back into their
// owning dashboard through the Surface interface.
package widget

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Dicklesworthstone/tessera/internal/geom"
)

// Mode is the widget's placement mode. The minimized flag is orthogonal
// and never changes the mode.
type Mode int

const (
	// ModeDocked means the widget occupies a slot in a layout engine.
	ModeDocked Mode = iota
	// ModeFloating means the widget manages its own absolute rectangle.
	ModeFloating
	// ModeMaximized means the widget fills the dashboard body.
	ModeMaximized
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeDocked:
		return "docked"
	case ModeFloating:
		return "floating"
	case ModeMaximized:
		return "maximized"
	default:
		return "unknown"
	}
}

// Floating widgets never shrink below this size; smaller rectangles are
// unusable once the border and title bar are drawn.
const (
	MinFloatWidth  = 24
	MinFloatHeight = 6
)

// Surface is implemented by the owning dashboard view. It is injected on
// attach and cleared on detach; widgets never reach through global state
// to find their dashboard.
type Surface interface {
	// WidgetBounds returns the widget's current on-screen rectangle.
	WidgetBounds(w *Widget) (geom.Rect, bool)
	// BodyBounds returns the dashboard body rectangle widgets float within.
	BodyBounds() geom.Rect
	// Detach removes the widget from the layout engine's occupancy while
	// remembering its placement for a later Reattach.
	Detach(w *Widget)
	// Reattach restores the widget to its remembered placement via the
	// layout engine's placement setter. Reports false if no placement
	// was ever remembered.
	Reattach(w *Widget) bool
	// Release removes the widget from the dashboard entirely (close).
	Release(w *Widget)
}

// Renderer produces widget content for a given inner size. Content is
// opaque to the layout engine.
type Renderer interface {
	Render(width, height int) string
}

// RendererFunc adapts a function to the Renderer interface.
type RendererFunc func(width, height int) string

// Render implements Renderer.
func (f RendererFunc) Render(width, height int) string { return f(width, height) }

// Static returns a Renderer that always produces s.
func Static(s string) Renderer {
	return RendererFunc(func(int, int) string { return s })
}

// RefreshFunc reloads a widget's content. It runs off the update loop;
// the widget shows a spinner until the completion message arrives.
type RefreshFunc func(ctx context.Context) error

// Options configures a new widget. Use DefaultOptions for the documented
// defaults (draggable, resizable and closable all enabled).
type Options struct {
	ID    string // generated when empty
	Title string
	Icon  string

	Header  Renderer // optional decoration above the content
	Content Renderer
	Footer  Renderer // optional decoration below the content

	// OnRefresh is invoked asynchronously by the refresh toolbar action.
	// It never blocks layout operations.
	OnRefresh RefreshFunc
	// OnClose is invoked once when the widget is closed.
	OnClose func()

	Draggable bool
	Resizable bool
	Closable  bool

	// Actions are widget-specific toolbar entries appended after the
	// built-in ones.
	Actions []Action
}

// DefaultOptions returns Options with the interaction toggles enabled.
func DefaultOptions(id, title string) Options {
	return Options{
		ID:        id,
		Title:     title,
		Draggable: true,
		Resizable: true,
		Closable:  true,
	}
}

// Widget is a single dashboard panel.
type Widget struct {
	id    string
	title string
	icon  string

	header  Renderer
	content Renderer
	footer  Renderer

	onRefresh func(ctx context.Context) error
	onClose   func()

	draggable bool
	resizable bool
	closable  bool

	actions []Action

	surface  Surface
	mode     Mode
	prevMode Mode // mode to restore from maximized

	minimized  bool
	focused    bool
	closed     bool
	refreshing bool
	spin       refreshSpinner

	floatRect  geom.Rect  // valid while floating
	savedFloat *geom.Rect // float rect stashed by a maximize from floating

	// Resize handles exposed for the current placement; maintained by
	// the layout engine for docked widgets.
	resizeRight  bool
	resizeBottom bool
}

// New creates a widget from opts. An empty ID is replaced with a
// generated one.
func New(opts Options) *Widget {
	id := opts.ID
	if id == "" {
		id = geom.NewID("widget")
	}
	w := &Widget{
		id:        id,
		title:     opts.Title,
		icon:      opts.Icon,
		header:    opts.Header,
		content:   opts.Content,
		footer:    opts.Footer,
		onRefresh: opts.OnRefresh,
		onClose:   opts.OnClose,
		draggable: opts.Draggable,
		resizable: opts.Resizable,
		closable:  opts.Closable,
		spin:      newRefreshSpinner(),
	}
	w.actions = append(builtinActions(w), opts.Actions...)
	return w
}

// ID returns the widget's stable identifier.
func (w *Widget) ID() string { return w.id }

// Title returns the display title.
func (w *Widget) Title() string { return w.title }

// SetTitle updates the display title.
func (w *Widget) SetTitle(title string) { w.title = title }

// Icon returns the display icon.
func (w *Widget) Icon() string { return w.icon }

// Mode returns the current placement mode.
func (w *Widget) Mode() Mode { return w.mode }

// Minimized reports the orthogonal minimized flag.
func (w *Widget) Minimized() bool { return w.minimized }

// Focused reports whether the widget currently has focus.
func (w *Widget) Focused() bool { return w.focused }

// SetFocused marks or clears focus.
func (w *Widget) SetFocused(focused bool) { w.focused = focused }

// Closed reports whether Close has run.
func (w *Widget) Closed() bool { return w.closed }

// Draggable reports whether title-bar drags are enabled.
func (w *Widget) Draggable() bool { return w.draggable }

// Resizable reports whether resize handles are enabled.
func (w *Widget) Resizable() bool { return w.resizable }

// Closable reports whether the close action is enabled.
func (w *Widget) Closable() bool { return w.closable }

// Actions returns the toolbar actions in display order.
func (w *Widget) Actions() []Action { return w.actions }

// Surface returns the owning dashboard surface, nil when detached.
func (w *Widget) Surface() Surface { return w.surface }

// SetSurface binds the widget to its owning dashboard. Set on attach,
// cleared (nil) on detach.
func (w *Widget) SetSurface(s Surface) { w.surface = s }

// FloatRect returns the absolute rectangle used while floating.
func (w *Widget) FloatRect() geom.Rect { return w.floatRect }

// SetFloatRect replaces the floating rectangle.
func (w *Widget) SetFloatRect(r geom.Rect) { w.floatRect = r }

// SetResizeEdges records which resize handles the current placement
// exposes. A widget in a grid's last column gets no right handle.
func (w *Widget) SetResizeEdges(right, bottom bool) {
	w.resizeRight = right
	w.resizeBottom = bottom
}

// ResizeEdges returns the exposed handle flags.
func (w *Widget) ResizeEdges() (right, bottom bool) {
	return w.resizeRight, w.resizeBottom
}

// Float transitions docked → floating. The current on-screen bounds
// become the absolute floating rectangle and the surface remembers the
// vacated placement so Dock can restore it. No-op in any other mode.
func (w *Widget) Float() {
	if w.mode != ModeDocked || w.closed {
		return
	}
	if w.surface != nil {
		if r, ok := w.surface.WidgetBounds(w); ok {
			w.floatRect = r
		}
		w.surface.Detach(w)
	}
	if w.floatRect.Empty() {
		w.floatRect = geom.NewRect(2, 1, MinFloatWidth, MinFloatHeight)
	}
	w.mode = ModeFloating
}

// Dock transitions floating → docked. If the surface remembers a
// placement the widget is re-registered there and the floating geometry
// is cleared; otherwise this is a stylistic dock that keeps the current
// rectangle so the widget still renders where it floats.
func (w *Widget) Dock() {
	if w.mode != ModeFloating || w.closed {
		return
	}
	if w.surface != nil && w.surface.Reattach(w) {
		w.floatRect = geom.Rect{}
	}
	w.mode = ModeDocked
}

// Maximize pins the widget to the full dashboard body. From floating the
// current rectangle is stashed for Restore; from docked the layout's
// occupancy is left untouched so Restore can simply re-register the
// placement. Maximizing an already maximized widget is a no-op.
func (w *Widget) Maximize() {
	if w.mode == ModeMaximized || w.closed {
		return
	}
	if w.mode == ModeFloating {
		saved := w.floatRect
		w.savedFloat = &saved
	}
	w.prevMode = w.mode
	w.mode = ModeMaximized
}

// Restore returns a maximized widget to its previous mode. The docked
// case re-registers the placement through the layout engine so occupancy
// is contractually repopulated, not just visually restored.
func (w *Widget) Restore() {
	if w.mode != ModeMaximized || w.closed {
		return
	}
	if w.prevMode == ModeDocked && w.surface != nil && w.surface.Reattach(w) {
		w.mode = ModeDocked
		return
	}
	w.mode = ModeFloating
	if w.savedFloat != nil {
		w.floatRect = *w.savedFloat
		w.savedFloat = nil
	}
	if w.floatRect.Empty() {
		w.floatRect = geom.NewRect(2, 1, MinFloatWidth, MinFloatHeight)
	}
}

// ToggleMinimize flips the visual collapse flag. Mode and placement are
// unaffected.
func (w *Widget) ToggleMinimize() {
	if w.closed {
		return
	}
	w.minimized = !w.minimized
}

// Close terminates the widget: the OnClose hook fires once, the surface
// releases it, and every later operation is a no-op. Not reversible.
func (w *Widget) Close() {
	if w.closed {
		return
	}
	w.closed = true
	if w.onClose != nil {
		w.onClose()
	}
	if w.surface != nil {
		w.surface.Release(w)
		w.surface = nil
	}
}

// MoveFloatBy shifts a floating widget, clamped to the surface body.
func (w *Widget) MoveFloatBy(dx, dy int) {
	if w.mode != ModeFloating {
		return
	}
	r := w.floatRect
	r.X += dx
	r.Y += dy
	if w.surface != nil {
		r = r.ClampInto(w.surface.BodyBounds())
	}
	w.floatRect = r
}

// ResizeFloatBy grows or shrinks a floating widget with a size floor so
// the chrome never degenerates.
func (w *Widget) ResizeFloatBy(dw, dh int) {
	if w.mode != ModeFloating || !w.resizable {
		return
	}
	r := w.floatRect
	r.W = geom.ClampInt(r.W+dw, MinFloatWidth, 1<<20)
	r.H = geom.ClampInt(r.H+dh, MinFloatHeight, 1<<20)
	if w.surface != nil {
		b := w.surface.BodyBounds()
		if r.W > b.W {
			r.W = b.W
		}
		if r.H > b.H {
			r.H = b.H
		}
	}
	w.floatRect = r
}

// Refreshing reports whether the async refresh hook is in flight.
func (w *Widget) Refreshing() bool { return w.refreshing }

// RefreshedMsg reports completion of a widget's refresh hook.
type RefreshedMsg struct {
	ID  string
	Err error
}

// RefreshCmd starts the async refresh hook and returns the command that
// runs it, plus the spinner tick that animates the cosmetic indicator.
// Returns nil when no hook is configured or a refresh is already running.
func (w *Widget) RefreshCmd() tea.Cmd {
	if w.onRefresh == nil || w.refreshing || w.closed {
		return nil
	}
	w.refreshing = true
	hook := w.onRefresh
	id := w.id
	run := func() tea.Msg {
		return RefreshedMsg{ID: id, Err: hook(context.Background())}
	}
	return tea.Batch(run, w.spin.Tick())
}

// FinishRefresh clears the refresh indicator.
func (w *Widget) FinishRefresh() { w.refreshing = false }

// Update advances the cosmetic refresh spinner. Layout state is never
// touched here.
func (w *Widget) Update(msg tea.Msg) tea.Cmd {
	if !w.refreshing {
		return nil
	}
	return w.spin.Update(msg)
}
