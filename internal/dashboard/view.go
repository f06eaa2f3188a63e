// Package dashboard composes a layout engine, widget chrome, and the
// interaction routing (mouse gestures, focus, slideshow) into one
// renderable surface.
package dashboard

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/Dicklesworthstone/tessera/internal/canvas"
	"github.com/Dicklesworthstone/tessera/internal/geom"
	"github.com/Dicklesworthstone/tessera/internal/layout"
	"github.com/Dicklesworthstone/tessera/internal/store"
	"github.com/Dicklesworthstone/tessera/internal/tui/theme"
	"github.com/Dicklesworthstone/tessera/internal/widget"
)

// LayoutMode selects which engine a view is constructed with. The
// engine is fixed for the lifetime of the view.
type LayoutMode string

const (
	LayoutGrid LayoutMode = "grid"
	LayoutFree LayoutMode = "free"
	LayoutDock LayoutMode = "dock"
)

// Options configures a View.
type Options struct {
	ID    string // generated when empty
	Title string
	Icon  string

	Mode LayoutMode // defaults to LayoutGrid

	// Grid shape, used when Mode is LayoutGrid. Defaults to 2x2.
	GridRows, GridCols int
	MinTrackPct        float64

	// Store persists grid geometry. Nil disables persistence.
	Store store.KV

	Header widget.Renderer // optional single-line header
	Footer widget.Renderer // optional single-line footer

	// Zones is the mouse-zone manager shared with whatever composes
	// this view into a frame. Defaults to a private manager; share one
	// across views (and call its Scan on the final frame) when the
	// view is not the whole frame.
	Zones *zone.Manager
}

// View owns exactly one layout engine plus header/footer chrome, the
// floating/maximized overlay stack, and transient interaction state.
// It implements widget.Surface so widgets reach their dashboard only
// through the reference injected on attach.
type View struct {
	id    string
	title string
	icon  string

	engine layout.Engine
	header widget.Renderer
	footer widget.Renderer

	origin geom.Point // top-left of this view in frame coordinates
	width  int
	height int

	// placements remembers where each detached widget was docked so
	// dock()/restore() can re-register occupancy.
	placements map[*widget.Widget]layout.Placement

	floating []*widget.Widget // bottom to top
	maximum  *widget.Widget   // the maximized widget, if any
	focused  *widget.Widget

	gestures layout.Tracker
	show     *slideshow // nil unless slideshow mode is active

	zones     *zone.Manager
	ownsZones bool

	destroyed bool
}

var _ widget.Surface = (*View)(nil)

// New builds a view with the engine selected by opts.Mode. Grid
// construction errors (non-positive dimensions) propagate.
func New(opts Options) (*View, error) {
	id := opts.ID
	if id == "" {
		id = geom.NewID("view")
	}
	mode := opts.Mode
	if mode == "" {
		mode = LayoutGrid
	}

	var eng layout.Engine
	switch mode {
	case LayoutGrid:
		rows, cols := opts.GridRows, opts.GridCols
		if rows == 0 {
			rows = 2
		}
		if cols == 0 {
			cols = 2
		}
		g, err := layout.NewGrid(rows, cols, layout.GridOptions{
			MinTrackPct: opts.MinTrackPct,
			Store:       opts.Store,
			ScopeID:     id,
		})
		if err != nil {
			return nil, err
		}
		eng = g
	case LayoutFree:
		eng = layout.NewFree()
	case LayoutDock:
		eng = layout.NewDock()
	default:
		return nil, fmt.Errorf("unknown layout mode %q", mode)
	}

	z := opts.Zones
	owns := false
	if z == nil {
		z = zone.New()
		owns = true
	}
	return &View{
		id:         id,
		title:      opts.Title,
		icon:       opts.Icon,
		engine:     eng,
		header:     opts.Header,
		footer:     opts.Footer,
		placements: make(map[*widget.Widget]layout.Placement),
		zones:      z,
		ownsZones:  owns,
	}, nil
}

// ID returns the view's identity, which also scopes persisted geometry.
func (v *View) ID() string { return v.id }

// Title returns the display title.
func (v *View) Title() string { return v.title }

// Icon returns the display icon.
func (v *View) Icon() string { return v.icon }

// Engine exposes the underlying layout engine.
func (v *View) Engine() layout.Engine { return v.engine }

// Focused returns the focused widget, if any.
func (v *View) Focused() *widget.Widget { return v.focused }

// SetOrigin positions the view inside a larger frame so geometric
// mouse hit-testing lines up when chrome is rendered above it.
func (v *View) SetOrigin(x, y int) {
	v.origin = geom.Point{X: x, Y: y}
	v.engine.SetBounds(v.BodyBounds())
}

// SetSize resizes the view and propagates the body rectangle to the
// engine.
func (v *View) SetSize(width, height int) {
	v.width, v.height = width, height
	v.engine.SetBounds(v.BodyBounds())
}

// BodyBounds implements widget.Surface: the rectangle between header
// and footer that widgets dock and float within.
func (v *View) BodyBounds() geom.Rect {
	top := v.origin.Y
	h := v.height
	if v.header != nil {
		top++
		h--
	}
	if v.footer != nil {
		h--
	}
	return geom.NewRect(v.origin.X, top, v.width, h)
}

// WidgetBounds implements widget.Surface.
func (v *View) WidgetBounds(w *widget.Widget) (geom.Rect, bool) {
	if v.maximum == w {
		return v.BodyBounds(), true
	}
	if v.isFloating(w) {
		return w.FloatRect(), true
	}
	return v.engine.WidgetRect(w)
}

// Detach implements widget.Surface: remembers the widget's docked
// placement, removes it from engine occupancy, and promotes it to the
// top of the floating stack.
func (v *View) Detach(w *widget.Widget) {
	if p, ok := v.engine.PlacementOf(w); ok {
		v.placements[w] = p
	}
	v.engine.RemoveWidget(w)
	v.removeFloating(w)
	v.floating = append(v.floating, w)
}

// Reattach implements widget.Surface: re-registers the remembered
// placement in engine occupancy. A maximized docked widget never
// detached, so its live occupancy stands in for the remembered
// placement. A widget that was never docked reports false and stays
// where it is.
func (v *View) Reattach(w *widget.Widget) bool {
	p, ok := v.placements[w]
	if !ok {
		p, ok = v.engine.PlacementOf(w)
	}
	if !ok {
		return false
	}
	if _, live := v.engine.PlacementOf(w); !live && !v.engine.AddWidget(w, p) {
		return false
	}
	delete(v.placements, w)
	v.removeFloating(w)
	if v.maximum == w {
		v.maximum = nil
	}
	return true
}

// Release implements widget.Surface: drops the widget from every
// structure the view keeps.
func (v *View) Release(w *widget.Widget) {
	v.engine.RemoveWidget(w)
	v.removeFloating(w)
	delete(v.placements, w)
	if v.maximum == w {
		v.maximum = nil
	}
	if v.focused == w {
		v.focused = nil
		v.focusFirst()
	}
	if v.show != nil {
		v.show.drop(w)
	}
}

func (v *View) isFloating(w *widget.Widget) bool {
	for _, f := range v.floating {
		if f == w {
			return true
		}
	}
	return false
}

func (v *View) removeFloating(w *widget.Widget) {
	for i, f := range v.floating {
		if f == w {
			v.floating = append(v.floating[:i], v.floating[i+1:]...)
			return
		}
	}
}

// AddWidget attaches a widget to the view's engine and injects the
// surface reference. Reports false for placements the engine rejects.
func (v *View) AddWidget(w *widget.Widget, p layout.Placement) bool {
	if w == nil || v.destroyed {
		return false
	}
	if !v.engine.AddWidget(w, p) {
		return false
	}
	w.SetSurface(v)
	if v.focused == nil {
		v.setFocus(w)
	}
	return true
}

// AddFloating attaches a widget directly in floating mode, bypassing
// engine occupancy.
func (v *View) AddFloating(w *widget.Widget, r geom.Rect) {
	if w == nil || v.destroyed {
		return
	}
	w.SetSurface(v)
	w.SetFloatRect(r.ClampInto(v.BodyBounds()))
	v.floating = append(v.floating, w)
	w.Float()
	if v.focused == nil {
		v.setFocus(w)
	}
}

// RemoveWidget detaches and releases a widget without closing it.
func (v *View) RemoveWidget(w *widget.Widget) {
	v.Release(w)
	w.SetSurface(nil)
}

// Widgets returns every attached widget: engine occupants in traversal
// order, then the floating stack bottom to top.
func (v *View) Widgets() []*widget.Widget {
	out := v.engine.Widgets()
	out = append(out, v.floating...)
	return out
}

// Widget looks up an attached widget by id.
func (v *View) Widget(id string) (*widget.Widget, bool) {
	if w, ok := v.engine.Widget(id); ok {
		return w, true
	}
	for _, w := range v.floating {
		if w.ID() == id {
			return w, true
		}
	}
	return nil, false
}

func (v *View) setFocus(w *widget.Widget) {
	if v.focused == w {
		return
	}
	if v.focused != nil {
		v.focused.SetFocused(false)
	}
	v.focused = w
	if w != nil {
		w.SetFocused(true)
	}
}

func (v *View) focusFirst() {
	ws := v.Widgets()
	if len(ws) > 0 {
		v.setFocus(ws[0])
	}
}

// FocusNext cycles focus through the widget list.
func (v *View) FocusNext() {
	ws := v.Widgets()
	if len(ws) == 0 {
		return
	}
	idx := 0
	for i, w := range ws {
		if w == v.focused {
			idx = (i + 1) % len(ws)
			break
		}
	}
	v.setFocus(ws[idx])
}

// Maximized returns the maximized widget, if any.
func (v *View) Maximized() *widget.Widget { return v.maximum }

// MaximizeWidget puts a widget into maximized mode. Docked widgets
// keep their occupancy; the overlay simply covers the body.
func (v *View) MaximizeWidget(w *widget.Widget) {
	if w == nil || w.Closed() {
		return
	}
	w.Maximize()
	if w.Mode() == widget.ModeMaximized {
		v.maximum = w
		v.setFocus(w)
	}
}

// RestoreWidget brings a maximized widget back to its previous mode.
func (v *View) RestoreWidget(w *widget.Widget) {
	if w == nil || v.maximum != w {
		return
	}
	w.Restore()
	if w.Mode() != widget.ModeMaximized {
		v.maximum = nil
	}
}

// Destroy tears the view down: slideshow state first, then every
// widget regardless of mode. A maximized or floating widget is closed
// as-is, no mode restoration round trip.
func (v *View) Destroy() {
	if v.destroyed {
		return
	}
	v.destroyed = true
	v.ExitSlideshow()
	for _, w := range append([]*widget.Widget(nil), v.floating...) {
		w.SetSurface(nil)
		w.Close()
	}
	v.floating = nil
	v.maximum = nil
	v.focused = nil
	v.engine.Destroy()
	v.placements = make(map[*widget.Widget]layout.Placement)
	if v.ownsZones {
		v.zones.Close()
	}
}

// Init implements the component contract.
func (v *View) Init() tea.Cmd { return nil }

// Update routes messages: mouse gestures, keyboard shortcuts, refresh
// completions, spinner ticks.
func (v *View) Update(msg tea.Msg) tea.Cmd {
	if v.destroyed {
		return nil
	}
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetSize(msg.Width, msg.Height)
		return nil
	case tea.MouseMsg:
		return v.updateMouse(msg)
	case tea.KeyMsg:
		return v.updateKeys(msg)
	case widget.RefreshedMsg:
		if w, ok := v.Widget(msg.ID); ok {
			w.FinishRefresh()
		}
		return nil
	default:
		var cmds []tea.Cmd
		for _, w := range v.Widgets() {
			if cmd := w.Update(msg); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
		return tea.Batch(cmds...)
	}
}

func (v *View) updateKeys(msg tea.KeyMsg) tea.Cmd {
	if v.show != nil {
		switch msg.String() {
		case "left", "h":
			v.SlideshowPrev()
		case "right", "l", " ":
			v.SlideshowNext()
		case "esc", "q":
			v.ExitSlideshow()
		}
		return nil
	}

	switch msg.String() {
	case "tab":
		v.FocusNext()
	case "s":
		v.EnterSlideshow()
	case "0":
		v.engine.Reset()
	case "f":
		if w := v.focused; w != nil {
			switch w.Mode() {
			case widget.ModeDocked:
				w.Float()
			case widget.ModeFloating:
				w.Dock()
			}
		}
	case "m":
		if w := v.focused; w != nil {
			if w.Mode() == widget.ModeMaximized {
				v.RestoreWidget(w)
			} else {
				v.MaximizeWidget(w)
			}
		}
	case "n":
		if w := v.focused; w != nil {
			w.ToggleMinimize()
		}
	case "r":
		if w := v.focused; w != nil {
			return w.RefreshCmd()
		}
	case "x":
		if w := v.focused; w != nil && w.Closable() {
			w.Close()
		}
	case "shift+up":
		v.moveFocusedBy(-1, 0)
	case "shift+down":
		v.moveFocusedBy(1, 0)
	case "shift+left":
		v.moveFocusedBy(0, -1)
	case "shift+right":
		v.moveFocusedBy(0, 1)
	}
	return nil
}

// moveFocusedBy shifts the focused docked widget one grid cell, the
// keyboard twin of dropping it on a neighbor. Non-grid engines and
// non-docked widgets ignore it.
func (v *View) moveFocusedBy(dRow, dCol int) {
	w := v.focused
	if w == nil || w.Mode() != widget.ModeDocked {
		return
	}
	g, ok := v.engine.(*layout.Grid)
	if !ok {
		return
	}
	cell, ok := g.CellOf(w)
	if !ok {
		return
	}
	g.MoveWidget(cell, layout.Cell{Row: cell.Row + dRow, Col: cell.Col + dCol})
}

// View renders the full frame: header, engine area, floating stack,
// maximized overlay, drag ghost, footer. Slideshow mode replaces the
// body entirely.
func (v *View) View() string {
	if v.width <= 0 || v.height <= 0 {
		return ""
	}
	t := theme.Current()
	body := v.BodyBounds()

	var frame string
	if v.show != nil {
		frame = v.renderSlideshow(t, body)
	} else {
		frame = v.renderBody(t, body)
	}

	if v.header != nil {
		frame = v.header.Render(v.width, 1) + "\n" + frame
	}
	if v.footer != nil {
		frame = frame + "\n" + v.footer.Render(v.width, 1)
	}
	if v.ownsZones {
		return v.zones.Scan(frame)
	}
	return frame
}

func (v *View) renderBody(t theme.Theme, body geom.Rect) string {
	base := canvas.Blank(body.W, body.H)

	// Docked widgets at their engine rectangles.
	for _, w := range v.engine.Widgets() {
		if w == v.maximum && w.Mode() == widget.ModeMaximized {
			continue
		}
		rect, ok := v.engine.WidgetRect(w)
		if !ok || rect.Empty() {
			continue
		}
		block := w.Render(v.zones, rect.W, rect.H)
		base = canvas.Overlay(base, block, rect.X-body.X, rect.Y-body.Y)
	}

	// Floating stack, bottom to top.
	for _, w := range v.floating {
		if w == v.maximum {
			continue
		}
		rect := w.FloatRect()
		if rect.Empty() {
			continue
		}
		h := rect.H
		if w.Minimized() {
			h = 3
		}
		block := w.Render(v.zones, rect.W, h)
		base = canvas.Overlay(base, block, rect.X-body.X, rect.Y-body.Y)
	}

	// Maximized overlay covers the whole body.
	if v.maximum != nil {
		block := v.maximum.Render(v.zones, body.W, body.H)
		base = canvas.Overlay(base, block, 0, 0)
	}

	// Drag ghost on top of everything.
	if g, ok := v.gestures.Dragging(); ok && g.Ghost.W >= 2 && g.Ghost.H >= 2 {
		ghost := lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(t.DragGhost).
			Width(g.Ghost.W - 2).
			Height(g.Ghost.H - 2).
			Render("")
		base = canvas.Overlay(base, ghost, g.Ghost.X-body.X, g.Ghost.Y-body.Y)
	}
	return base
}
