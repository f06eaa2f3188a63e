package widget

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/Dicklesworthstone/tessera/internal/geom"
)

// fakeSurface records lifecycle calls the way a dashboard view would.
type fakeSurface struct {
	bounds    geom.Rect
	body      geom.Rect
	detached  bool
	reattachs int
	released  bool
	canAttach bool
}

func newFakeSurface() *fakeSurface {
	return &fakeSurface{
		bounds:    geom.NewRect(10, 4, 40, 12),
		body:      geom.NewRect(0, 1, 120, 38),
		canAttach: true,
	}
}

func (s *fakeSurface) WidgetBounds(*Widget) (geom.Rect, bool) { return s.bounds, !s.detached }
func (s *fakeSurface) BodyBounds() geom.Rect                  { return s.body }
func (s *fakeSurface) Detach(*Widget)                         { s.detached = true }
func (s *fakeSurface) Release(*Widget)                        { s.released = true }

func (s *fakeSurface) Reattach(*Widget) bool {
	if !s.canAttach {
		return false
	}
	s.reattachs++
	s.detached = false
	return true
}

func newTestWidget(t *testing.T, surf Surface) *Widget {
	t.Helper()
	w := New(DefaultOptions("cpu", "CPU Load"))
	w.SetSurface(surf)
	return w
}

func TestFloatDockRoundTrip(t *testing.T) {
	t.Parallel()
	surf := newFakeSurface()
	w := newTestWidget(t, surf)

	w.Float()
	if w.Mode() != ModeFloating {
		t.Fatalf("mode after Float = %v, want %v", w.Mode(), ModeFloating)
	}
	if !surf.detached {
		t.Fatal("Float did not detach from surface")
	}
	if got := w.FloatRect(); got != surf.bounds {
		t.Fatalf("float rect = %v, want docked bounds %v", got, surf.bounds)
	}

	w.Dock()
	if w.Mode() != ModeDocked {
		t.Fatalf("mode after Dock = %v, want %v", w.Mode(), ModeDocked)
	}
	if surf.reattachs != 1 {
		t.Fatalf("reattach count = %d, want 1", surf.reattachs)
	}
	if !w.FloatRect().Empty() {
		t.Fatalf("float rect not cleared after Dock: %v", w.FloatRect())
	}
}

func TestFloatWithoutPlacementFallsBack(t *testing.T) {
	t.Parallel()
	surf := newFakeSurface()
	surf.detached = true // no current bounds
	w := newTestWidget(t, surf)

	w.Float()
	r := w.FloatRect()
	if r.Empty() {
		t.Fatal("expected fallback float rect, got empty")
	}
	if r.W < MinFloatWidth || r.H < MinFloatHeight {
		t.Fatalf("fallback rect %v below minimum %dx%d", r, MinFloatWidth, MinFloatHeight)
	}
}

func TestMaximizeRestoreFromDocked(t *testing.T) {
	t.Parallel()
	surf := newFakeSurface()
	w := newTestWidget(t, surf)

	w.Maximize()
	if w.Mode() != ModeMaximized {
		t.Fatalf("mode = %v, want %v", w.Mode(), ModeMaximized)
	}
	// Maximizing must not disturb grid occupancy.
	if surf.detached {
		t.Fatal("maximize from docked detached the widget")
	}

	w.Restore()
	if w.Mode() != ModeDocked {
		t.Fatalf("mode after Restore = %v, want %v", w.Mode(), ModeDocked)
	}
}

func TestMaximizeRestoreFromFloating(t *testing.T) {
	t.Parallel()
	surf := newFakeSurface()
	w := newTestWidget(t, surf)

	w.Float()
	want := geom.NewRect(5, 5, 30, 10)
	w.SetFloatRect(want)

	w.Maximize()
	w.Maximize() // second call is a no-op
	if w.Mode() != ModeMaximized {
		t.Fatalf("mode = %v, want %v", w.Mode(), ModeMaximized)
	}

	w.Restore()
	if w.Mode() != ModeFloating {
		t.Fatalf("mode after Restore = %v, want %v", w.Mode(), ModeFloating)
	}
	if got := w.FloatRect(); got != want {
		t.Fatalf("restored float rect = %v, want %v", got, want)
	}
}

func TestModeRoundTripPreservesDockedPlacement(t *testing.T) {
	t.Parallel()
	surf := newFakeSurface()
	w := newTestWidget(t, surf)

	w.Float()
	w.Maximize()
	w.Restore()
	w.Dock()

	if w.Mode() != ModeDocked {
		t.Fatalf("mode = %v, want %v", w.Mode(), ModeDocked)
	}
	if surf.reattachs != 1 {
		t.Fatalf("reattach count = %d, want 1", surf.reattachs)
	}
}

func TestMinimizeOrthogonalToMode(t *testing.T) {
	t.Parallel()
	surf := newFakeSurface()
	w := newTestWidget(t, surf)

	w.ToggleMinimize()
	if !w.Minimized() {
		t.Fatal("not minimized after toggle")
	}
	if w.Mode() != ModeDocked {
		t.Fatalf("minimize changed mode to %v", w.Mode())
	}
	if surf.detached {
		t.Fatal("minimize detached the widget")
	}

	w.Float()
	if !w.Minimized() {
		t.Fatal("Float cleared minimized state")
	}
	w.ToggleMinimize()
	if w.Minimized() {
		t.Fatal("still minimized after second toggle")
	}
}

func TestCloseIdempotent(t *testing.T) {
	t.Parallel()
	surf := newFakeSurface()
	closes := 0
	w := New(DefaultOptions("log", "Logs"))
	w.SetSurface(surf)
	opts := DefaultOptions("log2", "Logs")
	opts.OnClose = func() { closes++ }
	w2 := New(opts)
	w2.SetSurface(surf)

	w.Close()
	if !surf.released {
		t.Fatal("Close did not release the widget")
	}
	w.Close() // no panic, no second release

	w2.Close()
	w2.Close()
	if closes != 1 {
		t.Fatalf("onClose fired %d times, want 1", closes)
	}
}

func TestClosedWidgetIgnoresTransitions(t *testing.T) {
	t.Parallel()
	surf := newFakeSurface()
	w := newTestWidget(t, surf)
	w.Close()

	w.Float()
	w.Maximize()
	w.ToggleMinimize()
	if w.Mode() != ModeDocked || w.Minimized() {
		t.Fatalf("closed widget changed state: mode=%v minimized=%v", w.Mode(), w.Minimized())
	}
}

func TestResizeFloatByEnforcesFloor(t *testing.T) {
	t.Parallel()
	surf := newFakeSurface()
	w := newTestWidget(t, surf)
	w.Float()
	w.SetFloatRect(geom.NewRect(5, 5, 40, 12))

	w.ResizeFloatBy(-100, -100)
	r := w.FloatRect()
	if r.W != MinFloatWidth || r.H != MinFloatHeight {
		t.Fatalf("size after shrink = %dx%d, want %dx%d",
			r.W, r.H, MinFloatWidth, MinFloatHeight)
	}
}

func TestMoveFloatByClampsToBody(t *testing.T) {
	t.Parallel()
	surf := newFakeSurface()
	w := newTestWidget(t, surf)
	w.Float()
	w.SetFloatRect(geom.NewRect(5, 5, 30, 10))

	w.MoveFloatBy(-1000, -1000)
	r := w.FloatRect()
	body := surf.BodyBounds()
	if r.X < body.X || r.Y < body.Y {
		t.Fatalf("rect %v escaped body %v", r, body)
	}

	w.MoveFloatBy(1000, 1000)
	r = w.FloatRect()
	if r.X+r.W > body.X+body.W || r.Y+r.H > body.Y+body.H {
		t.Fatalf("rect %v escaped body %v", r, body)
	}
}

func TestRefreshLifecycle(t *testing.T) {
	t.Parallel()
	opts := DefaultOptions("net", "Network")
	opts.OnRefresh = func(context.Context) error { return errors.New("probe failed") }
	w := New(opts)

	if w.RefreshCmd() == nil {
		t.Fatal("expected a refresh command")
	}
	if !w.Refreshing() {
		t.Fatal("not marked refreshing after RefreshCmd")
	}
	if w.RefreshCmd() != nil {
		t.Fatal("second RefreshCmd while refreshing should be nil")
	}

	w.FinishRefresh()
	if w.Refreshing() {
		t.Fatal("still refreshing after FinishRefresh")
	}
}

func TestRefreshCmdNilWithoutHook(t *testing.T) {
	t.Parallel()
	w := New(DefaultOptions("idle", "Idle"))
	if w.RefreshCmd() != nil {
		t.Fatal("widget without refresh hook returned a command")
	}
}

func TestBuiltinActionVisibility(t *testing.T) {
	t.Parallel()
	surf := newFakeSurface()

	ids := func(w *Widget) map[string]bool {
		out := map[string]bool{}
		for _, a := range w.VisibleActions() {
			out[a.ID] = true
		}
		return out
	}

	w := newTestWidget(t, surf)
	got := ids(w)
	if !got[ActionFloat] || got[ActionDock] || got[ActionRestore] {
		t.Fatalf("docked toolbar wrong: %v", got)
	}
	if got[ActionRefresh] {
		t.Fatal("refresh shown without a refresh hook")
	}

	w.Float()
	got = ids(w)
	if got[ActionFloat] || !got[ActionDock] {
		t.Fatalf("floating toolbar wrong: %v", got)
	}

	w.Maximize()
	got = ids(w)
	if !got[ActionRestore] || got[ActionMaximize] {
		t.Fatalf("maximized toolbar wrong: %v", got)
	}
}

func TestRenderTruncatesLongTitle(t *testing.T) {
	t.Parallel()
	opts := DefaultOptions("w1", strings.Repeat("very long widget title ", 10))
	w := New(opts)
	w.SetSurface(newFakeSurface())

	out := w.Render(nil, 30, 8)
	for i, line := range strings.Split(out, "\n") {
		if got := lipgloss.Width(line); got != 30 {
			t.Fatalf("line %d width = %d, want 30", i, got)
		}
	}
}

func TestRenderMinimizedCollapsesBody(t *testing.T) {
	t.Parallel()
	w := New(Options{
		ID:      "w2",
		Title:   "Disk",
		Content: Static("SHOULD NOT APPEAR"),
	})
	w.SetSurface(newFakeSurface())
	w.ToggleMinimize()

	out := w.Render(nil, 40, 10)
	if strings.Contains(out, "SHOULD NOT APPEAR") {
		t.Fatal("minimized widget rendered its content")
	}
}
