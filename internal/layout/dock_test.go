package layout

import (
	"testing"

	"github.com/Dicklesworthstone/tessera/internal/geom"
	"github.com/Dicklesworthstone/tessera/internal/widget"
)

func TestDockSidePlacement(t *testing.T) {
	t.Parallel()
	d := NewDock()
	d.SetBounds(geom.NewRect(0, 0, 100, 40))

	main := testWidget("main")
	side := testWidget("side")
	d.AddWidget(main, DockAt(DockCenter))
	d.AddWidget(side, DockAt(DockLeft))

	sideRect, ok := d.WidgetRect(side)
	if !ok {
		t.Fatal("side widget has no rect")
	}
	mainRect, ok := d.WidgetRect(main)
	if !ok {
		t.Fatal("center widget has no rect")
	}
	if sideRect.X != 0 {
		t.Fatalf("left pane starts at x=%d, want 0", sideRect.X)
	}
	if mainRect.X != sideRect.W {
		t.Fatalf("center pane at x=%d, want %d", mainRect.X, sideRect.W)
	}
	if sideRect.W+mainRect.W != 100 {
		t.Fatalf("panes tile to %d, want 100", sideRect.W+mainRect.W)
	}
}

func TestDockRemoveCollapsesSplit(t *testing.T) {
	t.Parallel()
	d := NewDock()
	d.SetBounds(geom.NewRect(0, 0, 100, 40))

	main := testWidget("main")
	side := testWidget("side")
	bottom := testWidget("bottom")
	d.AddWidget(main, DockAt(DockCenter))
	d.AddWidget(side, DockAt(DockRight))
	d.AddWidget(bottom, DockAt(DockBottom))

	d.RemoveWidget(side)
	d.RemoveWidget(bottom)

	// The center pane expands to the full canvas once both splits
	// collapse.
	rect, ok := d.WidgetRect(main)
	if !ok {
		t.Fatal("center widget lost after sibling removal")
	}
	if rect != geom.NewRect(0, 0, 100, 40) {
		t.Fatalf("center rect = %v, want full canvas", rect)
	}
	if panes := d.PaneRects(); len(panes) != 1 {
		t.Fatalf("pane count = %d, want 1", len(panes))
	}
}

func TestDockCenterTabStack(t *testing.T) {
	t.Parallel()
	d := NewDock()
	d.SetBounds(geom.NewRect(0, 0, 80, 24))

	a, b, c := testWidget("a"), testWidget("b"), testWidget("c")
	d.AddWidget(a, Auto())
	d.AddWidget(b, DockAt(DockCenter))
	d.AddWidget(c, DockAt(DockCenter))

	panes := d.PaneRects()
	if len(panes) != 1 {
		t.Fatalf("pane count = %d, want 1", len(panes))
	}
	if len(panes[0].Widgets) != 3 {
		t.Fatalf("center stack size = %d, want 3", len(panes[0].Widgets))
	}
	if panes[0].ActiveTab != 2 {
		t.Fatalf("active tab = %d, want newest (2)", panes[0].ActiveTab)
	}

	d.ActivateTab(a)
	if panes := d.PaneRects(); panes[0].ActiveTab != 0 {
		t.Fatalf("active tab after ActivateTab = %d, want 0", panes[0].ActiveTab)
	}

	// Tab stack members share the pane rect.
	ra, _ := d.WidgetRect(a)
	rb, _ := d.WidgetRect(b)
	if ra != rb {
		t.Fatalf("tab rects differ: %v vs %v", ra, rb)
	}
}

func TestDockSingleOccupancy(t *testing.T) {
	t.Parallel()
	d := NewDock()
	d.SetBounds(geom.NewRect(0, 0, 100, 40))

	w := testWidget("w")
	d.AddWidget(w, DockAt(DockCenter))
	d.AddWidget(w, DockAt(DockLeft)) // re-dock relocates, never duplicates

	count := 0
	for _, occ := range d.Widgets() {
		if occ == w {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("widget appears %d times, want 1", count)
	}
}

func TestDockRejectsUnknownPosition(t *testing.T) {
	t.Parallel()
	d := NewDock()
	if d.AddWidget(testWidget("w"), DockAt("diagonal")) {
		t.Fatal("unknown dock position accepted")
	}
	if d.AddWidget(testWidget("w"), CellOf(0, 0)) {
		t.Fatal("grid placement accepted by dock engine")
	}
	if len(d.Widgets()) != 0 {
		t.Fatal("rejected placements left widgets behind")
	}
}

func TestDockResetCollapsesToCenterTabs(t *testing.T) {
	t.Parallel()
	d := NewDock()
	d.SetBounds(geom.NewRect(0, 0, 100, 40))
	a, b := testWidget("a"), testWidget("b")
	d.AddWidget(a, DockAt(DockCenter))
	d.AddWidget(b, DockAt(DockTop))

	d.Reset()
	panes := d.PaneRects()
	if len(panes) != 1 || len(panes[0].Widgets) != 2 {
		t.Fatalf("after reset: %d panes, want 1 with both widgets", len(panes))
	}
}

func TestDockApplyPreset(t *testing.T) {
	t.Parallel()
	d := NewDock()
	d.SetBounds(geom.NewRect(0, 0, 100, 40))

	byID := map[string]*widget.Widget{
		"nav":  testWidget("nav"),
		"main": testWidget("main"),
	}

	spec := &DockSpec{
		Direction: "horizontal",
		Ratio:     0.25,
		First:     &DockSpec{Widgets: []string{"nav"}},
		Second:    &DockSpec{Widgets: []string{"main", "ghost"}, Center: true},
	}
	ok := d.ApplyPreset(spec, func(id string) (*widget.Widget, bool) {
		w, found := byID[id]
		return w, found
	})
	if !ok {
		t.Fatal("valid preset rejected")
	}

	panes := d.PaneRects()
	if len(panes) != 2 {
		t.Fatalf("pane count = %d, want 2", len(panes))
	}
	if len(panes[0].Widgets) != 1 || panes[0].Widgets[0].ID() != "nav" {
		t.Fatalf("first pane = %v", panes[0].Widgets)
	}
	// Unresolvable ids are skipped, not errors.
	if len(panes[1].Widgets) != 1 || panes[1].Widgets[0].ID() != "main" {
		t.Fatalf("center pane = %v", panes[1].Widgets)
	}
	if !panes[1].Center {
		t.Fatal("center flag lost through preset")
	}

	// New center docks land in the preset's center pane.
	d.AddWidget(testWidget("extra"), DockAt(DockCenter))
	panes = d.PaneRects()
	if len(panes[1].Widgets) != 2 {
		t.Fatalf("center stack = %d, want 2", len(panes[1].Widgets))
	}
}

func TestDockApplyPresetInvalid(t *testing.T) {
	t.Parallel()
	d := NewDock()
	d.AddWidget(testWidget("keep"), DockAt(DockCenter))

	bad := []*DockSpec{
		nil,
		{Direction: "horizontal", First: &DockSpec{}}, // missing second
		{Direction: "sideways", First: &DockSpec{}, Second: &DockSpec{}},
	}
	for i, spec := range bad {
		if d.ApplyPreset(spec, func(string) (*widget.Widget, bool) { return nil, false }) {
			t.Fatalf("invalid preset %d accepted", i)
		}
	}
	if len(d.Widgets()) != 1 {
		t.Fatal("failed preset disturbed the existing tree")
	}
}
