package layout

import (
	"math"

	"github.com/Dicklesworthstone/tessera/internal/geom"
	"github.com/Dicklesworthstone/tessera/internal/widget"
)

// sideRatio is the fraction of the split a newly docked side pane takes.
const sideRatio = 0.3

// dockLeaf holds the widgets of one pane. Only the center leaf stacks
// more than one widget; side leaves hold at most one.
type dockLeaf struct {
	widgets   []*widget.Widget
	activeTab int
}

type dockSplit struct {
	horizontal bool // true: first|second side by side, false: stacked
	ratio      float64
	first      *dockNode
	second     *dockNode
}

// dockNode is either a split or a leaf, never both.
type dockNode struct {
	split *dockSplit
	leaf  *dockLeaf
}

var _ Engine = (*Dock)(nil)

// Dock is a binary split-pane tree. The tree starts as a single center
// leaf; docking to a side splits the root so the new pane takes that
// side and the rest of the tree keeps the remainder.
type Dock struct {
	root   *dockNode
	center *dockNode
	bounds geom.Rect
}

// NewDock builds an empty dock tree: a single center leaf.
func NewDock() *Dock {
	center := &dockNode{leaf: &dockLeaf{}}
	return &Dock{root: center, center: center}
}

// SetBounds implements Engine.
func (d *Dock) SetBounds(r geom.Rect) { d.bounds = r }

// Bounds implements Engine.
func (d *Dock) Bounds() geom.Rect { return d.bounds }

// AddWidget implements Engine. Dock placements insert at the named
// position; Auto placements land in the center tab stack. Unrecognized
// positions are no-ops.
func (d *Dock) AddWidget(w *widget.Widget, p Placement) bool {
	if w == nil {
		return false
	}
	pos := DockCenter
	if !p.IsAuto() {
		var ok bool
		pos, ok = p.Dock()
		if !ok || !pos.Valid() {
			return false
		}
	}
	d.RemoveWidget(w)

	if pos == DockCenter {
		d.center.leaf.widgets = append(d.center.leaf.widgets, w)
		d.center.leaf.activeTab = len(d.center.leaf.widgets) - 1
		return true
	}

	pane := &dockNode{leaf: &dockLeaf{widgets: []*widget.Widget{w}}}
	old := d.root
	split := &dockSplit{
		horizontal: pos == DockLeft || pos == DockRight,
	}
	switch pos {
	case DockLeft, DockTop:
		split.ratio = sideRatio
		split.first, split.second = pane, old
	case DockRight, DockBottom:
		split.ratio = 1 - sideRatio
		split.first, split.second = old, pane
	}
	d.root = &dockNode{split: split}
	return true
}

// RemoveWidget implements Engine: removes the widget's leaf entry and
// collapses any split left with an empty side, so the tree never keeps
// empty unreachable nodes. The center leaf survives empty.
func (d *Dock) RemoveWidget(w *widget.Widget) {
	leaf := d.leafOf(w)
	if leaf == nil {
		return
	}
	for i, occ := range leaf.widgets {
		if occ == w {
			leaf.widgets = append(leaf.widgets[:i], leaf.widgets[i+1:]...)
			break
		}
	}
	if leaf.activeTab >= len(leaf.widgets) {
		leaf.activeTab = len(leaf.widgets) - 1
	}
	if leaf.activeTab < 0 {
		leaf.activeTab = 0
	}
	d.root = d.prune(d.root)
}

// prune collapses splits whose sides emptied out, replacing the split
// with its surviving side.
func (d *Dock) prune(n *dockNode) *dockNode {
	if n == nil || n.leaf != nil {
		return n
	}
	n.split.first = d.prune(n.split.first)
	n.split.second = d.prune(n.split.second)
	if d.empty(n.split.first) {
		return n.split.second
	}
	if d.empty(n.split.second) {
		return n.split.first
	}
	return n
}

// empty reports whether a subtree holds no widgets and is not the
// center pane.
func (d *Dock) empty(n *dockNode) bool {
	if n == nil {
		return true
	}
	if n.leaf != nil {
		return n != d.center && len(n.leaf.widgets) == 0
	}
	return d.empty(n.split.first) && d.empty(n.split.second)
}

func (d *Dock) leafOf(w *widget.Widget) *dockLeaf {
	var found *dockLeaf
	d.walkLeaves(d.root, func(n *dockNode) {
		for _, occ := range n.leaf.widgets {
			if occ == w {
				found = n.leaf
			}
		}
	})
	return found
}

func (d *Dock) walkLeaves(n *dockNode, fn func(*dockNode)) {
	if n == nil {
		return
	}
	if n.leaf != nil {
		fn(n)
		return
	}
	d.walkLeaves(n.split.first, fn)
	d.walkLeaves(n.split.second, fn)
}

// Widgets implements Engine: in-order pane traversal, tab stacks in
// stack order.
func (d *Dock) Widgets() []*widget.Widget {
	var out []*widget.Widget
	d.walkLeaves(d.root, func(n *dockNode) {
		out = append(out, n.leaf.widgets...)
	})
	return out
}

// Widget implements Engine.
func (d *Dock) Widget(id string) (*widget.Widget, bool) {
	for _, w := range d.Widgets() {
		if w.ID() == id {
			return w, true
		}
	}
	return nil, false
}

// FindFreeSpace implements Engine. Docking has no free-space notion;
// new widgets stack in the center pane.
func (d *Dock) FindFreeSpace(_, _ int) Placement { return DockAt(DockCenter) }

// WidgetRect implements Engine. Every widget in a tab stack resolves to
// its pane's rectangle; only the active tab is drawn there.
func (d *Dock) WidgetRect(w *widget.Widget) (geom.Rect, bool) {
	var out geom.Rect
	found := false
	d.walkRects(d.root, d.bounds, func(n *dockNode, r geom.Rect) {
		for _, occ := range n.leaf.widgets {
			if occ == w {
				out, found = r, true
			}
		}
	})
	return out, found
}

// PaneRects returns, per leaf traversal order, each pane's rectangle
// and its widget stack. Used by the dashboard renderer.
func (d *Dock) PaneRects() []PaneRect {
	var out []PaneRect
	d.walkRects(d.root, d.bounds, func(n *dockNode, r geom.Rect) {
		out = append(out, PaneRect{
			Rect:      r,
			Widgets:   append([]*widget.Widget(nil), n.leaf.widgets...),
			ActiveTab: n.leaf.activeTab,
			Center:    n == d.center,
		})
	})
	return out
}

// PaneRect is one rendered dock pane.
type PaneRect struct {
	Rect      geom.Rect
	Widgets   []*widget.Widget
	ActiveTab int
	Center    bool
}

func (d *Dock) walkRects(n *dockNode, r geom.Rect, fn func(*dockNode, geom.Rect)) {
	if n == nil || r.Empty() {
		return
	}
	if n.leaf != nil {
		fn(n, r)
		return
	}
	s := n.split
	if s.horizontal {
		firstW := int(math.Round(s.ratio * float64(r.W)))
		firstW = geom.ClampInt(firstW, 0, r.W)
		d.walkRects(s.first, geom.NewRect(r.X, r.Y, firstW, r.H), fn)
		d.walkRects(s.second, geom.NewRect(r.X+firstW, r.Y, r.W-firstW, r.H), fn)
		return
	}
	firstH := int(math.Round(s.ratio * float64(r.H)))
	firstH = geom.ClampInt(firstH, 0, r.H)
	d.walkRects(s.first, geom.NewRect(r.X, r.Y, r.W, firstH), fn)
	d.walkRects(s.second, geom.NewRect(r.X, r.Y+firstH, r.W, r.H-firstH), fn)
}

// PlacementOf implements Engine: reconstructs the dock position from
// the leaf's side of its nearest split. Center members report
// DockCenter.
func (d *Dock) PlacementOf(w *widget.Widget) (Placement, bool) {
	pos, ok := d.positionOf(d.root, w)
	if !ok {
		return Placement{}, false
	}
	return DockAt(pos), true
}

func (d *Dock) positionOf(n *dockNode, w *widget.Widget) (DockPosition, bool) {
	if n == nil {
		return "", false
	}
	if n.leaf != nil {
		for _, occ := range n.leaf.widgets {
			if occ == w {
				return DockCenter, true
			}
		}
		return "", false
	}
	if pos, ok := d.positionOf(n.split.first, w); ok {
		if pos == DockCenter && n.split.first.leaf != nil && n.split.first != d.center {
			if n.split.horizontal {
				return DockLeft, true
			}
			return DockTop, true
		}
		return pos, true
	}
	if pos, ok := d.positionOf(n.split.second, w); ok {
		if pos == DockCenter && n.split.second.leaf != nil && n.split.second != d.center {
			if n.split.horizontal {
				return DockRight, true
			}
			return DockBottom, true
		}
		return pos, true
	}
	return "", false
}

// ActivateTab makes the given widget its pane's visible tab.
func (d *Dock) ActivateTab(w *widget.Widget) {
	d.walkLeaves(d.root, func(n *dockNode) {
		for i, occ := range n.leaf.widgets {
			if occ == w {
				n.leaf.activeTab = i
			}
		}
	})
}

// Reset implements Engine: collapses the tree back to a single center
// leaf holding every widget as tabs, in traversal order.
func (d *Dock) Reset() {
	all := d.Widgets()
	center := &dockNode{leaf: &dockLeaf{widgets: all}}
	d.root, d.center = center, center
}

// Destroy implements Engine.
func (d *Dock) Destroy() {
	for _, w := range d.Widgets() {
		w.SetSurface(nil)
		w.Close()
	}
	center := &dockNode{leaf: &dockLeaf{}}
	d.root, d.center = center, center
}

// DockSpec is a declarative dock-tree preset. A node is either a split
// (Direction set) or a leaf (Widgets set); Center marks the leaf that
// becomes the tab-stacking center pane.
type DockSpec struct {
	Direction string    `yaml:"direction,omitempty"` // "horizontal" or "vertical"
	Ratio     float64   `yaml:"ratio,omitempty"`
	First     *DockSpec `yaml:"first,omitempty"`
	Second    *DockSpec `yaml:"second,omitempty"`
	Widgets   []string  `yaml:"widgets,omitempty"`
	Center    bool      `yaml:"center,omitempty"`
}

// ApplyPreset rebuilds the tree from a spec, resolving widget ids
// through the given lookup. Ids the lookup cannot resolve are skipped.
// Specs with no center leaf get one appended at the tree's right so the
// invariant "a center pane always exists" holds. Reports false for a
// nil or structurally invalid spec, leaving the tree untouched.
func (d *Dock) ApplyPreset(spec *DockSpec, resolve func(id string) (*widget.Widget, bool)) bool {
	if spec == nil {
		return false
	}
	var center *dockNode
	root := buildDockNode(spec, resolve, &center)
	if root == nil {
		return false
	}
	if center == nil {
		center = &dockNode{leaf: &dockLeaf{}}
		root = &dockNode{split: &dockSplit{
			horizontal: true,
			ratio:      1 - sideRatio,
			first:      root,
			second:     center,
		}}
	}
	d.root, d.center = root, center
	return true
}

func buildDockNode(spec *DockSpec, resolve func(string) (*widget.Widget, bool), center **dockNode) *dockNode {
	if spec.Direction != "" {
		if spec.First == nil || spec.Second == nil {
			return nil
		}
		if spec.Direction != "horizontal" && spec.Direction != "vertical" {
			return nil
		}
		first := buildDockNode(spec.First, resolve, center)
		second := buildDockNode(spec.Second, resolve, center)
		if first == nil || second == nil {
			return nil
		}
		ratio := spec.Ratio
		if ratio <= 0 || ratio >= 1 {
			ratio = 0.5
		}
		return &dockNode{split: &dockSplit{
			horizontal: spec.Direction == "horizontal",
			ratio:      ratio,
			first:      first,
			second:     second,
		}}
	}
	leaf := &dockLeaf{}
	for _, id := range spec.Widgets {
		if w, ok := resolve(id); ok {
			leaf.widgets = append(leaf.widgets, w)
		}
	}
	n := &dockNode{leaf: leaf}
	if spec.Center {
		*center = n
	}
	return n
}
