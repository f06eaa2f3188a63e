// Package geom provides cell-space geometry primitives shared by the
// layout engines and the dashboard compositor.
package geom

// Point is a position in cell coordinates.
type Point struct {
	X int
	Y int
}

// Size is a width/height pair in cells.
type Size struct {
	W int
	H int
}

// Rect is an axis-aligned rectangle in cell coordinates.
type Rect struct {
	X int
	Y int
	W int
	H int
}

// NewRect returns a rectangle with negative dimensions clamped to zero.
func NewRect(x, y, w, h int) Rect {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return Rect{X: x, Y: y, W: w, H: h}
}

// Contains reports whether the point (x, y) falls inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Empty reports whether r has no area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Center returns the center point of r.
func (r Rect) Center() Point {
	return Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Overlaps reports whether r and other share any cell.
func (r Rect) Overlaps(other Rect) bool {
	if r.Empty() || other.Empty() {
		return false
	}
	return r.X < other.X+other.W && other.X < r.X+r.W &&
		r.Y < other.Y+other.H && other.Y < r.Y+r.H
}

// ClampInto returns r moved (and if necessary shrunk) so it fits inside
// bounds. A rectangle larger than bounds is pinned to the bounds origin
// and truncated.
func (r Rect) ClampInto(bounds Rect) Rect {
	if r.W > bounds.W {
		r.W = bounds.W
	}
	if r.H > bounds.H {
		r.H = bounds.H
	}
	r.X = ClampInt(r.X, bounds.X, bounds.X+bounds.W-r.W)
	r.Y = ClampInt(r.Y, bounds.Y, bounds.Y+bounds.H-r.H)
	return r
}

// ClampInt limits v to [lo, hi]. If hi < lo the lower bound wins.
func ClampInt(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
