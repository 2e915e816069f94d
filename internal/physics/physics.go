// Package physics provides bounding-box collision detection.
package physics

// Rect is an axis-aligned bounding box. Y grows downward.
type Rect struct {
	Left, Top, Right, Bottom float64
}

// RectAt builds a Rect from a top-left corner and a size.
func RectAt(x, y, w, h float64) Rect {
	return Rect{Left: x, Top: y, Right: x + w, Bottom: y + h}
}

// Width returns the horizontal extent of the box.
func (r Rect) Width() float64 {
	return r.Right - r.Left
}

// Height returns the vertical extent of the box.
func (r Rect) Height() float64 {
	return r.Bottom - r.Top
}

// Center returns the center point of the box.
func (r Rect) Center() (float64, float64) {
	return (r.Left + r.Right) / 2, (r.Top + r.Bottom) / 2
}

// Overlaps reports whether two boxes intersect on both axes.
// Boxes that only share an edge count as overlapping.
func Overlaps(a, b Rect) bool {
	return !(a.Top > b.Bottom ||
		a.Bottom < b.Top ||
		a.Left > b.Right ||
		a.Right < b.Left)
}
