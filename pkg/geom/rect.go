package geom

import "math"

// Rect represents an axis-aligned rectangle.
type Rect struct {
	X, Y, Width, Height float64
}

// NewRect creates a rectangle from two corner points.
func NewRect(x1, y1, x2, y2 float64) Rect {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	return Rect{
		X:      x1,
		Y:      y1,
		Width:  x2 - x1,
		Height: y2 - y1,
	}
}

// Left returns the left edge.
func (r Rect) Left() float64 { return r.X }

// Top returns the top edge.
func (r Rect) Top() float64 { return r.Y }

// Right returns the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Center returns the center point.
func (r Rect) Center() Point {
	return Point{r.X + r.Width/2, r.Y + r.Height/2}
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Contains returns true if the point is inside the rectangle.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.Width &&
		p.Y >= r.Y && p.Y <= r.Y+r.Height
}

// Intersects returns true if this rectangle intersects another.
func (r Rect) Intersects(other Rect) bool {
	return r.X < other.X+other.Width && r.X+r.Width > other.X &&
		r.Y < other.Y+other.Height && r.Y+r.Height > other.Y
}

// Corners returns the four corners clockwise from the top-left.
func (r Rect) Corners() [4]Point {
	return [4]Point{
		{r.X, r.Y},
		{r.X + r.Width, r.Y},
		{r.X + r.Width, r.Y + r.Height},
		{r.X, r.Y + r.Height},
	}
}

// Transform applies a matrix transformation to the rectangle and returns
// the bounding box of the mapped corners.
func (r Rect) Transform(m Matrix) Rect {
	corners := r.Corners()
	first := m.TransformPoint(corners[0])
	minX, maxX := first.X, first.X
	minY, maxY := first.Y, first.Y

	for _, c := range corners[1:] {
		p := m.TransformPoint(c)
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}

	return NewRect(minX, minY, maxX, maxY)
}

// ScaleToFit selects how RectToRect places the source inside the destination.
type ScaleToFit int

const (
	// Fill scales each axis independently to fill the destination exactly.
	Fill ScaleToFit = iota
	// Start keeps the aspect ratio and aligns to the left/top edges.
	Start
	// Center keeps the aspect ratio and centers the result.
	Center
	// End keeps the aspect ratio and aligns to the right/bottom edges.
	End
)

// RectToRect returns the matrix mapping src onto dst.
// An empty src maps to the identity.
func RectToRect(src, dst Rect, fit ScaleToFit) Matrix {
	if src.Empty() {
		return Identity()
	}

	sx := dst.Width / src.Width
	sy := dst.Height / src.Height
	if fit == Fill {
		return Matrix{sx, 0, 0, sy, dst.X - src.X*sx, dst.Y - src.Y*sy}
	}

	s := math.Min(sx, sy)
	tx := dst.X - src.X*s
	ty := dst.Y - src.Y*s
	dw := dst.Width - src.Width*s
	dh := dst.Height - src.Height*s
	switch fit {
	case Center:
		tx += dw / 2
		ty += dh / 2
	case End:
		tx += dw
		ty += dh
	}
	return Matrix{s, 0, 0, s, tx, ty}
}
