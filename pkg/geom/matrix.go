// Package geom provides the 2D affine geometry used by the viewport engine:
// matrices, points and axis-aligned rectangles.
package geom

import (
	"math"

	"golang.org/x/image/math/f64"
)

// Matrix is an affine transform stored as the six meaningful entries of
//
//	[A B 0]
//	[C D 0]
//	[E F 1]
//
// Points are row vectors, so x' = A*x + C*y + E and y' = B*x + D*y + F.
type Matrix [6]float64

// Identity returns the identity matrix.
func Identity() Matrix {
	return Matrix{1, 0, 0, 1, 0, 0}
}

// Translate returns a translation matrix.
func Translate(tx, ty float64) Matrix {
	return Matrix{1, 0, 0, 1, tx, ty}
}

// Scale returns a scaling matrix.
func Scale(sx, sy float64) Matrix {
	return Matrix{sx, 0, 0, sy, 0, 0}
}

// Rotate returns a rotation matrix (angle in radians).
// With y pointing down, positive angles turn clockwise on screen.
func Rotate(angle float64) Matrix {
	cos := math.Cos(angle)
	sin := math.Sin(angle)
	return Matrix{cos, sin, -sin, cos, 0, 0}
}

// RotateDeg returns a rotation matrix (angle in degrees).
// Quarter turns are exact so repeated 90 degree rotations do not drift.
func RotateDeg(angle float64) Matrix {
	switch math.Mod(math.Mod(angle, 360)+360, 360) {
	case 0:
		return Identity()
	case 90:
		return Matrix{0, 1, -1, 0, 0, 0}
	case 180:
		return Matrix{-1, 0, 0, -1, 0, 0}
	case 270:
		return Matrix{0, -1, 1, 0, 0, 0}
	}
	return Rotate(angle * math.Pi / 180)
}

// Multiply multiplies two matrices: result = m * other.
// The result applies m first, then other.
func (m Matrix) Multiply(other Matrix) Matrix {
	return Matrix{
		m[0]*other[0] + m[1]*other[2],
		m[0]*other[1] + m[1]*other[3],
		m[2]*other[0] + m[3]*other[2],
		m[2]*other[1] + m[3]*other[3],
		m[4]*other[0] + m[5]*other[2] + other[4],
		m[4]*other[1] + m[5]*other[3] + other[5],
	}
}

// PostConcat appends other to m so that other is applied after m.
func (m *Matrix) PostConcat(other Matrix) {
	*m = m.Multiply(other)
}

// PostTranslate appends a translation.
func (m *Matrix) PostTranslate(dx, dy float64) {
	m[4] += dx
	m[5] += dy
}

// PostScale appends a scale about the pivot (px, py).
func (m *Matrix) PostScale(sx, sy, px, py float64) {
	m.PostConcat(pivoted(Scale(sx, sy), px, py))
}

// PostRotate appends a rotation of deg degrees about the pivot (px, py).
func (m *Matrix) PostRotate(deg, px, py float64) {
	m.PostConcat(pivoted(RotateDeg(deg), px, py))
}

func pivoted(t Matrix, px, py float64) Matrix {
	if px == 0 && py == 0 {
		return t
	}
	return Translate(-px, -py).Multiply(t).Multiply(Translate(px, py))
}

// Transform applies the matrix to a point.
func (m Matrix) Transform(x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// TransformPoint applies the matrix to a Point.
func (m Matrix) TransformPoint(p Point) Point {
	x, y := m.Transform(p.X, p.Y)
	return Point{x, y}
}

// Determinant returns the determinant of the matrix.
func (m Matrix) Determinant() float64 {
	return m[0]*m[3] - m[1]*m[2]
}

// Inverse returns the inverse of the matrix.
// A singular matrix inverts to the identity.
func (m Matrix) Inverse() Matrix {
	det := m.Determinant()
	if det == 0 {
		return Identity()
	}

	return Matrix{
		m[3] / det,
		-m[1] / det,
		-m[2] / det,
		m[0] / det,
		(m[2]*m[5] - m[3]*m[4]) / det,
		(m[1]*m[4] - m[0]*m[5]) / det,
	}
}

// ScaleX returns the horizontal scaling factor, sqrt(A² + B²).
// It is invariant under rotation.
func (m Matrix) ScaleX() float64 {
	return math.Sqrt(m[0]*m[0] + m[1]*m[1])
}

// Rotation returns the rotation angle in radians.
func (m Matrix) Rotation() float64 {
	return math.Atan2(m[1], m[0])
}

// RotationDeg returns the rotation angle in degrees, in [0, 360).
func (m Matrix) RotationDeg() float64 {
	deg := m.Rotation() * 180 / math.Pi
	if deg < 0 {
		deg += 360
	}
	return deg
}

// IsIdentity reports whether m is exactly the identity.
func (m Matrix) IsIdentity() bool {
	return m == Identity()
}

// Aff3 converts the matrix to the source-to-destination form used by
// golang.org/x/image/draw.
func (m Matrix) Aff3() f64.Aff3 {
	return f64.Aff3{
		m[0], m[2], m[4],
		m[1], m[3], m[5],
	}
}

// FromAff3 converts an x/image affine transform back to a Matrix.
func FromAff3(a f64.Aff3) Matrix {
	return Matrix{a[0], a[3], a[1], a[4], a[2], a[5]}
}

// Point represents a 2D point.
type Point struct {
	X, Y float64
}

// Add returns the sum of two points (vector addition).
func (p Point) Add(other Point) Point {
	return Point{p.X + other.X, p.Y + other.Y}
}

// Sub returns the difference of two points.
func (p Point) Sub(other Point) Point {
	return Point{p.X - other.X, p.Y - other.Y}
}

// Scale scales the point by a factor.
func (p Point) Scale(s float64) Point {
	return Point{p.X * s, p.Y * s}
}

// Length returns the distance from origin.
func (p Point) Length() float64 {
	return math.Sqrt(p.X*p.X + p.Y*p.Y)
}
