package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-9

func assertMatrix(t *testing.T, want, got Matrix) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], eps, "element %d of %v", i, got)
	}
}

func TestMultiplyOrder(t *testing.T) {
	// Scale then translate: the translation is not scaled.
	m := Scale(2, 2).Multiply(Translate(10, 0))
	x, y := m.Transform(1, 1)
	assert.InDelta(t, 12.0, x, eps)
	assert.InDelta(t, 2.0, y, eps)

	// Translate then scale: the translation is scaled.
	m = Translate(10, 0).Multiply(Scale(2, 2))
	x, _ = m.Transform(1, 1)
	assert.InDelta(t, 22.0, x, eps)
}

func TestPostScaleAboutPivot(t *testing.T) {
	m := Identity()
	m.PostScale(2, 2, 100, 50)

	x, y := m.Transform(100, 50)
	assert.InDelta(t, 100.0, x, eps, "pivot must stay fixed")
	assert.InDelta(t, 50.0, y, eps, "pivot must stay fixed")
	assert.InDelta(t, 2.0, m.ScaleX(), eps)
}

func TestPostRotateAboutPivot(t *testing.T) {
	m := Identity()
	m.PostRotate(90, 10, 10)

	x, y := m.Transform(20, 10)
	assert.InDelta(t, 10.0, x, eps)
	assert.InDelta(t, 20.0, y, eps)
	assert.InDelta(t, 90.0, m.RotationDeg(), eps)
}

func TestScaleXIsRotationInvariant(t *testing.T) {
	for _, deg := range []float64{0, 30, 90, 135, 180, 270, 359} {
		m := Scale(3, 3)
		m.PostRotate(deg, 0, 0)
		assert.InDelta(t, 3.0, m.ScaleX(), eps, "deg=%v", deg)
	}
}

func TestQuarterTurnsAreExact(t *testing.T) {
	m := Scale(1.5, 1.5)
	for i := 0; i < 4; i++ {
		m.PostRotate(90, 0, 0)
	}
	assert.Equal(t, Scale(1.5, 1.5), m)
}

func TestInverse(t *testing.T) {
	m := Scale(2, 3).Multiply(RotateDeg(30)).Multiply(Translate(5, -7))
	assertMatrix(t, Identity(), m.Multiply(m.Inverse()))
	assert.Equal(t, Identity(), Matrix{}.Inverse())
}

func TestAff3RoundTrip(t *testing.T) {
	m := Scale(2, 3).Multiply(RotateDeg(45)).Multiply(Translate(5, -7))
	a := m.Aff3()

	// x/image: dst = (a0*sx + a1*sy + a2, a3*sx + a4*sy + a5)
	x, y := m.Transform(3, 4)
	assert.InDelta(t, x, a[0]*3+a[1]*4+a[2], eps)
	assert.InDelta(t, y, a[3]*3+a[4]*4+a[5], eps)
	assert.Equal(t, m, FromAff3(a))
}

func TestRectTransformRotated(t *testing.T) {
	r := Rect{0, 0, 200, 100}
	got := r.Transform(RotateDeg(90))
	assert.InDelta(t, -100.0, got.X, eps)
	assert.InDelta(t, 0.0, got.Y, eps)
	assert.InDelta(t, 100.0, got.Width, eps)
	assert.InDelta(t, 200.0, got.Height, eps)
}

func TestRectToRect(t *testing.T) {
	src := Rect{0, 0, 600, 400}
	dst := Rect{0, 0, 300, 400}

	tests := []struct {
		name string
		fit  ScaleToFit
		want Rect
	}{
		{"fill", Fill, Rect{0, 0, 300, 400}},
		{"start", Start, Rect{0, 0, 300, 200}},
		{"center", Center, Rect{0, 100, 300, 200}},
		{"end", End, Rect{0, 200, 300, 200}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := src.Transform(RectToRect(src, dst, tt.fit))
			assert.InDelta(t, tt.want.X, got.X, eps)
			assert.InDelta(t, tt.want.Y, got.Y, eps)
			assert.InDelta(t, tt.want.Width, got.Width, eps)
			assert.InDelta(t, tt.want.Height, got.Height, eps)
		})
	}

	require.Equal(t, Identity(), RectToRect(Rect{}, dst, Center))
}

func TestRectContains(t *testing.T) {
	r := Rect{10, 10, 100, 50}
	assert.True(t, r.Contains(Point{10, 10}))
	assert.True(t, r.Contains(Point{110, 60}))
	assert.False(t, r.Contains(Point{9.9, 30}))
	assert.False(t, r.Contains(Point{50, math.Inf(1)}))
}
