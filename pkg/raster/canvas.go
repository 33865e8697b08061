// Package raster paints viewport frames: content images drawn through a
// display matrix onto a fixed-size canvas, with optional outlines.
package raster

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/vector"

	"pinchzoom/pkg/geom"
)

// Canvas represents a viewport-sized drawing surface.
type Canvas struct {
	img    *image.RGBA
	width  int
	height int

	// Default background
	background color.Color
}

// NewCanvas creates a new canvas with the given dimensions.
func NewCanvas(width, height int) *Canvas {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	c := &Canvas{
		img:        image.NewRGBA(image.Rect(0, 0, width, height)),
		width:      width,
		height:     height,
		background: color.Black,
	}
	c.Clear()
	return c
}

// Image returns the underlying RGBA image.
func (c *Canvas) Image() *image.RGBA {
	return c.img
}

// Width returns the canvas width in pixels.
func (c *Canvas) Width() int {
	return c.width
}

// Height returns the canvas height in pixels.
func (c *Canvas) Height() int {
	return c.height
}

// Clear fills the canvas with the background color.
func (c *Canvas) Clear() {
	draw.Draw(c.img, c.img.Bounds(), &image.Uniform{c.background}, image.Point{}, draw.Src)
}

// SetBackground sets the background color.
func (c *Canvas) SetBackground(col color.Color) {
	c.background = col
}

// DrawImage draws src through m, which maps src pixel coordinates (relative
// to the bounds origin) onto the canvas.
func (c *Canvas) DrawImage(src image.Image, m geom.Matrix, q Quality) {
	if src == nil || c.width == 0 || c.height == 0 {
		return
	}
	sr := src.Bounds()
	if sr.Empty() {
		return
	}
	if m.Determinant() == 0 {
		return
	}
	s2d := geom.Translate(float64(-sr.Min.X), float64(-sr.Min.Y)).Multiply(m)
	q.interpolator().Transform(c.img, s2d.Aff3(), src, sr, draw.Over, nil)
}

// FillPolygon fills the closed polygon pts with col.
func (c *Canvas) FillPolygon(pts []geom.Point, col color.Color) {
	if len(pts) < 3 || c.width == 0 || c.height == 0 {
		return
	}
	r := vector.NewRasterizer(c.width, c.height)
	r.DrawOp = draw.Over
	r.MoveTo(float32(pts[0].X), float32(pts[0].Y))
	for _, p := range pts[1:] {
		r.LineTo(float32(p.X), float32(p.Y))
	}
	r.ClosePath()
	r.Draw(c.img, c.img.Bounds(), &image.Uniform{col}, image.Point{})
}

// StrokePolygon outlines the closed polygon pts with lines of the given
// width. Each edge is filled as its own quad so corners overlap.
func (c *Canvas) StrokePolygon(pts []geom.Point, col color.Color, width float64) {
	if len(pts) < 2 || width <= 0 {
		return
	}
	half := width / 2
	for i := range pts {
		a, b := pts[i], pts[(i+1)%len(pts)]
		d := b.Sub(a)
		length := d.Length()
		if length == 0 {
			continue
		}
		// Perpendicular of the edge, extended by half the width on each side
		// and along the edge so adjacent quads meet at the corners.
		n := geom.Point{X: -d.Y / length * half, Y: d.X / length * half}
		t := geom.Point{X: d.X / length * half, Y: d.Y / length * half}
		c.FillPolygon([]geom.Point{
			a.Sub(t).Add(n),
			b.Add(t).Add(n),
			b.Add(t).Sub(n),
			a.Sub(t).Sub(n),
		}, col)
	}
}

// StrokeRect outlines r.
func (c *Canvas) StrokeRect(r geom.Rect, col color.Color, width float64) {
	corners := r.Corners()
	c.StrokePolygon(corners[:], col, width)
}

// SetPixel sets a single pixel.
func (c *Canvas) SetPixel(x, y int, col color.Color) {
	if x >= 0 && x < c.width && y >= 0 && y < c.height {
		c.img.Set(x, y, col)
	}
}

// GetPixel gets a pixel color.
func (c *Canvas) GetPixel(x, y int) color.Color {
	if x >= 0 && x < c.width && y >= 0 && y < c.height {
		return c.img.At(x, y)
	}
	return color.Transparent
}

// quadOf returns the four corners of a w×h image mapped through m.
func quadOf(m geom.Matrix, w, h float64) []geom.Point {
	corners := geom.Rect{Width: w, Height: h}.Corners()
	out := make([]geom.Point, len(corners))
	for i, p := range corners {
		out[i] = m.TransformPoint(p)
	}
	return out
}
