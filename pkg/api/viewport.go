package api

import (
	"pinchzoom/pkg/geom"
	"pinchzoom/pkg/raster"
)

// Viewport shows a photo in a fixed-size area. It implements
// engine.Surface.
type Viewport struct {
	photo  *Photo
	width  float64
	height float64
}

// NewViewport returns a width×height viewport showing p, which may be nil.
func NewViewport(p *Photo, width, height float64) *Viewport {
	return &Viewport{photo: p, width: width, height: height}
}

// ViewportSize returns the drawable area.
func (v *Viewport) ViewportSize() (w, h float64) {
	return v.width, v.height
}

// ContentSize returns the photo's intrinsic size, or ok=false without one.
func (v *Viewport) ContentSize() (w, h float64, ok bool) {
	if v.photo == nil {
		return 0, 0, false
	}
	return float64(v.photo.Width()), float64(v.photo.Height()), true
}

// Resize changes the viewport size. Call Engine.Layout afterwards.
func (v *Viewport) Resize(width, height float64) {
	v.width, v.height = width, height
}

// SetPhoto swaps the content. Call Engine.Update afterwards.
func (v *Viewport) SetPhoto(p *Photo) {
	v.photo = p
}

// Photo returns the current content.
func (v *Viewport) Photo() *Photo {
	return v.photo
}

// Frame returns the frame to paint for display matrix m.
func (v *Viewport) Frame(m geom.Matrix) raster.Frame {
	f := raster.Frame{
		Width:   int(v.width + 0.5),
		Height:  int(v.height + 0.5),
		Display: m,
	}
	if v.photo != nil {
		f.Content = v.photo.Image()
	}
	return f
}
