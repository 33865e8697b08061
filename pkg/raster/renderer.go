package raster

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"golang.org/x/image/draw"

	"pinchzoom/pkg/geom"
)

// Quality selects the resampling kernel used to draw content.
type Quality int

const (
	Nearest Quality = iota
	ApproxBiLinear
	BiLinear
	CatmullRom
)

var qualityNames = [...]string{
	Nearest:        "nearest",
	ApproxBiLinear: "approx",
	BiLinear:       "bilinear",
	CatmullRom:     "catmullrom",
}

func (q Quality) String() string {
	if q < 0 || int(q) >= len(qualityNames) {
		return fmt.Sprintf("Quality(%d)", int(q))
	}
	return qualityNames[q]
}

// ParseQuality parses a quality name as printed by String.
func ParseQuality(s string) (Quality, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for i, name := range qualityNames {
		if name == key {
			return Quality(i), nil
		}
	}
	return 0, fmt.Errorf("unknown quality %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (q Quality) MarshalText() ([]byte, error) {
	return []byte(q.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (q *Quality) UnmarshalText(text []byte) error {
	v, err := ParseQuality(string(text))
	if err != nil {
		return err
	}
	*q = v
	return nil
}

func (q Quality) interpolator() draw.Transformer {
	switch q {
	case ApproxBiLinear:
		return draw.ApproxBiLinear
	case BiLinear:
		return draw.BiLinear
	case CatmullRom:
		return draw.CatmullRom
	}
	return draw.NearestNeighbor
}

// Frame is the state needed to paint one viewport frame.
type Frame struct {
	Width, Height int
	Content       image.Image
	// Display maps content pixels to viewport pixels.
	Display geom.Matrix
}

// Renderer paints frames onto canvases.
type Renderer struct {
	Background   color.Color
	Quality      Quality
	Outline      color.Color
	OutlineWidth float64
}

// NewRenderer returns a renderer with a black background, bilinear
// resampling and no outline.
func NewRenderer() *Renderer {
	return &Renderer{
		Background: color.Black,
		Quality:    BiLinear,
	}
}

// Render paints f onto a new canvas of the frame's size.
func (r *Renderer) Render(f Frame) (*image.RGBA, error) {
	if f.Width <= 0 || f.Height <= 0 {
		return nil, fmt.Errorf("invalid viewport size %dx%d", f.Width, f.Height)
	}
	c := NewCanvas(f.Width, f.Height)
	r.RenderTo(c, f)
	return c.Image(), nil
}

// RenderTo clears c and paints f onto it. Frames of a different size are
// clipped to the canvas.
func (r *Renderer) RenderTo(c *Canvas, f Frame) {
	if r.Background != nil {
		c.SetBackground(r.Background)
	}
	c.Clear()
	if f.Content == nil {
		return
	}
	c.DrawImage(f.Content, f.Display, r.Quality)

	if r.Outline != nil && r.OutlineWidth > 0 {
		b := f.Content.Bounds()
		c.StrokePolygon(quadOf(f.Display, float64(b.Dx()), float64(b.Dy())), r.Outline, r.OutlineWidth)
	}
}
