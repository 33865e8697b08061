package api

import (
	"image/color"

	"pinchzoom/pkg/engine"
	"pinchzoom/pkg/raster"
)

// RenderOptions configures a headless render.
type RenderOptions struct {
	// Width and Height size the viewport in pixels.
	// Default: 800x600
	Width  int
	Height int

	// Fit places the photo in the viewport.
	// Default: engine.FitCenter
	Fit engine.FitMode

	// Levels are the zoom tiers. nil uses the engine default.
	Levels []float64

	// Rotation turns the photo before zooming.
	// Default: engine.Degree0
	Rotation  engine.Rotation
	Clockwise bool

	// Scale is the zoom relative to the fitted size, before rotation
	// compensation. Zero keeps the minimum.
	Scale float64

	// PanX and PanY move the content after zooming.
	PanX, PanY float64

	// Quality selects the resampling kernel.
	// Default: raster.BiLinear
	Quality raster.Quality

	// Background fills the area around the content.
	// Default: black
	Background color.Color

	// Outline draws the content edge when non-nil.
	Outline      color.Color
	OutlineWidth float64
}

// DefaultRenderOptions returns render options with sensible defaults.
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{
		Width:      800,
		Height:     600,
		Fit:        engine.FitCenter,
		Rotation:   engine.Degree0,
		Clockwise:  true,
		Quality:    raster.BiLinear,
		Background: color.Black,
	}
}

// Option is a functional option for configuring RenderOptions.
type Option func(*RenderOptions)

// Size sets the viewport size.
func Size(width, height int) Option {
	return func(o *RenderOptions) {
		o.Width = width
		o.Height = height
	}
}

// Fit sets the fit mode.
func Fit(m engine.FitMode) Option {
	return func(o *RenderOptions) {
		o.Fit = m
	}
}

// Levels sets the zoom tiers.
func Levels(values ...float64) Option {
	return func(o *RenderOptions) {
		o.Levels = append([]float64(nil), values...)
	}
}

// Rotate turns the photo to r.
func Rotate(r engine.Rotation, clockwise bool) Option {
	return func(o *RenderOptions) {
		o.Rotation = r
		o.Clockwise = clockwise
	}
}

// Zoom sets the zoom factor.
func Zoom(scale float64) Option {
	return func(o *RenderOptions) {
		o.Scale = scale
	}
}

// Pan moves the content by (dx, dy) after zooming.
func Pan(dx, dy float64) Option {
	return func(o *RenderOptions) {
		o.PanX = dx
		o.PanY = dy
	}
}

// Quality sets the resampling kernel.
func Quality(q raster.Quality) Option {
	return func(o *RenderOptions) {
		o.Quality = q
	}
}

// Background sets the background color.
func Background(c color.Color) Option {
	return func(o *RenderOptions) {
		o.Background = c
	}
}

// Outline draws the content edge with color c.
func Outline(c color.Color, width float64) Option {
	return func(o *RenderOptions) {
		o.Outline = c
		o.OutlineWidth = width
	}
}

// NewRenderOptions creates options from functional options.
func NewRenderOptions(opts ...Option) RenderOptions {
	o := DefaultRenderOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Apply applies functional options to existing options.
func (o *RenderOptions) Apply(opts ...Option) {
	for _, opt := range opts {
		opt(o)
	}
}

// Renderer returns a raster renderer configured from o.
func (o *RenderOptions) Renderer() *raster.Renderer {
	r := raster.NewRenderer()
	r.Quality = o.Quality
	if o.Background != nil {
		r.Background = o.Background
	}
	r.Outline = o.Outline
	r.OutlineWidth = o.OutlineWidth
	return r
}

// ExportOptions configures how frames are saved.
type ExportOptions struct {
	// Format specifies the output format: "png", "jpeg", "gif", "bmp", "tiff".
	// Empty picks the format from the file extension.
	Format string

	// Quality for JPEG (1-100)
	Quality int

	// Compression for PNG (0-9, where 0 is no compression)
	Compression int
}

// DefaultExportOptions returns default export options.
func DefaultExportOptions() ExportOptions {
	return ExportOptions{
		Quality:     90,
		Compression: 6,
	}
}

// PNG returns export options for PNG format.
func PNG() ExportOptions {
	return ExportOptions{
		Format:      "png",
		Compression: 6,
	}
}

// JPEG returns export options for JPEG format with quality.
func JPEG(quality int) ExportOptions {
	if quality < 1 {
		quality = 1
	}
	if quality > 100 {
		quality = 100
	}
	return ExportOptions{
		Format:  "jpeg",
		Quality: quality,
	}
}
