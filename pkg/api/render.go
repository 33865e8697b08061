package api

import (
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"pinchzoom/pkg/engine"
)

// NewEngine binds p to a width×height viewport and returns an engine for it.
func NewEngine(p *Photo, width, height float64, opts ...engine.Option) (*engine.Engine, *Viewport, error) {
	v := NewViewport(p, width, height)
	e, err := engine.New(v, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create engine: %w", err)
	}
	return e, v, nil
}

// Render fits p into a viewport, applies the rotation, zoom and pan from
// the options and paints the result.
func Render(p *Photo, opts RenderOptions) (*image.RGBA, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("invalid viewport size %dx%d", opts.Width, opts.Height)
	}

	eopts := []engine.Option{engine.WithFitMode(opts.Fit)}
	if opts.Levels != nil {
		eopts = append(eopts, engine.WithScaleLevels(opts.Levels...))
	}
	e, v, err := NewEngine(p, float64(opts.Width), float64(opts.Height), eopts...)
	if err != nil {
		return nil, err
	}

	if opts.Rotation != engine.Degree0 {
		if err := e.RotateTo(opts.Rotation, opts.Clockwise, false); err != nil {
			return nil, fmt.Errorf("failed to rotate: %w", err)
		}
	}
	if opts.Scale != 0 {
		if err := e.SetScale(opts.Scale*e.CompensationFactor(), false); err != nil {
			return nil, fmt.Errorf("failed to zoom: %w", err)
		}
	}
	if opts.PanX != 0 || opts.PanY != 0 {
		e.PanBy(opts.PanX, opts.PanY)
	}

	return RenderEngine(e, v, opts)
}

// RenderEngine paints the engine's current state.
func RenderEngine(e *engine.Engine, v *Viewport, opts RenderOptions) (*image.RGBA, error) {
	img, err := opts.Renderer().Render(v.Frame(e.DisplayMatrix()))
	if err != nil {
		return nil, fmt.Errorf("failed to render: %w", err)
	}
	return img, nil
}

// FormatFromPath returns the export format for a file extension.
func FormatFromPath(path string) (string, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png":
		return "png", nil
	case ".jpg", ".jpeg":
		return "jpeg", nil
	case ".gif":
		return "gif", nil
	case ".bmp":
		return "bmp", nil
	case ".tif", ".tiff":
		return "tiff", nil
	default:
		return "", fmt.Errorf("unsupported output format %q", ext)
	}
}

// Encode writes img to w in the configured format.
func Encode(w io.Writer, img image.Image, opts ExportOptions) error {
	switch opts.Format {
	case "", "png":
		enc := png.Encoder{CompressionLevel: pngLevel(opts.Compression)}
		return enc.Encode(w, img)
	case "jpeg", "jpg":
		q := opts.Quality
		if q <= 0 {
			q = jpeg.DefaultQuality
		}
		return jpeg.Encode(w, img, &jpeg.Options{Quality: q})
	case "gif":
		return gif.Encode(w, img, nil)
	case "bmp":
		return bmp.Encode(w, img)
	case "tiff":
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	}
	return fmt.Errorf("unsupported output format %q", opts.Format)
}

// Save writes img to path. An empty format is taken from the extension.
func Save(path string, img image.Image, opts ExportOptions) error {
	if opts.Format == "" {
		format, err := FormatFromPath(path)
		if err != nil {
			return err
		}
		opts.Format = format
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if err := Encode(f, img, opts); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode %s: %w", opts.Format, err)
	}
	return f.Close()
}

func pngLevel(compression int) png.CompressionLevel {
	switch {
	case compression <= 0:
		return png.NoCompression
	case compression < 4:
		return png.BestSpeed
	case compression < 8:
		return png.DefaultCompression
	}
	return png.BestCompression
}
