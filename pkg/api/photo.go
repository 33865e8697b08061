// Package api is the entry point for embedding the viewport: it loads
// photos, binds them to a viewport size for the engine, and renders and
// exports frames.
package api

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"os"

	// Decoders for image.Decode.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Photo is decoded content for a viewport.
type Photo struct {
	img    image.Image
	format string
	path   string
}

// PhotoInfo describes a photo.
type PhotoInfo struct {
	Path   string
	Format string
	Width  int
	Height int
}

// Open decodes the image file at path.
func Open(path string) (*Photo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	p, err := Decode(f)
	if err != nil {
		return nil, err
	}
	p.path = path
	return p, nil
}

// OpenBytes decodes an image from a byte slice.
func OpenBytes(data []byte) (*Photo, error) {
	return Decode(bytes.NewReader(data))
}

// Decode decodes an image in any registered format.
func Decode(r io.Reader) (*Photo, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("image has no pixels")
	}
	return &Photo{img: img, format: format}, nil
}

// FromImage wraps an already decoded image.
func FromImage(img image.Image) *Photo {
	return &Photo{img: img, format: "memory"}
}

// Image returns the decoded image.
func (p *Photo) Image() image.Image {
	return p.img
}

// Width returns the intrinsic width in pixels.
func (p *Photo) Width() int {
	return p.img.Bounds().Dx()
}

// Height returns the intrinsic height in pixels.
func (p *Photo) Height() int {
	return p.img.Bounds().Dy()
}

// Info returns the photo's metadata.
func (p *Photo) Info() PhotoInfo {
	return PhotoInfo{
		Path:   p.path,
		Format: p.format,
		Width:  p.Width(),
		Height: p.Height(),
	}
}
