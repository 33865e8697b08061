package api

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pinchzoom/pkg/engine"
	"pinchzoom/pkg/raster"
)

func pngBytes(t *testing.T, w, h int, c color.Color) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestOpenBytes(t *testing.T) {
	p, err := OpenBytes(pngBytes(t, 60, 40, color.White))
	require.NoError(t, err)

	info := p.Info()
	assert.Equal(t, "png", info.Format)
	assert.Equal(t, 60, info.Width)
	assert.Equal(t, 40, info.Height)

	_, err = OpenBytes([]byte("not an image"))
	assert.Error(t, err)
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "photo.png")
	require.NoError(t, os.WriteFile(path, pngBytes(t, 8, 4, color.White), 0o644))

	p, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, path, p.Info().Path)

	_, err = Open(filepath.Join(t.TempDir(), "missing.png"))
	assert.Error(t, err)
}

func TestViewportSurface(t *testing.T) {
	v := NewViewport(nil, 300, 400)
	_, _, ok := v.ContentSize()
	assert.False(t, ok)

	v.SetPhoto(FromImage(image.NewRGBA(image.Rect(0, 0, 600, 400))))
	w, h, ok := v.ContentSize()
	assert.True(t, ok)
	assert.Equal(t, 600.0, w)
	assert.Equal(t, 400.0, h)

	v.Resize(320, 240)
	vw, vh := v.ViewportSize()
	assert.Equal(t, 320.0, vw)
	assert.Equal(t, 240.0, vh)
}

func TestRenderMatchesViewport(t *testing.T) {
	red := color.RGBA{R: 255, A: 255}
	p, err := OpenBytes(pngBytes(t, 60, 40, red))
	require.NoError(t, err)

	img, err := Render(p, NewRenderOptions(Size(300, 400), Quality(raster.Nearest)))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 300, 400), img.Bounds())

	// Fitted to 300x200, letterboxed vertically.
	assert.Equal(t, red, color.RGBAModel.Convert(img.At(150, 200)))
	assert.Equal(t, color.RGBA{A: 255}, color.RGBAModel.Convert(img.At(150, 50)))

	// Zoomed 2x the content fills the viewport height.
	img, err = Render(p, NewRenderOptions(Size(300, 400), Zoom(2), Quality(raster.Nearest)))
	require.NoError(t, err)
	assert.Equal(t, red, color.RGBAModel.Convert(img.At(150, 10)))
}

func TestRenderRotated(t *testing.T) {
	p := FromImage(image.NewRGBA(image.Rect(0, 0, 600, 400)))
	e, _, err := NewEngine(p, 300, 400)
	require.NoError(t, err)
	require.NoError(t, e.RotateTo(engine.Degree90, true, false))

	_, err = Render(p, NewRenderOptions(Size(300, 400), Rotate(engine.Degree90, true), Zoom(2)))
	require.NoError(t, err)

	_, err = Render(p, NewRenderOptions(Size(300, 400), Zoom(10)))
	assert.ErrorIs(t, err, engine.ErrPrecondition)

	_, err = Render(p, NewRenderOptions(Size(0, 400)))
	assert.Error(t, err)
}

func TestSaveFormats(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	dir := t.TempDir()

	for _, name := range []string{"a.png", "a.jpg", "a.gif", "a.bmp", "a.tiff"} {
		path := filepath.Join(dir, name)
		require.NoError(t, Save(path, img, DefaultExportOptions()), name)

		p, err := Open(path)
		require.NoError(t, err, name)
		assert.Equal(t, 4, p.Width(), name)
	}

	assert.Error(t, Save(filepath.Join(dir, "a.xyz"), img, DefaultExportOptions()))
}

func TestFormatFromPath(t *testing.T) {
	f, err := FormatFromPath("OUT.JPEG")
	require.NoError(t, err)
	assert.Equal(t, "jpeg", f)
	_, err = FormatFromPath("out")
	assert.Error(t, err)
}
