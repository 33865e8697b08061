package cli

import (
	"bytes"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pinchzoom/internal/config"
	"pinchzoom/pkg/api"
	"pinchzoom/pkg/engine"
	"pinchzoom/pkg/raster"
)

func writePhoto(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 200, A: 255})
		}
	}
	path := filepath.Join(t.TempDir(), "photo.png")
	require.NoError(t, api.Save(path, img, api.PNG()))
	return path
}

func TestInfo(t *testing.T) {
	path := writePhoto(t, 600, 400)
	var out bytes.Buffer
	require.NoError(t, Info(&out, path, 300, 400))

	s := out.String()
	assert.Contains(t, s, "Format: png")
	assert.Contains(t, s, "Size: 600 × 400 pixels")
	assert.Contains(t, s, "(0.0, 100.0, 300.0, 200.0)")

	assert.Error(t, Info(&out, filepath.Join(t.TempDir(), "none.png"), 300, 400))
}

func TestParseRenderArgs(t *testing.T) {
	ra, err := ParseRenderArgs(strings.Fields(
		"in.jpg -o out/x.png -w 320 -h 240 -fit center_crop -scale 2 -rotate 270 -ccw -pan 10,-5 -q nearest -bg #fff -v"),
		config.Default())
	require.NoError(t, err)
	assert.Equal(t, "in.jpg", ra.Path)
	assert.Equal(t, "out/x.png", ra.Output)
	assert.Equal(t, 320, ra.Options.Width)
	assert.Equal(t, 240, ra.Options.Height)
	assert.Equal(t, engine.CenterCrop, ra.Options.Fit)
	assert.Equal(t, 2.0, ra.Options.Scale)
	assert.Equal(t, engine.Degree270, ra.Options.Rotation)
	assert.False(t, ra.Options.Clockwise)
	assert.Equal(t, 10.0, ra.Options.PanX)
	assert.Equal(t, -5.0, ra.Options.PanY)
	assert.Equal(t, raster.Nearest, ra.Options.Quality)
	assert.Equal(t, "#ffffff", raster.Hex(ra.Options.Background))
	assert.True(t, ra.Verbose)

	for _, bad := range []string{"", "a -w", "a -w x", "a -rotate 45", "a -pan 1", "a -zz 1", "a -fit nope"} {
		_, err := ParseRenderArgs(strings.Fields(bad), config.Default())
		assert.Error(t, err, bad)
	}
}

func TestRender(t *testing.T) {
	path := writePhoto(t, 60, 40)
	out := filepath.Join(t.TempDir(), "sub", "frame.png")
	ra, err := ParseRenderArgs([]string{path, "-o", out, "-w", "300", "-h", "400", "-scale", "2"}, config.Default())
	require.NoError(t, err)

	var log bytes.Buffer
	require.NoError(t, Render(&log, ra))
	assert.Contains(t, log.String(), "Saved")

	p, err := api.Open(out)
	require.NoError(t, err)
	assert.Equal(t, 300, p.Width())
	assert.Equal(t, 400, p.Height())
}

func TestParseRotation(t *testing.T) {
	for in, want := range map[string]engine.Rotation{
		"0": engine.Degree0, "90": engine.Degree90, "180°": engine.Degree180, "-90": engine.Degree270, "450": engine.Degree90,
	} {
		got, err := ParseRotation(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseRotation("30")
	assert.Error(t, err)
}

func TestParseScript(t *testing.T) {
	cmds, err := ParseScript(strings.NewReader(`
# zoom in and look around
down
drag -10 0   # pan left
ROTATE 90 cw anim
`))
	require.NoError(t, err)
	require.Len(t, cmds, 3)
	assert.Equal(t, Command{Line: 4, Verb: "drag", Args: []string{"-10", "0"}}, cmds[1])
	assert.Equal(t, "rotate", cmds[2].Verb)

	_, err = ParseScript(strings.NewReader("jump 1\n"))
	assert.ErrorContains(t, err, "line 1")
	_, err = ParseScript(strings.NewReader("down\ndrag 1\n"))
	assert.ErrorContains(t, err, "line 2")
}

func replay(t *testing.T, script string, ra ReplayArgs) (string, error) {
	t.Helper()
	cmds, err := ParseScript(strings.NewReader(script))
	require.NoError(t, err)
	p := api.FromImage(image.NewRGBA(image.Rect(0, 0, 600, 400)))
	var out bytes.Buffer
	err = Replay(&out, p, cmds, ra)
	return out.String(), err
}

func replayArgs() ReplayArgs {
	return ReplayArgs{Width: 300, Height: 400, Config: config.Default()}
}

func TestReplayDoubleTapAndTap(t *testing.T) {
	out, err := replay(t, `
print
doubletap 150 200
settle
tap 150 200
tap 150 -300
longpress 5 6
`, replayArgs())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "scale=1.0000 rotation=0° rect=(0.0, 100.0, 300.0, 200.0) frames=0", lines[0])
	assert.Equal(t, "content tap 0.500,0.500", lines[1])
	assert.Equal(t, "outside tap", lines[2])
	assert.Equal(t, "long press 5.0,6.0", lines[3])
	assert.True(t, strings.HasPrefix(lines[4], "scale=4.0000 rotation=0° rect=(-450.0, -200.0, 1200.0, 800.0)"), lines[4])
}

func TestReplayDragAndRotate(t *testing.T) {
	_, err := replay(t, "scale 2\nrotate 90 cw\n", replayArgs())
	assert.ErrorIs(t, err, engine.ErrPrecondition)

	ra := replayArgs()
	ra.Config.RotateInAnyScale = true
	out, err := replay(t, `
scale 2
down
drag 50 0
up
rotate 90 cw
`, ra)
	require.NoError(t, err)
	assert.Contains(t, out, "rotation=90°")
}

func TestReplayFrames(t *testing.T) {
	out, err := replay(t, "doubletap 150 200\nframes 2\nprint\n", replayArgs())
	require.NoError(t, err)
	first := strings.Split(out, "\n")[0]
	assert.Contains(t, first, "frames=2")
	assert.NotContains(t, first, "scale=4.0000")
}

func TestReplayErrors(t *testing.T) {
	_, err := replay(t, "scale 9\n", replayArgs())
	assert.ErrorIs(t, err, engine.ErrPrecondition)
	assert.ErrorContains(t, err, "line 1")

	_, err = replay(t, "rotate 90 up\n", replayArgs())
	assert.Error(t, err)

	_, err = replay(t, "drag x 1\n", replayArgs())
	assert.Error(t, err)

	ra := replayArgs()
	ra.Config.ScaleLevels = []float64{3, 1}
	_, err = replay(t, "print\n", ra)
	assert.Error(t, err)
}

func TestReplaySavesFrame(t *testing.T) {
	ra := replayArgs()
	ra.Output = filepath.Join(t.TempDir(), "final.png")
	_, err := replay(t, "print\n", ra)
	require.NoError(t, err)
	_, err = os.Stat(ra.Output)
	assert.NoError(t, err)
}

func TestLoadConfigFallsBack(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	assert.Equal(t, config.Default(), LoadConfig())
}
