package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pinchzoom/pkg/engine"
	"pinchzoom/pkg/raster"
)

func TestDefaultIsValid(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())
	assert.Equal(t, []float64{1, 4}, c.ScaleLevels)
	assert.Equal(t, engine.DefaultZoomDuration, c.ZoomDuration.Duration)

	e, err := engine.New(nil, c.EngineOptions()...)
	require.NoError(t, err)
	assert.Equal(t, 4.0, e.MaxScale())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", configFile)

	c := Default()
	c.ScaleLevels = []float64{1, 2, 4, 8}
	c.FitMode = engine.FitStart
	c.EdgePolicy = engine.EdgeParentIntercept
	c.ZoomDuration = Duration{350 * time.Millisecond}
	c.Quality = raster.CatmullRom
	c.Background = "#202020"
	require.NoError(t, Save(path, c))

	back, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, c, back)
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), configFile)
	require.NoError(t, os.WriteFile(path, []byte("fit_mode = \"fit_end\"\nunknown = 1\n"), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, engine.FitEnd, c.FitMode)
	assert.Equal(t, Default().ScaleLevels, c.ScaleLevels)
	assert.Equal(t, Default().RotateDuration, c.RotateDuration)
}

func TestLoadRejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	for name, body := range map[string]string{
		"levels":   "scale_levels = [2.0, 1.0]\n",
		"nan":      "scale_levels = [1.0, nan]\n",
		"duration": "zoom_duration = \"0s\"\n",
		"color":    "background = \"#12\"\n",
		"fit":      "fit_mode = \"stretch\"\n",
		"syntax":   "scale_levels = [\n",
	} {
		path := filepath.Join(dir, name+".toml")
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
		c, err := Load(path)
		assert.Error(t, err, name)
		assert.Equal(t, Default(), c, name)
	}
}

func TestLoadOrInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pz", configFile)

	c, err := LoadOrInit(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
	_, err = os.Stat(path)
	require.NoError(t, err)

	c.Zoomable = false
	require.NoError(t, Save(path, c))
	c, err = LoadOrInit(path)
	require.NoError(t, err)
	assert.False(t, c.Zoomable)
}

func TestDirHonoursXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	assert.Equal(t, filepath.Join(dir, appName), Dir())
	assert.Equal(t, filepath.Join(dir, appName, configFile), Path())

	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "missing"))
	assert.NotEqual(t, filepath.Join(dir, "missing", appName), Dir())
}

func TestRenderer(t *testing.T) {
	c := Default()
	c.Background = "#ff0000"
	c.Quality = raster.Nearest
	r := c.Renderer()
	assert.Equal(t, raster.Nearest, r.Quality)
	assert.Equal(t, "#ff0000", raster.Hex(r.Background))
}
