// Package config loads and saves the viewer's settings as TOML under the
// user's config directory.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"pinchzoom/pkg/engine"
	"pinchzoom/pkg/levels"
	"pinchzoom/pkg/raster"
)

const (
	appName    = "pinchzoom"
	configFile = "config.toml"
)

// Duration is a time.Duration that reads and writes as "200ms".
type Duration struct {
	time.Duration
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// Config holds every persisted setting.
type Config struct {
	ScaleLevels           []float64         `toml:"scale_levels"`
	FitMode               engine.FitMode    `toml:"fit_mode"`
	ZoomDuration          Duration          `toml:"zoom_duration"`
	RotateDuration        Duration          `toml:"rotate_duration"`
	EdgePolicy            engine.EdgePolicy `toml:"edge_policy"`
	ParentInterceptOnEdge bool              `toml:"parent_intercept_on_edge"`
	RotateInAnyScale      bool              `toml:"rotate_in_any_scale"`
	Zoomable              bool              `toml:"zoomable"`

	Quality    raster.Quality `toml:"quality"`
	Background string         `toml:"background"`
	LastOpened string         `toml:"last_opened"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		ScaleLevels:           levels.Default().Values(),
		FitMode:               engine.FitCenter,
		ZoomDuration:          Duration{engine.DefaultZoomDuration},
		RotateDuration:        Duration{engine.DefaultRotateDuration},
		EdgePolicy:            engine.EdgeParentInterceptUntilNextDown,
		ParentInterceptOnEdge: true,
		RotateInAnyScale:      false,
		Zoomable:              true,
		Quality:               raster.BiLinear,
		Background:            "#000000",
	}
}

// Validate checks the settings without changing them.
func (c Config) Validate() error {
	if err := levels.Validate(c.ScaleLevels); err != nil {
		return err
	}
	if c.ZoomDuration.Duration <= 0 {
		return fmt.Errorf("zoom_duration must be positive, got %s", c.ZoomDuration)
	}
	if c.RotateDuration.Duration <= 0 {
		return fmt.Errorf("rotate_duration must be positive, got %s", c.RotateDuration)
	}
	if _, err := raster.ParseHex(c.Background); err != nil {
		return fmt.Errorf("background: %w", err)
	}
	return nil
}

// EngineOptions converts the settings into engine options.
func (c Config) EngineOptions() []engine.Option {
	return []engine.Option{
		engine.WithScaleLevels(c.ScaleLevels...),
		engine.WithFitMode(c.FitMode),
		engine.WithZoomDuration(c.ZoomDuration.Duration),
		engine.WithRotateDuration(c.RotateDuration.Duration),
		engine.WithEdgePolicy(c.EdgePolicy),
		engine.WithParentInterceptOnEdge(c.ParentInterceptOnEdge),
		engine.WithRotateInAnyScale(c.RotateInAnyScale),
		engine.WithZoomable(c.Zoomable),
	}
}

// Renderer returns a raster renderer using the configured quality and
// background.
func (c Config) Renderer() *raster.Renderer {
	r := raster.NewRenderer()
	r.Quality = c.Quality
	if bg, err := raster.ParseHex(c.Background); err == nil {
		r.Background = bg
	}
	return r
}

// Load reads path over the defaults, so keys missing from the file keep
// their default values.
func Load(path string) (Config, error) {
	c := Default()
	md, err := toml.DecodeFile(path, &c)
	if err != nil {
		return Default(), fmt.Errorf("couldn't read config file: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		slog.Debug("ignoring unknown config keys", "path", path, "keys", fmt.Sprint(undecoded))
	}
	if err := c.Validate(); err != nil {
		return Default(), fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return c, nil
}

// Save writes c to path, creating its directory.
func Save(path string, c Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("couldn't create config directory: %w", err)
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Errorf("couldn't encode config: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("couldn't write config file: %w", err)
	}
	return nil
}

// LoadOrInit loads path, writing the defaults there first when it does not
// exist yet.
func LoadOrInit(path string) (Config, error) {
	ok, err := exists(path)
	if err != nil {
		return Default(), fmt.Errorf("couldn't check if config file exists: %w", err)
	}
	if !ok {
		slog.Info("initializing config", "path", path)
		c := Default()
		if err := Save(path, c); err != nil {
			return c, err
		}
		return c, nil
	}
	return Load(path)
}

// Path returns the config file location.
func Path() string {
	return filepath.Join(Dir(), configFile)
}

// Dir returns $XDG_CONFIG_HOME/pinchzoom, falling back to
// ~/.config/pinchzoom.
func Dir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(xdgOrFallback("XDG_CONFIG_HOME", filepath.Join(home, ".config")), appName)
}

func exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}

func xdgOrFallback(xdg string, fallback string) string {
	dir := os.Getenv(xdg)
	if dir != "" {
		if ok, err := exists(dir); ok && err == nil {
			return dir
		}
	}
	slog.Debug("falling back for unresolved directory", "env", xdg, "dir", fallback)
	return fallback
}
