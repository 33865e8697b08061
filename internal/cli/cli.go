// Package cli implements the commands shared by the pinchzoom binaries.
package cli

import (
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"pinchzoom/internal/config"
	"pinchzoom/pkg/api"
	"pinchzoom/pkg/engine"
	"pinchzoom/pkg/raster"
)

// LoadConfig reads the user's config file when there is one.
func LoadConfig() config.Config {
	path := config.Path()
	if _, err := os.Stat(path); err != nil {
		return config.Default()
	}
	c, err := config.Load(path)
	if err != nil {
		slog.Warn("using default config", "error", err)
	}
	return c
}

// SetVerbose routes debug logging to stderr.
func SetVerbose(on bool) {
	level := slog.LevelWarn
	if on {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// Info prints a photo's size and how it fits a width×height viewport.
func Info(w io.Writer, path string, width, height int) error {
	p, err := api.Open(path)
	if err != nil {
		return fmt.Errorf("error opening photo: %w", err)
	}
	info := p.Info()

	fmt.Fprintf(w, "File: %s\n", path)
	fmt.Fprintln(w, "────────────────────────────────────────")
	fmt.Fprintf(w, "Format: %s\n", info.Format)
	fmt.Fprintf(w, "Size: %d × %d pixels\n", info.Width, info.Height)

	fmt.Fprintf(w, "\nViewport %d × %d:\n", width, height)
	for _, m := range []engine.FitMode{engine.FitCenter, engine.CenterCrop, engine.CenterInside} {
		base := engine.BaseMatrix(float64(width), float64(height), float64(info.Width), float64(info.Height), m, 0)
		r := engine.ContentRect(base, float64(info.Width), float64(info.Height))
		fmt.Fprintf(w, "  %-14s scale %.4f  rect %s\n", m, base.ScaleX(), formatRect(r.X, r.Y, r.Width, r.Height))
	}
	return nil
}

// RenderArgs are the parsed arguments of the render command.
type RenderArgs struct {
	Path    string
	Output  string
	Options api.RenderOptions
	Verbose bool
}

// ParseRenderArgs parses "<image> [flags]" over cfg's defaults.
func ParseRenderArgs(args []string, cfg config.Config) (RenderArgs, error) {
	if len(args) < 1 {
		return RenderArgs{}, errors.New("missing image path")
	}
	ra := RenderArgs{
		Path:   args[0],
		Output: "output.png",
		Options: api.NewRenderOptions(
			api.Fit(cfg.FitMode),
			api.Levels(cfg.ScaleLevels...),
			api.Quality(cfg.Quality),
		),
	}
	if bg, err := raster.ParseHex(cfg.Background); err == nil {
		ra.Options.Background = bg
	}

	for i := 1; i < len(args); i++ {
		flag := args[i]
		if flag == "-v" {
			ra.Verbose = true
			continue
		}
		if flag == "-ccw" {
			ra.Options.Clockwise = false
			continue
		}
		if i+1 >= len(args) {
			return ra, fmt.Errorf("flag %s needs a value", flag)
		}
		val := args[i+1]
		i++

		var err error
		switch flag {
		case "-o":
			ra.Output = val
		case "-w":
			ra.Options.Width, err = strconv.Atoi(val)
		case "-h":
			ra.Options.Height, err = strconv.Atoi(val)
		case "-fit":
			ra.Options.Fit, err = engine.ParseFitMode(val)
		case "-scale":
			ra.Options.Scale, err = strconv.ParseFloat(val, 64)
		case "-rotate":
			ra.Options.Rotation, err = ParseRotation(val)
		case "-pan":
			ra.Options.PanX, ra.Options.PanY, err = parsePair(val)
		case "-q":
			ra.Options.Quality, err = raster.ParseQuality(val)
		case "-bg":
			ra.Options.Background, err = raster.ParseHex(val)
		case "-outline":
			ra.Options.Outline, err = raster.ParseHex(val)
			ra.Options.OutlineWidth = 2
		default:
			return ra, fmt.Errorf("unknown flag %s", flag)
		}
		if err != nil {
			return ra, fmt.Errorf("invalid %s value %q: %w", flag, val, err)
		}
	}
	return ra, nil
}

// Render renders a photo through a headless engine and saves the frame.
func Render(w io.Writer, ra RenderArgs) error {
	fmt.Fprintf(w, "Opening %s...\n", ra.Path)
	p, err := api.Open(ra.Path)
	if err != nil {
		return fmt.Errorf("error opening photo: %w", err)
	}

	fmt.Fprintf(w, "Rendering %dx%d viewport (%s, %s)...\n",
		ra.Options.Width, ra.Options.Height, ra.Options.Fit, ra.Options.Rotation)
	img, err := api.Render(p, ra.Options)
	if err != nil {
		return fmt.Errorf("error rendering: %w", err)
	}

	if err := save(ra.Output, img); err != nil {
		return err
	}
	fmt.Fprintf(w, "✓ Saved %s (%dx%d pixels)\n", ra.Output, img.Bounds().Dx(), img.Bounds().Dy())
	return nil
}

func save(output string, img image.Image) error {
	if dir := filepath.Dir(output); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("error creating output directory: %w", err)
		}
	}
	if err := api.Save(output, img, api.DefaultExportOptions()); err != nil {
		return fmt.Errorf("error saving %s: %w", output, err)
	}
	return nil
}

// ParseRotation parses a quarter turn in degrees.
func ParseRotation(s string) (engine.Rotation, error) {
	deg, err := strconv.Atoi(strings.TrimSuffix(strings.TrimSpace(s), "°"))
	if err != nil {
		return engine.RotationUnset, err
	}
	r := engine.Rotation(((deg % 360) + 360) % 360)
	if !r.Valid() {
		return engine.RotationUnset, fmt.Errorf("%d is not a quarter turn", deg)
	}
	return r, nil
}

// parsePair parses "x,y".
func parsePair(s string) (float64, float64, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return 0, 0, errors.New("expected x,y")
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	if err != nil {
		return 0, 0, err
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err != nil {
		return 0, 0, err
	}
	return x, y, nil
}

func formatRect(x, y, w, h float64) string {
	return fmt.Sprintf("(%.1f, %.1f, %.1f, %.1f)", x, y, w, h)
}
