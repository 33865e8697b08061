package engine

import (
	"log/slog"
	"time"

	"pinchzoom/pkg/levels"
	"pinchzoom/pkg/scroller"
)

// Default transition durations.
const (
	DefaultZoomDuration   = 200 * time.Millisecond
	DefaultRotateDuration = 200 * time.Millisecond
)

// options configures an Engine.
type options struct {
	// ScaleLevels are the zoom tiers. Default: [1, 4]
	ScaleLevels []float64

	// Fit places content in the viewport. Default: FitCenter
	Fit FitMode

	// ZoomDuration and RotateDuration time the animated transitions.
	// Default: 200ms each
	ZoomDuration   time.Duration
	RotateDuration time.Duration

	// ZoomCurve and RotateCurve ease the transitions.
	// Default: AccelerateDecelerate
	ZoomCurve   Interpolator
	RotateCurve Interpolator

	// EdgePolicy arbitrates drags at content edges.
	// Default: EdgeParentInterceptUntilNextDown
	EdgePolicy EdgePolicy

	// ParentInterceptOnEdge lets the parent take drags at content edges.
	// Default: true
	ParentInterceptOnEdge bool

	// RotateInAnyScale allows rotating zoomed-in content. When false a
	// rotation is only accepted at the compensated minimum scale.
	// Default: false
	RotateInAnyScale bool

	// Zoomable enables gesture handling. Default: true
	Zoomable bool

	// Scheduler delivers animation frames. nil applies animated
	// transitions immediately and disables fling.
	Scheduler FrameScheduler

	// Clock is the time source for transitions. Default: time.Now
	Clock func() time.Time

	// NewFlingSolver builds the solver for each fling.
	// Default: scroller.New
	NewFlingSolver func() FlingSolver

	// Parent receives edge-drag arbitration requests. Default: none
	Parent Parent

	// Logger receives debug diagnostics. Default: discard
	Logger *slog.Logger
}

func defaultOptions() options {
	return options{
		ScaleLevels:           levels.Default().Values(),
		Fit:                   FitCenter,
		ZoomDuration:          DefaultZoomDuration,
		RotateDuration:        DefaultRotateDuration,
		ZoomCurve:             AccelerateDecelerate,
		RotateCurve:           AccelerateDecelerate,
		EdgePolicy:            EdgeParentInterceptUntilNextDown,
		ParentInterceptOnEdge: true,
		RotateInAnyScale:      false,
		Zoomable:              true,
		Clock:                 time.Now,
		NewFlingSolver:        func() FlingSolver { return scroller.New() },
		Logger:                newNopLogger(),
	}
}

// Option is a functional option for configuring an Engine.
type Option func(*options)

// WithScaleLevels sets the zoom tiers. They are validated by New.
func WithScaleLevels(values ...float64) Option {
	return func(o *options) {
		o.ScaleLevels = append([]float64(nil), values...)
	}
}

// WithFitMode sets the fit mode.
func WithFitMode(m FitMode) Option {
	return func(o *options) {
		o.Fit = m
	}
}

// WithZoomDuration sets the zoom transition duration.
func WithZoomDuration(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.ZoomDuration = d
		}
	}
}

// WithRotateDuration sets the rotate transition duration.
func WithRotateDuration(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.RotateDuration = d
		}
	}
}

// WithZoomInterpolator sets the zoom easing curve.
func WithZoomInterpolator(f Interpolator) Option {
	return func(o *options) {
		if f != nil {
			o.ZoomCurve = f
		}
	}
}

// WithRotateInterpolator sets the rotate easing curve.
func WithRotateInterpolator(f Interpolator) Option {
	return func(o *options) {
		if f != nil {
			o.RotateCurve = f
		}
	}
}

// WithEdgePolicy sets the edge-drag arbitration policy.
func WithEdgePolicy(p EdgePolicy) Option {
	return func(o *options) {
		o.EdgePolicy = p
	}
}

// WithParentInterceptOnEdge allows or forbids the parent from taking drags
// at content edges.
func WithParentInterceptOnEdge(allow bool) Option {
	return func(o *options) {
		o.ParentInterceptOnEdge = allow
	}
}

// WithRotateInAnyScale allows or forbids rotating zoomed-in content.
func WithRotateInAnyScale(allow bool) Option {
	return func(o *options) {
		o.RotateInAnyScale = allow
	}
}

// WithZoomable enables or disables gesture handling.
func WithZoomable(zoomable bool) Option {
	return func(o *options) {
		o.Zoomable = zoomable
	}
}

// WithScheduler sets the animation frame source.
func WithScheduler(s FrameScheduler) Option {
	return func(o *options) {
		o.Scheduler = s
	}
}

// WithClock sets the transition time source.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.Clock = now
		}
	}
}

// WithFlingSolver sets the constructor for fling physics.
func WithFlingSolver(newSolver func() FlingSolver) Option {
	return func(o *options) {
		if newSolver != nil {
			o.NewFlingSolver = newSolver
		}
	}
}

// WithParent sets the enclosing container for edge-drag arbitration.
func WithParent(p Parent) Option {
	return func(o *options) {
		o.Parent = p
	}
}

// WithLogger sets the diagnostics logger. nil restores the silent default.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l == nil {
			l = newNopLogger()
		}
		o.Logger = l
	}
}
