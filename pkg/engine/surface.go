package engine

import (
	"math"
	"time"

	"pinchzoom/pkg/geom"
)

// Surface is the rendering surface the engine positions content on.
// The engine only reads sizes from it.
type Surface interface {
	// ViewportSize returns the drawable area, excluding padding.
	ViewportSize() (w, h float64)
	// ContentSize returns the intrinsic content size, or ok=false when no
	// content is loaded.
	ContentSize() (w, h float64, ok bool)
}

// Parent is an enclosing scrollable container that may intercept drags.
type Parent interface {
	RequestDisallowIntercept(disallow bool)
}

// ParentFunc adapts a function to Parent.
type ParentFunc func(disallow bool)

// RequestDisallowIntercept calls f(disallow).
func (f ParentFunc) RequestDisallowIntercept(disallow bool) { f(disallow) }

// FrameScheduler runs callbacks on the next animation frame, on the same
// thread that delivers gesture events.
type FrameScheduler interface {
	PostFrame(fn func())
}

// FlingSolver is the scroll physics used by fling transitions.
// Positions are scroll offsets: the negated display rect origin.
type FlingSolver interface {
	Fling(start, velocity, min, max geom.Point, now time.Time)
	Tick(now time.Time) (pos geom.Point, finished bool)
	Abort()
}

// Interpolator maps elapsed fraction t in [0, 1] onto animation progress.
type Interpolator func(t float64) float64

// AccelerateDecelerate starts and ends slowly and speeds up in the middle.
func AccelerateDecelerate(t float64) float64 {
	return math.Cos((t+1)*math.Pi)/2 + 0.5
}

// Linear is the identity curve.
func Linear(t float64) float64 { return t }
