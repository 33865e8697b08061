// Package scroller implements a bounded fling solver: a point mass thrown
// with an initial velocity that decays under drag until it stops or runs
// into the scroll bounds.
package scroller

import (
	"math"
	"time"

	"pinchzoom/pkg/geom"
)

const (
	// DefaultDrag is the drag coefficient k in x''(t) = k*x'(t).
	DefaultDrag = -4.2

	// DefaultStopVelocity is the speed (px/s) below which an axis comes to rest.
	DefaultStopVelocity = 1.0
)

// Scroller tracks one fling on both axes.
type Scroller struct {
	drag         float64
	stopVelocity float64

	t0       time.Time
	start    geom.Point
	v0       geom.Point
	min, max geom.Point
	pos      geom.Point

	runX, runY bool
}

// New returns a scroller with the default drag.
func New() *Scroller {
	return &Scroller{drag: DefaultDrag, stopVelocity: DefaultStopVelocity}
}

// NewWithDrag returns a scroller with a custom (negative) drag coefficient.
func NewWithDrag(drag float64) *Scroller {
	if drag >= 0 {
		drag = DefaultDrag
	}
	return &Scroller{drag: drag, stopVelocity: DefaultStopVelocity}
}

// Fling starts a fling at start with velocity (px/s), constrained to
// [min, max] on each axis. Axes with no room or no velocity are idle.
func (s *Scroller) Fling(start, velocity, min, max geom.Point, now time.Time) {
	s.t0 = now
	s.start = start
	s.pos = start
	s.v0 = velocity
	s.min = min
	s.max = max
	s.runX = velocity.X != 0 && max.X > min.X
	s.runY = velocity.Y != 0 && max.Y > min.Y
}

// Finished reports whether both axes are at rest.
func (s *Scroller) Finished() bool {
	return !s.runX && !s.runY
}

// Abort stops the fling where it is.
func (s *Scroller) Abort() {
	s.runX = false
	s.runY = false
}

// Position returns the last computed position.
func (s *Scroller) Position() geom.Point {
	return s.pos
}

// Tick advances the fling to now and returns the new position and whether
// the fling has come to rest.
func (s *Scroller) Tick(now time.Time) (geom.Point, bool) {
	if s.Finished() {
		return s.pos, true
	}

	// With x(0) = 0 and x'(0) = v0 the position is
	//
	//	x(t) = v0*e^(k*t)/k - v0/k
	//
	// and the velocity x'(t) = v0*e^(k*t).
	t := now.Sub(s.t0).Seconds()
	if t < 0 {
		t = 0
	}
	ekt := math.Exp(s.drag * t)

	if s.runX {
		s.pos.X, s.runX = s.axis(s.start.X, s.v0.X, ekt, s.min.X, s.max.X)
	}
	if s.runY {
		s.pos.Y, s.runY = s.axis(s.start.Y, s.v0.Y, ekt, s.min.Y, s.max.Y)
	}
	return s.pos, s.Finished()
}

func (s *Scroller) axis(start, v0, ekt, lo, hi float64) (float64, bool) {
	x := start + v0*ekt/s.drag - v0/s.drag
	running := math.Abs(v0*ekt) >= s.stopVelocity
	switch {
	case x <= lo:
		return lo, false
	case x >= hi:
		return hi, false
	}
	return x, running
}
