// Package engine implements the gesture-driven viewport controller: the
// base/user matrix model, scale levels with rotation compensation, bounds
// clamping, gesture reactions, animated transitions and edge-drag
// arbitration with an enclosing scrollable parent.
//
// An Engine is not safe for concurrent use. All calls, including the frame
// callbacks it posts to its FrameScheduler, must happen on one thread.
package engine

import (
	"log/slog"
	"time"

	"pinchzoom/pkg/geom"
	"pinchzoom/pkg/levels"
)

// Engine owns the transform state of one viewport.
type Engine struct {
	opts    options
	log     *slog.Logger
	surface Surface
	parent  Parent
	levels  *levels.Table

	base geom.Matrix
	user geom.Matrix

	rect      geom.Rect
	rectOK    bool
	rectValid bool

	fit          FitMode
	baseRotation float64
	compensation float64
	rotation     Rotation

	zoomable bool
	gesture  gestureState
	arbiter  edgeArbiter

	zoom   *task
	fling  *task
	rotate *task

	observers observerSet
}

// New creates an engine for surface. It fails with a *levels.ConfigError
// when the configured scale levels are malformed.
func New(surface Surface, opts ...Option) (*Engine, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	table, err := levels.New(o.ScaleLevels...)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		opts:         o,
		log:          o.Logger,
		surface:      surface,
		parent:       o.Parent,
		levels:       table,
		base:         geom.Identity(),
		user:         geom.Identity(),
		fit:          o.Fit,
		compensation: 1,
		rotation:     RotationUnset,
		zoomable:     o.Zoomable,
		arbiter: edgeArbiter{
			policy:      o.EdgePolicy,
			allowOnEdge: o.ParentInterceptOnEdge,
		},
	}
	e.Update()
	return e, nil
}

// Observe registers o and returns a function that unregisters it.
func (e *Engine) Observe(o Observer) (cancel func()) {
	id := e.observers.add(o)
	return func() { e.observers.remove(id) }
}

// SetParent replaces the edge-drag arbitration target. nil disables it.
func (e *Engine) SetParent(p Parent) {
	e.parent = p
}

// Detach drops the surface reference and cancels every transition. The
// engine keeps answering queries from its last state; operations that need
// the surface become no-ops.
func (e *Engine) Detach() {
	e.cancelAll()
	e.surface = nil
}

// Attached reports whether the engine still has a surface.
func (e *Engine) Attached() bool {
	return e.surface != nil
}

func (e *Engine) viewport() (w, h float64, ok bool) {
	if e.surface == nil {
		return 0, 0, false
	}
	w, h = e.surface.ViewportSize()
	return w, h, w > 0 && h > 0
}

func (e *Engine) content() (w, h float64, ok bool) {
	if e.surface == nil {
		return 0, 0, false
	}
	w, h, ok = e.surface.ContentSize()
	return w, h, ok && w > 0 && h > 0
}

// Update recomputes the base matrix for new content (or a structural change
// such as fit mode or base rotation) and resets the user matrix. Without
// zoom enabled the user matrix is simply reset.
func (e *Engine) Update() {
	e.cancelAll()
	if !e.zoomable {
		e.resetMatrix()
		return
	}
	if _, _, ok := e.content(); !ok {
		e.rotation = RotationUnset
		e.invalidate()
		return
	}
	e.updateBase()
	e.resetMatrix()
}

// Layout recomputes the base matrix after a viewport size change. The user
// matrix is kept and re-clamped.
func (e *Engine) Layout() {
	if _, _, ok := e.content(); !ok {
		return
	}
	e.updateBase()
	e.checkAndDisplay()
}

func (e *Engine) updateBase() {
	vw, vh, vok := e.viewport()
	cw, ch, cok := e.content()
	if !vok || !cok {
		e.base = geom.Identity()
	} else {
		e.base = BaseMatrix(vw, vh, cw, ch, e.fit, e.baseRotation)
	}
	e.invalidate()
}

// resetMatrix restores the user matrix to the base rotation and clears the
// quarter-turn state.
func (e *Engine) resetMatrix() {
	e.user = geom.Identity()
	e.user.PostRotate(e.baseRotation, 0, 0)
	e.compensation = 1
	if _, _, ok := e.content(); ok {
		e.rotation = Degree0
	} else {
		e.rotation = RotationUnset
	}
	e.invalidate()
	e.checkAndDisplay()
}

// SetFitMode changes the fit mode and resets the view.
func (e *Engine) SetFitMode(m FitMode) {
	if m == e.fit {
		return
	}
	e.fit = m
	e.Update()
}

// FitMode returns the current fit mode.
func (e *Engine) FitMode() FitMode { return e.fit }

// SetZoomable enables or disables gesture handling. Disabling resets the
// user matrix.
func (e *Engine) SetZoomable(zoomable bool) {
	e.zoomable = zoomable
	e.Update()
}

// Zoomable reports whether gestures are handled.
func (e *Engine) Zoomable() bool { return e.zoomable }

// SetEdgePolicy changes the edge-drag arbitration policy.
func (e *Engine) SetEdgePolicy(p EdgePolicy) { e.arbiter.policy = p }

// EdgePolicy returns the edge-drag arbitration policy.
func (e *Engine) EdgePolicy() EdgePolicy { return e.arbiter.policy }

// SetParentInterceptOnEdge allows or forbids the parent from taking drags at
// content edges.
func (e *Engine) SetParentInterceptOnEdge(allow bool) { e.arbiter.allowOnEdge = allow }

// SetRotateInAnyScale allows or forbids rotating zoomed-in content.
func (e *Engine) SetRotateInAnyScale(allow bool) { e.opts.RotateInAnyScale = allow }

// SetZoomDuration changes the zoom transition duration for new transitions.
func (e *Engine) SetZoomDuration(d time.Duration) { WithZoomDuration(d)(&e.opts) }

// SetRotateDuration changes the rotate transition duration for new transitions.
func (e *Engine) SetRotateDuration(d time.Duration) { WithRotateDuration(d)(&e.opts) }

// SetZoomInterpolator changes the zoom easing curve for new transitions.
func (e *Engine) SetZoomInterpolator(f Interpolator) { WithZoomInterpolator(f)(&e.opts) }

// SetRotateInterpolator changes the rotate easing curve for new transitions.
func (e *Engine) SetRotateInterpolator(f Interpolator) { WithRotateInterpolator(f)(&e.opts) }

// SetScaleLevels replaces the zoom tiers. On error nothing changes.
func (e *Engine) SetScaleLevels(values ...float64) error {
	return e.levels.Set(values...)
}

// ScaleLevels returns a copy of the zoom tiers.
func (e *Engine) ScaleLevels() []float64 { return e.levels.Values() }

// MinScale and MaxScale return the uncompensated table bounds.
func (e *Engine) MinScale() float64 { return e.levels.Min() }
func (e *Engine) MaxScale() float64 { return e.levels.Max() }

// CompensatedMin returns the lowest level times the rotation compensation.
func (e *Engine) CompensatedMin() float64 { return e.levels.Min() * e.compensation }

// CompensatedMax returns the highest level times the rotation compensation.
func (e *Engine) CompensatedMax() float64 { return e.levels.Max() * e.compensation }

// CompensatedAt returns level i times the rotation compensation.
func (e *Engine) CompensatedAt(i int) float64 { return e.levels.At(i) * e.compensation }

// LevelForScale returns the table index for an absolute (compensated) scale.
func (e *Engine) LevelForScale(s float64) int {
	return e.levels.LevelFor(s / e.compensation)
}

// CompensationFactor returns the rotation compensation multiplier.
func (e *Engine) CompensationFactor() float64 { return e.compensation }

// Rotation returns the current quarter-turn orientation.
func (e *Engine) Rotation() Rotation { return e.rotation }

// BaseRotation returns the base rotation in degrees.
func (e *Engine) BaseRotation() float64 { return e.baseRotation }
