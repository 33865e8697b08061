package engine

import (
	"math"

	"pinchzoom/pkg/geom"
)

// scaleEpsilon is the relative tolerance for comparing scales against the
// level table after repeated matrix multiplication.
const scaleEpsilon = 1e-6

func nearlyEqual(a, b float64) bool {
	return math.Abs(a-b) <= scaleEpsilon*math.Max(math.Abs(a), math.Abs(b))
}

type gestureState struct {
	dragging bool
	scaling  bool
}

// Dragging reports whether a drag has been applied since the last
// pointer-down.
func (e *Engine) Dragging() bool { return e.gesture.dragging }

// Scaling reports whether a pinch is in progress.
func (e *Engine) Scaling() bool { return e.gesture.scaling }

// active reports whether gestures should mutate state.
func (e *Engine) active() bool {
	if !e.zoomable {
		return false
	}
	_, _, ok := e.content()
	return ok
}

func (e *Engine) disallowIntercept(disallow bool) {
	if e.parent != nil {
		e.parent.RequestDisallowIntercept(disallow)
	}
}

func (e *Engine) swallowed(event string, vs ...float64) bool {
	if finite(vs...) {
		return false
	}
	e.log.Debug("swallowed non-finite event", "event", event, "values", vs)
	return true
}

// PointerDown starts a gesture sequence: it stops any fling, resets the
// gesture state and claims the drag from the parent.
func (e *Engine) PointerDown() {
	if !e.active() {
		return
	}
	if e.fling != nil {
		e.fling.cancel()
		e.finish(e.fling)
	}
	e.gesture = gestureState{}
	e.arbiter.reset()
	e.disallowIntercept(true)
}

// Drag pans the content by (dx, dy). It is ignored while a pinch is in
// progress.
func (e *Engine) Drag(dx, dy float64) {
	if e.swallowed("drag", dx, dy) || !e.active() || e.gesture.scaling {
		return
	}
	e.gesture.dragging = true
	e.postTranslate(dx, dy)
	e.checkAndDisplay()
	e.observers.viewDrag(dx, dy)

	rect, ok := e.DisplayRect()
	vw, vh, vok := e.viewport()
	if !ok || !vok {
		return
	}
	if disallow, send := e.arbiter.decide(rect, vw, vh, dx, dy); send {
		e.disallowIntercept(disallow)
	}
}

// Pinch scales by factor about (fx, fy). Zooming in stops at the
// compensated maximum; zooming out is always applied and snaps back on
// pointer-up.
func (e *Engine) Pinch(factor, fx, fy float64) {
	if e.swallowed("pinch", factor, fx, fy) || factor <= 0 || !e.active() {
		return
	}
	e.gesture.scaling = true
	e.disallowIntercept(true)
	if e.Scale() < e.CompensatedMax() || factor < 1 {
		e.postScale(factor, fx, fy)
		e.observers.scaleChanged(factor, fx, fy)
		e.checkAndDisplay()
	}
}

// PinchEnd ends the pinch part of a gesture.
func (e *Engine) PinchEnd() {
	e.gesture.scaling = false
}

// Fling throws the content with pointer velocity (vx, vy) in px/s. Nothing
// happens when the content cannot move on either axis.
func (e *Engine) Fling(vx, vy float64) {
	if e.swallowed("fling", vx, vy) || !e.active() || e.gesture.scaling {
		return
	}
	if !e.startFling(geom.Point{X: -vx, Y: -vy}) {
		e.log.Debug("fling skipped", "vx", vx, "vy", vy)
	}
}

// DoubleTap toggles between the compensated minimum and maximum scale,
// zooming about (x, y).
func (e *Engine) DoubleTap(x, y float64) {
	if e.swallowed("double tap", x, y) || !e.active() {
		return
	}
	lo, hi := e.CompensatedMin(), e.CompensatedMax()
	s := e.Scale()
	target := hi
	if s > lo && !nearlyEqual(s, lo) && (s <= hi || nearlyEqual(s, hi)) {
		target = lo
	}
	e.animateZoom(target, x, y)
}

// SingleTapConfirmed reports a tap to the view-tap observers and then to
// either the content-tap observers, with coordinates normalized across the
// display rect, or the outside-tap observers.
func (e *Engine) SingleTapConfirmed(x, y float64) {
	if e.swallowed("tap", x, y) || e.surface == nil {
		return
	}
	e.observers.viewTap(x, y)

	rect, ok := e.DisplayRect()
	if ok && !rect.Empty() && rect.Contains(geom.Point{X: x, Y: y}) {
		e.observers.contentTap((x-rect.Left())/rect.Width, (y-rect.Top())/rect.Height)
		return
	}
	e.observers.outsideTap()
}

// LongPress reports a long press at (x, y).
func (e *Engine) LongPress(x, y float64) {
	if e.swallowed("long press", x, y) || e.surface == nil {
		return
	}
	e.observers.longPress(x, y)
}

// PointerUp ends a gesture sequence. Content scaled outside the
// compensated range zooms back to the nearest bound about its centre.
func (e *Engine) PointerUp() {
	e.endGesture()
}

// PointerCancel ends a gesture sequence like PointerUp.
func (e *Engine) PointerCancel() {
	e.endGesture()
}

func (e *Engine) endGesture() {
	e.gesture = gestureState{}
	if !e.active() {
		return
	}
	rect, ok := e.DisplayRect()
	if !ok {
		return
	}
	c := rect.Center()
	s := e.Scale()
	switch lo, hi := e.CompensatedMin(), e.CompensatedMax(); {
	case s < lo && !nearlyEqual(s, lo):
		e.animateZoom(lo, c.X, c.Y)
	case s > hi && !nearlyEqual(s, hi):
		e.animateZoom(hi, c.X, c.Y)
	}
}

// SetScale zooms to s about the viewport centre.
func (e *Engine) SetScale(s float64, animate bool) error {
	vw, vh, _ := e.viewport()
	return e.SetScaleAt(s, vw/2, vh/2, animate)
}

// SetScaleAt zooms to s about (fx, fy), keeping rotation and pan. It fails
// with a *PreconditionError when s lies outside the compensated range.
func (e *Engine) SetScaleAt(s, fx, fy float64, animate bool) error {
	const op = "set scale"
	if !finite(s, fx, fy) {
		return precondition(op, "non-finite argument")
	}
	if _, _, ok := e.content(); !ok {
		return precondition(op, "no content")
	}
	lo, hi := e.CompensatedMin(), e.CompensatedMax()
	if (s < lo && !nearlyEqual(s, lo)) || (s > hi && !nearlyEqual(s, hi)) {
		return precondition(op, "scale %.4g outside [%.4g, %.4g]", s, lo, hi)
	}

	if animate {
		e.animateZoom(s, fx, fy)
		return nil
	}
	if cur := e.Scale(); cur > 0 {
		e.postScale(s/cur, fx, fy)
		e.observers.scaleChanged(s/cur, fx, fy)
	}
	e.checkAndDisplay()
	return nil
}

// StepZoom zooms by delta levels from the current scale, animated and
// clamped to the table.
func (e *Engine) StepZoom(delta int) error {
	if delta == 0 {
		return nil
	}
	s := e.Scale()
	i := e.LevelForScale(s)
	if i+1 < e.levels.Len() && nearlyEqual(s, e.CompensatedAt(i+1)) {
		i++
	}
	var target int
	switch {
	case delta > 0 && i < 0:
		target = delta - 1
	case delta > 0:
		target = i + delta
	case i >= 0 && !nearlyEqual(s, e.CompensatedAt(i)):
		target = i + delta + 1
	default:
		target = i + delta
	}
	n := e.levels.Len()
	if target < 0 {
		target = 0
	}
	if target >= n {
		target = n - 1
	}
	return e.SetScale(e.CompensatedAt(target), true)
}
