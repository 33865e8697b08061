package engine

import (
	"math"
	"time"

	"pinchzoom/pkg/geom"
)

// task is one in-flight transition. step advances it to now and reports
// whether it has finished.
type task struct {
	kind      string
	slot      **task
	end       time.Time
	cancelled bool
	step      func(now time.Time) bool
	stop      func()
}

func (t *task) cancel() {
	if t.cancelled {
		return
	}
	t.cancelled = true
	if t.stop != nil {
		t.stop()
	}
}

// cancelAll drops every in-flight transition.
func (e *Engine) cancelAll() {
	for _, slot := range []**task{&e.zoom, &e.fling, &e.rotate} {
		if *slot != nil {
			e.log.Debug("transition cancelled", "kind", (*slot).kind)
			(*slot).cancel()
			*slot = nil
		}
	}
}

// Animating reports whether any transition is in flight.
func (e *Engine) Animating() bool {
	return e.zoom != nil || e.fling != nil || e.rotate != nil
}

// start installs t in its slot, replacing and cancelling the previous
// occupant, and posts its first frame. Without a scheduler the task is run
// to completion at end.
func (e *Engine) start(t *task, end time.Time) {
	if prev := *t.slot; prev != nil {
		e.log.Debug("transition replaced", "kind", prev.kind)
		prev.cancel()
	}
	*t.slot = t
	t.end = end
	e.log.Debug("transition started", "kind", t.kind)

	if e.opts.Scheduler == nil {
		t.step(end)
		e.finish(t)
		return
	}
	e.opts.Scheduler.PostFrame(func() { e.runFrame(t) })
}

// complete jumps the task in slot to its end state and removes it.
func (e *Engine) complete(slot **task) {
	t := *slot
	if t == nil {
		return
	}
	if !t.cancelled {
		t.step(t.end)
		t.cancel()
	}
	e.finish(t)
}

func (e *Engine) runFrame(t *task) {
	if t.cancelled {
		return
	}
	done := t.step(e.opts.Clock())
	if done || t.cancelled {
		e.finish(t)
		return
	}
	e.opts.Scheduler.PostFrame(func() { e.runFrame(t) })
}

func (e *Engine) finish(t *task) {
	if *t.slot == t {
		*t.slot = nil
	}
	e.log.Debug("transition finished", "kind", t.kind)
}

// progress returns the eased fraction of d elapsed since t0, clamped to 1.
func progress(t0, now time.Time, d time.Duration, curve Interpolator) float64 {
	if d <= 0 {
		return 1
	}
	f := float64(now.Sub(t0)) / float64(d)
	f = math.Max(0, math.Min(1, f))
	return curve(f)
}

// animateZoom scales from the current scale to target about (fx, fy). Each
// tick applies the delta from the previous tick and re-clamps.
func (e *Engine) animateZoom(target, fx, fy float64) {
	from := e.Scale()
	t0 := e.opts.Clock()
	duration := e.opts.ZoomDuration
	curve := e.opts.ZoomCurve

	t := &task{kind: "zoom", slot: &e.zoom}
	t.step = func(now time.Time) bool {
		if e.surface == nil {
			return true
		}
		done := !now.Before(t0.Add(duration))
		p := 1.0
		if !done {
			p = progress(t0, now, duration, curve)
		}
		scale := from + p*(target-from)
		if cur := e.Scale(); cur > 0 {
			delta := scale / cur
			e.postScale(delta, fx, fy)
			e.observers.scaleChanged(delta, fx, fy)
		}
		e.checkAndDisplay()
		return done
	}
	e.start(t, t0.Add(duration))
}

// startFling throws the content with scroll velocity v (px/s). It returns
// false when the content cannot move on either axis.
func (e *Engine) startFling(v geom.Point) bool {
	if e.opts.Scheduler == nil {
		return false
	}
	rect, ok := e.DisplayRect()
	if !ok {
		return false
	}
	vw, vh, ok := e.viewport()
	if !ok {
		return false
	}

	start := geom.Point{X: -rect.Left(), Y: -rect.Top()}
	lo, hi := start, start
	if vw < rect.Width {
		lo.X, hi.X = 0, rect.Width-vw
	}
	if vh < rect.Height {
		lo.Y, hi.Y = 0, rect.Height-vh
	}
	if lo == hi {
		return false
	}

	solver := e.opts.NewFlingSolver()
	now := e.opts.Clock()
	solver.Fling(start, v, lo, hi, now)
	cur := start

	t := &task{kind: "fling", slot: &e.fling, stop: solver.Abort}
	t.step = func(now time.Time) bool {
		if e.surface == nil {
			return true
		}
		pos, finished := solver.Tick(now)
		dx, dy := cur.X-pos.X, cur.Y-pos.Y
		cur = pos
		if dx != 0 || dy != 0 {
			e.postTranslate(dx, dy)
			e.checkAndDisplay()
		}
		return finished
	}
	e.start(t, now)
	return true
}
