package engine

import (
	"math"
	"time"

	"pinchzoom/pkg/geom"
)

// compensationFor returns the scale multiplier that fits the base-fitted
// content into the viewport at orientation r.
func (e *Engine) compensationFor(r Rotation) float64 {
	if r == Degree0 || r == Degree180 {
		return 1
	}
	vw, vh, vok := e.viewport()
	cw, ch, cok := e.content()
	if !vok || !cok {
		return 1
	}

	upright := ContentRect(e.base.Multiply(geom.RotateDeg(e.baseRotation)), cw, ch)
	if upright.Empty() {
		return 1
	}
	f := math.Min(vw/upright.Height, vh/upright.Width)
	if e.fit == CenterInside {
		if bs := e.base.ScaleX(); bs > 0 {
			f = math.Min(f, 1/bs)
		}
	}
	return f
}

// rotationDelta returns the signed turn in degrees from cur to target.
func rotationDelta(cur, target Rotation, clockwise bool) float64 {
	if clockwise {
		return float64((int(target) - int(cur) + 360) % 360)
	}
	return -float64((int(cur) - int(target) + 360) % 360)
}

// RotateTo turns the content to a quarter-turn orientation about the
// viewport centre, rescaling it so the rotated content fits the viewport.
// It fails with a *PreconditionError when the fit mode does not preserve
// aspect, when the orientation is unset, or when the content is zoomed in
// and rotating at any scale is disabled.
func (e *Engine) RotateTo(deg Rotation, clockwise, animate bool) error {
	const op = "rotate"
	if !e.opts.RotateInAnyScale && e.Scale() > e.CompensatedMin()*(1+scaleEpsilon) {
		return precondition(op, "scale %.3g exceeds minimum %.3g", e.Scale(), e.CompensatedMin())
	}
	return e.rotateTo(op, deg, clockwise, animate)
}

// RotateBy90 turns the content one quarter turn.
func (e *Engine) RotateBy90(clockwise, animate bool) error {
	if !e.rotation.Valid() {
		return precondition("rotate", "rotation is unset")
	}
	delta := 90
	if !clockwise {
		delta = 270
	}
	return e.RotateTo(Rotation((int(e.rotation)+delta)%360), clockwise, animate)
}

func (e *Engine) rotateTo(op string, deg Rotation, clockwise, animate bool) error {
	if !deg.Valid() {
		return precondition(op, "%d is not a quarter turn", int(deg))
	}
	if _, _, ok := e.content(); !ok {
		return precondition(op, "no content")
	}
	vw, vh, ok := e.viewport()
	if !ok {
		return precondition(op, "viewport is empty")
	}
	if !e.fit.AspectPreserving() {
		return precondition(op, "fit mode %s does not support rotation", e.fit)
	}
	if e.rotation == RotationUnset {
		return precondition(op, "rotation is unset")
	}
	if deg == e.rotation {
		return nil
	}

	e.complete(&e.rotate)

	scale := e.Scale()
	delta := rotationDelta(e.rotation, deg, clockwise)
	next := e.compensationFor(deg)
	reset := e.compensation / scale
	apply := next / e.compensation
	cx, cy := vw/2, vh/2

	e.rotation = deg
	e.compensation = next

	if !animate {
		e.postScale(reset*apply, cx, cy)
		e.postRotate(delta, cx, cy)
		e.observers.scaleChanged(reset*apply, cx, cy)
		e.checkAndDisplay()
		return nil
	}

	e.animateRotate(scale, scale*reset*apply, delta, cx, cy)
	return nil
}

// animateRotate interpolates scale linearly from fromScale to toScale and
// the turn from 0 to delta, both about (cx, cy).
func (e *Engine) animateRotate(fromScale, toScale, delta, cx, cy float64) {
	t0 := e.opts.Clock()
	duration := e.opts.RotateDuration
	curve := e.opts.RotateCurve
	turned := 0.0

	t := &task{kind: "rotate", slot: &e.rotate}
	t.step = func(now time.Time) bool {
		if e.surface == nil {
			return true
		}
		done := !now.Before(t0.Add(duration))
		p := 1.0
		if !done {
			p = progress(t0, now, duration, curve)
		}
		if cur := e.Scale(); cur > 0 {
			ds := (fromScale + p*(toScale-fromScale)) / cur
			e.postScale(ds, cx, cy)
			e.observers.scaleChanged(ds, cx, cy)
		}
		angle := p * delta
		e.postRotate(angle-turned, cx, cy)
		turned = angle
		e.checkAndDisplay()
		return done
	}
	e.start(t, t0.Add(duration))
}

// ClearScaleEffect undoes rotation and zoom: the content returns to the
// base rotation at the minimum scale.
func (e *Engine) ClearScaleEffect() {
	if _, _, ok := e.content(); !ok {
		return
	}
	e.complete(&e.rotate)

	switch e.rotation {
	case RotationUnset:
		e.resetMatrix()
	case Degree90, Degree180:
		if err := e.rotateTo("clear", Degree0, false, false); err != nil {
			e.resetMatrix()
		}
	case Degree270:
		if err := e.rotateTo("clear", Degree0, true, false); err != nil {
			e.resetMatrix()
		}
	}

	if lo := e.CompensatedMin(); !nearlyEqual(e.Scale(), lo) {
		if err := e.SetScale(lo, false); err != nil {
			e.log.Debug("clear scale effect", "err", err)
		}
	}
}
