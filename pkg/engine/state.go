package engine

import (
	"math"

	"pinchzoom/pkg/geom"
)

// DisplayMatrix returns base ∘ user, the matrix content is drawn with.
func (e *Engine) DisplayMatrix() geom.Matrix {
	return e.base.Multiply(e.user)
}

// BaseMatrix returns the fit matrix for the current content and viewport.
func (e *Engine) BaseMatrix() geom.Matrix { return e.base }

// UserMatrix returns the matrix accumulated from gestures.
func (e *Engine) UserMatrix() geom.Matrix { return e.user }

// Scale returns the user scale, sqrt(m00² + m10²) of the user matrix.
func (e *Engine) Scale() float64 {
	return e.user.ScaleX()
}

// DisplayRect returns the content rectangle in viewport coordinates, or
// ok=false when no content is loaded.
func (e *Engine) DisplayRect() (geom.Rect, bool) {
	if !e.rectValid {
		cw, ch, ok := e.content()
		e.rectOK = ok
		if ok {
			e.rect = ContentRect(e.DisplayMatrix(), cw, ch)
		} else {
			e.rect = geom.Rect{}
		}
		e.rectValid = true
	}
	return e.rect, e.rectOK
}

func (e *Engine) invalidate() {
	e.rectValid = false
}

func (e *Engine) postTranslate(dx, dy float64) {
	e.user.PostTranslate(dx, dy)
	e.invalidate()
}

func (e *Engine) postScale(factor, fx, fy float64) {
	e.user.PostScale(factor, factor, fx, fy)
	e.invalidate()
}

func (e *Engine) postRotate(deg, fx, fy float64) {
	e.user.PostRotate(deg, fx, fy)
	e.invalidate()
}

// checkBounds translates the user matrix so the display rect obeys the
// clamp. It reports false when there is nothing to clamp against.
func (e *Engine) checkBounds() bool {
	rect, ok := e.DisplayRect()
	if !ok {
		return false
	}
	vw, vh, ok := e.viewport()
	if !ok {
		return false
	}
	dx, dy := ClampTranslation(rect, vw, vh, e.fit)
	if dx != 0 || dy != 0 {
		e.postTranslate(dx, dy)
	}
	return true
}

// checkAndDisplay clamps and, if that succeeded, publishes the new rect.
// Clamping is always the last mutation before observers see the state.
func (e *Engine) checkAndDisplay() {
	if !e.checkBounds() {
		return
	}
	if rect, ok := e.DisplayRect(); ok {
		e.observers.matrixChanged(rect)
	}
}

// SetDisplayMatrix replaces the user matrix with m and clamps it. It
// reports false, changing nothing, when no content is loaded.
func (e *Engine) SetDisplayMatrix(m geom.Matrix) bool {
	if _, _, ok := e.content(); !ok {
		return false
	}
	e.user = m
	e.rotation = RotationUnset
	e.invalidate()
	e.checkAndDisplay()
	return true
}

// SetRotationTo replaces the user matrix with a plain rotation of deg
// degrees. Zoom and pan are dropped and the quarter-turn state becomes
// unset.
func (e *Engine) SetRotationTo(deg float64) {
	if _, _, ok := e.content(); !ok {
		return
	}
	e.user = geom.RotateDeg(math.Mod(deg, 360))
	e.rotation = RotationUnset
	e.compensation = 1
	e.invalidate()
	e.checkAndDisplay()
}

// SetRotationBy rotates the user matrix by deg degrees about the origin.
// The quarter-turn state becomes unset.
func (e *Engine) SetRotationBy(deg float64) {
	if _, _, ok := e.content(); !ok {
		return
	}
	e.postRotate(math.Mod(deg, 360), 0, 0)
	e.rotation = RotationUnset
	e.checkAndDisplay()
}

// SetBaseRotation sets the rotation every reset starts from and resets the
// view.
func (e *Engine) SetBaseRotation(deg float64) {
	e.baseRotation = math.Mod(deg, 360)
	e.Update()
}

// PanBy moves the content by (dx, dy) and clamps.
func (e *Engine) PanBy(dx, dy float64) {
	if !finite(dx, dy) {
		return
	}
	if _, _, ok := e.content(); !ok {
		return
	}
	e.postTranslate(dx, dy)
	e.checkAndDisplay()
}

// PanTo moves the display rect's top-left corner to (x, y) and clamps.
func (e *Engine) PanTo(x, y float64) {
	rect, ok := e.DisplayRect()
	if !ok || !finite(x, y) {
		return
	}
	e.PanBy(x-rect.X, y-rect.Y)
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
