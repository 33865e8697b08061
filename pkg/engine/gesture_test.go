package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pinchzoom/pkg/geom"
)

func TestDoubleTapToggles(t *testing.T) {
	e, loop := newAnimated(t, landscape())

	e.DoubleTap(150, 200)
	require.True(t, e.Animating())
	loop.Run(100)
	assert.False(t, e.Animating())
	assert.InDelta(t, 4.0, e.Scale(), tol)

	e.DoubleTap(150, 200)
	loop.Run(100)
	assert.InDelta(t, 1.0, e.Scale(), tol)

	e.DoubleTap(150, 200)
	loop.Run(100)
	assert.InDelta(t, 4.0, e.Scale(), tol)
}

func TestDoubleTapWithoutScheduler(t *testing.T) {
	e := newImmediate(t, landscape())
	e.DoubleTap(150, 200)
	assert.InDelta(t, 4.0, e.Scale(), tol)
	assert.False(t, e.Animating())
}

func TestDragIgnoredWhileScaling(t *testing.T) {
	e := newImmediate(t, landscape())
	e.PointerDown()
	e.Pinch(2, 150, 200)
	require.True(t, e.Scaling())
	before := e.UserMatrix()

	e.Drag(-40, 0)
	assert.Equal(t, before, e.UserMatrix())
	assert.False(t, e.Dragging())

	e.PinchEnd()
	e.Drag(-40, 0)
	assert.NotEqual(t, before, e.UserMatrix())
	assert.True(t, e.Dragging())
}

func TestPinchGuard(t *testing.T) {
	e := newImmediate(t, landscape())
	require.NoError(t, e.SetScale(4, false))

	e.Pinch(1.5, 150, 200)
	assert.InDelta(t, 4.0, e.Scale(), tol, "zooming in stops at the maximum")

	e.Pinch(0.5, 150, 200)
	assert.InDelta(t, 2.0, e.Scale(), tol)

	// Zooming out is never refused, even below the minimum.
	e.Pinch(0.25, 150, 200)
	assert.InDelta(t, 0.5, e.Scale(), tol)
}

func TestPointerUpSnapsBack(t *testing.T) {
	e, loop := newAnimated(t, landscape())

	e.PointerDown()
	e.Pinch(0.5, 150, 200)
	e.PinchEnd()
	e.PointerUp()
	require.True(t, e.Animating())
	loop.Run(100)
	assert.InDelta(t, 1.0, e.Scale(), tol)
	assertRect(t, geom.Rect{X: 0, Y: 100, Width: 300, Height: 200}, e)

	// Past the maximum the pinch overshoots once and snaps back.
	e.PointerDown()
	e.Pinch(3.5, 150, 200)
	e.Pinch(1.5, 150, 200)
	e.PinchEnd()
	assert.Greater(t, e.Scale(), 4.0)
	e.PointerUp()
	loop.Run(100)
	assert.InDelta(t, 4.0, e.Scale(), tol)
}

func TestPointerCancelClearsGesture(t *testing.T) {
	e := newImmediate(t, landscape())
	e.PointerDown()
	e.Pinch(1.2, 0, 0)
	e.PointerCancel()
	assert.False(t, e.Scaling())
	assert.False(t, e.Dragging())
}

func TestClampIdempotentAfterGestures(t *testing.T) {
	e := newImmediate(t, landscape())
	e.PointerDown()
	e.Pinch(3, 40, 60)
	e.PinchEnd()
	e.Drag(123, -77)
	e.Drag(-500, 900)

	rect, ok := e.DisplayRect()
	require.True(t, ok)
	dx, dy := ClampTranslation(rect, 300, 400, FitCenter)
	assert.InDelta(t, 0.0, dx, tol)
	assert.InDelta(t, 0.0, dy, tol)
}

func TestSingleTap(t *testing.T) {
	e := newImmediate(t, landscape())

	var content []geom.Point
	var views []geom.Point
	outside := 0
	e.Observe(Observer{
		OnContentTap: func(x, y float64) { content = append(content, geom.Point{X: x, Y: y}) },
		OnOutsideTap: func() { outside++ },
		OnViewTap:    func(x, y float64) { views = append(views, geom.Point{X: x, Y: y}) },
	})

	e.SingleTapConfirmed(150, 200)
	e.SingleTapConfirmed(75, 150)
	e.SingleTapConfirmed(150, 50)

	require.Len(t, content, 2)
	assert.InDelta(t, 0.5, content[0].X, tol)
	assert.InDelta(t, 0.5, content[0].Y, tol)
	assert.InDelta(t, 0.25, content[1].X, tol)
	assert.InDelta(t, 0.25, content[1].Y, tol)
	assert.Equal(t, 1, outside)
	assert.Len(t, views, 3)
}

func TestLongPressAndViewDrag(t *testing.T) {
	e := newImmediate(t, landscape())

	var pressed geom.Point
	var dragged []float64
	e.Observe(Observer{
		OnLongPress: func(x, y float64) { pressed = geom.Point{X: x, Y: y} },
		OnViewDrag:  func(dx, _ float64) { dragged = append(dragged, dx) },
	})

	e.LongPress(10, 20)
	e.PointerDown()
	e.Drag(-3, 0)

	assert.Equal(t, geom.Point{X: 10, Y: 20}, pressed)
	assert.Equal(t, []float64{-3}, dragged)
}

func TestNonFiniteEventsSwallowed(t *testing.T) {
	e := newImmediate(t, landscape())
	require.NoError(t, e.SetScale(2, false))
	before := e.UserMatrix()

	e.PointerDown()
	e.Drag(math.NaN(), 0)
	e.Pinch(math.Inf(1), 0, 0)
	e.Pinch(2, math.NaN(), 0)
	e.Fling(math.NaN(), 0)
	e.DoubleTap(math.Inf(-1), 0)
	e.PanBy(math.NaN(), 1)

	assert.Equal(t, before, e.UserMatrix())
	assert.Error(t, e.SetScaleAt(2, math.NaN(), 0, false))
}

func TestEdgeUntilNextDownWithholds(t *testing.T) {
	p := &recordingParent{}
	e := newImmediate(t, landscape(), WithParent(p))
	require.NoError(t, e.SetScale(2, false))

	e.PointerDown()
	e.Drag(-50, 0)
	assert.Equal(t, []bool{true, true}, p.calls, "content still spans the viewport")

	// Blocked for the rest of the gesture, even once the edge is hit.
	e.Drag(-50, 0)
	e.Drag(-200, 0)
	assert.Equal(t, []bool{true, true}, p.calls)

	// A new gesture at the right edge hands the drag to the parent.
	e.PointerDown()
	e.Drag(-10, 0)
	assert.Equal(t, []bool{true, true, true, false}, p.calls)
}

func TestEdgeUntilNextDownFittedContent(t *testing.T) {
	p := &recordingParent{}
	e := newImmediate(t, landscape(), WithParent(p))

	// Nothing overhangs the viewport, so the drag goes back to the parent.
	e.PointerDown()
	e.Drag(-50, 0)
	assert.Equal(t, []bool{true, false}, p.calls)
}

func TestEdgeParentIntercept(t *testing.T) {
	p := &recordingParent{}
	e := newImmediate(t, landscape(), WithParent(p), WithEdgePolicy(EdgeParentIntercept))

	e.PointerDown()
	e.Drag(-10, 0)
	assert.Equal(t, []bool{true}, p.calls, "no edge is open to the left")

	// The content is letterboxed vertically so its top edge is inside the
	// viewport.
	e.Drag(0, 10)
	assert.Equal(t, []bool{true, false}, p.calls)
}

func TestEdgeInterceptDisabled(t *testing.T) {
	p := &recordingParent{}
	e := newImmediate(t, landscape(), WithParent(p), WithParentInterceptOnEdge(false))

	e.PointerDown()
	e.Drag(-50, 0)
	e.Drag(0, 50)
	assert.Equal(t, []bool{true, true, true}, p.calls)
}

func TestPinchClaimsGesture(t *testing.T) {
	p := &recordingParent{}
	e := newImmediate(t, landscape())
	e.SetParent(ParentFunc(p.RequestDisallowIntercept))

	e.Pinch(1.1, 150, 200)
	assert.Equal(t, []bool{true}, p.calls)
}
