package scroller

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pinchzoom/pkg/geom"
)

var t0 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func run(s *Scroller, frames int) (geom.Point, bool) {
	var pos geom.Point
	var done bool
	for i := 1; i <= frames; i++ {
		pos, done = s.Tick(t0.Add(time.Duration(i) * 16 * time.Millisecond))
		if done {
			break
		}
	}
	return pos, done
}

func TestFlingDecaysAndStops(t *testing.T) {
	s := New()
	s.Fling(geom.Point{X: 0}, geom.Point{X: 420}, geom.Point{}, geom.Point{X: 10000}, t0)

	pos, done := run(s, 1000)
	require.True(t, done)
	// Total travel for exponential drag is -v0/k.
	assert.InDelta(t, 100.0, pos.X, 1.0)
	assert.Equal(t, 0.0, pos.Y)
}

func TestFlingKeepsFractionalStart(t *testing.T) {
	s := New()
	s.Fling(geom.Point{X: 10.4, Y: 0.3}, geom.Point{X: 100}, geom.Point{}, geom.Point{X: 1000}, t0)

	pos, done := s.Tick(t0)
	require.False(t, done)
	assert.InDelta(t, 10.4, pos.X, 1e-9)
	assert.InDelta(t, 0.3, pos.Y, 1e-9)
}

func TestFlingStopsAtBounds(t *testing.T) {
	s := New()
	s.Fling(geom.Point{X: 50, Y: 50}, geom.Point{X: 5000, Y: -5000}, geom.Point{}, geom.Point{X: 100, Y: 100}, t0)

	pos, done := run(s, 1000)
	require.True(t, done)
	assert.Equal(t, geom.Point{X: 100, Y: 0}, pos)
}

func TestFlingWithoutRoomIsFinished(t *testing.T) {
	s := New()
	s.Fling(geom.Point{X: 20, Y: 30}, geom.Point{X: 1000, Y: 1000}, geom.Point{X: 20, Y: 30}, geom.Point{X: 20, Y: 30}, t0)
	assert.True(t, s.Finished())

	pos, done := s.Tick(t0.Add(time.Second))
	assert.True(t, done)
	assert.Equal(t, geom.Point{X: 20, Y: 30}, pos)
}

func TestAbort(t *testing.T) {
	s := New()
	s.Fling(geom.Point{}, geom.Point{X: 1000}, geom.Point{}, geom.Point{X: 1000}, t0)
	first, done := s.Tick(t0.Add(16 * time.Millisecond))
	require.False(t, done)

	s.Abort()
	pos, done := s.Tick(t0.Add(time.Second))
	assert.True(t, done)
	assert.Equal(t, first, pos)
}

func TestNewWithDragRejectsPositive(t *testing.T) {
	assert.Equal(t, DefaultDrag, NewWithDrag(3).drag)
	assert.Equal(t, -2.0, NewWithDrag(-2).drag)
}
