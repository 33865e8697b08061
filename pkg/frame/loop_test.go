package frame

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStepRunsOnlyQueuedCallbacks(t *testing.T) {
	start := time.Unix(0, 0)
	l := NewLoop(start, 10*time.Millisecond)

	var ran []int
	l.PostFrame(func() {
		ran = append(ran, 1)
		l.PostFrame(func() { ran = append(ran, 2) })
	})

	assert.Equal(t, 1, l.Step())
	assert.Equal(t, []int{1}, ran)
	assert.Equal(t, 1, l.Pending())
	assert.Equal(t, start.Add(10*time.Millisecond), l.Now())

	assert.Equal(t, 1, l.Step())
	assert.Equal(t, []int{1, 2}, ran)
	assert.Equal(t, 2, l.Frames())
}

func TestRunStopsWhenIdleOrAtLimit(t *testing.T) {
	l := NewLoop(time.Unix(0, 0), 0)

	var again func()
	count := 0
	again = func() {
		count++
		l.PostFrame(again)
	}
	l.PostFrame(again)

	assert.Equal(t, 5, l.Run(5))
	assert.Equal(t, 5, count)

	idle := NewLoop(time.Unix(0, 0), 0)
	assert.Equal(t, 0, idle.Run(10))
}
