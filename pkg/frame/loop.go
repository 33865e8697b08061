// Package frame provides a deterministic animation-frame loop for hosts
// without a display: callbacks posted for the next frame run when the loop
// is stepped, and the loop's clock advances by a fixed interval per frame.
package frame

import "time"

// DefaultInterval is one frame at 60 Hz.
const DefaultInterval = time.Second / 60

// Loop queues callbacks for the next frame. It is not safe for concurrent use.
type Loop struct {
	now      time.Time
	interval time.Duration
	queue    []func()
	frames   int
}

// NewLoop returns a loop whose clock starts at start and advances by
// interval on every Step.
func NewLoop(start time.Time, interval time.Duration) *Loop {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Loop{now: start, interval: interval}
}

// PostFrame schedules fn for the next frame.
func (l *Loop) PostFrame(fn func()) {
	l.queue = append(l.queue, fn)
}

// Now returns the loop's current time.
func (l *Loop) Now() time.Time {
	return l.now
}

// Advance moves the clock forward without running a frame.
func (l *Loop) Advance(d time.Duration) {
	l.now = l.now.Add(d)
}

// Pending returns the number of callbacks waiting for the next frame.
func (l *Loop) Pending() int {
	return len(l.queue)
}

// Frames returns how many frames have run.
func (l *Loop) Frames() int {
	return l.frames
}

// Step advances the clock by one interval and runs the callbacks queued
// before the step. Callbacks posted while stepping wait for the next frame.
// It returns the number of callbacks run.
func (l *Loop) Step() int {
	l.now = l.now.Add(l.interval)
	l.frames++
	q := l.queue
	l.queue = nil
	for _, fn := range q {
		fn()
	}
	return len(q)
}

// Run steps until nothing is pending or max frames have run, and returns
// the number of frames stepped.
func (l *Loop) Run(max int) int {
	n := 0
	for n < max && len(l.queue) > 0 {
		l.Step()
		n++
	}
	return n
}
