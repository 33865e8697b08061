package gui

import "time"

// velocityWindow bounds how far back drag samples count towards a fling.
const velocityWindow = 100 * time.Millisecond

type sample struct {
	dx, dy float64
	at     time.Time
}

// velocityTracker estimates pointer velocity from recent drag deltas.
type velocityTracker struct {
	samples []sample
}

func (t *velocityTracker) reset() {
	t.samples = t.samples[:0]
}

func (t *velocityTracker) add(dx, dy float64, at time.Time) {
	t.samples = append(t.samples, sample{dx: dx, dy: dy, at: at})
	cut := 0
	for cut < len(t.samples) && at.Sub(t.samples[cut].at) > velocityWindow {
		cut++
	}
	t.samples = t.samples[cut:]
}

// velocity returns px/s over the samples still inside the window at now.
// The first sample only marks the start of the window.
func (t *velocityTracker) velocity(now time.Time) (vx, vy float64) {
	var live []sample
	for _, s := range t.samples {
		if now.Sub(s.at) <= velocityWindow {
			live = append(live, s)
		}
	}
	if len(live) < 2 {
		return 0, 0
	}
	elapsed := live[len(live)-1].at.Sub(live[0].at).Seconds()
	if elapsed <= 0 {
		return 0, 0
	}
	for _, s := range live[1:] {
		vx += s.dx
		vy += s.dy
	}
	return vx / elapsed, vy / elapsed
}
