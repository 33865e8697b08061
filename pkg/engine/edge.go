package engine

import "pinchzoom/pkg/geom"

// dragThreshold is the per-axis delta below which a drag does not count
// as moving toward an edge.
const dragThreshold = 1

// edgeArbiter decides whether the parent container may take over a drag.
type edgeArbiter struct {
	policy      EdgePolicy
	allowOnEdge bool
	blocked     bool
}

func (a *edgeArbiter) reset() {
	a.blocked = false
}

// decide returns the disallow flag to send to the parent for a drag of
// (dx, dy) that left the content at rect, or send=false when the parent
// should not be told anything.
func (a *edgeArbiter) decide(rect geom.Rect, vw, vh, dx, dy float64) (disallow, send bool) {
	if !a.allowOnEdge {
		return true, true
	}

	switch a.policy {
	case EdgeParentIntercept:
		atEdge := (rect.Right() < vw && dx < -dragThreshold) ||
			(rect.Bottom() < vh && dy < -dragThreshold) ||
			(rect.Left() > 0 && dx > dragThreshold) ||
			(rect.Top() > 0 && dy > dragThreshold)
		if atEdge {
			return false, true
		}
		return false, false

	default:
		canMove := (rect.Right() > vw && dx < -dragThreshold) ||
			(rect.Bottom() > vh && dy < -dragThreshold) ||
			(rect.Left() < 0 && dx > dragThreshold) ||
			(rect.Top() < 0 && dy > dragThreshold)
		if canMove {
			if a.blocked {
				return false, false
			}
			a.blocked = true
			return true, true
		}
		if a.blocked {
			return false, false
		}
		return false, true
	}
}
