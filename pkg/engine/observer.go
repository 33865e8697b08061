package engine

import "pinchzoom/pkg/geom"

// Observer is a set of callbacks fired synchronously on state changes.
// Nil fields are skipped.
type Observer struct {
	// OnMatrixChanged receives the new display rect after every applied
	// matrix change.
	OnMatrixChanged func(rect geom.Rect)

	// OnScaleChanged receives the relative scale factor just applied and
	// its focus, not the absolute scale.
	OnScaleChanged func(delta, focusX, focusY float64)

	// OnContentTap receives a confirmed single tap on the content, in
	// coordinates normalized to [0, 1] across the display rect.
	OnContentTap func(x, y float64)

	// OnOutsideTap fires for a confirmed single tap outside the content.
	OnOutsideTap func()

	// OnViewTap receives every confirmed single tap in view coordinates.
	OnViewTap func(x, y float64)

	// OnViewDrag receives every drag delta applied to the content.
	OnViewDrag func(dx, dy float64)

	// OnLongPress receives long presses in view coordinates.
	OnLongPress func(x, y float64)
}

type observerSet struct {
	next  int
	slots map[int]Observer
	order []int
}

func (s *observerSet) add(o Observer) int {
	if s.slots == nil {
		s.slots = make(map[int]Observer)
	}
	id := s.next
	s.next++
	s.slots[id] = o
	s.order = append(s.order, id)
	return id
}

func (s *observerSet) remove(id int) {
	if _, ok := s.slots[id]; !ok {
		return
	}
	delete(s.slots, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i:i], s.order[i+1:]...)
			break
		}
	}
}

// each calls fn for every observer in registration order. Observers
// registered or removed by fn take effect on the next notification.
func (s *observerSet) each(fn func(Observer)) {
	if len(s.order) == 0 {
		return
	}
	ids := append([]int(nil), s.order...)
	for _, id := range ids {
		if o, ok := s.slots[id]; ok {
			fn(o)
		}
	}
}

func (s *observerSet) matrixChanged(r geom.Rect) {
	s.each(func(o Observer) {
		if o.OnMatrixChanged != nil {
			o.OnMatrixChanged(r)
		}
	})
}

func (s *observerSet) scaleChanged(delta, fx, fy float64) {
	s.each(func(o Observer) {
		if o.OnScaleChanged != nil {
			o.OnScaleChanged(delta, fx, fy)
		}
	})
}

func (s *observerSet) contentTap(x, y float64) {
	s.each(func(o Observer) {
		if o.OnContentTap != nil {
			o.OnContentTap(x, y)
		}
	})
}

func (s *observerSet) outsideTap() {
	s.each(func(o Observer) {
		if o.OnOutsideTap != nil {
			o.OnOutsideTap()
		}
	})
}

func (s *observerSet) viewTap(x, y float64) {
	s.each(func(o Observer) {
		if o.OnViewTap != nil {
			o.OnViewTap(x, y)
		}
	})
}

func (s *observerSet) viewDrag(dx, dy float64) {
	s.each(func(o Observer) {
		if o.OnViewDrag != nil {
			o.OnViewDrag(dx, dy)
		}
	})
}

func (s *observerSet) longPress(x, y float64) {
	s.each(func(o Observer) {
		if o.OnLongPress != nil {
			o.OnLongPress(x, y)
		}
	})
}
