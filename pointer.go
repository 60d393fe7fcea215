package transformable

// TouchPoint is one active finger. Previous is the position already consumed
// by the last calculated frame; Current is the latest reported position.
type TouchPoint struct {
	ID       int
	Start    Vec2
	Current  Vec2
	Previous Vec2
}

// Delta returns the movement not yet consumed by a frame.
func (p *TouchPoint) Delta() Vec2 {
	return p.Current.Sub(p.Previous)
}

// PointerSession tracks the fingers currently down on one element. Points
// keep registration order so that two-finger gestures always use the same
// pair.
type PointerSession struct {
	points   []TouchPoint
	multiple bool
}

// Down registers a finger and reports whether it opened a new gesture (no
// finger was down before). A repeated down for an active id restarts that
// finger at (x, y).
func (s *PointerSession) Down(id int, x, y float64) (first bool) {
	first = len(s.points) == 0
	pos := Vec2{x, y}
	if i := s.index(id); i >= 0 {
		s.points[i] = TouchPoint{ID: id, Start: pos, Current: pos, Previous: pos}
	} else {
		s.points = append(s.points, TouchPoint{ID: id, Start: pos, Current: pos, Previous: pos})
	}
	if len(s.points) > 1 {
		s.multiple = true
	}
	return first
}

// Move updates the current position of a known finger. Unknown ids are
// ignored and reported as false.
func (s *PointerSession) Move(id int, x, y float64) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.points[i].Current = Vec2{x, y}
	return true
}

// Up removes a finger. Unknown ids, including ids already released, are
// ignored and reported as false.
func (s *PointerSession) Up(id int) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	copy(s.points[i:], s.points[i+1:])
	s.points[len(s.points)-1] = TouchPoint{}
	s.points = s.points[:len(s.points)-1]
	return true
}

// Consume marks all current positions as seen by copying them into Previous.
// Called once per calculated frame.
func (s *PointerSession) Consume() {
	for i := range s.points {
		s.points[i].Previous = s.points[i].Current
	}
}

// ActiveCount returns the number of fingers down.
func (s *PointerSession) ActiveCount() int {
	return len(s.points)
}

// HadMultipleFingers reports whether two or more fingers were down at the
// same time since the gesture began.
func (s *PointerSession) HadMultipleFingers() bool {
	return s.multiple
}

// Points returns the active fingers in registration order. The returned
// slice MUST NOT be mutated.
func (s *PointerSession) Points() []TouchPoint {
	return s.points
}

// Point returns the finger with the given id.
func (s *PointerSession) Point(id int) (TouchPoint, bool) {
	if i := s.index(id); i >= 0 {
		return s.points[i], true
	}
	return TouchPoint{}, false
}

// FirstTwo returns the two earliest registered fingers.
func (s *PointerSession) FirstTwo() (a, b *TouchPoint, ok bool) {
	if len(s.points) < 2 {
		return nil, nil, false
	}
	return &s.points[0], &s.points[1], true
}

// resetMultiple clears the multi-finger flag once the gesture fully ended.
func (s *PointerSession) resetMultiple() {
	if len(s.points) == 0 {
		s.multiple = false
	}
}

// clear drops every finger.
func (s *PointerSession) clear() {
	for i := range s.points {
		s.points[i] = TouchPoint{}
	}
	s.points = s.points[:0]
	s.multiple = false
}

func (s *PointerSession) index(id int) int {
	for i := range s.points {
		if s.points[i].ID == id {
			return i
		}
	}
	return -1
}
