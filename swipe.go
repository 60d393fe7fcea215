package transformable

// Swipe is the result of classifying a released single-finger gesture.
type Swipe struct {
	Orientation Orientation
	Direction   SwipeDirection
	// Velocity is the measured velocity along the swipe axis.
	Velocity float64
}

// Sign returns -1 for left/up and 1 for right/down.
func (s Swipe) Sign() int {
	return s.Direction.Sign()
}

// ClassifySwipe decides whether a gesture with the given final velocity and
// tracked displacement is a swipe.
//
// The orientation follows the faster axis, falling back to the axis with
// more tracked displacement. Moving farther than the configured width or
// height is a swipe in that direction regardless of speed. A flick faster
// than cfg.Velocity then decides the direction by itself, so a large drag
// followed by a quick flick back swipes the other way.
func ClassifySwipe(v Velocity, tracked Motion, cfg SwipeConfig) (Swipe, bool) {
	var (
		orientation Orientation
		prop        Property
		size        float64
		prev, next  SwipeDirection
	)

	switch {
	case v.X > 0 && v.X > v.Y:
		orientation = OrientationHorizontal
	case v.Y > 0 && v.Y > v.X:
		orientation = OrientationVertical
	case abs(tracked.X) > abs(tracked.Y):
		orientation = OrientationHorizontal
	case abs(tracked.Y) > abs(tracked.X):
		orientation = OrientationVertical
	default:
		return Swipe{}, false
	}

	if orientation == OrientationHorizontal {
		prop, size, prev, next = PropX, cfg.Width, SwipeLeft, SwipeRight
	} else {
		prop, size, prev, next = PropY, cfg.Height, SwipeUp, SwipeDown
	}

	dir := SwipeNone
	switch d := tracked.Get(prop); {
	case d < -size:
		dir = prev
	case d > size:
		dir = next
	}

	if v.Get(prop) > cfg.Velocity {
		switch v.Direction.Get(prop) {
		case -1:
			dir = prev
		case 1:
			dir = next
		}
	}

	if dir == SwipeNone {
		return Swipe{}, false
	}
	return Swipe{Orientation: orientation, Direction: dir, Velocity: v.Get(prop)}, true
}
