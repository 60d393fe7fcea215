package transformable

import "math"

// Vec2 is a 2D point in page coordinates.
type Vec2 struct {
	X, Y float64
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// Range is a closed [Min, Max] interval.
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Bounds returns a pointer to a Range, convenient for AxisConfig.Borders.
func Bounds(min, max float64) *Range {
	return &Range{Min: min, Max: max}
}

// Property identifies one transformable scalar. PropScale covers both
// ScaleX and ScaleY, which are always kept equal.
type Property uint8

const (
	PropX        Property = iota // horizontal translation
	PropY                        // vertical translation
	PropScale                    // uniform scale
	PropRotation                 // rotation in degrees
)

func (p Property) String() string {
	switch p {
	case PropX:
		return "x"
	case PropY:
		return "y"
	case PropScale:
		return "scale"
	case PropRotation:
		return "rotation"
	default:
		return "unknown"
	}
}

// Motion holds one value per transformable property. It is used for tracked
// displacement, velocity magnitudes, directions and deltas.
type Motion struct {
	X, Y, Scale, Rotation float64
}

// Get returns the component for p.
func (m Motion) Get(p Property) float64 {
	switch p {
	case PropX:
		return m.X
	case PropY:
		return m.Y
	case PropScale:
		return m.Scale
	default:
		return m.Rotation
	}
}

// Add returns m + o component-wise.
func (m Motion) Add(o Motion) Motion {
	return Motion{m.X + o.X, m.Y + o.Y, m.Scale + o.Scale, m.Rotation + o.Rotation}
}

// Sub returns m - o component-wise.
func (m Motion) Sub(o Motion) Motion {
	return Motion{m.X - o.X, m.Y - o.Y, m.Scale - o.Scale, m.Rotation - o.Rotation}
}

// TransformState is the numeric transform of an interactive element.
// Rotation is in degrees. RotationX/Y/Z are independent per-axis angles left
// for consumers that tilt the element; gestures only drive Rotation.
type TransformState struct {
	X         float64 `yaml:"x"`
	Y         float64 `yaml:"y"`
	ScaleX    float64 `yaml:"scaleX"`
	ScaleY    float64 `yaml:"scaleY"`
	Rotation  float64 `yaml:"rotation"`
	RotationX float64 `yaml:"rotationX"`
	RotationY float64 `yaml:"rotationY"`
	RotationZ float64 `yaml:"rotationZ"`
}

// IdentityState is a state at the origin with unit scale.
var IdentityState = TransformState{ScaleX: 1, ScaleY: 1}

// Get returns the value backing p. Scale reads ScaleX.
func (s *TransformState) Get(p Property) float64 {
	switch p {
	case PropX:
		return s.X
	case PropY:
		return s.Y
	case PropScale:
		return s.ScaleX
	default:
		return s.Rotation
	}
}

// Set writes v to the field backing p. Scale writes both ScaleX and ScaleY.
func (s *TransformState) Set(p Property, v float64) {
	switch p {
	case PropX:
		s.X = v
	case PropY:
		s.Y = v
	case PropScale:
		s.ScaleX = v
		s.ScaleY = v
	default:
		s.Rotation = v
	}
}

// GestureState is the lifecycle state of an element's gesture session.
type GestureState uint8

const (
	StateIdle      GestureState = iota // no finger down, nothing animating
	StateTracking                      // at least one finger down
	StateReleasing                     // all fingers up, release animations running
)

func (s GestureState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateTracking:
		return "tracking"
	case StateReleasing:
		return "releasing"
	default:
		return "unknown"
	}
}

// EventType identifies a gesture event.
type EventType uint8

const (
	EventStart          EventType = iota // a finger went down
	EventCalc                            // per-frame deltas were calculated
	EventUpdate                          // calculated deltas were applied
	EventComplete                        // a finger was released
	EventMove                            // translation changed (drag or release)
	EventMoveComplete                    // translation came to rest
	EventRotate                          // rotation changed
	EventRotateComplete                  // rotation came to rest
	EventScale                           // scale changed
	EventScaleComplete                   // scale came to rest
	EventSwipe                           // a swipe was classified on release
	eventTypeCount
)

var eventNames = [eventTypeCount]string{
	"start", "calc", "update", "complete",
	"move", "moveComplete", "rotate", "rotateComplete",
	"scale", "scaleComplete", "swipe",
}

func (t EventType) String() string {
	if t < eventTypeCount {
		return eventNames[t]
	}
	return "unknown"
}

// Capability selects which gesture axes an element responds to.
// Values can be combined with bitwise OR.
type Capability uint8

const (
	CapMove   Capability = 1 << iota // one or more fingers translate
	CapRotate                        // two fingers rotate
	CapScale                         // two fingers scale

	CapAll = CapMove | CapRotate | CapScale
)

// Orientation of a swipe.
type Orientation uint8

const (
	OrientationNone Orientation = iota
	OrientationHorizontal
	OrientationVertical
)

func (o Orientation) String() string {
	switch o {
	case OrientationHorizontal:
		return "horizontal"
	case OrientationVertical:
		return "vertical"
	default:
		return "none"
	}
}

// SwipeDirection names the direction of a swipe. Left and Up are the "prev"
// directions of their orientation, Right and Down the "next" ones.
type SwipeDirection uint8

const (
	SwipeNone SwipeDirection = iota
	SwipeLeft
	SwipeRight
	SwipeUp
	SwipeDown
)

func (d SwipeDirection) String() string {
	switch d {
	case SwipeLeft:
		return "left"
	case SwipeRight:
		return "right"
	case SwipeUp:
		return "up"
	case SwipeDown:
		return "down"
	default:
		return "none"
	}
}

// Sign returns -1 for prev directions (left, up), 1 for next directions
// (right, down) and 0 for none. Down is +1 so the sign matches the screen
// y axis and Velocity.Direction; older carousel code that maps down to -1
// must flip vertical signs.
func (d SwipeDirection) Sign() int {
	switch d {
	case SwipeLeft, SwipeUp:
		return -1
	case SwipeRight, SwipeDown:
		return 1
	default:
		return 0
	}
}

// ScrollDirection is used by Config.Scrolls.
type ScrollDirection uint8

const (
	ScrollNone ScrollDirection = iota
	ScrollHorizontal
	ScrollVertical
)
