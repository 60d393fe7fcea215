package transformable

import (
	"log/slog"
	"time"
)

// gesture is the state shared by the axis modules of one element. The
// element owns it and passes it by reference to every hook.
type gesture struct {
	cfg      *Config
	state    *TransformState
	session  *PointerSession
	calc     Motion
	track    Tracking
	velocity Velocity
	fired    [4]bool // recognizer gates by Property
	locked   bool
	now      time.Time

	emit       func(EventType)
	wantsSwipe func() bool
	emitSwipe  func(Swipe)
	logger     *slog.Logger
}

// gate reports whether the recognizer for p is open, opening it when the
// tracked displacement reached the threshold. Once open it stays open until
// the gesture ends.
func (g *gesture) gate(p Property) bool {
	if g.fired[p] {
		return true
	}
	if abs(g.track.Current.Get(p)) >= g.cfg.Axis(p).RecognizerThreshold {
		g.fired[p] = true
	}
	return g.fired[p]
}

// apply feeds a calculated per-frame delta through Hold on the live state.
func (g *gesture) apply(p Property, delta float64) {
	cfg := g.cfg.Axis(p)
	Hold(p, cfg, g.state, true, delta*cfg.MoveFraction*g.cfg.BaseFraction)
}

// axis is one gesture capability. The element calls the hooks in the order
// onStart, (onCalc, onUpdate)*, onComplete for every registered axis, in
// registration order, and advance once per frame while animating.
type axis interface {
	// onStart runs when a finger goes down.
	onStart(g *gesture)
	// onCalc adds this frame's raw delta into g.calc. Not called while locked.
	onCalc(g *gesture)
	// onUpdate applies g.calc to the live state. Not called while locked.
	onUpdate(g *gesture)
	// onComplete runs when the last finger is released and not locked.
	onComplete(g *gesture)
	// advance steps a running release animation by dt seconds.
	advance(g *gesture, dt float64)
	// cancel stops a running release animation without completing it.
	cancel()
	animating() bool
}

// newAxes builds the axis modules selected by caps in their fixed order:
// move, rotate, scale.
func newAxes(caps Capability) []axis {
	axes := make([]axis, 0, 3)
	if caps&CapMove != 0 {
		axes = append(axes, newMoveAxis())
	}
	if caps&CapRotate != 0 {
		axes = append(axes, newRotateAxis())
	}
	if caps&CapScale != 0 {
		axes = append(axes, newScaleAxis())
	}
	return axes
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
