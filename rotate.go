package transformable

import "math"

// rotateAxis turns the element by the change in angle between the first two
// fingers.
type rotateAxis struct {
	release *releaseAnimator
}

func newRotateAxis() *rotateAxis {
	return &rotateAxis{
		release: newReleaseAnimator(rotationDistancePerSecond, EventRotate, EventRotateComplete, PropRotation),
	}
}

// onStart stops a running throw only once a second finger lands, so a
// single-finger drag does not interrupt a spinning release.
func (r *rotateAxis) onStart(g *gesture) {
	if g.session.ActiveCount() > 1 {
		r.release.cancel()
	}
}

func (r *rotateAxis) onCalc(g *gesture) {
	a, b, ok := g.session.FirstTwo()
	if !ok {
		return
	}
	prev := b.Previous.Sub(a.Previous)
	cur := b.Current.Sub(a.Current)
	if prev.Len() == 0 || cur.Len() == 0 {
		return
	}
	g.calc.Rotation = normalizeDegrees(angle(cur) - angle(prev))
}

func (r *rotateAxis) onUpdate(g *gesture) {
	if g.session.ActiveCount() < 2 {
		return
	}
	if g.gate(PropRotation) {
		g.apply(PropRotation, g.calc.Rotation)
		g.emit(EventRotate)
	}
}

func (r *rotateAxis) onComplete(g *gesture) {
	r.release.start(g)
}

func (r *rotateAxis) advance(g *gesture, dt float64) {
	r.release.advance(g, dt)
}

func (r *rotateAxis) cancel() {
	r.release.cancel()
}

func (r *rotateAxis) animating() bool {
	return r.release.animating()
}

// angle returns the direction of v in degrees.
func angle(v Vec2) float64 {
	return math.Atan2(v.Y, v.X) * 180 / math.Pi
}

// normalizeDegrees maps d into (-180, 180] so crossing the atan2 seam does
// not read as a full turn.
func normalizeDegrees(d float64) float64 {
	d = math.Mod(d, 360)
	if d > 180 {
		d -= 360
	} else if d <= -180 {
		d += 360
	}
	return d
}
