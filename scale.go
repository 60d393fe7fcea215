package transformable

// scaleAxis scales the element by the change in distance between the first
// two fingers.
type scaleAxis struct {
	release *releaseAnimator
}

func newScaleAxis() *scaleAxis {
	return &scaleAxis{
		release: newReleaseAnimator(scaleDistancePerSecond, EventScale, EventScaleComplete, PropScale),
	}
}

func (s *scaleAxis) onStart(g *gesture) {
	if g.session.ActiveCount() > 1 {
		s.release.cancel()
	}
}

// onCalc stores the fractional change in finger distance: 0.1 means the
// fingers moved 10% apart this frame. Coincident fingers yield no change.
func (s *scaleAxis) onCalc(g *gesture) {
	a, b, ok := g.session.FirstTwo()
	if !ok {
		return
	}
	prev := b.Previous.Sub(a.Previous).Len()
	cur := b.Current.Sub(a.Current).Len()
	if prev == 0 || cur == 0 {
		return
	}
	g.calc.Scale = cur/prev - 1
}

func (s *scaleAxis) onUpdate(g *gesture) {
	if g.session.ActiveCount() < 2 {
		return
	}
	if g.gate(PropScale) {
		g.apply(PropScale, g.calc.Scale)
		g.emit(EventScale)
	}
}

func (s *scaleAxis) onComplete(g *gesture) {
	s.release.start(g)
}

func (s *scaleAxis) advance(g *gesture, dt float64) {
	s.release.advance(g, dt)
}

func (s *scaleAxis) cancel() {
	s.release.cancel()
}

func (s *scaleAxis) animating() bool {
	return s.release.animating()
}
