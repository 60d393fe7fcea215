package transformable

// moveAxis translates the element by the mean finger movement and throws it
// on release. It also classifies swipes.
type moveAxis struct {
	release *releaseAnimator
}

func newMoveAxis() *moveAxis {
	return &moveAxis{
		release: newReleaseAnimator(moveDistancePerSecond, EventMove, EventMoveComplete, PropX, PropY),
	}
}

func (m *moveAxis) onStart(g *gesture) {
	m.release.cancel()
}

// onCalc averages the unconsumed movement of all fingers, so a symmetric
// pinch translates by roughly zero.
func (m *moveAxis) onCalc(g *gesture) {
	points := g.session.Points()
	if len(points) == 0 {
		return
	}
	var sum Vec2
	for i := range points {
		d := points[i].Delta()
		sum.X += d.X
		sum.Y += d.Y
	}
	n := float64(len(points))
	g.calc.X = sum.X / n
	g.calc.Y = sum.Y / n
}

func (m *moveAxis) onUpdate(g *gesture) {
	moved := false
	if g.gate(PropX) {
		g.apply(PropX, g.calc.X)
		moved = true
	}
	if g.gate(PropY) {
		g.apply(PropY, g.calc.Y)
		moved = true
	}
	if moved {
		g.emit(EventMove)
	}
}

func (m *moveAxis) onComplete(g *gesture) {
	m.release.start(g)
	if g.wantsSwipe() && !g.session.HadMultipleFingers() {
		if s, ok := ClassifySwipe(g.velocity, g.track.Current, g.cfg.Swipe); ok {
			g.emitSwipe(s)
		}
	}
}

func (m *moveAxis) advance(g *gesture, dt float64) {
	m.release.advance(g, dt)
}

func (m *moveAxis) cancel() {
	m.release.cancel()
}

func (m *moveAxis) animating() bool {
	return m.release.animating()
}
