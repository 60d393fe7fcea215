package transformable

import (
	"log/slog"
	"math"
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Release animation constants. A throw that overshoots a border and bounces
// back runs at overshootSpeed per unit distance relative to a straight
// settle.
const (
	overshootSpeed = 0.75

	moveDistancePerSecond     = 500.0
	rotationDistancePerSecond = 60.0
	scaleDistancePerSecond    = 0.3
)

// keyframe holds up to two property values, indexed like releasePlan.props.
type keyframe [2]float64

// releasePlan is the computed throw for a set of properties.
type releasePlan struct {
	props   []Property
	from    keyframe
	frames  []keyframe // overshoot then settle, or settle only
	lengths []float64  // length of each path segment
	total   float64
	seconds float64
}

// settle returns the final resting keyframe.
func (p *releasePlan) settle() keyframe {
	return p.frames[len(p.frames)-1]
}

// at returns the position at distance d along the keyframe path.
func (p *releasePlan) at(d float64) keyframe {
	prev := p.from
	for i, f := range p.frames {
		l := p.lengths[i]
		if d <= l || i == len(p.frames)-1 {
			t := 1.0
			if l > 0 {
				t = math.Max(0, math.Min(1, d/l))
			}
			var out keyframe
			for j := range p.props {
				out[j] = prev[j] + (f[j]-prev[j])*t
			}
			return out
		}
		d -= l
		prev = f
	}
	return p.from
}

// releaseAnimator drives the eased throw of one axis module. It is the
// only writer of the live state while a release is running.
type releaseAnimator struct {
	props         []Property
	perSecond     float64
	updateEvent   EventType
	completeEvent EventType

	plan    releasePlan
	tween   *gween.Tween
	running bool
}

func newReleaseAnimator(perSecond float64, update, complete EventType, props ...Property) *releaseAnimator {
	return &releaseAnimator{
		props:         props,
		perSecond:     perSecond,
		updateEvent:   update,
		completeEvent: complete,
	}
}

// needsRelease reports whether releasing would move any property: the last
// velocity window saw movement, a snap interval would round the value, or
// the value was left beyond a hard border.
func (a *releaseAnimator) needsRelease(g *gesture) bool {
	for _, p := range a.props {
		cfg := g.cfg.Axis(p)
		v := g.state.Get(p)
		if g.velocity.Delta.Get(p) != 0 {
			return true
		}
		if cfg.SnapInterval > 0 && snap(v, cfg.SnapInterval) != v {
			return true
		}
		if outsideBorders(cfg, v) {
			return true
		}
	}
	return false
}

// start plans and starts the throw, cancelling any throw still running
// (overwrite). Completes synchronously when nothing would move or the
// animation would be shorter than a millisecond.
func (a *releaseAnimator) start(g *gesture) {
	a.cancel()

	if !a.needsRelease(g) {
		g.emit(a.completeEvent)
		return
	}

	a.plan = a.planRelease(g)
	g.logger.Debug("release planned",
		slog.String("event", a.updateEvent.String()),
		slog.Int("keyframes", len(a.plan.frames)),
		slog.Float64("distance", a.plan.total),
		slog.Float64("seconds", a.plan.seconds))

	if time.Duration(a.plan.seconds*float64(time.Second)).Round(time.Millisecond) == 0 {
		a.write(g, a.plan.settle())
		g.emit(a.completeEvent)
		return
	}

	a.tween = gween.New(0, 1, float32(a.plan.seconds), ease.OutCubic)
	a.running = true
}

func (a *releaseAnimator) planRelease(g *gesture) releasePlan {
	plan := releasePlan{props: a.props}

	over := *g.state
	for i, p := range a.props {
		cfg := g.cfg.Axis(p)
		cur := g.state.Get(p)
		plan.from[i] = cur

		candidate := cur + g.velocity.Delta.Get(p)*cfg.ReleaseFraction*g.cfg.BaseFraction*g.velocity.Get(p)
		if math.IsNaN(candidate) || math.IsInf(candidate, 0) {
			candidate = cur
		}
		if cfg.SnapInterval > 0 {
			candidate = snap(candidate, cfg.SnapInterval)
		}
		over.Set(p, candidate)
		Settle(p, cfg, &over, true)
	}

	rest := over
	for _, p := range a.props {
		Settle(p, g.cfg.Axis(p), &rest, false)
	}

	var overshoot, settle keyframe
	for i, p := range a.props {
		overshoot[i] = over.Get(p)
		settle[i] = rest.Get(p)
	}

	factor := 1.0
	if overshoot == settle {
		plan.frames = []keyframe{settle}
		plan.lengths = []float64{distance(plan.from, settle)}
	} else {
		plan.frames = []keyframe{overshoot, settle}
		plan.lengths = []float64{distance(plan.from, overshoot), distance(overshoot, settle)}
		factor = overshootSpeed
	}
	for _, l := range plan.lengths {
		plan.total += l
	}

	speed := g.cfg.Axis(a.props[0])
	seconds := plan.total / a.perSecond / speed.SpeedFraction * factor
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds < 0 {
		seconds = 0
	}
	plan.seconds = math.Min(seconds, speed.MaxSpeedSeconds)
	return plan
}

// advance steps the tween by dt seconds, writes the interpolated values and
// emits the update event; the complete event fires once when it ends. A
// lock stops the animation where it is.
func (a *releaseAnimator) advance(g *gesture, dt float64) {
	if !a.running {
		return
	}
	if g.locked {
		a.cancel()
		return
	}

	progress, done := a.tween.Update(float32(dt))
	if done {
		a.write(g, a.plan.settle())
	} else {
		a.write(g, a.plan.at(float64(progress)*a.plan.total))
	}
	g.emit(a.updateEvent)

	if done {
		a.running = false
		a.tween = nil
		g.emit(a.completeEvent)
	}
}

func (a *releaseAnimator) write(g *gesture, k keyframe) {
	for i, p := range a.props {
		g.state.Set(p, k[i])
	}
}

func (a *releaseAnimator) cancel() {
	a.running = false
	a.tween = nil
}

func (a *releaseAnimator) animating() bool {
	return a.running
}

func snap(v, interval float64) float64 {
	return math.Round(v/interval) * interval
}

func distance(a, b keyframe) float64 {
	dx := b[0] - a[0]
	dy := b[1] - a[1]
	return math.Sqrt(dx*dx + dy*dy)
}
