package transformable

import "math"

// PointerTarget receives normalized pointer input. Element implements it.
type PointerTarget interface {
	PointerDown(id int, x, y float64)
	PointerMove(id int, x, y float64)
	PointerUp(id int)
}

type pointerAction uint8

const (
	actionDown pointerAction = iota
	actionMove
	actionUp
)

// syntheticPointerEvent is a single injected pointer event in page
// coordinates.
type syntheticPointerEvent struct {
	action pointerAction
	id     int
	x, y   float64
}

// Injector queues synthetic pointer input, one frame at a time. Every
// Inject call appends at least one frame; Flush feeds the oldest frame to a
// target. Events within a frame are delivered in order, so a pinch moves
// both fingers before the frame is calculated.
type Injector struct {
	queue [][]syntheticPointerEvent
}

// Pending returns the number of queued frames.
func (in *Injector) Pending() int {
	return len(in.queue)
}

// InjectDown queues a finger press.
func (in *Injector) InjectDown(id int, x, y float64) {
	in.push(syntheticPointerEvent{action: actionDown, id: id, x: x, y: y})
}

// InjectMove queues a finger move.
func (in *Injector) InjectMove(id int, x, y float64) {
	in.push(syntheticPointerEvent{action: actionMove, id: id, x: x, y: y})
}

// InjectUp queues a finger release.
func (in *Injector) InjectUp(id int) {
	in.push(syntheticPointerEvent{action: actionUp, id: id})
}

// InjectDrag queues a full single-finger drag: press at (fromX, fromY),
// linearly interpolated moves, a final move to (toX, toY) and the release.
// The sequence consumes frames frames; the minimum is 3 (press, move,
// release).
func (in *Injector) InjectDrag(id int, fromX, fromY, toX, toY float64, frames int) {
	frames = max(frames, 3)
	in.InjectDown(id, fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		in.InjectMove(id, fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	in.InjectUp(id)
}

// InjectPinch queues a two-finger gesture around (cx, cy) with fingers id
// and id+1 placed opposite each other. Their distance goes from fromDist
// to toDist and their angle (degrees) from fromAngle to toAngle. The
// sequence consumes frames frames; the minimum is 3.
func (in *Injector) InjectPinch(id int, cx, cy, fromDist, toDist, fromAngle, toAngle float64, frames int) {
	frames = max(frames, 3)
	ax, ay, bx, by := pinchPoints(cx, cy, fromDist, fromAngle)
	in.push(
		syntheticPointerEvent{action: actionDown, id: id, x: ax, y: ay},
		syntheticPointerEvent{action: actionDown, id: id + 1, x: bx, y: by},
	)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		d := fromDist + (toDist-fromDist)*t
		a := fromAngle + (toAngle-fromAngle)*t
		ax, ay, bx, by = pinchPoints(cx, cy, d, a)
		in.push(
			syntheticPointerEvent{action: actionMove, id: id, x: ax, y: ay},
			syntheticPointerEvent{action: actionMove, id: id + 1, x: bx, y: by},
		)
	}
	in.push(
		syntheticPointerEvent{action: actionUp, id: id},
		syntheticPointerEvent{action: actionUp, id: id + 1},
	)
}

// Flush pops one queued frame and feeds it to target. Returns false when
// the queue was empty.
func (in *Injector) Flush(target PointerTarget) bool {
	if len(in.queue) == 0 {
		return false
	}
	frame := in.queue[0]
	copy(in.queue, in.queue[1:])
	in.queue[len(in.queue)-1] = nil
	in.queue = in.queue[:len(in.queue)-1]

	for _, ev := range frame {
		switch ev.action {
		case actionDown:
			target.PointerDown(ev.id, ev.x, ev.y)
		case actionMove:
			target.PointerMove(ev.id, ev.x, ev.y)
		case actionUp:
			target.PointerUp(ev.id)
		}
	}
	return true
}

// Clear drops every queued frame.
func (in *Injector) Clear() {
	clear(in.queue)
	in.queue = in.queue[:0]
}

func (in *Injector) push(events ...syntheticPointerEvent) {
	in.queue = append(in.queue, events)
}

// pinchPoints returns two points dist apart, centered on (cx, cy), along
// angle degrees. The first point trails, the second leads.
func pinchPoints(cx, cy, dist, angle float64) (ax, ay, bx, by float64) {
	rad := angle * math.Pi / 180
	dx := math.Cos(rad) * dist / 2
	dy := math.Sin(rad) * dist / 2
	return cx - dx, cy - dy, cx + dx, cy + dy
}
