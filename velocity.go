package transformable

import (
	"math"
	"time"
)

// Tracking accumulates calculated gesture displacement. Current grows every
// frame fingers move; Start is the value of Current when the current
// velocity window opened.
type Tracking struct {
	Current   Motion
	Start     Motion
	Ticks     int
	StartTime time.Time
}

// reset zeroes the accumulation and opens a new window at now.
func (t *Tracking) reset(now time.Time) {
	t.Current = Motion{}
	t.Start = Motion{}
	t.Ticks = 0
	t.StartTime = now
}

// restartWindow keeps Current and opens a new velocity window at now.
func (t *Tracking) restartWindow(now time.Time) {
	t.Start = t.Current
	t.Ticks = 0
	t.StartTime = now
}

// Velocity is the recent gesture speed. The embedded Motion holds
// magnitudes in units per millisecond, never negative and capped per axis.
type Velocity struct {
	Motion
	// Direction is -1, 0 or 1 per property.
	Direction Motion
	// Delta is the signed displacement of the last sample window.
	Delta Motion
}

// sample recomputes v from the displacement tracked since t.StartTime.
// A window of zero length yields zero magnitudes.
func (v *Velocity) sample(t *Tracking, now time.Time, max Motion) {
	elapsed := float64(now.Sub(t.StartTime)) / float64(time.Millisecond)

	v.Delta = t.Current.Sub(t.Start)
	v.Direction = Motion{
		X:        sign(v.Delta.X),
		Y:        sign(v.Delta.Y),
		Scale:    sign(v.Delta.Scale),
		Rotation: sign(v.Delta.Rotation),
	}
	v.Motion = Motion{
		X:        speed(v.Delta.X, elapsed, max.X),
		Y:        speed(v.Delta.Y, elapsed, max.Y),
		Scale:    speed(v.Delta.Scale, elapsed, max.Scale),
		Rotation: speed(v.Delta.Rotation, elapsed, max.Rotation),
	}
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

func speed(delta, elapsedMillis, max float64) float64 {
	if elapsedMillis <= 0 {
		return 0
	}
	s := math.Abs(delta / elapsedMillis)
	if math.IsNaN(s) {
		return 0
	}
	return math.Min(s, max)
}
