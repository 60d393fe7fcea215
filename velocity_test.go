package transformable

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestVelocitySample(t *testing.T) {
	inf := math.MaxFloat64

	tests := []struct {
		name    string
		delta   float64
		elapsed time.Duration
		max     float64
		want    float64
		dir     float64
	}{
		{"uncapped", 100, time.Second, inf, 0.1, 1},
		{"capped", 100, time.Second, 0.05, 0.05, 1},
		{"negative", -100, time.Second, inf, 0.1, -1},
		{"zero window", 100, 0, inf, 0, 1},
		{"no movement", 0, time.Second, inf, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var tr Tracking
			tr.reset(epoch)
			tr.Current.X = tt.delta

			var v Velocity
			v.sample(&tr, epoch.Add(tt.elapsed), Motion{X: tt.max, Y: inf, Scale: inf, Rotation: inf})
			assert.InDelta(t, tt.want, v.X, 1e-12)
			assert.Equal(t, tt.dir, v.Direction.X)
			assert.Equal(t, tt.delta, v.Delta.X)
		})
	}
}

func TestTrackingRestartWindow(t *testing.T) {
	var tr Tracking
	tr.reset(epoch)
	tr.Current = Motion{X: 30, Rotation: 5}
	tr.Ticks = 10

	tr.restartWindow(epoch.Add(time.Second))
	assert.Equal(t, tr.Current, tr.Start)
	assert.Equal(t, 0, tr.Ticks)
	assert.Equal(t, epoch.Add(time.Second), tr.StartTime)

	tr.Current.X += 10
	cfg := DefaultConfig()
	var v Velocity
	v.sample(&tr, epoch.Add(2*time.Second), cfg.maxVelocity())
	assert.InDelta(t, 0.01, v.X, 1e-12, "only the recent window counts")
	assert.Equal(t, 0.0, v.Rotation)
}
