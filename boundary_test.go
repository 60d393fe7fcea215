package transformable

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHoldHardClamp(t *testing.T) {
	cfg := &AxisConfig{Borders: Bounds(-100, 100)}

	tests := []struct {
		name     string
		start    float64
		changeBy float64
		want     float64
	}{
		{"inside", 0, 50, 50},
		{"onto max", 50, 50, 100},
		{"past max", 90, 40, 100},
		{"past min", -90, -40, -100},
		{"far past", 0, 1e9, 100},
		{"zero", 10, 0, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := IdentityState
			s.X = tt.start
			applied := Hold(PropX, cfg, &s, false, tt.changeBy)
			assert.Equal(t, tt.want, s.X)
			assert.Equal(t, tt.want-tt.start, applied)
		})
	}
}

func TestHoldElasticBound(t *testing.T) {
	cfg := &AxisConfig{Borders: Bounds(-100, 100), Elastic: 0.25}

	for _, changeBy := range []float64{20, 80, 400, -250} {
		s := IdentityState
		s.X = 95
		Hold(PropX, cfg, &s, true, changeBy)
		if s.X > 100 {
			assert.LessOrEqual(t, s.X-95, math.Abs(changeBy)*cfg.Elastic+1e-9)
		}
		if s.X < -100 {
			assert.LessOrEqual(t, 95-s.X, math.Abs(changeBy)*cfg.Elastic+1e-9)
		}
	}

	s := IdentityState
	s.X = 95
	Hold(PropX, cfg, &s, true, 20)
	assert.InDelta(t, 100.0, s.X, 1e-9, "95 + 20*0.25")

	// keepElastic false ignores elasticity.
	s.X = 95
	Hold(PropX, cfg, &s, false, 20)
	assert.Equal(t, 100.0, s.X)
}

func TestHoldFreeAndUnconstrained(t *testing.T) {
	free := &AxisConfig{Borders: Bounds(0, 1), Free: true}
	s := IdentityState
	Hold(PropY, free, &s, false, 500)
	assert.Equal(t, 500.0, s.Y)

	open := &AxisConfig{}
	Hold(PropY, open, &s, false, -1000)
	assert.Equal(t, -500.0, s.Y)
}

func TestHoldScaleKeepsUniform(t *testing.T) {
	cfg := &AxisConfig{Borders: Bounds(0.5, 3), Elastic: 0.5}

	tests := []struct {
		name     string
		elastic  bool
		changeBy float64
	}{
		{"grow", false, 0.4},
		{"clamp", false, 10},
		{"elastic", true, 10},
		{"shrink", true, -2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := IdentityState
			s.ScaleY = 7 // out of sync on purpose
			Hold(PropScale, cfg, &s, tt.elastic, tt.changeBy)
			assert.Equal(t, s.ScaleX, s.ScaleY)
		})
	}

	s := IdentityState
	s.ScaleX, s.ScaleY = 9, 2
	Settle(PropScale, cfg, &s, false)
	assert.Equal(t, 3.0, s.ScaleX)
	assert.Equal(t, s.ScaleX, s.ScaleY)
}

func TestSettle(t *testing.T) {
	cfg := &AxisConfig{Borders: Bounds(-100, 100), Elastic: 0.5}

	tests := []struct {
		name    string
		start   float64
		elastic bool
		want    float64
	}{
		{"inside untouched", 40, true, 40},
		{"hard above", 145, false, 100},
		{"hard below", -130, false, -100},
		{"elastic above", 145, true, 100 + 45/outOfBoundsDamping*0.5},
		{"elastic below", -130, true, -100 - 30/outOfBoundsDamping*0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := IdentityState
			s.X = tt.start
			applied := Settle(PropX, cfg, &s, tt.elastic)
			assert.InDelta(t, tt.want, s.X, 1e-9)
			assert.InDelta(t, tt.want-tt.start, applied, 1e-9)
		})
	}
}

func TestSettleWithinBordersWhenHard(t *testing.T) {
	cfg := &AxisConfig{Borders: Bounds(-10, 10), Elastic: 1}
	for _, v := range []float64{-1e6, -11, -10, 0, 10, 10.0001, 1e6} {
		s := IdentityState
		s.Rotation = v
		Settle(PropRotation, cfg, &s, false)
		assert.GreaterOrEqual(t, s.Rotation, -10.0)
		assert.LessOrEqual(t, s.Rotation, 10.0)
	}
}
