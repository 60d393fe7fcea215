package transformable

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidConfig is wrapped by every error returned from Config.Validate.
var ErrInvalidConfig = errors.New("invalid transformable config")

const (
	defaultSampleTicks   = 10
	defaultScrollLock    = 10.0 // pixels before a scroll direction locks
	defaultSwipeVelocity = 1.0  // pixels per millisecond
)

// AxisConfig configures one transformable property.
type AxisConfig struct {
	// Borders limit the property. Nil means unconstrained.
	Borders *Range `yaml:"borders"`
	// Elastic is the fraction of movement still applied past a border (0..1).
	Elastic float64 `yaml:"elastic"`
	// MoveFraction multiplies finger deltas while tracking.
	MoveFraction float64 `yaml:"moveFraction"`
	// ReleaseFraction multiplies the projected throw after release.
	ReleaseFraction float64 `yaml:"releaseFraction"`
	// SpeedFraction speeds up (>1) or slows down (<1) release animations.
	SpeedFraction float64 `yaml:"speedFraction"`
	// MaxSpeedSeconds caps the duration of a release animation.
	MaxSpeedSeconds float64 `yaml:"maxSpeedSeconds"`
	// MaxVelocity caps the measured velocity in units per millisecond.
	MaxVelocity float64 `yaml:"maxVelocity"`
	// SnapInterval rounds the resting value after release. Zero disables.
	SnapInterval float64 `yaml:"snapInterval"`
	// RecognizerThreshold is the tracked displacement needed before the
	// property starts following the fingers.
	RecognizerThreshold float64 `yaml:"recognizerThreshold"`
	// Free disables Borders entirely.
	Free bool `yaml:"free"`
}

// constrained reports whether borders apply to this axis.
func (c *AxisConfig) constrained() bool {
	return c.Borders != nil && !c.Free
}

// SwipeConfig configures swipe classification.
type SwipeConfig struct {
	// Velocity is the minimum velocity (units/ms) for a flick to count.
	Velocity float64 `yaml:"velocity"`
	// Width and Height are the tracked distances that count as a swipe
	// regardless of velocity.
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// StopsConfig lets nested scrollers hand a gesture to each other. Zero
// values disable the corresponding stop.
type StopsConfig struct {
	// TrackingX stops all tracking once |tracked x| exceeds it, unless the
	// y recognizer already fired. TrackingY is symmetric.
	TrackingX float64 `yaml:"trackingX"`
	TrackingY float64 `yaml:"trackingY"`
	// PropagationX/Y mark the gesture as owned by this element once the
	// tracked displacement exceeds them. See Element.PropagationStopped.
	PropagationX float64 `yaml:"propagationX"`
	PropagationY float64 `yaml:"propagationY"`
}

// Config is the complete per-element configuration.
type Config struct {
	X        AxisConfig `yaml:"x"`
	Y        AxisConfig `yaml:"y"`
	Scale    AxisConfig `yaml:"scale"`
	Rotation AxisConfig `yaml:"rotation"`

	// BaseFraction multiplies both move and release fractions.
	BaseFraction float64 `yaml:"baseFraction"`

	Swipe SwipeConfig `yaml:"swipe"`
	Stops StopsConfig `yaml:"stops"`

	// SampleTicks is the number of frames between velocity samples.
	SampleTicks int `yaml:"sampleTicks"`
}

// DefaultConfig returns the stock configuration: unconstrained axes, no
// elasticity, release throws scaled per axis and swipes that need a fast
// flick.
func DefaultConfig() Config {
	move := AxisConfig{
		MoveFraction:    1,
		ReleaseFraction: 1,
		SpeedFraction:   1,
		MaxSpeedSeconds: 2,
		MaxVelocity:     math.MaxFloat64,
	}
	rot := move
	rot.ReleaseFraction = 1.75
	rot.MaxSpeedSeconds = 1.3
	scale := move
	scale.ReleaseFraction = 2
	scale.MaxSpeedSeconds = 1.3

	return Config{
		X:            move,
		Y:            move,
		Scale:        scale,
		Rotation:     rot,
		BaseFraction: 1,
		Swipe: SwipeConfig{
			Velocity: defaultSwipeVelocity,
			Width:    math.MaxFloat64,
			Height:   math.MaxFloat64,
		},
		SampleTicks: defaultSampleTicks,
	}
}

// Axis returns a pointer to the AxisConfig for p.
func (c *Config) Axis(p Property) *AxisConfig {
	switch p {
	case PropX:
		return &c.X
	case PropY:
		return &c.Y
	case PropScale:
		return &c.Scale
	default:
		return &c.Rotation
	}
}

// maxVelocity collects the per-axis velocity caps.
func (c *Config) maxVelocity() Motion {
	return Motion{
		X:        c.X.MaxVelocity,
		Y:        c.Y.MaxVelocity,
		Scale:    c.Scale.MaxVelocity,
		Rotation: c.Rotation.MaxVelocity,
	}
}

// Scrolls configures the element as a scroller locked to one direction:
// movement on the scroll axis is recognized after a few pixels, and a
// gesture that starts along the other axis stops tracking so a parent
// scroller can take it. ScrollNone clears all locks.
func (c *Config) Scrolls(dir ScrollDirection) {
	switch dir {
	case ScrollHorizontal:
		c.X.RecognizerThreshold = defaultScrollLock
		c.Y.RecognizerThreshold = 0
		c.Stops = StopsConfig{
			TrackingY:    defaultScrollLock,
			PropagationX: defaultScrollLock,
			PropagationY: defaultScrollLock,
		}
	case ScrollVertical:
		c.X.RecognizerThreshold = 0
		c.Y.RecognizerThreshold = defaultScrollLock
		c.Stops = StopsConfig{
			TrackingX:    defaultScrollLock,
			PropagationX: defaultScrollLock,
			PropagationY: defaultScrollLock,
		}
	default:
		c.X.RecognizerThreshold = 0
		c.Y.RecognizerThreshold = 0
		c.Stops = StopsConfig{}
	}
}

// Validate reports configuration mistakes. The returned error wraps
// ErrInvalidConfig.
func (c *Config) Validate() error {
	for _, p := range [...]Property{PropX, PropY, PropScale, PropRotation} {
		if err := c.Axis(p).validate(); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, p, err)
		}
	}
	if !(c.BaseFraction >= 0) {
		return fmt.Errorf("%w: base fraction %v is negative", ErrInvalidConfig, c.BaseFraction)
	}
	if c.SampleTicks < 1 {
		return fmt.Errorf("%w: sample ticks %d must be at least 1", ErrInvalidConfig, c.SampleTicks)
	}
	if !(c.Swipe.Velocity >= 0) || !(c.Swipe.Width >= 0) || !(c.Swipe.Height >= 0) {
		return fmt.Errorf("%w: swipe thresholds must be non-negative", ErrInvalidConfig)
	}
	return nil
}

func (c *AxisConfig) validate() error {
	if c.Borders != nil {
		if math.IsNaN(c.Borders.Min) || math.IsNaN(c.Borders.Max) {
			return errors.New("borders contain NaN")
		}
		if c.Borders.Min > c.Borders.Max {
			return fmt.Errorf("borders [%v, %v] are inverted", c.Borders.Min, c.Borders.Max)
		}
	}
	if !(c.Elastic >= 0 && c.Elastic <= 1) {
		return fmt.Errorf("elastic %v outside [0, 1]", c.Elastic)
	}
	if !(c.SpeedFraction > 0) {
		return fmt.Errorf("speed fraction %v must be positive", c.SpeedFraction)
	}
	if !(c.MaxSpeedSeconds >= 0) {
		return fmt.Errorf("max speed seconds %v is negative", c.MaxSpeedSeconds)
	}
	if !(c.MaxVelocity >= 0) {
		return fmt.Errorf("max velocity %v is negative", c.MaxVelocity)
	}
	if !(c.SnapInterval >= 0) {
		return fmt.Errorf("snap interval %v is negative", c.SnapInterval)
	}
	if !(c.RecognizerThreshold >= 0) {
		return fmt.Errorf("recognizer threshold %v is negative", c.RecognizerThreshold)
	}
	if math.IsNaN(c.MoveFraction) || math.IsNaN(c.ReleaseFraction) {
		return errors.New("fractions contain NaN")
	}
	return nil
}
