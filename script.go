package transformable

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrScript is wrapped by every error returned while loading a gesture
// script.
var ErrScript = errors.New("invalid gesture script")

// ScriptStep is a single action in a gesture script.
//
//	down, move: ID at (X, Y)
//	up:         ID
//	drag:       ID from (FromX, FromY) to (ToX, ToY) over Frames
//	pinch:      fingers ID and ID+1 around (X, Y), distance FromDistance to
//	            ToDistance, angle FromAngle to ToAngle, over Frames
//	wait:       Frames frames without input
type ScriptStep struct {
	Action       string  `yaml:"action" json:"action"`
	Label        string  `yaml:"label,omitempty" json:"label,omitempty"`
	ID           int     `yaml:"id,omitempty" json:"id,omitempty"`
	X            float64 `yaml:"x,omitempty" json:"x,omitempty"`
	Y            float64 `yaml:"y,omitempty" json:"y,omitempty"`
	FromX        float64 `yaml:"fromX,omitempty" json:"fromX,omitempty"`
	FromY        float64 `yaml:"fromY,omitempty" json:"fromY,omitempty"`
	ToX          float64 `yaml:"toX,omitempty" json:"toX,omitempty"`
	ToY          float64 `yaml:"toY,omitempty" json:"toY,omitempty"`
	FromDistance float64 `yaml:"fromDistance,omitempty" json:"fromDistance,omitempty"`
	ToDistance   float64 `yaml:"toDistance,omitempty" json:"toDistance,omitempty"`
	FromAngle    float64 `yaml:"fromAngle,omitempty" json:"fromAngle,omitempty"`
	ToAngle      float64 `yaml:"toAngle,omitempty" json:"toAngle,omitempty"`
	Frames       int     `yaml:"frames,omitempty" json:"frames,omitempty"`
}

// Script is the top-level structure of a gesture script.
type Script struct {
	Steps []ScriptStep `yaml:"steps" json:"steps"`
}

// DefaultRunFrames caps Run when no limit is given: ten minutes at 60 fps.
const DefaultRunFrames = 36000

// ScriptRunner sequences scripted pointer input across frames. Each frame it
// feeds at most one queued input frame to its target.
type ScriptRunner struct {
	steps     []ScriptStep
	cursor    int
	waitCount int
	done      bool
	inject    Injector
}

// LoadScript parses a YAML (or JSON) gesture script and returns a runner
// for it. Errors wrap ErrScript.
func LoadScript(data []byte) (*ScriptRunner, error) {
	var script Script
	if err := yaml.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("%w: parse gesture script: %w", ErrScript, err)
	}
	return NewScriptRunner(script.Steps)
}

// NewScriptRunner validates steps and returns a runner for them.
func NewScriptRunner(steps []ScriptStep) (*ScriptRunner, error) {
	if len(steps) == 0 {
		return nil, fmt.Errorf("%w: no steps", ErrScript)
	}
	for i, st := range steps {
		switch st.Action {
		case "down", "move", "up", "drag", "pinch", "wait":
		default:
			return nil, fmt.Errorf("%w: step %d: unknown action %q", ErrScript, i, st.Action)
		}
		if st.Frames < 0 {
			return nil, fmt.Errorf("%w: step %d: negative frames %d", ErrScript, i, st.Frames)
		}
	}
	return &ScriptRunner{steps: steps}, nil
}

// HeldFingers returns the ids the script presses without releasing, in
// press order. Drag and pinch steps release their own fingers.
func (r *ScriptRunner) HeldFingers() []int {
	var held []int
	for _, st := range r.steps {
		switch st.Action {
		case "down":
			if !slices.Contains(held, st.ID) {
				held = append(held, st.ID)
			}
		case "up":
			if i := slices.Index(held, st.ID); i >= 0 {
				held = slices.Delete(held, i, i+1)
			}
		}
	}
	return held
}

// Done reports whether every step has been executed and all queued input
// delivered.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// Step advances the runner by one frame, delivering at most one input frame
// to target. Call once per frame before Ticker.Advance.
func (r *ScriptRunner) Step(target PointerTarget) {
	if r.done {
		return
	}
	// Drain pending injections before advancing.
	if r.inject.Flush(target) {
		r.checkDone()
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		r.checkDone()
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "down":
		r.inject.InjectDown(st.ID, st.X, st.Y)
	case "move":
		r.inject.InjectMove(st.ID, st.X, st.Y)
	case "up":
		r.inject.InjectUp(st.ID)
	case "drag":
		r.inject.InjectDrag(st.ID, st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "pinch":
		r.inject.InjectPinch(st.ID, st.X, st.Y, st.FromDistance, st.ToDistance, st.FromAngle, st.ToAngle, st.Frames)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}
	r.inject.Flush(target)
	r.checkDone()
}

func (r *ScriptRunner) checkDone() {
	if r.cursor >= len(r.steps) && r.waitCount == 0 && r.inject.Pending() == 0 {
		r.done = true
	}
}

// ManualClock is a deterministic time source for replays and tests. Pass
// its Now method to WithClock.
type ManualClock struct {
	now time.Time
}

// NewManualClock returns a clock stopped at start.
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

// Now returns the current time.
func (c *ManualClock) Now() time.Time {
	return c.now
}

// Advance moves the clock forward by d.
func (c *ManualClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

// Run replays the script against target at the ticker's frame rate: each
// frame steps the runner, advances t to the clock's time and moves the
// clock one frame forward. After the script is done it keeps running
// frames until t has no subscribers left, so release animations finish.
// Stops after maxFrames frames, or DefaultRunFrames when maxFrames <= 0,
// so a script that leaves a finger down still ends. Returns the number of
// frames run. Starts t if it is stopped.
func (r *ScriptRunner) Run(target PointerTarget, t *Ticker, clock *ManualClock, maxFrames int) int {
	if !t.Running() {
		t.Start()
	}
	if maxFrames <= 0 {
		maxFrames = DefaultRunFrames
	}
	frames := 0
	for frames < maxFrames {
		if r.Done() && t.Subscribers() == 0 {
			break
		}
		r.Step(target)
		t.Advance(clock.Now())
		clock.Advance(t.FrameDuration())
		frames++
	}
	return frames
}
