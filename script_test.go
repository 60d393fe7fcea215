package transformable

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingTarget struct {
	calls []string
}

func (r *recordingTarget) PointerDown(id int, x, y float64) {
	r.calls = append(r.calls, "down")
}

func (r *recordingTarget) PointerMove(id int, x, y float64) {
	r.calls = append(r.calls, "move")
}

func (r *recordingTarget) PointerUp(id int) {
	r.calls = append(r.calls, "up")
}

func TestLoadScriptYAML(t *testing.T) {
	src := []byte(`
steps:
  - action: down
    id: 1
    x: 10
    y: 20
  - action: move
    id: 1
    x: 30
    y: 20
  - action: wait
    frames: 3
  - action: up
    id: 1
`)
	r, err := LoadScript(src)
	require.NoError(t, err)
	require.Len(t, r.steps, 4)
	assert.Equal(t, 20.0, r.steps[0].Y)

	var target recordingTarget
	frames := 0
	for !r.Done() && frames < 100 {
		r.Step(&target)
		frames++
	}
	assert.Equal(t, []string{"down", "move", "up"}, target.calls)
	assert.Equal(t, 6, frames)
}

func TestLoadScriptJSON(t *testing.T) {
	src := []byte(`{"steps": [
		{"action": "drag", "id": 2, "fromX": 0, "fromY": 0, "toX": 90, "toY": 0, "frames": 5},
		{"action": "pinch", "x": 50, "y": 50, "fromDistance": 20, "toDistance": 40, "frames": 4}
	]}`)
	r, err := LoadScript(src)
	require.NoError(t, err)

	var target recordingTarget
	for i := 0; i < 100 && !r.Done(); i++ {
		r.Step(&target)
	}
	assert.True(t, r.Done())
	assert.Equal(t, []string{
		"down", "move", "move", "move", "up",
		"down", "down", "move", "move", "move", "move", "up", "up",
	}, target.calls)
}

func TestLoadScriptErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"malformed", "steps: [\n"},
		{"no steps", "steps: []"},
		{"unknown action", "steps:\n  - action: tap\n"},
		{"negative frames", "steps:\n  - action: wait\n    frames: -2\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadScript([]byte(tt.src))
			assert.ErrorIs(t, err, ErrScript)
		})
	}
}

func TestScriptRunnerRun(t *testing.T) {
	r, err := LoadScript([]byte(`
steps:
  - action: drag
    fromX: 0
    fromY: 0
    toX: 60
    toY: 0
    frames: 8
`))
	require.NoError(t, err)

	clock := NewManualClock(epoch)
	tk := NewTicker(TickerConfig{})
	e, err := New(WithClock(clock.Now))
	require.NoError(t, err)
	e.Attach(tk)

	frames := r.Run(e, tk, clock, 0)
	assert.True(t, r.Done())
	assert.GreaterOrEqual(t, frames, 8)
	assert.Zero(t, tk.Subscribers())
	assert.GreaterOrEqual(t, e.State().X, 60.0)
	assert.Equal(t, epoch.Add(tk.FrameDuration()*time.Duration(frames)), clock.Now())
}

func TestScriptRunnerRunHeldFingerStops(t *testing.T) {
	r, err := NewScriptRunner([]ScriptStep{{Action: "down", ID: 1}})
	require.NoError(t, err)
	assert.Equal(t, []int{1}, r.HeldFingers())

	clock := NewManualClock(epoch)
	tk := NewTicker(TickerConfig{})
	e, err := New(WithClock(clock.Now))
	require.NoError(t, err)
	e.Attach(tk)

	frames := r.Run(e, tk, clock, 0)
	assert.Equal(t, DefaultRunFrames, frames)
	assert.True(t, r.Done())
	assert.Equal(t, 1, tk.Subscribers(), "the finger is still down")
}

func TestScriptRunnerHeldFingers(t *testing.T) {
	tests := []struct {
		name  string
		steps []ScriptStep
		want  []int
	}{
		{"drag releases", []ScriptStep{{Action: "drag", Frames: 4}}, nil},
		{"down then up", []ScriptStep{{Action: "down", ID: 2}, {Action: "up", ID: 2}}, nil},
		{"two held", []ScriptStep{
			{Action: "down", ID: 3},
			{Action: "down", ID: 1},
			{Action: "down", ID: 3},
		}, []int{3, 1}},
		{"one of two released", []ScriptStep{
			{Action: "down", ID: 0},
			{Action: "down", ID: 1},
			{Action: "up", ID: 0},
		}, []int{1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewScriptRunner(tt.steps)
			require.NoError(t, err)
			if tt.want == nil {
				assert.Empty(t, r.HeldFingers())
				return
			}
			assert.Equal(t, tt.want, r.HeldFingers())
		})
	}
}

func TestScriptRunnerRunLimit(t *testing.T) {
	r, err := NewScriptRunner([]ScriptStep{{Action: "wait", Frames: 50}})
	require.NoError(t, err)

	tk := NewTicker(TickerConfig{})
	frames := r.Run(&recordingTarget{}, tk, NewManualClock(epoch), 10)
	assert.Equal(t, 10, frames)
	assert.False(t, r.Done())
	assert.True(t, tk.Running())
}
