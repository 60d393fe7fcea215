package transformable

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pointerCall struct {
	action pointerAction
	id     int
	x, y   float64
}

type callTarget struct {
	calls []pointerCall
}

func (c *callTarget) PointerDown(id int, x, y float64) {
	c.calls = append(c.calls, pointerCall{actionDown, id, x, y})
}

func (c *callTarget) PointerMove(id int, x, y float64) {
	c.calls = append(c.calls, pointerCall{actionMove, id, x, y})
}

func (c *callTarget) PointerUp(id int) {
	c.calls = append(c.calls, pointerCall{action: actionUp, id: id})
}

func TestInjectDrag(t *testing.T) {
	var in Injector
	in.InjectDrag(4, 0, 0, 30, -30, 5)
	require.Equal(t, 5, in.Pending())

	var target callTarget
	for in.Flush(&target) {
	}
	assert.Equal(t, []pointerCall{
		{actionDown, 4, 0, 0},
		{actionMove, 4, 10, -10},
		{actionMove, 4, 20, -20},
		{actionMove, 4, 30, -30},
		{action: actionUp, id: 4},
	}, target.calls)
	assert.False(t, in.Flush(&target))
}

func TestInjectDragMinimumFrames(t *testing.T) {
	var in Injector
	in.InjectDrag(0, 0, 0, 10, 0, 0)
	assert.Equal(t, 3, in.Pending())
}

func TestInjectPinch(t *testing.T) {
	var in Injector
	in.InjectPinch(0, 100, 100, 20, 40, 0, 90, 3)
	require.Equal(t, 3, in.Pending())

	var target callTarget
	in.Flush(&target)
	require.Len(t, target.calls, 2, "both fingers land in one frame")
	assert.Equal(t, pointerCall{actionDown, 0, 90, 100}, target.calls[0])
	assert.Equal(t, pointerCall{actionDown, 1, 110, 100}, target.calls[1])

	in.Flush(&target)
	require.Len(t, target.calls, 4)
	a, b := target.calls[2], target.calls[3]
	assert.InDelta(t, 100, a.x, 1e-9)
	assert.InDelta(t, 80, a.y, 1e-9)
	assert.InDelta(t, 100, b.x, 1e-9)
	assert.InDelta(t, 120, b.y, 1e-9)
	assert.InDelta(t, 40, math.Hypot(b.x-a.x, b.y-a.y), 1e-9)

	in.Clear()
	assert.Zero(t, in.Pending())
}
