package ebitenhost

import (
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/transformable"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeInput struct {
	mx, my  int
	pressed bool
	touches map[ebiten.TouchID][2]int
	order   []ebiten.TouchID
}

func newFakeInput() *fakeInput {
	return &fakeInput{touches: map[ebiten.TouchID][2]int{}}
}

func (f *fakeInput) CursorPosition() (int, int) { return f.mx, f.my }
func (f *fakeInput) MousePressed() bool         { return f.pressed }

func (f *fakeInput) AppendTouchIDs(ids []ebiten.TouchID) []ebiten.TouchID {
	return append(ids, f.order...)
}

func (f *fakeInput) TouchPosition(id ebiten.TouchID) (int, int) {
	p := f.touches[id]
	return p[0], p[1]
}

func (f *fakeInput) touch(id ebiten.TouchID, x, y int) {
	if _, ok := f.touches[id]; !ok {
		f.order = append(f.order, id)
	}
	f.touches[id] = [2]int{x, y}
}

func (f *fakeInput) lift(id ebiten.TouchID) {
	delete(f.touches, id)
	for i, o := range f.order {
		if o == id {
			f.order = append(f.order[:i], f.order[i+1:]...)
			return
		}
	}
}

type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time { return c.now }

type fixture struct {
	host  *Host
	input *fakeInput
	clock *testClock
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	f := &fixture{
		input: newFakeInput(),
		clock: &testClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
	base := []Option{WithInput(f.input), WithClock(f.clock.Now)}
	f.host = New(append(base, opts...)...)
	f.host.setTPS = func(int) {}
	return f
}

func (f *fixture) item(t *testing.T, name string, x, y, w, h float64) *Item {
	t.Helper()
	state := transformable.IdentityState
	state.X, state.Y = x, y
	e, err := transformable.New(
		transformable.WithName(name),
		transformable.WithState(state),
		transformable.WithClock(f.clock.Now),
	)
	require.NoError(t, err)
	it := NewItem(e, w, h)
	f.host.Add(it)
	return it
}

func (f *fixture) update(t *testing.T) {
	t.Helper()
	require.NoError(t, f.host.Update())
	f.clock.now = f.clock.now.Add(f.host.Ticker().FrameDuration())
}

func TestItemTransform(t *testing.T) {
	e, err := transformable.New(transformable.WithState(transformable.TransformState{
		X: 200, Y: 100, ScaleX: 1, ScaleY: 1,
	}))
	require.NoError(t, err)
	it := NewItem(e, 100, 50)

	x, y := it.LocalToScreen(0, 0)
	assert.InDelta(t, 150, x, 1e-9)
	assert.InDelta(t, 75, y, 1e-9)
	assert.True(t, it.Contains(200, 100))
	assert.True(t, it.Contains(150, 75))
	assert.False(t, it.Contains(140, 100))

	s := it.State()
	s.Rotation = 90
	s.ScaleX, s.ScaleY = 2, 2
	it.SetState(s)

	x, y = it.LocalToScreen(0, 0)
	assert.InDelta(t, 250, x, 1e-9)
	assert.InDelta(t, 0, y, 1e-9)

	g := it.GeoM()
	gx, gy := g.Apply(0, 0)
	assert.InDelta(t, x, gx, 1e-9)
	assert.InDelta(t, y, gy, 1e-9)

	lx, ly := it.ScreenToLocal(x, y)
	assert.InDelta(t, 0, lx, 1e-9)
	assert.InDelta(t, 0, ly, 1e-9)

	s.ScaleX, s.ScaleY = 0, 0
	it.SetState(s)
	assert.False(t, it.Contains(200, 100))
}

func TestHostRoutesTouches(t *testing.T) {
	f := newFixture(t, WithMouse(false))
	it := f.item(t, "card", 100, 100, 100, 100)

	f.input.touch(7, 100, 100)
	f.update(t)
	assert.Equal(t, 1, it.ActiveFingers())
	assert.Equal(t, 1, f.host.Ticker().Subscribers())

	f.input.touch(7, 120, 90)
	f.update(t)
	assert.Equal(t, 120.0, it.State().X)
	assert.Equal(t, 90.0, it.State().Y)

	p, ok := it.Session().Point(1)
	require.True(t, ok, "first touch slot is pointer 1")
	assert.Equal(t, transformable.Vec2{X: 120, Y: 90}, p.Current)

	f.input.lift(7)
	f.update(t)
	assert.Equal(t, 0, it.ActiveFingers())
}

func TestHostPinch(t *testing.T) {
	f := newFixture(t, WithMouse(false))
	it := f.item(t, "photo", 200, 200, 200, 200)

	f.input.touch(1, 150, 200)
	f.input.touch(2, 250, 200)
	f.update(t)
	require.Equal(t, 2, it.ActiveFingers())

	f.input.touch(1, 100, 200)
	f.input.touch(2, 300, 200)
	f.update(t)
	assert.InDelta(t, 2.0, it.State().ScaleX, 1e-9)
	assert.InDelta(t, 200.0, it.State().X, 1e-9)
}

func TestHostMouseMissAndCapture(t *testing.T) {
	f := newFixture(t)
	it := f.item(t, "card", 100, 100, 50, 50)

	// Press outside, then drag over the item: nothing is captured.
	f.input.mx, f.input.my, f.input.pressed = 10, 10, true
	f.update(t)
	f.input.mx, f.input.my = 100, 100
	f.update(t)
	assert.Equal(t, 0, it.ActiveFingers())
	f.input.pressed = false
	f.update(t)

	// Press on the item and drag far outside: the item keeps the pointer.
	f.input.pressed = true
	f.update(t)
	require.Equal(t, 1, it.ActiveFingers())
	f.input.mx = 400
	f.update(t)
	assert.Equal(t, 400.0, it.State().X)
}

func TestHostTopmostItemWins(t *testing.T) {
	f := newFixture(t)
	below := f.item(t, "below", 100, 100, 100, 100)
	above := f.item(t, "above", 120, 120, 100, 100)
	f.host.Add(above)
	assert.Len(t, f.host.Items(), 2)

	f.input.mx, f.input.my, f.input.pressed = 110, 110, true
	f.update(t)
	assert.Equal(t, 0, below.ActiveFingers())
	assert.Equal(t, 1, above.ActiveFingers())
}

func TestHostRemoveDuringGesture(t *testing.T) {
	f := newFixture(t, WithMouse(false))
	it := f.item(t, "card", 100, 100, 100, 100)

	f.input.touch(3, 100, 100)
	f.update(t)
	require.Equal(t, 1, it.ActiveFingers())

	f.host.Remove(it)
	assert.Empty(t, f.host.Items())
	assert.Equal(t, 0, it.ActiveFingers())
	assert.Zero(t, f.host.Ticker().Subscribers())

	f.input.touch(3, 130, 100)
	f.update(t)
	f.input.lift(3)
	f.update(t)
	assert.Equal(t, 100.0, it.State().X)

	f.host.Remove(it)
}

func TestTouchSlotsExhausted(t *testing.T) {
	r := newRouter(newFakeInput(), false)
	for i := 0; i < maxPointers-1; i++ {
		assert.Equal(t, i+1, r.touchSlot(ebiten.TouchID(100+i)))
	}
	assert.Equal(t, -1, r.touchSlot(999))
	assert.Equal(t, 3, r.touchSlot(102))
}

func TestHostAdaptsTPS(t *testing.T) {
	f := newFixture(t)
	var reported []int
	f.host.setTPS = func(tps int) { reported = append(reported, tps) }

	// 40 updates per second for just over a minute.
	step := time.Second / 40
	for i := 0; i <= 61*40; i++ {
		require.NoError(t, f.host.Update())
		f.clock.now = f.clock.now.Add(step)
	}
	assert.Equal(t, []int{50}, reported)
	assert.Equal(t, 50, f.host.Ticker().FPS())
}

func TestHostLayout(t *testing.T) {
	f := newFixture(t)
	w, h := f.host.Layout(800, 600)
	assert.Equal(t, 800, w)
	assert.Equal(t, 600, h)

	g := newFixture(t, WithScreenSize(320, 240))
	w, h = g.host.Layout(800, 600)
	assert.Equal(t, 320, w)
	assert.Equal(t, 240, h)
}
