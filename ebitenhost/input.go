package ebitenhost

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// maxPointers covers the mouse (pointer 0) and touches (pointers 1-9).
const maxPointers = 10

// InputSource is the polled pointer state the host reads every frame.
// The default source reads Ebitengine; tests substitute a fake.
type InputSource interface {
	CursorPosition() (x, y int)
	MousePressed() bool
	AppendTouchIDs(ids []ebiten.TouchID) []ebiten.TouchID
	TouchPosition(id ebiten.TouchID) (x, y int)
}

type ebitenInput struct{}

func (ebitenInput) CursorPosition() (int, int) {
	return ebiten.CursorPosition()
}

func (ebitenInput) MousePressed() bool {
	return ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
}

func (ebitenInput) AppendTouchIDs(ids []ebiten.TouchID) []ebiten.TouchID {
	return ebiten.AppendTouchIDs(ids)
}

func (ebitenInput) TouchPosition(id ebiten.TouchID) (int, int) {
	return ebiten.TouchPosition(id)
}

// pointerState tracks one pointer slot between polls.
type pointerState struct {
	down         bool
	lastX, lastY float64
	target       *Item
}

// router turns polled pointer state into the pointer protocol of the items
// under the pointers. A pointer is captured by the item it went down on
// until it is released.
type router struct {
	input    InputSource
	pointers [maxPointers]pointerState

	prevTouchIDs []ebiten.TouchID
	touchMap     [maxPointers]ebiten.TouchID
	touchUsed    [maxPointers]bool

	mouse bool
}

func newRouter(input InputSource, mouse bool) *router {
	return &router{input: input, mouse: mouse}
}

// poll reads the input source once and routes the changes to items.
func (r *router) poll(items []*Item) {
	if r.mouse {
		mx, my := r.input.CursorPosition()
		r.process(items, 0, float64(mx), float64(my), r.input.MousePressed())
	}
	r.processTouches(items)
}

// processTouches handles touch input (pointers 1-9).
func (r *router) processTouches(items []*Item) {
	touchIDs := r.input.AppendTouchIDs(r.prevTouchIDs[:0])
	r.prevTouchIDs = touchIDs

	var activeSlots [maxPointers]bool
	for _, tid := range touchIDs {
		slot := r.touchSlot(tid)
		if slot < 0 {
			continue
		}
		activeSlots[slot] = true

		tx, ty := r.input.TouchPosition(tid)
		r.process(items, slot, float64(tx), float64(ty), true)
	}

	// Release any touch slots that are no longer active.
	for i := 1; i < maxPointers; i++ {
		if r.touchUsed[i] && !activeSlots[i] {
			ps := &r.pointers[i]
			if ps.down {
				r.process(items, i, ps.lastX, ps.lastY, false)
			}
			r.touchUsed[i] = false
			r.touchMap[i] = 0
		}
	}
}

// touchSlot maps an ebiten.TouchID to a pointer slot (1-9).
// Returns the existing slot or allocates a new one. Returns -1 if full.
func (r *router) touchSlot(tid ebiten.TouchID) int {
	for i := 1; i < maxPointers; i++ {
		if r.touchUsed[i] && r.touchMap[i] == tid {
			return i
		}
	}
	for i := 1; i < maxPointers; i++ {
		if !r.touchUsed[i] {
			r.touchUsed[i] = true
			r.touchMap[i] = tid
			return i
		}
	}
	return -1
}

// process runs the press/move/release state machine for one pointer.
func (r *router) process(items []*Item, id int, x, y float64, pressed bool) {
	ps := &r.pointers[id]

	switch {
	case pressed && !ps.down:
		ps.down = true
		ps.lastX, ps.lastY = x, y
		ps.target = hitTest(items, x, y)
		if ps.target != nil {
			ps.target.PointerDown(id, x, y)
		}
	case !pressed && ps.down:
		if ps.target != nil {
			ps.target.PointerUp(id)
		}
		ps.down = false
		ps.target = nil
	case pressed && ps.down:
		if x != ps.lastX || y != ps.lastY {
			if ps.target != nil {
				ps.target.PointerMove(id, x, y)
			}
			ps.lastX, ps.lastY = x, y
		}
	}
}

// release ends every pointer captured by it. Used when an item is removed
// while fingers are down on it.
func (r *router) release(it *Item) {
	for i := range r.pointers {
		if r.pointers[i].target == it {
			r.pointers[i].target = nil
		}
	}
}

// hitTest returns the topmost item containing (x, y). Items later in the
// slice are drawn on top.
func hitTest(items []*Item, x, y float64) *Item {
	for i := len(items) - 1; i >= 0; i-- {
		if items[i].Contains(x, y) {
			return items[i]
		}
	}
	return nil
}
