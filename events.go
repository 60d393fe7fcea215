package transformable

// Event carries gesture event data.
type Event struct {
	Type    EventType
	Element *Element
	Name    string
	// State is the transform state at the time of the event.
	State TransformState
	// Velocity is the most recent velocity sample.
	Velocity      Velocity
	ActiveFingers int
	// Swipe is valid for EventSwipe.
	Swipe Swipe
}

// EventSink receives every event an element emits, after its handlers. Used
// to bridge gesture events into other systems such as an ECS world.
type EventSink interface {
	EmitEvent(event Event)
}

// --- Handler registry ---

type eventHandler struct {
	id uint32
	fn func(Event)
}

type handlerRegistry struct {
	handlers [eventTypeCount][]eventHandler
	nextID   uint32
}

// CallbackHandle allows removing a registered callback.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event EventType
}

// Remove unregisters this callback so it no longer fires.
func (h CallbackHandle) Remove() {
	if h.reg == nil || h.event >= eventTypeCount {
		return
	}
	s := h.reg.handlers[h.event]
	for i := range s {
		if s[i].id == h.id {
			// Build a new slice; a fire loop in progress keeps ranging over
			// the old one.
			h.reg.handlers[h.event] = append(s[:i:i], s[i+1:]...)
			return
		}
	}
}

func (r *handlerRegistry) add(t EventType, fn func(Event)) CallbackHandle {
	r.nextID++
	id := r.nextID
	r.handlers[t] = append(r.handlers[t], eventHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: r, event: t}
}

func (r *handlerRegistry) has(t EventType) bool {
	return len(r.handlers[t]) > 0
}

// fire calls the handlers registered when the event starts. Handlers may
// remove themselves or others while it runs.
func (r *handlerRegistry) fire(e Event) {
	for _, h := range r.handlers[e.Type] {
		h.fn(e)
	}
}

// --- Element-level event registration ---

// On registers a callback for events of type t.
func (e *Element) On(t EventType, fn func(Event)) CallbackHandle {
	if t >= eventTypeCount {
		return CallbackHandle{}
	}
	return e.handlers.add(t, fn)
}

// OnMove registers a callback for translation changes.
func (e *Element) OnMove(fn func(Event)) CallbackHandle {
	return e.handlers.add(EventMove, fn)
}

// OnRotate registers a callback for rotation changes.
func (e *Element) OnRotate(fn func(Event)) CallbackHandle {
	return e.handlers.add(EventRotate, fn)
}

// OnScale registers a callback for scale changes.
func (e *Element) OnScale(fn func(Event)) CallbackHandle {
	return e.handlers.add(EventScale, fn)
}

// OnSwipe registers a callback for swipes. Swipes are only classified while
// at least one swipe callback or an EventSink is registered.
func (e *Element) OnSwipe(fn func(Swipe)) CallbackHandle {
	return e.handlers.add(EventSwipe, func(ev Event) { fn(ev.Swipe) })
}
