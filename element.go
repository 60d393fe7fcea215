package transformable

import (
	"io"
	"log/slog"
	"time"
)

// velocityEndMinTicks is the number of frames a velocity window needs before
// a release resamples it; shorter windows keep the previous sample.
const velocityEndMinTicks = 2

// Element is one interactive, transformable visual element. It tracks the
// fingers on it, turns their movement into translation, rotation and scale,
// throws the element on release and classifies swipes.
//
// Feed it pointer input with PointerDown, PointerMove and PointerUp and
// attach it to a Ticker, which delivers frames while a gesture is active.
// Element is not safe for concurrent use.
type Element struct {
	name  string
	cfg   Config
	caps  Capability
	state TransformState

	session PointerSession
	g       gesture
	axes    []axis

	handlers handlerRegistry
	sink     EventSink

	ticker     *Ticker
	subscribed bool
	phase      GestureState
	lastTick   time.Time
	clock      func() time.Time

	changed            bool
	started            bool
	stoppedTracking    bool
	stoppedPropagation bool

	logger *slog.Logger
	debug  bool
}

// Option configures an Element.
type Option func(*Element)

// WithConfig replaces the default configuration.
func WithConfig(cfg Config) Option {
	return func(e *Element) {
		e.cfg = cfg
	}
}

// WithCapabilities selects which gestures the element responds to.
// The default is CapAll.
func WithCapabilities(caps Capability) Option {
	return func(e *Element) {
		e.caps = caps
	}
}

// WithLogger sets a structured logger. The default discards.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Element) {
		e.logger = logger
	}
}

// WithClock sets the time source used to stamp pointer events. It must share
// a time base with the times passed to Ticker.Advance. Without it, pointer
// events are stamped with the ticker's latest frame time, or time.Now before
// the first frame.
func WithClock(clock func() time.Time) Option {
	return func(e *Element) {
		e.clock = clock
	}
}

// WithEventSink forwards every event to sink.
func WithEventSink(sink EventSink) Option {
	return func(e *Element) {
		e.sink = sink
	}
}

// WithName names the element in events and logs.
func WithName(name string) Option {
	return func(e *Element) {
		e.name = name
	}
}

// WithState sets the initial transform state.
func WithState(s TransformState) Option {
	return func(e *Element) {
		e.state = s
	}
}

// New creates an element with an identity transform. The configuration is
// validated; errors wrap ErrInvalidConfig.
func New(opts ...Option) (*Element, error) {
	e := &Element{
		cfg:   DefaultConfig(),
		caps:  CapAll,
		state: IdentityState,
	}
	for _, opt := range opts {
		opt(e)
	}
	if err := e.cfg.Validate(); err != nil {
		return nil, err
	}
	if e.logger == nil {
		e.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if e.name != "" {
		e.logger = e.logger.With(slog.String("element", e.name))
	}

	e.axes = newAxes(e.caps)
	e.g = gesture{
		cfg:        &e.cfg,
		state:      &e.state,
		session:    &e.session,
		emit:       e.emit,
		wantsSwipe: e.wantsSwipe,
		emitSwipe:  e.emitSwipe,
		logger:     e.logger,
	}
	return e, nil
}

// Name returns the element name.
func (e *Element) Name() string {
	return e.name
}

// State returns the current transform state.
func (e *Element) State() TransformState {
	return e.state
}

// SetState replaces the transform state, e.g. to position the element.
// Running release animations continue from the new values.
func (e *Element) SetState(s TransformState) {
	e.state = s
}

// Config returns a copy of the configuration.
func (e *Element) Config() Config {
	return e.cfg
}

// SetConfig replaces the configuration. The current gesture continues with
// the new values.
func (e *Element) SetConfig(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	e.cfg = cfg
	return nil
}

// Velocity returns the most recent velocity sample.
func (e *Element) Velocity() Velocity {
	return e.g.velocity
}

// Tracking returns the displacement accumulated during the gesture.
func (e *Element) Tracking() Tracking {
	return e.g.track
}

// GestureState returns the lifecycle state of the current gesture.
func (e *Element) GestureState() GestureState {
	return e.phase
}

// ActiveFingers returns the number of fingers down on the element.
func (e *Element) ActiveFingers() int {
	return e.session.ActiveCount()
}

// Session returns the pointer session. It MUST NOT be mutated.
func (e *Element) Session() *PointerSession {
	return &e.session
}

// Lock suppresses gesture calculation, state updates and release animations
// while set. Running release animations stop where they are. Detach still
// works while locked.
func (e *Element) Lock(locked bool) {
	e.g.locked = locked
}

// Locked reports whether the element is locked.
func (e *Element) Locked() bool {
	return e.g.locked
}

// PropagationStopped reports whether the current gesture moved far enough
// (see StopsConfig) that enclosing scrollers should no longer receive it.
func (e *Element) PropagationStopped() bool {
	return e.stoppedPropagation
}

// Animating reports whether a release animation is running.
func (e *Element) Animating() bool {
	for _, a := range e.axes {
		if a.animating() {
			return true
		}
	}
	return false
}

// SetEventSink sets or clears the event sink.
func (e *Element) SetEventSink(sink EventSink) {
	e.sink = sink
}

// SetDebugMode enables per-frame debug logging.
func (e *Element) SetDebugMode(enabled bool) {
	e.debug = enabled
}

// Attach connects the element to the frame clock. Call when the element is
// added to the view.
func (e *Element) Attach(t *Ticker) {
	if e.ticker == t {
		return
	}
	e.Detach()
	e.ticker = t
}

// Detach stops all gesture work and disconnects the element from its
// ticker. Call when the element is removed from the view.
func (e *Element) Detach() {
	for _, a := range e.axes {
		a.cancel()
	}
	e.session.clear()
	e.resetGesture()
	e.unsubscribe()
	e.setPhase(StateIdle)
	e.ticker = nil
}

// --- Pointer input ---

// PointerDown registers a finger at page coordinates (x, y). The first
// finger starts a gesture and subscribes the element to its ticker.
// Panics if the element was never attached.
func (e *Element) PointerDown(id int, x, y float64) {
	e.mustBeAttached("PointerDown")
	now := e.now()

	if e.session.Down(id, x, y) {
		e.lastTick = now
		e.setPhase(StateTracking)
		e.subscribe()
	}

	e.g.track.reset(now)
	e.g.velocity.sample(&e.g.track, now, e.cfg.maxVelocity())
	e.started = true

	for _, a := range e.axes {
		a.onStart(&e.g)
	}
	e.emit(EventStart)
}

// PointerMove updates a finger position. Unknown ids are ignored.
func (e *Element) PointerMove(id int, x, y float64) {
	if e.session.Move(id, x, y) {
		e.changed = true
	}
}

// PointerUp releases a finger. Unknown or already released ids are ignored.
// Releasing the last finger finalizes velocity, starts release animations
// and classifies swipes.
func (e *Element) PointerUp(id int) {
	if !e.session.Up(id) {
		return
	}
	now := e.now()
	last := e.session.ActiveCount() == 0

	if last {
		e.resetGesture()
	}
	if e.g.track.Ticks > velocityEndMinTicks {
		e.g.velocity.sample(&e.g.track, now, e.cfg.maxVelocity())
	}

	e.emit(EventComplete)
	if !last {
		return
	}

	e.setPhase(StateReleasing)
	if !e.g.locked {
		for _, a := range e.axes {
			a.onComplete(&e.g)
		}
	}
	e.session.resetMultiple()
	e.settleIfIdle()
}

// now returns the time used to stamp pointer events.
func (e *Element) now() time.Time {
	if e.clock != nil {
		return e.clock()
	}
	if e.ticker != nil && !e.ticker.Now().IsZero() {
		return e.ticker.Now()
	}
	return time.Now()
}

// --- Frame handling ---

// Tick runs one frame. Called by the Ticker.
func (e *Element) Tick(now time.Time) {
	dt := now.Sub(e.lastTick).Seconds()
	if dt < 0 {
		dt = 0
	}
	e.lastTick = now
	e.g.now = now

	if e.started {
		e.trackFrame(now)
	}
	for _, a := range e.axes {
		if a.animating() {
			a.advance(&e.g, dt)
		}
	}
	e.settleIfIdle()
}

// trackFrame applies changed finger positions: calc, accumulate, update,
// consume. Every SampleTicks frames the velocity window is resampled.
func (e *Element) trackFrame(now time.Time) {
	if e.stoppedTracking {
		return
	}

	if e.changed {
		e.changed = false
		e.g.calc = Motion{}

		if !e.g.locked {
			for _, a := range e.axes {
				a.onCalc(&e.g)
			}
		}
		e.emit(EventCalc)

		e.g.track.Current = e.g.track.Current.Add(e.g.calc)
		e.checkStops()

		if e.debug {
			e.debugLogFrame()
		}

		if !e.g.locked && !e.stoppedTracking {
			for _, a := range e.axes {
				a.onUpdate(&e.g)
			}
		}
		e.session.Consume()
		e.emit(EventUpdate)
	}

	e.g.track.Ticks++
	if e.g.track.Ticks >= e.cfg.SampleTicks {
		e.g.velocity.sample(&e.g.track, now, e.cfg.maxVelocity())
		e.g.track.restartWindow(now)
	}
}

// checkStops applies StopsConfig to the tracked displacement.
func (e *Element) checkStops() {
	st := &e.cfg.Stops
	cur := e.g.track.Current

	if st.PropagationX > 0 && abs(cur.X) > st.PropagationX {
		e.stoppedPropagation = true
	}
	if st.PropagationY > 0 && abs(cur.Y) > st.PropagationY {
		e.stoppedPropagation = true
	}
	if st.TrackingX > 0 && abs(cur.X) > st.TrackingX && !e.g.fired[PropY] {
		e.stoppedTracking = true
	}
	if st.TrackingY > 0 && abs(cur.Y) > st.TrackingY && !e.g.fired[PropX] {
		e.stoppedTracking = true
	}
}

// resetGesture clears per-gesture flags once the last finger is up.
func (e *Element) resetGesture() {
	e.changed = false
	e.started = false
	e.stoppedTracking = false
	e.stoppedPropagation = false
	e.g.fired = [4]bool{}
}

// settleIfIdle ends the session once no finger is down and nothing animates.
func (e *Element) settleIfIdle() {
	if e.session.ActiveCount() > 0 || e.Animating() {
		return
	}
	e.setPhase(StateIdle)
	e.unsubscribe()
}

func (e *Element) setPhase(p GestureState) {
	if e.phase == p {
		return
	}
	e.logger.Debug("gesture "+p.String(), slog.String("from", e.phase.String()))
	e.phase = p
}

func (e *Element) subscribe() {
	if e.subscribed || e.ticker == nil {
		return
	}
	e.ticker.Subscribe(e)
	e.subscribed = true
}

func (e *Element) unsubscribe() {
	if !e.subscribed || e.ticker == nil {
		return
	}
	e.ticker.Unsubscribe(e)
	e.subscribed = false
}

// --- Event dispatch ---

func (e *Element) event(t EventType) Event {
	return Event{
		Type:          t,
		Element:       e,
		Name:          e.name,
		State:         e.state,
		Velocity:      e.g.velocity,
		ActiveFingers: e.session.ActiveCount(),
	}
}

func (e *Element) emit(t EventType) {
	e.dispatch(e.event(t))
}

func (e *Element) emitSwipe(s Swipe) {
	ev := e.event(EventSwipe)
	ev.Swipe = s
	e.logger.Debug("swipe",
		slog.String("orientation", s.Orientation.String()),
		slog.String("direction", s.Direction.String()),
		slog.Float64("velocity", s.Velocity))
	e.dispatch(ev)
}

func (e *Element) dispatch(ev Event) {
	e.handlers.fire(ev)
	if e.sink != nil {
		e.sink.EmitEvent(ev)
	}
}

func (e *Element) wantsSwipe() bool {
	return e.sink != nil || e.handlers.has(EventSwipe)
}
