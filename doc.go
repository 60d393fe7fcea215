// Package transformable turns multi-touch pointer input on an interactive
// element into translation, rotation and scale, throws the element on
// release and classifies swipes.
//
// An [Element] owns a numeric [TransformState]. It consumes a normalized
// pointer protocol ([Element.PointerDown], [Element.PointerMove],
// [Element.PointerUp]) and a per-frame clock delivered by a [Ticker].
// Painting is left to the host; see the ebitenhost package for an
// [Ebitengine] adapter and the ecs module for a [Donburi] event bridge.
//
// # Quick start
//
//	ticker := transformable.NewTicker(transformable.DefaultTickerConfig())
//	ticker.Start()
//
//	cfg := transformable.DefaultConfig()
//	cfg.X.Borders = transformable.Bounds(-100, 100)
//	card, err := transformable.New(transformable.WithConfig(cfg))
//	if err != nil {
//		return err
//	}
//	card.Attach(ticker)
//	card.OnMove(func(e transformable.Event) {
//		sprite.X, sprite.Y = e.State.X, e.State.Y
//	})
//
//	// every frame:
//	card.PointerDown(0, x, y) // or PointerMove / PointerUp
//	ticker.Advance(time.Now())
//
// # Gestures
//
// One or more fingers translate the element by their mean movement. The
// first two fingers rotate it by the change in their angle and scale it by
// the change in their distance. [WithCapabilities] selects which of these
// an element responds to. Every property passes through [Hold], which
// keeps it inside its [AxisConfig] borders, optionally with an elastic
// overshoot.
//
// When the last finger lifts, each gesture axis projects the most recent
// [Velocity] into a release target, resolves an optional overshoot and
// settle point with [Settle] and eases there over a distance-dependent
// duration (via [gween]). Single-finger gestures are also classified with
// [ClassifySwipe].
//
// # Events
//
// Handlers registered with [Element.On] and its shortcuts receive an
// [Event] for every lifecycle step and every state change. Every handler
// returns a [CallbackHandle] that removes it. An [EventSink] receives the
// same events after the handlers.
//
// # Scripted input
//
// [LoadScript] parses a YAML or JSON gesture script and [ScriptRunner]
// replays it one frame at a time against a deterministic [ManualClock].
// The gesturereplay command runs scripts from the command line.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
package transformable
