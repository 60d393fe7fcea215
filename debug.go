package transformable

import (
	"fmt"
	"log/slog"
)

// mustBeAttached panics when pointer input reaches an element that has no
// ticker. Without one the gesture would never receive frames.
func (e *Element) mustBeAttached(op string) {
	if e.ticker == nil {
		panic(fmt.Sprintf("transformable: %s on element %q before Attach", op, e.name))
	}
}

// debugLogFrame logs the deltas calculated this frame. Only called when the
// element is in debug mode.
func (e *Element) debugLogFrame() {
	c := e.g.calc
	e.logger.Debug("frame calculated",
		slog.Float64("x", c.X),
		slog.Float64("y", c.Y),
		slog.Float64("scale", c.Scale),
		slog.Float64("rotation", c.Rotation),
		slog.Int("fingers", e.session.ActiveCount()),
		slog.Int("ticks", e.g.track.Ticks))
}
