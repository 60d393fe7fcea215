package transformable

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDebugModeLogsFrames(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	h := newHarness(t, WithLogger(logger))

	h.e.PointerDown(0, 0, 0)
	h.frame()
	h.e.PointerMove(0, 3, 4)
	h.frame()
	assert.NotContains(t, buf.String(), "frame calculated")

	h.e.SetDebugMode(true)
	h.e.PointerMove(0, 6, 8)
	h.frame()
	out := buf.String()
	assert.Contains(t, out, "frame calculated")
	assert.Contains(t, out, "element=card")
	assert.Contains(t, out, "x=3")
	assert.Contains(t, out, "fingers=1")
}

func TestLifecycleLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	h := newHarness(t, WithLogger(logger))

	var in Injector
	in.InjectDrag(0, 0, 0, 200, 0, 5)
	h.play(t, &in)

	out := buf.String()
	for _, msg := range []string{"gesture tracking", "gesture releasing", "gesture idle", "release planned"} {
		assert.Contains(t, out, msg)
	}
	assert.Less(t, strings.Index(out, "gesture tracking"), strings.Index(out, "gesture releasing"))
}
