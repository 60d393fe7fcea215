package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/phanxgames/transformable"
	"github.com/spf13/cobra"
)

// replayEpoch is the fixed start time of every replay.
var replayEpoch = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

var runCmd = &cobra.Command{
	Use:   "run <file>",
	Short: "Replay a gesture file and log the emitted events",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := newLogger(cmd, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		f, err := loadReplayFile(args[0])
		if err != nil {
			return err
		}
		res, err := replay(f, logger)
		if err != nil {
			return err
		}
		printResult(cmd.OutOrStdout(), res)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}

// eventLogger logs element events. Per-frame calc and update events are
// logged at debug level.
type eventLogger struct {
	logger *slog.Logger
	counts map[transformable.EventType]int
}

func (l *eventLogger) EmitEvent(e transformable.Event) {
	l.counts[e.Type]++

	level := slog.LevelInfo
	if e.Type == transformable.EventCalc || e.Type == transformable.EventUpdate {
		level = slog.LevelDebug
	}
	attrs := []slog.Attr{
		slog.Float64("x", e.State.X),
		slog.Float64("y", e.State.Y),
		slog.Float64("scale", e.State.ScaleX),
		slog.Float64("rotation", e.State.Rotation),
		slog.Int("fingers", e.ActiveFingers),
	}
	if e.Type == transformable.EventSwipe {
		attrs = append(attrs,
			slog.String("orientation", e.Swipe.Orientation.String()),
			slog.String("direction", e.Swipe.Direction.String()),
			slog.Float64("velocity", e.Swipe.Velocity))
	}
	l.logger.LogAttrs(context.Background(), level, e.Type.String(), attrs...)
}

type replayResult struct {
	Frames   int
	Duration time.Duration
	State    transformable.TransformState
	Counts   map[transformable.EventType]int
	Settled  bool
}

// replay runs the script of f against a fresh element.
func replay(f *replayFile, logger *slog.Logger) (*replayResult, error) {
	caps, err := f.capabilities()
	if err != nil {
		return nil, err
	}
	runner, err := transformable.NewScriptRunner(f.Steps)
	if err != nil {
		return nil, err
	}

	clock := transformable.NewManualClock(replayEpoch)
	ticker := transformable.NewTicker(f.Ticker)
	ticker.SetLogger(logger)

	events := &eventLogger{logger: logger, counts: map[transformable.EventType]int{}}
	opts := []transformable.Option{
		transformable.WithName(f.Name),
		transformable.WithConfig(f.Config),
		transformable.WithCapabilities(caps),
		transformable.WithClock(clock.Now),
		transformable.WithEventSink(events),
		transformable.WithLogger(logger),
	}
	if f.State != nil {
		opts = append(opts, transformable.WithState(*f.State))
	}
	e, err := transformable.New(opts...)
	if err != nil {
		return nil, err
	}
	e.SetDebugMode(logger.Enabled(context.Background(), slog.LevelDebug))
	e.Attach(ticker)
	defer e.Detach()

	frames := runner.Run(e, ticker, clock, f.MaxFrames)
	return &replayResult{
		Frames:   frames,
		Duration: clock.Now().Sub(replayEpoch),
		State:    e.State(),
		Counts:   events.counts,
		Settled:  runner.Done() && ticker.Subscribers() == 0,
	}, nil
}

func printResult(w io.Writer, res *replayResult) {
	fmt.Fprintf(w, "frames:   %d (%s)\n", res.Frames, res.Duration)
	fmt.Fprintf(w, "settled:  %t\n", res.Settled)
	fmt.Fprintf(w, "position: %.3f, %.3f\n", res.State.X, res.State.Y)
	fmt.Fprintf(w, "scale:    %.4f\n", res.State.ScaleX)
	fmt.Fprintf(w, "rotation: %.3f\n", res.State.Rotation)
	for _, t := range []transformable.EventType{
		transformable.EventMoveComplete,
		transformable.EventRotateComplete,
		transformable.EventScaleComplete,
		transformable.EventSwipe,
	} {
		fmt.Fprintf(w, "%-15s %d\n", t.String()+":", res.Counts[t])
	}
}
