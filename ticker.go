package transformable

import (
	"io"
	"log/slog"
	"math"
	"slices"
	"time"
)

// Subscriber receives one Tick per frame while subscribed to a Ticker.
type Subscriber interface {
	Tick(now time.Time)
}

// TickerConfig configures frame dispatch and rate adaptation.
type TickerConfig struct {
	// TargetFPS is the preferred frame rate and the adaptive maximum.
	TargetFPS int `yaml:"targetFPS"`
	// MinFPS is the lowest rate adaptation may choose.
	MinFPS int `yaml:"minFPS"`
	// SampleInterval is how often the running average is recorded.
	SampleInterval time.Duration `yaml:"sampleInterval"`
	// AdjustInterval is how often the rate is recomputed from samples.
	AdjustInterval time.Duration `yaml:"adjustInterval"`
	// DowntimeAllowance is added to each recorded sample; a few dropped
	// frames per second are normal and should not throttle the rate.
	DowntimeAllowance int `yaml:"downtimeAllowance"`
	// MinCountedFPS ignores seconds slower than this (stalls, backgrounding).
	MinCountedFPS int `yaml:"minCountedFPS"`
}

// DefaultTickerConfig returns 60 fps adapting down to 30, sampled every
// 10 seconds and adjusted every minute.
func DefaultTickerConfig() TickerConfig {
	return TickerConfig{
		TargetFPS:         60,
		MinFPS:            30,
		SampleInterval:    10 * time.Second,
		AdjustInterval:    time.Minute,
		DowntimeAllowance: 10,
		MinCountedFPS:     15,
	}
}

// Ticker is the frame clock shared by all elements. It dispatches Advance to
// its subscribers in registration order and adapts the target frame rate to
// measured performance. A Ticker is not safe for concurrent use; drive it
// from the game loop.
type Ticker struct {
	cfg     TickerConfig
	fps     int
	running bool
	now     time.Time

	subs []Subscriber
	buf  []Subscriber

	// OnRateChange is called when adaptation picks a new frame rate. Hosts
	// use it to reconfigure their loop (e.g. ebiten.SetTPS).
	OnRateChange func(fps int)

	logger *slog.Logger

	// rate measurement
	secondStart time.Time
	frames      int
	combined    float64
	counted     int
	average     float64
	sampleStart time.Time
	adjustStart time.Time
	samples     []float64
}

// NewTicker creates a stopped ticker. Zero fields of cfg take their
// defaults.
func NewTicker(cfg TickerConfig) *Ticker {
	def := DefaultTickerConfig()
	if cfg.TargetFPS <= 0 {
		cfg.TargetFPS = def.TargetFPS
	}
	if cfg.MinFPS <= 0 || cfg.MinFPS > cfg.TargetFPS {
		cfg.MinFPS = min(def.MinFPS, cfg.TargetFPS)
	}
	if cfg.SampleInterval <= 0 {
		cfg.SampleInterval = def.SampleInterval
	}
	if cfg.AdjustInterval <= 0 {
		cfg.AdjustInterval = def.AdjustInterval
	}
	if cfg.DowntimeAllowance < 0 {
		cfg.DowntimeAllowance = 0
	}
	if cfg.MinCountedFPS <= 0 {
		cfg.MinCountedFPS = def.MinCountedFPS
	}
	return &Ticker{
		cfg:    cfg,
		fps:    cfg.TargetFPS,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// SetLogger sets the logger used for rate changes.
func (t *Ticker) SetLogger(l *slog.Logger) {
	if l != nil {
		t.logger = l
	}
}

// Start begins dispatching. Rate measurement restarts at the next Advance.
func (t *Ticker) Start() {
	t.running = true
	t.secondStart = time.Time{}
}

// Stop pauses dispatching. Subscribers stay registered.
func (t *Ticker) Stop() {
	t.running = false
}

// Running reports whether the ticker dispatches frames.
func (t *Ticker) Running() bool {
	return t.running
}

// FPS returns the current target frame rate.
func (t *Ticker) FPS() int {
	return t.fps
}

// FrameDuration returns the duration of one frame at the current rate.
func (t *Ticker) FrameDuration() time.Duration {
	return time.Second / time.Duration(t.fps)
}

// Now returns the time passed to the latest Advance.
func (t *Ticker) Now() time.Time {
	return t.now
}

// Subscribe adds s to the end of the dispatch list. Subscribing twice has no
// effect.
func (t *Ticker) Subscribe(s Subscriber) {
	if slices.Contains(t.subs, s) {
		return
	}
	t.subs = append(t.subs, s)
}

// Unsubscribe removes s from the dispatch list.
func (t *Ticker) Unsubscribe(s Subscriber) {
	for i := range t.subs {
		if t.subs[i] == s {
			copy(t.subs[i:], t.subs[i+1:])
			t.subs[len(t.subs)-1] = nil
			t.subs = t.subs[:len(t.subs)-1]
			return
		}
	}
}

// Subscribers returns the number of subscribers.
func (t *Ticker) Subscribers() int {
	return len(t.subs)
}

// Advance runs one frame at now: every subscriber registered when the frame
// starts receives Tick in registration order, then the frame is counted for
// rate adaptation. Does nothing while stopped.
func (t *Ticker) Advance(now time.Time) {
	if !t.running {
		return
	}
	t.now = now

	// Subscribers may (un)subscribe during dispatch.
	t.buf = append(t.buf[:0], t.subs...)
	for _, s := range t.buf {
		s.Tick(now)
	}
	clear(t.buf)

	t.measure(now)
}

func (t *Ticker) measure(now time.Time) {
	if t.secondStart.IsZero() {
		t.secondStart = now
		t.sampleStart = now
		t.adjustStart = now
		t.frames = 0
		t.resetAverage()
		t.samples = t.samples[:0]
		return
	}

	t.frames++
	if elapsed := now.Sub(t.secondStart); elapsed >= time.Second {
		fps := math.Round(float64(t.frames) * float64(time.Second) / float64(elapsed))
		t.secondStart = now
		t.frames = 0
		if fps > float64(t.cfg.MinCountedFPS) {
			t.counted++
			t.combined += fps
			t.average = t.combined / float64(t.counted)
		}
	}

	if now.Sub(t.sampleStart) >= t.cfg.SampleInterval {
		if t.counted > 0 {
			t.samples = append(t.samples, math.Round(t.average+float64(t.cfg.DowntimeAllowance)))
		}
		t.resetAverage()
		t.sampleStart = now
	}

	if now.Sub(t.adjustStart) >= t.cfg.AdjustInterval {
		t.adjust()
		t.adjustStart = now
	}
}

func (t *Ticker) resetAverage() {
	t.combined = 0
	t.counted = 0
	t.average = 0
}

// adjust picks a new rate from the recorded samples and clears them.
func (t *Ticker) adjust() {
	mean := trimmedMean(t.samples)
	t.samples = t.samples[:0]

	fps := t.cfg.TargetFPS
	if !math.IsNaN(mean) {
		fps = int(math.Round(mean))
	}
	fps = max(t.cfg.MinFPS, min(t.cfg.TargetFPS, fps))
	if fps == t.fps {
		return
	}

	t.logger.Debug("frame rate adjusted", slog.Int("from", t.fps), slog.Int("to", fps))
	t.fps = fps
	if t.OnRateChange != nil {
		t.OnRateChange(fps)
	}
}

// trimmedMean averages samples after dropping the single lowest one. Fewer
// than two samples yield NaN.
func trimmedMean(samples []float64) float64 {
	if len(samples) < 2 {
		return math.NaN()
	}
	lowest := 0
	for i, s := range samples {
		if s < samples[lowest] {
			lowest = i
		}
	}
	var sum float64
	for i, s := range samples {
		if i != lowest {
			sum += s
		}
	}
	return sum / float64(len(samples)-1)
}
