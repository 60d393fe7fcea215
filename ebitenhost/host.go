// Package ebitenhost runs transformable elements inside an Ebitengine game
// loop. It polls mouse and touch input, routes it to the item under each
// pointer, drives the shared Ticker once per update and draws item images
// with their current transform.
package ebitenhost

import (
	"image/color"
	"io"
	"log/slog"
	"slices"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/transformable"
)

// Host is an ebiten.Game that owns a Ticker and a list of items.
type Host struct {
	ticker *transformable.Ticker
	items  []*Item
	router *router

	// ClearColor fills the screen before items are drawn. Nil leaves the
	// screen untouched.
	ClearColor color.Color

	width, height int
	now           func() time.Time
	setTPS        func(int)
	logger        *slog.Logger
}

// Option configures a Host.
type Option func(*hostOptions)

type hostOptions struct {
	input  InputSource
	mouse  bool
	ticker transformable.TickerConfig
	logger *slog.Logger
	clock  func() time.Time
	width  int
	height int
}

// WithInput replaces the Ebitengine input source.
func WithInput(src InputSource) Option {
	return func(o *hostOptions) { o.input = src }
}

// WithMouse enables or disables the mouse as pointer 0. Enabled by default.
func WithMouse(enabled bool) Option {
	return func(o *hostOptions) { o.mouse = enabled }
}

// WithTickerConfig configures the frame clock.
func WithTickerConfig(cfg transformable.TickerConfig) Option {
	return func(o *hostOptions) { o.ticker = cfg }
}

// WithLogger sets a structured logger. The default discards.
func WithLogger(logger *slog.Logger) Option {
	return func(o *hostOptions) { o.logger = logger }
}

// WithClock sets the time source passed to the ticker each update.
func WithClock(clock func() time.Time) Option {
	return func(o *hostOptions) { o.clock = clock }
}

// WithScreenSize fixes the logical screen size. By default the layout
// follows the window.
func WithScreenSize(w, h int) Option {
	return func(o *hostOptions) { o.width, o.height = w, h }
}

// New creates a host with a started ticker.
func New(opts ...Option) *Host {
	o := hostOptions{
		input:  ebitenInput{},
		mouse:  true,
		ticker: transformable.DefaultTickerConfig(),
		clock:  time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	h := &Host{
		ticker: transformable.NewTicker(o.ticker),
		router: newRouter(o.input, o.mouse),
		width:  o.width,
		height: o.height,
		now:    o.clock,
		setTPS: ebiten.SetTPS,
		logger: o.logger,
	}
	h.ticker.SetLogger(o.logger)
	h.ticker.OnRateChange = h.rateChanged
	h.ticker.Start()
	return h
}

func (h *Host) rateChanged(fps int) {
	h.logger.Info("frame rate changed", slog.Int("tps", fps))
	h.setTPS(fps)
}

// Ticker returns the frame clock shared by the host's items.
func (h *Host) Ticker() *transformable.Ticker {
	return h.ticker
}

// Add attaches it to the host's ticker and puts it on top of the other
// items. Adding an item twice has no effect.
func (h *Host) Add(it *Item) {
	if slices.Contains(h.items, it) {
		return
	}
	it.Attach(h.ticker)
	h.items = append(h.items, it)
}

// Remove detaches it, ending any gesture or release animation on it.
func (h *Host) Remove(it *Item) {
	i := slices.Index(h.items, it)
	if i < 0 {
		return
	}
	h.router.release(it)
	it.Detach()
	h.items = slices.Delete(h.items, i, i+1)
}

// Items returns the items in draw order. The returned slice MUST NOT be
// mutated.
func (h *Host) Items() []*Item {
	return h.items
}

// Update routes this frame's pointer input and advances the ticker.
func (h *Host) Update() error {
	h.router.poll(h.items)
	h.ticker.Advance(h.now())
	return nil
}

// Draw draws every item with an image, stretched to the item body.
func (h *Host) Draw(screen *ebiten.Image) {
	if h.ClearColor != nil {
		screen.Fill(h.ClearColor)
	}
	for _, it := range h.items {
		if it.Image == nil {
			continue
		}
		op := &ebiten.DrawImageOptions{}
		b := it.Image.Bounds()
		if b.Dx() > 0 && b.Dy() > 0 {
			op.GeoM.Scale(it.Width/float64(b.Dx()), it.Height/float64(b.Dy()))
		}
		op.GeoM.Concat(it.GeoM())
		screen.DrawImage(it.Image, op)
	}
}

// Layout returns the fixed screen size, or the outside size when none was
// set.
func (h *Host) Layout(outsideWidth, outsideHeight int) (int, int) {
	if h.width > 0 && h.height > 0 {
		return h.width, h.height
	}
	return outsideWidth, outsideHeight
}

// Run opens a window titled title and runs the host until it is closed.
func Run(h *Host, title string) error {
	if h.width > 0 && h.height > 0 {
		ebiten.SetWindowSize(h.width, h.height)
	}
	ebiten.SetWindowTitle(title)
	ebiten.SetTPS(h.ticker.FPS())
	return ebiten.RunGame(h)
}
