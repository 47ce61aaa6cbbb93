package behavior

import (
	"context"
	"fmt"
	"time"

	"github.com/delaneyj/scrollsignals/frame"
	"github.com/delaneyj/scrollsignals/interp"
	"github.com/delaneyj/scrollsignals/motion"
	"github.com/delaneyj/scrollsignals/signal"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

type RevealState uint8

const (
	Hidden RevealState = iota
	Revealing
	Visible
)

func (s RevealState) String() string {
	switch s {
	case Hidden:
		return "hidden"
	case Revealing:
		return "revealing"
	case Visible:
		return "visible"
	default:
		return fmt.Sprintf("RevealState(%d)", uint8(s))
	}
}

const DefaultRevealDuration = 600 * time.Millisecond

type RevealConfig struct {
	Delay    time.Duration
	Duration time.Duration
	// Distance is the starting vertical offset in pixels.
	Distance float64
	// Scale is the starting scale; 0 means no scaling.
	Scale float64
	// Rotate is the starting rotation in degrees.
	Rotate float64
	// Margin grows the viewport when testing for intersection, so positive
	// values trigger before the element is actually on screen.
	Margin float64
	Ease   ease.TweenFunc
}

func (c RevealConfig) withDefaults() (RevealConfig, error) {
	if c.Duration == 0 {
		c.Duration = DefaultRevealDuration
	}
	if c.Duration < 0 || c.Delay < 0 {
		return c, fmt.Errorf("reveal: negative duration %v or delay %v", c.Duration, c.Delay)
	}
	if c.Scale == 0 {
		c.Scale = 1
	}
	if c.Ease == nil {
		c.Ease = ease.OutCubic
	}
	return c, nil
}

// at is the style at eased entrance progress t.
func (c RevealConfig) at(t float64) Style {
	s := Identity()
	s.Opacity = interp.Number(0, 1, t)
	s.TranslateY = interp.Number(c.Distance, 0, t)
	s.Scale = interp.Number(c.Scale, 1, t)
	s.Rotate = interp.Number(c.Rotate, 0, t)
	return s
}

// RevealBinding runs a one-shot entrance: Hidden until triggered, Revealing
// through the delay and the tween, then Visible for good.
type RevealBinding struct {
	*Binding
	clock frame.Clock
	cfg   RevealConfig
	state *signal.WriteableSignal[RevealState]
	tween *gween.Tween

	watch     *intersectionWatch
	handle    frame.Handle
	firstTick bool
	started   time.Duration
}

// Reveal animates el in the first time it intersects the viewport.
func Reveal(ctx context.Context, el Element, cfg RevealConfig) (*RevealBinding, error) {
	p := motion.MustFromContext(ctx, "Reveal")
	rb, err := newReveal(p, el, cfg)
	if err != nil {
		return nil, err
	}
	rb.watch = watchIntersection(p, el, rb.cfg.Margin, rb.start)
	rb.own(rb.watch.stop)
	return rb, nil
}

func newReveal(p *motion.Provider, el Element, cfg RevealConfig) (*RevealBinding, error) {
	cfg, err := cfg.withDefaults()
	if err != nil {
		return nil, err
	}
	b, err := newBinding(p, "reveal", el)
	if err != nil {
		return nil, err
	}
	rb := &RevealBinding{
		Binding: b,
		clock:   p.Clock(),
		cfg:     cfg,
		state:   signal.Signal(p.System(), Hidden),
	}
	rb.own(rb.cancelFrame)
	rb.apply(cfg.at(0))
	return rb, nil
}

func (rb *RevealBinding) State() signal.Readable[RevealState] {
	return rb.state.ReadOnly()
}

// Check re-tests intersection, for hosts that resized or moved the element.
func (rb *RevealBinding) Check() {
	if rb.watch != nil {
		rb.watch.check()
	}
}

func (rb *RevealBinding) start() {
	if rb.Disposed() || rb.state.Value() != Hidden {
		return
	}
	rb.state.SetValue(Revealing)
	rb.tween = gween.New(0, 1, float32(rb.cfg.Duration.Seconds()), rb.cfg.Ease)
	rb.firstTick = true
	rb.handle = rb.clock.RequestFrame(rb.tick)
}

func (rb *RevealBinding) tick(now time.Duration) {
	rb.handle = 0
	if rb.Disposed() {
		return
	}
	if rb.firstTick {
		rb.firstTick = false
		rb.started = now
	}

	elapsed := now - rb.started - rb.cfg.Delay
	if elapsed < 0 {
		rb.handle = rb.clock.RequestFrame(rb.tick)
		return
	}

	t, finished := rb.tween.Set(float32(elapsed.Seconds()))
	if finished {
		rb.apply(rb.cfg.at(1))
		rb.state.SetValue(Visible)
		return
	}
	rb.apply(rb.cfg.at(float64(t)))
	rb.handle = rb.clock.RequestFrame(rb.tick)
}

func (rb *RevealBinding) cancelFrame() {
	if rb.handle != 0 {
		rb.clock.CancelFrame(rb.handle)
		rb.handle = 0
	}
}

// intersectionWatch fires once when an element first meets the viewport, then
// stops listening.
type intersectionWatch struct {
	p       *motion.Provider
	el      Element
	margin  float64
	onEnter func()
	unsub   func()
	fired   bool
}

func watchIntersection(p *motion.Provider, el Element, margin float64, onEnter func()) *intersectionWatch {
	w := &intersectionWatch{
		p:       p,
		el:      el,
		margin:  margin,
		onEnter: onEnter,
	}
	w.unsub = p.Signals().RawPosition.Subscribe(func(float64) {
		w.check()
	})
	w.check()
	return w
}

func (w *intersectionWatch) check() {
	if w.fired {
		return
	}
	if !inViewport(w.p, w.el, w.margin) {
		return
	}
	w.fired = true
	w.stop()
	w.onEnter()
}

func (w *intersectionWatch) stop() {
	if w.unsub != nil {
		w.unsub()
		w.unsub = nil
	}
}

func inViewport(p *motion.Provider, el Element, margin float64) bool {
	width, height := p.Source().ViewportSize()
	viewport := Rect{
		Y: p.Signals().RawPosition.Value(),
		W: width,
		H: height,
	}
	return viewport.Expand(margin).Intersects(el.Bounds())
}
