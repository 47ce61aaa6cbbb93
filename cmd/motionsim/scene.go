package main

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/delaneyj/scrollsignals/behavior"
	"github.com/delaneyj/scrollsignals/frame"
	"github.com/delaneyj/scrollsignals/motion"
	"github.com/delaneyj/scrollsignals/sim"
)

// scene is a landing page: a reading progress bar, a parallax backdrop, a
// velocity-skewed headline, a magnetic call to action, a card that reveals
// halfway down and a staggered grid near the bottom.
type scene struct {
	doc *sim.Document
	p   *motion.Provider

	bar      *behavior.ProgressBarBinding
	backdrop *behavior.ParallaxBinding
	headline *behavior.SkewBinding
	button   *behavior.MagneticBinding
	card     *behavior.RevealBinding
	grid     *behavior.StaggerBinding

	buttonEl *sim.Element
	elements []*sim.Element
}

func newScene(doc *sim.Document, clock frame.Clock, cfg motion.Config, tiles int) (*scene, error) {
	p, err := motion.NewProvider(doc, clock, cfg)
	if err != nil {
		return nil, err
	}
	ctx := p.Mount(context.Background())
	sc := &scene{doc: doc, p: p}

	vw, vh := doc.ViewportSize()
	content := doc.MaxScrollable() + vh

	el := func(name string, r behavior.Rect) *sim.Element {
		e := sim.NewElement(name, r)
		sc.elements = append(sc.elements, e)
		return e
	}

	if sc.bar, err = behavior.ProgressBar(ctx, el("progress", behavior.Rect{W: vw, H: 4}), behavior.ProgressBarConfig{}); err != nil {
		return nil, sc.fail(err)
	}
	if sc.backdrop, err = behavior.Parallax(ctx, el("backdrop", behavior.Rect{Y: 0, W: vw, H: vh}), behavior.ParallaxConfig{
		Speed:     0.5,
		Direction: behavior.DirectionUp,
	}); err != nil {
		return nil, sc.fail(err)
	}
	if sc.headline, err = behavior.VelocitySkew(ctx, el("headline", behavior.Rect{Y: 120, W: vw, H: 160}), behavior.SkewConfig{}); err != nil {
		return nil, sc.fail(err)
	}
	sc.buttonEl = el("cta", behavior.Rect{X: vw/2 - 100, Y: 320, W: 200, H: 60})
	if sc.button, err = behavior.Magnetic(ctx, sc.buttonEl, behavior.MagneticConfig{}); err != nil {
		return nil, sc.fail(err)
	}
	if sc.card, err = behavior.Reveal(ctx, el("card", behavior.Rect{X: 100, Y: content * 0.5, W: vw - 200, H: 240}), behavior.RevealConfig{
		Distance: 60,
		Scale:    0.95,
	}); err != nil {
		return nil, sc.fail(err)
	}

	gridTop := content * 0.75
	if sc.grid, err = behavior.StaggerGroup(ctx, el("grid", behavior.Rect{Y: gridTop, W: vw, H: 300}), behavior.StaggerConfig{
		StaggerDelay: 80 * time.Millisecond,
	}); err != nil {
		return nil, sc.fail(err)
	}
	tileW := vw / float64(max(1, tiles))
	for i := range tiles {
		r := behavior.Rect{X: float64(i) * tileW, Y: gridTop, W: tileW, H: 300}
		if _, err := sc.grid.Child(el(fmt.Sprintf("tile-%d", i), r), behavior.RevealConfig{Distance: 30}); err != nil {
			return nil, sc.fail(err)
		}
	}
	return sc, nil
}

func (sc *scene) fail(err error) error {
	sc.p.Close()
	return err
}

// hover sweeps the pointer across the button during the first second and
// leaves afterwards.
func (sc *scene) hover(now time.Duration) {
	if now > time.Second {
		if x, y := sc.button.Target(); x != 0 || y != 0 {
			sc.buttonEl.PointerLeave()
		}
		return
	}
	b := sc.buttonEl.Bounds()
	phase := float64(now) / float64(time.Second)
	cx, cy := b.Center()
	sc.buttonEl.PointerMove(cx+math.Sin(phase*2*math.Pi)*b.W, cy+math.Cos(phase*2*math.Pi)*b.H/2)
}

func (sc *scene) visibleTiles() int {
	n := 0
	for _, c := range sc.grid.Children() {
		if c.State().Value() == behavior.Visible {
			n++
		}
	}
	return n
}

func (sc *scene) close() {
	sc.p.Close()
}
