package behavior

import (
	"context"
	"fmt"
	"time"

	"github.com/delaneyj/scrollsignals/motion"
	"github.com/delaneyj/scrollsignals/signal"
)

type StaggerConfig struct {
	// StaggerDelay separates the start of consecutive children.
	StaggerDelay time.Duration
	// BaseDelay is added to every child's start.
	BaseDelay time.Duration
	// Margin is applied to the parent's viewport intersection test.
	Margin float64
}

// StaggerBinding is a parent latch that turns Visible when its element enters
// the viewport. Children start their own entrances at
// BaseDelay + index*StaggerDelay after that and never wait on each other.
type StaggerBinding struct {
	*Binding
	p        *motion.Provider
	cfg      StaggerConfig
	state    *signal.WriteableSignal[RevealState]
	watch    *intersectionWatch
	children []*RevealBinding
}

func StaggerGroup(ctx context.Context, el Element, cfg StaggerConfig) (*StaggerBinding, error) {
	p := motion.MustFromContext(ctx, "StaggerGroup")
	if cfg.StaggerDelay < 0 || cfg.BaseDelay < 0 {
		return nil, fmt.Errorf("stagger: negative delay %v/%v", cfg.StaggerDelay, cfg.BaseDelay)
	}
	b, err := newBinding(p, "stagger", el)
	if err != nil {
		return nil, err
	}
	g := &StaggerBinding{
		Binding: b,
		p:       p,
		cfg:     cfg,
		state:   signal.Signal(p.System(), Hidden),
	}
	b.apply(Identity())
	g.own(g.disposeChildren)
	g.watch = watchIntersection(p, el, cfg.Margin, func() {
		g.state.SetValue(Visible)
	})
	g.own(g.watch.stop)
	return g, nil
}

// Child adds the next child in sequence. cfg.Delay is replaced by the child's
// slot in the stagger.
func (g *StaggerBinding) Child(el Element, cfg RevealConfig) (*RevealBinding, error) {
	if g.Disposed() {
		return nil, fmt.Errorf("stagger child: %w", motion.ErrClosed)
	}
	index := len(g.children)
	cfg.Delay = g.cfg.StartDelay(index)

	child, err := newReveal(g.p, el, cfg)
	if err != nil {
		return nil, fmt.Errorf("stagger child %d: %w", index, err)
	}
	g.children = append(g.children, child)

	if g.state.Value() == Visible {
		child.start()
		return child, nil
	}
	child.own(g.state.Subscribe(func(s RevealState) {
		if s == Visible {
			child.start()
		}
	}))
	return child, nil
}

func (g *StaggerBinding) State() signal.Readable[RevealState] {
	return g.state.ReadOnly()
}

func (g *StaggerBinding) Children() []*RevealBinding {
	return g.children
}

func (g *StaggerBinding) Check() {
	g.watch.check()
}

func (g *StaggerBinding) disposeChildren() {
	for _, c := range g.children {
		c.Dispose()
	}
}

// StartDelay is when child index begins after the parent turns Visible.
func (c StaggerConfig) StartDelay(index int) time.Duration {
	return c.BaseDelay + time.Duration(index)*c.StaggerDelay
}
