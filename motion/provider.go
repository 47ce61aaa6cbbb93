// Package motion distributes the scroll root signals to any depth of consumers
// through a context.Context, so view code never threads them by hand.
package motion

import (
	"context"
	"errors"
	"fmt"

	"github.com/cespare/xxhash/v2"
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/delaneyj/scrollsignals/frame"
	"github.com/delaneyj/scrollsignals/scroll"
	"github.com/delaneyj/scrollsignals/signal"
	"github.com/delaneyj/scrollsignals/spring"
)

var (
	ErrNoProvider     = errors.New("no motion provider in context")
	ErrNestedProvider = errors.New("nested motion providers are not supported")
	ErrClosed         = errors.New("motion provider closed")
)

type ctxKey uint64

var providerKey = ctxKey(xxhash.Sum64String("scrollsignals/motion.Provider"))

// Disposer is anything the provider must tear down before its root signals go away.
type Disposer interface {
	Dispose()
}

// Signals are the shared read-only roots. Position is spring smoothed;
// RawPosition tracks the sampled offset exactly.
type Signals struct {
	Position    signal.Readable[float64]
	RawPosition signal.Readable[float64]
	Velocity    signal.Readable[float64]
	Progress    signal.Readable[float64]
}

// Provider owns the signal system, the scroll sampler and the smoothed
// position spring for one page.
type Provider struct {
	cfg      Config
	rs       *signal.System
	clock    frame.Clock
	sampler  *scroll.Sampler
	smooth   *spring.Spring
	bindings mapset.Set[Disposer]
	closed   bool
}

func NewProvider(source scroll.Source, clock frame.Clock, cfg Config) (*Provider, error) {
	cfg = cfg.withDefaults()
	if err := cfg.PositionSpring.Validate(); err != nil {
		return nil, fmt.Errorf("position spring: %w", err)
	}

	rs := signal.NewSystem()
	sampler := scroll.NewSampler(rs, source, clock, scroll.Options{
		VelocityScale: cfg.VelocityScale,
	})
	smooth, err := spring.Follow(rs, clock, sampler.Position(), cfg.PositionSpring)
	if err != nil {
		sampler.Close()
		return nil, fmt.Errorf("position spring: %w", err)
	}

	p := &Provider{
		cfg:      cfg,
		rs:       rs,
		clock:    clock,
		sampler:  sampler,
		smooth:   smooth,
		bindings: mapset.NewThreadUnsafeSet[Disposer](),
	}
	p.logf("provider mounted: velocity scale %v, position spring k=%v c=%v m=%v",
		cfg.VelocityScale, cfg.PositionSpring.Stiffness, cfg.PositionSpring.Damping, cfg.PositionSpring.Mass)
	return p, nil
}

// Mount returns a child of ctx carrying p. It panics if ctx already carries a
// provider, since two providers would be two competing frame sources.
func (p *Provider) Mount(ctx context.Context) context.Context {
	if _, ok := ctx.Value(providerKey).(*Provider); ok {
		panic(fmt.Errorf("mount: %w", ErrNestedProvider))
	}
	return context.WithValue(ctx, providerKey, p)
}

func (p *Provider) Signals() Signals {
	return Signals{
		Position:    p.smooth,
		RawPosition: p.sampler.Position(),
		Velocity:    p.sampler.Velocity(),
		Progress:    p.sampler.Progress(),
	}
}

func (p *Provider) System() *signal.System {
	return p.rs
}

func (p *Provider) Clock() frame.Clock {
	return p.clock
}

func (p *Provider) Source() scroll.Source {
	return p.sampler.Source()
}

func (p *Provider) Sampler() *scroll.Sampler {
	return p.sampler
}

func (p *Provider) Config() Config {
	return p.cfg
}

func (p *Provider) Closed() bool {
	return p.closed
}

// Track registers d for disposal at Close. The returned func drops the
// registration without disposing.
func (p *Provider) Track(d Disposer) (untrack func(), err error) {
	if p.closed {
		return nil, ErrClosed
	}
	p.bindings.Add(d)
	return func() {
		p.bindings.Remove(d)
	}, nil
}

func (p *Provider) LiveBindings() int {
	return p.bindings.Cardinality()
}

// Close disposes every live binding, then the spring, then the sampler.
func (p *Provider) Close() {
	if p.closed {
		return
	}
	p.closed = true

	leaked := p.bindings.ToSlice()
	if len(leaked) > 0 {
		p.logf("provider closing with %d live bindings", len(leaked))
	}
	for _, d := range leaked {
		d.Dispose()
	}
	p.bindings.Clear()

	p.smooth.Dispose()
	p.sampler.Close()
	p.logf("provider closed after %d flushes", p.sampler.Flushes())
}

func (p *Provider) logf(format string, args ...any) {
	if p.cfg.Logger != nil {
		p.cfg.Logger.Printf(format, args...)
	}
}

// FromContext returns the provider mounted on ctx.
func FromContext(ctx context.Context) (*Provider, error) {
	p, ok := ctx.Value(providerKey).(*Provider)
	if !ok {
		return nil, ErrNoProvider
	}
	if p.closed {
		return nil, ErrClosed
	}
	return p, nil
}

// MustFromContext panics naming caller when no live provider is mounted.
// Using a consumer outside a provider is a composition bug, not a runtime state.
func MustFromContext(ctx context.Context, caller string) *Provider {
	p, err := FromContext(ctx)
	if err != nil {
		panic(fmt.Errorf("%s: %w", caller, err))
	}
	return p
}

func UseMotionContext(ctx context.Context) Signals {
	return MustFromContext(ctx, "UseMotionContext").Signals()
}

// Provide mounts a provider for the duration of children.
func Provide(
	ctx context.Context,
	source scroll.Source,
	clock frame.Clock,
	cfg Config,
	children func(ctx context.Context) error,
) error {
	p, err := NewProvider(source, clock, cfg)
	if err != nil {
		return err
	}
	defer p.Close()
	return children(p.Mount(ctx))
}
