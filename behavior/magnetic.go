package behavior

import (
	"context"
	"fmt"
	"math"

	"github.com/delaneyj/scrollsignals/interp"
	"github.com/delaneyj/scrollsignals/motion"
	"github.com/delaneyj/scrollsignals/signal"
	"github.com/delaneyj/scrollsignals/spring"
)

const DefaultMagneticStrength = 0.3

var DefaultMagneticSpring = spring.Config{
	Stiffness: 150,
	Damping:   15,
	Mass:      0.1,
}

type MagneticConfig struct {
	Strength float64
	Spring   spring.Config
}

// MagneticBinding pulls el toward the pointer while it hovers and springs it
// back to rest when the pointer leaves.
type MagneticBinding struct {
	*Binding
	cfg     MagneticConfig
	targetX *signal.WriteableSignal[float64]
	targetY *signal.WriteableSignal[float64]
	x, y    *spring.Spring
}

func Magnetic(ctx context.Context, el Element, cfg MagneticConfig) (*MagneticBinding, error) {
	p := motion.MustFromContext(ctx, "Magnetic")
	if cfg.Strength == 0 {
		cfg.Strength = DefaultMagneticStrength
	}
	if math.IsNaN(cfg.Strength) || math.IsInf(cfg.Strength, 0) {
		return nil, fmt.Errorf("magnetic: invalid strength %v", cfg.Strength)
	}
	if cfg.Spring == (spring.Config{}) {
		cfg.Spring = DefaultMagneticSpring
	}
	if err := cfg.Spring.Validate(); err != nil {
		return nil, fmt.Errorf("magnetic: %w", err)
	}

	b, err := newBinding(p, "magnetic", el)
	if err != nil {
		return nil, err
	}
	rs := p.System()
	mb := &MagneticBinding{
		Binding: b,
		cfg:     cfg,
		targetX: signal.Signal(rs, 0.0),
		targetY: signal.Signal(rs, 0.0),
	}
	// Validate passed above, so Follow cannot fail here.
	mb.x, _ = spring.Follow(rs, p.Clock(), mb.targetX.ReadOnly(), cfg.Spring)
	mb.y, _ = spring.Follow(rs, p.Clock(), mb.targetY.ReadOnly(), cfg.Spring)
	b.own(mb.x.Dispose)
	b.own(mb.y.Dispose)

	b.apply(Identity())
	b.own(signal.Effect2[float64, float64](mb.x, mb.y, func(x, y float64) {
		s := Identity()
		s.TranslateX = x
		s.TranslateY = y
		b.apply(s)
	}))

	if src, ok := el.(PointerSource); ok {
		b.own(src.AddPointerListener(mb.handlePointer))
	}
	return mb, nil
}

func (mb *MagneticBinding) handlePointer(ev PointerEvent) {
	switch ev.Kind {
	case PointerMove:
		mb.PointerMove(ev.X, ev.Y)
	case PointerLeave:
		mb.PointerLeave()
	}
}

// PointerMove sets the spring target from a pointer position in document
// coordinates. The pointer is clamped to the element's bounds first.
func (mb *MagneticBinding) PointerMove(x, y float64) {
	if mb.Disposed() {
		return
	}
	bounds := mb.Element().Bounds()
	cx, cy := bounds.Center()
	px := interp.Clamp(x, bounds.X, bounds.X+bounds.W)
	py := interp.Clamp(y, bounds.Y, bounds.Y+bounds.H)
	mb.targetX.SetValue((px - cx) * mb.cfg.Strength)
	mb.targetY.SetValue((py - cy) * mb.cfg.Strength)
}

func (mb *MagneticBinding) PointerLeave() {
	if mb.Disposed() {
		return
	}
	mb.targetX.SetValue(0)
	mb.targetY.SetValue(0)
}

// Target is the current spring target.
func (mb *MagneticBinding) Target() (x, y float64) {
	return mb.targetX.Value(), mb.targetY.Value()
}

func (mb *MagneticBinding) Offset() (x, y float64) {
	return mb.x.Value(), mb.y.Value()
}

func (mb *MagneticBinding) Settled() bool {
	return mb.x.Settled() && mb.y.Settled()
}
