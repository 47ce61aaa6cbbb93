package behavior

import (
	"context"
	"fmt"
	"math"

	"github.com/delaneyj/scrollsignals/interp"
	"github.com/delaneyj/scrollsignals/motion"
	"github.com/delaneyj/scrollsignals/signal"
)

type Direction uint8

const (
	DirectionUp Direction = iota
	DirectionDown
	DirectionLeft
	DirectionRight
)

func (d Direction) String() string {
	switch d {
	case DirectionUp:
		return "up"
	case DirectionDown:
		return "down"
	case DirectionLeft:
		return "left"
	case DirectionRight:
		return "right"
	default:
		return fmt.Sprintf("Direction(%d)", uint8(d))
	}
}

func (d Direction) horizontal() bool {
	return d == DirectionLeft || d == DirectionRight
}

func (d Direction) sign() float64 {
	if d == DirectionUp || d == DirectionLeft {
		return -1
	}
	return 1
}

const DefaultParallaxRange = 100

type ParallaxConfig struct {
	Speed     float64
	Direction Direction
	// Range is the offset in pixels at progress 1 and speed 1.
	Range float64
}

type ParallaxBinding struct {
	*Binding
	offset *signal.ReadonlySignal[float64]
}

// Parallax translates el along one axis in exact proportion to scroll progress.
func Parallax(ctx context.Context, el Element, cfg ParallaxConfig) (*ParallaxBinding, error) {
	p := motion.MustFromContext(ctx, "Parallax")
	if cfg.Range == 0 {
		cfg.Range = DefaultParallaxRange
	}
	if math.IsNaN(cfg.Speed) || math.IsInf(cfg.Speed, 0) || math.IsNaN(cfg.Range) {
		return nil, fmt.Errorf("parallax: invalid speed %v or range %v", cfg.Speed, cfg.Range)
	}
	if cfg.Direction > DirectionRight {
		return nil, fmt.Errorf("parallax: unknown direction %v", cfg.Direction)
	}

	b, err := newBinding(p, "parallax", el)
	if err != nil {
		return nil, err
	}

	end := cfg.Speed * cfg.Range * cfg.Direction.sign()
	offset, err := interp.Interpolated(p.System(), p.Signals().Progress, []float64{0, 1}, []float64{0, end}, interp.Number)
	if err != nil {
		b.Dispose()
		return nil, fmt.Errorf("parallax: %w", err)
	}
	b.own(offset.Dispose)

	pb := &ParallaxBinding{Binding: b, offset: offset}
	render := func(v float64) {
		s := Identity()
		if cfg.Direction.horizontal() {
			s.TranslateX = v
		} else {
			s.TranslateY = v
		}
		b.apply(s)
	}
	render(offset.Value())
	b.own(offset.Subscribe(render))
	return pb, nil
}

func (pb *ParallaxBinding) Offset() signal.Readable[float64] {
	return pb.offset
}
