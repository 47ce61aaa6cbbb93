package behavior

import (
	"context"
	"fmt"

	"github.com/delaneyj/scrollsignals/interp"
	"github.com/delaneyj/scrollsignals/motion"
	"github.com/delaneyj/scrollsignals/signal"
)

const (
	DefaultMaxSkew       = 5
	DefaultVelocityRange = 50
	DefaultMinScaleY     = 0.96
)

type SkewConfig struct {
	// MaxSkew bounds the skew angle in degrees on either side.
	MaxSkew float64
	// VelocityRange is the scaled velocity at which the effect saturates.
	VelocityRange float64
	// MinScaleY is the vertical squash at saturation.
	MinScaleY float64
}

type SkewBinding struct {
	*Binding
	skew   *signal.ReadonlySignal[float64]
	scaleY *signal.ReadonlySignal[float64]
}

// VelocitySkew skews and squashes el with scroll velocity. Both outputs are
// clamped, so velocity spikes cannot push the effect past its bounds.
func VelocitySkew(ctx context.Context, el Element, cfg SkewConfig) (*SkewBinding, error) {
	p := motion.MustFromContext(ctx, "VelocitySkew")
	if cfg.MaxSkew == 0 {
		cfg.MaxSkew = DefaultMaxSkew
	}
	if cfg.VelocityRange == 0 {
		cfg.VelocityRange = DefaultVelocityRange
	}
	if cfg.MinScaleY == 0 {
		cfg.MinScaleY = DefaultMinScaleY
	}
	switch {
	case !(cfg.MaxSkew > 0):
		return nil, fmt.Errorf("velocity skew: max skew %v must be > 0", cfg.MaxSkew)
	case !(cfg.VelocityRange > 0):
		return nil, fmt.Errorf("velocity skew: velocity range %v must be > 0", cfg.VelocityRange)
	case !(cfg.MinScaleY > 0 && cfg.MinScaleY <= 1):
		return nil, fmt.Errorf("velocity skew: min scaleY %v must be in (0,1]", cfg.MinScaleY)
	}

	rs := p.System()
	velocity := p.Signals().Velocity
	r := cfg.VelocityRange
	skew, err := interp.Interpolated(rs, velocity, []float64{-r, r}, []float64{-cfg.MaxSkew, cfg.MaxSkew}, interp.Number)
	if err != nil {
		return nil, fmt.Errorf("velocity skew: %w", err)
	}
	scaleY, err := interp.Interpolated(rs, velocity, []float64{-r, 0, r}, []float64{cfg.MinScaleY, 1, cfg.MinScaleY}, interp.Number)
	if err != nil {
		skew.Dispose()
		return nil, fmt.Errorf("velocity skew: %w", err)
	}

	b, err := newBinding(p, "skew", el)
	if err != nil {
		skew.Dispose()
		scaleY.Dispose()
		return nil, err
	}
	b.own(skew.Dispose)
	b.own(scaleY.Dispose)

	render := func(k, sy float64) {
		s := Identity()
		s.SkewY = k
		s.ScaleY = sy
		b.apply(s)
	}
	render(skew.Value(), scaleY.Value())
	b.own(signal.Effect2[float64, float64](skew, scaleY, render))

	return &SkewBinding{Binding: b, skew: skew, scaleY: scaleY}, nil
}

func (sb *SkewBinding) Skew() signal.Readable[float64] {
	return sb.skew
}

func (sb *SkewBinding) ScaleY() signal.Readable[float64] {
	return sb.scaleY
}
