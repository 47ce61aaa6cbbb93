package behavior

import (
	"context"
	"fmt"

	"github.com/delaneyj/scrollsignals/interp"
	"github.com/delaneyj/scrollsignals/motion"
	"github.com/delaneyj/scrollsignals/signal"
	"github.com/lucasb-eyer/go-colorful"
)

const DefaultProgressColor = "#6366f1"

type ProgressBarConfig struct {
	// Color is a hex colour such as "#ff0066".
	Color string
}

type ProgressBarBinding struct {
	*Binding
	scale *signal.ReadonlySignal[float64]
	color colorful.Color
}

// ProgressBar scales el horizontally from its left edge by scroll progress.
func ProgressBar(ctx context.Context, el Element, cfg ProgressBarConfig) (*ProgressBarBinding, error) {
	p := motion.MustFromContext(ctx, "ProgressBar")
	if cfg.Color == "" {
		cfg.Color = DefaultProgressColor
	}
	color, err := colorful.Hex(cfg.Color)
	if err != nil {
		return nil, fmt.Errorf("progress bar: colour %q: %w", cfg.Color, err)
	}

	b, err := newBinding(p, "progress", el)
	if err != nil {
		return nil, err
	}
	scale := signal.Map(p.System(), p.Signals().Progress, func(v float64) float64 {
		return interp.Clamp(v, 0, 1)
	})
	b.own(scale.Dispose)

	background := color.Hex()
	render := func(v float64) {
		s := Identity()
		s.ScaleX = v
		s.Origin = "left"
		s.Background = background
		b.apply(s)
	}
	render(scale.Value())
	b.own(scale.Subscribe(render))

	return &ProgressBarBinding{Binding: b, scale: scale, color: color}, nil
}

func (pb *ProgressBarBinding) Scale() signal.Readable[float64] {
	return pb.scale
}

func (pb *ProgressBarBinding) Color() colorful.Color {
	return pb.color
}
