// Package interp maps one numeric domain onto another with piecewise-linear
// interpolation. Only the lerp primitive depends on the output type, so the
// same segment search serves numbers, percentages and colours.
package interp

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/delaneyj/scrollsignals/signal"
	"github.com/lucasb-eyer/go-colorful"
)

var (
	ErrRangeLength = errors.New("input and output ranges must have the same length of at least 2")
	ErrRangeOrder  = errors.New("input range must be strictly ascending")
)

// Lerp blends a toward b by t in [0,1].
type Lerp[T any] func(a, b T, t float64) T

// Number is exact at both ends: Number(a, b, 0) == a and Number(a, b, 1) == b.
func Number(a, b, t float64) float64 {
	return a*(1-t) + b*t
}

// Percent is a percentage value such as 12.5 for "12.5%".
type Percent float64

func (p Percent) String() string {
	return strconv.FormatFloat(float64(p), 'f', -1, 64) + "%"
}

func ParsePercent(s string) (Percent, error) {
	trimmed := strings.TrimSpace(s)
	if !strings.HasSuffix(trimmed, "%") {
		return 0, fmt.Errorf("parse percent %q: missing %% suffix", s)
	}
	v, err := strconv.ParseFloat(strings.TrimSuffix(trimmed, "%"), 64)
	if err != nil {
		return 0, fmt.Errorf("parse percent %q: %w", s, err)
	}
	return Percent(v), nil
}

// Percents parses an output range such as "0%", "100%".
func Percents(ss ...string) ([]Percent, error) {
	out := make([]Percent, len(ss))
	for i, s := range ss {
		p, err := ParsePercent(s)
		if err != nil {
			return nil, err
		}
		out[i] = p
	}
	return out, nil
}

func PercentLerp(a, b Percent, t float64) Percent {
	return Percent(Number(float64(a), float64(b), t))
}

// RGB blends colour tuples component-wise in sRGB space.
func RGB(a, b colorful.Color, t float64) colorful.Color {
	return colorful.Color{
		R: Number(a.R, b.R, t),
		G: Number(a.G, b.G, t),
		B: Number(a.B, b.B, t),
	}
}

// Lab blends in CIE L*a*b*, which keeps perceived lightness even across the blend.
func Lab(a, b colorful.Color, t float64) colorful.Color {
	switch t {
	case 0:
		return a
	case 1:
		return b
	}
	return a.BlendLab(b, t)
}

// Colors parses hex colours into an output range.
func Colors(hexes ...string) ([]colorful.Color, error) {
	out := make([]colorful.Color, len(hexes))
	for i, h := range hexes {
		c, err := colorful.Hex(h)
		if err != nil {
			return nil, fmt.Errorf("parse colour %q: %w", h, err)
		}
		out[i] = c
	}
	return out, nil
}

func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Interpolate builds a mapper from input onto output. Values outside the input
// range are clamped to its ends; nothing is extrapolated.
func Interpolate[T any](input []float64, output []T, lerp Lerp[T]) (func(float64) T, error) {
	if len(input) < 2 || len(input) != len(output) {
		return nil, fmt.Errorf("interpolate %d->%d: %w", len(input), len(output), ErrRangeLength)
	}
	for i := 1; i < len(input); i++ {
		if !(input[i] > input[i-1]) {
			return nil, fmt.Errorf("interpolate at index %d (%v after %v): %w", i, input[i], input[i-1], ErrRangeOrder)
		}
	}
	in := append([]float64(nil), input...)
	out := append([]T(nil), output...)
	last := len(in) - 1

	return func(x float64) T {
		switch {
		case math.IsNaN(x), x <= in[0]:
			return out[0]
		case x >= in[last]:
			return out[last]
		}
		seg := 1
		for seg < last && x > in[seg] {
			seg++
		}
		lo, hi := in[seg-1], in[seg]
		return lerp(out[seg-1], out[seg], (x-lo)/(hi-lo))
	}, nil
}

// Interpolated derives a signal that follows src through Interpolate.
func Interpolated[T comparable](
	rs *signal.System,
	src signal.Readable[float64],
	input []float64,
	output []T,
	lerp Lerp[T],
) (*signal.ReadonlySignal[T], error) {
	fn, err := Interpolate(input, output, lerp)
	if err != nil {
		return nil, err
	}
	return signal.Map(rs, src, fn), nil
}
