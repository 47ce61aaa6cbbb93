// Package behavior holds the visual consumers of the motion root signals.
// Each consumer binds one host Element to signals derived from the mounted
// provider and writes a Style to it whenever the derived values change.
package behavior

import (
	"fmt"

	"github.com/delaneyj/scrollsignals/motion"
)

// Rect is an axis-aligned box in document coordinates.
type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Center() (x, y float64) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Expand grows the rect by margin on every side. Negative margins shrink it.
func (r Rect) Expand(margin float64) Rect {
	return Rect{
		X: r.X - margin,
		Y: r.Y - margin,
		W: r.W + 2*margin,
		H: r.H + 2*margin,
	}
}

// Intersects reports whether the two rects overlap or touch.
func (r Rect) Intersects(o Rect) bool {
	return r.X <= o.X+o.W && o.X <= r.X+r.W &&
		r.Y <= o.Y+o.H && o.Y <= r.Y+r.H
}

// Element is a host-rendered node a consumer can move.
type Element interface {
	Bounds() Rect
	Apply(Style)
}

type PointerKind uint8

const (
	PointerMove PointerKind = iota
	PointerLeave
)

type PointerEvent struct {
	Kind PointerKind
	X, Y float64
}

// PointerSource is implemented by elements that deliver their own pointer events.
type PointerSource interface {
	AddPointerListener(fn func(PointerEvent)) (remove func())
}

// Style is the transform state written to an element.
type Style struct {
	TranslateX float64
	TranslateY float64
	Scale      float64
	ScaleX     float64
	ScaleY     float64
	Rotate     float64
	SkewY      float64
	Opacity    float64
	Origin     string
	Background string
}

// Identity is the untransformed, fully opaque style.
func Identity() Style {
	return Style{
		Scale:   1,
		ScaleX:  1,
		ScaleY:  1,
		Opacity: 1,
	}
}

// CSS renders s as inline CSS declarations.
func (s Style) CSS() string {
	return StyleCSS(s)
}

// Binding ties one element to the derived signals of one consumer. Dispose
// unsubscribes everything it owns; skipping it leaks subscribers on the roots.
type Binding struct {
	kind     string
	el       Element
	style    Style
	applied  int
	stops    []func()
	untrack  func()
	disposed bool
}

func newBinding(p *motion.Provider, kind string, el Element) (*Binding, error) {
	if el == nil {
		return nil, fmt.Errorf("%s: nil element", kind)
	}
	b := &Binding{
		kind: kind,
		el:   el,
	}
	untrack, err := p.Track(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", kind, err)
	}
	b.untrack = untrack
	return b, nil
}

func (b *Binding) own(stop func()) {
	b.stops = append(b.stops, stop)
}

func (b *Binding) apply(s Style) {
	if b.disposed {
		return
	}
	if b.applied > 0 && s == b.style {
		return
	}
	b.style = s
	b.applied++
	b.el.Apply(s)
}

func (b *Binding) Kind() string {
	return b.kind
}

func (b *Binding) Element() Element {
	return b.el
}

// Style is the last style written to the element.
func (b *Binding) Style() Style {
	return b.style
}

// Applied counts style writes, which is how often the host re-rendered.
func (b *Binding) Applied() int {
	return b.applied
}

func (b *Binding) Disposed() bool {
	return b.disposed
}

func (b *Binding) Dispose() {
	if b.disposed {
		return
	}
	b.disposed = true
	for i := len(b.stops) - 1; i >= 0; i-- {
		b.stops[i]()
	}
	b.stops = nil
	b.untrack()
}
