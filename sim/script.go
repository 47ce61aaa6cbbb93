package sim

import (
	"fmt"
	"sort"
	"time"

	"github.com/delaneyj/scrollsignals/frame"
	"github.com/delaneyj/scrollsignals/interp"
)

// Keyframe pins the scroll offset at a point in time.
type Keyframe struct {
	At     time.Duration
	Offset float64
}

// Script is a piecewise-linear scroll path.
type Script struct {
	keys []Keyframe
	at   func(float64) float64
}

func NewScript(keys ...Keyframe) (*Script, error) {
	if len(keys) == 0 {
		return nil, fmt.Errorf("script: no keyframes")
	}
	sorted := append([]Keyframe(nil), keys...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].At < sorted[j].At })
	if len(sorted) == 1 {
		sorted = append(sorted, Keyframe{At: sorted[0].At + time.Nanosecond, Offset: sorted[0].Offset})
	}

	in := make([]float64, len(sorted))
	out := make([]float64, len(sorted))
	for i, k := range sorted {
		in[i] = float64(k.At)
		out[i] = k.Offset
	}
	at, err := interp.Interpolate(in, out, interp.Number)
	if err != nil {
		return nil, fmt.Errorf("script: %w", err)
	}
	return &Script{keys: sorted, at: at}, nil
}

// Linear scrolls from one offset to another over d.
func Linear(from, to float64, d time.Duration) (*Script, error) {
	return NewScript(Keyframe{At: 0, Offset: from}, Keyframe{At: d, Offset: to})
}

func (s *Script) OffsetAt(t time.Duration) float64 {
	return s.at(float64(t))
}

func (s *Script) Duration() time.Duration {
	return s.keys[len(s.keys)-1].At
}

// FrameInfo is reported after each played frame.
type FrameInfo struct {
	Index  int
	Now    time.Duration
	Offset float64
	Events int
}

type Player struct {
	Doc   *Document
	Clock *frame.ManualClock
	// FrameStep is the wall time between frames.
	FrameStep time.Duration
	// EventsPerFrame is how many scroll events fire between frames; browsers
	// often deliver several.
	EventsPerFrame int
}

// Play drives the script from the clock's current time until the script ends
// plus settle, calling onFrame after every frame.
func (p *Player) Play(s *Script, settle time.Duration, onFrame func(FrameInfo)) int {
	step := p.FrameStep
	if step <= 0 {
		step = time.Second / 60
	}
	events := max(1, p.EventsPerFrame)

	start := p.Clock.Now()
	end := start + s.Duration() + settle
	frames := 0
	for p.Clock.Now() < end {
		t := p.Clock.Now() + step - start
		prev := p.Clock.Now() - start
		for e := 1; e <= events; e++ {
			sub := prev + (t-prev)*time.Duration(e)/time.Duration(events)
			target := s.OffsetAt(sub)
			if target != p.Doc.ScrollOffset() {
				p.Doc.ScrollTo(target)
			}
		}
		p.Clock.Step(step)
		if onFrame != nil {
			onFrame(FrameInfo{
				Index:  frames,
				Now:    p.Clock.Now(),
				Offset: p.Doc.ScrollOffset(),
				Events: p.Doc.Events(),
			})
		}
		frames++
	}
	return frames
}
