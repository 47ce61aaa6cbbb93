// Package scroll turns raw viewport scroll events into frame-paced root
// signals: offset, velocity and normalised progress.
package scroll

import (
	"time"

	"github.com/delaneyj/scrollsignals/frame"
	"github.com/delaneyj/scrollsignals/interp"
	"github.com/delaneyj/scrollsignals/signal"
)

const DefaultVelocityScale = 10

// Source is the host viewport.
type Source interface {
	ScrollOffset() float64
	// MaxScrollable is content height minus viewport height. It may be zero or
	// negative for short pages.
	MaxScrollable() float64
	ViewportSize() (width, height float64)
	AddScrollListener(fn func(offset float64)) (remove func())
}

type Options struct {
	// VelocityScale multiplies the raw offset-per-millisecond velocity.
	VelocityScale float64
}

// Sampler is the only writer of the root signals it exposes.
type Sampler struct {
	rs     *signal.System
	source Source
	sched  *Scheduler
	opts   Options

	position *signal.WriteableSignal[float64]
	velocity *signal.WriteableSignal[float64]
	progress *signal.WriteableSignal[float64]

	removeListener func()
	seeded         bool
	lastTime       time.Duration
	lastOffset     float64
	closed         bool
}

// NewSampler attaches to source and requests a first frame that records the
// starting offset and time.
func NewSampler(rs *signal.System, source Source, clock frame.Clock, opts Options) *Sampler {
	if opts.VelocityScale == 0 {
		opts.VelocityScale = DefaultVelocityScale
	}
	offset := source.ScrollOffset()
	s := &Sampler{
		rs:       rs,
		source:   source,
		opts:     opts,
		position: signal.Signal(rs, offset),
		velocity: signal.Signal(rs, 0.0),
		progress: signal.Signal(rs, Progress(offset, source.MaxScrollable())),
	}
	s.sched = NewScheduler(clock, s.flush)
	s.removeListener = source.AddScrollListener(s.sched.Notify)
	s.sched.Notify(offset)
	return s
}

// Progress is offset over maxScrollable clamped into [0,1]; 0 when nothing can scroll.
func Progress(offset, maxScrollable float64) float64 {
	if !(maxScrollable > 0) {
		return 0
	}
	return interp.Clamp(offset/maxScrollable, 0, 1)
}

func (s *Sampler) flush(offset float64, now time.Duration) {
	if !s.seeded {
		s.seeded = true
		s.lastTime = now
		s.lastOffset = offset
		s.rs.Batch(func() {
			s.position.SetValue(offset)
			s.progress.SetValue(Progress(offset, s.source.MaxScrollable()))
		})
		return
	}

	dt := now - s.lastTime
	s.rs.Batch(func() {
		// a zero or negative gap keeps the previous velocity
		if dt > 0 {
			ms := float64(dt) / float64(time.Millisecond)
			s.velocity.SetValue((offset - s.lastOffset) / ms * s.opts.VelocityScale)
		}
		s.position.SetValue(offset)
		s.progress.SetValue(Progress(offset, s.source.MaxScrollable()))
	})
	s.lastTime = now
	s.lastOffset = offset
}

// Notify feeds an offset as if the host fired a scroll event.
func (s *Sampler) Notify(offset float64) {
	s.sched.Notify(offset)
}

func (s *Sampler) Position() signal.Readable[float64] {
	return s.position.ReadOnly()
}

func (s *Sampler) Velocity() signal.Readable[float64] {
	return s.velocity.ReadOnly()
}

func (s *Sampler) Progress() signal.Readable[float64] {
	return s.progress.ReadOnly()
}

func (s *Sampler) Source() Source {
	return s.source
}

func (s *Sampler) Flushes() int {
	return s.sched.Flushes()
}

func (s *Sampler) Pending() bool {
	return s.sched.Pending()
}

// Close removes the scroll listener and cancels any requested frame.
func (s *Sampler) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.removeListener()
	s.sched.Close()
}
