// Package spring smooths a moving target with a damped second-order system,
//
//	a = (stiffness*(target-x) - damping*v) / mass
//
// solved in closed form for each frame step, treating the target as constant
// over the step.
package spring

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/charmbracelet/harmonica"
	"github.com/delaneyj/scrollsignals/frame"
	"github.com/delaneyj/scrollsignals/signal"
)

const (
	DefaultRestDelta = 0.01
	DefaultRestSpeed = 0.01
	DefaultMaxStep   = 64 * time.Millisecond
	defaultFirstStep = time.Second / 60
)

var ErrInvalidConfig = errors.New("invalid spring config")

type Config struct {
	Stiffness float64
	Damping   float64
	Mass      float64
	// RestDelta and RestSpeed are the settle thresholds for |target-x| and |v|.
	RestDelta float64
	RestSpeed float64
	// MaxStep caps the integration step after long gaps between frames.
	MaxStep time.Duration
}

func (c Config) WithDefaults() Config {
	if c.RestDelta <= 0 {
		c.RestDelta = DefaultRestDelta
	}
	if c.RestSpeed <= 0 {
		c.RestSpeed = DefaultRestSpeed
	}
	if c.MaxStep <= 0 {
		c.MaxStep = DefaultMaxStep
	}
	return c
}

func (c Config) Validate() error {
	switch {
	case !(c.Stiffness > 0):
		return fmt.Errorf("%w: stiffness %v must be > 0", ErrInvalidConfig, c.Stiffness)
	case !(c.Damping >= 0):
		return fmt.Errorf("%w: damping %v must be >= 0", ErrInvalidConfig, c.Damping)
	case !(c.Mass > 0):
		return fmt.Errorf("%w: mass %v must be > 0", ErrInvalidConfig, c.Mass)
	}
	return nil
}

// AngularFrequency is sqrt(k/m).
func (c Config) AngularFrequency() float64 {
	return math.Sqrt(c.Stiffness / c.Mass)
}

// DampingRatio is c/(2*sqrt(k*m)); 1 is critical, above 1 over-damped.
func (c Config) DampingRatio() float64 {
	return c.Damping / (2 * math.Sqrt(c.Stiffness*c.Mass))
}

// Integrator is the pure stepper behind Spring. The zero value is not usable;
// build one with NewIntegrator.
type Integrator struct {
	cfg     Config
	omega   float64
	zeta    float64
	pos     float64
	vel     float64
	coefDt  time.Duration
	coef    harmonica.Spring
	settled bool
}

func NewIntegrator(cfg Config, initial float64) (*Integrator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.WithDefaults()
	return &Integrator{
		cfg:     cfg,
		omega:   cfg.AngularFrequency(),
		zeta:    cfg.DampingRatio(),
		pos:     initial,
		settled: true,
	}, nil
}

func (in *Integrator) Config() Config {
	return in.cfg
}

func (in *Integrator) Position() float64 {
	return in.pos
}

func (in *Integrator) Velocity() float64 {
	return in.vel
}

func (in *Integrator) Settled() bool {
	return in.settled
}

// Reset places the integrator at rest on pos.
func (in *Integrator) Reset(pos float64) {
	in.pos = pos
	in.vel = 0
	in.settled = true
}

// Step advances by dt toward target. Non-positive steps leave the state alone.
func (in *Integrator) Step(target float64, dt time.Duration) (pos float64, settled bool) {
	if dt <= 0 {
		return in.pos, in.settled
	}
	if dt > in.cfg.MaxStep {
		dt = in.cfg.MaxStep
	}
	if dt != in.coefDt {
		in.coef = harmonica.NewSpring(dt.Seconds(), in.omega, in.zeta)
		in.coefDt = dt
	}
	in.pos, in.vel = in.coef.Update(in.pos, in.vel, target)

	if math.Abs(target-in.pos) < in.cfg.RestDelta && math.Abs(in.vel) < in.cfg.RestSpeed {
		in.pos = target
		in.vel = 0
		in.settled = true
	} else {
		in.settled = false
	}
	return in.pos, in.settled
}

// Spring is a signal that trails its target, stepping once per frame while it
// is in motion and requesting no frames once settled.
type Spring struct {
	rs     *signal.System
	clock  frame.Clock
	target signal.Readable[float64]
	in     *Integrator
	out    *signal.WriteableSignal[float64]

	stopTarget func()
	handle     frame.Handle
	lastFrame  time.Duration
	running    bool
	disposed   bool
}

// Follow builds a Spring at rest on target's current value.
func Follow(rs *signal.System, clock frame.Clock, target signal.Readable[float64], cfg Config) (*Spring, error) {
	initial := target.Value()
	in, err := NewIntegrator(cfg, initial)
	if err != nil {
		return nil, err
	}
	s := &Spring{
		rs:     rs,
		clock:  clock,
		target: target,
		in:     in,
		out:    signal.Signal(rs, initial),
	}
	s.stopTarget = target.Subscribe(func(float64) {
		s.wake()
	})
	return s, nil
}

func (s *Spring) Value() float64 {
	return s.out.Value()
}

func (s *Spring) Subscribe(fn func(float64)) (stop func()) {
	return s.out.Subscribe(fn)
}

func (s *Spring) Velocity() float64 {
	return s.in.Velocity()
}

func (s *Spring) Settled() bool {
	return !s.running && s.in.Settled()
}

// Jump moves the spring to v at rest without animating.
func (s *Spring) Jump(v float64) {
	if s.disposed {
		return
	}
	s.stop()
	s.in.Reset(v)
	s.out.SetValue(v)
}

// Dispose detaches from the target and cancels any requested frame.
func (s *Spring) Dispose() {
	if s.disposed {
		return
	}
	s.disposed = true
	s.stopTarget()
	s.stop()
}

func (s *Spring) stop() {
	if s.running {
		s.clock.CancelFrame(s.handle)
	}
	s.running = false
	s.handle = 0
}

func (s *Spring) wake() {
	if s.disposed || s.running {
		return
	}
	s.running = true
	s.lastFrame = -1
	s.handle = s.clock.RequestFrame(s.tick)
}

func (s *Spring) tick(now time.Duration) {
	if s.disposed {
		return
	}
	dt := defaultFirstStep
	if s.lastFrame >= 0 {
		dt = now - s.lastFrame
	}
	s.lastFrame = now

	pos, settled := s.in.Step(s.target.Value(), dt)
	s.out.SetValue(pos)

	if settled && s.in.Position() == s.target.Value() {
		s.running = false
		s.handle = 0
		return
	}
	s.handle = s.clock.RequestFrame(s.tick)
}
