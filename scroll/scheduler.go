package scroll

import (
	"time"

	"github.com/delaneyj/scrollsignals/frame"
)

// FlushFunc receives the last offset recorded in a frame window.
type FlushFunc func(offset float64, now time.Duration)

// Scheduler coalesces bursts of Notify calls into at most one flush per frame.
// Within a frame the last offset wins.
type Scheduler struct {
	clock   frame.Clock
	flush   FlushFunc
	pending bool
	handle  frame.Handle
	offset  float64
	closed  bool
	flushes int
}

func NewScheduler(clock frame.Clock, flush FlushFunc) *Scheduler {
	return &Scheduler{
		clock: clock,
		flush: flush,
	}
}

// Notify records offset and, if no frame is pending, requests one.
func (s *Scheduler) Notify(offset float64) {
	if s.closed {
		return
	}
	s.offset = offset
	if s.pending {
		return
	}
	s.pending = true
	s.handle = s.clock.RequestFrame(s.run)
}

func (s *Scheduler) run(now time.Duration) {
	if s.closed {
		return
	}
	s.pending = false
	s.handle = 0
	s.flushes++
	s.flush(s.offset, now)
}

func (s *Scheduler) Pending() bool {
	return s.pending
}

// Flushes counts flush callbacks run so far.
func (s *Scheduler) Flushes() int {
	return s.flushes
}

// Close cancels any requested frame. Later Notify calls are ignored.
func (s *Scheduler) Close() {
	if s.closed {
		return
	}
	s.closed = true
	if s.pending {
		s.clock.CancelFrame(s.handle)
	}
	s.pending = false
	s.handle = 0
}
