package frame

import (
	"context"
	"errors"
	"sync/atomic"
	"time"
)

var ErrLoopRunning = errors.New("frame loop already running")

// Loop is a real-time Clock for hosts without a display callback. A single
// goroutine, the one calling Run, executes posted events and frame callbacks,
// so engine code driven by a Loop never runs concurrently with itself.
// RequestFrame and CancelFrame must be called from that goroutine, typically
// from inside a posted event or a frame callback.
type Loop struct {
	interval time.Duration
	events   chan func()
	q        queue
	start    time.Time
	running  atomic.Bool
}

func NewLoop(fps int) *Loop {
	if fps <= 0 {
		fps = 60
	}
	return &Loop{
		interval: time.Second / time.Duration(fps),
		events:   make(chan func(), 256),
		q:        newQueue(),
	}
}

func (l *Loop) RequestFrame(cb Callback) Handle {
	return l.q.push(cb)
}

func (l *Loop) CancelFrame(h Handle) {
	l.q.cancel(h)
}

func (l *Loop) Interval() time.Duration {
	return l.interval
}

// Post hands fn to the loop goroutine. It blocks only while the event buffer
// is full and gives up when ctx is done.
func (l *Loop) Post(ctx context.Context, fn func()) error {
	select {
	case l.events <- fn:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run processes events and frames until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	if !l.running.CompareAndSwap(false, true) {
		return ErrLoopRunning
	}
	defer l.running.Store(false)

	l.start = time.Now()
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-l.events:
			fn()
		case tick := <-ticker.C:
			now := tick.Sub(l.start)
			for _, r := range l.q.take() {
				r.cb(now)
			}
		}
	}
}
