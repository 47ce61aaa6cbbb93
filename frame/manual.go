package frame

import "time"

// ManualClock is a headless Clock advanced explicitly by the caller.
type ManualClock struct {
	now    time.Duration
	frames int
	q      queue
}

func NewManualClock() *ManualClock {
	return &ManualClock{q: newQueue()}
}

func (c *ManualClock) RequestFrame(cb Callback) Handle {
	return c.q.push(cb)
}

func (c *ManualClock) CancelFrame(h Handle) {
	c.q.cancel(h)
}

func (c *ManualClock) Now() time.Duration {
	return c.now
}

// Pending is the number of callbacks waiting for the next Step.
func (c *ManualClock) Pending() int {
	return c.q.len()
}

// Frames counts Steps that ran at least one callback.
func (c *ManualClock) Frames() int {
	return c.frames
}

// Step advances time by dt and runs the callbacks requested before the call.
// It returns how many callbacks ran.
func (c *ManualClock) Step(dt time.Duration) int {
	c.now += dt
	batch := c.q.take()
	if len(batch) > 0 {
		c.frames++
	}
	for _, r := range batch {
		r.cb(c.now)
	}
	return len(batch)
}

// Run steps n frames of dt each and returns the total callbacks run.
func (c *ManualClock) Run(n int, dt time.Duration) int {
	total := 0
	for range n {
		total += c.Step(dt)
	}
	return total
}
