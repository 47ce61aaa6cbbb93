// Package frame abstracts the host's "run before next repaint" primitive.
package frame

import (
	"time"
)

// Callback receives the frame timestamp, measured from the clock's origin.
type Callback func(now time.Duration)

// Handle identifies a requested frame so it can be cancelled. The zero Handle
// is never issued.
type Handle uint64

type Clock interface {
	RequestFrame(cb Callback) Handle
	CancelFrame(h Handle)
}

type request struct {
	handle Handle
	cb     Callback
}

// queue keeps requests in order with O(1) cancellation by handle.
type queue struct {
	last     Handle
	order    []Handle
	requests map[Handle]Callback
}

func newQueue() queue {
	return queue{requests: map[Handle]Callback{}}
}

func (q *queue) push(cb Callback) Handle {
	q.last++
	q.order = append(q.order, q.last)
	q.requests[q.last] = cb
	return q.last
}

func (q *queue) cancel(h Handle) {
	delete(q.requests, h)
}

// take drains every live request queued so far. Requests pushed while the
// caller runs the returned batch land in the next batch.
func (q *queue) take() []request {
	order := q.order
	q.order = nil
	batch := make([]request, 0, len(order))
	for _, h := range order {
		cb, ok := q.requests[h]
		if !ok {
			continue
		}
		delete(q.requests, h)
		batch = append(batch, request{handle: h, cb: cb})
	}
	return batch
}

func (q *queue) len() int {
	return len(q.requests)
}
