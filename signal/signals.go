package signal

import (
	mapset "github.com/deckarep/golang-set/v2"
)

// Readable is the read side of any signal. Subscribe returns a disposer that is
// safe to call more than once.
type Readable[T any] interface {
	Value() T
	Subscribe(fn func(T)) (stop func())
}

type notifier interface {
	notify()
}

// System owns one signal graph. It is not safe for concurrent use; every signal
// created against a System must be read and written from the same goroutine.
type System struct {
	batchDepth int
	pending    mapset.Set[notifier]
	queue      []notifier
}

func NewSystem() *System {
	return &System{
		pending: mapset.NewThreadUnsafeSet[notifier](),
	}
}

// Batch runs fn with notifications held back. Values written inside fn are
// visible immediately, but subscribers of each written signal run once, after
// the outermost Batch returns, in first-write order.
func (rs *System) Batch(fn func()) {
	rs.batchDepth++
	defer func() {
		rs.batchDepth--
		if rs.batchDepth == 0 {
			rs.flush()
		}
	}()
	fn()
}

func (rs *System) schedule(n notifier) {
	if rs.batchDepth == 0 {
		n.notify()
		return
	}
	if rs.pending.Contains(n) {
		return
	}
	rs.pending.Add(n)
	rs.queue = append(rs.queue, n)
}

func (rs *System) flush() {
	for len(rs.queue) > 0 {
		queue := rs.queue
		rs.queue = nil
		rs.pending.Clear()
		for _, n := range queue {
			n.notify()
		}
	}
}

type subscription[T any] struct {
	fn      func(T)
	stopped bool
}

type subscribers[T any] struct {
	list []*subscription[T]
}

func (s *subscribers[T]) add(fn func(T)) (stop func()) {
	sub := &subscription[T]{fn: fn}
	s.list = append(s.list, sub)
	return func() {
		if sub.stopped {
			return
		}
		sub.stopped = true
		// copy on write so an emit already ranging over the old slice is not shifted
		next := make([]*subscription[T], 0, len(s.list))
		for _, other := range s.list {
			if other != sub {
				next = append(next, other)
			}
		}
		s.list = next
	}
}

func (s *subscribers[T]) emit(v T) {
	for _, sub := range s.list {
		if !sub.stopped {
			sub.fn(v)
		}
	}
}

func (s *subscribers[T]) len() int {
	return len(s.list)
}

type WriteableSignal[T comparable] struct {
	rs   *System
	val  T
	ver  uint32
	subs subscribers[T]
}

func Signal[T comparable](rs *System, val T) *WriteableSignal[T] {
	return &WriteableSignal[T]{
		rs:  rs,
		val: val,
		ver: 1,
	}
}

func (s *WriteableSignal[T]) Value() T {
	return s.val
}

func (s *WriteableSignal[T]) SetValue(val T) {
	if s.val == val {
		return
	}
	s.val = val
	s.ver++
	s.rs.schedule(s)
}

func (s *WriteableSignal[T]) notify() {
	s.subs.emit(s.val)
}

func (s *WriteableSignal[T]) Subscribe(fn func(T)) (stop func()) {
	return s.subs.add(fn)
}

func (s *WriteableSignal[T]) SubscriberCount() int {
	return s.subs.len()
}

// Version increments on every accepted SetValue.
func (s *WriteableSignal[T]) Version() uint32 {
	return s.ver
}

// ReadOnly hides the setter so holders of the view cannot write back.
func (s *WriteableSignal[T]) ReadOnly() Readable[T] {
	return readonlyView[T]{s: s}
}

type readonlyView[T comparable] struct {
	s *WriteableSignal[T]
}

func (v readonlyView[T]) Value() T {
	return v.s.Value()
}

func (v readonlyView[T]) Subscribe(fn func(T)) (stop func()) {
	return v.s.Subscribe(fn)
}

type ReadonlySignal[O comparable] struct {
	rs       *System
	val      O
	ver      uint32
	eval     func() O
	subs     subscribers[O]
	stops    []func()
	disposed bool
}

func newReadonlySignal[O comparable](rs *System, eval func() O) *ReadonlySignal[O] {
	return &ReadonlySignal[O]{
		rs:   rs,
		val:  eval(),
		ver:  1,
		eval: eval,
	}
}

func (s *ReadonlySignal[O]) track(stop func()) {
	s.stops = append(s.stops, stop)
}

func (s *ReadonlySignal[O]) recompute() {
	if s.disposed {
		return
	}
	newVal := s.eval()
	if s.val == newVal {
		return
	}
	s.val = newVal
	s.ver++
	s.rs.schedule(s)
}

func (s *ReadonlySignal[O]) notify() {
	if s.disposed {
		return
	}
	s.subs.emit(s.val)
}

func (s *ReadonlySignal[O]) Value() O {
	return s.val
}

func (s *ReadonlySignal[O]) Subscribe(fn func(O)) (stop func()) {
	return s.subs.add(fn)
}

func (s *ReadonlySignal[O]) SubscriberCount() int {
	return s.subs.len()
}

func (s *ReadonlySignal[O]) Version() uint32 {
	return s.ver
}

// Dispose detaches the signal from its upstreams. The last value stays readable.
func (s *ReadonlySignal[O]) Dispose() {
	if s.disposed {
		return
	}
	s.disposed = true
	for _, stop := range s.stops {
		stop()
	}
	s.stops = nil
}

func Map[T0, O comparable](
	rs *System,
	arg0 Readable[T0],
	fn func(T0) O,
) *ReadonlySignal[O] {
	return Computed1(rs, arg0, fn)
}

func Computed1[T0, O comparable](
	rs *System,
	arg0 Readable[T0],
	fn func(T0) O,
) *ReadonlySignal[O] {
	s := newReadonlySignal(rs, func() O {
		return fn(arg0.Value())
	})
	s.track(arg0.Subscribe(func(T0) { s.recompute() }))
	return s
}

func Computed2[T0, T1, O comparable](
	rs *System,
	arg0 Readable[T0],
	arg1 Readable[T1],
	fn func(T0, T1) O,
) *ReadonlySignal[O] {
	s := newReadonlySignal(rs, func() O {
		return fn(
			arg0.Value(),
			arg1.Value(),
		)
	})
	s.track(arg0.Subscribe(func(T0) { s.recompute() }))
	s.track(arg1.Subscribe(func(T1) { s.recompute() }))
	return s
}

func Computed3[T0, T1, T2, O comparable](
	rs *System,
	arg0 Readable[T0],
	arg1 Readable[T1],
	arg2 Readable[T2],
	fn func(T0, T1, T2) O,
) *ReadonlySignal[O] {
	s := newReadonlySignal(rs, func() O {
		return fn(
			arg0.Value(),
			arg1.Value(),
			arg2.Value(),
		)
	})
	s.track(arg0.Subscribe(func(T0) { s.recompute() }))
	s.track(arg1.Subscribe(func(T1) { s.recompute() }))
	s.track(arg2.Subscribe(func(T2) { s.recompute() }))
	return s
}

// Effect1 runs fn on every change of arg0. It does not run on creation.
func Effect1[T0 any](
	arg0 Readable[T0],
	fn func(T0),
) (stop func()) {
	return arg0.Subscribe(fn)
}

func Effect2[T0, T1 any](
	arg0 Readable[T0],
	arg1 Readable[T1],
	fn func(T0, T1),
) (stop func()) {
	stop0 := arg0.Subscribe(func(v0 T0) {
		fn(v0, arg1.Value())
	})
	stop1 := arg1.Subscribe(func(v1 T1) {
		fn(arg0.Value(), v1)
	})
	return func() {
		stop0()
		stop1()
	}
}
