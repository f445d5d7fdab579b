package observable

import "slices"

// Source is anything a Derived value can depend on.
type Source interface {
	// Watch registers fn to run after every change, without an initial
	// call. The returned function removes the registration.
	Watch(fn func()) (unwatch func())

	// Version changes on every change, before watchers are told about it.
	Version() uint64
}

type subscription[T any] struct {
	id int
	fn func(T)
}

// listeners is a copy-on-write subscriber list. Removing a subscriber never
// affects a delivery that is already in progress.
type listeners[T any] struct {
	nextID int
	subs   []subscription[T]
}

func (l *listeners[T]) add(fn func(T)) int {
	id := l.nextID
	l.nextID++
	l.subs = append(slices.Clip(l.subs), subscription[T]{id: id, fn: fn})
	return id
}

func (l *listeners[T]) remove(id int) {
	l.subs = slices.DeleteFunc(slices.Clone(l.subs), func(s subscription[T]) bool {
		return s.id == id
	})
}

func (l *listeners[T]) snapshot() []subscription[T] {
	return l.subs
}

func (l *listeners[T]) len() int {
	return len(l.subs)
}

// Value holds a single value and notifies subscribers synchronously on Set.
//
// There is no diffing: every Set notifies, even when the value is unchanged.
type Value[T any] struct {
	sched    *Scheduler
	current  T
	version  uint64
	subs     listeners[T]
	watchers listeners[struct{}]
}

// New returns a Value holding initial. Values sharing a Scheduler defer
// notifications issued from inside each other's callbacks. A nil scheduler
// gives the value a private one.
func New[T any](sched *Scheduler, initial T) *Value[T] {
	if sched == nil {
		sched = NewScheduler()
	}
	return &Value[T]{sched: sched, current: initial}
}

// Get returns the latest value.
func (v *Value[T]) Get() T {
	return v.current
}

// Set stores val and notifies every subscriber registered at the time of
// the call, in subscription order. A panic in a subscriber propagates.
func (v *Value[T]) Set(val T) {
	v.current = val
	v.version++
	subs := v.subs.snapshot()
	watchers := v.watchers.snapshot()
	v.sched.dispatch(func() {
		for _, w := range watchers {
			w.fn(struct{}{})
		}
		for _, s := range subs {
			s.fn(val)
		}
	})
}

// Subscribe registers fn, calls it once with the current value and returns
// a function that removes the subscription. Calling it more than once is
// harmless.
func (v *Value[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	id := v.subs.add(fn)
	fn(v.current)
	return func() { v.subs.remove(id) }
}

// Watch implements Source.
func (v *Value[T]) Watch(fn func()) (unwatch func()) {
	id := v.watchers.add(func(struct{}) { fn() })
	return func() { v.watchers.remove(id) }
}

// Version implements Source.
func (v *Value[T]) Version() uint64 {
	return v.version
}

// Subscribers returns the number of active subscriptions.
func (v *Value[T]) Subscribers() int {
	return v.subs.len()
}
