package observable

// Derived is a read-only value computed from other sources.
//
// The value is computed on Get and memoized for as long as the versions of
// its dependencies stay the same, so a read never returns a result older
// than its inputs, even while change notifications are still queued. When
// a dependency change is delivered and the Derived has subscribers, it is
// recomputed and published. Several deliveries that find no new
// computation publish once. With an equality function, a recomputation
// that yields the same value is not published again either.
type Derived[T any] struct {
	compute func() T
	equal   func(a, b T) bool

	deps    []Source
	seen    []uint64
	cached  T
	valid   bool
	closed  bool
	version uint64

	last      T
	hasLast   bool
	published uint64

	subs     listeners[T]
	watchers listeners[struct{}]
	unwatch  []func()
}

// NewDerived returns a value computed by compute and invalidated by every
// change of deps. equal may be nil, in which case every recomputation is
// published.
func NewDerived[T any](compute func() T, equal func(a, b T) bool, deps ...Source) *Derived[T] {
	d := &Derived[T]{
		compute: compute,
		equal:   equal,
		deps:    deps,
		seen:    make([]uint64, len(deps)),
	}
	for _, dep := range deps {
		d.unwatch = append(d.unwatch, dep.Watch(d.invalidate))
	}
	return d
}

// Get returns the current value, computing it if a dependency changed since
// the last computation.
func (d *Derived[T]) Get() T {
	if !d.valid || d.stale() {
		d.cached = d.compute()
		d.valid = true
		d.version++
		for i, dep := range d.deps {
			d.seen[i] = dep.Version()
		}
	}
	return d.cached
}

// Version implements Source. It counts computations.
func (d *Derived[T]) Version() uint64 {
	d.Get()
	return d.version
}

// Subscribe registers fn, calls it once with the current value and returns
// a function that removes the subscription.
func (d *Derived[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	id := d.subs.add(fn)
	cur := d.Get()
	d.last, d.hasLast, d.published = cur, true, d.version
	fn(cur)
	return func() { d.subs.remove(id) }
}

// Watch implements Source.
func (d *Derived[T]) Watch(fn func()) (unwatch func()) {
	id := d.watchers.add(func(struct{}) { fn() })
	return func() { d.watchers.remove(id) }
}

// Close detaches the value from its dependencies. Get keeps returning the
// last computed value.
func (d *Derived[T]) Close() {
	for _, fn := range d.unwatch {
		fn()
	}
	d.unwatch = nil
	d.closed = true
}

func (d *Derived[T]) stale() bool {
	if d.closed {
		return false
	}
	for i, dep := range d.deps {
		if dep.Version() != d.seen[i] {
			return true
		}
	}
	return false
}

func (d *Derived[T]) invalidate() {
	if d.subs.len() == 0 && d.watchers.len() == 0 {
		return
	}

	next := d.Get()
	if d.hasLast && d.version == d.published {
		return
	}
	d.published = d.version
	if d.equal != nil && d.hasLast && d.equal(d.last, next) {
		return
	}
	d.last, d.hasLast = next, true

	for _, w := range d.watchers.snapshot() {
		w.fn(struct{}{})
	}
	for _, s := range d.subs.snapshot() {
		s.fn(next)
	}
}
