package observable

// Scheduler orders change notifications for a group of values.
//
// A notification requested while another one is being delivered (that is,
// from inside a subscriber callback) is queued and delivered once the
// current delivery returns. Values themselves are always updated
// immediately; only the callbacks are deferred. This keeps a subscriber
// that writes back into the graph from recursing.
//
// Batch holds notifications back for a whole group of writes, so
// subscribers only see the state after the last one.
//
// A Scheduler is not safe for concurrent use.
type Scheduler struct {
	dispatching bool
	queue       []func()
}

// NewScheduler returns an idle scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Dispatching reports whether a notification is currently being delivered.
func (s *Scheduler) Dispatching() bool {
	return s.dispatching
}

// Pending returns the number of queued notifications.
func (s *Scheduler) Pending() int {
	return len(s.queue)
}

// Batch runs fn and delivers the notifications raised by its writes, in
// order, once fn returns. Called during a delivery, fn runs immediately and
// its notifications join the current queue.
func (s *Scheduler) Batch(fn func()) {
	if s.dispatching {
		fn()
		return
	}
	s.dispatch(fn)
}

func (s *Scheduler) dispatch(notify func()) {
	if s.dispatching {
		s.queue = append(s.queue, notify)
		return
	}

	s.dispatching = true
	defer func() {
		// A panicking callback aborts the whole flush.
		s.dispatching = false
		s.queue = nil
	}()

	notify()
	for len(s.queue) > 0 {
		next := s.queue[0]
		s.queue = s.queue[1:]
		next()
	}
}
