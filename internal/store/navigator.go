package store

import "github.com/petrijr/stepform/internal/observable"

// Navigator holds the index of the current step, bounded by the number of
// configured steps.
type Navigator struct {
	*observable.Value[int]

	config *ConfigStore
}

// NewNavigator returns a navigator positioned on the first step.
func NewNavigator(sched *observable.Scheduler, config *ConfigStore) *Navigator {
	return &Navigator{Value: observable.New(sched, 0), config: config}
}

// Next advances one step unless the current step is the last one or
// validate (when non-nil) returns false. It returns the resulting index.
func (n *Navigator) Next(validate func() bool) int {
	cur := n.Get()
	if cur >= n.config.TotalSteps()-1 {
		return cur
	}
	if validate != nil && !validate() {
		return cur
	}
	n.Set(cur + 1)
	return cur + 1
}

// Prev moves back one step, stopping at 0, and returns the resulting index.
func (n *Navigator) Prev() int {
	cur := n.Get()
	if cur <= 0 {
		return 0
	}
	n.Set(cur - 1)
	return cur - 1
}

// GoTo jumps to index i when 0 <= i < TotalSteps. The index is unchanged
// otherwise.
func (n *Navigator) GoTo(i int) bool {
	if i < 0 || i >= n.config.TotalSteps() {
		return false
	}
	n.Set(i)
	return true
}

// Clamp moves the index back onto the last step when it points past the
// end, e.g. after a step was removed.
func (n *Navigator) Clamp() {
	total := n.config.TotalSteps()
	if n.Get() >= total {
		n.Set(max(0, total-1))
	}
}

// IsFirst reports whether the current step is the first one.
func (n *Navigator) IsFirst() bool {
	return n.Get() == 0
}

// IsLast reports whether the current step is the last one.
func (n *Navigator) IsLast() bool {
	return n.Get() == n.config.TotalSteps()-1
}
