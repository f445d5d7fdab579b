package observable

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func eq[T comparable](a, b T) bool { return a == b }

func TestDerivedComputesLazilyAndMemoizes(t *testing.T) {
	src := New(nil, 2)
	computations := 0
	double := NewDerived(func() int {
		computations++
		return src.Get() * 2
	}, nil, src)

	require.Equal(t, 0, computations)
	require.Equal(t, 4, double.Get())
	require.Equal(t, 4, double.Get())
	require.Equal(t, 1, computations)

	src.Set(5)
	require.Equal(t, 1, computations, "no subscribers: recompute waits for the next read")
	require.Equal(t, 10, double.Get())
	require.Equal(t, 2, computations)
}

func TestDerivedPublishesToSubscribers(t *testing.T) {
	src := New(nil, 1)
	neg := NewDerived(func() int { return -src.Get() }, nil, src)

	var got []int
	neg.Subscribe(func(n int) { got = append(got, n) })
	src.Set(3)

	require.Equal(t, []int{-1, -3}, got)
}

func TestDerivedDiamondPublishesConsistentValuesOnce(t *testing.T) {
	sched := NewScheduler()
	index := New(sched, 0)
	steps := New(sched, []string{"a", "b"})
	total := NewDerived(func() int { return len(steps.Get()) }, eq[int], steps)
	isLast := NewDerived(func() bool {
		return index.Get() == total.Get()-1
	}, eq[bool], index, total)

	var got []bool
	isLast.Subscribe(func(b bool) { got = append(got, b) })

	index.Set(1)
	// Appending a step changes total; isLast flips back to false exactly once.
	steps.Set([]string{"a", "b", "c"})
	// Same total, no republish.
	steps.Set([]string{"x", "y", "z"})
	index.Set(2)

	require.Equal(t, []bool{false, true, false, true}, got)
}

func TestDerivedChainsThroughDerived(t *testing.T) {
	src := New(nil, 1)
	plusOne := NewDerived(func() int { return src.Get() + 1 }, nil, src)
	times := NewDerived(func() int { return plusOne.Get() * 10 }, nil, plusOne)

	var got []int
	times.Subscribe(func(n int) { got = append(got, n) })
	src.Set(4)

	require.Equal(t, []int{20, 50}, got)
}

func TestDerivedCloseStopsTracking(t *testing.T) {
	src := New(nil, 1)
	d := NewDerived(func() int { return src.Get() }, nil, src)
	calls := 0
	d.Subscribe(func(int) { calls++ })

	d.Close()
	src.Set(9)

	require.Equal(t, 1, calls)
	require.Equal(t, 1, d.Get())
}

func TestDerivedIsFreshWhileNotificationsAreQueued(t *testing.T) {
	sched := NewScheduler()
	src := New(sched, 1)
	double := NewDerived(func() int { return src.Get() * 2 }, eq[int], src)
	double.Subscribe(func(int) {})

	sched.Batch(func() {
		src.Set(4)
		require.Equal(t, 8, double.Get())
	})
	require.Equal(t, 8, double.Get())
}

func TestDerivedInBatchPublishesOnlyTheFinalState(t *testing.T) {
	sched := NewScheduler()
	index := New(sched, 2)
	steps := New(sched, []string{"a", "b", "c"})
	isLast := NewDerived(func() bool {
		return index.Get() == len(steps.Get())-1
	}, eq[bool], index, steps)
	current := NewDerived(func() string {
		if i := index.Get(); i < len(steps.Get()) {
			return steps.Get()[i]
		}
		return ""
	}, nil, index, steps)

	var last []bool
	var cur []string
	isLast.Subscribe(func(b bool) { last = append(last, b) })
	current.Subscribe(func(s string) { cur = append(cur, s) })

	// Dropping the last step and clamping the index keeps isLast true.
	sched.Batch(func() {
		steps.Set([]string{"a", "b"})
		index.Set(1)
	})
	require.Equal(t, []bool{true}, last)
	require.Equal(t, []string{"c", "b"}, cur)

	// Without an equality func, two queued deliveries still publish once.
	sched.Batch(func() {
		steps.Set([]string{"x", "y", "z"})
		index.Set(0)
	})
	require.Equal(t, []string{"c", "b", "x"}, cur)
	require.Equal(t, []bool{true, false}, last)
}
