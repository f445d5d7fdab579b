package observable

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSubscribeInvokesImmediatelyWithCurrentValue(t *testing.T) {
	v := New(nil, 7)

	var got []int
	v.Subscribe(func(n int) { got = append(got, n) })

	require.Equal(t, []int{7}, got)
}

func TestSetNotifiesInSubscriptionOrder(t *testing.T) {
	v := New(nil, "a")

	var order []string
	v.Subscribe(func(s string) { order = append(order, "first:"+s) })
	v.Subscribe(func(s string) { order = append(order, "second:"+s) })
	order = nil

	v.Set("b")

	require.Equal(t, []string{"first:b", "second:b"}, order)
	require.Equal(t, "b", v.Get())
}

func TestSetWithoutDiffingNotifiesEveryTime(t *testing.T) {
	v := New(nil, 1)
	calls := 0
	v.Subscribe(func(int) { calls++ })

	v.Set(1)
	v.Set(1)

	require.Equal(t, 3, calls)
}

func TestUnsubscribeIsIndependentAndIdempotent(t *testing.T) {
	v := New(nil, 0)

	var a, b int
	unsubA := v.Subscribe(func(n int) { a = n })
	v.Subscribe(func(n int) { b = n })

	unsubA()
	unsubA()
	v.Set(5)

	require.Equal(t, 0, a)
	require.Equal(t, 5, b)
	require.Equal(t, 1, v.Subscribers())
}

func TestUnsubscribeDuringDeliveryDoesNotSkipOthers(t *testing.T) {
	v := New(nil, 0)

	var unsub func()
	var seen []string
	unsub = v.Subscribe(func(n int) {
		if n == 1 {
			unsub()
		}
		seen = append(seen, "a")
	})
	v.Subscribe(func(n int) {
		if n == 1 {
			seen = append(seen, "b")
		}
	})
	seen = nil

	v.Set(1)
	v.Set(2)

	require.Equal(t, []string{"a", "b"}, seen)
}

func TestPanickingSubscriberPropagatesAndResetsScheduler(t *testing.T) {
	sched := NewScheduler()
	v := New(sched, 0)
	v.Subscribe(func(n int) {
		if n == 1 {
			panic("boom")
		}
	})

	require.PanicsWithValue(t, "boom", func() { v.Set(1) })
	require.False(t, sched.Dispatching())
	require.Equal(t, 1, v.Get())

	require.NotPanics(t, func() { v.Set(2) })
}

func TestReentrantSetIsDeferredUntilDeliveryCompletes(t *testing.T) {
	sched := NewScheduler()
	src := New(sched, 0)
	mirror := New(sched, 0)

	var events []string
	src.Subscribe(func(n int) {
		if n > 0 {
			mirror.Set(n * 10)
			// The value is visible at once, the callbacks wait.
			events = append(events, "src-after-set", "mirror-now")
			require.Equal(t, n*10, mirror.Get())
			require.Equal(t, 1, sched.Pending())
		}
	})
	src.Subscribe(func(n int) {
		if n > 0 {
			events = append(events, "src-second")
		}
	})
	mirror.Subscribe(func(n int) {
		if n > 0 {
			events = append(events, "mirror-cb")
		}
	})

	src.Set(1)

	require.Equal(t, []string{"src-after-set", "mirror-now", "src-second", "mirror-cb"}, events)
	require.Equal(t, 0, sched.Pending())
}

func TestSelfWritingSubscriberTerminates(t *testing.T) {
	sched := NewScheduler()
	counter := New(sched, 0)

	calls := 0
	counter.Subscribe(func(n int) {
		calls++
		if n > 0 && n < 5 {
			counter.Set(n + 1)
		}
	})

	counter.Set(1)

	require.Equal(t, 5, counter.Get())
	require.Equal(t, 6, calls)
}

func TestBatchDeliversAfterTheLastWrite(t *testing.T) {
	sched := NewScheduler()
	a := New(sched, 0)
	b := New(sched, 0)

	var seen []string
	a.Subscribe(func(n int) { seen = append(seen, fmt.Sprintf("a=%d b=%d", n, b.Get())) })
	b.Subscribe(func(n int) { seen = append(seen, fmt.Sprintf("b=%d", n)) })
	seen = nil

	sched.Batch(func() {
		a.Set(1)
		b.Set(2)
		require.Empty(t, seen)
		require.Equal(t, 2, sched.Pending())
	})

	require.Equal(t, []string{"a=1 b=2", "b=2"}, seen)
	require.False(t, sched.Dispatching())
	require.Zero(t, sched.Pending())
}

func TestBatchInsideDeliveryRunsImmediately(t *testing.T) {
	sched := NewScheduler()
	v := New(sched, 0)

	ran := false
	v.Subscribe(func(n int) {
		if n == 1 {
			sched.Batch(func() { ran = true })
			require.True(t, ran)
		}
	})

	v.Set(1)
	require.True(t, ran)
}
