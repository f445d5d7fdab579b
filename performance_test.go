package stepform

import (
	"fmt"
	"log/slog"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// largeForm builds steps x fields required text fields with a length bound,
// so every update runs a realistic rule chain.
func largeForm(steps, fields int) *FormBuilder {
	b := NewForm()
	for s := 0; s < steps; s++ {
		b.Step(fmt.Sprintf("s%03d", s), fmt.Sprintf("Step %d", s))
		for f := 0; f < fields; f++ {
			b.Field(fmt.Sprintf("f%03d", f), Field{
				Type:       FieldText,
				Label:      fmt.Sprintf("Field %d", f),
				Required:   true,
				Validation: Validation{MaxLength: Int(64)},
			})
		}
	}
	return b
}

// TestUpdateFieldOverheadUnder1ms checks that a single UpdateField, which
// revalidates the field and its step and republishes every binding, stays
// well below a millisecond on a form of moderate size.
func TestUpdateFieldOverheadUnder1ms(t *testing.T) {
	t.Parallel()

	ctrl := largeForm(20, 20).MustNew(WithLogger(slog.New(slog.DiscardHandler)))

	// Subscribers make derived bindings recompute on every change.
	ctrl.IsFormValid().Subscribe(func(bool) {})
	ctrl.IsCurrentStepValid().Subscribe(func(bool) {})

	const N = 1000

	// Warm-up.
	ctrl.UpdateField("s000", "f000", "warm")

	start := time.Now()
	for i := 0; i < N; i++ {
		ctrl.UpdateField(fmt.Sprintf("s%03d", i%20), fmt.Sprintf("f%03d", i%20), "value")
	}
	avg := time.Since(start) / N

	if avg >= time.Millisecond {
		t.Fatalf("average UpdateField overhead too high: %v", avg)
	}
}

// TestMinimalMemoryFootprintUnder5MB compares HeapAlloc around the
// construction of a controller for a small form.
func TestMinimalMemoryFootprintUnder5MB(t *testing.T) {
	runtime.GC()
	var before runtime.MemStats
	runtime.ReadMemStats(&before)

	ctrl := largeForm(5, 10).MustNew(WithLogger(slog.New(slog.DiscardHandler)))

	runtime.GC()
	var after runtime.MemStats
	runtime.ReadMemStats(&after)

	require.Equal(t, 5, ctrl.TotalSteps().Get())

	var used uint64
	if after.HeapAlloc > before.HeapAlloc {
		used = after.HeapAlloc - before.HeapAlloc
	}
	if used > 5<<20 {
		t.Fatalf("controller retained %d bytes, want < 5MB", used)
	}
	runtime.KeepAlive(ctrl)
}

func BenchmarkUpdateField(b *testing.B) {
	ctrl := largeForm(10, 10).MustNew(WithLogger(slog.New(slog.DiscardHandler)))
	b.ReportAllocs()
	for i := 0; b.Loop(); i++ {
		ctrl.UpdateField("s005", "f005", i)
	}
}

func BenchmarkValidateForm(b *testing.B) {
	ctrl := largeForm(10, 10).MustNew(WithLogger(slog.New(slog.DiscardHandler)))
	b.ReportAllocs()
	for b.Loop() {
		ctrl.ValidateForm(true)
	}
}
