package api

import (
	"context"
	"log/slog"
	"sync"
	"testing"
)

//
// Helpers
//

// testObserver is a simple Observer implementation used to verify fan-out behavior.
type testObserver struct {
	fieldUpdates int
	validations  int
	navigations  int
	submits      int
	configs      int

	lastField struct {
		StepID  string
		FieldID string
	}
	lastValidation struct {
		StepID string
		Valid  bool
	}
	lastNavigation struct{ From, To int }
	lastSubmit     SubmitResult
	lastTotal      int
}

func (o *testObserver) OnFieldUpdated(stepID, fieldID string) {
	o.fieldUpdates++
	o.lastField.StepID, o.lastField.FieldID = stepID, fieldID
}

func (o *testObserver) OnStepValidated(stepID string, valid bool) {
	o.validations++
	o.lastValidation.StepID, o.lastValidation.Valid = stepID, valid
}

func (o *testObserver) OnNavigated(from, to int) {
	o.navigations++
	o.lastNavigation.From, o.lastNavigation.To = from, to
}

func (o *testObserver) OnSubmitted(res SubmitResult) {
	o.submits++
	o.lastSubmit = res
}

func (o *testObserver) OnConfigChanged(totalSteps int) {
	o.configs++
	o.lastTotal = totalSteps
}

// recordingHandler is a minimal slog.Handler that just records log records.
type recordingHandler struct {
	mu      sync.Mutex
	records []slog.Record
}

func (h *recordingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return true
}

func (h *recordingHandler) Handle(ctx context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	cpy := slog.Record{
		Time:    r.Time,
		Level:   r.Level,
		Message: r.Message,
	}
	r.Attrs(func(a slog.Attr) bool {
		cpy.AddAttrs(a)
		return true
	})
	h.records = append(h.records, cpy)
	return nil
}

func (h *recordingHandler) WithAttrs(attrs []slog.Attr) slog.Handler { return h }

func (h *recordingHandler) WithGroup(name string) slog.Handler { return h }

func attrsToMap(r slog.Record) map[string]any {
	m := make(map[string]any)
	r.Attrs(func(a slog.Attr) bool {
		m[a.Key] = a.Value.Any()
		return true
	})
	return m
}

//
// NoopObserver
//

func TestNoopObserver_DoesNotPanic(t *testing.T) {
	var o Observer = NoopObserver{}

	o.OnFieldUpdated("s", "f")
	o.OnStepValidated("s", true)
	o.OnNavigated(0, 1)
	o.OnSubmitted(SubmitResult{})
	o.OnConfigChanged(3)
}

//
// CompositeObserver
//

func TestNewCompositeObserver_EmptyReturnsNoop(t *testing.T) {
	o := NewCompositeObserver()
	if _, ok := o.(NoopObserver); !ok {
		t.Fatalf("expected NewCompositeObserver() to return NoopObserver, got %T", o)
	}
}

func TestNewCompositeObserver_SingleReturnsThatObserver(t *testing.T) {
	single := &testObserver{}
	o := NewCompositeObserver(single, nil)

	if got, ok := o.(*testObserver); !ok || got != single {
		t.Fatalf("expected the single non-nil observer to be returned, got %T (%p)", o, o)
	}
}

func TestCompositeObserver_ForwardsAllEvents(t *testing.T) {
	o1 := &testObserver{}
	o2 := &testObserver{}
	co, ok := NewCompositeObserver(o1, o2).(*CompositeObserver)
	if !ok {
		t.Fatalf("expected *CompositeObserver")
	}

	res := SubmitResult{Success: true, Data: FormData{"s1": {"a": 1}}}
	co.OnFieldUpdated("s1", "a")
	co.OnStepValidated("s1", false)
	co.OnNavigated(0, 2)
	co.OnSubmitted(res)
	co.OnConfigChanged(4)

	for i, o := range []*testObserver{o1, o2} {
		if o.fieldUpdates != 1 || o.validations != 1 || o.navigations != 1 || o.submits != 1 || o.configs != 1 {
			t.Fatalf("observer %d did not receive all calls: %+v", i+1, o)
		}
		if o.lastField.StepID != "s1" || o.lastField.FieldID != "a" {
			t.Fatalf("observer %d field mismatch: %+v", i+1, o.lastField)
		}
		if o.lastValidation.StepID != "s1" || o.lastValidation.Valid {
			t.Fatalf("observer %d validation mismatch: %+v", i+1, o.lastValidation)
		}
		if o.lastNavigation.From != 0 || o.lastNavigation.To != 2 {
			t.Fatalf("observer %d navigation mismatch: %+v", i+1, o.lastNavigation)
		}
		if !o.lastSubmit.Success || o.lastTotal != 4 {
			t.Fatalf("observer %d submit/config mismatch", i+1)
		}
	}
}

//
// LoggingObserver
//

func TestNewLoggingObserver_NilLoggerUsesDefault(t *testing.T) {
	o := NewLoggingObserver(nil)
	lo, ok := o.(*LoggingObserver)
	if !ok {
		t.Fatalf("expected *LoggingObserver, got %T", o)
	}
	if lo.Logger == nil {
		t.Fatalf("expected non-nil Logger when created with nil")
	}
}

func TestLoggingObserver_OnFieldUpdated_EmitsDebugLog(t *testing.T) {
	h := &recordingHandler{}
	o := NewLoggingObserver(slog.New(h))

	o.OnFieldUpdated("contact", "email")

	if len(h.records) != 1 {
		t.Fatalf("expected 1 log record, got %d", len(h.records))
	}
	rec := h.records[0]
	if rec.Level != slog.LevelDebug {
		t.Fatalf("expected LevelDebug, got %v", rec.Level)
	}
	if rec.Message != string(EventFieldUpdated) {
		t.Fatalf("expected message %s, got %q", EventFieldUpdated, rec.Message)
	}
	attrs := attrsToMap(rec)
	if attrs["step"] != "contact" || attrs["field"] != "email" {
		t.Fatalf("unexpected attrs: %v", attrs)
	}
}

func TestLoggingObserver_OnSubmitted_LevelDependsOnSuccess(t *testing.T) {
	h := &recordingHandler{}
	o := NewLoggingObserver(slog.New(h))

	o.OnSubmitted(SubmitResult{Success: true})
	o.OnSubmitted(SubmitResult{Errors: FieldErrors{"a": {"x": "bad"}, "b": {}}})

	if len(h.records) != 2 {
		t.Fatalf("expected 2 log records, got %d", len(h.records))
	}
	if h.records[0].Level != slog.LevelInfo {
		t.Fatalf("expected success record LevelInfo, got %v", h.records[0].Level)
	}
	if h.records[1].Level != slog.LevelWarn {
		t.Fatalf("expected failure record LevelWarn, got %v", h.records[1].Level)
	}
	attrs := attrsToMap(h.records[1])
	if attrs["steps_with_errors"] != int64(1) {
		t.Fatalf("expected steps_with_errors=1, got %v", attrs["steps_with_errors"])
	}
}

//
// BasicMetrics
//

func TestBasicMetrics_CountersAndSnapshot(t *testing.T) {
	var m BasicMetrics

	m.OnFieldUpdated("s", "a")
	m.OnFieldUpdated("s", "b")
	m.OnStepValidated("s", true)
	m.OnStepValidated("s", false)
	m.OnStepValidated("t", false)
	m.OnNavigated(0, 1)
	m.OnSubmitted(SubmitResult{Success: false})
	m.OnSubmitted(SubmitResult{Success: true})
	m.OnSubmitted(SubmitResult{Success: true})

	snap := m.Snapshot()

	if snap.FieldUpdates != 2 {
		t.Fatalf("FieldUpdates=%d, want 2", snap.FieldUpdates)
	}
	if snap.StepValidations != 3 || snap.InvalidSteps != 2 {
		t.Fatalf("StepValidations=%d InvalidSteps=%d, want 3 and 2", snap.StepValidations, snap.InvalidSteps)
	}
	if snap.Navigations != 1 {
		t.Fatalf("Navigations=%d, want 1", snap.Navigations)
	}
	if snap.Submissions != 3 || snap.FailedSubmissions != 1 || snap.SuccessfulSubmits != 2 {
		t.Fatalf("unexpected submit counters: %+v", snap)
	}
}

func TestBasicMetrics_ZeroSnapshot(t *testing.T) {
	var m BasicMetrics
	if snap := m.Snapshot(); snap != (BasicMetricsSnapshot{}) {
		t.Fatalf("expected zero snapshot, got %+v", snap)
	}
}
