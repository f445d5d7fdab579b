package api

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// Observer receives callbacks from a Controller for logging and metrics.
//
// Callbacks run synchronously inside the operation that triggered them, so
// implementations should be fast.
type Observer interface {
	// OnFieldUpdated is called after a field value has been stored.
	OnFieldUpdated(stepID, fieldID string)

	// OnStepValidated is called every time a step's validity is recomputed.
	OnStepValidated(stepID string, valid bool)

	// OnNavigated is called when the current step index changes.
	OnNavigated(from, to int)

	// OnSubmitted is called with the outcome of every SubmitForm call.
	OnSubmitted(res SubmitResult)

	// OnConfigChanged is called after the configuration is replaced or a
	// step is added or removed.
	OnConfigChanged(totalSteps int)
}

// NoopObserver is an Observer that does nothing.
// It is used as the default when no observer is configured.
type NoopObserver struct{}

func (NoopObserver) OnFieldUpdated(stepID, fieldID string)     {}
func (NoopObserver) OnStepValidated(stepID string, valid bool) {}
func (NoopObserver) OnNavigated(from, to int)                  {}
func (NoopObserver) OnSubmitted(res SubmitResult)              {}
func (NoopObserver) OnConfigChanged(totalSteps int)            {}

// CompositeObserver fans out events to multiple observers.
type CompositeObserver struct {
	observers []Observer
}

// NewCompositeObserver creates an Observer that forwards events to each
// non-nil observer in obs.
func NewCompositeObserver(obs ...Observer) Observer {
	filtered := make([]Observer, 0, len(obs))
	for _, o := range obs {
		if o != nil {
			filtered = append(filtered, o)
		}
	}
	if len(filtered) == 0 {
		return NoopObserver{}
	}
	if len(filtered) == 1 {
		return filtered[0]
	}
	return &CompositeObserver{observers: filtered}
}

func (c *CompositeObserver) OnFieldUpdated(stepID, fieldID string) {
	for _, o := range c.observers {
		o.OnFieldUpdated(stepID, fieldID)
	}
}

func (c *CompositeObserver) OnStepValidated(stepID string, valid bool) {
	for _, o := range c.observers {
		o.OnStepValidated(stepID, valid)
	}
}

func (c *CompositeObserver) OnNavigated(from, to int) {
	for _, o := range c.observers {
		o.OnNavigated(from, to)
	}
}

func (c *CompositeObserver) OnSubmitted(res SubmitResult) {
	for _, o := range c.observers {
		o.OnSubmitted(res)
	}
}

func (c *CompositeObserver) OnConfigChanged(totalSteps int) {
	for _, o := range c.observers {
		o.OnConfigChanged(totalSteps)
	}
}

// LoggingObserver writes structured logs using log/slog.
type LoggingObserver struct {
	Logger *slog.Logger
}

// NewLoggingObserver creates an Observer that logs controller events using
// the provided slog.Logger. If logger is nil, slog.Default() is used.
func NewLoggingObserver(logger *slog.Logger) Observer {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingObserver{Logger: logger}
}

func (o *LoggingObserver) OnFieldUpdated(stepID, fieldID string) {
	o.Logger.Debug(string(EventFieldUpdated),
		slog.String("step", stepID),
		slog.String("field", fieldID),
	)
}

func (o *LoggingObserver) OnStepValidated(stepID string, valid bool) {
	o.Logger.Debug(string(EventStepValidated),
		slog.String("step", stepID),
		slog.Bool("valid", valid),
	)
}

func (o *LoggingObserver) OnNavigated(from, to int) {
	o.Logger.Debug(string(EventNavigated),
		slog.Int("from", from),
		slog.Int("to", to),
	)
}

func (o *LoggingObserver) OnSubmitted(res SubmitResult) {
	level := slog.LevelInfo
	if !res.Success {
		level = slog.LevelWarn
	}
	o.Logger.Log(context.Background(), level, string(EventSubmitted),
		slog.Bool("success", res.Success),
		slog.Int("steps_with_errors", countStepsWithErrors(res.Errors)),
	)
}

func (o *LoggingObserver) OnConfigChanged(totalSteps int) {
	o.Logger.Info(string(EventConfigChanged),
		slog.Int("total_steps", totalSteps),
	)
}

func countStepsWithErrors(errs FieldErrors) int {
	n := 0
	for _, fields := range errs {
		if len(fields) > 0 {
			n++
		}
	}
	return n
}

// BasicMetrics collects simple counters. It implements Observer, and can be
// combined with LoggingObserver via NewCompositeObserver.
type BasicMetrics struct {
	NoopObserver

	fieldUpdates     atomic.Int64
	stepValidations  atomic.Int64
	invalidSteps     atomic.Int64
	navigations      atomic.Int64
	submissions      atomic.Int64
	failedSubmission atomic.Int64
}

// BasicMetricsSnapshot is an immutable snapshot of BasicMetrics.
type BasicMetricsSnapshot struct {
	FieldUpdates    int64
	StepValidations int64
	InvalidSteps    int64
	Navigations     int64

	Submissions       int64
	FailedSubmissions int64
	SuccessfulSubmits int64
}

func (m *BasicMetrics) OnFieldUpdated(stepID, fieldID string) {
	m.fieldUpdates.Add(1)
}

func (m *BasicMetrics) OnStepValidated(stepID string, valid bool) {
	m.stepValidations.Add(1)
	if !valid {
		m.invalidSteps.Add(1)
	}
}

func (m *BasicMetrics) OnNavigated(from, to int) {
	m.navigations.Add(1)
}

func (m *BasicMetrics) OnSubmitted(res SubmitResult) {
	m.submissions.Add(1)
	if !res.Success {
		m.failedSubmission.Add(1)
	}
}

// Snapshot returns a snapshot of the current metrics.
func (m *BasicMetrics) Snapshot() BasicMetricsSnapshot {
	submitted := m.submissions.Load()
	failed := m.failedSubmission.Load()

	return BasicMetricsSnapshot{
		FieldUpdates:      m.fieldUpdates.Load(),
		StepValidations:   m.stepValidations.Load(),
		InvalidSteps:      m.invalidSteps.Load(),
		Navigations:       m.navigations.Load(),
		Submissions:       submitted,
		FailedSubmissions: failed,
		SuccessfulSubmits: submitted - failed,
	}
}
