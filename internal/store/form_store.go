package store

import (
	"log/slog"
	"maps"

	"github.com/petrijr/stepform/internal/observable"
	"github.com/petrijr/stepform/pkg/api"
)

// DefaultValue resolves the initial value of a field:
// overrides > cfg.DefaultValues > field.Value > "".
func DefaultValue(cfg api.FormConfig, fieldID string, field api.Field, overrides map[string]any) any {
	if v, ok := overrides[fieldID]; ok && v != nil {
		return v
	}
	if v, ok := cfg.DefaultValues[fieldID]; ok && v != nil {
		return v
	}
	if field.Value != nil {
		return field.Value
	}
	return ""
}

// InitialStepData returns the default values of every field of step.
func InitialStepData(cfg api.FormConfig, step api.Step, overrides map[string]any) map[string]any {
	data := make(map[string]any, len(step.Fields))
	for id, f := range step.Fields {
		data[id] = DefaultValue(cfg, id, f, overrides)
	}
	return data
}

// InitialData returns default form data with one entry per configured step.
func InitialData(cfg api.FormConfig, overrides map[string]any) api.FormData {
	data := make(api.FormData, len(cfg.Steps))
	for _, step := range cfg.Steps {
		data[step.ID] = InitialStepData(cfg, step, overrides)
	}
	return data
}

// FormStore holds per-step field values.
//
// Updates are copy-on-write: the published FormData is a new map and only
// the changed step map is copied, so snapshots handed out earlier stay
// intact.
type FormStore struct {
	*observable.Value[api.FormData]

	config *ConfigStore
	errs   *observable.Value[api.FieldErrors]
	logger *slog.Logger
}

// NewFormStore returns a store initialized from the defaults of the current
// configuration.
func NewFormStore(
	sched *observable.Scheduler,
	config *ConfigStore,
	errs *observable.Value[api.FieldErrors],
	logger *slog.Logger,
) *FormStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &FormStore{
		Value:  observable.New(sched, InitialData(config.Get(), nil)),
		config: config,
		errs:   errs,
		logger: logger,
	}
}

// UpdateField stores value for a configured field. It logs a warning and
// reports false when the step or field does not exist.
func (s *FormStore) UpdateField(stepID, fieldID string, value any) bool {
	if _, ok := s.config.Field(stepID, fieldID); !ok {
		s.logger.Warn("stepform: update of unknown field ignored",
			slog.String("step", stepID),
			slog.String("field", fieldID),
		)
		return false
	}

	next := maps.Clone(s.Get())
	if next == nil {
		next = api.FormData{}
	}
	stepData := maps.Clone(next[stepID])
	if stepData == nil {
		stepData = map[string]any{}
	}
	stepData[fieldID] = value
	next[stepID] = stepData

	s.Set(next)
	return true
}

// Reset rebuilds every step from defaults and clears all field errors.
func (s *FormStore) Reset(overrides map[string]any) {
	s.Set(InitialData(s.config.Get(), overrides))
	s.errs.Set(api.FieldErrors{})
}

// InitStep (re)initializes the data of step from defaults.
func (s *FormStore) InitStep(step api.Step) {
	next := maps.Clone(s.Get())
	if next == nil {
		next = api.FormData{}
	}
	next[step.ID] = InitialStepData(s.config.Get(), step, nil)
	s.Set(next)
}

// DeleteStep drops the data of a step. It publishes even if the step had no
// data.
func (s *FormStore) DeleteStep(stepID string) {
	next := maps.Clone(s.Get())
	delete(next, stepID)
	s.Set(next)
}

// StepData returns a copy of a step's values, empty for unknown steps.
func (s *FormStore) StepData(stepID string) map[string]any {
	data := maps.Clone(s.Get()[stepID])
	if data == nil {
		data = map[string]any{}
	}
	return data
}

// AllData returns a copy of all form data.
func (s *FormStore) AllData() api.FormData {
	return CloneData(s.Get())
}

// FlatData merges the values of every step in configuration order. A field
// id used by several steps keeps the value of the last of them.
func (s *FormStore) FlatData() map[string]any {
	data := s.Get()
	flat := map[string]any{}
	for _, step := range s.config.Get().Steps {
		maps.Copy(flat, data[step.ID])
	}
	return flat
}

// CloneData deep-copies form data down to the per-step maps.
func CloneData(data api.FormData) api.FormData {
	out := make(api.FormData, len(data))
	for id, fields := range data {
		out[id] = maps.Clone(fields)
	}
	return out
}
