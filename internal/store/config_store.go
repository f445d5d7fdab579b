package store

import (
	"slices"

	"github.com/petrijr/stepform/internal/observable"
	"github.com/petrijr/stepform/pkg/api"
)

// ConfigStore holds the form configuration.
//
// Every mutation publishes a new FormConfig with its own Steps slice, so
// configs obtained earlier are never modified.
type ConfigStore struct {
	*observable.Value[api.FormConfig]
}

// NewConfigStore returns a store holding cfg.
func NewConfigStore(sched *observable.Scheduler, cfg api.FormConfig) *ConfigStore {
	return &ConfigStore{Value: observable.New(sched, cfg)}
}

// Replace publishes cfg as the new configuration.
func (s *ConfigStore) Replace(cfg api.FormConfig) {
	s.Set(cfg)
}

// TotalSteps returns the number of configured steps.
func (s *ConfigStore) TotalSteps() int {
	return len(s.Get().Steps)
}

// IndexOf returns the position of the first step with the given id, or -1.
func (s *ConfigStore) IndexOf(stepID string) int {
	return slices.IndexFunc(s.Get().Steps, func(st api.Step) bool { return st.ID == stepID })
}

// StepByID returns the first step with the given id.
func (s *ConfigStore) StepByID(stepID string) (api.Step, bool) {
	i := s.IndexOf(stepID)
	if i < 0 {
		return api.Step{}, false
	}
	return s.Get().Steps[i], true
}

// StepByIndex returns the step at index i, if any.
func (s *ConfigStore) StepByIndex(i int) (api.Step, bool) {
	steps := s.Get().Steps
	if i < 0 || i >= len(steps) {
		return api.Step{}, false
	}
	return steps[i], true
}

// Field returns the definition of fieldID within stepID.
func (s *ConfigStore) Field(stepID, fieldID string) (api.Field, bool) {
	step, ok := s.StepByID(stepID)
	if !ok {
		return api.Field{}, false
	}
	f, ok := step.Fields[fieldID]
	return f, ok
}

// AddStep inserts step at index when 0 <= index <= TotalSteps, and appends
// it otherwise. It returns the new number of steps.
func (s *ConfigStore) AddStep(step api.Step, index int) int {
	cfg := s.Get()
	steps := slices.Clone(cfg.Steps)
	if index >= 0 && index <= len(steps) {
		steps = slices.Insert(steps, index, step)
	} else {
		steps = append(steps, step)
	}
	cfg.Steps = steps
	s.Set(cfg)
	return len(steps)
}

// RemoveStep removes the first step with the given id and reports whether
// one was found. Nothing is published when it was not.
func (s *ConfigStore) RemoveStep(stepID string) bool {
	i := s.IndexOf(stepID)
	if i < 0 {
		return false
	}
	cfg := s.Get()
	cfg.Steps = slices.Delete(slices.Clone(cfg.Steps), i, i+1)
	s.Set(cfg)
	return true
}
