package store

import (
	"maps"

	"github.com/petrijr/stepform/pkg/api"
)

// TouchTracker records which fields the user has interacted with. It is a
// plain map read synchronously; nothing subscribes to it.
type TouchTracker struct {
	config  *ConfigStore
	touched api.TouchMap
}

// NewTouchTracker returns a tracker with every configured field untouched.
func NewTouchTracker(config *ConfigStore) *TouchTracker {
	t := &TouchTracker{config: config}
	t.Reset()
	return t
}

// Reset marks every field of every configured step as untouched and drops
// entries of steps that are no longer configured.
func (t *TouchTracker) Reset() {
	t.touched = api.TouchMap{}
	for _, step := range t.config.Get().Steps {
		t.initStep(step)
	}
}

// AddStep starts tracking a newly added step.
func (t *TouchTracker) AddStep(step api.Step) {
	t.initStep(step)
}

// RemoveStep stops tracking a step.
func (t *TouchTracker) RemoveStep(stepID string) {
	delete(t.touched, stepID)
}

// MarkField sets the touched flag of one field.
func (t *TouchTracker) MarkField(stepID, fieldID string, touched bool) {
	if t.touched[stepID] == nil {
		t.touched[stepID] = map[string]bool{}
	}
	t.touched[stepID][fieldID] = touched
}

// MarkStep sets the flag of every field of a configured step.
func (t *TouchTracker) MarkStep(stepID string, touched bool) {
	step, ok := t.config.StepByID(stepID)
	if !ok {
		return
	}
	t.markStep(step, touched)
}

// MarkAll sets the flag of every field of every configured step.
func (t *TouchTracker) MarkAll(touched bool) {
	for _, step := range t.config.Get().Steps {
		t.markStep(step, touched)
	}
}

// IsTouched reports whether a field has been touched.
func (t *TouchTracker) IsTouched(stepID, fieldID string) bool {
	return t.touched[stepID][fieldID]
}

// Snapshot returns a copy of the touch state.
func (t *TouchTracker) Snapshot() api.TouchMap {
	out := make(api.TouchMap, len(t.touched))
	for id, fields := range t.touched {
		out[id] = maps.Clone(fields)
	}
	return out
}

func (t *TouchTracker) initStep(step api.Step) {
	fields := make(map[string]bool, len(step.Fields))
	for id := range step.Fields {
		fields[id] = false
	}
	t.touched[step.ID] = fields
}

func (t *TouchTracker) markStep(step api.Step, touched bool) {
	if t.touched[step.ID] == nil {
		t.touched[step.ID] = map[string]bool{}
	}
	for id := range step.Fields {
		t.touched[step.ID][id] = touched
	}
}
