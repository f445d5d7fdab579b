package controller

import (
	"maps"

	"github.com/petrijr/stepform/pkg/api"
)

// UpdateField stores the value, marks the field touched, shows the field's
// own error and revalidates the step with touched-only errors.
func (c *controller) UpdateField(stepID, fieldID string, value any) {
	c.sched.Batch(func() {
		if !c.data.UpdateField(stepID, fieldID, value) {
			return
		}
		c.touch.MarkField(stepID, fieldID, true)
		c.observer.OnFieldUpdated(stepID, fieldID)

		c.engine.ValidateFieldValue(stepID, fieldID, value, true)
		c.ValidateStepWithTouchedErrors(stepID)
	})
}

// SubmitForm validates the whole form with errors shown. On failure it
// moves to the first invalid step.
func (c *controller) SubmitForm() api.SubmitResult {
	var res api.SubmitResult
	c.sched.Batch(func() {
		c.touch.MarkAll(true)
		if c.ValidateForm(true) {
			res = api.SubmitResult{Success: true, Data: c.data.AllData()}
			return
		}
		if i := c.engine.FirstInvalidStep(); i >= 0 && i != c.nav.Get() {
			c.navigate(func() { c.nav.GoTo(i) })
		}
		res = api.SubmitResult{Success: false, Errors: cloneErrors(c.errs.Get())}
	})

	c.observer.OnSubmitted(res)
	return res
}

func (c *controller) ResetForm() {
	c.reset(nil)
}

func (c *controller) ResetFormWithDefaults(defaults map[string]any) {
	c.reset(defaults)
}

// reset restores defaults, clears errors and touches, revalidates silently
// and returns to the first step.
func (c *controller) reset(overrides map[string]any) {
	c.sched.Batch(func() {
		c.data.Reset(overrides)
		c.touch.Reset()
		c.engine.ValidateForm(false)
		c.navigate(func() { c.nav.Set(0) })
	})
}

func cloneErrors(errs api.FieldErrors) api.FieldErrors {
	out := make(api.FieldErrors, len(errs))
	for id, fields := range errs {
		out[id] = maps.Clone(fields)
	}
	return out
}
