package controller

import (
	"log/slog"

	"github.com/petrijr/stepform/internal/schema"
	"github.com/petrijr/stepform/pkg/api"
)

// UpdateConfig replaces the configuration and rebuilds data, touches,
// errors and validity from it. An invalid cfg leaves everything as is.
func (c *controller) UpdateConfig(cfg api.FormConfig) error {
	form, err := schema.Check(cfg)
	if err != nil {
		return err
	}

	c.sched.Batch(func() {
		c.config.Replace(form)
		c.engine.ResetValidity()
		c.reset(nil)
	})

	c.observer.OnConfigChanged(c.config.TotalSteps())
	return nil
}

func (c *controller) AddStep(step api.Step) int {
	return c.AddStepAt(step, -1)
}

// AddStepAt inserts step, initializes its data and touch entries and
// validates it silently. A step that is malformed or whose id is taken is
// rejected with a warning.
func (c *controller) AddStepAt(step api.Step, index int) int {
	checked, err := schema.CheckStep(step)
	if err != nil {
		c.logger.Warn("stepform: step rejected",
			slog.String("step", step.ID),
			slog.String("error", err.Error()),
		)
		return c.config.TotalSteps()
	}
	if c.config.IndexOf(checked.ID) >= 0 {
		c.logger.Warn("stepform: step id already in use", slog.String("step", checked.ID))
		return c.config.TotalSteps()
	}

	var total int
	c.sched.Batch(func() {
		total = c.config.AddStep(checked, index)
		c.data.InitStep(checked)
		c.touch.AddStep(checked)
		c.engine.ValidateStep(checked.ID, false)
	})

	c.observer.OnConfigChanged(total)
	return total
}

// RemoveStep removes the step together with its data, touch, error and
// validity entries and pulls the current index back in range.
func (c *controller) RemoveStep(stepID string) bool {
	if c.config.IndexOf(stepID) < 0 {
		return false
	}
	c.sched.Batch(func() {
		c.config.RemoveStep(stepID)
		c.data.DeleteStep(stepID)
		c.touch.RemoveStep(stepID)
		c.engine.Forget(stepID)
		c.navigate(c.nav.Clamp)
	})

	c.observer.OnConfigChanged(c.config.TotalSteps())
	return true
}
