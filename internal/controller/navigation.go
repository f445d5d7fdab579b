package controller

// NextStep marks the current step's fields touched, validates the step
// with errors shown and advances when it passes. The last step is never
// touched or validated here.
func (c *controller) NextStep() int {
	c.sched.Batch(func() {
		c.navigate(func() {
			c.nav.Next(func() bool {
				if step, ok := c.config.StepByIndex(c.nav.Get()); ok {
					c.touch.MarkStep(step.ID, true)
				}
				return c.ValidateCurrentStep(true)
			})
		})
	})
	return c.nav.Get()
}

func (c *controller) PrevStep() int {
	c.navigate(func() { c.nav.Prev() })
	return c.nav.Get()
}

func (c *controller) GoToStep(index int) bool {
	var ok bool
	c.navigate(func() { ok = c.nav.GoTo(index) })
	return ok
}

// navigate runs move and reports the index change, if any, to the observer.
func (c *controller) navigate(move func()) {
	from := c.nav.Get()
	move()
	if to := c.nav.Get(); to != from {
		c.observer.OnNavigated(from, to)
	}
}
