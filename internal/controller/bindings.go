package controller

import (
	"github.com/petrijr/stepform/internal/observable"
	"github.com/petrijr/stepform/pkg/api"
)

// bindings are the computed read-only values. Each one derives from the
// current state on read, and operations that write several stores batch
// their notifications, so a value depending on several stores never
// reports a combination of old and new inputs.
type bindings struct {
	currentStep        *observable.Derived[api.Step]
	totalSteps         *observable.Derived[int]
	isFirstStep        *observable.Derived[bool]
	isLastStep         *observable.Derived[bool]
	isFormValid        *observable.Derived[bool]
	isCurrentStepValid *observable.Derived[bool]
}

func newBindings(c *controller) bindings {
	return bindings{
		// Steps hold maps and funcs and cannot be compared; every
		// recomputation after a config or index change is republished.
		currentStep: observable.NewDerived(func() api.Step {
			step, _ := c.config.StepByIndex(c.nav.Get())
			return step
		}, nil, c.config, c.nav),

		totalSteps: observable.NewDerived(c.config.TotalSteps, eq[int], c.config),

		isFirstStep: observable.NewDerived(c.nav.IsFirst, eq[bool], c.nav),

		isLastStep: observable.NewDerived(c.nav.IsLast, eq[bool], c.nav, c.config),

		isFormValid: observable.NewDerived(func() bool {
			validity := c.validity.Get()
			for _, step := range c.config.Get().Steps {
				if !validity[step.ID] {
					return false
				}
			}
			return true
		}, eq[bool], c.validity, c.config),

		isCurrentStepValid: observable.NewDerived(func() bool {
			step, ok := c.config.StepByIndex(c.nav.Get())
			return ok && c.validity.Get()[step.ID]
		}, eq[bool], c.validity, c.config, c.nav),
	}
}

func eq[T comparable](a, b T) bool { return a == b }

func (c *controller) Config() api.Binding[api.FormConfig]           { return c.config }
func (c *controller) CurrentStepIndex() api.Binding[int]            { return c.nav }
func (c *controller) CurrentStep() api.Binding[api.Step]            { return c.bindings.currentStep }
func (c *controller) FormData() api.Binding[api.FormData]           { return c.data }
func (c *controller) StepsValidity() api.Binding[api.StepsValidity] { return c.validity }
func (c *controller) FieldErrors() api.Binding[api.FieldErrors]     { return c.errs }
func (c *controller) TotalSteps() api.Binding[int]                  { return c.bindings.totalSteps }
func (c *controller) IsFirstStep() api.Binding[bool]                { return c.bindings.isFirstStep }
func (c *controller) IsLastStep() api.Binding[bool]                 { return c.bindings.isLastStep }
func (c *controller) IsFormValid() api.Binding[bool]                { return c.bindings.isFormValid }
func (c *controller) IsCurrentStepValid() api.Binding[bool]         { return c.bindings.isCurrentStepValid }
