package controller

import (
	"log/slog"

	"github.com/petrijr/stepform/internal/observable"
	"github.com/petrijr/stepform/internal/registry"
	"github.com/petrijr/stepform/internal/schema"
	"github.com/petrijr/stepform/internal/store"
	"github.com/petrijr/stepform/internal/validation"
	"github.com/petrijr/stepform/pkg/api"
)

// Config describes how to construct a controller.
type Config struct {
	Form api.FormConfig

	// Registry resolves dynamic validators. A nil registry gets a private
	// one holding the built-ins.
	Registry *registry.Registry
	Observer api.Observer
	Logger   *slog.Logger

	Messages  *validation.Messages
	Separator string
}

// controller wires the stores, the validation engine and the derived
// bindings into an api.Controller.
type controller struct {
	sched *observable.Scheduler

	config   *store.ConfigStore
	data     *store.FormStore
	nav      *store.Navigator
	touch    *store.TouchTracker
	errs     *observable.Value[api.FieldErrors]
	validity *observable.Value[api.StepsValidity]

	engine   *validation.Engine
	registry *registry.Registry
	observer api.Observer
	logger   *slog.Logger

	bindings bindings
}

// New validates cfg.Form and returns a controller positioned on the first
// step, with every step validated silently.
func New(cfg Config) (api.Controller, error) {
	form, err := schema.Check(cfg.Form)
	if err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	obs := cfg.Observer
	if obs == nil {
		obs = api.NoopObserver{}
	}
	reg := cfg.Registry
	if reg == nil {
		reg = registry.New(logger)
	}

	sched := observable.NewScheduler()
	c := &controller{
		sched:    sched,
		config:   store.NewConfigStore(sched, form),
		errs:     observable.New(sched, api.FieldErrors{}),
		validity: observable.New(sched, api.StepsValidity{}),
		registry: reg,
		observer: obs,
		logger:   logger,
	}
	c.data = store.NewFormStore(sched, c.config, c.errs, logger)
	c.nav = store.NewNavigator(sched, c.config)
	c.touch = store.NewTouchTracker(c.config)
	c.engine = validation.NewEngine(validation.Config{
		Steps:     c.config,
		Data:      c.data,
		Touch:     c.touch,
		Errors:    c.errs,
		Validity:  c.validity,
		Runner:    reg,
		Messages:  cfg.Messages,
		Separator: cfg.Separator,
		Logger:    logger,
	})
	c.bindings = newBindings(c)

	c.engine.ResetValidity()
	c.engine.ValidateForm(false)
	return c, nil
}

//
// Validation
//

func (c *controller) ValidateField(stepID, fieldID string, showErrors bool) bool {
	return c.engine.ValidateField(stepID, fieldID, showErrors)
}

func (c *controller) ValidateFieldValue(stepID, fieldID string, value any, showErrors bool) bool {
	return c.engine.ValidateFieldValue(stepID, fieldID, value, showErrors)
}

func (c *controller) ValidateStep(stepID string, showErrors bool) bool {
	valid := c.engine.ValidateStep(stepID, showErrors)
	c.observer.OnStepValidated(stepID, valid)
	return valid
}

func (c *controller) ValidateCurrentStep(showErrors bool) bool {
	step, ok := c.config.StepByIndex(c.nav.Get())
	if !ok {
		return false
	}
	return c.ValidateStep(step.ID, showErrors)
}

func (c *controller) ValidateStepWithTouchedErrors(stepID string) bool {
	valid := c.engine.ValidateStepTouched(stepID)
	c.observer.OnStepValidated(stepID, valid)
	return valid
}

func (c *controller) ValidateForm(showErrors bool) bool {
	valid := true
	for _, step := range c.config.Get().Steps {
		if !c.ValidateStep(step.ID, showErrors) {
			valid = false
		}
	}
	return valid
}

//
// Data access
//

func (c *controller) StepData(stepID string) map[string]any { return c.data.StepData(stepID) }
func (c *controller) AllData() api.FormData                 { return c.data.AllData() }
func (c *controller) FlatData() map[string]any              { return c.data.FlatData() }
func (c *controller) TouchState() api.TouchMap              { return c.touch.Snapshot() }

//
// Validators
//

func (c *controller) RegisterValidator(name string, fn api.ValidatorFunc) {
	c.registry.Register(name, fn)
}

func (c *controller) UnregisterValidator(name string) bool {
	return c.registry.Unregister(name)
}

func (c *controller) AvailableValidators() []string {
	return c.registry.Names()
}
