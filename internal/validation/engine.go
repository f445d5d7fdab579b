package validation

import (
	"log/slog"
	"maps"
	"slices"
	"strings"

	"github.com/petrijr/stepform/internal/observable"
	"github.com/petrijr/stepform/internal/store"
	"github.com/petrijr/stepform/pkg/api"
)

// DefaultSeparator joins collected errors of one field.
const DefaultSeparator = " | "

// Config holds the stores an Engine reads from and writes into.
type Config struct {
	Steps    *store.ConfigStore
	Data     *store.FormStore
	Touch    *store.TouchTracker
	Errors   *observable.Value[api.FieldErrors]
	Validity *observable.Value[api.StepsValidity]

	Runner    Runner
	Messages  *Messages
	Separator string
	Logger    *slog.Logger
}

// Engine validates fields and steps against the current form data and
// publishes the outcome into the error and validity maps.
type Engine struct {
	validator Validator

	steps    *store.ConfigStore
	data     *store.FormStore
	touch    *store.TouchTracker
	errs     *observable.Value[api.FieldErrors]
	validity *observable.Value[api.StepsValidity]

	separator string
	logger    *slog.Logger
}

// NewEngine returns an engine over the stores in cfg.
func NewEngine(cfg Config) *Engine {
	if cfg.Separator == "" {
		cfg.Separator = DefaultSeparator
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Engine{
		validator: Validator{Runner: cfg.Runner, Messages: cfg.Messages},
		steps:     cfg.Steps,
		data:      cfg.Data,
		touch:     cfg.Touch,
		errs:      cfg.Errors,
		validity:  cfg.Validity,
		separator: cfg.Separator,
		logger:    cfg.Logger,
	}
}

// ValidateField validates the stored value of a field.
func (e *Engine) ValidateField(stepID, fieldID string, showErrors bool) bool {
	return e.validateField(stepID, fieldID, e.data.Get()[stepID][fieldID], showErrors)
}

// ValidateFieldValue validates value as if it were the value of the field.
func (e *Engine) ValidateFieldValue(stepID, fieldID string, value any, showErrors bool) bool {
	return e.validateField(stepID, fieldID, value, showErrors)
}

func (e *Engine) validateField(stepID, fieldID string, value any, showErrors bool) bool {
	field, ok := e.steps.Field(stepID, fieldID)
	if !ok {
		e.logger.Warn("stepform: validation of unknown field",
			slog.String("step", stepID),
			slog.String("field", fieldID),
		)
		return false
	}

	ctx := &api.ValidatorContext{
		Field:    field,
		FormData: e.data.StepData(stepID),
		StepID:   stepID,
		FieldID:  fieldID,
	}
	collectAll := field.Validation.CollectAllErrors
	res := e.validator.ValidateField(field, value, ctx, collectAll)

	switch {
	case res.Valid:
		// A field that became valid drops its stale error even when errors
		// are hidden.
		e.clearError(stepID, fieldID)
	case showErrors:
		e.setError(stepID, fieldID, e.fieldMessage(res, collectAll))
	}
	return res.Valid
}

func (e *Engine) fieldMessage(res api.Result, collectAll bool) string {
	if collectAll && len(res.Errors) > 1 {
		return strings.Join(res.Errors, e.separator)
	}
	if res.Error != "" {
		return res.Error
	}
	return e.validator.messages().InvalidField()
}

// ValidateStep validates every field of the step and, when all of them
// pass, the step's own Validate func. The outcome is stored in the
// validity map.
func (e *Engine) ValidateStep(stepID string, showErrors bool) bool {
	step, ok := e.steps.StepByID(stepID)
	if !ok {
		e.logger.Warn("stepform: validation of unknown step", slog.String("step", stepID))
		return false
	}

	valid := true
	for _, fieldID := range sortedFieldIDs(step) {
		if !e.ValidateField(stepID, fieldID, showErrors) {
			valid = false
		}
	}

	if valid {
		valid = e.runStepFunc(step, showErrors)
	}

	e.setValidity(stepID, valid)
	return valid
}

// ValidateStepTouched validates the step like ValidateStep but only shows
// the errors of touched fields. The step-level error is shown once every
// field of the step has been touched.
func (e *Engine) ValidateStepTouched(stepID string) bool {
	step, ok := e.steps.StepByID(stepID)
	if !ok {
		e.logger.Warn("stepform: validation of unknown step", slog.String("step", stepID))
		return false
	}

	valid := true
	allTouched := true
	for _, fieldID := range sortedFieldIDs(step) {
		touched := e.touch.IsTouched(stepID, fieldID)
		allTouched = allTouched && touched
		if !e.ValidateField(stepID, fieldID, touched) {
			valid = false
		}
	}

	if valid {
		valid = e.runStepFunc(step, allTouched)
	}

	e.setValidity(stepID, valid)
	return valid
}

// ValidateForm validates every step in configuration order. It never stops
// early so the whole validity map is refreshed.
func (e *Engine) ValidateForm(showErrors bool) bool {
	valid := true
	for _, step := range e.steps.Get().Steps {
		if !e.ValidateStep(step.ID, showErrors) {
			valid = false
		}
	}
	return valid
}

// Forget drops the error and validity entries of a removed step.
func (e *Engine) Forget(stepID string) {
	if _, ok := e.errs.Get()[stepID]; ok {
		next := maps.Clone(e.errs.Get())
		delete(next, stepID)
		e.errs.Set(next)
	}
	if _, ok := e.validity.Get()[stepID]; ok {
		next := maps.Clone(e.validity.Get())
		delete(next, stepID)
		e.validity.Set(next)
	}
}

// ResetValidity replaces the validity map with one false entry per
// configured step.
func (e *Engine) ResetValidity() {
	next := make(api.StepsValidity, e.steps.TotalSteps())
	for _, step := range e.steps.Get().Steps {
		next[step.ID] = false
	}
	e.validity.Set(next)
}

// FirstInvalidStep returns the index of the first step whose validity
// entry is false, or -1.
func (e *Engine) FirstInvalidStep() int {
	validity := e.validity.Get()
	return slices.IndexFunc(e.steps.Get().Steps, func(s api.Step) bool { return !validity[s.ID] })
}

func (e *Engine) runStepFunc(step api.Step, showErrors bool) bool {
	if step.Validate == nil {
		e.clearError(step.ID, api.StepErrorKey)
		return true
	}
	err := step.Validate(e.data.StepData(step.ID))
	if err == nil {
		e.clearError(step.ID, api.StepErrorKey)
		return true
	}
	if showErrors {
		e.setError(step.ID, api.StepErrorKey, failureMessage(err, e.validator.messages().InvalidStep()))
	}
	return false
}

func (e *Engine) setError(stepID, key, msg string) {
	next := maps.Clone(e.errs.Get())
	if next == nil {
		next = api.FieldErrors{}
	}
	stepErrs := maps.Clone(next[stepID])
	if stepErrs == nil {
		stepErrs = map[string]string{}
	}
	stepErrs[key] = msg
	next[stepID] = stepErrs
	e.errs.Set(next)
}

func (e *Engine) clearError(stepID, key string) {
	cur := e.errs.Get()
	if _, ok := cur[stepID][key]; !ok {
		return
	}
	next := maps.Clone(cur)
	stepErrs := maps.Clone(next[stepID])
	delete(stepErrs, key)
	if len(stepErrs) == 0 {
		delete(next, stepID)
	} else {
		next[stepID] = stepErrs
	}
	e.errs.Set(next)
}

func (e *Engine) setValidity(stepID string, valid bool) {
	if e.steps.IndexOf(stepID) < 0 {
		return
	}
	next := maps.Clone(e.validity.Get())
	if next == nil {
		next = api.StepsValidity{}
	}
	next[stepID] = valid
	e.validity.Set(next)
}

func sortedFieldIDs(step api.Step) []string {
	return slices.Sorted(maps.Keys(step.Fields))
}
