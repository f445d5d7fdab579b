package api

// Binding is a read-only observable value.
//
// Subscribe invokes fn immediately with the current value and again after
// every change; the returned function removes the subscription.
type Binding[T any] interface {
	Get() T
	Subscribe(fn func(T)) (unsubscribe func())
}

// Controller is the public surface consumed by view adapters.
//
// A Controller is not safe for concurrent use. All operations run
// synchronously on the caller's goroutine.
type Controller interface {
	// UpdateField stores a value, marks the field touched and revalidates
	// the field and its step. Unknown steps or fields are ignored.
	UpdateField(stepID, fieldID string, value any)

	// ValidateField validates the stored value of a field.
	ValidateField(stepID, fieldID string, showErrors bool) bool
	// ValidateFieldValue validates value as if it were stored for the field.
	ValidateFieldValue(stepID, fieldID string, value any, showErrors bool) bool
	ValidateStep(stepID string, showErrors bool) bool
	ValidateCurrentStep(showErrors bool) bool
	// ValidateStepWithTouchedErrors validates a step but only surfaces the
	// errors of touched fields.
	ValidateStepWithTouchedErrors(stepID string) bool
	// ValidateForm validates every step, without short-circuiting.
	ValidateForm(showErrors bool) bool

	// NextStep validates the current step with errors shown and advances
	// when it passes. It returns the resulting index.
	NextStep() int
	PrevStep() int
	GoToStep(index int) bool

	SubmitForm() SubmitResult

	// ResetForm restores defaults, clears touches and errors, revalidates
	// silently and returns to the first step.
	ResetForm()
	// ResetFormWithDefaults is ResetForm with overrides that take precedence
	// over every other default.
	ResetFormWithDefaults(defaults map[string]any)
	// UpdateConfig replaces the configuration and rebuilds all state. The
	// previous state is kept if cfg is invalid.
	UpdateConfig(cfg FormConfig) error

	StepData(stepID string) map[string]any
	AllData() FormData
	// FlatData merges every step into one map. Fields that share an id
	// across steps shadow each other; the step that comes last wins.
	FlatData() map[string]any
	TouchState() TouchMap

	// AddStep appends a step and returns the new step count.
	AddStep(step Step) int
	// AddStepAt inserts a step at index, or appends when index is out of
	// range, and returns the new step count.
	AddStepAt(step Step, index int) int
	RemoveStep(stepID string) bool

	RegisterValidator(name string, fn ValidatorFunc)
	UnregisterValidator(name string) bool
	AvailableValidators() []string

	Config() Binding[FormConfig]
	CurrentStepIndex() Binding[int]
	// CurrentStep yields the zero Step when the form has no steps.
	CurrentStep() Binding[Step]
	FormData() Binding[FormData]
	StepsValidity() Binding[StepsValidity]
	FieldErrors() Binding[FieldErrors]
	TotalSteps() Binding[int]
	IsFirstStep() Binding[bool]
	IsLastStep() Binding[bool]
	IsFormValid() Binding[bool]
	IsCurrentStepValid() Binding[bool]
}
