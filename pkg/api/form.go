package api

import (
	"errors"
	"regexp"
)

// ErrInvalidConfig is returned when a FormConfig is structurally unusable
// (missing or duplicate step ids, unknown field types, blank field keys).
var ErrInvalidConfig = errors.New("invalid form config")

// ErrInvalid is returned by custom predicates, step validators and dynamic
// validators that fail without a message of their own. The engine replaces it
// with the field's configured or default error message.
var ErrInvalid = errors.New("invalid")

// StepErrorKey is the reserved FieldErrors key holding a step-level
// validation failure.
const StepErrorKey = "__step__"

// FieldType enumerates the supported input kinds.
type FieldType string

const (
	FieldText     FieldType = "text"
	FieldEmail    FieldType = "email"
	FieldPassword FieldType = "password"
	FieldNumber   FieldType = "number"
	FieldTel      FieldType = "tel"
	FieldCheckbox FieldType = "checkbox"
	FieldRadio    FieldType = "radio"
	FieldSelect   FieldType = "select"
	FieldTextarea FieldType = "textarea"
	FieldDate     FieldType = "date"
	FieldFile     FieldType = "file"
	FieldCustom   FieldType = "custom"
)

// FormConfig is the declarative description of a multi-step form.
type FormConfig struct {
	Steps []Step `json:"steps" validate:"unique=ID,dive"`

	// DefaultValues maps field ids to values that take precedence over each
	// field's own Value when form data is (re)initialized.
	DefaultValues map[string]any `json:"defaultValues,omitempty"`
}

// StepFunc validates the data of a whole step once all of its fields pass.
type StepFunc func(data map[string]any) error

// Step groups related fields presented together.
type Step struct {
	ID          string           `json:"id" validate:"required"`
	Title       string           `json:"title"`
	Description string           `json:"description,omitempty"`
	Fields      map[string]Field `json:"fields" validate:"dive,keys,required,endkeys,required"`

	// Validate runs after every field of the step is valid. A nil error
	// means the step passes.
	Validate StepFunc `json:"-"`
}

// Option is a choice offered by radio, select and checkbox fields.
type Option struct {
	Label    string `json:"label"`
	Value    any    `json:"value"`
	Disabled bool   `json:"disabled,omitempty"`
}

// Field is a single typed input.
type Field struct {
	ID    string    `json:"id"`
	Type  FieldType `json:"type" validate:"oneof=text email password number tel checkbox radio select textarea date file custom"`
	Label string    `json:"label"`
	Value any       `json:"value,omitempty"`

	Placeholder string `json:"placeholder,omitempty"`
	HelperText  string `json:"helperText,omitempty"`
	Required    bool   `json:"required,omitempty"`
	Disabled    bool   `json:"disabled,omitempty"`
	Hidden      bool   `json:"hidden,omitempty"`

	Options []Option       `json:"options,omitempty"`
	Props   map[string]any `json:"props,omitempty"`

	Validation Validation `json:"-" validate:"-"`
}

// IsRequired reports whether either the field or its validation marks it
// as required.
func (f Field) IsRequired() bool {
	return f.Required || f.Validation.Required
}

// IsEmpty reports whether value counts as "not filled in" for f. Checkbox
// fields and boolean values are empty only when false; everything else is
// empty when nil or "".
func (f Field) IsEmpty(value any) bool {
	if _, ok := value.(bool); ok || f.Type == FieldCheckbox {
		return value == false
	}
	return value == nil || value == ""
}

// CustomFunc is a per-field predicate. See ErrInvalid for the failure
// convention.
type CustomFunc func(value any) error

// ErrorMessages overrides the message of individual rules.
type ErrorMessages struct {
	Required  string
	Pattern   string
	MinLength string
	MaxLength string
	Min       string
	Max       string
	Email     string
	Custom    string
}

// Validation describes the rules applied to a field.
type Validation struct {
	Required  bool
	Pattern   *regexp.Regexp
	MinLength *int
	MaxLength *int
	Min       *float64
	Max       *float64
	Custom    CustomFunc

	// Rules are evaluated in order after the legacy DynamicValidator.
	Rules []Rule

	// Deprecated: use Rules. Still honored, evaluated before Rules.
	DynamicValidator string
	// Deprecated: use Rules.
	DynamicValidatorParams Params

	ErrorMessages ErrorMessages
	ErrorMessage  string

	// CollectAllErrors keeps evaluating after the first failing rule.
	CollectAllErrors bool
}

// FormData maps step id -> field id -> value.
type FormData map[string]map[string]any

// FieldErrors maps step id -> field id (or StepErrorKey) -> message.
type FieldErrors map[string]map[string]string

// StepsValidity maps step id -> validity.
type StepsValidity map[string]bool

// TouchMap maps step id -> field id -> touched.
type TouchMap map[string]map[string]bool

// SubmitResult is returned by Controller.SubmitForm. Data is set on success,
// Errors on failure.
type SubmitResult struct {
	Success bool
	Data    FormData
	Errors  FieldErrors
}

// Int returns a pointer to v, for MinLength and MaxLength.
func Int(v int) *int { return &v }

// Float returns a pointer to v, for Min and Max.
func Float(v float64) *float64 { return &v }
