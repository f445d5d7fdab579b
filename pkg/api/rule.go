package api

// Built-in validator names.
const (
	ValidatorRequiredIf = "requiredIf"
	ValidatorEquals     = "equals"
)

// Params carries validator parameters.
type Params map[string]any

// ValidatorContext is handed to dynamic validators. FormData holds the
// flattened field values of the step being validated.
type ValidatorContext struct {
	Field    Field
	FormData map[string]any
	StepID   string
	FieldID  string
}

// ValidatorFunc is a registry-resolved validator. It follows the same
// convention as CustomFunc: nil passes, ErrInvalid means "use the configured
// message", any other error's text is the message.
type ValidatorFunc func(value any, ctx ValidatorContext, params Params) error

// Rule is a dynamic validator reference attached to a field. Every rule
// resolves to a registered validator name plus parameters, so the built-in
// kinds below can still be replaced by registering the same name.
type Rule interface {
	Validator() string
	Params() Params
	ErrorMessage() string
}

// Condition selects how RequiredIf evaluates its referenced fields.
type Condition string

const (
	// ConditionEquals requires the field when any referenced field equals Value.
	ConditionEquals Condition = "equals"
	// ConditionNotEmpty requires the field when every referenced field is non-empty.
	ConditionNotEmpty Condition = "notEmpty"
	// ConditionNotEquals requires the field when no referenced field equals Value.
	ConditionNotEquals Condition = "notEquals"
)

// RequiredIf makes a field required depending on other fields of the step.
type RequiredIf struct {
	Condition Condition
	Fields    []string
	Value     any
	Message   string
}

func (RequiredIf) Validator() string { return ValidatorRequiredIf }

func (r RequiredIf) Params() Params {
	p := Params{
		"condition": string(r.Condition),
		"fields":    r.Fields,
		"value":     r.Value,
	}
	if r.Message != "" {
		p["errorMessage"] = r.Message
	}
	return p
}

func (r RequiredIf) ErrorMessage() string { return r.Message }

// Equals requires the value to match another field (TargetField) or a
// literal (TargetValue). TargetField wins when both are set.
type Equals struct {
	TargetField string
	TargetValue any
	Message     string
}

func (Equals) Validator() string { return ValidatorEquals }

func (r Equals) Params() Params {
	p := Params{}
	if r.TargetField != "" {
		p["targetField"] = r.TargetField
	}
	if r.TargetValue != nil {
		p["targetValue"] = r.TargetValue
	}
	if r.Message != "" {
		p["errorMessage"] = r.Message
	}
	return p
}

func (r Equals) ErrorMessage() string { return r.Message }

// Named references any registered validator by name.
type Named struct {
	Name    string
	Args    Params
	Message string
}

func (r Named) Validator() string    { return r.Name }
func (r Named) Params() Params       { return r.Args }
func (r Named) ErrorMessage() string { return r.Message }

// Result is the outcome of validating one field. Error is the first failure;
// Errors holds every failure when errors are collected.
type Result struct {
	Valid  bool
	Error  string
	Errors []string
}
