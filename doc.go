// Package stepform provides a headless state engine for multi-step forms.
//
// Stepform keeps the current step, the per-field values, the validity of
// every step and the set of fields the user has touched, for a declarative
// description of steps and fields. It renders nothing: a view adapter reads
// the state through Bindings and calls Controller operations in response to
// user input. Everything runs synchronously on the caller's goroutine.
//
// # Core Concepts
//
//  1. FormConfig
//  2. Controller
//  3. Bindings
//  4. Validation rules and the Registry
//  5. FormBuilder
//
// # FormConfig
//
// A FormConfig is an ordered list of Steps. A Step owns a map of Fields keyed
// by field id and an optional StepFunc that validates the step as a whole
// once all of its fields pass. DefaultValues overrides the per-field Value
// when data is initialized or reset.
//
// Configurations are checked when a Controller is created: step ids must be
// present and unique, field types must be known. New returns an error
// wrapping ErrInvalidConfig otherwise.
//
// # Controller
//
// The Controller is created with New and offers:
//   - data entry: UpdateField, plus StepData, AllData and FlatData
//   - validation: per field, per step, per form, silent or with errors shown
//   - navigation: NextStep (gated by validation), PrevStep, GoToStep
//   - submission and reset
//   - adding and removing steps at runtime
//
// UpdateField shows errors only for touched fields, so a fresh form does not
// light up with "is required" messages. SubmitForm marks every field touched
// and moves to the first invalid step when validation fails.
//
// # Bindings
//
// Each piece of state is a Binding: Get returns the latest value, Subscribe
// receives it immediately and after every change. Derived bindings such as
// IsLastStep or IsFormValid are recomputed from their inputs, never from a
// half-updated combination. A subscriber that writes back into the
// controller is allowed; its own notifications are delivered after the
// current round completes.
//
// # Validation rules and the Registry
//
// Rules run in a fixed order: required, type-specific checks (email format,
// length and pattern, numeric bounds), the field's Custom predicate, then the
// dynamic Rules. RequiredIf and Equals are built in; Named refers to any
// validator registered by the application:
//
//	ctrl.RegisterValidator("postcode", func(v any, _ stepform.ValidatorContext, _ stepform.Params) error {
//	    if !postcodeRE.MatchString(fmt.Sprint(v)) {
//	        return stepform.ErrInvalid
//	    }
//	    return nil
//	})
//
// Each Controller has its own Registry unless one is shared with
// WithRegistry.
//
// Default messages are English. WithLocale("de") selects German; other
// languages fall back to English.
//
// # FormBuilder
//
// FormBuilder is a fluent way to write a FormConfig in Go code:
//
//	ctrl := stepform.NewForm().
//	    Step("account", "Account").
//	    Field("email", stepform.Field{Type: stepform.FieldEmail, Label: "Email", Required: true}).
//	    MustNew()
//
// Forms can also be loaded from YAML, see package pkg/formspec.
//
// For examples, see the /examples directory.
package stepform
