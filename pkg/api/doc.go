// Package api contains the core building blocks shared by the stepform
// engine and its callers: the declarative form model, the validation rule
// types, the read-only Binding interface and the Controller surface consumed
// by view adapters.
//
// Most users interact with the higher-level stepform package, which
// re-exports selected types from this package. The api package is intended
// for adapters, custom validators, or contributors extending the engine.
//
// # Form model
//
// A FormConfig is an ordered list of Steps. Each Step owns a map of Fields
// keyed by field id, plus an optional StepFunc that runs once every field of
// the step is valid. FormConfig.DefaultValues overrides per-field defaults
// globally.
//
// # Validation rules
//
// A Field's Validation combines static rules (required, pattern, length and
// numeric bounds), a CustomFunc, and dynamic rules resolved by name through a
// validator registry. Dynamic rules are typed: RequiredIf and Equals describe
// the built-in cross-field validators, Named refers to anything registered by
// the application.
//
// Predicates report failures as errors. Returning ErrInvalid asks the engine
// to use the configured or default message; any other error's text is shown
// as is.
//
// # Bindings
//
// Controller state is exposed as Binding values: Get reads the latest value,
// Subscribe receives it immediately and after every change.
//
// # Observability
//
// Observer receives lifecycle callbacks. NoopObserver, CompositeObserver,
// LoggingObserver (log/slog) and BasicMetrics are provided.
package api
