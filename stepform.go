package stepform

import (
	"log/slog"
	"os"

	"github.com/petrijr/stepform/internal/controller"
	"github.com/petrijr/stepform/internal/registry"
	"github.com/petrijr/stepform/internal/settings"
	"github.com/petrijr/stepform/internal/validation"
	"github.com/petrijr/stepform/pkg/api"
)

// Re-export key types so users don't need to dig into pkg/api.

type (
	Controller       = api.Controller
	FormConfig       = api.FormConfig
	Step             = api.Step
	StepFunc         = api.StepFunc
	Field            = api.Field
	FieldType        = api.FieldType
	FieldOption      = api.Option
	Validation       = api.Validation
	ErrorMessages    = api.ErrorMessages
	CustomFunc       = api.CustomFunc
	FormData         = api.FormData
	FieldErrors      = api.FieldErrors
	StepsValidity    = api.StepsValidity
	TouchMap         = api.TouchMap
	SubmitResult     = api.SubmitResult
	Params           = api.Params
	ValidatorContext = api.ValidatorContext
	ValidatorFunc    = api.ValidatorFunc
	Rule             = api.Rule
	Condition        = api.Condition
	RequiredIf       = api.RequiredIf
	Equals           = api.Equals
	Named            = api.Named

	Observer             = api.Observer
	LoggingObserver      = api.LoggingObserver
	BasicMetrics         = api.BasicMetrics
	BasicMetricsSnapshot = api.BasicMetricsSnapshot
	CompositeObserver    = api.CompositeObserver
	NoopObserver         = api.NoopObserver

	// Registry resolves named validators. Controllers sharing a Registry
	// see each other's registrations.
	Registry = registry.Registry
	// Settings are the environment-driven defaults, see SettingsFromEnv.
	Settings = settings.Settings
)

// Re-export common helpers.

var (
	NewLoggingObserver   = api.NewLoggingObserver
	NewCompositeObserver = api.NewCompositeObserver

	Int   = api.Int
	Float = api.Float

	ErrInvalid       = api.ErrInvalid
	ErrInvalidConfig = api.ErrInvalidConfig
)

// Re-export field types, conditions and reserved names.

const (
	FieldText     = api.FieldText
	FieldEmail    = api.FieldEmail
	FieldPassword = api.FieldPassword
	FieldNumber   = api.FieldNumber
	FieldTel      = api.FieldTel
	FieldCheckbox = api.FieldCheckbox
	FieldRadio    = api.FieldRadio
	FieldSelect   = api.FieldSelect
	FieldTextarea = api.FieldTextarea
	FieldDate     = api.FieldDate
	FieldFile     = api.FieldFile
	FieldCustom   = api.FieldCustom

	ConditionEquals    = api.ConditionEquals
	ConditionNotEmpty  = api.ConditionNotEmpty
	ConditionNotEquals = api.ConditionNotEquals

	ValidatorRequiredIf = api.ValidatorRequiredIf
	ValidatorEquals     = api.ValidatorEquals

	StepErrorKey = api.StepErrorKey
)

// Option configures a Controller created by New.
type Option func(*options)

type options struct {
	logger    *slog.Logger
	observer  Observer
	registry  *Registry
	locale    string
	separator string
}

// WithLogger sets the logger used for warnings about unknown steps, fields
// and validators. The default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithObserver sets the observer receiving lifecycle callbacks. Combine
// several with NewCompositeObserver.
func WithObserver(obs Observer) Option {
	return func(o *options) { o.observer = obs }
}

// WithRegistry makes the controller resolve dynamic validators through reg
// instead of a private registry.
func WithRegistry(reg *Registry) Option {
	return func(o *options) { o.registry = reg }
}

// WithLocale selects the language of the default validation messages, as a
// BCP 47 tag ("en", "de-DE"). Untranslated locales fall back to English.
func WithLocale(locale string) Option {
	return func(o *options) { o.locale = locale }
}

// WithErrorSeparator sets the string joining collected field errors.
func WithErrorSeparator(sep string) Option {
	return func(o *options) { o.separator = sep }
}

// WithSettings applies s: a stderr logger at s.LogLevel, the locale and the
// error separator. Later options override individual values.
func WithSettings(s Settings) Option {
	return func(o *options) {
		o.logger = s.Logger(os.Stderr)
		o.locale = s.Locale
		o.separator = s.ErrorSeparator
	}
}

// New returns a Controller for cfg, positioned on the first step with every
// step validated silently. It fails with an error wrapping ErrInvalidConfig
// if cfg is structurally unusable.
func New(cfg FormConfig, opts ...Option) (Controller, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	tag, err := validation.ParseLocale(o.locale)
	if err != nil {
		return nil, err
	}

	return controller.New(controller.Config{
		Form:      cfg,
		Registry:  o.registry,
		Observer:  o.observer,
		Logger:    o.logger,
		Messages:  validation.NewMessages(tag),
		Separator: o.separator,
	})
}

// MustNew is like New but panics on error.
// Useful for static form definitions in main().
func MustNew(cfg FormConfig, opts ...Option) Controller {
	ctrl, err := New(cfg, opts...)
	if err != nil {
		panic(err)
	}
	return ctrl
}

// NewRegistry returns a registry holding the built-in requiredIf and equals
// validators. A nil logger uses slog.Default().
func NewRegistry(logger *slog.Logger) *Registry {
	return registry.New(logger)
}

// SettingsFromEnv reads STEPFORM_LOG_LEVEL, STEPFORM_LOCALE and
// STEPFORM_ERROR_SEPARATOR.
func SettingsFromEnv() (Settings, error) {
	return settings.FromEnv()
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return settings.Default()
}
