// Package formspec reads and writes form definitions as YAML.
//
// A document lists steps in order, and each step lists its fields:
//
//	steps:
//	  - id: account
//	    title: Account
//	    fields:
//	      - id: email
//	        type: email
//	        label: Email
//	        required: true
//	      - id: confirm
//	        type: email
//	        label: Confirm email
//	        validation:
//	          rules:
//	            - validator: equals
//	              params: {targetField: email}
//	defaultValues:
//	  email: gopher@example.com
//
// Rules are resolved by validator name at validation time, so any name
// registered with the controller may be used. Go callbacks (custom field
// predicates, step validators) cannot be expressed in YAML; attach them with
// StepValidator and CustomValidator when parsing.
package formspec

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"regexp"
	"slices"

	"sigs.k8s.io/yaml"

	"github.com/petrijr/stepform/internal/schema"
	"github.com/petrijr/stepform/pkg/api"
)

// ErrUnknownTarget is returned when a callback is attached to a step or
// field the document does not define.
var ErrUnknownTarget = errors.New("unknown step or field")

// Document is the serialized form of an api.FormConfig.
type Document struct {
	Steps         []StepSpec     `json:"steps"`
	DefaultValues map[string]any `json:"defaultValues,omitempty"`
}

// StepSpec is one step of a Document. Fields keep their document order.
type StepSpec struct {
	ID          string      `json:"id"`
	Title       string      `json:"title,omitempty"`
	Description string      `json:"description,omitempty"`
	Fields      []FieldSpec `json:"fields,omitempty"`
}

// FieldSpec is the serialized form of an api.Field, keyed by ID.
type FieldSpec struct {
	ID          string         `json:"id"`
	Type        api.FieldType  `json:"type"`
	Label       string         `json:"label,omitempty"`
	Value       any            `json:"value,omitempty"`
	Placeholder string         `json:"placeholder,omitempty"`
	HelperText  string         `json:"helperText,omitempty"`
	Required    bool           `json:"required,omitempty"`
	Disabled    bool           `json:"disabled,omitempty"`
	Hidden      bool           `json:"hidden,omitempty"`
	Options     []api.Option   `json:"options,omitempty"`
	Props       map[string]any `json:"props,omitempty"`

	Validation *ValidationSpec `json:"validation,omitempty"`
}

// ValidationSpec mirrors api.Validation. Pattern is a Go regexp source;
// custom predicates are attached with CustomValidator.
type ValidationSpec struct {
	Required  bool     `json:"required,omitempty"`
	Pattern   string   `json:"pattern,omitempty"`
	MinLength *int     `json:"minLength,omitempty"`
	MaxLength *int     `json:"maxLength,omitempty"`
	Min       *float64 `json:"min,omitempty"`
	Max       *float64 `json:"max,omitempty"`

	Rules []RuleSpec `json:"rules,omitempty"`

	DynamicValidator       string     `json:"dynamicValidator,omitempty"`
	DynamicValidatorParams api.Params `json:"dynamicValidatorParams,omitempty"`

	ErrorMessages    *MessagesSpec `json:"errorMessages,omitempty"`
	ErrorMessage     string        `json:"errorMessage,omitempty"`
	CollectAllErrors bool          `json:"collectAllErrors,omitempty"`
}

// MessagesSpec mirrors api.ErrorMessages.
type MessagesSpec struct {
	Required  string `json:"required,omitempty"`
	Pattern   string `json:"pattern,omitempty"`
	MinLength string `json:"minLength,omitempty"`
	MaxLength string `json:"maxLength,omitempty"`
	Min       string `json:"min,omitempty"`
	Max       string `json:"max,omitempty"`
	Email     string `json:"email,omitempty"`
	Custom    string `json:"custom,omitempty"`
}

// RuleSpec references a registered validator by name.
type RuleSpec struct {
	Validator    string     `json:"validator"`
	Params       api.Params `json:"params,omitempty"`
	ErrorMessage string     `json:"errorMessage,omitempty"`
}

// Option attaches Go callbacks while parsing.
type Option func(*hooks)

type hooks struct {
	steps  map[string]api.StepFunc
	custom map[[2]string]api.CustomFunc
}

// StepValidator sets the step-level validator of stepID.
func StepValidator(stepID string, fn api.StepFunc) Option {
	return func(h *hooks) { h.steps[stepID] = fn }
}

// CustomValidator sets the custom predicate of a field.
func CustomValidator(stepID, fieldID string, fn api.CustomFunc) Option {
	return func(h *hooks) { h.custom[[2]string{stepID, fieldID}] = fn }
}

// Load reads and parses the YAML document at path.
func Load(path string, opts ...Option) (api.FormConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return api.FormConfig{}, fmt.Errorf("read form spec %s: %w", path, err)
	}
	return Parse(data, opts...)
}

// Parse decodes a YAML (or JSON) document into a checked FormConfig.
// Unknown keys are rejected. Structural problems yield an error wrapping
// api.ErrInvalidConfig.
func Parse(data []byte, opts ...Option) (api.FormConfig, error) {
	var doc Document
	if err := yaml.UnmarshalStrict(data, &doc); err != nil {
		return api.FormConfig{}, fmt.Errorf("unmarshaling yaml as form spec: %w", err)
	}

	cfg, err := doc.Config()
	if err != nil {
		return api.FormConfig{}, err
	}

	h := hooks{
		steps:  make(map[string]api.StepFunc),
		custom: make(map[[2]string]api.CustomFunc),
	}
	for _, opt := range opts {
		opt(&h)
	}
	if err := h.apply(&cfg); err != nil {
		return api.FormConfig{}, err
	}

	return schema.Check(cfg)
}

// Config converts the document. Patterns are compiled here; a field id
// used twice within one step is an error.
func (d Document) Config() (api.FormConfig, error) {
	cfg := api.FormConfig{
		Steps:         make([]api.Step, 0, len(d.Steps)),
		DefaultValues: d.DefaultValues,
	}
	for _, s := range d.Steps {
		step := api.Step{
			ID:          s.ID,
			Title:       s.Title,
			Description: s.Description,
			Fields:      make(map[string]api.Field, len(s.Fields)),
		}
		for _, fs := range s.Fields {
			if _, dup := step.Fields[fs.ID]; dup {
				return api.FormConfig{}, fmt.Errorf("%w: step %q: duplicate field %q", api.ErrInvalidConfig, s.ID, fs.ID)
			}
			f, err := fs.field()
			if err != nil {
				return api.FormConfig{}, fmt.Errorf("step %q field %q: %w", s.ID, fs.ID, err)
			}
			step.Fields[fs.ID] = f
		}
		cfg.Steps = append(cfg.Steps, step)
	}
	return cfg, nil
}

func (fs FieldSpec) field() (api.Field, error) {
	f := api.Field{
		ID:          fs.ID,
		Type:        fs.Type,
		Label:       fs.Label,
		Value:       fs.Value,
		Placeholder: fs.Placeholder,
		HelperText:  fs.HelperText,
		Required:    fs.Required,
		Disabled:    fs.Disabled,
		Hidden:      fs.Hidden,
		Options:     fs.Options,
		Props:       fs.Props,
	}
	if fs.Validation == nil {
		return f, nil
	}

	v := fs.Validation
	f.Validation = api.Validation{
		Required:               v.Required,
		MinLength:              v.MinLength,
		MaxLength:              v.MaxLength,
		Min:                    v.Min,
		Max:                    v.Max,
		DynamicValidator:       v.DynamicValidator,
		DynamicValidatorParams: v.DynamicValidatorParams,
		ErrorMessage:           v.ErrorMessage,
		CollectAllErrors:       v.CollectAllErrors,
	}
	if v.Pattern != "" {
		re, err := regexp.Compile(v.Pattern)
		if err != nil {
			return api.Field{}, fmt.Errorf("compile pattern: %w", err)
		}
		f.Validation.Pattern = re
	}
	if m := v.ErrorMessages; m != nil {
		f.Validation.ErrorMessages = api.ErrorMessages(*m)
	}
	for _, r := range v.Rules {
		if r.Validator == "" {
			return api.Field{}, errors.New("rule without validator name")
		}
		// Built-in validators read their message from params.
		args := r.Params
		if r.ErrorMessage != "" {
			args = maps.Clone(args)
			if args == nil {
				args = api.Params{}
			}
			args["errorMessage"] = r.ErrorMessage
		}
		f.Validation.Rules = append(f.Validation.Rules, api.Named{
			Name:    r.Validator,
			Args:    args,
			Message: r.ErrorMessage,
		})
	}
	return f, nil
}

func (h hooks) apply(cfg *api.FormConfig) error {
	index := make(map[string]int, len(cfg.Steps))
	for i, s := range cfg.Steps {
		index[s.ID] = i
	}

	for stepID, fn := range h.steps {
		i, ok := index[stepID]
		if !ok {
			return fmt.Errorf("step validator for %q: %w", stepID, ErrUnknownTarget)
		}
		cfg.Steps[i].Validate = fn
	}
	for key, fn := range h.custom {
		i, ok := index[key[0]]
		if !ok {
			return fmt.Errorf("custom validator for %s.%s: %w", key[0], key[1], ErrUnknownTarget)
		}
		f, ok := cfg.Steps[i].Fields[key[1]]
		if !ok {
			return fmt.Errorf("custom validator for %s.%s: %w", key[0], key[1], ErrUnknownTarget)
		}
		f.Validation.Custom = fn
		cfg.Steps[i].Fields[key[1]] = f
	}
	return nil
}

// Marshal encodes cfg as YAML. Fields are written in id order. Go callbacks
// (step validators and custom predicates) are not representable and are
// left out.
func Marshal(cfg api.FormConfig) ([]byte, error) {
	data, err := yaml.Marshal(FromConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("marshaling form spec as yaml: %w", err)
	}
	return data, nil
}

// FromConfig converts cfg into its serializable form.
func FromConfig(cfg api.FormConfig) Document {
	doc := Document{
		Steps:         make([]StepSpec, 0, len(cfg.Steps)),
		DefaultValues: cfg.DefaultValues,
	}
	for _, s := range cfg.Steps {
		spec := StepSpec{ID: s.ID, Title: s.Title, Description: s.Description}

		ids := make([]string, 0, len(s.Fields))
		for id := range s.Fields {
			ids = append(ids, id)
		}
		slices.Sort(ids)

		for _, id := range ids {
			spec.Fields = append(spec.Fields, fieldSpec(id, s.Fields[id]))
		}
		doc.Steps = append(doc.Steps, spec)
	}
	return doc
}

func fieldSpec(id string, f api.Field) FieldSpec {
	fs := FieldSpec{
		ID:          id,
		Type:        f.Type,
		Label:       f.Label,
		Value:       f.Value,
		Placeholder: f.Placeholder,
		HelperText:  f.HelperText,
		Required:    f.Required,
		Disabled:    f.Disabled,
		Hidden:      f.Hidden,
		Options:     f.Options,
		Props:       f.Props,
	}

	v := f.Validation
	vs := ValidationSpec{
		Required:               v.Required,
		MinLength:              v.MinLength,
		MaxLength:              v.MaxLength,
		Min:                    v.Min,
		Max:                    v.Max,
		DynamicValidator:       v.DynamicValidator,
		DynamicValidatorParams: v.DynamicValidatorParams,
		ErrorMessage:           v.ErrorMessage,
		CollectAllErrors:       v.CollectAllErrors,
	}
	if v.Pattern != nil {
		vs.Pattern = v.Pattern.String()
	}
	if v.ErrorMessages != (api.ErrorMessages{}) {
		m := MessagesSpec(v.ErrorMessages)
		vs.ErrorMessages = &m
	}
	for _, r := range v.Rules {
		vs.Rules = append(vs.Rules, RuleSpec{
			Validator:    r.Validator(),
			Params:       r.Params(),
			ErrorMessage: r.ErrorMessage(),
		})
	}

	if !isZeroValidation(vs) {
		fs.Validation = &vs
	}
	return fs
}

func isZeroValidation(v ValidationSpec) bool {
	return !v.Required && v.Pattern == "" &&
		v.MinLength == nil && v.MaxLength == nil && v.Min == nil && v.Max == nil &&
		len(v.Rules) == 0 && v.DynamicValidator == "" && len(v.DynamicValidatorParams) == 0 &&
		v.ErrorMessages == nil && v.ErrorMessage == "" && !v.CollectAllErrors
}
