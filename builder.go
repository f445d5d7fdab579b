package stepform

import (
	"fmt"
	"maps"
)

// FormBuilder provides a fluent API for defining forms:
//
//	form := stepform.NewForm().
//	    Step("account", "Account").
//	    Field("email", stepform.Field{Type: stepform.FieldEmail, Label: "Email", Required: true}).
//	    Field("password", stepform.Field{Type: stepform.FieldPassword, Label: "Password", Required: true}).
//	    Step("profile", "Profile").
//	    Field("name", stepform.Field{Type: stepform.FieldText, Label: "Name"})
//
//	ctrl, err := form.New(stepform.WithLogger(logger))
//
// Field, Describe and Validate apply to the most recently added step.
// Misuse (empty or duplicate ids, a Field before any Step) panics, since
// form definitions are static program text.
type FormBuilder struct {
	cfg FormConfig
}

// NewForm creates an empty form builder.
func NewForm() *FormBuilder {
	return &FormBuilder{
		cfg: FormConfig{Steps: make([]Step, 0)},
	}
}

// Config returns a copy of the FormConfig built so far.
func (b *FormBuilder) Config() FormConfig {
	out := FormConfig{
		Steps:         make([]Step, len(b.cfg.Steps)),
		DefaultValues: maps.Clone(b.cfg.DefaultValues),
	}
	for i, s := range b.cfg.Steps {
		s.Fields = maps.Clone(s.Fields)
		out.Steps[i] = s
	}
	return out
}

// Step appends a step with the given id and title.
func (b *FormBuilder) Step(id, title string) *FormBuilder {
	if id == "" {
		panic("stepform: step id must not be empty")
	}
	for _, s := range b.cfg.Steps {
		if s.ID == id {
			panic(fmt.Sprintf("stepform: duplicate step id %q", id))
		}
	}

	b.cfg.Steps = append(b.cfg.Steps, Step{
		ID:     id,
		Title:  title,
		Fields: make(map[string]Field),
	})
	return b
}

// Describe sets the description of the current step.
func (b *FormBuilder) Describe(text string) *FormBuilder {
	b.current("Describe").Description = text
	return b
}

// Field adds a field to the current step. An empty f.ID is set to id.
func (b *FormBuilder) Field(id string, f Field) *FormBuilder {
	step := b.current("Field")
	if id == "" {
		panic(fmt.Sprintf("stepform: step %q has a field with an empty id", step.ID))
	}
	if _, ok := step.Fields[id]; ok {
		panic(fmt.Sprintf("stepform: step %q has duplicate field %q", step.ID, id))
	}
	if f.ID == "" {
		f.ID = id
	}
	step.Fields[id] = f
	return b
}

// Validate sets the step-level validator of the current step.
func (b *FormBuilder) Validate(fn StepFunc) *FormBuilder {
	step := b.current("Validate")
	if fn == nil {
		panic(fmt.Sprintf("stepform: step %q has nil validate function", step.ID))
	}
	step.Validate = fn
	return b
}

// Default sets a form-wide default value for fieldID. Defaults take
// precedence over each field's own Value.
func (b *FormBuilder) Default(fieldID string, value any) *FormBuilder {
	if b.cfg.DefaultValues == nil {
		b.cfg.DefaultValues = make(map[string]any)
	}
	b.cfg.DefaultValues[fieldID] = value
	return b
}

// New creates a Controller for the built form.
func (b *FormBuilder) New(opts ...Option) (Controller, error) {
	return New(b.Config(), opts...)
}

// MustNew is like New but panics on error.
func (b *FormBuilder) MustNew(opts ...Option) Controller {
	return MustNew(b.Config(), opts...)
}

func (b *FormBuilder) current(method string) *Step {
	if len(b.cfg.Steps) == 0 {
		panic(fmt.Sprintf("stepform: %s called before any Step", method))
	}
	return &b.cfg.Steps[len(b.cfg.Steps)-1]
}
