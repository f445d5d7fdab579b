package schema

import (
	"errors"
	"fmt"
	"maps"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/petrijr/stepform/pkg/api"
)

var (
	validatorInstance *validator.Validate
	validatorOnce     sync.Once
)

func getValidator() *validator.Validate {
	validatorOnce.Do(func() {
		validatorInstance = validator.New(validator.WithRequiredStructEnabled())

		// report fields by their json names
		validatorInstance.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validatorInstance
}

// Check verifies that cfg is structurally usable: every step has an id,
// step ids are unique, field keys are non-blank and field types are known.
// It returns a copy of cfg with empty field ids filled in from their keys.
// Errors wrap api.ErrInvalidConfig.
func Check(cfg api.FormConfig) (api.FormConfig, error) {
	if err := getValidator().Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return api.FormConfig{}, fmt.Errorf("%w: %v", api.ErrInvalidConfig, err)
		}
		problems := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			problems = append(problems, describe(fe))
		}
		return api.FormConfig{}, fmt.Errorf("%w: %s", api.ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return Normalize(cfg), nil
}

// Normalize returns a copy of cfg whose fields all carry their map key as id.
func Normalize(cfg api.FormConfig) api.FormConfig {
	out := api.FormConfig{
		Steps:         make([]api.Step, len(cfg.Steps)),
		DefaultValues: maps.Clone(cfg.DefaultValues),
	}
	for i, step := range cfg.Steps {
		out.Steps[i] = NormalizeStep(step)
	}
	return out
}

// NormalizeStep returns a copy of step whose fields carry their key as id.
func NormalizeStep(step api.Step) api.Step {
	fields := make(map[string]api.Field, len(step.Fields))
	for id, f := range step.Fields {
		if f.ID == "" {
			f.ID = id
		}
		fields[id] = f
	}
	step.Fields = fields
	return step
}

// CheckStep verifies a single step the way Check verifies a whole config.
func CheckStep(step api.Step) (api.Step, error) {
	cfg, err := Check(api.FormConfig{Steps: []api.Step{step}})
	if err != nil {
		return api.Step{}, err
	}
	return cfg.Steps[0], nil
}

func describe(fe validator.FieldError) string {
	// drop the root struct name: "FormConfig.steps[0].id" -> "steps[0].id"
	path := fe.Namespace()
	if i := strings.Index(path, "."); i >= 0 {
		path = path[i+1:]
	}

	switch fe.Tag() {
	case "required":
		return path + " is required"
	case "unique":
		return path + " must have unique " + strings.ToLower(fe.Param()) + "s"
	case "oneof":
		return fmt.Sprintf("%s has unknown value %q", path, fmt.Sprint(fe.Value()))
	default:
		return fmt.Sprintf("%s failed %s", path, fe.Tag())
	}
}
