package validation

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/petrijr/stepform/pkg/api"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Runner resolves dynamic validators by name.
type Runner interface {
	Run(name string, value any, ctx api.ValidatorContext, params api.Params) error
}

// Validator evaluates field rules. The zero value uses English messages and
// skips dynamic validators.
type Validator struct {
	Runner   Runner
	Messages *Messages
}

// collector accumulates failures and decides whether evaluation stops.
type collector struct {
	all    bool
	errors []string
}

// add records msg and reports whether evaluation should stop.
func (c *collector) add(msg string) bool {
	c.errors = append(c.errors, msg)
	return !c.all
}

func (c *collector) result() api.Result {
	if len(c.errors) == 0 {
		return api.Result{Valid: true}
	}
	return api.Result{Valid: false, Error: c.errors[0], Errors: c.errors}
}

// ValidateField checks value against the rules of field in a fixed order:
// required, type rules, custom predicate, legacy dynamic validator, rules.
// Dynamic validators only run when ctx is non-nil. With collectAll every
// failing rule is reported, otherwise evaluation stops at the first one.
func (v Validator) ValidateField(field api.Field, value any, ctx *api.ValidatorContext, collectAll bool) api.Result {
	if field.Disabled {
		return api.Result{Valid: true}
	}

	msgs := v.messages()
	rules := field.Validation
	c := &collector{all: collectAll}

	if field.IsRequired() && field.IsEmpty(value) {
		if c.add(pick(rules.ErrorMessages.Required, rules.ErrorMessage, msgs.Required(field.Label))) {
			return c.result()
		}
	}

	// An empty optional field skips every other rule.
	if value == nil || value == "" {
		return c.result()
	}

	if v.typeRules(field, value, c) {
		return c.result()
	}

	if rules.Custom != nil {
		if err := rules.Custom(value); err != nil {
			msg := failureMessage(err, pick(rules.ErrorMessages.Custom, rules.ErrorMessage, msgs.Invalid(field.Label)))
			if c.add(msg) {
				return c.result()
			}
		}
	}

	if ctx == nil || v.Runner == nil {
		return c.result()
	}

	vctx := *ctx
	vctx.Field = field
	if vctx.FormData == nil {
		vctx.FormData = map[string]any{}
	}

	if rules.DynamicValidator != "" {
		if err := v.Runner.Run(rules.DynamicValidator, value, vctx, rules.DynamicValidatorParams); err != nil {
			if c.add(failureMessage(err, pick(rules.ErrorMessage, msgs.Invalid(field.Label)))) {
				return c.result()
			}
		}
	}

	for _, rule := range rules.Rules {
		if rule == nil {
			continue
		}
		if err := v.Runner.Run(rule.Validator(), value, vctx, rule.Params()); err != nil {
			if c.add(failureMessage(err, pick(rule.ErrorMessage(), rules.ErrorMessage, msgs.Invalid(field.Label)))) {
				return c.result()
			}
		}
	}

	return c.result()
}

// typeRules applies the rules selected by the field type and reports
// whether evaluation should stop.
func (v Validator) typeRules(field api.Field, value any, c *collector) bool {
	msgs := v.messages()
	rules := field.Validation

	switch field.Type {
	case api.FieldEmail:
		if !emailPattern.MatchString(fmt.Sprint(value)) {
			return c.add(pick(rules.ErrorMessages.Email, rules.ErrorMessage, msgs.Email()))
		}

	case api.FieldText, api.FieldTextarea, api.FieldPassword:
		s := fmt.Sprint(value)
		n := utf8.RuneCountInString(s)
		if rules.MinLength != nil && n < *rules.MinLength {
			if c.add(pick(rules.ErrorMessages.MinLength, rules.ErrorMessage, msgs.MinLength(field.Label, *rules.MinLength))) {
				return true
			}
		}
		if rules.MaxLength != nil && n > *rules.MaxLength {
			if c.add(pick(rules.ErrorMessages.MaxLength, rules.ErrorMessage, msgs.MaxLength(field.Label, *rules.MaxLength))) {
				return true
			}
		}
		if rules.Pattern != nil && !rules.Pattern.MatchString(s) {
			if c.add(pick(rules.ErrorMessages.Pattern, rules.ErrorMessage, msgs.Pattern(field.Label))) {
				return true
			}
		}

	case api.FieldNumber, api.FieldTel:
		// A value that does not parse as a number compares false against
		// both bounds, like NaN.
		n := toFloat(value)
		if rules.Min != nil && n < *rules.Min {
			if c.add(pick(rules.ErrorMessages.Min, rules.ErrorMessage, msgs.Min(field.Label, *rules.Min))) {
				return true
			}
		}
		if rules.Max != nil && n > *rules.Max {
			if c.add(pick(rules.ErrorMessages.Max, rules.ErrorMessage, msgs.Max(field.Label, *rules.Max))) {
				return true
			}
		}
	}
	return false
}

func (v Validator) messages() *Messages {
	if v.Messages == nil {
		return englishMessages
	}
	return v.Messages
}

// failureMessage converts a predicate error into a message. ErrInvalid
// selects fallback, any other error supplies its own text.
func failureMessage(err error, fallback string) string {
	if errors.Is(err, api.ErrInvalid) {
		return fallback
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return fallback
}

// pick returns the first non-empty candidate.
func pick(candidates ...string) string {
	for _, s := range candidates {
		if s != "" {
			return s
		}
	}
	return ""
}

func toFloat(value any) float64 {
	switch n := value.(type) {
	case int:
		return float64(n)
	case int8:
		return float64(n)
	case int16:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case uint:
		return float64(n)
	case uint8:
		return float64(n)
	case uint16:
		return float64(n)
	case uint32:
		return float64(n)
	case uint64:
		return float64(n)
	case float32:
		return float64(n)
	case float64:
		return n
	case bool:
		if n {
			return 1
		}
		return 0
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return 0
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}
	return math.NaN()
}
