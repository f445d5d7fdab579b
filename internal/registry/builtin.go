package registry

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/petrijr/stepform/pkg/api"
)

// RequiredIf makes a field required depending on the values of other fields
// of the step. Without a condition or referenced fields it always passes.
func RequiredIf(value any, ctx api.ValidatorContext, params api.Params) error {
	params = paramsOrLegacy(ctx, params)

	condition := api.Condition(stringParam(params, "condition"))
	fields := stringsParam(params, "fields")
	if condition == "" || len(fields) == 0 {
		return nil
	}

	target := params["value"]
	var required bool
	switch condition {
	case api.ConditionEquals:
		for _, id := range fields {
			if Equal(ctx.FormData[id], target) {
				required = true
				break
			}
		}
	case api.ConditionNotEmpty:
		required = true
		for _, id := range fields {
			if v := ctx.FormData[id]; v == nil || v == "" {
				required = false
				break
			}
		}
	case api.ConditionNotEquals:
		required = true
		for _, id := range fields {
			if Equal(ctx.FormData[id], target) {
				required = false
				break
			}
		}
	default:
		return nil
	}

	if !required || !ctx.Field.IsEmpty(value) {
		return nil
	}
	if msg := stringParam(params, "errorMessage"); msg != "" {
		return errors.New(msg)
	}
	return fmt.Errorf("%s is required", ctx.Field.Label)
}

// Equals requires the value to match either the current value of
// targetField or the literal targetValue. targetField wins when both are
// given; with neither the check passes.
func Equals(value any, ctx api.ValidatorContext, params api.Params) error {
	params = paramsOrLegacy(ctx, params)

	targetField := stringParam(params, "targetField")
	targetValue, hasValue := params["targetValue"]

	var want any
	switch {
	case targetField != "":
		want = ctx.FormData[targetField]
	case hasValue && targetValue != nil:
		want = targetValue
	default:
		return nil
	}

	if Equal(value, want) {
		return nil
	}
	if msg := stringParam(params, "errorMessage"); msg != "" {
		return errors.New(msg)
	}
	if targetField != "" {
		return fmt.Errorf("%s must equal the other field", ctx.Field.Label)
	}
	return fmt.Errorf("%s must equal %v", ctx.Field.Label, targetValue)
}

// Equal compares two field values. Numbers compare by value regardless of
// their Go type, so an int from code matches a float64 decoded from YAML.
func Equal(a, b any) bool {
	fa, aok := number(a)
	fb, bok := number(b)
	if aok && bok {
		return fa == fb
	}
	return reflect.DeepEqual(a, b)
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

// paramsOrLegacy lets the built-ins be referenced through the deprecated
// DynamicValidator field, where parameters live on the field itself.
func paramsOrLegacy(ctx api.ValidatorContext, params api.Params) api.Params {
	if params != nil {
		return params
	}
	return ctx.Field.Validation.DynamicValidatorParams
}

func stringParam(params api.Params, key string) string {
	switch v := params[key].(type) {
	case string:
		return v
	case api.Condition:
		return string(v)
	case fmt.Stringer:
		return v.String()
	}
	return ""
}

func stringsParam(params api.Params, key string) []string {
	switch v := params[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case string:
		if v != "" {
			return []string{v}
		}
	}
	return nil
}
