package stepform

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormBuilder_BuildAndNew(t *testing.T) {
	errMismatch := errors.New("passwords differ")

	form := NewForm().
		Default("email", "gopher@example.com").
		Step("account", "Account").
		Describe("Sign-in details").
		Field("email", Field{Type: FieldEmail, Label: "Email", Required: true}).
		Field("password", Field{Type: FieldPassword, Label: "Password", Required: true}).
		Field("confirm", Field{Type: FieldPassword, Label: "Confirm"}).
		Validate(func(data map[string]any) error {
			if data["password"] != data["confirm"] {
				return errMismatch
			}
			return nil
		}).
		Step("profile", "Profile").
		Field("name", Field{Type: FieldText, Label: "Name"})

	cfg := form.Config()
	require.Len(t, cfg.Steps, 2)
	require.Equal(t, "Sign-in details", cfg.Steps[0].Description)
	require.Equal(t, "email", cfg.Steps[0].Fields["email"].ID)
	require.NotNil(t, cfg.Steps[0].Validate)
	require.Equal(t, "gopher@example.com", cfg.DefaultValues["email"])

	ctrl, err := form.New(WithLogger(quietLogger()))
	require.NoError(t, err)
	require.Equal(t, "gopher@example.com", ctrl.StepData("account")["email"])

	ctrl.UpdateField("account", "password", "secret")
	ctrl.UpdateField("account", "confirm", "other")
	require.False(t, ctrl.ValidateStep("account", true))
	require.Equal(t, "passwords differ", ctrl.FieldErrors().Get()["account"][StepErrorKey])
}

func TestFormBuilder_ConfigIsACopy(t *testing.T) {
	form := NewForm().
		Step("a", "A").
		Field("x", Field{Type: FieldText})

	cfg := form.Config()
	cfg.Steps[0].Fields["y"] = Field{Type: FieldText}
	cfg.DefaultValues = map[string]any{"x": 1}

	form.Field("z", Field{Type: FieldText})

	again := form.Config()
	require.Len(t, again.Steps[0].Fields, 2)
	require.NotContains(t, again.Steps[0].Fields, "y")
	require.Nil(t, again.DefaultValues)
	require.Len(t, cfg.Steps[0].Fields, 2)
	require.NotContains(t, cfg.Steps[0].Fields, "z")
}

func TestFormBuilder_Misuse(t *testing.T) {
	require.PanicsWithValue(t, "stepform: step id must not be empty", func() {
		NewForm().Step("", "Empty")
	})
	require.PanicsWithValue(t, `stepform: duplicate step id "a"`, func() {
		NewForm().Step("a", "A").Step("a", "again")
	})
	require.PanicsWithValue(t, "stepform: Field called before any Step", func() {
		NewForm().Field("x", Field{Type: FieldText})
	})
	require.PanicsWithValue(t, `stepform: step "a" has a field with an empty id`, func() {
		NewForm().Step("a", "A").Field("", Field{Type: FieldText})
	})
	require.PanicsWithValue(t, `stepform: step "a" has duplicate field "x"`, func() {
		NewForm().Step("a", "A").Field("x", Field{}).Field("x", Field{})
	})
	require.PanicsWithValue(t, `stepform: step "a" has nil validate function`, func() {
		NewForm().Step("a", "A").Validate(nil)
	})
}

func TestFormBuilder_InvalidFieldTypeFailsOnNew(t *testing.T) {
	_, err := NewForm().
		Step("a", "A").
		Field("x", Field{Type: "slider"}).
		New(WithLogger(quietLogger()))
	require.ErrorIs(t, err, ErrInvalidConfig)
	require.Contains(t, err.Error(), `"slider"`)
}
