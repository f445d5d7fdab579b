package validation

import (
	"testing"

	"github.com/petrijr/stepform/pkg/api"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestMessagesEnglishDefaults(t *testing.T) {
	m := NewMessages(language.English)

	require.Equal(t, "Name is required", m.Required("Name"))
	require.Equal(t, "Please enter a valid email address", m.Email())
	require.Equal(t, "Name must be at least 3 characters", m.MinLength("Name", 3))
	require.Equal(t, "Name cannot exceed 9 characters", m.MaxLength("Name", 9))
	require.Equal(t, "Age must be at least 18", m.Min("Age", 18))
	require.Equal(t, "Age cannot exceed 0.5", m.Max("Age", 0.5))
	require.Equal(t, "Invalid field", m.InvalidField())
	require.Equal(t, "Invalid step data", m.InvalidStep())
}

func TestMessagesDoNotGroupDigits(t *testing.T) {
	m := NewMessages(language.English)

	require.Equal(t, "Bio must be at least 1000 characters", m.MinLength("Bio", 1000))
	require.Equal(t, "Bio cannot exceed 25000 characters", m.MaxLength("Bio", 25000))
	require.Equal(t, "Price cannot exceed 1000000", m.Max("Price", 1e6))

	de := NewMessages(language.German)
	require.Equal(t, "Bio muss mindestens 1000 Zeichen lang sein", de.MinLength("Bio", 1000))
}

func TestMessagesGerman(t *testing.T) {
	tag, err := ParseLocale("de-DE")
	require.NoError(t, err)
	m := NewMessages(tag)

	require.Equal(t, "Name ist erforderlich", m.Required("Name"))
	require.Equal(t, "Name hat ein ungültiges Format", m.Pattern("Name"))
}

func TestMessagesUnknownLocaleFallsBackToEnglish(t *testing.T) {
	tag, err := ParseLocale("fr")
	require.NoError(t, err)

	require.Equal(t, "Name is invalid", NewMessages(tag).Invalid("Name"))
}

func TestParseLocale(t *testing.T) {
	tag, err := ParseLocale("")
	require.NoError(t, err)
	require.Equal(t, language.English, tag)

	_, err = ParseLocale("not a locale!")
	require.Error(t, err)
}

func TestValidatorUsesLocalizedMessages(t *testing.T) {
	v := Validator{Messages: NewMessages(language.German)}
	field := api.Field{Type: api.FieldText, Label: "Name", Required: true}

	require.Equal(t, "Name ist erforderlich", v.ValidateField(field, "", nil, false).Error)
}
