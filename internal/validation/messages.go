package validation

import (
	"fmt"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys double as the English format strings. Numbers are
// substituted as preformatted strings so the printer does not group digits.
const (
	msgRequired     = "%s is required"
	msgEmail        = "Please enter a valid email address"
	msgMinLength    = "%s must be at least %s characters"
	msgMaxLength    = "%s cannot exceed %s characters"
	msgPattern      = "%s format is invalid"
	msgMin          = "%s must be at least %s"
	msgMax          = "%s cannot exceed %s"
	msgInvalid      = "%s is invalid"
	msgInvalidField = "Invalid field"
	msgInvalidStep  = "Invalid step data"
)

var translations = map[language.Tag]map[string]string{
	language.German: {
		msgRequired:     "%s ist erforderlich",
		msgEmail:        "Bitte geben Sie eine gültige E-Mail-Adresse ein",
		msgMinLength:    "%s muss mindestens %s Zeichen lang sein",
		msgMaxLength:    "%s darf höchstens %s Zeichen lang sein",
		msgPattern:      "%s hat ein ungültiges Format",
		msgMin:          "%s muss mindestens %s sein",
		msgMax:          "%s darf %s nicht überschreiten",
		msgInvalid:      "%s ist ungültig",
		msgInvalidField: "Ungültiges Feld",
		msgInvalidStep:  "Ungültige Schrittdaten",
	},
}

var (
	defaultCatalog  = mustBuildCatalog()
	englishMessages = NewMessages(language.English)
)

func mustBuildCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for _, key := range []string{
		msgRequired, msgEmail, msgMinLength, msgMaxLength, msgPattern,
		msgMin, msgMax, msgInvalid, msgInvalidField, msgInvalidStep,
	} {
		if err := b.SetString(language.English, key, key); err != nil {
			panic(fmt.Sprintf("stepform: register message %q: %v", key, err))
		}
	}
	for tag, msgs := range translations {
		for key, msg := range msgs {
			if err := b.SetString(tag, key, msg); err != nil {
				panic(fmt.Sprintf("stepform: register message %q for %s: %v", key, tag, err))
			}
		}
	}
	return b
}

// Messages renders the default validation messages for one locale. Locales
// without a translation fall back to English.
type Messages struct {
	tag     language.Tag
	printer *message.Printer
}

// NewMessages returns the messages for tag.
func NewMessages(tag language.Tag) *Messages {
	return &Messages{
		tag:     tag,
		printer: message.NewPrinter(tag, message.Catalog(defaultCatalog)),
	}
}

// ParseLocale parses a BCP 47 tag such as "en" or "de-DE".
func ParseLocale(locale string) (language.Tag, error) {
	if locale == "" {
		return language.English, nil
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return language.Und, fmt.Errorf("parse locale %q: %w", locale, err)
	}
	return tag, nil
}

// Locale returns the tag the messages were built for.
func (m *Messages) Locale() language.Tag { return m.tag }

func (m *Messages) Required(label string) string { return m.printer.Sprintf(msgRequired, label) }
func (m *Messages) Email() string                { return m.printer.Sprintf(msgEmail) }
func (m *Messages) Pattern(label string) string  { return m.printer.Sprintf(msgPattern, label) }
func (m *Messages) Invalid(label string) string  { return m.printer.Sprintf(msgInvalid, label) }
func (m *Messages) InvalidField() string         { return m.printer.Sprintf(msgInvalidField) }
func (m *Messages) InvalidStep() string          { return m.printer.Sprintf(msgInvalidStep) }

func (m *Messages) MinLength(label string, n int) string {
	return m.printer.Sprintf(msgMinLength, label, strconv.Itoa(n))
}

func (m *Messages) MaxLength(label string, n int) string {
	return m.printer.Sprintf(msgMaxLength, label, strconv.Itoa(n))
}

func (m *Messages) Min(label string, v float64) string {
	return m.printer.Sprintf(msgMin, label, formatNumber(v))
}

func (m *Messages) Max(label string, v float64) string {
	return m.printer.Sprintf(msgMax, label, formatNumber(v))
}

// formatNumber prints the shortest representation, so 18 renders as "18"
// rather than "18.000000".
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
