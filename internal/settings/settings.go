package settings

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/caarlos0/env/v11"
)

// Settings are the process-level knobs of a form controller.
type Settings struct {
	LogLevel slog.Level `env:"STEPFORM_LOG_LEVEL" envDefault:"INFO"`
	Locale   string     `env:"STEPFORM_LOCALE"    envDefault:"en"`

	// ErrorSeparator joins the collected errors of a field. Empty selects
	// the default " | ".
	ErrorSeparator string `env:"STEPFORM_ERROR_SEPARATOR"`
}

// Default returns the settings used when nothing is configured.
func Default() Settings {
	return Settings{LogLevel: slog.LevelInfo, Locale: "en"}
}

// FromEnv loads settings from STEPFORM_* environment variables.
func FromEnv() (Settings, error) {
	var s Settings
	if err := env.Parse(&s); err != nil {
		return Settings{}, fmt.Errorf("parse env: %w", err)
	}
	return s, nil
}

// Logger returns a text logger writing to w at the configured level.
func (s Settings) Logger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: s.LogLevel}))
}
