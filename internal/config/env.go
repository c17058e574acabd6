package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// envOverrides sit between the config file and command-line flags.
type envOverrides struct {
	Locale    string `env:"POMICHNYK_LOCALE"`
	UIBackend string `env:"POMICHNYK_UI"`
	DataDir   string `env:"POMICHNYK_DATA_DIR"`
	DaysAhead string `env:"POMICHNYK_DAYS_AHEAD"`
	LogLevel  string `env:"POMICHNYK_LOG_LEVEL"`
	LogFile   string `env:"POMICHNYK_LOG_FILE"`
}

// ApplyEnv overrides settings from POMICHNYK_* variables. Unset or empty
// variables leave the setting alone; invalid values are errors.
func (c *Config) ApplyEnv() error {
	var overrides envOverrides
	if err := env.Parse(&overrides); err != nil {
		return fmt.Errorf("could not parse environment: %w", err)
	}
	pairs := []struct {
		variable string
		key      string
		value    string
	}{
		{"POMICHNYK_LOCALE", "locale", overrides.Locale},
		{"POMICHNYK_UI", "ui.backend", overrides.UIBackend},
		{"POMICHNYK_DATA_DIR", "storage.dir", overrides.DataDir},
		{"POMICHNYK_DAYS_AHEAD", "birthdays.days_ahead", overrides.DaysAhead},
		{"POMICHNYK_LOG_LEVEL", "log.level", overrides.LogLevel},
		{"POMICHNYK_LOG_FILE", "log.file", overrides.LogFile},
	}
	for _, pair := range pairs {
		if pair.value == "" {
			continue
		}
		if err := c.Set(pair.key, pair.value); err != nil {
			return fmt.Errorf("%s: %w", pair.variable, err)
		}
	}
	return nil
}
