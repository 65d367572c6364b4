// Package appenv reads the PORTCTL_* environment overrides.
package appenv

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// DefaultConfigPath is used when neither --config nor PORTCTL_CONFIG is given.
const DefaultConfigPath = "config.json"

// Env holds environment-level settings. Command-line flags take precedence.
type Env struct {
	// ConfigPath is the JSON button layout file.
	ConfigPath string `envconfig:"PORTCTL_CONFIG" default:"config.json"`

	// LogLevel enables the diagnostics log ("debug", "info", "warn", "error").
	// Empty keeps it silent.
	LogLevel string `envconfig:"PORTCTL_LOG_LEVEL"`

	// LogFile is where diagnostics go. Empty selects the user cache dir.
	LogFile string `envconfig:"PORTCTL_LOG_FILE"`

	// Shell replaces the platform command interpreter for local commands.
	Shell string `envconfig:"PORTCTL_SHELL"`

	// NoAltScreen renders the TUI inline instead of on the alternate screen.
	NoAltScreen bool `envconfig:"PORTCTL_NO_ALT_SCREEN" default:"false"`
}

// Load reads the environment.
func Load() (*Env, error) {
	var env Env
	if err := envconfig.Process("", &env); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	return &env, nil
}

// Default returns the values Load would produce with an empty environment.
func Default() *Env {
	return &Env{ConfigPath: DefaultConfigPath}
}
