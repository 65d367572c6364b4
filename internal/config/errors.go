package config

import (
	"fmt"
	"strings"
)

// NotFoundError means the config file does not exist.
type NotFoundError struct {
	Path string
	Err  error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("config file not found: %s\n"+
		"Hint: pass --config or set PORTCTL_CONFIG to point at your button layout", e.Path)
}

func (e *NotFoundError) Unwrap() error {
	return e.Err
}

// ParseError means the file is not well-formed JSON or breaks the schema.
// Line and Column are 1-based and zero when unknown.
type ParseError struct {
	Path   string
	Line   int
	Column int
	Err    error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("failed to parse %s at line %d, column %d: %v", e.Path, e.Line, e.Column, e.Err)
	}
	return fmt.Sprintf("failed to parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// MissingSettingError means a required settings key is absent.
type MissingSettingError struct {
	Name string
}

func (e *MissingSettingError) Error() string {
	return fmt.Sprintf("missing required setting %q", e.Name)
}

// ValidationError collects structural problems found in a layout.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	if len(e.Problems) == 1 {
		return "invalid config: " + e.Problems[0]
	}
	return fmt.Sprintf("invalid config (%d problems):\n  - %s",
		len(e.Problems), strings.Join(e.Problems, "\n  - "))
}

func (e *ValidationError) add(format string, args ...any) {
	e.Problems = append(e.Problems, fmt.Sprintf(format, args...))
}

// WriteError means the config could not be persisted. The in-memory
// config is unaffected.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to save config to %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}
