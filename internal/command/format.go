// Package command substitutes named settings into button command templates.
//
// Templates use {name} placeholders; {{ and }} produce literal braces:
//
//	Format("stty -F {serial_device} {serial_baudrate}", settings)
//	Format("awk '{{print $1}}' /proc/loadavg", settings)
package command

import (
	"fmt"
	"strings"
)

// UnknownSettingKeyError means a placeholder names a setting that does not exist.
type UnknownSettingKeyError struct {
	Key      string
	Template string
}

func (e *UnknownSettingKeyError) Error() string {
	return fmt.Sprintf("unknown setting %q in command %q", e.Key, e.Template)
}

// SyntaxError is a malformed template: an unterminated or empty placeholder,
// or a stray closing brace.
type SyntaxError struct {
	Template string
	Offset   int
	Message  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("invalid command template %q at offset %d: %s", e.Template, e.Offset, e.Message)
}

// Format replaces every {key} in template with settings[key].
func Format(template string, settings map[string]string) (string, error) {
	var out strings.Builder
	err := scan(template, func(literal string) {
		out.WriteString(literal)
	}, func(key string) error {
		value, ok := settings[key]
		if !ok {
			return &UnknownSettingKeyError{Key: key, Template: template}
		}
		out.WriteString(value)
		return nil
	})
	if err != nil {
		return "", err
	}
	return out.String(), nil
}

// Placeholders lists the keys a template references, in order of first use.
func Placeholders(template string) ([]string, error) {
	var keys []string
	seen := make(map[string]bool)
	err := scan(template, func(string) {}, func(key string) error {
		if !seen[key] {
			seen[key] = true
			keys = append(keys, key)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return keys, nil
}

// Check reports the first problem Format would hit with these settings.
func Check(template string, settings map[string]string) error {
	_, err := Format(template, settings)
	return err
}

func scan(template string, literal func(string), placeholder func(string) error) error {
	start := 0
	for i := 0; i < len(template); i++ {
		switch template[i] {
		case '{':
			if i+1 < len(template) && template[i+1] == '{' {
				literal(template[start:i] + "{")
				i++
				start = i + 1
				continue
			}
			end := strings.IndexByte(template[i+1:], '}')
			if end < 0 {
				return &SyntaxError{Template: template, Offset: i, Message: "unterminated placeholder"}
			}
			key := strings.TrimSpace(template[i+1 : i+1+end])
			if key == "" {
				return &SyntaxError{Template: template, Offset: i, Message: "empty placeholder"}
			}
			if strings.ContainsRune(key, '{') {
				return &SyntaxError{Template: template, Offset: i, Message: "nested placeholder"}
			}
			literal(template[start:i])
			if err := placeholder(key); err != nil {
				return err
			}
			i += end + 1
			start = i + 1
		case '}':
			if i+1 < len(template) && template[i+1] == '}' {
				literal(template[start:i] + "}")
				i++
				start = i + 1
				continue
			}
			return &SyntaxError{Template: template, Offset: i, Message: "single '}' is not allowed"}
		}
	}
	literal(template[start:])
	return nil
}
