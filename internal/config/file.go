package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/muurk/portctl/internal/command"
	"github.com/muurk/portctl/internal/logging"
)

// Load reads, schema-checks, decodes and validates a layout file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &NotFoundError{Path: path, Err: err}
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	cfg, err := Decode(data, path)
	if err != nil {
		return nil, err
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	logging.LogConfig("loaded", path, nil)
	return cfg, nil
}

// Decode parses a layout document without validating it. path is only
// used in error messages.
func Decode(data []byte, path string) (*Config, error) {
	if !json.Valid(data) {
		// Decode again to get the offset of the first syntax error.
		var scratch any
		err := json.Unmarshal(data, &scratch)
		if err == nil {
			err = errors.New("invalid JSON")
		}
		return nil, newParseError(path, data, err)
	}
	if err := checkSchema(data); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, newParseError(path, data, err)
	}
	return &cfg, nil
}

func newParseError(path string, data []byte, err error) *ParseError {
	pe := &ParseError{Path: path, Err: err}

	var offset int64 = -1
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &syntaxErr):
		offset = syntaxErr.Offset
	case errors.As(err, &typeErr):
		offset = typeErr.Offset
	}
	if offset >= 0 {
		pe.Line, pe.Column = lineColumn(data, offset)
	}
	return pe
}

// lineColumn converts a byte offset to a 1-based line and column.
func lineColumn(data []byte, offset int64) (int, int) {
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	prefix := data[:offset]
	line := bytes.Count(prefix, []byte{'\n'}) + 1
	col := int(offset) - bytes.LastIndexByte(prefix, '\n')
	return line, col
}

// Validate checks required settings, then the layout structure.
func Validate(cfg *Config) error {
	for _, name := range []string{SettingSerialDevice, SettingSerialBaudrate} {
		if _, ok := cfg.Settings[name]; !ok {
			return &MissingSettingError{Name: name}
		}
	}

	verr := &ValidationError{}
	for _, utName := range cfg.UnitTypeNames() {
		ut := cfg.UnitTypes[utName]
		seen := make(map[string]bool, len(ut.ButtonGroups))
		for gi, g := range ut.ButtonGroups {
			where := fmt.Sprintf("unit type %q, group %d", utName, gi+1)
			if g.Title == "" {
				verr.add("%s: empty title", where)
			} else {
				where = fmt.Sprintf("unit type %q, group %q", utName, g.Title)
			}
			if g.Title != "" && seen[g.Title] {
				verr.add("%s: duplicate group title", where)
			}
			seen[g.Title] = true
			if g.GroupType != "" && !g.GroupType.Valid() {
				verr.add("%s: unknown group_type %q", where, g.GroupType)
			}
			for bi, b := range g.Buttons {
				validateButton(verr, fmt.Sprintf("%s, button %d", where, bi+1), b)
			}
		}
	}
	if len(verr.Problems) > 0 {
		return verr
	}
	return nil
}

func validateButton(verr *ValidationError, where string, b Button) {
	if b.Text == "" {
		verr.add("%s: empty text", where)
	} else {
		where = fmt.Sprintf("%s (%q)", where, b.Text)
	}
	if !b.Action.Valid() {
		verr.add("%s: unknown action %q", where, string(b.Action))
		return
	}
	if !b.Action.NeedsPayload() {
		return
	}
	if b.Payload() == "" {
		if b.Action == ActionSendBIOSKey {
			verr.add("%s: send_bios_key needs a key", where)
		} else {
			verr.add("%s: %s needs a command", where, b.Action)
		}
		return
	}
	if _, err := command.Placeholders(b.Payload()); err != nil {
		verr.add("%s: %v", where, err)
	}
}

// Marshal encodes cfg the way Save writes it: sorted keys, two-space
// indentation, no HTML escaping, trailing newline.
func Marshal(cfg *Config) ([]byte, error) {
	cfg.normalize()
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(cfg); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Save writes cfg to path atomically.
func Save(cfg *Config, path string) error {
	data, err := Marshal(cfg)
	if err != nil {
		return &WriteError{Path: path, Err: err}
	}
	if err := writeFileAtomic(path, data); err != nil {
		logging.LogConfig("save failed", path, err)
		return &WriteError{Path: path, Err: err}
	}
	logging.LogConfig("saved", path, nil)
	return nil
}

func writeFileAtomic(path string, data []byte) error {
	perm := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return nil
}
