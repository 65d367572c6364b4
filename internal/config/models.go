package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// Required setting keys.
const (
	SettingSerialDevice   = "serial_device"
	SettingSerialBaudrate = "serial_baudrate"
	// SettingTerminalCommand optionally replaces the built-in session launcher.
	SettingTerminalCommand = "terminal_command"
)

// LegacyUnitType names the unit type synthesized from a document that only
// carries a top-level button_groups list.
const LegacyUnitType = "default"

// Config is the root of a button layout file.
type Config struct {
	Settings  Settings             `json:"settings"`
	UnitTypes map[string]*UnitType `json:"unit_types"`
}

// UnitType is one selectable profile of button groups.
type UnitType struct {
	Description  string        `json:"description,omitempty"`
	ButtonGroups []ButtonGroup `json:"button_groups"`
}

// ButtonGroup is a titled cluster of buttons.
type ButtonGroup struct {
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	GroupType   GroupType `json:"group_type,omitempty"`
	Buttons     []Button  `json:"buttons"`
}

// Button binds a label to an action and its payload.
type Button struct {
	Text    string `json:"text"`
	Action  Action `json:"action"`
	Command string `json:"command,omitempty"`
	Key     string `json:"key,omitempty"`
	Style   *Style `json:"style,omitempty"`
}

// Payload returns the template the action sends or runs.
// send_bios_key reads Key and falls back to Command.
func (b Button) Payload() string {
	if b.Action == ActionSendBIOSKey && b.Key != "" {
		return b.Key
	}
	return b.Command
}

// Style holds optional button colors.
type Style struct {
	Bg string `json:"bg,omitempty"`
	Fg string `json:"fg,omitempty"`
}

// UnmarshalJSON accepts both bg/fg and background/foreground.
func (s *Style) UnmarshalJSON(data []byte) error {
	var raw struct {
		Bg         string `json:"bg"`
		Fg         string `json:"fg"`
		Background string `json:"background"`
		Foreground string `json:"foreground"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	s.Bg = firstNonEmpty(raw.Bg, raw.Background)
	s.Fg = firstNonEmpty(raw.Fg, raw.Foreground)
	return nil
}

// IsZero reports whether no color is set.
func (s *Style) IsZero() bool {
	return s == nil || (s.Bg == "" && s.Fg == "")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// UnmarshalJSON decodes both the unit_types layout and the legacy layout
// with a single top-level button_groups list.
func (c *Config) UnmarshalJSON(data []byte) error {
	var doc struct {
		Settings     Settings             `json:"settings"`
		UnitTypes    map[string]*UnitType `json:"unit_types"`
		ButtonGroups []ButtonGroup        `json:"button_groups"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}

	c.Settings = doc.Settings
	c.UnitTypes = doc.UnitTypes
	if c.UnitTypes == nil && doc.ButtonGroups != nil {
		c.UnitTypes = map[string]*UnitType{
			LegacyUnitType: {ButtonGroups: doc.ButtonGroups},
		}
	}
	c.normalize()
	return nil
}

// normalize replaces nil collections with empty ones so a saved file
// always has [] and {} rather than null.
func (c *Config) normalize() {
	if c.Settings == nil {
		c.Settings = Settings{}
	}
	if c.UnitTypes == nil {
		c.UnitTypes = make(map[string]*UnitType)
	}
	for name, ut := range c.UnitTypes {
		if ut == nil {
			ut = &UnitType{}
			c.UnitTypes[name] = ut
		}
		if ut.ButtonGroups == nil {
			ut.ButtonGroups = []ButtonGroup{}
		}
		for i := range ut.ButtonGroups {
			if ut.ButtonGroups[i].Buttons == nil {
				ut.ButtonGroups[i].Buttons = []Button{}
			}
		}
	}
}

// UnitTypeNames returns the unit type names in sorted order.
func (c *Config) UnitTypeNames() []string {
	names := make([]string, 0, len(c.UnitTypes))
	for name := range c.UnitTypes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// UnitType returns the named unit type, or nil.
func (c *Config) UnitType(name string) *UnitType {
	return c.UnitTypes[name]
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	out := &Config{
		Settings:  c.Settings.Clone(),
		UnitTypes: make(map[string]*UnitType, len(c.UnitTypes)),
	}
	for name, ut := range c.UnitTypes {
		out.UnitTypes[name] = ut.Clone()
	}
	return out
}

// Clone returns a deep copy.
func (u *UnitType) Clone() *UnitType {
	if u == nil {
		return nil
	}
	out := &UnitType{
		Description:  u.Description,
		ButtonGroups: make([]ButtonGroup, len(u.ButtonGroups)),
	}
	for i, g := range u.ButtonGroups {
		out.ButtonGroups[i] = g.Clone()
	}
	return out
}

// Clone returns a deep copy.
func (g ButtonGroup) Clone() ButtonGroup {
	out := g
	out.Buttons = make([]Button, len(g.Buttons))
	for i, b := range g.Buttons {
		out.Buttons[i] = b.Clone()
	}
	return out
}

// Clone returns a deep copy.
func (b Button) Clone() Button {
	if b.Style != nil {
		style := *b.Style
		b.Style = &style
	}
	return b
}

// Settings is the flat key/value settings table. Values are strings or
// numbers; numbers keep their literal text.
type Settings map[string]Setting

// Setting is one settings value.
type Setting struct {
	Value  string
	Number bool
}

// String returns the value as used in placeholder substitution.
func (s Setting) String() string {
	return s.Value
}

// StringSetting builds a string-valued setting.
func StringSetting(v string) Setting {
	return Setting{Value: v}
}

// NumberSetting builds a number-valued setting from its literal text.
func NumberSetting(literal string) Setting {
	return Setting{Value: literal, Number: true}
}

// MarshalJSON writes numbers bare and everything else quoted.
func (s Setting) MarshalJSON() ([]byte, error) {
	if s.Number {
		return []byte(s.Value), nil
	}
	return marshalString(s.Value)
}

// UnmarshalJSON accepts a JSON string or number.
func (s *Setting) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("empty setting value")
	}
	switch data[0] {
	case '"':
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = StringSetting(v)
		return nil
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return err
		}
		*s = NumberSetting(n.String())
		return nil
	default:
		return fmt.Errorf("setting value must be a string or number, got %s", data)
	}
}

// Get returns the string form of a setting and whether it exists.
func (s Settings) Get(key string) (string, bool) {
	v, ok := s[key]
	return v.Value, ok
}

// Strings flattens the settings for placeholder substitution.
func (s Settings) Strings() map[string]string {
	out := make(map[string]string, len(s))
	for k, v := range s {
		out[k] = v.Value
	}
	return out
}

// Clone returns a copy.
func (s Settings) Clone() Settings {
	out := make(Settings, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

func marshalString(v string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
