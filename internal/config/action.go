package config

import (
	"encoding/json"
	"strings"
)

// Action is the closed set of things a button can do.
type Action string

const (
	ActionOpenScreen      Action = "open_screen"
	ActionCloseScreen     Action = "close_screen"
	ActionSendToSerial    Action = "send_to_serial"
	ActionRunLocalCommand Action = "run_local_command"
	ActionSendBIOSKey     Action = "send_bios_key"
)

// Actions lists every valid action.
var Actions = []Action{
	ActionOpenScreen,
	ActionCloseScreen,
	ActionSendToSerial,
	ActionRunLocalCommand,
	ActionSendBIOSKey,
}

var actionAliases = map[string]Action{
	"open_session":  ActionOpenScreen,
	"close_session": ActionCloseScreen,
}

// ParseAction normalizes an action string. Unknown strings come back
// unchanged with ok=false.
func ParseAction(s string) (Action, bool) {
	name := strings.ToLower(strings.TrimSpace(s))
	if alias, ok := actionAliases[name]; ok {
		return alias, true
	}
	a := Action(name)
	if a.Valid() {
		return a, true
	}
	return Action(s), false
}

// Valid reports whether a is one of Actions.
func (a Action) Valid() bool {
	switch a {
	case ActionOpenScreen, ActionCloseScreen, ActionSendToSerial, ActionRunLocalCommand, ActionSendBIOSKey:
		return true
	}
	return false
}

// IsSession reports whether the action drives the terminal session.
func (a Action) IsSession() bool {
	return a == ActionOpenScreen || a == ActionCloseScreen
}

// IsSerial reports whether the action writes to the serial device.
func (a Action) IsSerial() bool {
	return a == ActionSendToSerial || a == ActionSendBIOSKey
}

// IsLocal reports whether the action runs a local shell command.
func (a Action) IsLocal() bool {
	return a == ActionRunLocalCommand
}

// NeedsPayload reports whether the action requires a command or key.
func (a Action) NeedsPayload() bool {
	return a.IsSerial() || a.IsLocal()
}

// UnmarshalJSON normalizes aliases. Unknown actions are kept verbatim so
// Validate can name them.
func (a *Action) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*a, _ = ParseAction(s)
	return nil
}

// GroupType tags a group as serial or local.
type GroupType string

const (
	GroupSerial GroupType = "serial"
	GroupLocal  GroupType = "local"
)

// Valid reports whether g is serial or local.
func (g GroupType) Valid() bool {
	return g == GroupSerial || g == GroupLocal
}

// DefaultAction is the action given to commands added to a group of this type.
func (g GroupType) DefaultAction() Action {
	if g == GroupLocal {
		return ActionRunLocalCommand
	}
	return ActionSendToSerial
}
