package config

import (
	"strings"
	"unicode"
)

var groupKeywords = map[string]GroupType{
	"serial":  GroupSerial,
	"uart":    GroupSerial,
	"console": GroupSerial,
	"tty":     GroupSerial,
	"bios":    GroupSerial,
	"com":     GroupSerial,
	"local":   GroupLocal,
	"shell":   GroupLocal,
	"host":    GroupLocal,
	"pc":      GroupLocal,
	"script":  GroupLocal,
	"system":  GroupLocal,
}

// InferGroupType resolves a group's type. Precedence: explicit tag, then
// the majority of button actions (ties ignored), then keywords in the
// title, then serial.
func InferGroupType(g ButtonGroup) GroupType {
	if g.GroupType.Valid() {
		return g.GroupType
	}

	serial, local := 0, 0
	for _, b := range g.Buttons {
		switch {
		case b.Action.IsSerial():
			serial++
		case b.Action.IsLocal():
			local++
		}
	}
	if serial > local {
		return GroupSerial
	}
	if local > serial {
		return GroupLocal
	}

	words := strings.FieldsFunc(strings.ToLower(g.Title), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, w := range words {
		if t, ok := groupKeywords[w]; ok {
			return t
		}
	}
	return GroupSerial
}
