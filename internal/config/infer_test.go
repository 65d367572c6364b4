package config

import "testing"

func TestInferGroupType(t *testing.T) {
	serialBtn := Button{Text: "s", Action: ActionSendToSerial, Command: "x"}
	biosBtn := Button{Text: "b", Action: ActionSendBIOSKey, Key: "ESC"}
	localBtn := Button{Text: "l", Action: ActionRunLocalCommand, Command: "x"}
	sessionBtn := Button{Text: "o", Action: ActionOpenScreen}

	tests := []struct {
		name  string
		group ButtonGroup
		want  GroupType
	}{
		{"explicit tag wins", ButtonGroup{Title: "Serial", GroupType: GroupLocal, Buttons: []Button{serialBtn}}, GroupLocal},
		{"majority serial", ButtonGroup{Title: "Host tools", Buttons: []Button{serialBtn, biosBtn, localBtn}}, GroupSerial},
		{"majority local", ButtonGroup{Title: "UART", Buttons: []Button{localBtn, localBtn, serialBtn}}, GroupLocal},
		{"session buttons do not vote", ButtonGroup{Title: "Misc", Buttons: []Button{sessionBtn, sessionBtn, localBtn}}, GroupLocal},
		{"tie falls through to keywords", ButtonGroup{Title: "Local checks", Buttons: []Button{serialBtn, localBtn}}, GroupLocal},
		{"serial keyword", ButtonGroup{Title: "UART console"}, GroupSerial},
		{"local keyword", ButtonGroup{Title: "Host-side scripts"}, GroupLocal},
		{"keyword must be a whole word", ButtonGroup{Title: "Computer shellfish"}, GroupSerial},
		{"default serial", ButtonGroup{Title: "Power"}, GroupSerial},
		{"invalid tag ignored", ButtonGroup{Title: "Shell", GroupType: "remote"}, GroupLocal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := InferGroupType(tt.group); got != tt.want {
				t.Errorf("InferGroupType() = %q, want %q", got, tt.want)
			}
		})
	}
}
