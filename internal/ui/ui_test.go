package ui

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/muurk/portctl/internal/config"
)

func TestHeaderKeepsParamOrder(t *testing.T) {
	out := NewHeader("config check", "portctl validate",
		Param{Key: "Config", Value: "a.json"},
		Param{Key: "Unit types", Value: "3"},
	).SetWidth(80).Render()

	if !strings.Contains(out, "CONFIG CHECK") {
		t.Error("title should be upper-cased")
	}
	if strings.Index(out, "Config:") > strings.Index(out, "Unit types:") {
		t.Error("params should render in the order given")
	}
}

func TestCheckList(t *testing.T) {
	l := NewCheckList("Prerequisites").
		Pass("xterm", "/usr/bin/xterm").
		Fail("screen", errors.New("not found")).
		Add("putty", CheckSkipped, "")

	if l.Failed() != 1 {
		t.Errorf("Failed() = %d, want 1", l.Failed())
	}
	out := l.Render()
	for _, want := range []string{MarkerPassed + " xterm", MarkerFailed + " screen", "(not found)", MarkerSkipped + " putty"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestResultRendersEveryErrorLine(t *testing.T) {
	err := errors.New("config is invalid:\n  - group \"A\": empty title\n  - button \"B\": unknown action")
	out := NewFailureResult("Validation failed", err, "Fix the listed entries").SetWidth(80).Render()

	for _, want := range []string{"FAILED", "Error: config is invalid:", "unknown action", "Fix the listed entries"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderLayout(t *testing.T) {
	cfg := &config.Config{
		Settings: config.Settings{config.SettingSerialDevice: config.StringSetting("/dev/ttyS1")},
		UnitTypes: map[string]*config.UnitType{
			"board": {
				Description: "bench unit",
				ButtonGroups: []config.ButtonGroup{
					{Title: "Console", GroupType: config.GroupSerial, Buttons: []config.Button{
						{Text: "Open", Action: config.ActionOpenScreen},
						{Text: "Probe", Action: config.ActionRunLocalCommand, Command: "stty -F {serial_device}"},
						{Text: "Bad", Action: config.ActionRunLocalCommand, Command: "{nope}"},
					}},
				},
			},
		},
	}

	out := RenderLayout(cfg)
	for _, want := range []string{"serial_device:", "board", "bench unit", "Console", "[serial]", "stty -F /dev/ttyS1", MarkerFailed} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
		{"yes", true},
	}
	for _, tt := range tests {
		var out bytes.Buffer
		got := Confirm(strings.NewReader(tt.input), &out, "Overwrite", []string{"config.json exists"}, "Replace it?")
		if got != tt.want {
			t.Errorf("Confirm(%q) = %v, want %v", tt.input, got, tt.want)
		}
		if !strings.Contains(out.String(), "Replace it? [y/N]") {
			t.Errorf("prompt missing from %q", out.String())
		}
	}
}
