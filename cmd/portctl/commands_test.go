package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/muurk/portctl/internal/appenv"
	"github.com/muurk/portctl/internal/config"
)

func withConfig(t *testing.T, cfg *config.Config) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if cfg != nil {
		if err := config.Save(cfg, path); err != nil {
			t.Fatal(err)
		}
	}
	saved := env
	env = appenv.Default()
	env.ConfigPath = path
	t.Cleanup(func() { env = saved })
	return path
}

func TestToYAML(t *testing.T) {
	data, err := toYAML(config.Starter())
	if err != nil {
		t.Fatalf("toYAML() error = %v", err)
	}
	out := string(data)
	for _, want := range []string{"serial_baudrate: 115200", "command: AT", "action: send_bios_key", "unit_types:"} {
		if !strings.Contains(out, want) {
			t.Errorf("YAML missing %q:\n%s", want, out)
		}
	}
}

func TestShowFormats(t *testing.T) {
	withConfig(t, config.Starter())

	tests := []struct {
		format string
		want   string
	}{
		{"text", "ls -l /dev/ttyUSB0"},
		{"json", `"serial_device": "/dev/ttyUSB0"`},
		{"yaml", "title: Console"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var out bytes.Buffer
			showCmd.SetOut(&out)
			outputFormat = tt.format
			if err := runShow(showCmd, nil); err != nil {
				t.Fatalf("runShow() error = %v", err)
			}
			if !strings.Contains(out.String(), tt.want) {
				t.Errorf("output missing %q:\n%s", tt.want, out.String())
			}
		})
	}

	outputFormat = "xml"
	if err := runShow(showCmd, nil); err == nil {
		t.Error("unknown format should fail")
	}
	outputFormat = "text"
}

func TestValidateReportsBadPlaceholder(t *testing.T) {
	cfg := config.Starter()
	ut := cfg.UnitType(config.LegacyUnitType)
	ut.ButtonGroups[1].Buttons = append(ut.ButtonGroups[1].Buttons,
		config.Button{Text: "Ping", Action: config.ActionRunLocalCommand, Command: "ping {host}"})
	withConfig(t, cfg)

	var out bytes.Buffer
	validateCmd.SetOut(&out)
	if err := runValidate(validateCmd, nil); err != errChecksFailed {
		t.Fatalf("runValidate() error = %v, want errChecksFailed", err)
	}
	if !strings.Contains(out.String(), "host") {
		t.Errorf("report should name the unknown setting:\n%s", out.String())
	}
}

func TestValidateMissingFile(t *testing.T) {
	withConfig(t, nil)

	var out bytes.Buffer
	validateCmd.SetOut(&out)
	if err := runValidate(validateCmd, nil); err != errChecksFailed {
		t.Fatalf("runValidate() error = %v", err)
	}
	if !strings.Contains(out.String(), "portctl init") {
		t.Errorf("missing file should suggest init:\n%s", out.String())
	}
}

func TestInitAsksBeforeOverwrite(t *testing.T) {
	path := withConfig(t, &config.Config{Settings: config.Settings{
		config.SettingSerialDevice:   config.StringSetting("/dev/ttyS9"),
		config.SettingSerialBaudrate: config.StringSetting("9600"),
	}})

	var out bytes.Buffer
	initCmd.SetOut(&out)
	initCmd.SetIn(strings.NewReader("n\n"))
	if err := runInit(initCmd, nil); err != nil {
		t.Fatal(err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.UnitTypes) != 0 {
		t.Fatal("declining should keep the existing file")
	}

	initCmd.SetIn(strings.NewReader("y\n"))
	if err := runInit(initCmd, nil); err != nil {
		t.Fatal(err)
	}
	cfg, err = config.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.UnitType(config.LegacyUnitType) == nil {
		t.Error("confirming should write the starter layout")
	}
}
