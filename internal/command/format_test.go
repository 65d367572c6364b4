package command

import (
	"errors"
	"reflect"
	"testing"
)

func TestFormat(t *testing.T) {
	settings := map[string]string{
		"serial_device":   "/dev/ttyS0",
		"serial_baudrate": "115200",
		"host":            "10.0.0.5",
	}

	tests := []struct {
		name     string
		template string
		want     string
	}{
		{"single placeholder", "cmd {serial_device}", "cmd /dev/ttyS0"},
		{"two placeholders", "stty -F {serial_device} {serial_baudrate}", "stty -F /dev/ttyS0 115200"},
		{"repeated placeholder", "{host}:{host}", "10.0.0.5:10.0.0.5"},
		{"no placeholders", "AT+RESET", "AT+RESET"},
		{"escaped braces", "awk '{{print $1}}' {host}", "awk '{print $1}' 10.0.0.5"},
		{"placeholder at edges", "{host}", "10.0.0.5"},
		{"spaces inside braces", "ping { host }", "ping 10.0.0.5"},
		{"empty template", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Format(tt.template, settings)
			if err != nil {
				t.Fatalf("Format(%q) error = %v", tt.template, err)
			}
			if got != tt.want {
				t.Errorf("Format(%q) = %q, want %q", tt.template, got, tt.want)
			}
		})
	}
}

func TestFormatUnknownKey(t *testing.T) {
	_, err := Format("screen {serial_device} {baud}", map[string]string{"serial_device": "/dev/ttyS0"})

	var unknown *UnknownSettingKeyError
	if !errors.As(err, &unknown) {
		t.Fatalf("Format() error = %v, want *UnknownSettingKeyError", err)
	}
	if unknown.Key != "baud" {
		t.Errorf("Key = %q, want baud", unknown.Key)
	}
}

func TestFormatSyntaxErrors(t *testing.T) {
	for _, template := range []string{"echo {serial_device", "echo {}", "echo }", "echo {a{b}"} {
		_, err := Format(template, map[string]string{"serial_device": "x", "a": "1"})
		var syntax *SyntaxError
		if !errors.As(err, &syntax) {
			t.Errorf("Format(%q) error = %v, want *SyntaxError", template, err)
		}
	}
}

func TestPlaceholders(t *testing.T) {
	got, err := Placeholders("{a} {b} {{literal}} {a}")
	if err != nil {
		t.Fatalf("Placeholders() error = %v", err)
	}
	if want := []string{"a", "b"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Placeholders() = %v, want %v", got, want)
	}
}

func TestCheck(t *testing.T) {
	if err := Check("{x}", map[string]string{"x": ""}); err != nil {
		t.Errorf("Check() with empty value error = %v", err)
	}
	if err := Check("{y}", map[string]string{"x": ""}); err == nil {
		t.Error("Check() should report the missing key")
	}
}
