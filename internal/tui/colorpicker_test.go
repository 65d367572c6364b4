package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestColorPickerStartsUnset(t *testing.T) {
	p := NewColorPicker("Background")
	if p.Value() != "" || p.Name() != "" {
		t.Errorf("new picker = %q/%q, want unset", p.Value(), p.Name())
	}
}

func TestColorPickerSetColor(t *testing.T) {
	tests := []struct {
		in       string
		wantHex  string
		wantName string
	}{
		{"red", "#ff0000", "red"},
		{"#00f", "#0000ff", ""},
		{"#123456", "#123456", ""},
		{"nope", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			p := NewColorPicker("fg")
			p.SetColor(tt.in)
			if got := p.Value(); got != tt.wantHex {
				t.Errorf("Value() = %q, want %q", got, tt.wantHex)
			}
			if got := p.Name(); got != tt.wantName {
				t.Errorf("Name() = %q, want %q", got, tt.wantName)
			}
		})
	}
}

func TestColorPickerKeys(t *testing.T) {
	press := func(p ColorPicker, keys ...tea.KeyMsg) ColorPicker {
		for _, k := range keys {
			p = p.Update(k)
		}
		return p
	}

	p := press(NewColorPicker("bg"), runes("]"))
	if p.Name() == "" || p.Value() == "" {
		t.Fatalf("] should pick the first named color, got %q", p.Value())
	}
	first := p.Name()

	p = press(p, runes("]"), runes("["))
	if p.Name() != first {
		t.Errorf("] then [ = %q, want %q", p.Name(), first)
	}

	// Hue: red moves to a new hue and loses its name.
	p.SetColor("red")
	p = press(p, tea.KeyMsg{Type: tea.KeyRight})
	if p.Name() != "" || p.Value() == "#ff0000" {
		t.Errorf("after adjusting, Value() = %q Name() = %q", p.Value(), p.Name())
	}

	// Value channel down to black.
	p.SetColor("white")
	p = press(p, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyDown})
	for i := 0; i < 30; i++ {
		p = press(p, tea.KeyMsg{Type: tea.KeyLeft})
	}
	if p.Value() != "#000000" {
		t.Errorf("value floor = %q, want #000000", p.Value())
	}

	p = press(p, runes("x"))
	if p.Value() != "" {
		t.Errorf("x should clear, got %q", p.Value())
	}
}
