package tui

import (
	"testing"

	"github.com/muurk/portctl/internal/config"
)

func gridConfig(groups int) *config.Config {
	ut := &config.UnitType{}
	for i := 0; i < groups; i++ {
		ut.ButtonGroups = append(ut.ButtonGroups, config.ButtonGroup{
			Title:     string(rune('A' + i)),
			GroupType: config.GroupLocal,
			Buttons: []config.Button{
				{Text: "one", Action: config.ActionRunLocalCommand, Command: "true"},
				{Text: "two", Action: config.ActionRunLocalCommand, Command: "true"},
			},
		})
	}
	return &config.Config{
		Settings:  config.Settings{config.SettingSerialDevice: config.StringSetting("/dev/ttyUSB0")},
		UnitTypes: map[string]*config.UnitType{"X": ut},
	}
}

func TestGridRowMajor(t *testing.T) {
	g := BuildGrid(gridConfig(5), "X", 3)

	if g.Rows() != 2 {
		t.Fatalf("Rows() = %d, want 2", g.Rows())
	}
	tests := []struct {
		row, col int
		want     int
	}{
		{0, 0, 0},
		{0, 2, 2},
		{1, 0, 3},
		{1, 1, 4},
		{1, 2, -1},
		{2, 0, -1},
		{0, 3, -1},
	}
	for _, tt := range tests {
		if got := g.At(tt.row, tt.col); got != tt.want {
			t.Errorf("At(%d, %d) = %d, want %d", tt.row, tt.col, got, tt.want)
		}
	}
	if row, col := g.Position(4); row != 1 || col != 1 {
		t.Errorf("Position(4) = %d, %d, want 1, 1", row, col)
	}
}

func TestGridNavigation(t *testing.T) {
	g := BuildGrid(gridConfig(5), "X", 3)

	tests := []struct {
		name string
		move func(Cursor) Cursor
		from Cursor
		want Cursor
	}{
		{"down within group", g.Down, Cursor{0, 0}, Cursor{0, 1}},
		{"down into group below", g.Down, Cursor{1, 1}, Cursor{4, 0}},
		{"down with nothing below", g.Down, Cursor{2, 1}, Cursor{2, 1}},
		{"up into group above", g.Up, Cursor{3, 0}, Cursor{0, 1}},
		{"up at top", g.Up, Cursor{1, 0}, Cursor{1, 0}},
		{"right keeps button", g.Right, Cursor{0, 1}, Cursor{1, 1}},
		{"right at row end", g.Right, Cursor{2, 0}, Cursor{2, 0}},
		{"left at row start", g.Left, Cursor{3, 1}, Cursor{3, 1}},
		{"left", g.Left, Cursor{4, 0}, Cursor{3, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.move(tt.from); got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestGridClamp(t *testing.T) {
	cfg := gridConfig(2)
	cfg.UnitTypes["X"].ButtonGroups[1].Buttons = nil
	g := BuildGrid(cfg, "X", 3)

	if got := g.Clamp(Cursor{Group: 9, Button: 9}); got != (Cursor{Group: 1, Button: -1}) {
		t.Errorf("Clamp() = %+v, want last group with no button", got)
	}
	if _, ok := g.Focused(Cursor{Group: 1}); ok {
		t.Error("an empty group has no focused button")
	}

	empty := BuildGrid(cfg, "missing", 3)
	if len(empty.Groups) != 0 {
		t.Errorf("unknown unit type should give an empty grid, got %d groups", len(empty.Groups))
	}
	if got := empty.Clamp(Cursor{Group: 2, Button: 1}); got != (Cursor{Group: 0, Button: -1}) {
		t.Errorf("Clamp() on empty grid = %+v", got)
	}
}

func TestBuildGridFormatsPayloads(t *testing.T) {
	cfg := gridConfig(1)
	cfg.UnitTypes["X"].ButtonGroups[0].Buttons = []config.Button{
		{Text: "Probe", Action: config.ActionRunLocalCommand, Command: "stty -F {serial_device}"},
		{Text: "Broken", Action: config.ActionRunLocalCommand, Command: "ping {host}"},
		{Text: "Open", Action: config.ActionOpenScreen},
	}
	g := BuildGrid(cfg, "X", 3)
	buttons := g.Groups[0].Buttons

	if buttons[0].Payload != "stty -F /dev/ttyUSB0" || !buttons[0].Enabled() {
		t.Errorf("Probe = %+v", buttons[0])
	}
	if buttons[1].Enabled() {
		t.Error("a button with an unknown placeholder should be disabled")
	}
	if !buttons[2].Enabled() {
		t.Error("session buttons need no payload")
	}
	if n := len(g.Errors()); n != 1 {
		t.Errorf("Errors() has %d entries, want 1", n)
	}
}
