package prefs

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestGetConfigDir(t *testing.T) {
	if runtime.GOOS == "linux" {
		t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-test")
	}

	dir, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir() error = %v", err)
	}
	if !strings.Contains(dir, "portctl") {
		t.Errorf("GetConfigDir() = %v, should contain 'portctl'", dir)
	}
	if runtime.GOOS == "linux" && dir != filepath.Join("/tmp/xdg-test", "portctl") {
		t.Errorf("GetConfigDir() = %v, want XDG_CONFIG_HOME based path", dir)
	}
}

func TestGetPrefsPath(t *testing.T) {
	path, err := GetPrefsPath()
	if err != nil {
		t.Fatalf("GetPrefsPath() error = %v", err)
	}
	if filepath.Base(path) != "prefs.yaml" {
		t.Errorf("GetPrefsPath() should end with 'prefs.yaml', got: %v", path)
	}
}

func TestNewRegistry(t *testing.T) {
	reg := NewRegistry()

	if reg.Version != 1 {
		t.Errorf("NewRegistry().Version = %v, want 1", reg.Version)
	}
	if reg.GridColumns() != DefaultGridColumns {
		t.Errorf("GridColumns() = %v, want %v", reg.GridColumns(), DefaultGridColumns)
	}
	if !reg.ConfirmQuit() {
		t.Error("ConfirmQuit() should default to true")
	}
}

func TestRememberUnitType(t *testing.T) {
	reg := NewRegistry()

	if got := reg.LastUnitType("config.json"); got != "" {
		t.Errorf("LastUnitType() on empty registry = %q", got)
	}

	reg.RememberUnitType("config.json", "board-rev-b")

	abs, _ := filepath.Abs("config.json")
	if got := reg.LastUnitType(abs); got != "board-rev-b" {
		t.Errorf("LastUnitType(abs) = %q, want board-rev-b", got)
	}
	if p := reg.Profile("./config.json"); p == nil || p.LastOpened.IsZero() {
		t.Error("profile should be shared between path spellings and stamped")
	}
}

func TestEnsureProfileReturnsSameInstance(t *testing.T) {
	reg := NewRegistry()
	a := reg.EnsureProfile("a.json")
	if a != reg.EnsureProfile("a.json") {
		t.Error("EnsureProfile() should return the same instance for the same path")
	}
	if a == reg.EnsureProfile("b.json") {
		t.Error("EnsureProfile() should create a new instance for another path")
	}
}

func TestGridColumnsGuardsBadValues(t *testing.T) {
	reg := NewRegistry()
	reg.Preferences.GridColumns = 0
	if reg.GridColumns() != DefaultGridColumns {
		t.Errorf("GridColumns() = %d, want default for 0", reg.GridColumns())
	}
	reg.Preferences = nil
	if reg.GridColumns() != DefaultGridColumns || !reg.ConfirmQuit() {
		t.Error("nil Preferences should fall back to defaults")
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "prefs.yaml")

	reg := NewRegistry()
	reg.RememberUnitType("/srv/bench/config.json", "router")
	reg.Preferences.GridColumns = 4
	reg.Preferences.ConfirmQuit = false

	if err := reg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo() error = %v", err)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temporary file should be renamed away")
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if got := loaded.LastUnitType("/srv/bench/config.json"); got != "router" {
		t.Errorf("LastUnitType() = %q, want router", got)
	}
	if loaded.GridColumns() != 4 || loaded.ConfirmQuit() {
		t.Errorf("preferences = %+v", loaded.Preferences)
	}
}

func TestLoadFromKeepsDefaultsForMissingKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.yaml")
	data := "version: 1\npreferences:\n  grid_columns: 2\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	reg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if reg.GridColumns() != 2 {
		t.Errorf("GridColumns() = %d, want 2", reg.GridColumns())
	}
	if !reg.ConfirmQuit() {
		t.Error("confirm_quit absent from the file should stay on")
	}
}

func TestLoadFromMissingFile(t *testing.T) {
	reg, err := LoadFrom(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if reg.Version != 1 || reg.Preferences == nil {
		t.Errorf("LoadFrom(missing) = %+v, want defaults", reg)
	}
}

func TestLoadFromRejectsBadFiles(t *testing.T) {
	dir := t.TempDir()

	badYAML := filepath.Join(dir, "bad.yaml")
	os.WriteFile(badYAML, []byte("version: [1"), 0o600)
	if _, err := LoadFrom(badYAML); err == nil {
		t.Error("LoadFrom() should fail on malformed YAML")
	}

	wrongVersion := filepath.Join(dir, "v2.yaml")
	os.WriteFile(wrongVersion, []byte("version: 2\n"), 0o600)
	if _, err := LoadFrom(wrongVersion); err == nil {
		t.Error("LoadFrom() should reject an unknown version")
	}
}
