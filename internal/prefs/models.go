package prefs

import (
	"path/filepath"
	"time"
)

// DefaultGridColumns is the number of group panels per grid row.
const DefaultGridColumns = 3

// Registry is the whole preferences file.
type Registry struct {
	Version     int                 `yaml:"version"`
	Profiles    map[string]*Profile `yaml:"profiles,omitempty"` // Keyed by absolute config file path
	Preferences *Preferences        `yaml:"preferences,omitempty"`
}

// Profile remembers UI state for one button layout file.
type Profile struct {
	LastUnitType string    `yaml:"last_unit_type,omitempty"`
	LastOpened   time.Time `yaml:"last_opened,omitempty"`
}

// Preferences are application-wide UI settings.
type Preferences struct {
	GridColumns int  `yaml:"grid_columns"`
	ConfirmQuit bool `yaml:"confirm_quit"` // Ask before quitting while a session is live
}

// NewRegistry creates a Registry with default values.
func NewRegistry() *Registry {
	return &Registry{
		Version:     1,
		Profiles:    make(map[string]*Profile),
		Preferences: defaultPreferences(),
	}
}

func defaultPreferences() *Preferences {
	return &Preferences{
		GridColumns: DefaultGridColumns,
		ConfirmQuit: true,
	}
}

// profileKey normalizes a config path so relative and absolute spellings
// share one profile.
func profileKey(configPath string) string {
	if abs, err := filepath.Abs(configPath); err == nil {
		return abs
	}
	return filepath.Clean(configPath)
}

// Profile returns the profile for a config file, or nil.
func (r *Registry) Profile(configPath string) *Profile {
	return r.Profiles[profileKey(configPath)]
}

// EnsureProfile returns the profile for a config file, creating it if needed.
func (r *Registry) EnsureProfile(configPath string) *Profile {
	if r.Profiles == nil {
		r.Profiles = make(map[string]*Profile)
	}

	key := profileKey(configPath)
	if p, ok := r.Profiles[key]; ok {
		return p
	}
	p := &Profile{}
	r.Profiles[key] = p
	return p
}

// LastUnitType returns the remembered unit type for a config file.
func (r *Registry) LastUnitType(configPath string) string {
	if p := r.Profile(configPath); p != nil {
		return p.LastUnitType
	}
	return ""
}

// RememberUnitType records the selected unit type for a config file.
func (r *Registry) RememberUnitType(configPath, unitType string) {
	p := r.EnsureProfile(configPath)
	p.LastUnitType = unitType
	p.LastOpened = time.Now()
}

// GridColumns returns the configured column count, never less than 1.
func (r *Registry) GridColumns() int {
	if r.Preferences == nil || r.Preferences.GridColumns < 1 {
		return DefaultGridColumns
	}
	return r.Preferences.GridColumns
}

// ConfirmQuit reports whether quitting with a live session should prompt.
func (r *Registry) ConfirmQuit() bool {
	if r.Preferences == nil {
		return true
	}
	return r.Preferences.ConfirmQuit
}
