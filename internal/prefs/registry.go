package prefs

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"gopkg.in/yaml.v3"
)

const (
	appName   = "portctl"
	prefsFile = "prefs.yaml"
)

// Mutex for thread-safe file operations
var fileMutex sync.Mutex

// GetConfigDir returns the OS-appropriate preferences directory:
//   - Linux: $XDG_CONFIG_HOME/portctl or $HOME/.config/portctl
//   - macOS: $HOME/.config/portctl
//   - Windows: %LOCALAPPDATA%\portctl
func GetConfigDir() (string, error) {
	switch runtime.GOOS {
	case "windows":
		localAppData := os.Getenv("LOCALAPPDATA")
		if localAppData != "" {
			return filepath.Join(localAppData, appName), nil
		}
		userProfile := os.Getenv("USERPROFILE")
		if userProfile == "" {
			return "", fmt.Errorf("cannot determine user profile directory (LOCALAPPDATA and USERPROFILE not set)")
		}
		return filepath.Join(userProfile, "AppData", "Local", appName), nil

	case "darwin":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		return filepath.Join(homeDir, ".config", appName), nil

	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, appName), nil
		}
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		return filepath.Join(homeDir, ".config", appName), nil
	}
}

// GetPrefsPath returns the full path to the preferences file.
func GetPrefsPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, prefsFile), nil
}

// Load reads the preferences file at the default location.
func Load() (*Registry, string, error) {
	path, err := GetPrefsPath()
	if err != nil {
		return nil, "", err
	}
	reg, err := LoadFrom(path)
	return reg, path, err
}

// LoadFrom reads a preferences file. A missing file yields defaults.
func LoadFrom(path string) (*Registry, error) {
	fileMutex.Lock()
	defer fileMutex.Unlock()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return NewRegistry(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read preferences: %w", err)
	}

	// Keys missing from the file keep their defaults.
	reg := NewRegistry()
	if err := yaml.Unmarshal(data, reg); err != nil {
		return nil, fmt.Errorf("failed to parse preferences: %w", err)
	}
	if reg.Version != 1 {
		return nil, fmt.Errorf("unsupported preferences version: %d (expected 1)", reg.Version)
	}

	if reg.Profiles == nil {
		reg.Profiles = make(map[string]*Profile)
	}
	if reg.Preferences == nil {
		reg.Preferences = defaultPreferences()
	}
	return reg, nil
}

// SaveTo writes the registry atomically.
func (r *Registry) SaveTo(path string) error {
	fileMutex.Lock()
	defer fileMutex.Unlock()

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create preferences directory: %w", err)
	}

	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to marshal preferences: %w", err)
	}

	header := []byte("# portctl UI preferences. Button layouts live in their own JSON files.\n\n")
	data = append(header, data...)

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write temporary preferences file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to save preferences: %w", err)
	}
	return nil
}
