package session

import (
	"fmt"
	"os/exec"

	"github.com/kballard/go-shellquote"

	"github.com/muurk/portctl/internal/command"
)

const (
	settingDevice   = "serial_device"
	settingBaudrate = "serial_baudrate"
	settingOverride = "terminal_command"
)

// LauncherArgv builds the terminal command line from the settings.
func LauncherArgv(settings map[string]string) ([]string, error) {
	if tmpl, ok := settings[settingOverride]; ok && tmpl != "" {
		line, err := command.Format(tmpl, settings)
		if err != nil {
			return nil, fmt.Errorf("terminal_command: %w", err)
		}
		argv, err := shellquote.Split(line)
		if err != nil {
			return nil, fmt.Errorf("terminal_command: %w", err)
		}
		if len(argv) == 0 {
			return nil, fmt.Errorf("terminal_command is empty")
		}
		return argv, nil
	}

	device, ok := settings[settingDevice]
	if !ok {
		return nil, fmt.Errorf("missing setting %q", settingDevice)
	}
	baud, ok := settings[settingBaudrate]
	if !ok {
		return nil, fmt.Errorf("missing setting %q", settingBaudrate)
	}
	return defaultLauncher(device, baud), nil
}

// PrerequisiteCheck is the result of looking up one launcher program.
type PrerequisiteCheck struct {
	Name      string
	Available bool
	Path      string
	Message   string
	Error     error
}

// PrerequisiteResult holds every check.
type PrerequisiteResult struct {
	Checks       []PrerequisiteCheck
	AllAvailable bool
}

// CheckPrerequisites looks up the programs Open would need.
func CheckPrerequisites(settings map[string]string, lookPath func(string) (string, error)) *PrerequisiteResult {
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	result := &PrerequisiteResult{AllAvailable: true}

	argv, err := LauncherArgv(settings)
	if err != nil {
		result.AllAvailable = false
		result.Checks = append(result.Checks, PrerequisiteCheck{
			Name:    "launcher",
			Message: err.Error(),
			Error:   err,
		})
		return result
	}

	for _, program := range programsIn(argv) {
		check := PrerequisiteCheck{Name: program}
		path, err := lookPath(program)
		if err != nil {
			check.Error = &LauncherNotFoundError{Program: program, Err: err}
			check.Message = "not found in PATH"
			result.AllAvailable = false
		} else {
			check.Available = true
			check.Path = path
			check.Message = "found"
		}
		result.Checks = append(result.Checks, check)
	}
	return result
}
