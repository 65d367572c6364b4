package session

import "fmt"

// LauncherNotFoundError means the terminal program is not installed.
type LauncherNotFoundError struct {
	Program string
	Err     error
}

func (e *LauncherNotFoundError) Error() string {
	return fmt.Sprintf("terminal program %q not found: %v\n"+
		"Hint: install it or set terminal_command in the config settings", e.Program, e.Err)
}

func (e *LauncherNotFoundError) Unwrap() error {
	return e.Err
}

// LaunchError means the terminal program exists but could not be started.
type LaunchError struct {
	Argv []string
	Err  error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("failed to start %v: %v", e.Argv, e.Err)
}

func (e *LaunchError) Unwrap() error {
	return e.Err
}
