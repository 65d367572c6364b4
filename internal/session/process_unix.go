//go:build !windows

package session

import (
	"os/exec"
	"syscall"
)

// configureCommand puts the terminal in its own process group so a forced
// kill also takes down the program it runs.
func configureCommand(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

func terminate(h *Handle) error {
	return h.cmd.Process.Signal(syscall.SIGTERM)
}

func forceKill(h *Handle) error {
	pid := h.cmd.Process.Pid
	if err := syscall.Kill(-pid, syscall.SIGKILL); err == nil {
		return nil
	}
	return h.cmd.Process.Kill()
}
