//go:build windows

package session

import (
	"os/exec"
	"strconv"
	"syscall"
)

func configureCommand(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		CreationFlags: syscall.CREATE_NEW_PROCESS_GROUP,
	}
}

// terminate asks the window to close; taskkill without /F posts WM_CLOSE.
func terminate(h *Handle) error {
	return exec.Command("taskkill", "/PID", strconv.Itoa(h.cmd.Process.Pid)).Run()
}

func forceKill(h *Handle) error {
	if err := exec.Command("taskkill", "/F", "/T", "/PID", strconv.Itoa(h.cmd.Process.Pid)).Run(); err == nil {
		return nil
	}
	return h.cmd.Process.Kill()
}
