package session

import (
	"errors"
	"os/exec"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/muurk/portctl/internal/logbus"
)

func skipWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("uses POSIX processes")
	}
}

// stubSettings launches cmdline instead of a real terminal.
func stubSettings(cmdline string) map[string]string {
	return map[string]string{
		"serial_device":    "/dev/ttyUSB0",
		"serial_baudrate":  "115200",
		"terminal_command": cmdline,
	}
}

func lastEntry(t *testing.T, buf *logbus.Buffer) logbus.Entry {
	t.Helper()
	e, ok := buf.Last()
	if !ok {
		t.Fatal("no log entries")
	}
	return e
}

func TestLauncherArgvDefault(t *testing.T) {
	argv, err := LauncherArgv(map[string]string{
		"serial_device":   "/dev/ttyUSB0",
		"serial_baudrate": "9600",
	})
	if err != nil {
		t.Fatalf("LauncherArgv() error = %v", err)
	}
	want := defaultLauncher("/dev/ttyUSB0", "9600")
	if strings.Join(argv, " ") != strings.Join(want, " ") {
		t.Errorf("LauncherArgv() = %v, want %v", argv, want)
	}
	if runtime.GOOS != "windows" && strings.Join(argv, " ") != "xterm -bg black -fg white -e screen /dev/ttyUSB0 9600" {
		t.Errorf("unix launcher = %v", argv)
	}
}

func TestLauncherArgvOverride(t *testing.T) {
	settings := stubSettings(`alacritty -t "serial console" -e picocom -b {serial_baudrate} {serial_device}`)
	argv, err := LauncherArgv(settings)
	if err != nil {
		t.Fatalf("LauncherArgv() error = %v", err)
	}
	want := []string{"alacritty", "-t", "serial console", "-e", "picocom", "-b", "115200", "/dev/ttyUSB0"}
	if strings.Join(argv, "|") != strings.Join(want, "|") {
		t.Errorf("LauncherArgv() = %q, want %q", argv, want)
	}

	if _, err := LauncherArgv(stubSettings("term {nope}")); err == nil {
		t.Error("unknown placeholder in terminal_command should fail")
	}
	if _, err := LauncherArgv(stubSettings(`term "unbalanced`)); err == nil {
		t.Error("unbalanced quotes in terminal_command should fail")
	}
}

func TestOpenLauncherNotFound(t *testing.T) {
	buf := logbus.NewBuffer(100)
	m := NewManager(buf, WithLookPath(func(string) (string, error) {
		return "", exec.ErrNotFound
	}))

	err := m.Open(map[string]string{"serial_device": "/dev/ttyS0", "serial_baudrate": "9600"})
	var nf *LauncherNotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("Open() error = %v, want *LauncherNotFoundError", err)
	}
	if m.State() != Idle {
		t.Errorf("State() = %v, want idle", m.State())
	}
	if e := lastEntry(t, buf); e.Level != logbus.LevelError {
		t.Errorf("last entry = %+v, want ERROR", e)
	}
}

func TestOpenNeedsTheProgramTheTerminalRuns(t *testing.T) {
	skipWindows(t)
	buf := logbus.NewBuffer(100)
	m := NewManager(buf, WithLookPath(func(name string) (string, error) {
		if name == "screen" {
			return "", exec.ErrNotFound
		}
		return "/usr/bin/" + name, nil
	}))

	err := m.Open(map[string]string{"serial_device": "/dev/ttyS0", "serial_baudrate": "9600"})
	var nf *LauncherNotFoundError
	if !errors.As(err, &nf) || nf.Program != "screen" {
		t.Fatalf("Open() error = %v, want screen not found", err)
	}
	if m.State() != Idle {
		t.Errorf("State() = %v, want idle", m.State())
	}
	if e := lastEntry(t, buf); e.Level != logbus.LevelError || !strings.Contains(e.Text, "screen") {
		t.Errorf("last entry = %+v, want ERROR naming screen", e)
	}
}

func TestOpenTwiceKeepsOneSession(t *testing.T) {
	skipWindows(t)
	buf := logbus.NewBuffer(100)
	m := NewManager(buf, WithGrace(time.Second))
	defer m.Close()

	if err := m.Open(stubSettings("sleep 30")); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	first := m.Handle()
	if first == nil || !m.IsRunning() {
		t.Fatal("session should be running")
	}
	if e := lastEntry(t, buf); e.Text != "Screen process started." {
		t.Errorf("last entry = %q", e.Text)
	}

	if err := m.Open(stubSettings("sleep 30")); err != nil {
		t.Fatalf("second Open() error = %v", err)
	}
	if m.Handle() != first {
		t.Error("second Open() should not replace the session")
	}
	if e := lastEntry(t, buf); e.Level != logbus.LevelWarning || e.Text != "Screen is already running." {
		t.Errorf("last entry = %+v, want already-running WARNING", e)
	}
}

func TestCloseWhenIdle(t *testing.T) {
	buf := logbus.NewBuffer(100)
	m := NewManager(buf)

	if got := m.Close(); got != NothingToClose {
		t.Errorf("Close() = %v, want NothingToClose", got)
	}
	if e := lastEntry(t, buf); e.Level != logbus.LevelInfo || e.Text != "No active screen session to close." {
		t.Errorf("last entry = %+v", e)
	}
}

func TestCloseGraceful(t *testing.T) {
	skipWindows(t)
	buf := logbus.NewBuffer(100)
	m := NewManager(buf, WithGrace(2*time.Second))

	if err := m.Open(stubSettings("sleep 30")); err != nil {
		t.Fatal(err)
	}
	h := m.Handle()

	if got := m.Close(); got != Terminated {
		t.Errorf("Close() = %v, want Terminated", got)
	}
	if !h.Exited() {
		t.Error("process should have exited")
	}
	if m.State() != Idle {
		t.Errorf("State() = %v, want idle", m.State())
	}
	if e := lastEntry(t, buf); e.Level != logbus.LevelSuccess {
		t.Errorf("last entry = %+v, want SUCCESS", e)
	}
}

func TestCloseForcedWhenTermIgnored(t *testing.T) {
	skipWindows(t)
	buf := logbus.NewBuffer(100)
	m := NewManager(buf, WithGrace(300*time.Millisecond))

	if err := m.Open(stubSettings(`sh -c 'trap "" TERM; sleep 30'`)); err != nil {
		t.Fatal(err)
	}
	h := m.Handle()
	// Give the shell time to install its trap.
	time.Sleep(200 * time.Millisecond)

	start := time.Now()
	if got := m.Close(); got != Killed {
		t.Errorf("Close() = %v, want Killed", got)
	}
	if elapsed := time.Since(start); elapsed < 300*time.Millisecond {
		t.Errorf("Close() returned after %v, should wait out the grace period", elapsed)
	}
	if !h.Exited() {
		t.Error("process should be dead after a forced kill")
	}
	if e := lastEntry(t, buf); e.Level != logbus.LevelWarning || e.Text != "Screen process forcefully killed." {
		t.Errorf("last entry = %+v, want forced-kill WARNING", e)
	}
}

func TestExitedSessionReturnsToIdle(t *testing.T) {
	skipWindows(t)
	buf := logbus.NewBuffer(100)
	m := NewManager(buf)

	if err := m.Open(stubSettings("true")); err != nil {
		t.Fatal(err)
	}
	h := m.handle
	if h.Started().IsZero() {
		t.Error("Started() should be set")
	}
	select {
	case <-h.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("process did not exit")
	}

	if m.IsRunning() {
		t.Error("IsRunning() should be false once the process exits")
	}
	if h.ExitErr() != nil {
		t.Errorf("ExitErr() = %v, want nil", h.ExitErr())
	}
	if got := m.Close(); got != NothingToClose {
		t.Errorf("Close() = %v, want NothingToClose", got)
	}
	if buf.Count(logbus.LevelWarning) != 0 {
		t.Errorf("a clean exit should not warn: %q", buf.Text())
	}
}

func TestFailedSessionExitIsReported(t *testing.T) {
	skipWindows(t)
	buf := logbus.NewBuffer(100)
	m := NewManager(buf)

	if err := m.Open(stubSettings("false")); err != nil {
		t.Fatal(err)
	}
	h := m.handle
	select {
	case <-h.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("process did not exit")
	}

	if m.IsRunning() {
		t.Fatal("IsRunning() should be false once the process exits")
	}
	e := lastEntry(t, buf)
	if e.Level != logbus.LevelWarning || !strings.Contains(e.Text, "Screen session ended") {
		t.Errorf("last entry = %+v, want the exit warning", e)
	}
}

func TestInjectedLiveness(t *testing.T) {
	skipWindows(t)
	alive := true
	buf := logbus.NewBuffer(100)
	m := NewManager(buf, WithLiveness(func(*Handle) bool { return alive }), WithGrace(time.Second))

	if err := m.Open(stubSettings("sleep 30")); err != nil {
		t.Fatal(err)
	}
	h := m.Handle()
	defer func() {
		forceKill(h)
		h.waitFor(time.Second)
	}()

	alive = false
	if m.IsRunning() {
		t.Error("IsRunning() should follow the injected liveness")
	}
	if err := m.Open(stubSettings("true")); err != nil {
		t.Fatal(err)
	}
	if m.Handle() == h {
		t.Error("a session judged dead should be replaceable")
	}
}

func TestCheckPrerequisites(t *testing.T) {
	found := map[string]bool{"xterm": true, "putty": true}
	lookPath := func(name string) (string, error) {
		if found[name] {
			return "/usr/bin/" + name, nil
		}
		return "", exec.ErrNotFound
	}

	res := CheckPrerequisites(map[string]string{"serial_device": "/dev/ttyS0", "serial_baudrate": "9600"}, lookPath)
	if len(res.Checks) == 0 || !res.Checks[0].Available {
		t.Fatalf("checks = %+v, launcher should be found", res.Checks)
	}
	if runtime.GOOS != "windows" {
		if res.AllAvailable || len(res.Checks) != 2 || res.Checks[1].Name != "screen" {
			t.Errorf("checks = %+v, screen should be reported missing", res.Checks)
		}
		var nf *LauncherNotFoundError
		if !errors.As(res.Checks[1].Error, &nf) {
			t.Errorf("missing program error = %v", res.Checks[1].Error)
		}
	}

	res = CheckPrerequisites(stubSettings("term {nope}"), lookPath)
	if res.AllAvailable {
		t.Error("a broken terminal_command should fail the check")
	}
}
