package session

import (
	"errors"
	"os/exec"
	"time"

	"go.uber.org/zap"

	"github.com/muurk/portctl/internal/logbus"
	"github.com/muurk/portctl/internal/logging"
)

// DefaultGrace is how long Close waits after asking the terminal to exit.
const DefaultGrace = 2 * time.Second

// State is the manager's lifecycle state.
type State int

const (
	Idle State = iota
	Running
)

func (s State) String() string {
	if s == Running {
		return "running"
	}
	return "idle"
}

// CloseResult says how Close ended.
type CloseResult int

const (
	NothingToClose CloseResult = iota
	Terminated
	Killed
)

// Handle is a spawned terminal process.
type Handle struct {
	cmd     *exec.Cmd
	argv    []string
	started time.Time
	done    chan struct{}
	err     error
}

// PID returns the process ID.
func (h *Handle) PID() int {
	return h.cmd.Process.Pid
}

// Argv returns the command line the process was started with.
func (h *Handle) Argv() []string {
	return append([]string(nil), h.argv...)
}

// Started returns the spawn time.
func (h *Handle) Started() time.Time {
	return h.started
}

// Exited reports whether the process has been reaped.
func (h *Handle) Exited() bool {
	select {
	case <-h.done:
		return true
	default:
		return false
	}
}

// Done is closed once the process has exited.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// ExitErr returns the wait error once the process has exited.
func (h *Handle) ExitErr() error {
	if !h.Exited() {
		return nil
	}
	return h.err
}

func (h *Handle) waitFor(d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-h.done:
		return true
	case <-timer.C:
		return false
	}
}

// Liveness decides whether a handle still counts as running.
type Liveness func(*Handle) bool

// ProcessAlive is the default Liveness: the process has not exited.
func ProcessAlive(h *Handle) bool {
	return h != nil && !h.Exited()
}

// Manager tracks the single terminal session.
type Manager struct {
	out      logbus.Emitter
	handle   *Handle
	liveness Liveness
	grace    time.Duration
	lookPath func(string) (string, error)
	logger   *zap.Logger
}

// Option configures a Manager.
type Option func(*Manager)

// WithLiveness replaces ProcessAlive.
func WithLiveness(fn Liveness) Option {
	return func(m *Manager) { m.liveness = fn }
}

// WithGrace overrides DefaultGrace.
func WithGrace(d time.Duration) Option {
	return func(m *Manager) { m.grace = d }
}

// WithLookPath replaces exec.LookPath.
func WithLookPath(fn func(string) (string, error)) Option {
	return func(m *Manager) { m.lookPath = fn }
}

// NewManager creates an Idle manager that reports to out.
func NewManager(out logbus.Emitter, opts ...Option) *Manager {
	m := &Manager{
		out:      out,
		liveness: ProcessAlive,
		grace:    DefaultGrace,
		lookPath: exec.LookPath,
		logger:   logging.Named("session"),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// State returns Running only while the session is alive.
func (m *Manager) State() State {
	if m.IsRunning() {
		return Running
	}
	return Idle
}

// IsRunning reports whether a live session exists. A dead handle is
// dropped, returning the manager to Idle.
func (m *Manager) IsRunning() bool {
	if m.handle == nil {
		return false
	}
	if h := m.handle; !m.liveness(h) {
		m.handle = nil
		m.logger.Debug("session exited on its own",
			zap.Int("pid", h.PID()),
			zap.Duration("uptime", time.Since(h.Started())),
			zap.Error(h.ExitErr()))
		if err := h.ExitErr(); err != nil {
			logbus.Warnf(m.out, "Screen session ended: %v", err)
		}
		return false
	}
	return true
}

// Handle returns the live handle, or nil.
func (m *Manager) Handle() *Handle {
	if !m.IsRunning() {
		return nil
	}
	return m.handle
}

// Open starts the terminal unless one is already running.
func (m *Manager) Open(settings map[string]string) error {
	if m.IsRunning() {
		logbus.Warnf(m.out, "Screen is already running.")
		return nil
	}

	argv, err := LauncherArgv(settings)
	if err != nil {
		logbus.Errorf(m.out, "Cannot open screen: %v", err)
		return err
	}
	path, err := m.resolve(argv)
	if err != nil {
		logbus.Errorf(m.out, "Error opening screen: %v", err)
		return err
	}

	cmd := exec.Command(path, argv[1:]...)
	configureCommand(cmd)
	if err := cmd.Start(); err != nil {
		var failure error = &LaunchError{Argv: argv, Err: err}
		if errors.Is(err, exec.ErrNotFound) {
			failure = &LauncherNotFoundError{Program: argv[0], Err: err}
		}
		logbus.Errorf(m.out, "Error opening screen: %v", failure)
		return failure
	}

	h := &Handle{
		cmd:     cmd,
		argv:    argv,
		started: time.Now(),
		done:    make(chan struct{}),
	}
	go func() {
		h.err = cmd.Wait()
		close(h.done)
	}()
	m.handle = h

	logging.LogSession("started", h.PID(), argv)
	logbus.Infof(m.out, "Screen process started.")
	return nil
}

// resolve finds every program argv depends on and returns the path of
// the terminal itself.
func (m *Manager) resolve(argv []string) (string, error) {
	var terminal string
	for i, program := range programsIn(argv) {
		path, err := m.lookPath(program)
		if err != nil {
			return "", &LauncherNotFoundError{Program: program, Err: err}
		}
		if i == 0 {
			terminal = path
		}
	}
	return terminal, nil
}

// Close stops the running session. It blocks for at most the grace
// period plus the time a kill takes to be reaped.
func (m *Manager) Close() CloseResult {
	if !m.IsRunning() {
		logbus.Infof(m.out, "No active screen session to close.")
		return NothingToClose
	}
	h := m.handle
	m.handle = nil

	if err := terminate(h); err != nil {
		m.logger.Debug("terminate request failed", zap.Int("pid", h.PID()), zap.Error(err))
	}
	if h.waitFor(m.grace) {
		logging.LogSession("terminated", h.PID(), h.argv)
		logbus.Successf(m.out, "Screen process terminated.")
		return Terminated
	}

	if err := forceKill(h); err != nil {
		m.logger.Warn("kill failed", zap.Int("pid", h.PID()), zap.Error(err))
	}
	h.waitFor(m.grace)
	logging.LogSession("killed", h.PID(), h.argv)
	logbus.Warnf(m.out, "Screen process forcefully killed.")
	return Killed
}
