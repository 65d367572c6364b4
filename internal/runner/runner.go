package runner

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/google/uuid"
	"github.com/kballard/go-shellquote"
	"go.uber.org/zap"

	"github.com/muurk/portctl/internal/logbus"
	"github.com/muurk/portctl/internal/logging"
)

// DefaultSettleDelay is how long SendBIOSKey holds the device open after
// writing, for firmware consoles that drop input on a fast close.
const DefaultSettleDelay = 100 * time.Millisecond

// Runner dispatches jobs and reports their outcome to an Emitter.
type Runner struct {
	out    logbus.Emitter
	shell  []string
	settle time.Duration
	logger *zap.Logger
	wg     sync.WaitGroup
}

// Option configures a Runner.
type Option func(*Runner)

// WithShell sets the interpreter argv; the command is appended as the
// final argument.
func WithShell(argv ...string) Option {
	return func(r *Runner) {
		if len(argv) > 0 {
			r.shell = append([]string(nil), argv...)
		}
	}
}

// WithSettleDelay overrides DefaultSettleDelay.
func WithSettleDelay(d time.Duration) Option {
	return func(r *Runner) { r.settle = d }
}

// WithLogger sets the diagnostics logger.
func WithLogger(l *zap.Logger) Option {
	return func(r *Runner) { r.logger = l }
}

// New creates a Runner that reports to out.
func New(out logbus.Emitter, opts ...Option) *Runner {
	r := &Runner{
		out:    out,
		shell:  defaultShell(),
		settle: DefaultSettleDelay,
		logger: logging.Named("runner"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ParseShell splits a shell override such as "bash -lc". A bare program
// name gets the platform's command flag appended.
func ParseShell(s string) ([]string, error) {
	argv, err := shellquote.Split(s)
	if err != nil {
		return nil, fmt.Errorf("invalid shell %q: %w", s, err)
	}
	if len(argv) == 0 {
		return nil, fmt.Errorf("empty shell")
	}
	if len(argv) == 1 {
		argv = append(argv, shellFlag)
	}
	return argv, nil
}

// Shell returns the interpreter argv in use.
func (r *Runner) Shell() []string {
	return append([]string(nil), r.shell...)
}

// Wait blocks until every dispatched job has finished.
func (r *Runner) Wait() {
	r.wg.Wait()
}

func (r *Runner) dispatch(kind, target string, job func(id string)) string {
	id := uuid.NewString()[:8]
	logging.LogDispatch(id, kind, target)
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		job(id)
	}()
	return id
}

// RunLocal runs command through the shell in a new goroutine and returns
// the job ID.
func (r *Runner) RunLocal(command string) string {
	return r.dispatch("local", command, func(id string) {
		r.runLocal(id, command)
	})
}

func (r *Runner) runLocal(id, command string) {
	logbus.Infof(r.out, "▶ Executing: %s", command)

	argv := append(r.Shell(), command)
	cmd := exec.Command(argv[0], argv[1:]...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	outText := clean(stdout.String())
	errText := clean(stderr.String())

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			r.logger.Debug("local command failed",
				zap.String("job", id),
				zap.Int("exit_code", exitErr.ExitCode()),
				zap.Duration("elapsed", time.Since(start)),
			)
			msg := fmt.Sprintf("Command exited with code %d", exitErr.ExitCode())
			if errText != "" {
				msg += ": " + errText
			} else if outText != "" {
				msg += ": " + outText
			}
			r.out.Emit(logbus.NewEntry(logbus.LevelError, msg))
			return
		}
		r.logger.Warn("local command did not start", zap.String("job", id), zap.Error(err))
		logbus.Errorf(r.out, "Failed to run command: %v", err)
		return
	}

	r.logger.Debug("local command finished",
		zap.String("job", id),
		zap.Int("stdout_bytes", stdout.Len()),
		zap.Int("stderr_bytes", stderr.Len()),
		zap.Duration("elapsed", time.Since(start)),
	)
	if outText != "" {
		r.out.Emit(logbus.NewEntry(logbus.LevelInfo, outText))
	}
	if errText != "" {
		r.out.Emit(logbus.NewEntry(logbus.LevelWarning, errText))
	}
	if outText == "" && errText == "" {
		r.out.Emit(logbus.NewEntry(logbus.LevelSuccess, "Command finished"))
	}
}

// clean strips terminal escape sequences and trailing whitespace.
func clean(s string) string {
	s = ansi.Strip(s)
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.TrimRight(s, " \t\r\n")
}

// SendSerial writes payload plus CRLF to device in a new goroutine and
// returns the job ID.
func (r *Runner) SendSerial(device, payload string) string {
	return r.dispatch("serial", device, func(id string) {
		r.sendSerial(id, device, payload)
	})
}

func (r *Runner) sendSerial(id, device, payload string) {
	if err := WriteDevice(device, []byte(payload+"\r\n"), 0); err != nil {
		r.logger.Warn("serial write failed", zap.String("job", id), zap.Error(err))
		logbus.Errorf(r.out, "Error sending to serial: %v", err)
		return
	}
	logbus.Successf(r.out, "Sent to %s: %s", device, payload)
}

// SendBIOSKey writes a raw key sequence to device, without CRLF, in a new
// goroutine and returns the job ID. Named keys such as F2 or ESC are
// translated first.
func (r *Runner) SendBIOSKey(device, key string) string {
	return r.dispatch("bios", device, func(id string) {
		r.sendBIOSKey(id, device, key)
	})
}

func (r *Runner) sendBIOSKey(id, device, key string) {
	seq, name := ResolveKey(key)
	if err := WriteDevice(device, []byte(seq), r.settle); err != nil {
		r.logger.Warn("bios key write failed", zap.String("job", id), zap.Error(err))
		logbus.Errorf(r.out, "Error sending key to serial: %v", err)
		return
	}
	logbus.Successf(r.out, "Sent key %s to %s", name, device)
}
