package runner

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"syscall"
	"time"

	"github.com/muurk/portctl/internal/logging"
)

// Reason classifies a device failure.
type Reason int

const (
	ReasonOther Reason = iota
	ReasonNotFound
	ReasonPermission
	ReasonBrokenPipe
)

func (r Reason) String() string {
	switch r {
	case ReasonNotFound:
		return "device missing"
	case ReasonPermission:
		return "permission denied"
	case ReasonBrokenPipe:
		return "broken pipe"
	default:
		return "I/O error"
	}
}

// DeviceError is a failed serial device open or write.
type DeviceError struct {
	Device string
	Op     string // "open", "write" or "close"
	Reason Reason
	Err    error
}

func (e *DeviceError) Error() string {
	return fmt.Sprintf("%s %s: %s (%v)", e.Op, e.Device, e.Reason, e.Err)
}

func (e *DeviceError) Unwrap() error {
	return e.Err
}

func classify(err error) Reason {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return ReasonNotFound
	case errors.Is(err, fs.ErrPermission):
		return ReasonPermission
	case errors.Is(err, syscall.EPIPE):
		return ReasonBrokenPipe
	default:
		return ReasonOther
	}
}

func deviceError(device, op string, err error) *DeviceError {
	return &DeviceError{Device: device, Op: op, Reason: classify(err), Err: err}
}

// WriteDevice opens device write-only, writes data, syncs, waits settle
// and closes. The device must already exist.
func WriteDevice(device string, data []byte, settle time.Duration) error {
	f, err := os.OpenFile(device, os.O_WRONLY, 0)
	if err != nil {
		return deviceError(device, "open", err)
	}

	logging.LogRawBytes("serial write "+device, data)
	if _, err := f.Write(data); err != nil {
		f.Close()
		return deviceError(device, "write", err)
	}
	// Character devices and pipes may not support fsync.
	if err := f.Sync(); err != nil && !errors.Is(err, syscall.EINVAL) && !errors.Is(err, syscall.ENOTSUP) {
		logging.Debug("serial sync failed: " + err.Error())
	}
	if settle > 0 {
		time.Sleep(settle)
	}
	if err := f.Close(); err != nil {
		return deviceError(device, "close", err)
	}
	return nil
}
