package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	logger *zap.Logger
	sink   *lumberjack.Logger
)

// LogLevelEnvVar is the environment variable that controls logging verbosity.
// When unset or empty, logging is silent (no zap output).
// Valid values: "debug", "info", "warn", "error"
const LogLevelEnvVar = "PORTCTL_LOG_LEVEL"

// LogFileEnvVar overrides the diagnostics file location.
const LogFileEnvVar = "PORTCTL_LOG_FILE"

// Rotation limits for the diagnostics file.
const (
	maxSizeMB  = 5
	maxBackups = 3
	maxAgeDays = 14
)

// Options configures Initialize.
type Options struct {
	// Level is one of debug, info, warn, error. Empty falls back to
	// PORTCTL_LOG_LEVEL, and if that is also empty logging stays silent.
	Level string

	// File is the diagnostics file. Empty falls back to PORTCTL_LOG_FILE and
	// then to DefaultLogFile().
	File string
}

// Initialize creates the process-wide logger.
//
// The TUI owns stdout, so diagnostics always go to a rotated file rather than
// the terminal.
func Initialize(opts Options) error {
	level := opts.Level
	if level == "" {
		level = os.Getenv(LogLevelEnvVar)
	}

	// If still no level, use silent mode (nop logger)
	if level == "" {
		logger = zap.NewNop()
		return nil
	}

	zapLevel, err := ParseLevel(level)
	if err != nil {
		return err
	}

	path := opts.File
	if path == "" {
		path = os.Getenv(LogFileEnvVar)
	}
	if path == "" {
		path, err = DefaultLogFile()
		if err != nil {
			return err
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	sink = &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		MaxAge:     maxAgeDays,
	}

	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeCaller = zapcore.ShortCallerEncoder

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.AddSync(sink),
		zap.NewAtomicLevelAt(zapLevel),
	)
	logger = zap.New(core, zap.AddCaller())
	logger.Info("diagnostics log opened",
		zap.String("file", path),
		zap.String("level", zapLevel.String()),
	)

	return nil
}

// ParseLevel maps a level name to a zap level.
func ParseLevel(level string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zapcore.DebugLevel, nil
	case "info":
		return zapcore.InfoLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("unknown log level %q (use debug, info, warn or error)", level)
	}
}

// DefaultLogFile returns <user cache dir>/portctl/portctl.log.
func DefaultLogFile() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine cache directory: %w", err)
	}
	return filepath.Join(dir, "portctl", "portctl.log"), nil
}

// GetLogger returns the global logger instance
func GetLogger() *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return logger
}

// Named returns a child logger for a component.
func Named(component string) *zap.Logger {
	return GetLogger().Named(component)
}

// Info logs an info message
func Info(msg string, fields ...zap.Field) {
	GetLogger().Info(msg, fields...)
}

// Debug logs a debug message
func Debug(msg string, fields ...zap.Field) {
	GetLogger().Debug(msg, fields...)
}

// Warn logs a warning message
func Warn(msg string, fields ...zap.Field) {
	GetLogger().Warn(msg, fields...)
}

// Error logs an error message
func Error(msg string, fields ...zap.Field) {
	GetLogger().Error(msg, fields...)
}

// LogDispatch records a worker job leaving the UI.
func LogDispatch(jobID, kind, target string) {
	Debug("job dispatched",
		zap.String("job", jobID),
		zap.String("kind", kind),
		zap.String("target", target),
	)
}

// LogSession records a terminal session lifecycle event.
func LogSession(event string, pid int, argv []string) {
	Info("session event",
		zap.String("event", event),
		zap.Int("pid", pid),
		zap.Strings("argv", argv),
	)
}

// LogConfig records a config store event (load, save, reload).
func LogConfig(event, path string, err error) {
	if err != nil {
		Warn("config event failed",
			zap.String("event", event),
			zap.String("path", path),
			zap.Error(err),
		)
		return
	}
	Info("config event",
		zap.String("event", event),
		zap.String("path", path),
	)
}

// LogRawBytes logs bytes written to the serial device.
func LogRawBytes(label string, data []byte) {
	Debug(label,
		zap.Int("length", len(data)),
		zap.String("ascii", asciiDump(data)),
	)
}

func asciiDump(data []byte) string {
	if len(data) > 256 {
		data = data[:256]
	}

	result := make([]byte, len(data))
	for i, b := range data {
		if b >= 32 && b <= 126 {
			result[i] = b
		} else {
			result[i] = '.'
		}
	}
	return string(result)
}

// Sync flushes buffered entries and closes the file sink.
func Sync() {
	if logger != nil {
		_ = logger.Sync()
	}
	if sink != nil {
		_ = sink.Close()
		sink = nil
	}
}
