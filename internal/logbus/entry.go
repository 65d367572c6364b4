// Package logbus carries operator-facing log lines from producers to the log
// pane.
//
// Workers run on their own goroutines and publish through a Bus, a bounded
// FIFO channel that the UI event loop drains. Producers that already run on
// the UI goroutine (the session manager, dialogs) append straight to the
// Buffer that backs the pane. Both implement Emitter.
package logbus

import (
	"fmt"
	"strings"
	"time"
)

// Level is the severity shown in the log pane.
type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelWarning
	LevelError
)

// String returns the upper-case tag used in the pane.
func (l Level) String() string {
	switch l {
	case LevelInfo:
		return "INFO"
	case LevelSuccess:
		return "SUCCESS"
	case LevelWarning:
		return "WARNING"
	case LevelError:
		return "ERROR"
	default:
		return fmt.Sprintf("Level(%d)", int(l))
	}
}

// Entry is one log line (or block, for captured command output).
type Entry struct {
	Level Level
	Text  string
	Time  time.Time
}

// NewEntry stamps an entry with the current time.
func NewEntry(level Level, text string) Entry {
	return Entry{Level: level, Text: text, Time: time.Now()}
}

// Format renders "[15:04:05] LEVEL text". Continuation lines are indented
// under the text column.
func (e Entry) Format() string {
	prefix := fmt.Sprintf("[%s] %-7s ", e.Time.Format("15:04:05"), e.Level)
	text := strings.TrimRight(e.Text, "\n")
	return prefix + strings.ReplaceAll(text, "\n", "\n"+strings.Repeat(" ", len(prefix)))
}

// Emitter accepts log entries.
type Emitter interface {
	Emit(Entry)
}

// Infof emits an INFO entry.
func Infof(e Emitter, format string, args ...any) {
	e.Emit(NewEntry(LevelInfo, fmt.Sprintf(format, args...)))
}

// Successf emits a SUCCESS entry.
func Successf(e Emitter, format string, args ...any) {
	e.Emit(NewEntry(LevelSuccess, fmt.Sprintf(format, args...)))
}

// Warnf emits a WARNING entry.
func Warnf(e Emitter, format string, args ...any) {
	e.Emit(NewEntry(LevelWarning, fmt.Sprintf(format, args...)))
}

// Errorf emits an ERROR entry.
func Errorf(e Emitter, format string, args ...any) {
	e.Emit(NewEntry(LevelError, fmt.Sprintf(format, args...)))
}

// EmitterFunc adapts a function to Emitter.
type EmitterFunc func(Entry)

// Emit calls f(e).
func (f EmitterFunc) Emit(e Entry) { f(e) }
