package logbus

import (
	"fmt"
	"strings"
)

// DefaultMaxEntries caps the log pane history.
const DefaultMaxEntries = 5000

// Buffer is the append-only history behind the log pane. It is owned by the
// UI goroutine and is not safe for concurrent use.
type Buffer struct {
	entries []Entry
	max     int
	counts  [LevelError + 1]int
	version int
}

// NewBuffer creates a buffer keeping at most max entries (DefaultMaxEntries
// when max <= 0).
func NewBuffer(max int) *Buffer {
	if max <= 0 {
		max = DefaultMaxEntries
	}
	return &Buffer{max: max}
}

// Emit appends an entry, dropping the oldest once the cap is reached.
func (b *Buffer) Emit(e Entry) {
	b.entries = append(b.entries, e)
	if len(b.entries) > b.max {
		b.entries = b.entries[len(b.entries)-b.max:]
	}
	if e.Level >= LevelInfo && e.Level <= LevelError {
		b.counts[e.Level]++
	}
	b.version++
}

// Append adds several entries in order.
func (b *Buffer) Append(entries ...Entry) {
	for _, e := range entries {
		b.Emit(e)
	}
}

// Entries returns the retained history, oldest first.
func (b *Buffer) Entries() []Entry {
	return b.entries
}

// Len is the number of retained entries.
func (b *Buffer) Len() int {
	return len(b.entries)
}

// Version increments on every append; the pane uses it to skip re-rendering.
func (b *Buffer) Version() int {
	return b.version
}

// Last returns the newest entry.
func (b *Buffer) Last() (Entry, bool) {
	if len(b.entries) == 0 {
		return Entry{}, false
	}
	return b.entries[len(b.entries)-1], true
}

// Count returns how many entries of a level were ever appended, including
// ones since dropped by the cap.
func (b *Buffer) Count(level Level) int {
	if level < LevelInfo || level > LevelError {
		return 0
	}
	return b.counts[level]
}

// Status is the one-line summary under the log pane.
func (b *Buffer) Status() string {
	last, ok := b.Last()
	if !ok {
		return "Ready"
	}
	line := strings.SplitN(strings.TrimSpace(last.Text), "\n", 2)[0]
	summary := fmt.Sprintf("%s %s", last.Level, line)
	if w, e := b.Count(LevelWarning), b.Count(LevelError); w > 0 || e > 0 {
		summary += fmt.Sprintf("  (%d warnings, %d errors)", w, e)
	}
	return summary
}

// Text renders the whole history as plain text, one formatted entry per line.
func (b *Buffer) Text() string {
	var sb strings.Builder
	for _, e := range b.entries {
		sb.WriteString(e.Format())
		sb.WriteString("\n")
	}
	return sb.String()
}
