package ui

import (
	"fmt"
	"strings"
)

// CheckStatus is the outcome of one check.
type CheckStatus int

const (
	CheckPassed CheckStatus = iota
	CheckFailed
	CheckSkipped
)

// Check is one line in a check list.
type Check struct {
	Name   string
	Status CheckStatus
	Note   string // optional detail, e.g. the resolved path or the error
}

// CheckList renders a titled list of checks with pass/fail markers.
type CheckList struct {
	Title  string
	Checks []Check
}

// NewCheckList creates an empty list.
func NewCheckList(title string) *CheckList {
	return &CheckList{Title: title}
}

// Add appends a check.
func (l *CheckList) Add(name string, status CheckStatus, note string) *CheckList {
	l.Checks = append(l.Checks, Check{Name: name, Status: status, Note: note})
	return l
}

// Pass appends a passed check.
func (l *CheckList) Pass(name, note string) *CheckList {
	return l.Add(name, CheckPassed, note)
}

// Fail appends a failed check.
func (l *CheckList) Fail(name string, err error) *CheckList {
	return l.Add(name, CheckFailed, err.Error())
}

// Failed returns the number of failed checks.
func (l *CheckList) Failed() int {
	n := 0
	for _, c := range l.Checks {
		if c.Status == CheckFailed {
			n++
		}
	}
	return n
}

// Render returns the styled list.
func (l *CheckList) Render() string {
	var b strings.Builder
	if l.Title != "" {
		b.WriteString(HeaderTitleStyle.Render(l.Title))
		b.WriteString("\n")
	}
	for _, c := range l.Checks {
		var marker string
		switch c.Status {
		case CheckPassed:
			marker = CheckPassedStyle.Render(MarkerPassed)
		case CheckFailed:
			marker = CheckFailedStyle.Render(MarkerFailed)
		default:
			marker = CheckSkippedStyle.Render(MarkerSkipped)
		}
		line := fmt.Sprintf("  %s %s", marker, c.Name)
		if c.Note != "" {
			line += "  " + CheckNoteStyle.Render("("+c.Note+")")
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

// String implements fmt.Stringer
func (l *CheckList) String() string {
	return l.Render()
}
