package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/muurk/portctl/internal/logbus"
)

// logPane renders a logbus.Buffer in a scrollable viewport.
type logPane struct {
	buf      *logbus.Buffer
	view     viewport.Model
	rendered int // buffer version last rendered
}

func newLogPane(buf *logbus.Buffer) logPane {
	return logPane{
		buf:      buf,
		view:     viewport.New(0, MinLogHeight),
		rendered: -1,
	}
}

func (p *logPane) SetSize(width, height int) {
	if height < MinLogHeight {
		height = MinLogHeight
	}
	p.view.Width = width
	p.view.Height = height
	p.rendered = -1
	p.Refresh()
}

// Refresh re-renders if the buffer changed, following the tail unless the
// user has scrolled up.
func (p *logPane) Refresh() {
	if p.buf.Version() == p.rendered {
		return
	}
	follow := p.rendered < 0 || p.view.AtBottom()
	p.rendered = p.buf.Version()

	entries := p.buf.Entries()
	if len(entries) == 0 {
		p.view.SetContent(SubtitleStyle.Render("Press a button to see output here..."))
		return
	}
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = LevelStyle(e.Level).Render(e.Format())
	}
	p.view.SetContent(strings.Join(lines, "\n"))
	if follow {
		p.view.GotoBottom()
	}
}

func (p logPane) Update(msg tea.Msg) (logPane, tea.Cmd) {
	var cmd tea.Cmd
	p.view, cmd = p.view.Update(msg)
	return p, cmd
}

func (p logPane) View() string {
	return p.view.View()
}
