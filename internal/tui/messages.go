package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/muurk/portctl/internal/config"
	"github.com/muurk/portctl/internal/logbus"
)

// maxDrain bounds how many queued entries one log message carries.
const maxDrain = 128

// logBatchMsg carries entries drained from the bus.
type logBatchMsg struct {
	entries []logbus.Entry
}

// busClosedMsg means the bus was closed and no more entries will come.
type busClosedMsg struct{}

// configChangedMsg is the store's change notification.
type configChangedMsg struct {
	cfg *config.Config
}

// fileChangedMsg means the config file was edited by another program.
type fileChangedMsg struct{}

// waitForLog blocks for one entry, then takes whatever else is queued.
func waitForLog(bus *logbus.Bus) tea.Cmd {
	return func() tea.Msg {
		select {
		case e := <-bus.Entries():
			return logBatchMsg{entries: append([]logbus.Entry{e}, bus.Drain(maxDrain)...)}
		case <-bus.Done():
			return busClosedMsg{}
		}
	}
}

func waitForConfigChange(ch <-chan *config.Config) tea.Cmd {
	return func() tea.Msg {
		return configChangedMsg{cfg: <-ch}
	}
}

func waitForFileChange(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return fileChangedMsg{}
	}
}
