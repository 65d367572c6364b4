package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/muurk/portctl/internal/config"
	"github.com/muurk/portctl/internal/logbus"
	"github.com/muurk/portctl/internal/logging"
	"github.com/muurk/portctl/internal/prefs"
	"github.com/muurk/portctl/internal/runner"
	"github.com/muurk/portctl/internal/session"
)

// overlay is the modal currently on top of the main screen.
type overlay int

const (
	overlayNone overlay = iota
	overlaySelector
	overlayAddGroup
	overlayAddCommand
	overlayQuit
)

// Options wires the model to the rest of the program.
type Options struct {
	Store    *config.Store
	Runner   *runner.Runner
	Sessions *session.Manager
	// Bus carries entries from runner goroutines.
	Bus *logbus.Bus
	// Log is the pane history. UI-goroutine producers such as the session
	// manager write to it directly.
	Log *logbus.Buffer

	Prefs     *prefs.Registry
	PrefsPath string // empty disables saving preferences

	// FileEvents reports external edits to the config file.
	FileEvents <-chan struct{}
	// Clipboard defaults to atotto/clipboard.
	Clipboard func(string) error
	// UnitType overrides the remembered selection.
	UnitType string
}

// Model is the control panel.
type Model struct {
	store      *config.Store
	runner     *runner.Runner
	sessions   *session.Manager
	bus        *logbus.Bus
	log        *logbus.Buffer
	prefs      *prefs.Registry
	prefsPath  string
	fileEvents <-chan struct{}
	clipboard  func(string) error
	changes    chan *config.Config

	unitType   string
	cfg        *config.Config
	grid       Grid
	cursor     Cursor
	logFocused bool
	pane       logPane
	reported   map[string]bool // disabled-button errors already logged

	overlay  overlay
	selector unitSelector
	groupDlg groupDialog
	cmdDlg   commandDialog

	keys   keyMap
	help   help.Model
	width  int
	height int
}

// New builds the model and subscribes it to store changes.
func New(opts Options) Model {
	if opts.Log == nil {
		opts.Log = logbus.NewBuffer(logbus.DefaultMaxEntries)
	}
	if opts.Prefs == nil {
		opts.Prefs = prefs.NewRegistry()
	}
	if opts.Clipboard == nil {
		opts.Clipboard = clipboard.WriteAll
	}

	changes := make(chan *config.Config, 16)
	opts.Store.Subscribe(func(cfg *config.Config) {
		select {
		case changes <- cfg:
		default:
			// Pending rebuilds read the live store, so a dropped
			// snapshot loses nothing.
		}
	})

	m := Model{
		store:      opts.Store,
		runner:     opts.Runner,
		sessions:   opts.Sessions,
		bus:        opts.Bus,
		log:        opts.Log,
		prefs:      opts.Prefs,
		prefsPath:  opts.PrefsPath,
		fileEvents: opts.FileEvents,
		clipboard:  opts.Clipboard,
		changes:    changes,
		pane:       newLogPane(opts.Log),
		keys:       newKeyMap(),
		help:       help.New(),
	}

	cfg := opts.Store.Snapshot()
	m.unitType = initialUnitType(cfg, opts.UnitType, opts.Prefs.LastUnitType(opts.Store.Path()))
	logbus.Infof(m.log, "Loaded %s (%d unit types)", opts.Store.Path(), len(cfg.UnitTypes))
	m.rebuild(cfg)
	return m
}

func initialUnitType(cfg *config.Config, requested, remembered string) string {
	for _, name := range []string{requested, remembered} {
		if name != "" && cfg.UnitType(name) != nil {
			return name
		}
	}
	if names := cfg.UnitTypeNames(); len(names) > 0 {
		return names[0]
	}
	return config.LegacyUnitType
}

// UnitType returns the selected unit type.
func (m Model) UnitType() string {
	return m.unitType
}

// Grid returns the current button grid.
func (m Model) Grid() Grid {
	return m.grid
}

// Init starts the background listeners.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{waitForConfigChange(m.changes)}
	if m.bus != nil {
		cmds = append(cmds, waitForLog(m.bus))
	}
	if m.fileEvents != nil {
		cmds = append(cmds, waitForFileChange(m.fileEvents))
	}
	return tea.Batch(cmds...)
}

func (m Model) columns() int {
	if m.width > 0 && m.width < MinTerminalWidth {
		return 1
	}
	return m.prefs.GridColumns()
}

// rebuild swaps in cfg (the live snapshot when nil) and reports buttons
// whose templates cannot be filled.
func (m *Model) rebuild(cfg *config.Config) {
	if cfg == nil {
		cfg = m.store.Snapshot()
	}
	m.cfg = cfg
	m.regrid()

	reported := make(map[string]bool)
	for _, gv := range m.grid.Groups {
		for _, bv := range gv.Buttons {
			if bv.Err == nil {
				continue
			}
			line := fmt.Sprintf("Button %q in %q disabled: %v", bv.Button.Text, gv.Title, bv.Err)
			if !m.reported[line] {
				logbus.Errorf(m.log, "%s", line)
			}
			reported[line] = true
		}
	}
	m.reported = reported
	m.pane.Refresh()
}

func (m *Model) regrid() {
	m.grid = BuildGrid(m.cfg, m.unitType, m.columns())
	m.cursor = m.grid.Clamp(m.cursor)
	m.layout()
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.regrid()
		return m, nil

	case logBatchMsg:
		m.log.Append(msg.entries...)
		m.pane.Refresh()
		return m, waitForLog(m.bus)

	case busClosedMsg:
		return m, nil

	case configChangedMsg:
		m.rebuild(nil)
		return m, waitForConfigChange(m.changes)

	case fileChangedMsg:
		m.reload(true)
		return m, waitForFileChange(m.fileEvents)

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Save) {
			m.persist()
			return m, nil
		}
		switch m.overlay {
		case overlayNone:
			return m.updateMain(msg)
		case overlayQuit:
			return m.updateQuitPrompt(msg)
		}
		if msg.String() == "ctrl+c" {
			return m.requestQuit()
		}
	}

	switch m.overlay {
	case overlaySelector:
		return m.updateSelector(msg)
	case overlayAddGroup:
		return m.updateGroupDialog(msg)
	case overlayAddCommand:
		return m.updateCommandDialog(msg)
	}

	if m.logFocused {
		var cmd tea.Cmd
		m.pane, cmd = m.pane.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) updateMain(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.requestQuit()

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.layout()
		return m, nil

	case key.Matches(msg, m.keys.FocusLog):
		m.logFocused = !m.logFocused
		return m, nil

	case key.Matches(msg, m.keys.Copy):
		m.copyLog()
		return m, nil

	case key.Matches(msg, m.keys.Reload):
		m.reload(false)
		return m, nil

	case key.Matches(msg, m.keys.UnitType):
		names := m.cfg.UnitTypeNames()
		if len(names) == 0 {
			logbus.Warnf(m.log, "No unit types defined. Press g to add a group to %q.", m.unitType)
			m.pane.Refresh()
			return m, nil
		}
		m.selector = newUnitSelector(names, m.unitType)
		m.overlay = overlaySelector
		return m, textinput.Blink

	case key.Matches(msg, m.keys.AddGroup):
		m.groupDlg = newGroupDialog(m.unitType)
		m.overlay = overlayAddGroup
		return m, textinput.Blink

	case key.Matches(msg, m.keys.AddCommand):
		ut := m.cfg.UnitType(m.unitType)
		if ut == nil || len(ut.ButtonGroups) == 0 {
			logbus.Warnf(m.log, "Unit type %q has no groups. Add a group first (g).", m.unitType)
			m.pane.Refresh()
			return m, nil
		}
		m.cmdDlg = newCommandDialog(m.unitType, ut, m.cfg.Settings.Strings())
		if m.cursor.Group < len(m.cmdDlg.groups) {
			m.cmdDlg.cursor = m.cursor.Group
		}
		m.overlay = overlayAddCommand
		return m, nil
	}

	if m.logFocused {
		var cmd tea.Cmd
		m.pane, cmd = m.pane.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		m.cursor = m.grid.Up(m.cursor)
	case key.Matches(msg, m.keys.Down):
		m.cursor = m.grid.Down(m.cursor)
	case key.Matches(msg, m.keys.Left):
		m.cursor = m.grid.Left(m.cursor)
	case key.Matches(msg, m.keys.Right):
		m.cursor = m.grid.Right(m.cursor)
	case key.Matches(msg, m.keys.Activate):
		if bv, ok := m.grid.Focused(m.cursor); ok {
			m.activate(bv)
		}
	}
	return m, nil
}

// activate dispatches a button. Every action is handled here.
func (m *Model) activate(bv ButtonView) {
	defer m.pane.Refresh()

	if !bv.Enabled() {
		logbus.Errorf(m.log, "%s: %v", bv.Button.Text, bv.Err)
		return
	}

	settings := m.cfg.Settings.Strings()
	device := settings[config.SettingSerialDevice]

	switch bv.Button.Action {
	case config.ActionOpenScreen:
		m.sessions.Open(settings)
	case config.ActionCloseScreen:
		m.sessions.Close()
	case config.ActionSendToSerial:
		m.runner.SendSerial(device, bv.Payload)
	case config.ActionSendBIOSKey:
		m.runner.SendBIOSKey(device, bv.Payload)
	case config.ActionRunLocalCommand:
		m.runner.RunLocal(bv.Payload)
	default:
		logbus.Errorf(m.log, "%s: unsupported action %q", bv.Button.Text, bv.Button.Action)
	}
}

func (m Model) updateSelector(msg tea.Msg) (tea.Model, tea.Cmd) {
	var outcome dialogOutcome
	var cmd tea.Cmd
	m.selector, outcome, cmd = m.selector.Update(msg)

	switch outcome {
	case dialogCancel:
		m.overlay = overlayNone
	case dialogSubmit:
		m.overlay = overlayNone
		m.selectUnitType(m.selector.Choice())
	}
	return m, cmd
}

func (m *Model) selectUnitType(name string) {
	if name == m.unitType {
		return
	}
	m.unitType = name
	m.cursor = Cursor{}
	m.rebuild(m.cfg)
	logbus.Infof(m.log, "Switched to unit type %s", name)

	m.prefs.RememberUnitType(m.store.Path(), name)
	if m.prefsPath != "" {
		if err := m.prefs.SaveTo(m.prefsPath); err != nil {
			logging.Warn("failed to save preferences", zap.Error(err))
		}
	}
}

func (m Model) updateGroupDialog(msg tea.Msg) (tea.Model, tea.Cmd) {
	var outcome dialogOutcome
	var cmd tea.Cmd
	m.groupDlg, outcome, cmd = m.groupDlg.Update(msg)

	switch outcome {
	case dialogCancel:
		m.overlay = overlayNone
	case dialogSubmit:
		group := m.groupDlg.Result()
		err := m.ensureUnitType()
		var werr *config.WriteError
		if err == nil || errors.As(err, &werr) {
			err = m.store.AddGroup(m.unitType, group)
		}
		m.groupDlg.err, m.groupDlg.saveFailed = m.editResult(err, fmt.Sprintf("Added group %q to %s", group.Title, m.unitType))
		if err == nil {
			m.overlay = overlayNone
		}
	}
	return m, cmd
}

// ensureUnitType creates the selected unit type when the layout has none.
// A *WriteError leaves the unit type in memory for the following edit to save.
func (m *Model) ensureUnitType() error {
	if m.store.Config().UnitType(m.unitType) != nil {
		return nil
	}
	return m.store.AddUnitType(m.unitType, "")
}

func (m Model) updateCommandDialog(msg tea.Msg) (tea.Model, tea.Cmd) {
	var outcome dialogOutcome
	var cmd tea.Cmd
	m.cmdDlg, outcome, cmd = m.cmdDlg.Update(msg)

	switch outcome {
	case dialogCancel:
		m.overlay = overlayNone
	case dialogSubmit:
		index, button := m.cmdDlg.Result()
		err := m.store.AddCommand(m.unitType, index, button)
		m.cmdDlg.err, m.cmdDlg.saveFailed = m.editResult(err,
			fmt.Sprintf("Added %s button %q to %q", button.Action, button.Text, m.cmdDlg.SelectedGroup().Title))
		if err == nil {
			m.overlay = overlayNone
			m.cursor = Cursor{Group: index, Button: len(m.store.Config().UnitType(m.unitType).ButtonGroups[index].Buttons) - 1}
		}
	}
	return m, cmd
}

// editResult logs an edit outcome and returns the dialog's inline error and
// whether the edit was applied but not saved.
func (m *Model) editResult(err error, success string) (string, bool) {
	defer m.pane.Refresh()

	if err == nil {
		m.rebuild(nil)
		logbus.Successf(m.log, "%s", success)
		return "", false
	}
	var we *config.WriteError
	if errors.As(err, &we) {
		m.rebuild(nil)
		logbus.Errorf(m.log, "%v", err)
		return fmt.Sprintf("Save failed: %v", we.Err), true
	}
	return err.Error(), false
}

// persist retries a failed save, or re-saves the current layout.
func (m *Model) persist() {
	defer m.pane.Refresh()

	if err := m.store.Persist(); err != nil {
		logbus.Errorf(m.log, "%v", err)
		return
	}
	logbus.Successf(m.log, "Saved %s", m.store.Path())
	if (m.overlay == overlayAddGroup && m.groupDlg.saveFailed) ||
		(m.overlay == overlayAddCommand && m.cmdDlg.saveFailed) {
		m.overlay = overlayNone
	}
}

// reload re-reads the config file. An external change never discards
// unsaved edits; an explicit reload does.
func (m *Model) reload(external bool) {
	defer m.pane.Refresh()

	if m.store.Dirty() {
		if external {
			logbus.Warnf(m.log, "Config file changed on disk; keeping unsaved edits (ctrl+s saves, r reloads)")
			return
		}
		logbus.Warnf(m.log, "Discarding unsaved edits")
	}
	if err := m.store.Reload(); err != nil {
		logbus.Errorf(m.log, "Reload failed, keeping the current layout: %v", err)
		return
	}
	if m.store.Config().UnitType(m.unitType) == nil {
		m.unitType = initialUnitType(m.store.Config(), "", "")
	}
	m.rebuild(nil)
	logbus.Infof(m.log, "Reloaded %s", m.store.Path())
}

func (m *Model) copyLog() {
	defer m.pane.Refresh()

	text := m.log.Text()
	if text == "" {
		logbus.Infof(m.log, "Log is empty, nothing to copy.")
		return
	}
	if err := m.clipboard(text); err != nil {
		logbus.Errorf(m.log, "Copy failed: %v", err)
		return
	}
	logbus.Infof(m.log, "Copied %d log entries to the clipboard.", m.log.Len())
}

func (m Model) requestQuit() (tea.Model, tea.Cmd) {
	if m.sessions != nil && m.sessions.IsRunning() && m.prefs.ConfirmQuit() {
		m.overlay = overlayQuit
		return m, nil
	}
	return m, tea.Quit
}

func (m Model) updateQuitPrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.sessions.Close()
		return m, tea.Quit
	case "n", "N", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.overlay = overlayNone
	}
	return m, nil
}

// layout sizes the log pane to the space the grid leaves.
func (m *Model) layout() {
	if m.width == 0 {
		return
	}
	inner := m.width - 4
	chrome := 5 + lipgloss.Height(m.help.View(m.keys)) // frame, header, footer rule
	used := chrome +
		lipgloss.Height(m.renderSelectorLine()) +
		lipgloss.Height(m.renderGrid(inner)) +
		2 + // log border
		1 // status line
	m.pane.SetSize(inner-2, m.height-used)
}

// View renders the screen.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	switch m.overlay {
	case overlaySelector:
		return RenderModal(m.selector.View(m.width), m.width, m.height)
	case overlayAddGroup:
		return RenderModal(m.groupDlg.View(m.width), m.width, m.height)
	case overlayAddCommand:
		return RenderModal(m.cmdDlg.View(m.width), m.width, m.height)
	case overlayQuit:
		prompt := ModalTitleStyle.Render("Screen session running") + "\n" +
			"A screen session is still open.\nClose it before exiting? (y/n)\n\n" +
			SubtitleStyle.Render("y close and quit • n quit and leave it open • esc stay")
		return RenderModal(ModalStyle.Render(prompt), m.width, m.height)
	}

	inner := m.width - 4
	logStyle := PanelStyle
	if m.logFocused {
		logStyle = FocusedPanelStyle
	}
	content := lipgloss.JoinVertical(lipgloss.Left,
		m.renderSelectorLine(),
		m.renderGrid(inner),
		logStyle.Width(inner-2).Padding(0).Render(m.pane.View()),
		m.renderStatusLine(),
	)
	return RenderApplicationContainer(BuildHeaderContent(m.store.Path()), content, m.help.View(m.keys), m.width, m.height)
}

func (m Model) renderSelectorLine() string {
	line := SubtitleStyle.Render("Unit type: ") + SelectorStyle.Render(m.unitType+" ▾")
	if ut := m.cfg.UnitType(m.unitType); ut != nil && ut.Description != "" {
		line += "  " + SubtitleStyle.Render(ut.Description)
	}
	return line
}

func (m Model) renderStatusLine() string {
	parts := []string{m.log.Status()}
	if m.sessions != nil && m.sessions.Handle() != nil {
		parts = append(parts, LocalBadgeStyle.Render("● screen running"))
	}
	if n := len(m.grid.Errors()); n > 0 {
		parts = append(parts, InlineErrorStyle.Render(fmt.Sprintf("%d disabled", n)))
	}
	if m.store.Dirty() {
		parts = append(parts, InlineErrorStyle.Render("unsaved changes (ctrl+s)"))
	}
	return StatusBarStyle.Render(strings.Join(parts, "  │  "))
}

func (m Model) renderGrid(width int) string {
	if len(m.grid.Groups) == 0 {
		return SubtitleStyle.Render("\n  No groups yet. Press g to add one.\n")
	}

	cols := m.grid.Columns
	panelWidth := width/cols - 2
	if panelWidth < 16 {
		panelWidth = 16
	}

	var rows []string
	for r := 0; r < m.grid.Rows(); r++ {
		var panels []string
		for c := 0; c < cols; c++ {
			i := m.grid.At(r, c)
			if i < 0 {
				break
			}
			panels = append(panels, m.renderGroup(m.grid.Groups[i], panelWidth))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, panels...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) renderGroup(gv GroupView, width int) string {
	focusedGroup := !m.logFocused && m.cursor.Group == gv.Index
	style := PanelStyle
	if focusedGroup {
		style = FocusedPanelStyle
	}
	inner := width - 4

	lines := []string{PanelTitleStyle.Render(gv.Title) + " " + GroupBadge(gv.Type)}
	if gv.Description != "" {
		lines = append(lines, SubtitleStyle.Width(inner).Render(gv.Description))
	}
	if len(gv.Buttons) == 0 {
		lines = append(lines, SubtitleStyle.Render("(no buttons, press a)"))
	}
	for bi, bv := range gv.Buttons {
		focused := focusedGroup && m.cursor.Button == bi
		lines = append(lines, renderButton(bv, focused, inner))
	}
	return style.Width(width).Render(strings.Join(lines, "\n"))
}

func renderButton(bv ButtonView, focused bool, width int) string {
	label := bv.Button.Text
	if !bv.Enabled() {
		s := DisabledButtonStyle.Width(width)
		if focused {
			s = s.Bold(true)
		}
		return s.Render("✗ " + label)
	}
	s := StyledButton(ButtonStyle, bv.Button.Style).Width(width)
	if focused {
		s = s.Inherit(FocusedButtonStyle)
		label = "▶ " + label
	}
	return s.Render(label)
}
