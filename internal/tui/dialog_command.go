package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/portctl/internal/command"
	"github.com/muurk/portctl/internal/config"
)

type commandStep int

const (
	stepChooseGroup commandStep = iota
	stepDetails
)

const (
	cmdFieldLabel = iota
	cmdFieldCommand
	cmdFieldBackground
	cmdFieldForeground
	cmdFieldCount
)

// groupChoice is a group offered in the first step.
type groupChoice struct {
	Index int
	Title string
	Type  config.GroupType
}

// commandDialog collects a new button: first the group, then the label,
// command and optional colors.
type commandDialog struct {
	unitType   string
	groups     []groupChoice
	step       commandStep
	cursor     int
	label      textinput.Model
	command    textinput.Model
	bg         ColorPicker
	fg         ColorPicker
	focus      int
	settings   map[string]string
	err        string
	saveFailed bool
}

func newCommandDialog(unitType string, ut *config.UnitType, settings map[string]string) commandDialog {
	groups := make([]groupChoice, 0, len(ut.ButtonGroups))
	for i, g := range ut.ButtonGroups {
		groups = append(groups, groupChoice{Index: i, Title: g.Title, Type: config.InferGroupType(g)})
	}

	label := textinput.New()
	label.Placeholder = "Reboot"
	label.CharLimit = 48
	label.Width = 40

	cmd := textinput.New()
	cmd.Placeholder = "command, may use {serial_device}"
	cmd.CharLimit = 512
	cmd.Width = 40

	return commandDialog{
		unitType: unitType,
		groups:   groups,
		label:    label,
		command:  cmd,
		bg:       NewColorPicker("Background"),
		fg:       NewColorPicker("Foreground"),
		settings: settings,
	}
}

// SelectedGroup returns the chosen group.
func (d commandDialog) SelectedGroup() groupChoice {
	return d.groups[d.cursor]
}

// Result returns the chosen group index and the new button. The action
// follows the group's resolved type.
func (d commandDialog) Result() (int, config.Button) {
	g := d.SelectedGroup()
	button := config.Button{
		Text:    strings.TrimSpace(d.label.Value()),
		Action:  g.Type.DefaultAction(),
		Command: strings.TrimSpace(d.command.Value()),
	}
	if bg, fg := d.bg.Value(), d.fg.Value(); bg != "" || fg != "" {
		button.Style = &config.Style{Bg: bg, Fg: fg}
	}
	return g.Index, button
}

func (d *commandDialog) setFocus(i int) {
	d.focus = (i + cmdFieldCount) % cmdFieldCount
	d.label.Blur()
	d.command.Blur()
	switch d.focus {
	case cmdFieldLabel:
		d.label.Focus()
	case cmdFieldCommand:
		d.command.Focus()
	}
}

func (d commandDialog) Update(msg tea.Msg) (commandDialog, dialogOutcome, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return d.updateInput(msg)
	}
	if keyMsg.String() == "esc" {
		return d, dialogCancel, nil
	}
	if d.saveFailed {
		return d, dialogContinue, nil
	}

	if d.step == stepChooseGroup {
		switch keyMsg.String() {
		case "up", "k":
			if d.cursor > 0 {
				d.cursor--
			}
		case "down", "j":
			if d.cursor < len(d.groups)-1 {
				d.cursor++
			}
		case "enter":
			d.step = stepDetails
			d.setFocus(cmdFieldLabel)
			return d, dialogContinue, textinput.Blink
		}
		return d, dialogContinue, nil
	}

	switch keyMsg.String() {
	case "tab":
		d.setFocus(d.focus + 1)
		return d, dialogContinue, textinput.Blink
	case "shift+tab":
		d.setFocus(d.focus - 1)
		return d, dialogContinue, textinput.Blink
	case "enter":
		if err := d.check(); err != "" {
			d.err = err
			return d, dialogContinue, nil
		}
		d.err = ""
		return d, dialogSubmit, nil
	}

	switch d.focus {
	case cmdFieldBackground:
		d.bg = d.bg.Update(keyMsg)
		return d, dialogContinue, nil
	case cmdFieldForeground:
		d.fg = d.fg.Update(keyMsg)
		return d, dialogContinue, nil
	}
	return d.updateInput(msg)
}

// updateInput forwards msg to the focused text field.
func (d commandDialog) updateInput(msg tea.Msg) (commandDialog, dialogOutcome, tea.Cmd) {
	var cmd tea.Cmd
	switch d.focus {
	case cmdFieldLabel:
		d.label, cmd = d.label.Update(msg)
	case cmdFieldCommand:
		d.command, cmd = d.command.Update(msg)
	}
	return d, dialogContinue, cmd
}

// check returns the inline error for the current fields, or "".
func (d *commandDialog) check() string {
	if strings.TrimSpace(d.label.Value()) == "" {
		d.setFocus(cmdFieldLabel)
		return "Label is required."
	}
	cmdText := strings.TrimSpace(d.command.Value())
	if cmdText == "" {
		d.setFocus(cmdFieldCommand)
		return "Command is required."
	}
	if err := command.Check(cmdText, d.settings); err != nil {
		d.setFocus(cmdFieldCommand)
		return err.Error()
	}
	return ""
}

// preview renders the button as it will appear in the grid.
func (d commandDialog) preview() string {
	label := strings.TrimSpace(d.label.Value())
	if label == "" {
		label = "Preview"
	}
	style := StyledButton(ButtonStyle, &config.Style{Bg: d.bg.Value(), Fg: d.fg.Value()})
	return style.Render(label)
}

func (d commandDialog) View(width int) string {
	var b strings.Builder
	b.WriteString(ModalTitleStyle.Render("Add Command to " + d.unitType))
	b.WriteString("\n")

	if d.step == stepChooseGroup {
		b.WriteString(SubtitleStyle.Render("Choose a group") + "\n\n")
		for i, g := range d.groups {
			line := g.Title + " " + GroupBadge(g.Type)
			if i == d.cursor {
				b.WriteString(SelectedListItemStyle.Render("→ ") + line + "\n")
			} else {
				b.WriteString(ListItemStyle.Render(line) + "\n")
			}
		}
		b.WriteString("\n" + SubtitleStyle.Render("↑/↓ select • enter next • esc cancel"))
		return ModalStyle.Width(SafeModalWidth(60, width)).Render(b.String())
	}

	g := d.SelectedGroup()
	b.WriteString(SubtitleStyle.Render("Group: ") + g.Title + " " + GroupBadge(g.Type) +
		SubtitleStyle.Render(" → "+string(g.Type.DefaultAction())) + "\n\n")
	b.WriteString(fieldLabel("Label", d.focus == cmdFieldLabel) + "\n" + d.label.View() + "\n\n")
	b.WriteString(fieldLabel("Command", d.focus == cmdFieldCommand) + "\n" + d.command.View() + "\n\n")
	b.WriteString(d.bg.View(d.focus == cmdFieldBackground) + "\n")
	b.WriteString(d.fg.View(d.focus == cmdFieldForeground) + "\n\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Center, SubtitleStyle.Render("Preview: "), d.preview()) + "\n")

	if d.err != "" {
		b.WriteString("\n" + InlineErrorStyle.Render("✗ "+d.err) + "\n")
	}
	if d.saveFailed {
		b.WriteString("\n" + SubtitleStyle.Render("ctrl+s retry save • esc close"))
	} else {
		b.WriteString("\n" + SubtitleStyle.Render("tab next field • enter add • esc cancel"))
	}
	return ModalStyle.Width(SafeModalWidth(64, width)).Render(b.String())
}
