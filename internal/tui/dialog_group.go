package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/muurk/portctl/internal/config"
)

// dialogOutcome tells the app what a dialog key press resulted in.
type dialogOutcome int

const (
	dialogContinue dialogOutcome = iota
	dialogSubmit
	dialogCancel
)

const (
	groupFieldTitle = iota
	groupFieldDescription
	groupFieldType
	groupFieldCount
)

// groupDialog collects a new button group.
type groupDialog struct {
	unitType    string
	title       textinput.Model
	description textinput.Model
	groupType   config.GroupType
	focus       int
	err         string
	saveFailed  bool // edit applied but not persisted; only retry or close remain
}

func newGroupDialog(unitType string) groupDialog {
	title := textinput.New()
	title.Placeholder = "Power control"
	title.CharLimit = 64
	title.Width = 40
	title.Focus()

	desc := textinput.New()
	desc.Placeholder = "optional"
	desc.CharLimit = 128
	desc.Width = 40

	return groupDialog{
		unitType:    unitType,
		title:       title,
		description: desc,
		groupType:   config.GroupSerial,
	}
}

// Result returns the group described by the dialog.
func (d groupDialog) Result() config.ButtonGroup {
	return config.ButtonGroup{
		Title:       strings.TrimSpace(d.title.Value()),
		Description: strings.TrimSpace(d.description.Value()),
		GroupType:   d.groupType,
		Buttons:     []config.Button{},
	}
}

func (d *groupDialog) setFocus(i int) {
	d.focus = (i + groupFieldCount) % groupFieldCount
	d.title.Blur()
	d.description.Blur()
	switch d.focus {
	case groupFieldTitle:
		d.title.Focus()
	case groupFieldDescription:
		d.description.Focus()
	}
}

func (d groupDialog) Update(msg tea.Msg) (groupDialog, dialogOutcome, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return d.updateInput(msg)
	}

	if d.saveFailed {
		if keyMsg.String() == "esc" {
			return d, dialogCancel, nil
		}
		return d, dialogContinue, nil
	}

	switch keyMsg.String() {
	case "esc":
		return d, dialogCancel, nil
	case "tab", "down":
		d.setFocus(d.focus + 1)
		return d, dialogContinue, textinput.Blink
	case "shift+tab", "up":
		d.setFocus(d.focus - 1)
		return d, dialogContinue, textinput.Blink
	case "enter":
		if strings.TrimSpace(d.title.Value()) == "" {
			d.err = "Title is required."
			d.setFocus(groupFieldTitle)
			return d, dialogContinue, nil
		}
		d.err = ""
		return d, dialogSubmit, nil
	}

	if d.focus == groupFieldType {
		switch keyMsg.String() {
		case "left", "right", "h", "l", " ":
			if d.groupType == config.GroupSerial {
				d.groupType = config.GroupLocal
			} else {
				d.groupType = config.GroupSerial
			}
		}
		return d, dialogContinue, nil
	}
	return d.updateInput(msg)
}

// updateInput forwards msg to the focused text field.
func (d groupDialog) updateInput(msg tea.Msg) (groupDialog, dialogOutcome, tea.Cmd) {
	var cmd tea.Cmd
	switch d.focus {
	case groupFieldTitle:
		d.title, cmd = d.title.Update(msg)
	case groupFieldDescription:
		d.description, cmd = d.description.Update(msg)
	}
	return d, dialogContinue, cmd
}

func (d groupDialog) View(width int) string {
	var b strings.Builder
	b.WriteString(ModalTitleStyle.Render("Add Group to " + d.unitType))
	b.WriteString("\n")

	b.WriteString(fieldLabel("Title", d.focus == groupFieldTitle) + "\n" + d.title.View() + "\n\n")
	b.WriteString(fieldLabel("Description", d.focus == groupFieldDescription) + "\n" + d.description.View() + "\n\n")

	b.WriteString(fieldLabel("Type", d.focus == groupFieldType) + "\n")
	for _, t := range []config.GroupType{config.GroupSerial, config.GroupLocal} {
		if t == d.groupType {
			b.WriteString(SelectedListItemStyle.Render("(•) "+string(t)) + "  ")
		} else {
			b.WriteString(BlurredInputStyle.Render("( ) "+string(t)) + "  ")
		}
	}
	b.WriteString("\n")

	if d.err != "" {
		b.WriteString("\n" + InlineErrorStyle.Render("✗ "+d.err) + "\n")
	}
	if d.saveFailed {
		b.WriteString("\n" + SubtitleStyle.Render("ctrl+s retry save • esc close"))
	} else {
		b.WriteString("\n" + SubtitleStyle.Render("tab next field • ←/→ toggle type • enter add • esc cancel"))
	}
	return ModalStyle.Width(SafeModalWidth(60, width)).Render(b.String())
}

func fieldLabel(label string, focused bool) string {
	if focused {
		return FocusedInputStyle.Render("› " + label)
	}
	return BlurredInputStyle.Render("  " + label)
}
