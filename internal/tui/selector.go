package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"
)

// unitSelector is the unit-type dropdown with fuzzy filtering.
type unitSelector struct {
	names    []string
	filter   textinput.Model
	matches  []fuzzy.Match
	cursor   int
	selected string
}

func newUnitSelector(names []string, current string) unitSelector {
	filter := textinput.New()
	filter.Placeholder = "type to filter"
	filter.Prompt = "/ "
	filter.CharLimit = 64
	filter.Width = 30
	filter.Focus()

	s := unitSelector{names: names, filter: filter, selected: current}
	s.refilter()
	for i, m := range s.matches {
		if m.Str == current {
			s.cursor = i
		}
	}
	return s
}

func (s *unitSelector) refilter() {
	query := strings.TrimSpace(s.filter.Value())
	if query == "" {
		s.matches = make([]fuzzy.Match, len(s.names))
		for i, name := range s.names {
			s.matches[i] = fuzzy.Match{Str: name, Index: i}
		}
	} else {
		s.matches = fuzzy.Find(query, s.names)
	}
	if s.cursor >= len(s.matches) {
		s.cursor = len(s.matches) - 1
	}
	if s.cursor < 0 {
		s.cursor = 0
	}
}

// Choice returns the highlighted unit type, or "" when nothing matches.
func (s unitSelector) Choice() string {
	if len(s.matches) == 0 {
		return ""
	}
	return s.matches[s.cursor].Str
}

func (s unitSelector) Update(msg tea.Msg) (unitSelector, dialogOutcome, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return s, dialogCancel, nil
		case "enter":
			if s.Choice() == "" {
				return s, dialogContinue, nil
			}
			return s, dialogSubmit, nil
		case "up", "ctrl+p":
			if s.cursor > 0 {
				s.cursor--
			}
			return s, dialogContinue, nil
		case "down", "ctrl+n":
			if s.cursor < len(s.matches)-1 {
				s.cursor++
			}
			return s, dialogContinue, nil
		}
	}

	var cmd tea.Cmd
	before := s.filter.Value()
	s.filter, cmd = s.filter.Update(msg)
	if s.filter.Value() != before {
		s.cursor = 0
		s.refilter()
	}
	return s, dialogContinue, cmd
}

func (s unitSelector) View(width int) string {
	var b strings.Builder
	b.WriteString(ModalTitleStyle.Render("Unit Type") + "\n")
	b.WriteString(s.filter.View() + "\n\n")

	if len(s.matches) == 0 {
		b.WriteString(SubtitleStyle.Render("no match") + "\n")
	}
	for i, m := range s.matches {
		name := highlightMatch(m)
		if m.Str == s.selected {
			name += SubtitleStyle.Render(" (current)")
		}
		if i == s.cursor {
			b.WriteString(SelectedListItemStyle.Render("→ ") + name + "\n")
		} else {
			b.WriteString("  " + name + "\n")
		}
	}
	b.WriteString("\n" + SubtitleStyle.Render("↑/↓ move • enter select • esc cancel"))
	return ModalStyle.Width(SafeModalWidth(48, width)).Render(b.String())
}

// highlightMatch bolds the characters a fuzzy match hit.
func highlightMatch(m fuzzy.Match) string {
	if len(m.MatchedIndexes) == 0 {
		return m.Str
	}
	hit := make(map[int]bool, len(m.MatchedIndexes))
	for _, i := range m.MatchedIndexes {
		hit[i] = true
	}
	var b strings.Builder
	for i, r := range m.Str {
		if hit[i] {
			b.WriteString(FocusedInputStyle.Render(string(r)))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
