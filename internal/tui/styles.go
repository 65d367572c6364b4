package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/portctl/internal/config"
	"github.com/muurk/portctl/internal/logbus"
	"github.com/muurk/portctl/internal/version"
)

// AppName is shown in the header.
const AppName = "PORTCTL"

// Layout constants
const (
	MinTerminalWidth = 60 // Below this the grid collapses to one column
	MinLogHeight     = 4  // Log pane never shrinks below this many lines
	ButtonWidthPad   = 4
)

// Color palette
var (
	PrimaryColor   = lipgloss.Color("#7D56F4") // Purple
	SecondaryColor = lipgloss.Color("#43BF6D") // Green
	WarningColor   = lipgloss.Color("#FFA500") // Orange
	ErrorColor     = lipgloss.Color("#FF0000") // Red

	TextColor      = lipgloss.Color("#FFFFFF")
	SubtleColor    = lipgloss.Color("#626262")
	BorderColor    = lipgloss.Color("#7D56F4")
	HighlightColor = lipgloss.Color("#43BF6D")
	DisabledColor  = lipgloss.Color("#3A3A3A")
)

// Common styles
var (
	SubtitleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor).
			Italic(true)

	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(SubtleColor).
			Padding(0, 1)

	FocusedPanelStyle = PanelStyle.
				BorderForeground(PrimaryColor)

	PanelTitleStyle = lipgloss.NewStyle().
			Foreground(TextColor).
			Bold(true)

	ButtonStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(TextColor).
			Background(lipgloss.Color("#303030"))

	FocusedButtonStyle = lipgloss.NewStyle().
				Bold(true).
				Underline(true)

	DisabledButtonStyle = lipgloss.NewStyle().
				Padding(0, 1).
				Foreground(SubtleColor).
				Background(DisabledColor).
				Strikethrough(true)

	SerialBadgeStyle = lipgloss.NewStyle().
				Foreground(PrimaryColor).
				Bold(true)

	LocalBadgeStyle = lipgloss.NewStyle().
			Foreground(SecondaryColor).
			Bold(true)

	SelectorStyle = lipgloss.NewStyle().
			Foreground(HighlightColor).
			Bold(true)

	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(PrimaryColor).
			Padding(1, 2)

	ModalTitleStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true).
			MarginBottom(1)

	FocusedInputStyle = lipgloss.NewStyle().
				Foreground(PrimaryColor).
				Bold(true)

	BlurredInputStyle = lipgloss.NewStyle().
				Foreground(SubtleColor)

	InlineErrorStyle = lipgloss.NewStyle().
				Foreground(ErrorColor).
				Bold(true)

	SelectedListItemStyle = lipgloss.NewStyle().
				Foreground(HighlightColor).
				Bold(true)

	ListItemStyle = lipgloss.NewStyle().
			PaddingLeft(2)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(SubtleColor).
			Padding(0, 1)
)

var levelStyles = map[logbus.Level]lipgloss.Style{
	logbus.LevelInfo:    lipgloss.NewStyle().Foreground(TextColor),
	logbus.LevelSuccess: lipgloss.NewStyle().Foreground(SecondaryColor),
	logbus.LevelWarning: lipgloss.NewStyle().Foreground(WarningColor),
	logbus.LevelError:   lipgloss.NewStyle().Foreground(ErrorColor).Bold(true),
}

// LevelStyle returns the log pane style for a level.
func LevelStyle(l logbus.Level) lipgloss.Style {
	if s, ok := levelStyles[l]; ok {
		return s
	}
	return lipgloss.NewStyle()
}

// GroupBadge renders the serial/local tag of a group.
func GroupBadge(t config.GroupType) string {
	if t == config.GroupLocal {
		return LocalBadgeStyle.Render("[local]")
	}
	return SerialBadgeStyle.Render("[serial]")
}

// StyledButton applies a button's configured colors on top of base.
// Colors that do not parse are ignored.
func StyledButton(base lipgloss.Style, style *config.Style) lipgloss.Style {
	if style.IsZero() {
		return base
	}
	if hex := config.NormalizeColor(style.Bg); hex != "" {
		base = base.Background(lipgloss.Color(hex))
	}
	if hex := config.NormalizeColor(style.Fg); hex != "" {
		base = base.Foreground(lipgloss.Color(hex))
	}
	return base
}

// BuildHeaderContent renders the app name, version and config path.
func BuildHeaderContent(configPath string) string {
	left := lipgloss.NewStyle().
		Foreground(TextColor).
		Bold(true).
		Render(AppName + " " + version.Version)

	right := lipgloss.NewStyle().
		Foreground(SubtleColor).
		Render(configPath)

	return lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right)
}

// RenderApplicationContainer wraps content in the bordered frame with a
// header and a footer pinned to the bottom.
func RenderApplicationContainer(header, content, footer string, terminalWidth, terminalHeight int) string {
	headerStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.Border{Bottom: "─"}).
		BorderForeground(BorderColor).
		Width(terminalWidth-4).
		Padding(0, 1)

	footerStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.Border{Top: "─"}).
		BorderForeground(BorderColor).
		Width(terminalWidth-4).
		Padding(0, 1)

	contentStyle := lipgloss.NewStyle().
		Width(terminalWidth - 4)

	inner := lipgloss.JoinVertical(
		lipgloss.Left,
		headerStyle.Render(header),
		contentStyle.Render(content),
		footerStyle.Render(lipgloss.NewStyle().Foreground(SubtleColor).Render(footer)),
	)

	bordered := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(BorderColor).
		Width(terminalWidth - 2).
		Height(terminalHeight - 2).
		AlignVertical(lipgloss.Top).
		Render(inner)

	return lipgloss.Place(terminalWidth, terminalHeight, lipgloss.Left, lipgloss.Top, bordered)
}

// RenderModal centers a modal over a dimmed backdrop.
func RenderModal(modalContent string, terminalWidth, terminalHeight int) string {
	return lipgloss.Place(
		terminalWidth,
		terminalHeight,
		lipgloss.Center,
		lipgloss.Center,
		modalContent,
		lipgloss.WithWhitespaceChars("░"),
		lipgloss.WithWhitespaceForeground(lipgloss.Color("240")),
	)
}

// SafeModalWidth keeps a modal inside the terminal.
func SafeModalWidth(requestedWidth, terminalWidth int) int {
	maxWidth := terminalWidth - 4
	if maxWidth < 40 {
		maxWidth = 40
	}
	if requestedWidth < maxWidth {
		return requestedWidth
	}
	return maxWidth
}
