package tui

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/muurk/portctl/internal/config"
)

type hsvChannel int

const (
	channelHue hsvChannel = iota
	channelSaturation
	channelValue
)

var channelNames = [...]string{"H", "S", "V"}

const (
	hueStep  = 10.0
	unitStep = 0.05
)

// ColorPicker edits one optional color by hue, saturation and value, or by
// cycling through the named palette.
type ColorPicker struct {
	Label   string
	set     bool
	h, s, v float64
	channel hsvChannel
	palette []string
	named   int // index into palette, -1 when the color was adjusted by hand
}

// NewColorPicker starts unset.
func NewColorPicker(label string) ColorPicker {
	return ColorPicker{
		Label:   label,
		palette: config.ColorNames(),
		named:   -1,
		v:       1,
	}
}

// SetColor loads a color string. Unparseable input leaves the picker unset.
func (p *ColorPicker) SetColor(s string) {
	c, err := config.ParseColor(s)
	if err != nil {
		p.set = false
		return
	}
	p.h, p.s, p.v = c.Hsv()
	p.set = true
	p.named = -1
	for i, name := range p.palette {
		if strings.EqualFold(name, strings.TrimSpace(s)) {
			p.named = i
			break
		}
	}
}

// Value returns the chosen color as #rrggbb, or "" when unset.
func (p ColorPicker) Value() string {
	if !p.set {
		return ""
	}
	return p.color().Hex()
}

// Name returns the palette name when one is selected.
func (p ColorPicker) Name() string {
	if !p.set || p.named < 0 {
		return ""
	}
	return p.palette[p.named]
}

func (p ColorPicker) color() colorful.Color {
	return colorful.Hsv(p.h, p.s, p.v).Clamped()
}

// Update handles picker keys: up/down choose a channel, left/right adjust
// it, [ and ] cycle named colors, x clears.
func (p ColorPicker) Update(msg tea.KeyMsg) ColorPicker {
	switch msg.String() {
	case "up", "k":
		if p.channel > channelHue {
			p.channel--
		}
	case "down", "j":
		if p.channel < channelValue {
			p.channel++
		}
	case "left", "h":
		p.adjust(-1)
	case "right", "l":
		p.adjust(1)
	case "]":
		p.cycle(1)
	case "[":
		p.cycle(-1)
	case "x", "backspace", "delete":
		p.set = false
		p.named = -1
	}
	return p
}

func (p *ColorPicker) adjust(dir float64) {
	if !p.set {
		p.set = true
		p.h, p.s, p.v = 0, 0, 1
	}
	switch p.channel {
	case channelHue:
		p.h = math.Mod(p.h+dir*hueStep+360, 360)
	case channelSaturation:
		p.s = clamp01(p.s + dir*unitStep)
	case channelValue:
		p.v = clamp01(p.v + dir*unitStep)
	}
	p.named = -1
}

func (p *ColorPicker) cycle(dir int) {
	if len(p.palette) == 0 {
		return
	}
	next := 0
	if p.named >= 0 {
		next = (p.named + dir + len(p.palette)) % len(p.palette)
	} else if dir < 0 {
		next = len(p.palette) - 1
	}
	p.SetColor(p.palette[next])
	p.named = next
}

func clamp01(x float64) float64 {
	return math.Max(0, math.Min(1, x))
}

// View renders the picker. focused highlights the active channel.
func (p ColorPicker) View(focused bool) string {
	labelStyle := BlurredInputStyle
	if focused {
		labelStyle = FocusedInputStyle
	}

	var b strings.Builder
	b.WriteString(labelStyle.Render(p.Label + ": "))
	if !p.set {
		b.WriteString(SubtitleStyle.Render("default"))
	} else {
		swatch := lipgloss.NewStyle().Background(lipgloss.Color(p.Value())).Render("    ")
		b.WriteString(swatch + " " + p.Value())
		if name := p.Name(); name != "" {
			b.WriteString(" (" + name + ")")
		}
	}
	if !focused {
		return b.String()
	}

	values := [...]string{
		fmt.Sprintf("%3.0f°", p.h),
		fmt.Sprintf("%3.0f%%", p.s*100),
		fmt.Sprintf("%3.0f%%", p.v*100),
	}
	for ch := channelHue; ch <= channelValue; ch++ {
		line := fmt.Sprintf("%s %s", channelNames[ch], values[ch])
		if ch == p.channel {
			b.WriteString("\n  " + SelectedListItemStyle.Render("› "+line))
		} else {
			b.WriteString("\n    " + line)
		}
	}
	b.WriteString("\n" + SubtitleStyle.Render("  ←/→ adjust  ↑/↓ channel  [/] named  x default"))
	return b.String()
}
