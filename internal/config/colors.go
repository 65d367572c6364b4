package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// namedColors is the subset of the X11 color table accepted in button
// styles. Lookups ignore case and spaces.
var namedColors = map[string]string{
	"black":       "#000000",
	"white":       "#ffffff",
	"gray":        "#bebebe",
	"grey":        "#bebebe",
	"lightgray":   "#d3d3d3",
	"lightgrey":   "#d3d3d3",
	"darkgray":    "#a9a9a9",
	"darkgrey":    "#a9a9a9",
	"dimgray":     "#696969",
	"slategray":   "#708090",
	"red":         "#ff0000",
	"darkred":     "#8b0000",
	"firebrick":   "#b22222",
	"crimson":     "#dc143c",
	"indianred":   "#cd5c5c",
	"salmon":      "#fa8072",
	"tomato":      "#ff6347",
	"coral":       "#ff7f50",
	"orangered":   "#ff4500",
	"orange":      "#ffa500",
	"darkorange":  "#ff8c00",
	"gold":        "#ffd700",
	"yellow":      "#ffff00",
	"lightyellow": "#ffffe0",
	"khaki":       "#f0e68c",
	"green":       "#00ff00",
	"darkgreen":   "#006400",
	"forestgreen": "#228b22",
	"seagreen":    "#2e8b57",
	"limegreen":   "#32cd32",
	"lightgreen":  "#90ee90",
	"palegreen":   "#98fb98",
	"olivedrab":   "#6b8e23",
	"cyan":        "#00ffff",
	"darkcyan":    "#008b8b",
	"lightcyan":   "#e0ffff",
	"turquoise":   "#40e0d0",
	"teal":        "#008080",
	"blue":        "#0000ff",
	"darkblue":    "#00008b",
	"navy":        "#000080",
	"navyblue":    "#000080",
	"royalblue":   "#4169e1",
	"steelblue":   "#4682b4",
	"dodgerblue":  "#1e90ff",
	"deepskyblue": "#00bfff",
	"skyblue":     "#87ceeb",
	"lightblue":   "#add8e6",
	"purple":      "#a020f0",
	"magenta":     "#ff00ff",
	"violet":      "#ee82ee",
	"orchid":      "#da70d6",
	"plum":        "#dda0dd",
	"darkviolet":  "#9400d3",
	"slateblue":   "#6a5acd",
	"pink":        "#ffc0cb",
	"hotpink":     "#ff69b4",
	"deeppink":    "#ff1493",
	"brown":       "#a52a2a",
	"maroon":      "#b03060",
	"sienna":      "#a0522d",
	"chocolate":   "#d2691e",
	"tan":         "#d2b48c",
	"beige":       "#f5f5dc",
	"wheat":       "#f5deb3",
	"ivory":       "#fffff0",
	"snow":        "#fffafa",
	"linen":       "#faf0e6",
	"lavender":    "#e6e6fa",
	"silver":      "#c0c0c0",
}

// ColorNames returns the accepted color names, sorted.
func ColorNames() []string {
	names := make([]string, 0, len(namedColors))
	for name := range namedColors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseColor accepts #rgb, #rrggbb or a color name.
func ParseColor(s string) (colorful.Color, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return colorful.Color{}, fmt.Errorf("empty color")
	}
	if hex, ok := namedColors[strings.ToLower(strings.ReplaceAll(s, " ", ""))]; ok {
		s = hex
	}
	if !strings.HasPrefix(s, "#") {
		return colorful.Color{}, fmt.Errorf("unknown color %q", s)
	}
	if len(s) == 4 {
		s = "#" + strings.Repeat(s[1:2], 2) + strings.Repeat(s[2:3], 2) + strings.Repeat(s[3:4], 2)
	}
	if len(s) != 7 {
		return colorful.Color{}, fmt.Errorf("invalid color %q: want #rgb or #rrggbb", s)
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return c, nil
}

// NormalizeColor returns the #rrggbb form of a color, or "" if it cannot
// be parsed.
func NormalizeColor(s string) string {
	c, err := ParseColor(s)
	if err != nil {
		return ""
	}
	return c.Hex()
}
